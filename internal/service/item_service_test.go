package service

import (
	"context"
	"strings"
	"testing"

	"tone/internal/models"
	"tone/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemService_Search(t *testing.T) {
	t.Parallel()
	items := testutil.NewItemRepoStub()
	svc := NewItemService(items)
	ctx := context.Background()

	require.NoError(t, items.Create(ctx, &models.Item{Title: "Dune", Category: "book"}))
	require.NoError(t, items.Create(ctx, &models.Item{Title: "Dune: Part Two", Category: "movie"}))

	t.Run("matches case-insensitively", func(t *testing.T) {
		results, err := svc.Search(ctx, "dune")
		require.NoError(t, err)
		assert.Len(t, results, 2)
	})

	t.Run("blank query returns empty result", func(t *testing.T) {
		results, err := svc.Search(ctx, "   ")
		require.NoError(t, err)
		assert.NotNil(t, results)
		assert.Empty(t, results)
	})

	t.Run("no match returns empty result", func(t *testing.T) {
		results, err := svc.Search(ctx, "solaris")
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestItemService_Create(t *testing.T) {
	t.Parallel()

	t.Run("trims title and defaults category", func(t *testing.T) {
		t.Parallel()
		svc := NewItemService(testutil.NewItemRepoStub())

		item, err := svc.Create(context.Background(), CreateItemInput{Title: "  Solaris  "})
		require.NoError(t, err)
		assert.Equal(t, "Solaris", item.Title)
		assert.Equal(t, models.DefaultItemCategory, item.Category)
		assert.NotZero(t, item.ID)
	})

	t.Run("keeps explicit category", func(t *testing.T) {
		t.Parallel()
		svc := NewItemService(testutil.NewItemRepoStub())

		item, err := svc.Create(context.Background(), CreateItemInput{Title: "Solaris", Category: "book"})
		require.NoError(t, err)
		assert.Equal(t, "book", item.Category)
	})

	t.Run("rejects blank title", func(t *testing.T) {
		t.Parallel()
		svc := NewItemService(testutil.NewItemRepoStub())

		_, err := svc.Create(context.Background(), CreateItemInput{Title: "   "})
		assertAppErrorCode(t, err, models.CodeValidation)
	})

	t.Run("rejects overlong title", func(t *testing.T) {
		t.Parallel()
		svc := NewItemService(testutil.NewItemRepoStub())

		_, err := svc.Create(context.Background(), CreateItemInput{Title: strings.Repeat("x", 256)})
		assertAppErrorCode(t, err, models.CodeValidation)
	})
}
