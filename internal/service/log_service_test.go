package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"tone/internal/models"
	"tone/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLogFixture(t *testing.T) (*LogService, *testutil.LogRepoStub, *models.Item) {
	t.Helper()
	items := testutil.NewItemRepoStub()
	logs := testutil.NewLogRepoStub(items)
	svc := NewLogService(logs, items)

	item := &models.Item{Title: "Dune", Category: "book"}
	require.NoError(t, items.Create(context.Background(), item))
	return svc, logs, item
}

func TestLogService_Create(t *testing.T) {
	t.Parallel()

	t.Run("defaults stamp and visibility", func(t *testing.T) {
		t.Parallel()
		svc, _, item := newLogFixture(t)

		log, err := svc.Create(context.Background(), CreateLogInput{UserID: 1, ItemID: item.ID})
		require.NoError(t, err)
		assert.Equal(t, models.StampFire, log.Stamp)
		assert.True(t, log.IsPublic)
		assert.Equal(t, "Dune", log.Item.Title)
	})

	t.Run("honors explicit private visibility", func(t *testing.T) {
		t.Parallel()
		svc, _, item := newLogFixture(t)

		private := false
		log, err := svc.Create(context.Background(), CreateLogInput{
			UserID:   1,
			ItemID:   item.ID,
			Stamp:    models.StampSleep,
			Memo:     "fell asleep twice",
			IsPublic: &private,
		})
		require.NoError(t, err)
		assert.Equal(t, models.StampSleep, log.Stamp)
		assert.False(t, log.IsPublic)
	})

	t.Run("rejects unknown stamp", func(t *testing.T) {
		t.Parallel()
		svc, _, item := newLogFixture(t)

		_, err := svc.Create(context.Background(), CreateLogInput{UserID: 1, ItemID: item.ID, Stamp: "meh"})
		assertAppErrorCode(t, err, models.CodeValidation)
	})

	t.Run("rejects overlong memo", func(t *testing.T) {
		t.Parallel()
		svc, _, item := newLogFixture(t)

		_, err := svc.Create(context.Background(), CreateLogInput{
			UserID: 1,
			ItemID: item.ID,
			Memo:   strings.Repeat("x", 2001),
		})
		assertAppErrorCode(t, err, models.CodeValidation)
	})

	t.Run("rejects missing item", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newLogFixture(t)

		_, err := svc.Create(context.Background(), CreateLogInput{UserID: 1, ItemID: 999})
		assertAppErrorCode(t, err, models.CodeNotFound)
	})
}

func TestLogService_List(t *testing.T) {
	t.Parallel()
	svc, logs, item := newLogFixture(t)
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, logs.Create(ctx, &models.Log{UserID: 1, ItemID: item.ID, Stamp: models.StampFire, IsPublic: true, CreatedAt: now.Add(-time.Hour)}))
	require.NoError(t, logs.Create(ctx, &models.Log{UserID: 1, ItemID: item.ID, Stamp: models.StampCry, IsPublic: false, CreatedAt: now}))
	require.NoError(t, logs.Create(ctx, &models.Log{UserID: 2, ItemID: item.ID, Stamp: models.StampLove, IsPublic: true, CreatedAt: now}))

	got, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Own listing includes private logs, newest first.
	assert.Equal(t, models.StampCry, got[0].Stamp)
	assert.Equal(t, models.StampFire, got[1].Stamp)
}

func TestLogService_Update(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T) (*LogService, uint) {
		svc, logs, item := newLogFixture(t)
		log := &models.Log{UserID: 1, ItemID: item.ID, Stamp: models.StampFire, Memo: "first pass", IsPublic: true}
		require.NoError(t, logs.Create(context.Background(), log))
		return svc, log.ID
	}

	t.Run("partial edit keeps unspecified fields", func(t *testing.T) {
		t.Parallel()
		svc, logID := seed(t)

		stamp := models.StampThink
		log, err := svc.Update(context.Background(), UpdateLogInput{UserID: 1, LogID: logID, Stamp: &stamp})
		require.NoError(t, err)
		assert.Equal(t, models.StampThink, log.Stamp)
		assert.Equal(t, "first pass", log.Memo)
		assert.True(t, log.IsPublic)
	})

	t.Run("memo can be cleared", func(t *testing.T) {
		t.Parallel()
		svc, logID := seed(t)

		empty := ""
		log, err := svc.Update(context.Background(), UpdateLogInput{UserID: 1, LogID: logID, Memo: &empty})
		require.NoError(t, err)
		assert.Empty(t, log.Memo)
	})

	t.Run("non-owner sees not found", func(t *testing.T) {
		t.Parallel()
		svc, logID := seed(t)

		stamp := models.StampVomit
		_, err := svc.Update(context.Background(), UpdateLogInput{UserID: 99, LogID: logID, Stamp: &stamp})
		assertAppErrorCode(t, err, models.CodeNotFound)
	})

	t.Run("invalid stamp is rejected", func(t *testing.T) {
		t.Parallel()
		svc, logID := seed(t)

		stamp := "meh"
		_, err := svc.Update(context.Background(), UpdateLogInput{UserID: 1, LogID: logID, Stamp: &stamp})
		assertAppErrorCode(t, err, models.CodeValidation)
	})

	t.Run("missing log is not found", func(t *testing.T) {
		t.Parallel()
		svc, _ := seed(t)

		stamp := models.StampFire
		_, err := svc.Update(context.Background(), UpdateLogInput{UserID: 1, LogID: 999, Stamp: &stamp})
		assertAppErrorCode(t, err, models.CodeNotFound)
	})
}

func TestLogService_Delete(t *testing.T) {
	t.Parallel()

	t.Run("owner can delete", func(t *testing.T) {
		t.Parallel()
		svc, logs, item := newLogFixture(t)
		ctx := context.Background()
		log := &models.Log{UserID: 1, ItemID: item.ID, Stamp: models.StampFire, IsPublic: true}
		require.NoError(t, logs.Create(ctx, log))

		require.NoError(t, svc.Delete(ctx, 1, log.ID))

		got, err := logs.GetByID(ctx, log.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("non-owner sees not found", func(t *testing.T) {
		t.Parallel()
		svc, logs, item := newLogFixture(t)
		ctx := context.Background()
		log := &models.Log{UserID: 1, ItemID: item.ID, Stamp: models.StampFire, IsPublic: true}
		require.NoError(t, logs.Create(ctx, log))

		err := svc.Delete(ctx, 99, log.ID)
		assertAppErrorCode(t, err, models.CodeNotFound)

		got, err := logs.GetByID(ctx, log.ID)
		require.NoError(t, err)
		assert.NotNil(t, got)
	})
}
