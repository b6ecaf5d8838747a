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

func newProfileFixture() (*ProfileService, *testutil.ProfileRepoStub, *testutil.LogRepoStub, *testutil.ItemRepoStub) {
	profiles := testutil.NewProfileRepoStub()
	items := testutil.NewItemRepoStub()
	logs := testutil.NewLogRepoStub(items)
	svc := NewProfileService(profiles, logs)
	return svc, profiles, logs, items
}

func TestProfileService_Get(t *testing.T) {
	t.Parallel()
	svc, profiles, _, _ := newProfileFixture()
	ctx := context.Background()

	t.Run("no profile yet is an empty state", func(t *testing.T) {
		profile, err := svc.Get(ctx, 1)
		assert.NoError(t, err)
		assert.Nil(t, profile)
	})

	t.Run("returns saved profile", func(t *testing.T) {
		require.NoError(t, profiles.Upsert(ctx, &models.Profile{ID: 1, Username: "gopher"}))
		profile, err := svc.Get(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, profile)
		assert.Equal(t, "gopher", profile.Username)
	})
}

func TestProfileService_Upsert(t *testing.T) {
	t.Parallel()

	t.Run("normalizes username to lowercase", func(t *testing.T) {
		t.Parallel()
		svc, _, _, _ := newProfileFixture()

		profile, err := svc.Upsert(context.Background(), UpsertProfileInput{
			UserID:      1,
			Username:    "GopherFan",
			DisplayName: "  Gopher Fan  ",
		})
		require.NoError(t, err)
		assert.Equal(t, "gopherfan", profile.Username)
		assert.Equal(t, "Gopher Fan", profile.DisplayName)
	})

	t.Run("rejects malformed username", func(t *testing.T) {
		t.Parallel()
		svc, _, _, _ := newProfileFixture()

		for _, username := range []string{"", "ab", "has space", "héllo", strings.Repeat("a", 31)} {
			_, err := svc.Upsert(context.Background(), UpsertProfileInput{UserID: 1, Username: username})
			assertAppErrorCode(t, err, models.CodeValidation)
		}
	})

	t.Run("rejects overlong display name", func(t *testing.T) {
		t.Parallel()
		svc, _, _, _ := newProfileFixture()

		_, err := svc.Upsert(context.Background(), UpsertProfileInput{
			UserID:      1,
			Username:    "gopher",
			DisplayName: strings.Repeat("x", 51),
		})
		assertAppErrorCode(t, err, models.CodeValidation)
	})

	t.Run("taken username is a conflict", func(t *testing.T) {
		t.Parallel()
		svc, _, _, _ := newProfileFixture()
		ctx := context.Background()

		_, err := svc.Upsert(ctx, UpsertProfileInput{UserID: 1, Username: "gopher"})
		require.NoError(t, err)

		_, err = svc.Upsert(ctx, UpsertProfileInput{UserID: 2, Username: "Gopher"})
		assertAppErrorCode(t, err, models.CodeConflict)
	})

	t.Run("same user can re-save the same username", func(t *testing.T) {
		t.Parallel()
		svc, _, _, _ := newProfileFixture()
		ctx := context.Background()

		_, err := svc.Upsert(ctx, UpsertProfileInput{UserID: 1, Username: "gopher"})
		require.NoError(t, err)

		profile, err := svc.Upsert(ctx, UpsertProfileInput{UserID: 1, Username: "gopher", DisplayName: "G"})
		require.NoError(t, err)
		assert.Equal(t, "G", profile.DisplayName)
	})
}

func TestProfileService_PublicProfile(t *testing.T) {
	t.Parallel()

	setup := func(t *testing.T) (*ProfileService, *testutil.LogRepoStub) {
		svc, profiles, logs, items := newProfileFixture()
		ctx := context.Background()

		require.NoError(t, profiles.Upsert(ctx, &models.Profile{ID: 1, Username: "gopher"}))
		item := &models.Item{Title: "Dune"}
		require.NoError(t, items.Create(ctx, item))

		now := time.Now()
		require.NoError(t, logs.Create(ctx, &models.Log{UserID: 1, ItemID: item.ID, Stamp: models.StampFire, IsPublic: true, CreatedAt: now.Add(-time.Hour)}))
		require.NoError(t, logs.Create(ctx, &models.Log{UserID: 1, ItemID: item.ID, Stamp: models.StampCry, IsPublic: false, CreatedAt: now}))
		return svc, logs
	}

	t.Run("returns profile with public logs only", func(t *testing.T) {
		t.Parallel()
		svc, _ := setup(t)

		view, err := svc.PublicProfile(context.Background(), "gopher")
		require.NoError(t, err)
		assert.Equal(t, "gopher", view.Profile.Username)
		require.Len(t, view.Logs, 1)
		assert.Equal(t, models.StampFire, view.Logs[0].Stamp)
		assert.Equal(t, "Dune", view.Logs[0].Item.Title)
	})

	t.Run("lookup is case-insensitive", func(t *testing.T) {
		t.Parallel()
		svc, _ := setup(t)

		view, err := svc.PublicProfile(context.Background(), "GoPhEr")
		require.NoError(t, err)
		assert.Equal(t, "gopher", view.Profile.Username)
	})

	t.Run("unknown username is not found", func(t *testing.T) {
		t.Parallel()
		svc, _ := setup(t)

		_, err := svc.PublicProfile(context.Background(), "ghost")
		assertAppErrorCode(t, err, models.CodeNotFound)
	})

	t.Run("blank username is a validation error", func(t *testing.T) {
		t.Parallel()
		svc, _ := setup(t)

		_, err := svc.PublicProfile(context.Background(), "   ")
		assertAppErrorCode(t, err, models.CodeValidation)
	})
}
