package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
		client = nil
	})
	return mr
}

func TestMagicLinkToken_RoundTrip(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, StoreMagicLinkToken(ctx, "tok-1", "user@example.com", time.Minute))

	email, err := ConsumeMagicLinkToken(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", email)

	// Single use: a second consume must fail.
	_, err = ConsumeMagicLinkToken(ctx, "tok-1")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestMagicLinkToken_Expiry(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, StoreMagicLinkToken(ctx, "tok-2", "user@example.com", time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := ConsumeMagicLinkToken(ctx, "tok-2")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestMagicLinkToken_UnavailableCache(t *testing.T) {
	client = nil

	err := StoreMagicLinkToken(context.Background(), "tok-3", "user@example.com", time.Minute)
	assert.ErrorIs(t, err, ErrCacheUnavailable)

	_, err = ConsumeMagicLinkToken(context.Background(), "tok-3")
	assert.ErrorIs(t, err, ErrCacheUnavailable)
}

func TestBlacklistJTI(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, BlacklistJTI(ctx, "jti-1", time.Hour))
	assert.True(t, mr.Exists("blacklist:jti-1"))

	// Expired tokens need no blacklist entry.
	require.NoError(t, BlacklistJTI(ctx, "jti-2", -time.Second))
	assert.False(t, mr.Exists("blacklist:jti-2"))
}

func TestGetSetJSON(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	type payload struct {
		Name string `json:"name"`
	}

	var out payload
	found, err := GetJSON(ctx, ProfileKey(1), &out)
	require.NoError(t, err)
	assert.False(t, found)

	SetJSON(ctx, ProfileKey(1), payload{Name: "gopher"}, ProfileTTL)

	found, err = GetJSON(ctx, ProfileKey(1), &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "gopher", out.Name)
}

func TestInvalidateProfile(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	SetJSON(ctx, ProfileKey(7), map[string]string{"a": "b"}, ProfileTTL)
	SetJSON(ctx, UsernameKey("gopher"), map[string]string{"a": "b"}, ProfileTTL)

	InvalidateProfile(ctx, 7, "gopher")
	assert.False(t, mr.Exists(ProfileKey(7)))
	assert.False(t, mr.Exists(UsernameKey("gopher")))
}
