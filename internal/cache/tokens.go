package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrTokenNotFound is returned when a magic link token is missing, expired
	// or already consumed.
	ErrTokenNotFound = errors.New("token not found or expired")
	// ErrCacheUnavailable is returned when Redis is not connected. Token
	// issuance fails closed: without a store there is nothing to verify later.
	ErrCacheUnavailable = errors.New("cache unavailable")
)

func magicLinkKey(token string) string {
	return fmt.Sprintf("magic:%s", token)
}

// StoreMagicLinkToken records a single-use login token mapped to the email it
// was issued for.
func StoreMagicLinkToken(ctx context.Context, token, email string, ttl time.Duration) error {
	if client == nil {
		return ErrCacheUnavailable
	}
	return client.Set(ctx, magicLinkKey(token), email, ttl).Err()
}

// ConsumeMagicLinkToken atomically fetches and deletes a login token,
// returning the email it was issued for. A token can be consumed exactly once.
func ConsumeMagicLinkToken(ctx context.Context, token string) (string, error) {
	if client == nil {
		return "", ErrCacheUnavailable
	}
	email, err := client.GetDel(ctx, magicLinkKey(token)).Result()
	if err == redis.Nil {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", err
	}
	return email, nil
}

// MagicLinkStore exposes the magic link token functions behind an interface
// value for injection into services.
type MagicLinkStore struct{}

func (MagicLinkStore) Store(ctx context.Context, token, email string, ttl time.Duration) error {
	return StoreMagicLinkToken(ctx, token, email, ttl)
}

func (MagicLinkStore) Consume(ctx context.Context, token string) (string, error) {
	return ConsumeMagicLinkToken(ctx, token)
}

// BlacklistJTI revokes a JWT by its jti claim for the remaining token lifetime.
func BlacklistJTI(ctx context.Context, jti string, ttl time.Duration) error {
	if client == nil {
		return ErrCacheUnavailable
	}
	if ttl <= 0 {
		return nil
	}
	return client.Set(ctx, "blacklist:"+jti, "1", ttl).Err()
}
