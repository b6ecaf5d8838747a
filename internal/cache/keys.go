package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tone/internal/observability"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
)

const (
	ProfileKeyPrefix  = "profile:%d"
	UsernameKeyPrefix = "username:%s"
	ItemKeyPrefix     = "item:%d"
)

const (
	ProfileTTL = 5 * time.Minute
	ItemTTL    = 30 * time.Minute
)

func ProfileKey(userID uint) string {
	return fmt.Sprintf(ProfileKeyPrefix, userID)
}

func UsernameKey(username string) string {
	return fmt.Sprintf(UsernameKeyPrefix, username)
}

func ItemKey(itemID uint) string {
	return fmt.Sprintf(ItemKeyPrefix, itemID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateProfile(ctx context.Context, userID uint, username string) {
	Invalidate(ctx, ProfileKey(userID))
	if username != "" {
		Invalidate(ctx, UsernameKey(username))
	}
}

// GetJSON reads key and unmarshals it into dest. The second return value is
// false on a miss or when Redis is unavailable.
func GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	if client == nil {
		return false, nil
	}
	raw, err := client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals value and stores it at key with the given TTL. Failures are
// ignored; the cache is best-effort.
func SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	client.Set(ctx, key, raw, ttl)
}

// Aside implements the cache-aside pattern: serve dest from cache when
// possible, otherwise call fetch to populate dest and write it back.
// fetch errors pass through untouched; cache errors degrade to a fetch.
func Aside(ctx context.Context, key string, dest interface{}, ttl time.Duration, fetch func() error) error {
	ctx, span := observability.GetTraceLayer().TraceRedisOperation(ctx, "cache_aside")
	defer span.End()

	if found, err := GetJSON(ctx, key, dest); err == nil && found {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return nil
	}
	span.SetAttributes(attribute.Bool("cache.hit", false))

	if err := fetch(); err != nil {
		return err
	}
	SetJSON(ctx, key, dest, ttl)
	return nil
}
