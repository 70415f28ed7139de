package geocode

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores resolved addresses keyed by rounded coordinate. A miss is
// (value="", ok=false, err=nil); errors are reserved for the backend being
// unreachable.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

type redisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) Cache {
	return &redisCache{client: client}
}

func (c *redisCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("geocode cache get: %w", err)
	}
	return val, true, nil
}

func (c *redisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("geocode cache set: %w", err)
	}
	return nil
}

// CacheKey rounds both coordinates to 6 decimal places (~0.1m) so nearby
// lookups from the same device hit the same entry.
func CacheKey(lat, lng float64) string {
	return fmt.Sprintf("geocode:%.6f,%.6f", lat, lng)
}
