package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/folaeazy/snap-bill/internal/application/adapter"
)

// reportCache implements adapter.ReportCache on Redis.
type reportCache struct {
	client *redis.Client
}

// NewReportCache creates a new Redis-backed report cache.
func NewReportCache(client *redis.Client) adapter.ReportCache {
	return &reportCache{
		client: client,
	}
}

// Get retrieves a cached payload. Returns (nil, nil) on a cache miss.
func (c *reportCache) Get(ctx context.Context, key string) ([]byte, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return payload, nil
}

// Set stores a payload with the given TTL.
func (c *reportCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, payload, ttl).Err()
}

// InvalidateUser removes all cached reports for a user.
func (c *reportCache) InvalidateUser(ctx context.Context, userID string) error {
	iter := c.client.Scan(ctx, 0, "report:"+userID+":*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
