package adapter

import (
	"context"
	"time"
)

// ReportCache defines the interface for caching computed report payloads.
type ReportCache interface {
	// Get retrieves a cached payload. Returns (nil, nil) on a cache miss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a payload with the given TTL.
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error

	// InvalidateUser removes all cached reports for a user.
	InvalidateUser(ctx context.Context, userID string) error
}
