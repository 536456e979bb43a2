package storage

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("cache entry not found")

// Cache stores rendered documents by content key.
type Cache interface {
	// Get returns ErrNotFound on a miss or an expired entry.
	Get(ctx context.Context, key string) ([]byte, error)

	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	Ping(ctx context.Context) error

	Close() error
}

type RateLimitResult struct {
	Allowed    bool
	RetryAfter time.Duration
}

type RateLimiter interface {
	Allow(ctx context.Context, key string) (RateLimitResult, error)
}
