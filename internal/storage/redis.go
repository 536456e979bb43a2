package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	_ Cache       = (*RedisCache)(nil)
	_ RateLimiter = (*RedisLimiter)(nil)
)

const (
	cacheKeyPrefix     = "svg:"
	rateLimitKeyPrefix = "ratelimit:"
)

type RedisConfig struct {
	Client *redis.Client
}

type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(cfg RedisConfig) *RedisCache {
	return &RedisCache{client: cfg.Client}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, cacheKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cache entry: %w", err)
	}
	return data, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, cacheKeyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache entry: %w", err)
	}
	return nil
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// RedisLimiter counts requests per key in fixed windows so that every
// replica shares one budget.
type RedisLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

func NewRedisLimiter(cfg RedisConfig, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: cfg.Client, limit: int64(limit), window: window}
}

func (r *RedisLimiter) Allow(ctx context.Context, key string) (RateLimitResult, error) {
	now := time.Now()
	bucket := now.Truncate(r.window)
	redisKey := fmt.Sprintf("%s%s:%d", rateLimitKeyPrefix, key, bucket.Unix())

	var incr *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pipe.Expire(ctx, redisKey, r.window+time.Second)
		return nil
	})
	if err != nil {
		return RateLimitResult{}, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	if incr.Val() > r.limit {
		return RateLimitResult{Allowed: false, RetryAfter: bucket.Add(r.window).Sub(now)}, nil
	}
	return RateLimitResult{Allowed: true}, nil
}
