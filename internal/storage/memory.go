package storage

import (
	"context"
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

var (
	_ Cache       = (*MemoryCache)(nil)
	_ RateLimiter = (*MemoryLimiter)(nil)
)

const (
	DefaultMaxEntries      = 4096
	defaultCleanupInterval = time.Minute
)

type cacheEntry struct {
	data      []byte
	expiresAt time.Time
}

type MemoryCache struct {
	mu         sync.RWMutex
	entries    map[string]cacheEntry
	maxEntries int

	done      chan struct{}
	closeOnce sync.Once
	interval  time.Duration
}

// NewMemoryCache starts a background sweep every cleanupInterval. When the
// cache holds maxEntries, Set evicts an arbitrary entry first.
func NewMemoryCache(cleanupInterval time.Duration, maxEntries int) *MemoryCache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	if cleanupInterval <= 0 {
		cleanupInterval = defaultCleanupInterval
	}
	c := &MemoryCache{
		entries:    make(map[string]cacheEntry),
		maxEntries: maxEntries,
		done:       make(chan struct{}),
		interval:   cleanupInterval,
	}
	go c.cleanupLoop()
	return c
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil, ErrNotFound
	}
	return append([]byte(nil), entry.data...), nil
}

func (c *MemoryCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	entry := cacheEntry{
		data:      append([]byte(nil), data...),
		expiresAt: time.Now().Add(ttl),
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		for k := range c.entries {
			delete(c.entries, k)
			break
		}
	}
	c.entries[key] = entry
	return nil
}

func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *MemoryCache) Ping(_ context.Context) error {
	return nil
}

func (c *MemoryCache) cleanupLoop() {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.done:
			return
		}
	}
}

func (c *MemoryCache) cleanup() {
	now := time.Now()
	c.mu.Lock()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
	c.mu.Unlock()
}

func (c *MemoryCache) Close() error {
	c.closeOnce.Do(func() { close(c.done) })
	return nil
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryLimiter is a per-key token bucket. A bucket idle long enough to have
// refilled completely is dropped, since a fresh one behaves the same.
type MemoryLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*limiterEntry
	rateLimit rate.Limit
	rateBurst int
	idleAfter time.Duration

	done      chan struct{}
	closeOnce sync.Once
}

func NewMemoryLimiter(ratePerSec float64, burst int) *MemoryLimiter {
	m := &MemoryLimiter{
		limiters:  make(map[string]*limiterEntry),
		rateLimit: rate.Limit(ratePerSec),
		rateBurst: burst,
		idleAfter: refillTime(ratePerSec, burst),
		done:      make(chan struct{}),
	}
	go m.cleanupLoop()
	return m
}

func refillTime(ratePerSec float64, burst int) time.Duration {
	if ratePerSec <= 0 || math.IsInf(ratePerSec, 1) {
		return defaultCleanupInterval
	}
	return time.Duration(float64(max(burst, 1)) / ratePerSec * float64(time.Second))
}

func (m *MemoryLimiter) Allow(_ context.Context, key string) (RateLimitResult, error) {
	now := time.Now()

	m.mu.Lock()
	entry, ok := m.limiters[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(m.rateLimit, m.rateBurst)}
		m.limiters[key] = entry
	}
	entry.lastSeen = now
	m.mu.Unlock()

	res := entry.limiter.ReserveN(now, 1)
	if delay := res.DelayFrom(now); delay > 0 {
		res.CancelAt(now)
		return RateLimitResult{Allowed: false, RetryAfter: delay}, nil
	}
	return RateLimitResult{Allowed: true}, nil
}

func (m *MemoryLimiter) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.limiters)
}

func (m *MemoryLimiter) cleanupLoop() {
	ticker := time.NewTicker(defaultCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			m.cleanup(now)
		case <-m.done:
			return
		}
	}
}

func (m *MemoryLimiter) cleanup(now time.Time) {
	m.mu.Lock()
	for key, entry := range m.limiters {
		if now.Sub(entry.lastSeen) >= m.idleAfter {
			delete(m.limiters, key)
		}
	}
	m.mu.Unlock()
}

func (m *MemoryLimiter) Close() error {
	m.closeOnce.Do(func() { close(m.done) })
	return nil
}
