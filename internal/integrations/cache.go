package integrations

import (
	"context"
	"time"

	"pipeline_backend/platform/logger"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "integration:availability:"

// CachedChecker wraps a Checker with a Redis TTL cache so that action
// handlers do not re-probe external endpoints on every click. Cache
// failures degrade to a direct probe; a nil client passes through.
type CachedChecker struct {
	inner  Checker
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewCachedChecker creates a caching wrapper around inner.
func NewCachedChecker(inner Checker, client *redis.Client, ttl time.Duration, log *logger.Logger) *CachedChecker {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedChecker{inner: inner, client: client, ttl: ttl, log: log}
}

// Check returns the cached availability when present, probing and
// caching otherwise. Only definitive answers are cached: a probe error
// is returned as-is and leaves no cache entry.
func (c *CachedChecker) Check(ctx context.Context, kind Kind) (bool, error) {
	if c.client == nil {
		return c.inner.Check(ctx, kind)
	}

	key := cacheKeyPrefix + string(kind)
	cached, err := c.client.Get(ctx, key).Result()
	if err == nil {
		return cached == "1", nil
	}
	if err != redis.Nil {
		c.log.Debug("availability cache read failed", "kind", string(kind), "error", err)
	}

	available, err := c.inner.Check(ctx, kind)
	if err != nil {
		return false, err
	}

	value := "0"
	if available {
		value = "1"
	}
	if err := c.client.Set(ctx, key, value, c.ttl).Err(); err != nil {
		c.log.Debug("availability cache write failed", "kind", string(kind), "error", err)
	}
	return available, nil
}
