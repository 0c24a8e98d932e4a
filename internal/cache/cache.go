// Package cache provides a small JSON read-through cache over Redis for the
// public content endpoints. The database stays authoritative: a Redis outage
// degrades to direct reads, it never takes the site down.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL bounds staleness for public reads that were cached but never
// invalidated (e.g. rows changed by hand in the database).
const DefaultTTL = 5 * time.Minute

// Cache wraps a Redis client with JSON encoding. A nil Cache is valid and
// behaves as a permanent miss, so callers never branch on whether Redis is
// configured.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a Cache around an existing Redis client.
func New(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{client: client, ttl: ttl}
}

// GetJSON loads the value at key into dest. It returns false on a miss, on
// any Redis error, and on a corrupt entry (which it also deletes).
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) bool {
	if c == nil || c.client == nil {
		return false
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("cache read failed", "key", key, "error", err)
		}
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		slog.Warn("cache entry is corrupt, dropping it", "key", key, "error", err)
		c.Delete(ctx, key)
		return false
	}

	return true
}

// SetJSON stores value at key with the cache TTL. Errors are logged and
// swallowed; caching is never worth failing a request over.
func (c *Cache) SetJSON(ctx context.Context, key string, value any) {
	if c == nil || c.client == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		slog.Warn("cache encode failed", "key", key, "error", err)
		return
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		slog.Warn("cache write failed", "key", key, "error", err)
	}
}

// Delete removes keys, typically after an admin write invalidates them.
func (c *Cache) Delete(ctx context.Context, keys ...string) {
	if c == nil || c.client == nil || len(keys) == 0 {
		return
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		slog.Warn("cache invalidation failed", "keys", keys, "error", err)
	}
}
