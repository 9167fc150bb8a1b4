// Package cache provides a small Redis-backed cache for dashboard
// aggregates. A nil *Cache is valid and means caching is disabled.
package cache

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/xelth-com/pcardgo/internal/config"
)

// Cache wraps a Redis client. All methods are nil-safe.
type Cache struct {
	client *redis.Client
}

// New connects to Redis, or returns nil when no address is configured.
func New(ctx context.Context, cfg config.RedisConfig) *Cache {
	if cfg.Addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️  Redis unavailable (%v), dashboard caching disabled", err)
		return nil
	}

	log.Printf("✅ Redis cache connected: %s", cfg.Addr)
	return &Cache{client: client}
}

// Get returns the cached payload for key, or false.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores a payload with a TTL. Failures are logged, not returned:
// the cache is best-effort.
func (c *Cache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if c == nil {
		return
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		log.Printf("⚠️  Cache set failed for %s: %v", key, err)
	}
}

// Invalidate drops a cached key after writes that change the aggregates.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("⚠️  Cache invalidation failed: %v", err)
	}
}

// Close releases the underlying client.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
