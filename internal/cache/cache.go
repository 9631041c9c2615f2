// Package cache is a small Redis-backed read-side cache for the public
// competition listings. It is strictly optional: with no Redis configured
// every lookup is a miss and callers hit the database. The allocator and the
// draw never read through it.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const ListingPrefix = "competitions:"

type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis and returns nil when addr is empty or the server is
// unreachable; a nil *Cache is safe to use and behaves as a pass-through.
func New(addr string, ttl time.Duration) *Cache {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		zap.L().Warn("redis unreachable, listing cache disabled", zap.Error(err))
		return nil
	}
	return &Cache{client: client, ttl: ttl}
}

// GetJSON reports whether the key was found and, if so, unmarshals it into
// dest. Errors are treated as misses: the cache must never fail a request.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) bool {
	if c == nil {
		return false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			zap.L().Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		zap.L().Warn("cache entry corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (c *Cache) SetJSON(ctx context.Context, key string, value any) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		zap.L().Warn("cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		zap.L().Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// DeletePrefix drops every key under prefix. Used on admin mutations so
// stale listings disappear immediately instead of waiting out the TTL.
func (c *Cache) DeletePrefix(ctx context.Context, prefix string) {
	if c == nil {
		return
	}
	iter := c.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			zap.L().Warn("cache delete failed", zap.String("key", iter.Val()), zap.Error(err))
		}
	}
	if err := iter.Err(); err != nil {
		zap.L().Warn("cache scan failed", zap.String("prefix", prefix), zap.Error(err))
	}
}
