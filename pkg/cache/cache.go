package cache

import (
	"context"
	"time"

	"trailhead/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// Cache is a thin read-through layer over Redis for public content reads.
// A nil underlying client disables caching entirely; every call degrades to
// a miss so callers never branch on availability.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
	log *logger.Logger
}

func New(rdb *redis.Client, ttl time.Duration, log *logger.Logger) *Cache {
	return &Cache{
		rdb: rdb,
		ttl: ttl,
		log: log,
	}
}

func (c *Cache) Get(ctx context.Context, key string) (string, bool) {
	if c == nil || c.rdb == nil {
		return "", false
	}

	val, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("Cache read failed", "key", key, "error", err)
		}
		return "", false
	}
	return val, true
}

func (c *Cache) Set(ctx context.Context, key, value string) {
	if c == nil || c.rdb == nil {
		return
	}

	if err := c.rdb.Set(ctx, key, value, c.ttl).Err(); err != nil {
		c.log.Warn("Cache write failed", "key", key, "error", err)
	}
}

func (c *Cache) Delete(ctx context.Context, keys ...string) {
	if c == nil || c.rdb == nil || len(keys) == 0 {
		return
	}

	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("Cache invalidation failed", "keys", keys, "error", err)
	}
}
