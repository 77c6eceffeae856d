package querycache

import (
	"context"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"
)

// RedisCache is the live-mode Cache, shared between processes.
type RedisCache struct {
	cache *cache.Cache[string]
}

func NewRedisCache(client *redis.Client) *RedisCache {
	redisStore := redisstore.NewRedis(client)

	return &RedisCache{
		cache: cache.New[string](redisStore),
	}
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	value, err := c.cache.Get(ctx, key)
	if err != nil {
		return "", false
	}

	return value, true
}

func (c *RedisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) {
	c.cache.Set(ctx, key, value, store.WithExpiration(ttl))
}

func (c *RedisCache) Delete(ctx context.Context, key string) {
	c.cache.Delete(ctx, key)
}

func (c *RedisCache) Clear(ctx context.Context) {
	c.cache.Clear(ctx)
}
