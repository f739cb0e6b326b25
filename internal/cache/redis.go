package cache

import (
	"chronicrelief/server/internal/config"
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisCache shares the answer window across server instances. TTL is
// enforced server-side, so expiry needs no lazy eviction here.
type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a Redis-backed answer cache.
func NewRedisCache(cfg config.RedisConfig, ttl time.Duration) AnswerCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &redisCache{client: client, ttl: ttl}
}

func (c *redisCache) Get(ctx context.Context, key string) (string, bool) {
	value, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("WARN: answer cache read failed: %v", err)
		}
		return "", false
	}
	return value, true
}

func (c *redisCache) Set(ctx context.Context, key, value string) {
	if err := c.client.Set(ctx, key, value, c.ttl).Err(); err != nil {
		log.Printf("WARN: answer cache write failed: %v", err)
	}
}
