package db

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client

const (
	CurrentPriceKey       = "sugartrack:price:current"
	PriceHistoryKeyPrefix = "sugartrack:price:history:"
)

func ConnectRedis() error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		slog.Warn("REDIS_URL environment variable is not set")
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}

	Redis = redis.NewClient(opt)

	_, err = Redis.Ping(context.Background()).Result()
	return err
}

func CloseRedis() {
	if Redis != nil {
		Redis.Close()
	}
}

// PriceCache is a best-effort response cache over Redis. Misses and Redis
// errors look the same to the caller; the price provider is always consulted
// when the cache cannot answer.
type PriceCache struct {
	client *redis.Client
}

func NewPriceCache() *PriceCache {
	return &PriceCache{client: Redis}
}

func (c *PriceCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		slog.Warn("price cache read failed", "key", key, "error", err)
		return "", false
	}
	return val, true
}

func (c *PriceCache) Set(ctx context.Context, key, value string, ttl time.Duration) {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		slog.Warn("price cache write failed", "key", key, "error", err)
	}
}
