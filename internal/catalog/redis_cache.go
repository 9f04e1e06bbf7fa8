package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// implements Cache using Redis
type RedisCache struct {
	client *redis.Client
}

// creates a Redis-backed cache
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// creates a Redis-backed cache from a URL, verifying the connection
func NewRedisCacheFromURL(redisURL string) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisCache{client: client}, nil
}

// reads all keys with a single MGET
func (c *RedisCache) GetMany(ctx context.Context, keys []string) ([][]byte, error) {
	values, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	result := make([][]byte, len(values))

	for i, v := range values {
		if s, ok := v.(string); ok {
			result[i] = []byte(s)
		}
	}

	return result, nil
}

// writes all entries in one pipeline
func (c *RedisCache) SetMany(ctx context.Context, entries map[string][]byte, ttl time.Duration) error {
	if len(entries) == 0 {
		return nil
	}

	pipe := c.client.Pipeline()

	for key, value := range entries {
		pipe.Set(ctx, key, value, ttl)
	}

	_, err := pipe.Exec(ctx)
	return err
}

// closes the redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// checks the redis connection
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
