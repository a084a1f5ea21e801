package book

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const searchKeyPrefix = "okreads:search:"

// RedisCache keeps search results in Redis with a fixed TTL.
type RedisCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewRedisCache(redisClient *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{redis: redisClient, ttl: ttl}
}

func searchKey(term string) string {
	return searchKeyPrefix + NormalizeTerm(term)
}

func (c *RedisCache) Get(ctx context.Context, term string) ([]Book, bool, error) {
	op := "RedisCache.Get"
	result, err := c.redis.Get(ctx, searchKey(term)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	var books []Book
	if err := json.Unmarshal([]byte(result), &books); err != nil {
		return nil, false, fmt.Errorf("%s: unmarshal cached books: %w", op, err)
	}
	return books, true, nil
}

func (c *RedisCache) Set(ctx context.Context, term string, books []Book) error {
	op := "RedisCache.Set"
	payload, err := json.Marshal(books)
	if err != nil {
		return fmt.Errorf("%s: marshal books: %w", op, err)
	}
	if err := c.redis.Set(ctx, searchKey(term), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
