package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/custodia-labs/counsel-core/internal/core/domain"
	"github.com/custodia-labs/counsel-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.AnswerCache = (*AnswerCache)(nil)

// cachePrefix namespaces answer keys so a flush never touches
// anything else sharing the Redis instance
const cachePrefix = "counsel:"

// AnswerCache implements driven.AnswerCache using Redis.
// Entries expire via Redis TTL; ingestion drops the whole namespace.
type AnswerCache struct {
	client *redis.Client
}

// NewAnswerCache creates a new Redis-backed AnswerCache
func NewAnswerCache(client *redis.Client) *AnswerCache {
	return &AnswerCache{client: client}
}

// Get retrieves a cached answer
func (c *AnswerCache) Get(ctx context.Context, key string) (*domain.Answer, error) {
	data, err := c.client.Get(ctx, cachePrefix+key).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached answer: %w", err)
	}

	var answer domain.Answer
	if err := json.Unmarshal(data, &answer); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached answer: %w", err)
	}

	return &answer, nil
}

// Set stores an answer with a TTL
func (c *AnswerCache) Set(ctx context.Context, key string, answer *domain.Answer, ttl time.Duration) error {
	data, err := json.Marshal(answer)
	if err != nil {
		return fmt.Errorf("failed to marshal answer: %w", err)
	}

	if err := c.client.Set(ctx, cachePrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache answer: %w", err)
	}
	return nil
}

// Invalidate drops every cached answer in the namespace.
// Keys are walked with SCAN to avoid blocking Redis.
func (c *AnswerCache) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, cachePrefix+"*", 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) >= 100 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to invalidate cache: %w", err)
			}
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cache keys: %w", err)
	}

	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("failed to invalidate cache: %w", err)
		}
	}
	return nil
}

// Close closes the Redis connection
func (c *AnswerCache) Close() error {
	return c.client.Close()
}
