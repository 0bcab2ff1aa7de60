package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// ReplayCache implements ports.ReplayCache using Redis.
type ReplayCache struct {
	client goredis.UniversalClient
	prefix string
}

// NewReplayCache creates a Redis-backed conversion replay cache.
func NewReplayCache(client goredis.UniversalClient) *ReplayCache {
	return &ReplayCache{
		client: client,
		prefix: "replay:",
	}
}

// Get retrieves a cached response by key.
// Returns nil, nil if the key does not exist.
func (c *ReplayCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis replay get: %w", err)
	}
	return val, nil
}

// Set stores a response with TTL.
func (c *ReplayCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis replay set: %w", err)
	}
	return nil
}
