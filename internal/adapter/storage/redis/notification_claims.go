package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// NotificationClaims implements ports.NotificationClaims using Redis SET NX.
type NotificationClaims struct {
	client goredis.UniversalClient
	prefix string
}

// NewNotificationClaims creates a Redis-backed notification dedupe store.
func NewNotificationClaims(client goredis.UniversalClient) *NotificationClaims {
	return &NotificationClaims{
		client: client,
		prefix: "notified:",
	}
}

// Claim atomically records id if it is not already present.
// Returns true if the caller now owns id, false if it was claimed before.
func (s *NotificationClaims) Claim(ctx context.Context, id string, ttl time.Duration) (bool, error) {
	result, err := s.client.SetArgs(ctx, s.prefix+id, 1, goredis.SetArgs{
		Mode: "NX",
		TTL:  ttl,
	}).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis notification claim: %w", err)
	}
	return result == "OK", nil
}
