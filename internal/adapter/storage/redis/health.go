package redis

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
)

// HealthCheck reports whether the settlement ledger in Redis is usable.
type HealthCheck struct {
	client goredis.UniversalClient
	key    string
}

// NewHealthCheck creates a Redis health checker for the ledger stored at key.
func NewHealthCheck(client goredis.UniversalClient, key string) *HealthCheck {
	return &HealthCheck{client: client, key: key}
}

// Ping fails when Redis is down or the ledger key holds something other
// than the JSON document the repository writes.
func (h *HealthCheck) Ping(ctx context.Context) error {
	kind, err := h.client.Type(ctx, h.key).Result()
	if err != nil {
		return err
	}
	if kind != "none" && kind != "string" {
		return fmt.Errorf("ledger key %q holds a %s", h.key, kind)
	}
	return nil
}

func (h *HealthCheck) Name() string {
	return "redis"
}
