package postgres

import (
	"context"
	"fmt"
)

// HealthCheck reports whether the settlement journal can be written.
type HealthCheck struct {
	pool Pool
}

// NewHealthCheck creates a journal health checker.
func NewHealthCheck(pool Pool) *HealthCheck {
	return &HealthCheck{pool: pool}
}

// Ping succeeds when the database answers and the journal table exists.
func (h *HealthCheck) Ping(ctx context.Context) error {
	if _, err := h.pool.Exec(ctx, "SELECT 1 FROM settlement_events LIMIT 0"); err != nil {
		return fmt.Errorf("journal unavailable: %w", err)
	}
	return nil
}

func (h *HealthCheck) Name() string {
	return "postgresql"
}
