// Package memory holds process-local adapters used when no external store is
// configured and in tests.
package memory

import (
	"context"
	"sync"

	"settlement-reconciler/internal/core/domain"
	"settlement-reconciler/internal/core/ports"
)

// SettlementRepo implements ports.SettlementRepository in process memory.
type SettlementRepo struct {
	mu          sync.Mutex
	settlements []domain.PendingSettlement
}

// NewSettlementRepo creates an empty in-memory settlement repository.
func NewSettlementRepo() *SettlementRepo {
	return &SettlementRepo{}
}

// List returns a copy of the stored list.
func (r *SettlementRepo) List(_ context.Context) ([]domain.PendingSettlement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return clone(r.settlements), nil
}

// Mutate replaces the list with fn(current) under the repository lock.
func (r *SettlementRepo) Mutate(_ context.Context, fn ports.MutateFunc) ([]domain.PendingSettlement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next, err := fn(clone(r.settlements))
	if err != nil {
		return nil, err
	}
	r.settlements = clone(next)
	return clone(next), nil
}

func clone(in []domain.PendingSettlement) []domain.PendingSettlement {
	out := make([]domain.PendingSettlement, len(in))
	copy(out, in)
	return out
}
