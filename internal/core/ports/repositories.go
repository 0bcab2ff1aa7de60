package ports

import (
	"context"

	"settlement-reconciler/internal/core/domain"
)

//go:generate mockgen -source=repositories.go -destination=mocks/mock_repositories.go -package=mocks

// MutateFunc computes the next settlement list from the current one. It may be
// called more than once when a concurrent writer wins the race, so it must be
// free of side effects.
type MutateFunc func(current []domain.PendingSettlement) ([]domain.PendingSettlement, error)

// SettlementRepository persists the pending-settlement list as a single
// document. There is no per-entry access: every write replaces the list.
type SettlementRepository interface {
	// List returns the persisted list, or an empty list when nothing is stored.
	List(ctx context.Context) ([]domain.PendingSettlement, error)
	// Mutate atomically replaces the list with fn(current) and returns the
	// list that was written.
	Mutate(ctx context.Context, fn MutateFunc) ([]domain.PendingSettlement, error)
}

// JournalRepository defines persistence for settlement lifecycle events.
type JournalRepository interface {
	Create(ctx context.Context, event *domain.SettlementEvent) error
	// CreateBatch writes all events or none.
	CreateBatch(ctx context.Context, events []*domain.SettlementEvent) error
	ListBySettlement(ctx context.Context, settlementID string) ([]domain.SettlementEvent, error)
}
