package service

import (
	"context"
	"sync"
	"time"

	"settlement-reconciler/internal/core/domain"
	"settlement-reconciler/internal/core/ports"
	"settlement-reconciler/pkg/apperror"

	"github.com/rs/zerolog"
)

// LedgerService is the settlement ledger store. It owns every mutation of the
// persisted list: mutations are serialized in process and the repository
// makes each one atomic against other writers of the same key.
type LedgerService struct {
	repo    ports.SettlementRepository
	journal ports.Journal
	ttl     time.Duration
	now     func() time.Time
	log     zerolog.Logger

	mu sync.Mutex
}

// NewLedgerService creates a ledger over repo. journal may be nil.
func NewLedgerService(repo ports.SettlementRepository, journal ports.Journal, ttl time.Duration, log zerolog.Logger) *LedgerService {
	if journal == nil {
		journal = nopJournal{}
	}
	if ttl <= 0 {
		ttl = domain.SettlementTTL
	}
	return &LedgerService{
		repo:    repo,
		journal: journal,
		ttl:     ttl,
		now:     time.Now,
		log:     log,
	}
}

// Load returns the valid settlements, purging and re-persisting expired ones.
func (l *LedgerService) Load(ctx context.Context) ([]domain.PendingSettlement, error) {
	current, err := l.repo.List(ctx)
	if err != nil {
		l.log.Error().Err(err).Msg("ledger: load failed")
		return nil, apperror.ErrStorage(err)
	}

	valid, expired := domain.PartitionExpired(current, l.now(), l.ttl)
	if len(expired) == 0 {
		return valid, nil
	}

	written, _, err := l.purgeExpired(ctx)
	if err != nil {
		return nil, err
	}
	return written, nil
}

// Add stamps draft with an id and creation time, normalizes its currency
// codes and appends it. The returned settlement is persisted.
func (l *LedgerService) Add(ctx context.Context, draft domain.SettlementDraft) (*domain.PendingSettlement, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	settlement := domain.NewPendingSettlement(draft, l.now())

	var expired []domain.PendingSettlement
	_, err := l.mutate(ctx, func(current []domain.PendingSettlement) ([]domain.PendingSettlement, error) {
		var valid []domain.PendingSettlement
		valid, expired = domain.PartitionExpired(current, l.now(), l.ttl)
		return append(valid, settlement), nil
	})
	if err != nil {
		return nil, err
	}

	l.record(ctx, domain.SettlementEventExpired, expired)
	l.record(ctx, domain.SettlementEventAdded, []domain.PendingSettlement{settlement})
	l.log.Info().
		Str("settlement_id", settlement.ID).
		Str("sell_currency", settlement.SellCurrency).
		Str("buy_currency", settlement.BuyCurrency).
		Msg("ledger: settlement added")
	return &settlement, nil
}

// Remove deletes the settlement with id. Removing an absent id is a no-op and
// returns nil.
func (l *LedgerService) Remove(ctx context.Context, id string) (*domain.PendingSettlement, error) {
	removed, err := l.RemoveMany(ctx, []string{id}, domain.SettlementEventRemoved)
	if err != nil || len(removed) == 0 {
		return nil, err
	}
	return &removed[0], nil
}

// RemoveMany deletes every settlement whose id is in ids and journals them
// under kind.
func (l *LedgerService) RemoveMany(ctx context.Context, ids []string, kind domain.SettlementEventKind) ([]domain.PendingSettlement, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	removed, err := l.removeWhere(ctx, func(s domain.PendingSettlement) bool {
		_, ok := drop[s.ID]
		return ok
	})
	if err != nil {
		return nil, err
	}
	l.record(ctx, kind, removed)
	return removed, nil
}

// ClearForCurrency removes every settlement where either leg is code.
func (l *LedgerService) ClearForCurrency(ctx context.Context, code string) ([]domain.PendingSettlement, error) {
	code = domain.NormalizeCurrency(code)
	if code == "" {
		return nil, apperror.Validation("currency code is required")
	}
	removed, err := l.removeWhere(ctx, func(s domain.PendingSettlement) bool {
		return s.Involves(code)
	})
	if err != nil {
		return nil, err
	}
	l.record(ctx, domain.SettlementEventCleared, removed)
	if len(removed) > 0 {
		l.log.Info().Str("currency", code).Int("count", len(removed)).Msg("ledger: cleared settlements for currency")
	}
	return removed, nil
}

// Sweep purges expired settlements without being asked for the list. It
// writes only when something expired.
func (l *LedgerService) Sweep(ctx context.Context) (int, error) {
	current, err := l.repo.List(ctx)
	if err != nil {
		return 0, apperror.ErrStorage(err)
	}
	if _, expired := domain.PartitionExpired(current, l.now(), l.ttl); len(expired) == 0 {
		return 0, nil
	}
	_, expired, err := l.purgeExpired(ctx)
	if err != nil {
		return 0, err
	}
	if len(expired) > 0 {
		l.log.Info().Int("count", len(expired)).Msg("ledger: swept expired settlements")
	}
	return len(expired), nil
}

func (l *LedgerService) purgeExpired(ctx context.Context) ([]domain.PendingSettlement, []domain.PendingSettlement, error) {
	var expired []domain.PendingSettlement
	written, err := l.mutate(ctx, func(current []domain.PendingSettlement) ([]domain.PendingSettlement, error) {
		var valid []domain.PendingSettlement
		valid, expired = domain.PartitionExpired(current, l.now(), l.ttl)
		return valid, nil
	})
	if err != nil {
		return nil, nil, err
	}
	l.record(ctx, domain.SettlementEventExpired, expired)
	return written, expired, nil
}

func (l *LedgerService) removeWhere(ctx context.Context, match func(domain.PendingSettlement) bool) ([]domain.PendingSettlement, error) {
	var removed []domain.PendingSettlement
	_, err := l.mutate(ctx, func(current []domain.PendingSettlement) ([]domain.PendingSettlement, error) {
		removed = removed[:0]
		kept := make([]domain.PendingSettlement, 0, len(current))
		for _, s := range current {
			if match(s) {
				removed = append(removed, s)
				continue
			}
			kept = append(kept, s)
		}
		return kept, nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

func (l *LedgerService) record(ctx context.Context, kind domain.SettlementEventKind, settlements []domain.PendingSettlement) {
	if len(settlements) > 0 {
		l.journal.Record(ctx, kind, settlements...)
	}
}

// mutate serializes fn through the repository. Classified errors from fn pass
// through; anything else is a storage failure.
func (l *LedgerService) mutate(ctx context.Context, fn ports.MutateFunc) ([]domain.PendingSettlement, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	written, err := l.repo.Mutate(ctx, fn)
	if err != nil {
		if appErr, ok := apperror.As(err); ok {
			return nil, appErr
		}
		l.log.Error().Err(err).Msg("ledger: persist failed")
		return nil, apperror.ErrStorage(err)
	}
	return written, nil
}
