package service

import (
	"context"
	"time"

	"settlement-reconciler/internal/core/domain"
	"settlement-reconciler/internal/core/ports"

	"github.com/rs/zerolog"
)

const journalWriteTimeout = 5 * time.Second

type journalService struct {
	repo ports.JournalRepository
	log  zerolog.Logger
	now  func() time.Time
}

// NewJournalService creates a settlement journal.
// If repo is nil, events are only written to the logger.
func NewJournalService(repo ports.JournalRepository, log zerolog.Logger) ports.Journal {
	return &journalService{repo: repo, log: log, now: time.Now}
}

// Record writes one event per settlement asynchronously (fire-and-forget).
// Events of a single call are persisted together.
// The caller's context only contributes values; its cancellation does not
// abort the write.
func (s *journalService) Record(ctx context.Context, kind domain.SettlementEventKind, settlements ...domain.PendingSettlement) {
	if len(settlements) == 0 {
		return
	}
	events := make([]*domain.SettlementEvent, 0, len(settlements))
	for _, st := range settlements {
		events = append(events, domain.NewSettlementEvent(kind, st, s.now()))
	}

	go func() {
		writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), journalWriteTimeout)
		defer cancel()

		for _, ev := range events {
			s.log.Info().
				Str("kind", string(ev.Kind)).
				Str("settlement_id", ev.SettlementID).
				Str("sell_currency", ev.SellCurrency).
				Str("buy_currency", ev.BuyCurrency).
				Msg("settlement event")
		}
		if s.repo == nil {
			return
		}

		var err error
		if len(events) == 1 {
			err = s.repo.Create(writeCtx, events[0])
		} else {
			err = s.repo.CreateBatch(writeCtx, events)
		}
		if err != nil {
			s.log.Warn().Err(err).Str("kind", string(kind)).Int("events", len(events)).Msg("failed to persist settlement events")
		}
	}()
}

type nopJournal struct{}

func (nopJournal) Record(context.Context, domain.SettlementEventKind, ...domain.PendingSettlement) {}
