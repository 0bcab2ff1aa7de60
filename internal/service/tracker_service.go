package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"settlement-reconciler/internal/core/domain"
	"settlement-reconciler/internal/core/ports"

	"github.com/google/uuid"
	"github.com/madflojo/tasks"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const sweepTimeout = 10 * time.Second

// TrackerConfig holds the tracker's tunables.
type TrackerConfig struct {
	PollInterval   time.Duration
	SweepInterval  time.Duration
	Strategy       domain.BalanceStrategy
	PollingEnabled bool
}

// TrackerService is the consumer-facing view of pending settlements. It
// keeps an aggregated snapshot of the ledger, drives the poller and the
// TTL sweeper and sends notifications as settlements resolve.
type TrackerService struct {
	ledger    *LedgerService
	poller    *Poller
	scheduler *tasks.Scheduler
	notifier  ports.Notifier
	strategy  domain.BalanceStrategy
	sweepEach time.Duration
	now       func() time.Time
	log       zerolog.Logger

	confirmed atomic.Pointer[func()]

	mu          sync.RWMutex
	settlements []domain.PendingSettlement
	byCurrency  domain.SettlementsByCurrency
	sweepID     string
}

// NewTrackerService wires a tracker. resolver and notifier may be nil.
func NewTrackerService(
	ledger *LedgerService,
	resolver ports.SettlementResolver,
	notifier ports.Notifier,
	scheduler *tasks.Scheduler,
	cfg TrackerConfig,
	log zerolog.Logger,
) *TrackerService {
	if cfg.Strategy == "" {
		cfg.Strategy = domain.BalanceActualOnly
	}
	t := &TrackerService{
		ledger:      ledger,
		scheduler:   scheduler,
		notifier:    notifier,
		strategy:    cfg.Strategy,
		sweepEach:   cfg.SweepInterval,
		now:         time.Now,
		log:         log,
		settlements: []domain.PendingSettlement{},
		byCurrency:  domain.SettlementsByCurrency{},
	}
	t.poller = NewPoller(ledger, resolver, scheduler, cfg.PollInterval, t.publish, log)
	t.poller.OnConfirmed(t.handleConfirmed)
	if !cfg.PollingEnabled {
		t.poller.SetEnabled(false)
	}
	return t
}

// Start loads the ledger, which starts polling when settlements are
// pending, and schedules the TTL sweeper.
func (t *TrackerService) Start(ctx context.Context) error {
	if _, err := t.Refresh(ctx); err != nil {
		t.log.Warn().Err(err).Msg("tracker: initial load failed, continuing with empty view")
	}
	if t.sweepEach <= 0 {
		return nil
	}

	id, err := t.scheduler.Add(&tasks.Task{
		Interval:          t.sweepEach,
		RunSingleInstance: true,
		TaskFunc:          t.sweep,
		ErrFunc: func(err error) {
			t.log.Warn().Err(err).Msg("tracker: sweep failed")
		},
	})
	if err != nil {
		return err
	}
	t.mu.Lock()
	t.sweepID = id
	t.mu.Unlock()
	return nil
}

// Stop halts the poller and the sweeper.
func (t *TrackerService) Stop() {
	t.poller.Stop()

	t.mu.Lock()
	id := t.sweepID
	t.sweepID = ""
	t.mu.Unlock()
	if id != "" {
		t.scheduler.Del(id)
	}
}

// OnConfirmed registers the callback fired once all pending settlements
// resolve. The callback registered at fire time is the one used.
func (t *TrackerService) OnConfirmed(cb func()) {
	if cb == nil {
		t.confirmed.Store(nil)
		return
	}
	t.confirmed.Store(&cb)
}

// Refresh reloads the ledger and republishes the snapshot.
func (t *TrackerService) Refresh(ctx context.Context) (ports.Snapshot, error) {
	list, err := t.ledger.Load(ctx)
	if err != nil {
		return t.Snapshot(), err
	}
	t.publish(list)
	t.poller.Observe(list)
	return t.Snapshot(), nil
}

// AddSettlement records a new pending settlement.
func (t *TrackerService) AddSettlement(ctx context.Context, draft domain.SettlementDraft) (*domain.PendingSettlement, error) {
	s, err := t.ledger.Add(ctx, draft)
	if err != nil {
		return nil, err
	}
	t.reload(ctx)
	return s, nil
}

// RemoveSettlement deletes a settlement. With notify set, a confirmation is
// sent for it. Removing an unknown id succeeds without notifying. The
// result reports whether a confirmation was handed to the notifier.
func (t *TrackerService) RemoveSettlement(ctx context.Context, id string, notify bool) (bool, error) {
	removed, err := t.ledger.Remove(ctx, id)
	if err != nil {
		return false, err
	}
	t.reload(ctx)

	if removed == nil || !notify {
		return false, nil
	}
	return t.notify(ctx, domain.NewConfirmedNotification(*removed, t.now())), nil
}

// ClearForCurrency removes every settlement touching code and returns how
// many were removed.
func (t *TrackerService) ClearForCurrency(ctx context.Context, code string) (int, error) {
	removed, err := t.ledger.ClearForCurrency(ctx, code)
	if err != nil {
		return 0, err
	}
	if len(removed) > 0 {
		t.reload(ctx)
	}
	return len(removed), nil
}

// HasPendingForCurrency reports whether any settlement in the current
// snapshot touches code. Codes compare case-insensitively.
func (t *TrackerService) HasPendingForCurrency(code string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.byCurrency.HasPending(code)
}

// GetOptimisticBalance applies the configured balance strategy to balance.
func (t *TrackerService) GetOptimisticBalance(balance decimal.Decimal, code string) decimal.Decimal {
	t.mu.RLock()
	summary, ok := t.byCurrency[domain.NormalizeCurrency(code)]
	t.mu.RUnlock()
	if !ok {
		return balance
	}
	return t.strategy.Apply(balance, summary)
}

// SetPollingEnabled turns background reconciliation on or off.
func (t *TrackerService) SetPollingEnabled(enabled bool) {
	t.poller.SetEnabled(enabled)
}

// Snapshot returns a copy of the current view.
func (t *TrackerService) Snapshot() ports.Snapshot {
	polling := t.poller.State() == PollerPolling

	t.mu.RLock()
	defer t.mu.RUnlock()

	settlements := make([]domain.PendingSettlement, len(t.settlements))
	copy(settlements, t.settlements)
	byCurrency := make(domain.SettlementsByCurrency, len(t.byCurrency))
	for k, v := range t.byCurrency {
		byCurrency[k] = v
	}
	return ports.Snapshot{
		Settlements: settlements,
		ByCurrency:  byCurrency,
		Polling:     polling,
	}
}

// publish replaces the snapshot. It is also the poller's update hook, so it
// must not call back into the poller.
func (t *TrackerService) publish(list []domain.PendingSettlement) {
	byCurrency := domain.Aggregate(list)
	if list == nil {
		list = []domain.PendingSettlement{}
	}

	t.mu.Lock()
	t.settlements = list
	t.byCurrency = byCurrency
	t.mu.Unlock()
}

// reload refreshes the snapshot after a successful write. A failed read
// keeps the previous snapshot; the next poll or refresh corrects it.
func (t *TrackerService) reload(ctx context.Context) {
	if _, err := t.Refresh(ctx); err != nil {
		t.log.Warn().Err(err).Msg("tracker: reload after write failed")
	}
}

func (t *TrackerService) handleConfirmed() {
	t.notify(context.Background(), domain.NewClearedNotification(uuid.NewString(), t.now()))
	if cb := t.confirmed.Load(); cb != nil {
		(*cb)()
	}
}

func (t *TrackerService) notify(ctx context.Context, n domain.Notification) bool {
	if t.notifier == nil {
		return false
	}
	if err := t.notifier.Notify(ctx, n); err != nil {
		t.log.Warn().Err(err).Str("notification_id", n.ID).Msg("tracker: notification failed")
		return false
	}
	return true
}

func (t *TrackerService) sweep() error {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	n, err := t.ledger.Sweep(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		t.reload(ctx)
	}
	return nil
}
