package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"settlement-reconciler/internal/core/domain"
	"settlement-reconciler/internal/core/ports"

	"github.com/madflojo/tasks"
	"github.com/rs/zerolog"
)

// PollerState is the reconciliation poller's state.
type PollerState string

const (
	PollerIdle    PollerState = "IDLE"
	PollerPolling PollerState = "POLLING"
)

const defaultTickTimeout = 30 * time.Second

// settlementSource is the part of the ledger the poller reads and prunes.
type settlementSource interface {
	Load(ctx context.Context) ([]domain.PendingSettlement, error)
	RemoveMany(ctx context.Context, ids []string, kind domain.SettlementEventKind) ([]domain.PendingSettlement, error)
}

// pollSession is one Idle→Polling→Idle cycle. A tick only applies its
// results while its session is still the current one.
type pollSession struct {
	gen    uint64
	taskID string
	ctx    context.Context
	cancel context.CancelFunc
}

// Poller re-reads the ledger on an interval while settlements are pending
// and fires the confirmation callback once the ledger drains.
type Poller struct {
	source      settlementSource
	resolver    ports.SettlementResolver
	scheduler   *tasks.Scheduler
	interval    time.Duration
	tickTimeout time.Duration
	publish     func([]domain.PendingSettlement)
	log         zerolog.Logger

	confirmed atomic.Pointer[func()]

	// commit is held while a tick writes to the ledger. Disabling waits
	// on it so no write from an ended session lands afterwards.
	commit sync.Mutex

	mu      sync.Mutex
	enabled bool
	gen     uint64
	session *pollSession
	last    []domain.PendingSettlement
}

// NewPoller creates an enabled, idle poller. resolver may be nil, in which
// case resolution is observed only through the persisted list. publish
// receives every list that differs from the previous one by id.
func NewPoller(
	source settlementSource,
	resolver ports.SettlementResolver,
	scheduler *tasks.Scheduler,
	interval time.Duration,
	publish func([]domain.PendingSettlement),
	log zerolog.Logger,
) *Poller {
	if publish == nil {
		publish = func([]domain.PendingSettlement) {}
	}
	return &Poller{
		source:      source,
		resolver:    resolver,
		scheduler:   scheduler,
		interval:    interval,
		tickTimeout: defaultTickTimeout,
		publish:     publish,
		log:         log,
		enabled:     true,
	}
}

// OnConfirmed registers the callback fired when every pending settlement
// has been resolved. The callback in place at fire time is the one used.
func (p *Poller) OnConfirmed(cb func()) {
	if cb == nil {
		p.confirmed.Store(nil)
		return
	}
	p.confirmed.Store(&cb)
}

// State reports whether a polling session is active.
func (p *Poller) State() PollerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.session != nil {
		return PollerPolling
	}
	return PollerIdle
}

// Enabled reports whether polling is allowed to start.
func (p *Poller) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

// Observe tells the poller the ledger now holds settlements. It starts a
// session when the list becomes non-empty and ends one when the list was
// emptied by other means. Ending a session here never fires the
// confirmation callback: a ledger drained by another writer and observed
// through Refresh before the next tick goes back to idle silently.
func (p *Poller) Observe(settlements []domain.PendingSettlement) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.last = settlements
	switch {
	case len(settlements) == 0:
		p.stopLocked()
	case p.enabled && p.session == nil:
		p.startLocked()
	}
}

// SetEnabled turns polling on or off. Disabling cancels the timer and any
// tick in flight; its results are discarded. It returns once no ledger
// write from the ended session can still happen.
func (p *Poller) SetEnabled(enabled bool) {
	p.mu.Lock()
	p.enabled = enabled
	if !enabled {
		p.stopLocked()
		p.mu.Unlock()
		p.awaitCommit()
		return
	}
	if len(p.last) > 0 && p.session == nil {
		p.startLocked()
	}
	p.mu.Unlock()
}

// Stop ends the current session, if any. Polling resumes on the next
// Observe when still enabled.
func (p *Poller) Stop() {
	p.mu.Lock()
	p.stopLocked()
	p.mu.Unlock()
	p.awaitCommit()
}

func (p *Poller) awaitCommit() {
	p.commit.Lock()
	p.commit.Unlock()
}

func (p *Poller) startLocked() {
	p.gen++
	ctx, cancel := context.WithCancel(context.Background())
	s := &pollSession{gen: p.gen, ctx: ctx, cancel: cancel}

	id, err := p.scheduler.Add(&tasks.Task{
		Interval:          p.interval,
		RunSingleInstance: true,
		TaskFunc: func() error {
			p.tick(s)
			return nil
		},
	})
	if err != nil {
		cancel()
		p.log.Error().Err(err).Msg("poller: schedule failed")
		return
	}
	s.taskID = id
	p.session = s
	p.log.Debug().Uint64("generation", s.gen).Int("pending", len(p.last)).Msg("poller: polling started")
}

func (p *Poller) stopLocked() {
	if p.session == nil {
		return
	}
	p.scheduler.Del(p.session.taskID)
	p.session.cancel()
	p.log.Debug().Uint64("generation", p.session.gen).Msg("poller: polling stopped")
	p.session = nil
}

func (p *Poller) current(s *pollSession) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.session == s
}

// tick runs one reconciliation pass for session s. The session task is
// single-instance, so ticks of one session never overlap. A failed read
// leaves state untouched until the next tick.
func (p *Poller) tick(s *pollSession) {
	if !p.current(s) {
		return
	}

	ctx, cancel := context.WithTimeout(s.ctx, p.tickTimeout)
	defer cancel()

	p.resolve(ctx, s)

	list, err := p.source.Load(ctx)
	if err != nil {
		p.log.Warn().Err(err).Msg("poller: reload failed, skipping tick")
		return
	}

	if p.apply(s, list) {
		p.log.Info().Uint64("generation", s.gen).Msg("poller: all settlements resolved")
		if cb := p.confirmed.Load(); cb != nil {
			(*cb)()
		}
	}
}

// resolve asks the backend which pending settlements are done and removes
// them, unless s ended while the backend was answering.
func (p *Poller) resolve(ctx context.Context, s *pollSession) {
	if p.resolver == nil {
		return
	}
	p.mu.Lock()
	pending := p.last
	p.mu.Unlock()
	if len(pending) == 0 {
		return
	}

	ids, err := p.resolver.Resolve(ctx, pending)
	if err != nil {
		p.log.Warn().Err(err).Msg("poller: resolve failed")
		return
	}
	if len(ids) == 0 {
		return
	}

	p.commit.Lock()
	defer p.commit.Unlock()
	if !p.current(s) {
		p.log.Debug().Uint64("generation", s.gen).Int("resolved", len(ids)).Msg("poller: session ended, dropping resolved ids")
		return
	}
	if _, err := p.source.RemoveMany(ctx, ids, domain.SettlementEventResolved); err != nil {
		p.log.Warn().Err(err).Msg("poller: removing resolved settlements failed")
	}
}

// apply publishes list if s is still current and the ids changed. It
// reports whether the ledger drained, which ends the session.
func (p *Poller) apply(s *pollSession, list []domain.PendingSettlement) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.session != s {
		p.log.Debug().Uint64("generation", s.gen).Msg("poller: discarding stale tick")
		return false
	}
	if len(list) == 0 {
		p.stopLocked()
		p.last = list
		p.publish(list)
		return true
	}
	if domain.SameIDs(p.last, list) {
		return false
	}
	p.last = list
	p.publish(list)
	return false
}
