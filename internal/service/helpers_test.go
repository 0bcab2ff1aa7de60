package service

import (
	"io"
	"sync"
	"time"

	"settlement-reconciler/internal/core/domain"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

func newTestLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// fakeClock is a settable time source shared by the services under test.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func usdToNGN(sell, buy string) domain.SettlementDraft {
	return domain.SettlementDraft{
		SellCurrency: "USD",
		BuyCurrency:  "NGN",
		SellAmount:   dec(sell),
		BuyAmount:    dec(buy),
	}
}
