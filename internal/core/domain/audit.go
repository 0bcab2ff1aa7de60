package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SettlementEventKind is a lifecycle transition recorded in the journal.
type SettlementEventKind string

const (
	SettlementEventAdded     SettlementEventKind = "ADDED"
	SettlementEventRemoved   SettlementEventKind = "REMOVED"
	SettlementEventConfirmed SettlementEventKind = "CONFIRMED"
	SettlementEventCleared   SettlementEventKind = "CLEARED"
	SettlementEventExpired   SettlementEventKind = "EXPIRED"
	SettlementEventResolved  SettlementEventKind = "RESOLVED"
)

// SettlementEvent is one append-only journal row.
type SettlementEvent struct {
	ID           uuid.UUID           `json:"id"`
	SettlementID string              `json:"settlement_id"`
	Kind         SettlementEventKind `json:"kind"`
	SellCurrency string              `json:"sell_currency"`
	BuyCurrency  string              `json:"buy_currency"`
	SellAmount   decimal.Decimal     `json:"sell_amount"`
	BuyAmount    decimal.Decimal     `json:"buy_amount"`
	ConversionID string              `json:"conversion_id,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
}

// NewSettlementEvent builds a journal row for s.
func NewSettlementEvent(kind SettlementEventKind, s PendingSettlement, now time.Time) *SettlementEvent {
	return &SettlementEvent{
		ID:           uuid.New(),
		SettlementID: s.ID,
		Kind:         kind,
		SellCurrency: s.SellCurrency,
		BuyCurrency:  s.BuyCurrency,
		SellAmount:   s.SellAmount,
		BuyAmount:    s.BuyAmount,
		ConversionID: s.ConversionID,
		CreatedAt:    now.UTC(),
	}
}
