package domain

import (
	"strings"
	"time"

	"settlement-reconciler/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SettlementTTL is how long a pending settlement stays valid. Older entries
// are purged on every load and by the background sweeper.
const SettlementTTL = 30 * time.Minute

// PendingSettlement is a conversion the backend accepted but has not yet
// applied to the authoritative wallet balances. Entries are never mutated in
// place; they are only added and removed.
type PendingSettlement struct {
	ID                string           `json:"id"`
	SellCurrency      string           `json:"sell_currency"`
	BuyCurrency       string           `json:"buy_currency"`
	SellAmount        decimal.Decimal  `json:"sell_amount"`
	BuyAmount         decimal.Decimal  `json:"buy_amount"`
	CreatedAt         time.Time        `json:"created_at"`
	ConversionID      string           `json:"conversion_id,omitempty"`
	SellBalanceBefore *decimal.Decimal `json:"sell_balance_before,omitempty"` // Baseline captured at creation
	BuyBalanceBefore  *decimal.Decimal `json:"buy_balance_before,omitempty"`
}

// SettlementDraft is the caller-supplied part of a settlement; the store
// assigns ID and CreatedAt.
type SettlementDraft struct {
	SellCurrency      string
	BuyCurrency       string
	SellAmount        decimal.Decimal
	BuyAmount         decimal.Decimal
	ConversionID      string
	SellBalanceBefore *decimal.Decimal
	BuyBalanceBefore  *decimal.Decimal
}

// NormalizeCurrency returns the canonical (trimmed, upper-case) currency code.
func NormalizeCurrency(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Validate rejects drafts that would violate the settlement invariants.
func (d SettlementDraft) Validate() error {
	if NormalizeCurrency(d.SellCurrency) == "" || NormalizeCurrency(d.BuyCurrency) == "" {
		return apperror.Validation("sell_currency and buy_currency are required")
	}
	if d.SellAmount.IsNegative() || d.BuyAmount.IsNegative() {
		return apperror.Validation("settlement amounts must not be negative")
	}
	return nil
}

// NewPendingSettlement stamps a validated draft with a fresh id and creation time.
func NewPendingSettlement(d SettlementDraft, now time.Time) PendingSettlement {
	return PendingSettlement{
		ID:                uuid.NewString(),
		SellCurrency:      NormalizeCurrency(d.SellCurrency),
		BuyCurrency:       NormalizeCurrency(d.BuyCurrency),
		SellAmount:        d.SellAmount,
		BuyAmount:         d.BuyAmount,
		CreatedAt:         now.UTC(),
		ConversionID:      d.ConversionID,
		SellBalanceBefore: d.SellBalanceBefore,
		BuyBalanceBefore:  d.BuyBalanceBefore,
	}
}

// IsExpired reports whether the settlement is older than ttl at now.
func (s PendingSettlement) IsExpired(now time.Time, ttl time.Duration) bool {
	return now.Sub(s.CreatedAt) > ttl
}

// Involves reports whether either leg of the settlement is in currency code.
func (s PendingSettlement) Involves(code string) bool {
	code = NormalizeCurrency(code)
	return NormalizeCurrency(s.SellCurrency) == code || NormalizeCurrency(s.BuyCurrency) == code
}

// PartitionExpired splits settlements into those still valid at now and those past ttl.
func PartitionExpired(settlements []PendingSettlement, now time.Time, ttl time.Duration) (valid, expired []PendingSettlement) {
	valid = make([]PendingSettlement, 0, len(settlements))
	for _, s := range settlements {
		if s.IsExpired(now, ttl) {
			expired = append(expired, s)
			continue
		}
		valid = append(valid, s)
	}
	return valid, expired
}

// SameIDs reports whether a and b hold exactly the same set of settlement ids.
func SameIDs(a, b []PendingSettlement) bool {
	if len(a) != len(b) {
		return false
	}
	ids := make(map[string]struct{}, len(a))
	for _, s := range a {
		ids[s.ID] = struct{}{}
	}
	for _, s := range b {
		if _, ok := ids[s.ID]; !ok {
			return false
		}
	}
	return true
}
