package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ConversionStatus is the backend's view of a conversion.
type ConversionStatus string

const (
	ConversionStatusPending   ConversionStatus = "pending"
	ConversionStatusCompleted ConversionStatus = "completed"
	ConversionStatusSettled   ConversionStatus = "settled"
	ConversionStatusFailed    ConversionStatus = "failed"
	ConversionStatusReversed  ConversionStatus = "reversed"
	ConversionStatusCancelled ConversionStatus = "cancelled"
)

// IsResolved reports whether the backend is done with the conversion, either
// because it was applied or because it will never be.
func (s ConversionStatus) IsResolved() bool {
	switch ConversionStatus(strings.ToLower(string(s))) {
	case ConversionStatusCompleted, ConversionStatusSettled,
		ConversionStatusFailed, ConversionStatusReversed, ConversionStatusCancelled:
		return true
	}
	return false
}

// ConversionRequest is the input of a currency conversion.
type ConversionRequest struct {
	SellCurrency string          `json:"sell_currency"`
	BuyCurrency  string          `json:"buy_currency"`
	SellAmount   decimal.Decimal `json:"sell_amount"`
}

// Conversion is the backend's answer to a conversion. Pending marks a
// conversion whose wallet movements settle asynchronously.
type Conversion struct {
	ID                string           `json:"id"`
	Status            ConversionStatus `json:"status"`
	Pending           bool             `json:"pending"`
	SellCurrency      string           `json:"sell_currency"`
	BuyCurrency       string           `json:"buy_currency"`
	SellAmount        decimal.Decimal  `json:"sell_amount"`
	BuyAmount         decimal.Decimal  `json:"buy_amount"`
	SellBalanceBefore *decimal.Decimal `json:"sell_balance_before,omitempty"`
	BuyBalanceBefore  *decimal.Decimal `json:"buy_balance_before,omitempty"`
}

// IsPending reports whether a settlement must be tracked for c.
func (c *Conversion) IsPending() bool {
	return c.Pending || ConversionStatus(strings.ToLower(string(c.Status))) == ConversionStatusPending
}

// SettlementDraft derives the settlement to track for a pending conversion.
func (c *Conversion) SettlementDraft() SettlementDraft {
	return SettlementDraft{
		SellCurrency:      c.SellCurrency,
		BuyCurrency:       c.BuyCurrency,
		SellAmount:        c.SellAmount,
		BuyAmount:         c.BuyAmount,
		ConversionID:      c.ID,
		SellBalanceBefore: c.SellBalanceBefore,
		BuyBalanceBefore:  c.BuyBalanceBefore,
	}
}
