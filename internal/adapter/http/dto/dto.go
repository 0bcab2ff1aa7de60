package dto

import (
	"settlement-reconciler/internal/core/domain"

	"github.com/shopspring/decimal"
)

// AddSettlementRequest is the request body for recording a pending settlement.
type AddSettlementRequest struct {
	SellCurrency      string           `json:"sell_currency" binding:"required,currency"`
	BuyCurrency       string           `json:"buy_currency" binding:"required,currency"`
	SellAmount        decimal.Decimal  `json:"sell_amount"`
	BuyAmount         decimal.Decimal  `json:"buy_amount"`
	ConversionID      string           `json:"conversion_id,omitempty" binding:"omitempty,max=100,safe_id"`
	SellBalanceBefore *decimal.Decimal `json:"sell_balance_before,omitempty"`
	BuyBalanceBefore  *decimal.Decimal `json:"buy_balance_before,omitempty"`
}

// ToDraft converts the request into a settlement draft.
func (r AddSettlementRequest) ToDraft() domain.SettlementDraft {
	return domain.SettlementDraft{
		SellCurrency:      r.SellCurrency,
		BuyCurrency:       r.BuyCurrency,
		SellAmount:        r.SellAmount,
		BuyAmount:         r.BuyAmount,
		ConversionID:      r.ConversionID,
		SellBalanceBefore: r.SellBalanceBefore,
		BuyBalanceBefore:  r.BuyBalanceBefore,
	}
}

// ConversionRequest is the request body for a currency conversion.
type ConversionRequest struct {
	SellCurrency string          `json:"sell_currency" binding:"required,currency"`
	BuyCurrency  string          `json:"buy_currency" binding:"required,currency"`
	SellAmount   decimal.Decimal `json:"sell_amount"`
}

// ToDomain converts the request into a domain conversion request.
func (r ConversionRequest) ToDomain() domain.ConversionRequest {
	return domain.ConversionRequest{
		SellCurrency: r.SellCurrency,
		BuyCurrency:  r.BuyCurrency,
		SellAmount:   r.SellAmount,
	}
}

// PollingRequest is the request body for toggling background polling.
type PollingRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// PollingResponse reports the polling switch after an update.
type PollingResponse struct {
	Enabled bool `json:"enabled"`
}

// RemoveSettlementResponse is returned after a settlement removal.
type RemoveSettlementResponse struct {
	ID       string `json:"id"`
	Notified bool   `json:"notified"`
}

// ClearCurrencyResponse reports how many settlements were cleared.
type ClearCurrencyResponse struct {
	Currency string `json:"currency"`
	Removed  int    `json:"removed"`
}

// PendingResponse reports whether a currency has settlements in flight.
type PendingResponse struct {
	Currency   string `json:"currency"`
	HasPending bool   `json:"has_pending"`
}

// BalanceResponse is the displayed balance for a currency.
type BalanceResponse struct {
	Currency   string          `json:"currency"`
	Balance    decimal.Decimal `json:"balance"`
	Display    decimal.Decimal `json:"display_balance"`
	HasPending bool            `json:"has_pending"`
}
