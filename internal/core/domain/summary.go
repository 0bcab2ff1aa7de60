package domain

import "github.com/shopspring/decimal"

// CurrencySummary is the derived, per-currency view of money in flight.
type CurrencySummary struct {
	Currency          string           `json:"currency"`
	PendingDebit      decimal.Decimal  `json:"pending_debit"`
	PendingCredit     decimal.Decimal  `json:"pending_credit"`
	HasPending        bool             `json:"has_pending"`
	SellBalanceBefore *decimal.Decimal `json:"sell_balance_before,omitempty"`
	BuyBalanceBefore  *decimal.Decimal `json:"buy_balance_before,omitempty"`
}

// SettlementsByCurrency maps a normalized currency code to its summary.
type SettlementsByCurrency map[string]CurrencySummary

// Aggregate reduces settlements into per-currency pending debits and credits.
// The sell leg debits SellCurrency and the buy leg credits BuyCurrency. When
// several settlements carry a baseline for the same currency the last one in
// list order wins. Aggregate never fails and never mutates its input.
func Aggregate(settlements []PendingSettlement) SettlementsByCurrency {
	out := make(SettlementsByCurrency)
	for _, s := range settlements {
		sell := entry(out, NormalizeCurrency(s.SellCurrency))
		sell.PendingDebit = sell.PendingDebit.Add(s.SellAmount)
		sell.HasPending = true
		if s.SellBalanceBefore != nil {
			v := *s.SellBalanceBefore
			sell.SellBalanceBefore = &v
		}
		out[sell.Currency] = sell

		buy := entry(out, NormalizeCurrency(s.BuyCurrency))
		buy.PendingCredit = buy.PendingCredit.Add(s.BuyAmount)
		buy.HasPending = true
		if s.BuyBalanceBefore != nil {
			v := *s.BuyBalanceBefore
			buy.BuyBalanceBefore = &v
		}
		out[buy.Currency] = buy
	}
	return out
}

func entry(m SettlementsByCurrency, code string) CurrencySummary {
	if s, ok := m[code]; ok {
		return s
	}
	return CurrencySummary{
		Currency:      code,
		PendingDebit:  decimal.Zero,
		PendingCredit: decimal.Zero,
	}
}

// HasPending reports whether code has any settlement in flight.
func (m SettlementsByCurrency) HasPending(code string) bool {
	s, ok := m[NormalizeCurrency(code)]
	return ok && s.HasPending
}
