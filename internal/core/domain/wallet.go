package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// BalanceStrategy decides how a wallet balance is presented while
// settlements for its currency are in flight.
type BalanceStrategy string

const (
	// BalanceActualOnly returns the backend balance untouched.
	BalanceActualOnly BalanceStrategy = "actual_only"
	// BalanceOptimistic anticipates pending settlements until the backend applies them.
	BalanceOptimistic BalanceStrategy = "optimistic"
)

// ParseBalanceStrategy validates a configured strategy name.
func ParseBalanceStrategy(s string) (BalanceStrategy, error) {
	switch BalanceStrategy(s) {
	case BalanceActualOnly, BalanceOptimistic:
		return BalanceStrategy(s), nil
	default:
		return "", fmt.Errorf("unknown balance strategy %q", s)
	}
}

// Apply returns the balance to display for a currency given its summary.
//
// Under BalanceOptimistic the pending amounts are applied to balance unless a
// baseline exists and balance already differs from it, which means the
// backend has applied the settlement and balance is authoritative.
func (s BalanceStrategy) Apply(balance decimal.Decimal, summary CurrencySummary) decimal.Decimal {
	if s != BalanceOptimistic || !summary.HasPending {
		return balance
	}
	if summary.SellBalanceBefore != nil && !balance.Equal(*summary.SellBalanceBefore) {
		return balance
	}
	if summary.BuyBalanceBefore != nil && !balance.Equal(*summary.BuyBalanceBefore) {
		return balance
	}
	return balance.Sub(summary.PendingDebit).Add(summary.PendingCredit)
}
