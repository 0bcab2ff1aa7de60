package domain

import "time"

// NotificationEvent names a notification sent on the side channel.
type NotificationEvent string

const (
	NotificationSettlementConfirmed NotificationEvent = "SETTLEMENT_CONFIRMED"
	NotificationSettlementsCleared  NotificationEvent = "SETTLEMENTS_CLEARED"
)

// Notification is the signed webhook payload.
type Notification struct {
	ID           string            `json:"id"` // Dedupe key
	Event        NotificationEvent `json:"event"`
	SettlementID string            `json:"settlement_id,omitempty"`
	SellCurrency string            `json:"sell_currency,omitempty"`
	BuyCurrency  string            `json:"buy_currency,omitempty"`
	Timestamp    time.Time         `json:"timestamp"`
}

// NewConfirmedNotification announces that one settlement was confirmed.
func NewConfirmedNotification(s PendingSettlement, now time.Time) Notification {
	return Notification{
		ID:           "confirmed:" + s.ID,
		Event:        NotificationSettlementConfirmed,
		SettlementID: s.ID,
		SellCurrency: s.SellCurrency,
		BuyCurrency:  s.BuyCurrency,
		Timestamp:    now.UTC(),
	}
}

// NewClearedNotification announces that every pending settlement resolved.
// session identifies the polling session so the event is sent once per session.
func NewClearedNotification(session string, now time.Time) Notification {
	return Notification{
		ID:        "cleared:" + session,
		Event:     NotificationSettlementsCleared,
		Timestamp: now.UTC(),
	}
}
