package ports

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"settlement-reconciler/internal/core/domain"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=services.go -destination=mocks/mock_services.go -package=mocks

// --- Infrastructure Ports ---

// HealthChecker reports whether one backing store is usable.
type HealthChecker interface {
	Ping(ctx context.Context) error // nil when healthy
	Name() string                   // Dependency label in /health output
}

// ConnectivityChecker reports the current network state.
type ConnectivityChecker interface {
	Check(ctx context.Context) (domain.Connectivity, error)
}

// HTTPClient abstracts the transport used for outbound calls.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// BackendRequest is one outbound call to the wallet backend.
type BackendRequest struct {
	Operation string // Label for logs and fallback messages
	Method    string
	URL       string
	Body      any // JSON-encoded when non-nil
	Header    http.Header
	Timeout   time.Duration // Zero uses the guard default
}

// BackendGuard executes backend calls and returns the validated JSON
// payload. Every failure is an *apperror.AppError.
type BackendGuard interface {
	Execute(ctx context.Context, req BackendRequest) (json.RawMessage, error)
}

// ReplayCache stores conversion responses keyed by idempotency key.
type ReplayCache interface {
	Get(ctx context.Context, key string) ([]byte, error) // Returns cached response JSON or nil
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// NotificationClaims guarantees each notification id is sent at most once.
type NotificationClaims interface {
	// Claim atomically records id. Returns true if this caller owns the id,
	// false if it was already claimed.
	Claim(ctx context.Context, id string, ttl time.Duration) (bool, error)
}

// Notifier delivers notifications on the side channel.
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification) error
}

// --- Service Ports (Business Logic) ---

// SettlementResolver asks the backend which settlements have been applied.
type SettlementResolver interface {
	// Resolve returns the ids among settlements that the backend reports as
	// resolved. Settlements without a conversion id are never resolved here.
	Resolve(ctx context.Context, settlements []domain.PendingSettlement) ([]string, error)
}

// Journal records settlement lifecycle events. Recording never blocks or fails
// the caller.
type Journal interface {
	Record(ctx context.Context, kind domain.SettlementEventKind, settlements ...domain.PendingSettlement)
}

// Snapshot is the tracker's published view of the ledger.
type Snapshot struct {
	Settlements []domain.PendingSettlement   `json:"settlements"`
	ByCurrency  domain.SettlementsByCurrency `json:"by_currency"`
	Polling     bool                         `json:"polling"`
}

// SettlementTracker is the consumer-facing settlement contract.
type SettlementTracker interface {
	Refresh(ctx context.Context) (Snapshot, error)
	AddSettlement(ctx context.Context, draft domain.SettlementDraft) (*domain.PendingSettlement, error)
	RemoveSettlement(ctx context.Context, id string, notify bool) (bool, error)
	ClearForCurrency(ctx context.Context, code string) (int, error)
	HasPendingForCurrency(code string) bool
	GetOptimisticBalance(balance decimal.Decimal, code string) decimal.Decimal
	SetPollingEnabled(enabled bool)
	Snapshot() Snapshot
}

// ConversionService performs currency conversions.
type ConversionService interface {
	Convert(ctx context.Context, req domain.ConversionRequest, idempotencyKey string) (*ConversionResult, error)
}

// ConversionResult is a conversion plus the settlement recorded for it, if any.
type ConversionResult struct {
	Conversion *domain.Conversion        `json:"conversion"`
	Settlement *domain.PendingSettlement `json:"settlement,omitempty"`
}
