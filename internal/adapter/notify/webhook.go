// Package notify delivers settlement notifications as signed webhooks.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"settlement-reconciler/internal/core/domain"
	"settlement-reconciler/internal/core/ports"

	"github.com/rs/zerolog"
)

// SignatureHeader carries the hex HMAC-SHA256 of the request body.
const SignatureHeader = "X-Signature"

// defaultRetryIntervals are the waits between delivery attempts.
var defaultRetryIntervals = []time.Duration{
	5 * time.Second,
	30 * time.Second,
	2 * time.Minute,
}

// WebhookNotifier implements ports.Notifier. Each notification id is claimed
// once, then delivered in the background with fixed-interval retries. With no
// URL configured notifications are only logged.
type WebhookNotifier struct {
	url            string
	secret         string
	claims         ports.NotificationClaims
	dedupTTL       time.Duration
	httpClient     ports.HTTPClient
	retryIntervals []time.Duration
	log            zerolog.Logger
	wg             sync.WaitGroup
}

// Option configures a WebhookNotifier.
type Option func(*WebhookNotifier)

// WithRetryIntervals overrides the waits between delivery attempts.
func WithRetryIntervals(intervals ...time.Duration) Option {
	return func(n *WebhookNotifier) {
		n.retryIntervals = intervals
	}
}

// NewWebhookNotifier creates a webhook notifier. claims may be nil to disable dedupe.
func NewWebhookNotifier(
	url, secret string,
	claims ports.NotificationClaims,
	dedupTTL time.Duration,
	httpClient ports.HTTPClient,
	log zerolog.Logger,
	opts ...Option,
) *WebhookNotifier {
	n := &WebhookNotifier{
		url:            url,
		secret:         secret,
		claims:         claims,
		dedupTTL:       dedupTTL,
		httpClient:     httpClient,
		retryIntervals: defaultRetryIntervals,
		log:            log,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Notify claims n.ID and schedules delivery. A claim store failure does not
// block delivery; a duplicate id is dropped silently.
func (w *WebhookNotifier) Notify(ctx context.Context, n domain.Notification) error {
	if w.claims != nil {
		owned, err := w.claims.Claim(ctx, n.ID, w.dedupTTL)
		if err != nil {
			w.log.Warn().Err(err).Str("notification_id", n.ID).Msg("notify: claim failed, delivering anyway")
		} else if !owned {
			w.log.Debug().Str("notification_id", n.ID).Msg("notify: duplicate suppressed")
			return nil
		}
	}

	if w.url == "" {
		w.log.Info().
			Str("notification_id", n.ID).
			Str("event", string(n.Event)).
			Str("settlement_id", n.SettlementID).
			Msg("notify: no webhook configured, logged only")
		return nil
	}

	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encoding notification: %w", err)
	}
	signature := Sign(w.secret, body)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.deliverWithRetries(body, signature, n)
	}()
	return nil
}

// Wait blocks until every scheduled delivery finished or ctx ends.
func (w *WebhookNotifier) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *WebhookNotifier) deliverWithRetries(body []byte, signature string, n domain.Notification) {
	for attempt := 0; attempt <= len(w.retryIntervals); attempt++ {
		if attempt > 0 {
			time.Sleep(w.retryIntervals[attempt-1])
		}

		req, err := http.NewRequest(http.MethodPost, w.url, bytes.NewReader(body))
		if err != nil {
			w.log.Error().Err(err).Str("notification_id", n.ID).Msg("notify: invalid webhook request")
			return
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(SignatureHeader, signature)

		resp, err := w.httpClient.Do(req)
		if err != nil {
			w.log.Warn().Err(err).Str("notification_id", n.ID).Int("attempt", attempt+1).Msg("notify: delivery failed")
			continue
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			w.log.Info().Str("notification_id", n.ID).Str("event", string(n.Event)).Int("attempt", attempt+1).Msg("notify: delivered")
			return
		}

		w.log.Warn().Str("notification_id", n.ID).Int("attempt", attempt+1).Int("status", resp.StatusCode).Msg("notify: non-2xx response, retrying")
	}

	w.log.Error().Str("notification_id", n.ID).Msg("notify: all retry attempts exhausted")
}
