// Package guard wraps every outbound call to the wallet backend with a
// connectivity check, a bounded timeout, strict response parsing and a
// classified error for each way the call can fail.
package guard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"settlement-reconciler/config"
	"settlement-reconciler/internal/core/domain"
	"settlement-reconciler/internal/core/ports"
	"settlement-reconciler/pkg/apperror"
	"settlement-reconciler/pkg/retrier"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
)

const defaultTimeout = 15 * time.Second

var (
	errRequestTimeout = errors.New("request bound elapsed")
	errServerStatus   = errors.New("upstream 5xx")
)

// Guard executes backend calls. It implements ports.BackendGuard.
type Guard struct {
	client       ports.HTTPClient
	connectivity ports.ConnectivityChecker
	breaker      *gobreaker.CircuitBreaker
	retrier      *retrier.Retrier
	timeout      time.Duration
	log          zerolog.Logger
}

// New creates a guard over client. A nil checker treats the host as online.
func New(cfg config.GuardConfig, client ports.HTTPClient, checker ports.ConnectivityChecker, log zerolog.Logger) *Guard {
	if client == nil {
		client = http.DefaultClient
	}
	g := &Guard{
		client:       client,
		connectivity: checker,
		timeout:      cfg.Timeout,
		log:          log,
	}
	if g.timeout <= 0 {
		g.timeout = defaultTimeout
	}

	if cfg.Breaker.Enabled {
		threshold := cfg.Breaker.ConsecutiveFailures
		if threshold == 0 {
			threshold = 5
		}
		g.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "wallet-backend",
			MaxRequests: 1,
			Timeout:     cfg.Breaker.OpenTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= threshold
			},
			IsSuccessful: breakerSuccess,
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("guard: circuit breaker state changed")
			},
		})
	}

	if cfg.MaxRetries > 0 {
		g.retrier = retrier.New(
			retrier.WithMaxRetries(cfg.MaxRetries),
			retrier.WithRetryIf(func(err error) bool {
				return apperror.IsRetryable(err) && !apperror.HasCode(err, apperror.CodeCircuitOpen)
			}),
			retrier.WithOnRetry(func(attempt int, err error) {
				log.Warn().Err(err).Int("attempt", attempt).Msg("guard: retrying backend call")
			}),
		)
	}
	return g
}

// breakerSuccess counts caller cancellations as neutral. Transport failures,
// timeouts and 5xx responses trip the breaker.
func breakerSuccess(err error) bool {
	if err == nil {
		return true
	}
	return errors.Is(err, context.Canceled) && !apperror.HasCode(err, apperror.CodeRequestTimeout)
}

// EnsureConnected fails fast when the host is offline or the internet is
// known to be unreachable. Unknown reachability and probe failures pass.
func (g *Guard) EnsureConnected(ctx context.Context) error {
	if g.connectivity == nil {
		return nil
	}
	state, err := g.connectivity.Check(ctx)
	if err != nil {
		g.log.Debug().Err(err).Msg("guard: connectivity probe failed, assuming reachable")
		return nil
	}
	if !state.Connected {
		return apperror.ErrNetworkDisconnected()
	}
	if state.Reachability == domain.ReachabilityUnreachable {
		return apperror.ErrInternetUnreachable()
	}
	return nil
}

// BoundedRequest checks connectivity and sends req. The timeout covers the
// whole exchange: the returned body stays bounded until it is closed, and
// callers must close it.
func (g *Guard) BoundedRequest(ctx context.Context, req ports.BackendRequest) (*http.Response, error) {
	if err := g.EnsureConnected(ctx); err != nil {
		return nil, err
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = g.timeout
	}
	reqCtx, cancel := context.WithCancelCause(ctx)
	timer := time.AfterFunc(timeout, func() { cancel(errRequestTimeout) })
	release := sync.OnceFunc(func() {
		timer.Stop()
		cancel(nil)
	})

	httpReq, err := newHTTPRequest(reqCtx, req)
	if err != nil {
		release()
		return nil, apperror.ErrFetchFailed(err)
	}

	resp, err := g.roundTrip(httpReq)
	if err != nil {
		cause := context.Cause(reqCtx)
		release()
		if _, ok := apperror.As(err); ok {
			return nil, err
		}
		return nil, classifyTransport(err, cause)
	}

	resp.Body = &boundedBody{ReadCloser: resp.Body, ctx: reqCtx, release: release}
	return resp, nil
}

func (g *Guard) roundTrip(req *http.Request) (*http.Response, error) {
	if g.breaker == nil {
		return g.client.Do(req)
	}

	result, err := g.breaker.Execute(func() (interface{}, error) {
		resp, err := g.client.Do(req)
		if err != nil {
			return nil, classifyTransport(err, context.Cause(req.Context()))
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			return resp, errServerStatus
		}
		return resp, nil
	})
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		g.log.Warn().Str("url", req.URL.String()).Msg("guard: circuit breaker open, request rejected")
		return nil, apperror.ErrCircuitOpen(err)
	case errors.Is(err, errServerStatus):
		return result.(*http.Response), nil
	case err != nil:
		return nil, err
	}
	return result.(*http.Response), nil
}

// Execute sends req and returns its validated JSON payload. Non-2xx
// statuses, protocol violations and business rejections all fail with a
// classified error.
func (g *Guard) Execute(ctx context.Context, req ports.BackendRequest) (json.RawMessage, error) {
	if g.retrier == nil {
		return g.execute(ctx, req)
	}
	return retrier.DoWithData(g.retrier, ctx, func(ctx context.Context) (json.RawMessage, error) {
		return g.execute(ctx, req)
	})
}

func (g *Guard) execute(ctx context.Context, req ports.BackendRequest) (json.RawMessage, error) {
	resp, err := g.BoundedRequest(ctx, req)
	if err != nil {
		g.logFailure(req, err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := statusError(resp)
		g.logFailure(req, err)
		return nil, err
	}

	data, err := ParseStrict(resp)
	if err != nil {
		g.logFailure(req, err)
		return nil, err
	}
	if err := ValidateBusinessOutcome(data, req.Operation); err != nil {
		g.logFailure(req, err)
		return nil, err
	}
	return data, nil
}

// RunGuarded checks connectivity and runs op. Errors that are not already
// classified become UNEXPECTED_ERROR.
func (g *Guard) RunGuarded(ctx context.Context, operation string, op func(ctx context.Context) error) error {
	if err := g.EnsureConnected(ctx); err != nil {
		return err
	}
	if err := op(ctx); err != nil {
		if appErr, ok := apperror.As(err); ok {
			return appErr
		}
		g.log.Error().Err(err).Str("operation", operation).Msg("guard: unexpected failure")
		return apperror.ErrUnexpected(err)
	}
	return nil
}

// Guarded is RunGuarded for operations that produce a value.
func Guarded[T any](ctx context.Context, g *Guard, operation string, op func(ctx context.Context) (T, error)) (T, error) {
	var out T
	err := g.RunGuarded(ctx, operation, func(ctx context.Context) error {
		var err error
		out, err = op(ctx)
		return err
	})
	return out, err
}

// ExecuteInto runs Execute and decodes the payload into T. A payload that
// does not fit T is a JSON_PARSE_FAILED protocol error.
func ExecuteInto[T any](ctx context.Context, g ports.BackendGuard, req ports.BackendRequest) (T, error) {
	var out T
	data, err := g.Execute(ctx, req)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, apperror.ErrJSONParse(truncate(data), err)
	}
	return out, nil
}

func (g *Guard) logFailure(req ports.BackendRequest, err error) {
	ev := g.log.Warn().Err(err).Str("operation", req.Operation).Str("method", req.Method).Str("url", req.URL)
	if appErr, ok := apperror.As(err); ok {
		ev = ev.Str("error_code", appErr.Code).
			Bool("network", appErr.IsNetworkError).
			Bool("timeout", appErr.IsTimeoutError)
	}
	ev.Msg("guard: backend call failed")
}

func newHTTPRequest(ctx context.Context, req ports.BackendRequest) (*http.Request, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, body)
	if err != nil {
		return nil, err
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	return httpReq, nil
}

// boundedBody keeps the request bound alive while the body is read.
type boundedBody struct {
	io.ReadCloser
	ctx     context.Context
	release func()
}

func (b *boundedBody) Close() error {
	err := b.ReadCloser.Close()
	b.release()
	return err
}

func (b *boundedBody) expired() bool {
	return errors.Is(context.Cause(b.ctx), errRequestTimeout)
}
