package service

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"settlement-reconciler/internal/core/domain"
	"settlement-reconciler/internal/core/ports"
	"settlement-reconciler/pkg/apperror"

	"github.com/rs/zerolog"
)

const conversionReplayTTL = 24 * time.Hour

type conversionService struct {
	guard   ports.BackendGuard
	tracker ports.SettlementTracker
	replay  ports.ReplayCache
	baseURL string
	log     zerolog.Logger
}

// NewConversionService creates the conversion client. replay may be nil,
// which disables Idempotency-Key replays.
func NewConversionService(
	guard ports.BackendGuard,
	tracker ports.SettlementTracker,
	replay ports.ReplayCache,
	baseURL string,
	log zerolog.Logger,
) ports.ConversionService {
	return &conversionService{
		guard:   guard,
		tracker: tracker,
		replay:  replay,
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     log,
	}
}

// Convert asks the backend to convert between two wallets. When the backend
// settles the conversion asynchronously a pending settlement is recorded
// with the balances it reported beforehand. A repeated idempotency key
// returns the first result without calling the backend again.
func (s *conversionService) Convert(ctx context.Context, req domain.ConversionRequest, idempotencyKey string) (*ports.ConversionResult, error) {
	req.SellCurrency = domain.NormalizeCurrency(req.SellCurrency)
	req.BuyCurrency = domain.NormalizeCurrency(req.BuyCurrency)
	if err := validateConversion(req); err != nil {
		return nil, err
	}

	if cached := s.replayed(ctx, idempotencyKey); cached != nil {
		return cached, nil
	}

	header := http.Header{}
	if idempotencyKey != "" {
		header.Set("Idempotency-Key", idempotencyKey)
	}
	data, err := s.guard.Execute(ctx, ports.BackendRequest{
		Operation: "Conversion",
		Method:    http.MethodPost,
		URL:       s.baseURL + "/conversions",
		Body:      req,
		Header:    header,
	})
	if err != nil {
		return nil, err
	}

	var conv domain.Conversion
	if err := decodePayload(data, &conv); err != nil {
		return nil, err
	}
	if conv.ID == "" {
		return nil, apperror.ErrJSONParse("conversion id missing", nil)
	}
	fillFromRequest(&conv, req)

	result := &ports.ConversionResult{Conversion: &conv}
	if conv.IsPending() {
		settlement, err := s.tracker.AddSettlement(ctx, conv.SettlementDraft())
		if err != nil {
			s.log.Error().Err(err).Str("conversion_id", conv.ID).Msg("conversion accepted but settlement not recorded")
			return nil, err
		}
		result.Settlement = settlement
	}

	s.log.Info().
		Str("conversion_id", conv.ID).
		Str("status", string(conv.Status)).
		Bool("pending", conv.IsPending()).
		Msg("conversion completed")

	s.remember(ctx, idempotencyKey, result)
	return result, nil
}

func validateConversion(req domain.ConversionRequest) error {
	if req.SellCurrency == "" || req.BuyCurrency == "" {
		return apperror.Validation("sell_currency and buy_currency are required")
	}
	if req.SellCurrency == req.BuyCurrency {
		return apperror.Validation("sell_currency and buy_currency must differ")
	}
	if !req.SellAmount.IsPositive() {
		return apperror.Validation("sell_amount must be greater than zero")
	}
	return nil
}

// fillFromRequest completes legs the backend left out of its answer.
func fillFromRequest(conv *domain.Conversion, req domain.ConversionRequest) {
	if conv.SellCurrency == "" {
		conv.SellCurrency = req.SellCurrency
	}
	if conv.BuyCurrency == "" {
		conv.BuyCurrency = req.BuyCurrency
	}
	if conv.SellAmount.IsZero() {
		conv.SellAmount = req.SellAmount
	}
}

func (s *conversionService) replayed(ctx context.Context, key string) *ports.ConversionResult {
	if key == "" || s.replay == nil {
		return nil
	}
	cached, err := s.replay.Get(ctx, domain.BuildConversionReplayKey(key))
	if err != nil {
		s.log.Warn().Err(err).Msg("replay cache read failed, converting")
		return nil
	}
	if cached == nil {
		return nil
	}

	var result ports.ConversionResult
	if err := json.Unmarshal(cached, &result); err != nil {
		s.log.Warn().Err(err).Msg("replay cache entry unreadable, converting")
		return nil
	}
	s.log.Info().Str("idempotency_key", key).Msg("replaying cached conversion")
	return &result
}

func (s *conversionService) remember(ctx context.Context, key string, result *ports.ConversionResult) {
	if key == "" || s.replay == nil {
		return
	}
	payload, err := json.Marshal(result)
	if err != nil {
		s.log.Warn().Err(err).Msg("encoding conversion for replay failed")
		return
	}
	if err := s.replay.Set(ctx, domain.BuildConversionReplayKey(key), payload, conversionReplayTTL); err != nil {
		s.log.Warn().Err(err).Msg("replay cache write failed")
	}
}
