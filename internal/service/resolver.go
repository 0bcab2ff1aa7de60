package service

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"settlement-reconciler/internal/core/domain"
	"settlement-reconciler/internal/core/ports"
	"settlement-reconciler/pkg/apperror"

	"github.com/rs/zerolog"
)

type settlementResolver struct {
	guard   ports.BackendGuard
	baseURL string
	log     zerolog.Logger
}

// NewSettlementResolver creates a resolver that looks up each settlement's
// conversion on the backend.
func NewSettlementResolver(guard ports.BackendGuard, baseURL string, log zerolog.Logger) ports.SettlementResolver {
	return &settlementResolver{
		guard:   guard,
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     log,
	}
}

// Resolve returns the ids of settlements whose conversion the backend has
// finished with. Lookups that fail are skipped; the settlement stays
// pending until a later tick or its TTL.
func (r *settlementResolver) Resolve(ctx context.Context, settlements []domain.PendingSettlement) ([]string, error) {
	var resolved []string
	for _, s := range settlements {
		if s.ConversionID == "" {
			continue
		}
		if ctx.Err() != nil {
			break
		}

		data, err := r.guard.Execute(ctx, ports.BackendRequest{
			Operation: "Conversion status",
			Method:    http.MethodGet,
			URL:       r.baseURL + "/conversions/" + url.PathEscape(s.ConversionID),
		})
		if err != nil {
			r.log.Warn().Err(err).Str("settlement_id", s.ID).Str("conversion_id", s.ConversionID).Msg("resolver: status lookup failed")
			if offline(err) {
				break
			}
			continue
		}

		var conv domain.Conversion
		if err := decodePayload(data, &conv); err != nil {
			r.log.Warn().Err(err).Str("conversion_id", s.ConversionID).Msg("resolver: unreadable status")
			continue
		}
		if conv.Status.IsResolved() {
			r.log.Info().Str("settlement_id", s.ID).Str("status", string(conv.Status)).Msg("resolver: settlement resolved")
			resolved = append(resolved, s.ID)
		}
	}
	return resolved, nil
}

// offline reports failures that every remaining lookup would repeat.
func offline(err error) bool {
	return apperror.HasCode(err, apperror.CodeNetworkDisconnected) ||
		apperror.HasCode(err, apperror.CodeInternetUnreachable) ||
		apperror.HasCode(err, apperror.CodeCircuitOpen)
}
