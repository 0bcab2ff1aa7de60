package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"settlement-reconciler/internal/core/domain"
	"settlement-reconciler/internal/core/ports"
	"settlement-reconciler/internal/core/ports/mocks"
	"settlement-reconciler/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type conversionFixture struct {
	guard   *mocks.MockBackendGuard
	tracker *mocks.MockSettlementTracker
	replay  *mocks.MockReplayCache
	svc     ports.ConversionService
}

func newConversionFixture(t *testing.T) *conversionFixture {
	ctrl := gomock.NewController(t)
	f := &conversionFixture{
		guard:   mocks.NewMockBackendGuard(ctrl),
		tracker: mocks.NewMockSettlementTracker(ctrl),
		replay:  mocks.NewMockReplayCache(ctrl),
	}
	f.svc = NewConversionService(f.guard, f.tracker, f.replay, "http://wallet.local/", newTestLogger())
	return f
}

func usdNGNRequest() domain.ConversionRequest {
	return domain.ConversionRequest{SellCurrency: "usd", BuyCurrency: "ngn", SellAmount: dec("100")}
}

func TestConversionService_Convert_PendingRecordsSettlement(t *testing.T) {
	f := newConversionFixture(t)
	ctx := context.Background()

	f.replay.EXPECT().Get(ctx, "conversion:key-1").Return(nil, nil)
	f.guard.EXPECT().Execute(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, req ports.BackendRequest) (json.RawMessage, error) {
			assert.Equal(t, http.MethodPost, req.Method)
			assert.Equal(t, "http://wallet.local/conversions", req.URL)
			assert.Equal(t, "key-1", req.Header.Get("Idempotency-Key"))
			body := req.Body.(domain.ConversionRequest)
			assert.Equal(t, "USD", body.SellCurrency)
			assert.Equal(t, "NGN", body.BuyCurrency)
			return json.RawMessage(`{"success":true,"data":{
				"id":"conv-1","status":"pending","buy_amount":"150000",
				"sell_balance_before":"500","buy_balance_before":"1000"}}`), nil
		})

	settlement := &domain.PendingSettlement{ID: "stl-1", SellCurrency: "USD", BuyCurrency: "NGN"}
	f.tracker.EXPECT().AddSettlement(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, draft domain.SettlementDraft) (*domain.PendingSettlement, error) {
			assert.Equal(t, "conv-1", draft.ConversionID)
			assert.Equal(t, "USD", draft.SellCurrency)
			assert.Equal(t, "NGN", draft.BuyCurrency)
			assert.Equal(t, "100", draft.SellAmount.String())
			assert.Equal(t, "150000", draft.BuyAmount.String())
			require.NotNil(t, draft.SellBalanceBefore)
			assert.Equal(t, "500", draft.SellBalanceBefore.String())
			require.NotNil(t, draft.BuyBalanceBefore)
			assert.Equal(t, "1000", draft.BuyBalanceBefore.String())
			return settlement, nil
		})
	f.replay.EXPECT().Set(ctx, "conversion:key-1", gomock.Any(), 24*time.Hour).Return(nil)

	result, err := f.svc.Convert(ctx, usdNGNRequest(), "key-1")
	require.NoError(t, err)
	assert.Equal(t, "conv-1", result.Conversion.ID)
	assert.Equal(t, settlement, result.Settlement)
}

func TestConversionService_Convert_CompletedSkipsSettlement(t *testing.T) {
	f := newConversionFixture(t)
	ctx := context.Background()

	f.guard.EXPECT().Execute(ctx, gomock.Any()).
		Return(json.RawMessage(`{"id":"conv-2","status":"completed","buy_amount":"150000"}`), nil)

	// No idempotency key: the replay cache is not consulted.
	result, err := f.svc.Convert(ctx, usdNGNRequest(), "")
	require.NoError(t, err)
	assert.Nil(t, result.Settlement)
	assert.Equal(t, domain.ConversionStatusCompleted, result.Conversion.Status)
}

func TestConversionService_Convert_ReplaysCachedResult(t *testing.T) {
	f := newConversionFixture(t)
	ctx := context.Background()

	cached, err := json.Marshal(ports.ConversionResult{
		Conversion: &domain.Conversion{ID: "conv-1", Status: domain.ConversionStatusPending},
		Settlement: &domain.PendingSettlement{ID: "stl-1", SellCurrency: "USD", BuyCurrency: "NGN"},
	})
	require.NoError(t, err)
	f.replay.EXPECT().Get(ctx, "conversion:key-1").Return(cached, nil)

	result, err := f.svc.Convert(ctx, usdNGNRequest(), "key-1")
	require.NoError(t, err)
	assert.Equal(t, "conv-1", result.Conversion.ID)
	assert.Equal(t, "stl-1", result.Settlement.ID)
}

func TestConversionService_Convert_ReplayReadFailureConverts(t *testing.T) {
	f := newConversionFixture(t)
	ctx := context.Background()

	f.replay.EXPECT().Get(ctx, gomock.Any()).Return(nil, errors.New("redis down"))
	f.guard.EXPECT().Execute(ctx, gomock.Any()).Return(json.RawMessage(`{"id":"conv-3","status":"completed"}`), nil)
	f.replay.EXPECT().Set(ctx, gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	result, err := f.svc.Convert(ctx, usdNGNRequest(), "key-3")
	require.NoError(t, err)
	assert.Equal(t, "conv-3", result.Conversion.ID)
}

func TestConversionService_Convert_SettlementNotRecorded(t *testing.T) {
	f := newConversionFixture(t)
	ctx := context.Background()

	f.replay.EXPECT().Get(ctx, gomock.Any()).Return(nil, nil)
	f.guard.EXPECT().Execute(ctx, gomock.Any()).Return(json.RawMessage(`{"id":"conv-4","pending":true}`), nil)
	f.tracker.EXPECT().AddSettlement(ctx, gomock.Any()).Return(nil, apperror.ErrStorage(errors.New("redis down")))
	// Nothing is cached for a result the caller never received.

	_, err := f.svc.Convert(ctx, usdNGNRequest(), "key-4")
	assert.True(t, apperror.HasCode(err, apperror.CodeStorage))
}

func TestConversionService_Convert_GuardErrorPropagates(t *testing.T) {
	f := newConversionFixture(t)
	ctx := context.Background()

	f.guard.EXPECT().Execute(ctx, gomock.Any()).Return(nil, apperror.ErrAPIFailure("insufficient funds"))

	_, err := f.svc.Convert(ctx, usdNGNRequest(), "")
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeAPIFailure, appErr.Code)
	assert.Equal(t, "insufficient funds", appErr.Message)
}

func TestConversionService_Convert_MalformedPayload(t *testing.T) {
	f := newConversionFixture(t)
	ctx := context.Background()

	f.guard.EXPECT().Execute(ctx, gomock.Any()).Return(json.RawMessage(`{"id":123}`), nil)
	_, err := f.svc.Convert(ctx, usdNGNRequest(), "")
	assert.True(t, apperror.HasCode(err, apperror.CodeJSONParseFailed))

	f.guard.EXPECT().Execute(ctx, gomock.Any()).Return(json.RawMessage(`{"status":"pending"}`), nil)
	_, err = f.svc.Convert(ctx, usdNGNRequest(), "")
	assert.True(t, apperror.HasCode(err, apperror.CodeJSONParseFailed))
}

func TestConversionService_Convert_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  domain.ConversionRequest
	}{
		{"missing buy currency", domain.ConversionRequest{SellCurrency: "USD", SellAmount: dec("1")}},
		{"same currency", domain.ConversionRequest{SellCurrency: "usd", BuyCurrency: "USD", SellAmount: dec("1")}},
		{"zero amount", domain.ConversionRequest{SellCurrency: "USD", BuyCurrency: "NGN"}},
		{"negative amount", domain.ConversionRequest{SellCurrency: "USD", BuyCurrency: "NGN", SellAmount: dec("-5")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newConversionFixture(t)
			_, err := f.svc.Convert(context.Background(), tt.req, "key")
			assert.True(t, apperror.HasCode(err, apperror.CodeValidation))
		})
	}
}
