package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"settlement-reconciler/internal/core/domain"
	"settlement-reconciler/internal/core/ports"
	"settlement-reconciler/internal/core/ports/mocks"
	"settlement-reconciler/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestSettlementResolver_Resolve(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	statuses := map[string]string{
		"conv-done":      `{"id":"conv-done","status":"completed"}`,
		"conv-wrapped":   `{"success":true,"data":{"id":"conv-wrapped","status":"SETTLED"}}`,
		"conv-reversed":  `{"id":"conv-reversed","status":"reversed"}`,
		"conv-pending":   `{"id":"conv-pending","status":"pending"}`,
		"conv-malformed": `{"status":42}`,
	}

	guard := mocks.NewMockBackendGuard(ctrl)
	guard.EXPECT().Execute(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req ports.BackendRequest) (json.RawMessage, error) {
			id := req.URL[strings.LastIndex(req.URL, "/")+1:]
			assert.Equal(t, "http://wallet.local/conversions/"+id, req.URL)
			if id == "conv-timeout" {
				return nil, apperror.ErrRequestTimeout(nil)
			}
			return json.RawMessage(statuses[id]), nil
		}).Times(6)

	resolver := NewSettlementResolver(guard, "http://wallet.local", newTestLogger())
	resolved, err := resolver.Resolve(context.Background(), []domain.PendingSettlement{
		{ID: "a", ConversionID: "conv-done"},
		{ID: "b", ConversionID: "conv-pending"},
		{ID: "c"}, // no conversion id
		{ID: "d", ConversionID: "conv-timeout"},
		{ID: "e", ConversionID: "conv-wrapped"},
		{ID: "f", ConversionID: "conv-malformed"},
		{ID: "g", ConversionID: "conv-reversed"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "e", "g"}, resolved)
}

func TestSettlementResolver_StopsWhenOffline(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	guard := mocks.NewMockBackendGuard(ctrl)
	guard.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(nil, apperror.ErrNetworkDisconnected()).Times(1)

	resolver := NewSettlementResolver(guard, "http://wallet.local", newTestLogger())
	resolved, err := resolver.Resolve(context.Background(), []domain.PendingSettlement{
		{ID: "a", ConversionID: "conv-1"},
		{ID: "b", ConversionID: "conv-2"},
	})
	require.NoError(t, err)
	assert.Empty(t, resolved)
}
