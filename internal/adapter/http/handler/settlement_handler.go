package handler

import (
	"strconv"

	"settlement-reconciler/internal/adapter/http/dto"
	"settlement-reconciler/internal/core/domain"
	"settlement-reconciler/internal/core/ports"
	"settlement-reconciler/pkg/apperror"
	"settlement-reconciler/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// SettlementHandler exposes the settlement tracker.
type SettlementHandler struct {
	tracker ports.SettlementTracker
}

// NewSettlementHandler creates a new SettlementHandler.
func NewSettlementHandler(tracker ports.SettlementTracker) *SettlementHandler {
	return &SettlementHandler{tracker: tracker}
}

// List handles GET /api/v1/settlements. It reloads the ledger first so
// expired entries never appear.
func (h *SettlementHandler) List(c *gin.Context) {
	snap, err := h.tracker.Refresh(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, snap)
}

// Add handles POST /api/v1/settlements.
func (h *SettlementHandler) Add(c *gin.Context) {
	var req dto.AddSettlementRequest
	if !bindJSON(c, &req) {
		return
	}
	dto.SanitizeStruct(&req)

	settlement, err := h.tracker.AddSettlement(c.Request.Context(), req.ToDraft())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, settlement)
}

// Remove handles DELETE /api/v1/settlements/:id. With ?notify=true the
// removal is announced as a confirmation.
func (h *SettlementHandler) Remove(c *gin.Context) {
	id := c.Param("id")
	if !dto.IsSafeID(id) {
		response.Error(c, apperror.Validation("invalid settlement id"))
		return
	}
	notify, err := strconv.ParseBool(c.DefaultQuery("notify", "false"))
	if err != nil {
		response.Error(c, apperror.Validation("notify must be a boolean"))
		return
	}

	notified, err := h.tracker.RemoveSettlement(c.Request.Context(), id, notify)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.RemoveSettlementResponse{ID: id, Notified: notified})
}

// ClearCurrency handles DELETE /api/v1/currencies/:code/settlements.
func (h *SettlementHandler) ClearCurrency(c *gin.Context) {
	code, ok := currencyParam(c)
	if !ok {
		return
	}

	removed, err := h.tracker.ClearForCurrency(c.Request.Context(), code)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ClearCurrencyResponse{Currency: code, Removed: removed})
}

// Pending handles GET /api/v1/currencies/:code/pending.
func (h *SettlementHandler) Pending(c *gin.Context) {
	code, ok := currencyParam(c)
	if !ok {
		return
	}
	response.OK(c, dto.PendingResponse{
		Currency:   code,
		HasPending: h.tracker.HasPendingForCurrency(code),
	})
}

// Balance handles GET /api/v1/currencies/:code/balance?balance=.
func (h *SettlementHandler) Balance(c *gin.Context) {
	code, ok := currencyParam(c)
	if !ok {
		return
	}
	balance, err := decimal.NewFromString(c.Query("balance"))
	if err != nil {
		response.Error(c, apperror.Validation("balance must be a decimal number"))
		return
	}

	response.OK(c, dto.BalanceResponse{
		Currency:   code,
		Balance:    balance,
		Display:    h.tracker.GetOptimisticBalance(balance, code),
		HasPending: h.tracker.HasPendingForCurrency(code),
	})
}

// SetPolling handles PUT /api/v1/polling.
func (h *SettlementHandler) SetPolling(c *gin.Context) {
	var req dto.PollingRequest
	if !bindJSON(c, &req) {
		return
	}

	h.tracker.SetPollingEnabled(*req.Enabled)
	response.OK(c, dto.PollingResponse{Enabled: *req.Enabled})
}

// currencyParam reads and normalizes the :code path segment, writing the
// validation error itself when the code is malformed.
func currencyParam(c *gin.Context) (string, bool) {
	code := c.Param("code")
	if !dto.IsCurrency(code) {
		response.Error(c, apperror.Validation("currency must be a three-letter code"))
		return "", false
	}
	return domain.NormalizeCurrency(code), true
}
