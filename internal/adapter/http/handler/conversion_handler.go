package handler

import (
	"settlement-reconciler/internal/adapter/http/dto"
	"settlement-reconciler/internal/core/ports"
	"settlement-reconciler/pkg/apperror"
	"settlement-reconciler/pkg/response"

	"github.com/gin-gonic/gin"
)

// HeaderIdempotencyKey lets clients retry a conversion safely.
const HeaderIdempotencyKey = "Idempotency-Key"

// ConversionHandler handles currency conversions.
type ConversionHandler struct {
	conversions ports.ConversionService
}

// NewConversionHandler creates a new ConversionHandler.
func NewConversionHandler(conversions ports.ConversionService) *ConversionHandler {
	return &ConversionHandler{conversions: conversions}
}

// Convert handles POST /api/v1/conversions.
func (h *ConversionHandler) Convert(c *gin.Context) {
	key := c.GetHeader(HeaderIdempotencyKey)
	if key != "" && !dto.IsSafeID(key) {
		response.Error(c, apperror.Validation("invalid Idempotency-Key"))
		return
	}

	var req dto.ConversionRequest
	if !bindJSON(c, &req) {
		return
	}
	dto.SanitizeStruct(&req)

	result, err := h.conversions.Convert(c.Request.Context(), req.ToDomain(), key)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}
