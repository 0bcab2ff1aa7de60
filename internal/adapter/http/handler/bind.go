package handler

import (
	"errors"
	"net/http"

	"settlement-reconciler/pkg/apperror"
	"settlement-reconciler/pkg/response"

	"github.com/gin-gonic/gin"
)

// bindJSON decodes and validates the request body into req. On failure it
// writes the error response itself and returns false.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, apperror.ErrPayloadTooLarge(tooLarge.Limit))
			return false
		}
		response.Error(c, apperror.Validation(err.Error()))
		return false
	}
	return true
}
