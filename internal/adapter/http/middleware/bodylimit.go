package middleware

import (
	"net/http"

	"settlement-reconciler/pkg/apperror"
	"settlement-reconciler/pkg/response"

	"github.com/gin-gonic/gin"
)

// MaxBodySize limits request bodies to maxBytes. A declared Content-Length
// over the limit is rejected before the handler runs; otherwise the body
// reader fails once the limit is crossed and the handler reports it.
func MaxBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			response.Error(c, apperror.ErrPayloadTooLarge(maxBytes))
			c.Abort()
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
