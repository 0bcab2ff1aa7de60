package middleware

import (
	"strconv"
	"time"

	redisStore "settlement-reconciler/internal/adapter/storage/redis"
	"settlement-reconciler/pkg/apperror"
	"settlement-reconciler/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RateLimitRule allows Limit requests per client IP in each Window.
type RateLimitRule struct {
	Limit  int64
	Window time.Duration
}

// DefaultRateLimitRules returns the limits per endpoint group. Conversions
// reach the wallet backend and get the tightest budget.
func DefaultRateLimitRules() map[string]RateLimitRule {
	return map[string]RateLimitRule{
		"settlements_read":  {Limit: 120, Window: time.Minute},
		"settlements_write": {Limit: 60, Window: time.Minute},
		"polling":           {Limit: 10, Window: time.Minute},
		"conversions":       {Limit: 20, Window: time.Minute},
	}
}

// RateLimiter enforces rule for one endpoint group. When the counter store
// is unreachable requests are let through.
func RateLimiter(store *redisStore.RateLimitStore, group string, rule RateLimitRule, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()

		result, err := store.Allow(c.Request.Context(), group+":"+clientIP, rule.Limit, rule.Window)
		if err != nil {
			log.Warn().Err(err).Str("group", group).Msg("rate limit check failed, allowing request (degraded mode)")
			c.Next()
			return
		}
		setRateLimitHeaders(c, result)

		if !result.Allowed {
			retryAfter := max(result.ResetAt-time.Now().Unix(), 1)
			c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
			log.Info().Str("group", group).Str("client_ip", clientIP).Msg("rate limit exceeded")
			response.Error(c, apperror.ErrRateLimitExceeded())
			c.Abort()
			return
		}

		c.Next()
	}
}

func setRateLimitHeaders(c *gin.Context, result *redisStore.RateLimitResult) {
	c.Header("X-RateLimit-Limit", strconv.FormatInt(result.Limit, 10))
	c.Header("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))
	c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt, 10))
}
