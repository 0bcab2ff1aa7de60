package handler

import (
	"settlement-reconciler/internal/adapter/http/middleware"
	redisStore "settlement-reconciler/internal/adapter/storage/redis"
	"settlement-reconciler/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	Tracker        ports.SettlementTracker
	Conversions    ports.ConversionService    // nil = conversions disabled
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	v1 := r.Group("/api/v1")

	settlementHandler := NewSettlementHandler(deps.Tracker)
	settlements := v1.Group("/settlements")
	{
		settlements.GET("", rl("settlements_read"), settlementHandler.List)
		settlements.POST("", rl("settlements_write"), settlementHandler.Add)
		settlements.DELETE("/:id", rl("settlements_write"), settlementHandler.Remove)
	}

	currencies := v1.Group("/currencies/:code")
	{
		currencies.DELETE("/settlements", rl("settlements_write"), settlementHandler.ClearCurrency)
		currencies.GET("/pending", rl("settlements_read"), settlementHandler.Pending)
		currencies.GET("/balance", rl("settlements_read"), settlementHandler.Balance)
	}

	v1.PUT("/polling", rl("polling"), settlementHandler.SetPolling)

	if deps.Conversions != nil {
		conversionHandler := NewConversionHandler(deps.Conversions)
		v1.POST("/conversions", rl("conversions"), conversionHandler.Convert)
	}

	return r
}
