package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"settlement-reconciler/config"
	"settlement-reconciler/internal/adapter/connectivity"
	"settlement-reconciler/internal/adapter/guard"
	httpHandler "settlement-reconciler/internal/adapter/http/handler"
	"settlement-reconciler/internal/adapter/notify"
	memStorage "settlement-reconciler/internal/adapter/storage/memory"
	pgStorage "settlement-reconciler/internal/adapter/storage/postgres"
	redisStorage "settlement-reconciler/internal/adapter/storage/redis"
	"settlement-reconciler/internal/core/domain"
	"settlement-reconciler/internal/core/ports"
	"settlement-reconciler/internal/service"
	"settlement-reconciler/pkg/logger"

	"github.com/madflojo/tasks"
)

func main() {
	// Load configuration
	cfg, err := config.Load(os.Getenv("STL_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Str("ledger", cfg.Ledger.Backend).
		Msg("Starting settlement reconciler")

	ctx := context.Background()
	var healthCheckers []ports.HealthChecker

	// Settlement ledger and the Redis-backed stores
	var (
		settlementRepo ports.SettlementRepository
		replayCache    ports.ReplayCache
		claims         ports.NotificationClaims
		rateLimitStore *redisStorage.RateLimitStore
	)
	if cfg.Ledger.Backend == "redis" {
		rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		log.Info().Msg("Redis connected")

		settlementRepo = redisStorage.NewSettlementRepo(rdb, cfg.Ledger.StorageKey)
		replayCache = redisStorage.NewReplayCache(rdb)
		claims = redisStorage.NewNotificationClaims(rdb)
		rateLimitStore = redisStorage.NewRateLimitStore(rdb)
		healthCheckers = append(healthCheckers, redisStorage.NewHealthCheck(rdb, cfg.Ledger.StorageKey))
	} else {
		settlementRepo = memStorage.NewSettlementRepo()
		log.Warn().Msg("Using in-memory ledger; pending settlements are lost on restart")
	}

	// Settlement journal (optional)
	journal := service.NewJournalService(nil, log)
	if cfg.Database.Enabled {
		pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer pool.Close()
		if err := pgStorage.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("Failed to prepare journal schema")
		}
		log.Info().Msg("PostgreSQL connected")

		journal = service.NewJournalService(pgStorage.NewJournalRepository(pool), logger.WithComponent(log, "journal"))
		healthCheckers = append(healthCheckers, pgStorage.NewHealthCheck(pool))
	}

	// Wallet backend guard
	var checker ports.ConnectivityChecker = connectivity.NewProbe(cfg.Guard.ProbeAddr, cfg.Guard.ProbeTimeout)
	if cfg.Guard.ProbeAddr == "" {
		checker = connectivity.Static{Connected: true, Reachability: domain.ReachabilityUnknown}
	}
	backend := guard.New(cfg.Guard, &http.Client{}, checker, logger.WithComponent(log, "guard"))

	// Notifications (optional)
	var notifier *notify.WebhookNotifier
	var trackerNotifier ports.Notifier
	if cfg.Notify.WebhookURL != "" {
		notifier = notify.NewWebhookNotifier(
			cfg.Notify.WebhookURL,
			cfg.Notify.Secret,
			claims,
			cfg.Notify.DedupTTL,
			&http.Client{Timeout: 10 * time.Second},
			logger.WithComponent(log, "notify"),
		)
		trackerNotifier = notifier
	}

	// Settlement tracker
	strategy, err := domain.ParseBalanceStrategy(cfg.Balance.Strategy)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid balance strategy")
	}
	scheduler := tasks.New()
	defer scheduler.Stop()

	ledger := service.NewLedgerService(settlementRepo, journal, cfg.Ledger.TTL, logger.WithComponent(log, "ledger"))
	resolver := service.NewSettlementResolver(backend, cfg.Guard.BaseURL, logger.WithComponent(log, "resolver"))
	tracker := service.NewTrackerService(ledger, resolver, trackerNotifier, scheduler, service.TrackerConfig{
		PollInterval:   cfg.Poller.Interval,
		SweepInterval:  cfg.Ledger.SweepInterval,
		Strategy:       strategy,
		PollingEnabled: cfg.Poller.Enabled,
	}, logger.WithComponent(log, "tracker"))
	tracker.OnConfirmed(func() {
		log.Info().Msg("All pending settlements confirmed")
	})
	if err := tracker.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to start settlement tracker")
	}

	conversions := service.NewConversionService(backend, tracker, replayCache, cfg.Guard.BaseURL, logger.WithComponent(log, "conversion"))

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		Tracker:        tracker,
		Conversions:    conversions,
		RateLimitStore: rateLimitStore,
		HealthCheckers: healthCheckers,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	tracker.Stop()
	if notifier != nil {
		if err := notifier.Wait(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("Pending notifications abandoned")
		}
	}

	log.Info().Msg("Server exited")
}
