// Package main provides the entry point for the prop-hammer dashboard server.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/prop-hammer/internal/config"
	"github.com/yourusername/prop-hammer/internal/database"
	"github.com/yourusername/prop-hammer/internal/engine"
	"github.com/yourusername/prop-hammer/internal/health"
	"github.com/yourusername/prop-hammer/internal/logger"
	"github.com/yourusername/prop-hammer/internal/metrics"
	"github.com/yourusername/prop-hammer/internal/repository"
	"github.com/yourusername/prop-hammer/internal/scheduler"
	"github.com/yourusername/prop-hammer/internal/server"
	"github.com/yourusername/prop-hammer/internal/service"
	"github.com/yourusername/prop-hammer/internal/sheet"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.LoadWithDefaults("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Load AWS secrets if enabled
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			log.Fatalf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			log.Fatalf("Failed to load secrets: %v", err)
		}
	}

	// Validate configuration
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Set up logging
	appLog := logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"log_level":   cfg.App.LogLevel,
		"version":     Version,
	}).Info("Prop Hammer dashboard starting")

	metrics.InitRegistry()
	audit := logger.NewAuditLogger(appLog)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Ticket persistence: Postgres when configured, in-memory otherwise.
	var ticketRepo repository.TicketRepository
	var db *database.DB
	if cfg.Database.Enabled {
		db, err = database.NewDB(ctx, &cfg.Database)
		if err != nil {
			appLog.WithError(err).Fatal("Failed to connect to database")
		}
		defer db.Close()

		if err := db.InitSchema(ctx); err != nil {
			appLog.WithError(err).Fatal("Failed to initialize database schema")
		}

		ticketRepo = repository.NewPostgresTicketRepository(db)
		appLog.Info("Database connection established")
	} else {
		ticketRepo = repository.NewMemoryTicketRepository()
		appLog.Info("Database disabled; staged legs are kept in memory")
	}

	// Sheet source chain: HTTP fetch, retries, then the TTL snapshot cache.
	httpCfg := sheet.DefaultHTTPClientConfig()
	httpCfg.Timeout = time.Duration(cfg.Sheet.TimeoutSeconds) * time.Second
	httpCfg.MaxRetries = cfg.Sheet.MaxRetries
	httpCfg.RateLimit = cfg.Sheet.RateLimitPerSec
	httpClient := sheet.NewRetryingHTTPClient(httpCfg, appLog)
	defer httpClient.Close()

	csvSource := sheet.NewCSVSource(httpClient, cfg.Sheet.URL, cfg.Sheet.AuthToken, cfg.Sheet.Enabled, appLog)
	cachedSource := sheet.NewCachedSource(csvSource, cfg.CacheTTL())

	// Services
	eng := engine.New(engine.Params{
		CoV:        cfg.Engine.CoV,
		MinEdge:    cfg.Engine.MinEdge,
		BetEdge:    cfg.Engine.BetEdge,
		HammerEdge: cfg.Engine.HammerEdge,
	})
	analyzer := service.NewAnalyzer(cachedSource, eng, cfg.Matchups, appLog)
	tickets := service.NewTicketService(ticketRepo, audit)

	// Dashboard server and websocket hub
	hub := server.NewHub(appLog)
	apiServer := server.New(cfg, appLog, analyzer, tickets, cachedSource, hub)

	// Health server
	var pinger health.DatabasePinger
	if db != nil {
		pinger = db
	}
	healthServer := health.NewServer(health.Config{
		ServiceName:  cfg.App.Name,
		Version:      Version,
		Commit:       GitCommit,
		MaxStaleness: 3 * cfg.CacheTTL(),
		Logger:       appLog,
		DB:           pinger,
		Snapshot:     cachedSource,
	})
	if err := healthServer.Start(ctx); err != nil {
		appLog.WithError(err).Fatal("Failed to start health server")
	}

	// Scheduler for the recurring sheet refresh
	sched := scheduler.NewScheduler(cachedSource, analyzer, hub, audit, appLog)
	if err := sched.ScheduleRefresh(cfg.Sheet.RefreshCron); err != nil {
		appLog.WithError(err).Fatal("Failed to schedule sheet refresh")
	}
	if err := sched.Start(); err != nil {
		appLog.WithError(err).Fatal("Failed to start scheduler")
	}

	// Warm the snapshot so the first analysis request does not pay the
	// fetch. A failure here is not fatal; the scheduler retries.
	if _, err := cachedSource.Refresh(ctx); err != nil {
		appLog.WithError(err).Warn("Initial sheet fetch failed")
	}

	healthServer.SetReady(true)

	// Run the API server in the background
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- apiServer.Start(ctx)
	}()

	appLog.WithFields(logrus.Fields{
		"port":         cfg.Server.Port,
		"sheet_source": csvSource.Name(),
		"refresh_cron": cfg.Sheet.RefreshCron,
	}).Info("Prop Hammer dashboard running")

	// Wait for shutdown signal or server failure
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		appLog.WithField("signal", sig).Info("Shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			appLog.WithError(err).Error("Dashboard server failed")
		}
	}

	// Graceful shutdown
	healthServer.SetReady(false)
	cancel()

	if err := sched.Stop(); err != nil {
		appLog.WithError(err).Error("Error stopping scheduler")
	}
	if err := apiServer.Shutdown(); err != nil {
		appLog.WithError(err).Error("Error shutting down dashboard server")
	}
	if err := healthServer.Shutdown(); err != nil {
		appLog.WithError(err).Error("Error shutting down health server")
	}

	appLog.Info("Prop Hammer dashboard shut down successfully")
}
