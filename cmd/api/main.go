// Command api is the JobPulse alert API server.
//
// Usage:
//
//	jobpulse-api
//	API_PORT=8080 jobpulse-api

// @title JobPulse Alert API
// @version 1.0.0
// @description Job-alert notification engine: twice-daily scheduled runs plus a manual trigger endpoint.
// @host localhost:8000
// @BasePath /
// @schemes http https
// @contact.name JobPulse
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/jobpulse/jobpulse-api/internal/alerts"
	"github.com/jobpulse/jobpulse-api/internal/api"
	"github.com/jobpulse/jobpulse-api/internal/config"
	"github.com/jobpulse/jobpulse-api/internal/db"
	"github.com/jobpulse/jobpulse-api/internal/mail"
	"github.com/jobpulse/jobpulse-api/internal/scheduler"

	_ "github.com/jobpulse/jobpulse-api/docs" // swagger docs
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Connect to database
	logger.Info("Connecting to database...")
	pool, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("Database connected",
		"min_conns", cfg.DBPoolMinConns,
		"max_conns", cfg.DBPoolMaxConns)

	// Tracker: in-process by default, Redis-backed when configured so
	// multiple instances share one daily dedup state.
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb, err = db.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error("Failed to connect to Redis", "error", err)
			os.Exit(1)
		}
		defer rdb.Close()
		logger.Info("Using shared Redis alert tracker")
	}
	tracker := alerts.SelectTracker(rdb, time.Now(), logger)

	// Wire the alert engine
	store := alerts.NewStore(pool.Pool)
	sender := mail.NewSender(mail.Config{
		SMTPServer: cfg.SMTPServer,
		SMTPPort:   cfg.SMTPPort,
		SMTPUser:   cfg.SMTPUser,
		SMTPPass:   cfg.SMTPPass,
		FromEmail:  cfg.SMTPFrom,
		Enabled:    cfg.EmailEnabled,
	}, logger)
	dispatcher := alerts.NewDispatcher(sender, cfg.AlertSendInterval, nil, logger)
	engine := alerts.NewEngine(store, store, store, tracker, dispatcher, nil, logger)

	// Start the twice-daily scheduler with a delayed startup run
	sched := scheduler.New(engine, pool.HealthCheck,
		cfg.AlertMorningCron, cfg.AlertEveningCron, cfg.AlertStartupDelay, logger)
	if err := sched.Start(ctx); err != nil {
		logger.Error("Failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	// Create router
	router := api.NewRouter(pool.Pool, engine, cfg)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Minute, // manual triggers run a full throttled batch
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting JobPulse Alert API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
