// Command api is the Scoracle Standings API server.
//
// Usage:
//
//	scoracle-api
//	API_PORT=8080 SNAPSHOT_DIR=/var/lib/standings scoracle-api

// @title Scoracle Standings API
// @version 1.0.0
// @description Serves NBA standings enriched with team stats, per-possession metrics and league-relative colors. Upstream data is cached as dataset snapshots and refreshed once older than a configured age.
// @host localhost:8000
// @BasePath /
// @schemes http https
// @contact.name Scoracle
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/albapepper/scoracle-standings/internal/api"
	"github.com/albapepper/scoracle-standings/internal/api/handler"
	"github.com/albapepper/scoracle-standings/internal/app"
	"github.com/albapepper/scoracle-standings/internal/config"
	"github.com/albapepper/scoracle-standings/internal/maintenance"

	_ "github.com/albapepper/scoracle-standings/docs" // swagger docs
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a, err := app.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	// Start background refresher (if configured)
	if cfg.RefreshInterval > 0 {
		mcfg := maintenance.DefaultConfig()
		mcfg.RefreshInterval = cfg.RefreshInterval
		go maintenance.Start(ctx, a.Cache, cfg.Datasets(), mcfg, logger)
	} else {
		logger.Info("Background refresher disabled (REFRESH_INTERVAL_MINUTES=0)")
	}

	// Create router
	deps := handler.Deps{
		Standings: a.Standings,
		Snapshots: a.Cache,
		Datasets:  cfg.Datasets(),
		Logger:    logger,
	}
	if a.DB != nil {
		deps.DB = a.DB
	}
	router := api.NewRouter(handler.New(deps), cfg)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.UpstreamTimeout*2 + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Scoracle Standings API",
			"addr", addr,
			"environment", cfg.Environment,
			"backend", cfg.SnapshotBackend,
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
