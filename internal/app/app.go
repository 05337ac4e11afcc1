// Package app wires the snapshot store, stats API client, snapshot cache and
// standings service from configuration. Shared by cmd/api and cmd/ingest.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/albapepper/scoracle-standings/internal/cache"
	"github.com/albapepper/scoracle-standings/internal/config"
	"github.com/albapepper/scoracle-standings/internal/db"
	"github.com/albapepper/scoracle-standings/internal/provider/xmlstats"
	"github.com/albapepper/scoracle-standings/internal/standings"
)

// App holds the wired components.
type App struct {
	Config    *config.Config
	Cache     *cache.Cache
	Standings *standings.Service

	// DB is nil unless the postgres snapshot backend is configured.
	DB *db.Pool
}

// Open builds every component. With the postgres backend it connects to the
// database; call Close when done.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	a := &App{Config: cfg}

	var store cache.Store
	switch cfg.SnapshotBackend {
	case config.BackendPostgres:
		pool, err := db.New(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		a.DB = pool
		store = db.NewSnapshotStore(pool)
		logger.Info("Snapshot store: postgres",
			"min_conns", cfg.DBPoolMinConns,
			"max_conns", cfg.DBPoolMaxConns)
	default:
		store = cache.NewFileStore(cfg.SnapshotDir)
		logger.Info("Snapshot store: file", "dir", cfg.SnapshotDir)
	}

	fetcher := xmlstats.NewClient(xmlstats.Options{
		BaseURL:           cfg.StatsAPIBaseURL(),
		Token:             cfg.StatsAPIToken,
		UserAgent:         cfg.StatsUserAgent,
		RequestsPerMinute: cfg.UpstreamRequestsPerMinute,
		Timeout:           cfg.UpstreamTimeout,
	}, logger)
	if cfg.StatsAPIToken == "" {
		logger.Warn("STATS_API_TOKEN is not set; remote refreshes will likely be rejected")
	}

	a.Cache = cache.New(store, fetcher, logger)
	a.Standings = standings.NewService(a.Cache, cfg.Standings(), cfg.TeamStats(), logger)
	return a, nil
}

// Close releases the database pool, if any.
func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}
