// Package maintenance runs periodic background tasks as Go tickers so
// snapshots stay warm between requests.
package maintenance

import (
	"context"
	"log/slog"
	"time"

	"github.com/albapepper/scoracle-standings/internal/cache"
)

// Refresher is the subset of the snapshot cache the tasks use.
type Refresher interface {
	Resolve(ctx context.Context, ds cache.Dataset) (*cache.Snapshot, error)
	ForceRefresh(ctx context.Context, ds cache.Dataset) (*cache.Snapshot, error)
	Status(ctx context.Context, ds cache.Dataset) (cache.Status, error)
}

// Config controls maintenance task intervals. Zero duration disables a task.
type Config struct {
	RefreshInterval time.Duration // Resolve every dataset, fetching stale ones
	AuditInterval   time.Duration // Log snapshot ages
}

// DefaultConfig returns sensible production defaults.
func DefaultConfig() Config {
	return Config{
		RefreshInterval: 15 * time.Minute,
		AuditInterval:   1 * time.Hour,
	}
}

// Start launches all configured maintenance tickers. Blocks until ctx is
// cancelled. Intended to be called with `go`.
func Start(ctx context.Context, r Refresher, datasets []cache.Dataset, cfg Config, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("Maintenance tickers started",
		"refresh", cfg.RefreshInterval,
		"audit", cfg.AuditInterval)

	tickers := make([]*time.Ticker, 0, 2)
	defer func() {
		for _, t := range tickers {
			t.Stop()
		}
	}()

	// Refresh: keep snapshots within their max age without waiting for a request
	if cfg.RefreshInterval > 0 {
		t := time.NewTicker(cfg.RefreshInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, "refresh", func() {
			res := RefreshAll(ctx, r, datasets, false)
			logger.Info("Background refresh finished", "result", res.Summary())
		})
	}

	// Audit: report stale or missing snapshots
	if cfg.AuditInterval > 0 {
		t := time.NewTicker(cfg.AuditInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, "audit", func() { audit(ctx, r, datasets, logger) })
	}

	<-ctx.Done()
	logger.Info("Maintenance tickers stopped")
}

func runLoop(ctx context.Context, ch <-chan time.Time, name string, fn func()) {
	for {
		select {
		case <-ch:
			fn()
		case <-ctx.Done():
			return
		}
	}
}

// --------------------------------------------------------------------------
// Task implementations
// --------------------------------------------------------------------------

// RefreshAll resolves each dataset in order. With force, every dataset is
// fetched regardless of age and fetch failures are reported.
func RefreshAll(ctx context.Context, r Refresher, datasets []cache.Dataset, force bool) RefreshResult {
	var res RefreshResult
	for _, ds := range datasets {
		var (
			snap *cache.Snapshot
			err  error
		)
		if force {
			snap, err = r.ForceRefresh(ctx, ds)
		} else {
			snap, err = r.Resolve(ctx, ds)
		}
		res.Record(ds.Name, snap, err)
	}
	return res
}

// audit logs a warning for every dataset whose snapshot is stale or missing.
func audit(ctx context.Context, r Refresher, datasets []cache.Dataset, logger *slog.Logger) {
	for _, ds := range datasets {
		st, err := r.Status(ctx, ds)
		switch {
		case err != nil:
			logger.Warn("Audit: snapshot unavailable", "dataset", ds.Name, "error", err)
		case st.Stale:
			logger.Warn("Audit: snapshot stale",
				"dataset", ds.Name,
				"last_checked_at", st.LastCheckedAt,
				"max_age_hours", st.MaxAgeHours)
		}
	}
}
