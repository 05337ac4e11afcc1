package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/albapepper/scoracle-standings/internal/cache"
	"github.com/albapepper/scoracle-standings/internal/config"
)

func TestOpenFileBackendEndToEnd(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.Header.Get("Authorization") != "Bearer token" {
			t.Errorf("unexpected Authorization %q", r.Header.Get("Authorization"))
		}
		switch r.URL.Path {
		case "/nba/team-stats.json":
			w.Write([]byte(`{"team_stats_date":"2016-01-15","team_stats":[{"team":{"team_id":"boston-celtics"},"stats":{"points_per_game_string":"104.2"},"stats_opponent":{}}]}`))
		case "/nba/standings.json":
			w.Write([]byte(`{"standings_date":"2016-01-15","standing":[{"team_id":"boston-celtics","conference":"EAST","streak_type":"win","streak_total":2,"last_five":"3-2","last_ten":"6-4"}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	cfg := &config.Config{
		StatsAPIHost:         srv.URL,
		StatsAPIToken:        "token",
		StatsUserAgent:       "test",
		UpstreamTimeout:      2 * time.Second,
		SnapshotBackend:      config.BackendFile,
		SnapshotDir:          filepath.Join(t.TempDir(), "data"),
		StandingsMaxAgeHours: 1,
		TeamStatsMaxAgeHours: 1,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	a, err := Open(ctx, cfg, logger)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer a.Close()
	if a.DB != nil {
		t.Fatal("expected no database with the file backend")
	}

	// Nothing has been seeded yet.
	if _, err := a.Standings.Build(ctx); !errors.Is(err, cache.ErrSnapshotMissing) {
		t.Fatalf("expected ErrSnapshotMissing before seeding, got %v", err)
	}

	for _, ds := range cfg.Datasets() {
		if _, err := a.Cache.ForceRefresh(ctx, ds); err != nil {
			t.Fatalf("seed %s: %v", ds.Name, err)
		}
	}
	res, err := a.Standings.Build(ctx)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(res.Stats.Standing) != 1 || res.Stats.Standing[0].TeamID != "boston-celtics" {
		t.Fatalf("unexpected standings %+v", res.Stats.Standing)
	}
	if res.Refreshed {
		t.Fatal("expected fresh snapshots to be served without refetching")
	}
	if hits.Load() != 2 {
		t.Fatalf("expected exactly 2 upstream requests, got %d", hits.Load())
	}
}
