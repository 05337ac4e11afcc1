// Package handler provides HTTP handlers for all API endpoints.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/albapepper/scoracle-standings/internal/api/respond"
	"github.com/albapepper/scoracle-standings/internal/cache"
	"github.com/albapepper/scoracle-standings/internal/standings"
)

// StandingsBuilder builds the enriched standings view.
type StandingsBuilder interface {
	Build(ctx context.Context) (*standings.Result, error)
}

// SnapshotStatus reports snapshot ages without refreshing.
type SnapshotStatus interface {
	Status(ctx context.Context, ds cache.Dataset) (cache.Status, error)
}

// Pinger checks database connectivity.
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	standings StandingsBuilder
	snapshots SnapshotStatus
	datasets  []cache.Dataset
	db        Pinger
	ttl       time.Duration
	logger    *slog.Logger
}

// Deps are the handler dependencies. DB is nil with the file backend.
type Deps struct {
	Standings StandingsBuilder
	Snapshots SnapshotStatus
	Datasets  []cache.Dataset
	DB        Pinger
	Logger    *slog.Logger
}

// New creates a Handler with shared dependencies. The response TTL follows
// the shortest dataset max age.
func New(d Deps) *Handler {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	var ttl time.Duration
	for i, ds := range d.Datasets {
		age := time.Duration(ds.MaxAgeHours * float64(time.Hour))
		if i == 0 || age < ttl {
			ttl = age
		}
	}
	return &Handler{
		standings: d.Standings,
		snapshots: d.Snapshots,
		datasets:  d.Datasets,
		db:        d.DB,
		ttl:       ttl,
		logger:    logger,
	}
}

// HasDB reports whether a database health check is available.
func (h *Handler) HasDB() bool {
	return h.db != nil
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, status, and available endpoints.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "Scoracle Standings API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
		"endpoints": []string{
			"/api/v1/standings",
			"/api/v1/standings/{teamID}",
			"/health",
			"/health/cache",
		},
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies database connectivity.
// @Summary Database health check
// @Description Verifies Postgres connectivity when the postgres snapshot backend is in use.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	if h.db == nil || h.db.HealthCheck(r.Context()) != nil {
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"database":  "disconnected",
			"error":     "Database connection check failed",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache reports how old each dataset snapshot is.
// @Summary Snapshot cache health check
// @Description Returns per-dataset snapshot age and staleness. Never triggers a refresh.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	code := http.StatusOK
	datasets := make([]map[string]interface{}, 0, len(h.datasets))
	for _, ds := range h.datasets {
		st, err := h.snapshots.Status(r.Context(), ds)
		entry := map[string]interface{}{"status": st}
		if err != nil {
			entry["error"] = err.Error()
			status = "unhealthy"
			code = http.StatusServiceUnavailable
		}
		datasets = append(datasets, entry)
	}
	respond.WriteJSONObject(w, code, map[string]interface{}{
		"status":    status,
		"datasets":  datasets,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
