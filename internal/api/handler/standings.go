package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/albapepper/scoracle-standings/internal/api/respond"
	"github.com/albapepper/scoracle-standings/internal/cache"
	"github.com/albapepper/scoracle-standings/internal/provider"
	"github.com/albapepper/scoracle-standings/internal/standings"
)

// GetStandings returns the enriched standings view.
// @Summary Get enriched standings
// @Description Returns every team in standings order with season stats, derived per-possession metrics and a color for each metric relative to the league. Both datasets are refreshed from the stats API when their snapshots are older than the configured max age.
// @Tags standings
// @Produce json
// @Param If-None-Match header string false "ETag from a previous response"
// @Success 200 {object} standings.Result
// @Success 304 "Not modified"
// @Failure 500 {object} respond.ErrorResponse
// @Failure 503 {object} respond.ErrorResponse
// @Router /api/v1/standings [get]
func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	res, err := h.standings.Build(r.Context())
	if err != nil {
		h.writeBuildError(w, err)
		return
	}
	h.writeCacheable(w, r, res, res.Refreshed)
}

// GetTeamStanding returns one enriched team.
// @Summary Get one enriched team
// @Description Returns a single team from the enriched standings view, looked up by its stats API team ID (e.g. "boston-celtics").
// @Tags standings
// @Produce json
// @Param teamID path string true "Team ID"
// @Param If-None-Match header string false "ETag from a previous response"
// @Success 200 {object} standings.Team
// @Success 304 "Not modified"
// @Failure 404 {object} respond.ErrorResponse
// @Failure 500 {object} respond.ErrorResponse
// @Failure 503 {object} respond.ErrorResponse
// @Router /api/v1/standings/{teamID} [get]
func (h *Handler) GetTeamStanding(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")

	res, err := h.standings.Build(r.Context())
	if err != nil {
		h.writeBuildError(w, err)
		return
	}
	team, ok := res.Team(teamID)
	if !ok {
		respond.WriteError(w, http.StatusNotFound, "TEAM_NOT_FOUND", "No team with ID "+teamID)
		return
	}
	h.writeCacheable(w, r, team, res.Refreshed)
}

func (h *Handler) writeCacheable(w http.ResponseWriter, r *http.Request, v interface{}, refreshed bool) {
	data, err := json.Marshal(v)
	if err != nil {
		h.logger.Error("Encode standings failed", "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_FAILED", "Failed to encode response")
		return
	}

	etag := cache.ComputeETag(data)
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return
	}
	respond.WriteJSON(w, data, etag, h.ttl, !refreshed)
}

// writeBuildError maps a build failure to an error response.
func (h *Handler) writeBuildError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, standings.ErrUnmatchedTeam), errors.Is(err, provider.ErrDuplicateTeam):
		h.logger.Error("Standings join failed", "error", err)
		respond.WriteErrorDetail(w, http.StatusInternalServerError, "JOIN_FAILED",
			"Standings and team stats do not match", err.Error())
	case errors.Is(err, cache.ErrSnapshotMissing):
		h.logger.Warn("No snapshot available", "error", err)
		respond.WriteErrorDetail(w, http.StatusServiceUnavailable, "SNAPSHOT_UNAVAILABLE",
			"Data is not available yet", err.Error())
	default:
		h.logger.Error("Standings build failed", "error", err)
		respond.WriteErrorDetail(w, http.StatusInternalServerError, "SNAPSHOT_ERROR",
			"Failed to read cached data", err.Error())
	}
}
