// Package standings builds the enriched standings view: it resolves both
// cached datasets, joins them by team and colors every team against the
// league.
package standings

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/albapepper/scoracle-standings/internal/cache"
	"github.com/albapepper/scoracle-standings/internal/provider"
)

// Title is the fixed title of the standings view.
const Title = "Standings"

// Resolver returns a fresh-enough snapshot for a dataset.
type Resolver interface {
	Resolve(ctx context.Context, ds cache.Dataset) (*cache.Snapshot, error)
}

// Result is the standings view.
type Result struct {
	Title string `json:"title"`
	Stats Stats  `json:"stats"`

	// Refreshed reports whether either dataset was fetched for this build.
	Refreshed bool `json:"-"`
}

// Stats carries the dataset dates and the enriched teams in standings order.
type Stats struct {
	StandingsDate string `json:"standings_date"`
	TeamStatsDate string `json:"team_stats_date,omitempty"`
	Standing      []Team `json:"standing"`
}

// Team looks up an enriched team by ID.
func (r *Result) Team(teamID string) (*Team, bool) {
	for i := range r.Stats.Standing {
		if r.Stats.Standing[i].TeamID == teamID {
			return &r.Stats.Standing[i], true
		}
	}
	return nil, false
}

// Service builds the standings view from the snapshot cache.
type Service struct {
	cache     Resolver
	standings cache.Dataset
	teamStats cache.Dataset
	logger    *slog.Logger
}

// NewService creates a Service over the two dataset descriptors.
func NewService(c Resolver, standings, teamStats cache.Dataset, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{cache: c, standings: standings, teamStats: teamStats, logger: logger}
}

// Datasets returns the descriptors in resolve order.
func (s *Service) Datasets() []cache.Dataset {
	return []cache.Dataset{s.teamStats, s.standings}
}

// Build resolves team stats and then standings, strictly in that order, and
// enriches the result. Either dataset failing fails the whole build.
func (s *Service) Build(ctx context.Context) (*Result, error) {
	tsSnap, err := s.cache.Resolve(ctx, s.teamStats)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", s.teamStats.Name, err)
	}
	ts, err := provider.DecodeTeamStats(tsSnap.Payload)
	if err != nil {
		return nil, fmt.Errorf("%s snapshot: %w", s.teamStats.Name, err)
	}

	stSnap, err := s.cache.Resolve(ctx, s.standings)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", s.standings.Name, err)
	}
	st, err := provider.DecodeStandings(stSnap.Payload)
	if err != nil {
		return nil, fmt.Errorf("%s snapshot: %w", s.standings.Name, err)
	}

	teams, _, err := Enrich(st, ts)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Standings built",
		"teams", len(teams),
		"standings_date", st.StandingsDate,
		"team_stats_refreshed", tsSnap.Refreshed,
		"standings_refreshed", stSnap.Refreshed,
	)
	return &Result{
		Title: Title,
		Stats: Stats{
			StandingsDate: st.StandingsDate,
			TeamStatsDate: ts.TeamStatsDate,
			Standing:      teams,
		},
		Refreshed: tsSnap.Refreshed || stSnap.Refreshed,
	}, nil
}
