// Package provider defines the canonical shapes of the two upstream datasets,
// standings and team stats, and decodes raw payloads into them.
//
// Every numeric field is a Number, so string-encoded values from the API are
// parsed once here and all downstream code sees float64.
package provider

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Dataset names, which are also the snapshot file names.
const (
	DatasetStandings = "standings"
	DatasetTeamStats = "team-stats"
)

// ErrDuplicateTeam is returned when a payload lists the same team twice.
var ErrDuplicateTeam = errors.New("duplicate team")

// --------------------------------------------------------------------------
// Standings
// --------------------------------------------------------------------------

// StandingsPayload is the standings dataset.
type StandingsPayload struct {
	StandingsDate string     `json:"standings_date"`
	Standing      []Standing `json:"standing"`
}

// Standing is one team's record. TeamID is the join key with TeamStatsEntry.
type Standing struct {
	TeamID        string `json:"team_id"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Conference    string `json:"conference"`
	Division      string `json:"division"`
	OrdinalRank   string `json:"ordinal_rank,omitempty"`
	Rank          Number `json:"rank"`
	GamesPlayed   Number `json:"games_played"`
	Won           Number `json:"won"`
	Lost          Number `json:"lost"`
	GamesBack     Number `json:"games_back"`
	StreakType    string `json:"streak_type"`
	StreakTotal   Number `json:"streak_total"`
	LastFive      string `json:"last_five"`
	LastTen       string `json:"last_ten"`
	PointsFor     Number `json:"points_for"`
	PointsAgainst Number `json:"points_against"`

	PointsScoredPerGame      Number `json:"points_scored_per_game"`
	PointsAllowedPerGame     Number `json:"points_allowed_per_game"`
	PointDifferential        Number `json:"point_differential"`
	PointDifferentialPerGame Number `json:"point_differential_per_game"`
	WinPercentage            Number `json:"win_percentage"`

	HomeWon        Number `json:"home_won"`
	HomeLost       Number `json:"home_lost"`
	AwayWon        Number `json:"away_won"`
	AwayLost       Number `json:"away_lost"`
	ConferenceWon  Number `json:"conference_won"`
	ConferenceLost Number `json:"conference_lost"`
}

// OnWinningStreak reports whether the team's current streak is a win streak.
// Any other streak type is signed as a losing streak.
func (s Standing) OnWinningStreak() bool {
	return s.StreakType == "win"
}

// OnLosingStreak reports whether the streak type is exactly "loss". Only these
// teams set the league's longest losing streak.
func (s Standing) OnLosingStreak() bool {
	return s.StreakType == "loss"
}

// DecodeStandings parses a standings payload.
func DecodeStandings(data []byte) (*StandingsPayload, error) {
	var p StandingsPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode standings: %w", err)
	}
	return &p, nil
}

// --------------------------------------------------------------------------
// Team stats
// --------------------------------------------------------------------------

// TeamStatsPayload is the team stats dataset.
type TeamStatsPayload struct {
	TeamStatsDate string           `json:"team_stats_date"`
	TeamStats     []TeamStatsEntry `json:"team_stats"`
}

// TeamStatsEntry holds a team's own season stats and its opponents' stats.
type TeamStatsEntry struct {
	Team          TeamRef  `json:"team"`
	Stats         StatLine `json:"stats"`
	StatsOpponent StatLine `json:"stats_opponent"`
}

// TeamRef identifies the team a stats entry belongs to.
type TeamRef struct {
	TeamID       string `json:"team_id"`
	Abbreviation string `json:"abbreviation,omitempty"`
	FirstName    string `json:"first_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`
}

// StatLine is a season's counting stats plus the upstream per-game and
// percentage figures (string-encoded in the API).
type StatLine struct {
	FieldGoalsMade                Number `json:"field_goals_made"`
	FieldGoalsAttempted           Number `json:"field_goals_attempted"`
	ThreePointFieldGoalsMade      Number `json:"three_point_field_goals_made"`
	ThreePointFieldGoalsAttempted Number `json:"three_point_field_goals_attempted"`
	FreeThrowsMade                Number `json:"free_throws_made"`
	FreeThrowsAttempted           Number `json:"free_throws_attempted"`
	OffensiveRebounds             Number `json:"offensive_rebounds"`
	DefensiveRebounds             Number `json:"defensive_rebounds"`
	Rebounds                      Number `json:"rebounds"`
	Assists                       Number `json:"assists"`
	Turnovers                     Number `json:"turnovers"`
	Steals                        Number `json:"steals"`
	Blocks                        Number `json:"blocks"`
	PersonalFouls                 Number `json:"personal_fouls"`
	Points                        Number `json:"points"`

	PointsPerGame                        Number `json:"points_per_game_string"`
	AssistsPerGame                       Number `json:"assists_per_game_string"`
	ReboundsPerGame                      Number `json:"rebounds_per_game_string"`
	OffensiveReboundsPerGame             Number `json:"offensive_rebounds_per_game_string"`
	DefensiveReboundsPerGame             Number `json:"defensive_rebounds_per_game_string"`
	BlocksPerGame                        Number `json:"blocks_per_game_string"`
	StealsPerGame                        Number `json:"steals_per_game_string"`
	TurnoversPerGame                     Number `json:"turnovers_per_game_string"`
	PersonalFoulsPerGame                 Number `json:"personal_fouls_per_game_string"`
	FieldGoalsAttemptedPerGame           Number `json:"field_goals_attempted_per_game_string"`
	FieldGoalsMadePerGame                Number `json:"field_goals_made_per_game_string"`
	FieldGoalPercentage                  Number `json:"field_goal_percentage_string"`
	ThreePointFieldGoalsAttemptedPerGame Number `json:"three_point_field_goals_attempted_per_game_string"`
	ThreePointFieldGoalsMadePerGame      Number `json:"three_point_field_goals_made_per_game_string"`
	ThreePointFieldGoalPercentage        Number `json:"three_point_field_goal_percentage_string"`
	FreeThrowsAttemptedPerGame           Number `json:"free_throws_attempted_per_game_string"`
	FreeThrowsMadePerGame                Number `json:"free_throws_made_per_game_string"`
	FreeThrowPercentage                  Number `json:"free_throw_percentage_string"`
}

// DecodeTeamStats parses a team stats payload.
func DecodeTeamStats(data []byte) (*TeamStatsPayload, error) {
	var p TeamStatsPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode team stats: %w", err)
	}
	return &p, nil
}

// ByTeam indexes the entries by team ID.
func (p *TeamStatsPayload) ByTeam() (map[string]TeamStatsEntry, error) {
	out := make(map[string]TeamStatsEntry, len(p.TeamStats))
	for _, e := range p.TeamStats {
		if _, exists := out[e.Team.TeamID]; exists {
			return nil, fmt.Errorf("team stats %q: %w", e.Team.TeamID, ErrDuplicateTeam)
		}
		out[e.Team.TeamID] = e
	}
	return out, nil
}
