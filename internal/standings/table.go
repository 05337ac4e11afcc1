package standings

import (
	"github.com/albapepper/scoracle-standings/internal/color"
)

// Side says whose numbers a metric describes.
type Side int

const (
	// TeamSide metrics are keyed at the top level of the colors map.
	TeamSide Side = iota
	// OpponentSide metrics are keyed under "opp".
	OpponentSide
)

// Metric is one league-ranged metric: its color key, polarity and how to read
// it from an enriched team.
type Metric struct {
	Key      string
	Side     Side
	Polarity color.Polarity
	Value    func(t *Team) float64
}

// id is unique across both sides.
func (m Metric) id() string {
	if m.Side == OpponentSide {
		return "opp." + m.Key
	}
	return m.Key
}

func team(key string, p color.Polarity, v func(t *Team) float64) Metric {
	return Metric{Key: key, Side: TeamSide, Polarity: p, Value: v}
}

func opp(key string, p color.Polarity, v func(t *Team) float64) Metric {
	return Metric{Key: key, Side: OpponentSide, Polarity: p, Value: v}
}

const (
	high = color.HighGood
	low  = color.LowGood
)

// RangeMetrics lists every metric colored against the league's min, median
// and max.
var RangeMetrics = []Metric{
	team("assist_to_turnover_ratio", high, func(t *Team) float64 { return t.Metrics.AssistToTurnoverRatio.Float() }),
	team("assists_per_fg", high, func(t *Team) float64 { return t.Metrics.AssistsPerFieldGoalMade.Float() }),
	team("assists_per_game", high, func(t *Team) float64 { return t.TeamStats.AssistsPerGame.Float() }),
	team("assists_per_pos", high, func(t *Team) float64 { return t.Metrics.AssistsPerPossession.Float() }),
	team("blocks_per_game", high, func(t *Team) float64 { return t.TeamStats.BlocksPerGame.Float() }),
	team("blocks_per_opp_possession", high, func(t *Team) float64 { return t.Metrics.BlocksPerOpponentPossession.Float() }),
	team("defensive_rebound_percentage", high, func(t *Team) float64 { return t.Metrics.DefensiveReboundPct.Float() }),
	team("defensive_rebounds_per_game", high, func(t *Team) float64 { return t.TeamStats.DefensiveReboundsPerGame.Float() }),
	team("efg_pct", high, func(t *Team) float64 { return t.Metrics.EffectiveFieldGoalPct.Float() }),
	team("fg2_pct", high, func(t *Team) float64 { return t.Metrics.TwoPointFieldGoalPct.Float() }),
	team("fg3_pct", high, func(t *Team) float64 { return t.TeamStats.ThreePointFieldGoalPercentage.Float() }),
	team("fg3a_per_game", high, func(t *Team) float64 { return t.TeamStats.ThreePointFieldGoalsAttemptedPerGame.Float() }),
	team("fg3m_per_game", high, func(t *Team) float64 { return t.TeamStats.ThreePointFieldGoalsMadePerGame.Float() }),
	team("fg_pct", high, func(t *Team) float64 { return t.TeamStats.FieldGoalPercentage.Float() }),
	team("fga_per_game", high, func(t *Team) float64 { return t.TeamStats.FieldGoalsAttemptedPerGame.Float() }),
	team("fga_per_pos", high, func(t *Team) float64 { return t.Metrics.FieldGoalsAttemptedPerPossession.Float() }),
	team("fgm_per_game", high, func(t *Team) float64 { return t.TeamStats.FieldGoalsMadePerGame.Float() }),
	team("ft_pct", high, func(t *Team) float64 { return t.TeamStats.FreeThrowPercentage.Float() }),
	team("fta_per_game", high, func(t *Team) float64 { return t.TeamStats.FreeThrowsAttemptedPerGame.Float() }),
	team("fta_per_pos", high, func(t *Team) float64 { return t.Metrics.FreeThrowsAttemptedPerPossession.Float() }),
	team("ftm_per_game", high, func(t *Team) float64 { return t.TeamStats.FreeThrowsMadePerGame.Float() }),
	team("ftm_per_pos", high, func(t *Team) float64 { return t.Metrics.FreeThrowsMadePerPossession.Float() }),
	team("offensive_rebound_percentage", high, func(t *Team) float64 { return t.Metrics.OffensiveReboundPct.Float() }),
	team("offensive_rebounds_per_game", high, func(t *Team) float64 { return t.TeamStats.OffensiveReboundsPerGame.Float() }),
	team("personal_foul_percentage", low, func(t *Team) float64 { return t.Metrics.PersonalFoulPct.Float() }),
	team("personal_fouls_per_game", low, func(t *Team) float64 { return t.TeamStats.PersonalFoulsPerGame.Float() }),
	team("points_per_game", high, func(t *Team) float64 { return t.TeamStats.PointsPerGame.Float() }),
	team("points_per_pos", high, func(t *Team) float64 { return t.Metrics.PointsPerPossession.Float() }),
	team("possessions_per_game", high, func(t *Team) float64 { return t.Metrics.PossessionsPerGame.Float() }),
	team("rebound_percentage", high, func(t *Team) float64 { return t.Metrics.ReboundPct.Float() }),
	team("rebounds_per_game", high, func(t *Team) float64 { return t.TeamStats.ReboundsPerGame.Float() }),
	team("steals_per_game", high, func(t *Team) float64 { return t.TeamStats.StealsPerGame.Float() }),
	team("steals_per_opp_possession", high, func(t *Team) float64 { return t.Metrics.StealsPerOpponentPossession.Float() }),
	team("ts_pct", high, func(t *Team) float64 { return t.Metrics.TrueShootingPct.Float() }),
	team("turnovers_per_game", low, func(t *Team) float64 { return t.TeamStats.TurnoversPerGame.Float() }),
	team("turnovers_per_pos", low, func(t *Team) float64 { return t.Metrics.TurnoversPerPossession.Float() }),

	opp("fg_pct", low, func(t *Team) float64 { return t.OpponentStats.FieldGoalPercentage.Float() }),
	opp("fg_pp", low, func(t *Team) float64 { return t.OpponentMetrics.FieldGoalsAttemptedPerPossession.Float() }),
	opp("personal_foul_percentage", high, func(t *Team) float64 { return t.OpponentMetrics.PersonalFoulPct.Float() }),
	opp("personal_fouls_per_game", high, func(t *Team) float64 { return t.OpponentStats.PersonalFoulsPerGame.Float() }),
	opp("points_per_pos", low, func(t *Team) float64 { return t.OpponentMetrics.PointsPerPossession.Float() }),
	opp("possessions_per_game", high, func(t *Team) float64 { return t.OpponentMetrics.PossessionsPerGame.Float() }),
	opp("turnovers_per_game", high, func(t *Team) float64 { return t.OpponentStats.TurnoversPerGame.Float() }),
	opp("turnovers_per_pos", high, func(t *Team) float64 { return t.OpponentMetrics.TurnoversPerPossession.Float() }),
}

// Keys of the percent- and spread-colored metrics.
const (
	KeyAwayWinPercentage = "away_win_percentage"
	KeyConfWinPercentage = "conf_win_percentage"
	KeyHomeWinPercentage = "home_win_percentage"
	KeyLastFive          = "last_five"
	KeyLastTen           = "last_ten"
	KeyWinPercentage     = "win_percentage"
	KeyPointDiff         = "point_diff"
	KeyStreakTotal       = "streak_total"
)
