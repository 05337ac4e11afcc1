// Package metrics derives per-team efficiency metrics from season counting
// stats.
//
// Formulas are applied exactly as written below in float64. Nothing is
// clamped: a zero denominator yields ±Inf or NaN, which the JSON encoding of
// provider.Number renders as null.
package metrics

import (
	"github.com/albapepper/scoracle-standings/internal/provider"
)

// FreeThrowPossessionFactor weights free throw attempts in the possession
// estimate.
const FreeThrowPossessionFactor = 0.44

// Derived holds everything computed for one team.
type Derived struct {
	Possessions         float64  `json:"possessions"`
	OpponentPossessions float64  `json:"opponent_possessions"`
	Team                Team     `json:"team"`
	Opponent            Opponent `json:"opponent"`
}

// Team is the team-side metric set.
type Team struct {
	PossessionsPerGame               provider.Number `json:"possessions_per_game"`
	AssistToTurnoverRatio            provider.Number `json:"assist_to_turnover_ratio"`
	EffectiveFieldGoalPct            provider.Number `json:"effective_field_goal_percentage"`
	TwoPointFieldGoalPct             provider.Number `json:"two_point_field_goal_percentage"`
	TrueShootingPct                  provider.Number `json:"true_shooting_percentage"`
	FreeThrowsAttemptedPerPossession provider.Number `json:"free_throws_attempted_per_pos"`
	FreeThrowsMadePerPossession      provider.Number `json:"free_throws_made_per_pos"`
	PointsPerPossession              provider.Number `json:"points_per_pos"`
	AssistsPerPossession             provider.Number `json:"assists_per_pos"`
	FieldGoalsAttemptedPerPossession provider.Number `json:"field_goals_attempted_per_pos"`
	TurnoversPerPossession           provider.Number `json:"turnovers_per_pos"`
	AssistsPerFieldGoalMade          provider.Number `json:"assists_per_fg"`
	ReboundPct                       provider.Number `json:"rebound_percentage"`
	DefensiveReboundPct              provider.Number `json:"defensive_rebound_percentage"`
	OffensiveReboundPct              provider.Number `json:"offensive_rebound_percentage"`
	BlocksPerOpponentPossession      provider.Number `json:"blocks_per_opp_possession"`
	StealsPerOpponentPossession      provider.Number `json:"steals_per_opp_possession"`
	PersonalFoulPct                  provider.Number `json:"personal_foul_percentage"`
}

// Opponent is the opponent-side metric set.
type Opponent struct {
	PossessionsPerGame               provider.Number `json:"possessions_per_game"`
	PointsPerPossession              provider.Number `json:"points_per_pos"`
	TurnoversPerPossession           provider.Number `json:"turnovers_per_pos"`
	FieldGoalsAttemptedPerPossession provider.Number `json:"field_goals_attempted_per_pos"`
	PersonalFoulPct                  provider.Number `json:"personal_foul_percentage"`
}

// Possessions estimates offensive possessions: (FGA + TOV - OREB) + 0.44 * FTA.
func Possessions(s provider.StatLine) float64 {
	return (s.FieldGoalsAttempted.Float() + s.Turnovers.Float() - s.OffensiveRebounds.Float()) +
		(s.FreeThrowsAttempted.Float() * FreeThrowPossessionFactor)
}

// Derive computes the metric sets for a team given its own stat line, its
// opponents' stat line, games played and season points for and against.
func Derive(team, opp provider.StatLine, gamesPlayed int, pointsFor, pointsAgainst float64) Derived {
	pos := Possessions(team)
	oppPos := Possessions(opp)
	games := float64(gamesPlayed)

	var (
		fgm  = team.FieldGoalsMade.Float()
		fga  = team.FieldGoalsAttempted.Float()
		fg3m = team.ThreePointFieldGoalsMade.Float()
		fg3a = team.ThreePointFieldGoalsAttempted.Float()
		ftm  = team.FreeThrowsMade.Float()
		fta  = team.FreeThrowsAttempted.Float()
		oreb = team.OffensiveRebounds.Float()
		dreb = team.DefensiveRebounds.Float()
		reb  = team.Rebounds.Float()
		ast  = team.Assists.Float()
		tov  = team.Turnovers.Float()
		stl  = team.Steals.Float()
		blk  = team.Blocks.Float()
		pf   = team.PersonalFouls.Float()
		pts  = team.Points.Float()
	)

	return Derived{
		Possessions:         pos,
		OpponentPossessions: oppPos,
		Team: Team{
			PossessionsPerGame:               provider.Number(pos / games),
			AssistToTurnoverRatio:            provider.Number(ast / tov),
			EffectiveFieldGoalPct:            provider.Number((fgm + (0.5 * fg3m)) / fga),
			TwoPointFieldGoalPct:             provider.Number((fgm - fg3m) / (fga - fg3a)),
			TrueShootingPct:                  provider.Number(pts / (2 * (fga + (fta * FreeThrowPossessionFactor)))),
			FreeThrowsAttemptedPerPossession: provider.Number(fta / pos),
			FreeThrowsMadePerPossession:      provider.Number(ftm / pos),
			PointsPerPossession:              provider.Number(pointsFor / pos),
			AssistsPerPossession:             provider.Number(ast / pos),
			FieldGoalsAttemptedPerPossession: provider.Number(fga / pos),
			TurnoversPerPossession:           provider.Number(tov / pos),
			AssistsPerFieldGoalMade:          provider.Number(ast / fgm),
			ReboundPct:                       provider.Number(reb / (reb + opp.Rebounds.Float())),
			DefensiveReboundPct:              provider.Number(dreb / (dreb + opp.OffensiveRebounds.Float())),
			OffensiveReboundPct:              provider.Number(oreb / (oreb + opp.DefensiveRebounds.Float())),
			BlocksPerOpponentPossession:      provider.Number(blk / oppPos),
			StealsPerOpponentPossession:      provider.Number(stl / oppPos),
			PersonalFoulPct:                  provider.Number(pf / oppPos),
		},
		Opponent: Opponent{
			PossessionsPerGame:               provider.Number(oppPos / games),
			PointsPerPossession:              provider.Number(pointsAgainst / oppPos),
			TurnoversPerPossession:           provider.Number(opp.Turnovers.Float() / oppPos),
			FieldGoalsAttemptedPerPossession: provider.Number(opp.FieldGoalsAttempted.Float() / oppPos),
			PersonalFoulPct:                  provider.Number(opp.PersonalFouls.Float() / pos),
		},
	}
}
