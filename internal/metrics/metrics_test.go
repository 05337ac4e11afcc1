package metrics

import (
	"math"
	"testing"

	"github.com/albapepper/scoracle-standings/internal/provider"
)

func approx(t *testing.T, name string, got provider.Number, want float64) {
	t.Helper()
	if math.Abs(got.Float()-want) > 1e-9 {
		t.Fatalf("%s: expected %v, got %v", name, want, got.Float())
	}
}

func sampleTeam() provider.StatLine {
	return provider.StatLine{
		FieldGoalsMade:                40,
		FieldGoalsAttempted:           85,
		ThreePointFieldGoalsMade:      10,
		ThreePointFieldGoalsAttempted: 28,
		FreeThrowsMade:                16,
		FreeThrowsAttempted:           20,
		OffensiveRebounds:             10,
		DefensiveRebounds:             34,
		Rebounds:                      44,
		Assists:                       24,
		Turnovers:                     14,
		Steals:                        8,
		Blocks:                        5,
		PersonalFouls:                 19,
		Points:                        106,
	}
}

func sampleOpponent() provider.StatLine {
	return provider.StatLine{
		FieldGoalsMade:                38,
		FieldGoalsAttempted:           88,
		ThreePointFieldGoalsMade:      9,
		ThreePointFieldGoalsAttempted: 27,
		FreeThrowsMade:                15,
		FreeThrowsAttempted:           19,
		OffensiveRebounds:             11,
		DefensiveRebounds:             33,
		Rebounds:                      44,
		Assists:                       21,
		Turnovers:                     15,
		Steals:                        7,
		Blocks:                        4,
		PersonalFouls:                 20,
		Points:                        100,
	}
}

func TestPossessions(t *testing.T) {
	got := Possessions(sampleTeam())
	if math.Abs(got-97.8) > 1e-9 {
		t.Fatalf("expected 97.8 possessions, got %v", got)
	}
}

func TestDeriveTeamMetrics(t *testing.T) {
	team, opp := sampleTeam(), sampleOpponent()
	d := Derive(team, opp, 1, 106, 100)

	pos := 89 + 20*FreeThrowPossessionFactor
	oppPos := (88.0 + 15 - 11) + 19*FreeThrowPossessionFactor
	if math.Abs(d.Possessions-pos) > 1e-9 || math.Abs(d.OpponentPossessions-oppPos) > 1e-9 {
		t.Fatalf("unexpected possessions %v %v", d.Possessions, d.OpponentPossessions)
	}

	approx(t, "possessions per game", d.Team.PossessionsPerGame, pos)
	approx(t, "ast/tov", d.Team.AssistToTurnoverRatio, 24.0/14)
	approx(t, "efg", d.Team.EffectiveFieldGoalPct, 45.0/85)
	approx(t, "fg2", d.Team.TwoPointFieldGoalPct, 30.0/57)
	approx(t, "ts", d.Team.TrueShootingPct, 106/(2*(85+8.8)))
	approx(t, "fta/pos", d.Team.FreeThrowsAttemptedPerPossession, 20/pos)
	approx(t, "ftm/pos", d.Team.FreeThrowsMadePerPossession, 16/pos)
	approx(t, "pts/pos", d.Team.PointsPerPossession, 106/pos)
	approx(t, "ast/pos", d.Team.AssistsPerPossession, 24/pos)
	approx(t, "fga/pos", d.Team.FieldGoalsAttemptedPerPossession, 85/pos)
	approx(t, "tov/pos", d.Team.TurnoversPerPossession, 14/pos)
	approx(t, "ast/fg", d.Team.AssistsPerFieldGoalMade, 24.0/40)
	approx(t, "reb%", d.Team.ReboundPct, 44.0/88)
	approx(t, "dreb%", d.Team.DefensiveReboundPct, 34.0/45)
	approx(t, "oreb%", d.Team.OffensiveReboundPct, 10.0/43)
	approx(t, "blk/opp pos", d.Team.BlocksPerOpponentPossession, 5/oppPos)
	approx(t, "stl/opp pos", d.Team.StealsPerOpponentPossession, 8/oppPos)
	approx(t, "pf%", d.Team.PersonalFoulPct, 19/oppPos)
}

func TestDeriveOpponentMetrics(t *testing.T) {
	d := Derive(sampleTeam(), sampleOpponent(), 2, 212, 200)
	oppPos := d.OpponentPossessions

	approx(t, "opp possessions per game", d.Opponent.PossessionsPerGame, oppPos/2)
	approx(t, "opp pts/pos", d.Opponent.PointsPerPossession, 200/oppPos)
	approx(t, "opp tov/pos", d.Opponent.TurnoversPerPossession, 15/oppPos)
	approx(t, "opp fga/pos", d.Opponent.FieldGoalsAttemptedPerPossession, 88/oppPos)
	approx(t, "opp pf%", d.Opponent.PersonalFoulPct, 20/d.Possessions)
}

func TestEffectiveFieldGoalExample(t *testing.T) {
	d := Derive(sampleTeam(), sampleOpponent(), 1, 0, 0)
	approx(t, "efg", d.Team.EffectiveFieldGoalPct, 0.5294117647058824)
}

func TestDeriveDivisionByZeroPropagates(t *testing.T) {
	team := sampleTeam()
	team.Turnovers = 0
	team.FieldGoalsMade = 0
	team.Assists = 0
	d := Derive(team, sampleOpponent(), 0, 100, 100)

	if !math.IsInf(d.Team.PossessionsPerGame.Float(), 1) {
		t.Fatalf("expected +Inf possessions per game with zero games, got %v", d.Team.PossessionsPerGame)
	}
	if !math.IsNaN(d.Team.AssistToTurnoverRatio.Float()) {
		t.Fatalf("expected NaN for 0/0, got %v", d.Team.AssistToTurnoverRatio)
	}
	if !math.IsNaN(d.Team.AssistsPerFieldGoalMade.Float()) {
		t.Fatalf("expected NaN for 0/0, got %v", d.Team.AssistsPerFieldGoalMade)
	}
}
