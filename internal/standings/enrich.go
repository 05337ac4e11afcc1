package standings

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/albapepper/scoracle-standings/internal/color"
	"github.com/albapepper/scoracle-standings/internal/metrics"
	"github.com/albapepper/scoracle-standings/internal/population"
	"github.com/albapepper/scoracle-standings/internal/provider"
)

// ErrUnmatchedTeam means a standings entry has no team stats entry.
var ErrUnmatchedTeam = errors.New("no team stats for team")

const westConference = "WEST"

// Team is a standings record enriched with stats, derived metrics and colors.
type Team struct {
	provider.Standing

	// FirstWest marks the first WEST team in standings order.
	FirstWest bool `json:"first_west,omitempty"`

	TeamStats           provider.StatLine `json:"team_stats"`
	OpponentStats       provider.StatLine `json:"opponent_stats"`
	Possessions         provider.Number   `json:"possessions"`
	OpponentPossessions provider.Number   `json:"opponent_possessions"`
	Metrics             metrics.Team      `json:"metrics"`
	OpponentMetrics     metrics.Opponent  `json:"opponent_metrics"`
	Colors              Colors            `json:"colors"`
}

// Colors maps metric keys to colors. Opponent metrics are nested under "opp"
// when encoded.
type Colors struct {
	Team map[string]color.Color
	Opp  map[string]color.Color
}

// MarshalJSON implements json.Marshaler.
func (c Colors) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(c.Team)+1)
	for k, v := range c.Team {
		out[k] = v
	}
	opp := c.Opp
	if opp == nil {
		opp = map[string]color.Color{}
	}
	out["opp"] = opp
	return json.Marshal(out)
}

// League holds the league-wide reference values computed once per request.
type League struct {
	Ranges       map[string]population.Range
	PointDiffMax float64
	PointDiffMin float64
	StreakMax    float64 // longest active win streak
	StreakMin    float64 // longest active loss streak, negated
}

// Range returns the league range for m.
func (l *League) Range(m Metric) population.Range {
	return l.Ranges[m.id()]
}

// Enrich joins standings with team stats, derives every metric and colors
// each team against the league. Every standings entry must have stats.
func Enrich(st *provider.StandingsPayload, ts *provider.TeamStatsPayload) ([]Team, *League, error) {
	index, err := ts.ByTeam()
	if err != nil {
		return nil, nil, err
	}

	teams := make([]Team, 0, len(st.Standing))
	didStartWest := false
	for _, s := range st.Standing {
		entry, ok := index[s.TeamID]
		if !ok {
			return nil, nil, fmt.Errorf("team %q: %w", s.TeamID, ErrUnmatchedTeam)
		}

		d := metrics.Derive(entry.Stats, entry.StatsOpponent,
			gamesPlayed(s.GamesPlayed), s.PointsFor.Float(), s.PointsAgainst.Float())

		t := Team{
			Standing:            s,
			TeamStats:           entry.Stats,
			OpponentStats:       entry.StatsOpponent,
			Possessions:         provider.Number(d.Possessions),
			OpponentPossessions: provider.Number(d.OpponentPossessions),
			Metrics:             d.Team,
			OpponentMetrics:     d.Opponent,
		}
		if s.Conference == westConference && !didStartWest {
			t.FirstWest = true
			didStartWest = true
		}
		teams = append(teams, t)
	}

	league := Summarize(teams)
	for i := range teams {
		teams[i].Colors = league.Colorize(&teams[i])
	}
	return teams, league, nil
}

// Summarize computes the league ranges and spread extremes.
func Summarize(teams []Team) *League {
	l := &League{Ranges: make(map[string]population.Range, len(RangeMetrics))}

	ptrs := make([]*Team, len(teams))
	for i := range teams {
		ptrs[i] = &teams[i]
	}
	for _, m := range RangeMetrics {
		l.Ranges[m.id()] = population.Of(ptrs, m.Value)
	}

	first := true
	var maxWin, maxLoss float64
	for _, t := range ptrs {
		if pd := t.PointDifferentialPerGame.Float(); isFinite(pd) {
			if first || pd > l.PointDiffMax {
				l.PointDiffMax = pd
			}
			if first || pd < l.PointDiffMin {
				l.PointDiffMin = pd
			}
			first = false
		}

		total := t.StreakTotal.Float()
		if !isFinite(total) {
			continue
		}
		switch {
		case t.OnWinningStreak():
			maxWin = math.Max(maxWin, total)
		case t.OnLosingStreak():
			maxLoss = math.Max(maxLoss, total)
		}
	}
	l.StreakMax = maxWin
	l.StreakMin = -maxLoss
	return l
}

// Colorize builds the colors map for one team.
func (l *League) Colorize(t *Team) Colors {
	c := Colors{
		Team: make(map[string]color.Color, len(RangeMetrics)+8),
		Opp:  make(map[string]color.Color, 8),
	}

	for _, m := range RangeMetrics {
		col := color.FromRange(m.Value(t), l.Range(m), m.Polarity)
		if m.Side == OpponentSide {
			c.Opp[m.Key] = col
		} else {
			c.Team[m.Key] = col
		}
	}

	c.Team[KeyAwayWinPercentage] = color.FromPercent(winPct(t.AwayWon, t.AwayLost))
	c.Team[KeyConfWinPercentage] = color.FromPercent(winPct(t.ConferenceWon, t.ConferenceLost))
	c.Team[KeyHomeWinPercentage] = color.FromPercent(winPct(t.HomeWon, t.HomeLost))
	c.Team[KeyLastFive] = color.FromPercent(RecordRatio(t.LastFive))
	c.Team[KeyLastTen] = color.FromPercent(RecordRatio(t.LastTen))
	c.Team[KeyWinPercentage] = color.FromPercent(t.WinPercentage.Float())

	pointDiff, pointDiffRatio := l.PointDiffSpread(t)
	c.Team[KeyPointDiff] = color.FromSpread(pointDiff, pointDiffRatio)
	streak, streakRatio := l.StreakSpread(t)
	c.Team[KeyStreakTotal] = color.FromSpread(streak, streakRatio)
	return c
}

// PointDiffSpread returns the team's point differential per game and its
// share of the league's best (if positive) or worst (if negative).
func (l *League) PointDiffSpread(t *Team) (value, ratio float64) {
	value = t.PointDifferentialPerGame.Float()
	switch {
	case value > 0:
		ratio = safeDiv(value, l.PointDiffMax)
	case value < 0:
		ratio = safeDiv(value, l.PointDiffMin)
	}
	return value, ratio
}

// StreakSpread returns the signed streak (negative while losing) and its
// share of the league's longest streak of the same kind.
func (l *League) StreakSpread(t *Team) (value, ratio float64) {
	total := t.StreakTotal.Float()
	if t.OnWinningStreak() {
		return total, safeDiv(total, l.StreakMax)
	}
	return -total, safeDiv(-total, l.StreakMin)
}

// RecordRatio parses a "W-L" record into wins / (wins + losses). A malformed
// record yields NaN.
func RecordRatio(record string) float64 {
	w, l, ok := strings.Cut(strings.TrimSpace(record), "-")
	if !ok {
		return math.NaN()
	}
	wins, err := strconv.ParseFloat(strings.TrimSpace(w), 64)
	if err != nil {
		return math.NaN()
	}
	losses, err := strconv.ParseFloat(strings.TrimSpace(l), 64)
	if err != nil {
		return math.NaN()
	}
	return wins / (wins + losses)
}

func winPct(won, lost provider.Number) float64 {
	return won.Float() / (won.Float() + lost.Float())
}

// safeDiv returns 0 when the denominator is zero.
func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

func gamesPlayed(n provider.Number) int {
	if !isFinite(n.Float()) {
		return 0
	}
	return int(n.Float())
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
