package color

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/albapepper/scoracle-standings/internal/population"
)

func TestFromRangeExtremes(t *testing.T) {
	ranges := []population.Range{
		{Min: 1, Median: 2, Max: 3},
		{Min: -4.5, Median: 0.1, Max: 12},
		{Min: 0.41, Median: 0.455, Max: 0.52},
	}
	for _, r := range ranges {
		if got := FromRange(r.Max, r, HighGood); got != Hi {
			t.Fatalf("max of %+v high-good: expected Hi, got %v", r, got)
		}
		if got := FromRange(r.Min, r, HighGood); got != Low {
			t.Fatalf("min of %+v high-good: expected Low, got %v", r, got)
		}
		if got := FromRange(r.Max, r, LowGood); got != Low {
			t.Fatalf("max of %+v low-good: expected Low, got %v", r, got)
		}
		if got := FromRange(r.Min, r, LowGood); got != Hi {
			t.Fatalf("min of %+v low-good: expected Hi, got %v", r, got)
		}
		for _, p := range []Polarity{HighGood, LowGood} {
			if got := FromRange(r.Median, r, p); got != Mid {
				t.Fatalf("median of %+v %v: expected Mid, got %v", r, p, got)
			}
		}
	}
}

func TestFromRangeSingleTeamPrefersMax(t *testing.T) {
	r := population.Compute([]float64{7})
	if got := FromRange(7, r, HighGood); got != Hi {
		t.Fatalf("expected Hi, got %v", got)
	}
	if got := FromRange(7, r, LowGood); got != Low {
		t.Fatalf("expected Low, got %v", got)
	}
}

func TestFromRangeInterpolates(t *testing.T) {
	r := population.Range{Min: 0, Median: 2, Max: 6}

	above := FromRange(4, r, HighGood)
	if want := (Color{161, 201, 200}); above != want {
		t.Fatalf("above median: expected %v, got %v", want, above)
	}

	// Halfway between min and median blends Mid and Low evenly.
	below := FromRange(1, r, HighGood)
	if want := (Color{234, 175, 141}); below != want {
		t.Fatalf("below median: expected %v, got %v", want, below)
	}

	// Low-good swaps which reference sits on each side.
	if got := FromRange(4, r, LowGood); got != (Color{234, 175, 141}) {
		t.Fatalf("low-good above median: got %v", got)
	}
}

func TestFromRangeLowGoodSwapsEnds(t *testing.T) {
	r := population.Range{Min: 0, Median: 5, Max: 10}
	f := 1 - (2.0 / 5.0)

	tests := []struct {
		name  string
		value float64
		p     Polarity
		want  Color
	}{
		{"high-good toward max", 8, HighGood, Blend(Hi, Mid, f)},
		{"low-good toward max", 8, LowGood, Blend(Low, Mid, f)},
		{"high-good toward min", 3, HighGood, Blend(Mid, Low, f)},
		{"low-good toward min", 3, LowGood, Blend(Mid, Hi, f)},
	}
	for _, tt := range tests {
		if got := FromRange(tt.value, r, tt.p); got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}
}

func TestFromRangeNonFinite(t *testing.T) {
	r := population.Range{Min: 0, Median: 1, Max: 2}
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		for _, p := range []Polarity{HighGood, LowGood} {
			if got := FromRange(v, r, p); got != Low {
				t.Fatalf("FromRange(%v, %v): expected Low, got %v", v, p, got)
			}
		}
	}
}

func TestFromPercent(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  Color
	}{
		{name: "neutral", value: 0.5, want: Mid},
		{name: "perfect", value: 1, want: Hi},
		{name: "winless", value: 0, want: Low},
		{name: "three quarters", value: 0.75, want: Color{161, 201, 200}},
		{name: "undefined", value: math.NaN(), want: Low},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromPercent(tt.value); got != tt.want {
				t.Fatalf("FromPercent(%v): expected %v, got %v", tt.value, tt.want, got)
			}
		})
	}
}

func TestFromSpread(t *testing.T) {
	for _, ratio := range []float64{0, 0.3, 1, -1} {
		if got := FromSpread(0, ratio); got != Mid {
			t.Fatalf("FromSpread(0, %v): expected Mid, got %v", ratio, got)
		}
	}
	if got := FromSpread(5, 1); got != Hi {
		t.Fatalf("league best spread: expected Hi, got %v", got)
	}
	if got := FromSpread(-3, 1); got != Low {
		t.Fatalf("league worst spread: expected Low, got %v", got)
	}
	if got := FromSpread(2, 0.5); got != (Color{161, 201, 200}) {
		t.Fatalf("half spread: got %v", got)
	}
}

func TestBlendSameColorIsIdentity(t *testing.T) {
	colors := []Color{Low, Mid, Hi, {0, 0, 0}, {255, 255, 255}, {1, 2, 3}}
	fractions := []float64{0, 0.01, 1.0 / 3, 0.5, 2.0 / 3, 0.99, 1}
	for _, c := range colors {
		for _, f := range fractions {
			if got := Blend(c, c, f); got != c {
				t.Fatalf("Blend(%v, %v, %v): expected %v, got %v", c, c, f, c, got)
			}
		}
	}
}

func TestBlendClampsFraction(t *testing.T) {
	if got := Blend(Hi, Low, 2); got != Hi {
		t.Fatalf("fraction above 1: expected Hi, got %v", got)
	}
	if got := Blend(Hi, Low, -1); got != Low {
		t.Fatalf("fraction below 0: expected Low, got %v", got)
	}
	if got := Blend(Hi, Low, math.NaN()); got != Low {
		t.Fatalf("NaN fraction: expected Low, got %v", got)
	}
}

func TestColorText(t *testing.T) {
	data, err := json.Marshal(map[string]Color{"ts_pct": Hi})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"ts_pct":"67,147,195"}` {
		t.Fatalf("unexpected JSON %s", data)
	}

	var c Color
	if err := c.UnmarshalText([]byte("214, 96, 77")); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if c != Low {
		t.Fatalf("expected Low, got %v", c)
	}
	if err := c.UnmarshalText([]byte("1,2")); err == nil {
		t.Fatal("expected error for two channels")
	}
}

func TestPolarityString(t *testing.T) {
	if HighGood.String() != "high" || LowGood.String() != "low" {
		t.Fatalf("unexpected polarity names %q %q", HighGood, LowGood)
	}
	var zero Polarity
	if zero != HighGood {
		t.Fatal("expected zero polarity to be HighGood")
	}
}
