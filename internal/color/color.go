// Package color maps a metric value to an RGB color that shows where a team
// sits relative to the rest of the league.
//
// Three reference colors anchor every gradient, inspired by colorbrewer2.org:
// Low (red) is the bad end, Mid (yellow) is neutral and Hi (blue) is the good
// end. All mapping functions are pure.
package color

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/albapepper/scoracle-standings/internal/population"
)

// Color is an RGB triple. It serializes as the text "r,g,b".
type Color struct {
	R, G, B uint8
}

// Reference colors.
var (
	Low = Color{214, 96, 77}
	Mid = Color{255, 255, 205}
	Hi  = Color{67, 147, 195}
)

// Polarity says whether a larger value is better for coloring purposes.
type Polarity int

const (
	// HighGood colors the league maximum Hi. It is the zero value.
	HighGood Polarity = iota
	// LowGood colors the league minimum Hi (fouls, turnovers, opponent shooting).
	LowGood
)

func (p Polarity) String() string {
	switch p {
	case HighGood:
		return "high"
	case LowGood:
		return "low"
	default:
		return fmt.Sprintf("Polarity(%d)", int(p))
	}
}

// String returns the "r,g,b" form.
func (c Color) String() string {
	return fmt.Sprintf("%d,%d,%d", c.R, c.G, c.B)
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(b []byte) error {
	parts := strings.Split(string(b), ",")
	if len(parts) != 3 {
		return fmt.Errorf("color %q: want 3 channels, got %d", b, len(parts))
	}
	var ch [3]uint8
	for i, p := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return fmt.Errorf("color %q channel %d: %w", b, i, err)
		}
		ch[i] = uint8(n)
	}
	c.R, c.G, c.B = ch[0], ch[1], ch[2]
	return nil
}

// Blend mixes a and b per channel, using fractionOfA of a and the rest of b.
// The fraction is clamped to [0,1] and handled as a 0–100 percentage; each
// channel is floored to an integer.
func Blend(a, b Color, fractionOfA float64) Color {
	pctA := clampFraction(fractionOfA) * 100
	pctB := 100 - pctA
	return Color{
		R: blendChannel(a.R, b.R, pctA, pctB),
		G: blendChannel(a.G, b.G, pctA, pctB),
		B: blendChannel(a.B, b.B, pctA, pctB),
	}
}

func blendChannel(a, b uint8, pctA, pctB float64) uint8 {
	if a == b {
		return a
	}
	return uint8(math.Floor((float64(a)*pctA + float64(b)*pctB) / 100))
}

// clampFraction bounds f to [0,1]; NaN becomes 0.
func clampFraction(f float64) float64 {
	if !(f > 0) {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// FromRange colors value against a league population.
//
// The extremes are matched by exact value equality, so every team tied at an
// extreme gets that extreme's color. The maximum is Hi for HighGood and Low
// for LowGood. Precedence is max, then min, then median.
// A non-finite value is colored Low.
func FromRange(value float64, r population.Range, p Polarity) Color {
	if !isFinite(value) {
		return Low
	}

	atMax, atMin := Hi, Low
	if p == LowGood {
		atMax, atMin = Low, Hi
	}

	switch {
	case value == r.Max:
		return atMax
	case value == r.Min:
		return atMin
	case value == r.Median:
		return Mid
	case value > r.Median:
		spectrum := r.Max - r.Median
		place := r.Max - value
		return Blend(atMax, Mid, 1-(place/spectrum))
	default:
		spectrum := r.Median - r.Min
		place := r.Median - value
		return Blend(Mid, atMin, 1-(place/spectrum))
	}
}

// FromPercent colors a ratio in [0,1] where 0.5 is neutral.
func FromPercent(value float64) Color {
	switch {
	case !isFinite(value):
		return Low
	case value > 0.5:
		return Blend(Hi, Mid, (value-0.5)*2)
	case value == 0.5:
		return Mid
	default:
		return Blend(Mid, Low, value*2)
	}
}

// FromSpread colors a signed metric. The sign of signed picks the side and
// ratio, the value's share of the league extreme on that side, picks how far
// from Mid the color sits.
func FromSpread(signed, ratio float64) Color {
	switch {
	case !isFinite(signed):
		return Low
	case signed > 0:
		return Blend(Hi, Mid, ratio)
	case signed == 0:
		return Mid
	default:
		return Blend(Low, Mid, ratio)
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
