// Package population computes league-wide reference ranges for a metric.
package population

import (
	"math"
	"slices"
)

// Range is the {min, max, median} of one metric across the league.
type Range struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
}

// Empty reports whether the range was computed from no finite values.
func (r Range) Empty() bool {
	return math.IsNaN(r.Median)
}

// Compute returns the range of values. Non-finite values are left out of the
// population; if none remain every field is NaN.
func Compute(values []float64) Range {
	finite := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		nan := math.NaN()
		return Range{Min: nan, Max: nan, Median: nan}
	}

	slices.Sort(finite)
	return Range{
		Min:    finite[0],
		Max:    finite[len(finite)-1],
		Median: sortedMedian(finite),
	}
}

// Of selects one metric from every item and computes its range.
func Of[T any](items []T, selector func(T) float64) Range {
	values := make([]float64, len(items))
	for i, it := range items {
		values[i] = selector(it)
	}
	return Compute(values)
}

// Median returns the median of values without modifying them. An even count
// averages the two central values. It returns NaN for an empty slice.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	return sortedMedian(sorted)
}

func sortedMedian(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[(n-1)/2]
}
