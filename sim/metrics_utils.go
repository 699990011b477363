// sim/metrics_utils.go
package sim

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
)

type IntOrFloat64 interface {
	int | int64 | float64
}

// CalculatePercentile returns the p-th quantile (p in [0,1]) of data using linear
// interpolation between the order statistics around the real rank (n-1)*p.
// p outside [0,1] is clamped and NaN is treated as 0. Returns 0 for empty input. data is not modified.
func CalculatePercentile[T IntOrFloat64](data []T, p float64) float64 {
	n := len(data)
	if n == 0 {
		return 0
	}

	sorted := make([]float64, n)
	for i, v := range data {
		sorted[i] = float64(v)
	}
	slices.Sort(sorted)

	if !(p > 0) {
		p = 0 // also catches NaN
	} else if p > 1 {
		p = 1
	}
	rank := float64(n-1) * p
	lowerIdx := int(math.Floor(rank))
	upperIdx := int(math.Ceil(rank))

	if lowerIdx == upperIdx {
		return sorted[lowerIdx]
	}
	return sorted[lowerIdx]*(float64(upperIdx)-rank) + sorted[upperIdx]*(rank-float64(lowerIdx))
}

// CalculateMean returns the arithmetic mean of values, or 0 for an empty slice.
func CalculateMean(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	return stat.Mean(values, nil)
}
