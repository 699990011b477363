// Package testutil provides assertion helpers shared by the sim test packages.
package testutil

import (
	"math"
	"testing"
)

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

// AssertUnitInterval fails when v is not a finite value in [0, 1].
func AssertUnitInterval(t *testing.T, name string, v float64) {
	t.Helper()
	if math.IsNaN(v) || v < 0 || v > 1 {
		t.Errorf("%s: %v outside [0, 1]", name, v)
	}
}

// AssertNonNegative fails when v is NaN or below zero.
func AssertNonNegative(t *testing.T, name string, v float64) {
	t.Helper()
	if math.IsNaN(v) || v < 0 {
		t.Errorf("%s: %v is negative or NaN", name, v)
	}
}
