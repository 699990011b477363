package workload

import (
	"math/rand"
	"testing"

	"github.com/capacity-sim/capacity-sim/sim/internal/testutil"
)

func TestExponentialService_MeanMatchesParam(t *testing.T) {
	// GIVEN a 22-minute mean service time
	rng := rand.New(rand.NewSource(42))
	s := ExponentialService{MeanMinutes: 22}

	// WHEN 20000 durations are sampled
	n := 20000
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += s.Sample(rng)
	}

	// THEN the mean is ≈ 22*60 seconds (within 3%)
	testutil.AssertFloat64Equal(t, "mean service seconds", 1320, sum/float64(n), 0.03)
}

func TestExponentialService_NonNegative(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	s := ExponentialService{MeanMinutes: 5}
	for i := 0; i < 1000; i++ {
		if v := s.Sample(rng); v < 0 {
			t.Fatalf("negative duration %f", v)
		}
	}
}
