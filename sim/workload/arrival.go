package workload

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// ProfileHours is the number of hourly rates an ArrivalRateProfile must carry.
const ProfileHours = 12

// SecondsPerHour converts hour indices into timeline seconds.
const SecondsPerHour = 3600.0

// maxPreallocArrivals caps the capacity hint GenerateArrivals derives from the profile.
const maxPreallocArrivals = 1 << 16

// ErrInvalidProfile is wrapped by every profile validation failure.
var ErrInvalidProfile = errors.New("invalid arrival profile")

// ArrivalRateProfile holds the expected number of arrivals for each hour of the horizon.
type ArrivalRateProfile []float64

// DefaultArrivalProfile returns the reference daytime profile (peak around hour 4).
func DefaultArrivalProfile() ArrivalRateProfile {
	return ArrivalRateProfile{10, 13, 18, 22, 26, 24, 23, 20, 18, 16, 14, 11}
}

// Validate checks the profile length and that every rate is a finite non-negative number.
func (p ArrivalRateProfile) Validate() error {
	if len(p) != ProfileHours {
		return fmt.Errorf("%w: must have %d hourly values (one per hour), got %d", ErrInvalidProfile, ProfileHours, len(p))
	}
	for h, rate := range p {
		if math.IsNaN(rate) || math.IsInf(rate, 0) {
			return fmt.Errorf("%w: hour %d rate is not a finite number", ErrInvalidProfile, h)
		}
		if rate < 0 {
			return fmt.Errorf("%w: hour %d rate %.3f is negative", ErrInvalidProfile, h, rate)
		}
	}
	return nil
}

// Total returns the expected number of arrivals over the whole profile.
func (p ArrivalRateProfile) Total() float64 {
	total := 0.0
	for _, rate := range p {
		total += rate
	}
	return total
}

// SamplePoisson draws a Poisson(lambda) count with the multiplicative inversion method.
// The uniform draw sequence is part of the reproducibility contract: a result of k
// consumes exactly k+1 rng.Float64() calls when lambda > 0, and none when lambda is 0.
func SamplePoisson(lambda float64, rng *rand.Rand) int {
	l := math.Exp(-lambda)
	k := 0
	p := 1.0
	for p > l {
		k++
		p *= rng.Float64()
	}
	return max(0, k-1)
}

// GenerateArrivals turns an hourly rate profile into sorted arrival timestamps,
// in seconds since the start of the horizon.
//
// For each hour h the count is drawn first, then that many uniform offsets within
// [h*3600, (h+1)*3600). The rng state is consumed; the output is deterministic for a
// given rng state and profile.
func GenerateArrivals(profile ArrivalRateProfile, rng *rand.Rand) []float64 {
	hint := 0
	if total := profile.Total(); total > 0 && total < maxPreallocArrivals {
		hint = int(total)
	}
	arrivals := make([]float64, 0, hint)
	for hour, rate := range profile {
		count := SamplePoisson(rate, rng)
		for i := 0; i < count; i++ {
			arrivals = append(arrivals, float64(hour)*SecondsPerHour+rng.Float64()*SecondsPerHour)
		}
	}
	sort.Float64s(arrivals)
	return arrivals
}
