package workload

import (
	"math/rand"
)

// ServiceSampler generates service durations for admitted customers.
type ServiceSampler interface {
	// Sample returns a service duration in seconds.
	Sample(rng *rand.Rand) float64
}

// ExponentialService produces exponentially-distributed service durations.
type ExponentialService struct {
	MeanMinutes float64
}

// Sample draws minutes with the configured mean and converts them to seconds.
func (s ExponentialService) Sample(rng *rand.Rand) float64 {
	minutes := rng.ExpFloat64() * s.MeanMinutes
	return minutes * 60.0
}
