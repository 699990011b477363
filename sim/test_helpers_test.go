package sim

import (
	"math/rand"
)

// fixedService always returns the same duration, so admission behavior can be
// checked against hand-computed timelines.
type fixedService struct {
	seconds float64
}

func (s fixedService) Sample(_ *rand.Rand) float64 {
	return s.seconds
}

// newFixedSimulator builds a simulator whose service time is deterministic.
func newFixedSimulator(servers, maxQueue int, serviceSeconds float64) *QueueSimulator {
	cfg := DefaultSimulationConfig()
	cfg.MaxQueue = maxQueue
	qs := NewQueueSimulator(servers, cfg)
	qs.Service = fixedService{seconds: serviceSeconds}
	return qs
}

// newRandFromSeed returns a fresh *rand.Rand for tests.
func newRandFromSeed(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
