package sim

import (
	"math/rand"
)

// SimulationKey identifies the base seed of a capacity sweep.
// Two runs with the same key, candidate and configuration MUST produce bit-for-bit
// identical results.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// ForCapacity returns the seed of the stream owned by the candidate with the given
// number of servers.
//
// Derivation formula: seed + servers. Callers rely on this exact derivation to get
// stable results for a given seed and candidate, so it must not change.
func (k SimulationKey) ForCapacity(servers int) int64 {
	return int64(k) + int64(servers)
}

// NewScenarioRNG returns a fresh generator for one candidate run.
// The returned *rand.Rand is NOT thread-safe and must be owned by a single run.
func NewScenarioRNG(seed int64, servers int) *rand.Rand {
	return rand.New(rand.NewSource(NewSimulationKey(seed).ForCapacity(servers)))
}
