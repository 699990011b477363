package sim

import (
	"errors"
	"fmt"
)

// ErrNoResults is returned when there is nothing to recommend from.
var ErrNoResults = errors.New("no scenario results to recommend from")

// Constraints bound the service level a recommended capacity must meet.
type Constraints struct {
	MaxAvgWaitMinutes float64 `json:"max_avg_wait" yaml:"max_avg_wait"`
	MaxRejectionRate  float64 `json:"max_rejection_rate" yaml:"max_rejection_rate"`
}

// DefaultConstraints returns a 10 minute average wait and 5% rejection ceiling.
func DefaultConstraints() Constraints {
	return Constraints{MaxAvgWaitMinutes: 10.0, MaxRejectionRate: 0.05}
}

// Validate rejects non-finite or negative bounds.
func (c Constraints) Validate() error {
	if !isFinite(c.MaxAvgWaitMinutes) || c.MaxAvgWaitMinutes < 0 {
		return fmt.Errorf("%w: max_avg_wait must be a finite number >= 0, got %v", ErrInvalidConfig, c.MaxAvgWaitMinutes)
	}
	if !isFinite(c.MaxRejectionRate) || c.MaxRejectionRate < 0 {
		return fmt.Errorf("%w: max_rejection_rate must be a finite number >= 0, got %v", ErrInvalidConfig, c.MaxRejectionRate)
	}
	return nil
}

// Feasible reports whether r meets both bounds of c.
func (r ScenarioResult) Feasible(c Constraints) bool {
	return r.AvgWaitMinutes <= c.MaxAvgWaitMinutes && r.RejectionRate <= c.MaxRejectionRate
}

// Recommend picks the best candidate. Among feasible results it maximizes net margin,
// breaking ties by lower average wait and then by input order. When nothing is
// feasible it falls back to the first result with the lowest average wait.
// The returned pointer refers to an element of results.
func Recommend(results []ScenarioResult, c Constraints) (*ScenarioResult, error) {
	if len(results) == 0 {
		return nil, ErrNoResults
	}

	var best *ScenarioResult
	for i := range results {
		r := &results[i]
		if !r.Feasible(c) {
			continue
		}
		if best == nil || r.NetMarginUSD > best.NetMarginUSD ||
			(r.NetMarginUSD == best.NetMarginUSD && r.AvgWaitMinutes < best.AvgWaitMinutes) {
			best = r
		}
	}
	if best != nil {
		return best, nil
	}

	best = &results[0]
	for i := 1; i < len(results); i++ {
		if results[i].AvgWaitMinutes < best.AvgWaitMinutes {
			best = &results[i]
		}
	}
	return best, nil
}
