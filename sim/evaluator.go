package sim

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/capacity-sim/capacity-sim/sim/trace"
	"github.com/capacity-sim/capacity-sim/sim/workload"
)

// ErrInvalidCapacityRange is wrapped when a capacity range cannot be evaluated.
var ErrInvalidCapacityRange = errors.New("invalid capacity range")

// MaxServers is the largest candidate server count CapacityRange accepts.
const MaxServers = 10000

// CapacityRange expands [minServers, maxServers] into ascending candidate counts.
func CapacityRange(minServers, maxServers int) ([]int, error) {
	if minServers > maxServers {
		return nil, fmt.Errorf("%w: capacity_min (%d) cannot be greater than capacity_max (%d)", ErrInvalidCapacityRange, minServers, maxServers)
	}
	if minServers < 0 {
		return nil, fmt.Errorf("%w: capacity_min must be >= 0, got %d", ErrInvalidCapacityRange, minServers)
	}
	if maxServers > MaxServers {
		return nil, fmt.Errorf("%w: capacity_max must be <= %d, got %d", ErrInvalidCapacityRange, MaxServers, maxServers)
	}
	capacities := make([]int, 0, maxServers-minServers+1)
	for c := minServers; c <= maxServers; c++ {
		capacities = append(capacities, c)
	}
	return capacities, nil
}

// RunScenario simulates one candidate end to end with its own RNG stream.
func RunScenario(servers int, profile workload.ArrivalRateProfile, cfg SimulationConfig) ScenarioResult {
	return RunScenarioTraced(servers, profile, cfg, nil)
}

// RunScenarioTraced is RunScenario with decision records sent to tr (may be nil).
func RunScenarioTraced(servers int, profile workload.ArrivalRateProfile, cfg SimulationConfig, tr *trace.SimulationTrace) ScenarioResult {
	rng := NewScenarioRNG(cfg.Seed, servers)
	arrivals := workload.GenerateArrivals(profile, rng)

	qs := NewQueueSimulator(servers, cfg)
	qs.Trace = tr
	out := qs.Run(arrivals, rng)

	result := Summarize(out, len(arrivals), servers, cfg)
	logrus.Debugf("[servers=%d] avg wait=%.2fmin rejection=%.3f utilization=%.3f margin=%.2f",
		servers, result.AvgWaitMinutes, result.RejectionRate, result.Utilization, result.NetMarginUSD)
	return result
}

// EvaluateCapacities runs one scenario per capacity, preserving input order.
func EvaluateCapacities(capacities []int, profile workload.ArrivalRateProfile, cfg SimulationConfig) []ScenarioResult {
	results := make([]ScenarioResult, len(capacities))
	for i, c := range capacities {
		results[i] = RunScenario(c, profile, cfg)
	}
	return results
}

// EvaluateCapacitiesParallel is EvaluateCapacities spread over at most workers
// goroutines. Results are identical to the sequential version: each candidate owns
// its RNG and writes only its own slot. Cancellation is checked between candidates.
func EvaluateCapacitiesParallel(ctx context.Context, capacities []int, profile workload.ArrivalRateProfile, cfg SimulationConfig, workers int) ([]ScenarioResult, error) {
	if workers < 1 {
		workers = 1
	}
	results := make([]ScenarioResult, len(capacities))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, c := range capacities {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = RunScenario(c, profile, cfg)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("evaluating capacities: %w", err)
	}
	return results, nil
}
