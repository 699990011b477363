// Package scenario describes one capacity study: the workload, the economics,
// the candidate server range and the service-level bounds. A Spec is what the
// CLI reads from YAML and what the HTTP API builds from a JSON body.
package scenario

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/capacity-sim/capacity-sim/sim"
	"github.com/capacity-sim/capacity-sim/sim/workload"
)

// Spec is a complete capacity study. Field names follow the external JSON/YAML keys.
type Spec struct {
	ArrivalProfile     workload.ArrivalRateProfile `json:"arrival_profile" yaml:"arrival_profile"`
	Hours              int                         `json:"hours" yaml:"hours"`
	MaxQueue           int                         `json:"max_queue" yaml:"max_queue"`
	MeanServiceMinutes float64                     `json:"mean_service_minutes" yaml:"mean_service_minutes"`
	PricePerService    float64                     `json:"price_per_service" yaml:"price_per_service"`
	ServerCostPerHour  float64                     `json:"server_cost_per_hour" yaml:"server_cost_per_hour"`
	Seed               int64                       `json:"seed" yaml:"seed"`
	CapacityMin        int                         `json:"capacity_min" yaml:"capacity_min"`
	CapacityMax        int                         `json:"capacity_max" yaml:"capacity_max"`
	MaxAvgWait         float64                     `json:"max_avg_wait" yaml:"max_avg_wait"`
	MaxRejectionRate   float64                     `json:"max_rejection_rate" yaml:"max_rejection_rate"`
}

// Evaluation is the outcome of a study. Best points into Results.
type Evaluation struct {
	Results []sim.ScenarioResult `json:"results" yaml:"results"`
	Best    *sim.ScenarioResult  `json:"best" yaml:"best"`
}

// Default returns the reference service desk study: servers 2..12 under a
// 10 minute / 5% service level.
func Default() Spec {
	cfg := sim.DefaultSimulationConfig()
	c := sim.DefaultConstraints()
	return Spec{
		ArrivalProfile:     workload.DefaultArrivalProfile(),
		Hours:              cfg.Hours,
		MaxQueue:           cfg.MaxQueue,
		MeanServiceMinutes: cfg.MeanServiceMinutes,
		PricePerService:    cfg.PricePerService,
		ServerCostPerHour:  cfg.ServerCostPerHour,
		Seed:               cfg.Seed,
		CapacityMin:        2,
		CapacityMax:        12,
		MaxAvgWait:         c.MaxAvgWaitMinutes,
		MaxRejectionRate:   c.MaxRejectionRate,
	}
}

// Load reads a YAML study file. Keys missing from the file keep their default
// values; unrecognized keys are rejected.
func Load(path string) (Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Spec{}, fmt.Errorf("reading scenario: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML bytes over Default() with strict field checking.
func Parse(data []byte) (Spec, error) {
	spec := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return Spec{}, fmt.Errorf("parsing scenario: %w", err)
	}
	return spec, nil
}

// Config returns the per-run simulation parameters of the study.
func (s Spec) Config() sim.SimulationConfig {
	return sim.SimulationConfig{
		Hours:              s.Hours,
		MaxQueue:           s.MaxQueue,
		MeanServiceMinutes: s.MeanServiceMinutes,
		PricePerService:    s.PricePerService,
		ServerCostPerHour:  s.ServerCostPerHour,
		Seed:               s.Seed,
	}
}

// Constraints returns the service-level bounds of the study.
func (s Spec) Constraints() sim.Constraints {
	return sim.Constraints{MaxAvgWaitMinutes: s.MaxAvgWait, MaxRejectionRate: s.MaxRejectionRate}
}

// Validate checks every part of the study. It runs before any simulation.
func (s Spec) Validate() error {
	if err := s.ArrivalProfile.Validate(); err != nil {
		return err
	}
	if err := s.Config().Validate(); err != nil {
		return err
	}
	if _, err := sim.CapacityRange(s.CapacityMin, s.CapacityMax); err != nil {
		return err
	}
	return s.Constraints().Validate()
}

// Evaluate validates the study, simulates every candidate in
// capacity_min..capacity_max on at most workers goroutines and recommends one.
func (s Spec) Evaluate(ctx context.Context, workers int) (*Evaluation, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	capacities, err := sim.CapacityRange(s.CapacityMin, s.CapacityMax)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	results, err := sim.EvaluateCapacitiesParallel(ctx, capacities, s.ArrivalProfile, s.Config(), workers)
	if err != nil {
		return nil, err
	}
	best, err := sim.Recommend(results, s.Constraints())
	if err != nil {
		return nil, err
	}
	logrus.Debugf("evaluated %d candidates in %v, recommended %d servers",
		len(results), time.Since(start), best.Servers)
	return &Evaluation{Results: results, Best: best}, nil
}
