package sim

import (
	"errors"
	"fmt"
	"math"

	"github.com/capacity-sim/capacity-sim/sim/workload"
)

// ErrInvalidConfig is wrapped by every SimulationConfig validation failure.
var ErrInvalidConfig = errors.New("invalid simulation config")

// SimulationConfig groups the parameters of a single simulation run.
// It is a value type: callers pass copies and no component keeps a mutable reference.
type SimulationConfig struct {
	Hours              int     `json:"hours" yaml:"hours"`                               // observation horizon in hours (> 0)
	MaxQueue           int     `json:"max_queue" yaml:"max_queue"`                       // waiting positions on top of the servers (>= 0)
	MeanServiceMinutes float64 `json:"mean_service_minutes" yaml:"mean_service_minutes"` // mean of the exponential service time (> 0)
	PricePerService    float64 `json:"price_per_service" yaml:"price_per_service"`       // revenue per served customer
	ServerCostPerHour  float64 `json:"server_cost_per_hour" yaml:"server_cost_per_hour"` // operating cost of one server for one hour
	Seed               int64   `json:"seed" yaml:"seed"`                                 // base seed; candidate c uses seed+c
}

// DefaultSimulationConfig returns the reference parameters of the service desk model.
func DefaultSimulationConfig() SimulationConfig {
	return SimulationConfig{
		Hours:              12,
		MaxQueue:           12,
		MeanServiceMinutes: 22.0,
		PricePerService:    18.0,
		ServerCostPerHour:  11.5,
		Seed:               42,
	}
}

// HorizonSeconds returns the observation horizon used to clip busy time.
func (c SimulationConfig) HorizonSeconds() float64 {
	return float64(c.Hours) * workload.SecondsPerHour
}

// Validate checks the documented ranges of every field.
func (c SimulationConfig) Validate() error {
	if c.Hours <= 0 {
		return fmt.Errorf("%w: hours must be > 0, got %d", ErrInvalidConfig, c.Hours)
	}
	if c.MaxQueue < 0 {
		return fmt.Errorf("%w: max_queue must be >= 0, got %d", ErrInvalidConfig, c.MaxQueue)
	}
	if !isFinite(c.MeanServiceMinutes) || c.MeanServiceMinutes <= 0 {
		return fmt.Errorf("%w: mean_service_minutes must be a finite number > 0, got %v", ErrInvalidConfig, c.MeanServiceMinutes)
	}
	if !isFinite(c.PricePerService) || c.PricePerService < 0 {
		return fmt.Errorf("%w: price_per_service must be a finite number >= 0, got %v", ErrInvalidConfig, c.PricePerService)
	}
	if !isFinite(c.ServerCostPerHour) || c.ServerCostPerHour < 0 {
		return fmt.Errorf("%w: server_cost_per_hour must be a finite number >= 0, got %v", ErrInvalidConfig, c.ServerCostPerHour)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
