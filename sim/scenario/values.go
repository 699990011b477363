package scenario

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cast"

	"github.com/capacity-sim/capacity-sim/sim/workload"
)

// FromValues builds a Spec from loosely-typed input such as a decoded JSON body.
// Numbers may arrive as JSON numbers or numeric strings. Missing keys keep their
// default values and unknown keys are ignored. The result is not validated.
func FromValues(values map[string]any) (Spec, error) {
	spec := Default()

	if raw, ok := values["arrival_profile"]; ok {
		profile, err := toProfile(raw)
		if err != nil {
			return Spec{}, err
		}
		spec.ArrivalProfile = profile
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"hours", &spec.Hours},
		{"max_queue", &spec.MaxQueue},
		{"capacity_min", &spec.CapacityMin},
		{"capacity_max", &spec.CapacityMax},
	}
	for _, f := range ints {
		raw, ok := values[f.key]
		if !ok {
			continue
		}
		v, err := coerce(f.key, raw, "an integer", cast.ToIntE)
		if err != nil {
			return Spec{}, err
		}
		*f.dst = v
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{"mean_service_minutes", &spec.MeanServiceMinutes},
		{"price_per_service", &spec.PricePerService},
		{"server_cost_per_hour", &spec.ServerCostPerHour},
		{"max_avg_wait", &spec.MaxAvgWait},
		{"max_rejection_rate", &spec.MaxRejectionRate},
	}
	for _, f := range floats {
		raw, ok := values[f.key]
		if !ok {
			continue
		}
		v, err := coerce(f.key, raw, "a number", cast.ToFloat64E)
		if err != nil {
			return Spec{}, err
		}
		*f.dst = v
	}

	if raw, ok := values["seed"]; ok {
		v, err := coerce("seed", raw, "an integer", cast.ToInt64E)
		if err != nil {
			return Spec{}, err
		}
		spec.Seed = v
	}

	return spec, nil
}

func toProfile(raw any) (workload.ArrivalRateProfile, error) {
	var items []any
	switch v := raw.(type) {
	case []float64:
		return workload.ArrivalRateProfile(append([]float64(nil), v...)), nil
	case []any:
		items = v
	default:
		return nil, fmt.Errorf("%w: arrival_profile must be a list of numbers", workload.ErrInvalidProfile)
	}
	profile := make(workload.ArrivalRateProfile, len(items))
	for i, item := range items {
		rate, err := coerce(fmt.Sprintf("arrival_profile[%d]", i), item, "a number", cast.ToFloat64E)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", workload.ErrInvalidProfile, err)
		}
		profile[i] = rate
	}
	return profile, nil
}

// coerce converts raw with conv. A null value is a type error, not a zero.
func coerce[T any](key string, raw any, want string, conv func(any) (T, error)) (T, error) {
	var zero T
	if raw == nil {
		return zero, fmt.Errorf("%s: expected %s, got null", key, want)
	}
	v, err := conv(normalize(raw))
	if err != nil {
		return zero, fmt.Errorf("%s: expected %s, got %v", key, want, raw)
	}
	return v, nil
}

// normalize unwraps json.Number so integer fields accept "12" and 12.0 alike.
func normalize(raw any) any {
	if n, ok := raw.(json.Number); ok {
		return n.String()
	}
	return raw
}
