package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capacity-sim/capacity-sim/sim/scenario"
)

// newStudyFlags binds a fresh flag set to the run variables so tests control
// exactly which flags count as Changed.
func newStudyFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	d := scenario.Default()
	fs := pflag.NewFlagSet("run", pflag.ContinueOnError)
	fs.Float64SliceVar(&arrivalProfile, "profile", d.ArrivalProfile, "")
	fs.IntVar(&hours, "hours", d.Hours, "")
	fs.IntVar(&maxQueue, "max-queue", d.MaxQueue, "")
	fs.Float64Var(&meanServiceMinutes, "mean-service", d.MeanServiceMinutes, "")
	fs.Float64Var(&pricePerService, "price", d.PricePerService, "")
	fs.Float64Var(&serverCostPerHour, "server-cost", d.ServerCostPerHour, "")
	fs.Int64Var(&seed, "seed", d.Seed, "")
	fs.IntVar(&capacityMin, "capacity-min", d.CapacityMin, "")
	fs.IntVar(&capacityMax, "capacity-max", d.CapacityMax, "")
	fs.Float64Var(&maxAvgWait, "max-avg-wait", d.MaxAvgWait, "")
	fs.Float64Var(&maxRejectionRate, "max-rejection-rate", d.MaxRejectionRate, "")
	require.NoError(t, fs.Parse(args))
	return fs
}

func withScenarioPath(t *testing.T, path string) {
	t.Helper()
	old := scenarioPath
	scenarioPath = path
	t.Cleanup(func() { scenarioPath = old })
}

func TestBuildSpec_NoFileNoFlags_Defaults(t *testing.T) {
	withScenarioPath(t, "")
	spec, err := buildSpec(newStudyFlags(t))
	require.NoError(t, err)
	assert.Equal(t, scenario.Default(), spec)
}

// TestBuildSpec_FlagOverridesFile verifies that an explicitly set flag wins over
// the scenario file, while unset flags leave the file's values alone.
func TestBuildSpec_FlagOverridesFile(t *testing.T) {
	// GIVEN a scenario file with seed 7 and max_queue 3
	path := filepath.Join(t.TempDir(), "study.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: 7\nmax_queue: 3\n"), 0o644))
	withScenarioPath(t, path)

	// WHEN --seed is given on the command line
	spec, err := buildSpec(newStudyFlags(t, "--seed=100"))
	require.NoError(t, err)

	// THEN the flag overrides the file and the file overrides the default
	assert.Equal(t, int64(100), spec.Seed)
	assert.Equal(t, 3, spec.MaxQueue)
}

func TestBuildSpec_DifferentSeeds_DifferentResults(t *testing.T) {
	withScenarioPath(t, "")
	s1, err := buildSpec(newStudyFlags(t, "--seed=100", "--capacity-min=4", "--capacity-max=4"))
	require.NoError(t, err)
	s2, err := buildSpec(newStudyFlags(t, "--seed=200", "--capacity-min=4", "--capacity-max=4"))
	require.NoError(t, err)

	e1, err := s1.Evaluate(t.Context(), 1)
	require.NoError(t, err)
	e2, err := s2.Evaluate(t.Context(), 1)
	require.NoError(t, err)
	assert.NotEqual(t, e1.Results[0], e2.Results[0])
}

func TestBuildSpec_ProfileFlag(t *testing.T) {
	withScenarioPath(t, "")
	spec, err := buildSpec(newStudyFlags(t, "--profile=1,2,3,4,5,6,7,8,9,10,11,12"))
	require.NoError(t, err)
	assert.Equal(t, 12.0, spec.ArrivalProfile[11])
	require.NoError(t, spec.Validate())
}

func TestBuildSpec_BadScenarioFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "study.yaml")
	require.NoError(t, os.WriteFile(path, []byte("servers: 3\n"), 0o644))
	withScenarioPath(t, path)

	_, err := buildSpec(newStudyFlags(t))
	assert.Error(t, err)
}
