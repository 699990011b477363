package cmd

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/capacity-sim/capacity-sim/sim"
	"github.com/capacity-sim/capacity-sim/sim/report"
	"github.com/capacity-sim/capacity-sim/sim/scenario"
	"github.com/capacity-sim/capacity-sim/sim/trace"
)

var (
	// Study inputs; a scenario file provides the base, explicitly set flags override it
	scenarioPath       string    // YAML scenario file
	arrivalProfile     []float64 // Expected arrivals per hour (12 values)
	hours              int       // Observation horizon in hours
	maxQueue           int       // Waiting positions on top of the servers
	meanServiceMinutes float64   // Mean exponential service time
	pricePerService    float64   // Revenue per served customer
	serverCostPerHour  float64   // Cost of one server for one hour
	seed               int64     // Base seed; candidate c uses seed+c
	capacityMin        int       // Smallest candidate server count
	capacityMax        int       // Largest candidate server count
	maxAvgWait         float64   // Average wait bound in minutes
	maxRejectionRate   float64   // Rejection rate bound

	// Execution and output
	workers        int    // Concurrent candidate evaluations
	outputDir      string // Directory for the CSV/SVG/JSON/Markdown bundle
	outputFormat   string // table, json or yaml
	noColor        bool   // Disable highlighting of the recommended row
	traceLevel     string // Decision trace level
	traceServers   int    // Capacity to trace; 0 traces the recommendation
	summarizeTrace bool   // Print a summary of the decision trace
)

// runCmd evaluates a capacity study and recommends a server count
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Evaluate candidate capacities and recommend one",
	Run: func(cmd *cobra.Command, args []string) {
		if !isValidFormat(outputFormat) {
			logrus.Fatalf("Unknown --format %q; valid: table, json, yaml", outputFormat)
		}
		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Unknown --trace-level %q; valid: none, decisions", traceLevel)
		}
		if summarizeTrace && trace.TraceLevel(traceLevel) != trace.TraceLevelDecisions {
			logrus.Warnf("--summarize-trace has no effect without --trace-level decisions")
		}

		spec, err := buildSpec(cmd.Flags())
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := spec.Validate(); err != nil {
			logrus.Fatalf("Invalid scenario: %v", err)
		}

		logrus.Infof("Evaluating %d..%d servers, profile=%v, seed=%d, workers=%d",
			spec.CapacityMin, spec.CapacityMax, []float64(spec.ArrivalProfile), spec.Seed, workers)
		startTime := time.Now()

		eval, err := spec.Evaluate(context.Background(), workers)
		if err != nil {
			logrus.Fatalf("Evaluation failed: %v", err)
		}
		logrus.Infof("Evaluated %d candidates in %v", len(eval.Results), time.Since(startTime))

		if err := writeEvaluation(os.Stdout, eval, outputFormat, !noColor); err != nil {
			logrus.Fatalf("Writing results: %v", err)
		}

		if outputDir != "" {
			written, err := report.WriteBundle(outputDir, eval, spec)
			if err != nil {
				logrus.Fatalf("Writing report bundle: %v", err)
			}
			for _, path := range written {
				logrus.Infof("Wrote %s", path)
			}
		}

		if trace.TraceLevel(traceLevel) == trace.TraceLevelDecisions {
			servers := eval.Best.Servers
			if traceServers > 0 {
				servers = traceServers
			}
			st := traceScenario(spec, servers)
			if summarizeTrace {
				printTraceSummary(os.Stdout, servers, trace.Summarize(st))
			}
		}

		logrus.Info("Evaluation complete.")
	},
}

// buildSpec starts from the scenario file (or the defaults) and applies every
// flag the user set explicitly.
func buildSpec(flags *pflag.FlagSet) (scenario.Spec, error) {
	spec := scenario.Default()
	if scenarioPath != "" {
		loaded, err := scenario.Load(scenarioPath)
		if err != nil {
			return scenario.Spec{}, err
		}
		spec = loaded
	}

	if flags.Changed("profile") {
		spec.ArrivalProfile = append([]float64(nil), arrivalProfile...)
	}
	if flags.Changed("hours") {
		spec.Hours = hours
	}
	if flags.Changed("max-queue") {
		spec.MaxQueue = maxQueue
	}
	if flags.Changed("mean-service") {
		spec.MeanServiceMinutes = meanServiceMinutes
	}
	if flags.Changed("price") {
		spec.PricePerService = pricePerService
	}
	if flags.Changed("server-cost") {
		spec.ServerCostPerHour = serverCostPerHour
	}
	if flags.Changed("seed") {
		spec.Seed = seed
	}
	if flags.Changed("capacity-min") {
		spec.CapacityMin = capacityMin
	}
	if flags.Changed("capacity-max") {
		spec.CapacityMax = capacityMax
	}
	if flags.Changed("max-avg-wait") {
		spec.MaxAvgWait = maxAvgWait
	}
	if flags.Changed("max-rejection-rate") {
		spec.MaxRejectionRate = maxRejectionRate
	}
	return spec, nil
}

// traceScenario replays one candidate with decision tracing on. The replay uses
// the same RNG stream as the evaluation, so it reproduces that candidate exactly.
func traceScenario(spec scenario.Spec, servers int) *trace.SimulationTrace {
	st := trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelDecisions})
	result := sim.RunScenarioTraced(servers, spec.ArrivalProfile, spec.Config(), st)
	logrus.Infof("Traced %d servers: %d admissions, %d assignments (served=%d rejected=%d)",
		servers, len(st.Admissions), len(st.Assignments), result.Served, result.Rejected)
	return st
}

func init() {
	defaults := scenario.Default()

	runCmd.Flags().StringVar(&scenarioPath, "scenario", "", "YAML scenario file; explicit flags override its values")
	runCmd.Flags().Float64SliceVar(&arrivalProfile, "profile", defaults.ArrivalProfile, "Comma-separated expected arrivals per hour (12 values)")
	runCmd.Flags().IntVar(&hours, "hours", defaults.Hours, "Observation horizon in hours")
	runCmd.Flags().IntVar(&maxQueue, "max-queue", defaults.MaxQueue, "Waiting positions on top of the servers")
	runCmd.Flags().Float64Var(&meanServiceMinutes, "mean-service", defaults.MeanServiceMinutes, "Mean service time in minutes")
	runCmd.Flags().Float64Var(&pricePerService, "price", defaults.PricePerService, "Revenue per served customer (USD)")
	runCmd.Flags().Float64Var(&serverCostPerHour, "server-cost", defaults.ServerCostPerHour, "Cost of one server for one hour (USD)")
	runCmd.Flags().Int64Var(&seed, "seed", defaults.Seed, "Base seed; candidate c uses seed+c")
	runCmd.Flags().IntVar(&capacityMin, "capacity-min", defaults.CapacityMin, "Smallest candidate server count")
	runCmd.Flags().IntVar(&capacityMax, "capacity-max", defaults.CapacityMax, "Largest candidate server count")
	runCmd.Flags().Float64Var(&maxAvgWait, "max-avg-wait", defaults.MaxAvgWait, "Average wait bound in minutes")
	runCmd.Flags().Float64Var(&maxRejectionRate, "max-rejection-rate", defaults.MaxRejectionRate, "Rejection rate bound (0..1)")

	runCmd.Flags().IntVar(&workers, "workers", 4, "Concurrent candidate evaluations")
	runCmd.Flags().StringVar(&outputDir, "output-dir", "", "Write the CSV, SVG chart, JSON recommendation and Markdown summary under this directory")
	runCmd.Flags().StringVar(&outputFormat, "format", formatTable, "Result format on stdout: table, json or yaml")
	runCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable highlighting of the recommended row")
	runCmd.Flags().StringVar(&traceLevel, "trace-level", "none", "Decision trace level (none, decisions)")
	runCmd.Flags().IntVar(&traceServers, "trace-servers", 0, "Capacity to trace; 0 traces the recommended capacity")
	runCmd.Flags().BoolVar(&summarizeTrace, "summarize-trace", false, "Print a summary of the decision trace")
}

func isValidFormat(format string) bool {
	switch format {
	case formatTable, formatJSON, formatYAML:
		return true
	}
	return false
}
