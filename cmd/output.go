package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/capacity-sim/capacity-sim/sim/scenario"
	"github.com/capacity-sim/capacity-sim/sim/trace"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

// writeEvaluation prints the evaluation in the requested format. In table format
// the recommended row is highlighted when colorize is set and w is a terminal.
func writeEvaluation(w io.Writer, eval *scenario.Evaluation, format string, colorize bool) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(eval)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(eval); err != nil {
			return err
		}
		return enc.Close()
	default:
		return writeTable(w, eval, colorize)
	}
}

func writeTable(w io.Writer, eval *scenario.Evaluation, colorize bool) error {
	highlight := color.New(color.FgGreen, color.Bold)
	if !colorize {
		highlight.DisableColor()
	}

	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "servers\tarrivals\tserved\trejected\trejection\tavg wait\tp90 wait\tutilization\trevenue\tcost\tnet margin\t")
	bestRow := -1
	for i := range eval.Results {
		r := &eval.Results[i]
		if r == eval.Best {
			bestRow = i
		}
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%.1f%%\t%.2f\t%.2f\t%.1f%%\t%.2f\t%.2f\t%.2f\t\n",
			r.Servers, r.Arrivals, r.Served, r.Rejected, r.RejectionRate*100,
			r.AvgWaitMinutes, r.P90WaitMinutes, r.Utilization*100,
			r.RevenueUSD, r.CostUSD, r.NetMarginUSD)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	// Color is applied after alignment so escape codes do not count as cell width.
	lines := strings.SplitAfter(buf.String(), "\n")
	for i, line := range lines {
		if i == bestRow+1 && bestRow >= 0 {
			line = highlight.Sprint(strings.TrimSuffix(line, "\n")) + "\n"
		}
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}

	best := eval.Best
	_, err := fmt.Fprintf(w, "\nRecommended: %s (avg wait %.1f min, rejection %.1f%%, net margin USD %.0f)\n",
		highlight.Sprintf("%d servers", best.Servers), best.AvgWaitMinutes, best.RejectionRate*100, best.NetMarginUSD)
	return err
}

// printTraceSummary prints the aggregate of a decision trace.
func printTraceSummary(w io.Writer, servers int, summary *trace.TraceSummary) {
	fmt.Fprintf(w, "\n=== Trace Summary (%d servers) ===\n", servers)
	fmt.Fprintf(w, "Total Decisions: %d\n", summary.TotalDecisions)
	fmt.Fprintf(w, "  Admitted: %d\n", summary.AdmittedCount)
	fmt.Fprintf(w, "  Rejected: %d\n", summary.RejectedCount)
	fmt.Fprintf(w, "Peak In System: %d\n", summary.PeakInSystem)
	fmt.Fprintf(w, "Mean Wait: %.2f min (max %.2f)\n", summary.MeanWaitMinutes, summary.MaxWaitMinutes)
	fmt.Fprintf(w, "Unique Servers: %d\n", summary.UniqueServers)

	if len(summary.ServerDistribution) > 0 {
		fmt.Fprintln(w, "Server Distribution:")
		indices := make([]int, 0, len(summary.ServerDistribution))
		for idx := range summary.ServerDistribution {
			indices = append(indices, idx)
		}
		sort.Ints(indices)
		for _, idx := range indices {
			fmt.Fprintf(w, "  server %d: %d\n", idx, summary.ServerDistribution[idx])
		}
	}
	if len(summary.RejectReasons) > 0 {
		fmt.Fprintln(w, "Reject Reasons:")
		reasons := make([]string, 0, len(summary.RejectReasons))
		for reason := range summary.RejectReasons {
			reasons = append(reasons, reason)
		}
		sort.Strings(reasons)
		for _, reason := range reasons {
			fmt.Fprintf(w, "  %s: %d\n", reason, summary.RejectReasons[reason])
		}
	}
}
