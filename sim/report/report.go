// Package report renders capacity study results as CSV, JSON, a Markdown
// one-pager and an SVG chart, and writes them as an output bundle.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/capacity-sim/capacity-sim/sim"
	"github.com/capacity-sim/capacity-sim/sim/scenario"
)

// CSVHeader lists the result columns in output order.
var CSVHeader = []string{
	"servers", "arrivals", "served", "rejected", "rejection_rate", "avg_wait_minutes",
	"p90_wait_minutes", "utilization", "revenue_usd", "cost_usd", "net_margin_usd",
}

// Bundle file locations, relative to the bundle directory.
const (
	ScenariosCSVPath   = "data/capacity_scenarios.csv"
	ChartSVGPath       = "outputs/capacity_wait_margin.svg"
	RecommendationPath = "outputs/recommendation.json"
	SummaryPath        = "report/summary.md"
)

// WriteCSV writes one row per result. Nothing is written for an empty slice.
func WriteCSV(w io.Writer, results []sim.ScenarioResult) error {
	if len(results) == 0 {
		return nil
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, r := range results {
		row := []string{
			strconv.Itoa(r.Servers),
			strconv.Itoa(r.Arrivals),
			strconv.Itoa(r.Served),
			strconv.Itoa(r.Rejected),
			formatFloat(r.RejectionRate),
			formatFloat(r.AvgWaitMinutes),
			formatFloat(r.P90WaitMinutes),
			formatFloat(r.Utilization),
			formatFloat(r.RevenueUSD),
			formatFloat(r.CostUSD),
			formatFloat(r.NetMarginUSD),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row for %d servers: %w", r.Servers, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WriteBundle writes the CSV, chart, recommendation and summary of eval under dir,
// creating the data/, outputs/ and report/ subdirectories. It returns the written paths.
func WriteBundle(dir string, eval *scenario.Evaluation, spec scenario.Spec) ([]string, error) {
	if eval == nil || eval.Best == nil {
		return nil, sim.ErrNoResults
	}
	files := []struct {
		rel    string
		render func(io.Writer) error
	}{
		{ScenariosCSVPath, func(w io.Writer) error { return WriteCSV(w, eval.Results) }},
		{ChartSVGPath, func(w io.Writer) error { return WriteSVGChart(w, eval.Results, *eval.Best) }},
		{RecommendationPath, func(w io.Writer) error { return WriteJSON(w, eval.Best) }},
		{SummaryPath, func(w io.Writer) error { return WriteOnePager(w, spec, *eval.Best) }},
	}

	written := make([]string, 0, len(files))
	for _, f := range files {
		path := filepath.Join(dir, f.rel)
		if err := writeFile(path, f.render); err != nil {
			return written, err
		}
		logrus.Debugf("wrote %s", path)
		written = append(written, path)
	}
	return written, nil
}

func writeFile(path string, render func(io.Writer) error) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()
	if err := render(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
