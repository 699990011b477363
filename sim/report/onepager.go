package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/capacity-sim/capacity-sim/sim"
	"github.com/capacity-sim/capacity-sim/sim/scenario"
)

// WriteOnePager writes a one-page Markdown summary of the recommendation.
func WriteOnePager(w io.Writer, spec scenario.Spec, best sim.ScenarioResult) error {
	rates := make([]string, len(spec.ArrivalProfile))
	for i, r := range spec.ArrivalProfile {
		rates[i] = formatFloat(r)
	}

	var b strings.Builder
	b.WriteString("# Capacity and queueing simulation\n\n")
	b.WriteString("## Problem\n")
	b.WriteString("Size the number of servers so that waits and rejections stay low without giving up margin.\n\n")
	b.WriteString("## Approach\n")
	b.WriteString("Discrete-event simulation with hourly Poisson arrivals and exponential service times.\n\n")
	b.WriteString("## Inputs\n")
	fmt.Fprintf(&b, "- Arrival profile (per hour): [%s]\n", strings.Join(rates, ", "))
	fmt.Fprintf(&b, "- Mean service time: %s min\n", formatFloat(spec.MeanServiceMinutes))
	fmt.Fprintf(&b, "- Maximum queue: %d\n", spec.MaxQueue)
	fmt.Fprintf(&b, "- Price per service: USD %s\n", formatFloat(spec.PricePerService))
	fmt.Fprintf(&b, "- Cost per server-hour: USD %s\n", formatFloat(spec.ServerCostPerHour))
	fmt.Fprintf(&b, "- Candidates: %d..%d servers, seed %d\n\n", spec.CapacityMin, spec.CapacityMax, spec.Seed)
	b.WriteString("## Results\n")
	fmt.Fprintf(&b, "- Recommended capacity: **%d servers**\n", best.Servers)
	fmt.Fprintf(&b, "- Average wait: **%.1f min**\n", best.AvgWaitMinutes)
	fmt.Fprintf(&b, "- Rejection: **%.1f%%**\n", best.RejectionRate*100)
	fmt.Fprintf(&b, "- Net margin: **USD %.0f**\n\n", best.NetMarginUSD)
	b.WriteString("## Decision\n")
	if best.Feasible(spec.Constraints()) {
		fmt.Fprintf(&b, "With %d servers at USD %s per service the desk meets the %s min wait and %.1f%% rejection targets at the best margin.\n",
			best.Servers, formatFloat(spec.PricePerService), formatFloat(spec.MaxAvgWait), spec.MaxRejectionRate*100)
	} else {
		fmt.Fprintf(&b, "No candidate meets the %s min wait and %.1f%% rejection targets; %d servers gives the shortest average wait.\n",
			formatFloat(spec.MaxAvgWait), spec.MaxRejectionRate*100, best.Servers)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
