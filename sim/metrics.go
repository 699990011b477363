// Aggregates one simulation run into the summary used to rank capacities.

package sim

// ScenarioResult is the immutable summary of one (config, servers) simulation run.
type ScenarioResult struct {
	Servers        int     `json:"servers" yaml:"servers"`
	Arrivals       int     `json:"arrivals" yaml:"arrivals"`
	Served         int     `json:"served" yaml:"served"`
	Rejected       int     `json:"rejected" yaml:"rejected"`
	RejectionRate  float64 `json:"rejection_rate" yaml:"rejection_rate"`
	AvgWaitMinutes float64 `json:"avg_wait_minutes" yaml:"avg_wait_minutes"`
	P90WaitMinutes float64 `json:"p90_wait_minutes" yaml:"p90_wait_minutes"`
	Utilization    float64 `json:"utilization" yaml:"utilization"`
	RevenueUSD     float64 `json:"revenue_usd" yaml:"revenue_usd"`
	CostUSD        float64 `json:"cost_usd" yaml:"cost_usd"`
	NetMarginUSD   float64 `json:"net_margin_usd" yaml:"net_margin_usd"`
}

// Summarize derives the ScenarioResult of a run.
// Degenerate runs (no arrivals, no servers, no served customers) produce zeros
// instead of dividing by zero.
func Summarize(out RunOutcome, totalArrivals int, servers int, cfg SimulationConfig) ScenarioResult {
	rejectionRate := 0.0
	if totalArrivals > 0 {
		rejectionRate = float64(out.Rejected) / float64(totalArrivals)
	}

	utilization := 0.0
	if servers > 0 {
		utilization = out.BusySeconds / (float64(servers) * cfg.HorizonSeconds())
	}

	revenue := float64(out.Served) * cfg.PricePerService
	cost := float64(servers) * cfg.ServerCostPerHour * float64(cfg.Hours)

	return ScenarioResult{
		Servers:        servers,
		Arrivals:       totalArrivals,
		Served:         out.Served,
		Rejected:       out.Rejected,
		RejectionRate:  rejectionRate,
		AvgWaitMinutes: CalculateMean(out.WaitsMinutes),
		P90WaitMinutes: CalculatePercentile(out.WaitsMinutes, 0.90),
		Utilization:    utilization,
		RevenueUSD:     revenue,
		CostUSD:        cost,
		NetMarginUSD:   revenue - cost,
	}
}
