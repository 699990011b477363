package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalDecisions     int
	AdmittedCount      int
	RejectedCount      int
	PeakInSystem       int
	MeanWaitMinutes    float64
	MaxWaitMinutes     float64
	UniqueServers      int
	ServerDistribution map[int]int // server index → customers assigned
	RejectReasons      map[string]int
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		ServerDistribution: make(map[int]int),
		RejectReasons:      make(map[string]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalDecisions = len(st.Admissions)
	for _, a := range st.Admissions {
		if a.Admitted {
			summary.AdmittedCount++
			// an admitted customer joins the system
			if a.InSystem+1 > summary.PeakInSystem {
				summary.PeakInSystem = a.InSystem + 1
			}
		} else {
			summary.RejectedCount++
			summary.RejectReasons[a.Reason]++
			if a.InSystem > summary.PeakInSystem {
				summary.PeakInSystem = a.InSystem
			}
		}
	}

	if len(st.Assignments) > 0 {
		totalWait := 0.0
		for _, r := range st.Assignments {
			summary.ServerDistribution[r.Server]++
			totalWait += r.WaitMinutes
			if r.WaitMinutes > summary.MaxWaitMinutes {
				summary.MaxWaitMinutes = r.WaitMinutes
			}
		}
		summary.MeanWaitMinutes = totalWait / float64(len(st.Assignments))
	}

	summary.UniqueServers = len(summary.ServerDistribution)

	return summary
}
