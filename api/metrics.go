package api

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors exported at /metrics.
type Metrics struct {
	requests           *prometheus.CounterVec
	evaluationSeconds  prometheus.Histogram
	scenariosEvaluated prometheus.Counter
	recommendedServers prometheus.Gauge
}

// NewMetrics creates the API collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "capacity_sim_requests_total",
			Help: "HTTP requests by endpoint and status code.",
		}, []string{"endpoint", "code"}),
		evaluationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "capacity_sim_evaluation_seconds",
			Help:    "Wall time of one capacity study evaluation.",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
		scenariosEvaluated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "capacity_sim_scenarios_evaluated_total",
			Help: "Candidate capacities simulated.",
		}),
		recommendedServers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "capacity_sim_recommended_servers",
			Help: "Server count recommended by the most recent evaluation.",
		}),
	}
	reg.MustRegister(m.requests, m.evaluationSeconds, m.scenariosEvaluated, m.recommendedServers)
	return m
}

// ObserveEvaluation records one completed evaluation.
func (m *Metrics) ObserveEvaluation(elapsed time.Duration, candidates, recommended int) {
	m.evaluationSeconds.Observe(elapsed.Seconds())
	m.scenariosEvaluated.Add(float64(candidates))
	m.recommendedServers.Set(float64(recommended))
}
