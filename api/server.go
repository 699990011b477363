// Package api exposes capacity studies over HTTP/JSON.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/capacity-sim/capacity-sim/sim/scenario"
)

// maxBodyBytes bounds the size of a simulate request body.
const maxBodyBytes = 1 << 20

// Endpoint labels used in the request counter.
const (
	endpointDefaults = "defaults"
	endpointSimulate = "simulate"
	endpointHealthz  = "healthz"
	endpointOther    = "other"
)

// Server routes the API endpoints onto an http.ServeMux.
type Server struct {
	mux     *http.ServeMux
	workers int
	metrics *Metrics
}

// NewServer builds a Server whose evaluations run on at most workers goroutines.
// Metrics are registered on a private registry served at /metrics.
func NewServer(workers int) *Server {
	if workers < 1 {
		workers = 1
	}
	reg := prometheus.NewRegistry()
	s := &Server{
		mux:     http.NewServeMux(),
		workers: workers,
		metrics: NewMetrics(reg),
	}

	s.mux.HandleFunc("/healthz", s.handleHealthz)
	s.mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	s.mux.HandleFunc("/api/", s.handleAPI)
	s.mux.HandleFunc("/", s.handleNotFound)
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, endpointHealthz, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// handleAPI dispatches /api/* paths. A trailing slash is ignored.
func (s *Server) handleAPI(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimRight(r.URL.Path, "/")
	switch path {
	case "/api/defaults":
		if r.Method != http.MethodGet {
			s.writeError(w, endpointDefaults, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		s.writeJSON(w, endpointDefaults, http.StatusOK, scenario.Default())
	case "/api/simulate":
		if r.Method != http.MethodPost {
			s.writeError(w, endpointSimulate, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		s.handleSimulate(w, r)
	default:
		s.handleNotFound(w, r)
	}
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, endpointOther, http.StatusNotFound, "not found")
}

// handleSimulate handles POST /api/simulate. Missing fields take their default
// values; input is validated before any simulation runs.
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var values map[string]any
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.UseNumber()
	if err := decoder.Decode(&values); err != nil {
		s.writeError(w, endpointSimulate, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	spec, err := scenario.FromValues(values)
	if err != nil {
		s.writeError(w, endpointSimulate, http.StatusBadRequest, err.Error())
		return
	}

	start := time.Now()
	eval, err := spec.Evaluate(r.Context(), s.workers)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			s.writeError(w, endpointSimulate, http.StatusServiceUnavailable, err.Error())
			return
		}
		s.writeError(w, endpointSimulate, http.StatusBadRequest, err.Error())
		return
	}
	s.metrics.ObserveEvaluation(time.Since(start), len(eval.Results), eval.Best.Servers)

	logrus.WithFields(logrus.Fields{
		"candidates":  len(eval.Results),
		"recommended": eval.Best.Servers,
		"elapsed":     time.Since(start),
	}).Info("simulation served")
	s.writeJSON(w, endpointSimulate, http.StatusOK, eval)
}

func (s *Server) writeJSON(w http.ResponseWriter, endpoint string, status int, payload any) {
	s.metrics.requests.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.Warnf("encoding %s response: %v", endpoint, err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, endpoint string, status int, message string) {
	s.writeJSON(w, endpoint, status, map[string]any{
		"error": message,
	})
}
