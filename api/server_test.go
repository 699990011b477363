package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capacity-sim/capacity-sim/sim"
	"github.com/capacity-sim/capacity-sim/sim/scenario"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(NewServer(2).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeError(t *testing.T, resp *http.Response) string {
	t.Helper()
	var payload map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return payload["error"]
}

func scrape(t *testing.T, ts *httptest.Server) string {
	t.Helper()
	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(raw)
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDefaults_ReturnsDefaultScenario(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/api/defaults", "/api/defaults/"} {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err)

		var got scenario.Spec
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Equal(t, scenario.Default(), got, path)
	}
}

func TestSimulate_DefaultsWhenBodyEmptyObject(t *testing.T) {
	// GIVEN an empty JSON object
	ts := newTestServer(t)

	// WHEN posted to /api/simulate
	resp := postJSON(t, ts.URL+"/api/simulate", `{}`)

	// THEN the default study is evaluated
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Results []sim.ScenarioResult `json:"results"`
		Best    sim.ScenarioResult   `json:"best"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Results, 11)
	assert.Contains(t, body.Results, body.Best)

	// AND the evaluation metrics moved
	metrics := scrape(t, ts)
	assert.Contains(t, metrics, "capacity_sim_scenarios_evaluated_total 11")
	assert.Contains(t, metrics, fmt.Sprintf("capacity_sim_recommended_servers %d", body.Best.Servers))
	assert.Contains(t, metrics, `capacity_sim_requests_total{code="200",endpoint="simulate"} 1`)
}

func TestSimulate_CoercesStringNumbers(t *testing.T) {
	ts := newTestServer(t)
	resp := postJSON(t, ts.URL+"/api/simulate", `{"capacity_min": "3", "capacity_max": 5.0, "seed": "7"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body scenario.Evaluation
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Results, 3)
	assert.Equal(t, 3, body.Results[0].Servers)
	assert.Equal(t, 5, body.Results[2].Servers)
}

func TestSimulate_BadRequests(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"invalid json", `{"hours": `, "invalid JSON"},
		{"eleven hour profile", `{"arrival_profile": [1,2,3,4,5,6,7,8,9,10,11]}`, "12 hourly values"},
		{"min above max", `{"capacity_min": 9, "capacity_max": 3}`, "capacity_min"},
		{"non numeric", `{"hours": "soon"}`, "hours"},
		{"zero service time", `{"mean_service_minutes": 0}`, "mean_service_minutes"},
		{"oversized capacity", `{"capacity_min": 1099511627776, "capacity_max": 1099511627776}`, "capacity_max"},
		{"null max queue", `{"max_queue": null}`, "max_queue"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			resp := postJSON(t, ts.URL+"/api/simulate", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Contains(t, decodeError(t, resp), tt.wantMsg)
		})
	}
}

func TestWrongMethod_405(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/simulate")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	resp = postJSON(t, ts.URL+"/api/defaults", `{}`)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestUnknownAPIPath_404(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/unknown")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMetricsEndpoint_ExposesCollectors(t *testing.T) {
	ts := newTestServer(t)
	postJSON(t, ts.URL+"/api/simulate", `{"capacity_min": 4, "capacity_max": 4}`)

	text := scrape(t, ts)
	for _, name := range []string{
		"capacity_sim_requests_total",
		"capacity_sim_evaluation_seconds",
		"capacity_sim_scenarios_evaluated_total",
		"capacity_sim_recommended_servers 4",
	} {
		assert.Contains(t, text, name)
	}
}

func TestSimulate_HugeArrivalRate_ServedWithoutCrash(t *testing.T) {
	// GIVEN a finite but enormous rate in the first hour
	ts := newTestServer(t)
	body := `{"arrival_profile": [1e300,1,1,1,1,1,1,1,1,1,1,1], "capacity_min": 2, "capacity_max": 3}`

	// WHEN posted
	resp := postJSON(t, ts.URL+"/api/simulate", body)

	// THEN the request is answered and the server keeps serving
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	health, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer health.Body.Close()
	assert.Equal(t, http.StatusOK, health.StatusCode)
}
