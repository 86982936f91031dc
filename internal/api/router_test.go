package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"football-sim/internal/config"
	"football-sim/internal/store"
)

// newTestServer spins up the router against an in-memory store with short
// halves so simulations finish quickly.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	generous := RateLimitConfig{
		RequestsPerSecond: 1000,
		Burst:             1000,
		CleanupInterval:   DefaultRateLimitConfig.CleanupInterval,
	}
	router := NewRouter(RouterConfig{
		Store:           st,
		Hub:             NewWebSocketHub(NewOriginChecker(nil)),
		Sim:             config.SimConfig{HalfDurationMs: 60_000},
		RateLimitConfig: &generous,
		DisableLogging:  true,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func simulateMatch(t *testing.T, srv *httptest.Server, seed int64) map[string]interface{} {
	t.Helper()

	body, _ := json.Marshal(map[string]interface{}{
		"home": map[string]interface{}{"name": "Reds", "formation": "4-4-2"},
		"away": map[string]interface{}{"name": "Blues", "formation": "4-3-3"},
		"seed": seed,
	})
	resp, err := http.Post(srv.URL+"/api/matches", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("simulate status %d", resp.StatusCode)
	}

	var rec map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return rec
}

// TestHealthEndpoint verifies the liveness probe.
func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200, got %d", resp.StatusCode)
	}
}

// TestSimulateEndpoint verifies a full simulate-then-fetch cycle through the
// HTTP surface.
func TestSimulateEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := simulateMatch(t, srv, 42)
	if rec["id"] == nil || rec["home_name"] != "Reds" || rec["away_name"] != "Blues" {
		t.Fatalf("Unexpected record: %v", rec)
	}
	if rec["seed"].(float64) != 42 {
		t.Errorf("Expected seed 42 echoed, got %v", rec["seed"])
	}

	id := uint(rec["id"].(float64))
	resp, err := http.Get(fmt.Sprintf("%s/api/matches/%d", srv.URL, id))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("fetch status %d", resp.StatusCode)
	}

	var loaded struct {
		ID    uint                     `json:"id"`
		Stats []map[string]interface{} `json:"stats"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&loaded); err != nil {
		t.Fatal(err)
	}
	if loaded.ID != id {
		t.Errorf("Expected id %d, got %d", id, loaded.ID)
	}
	if len(loaded.Stats) == 0 {
		t.Error("Expected stat lines on the stored match")
	}
}

// TestSimulateValidation verifies malformed requests are rejected before any
// simulation runs.
func TestSimulateValidation(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", "{nope"},
		{"missing names", `{"home":{},"away":{}}`},
		{"duplicate ids", `{"home":{"team_id":1,"name":"A"},"away":{"team_id":1,"name":"B"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/api/matches", "application/json",
				bytes.NewReader([]byte(tt.body)))
			if err != nil {
				t.Fatal(err)
			}
			resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", resp.StatusCode)
			}
		})
	}
}

// TestPositionsServedFromCache verifies positions are queryable right after a
// simulation and absent for unknown matches.
func TestPositionsServedFromCache(t *testing.T) {
	srv := newTestServer(t)
	rec := simulateMatch(t, srv, 7)
	id := uint(rec["id"].(float64))

	resp, err := http.Get(fmt.Sprintf("%s/api/matches/%d/positions?t=30000", srv.URL, id))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("positions status %d", resp.StatusCode)
	}

	var payload struct {
		Players map[string][2]float64 `json:"players"`
		Ball    *[3]float64           `json:"ball"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatal(err)
	}
	if len(payload.Players) == 0 {
		t.Error("Expected player positions mid-match")
	}

	missing, err := http.Get(srv.URL + "/api/matches/99999/positions")
	if err != nil {
		t.Fatal(err)
	}
	missing.Body.Close()
	if missing.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404 for an uncached match, got %d", missing.StatusCode)
	}
}

// TestFrameEndpoint verifies the PNG renderer is reachable over HTTP.
func TestFrameEndpoint(t *testing.T) {
	srv := newTestServer(t)
	rec := simulateMatch(t, srv, 9)
	id := uint(rec["id"].(float64))

	resp, err := http.Get(fmt.Sprintf("%s/api/matches/%d/frame?t=10000", srv.URL, id))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("frame status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("Expected image/png, got %q", ct)
	}
}

// TestTableEndpoint verifies standings accumulate from stored matches.
func TestTableEndpoint(t *testing.T) {
	srv := newTestServer(t)
	simulateMatch(t, srv, 13)

	resp, err := http.Get(srv.URL + "/api/table")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("table status %d", resp.StatusCode)
	}

	var rows []map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 table rows, got %d", len(rows))
	}
	played := rows[0]["played"].(float64) + rows[1]["played"].(float64)
	if played != 2 {
		t.Errorf("Expected 2 appearances total, got %v", played)
	}
}
