package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// TestIPRateLimiterBurst verifies the burst cap and the per-IP isolation.
func TestIPRateLimiterBurst(t *testing.T) {
	rl := NewIPRateLimiter(RateLimitConfig{
		RequestsPerSecond: 1,
		Burst:             2,
		CleanupInterval:   time.Minute,
	})
	defer rl.Stop()

	if !rl.Allow("1.1.1.1") || !rl.Allow("1.1.1.1") {
		t.Fatal("Burst of 2 should admit two requests")
	}
	if rl.Allow("1.1.1.1") {
		t.Error("Third request should exceed the burst")
	}
	if !rl.Allow("2.2.2.2") {
		t.Error("A different IP must have its own budget")
	}

	stats := rl.GetStats()
	if stats["allowed"] != 3 || stats["rejected"] != 1 {
		t.Errorf("Stats wrong: %v", stats)
	}
}

// TestRateLimitMiddleware verifies rejected requests get 429 with Retry-After.
func TestRateLimitMiddleware(t *testing.T) {
	rl := NewIPRateLimiter(RateLimitConfig{
		RequestsPerSecond: 1,
		Burst:             1,
		CleanupInterval:   time.Minute,
	})
	defer rl.Stop()

	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "9.9.9.9:1234"

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, req)
	if first.Code != http.StatusOK {
		t.Fatalf("First request should pass, got %d", first.Code)
	}

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, req)
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("Second request should be limited, got %d", second.Code)
	}
	if second.Header().Get("Retry-After") == "" {
		t.Error("Expected a Retry-After header on rejection")
	}
}

// TestGetClientIP verifies the proxy header precedence.
func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		xri        string
		want       string
	}{
		{"plain remote addr", "10.0.0.1:5000", "", "", "10.0.0.1"},
		{"x-forwarded-for single", "10.0.0.1:5000", "203.0.113.7", "", "203.0.113.7"},
		{"x-forwarded-for chain", "10.0.0.1:5000", "203.0.113.7, 10.0.0.2", "", "203.0.113.7"},
		{"x-real-ip fallback", "10.0.0.1:5000", "", "203.0.113.9", "203.0.113.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				req.Header.Set("X-Real-IP", tt.xri)
			}
			if got := GetClientIP(req); got != tt.want {
				t.Errorf("GetClientIP = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestWebSocketRateLimiterCap verifies the per-IP connection cap and that
// releasing frees a slot.
func TestWebSocketRateLimiterCap(t *testing.T) {
	wrl := NewWebSocketRateLimiter(2)

	if !wrl.Allow("1.1.1.1") || !wrl.Allow("1.1.1.1") {
		t.Fatal("Two connections should be allowed")
	}
	if wrl.Allow("1.1.1.1") {
		t.Error("Third connection should be rejected")
	}

	wrl.Release("1.1.1.1")
	if !wrl.Allow("1.1.1.1") {
		t.Error("Released slot should be reusable")
	}
	if wrl.GetConnectionCount("1.1.1.1") != 2 {
		t.Errorf("Expected 2 active, got %d", wrl.GetConnectionCount("1.1.1.1"))
	}
}

// TestOriginChecker verifies localhost is always welcome and unknown origins
// are not.
func TestOriginChecker(t *testing.T) {
	checker := NewOriginChecker([]string{"https://example.com"})

	tests := []struct {
		origin string
		want   bool
	}{
		{"", false},
		{"http://localhost:5173", true},
		{"http://127.0.0.1:8080", true},
		{"https://example.com", true},
		{"https://evil.example.net", false},
	}

	for _, tt := range tests {
		if got := checker.Allowed(tt.origin); got != tt.want {
			t.Errorf("Allowed(%q) = %v, want %v", tt.origin, got, tt.want)
		}
	}

	fallback := NewOriginChecker(nil)
	if len(fallback.Origins()) == 0 {
		t.Error("Empty config should fall back to the localhost list")
	}
}
