package server

import (
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"

	"titan/internal/config"
	"titan/internal/ledger"
	"titan/internal/pricing"
	"titan/internal/topics"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:             "development",
		BaseURL:         "http://localhost:3000",
		RateLimitMax:    100,
		AdminAPIKey:     "test-key",
		PricingTimezone: "UTC",
	}
}

func newTestServer(cfg *config.Config) *Server {
	now := func() time.Time { return time.Date(2026, time.October, 15, 14, 0, 0, 0, time.UTC) }
	l := ledger.NewMemory()

	s := New(cfg)
	s.RegisterRoutes(Deps{
		Ledger:        l,
		LedgerBackend: config.LedgerMemory,
		Selector:      topics.NewSelector(l, topics.DefaultVocabulary(), topics.NewSeededRand(1), now),
		Planner:       topics.NewPlanner(0),
		Resolver:      pricing.NewResolver(nil, now, time.UTC),
	})
	return s
}

func TestRoutes(t *testing.T) {
	s := newTestServer(testConfig())

	tests := []struct {
		name       string
		method     string
		path       string
		apiKey     string
		wantStatus int
	}{
		{"health", "GET", "/healthz", "", fiber.StatusOK},
		{"metrics", "GET", "/metrics", "", fiber.StatusOK},
		{"products", "GET", "/api/v1/products", "", fiber.StatusOK},
		{"quote", "GET", "/api/v1/quote/single_card?country=GB", "", fiber.StatusOK},
		{"plan", "GET", "/api/v1/topics/plan", "", fiber.StatusOK},
		{"next", "POST", "/api/v1/topics/next", "", fiber.StatusCreated},
		{"reset without key", "POST", "/api/v1/topics/reset/wedding", "", fiber.StatusUnauthorized},
		{"reset with key", "POST", "/api/v1/topics/reset/wedding", "test-key", fiber.StatusOK},
		{"unknown route", "GET", "/nope", "", fiber.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(tt.method, tt.path, nil)
			if tt.apiKey != "" {
				req.Header.Set("X-API-Key", tt.apiKey)
			}
			resp, err := s.App.Test(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}

func TestErrorHandlerUsesJSONEnvelope(t *testing.T) {
	s := newTestServer(testConfig())

	req, _ := http.NewRequest("GET", "/does-not-exist", nil)
	resp, err := s.App.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	var env map[string]string
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("body %q is not JSON: %v", body, err)
	}
	if env["status"] != "error" || env["error"] == "" {
		t.Errorf("envelope = %v", env)
	}
}

func TestRateLimiter(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitMax = 2
	s := newTestServer(cfg)

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req, _ := http.NewRequest("GET", "/api/v1/products", nil)
		resp, err := s.App.Test(req)
		if err != nil {
			t.Fatalf("request %d failed: %v", i, err)
		}
		resp.Body.Close()
		statuses = append(statuses, resp.StatusCode)
	}
	if statuses[0] != 200 || statuses[1] != 200 || statuses[2] != fiber.StatusTooManyRequests {
		t.Errorf("statuses = %v, want [200 200 429]", statuses)
	}

	// Health probes bypass the limiter.
	req, _ := http.NewRequest("GET", "/healthz", nil)
	resp, err := s.App.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("healthz status = %d, want 200", resp.StatusCode)
	}
}

func TestBuildTLSConfig(t *testing.T) {
	cfg := testConfig()

	tc, err := buildTLSConfig(cfg)
	if err != nil {
		t.Fatalf("buildTLSConfig() error = %v", err)
	}
	if tc.ClientCAs != nil {
		t.Error("ClientCAs set without a CA file")
	}

	cfg.TLSCAFile = filepath.Join(t.TempDir(), "missing.pem")
	if _, err := buildTLSConfig(cfg); err == nil || !strings.Contains(err.Error(), "CA file") {
		t.Errorf("buildTLSConfig() error = %v, want CA file error", err)
	}
}
