package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"LEDGER_BACKEND", "RATE_LIMIT_MAX", "STATS_CACHE_TTL", "TLS_CERT_FILE", "TLS_KEY_FILE", "ENABLE_TOPIC_SCHEDULER"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.LedgerBackend != LedgerFile {
		t.Errorf("LedgerBackend = %q, want %q", cfg.LedgerBackend, LedgerFile)
	}
	if cfg.RateLimitMax != 100 {
		t.Errorf("RateLimitMax = %d, want 100", cfg.RateLimitMax)
	}
	if cfg.StatsCacheTTL != 30*time.Second {
		t.Errorf("StatsCacheTTL = %v, want 30s", cfg.StatsCacheTTL)
	}
	if cfg.TLSEnabled || cfg.EnableTopicScheduler {
		t.Errorf("TLSEnabled = %v, EnableTopicScheduler = %v, want false", cfg.TLSEnabled, cfg.EnableTopicScheduler)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LEDGER_BACKEND", "postgres")
	t.Setenv("RATE_LIMIT_MAX", "not-a-number")
	t.Setenv("STATS_CACHE_TTL", "5s")
	t.Setenv("RANDOM_SEED", "42")
	t.Setenv("TLS_CERT_FILE", "cert.pem")
	t.Setenv("TLS_KEY_FILE", "key.pem")

	cfg := Load()
	if cfg.LedgerBackend != LedgerPostgres {
		t.Errorf("LedgerBackend = %q", cfg.LedgerBackend)
	}
	if cfg.RateLimitMax != 100 {
		t.Errorf("RateLimitMax = %d, want fallback 100", cfg.RateLimitMax)
	}
	if cfg.StatsCacheTTL != 5*time.Second {
		t.Errorf("StatsCacheTTL = %v, want 5s", cfg.StatsCacheTTL)
	}
	if cfg.RandomSeed != 42 {
		t.Errorf("RandomSeed = %d, want 42", cfg.RandomSeed)
	}
	if !cfg.TLSEnabled {
		t.Error("TLSEnabled = false, want true with cert and key set")
	}
}

func TestLocation(t *testing.T) {
	tests := []struct {
		zone string
		want string
	}{
		{"Europe/London", "Europe/London"},
		{"Mars/Olympus", "UTC"},
	}
	for _, tt := range tests {
		t.Run(tt.zone, func(t *testing.T) {
			cfg := &Config{PricingTimezone: tt.zone}
			if got := cfg.Location().String(); got != tt.want {
				t.Errorf("Location() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMissingCredentials(t *testing.T) {
	cfg := &Config{GeminiAPIKey: "k", MediumToken: "t", SpotifyClientID: "id"}

	missing := cfg.MissingCredentials()
	keys := make(map[string]bool)
	for _, e := range missing {
		keys[e.Key] = true
		if !errors.Is(e, ErrConfiguration) {
			t.Errorf("%s does not match ErrConfiguration", e.Key)
		}
	}
	for _, k := range []string{"PINTEREST_TOKEN", "SPOTIFY_CLIENT_SECRET", "GSC_CREDENTIALS_FILE"} {
		if !keys[k] {
			t.Errorf("%s not reported missing", k)
		}
	}
	if len(missing) != 3 {
		t.Errorf("len(missing) = %d, want 3", len(missing))
	}
	if n := cfg.WarnMissingCredentials(); n != 3 {
		t.Errorf("WarnMissingCredentials() = %d, want 3", n)
	}
}

func TestLoadYAMLConfig(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadYAMLConfig(filepath.Join(dir, "missing.yaml"))
	if err != nil || cfg != nil {
		t.Fatalf("missing file: cfg = %v, err = %v; want nil, nil", cfg, err)
	}

	path := filepath.Join(dir, "config.yaml")
	data := `
products:
  - id: gift_box
    name: Gift Box
    base_price: "39.99"
topics:
  categories: [birthday, retirement]
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadYAMLConfig(path)
	if err != nil {
		t.Fatalf("LoadYAMLConfig() error = %v", err)
	}
	if len(cfg.Products) != 1 || cfg.Products[0].BasePrice != "39.99" {
		t.Errorf("Products = %+v", cfg.Products)
	}
	if len(cfg.Topics.Categories) != 2 || cfg.Topics.Categories[1] != "retirement" {
		t.Errorf("Categories = %v", cfg.Topics.Categories)
	}

	if err := os.WriteFile(path, []byte("products: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadYAMLConfig(path); err == nil {
		t.Error("malformed YAML should fail")
	}
}
