package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"titan/internal/app"
	"titan/internal/config"
)

// useTestApp points LoadApp at one shared in-memory app for the test.
func useTestApp(t *testing.T) *app.App {
	t.Helper()
	cfg := &config.Config{
		LedgerBackend:   config.LedgerMemory,
		ConfigFile:      filepath.Join(t.TempDir(), "config.yaml"),
		RandomSeed:      1,
		PricingTimezone: "UTC",
	}
	now := func() time.Time { return time.Date(2026, time.October, 15, 14, 0, 0, 0, time.UTC) }
	a, err := app.Build(context.Background(), cfg, now)
	if err != nil {
		t.Fatal(err)
	}

	prev := LoadApp
	LoadApp = func(context.Context) (*app.App, error) { return a, nil }
	t.Cleanup(func() { LoadApp = prev })
	return a
}

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTopicsNext(t *testing.T) {
	a := useTestApp(t)

	out, err := run(t, NewTopicsCmd(), "next", "-n", "3")
	if err != nil {
		t.Fatalf("topics next error = %v", err)
	}
	for _, prefix := range []string{"1. ", "2. ", "3. "} {
		if !strings.Contains(out, prefix) {
			t.Errorf("output missing %q:\n%s", prefix, out)
		}
	}

	u, _ := a.Ledger.Usage(context.Background())
	if u.TotalGenerated != 3 {
		t.Errorf("TotalGenerated = %d, want 3", u.TotalGenerated)
	}

	if _, err := run(t, NewTopicsCmd(), "next", "-n", "0"); err == nil {
		t.Error("topics next -n 0 should fail")
	}
}

func TestTopicsStatsJSON(t *testing.T) {
	useTestApp(t)

	if _, err := run(t, NewTopicsCmd(), "next", "-n", "2"); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, NewTopicsCmd(), "stats", "--json")
	if err != nil {
		t.Fatalf("topics stats error = %v", err)
	}

	var s struct {
		TotalGenerated int `json:"total_generated"`
		UniqueTopics   int `json:"unique_topics"`
	}
	if err := json.Unmarshal([]byte(out), &s); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if s.TotalGenerated != 2 || s.UniqueTopics != 2 {
		t.Errorf("stats = %+v", s)
	}
}

func TestTopicsReset(t *testing.T) {
	a := useTestApp(t)
	ctx := context.Background()
	_ = a.Ledger.Record(ctx, "fathers day gift ideas", "fathers day", time.Now())
	_ = a.Ledger.Record(ctx, "wedding gift ideas", "wedding", time.Now())

	out, err := run(t, NewTopicsCmd(), "reset", "Fathers", "Day")
	if err != nil {
		t.Fatalf("topics reset error = %v", err)
	}
	if !strings.Contains(out, `Removed 1 keywords for "fathers day"`) {
		t.Errorf("output = %q", out)
	}

	if _, err := run(t, NewTopicsCmd(), "reset", "bad!"); err == nil {
		t.Error("reset with an invalid category should fail")
	}
}

func TestTopicsPlan(t *testing.T) {
	useTestApp(t)

	out, err := run(t, NewTopicsCmd(), "plan", "--date", "2026-12-01", "--count", "3")
	if err != nil {
		t.Fatalf("topics plan error = %v", err)
	}
	if !strings.HasPrefix(out, "Plan for 2026-12-01\n") || !strings.Contains(out, "3. ") {
		t.Errorf("output = %q", out)
	}

	if _, err := run(t, NewTopicsCmd(), "plan", "--date", "December"); err == nil {
		t.Error("plan with a bad date should fail")
	}
}

func TestPriceQuote(t *testing.T) {
	useTestApp(t)

	out, err := run(t, NewPriceCmd(), "quote", "single_card", "--ua", "iPhone 15 Pro", "--postcode", "SW1A 1AA", "--country", "GB")
	if err != nil {
		t.Fatalf("price quote error = %v", err)
	}
	if !strings.HasPrefix(out, "single_card: £26.95 (was £27.99, 3% off, save £1.04)") {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(out, "behavior  0.90x (first_visit)") {
		t.Errorf("output missing behavior line:\n%s", out)
	}
}

func TestPriceQuoteBehaviorFlags(t *testing.T) {
	useTestApp(t)

	out, err := run(t, NewPriceCmd(), "quote", "bundle_3", "--country", "GB", "--visits", "4", "--abandoned", "1", "--json")
	if err != nil {
		t.Fatalf("price quote error = %v", err)
	}
	var q struct {
		Multipliers map[string]struct {
			Tag string `json:"tag"`
		} `json:"multipliers"`
	}
	if err := json.Unmarshal([]byte(out), &q); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if q.Multipliers["behavior"].Tag != "cart_abandoner" {
		t.Errorf("behavior = %q, want cart_abandoner", q.Multipliers["behavior"].Tag)
	}
}

func TestPriceQuoteUnknownProduct(t *testing.T) {
	useTestApp(t)

	if _, err := run(t, NewPriceCmd(), "quote", "mystery_box"); err == nil {
		t.Error("quote for an unknown product should fail")
	}
}
