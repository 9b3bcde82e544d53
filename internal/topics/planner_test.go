package topics

import (
	"testing"
	"time"
)

func TestPlanIsStablePerDate(t *testing.T) {
	p := NewPlanner(0)
	day := time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)

	a := p.Plan(day, 10)
	b := p.Plan(day.Add(10*time.Hour), 10)
	if len(a) != len(b) {
		t.Fatalf("plans differ in length: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("plan[%d] = %+v, want %+v", i, b[i], a[i])
		}
	}
}

func TestPlanVariesWithSalt(t *testing.T) {
	day := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	a := NewPlanner(1).Plan(day, 10)
	b := NewPlanner(2).Plan(day, 10)

	same := len(a) == len(b)
	for i := 0; same && i < len(a); i++ {
		same = a[i].Keyword == b[i].Keyword
	}
	if same {
		t.Errorf("different salts produced identical plans: %+v", a)
	}
}

func TestPlanShape(t *testing.T) {
	p := NewPlanner(0)
	for d := 0; d < 30; d++ {
		day := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, d)
		plan := p.Plan(day, 10)

		if len(plan) == 0 || len(plan) > 10 {
			t.Fatalf("%s: len(plan) = %d", day.Format("2006-01-02"), len(plan))
		}

		seen := make(map[string]bool)
		for i, pt := range plan {
			if pt.EpisodeNumber != i+1 {
				t.Errorf("%s: plan[%d].EpisodeNumber = %d", day.Format("2006-01-02"), i, pt.EpisodeNumber)
			}
			// The first five entries cover five distinct categories.
			if i < diverseCategoryTarget && seen[pt.Category] {
				t.Errorf("%s: category %q repeated before %d were covered", day.Format("2006-01-02"), pt.Category, diverseCategoryTarget)
			}
			seen[pt.Category] = true
		}
	}
}

func TestPlanCount(t *testing.T) {
	p := NewPlanner(0)
	day := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	if got := p.Plan(day, 0); len(got) != 0 {
		t.Errorf("Plan(0) = %v, want empty", got)
	}
	if got := p.Plan(day, 3); len(got) != 3 {
		t.Errorf("len(Plan(3)) = %d, want 3", len(got))
	}
	if got := p.Plan(day, 100); len(got) > len(curatedTopics) {
		t.Errorf("len(Plan(100)) = %d, want at most %d", len(got), len(curatedTopics))
	}
}
