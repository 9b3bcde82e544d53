// Package ledger persists which topic keywords have been used and how often
// each category has been picked.
package ledger

import (
	"context"
	"strings"
	"time"
)

// Ledger is the usage history consulted and appended by topic selection.
type Ledger interface {
	// Usage returns a snapshot of the ledger.
	Usage(ctx context.Context) (Usage, error)
	// Record marks keyword as used and increments the category counter.
	Record(ctx context.Context, keyword, category string, at time.Time) error
	// ResetCategory forgets used keywords mentioning category and returns
	// how many were removed. Category counters are kept.
	ResetCategory(ctx context.Context, category string) (int, error)
}

// Usage is a point-in-time copy of the ledger.
type Usage struct {
	ByCategory     map[string]int
	Used           []string // lowercased, oldest first
	TotalGenerated int
	LastCategory   string
	LastUpdate     time.Time
}

// UsedSet returns the used keywords as a set.
func (u Usage) UsedSet() map[string]struct{} {
	set := make(map[string]struct{}, len(u.Used))
	for _, k := range u.Used {
		set[k] = struct{}{}
	}
	return set
}

// Recent returns up to n most recently used keywords, newest last.
func (u Usage) Recent(n int) []string {
	if n > len(u.Used) {
		n = len(u.Used)
	}
	out := make([]string, n)
	copy(out, u.Used[len(u.Used)-n:])
	return out
}

// Normalize is the canonical stored form of a keyword.
func Normalize(keyword string) string {
	return strings.ToLower(strings.TrimSpace(keyword))
}

// Clone returns a deep copy of u.
func (u Usage) Clone() Usage {
	out := u
	out.ByCategory = make(map[string]int, len(u.ByCategory))
	for k, v := range u.ByCategory {
		out.ByCategory[k] = v
	}
	out.Used = append([]string(nil), u.Used...)
	return out
}

// apply records keyword into u in place. The used list is a set: a keyword
// reused through the exhausted-pool fallback is not appended twice.
func apply(u *Usage, keyword, category string, at time.Time) {
	kw := Normalize(keyword)
	seen := false
	for _, k := range u.Used {
		if k == kw {
			seen = true
			break
		}
	}
	if !seen {
		u.Used = append(u.Used, kw)
	}
	if u.ByCategory == nil {
		u.ByCategory = make(map[string]int)
	}
	u.ByCategory[category]++
	u.TotalGenerated++
	u.LastCategory = category
	u.LastUpdate = at
}

func removeCategory(u *Usage, category string) int {
	needle := Normalize(category)
	kept := u.Used[:0]
	removed := 0
	for _, k := range u.Used {
		if strings.Contains(k, needle) {
			removed++
			continue
		}
		kept = append(kept, k)
	}
	u.Used = kept
	return removed
}
