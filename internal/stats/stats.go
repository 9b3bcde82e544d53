package stats

import (
	"sort"

	"titan/internal/ledger"
	"titan/internal/models"
)

// RecentCount is how many recent keywords a summary lists.
const RecentCount = 5

// Build summarises a usage snapshot. Categories are ordered by count,
// highest first, then by name.
func Build(u ledger.Usage) models.TopicStats {
	s := models.TopicStats{
		TotalGenerated: u.TotalGenerated,
		UniqueTopics:   len(u.Used),
		ByCategory:     make([]models.CategoryCount, 0, len(u.ByCategory)),
		LastCategory:   u.LastCategory,
		RecentTopics:   u.Recent(RecentCount),
	}
	for cat, n := range u.ByCategory {
		s.ByCategory = append(s.ByCategory, models.CategoryCount{Category: cat, Count: n})
	}
	sort.Slice(s.ByCategory, func(i, j int) bool {
		a, b := s.ByCategory[i], s.ByCategory[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Category < b.Category
	})
	if !u.LastUpdate.IsZero() {
		t := u.LastUpdate
		s.LastUpdate = &t
	}
	return s
}
