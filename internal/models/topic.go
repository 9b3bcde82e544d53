package models

import (
	"time"

	"github.com/google/uuid"
)

// TopicRecord is a generated article brief.
type TopicRecord struct {
	ID              uuid.UUID `json:"id"`
	PrimaryKeyword  string    `json:"primary_keyword"`
	RelatedKeywords []string  `json:"related_keywords"`
	Category        string    `json:"category"`
	TargetLength    int       `json:"target_length"`
	TrendingScore   int       `json:"trending_score"`
	BrandVoice      string    `json:"brand_voice"`
	GeneratedAt     time.Time `json:"generated_at"`
}

// TopicStats summarises the usage ledger.
type TopicStats struct {
	TotalGenerated int             `json:"total_generated"`
	UniqueTopics   int             `json:"unique_topics"`
	ByCategory     []CategoryCount `json:"by_category"`
	LastCategory   string          `json:"last_category,omitempty"`
	LastUpdate     *time.Time      `json:"last_update,omitempty"`
	RecentTopics   []string        `json:"recent_topics"`
}

// CategoryCount is one row of per-category usage.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// PlannedTopic is one entry of a daily content plan.
type PlannedTopic struct {
	EpisodeNumber int    `json:"episode_number"`
	Keyword       string `json:"keyword"`
	Category      string `json:"category"`
	Title         string `json:"title"`
	Angle         string `json:"angle"`
	SearchVolume  int    `json:"search_volume"`
}
