package topics

import (
	"hash/fnv"
	"math/rand/v2"
	"time"

	"titan/internal/models"
)

// diverseCategoryTarget is how many distinct categories a plan covers before
// repeats are allowed.
const diverseCategoryTarget = 5

type curatedTopic struct {
	keyword      string
	category     string
	title        string
	angle        string
	searchVolume int
}

var curatedTopics = []curatedTopic{
	{"birthday gifts for mum", "Birthday", "Perfect Birthday Gifts for Mum", "heartfelt and personal", 5000},
	{"birthday gifts for dad", "Birthday", "Thoughtful Birthday Gifts Your Dad Will Love", "practical and meaningful", 4200},
	{"birthday gifts for wife", "Birthday", "Romantic Birthday Gifts for Your Wife", "romantic and special", 3800},
	{"birthday gifts for husband", "Birthday", "Best Birthday Gifts for Your Husband", "thoughtful and unique", 3500},
	{"birthday gifts for best friend", "Birthday", "Creative Birthday Gifts for Your Best Friend", "fun and memorable", 4100},
	{"anniversary gifts for wife", "Anniversary", "Romantic Anniversary Gifts Your Wife Will Treasure", "romantic and memorable", 4200},
	{"anniversary gifts for husband", "Anniversary", "Meaningful Anniversary Gifts for Your Husband", "heartfelt and lasting", 3900},
	{"wedding anniversary gifts", "Anniversary", "Beautiful Wedding Anniversary Gift Ideas", "elegant and romantic", 5200},
	{"christmas gifts for mum", "Christmas", "Perfect Christmas Gifts for Mum", "warm and personal", 6200},
	{"christmas gifts for dad", "Christmas", "Great Christmas Gifts Dad Will Actually Use", "practical and thoughtful", 5800},
	{"wedding gifts for couples", "Wedding", "Unique Wedding Gifts Couples Will Treasure", "unique and lasting", 3800},
	{"mothers day gift ideas", "Mothers Day", "Heartfelt Mothers Day Gifts She Will Love", "emotional and personal", 12000},
	{"fathers day presents", "Fathers Day", "Best Fathers Day Presents for Every Dad", "practical and meaningful", 9500},
	{"valentine gifts for him", "Valentines", "Romantic Valentine Gifts He Will Actually Want", "romantic and thoughtful", 6700},
	{"valentine gifts for her", "Valentines", "Beautiful Valentine Gifts She Will Adore", "romantic and elegant", 7200},
}

// Planner produces a daily list of podcast/blog topics from a curated set.
// The same date and salt always give the same plan.
type Planner struct {
	salt uint64
}

// NewPlanner creates a planner. salt is mixed into the per-date seed.
func NewPlanner(salt uint64) *Planner {
	return &Planner{salt: salt}
}

// Plan returns up to count topics for date, numbered from 1.
func (p *Planner) Plan(date time.Time, count int) []models.PlannedTopic {
	if count <= 0 {
		return []models.PlannedTopic{}
	}

	rng := rand.New(rand.NewPCG(p.seedFor(date), p.salt))
	shuffled := append([]curatedTopic(nil), curatedTopics...)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	plan := make([]models.PlannedTopic, 0, count)
	seen := make(map[string]struct{})
	for _, t := range shuffled {
		if len(plan) >= count {
			break
		}
		// Prefer new categories until enough distinct ones are covered.
		if _, ok := seen[t.category]; ok && len(seen) < diverseCategoryTarget {
			continue
		}
		seen[t.category] = struct{}{}
		plan = append(plan, models.PlannedTopic{
			EpisodeNumber: len(plan) + 1,
			Keyword:       t.keyword,
			Category:      t.category,
			Title:         t.title,
			Angle:         t.angle,
			SearchVolume:  t.searchVolume,
		})
	}
	return plan
}

func (p *Planner) seedFor(date time.Time) uint64 {
	h := fnv.New64a()
	h.Write([]byte(date.Format("2006-01-02")))
	return h.Sum64() ^ p.salt
}
