// Package topics picks the next blog topic from a rotating category list,
// avoiding keywords already recorded in the usage ledger.
package topics

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"titan/internal/ledger"
	"titan/internal/models"
)

const (
	eligibleCategories = 3
	topCandidates      = 5
	maxRelated         = 8

	minTargetLength = 1500
	maxTargetLength = 2500
)

var listicleSizes = []int{5, 10, 15, 20, 25, 30}

// Selector generates topic briefs. Calls are serialized so two concurrent
// selections never read the same ledger snapshot.
type Selector struct {
	ledger ledger.Ledger
	vocab  Vocabulary
	now    func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSelector creates a selector. rng and now are injected so tests can fix
// both the random draws and the calendar.
func NewSelector(l ledger.Ledger, vocab Vocabulary, rng *rand.Rand, now func() time.Time) *Selector {
	if now == nil {
		now = time.Now
	}
	return &Selector{ledger: l, vocab: vocab, rng: rng, now: now}
}

// NewSeededRand returns a PCG source for seed. A zero seed draws one from the clock.
func NewSeededRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1))
}

// SelectNextTopic builds a new brief and records its keyword in the ledger.
// Only ledger failures are returned; they wrap ledger.ErrPersistence.
func (s *Selector) SelectNextTopic(ctx context.Context) (*models.TopicRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	usage, err := s.ledger.Usage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}

	now := s.now()
	category := s.pickCategory(usage.ByCategory)
	score := s.seasonalScore(category, now.Month())

	candidates := s.candidates(category, now.Year())
	unique := filterUsed(candidates, usage.UsedSet())
	if len(unique) == 0 {
		slog.Warn("all keyword variations used, reusing candidates", "category", category, "candidates", len(candidates))
		unique = candidates
	}

	primary := s.bestKeyword(unique, category, now.Year())

	record := &models.TopicRecord{
		ID:              uuid.New(),
		PrimaryKeyword:  primary,
		RelatedKeywords: relatedKeywords(primary, category),
		Category:        category,
		TargetLength:    minTargetLength + s.rng.IntN(maxTargetLength-minTargetLength+1),
		TrendingScore:   score,
		BrandVoice:      BrandVoice(category),
		GeneratedAt:     now,
	}

	if err := s.ledger.Record(ctx, primary, category, now); err != nil {
		return nil, fmt.Errorf("failed to record topic: %w", err)
	}

	slog.Info("topic selected", "keyword", primary, "category", category, "trending_score", score, "unique_candidates", len(unique))
	return record, nil
}

// pickCategory chooses uniformly among the least used categories. Ties keep
// vocabulary order.
func (s *Selector) pickCategory(byCategory map[string]int) string {
	cats := append([]string(nil), s.vocab.Categories...)
	sort.SliceStable(cats, func(i, j int) bool {
		return byCategory[cats[i]] < byCategory[cats[j]]
	})

	n := eligibleCategories
	if n > len(cats) {
		n = len(cats)
	}
	return cats[s.rng.IntN(n)]
}

func (s *Selector) seasonalScore(category string, month time.Month) int {
	if IsInSeason(category, month) {
		return 70 + s.rng.IntN(31)
	}
	return 30 + s.rng.IntN(31)
}

// sample returns k distinct elements of pool in random order.
func sample[T any](rng *rand.Rand, pool []T, k int) []T {
	if k > len(pool) {
		k = len(pool)
	}
	out := make([]T, 0, k)
	for _, i := range rng.Perm(len(pool))[:k] {
		out = append(out, pool[i])
	}
	return out
}

func (s *Selector) candidates(category string, year int) []string {
	var out []string

	giftTypes := s.vocab.GiftTypes
	for _, modifier := range sample(s.rng, s.vocab.Modifiers, 5) {
		for _, giftType := range sample(s.rng, giftTypes, 3) {
			out = append(out, fmt.Sprintf("%s %s %s %d", modifier, category, giftType, year))
		}
	}

	for _, giftType := range sample(s.rng, giftTypes, 3) {
		out = append(out,
			fmt.Sprintf("%s %s ideas", category, giftType),
			fmt.Sprintf("%s %s for him", category, giftType),
			fmt.Sprintf("%s %s for her", category, giftType),
		)
	}

	for _, giftType := range sample(s.rng, giftTypes, 2) {
		out = append(out,
			fmt.Sprintf("how to choose %s %s", category, giftType),
			fmt.Sprintf("ultimate guide to %s %s", category, giftType),
		)
	}

	for _, n := range sample(s.rng, listicleSizes, 3) {
		out = append(out,
			fmt.Sprintf("%d %s gift ideas", n, category),
			fmt.Sprintf("top %d %s gifts", n, category),
		)
	}

	return out
}

func filterUsed(candidates []string, used map[string]struct{}) []string {
	var out []string
	for _, c := range candidates {
		if _, ok := used[ledger.Normalize(c)]; !ok {
			out = append(out, c)
		}
	}
	return out
}

// scoreKeyword rates a candidate; higher is better.
func scoreKeyword(keyword, category string, year int) int {
	score := 0
	if n := len(strings.Fields(keyword)); n >= 4 && n <= 6 {
		score += 20
	}
	if strings.Contains(keyword, strconv.Itoa(year)) {
		score += 15
	}
	if strings.Contains(keyword, "ideas") || strings.Contains(keyword, "guide") {
		score += 10
	}
	if strings.HasPrefix(strings.ToLower(keyword), category) {
		score += 10
	}
	return score
}

func (s *Selector) bestKeyword(candidates []string, category string, year int) string {
	type scored struct {
		keyword string
		score   int
	}
	list := make([]scored, len(candidates))
	for i, c := range candidates {
		list[i] = scored{c, scoreKeyword(c, category, year)}
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].score > list[j].score
	})

	n := topCandidates
	if n > len(list) {
		n = len(list)
	}
	return list[s.rng.IntN(n)].keyword
}

// relatedKeywords keeps the category phrases first, then the head and tail
// of the primary keyword, then generic brand phrases, capped at maxRelated.
func relatedKeywords(primary, category string) []string {
	related := []string{
		category + " gift ideas",
		"personalized " + category + " gifts",
		"unique " + category + " presents",
		"custom " + category + " gifts",
	}

	if words := strings.Fields(primary); len(words) > 3 {
		related = append(related,
			strings.Join(words[:3], " "),
			strings.Join(words[len(words)-3:], " "),
		)
	}

	related = append(related,
		"voice message gifts",
		"NFC gift cards",
		"memorable gifts",
		"sentimental presents",
	)

	return related[:maxRelated]
}
