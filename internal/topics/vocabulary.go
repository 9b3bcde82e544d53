package topics

import (
	"strings"
	"time"

	"titan/internal/config"
)

// Vocabulary holds the word pools keyword candidates are built from.
type Vocabulary struct {
	Categories []string
	GiftTypes  []string
	Modifiers  []string
}

// DefaultVocabulary returns the built-in gift vocabulary.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Categories: []string{
			"birthday", "wedding", "anniversary", "christmas",
			"mothers day", "fathers day", "valentines day",
			"graduation", "baby shower", "retirement",
			"housewarming", "thank you", "apology", "sympathy",
		},
		GiftTypes: []string{
			"personalized gifts", "voice message gifts", "unique gifts",
			"handmade gifts", "sentimental gifts", "custom gifts",
			"memorable gifts", "creative gifts", "thoughtful gifts",
			"emotional gifts", "keepsake gifts", "special gifts",
		},
		Modifiers: []string{
			"best", "unique", "creative", "affordable", "luxury",
			"DIY", "last-minute", "meaningful", "perfect", "special",
			"top", "trending", "popular", "new", "innovative",
		},
	}
}

// VocabularyFrom applies YAML overrides to the defaults. Categories are
// lowercased so prefix scoring and seasonal lookups match.
func VocabularyFrom(yc *config.YAMLConfig) Vocabulary {
	v := DefaultVocabulary()
	if yc == nil {
		return v
	}
	if len(yc.Topics.Categories) > 0 {
		v.Categories = make([]string, 0, len(yc.Topics.Categories))
		for _, c := range yc.Topics.Categories {
			if c = strings.ToLower(strings.TrimSpace(c)); c != "" {
				v.Categories = append(v.Categories, c)
			}
		}
		if len(v.Categories) == 0 {
			v.Categories = DefaultVocabulary().Categories
		}
	}
	if len(yc.Topics.GiftTypes) > 0 {
		v.GiftTypes = yc.Topics.GiftTypes
	}
	if len(yc.Topics.Modifiers) > 0 {
		v.Modifiers = yc.Topics.Modifiers
	}
	return v
}

// inSeason lists the categories that get a trending boost in each month.
// Some entries are occasions without a category of their own.
var inSeason = map[time.Month][]string{
	time.January:   {"valentines day"},
	time.February:  {"valentines day"},
	time.March:     {"mothers day"},
	time.April:     {"mothers day", "graduation"},
	time.May:       {"mothers day", "fathers day", "graduation"},
	time.June:      {"fathers day", "wedding", "graduation"},
	time.July:      {"wedding"},
	time.August:    {"wedding", "birthday"},
	time.September: {"birthday"},
	time.October:   {"halloween", "birthday"},
	time.November:  {"christmas", "thanksgiving"},
	time.December:  {"christmas", "new year"},
}

// IsInSeason reports whether category is boosted in month.
func IsInSeason(category string, month time.Month) bool {
	for _, c := range inSeason[month] {
		if c == category {
			return true
		}
	}
	return false
}

var brandVoices = map[string]string{
	"birthday":       "Warm and celebratory. Make birthdays feel special and magical.",
	"wedding":        "Romantic and elegant. Focus on love and commitment.",
	"anniversary":    "Sentimental and heartfelt. Emphasize lasting love.",
	"christmas":      "Joyful and festive. Create holiday magic.",
	"mothers day":    "Appreciative and loving. Honor mothers everywhere.",
	"fathers day":    "Respectful and caring. Celebrate fatherhood.",
	"valentines day": "Romantic and passionate. Love is in the air.",
	"graduation":     "Proud and encouraging. Celebrate achievements.",
	"baby shower":    "Sweet and nurturing. Welcome new life.",
	"retirement":     "Grateful and respectful. Honor years of service.",
}

// BrandVoice returns the writing brief for a category.
func BrandVoice(category string) string {
	const base = "You are writing for SayPlay - we create personalized voice message gifts. "
	specific, ok := brandVoices[category]
	if !ok {
		specific = "Be warm, personal, and heartfelt. "
	} else {
		specific += " "
	}
	return base + specific + "Avoid being corporate or salesy."
}
