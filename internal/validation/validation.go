package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ProductIDPattern defines the valid product id format: lowercase alphanumeric and underscores.
var ProductIDPattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// CategoryPattern defines the valid category format: letters, digits, spaces and hyphens.
var CategoryPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9 -]*$`)

// MaxPlanCount caps how many topics a plan request may ask for.
const MaxPlanCount = 50

// ValidateProductID checks if a product id matches the allowed pattern.
func ValidateProductID(id string) bool {
	if id == "" || len(id) > 64 {
		return false
	}
	return ProductIDPattern.MatchString(id)
}

// NormalizeCategory lowercases and trims a category and collapses inner whitespace.
func NormalizeCategory(category string) string {
	return strings.Join(strings.Fields(strings.ToLower(category)), " ")
}

// ValidateCategory checks a normalized category.
func ValidateCategory(category string) (bool, string) {
	if category == "" {
		return false, "category is required"
	}
	if len(category) > 50 {
		return false, "category must be at most 50 characters"
	}
	if !CategoryPattern.MatchString(category) {
		return false, "category may only contain letters, digits, spaces and hyphens"
	}
	return true, ""
}

// ParsePlanDate parses a YYYY-MM-DD date. An empty string yields today in loc.
func ParsePlanDate(s string, now time.Time, loc *time.Location) (time.Time, error) {
	if s == "" {
		y, m, d := now.In(loc).Date()
		return time.Date(y, m, d, 0, 0, 0, 0, loc), nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be YYYY-MM-DD")
	}
	return t, nil
}

// ParseCount parses a positive count no larger than max. An empty string yields def.
func ParseCount(s string, def, max int) (int, error) {
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("count must be a positive integer")
	}
	if n > max {
		return 0, fmt.Errorf("count must be at most %d", max)
	}
	return n, nil
}
