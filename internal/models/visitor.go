package models

import (
	"strconv"
	"strings"
)

// VisitorSignal carries the request-level signals used for pricing.
type VisitorSignal struct {
	UserAgent string `json:"user_agent"`
	City      string `json:"city"`
	Postcode  string `json:"postcode"`
	Country   string `json:"country"`
}

// BehaviorProfile carries a visitor's history. A nil profile means first visit.
type BehaviorProfile struct {
	VisitCount           int     `json:"visit_count"`
	PurchaseCount        int     `json:"purchase_count"`
	CartAbandonmentCount int     `json:"cart_abandonment_count"`
	TotalSpent           float64 `json:"total_spent"`
	TimeOnSite           int     `json:"time_on_site"` // seconds
}

// VisitorSignalFromMap builds a signal from an ad hoc key/value map.
// Unknown keys are ignored; keys are matched case-insensitively.
func VisitorSignalFromMap(m map[string]string) VisitorSignal {
	var v VisitorSignal
	for k, val := range m {
		switch strings.ToLower(strings.TrimSpace(k)) {
		case "user_agent", "user-agent", "useragent":
			v.UserAgent = val
		case "city":
			v.City = val
		case "postcode", "postal_code", "zip":
			v.Postcode = val
		case "country", "country_code":
			v.Country = val
		}
	}
	return v
}

// BehaviorProfileFromMap builds a profile from an ad hoc key/value map.
// It returns nil when the map is empty. Unparseable numbers count as zero.
func BehaviorProfileFromMap(m map[string]string) *BehaviorProfile {
	if len(m) == 0 {
		return nil
	}
	p := &BehaviorProfile{}
	for k, val := range m {
		val = strings.TrimSpace(val)
		switch strings.ToLower(strings.TrimSpace(k)) {
		case "visit_count":
			p.VisitCount, _ = strconv.Atoi(val)
		case "purchase_count":
			p.PurchaseCount, _ = strconv.Atoi(val)
		case "cart_abandonment_count":
			p.CartAbandonmentCount, _ = strconv.Atoi(val)
		case "total_spent":
			p.TotalSpent, _ = strconv.ParseFloat(val, 64)
		case "time_on_site":
			p.TimeOnSite, _ = strconv.Atoi(val)
		}
	}
	return p
}
