package pricing

import (
	"strings"
	"time"

	"titan/internal/models"
)

type deviceRule struct {
	all  []string // every substring must appear
	tier DeviceTier
}

// deviceRules are checked in order; the first full match wins. Specific
// models precede their family, and iPhone/iPad precede desktop Mac because
// their user agents contain "mac os x".
var deviceRules = []deviceRule{
	{[]string{"iphone 15 pro"}, DeviceIPhone15Pro},
	{[]string{"iphone 15"}, DeviceIPhone14},
	{[]string{"iphone 14"}, DeviceIPhone14},
	{[]string{"iphone 13"}, DeviceIPhone13},
	{[]string{"iphone"}, DeviceIPhone},
	{[]string{"android", "s24"}, DeviceAndroidSamsungS24},
	{[]string{"android", "s23"}, DeviceAndroidSamsungS24},
	{[]string{"android", "pixel"}, DeviceAndroidFlagship},
	{[]string{"android", "galaxy"}, DeviceAndroidFlagship},
	{[]string{"android"}, DeviceAndroid},
	{[]string{"ipad"}, DeviceTablet},
	{[]string{"tablet"}, DeviceTablet},
	{[]string{"macintosh"}, DeviceDesktopMac},
	{[]string{"mac os"}, DeviceDesktopMac},
	{[]string{"windows"}, DeviceDesktopWindows},
}

// ClassifyDevice maps a user agent to a device tier. matched is false when no
// rule applied and the android default was used.
func ClassifyDevice(userAgent string) (tier DeviceTier, matched bool) {
	ua := strings.ToLower(userAgent)
	for _, r := range deviceRules {
		if containsAll(ua, r.all) {
			return r.tier, true
		}
	}
	return DeviceAndroid, false
}

func containsAll(s string, parts []string) bool {
	for _, p := range parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}

var affluentPostcodePrefixes = []string{"SW1", "SW3", "SW7", "W1", "W8", "W11", "NW3", "NW8"}

var centralLondonAreas = []string{"central", "westminster", "kensington"}

var majorCities = map[string]LocationTier{
	"manchester": LocationManchester,
	"birmingham": LocationBirmingham,
	"edinburgh":  LocationEdinburgh,
	"bristol":    LocationBristol,
}

// ClassifyLocation maps postcode, city and country to a location tier.
// ambiguous is true when no signal identified the visitor's location; the
// tier is then LocationUKStandard, which carries no adjustment.
func ClassifyLocation(v models.VisitorSignal) (tier LocationTier, ambiguous bool) {
	postcode := strings.ToUpper(strings.TrimSpace(v.Postcode))
	city := strings.ToLower(strings.TrimSpace(v.City))
	country := strings.ToUpper(strings.TrimSpace(v.Country))

	if postcode != "" {
		for _, prefix := range affluentPostcodePrefixes {
			if strings.HasPrefix(postcode, prefix) {
				return LocationUKAffluent, false
			}
		}
	}

	if strings.Contains(city, "london") {
		for _, area := range centralLondonAreas {
			if strings.Contains(city, area) {
				return LocationLondonCentral, false
			}
		}
		return LocationLondonOuter, false
	}
	if t, ok := majorCities[city]; ok {
		return t, false
	}

	switch country {
	case "GB", "UK":
		return LocationUKStandard, false
	case "":
		return LocationUKStandard, true
	default:
		return LocationInternational, false
	}
}

// ClassifyTime maps a wall-clock time to a pricing context. Seasonal windows
// win over the weekend, which wins over the hour of day.
func ClassifyTime(t time.Time) TimeContext {
	month, day := t.Month(), t.Day()

	switch {
	case month == time.December && day <= 24:
		return TimeChristmasSeason
	case month == time.February && day <= 14:
		return TimeValentines
	case month == time.March && day >= 15:
		return TimeMothersDay
	case month == time.November && day >= 24 && day <= 30:
		return TimeBlackFriday
	}

	if wd := t.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return TimeWeekend
	}

	switch h := t.Hour(); {
	case h >= 12 && h < 20:
		return TimePeakHours
	case h < 6:
		return TimeOffHours
	}
	return TimeStandard
}

// ClassifyBehavior maps a visitor profile to a segment. A nil profile is a
// first visit. The checks run in priority order, so a purchase always makes
// the visitor a previous buyer before the quick-buyer check is reached.
func ClassifyBehavior(p *models.BehaviorProfile) BehaviorSegment {
	if p == nil {
		return BehaviorFirstVisit
	}

	switch {
	case p.TotalSpent > 200:
		return BehaviorHighValueBuyer
	case p.PurchaseCount > 0:
		return BehaviorPreviousBuyer
	case p.CartAbandonmentCount > 0:
		return BehaviorCartAbandoner
	case p.TimeOnSite < 300 && p.PurchaseCount > 0:
		return BehaviorQuickBuyer
	case p.VisitCount > 1 && p.PurchaseCount == 0:
		return BehaviorReturningNoPurchase
	case p.VisitCount > 5:
		return BehaviorFrequentVisitor
	}
	return BehaviorFirstVisit
}
