package pricing

import (
	"testing"
	"time"

	"titan/internal/models"
)

func TestTagTablesAreComplete(t *testing.T) {
	for i := DeviceTier(0); i < numDeviceTiers; i++ {
		if i.String() == "" || !i.Multiplier().IsPositive() {
			t.Errorf("device tier %d has no table entry", i)
		}
	}
	for i := LocationTier(0); i < numLocationTiers; i++ {
		if i.String() == "" || !i.Multiplier().IsPositive() {
			t.Errorf("location tier %d has no table entry", i)
		}
	}
	for i := TimeContext(0); i < numTimeContexts; i++ {
		if i.String() == "" || !i.Multiplier().IsPositive() {
			t.Errorf("time context %d has no table entry", i)
		}
	}
	for i := BehaviorSegment(0); i < numBehaviorSegments; i++ {
		if i.String() == "" || !i.Multiplier().IsPositive() || strategies[i] == "" {
			t.Errorf("behavior segment %d has no table entry", i)
		}
	}
}

func TestClassifyDevice(t *testing.T) {
	tests := []struct {
		name        string
		ua          string
		want        DeviceTier
		wantMatched bool
	}{
		{"iphone 15 pro", "Mozilla/5.0 (iPhone 15 Pro; CPU iPhone OS 17_0 like Mac OS X)", DeviceIPhone15Pro, true},
		{"iphone 15", "Mozilla/5.0 (iPhone 15; CPU iPhone OS 17_0 like Mac OS X)", DeviceIPhone14, true},
		{"iphone 14", "Mozilla/5.0 (iPhone 14; CPU iPhone OS 16_0 like Mac OS X)", DeviceIPhone14, true},
		{"iphone 13", "Mozilla/5.0 (iPhone 13; CPU iPhone OS 15_0 like Mac OS X)", DeviceIPhone13, true},
		{"generic iphone", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)", DeviceIPhone, true},
		{"samsung s24", "Mozilla/5.0 (Linux; Android 14; Galaxy S24)", DeviceAndroidSamsungS24, true},
		{"samsung s23", "Mozilla/5.0 (Linux; Android 13; Galaxy S23)", DeviceAndroidSamsungS24, true},
		{"pixel", "Mozilla/5.0 (Linux; Android 14; Pixel 8)", DeviceAndroidFlagship, true},
		{"plain android", "Mozilla/5.0 (Linux; Android 12; Moto G)", DeviceAndroid, true},
		{"ipad", "Mozilla/5.0 (iPad; CPU OS 17_0 like Mac OS X)", DeviceTablet, true},
		{"mac", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)", DeviceDesktopMac, true},
		{"windows", "Mozilla/5.0 (Windows NT 10.0; Win64; x64)", DeviceDesktopWindows, true},
		{"unmatched", "curl/8.4.0", DeviceAndroid, false},
		{"empty", "", DeviceAndroid, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, matched := ClassifyDevice(tt.ua)
			if got != tt.want || matched != tt.wantMatched {
				t.Errorf("ClassifyDevice(%q) = %s, %v; want %s, %v", tt.ua, got, matched, tt.want, tt.wantMatched)
			}
		})
	}
}

func TestClassifyLocation(t *testing.T) {
	tests := []struct {
		name          string
		signal        models.VisitorSignal
		want          LocationTier
		wantAmbiguous bool
	}{
		{"affluent postcode", models.VisitorSignal{Postcode: "SW1A 1AA"}, LocationUKAffluent, false},
		{"lowercase postcode", models.VisitorSignal{Postcode: "nw3 2qg"}, LocationUKAffluent, false},
		{"postcode beats city", models.VisitorSignal{Postcode: "W8 4PT", City: "Manchester"}, LocationUKAffluent, false},
		{"central london", models.VisitorSignal{City: "London Central"}, LocationLondonCentral, false},
		{"westminster", models.VisitorSignal{City: "Westminster, London"}, LocationLondonCentral, false},
		{"outer london", models.VisitorSignal{City: "London", Postcode: "E17 4AA"}, LocationLondonOuter, false},
		{"manchester", models.VisitorSignal{City: "Manchester", Postcode: "M1 1AE"}, LocationManchester, false},
		{"bristol", models.VisitorSignal{City: "bristol"}, LocationBristol, false},
		{"uk country", models.VisitorSignal{City: "Leeds", Country: "gb"}, LocationUKStandard, false},
		{"uk alias", models.VisitorSignal{Country: "UK"}, LocationUKStandard, false},
		{"international", models.VisitorSignal{City: "Paris", Country: "FR"}, LocationInternational, false},
		{"no signals", models.VisitorSignal{}, LocationUKStandard, true},
		{"unknown city without country", models.VisitorSignal{City: "Leeds"}, LocationUKStandard, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ambiguous := ClassifyLocation(tt.signal)
			if got != tt.want || ambiguous != tt.wantAmbiguous {
				t.Errorf("ClassifyLocation(%+v) = %s, %v; want %s, %v", tt.signal, got, ambiguous, tt.want, tt.wantAmbiguous)
			}
		})
	}
}

func TestClassifyTime(t *testing.T) {
	at := func(month time.Month, day, hour, min int) time.Time {
		return time.Date(2026, month, day, hour, min, 0, 0, time.UTC)
	}
	tests := []struct {
		name string
		t    time.Time
		want TimeContext
	}{
		{"christmas start", at(time.December, 1, 10, 0), TimeChristmasSeason},
		{"christmas eve", at(time.December, 24, 23, 0), TimeChristmasSeason},
		{"christmas day weekday", at(time.December, 25, 14, 0), TimePeakHours},
		{"valentines on a saturday", at(time.February, 14, 9, 0), TimeValentines},
		{"after valentines on a sunday", at(time.February, 15, 9, 0), TimeWeekend},
		{"mothers day window", at(time.March, 15, 9, 0), TimeMothersDay},
		{"before mothers day window", at(time.March, 14, 9, 0), TimeWeekend},
		{"black friday", at(time.November, 24, 9, 0), TimeBlackFriday},
		{"black friday end", at(time.November, 30, 9, 0), TimeBlackFriday},
		{"weekday morning", at(time.November, 23, 9, 0), TimeStandard},
		{"weekend night", at(time.October, 17, 3, 0), TimeWeekend},
		{"peak start", at(time.October, 15, 12, 0), TimePeakHours},
		{"peak afternoon", at(time.October, 15, 14, 0), TimePeakHours},
		{"evening", at(time.October, 15, 20, 0), TimeStandard},
		{"off hours", at(time.October, 15, 5, 59), TimeOffHours},
		{"off hours end", at(time.October, 15, 6, 0), TimeStandard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyTime(tt.t); got != tt.want {
				t.Errorf("ClassifyTime(%s) = %s, want %s", tt.t.Format(time.RFC1123), got, tt.want)
			}
		})
	}
}

func TestClassifyBehavior(t *testing.T) {
	tests := []struct {
		name    string
		profile *models.BehaviorProfile
		want    BehaviorSegment
	}{
		{"nil profile", nil, BehaviorFirstVisit},
		{"empty profile", &models.BehaviorProfile{}, BehaviorFirstVisit},
		{"single visit", &models.BehaviorProfile{VisitCount: 1}, BehaviorFirstVisit},
		{"high spender", &models.BehaviorProfile{TotalSpent: 250, PurchaseCount: 3}, BehaviorHighValueBuyer},
		{"spend at threshold", &models.BehaviorProfile{TotalSpent: 200, PurchaseCount: 2}, BehaviorPreviousBuyer},
		{"quick purchase is still a previous buyer", &models.BehaviorProfile{PurchaseCount: 1, TimeOnSite: 60}, BehaviorPreviousBuyer},
		{"cart abandoner", &models.BehaviorProfile{VisitCount: 3, CartAbandonmentCount: 1}, BehaviorCartAbandoner},
		{"returning", &models.BehaviorProfile{VisitCount: 2}, BehaviorReturningNoPurchase},
		{"many visits without purchase", &models.BehaviorProfile{VisitCount: 9}, BehaviorReturningNoPurchase},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyBehavior(tt.profile); got != tt.want {
				t.Errorf("ClassifyBehavior() = %s, want %s", got, tt.want)
			}
		})
	}
}
