package pricing

import "github.com/shopspring/decimal"

// Every tag type below is a closed enum. Each table is indexed by the tag,
// so adding a tag without a table row leaves a zero entry that the tests catch.

type tagInfo struct {
	name string
	mult decimal.Decimal
}

var dec = decimal.RequireFromString

// DeviceTier classifies the visitor's device.
type DeviceTier uint8

const (
	DeviceAndroid DeviceTier = iota
	DeviceIPhone15Pro
	DeviceIPhone14
	DeviceIPhone13
	DeviceIPhone
	DeviceAndroidSamsungS24
	DeviceAndroidFlagship
	DeviceDesktopMac
	DeviceDesktopWindows
	DeviceTablet
	numDeviceTiers
)

var deviceTable = [numDeviceTiers]tagInfo{
	DeviceIPhone15Pro:       {"iphone_15_pro", dec("1.20")},
	DeviceIPhone14:          {"iphone_14", dec("1.15")},
	DeviceIPhone13:          {"iphone_13", dec("1.10")},
	DeviceIPhone:            {"iphone", dec("1.05")},
	DeviceAndroidSamsungS24: {"android_samsung_s24", dec("1.10")},
	DeviceAndroidFlagship:   {"android_flagship", dec("1.05")},
	DeviceAndroid:           {"android", dec("1.00")},
	DeviceDesktopMac:        {"desktop_mac", dec("1.15")},
	DeviceDesktopWindows:    {"desktop_windows", dec("1.05")},
	DeviceTablet:            {"tablet", dec("1.00")},
}

func (t DeviceTier) String() string              { return deviceTable[t].name }
func (t DeviceTier) Multiplier() decimal.Decimal { return deviceTable[t].mult }

// LocationTier classifies the visitor's location by affluence.
type LocationTier uint8

const (
	LocationUKStandard LocationTier = iota
	LocationLondonCentral
	LocationLondonOuter
	LocationManchester
	LocationBirmingham
	LocationEdinburgh
	LocationBristol
	LocationUKAffluent
	LocationInternational
	numLocationTiers
)

var locationTable = [numLocationTiers]tagInfo{
	LocationLondonCentral: {"london_central", dec("1.25")},
	LocationLondonOuter:   {"london_outer", dec("1.15")},
	LocationManchester:    {"manchester", dec("1.10")},
	LocationBirmingham:    {"birmingham", dec("1.10")},
	LocationEdinburgh:     {"edinburgh", dec("1.10")},
	LocationBristol:       {"bristol", dec("1.10")},
	LocationUKAffluent:    {"uk_affluent", dec("1.15")},
	LocationUKStandard:    {"uk_standard", dec("1.00")},
	LocationInternational: {"international", dec("1.20")},
}

func (t LocationTier) String() string              { return locationTable[t].name }
func (t LocationTier) Multiplier() decimal.Decimal { return locationTable[t].mult }

// TimeContext classifies the moment of the visit.
type TimeContext uint8

const (
	TimeStandard TimeContext = iota
	TimeChristmasSeason
	TimeValentines
	TimeMothersDay
	TimeBlackFriday
	TimeWeekend
	TimePeakHours
	TimeOffHours
	numTimeContexts
)

var timeTable = [numTimeContexts]tagInfo{
	TimeChristmasSeason: {"christmas_season", dec("1.30")},
	TimeValentines:      {"valentines", dec("1.25")},
	TimeMothersDay:      {"mothers_day", dec("1.25")},
	TimeBlackFriday:     {"black_friday", dec("0.80")},
	TimeWeekend:         {"weekend", dec("1.10")},
	TimePeakHours:       {"peak_hours", dec("1.05")},
	TimeOffHours:        {"off_hours", dec("0.95")},
	TimeStandard:        {"standard", dec("1.00")},
}

func (t TimeContext) String() string              { return timeTable[t].name }
func (t TimeContext) Multiplier() decimal.Decimal { return timeTable[t].mult }

// BehaviorSegment classifies the visitor's purchase history.
type BehaviorSegment uint8

const (
	BehaviorFirstVisit BehaviorSegment = iota
	BehaviorReturningNoPurchase
	BehaviorCartAbandoner
	BehaviorPreviousBuyer
	BehaviorHighValueBuyer
	BehaviorFrequentVisitor
	BehaviorQuickBuyer
	numBehaviorSegments
)

var behaviorTable = [numBehaviorSegments]tagInfo{
	BehaviorFirstVisit:          {"first_visit", dec("0.90")},
	BehaviorReturningNoPurchase: {"returning_no_purchase", dec("0.85")},
	BehaviorCartAbandoner:       {"cart_abandoner", dec("0.75")},
	BehaviorPreviousBuyer:       {"previous_buyer", dec("1.10")},
	BehaviorHighValueBuyer:      {"high_value_buyer", dec("1.20")},
	BehaviorFrequentVisitor:     {"frequent_visitor", dec("1.00")},
	BehaviorQuickBuyer:          {"quick_buyer", dec("1.15")},
}

func (t BehaviorSegment) String() string              { return behaviorTable[t].name }
func (t BehaviorSegment) Multiplier() decimal.Decimal { return behaviorTable[t].mult }
