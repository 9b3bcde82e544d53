package pricing

var strategies = [numBehaviorSegments]string{
	BehaviorFirstVisit:          "Acquisition discount to convert new customer",
	BehaviorReturningNoPurchase: "Conversion incentive for returning visitor",
	BehaviorCartAbandoner:       "Recovery discount to complete abandoned purchase",
	BehaviorPreviousBuyer:       "Loyalty premium (customer willing to pay more)",
	BehaviorHighValueBuyer:      "Premium pricing for high LTV customer",
	BehaviorFrequentVisitor:     "Standard pricing for engaged prospect",
	BehaviorQuickBuyer:          "Premium pricing (decisive buyer, low friction)",
}

// Strategy explains the pricing stance taken for a segment.
func Strategy(seg BehaviorSegment) string {
	if s := strategies[seg]; s != "" {
		return s
	}
	return "Standard pricing"
}

// UrgencyMessage picks the call to action shown next to the price. Seasonal
// messages take precedence over behavioral ones.
func UrgencyMessage(tc TimeContext, seg BehaviorSegment) string {
	switch tc {
	case TimeChristmasSeason:
		return "🎄 Order before Dec 20 for Christmas delivery!"
	case TimeValentines:
		return "💝 Valentine's Day is approaching - order today!"
	case TimeBlackFriday:
		return "🔥 Black Friday Special - Ends Soon!"
	}
	switch seg {
	case BehaviorCartAbandoner:
		return "⏰ Your cart is waiting - complete your order now!"
	case BehaviorFirstVisit:
		return "🎁 Welcome offer - Limited time only!"
	}
	return "📦 Order today for fast delivery"
}
