package models

import "github.com/shopspring/decimal"

// Multiplier is one applied pricing factor and the tag that selected it.
type Multiplier struct {
	Factor decimal.Decimal `json:"factor"`
	Tag    string          `json:"tag"`
}

// PriceQuote is the display-ready result of a dynamic price calculation.
type PriceQuote struct {
	Product         string                `json:"product"`
	BasePrice       decimal.Decimal       `json:"base_price"`
	FinalPrice      decimal.Decimal       `json:"final_price"`
	OriginalPrice   decimal.Decimal       `json:"original_price"`
	DiscountPercent int                   `json:"discount_percent"`
	YouSave         decimal.Decimal       `json:"you_save"`
	Multipliers     map[string]Multiplier `json:"multipliers"`
	Strategy        string                `json:"strategy"`
	UrgencyMessage  string                `json:"urgency_message"`
	// Flags lists signals that matched no rule and fell back to a default.
	Flags []string `json:"flags,omitempty"`
}

// Product is a priced catalogue entry.
type Product struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	BasePrice decimal.Decimal `json:"base_price"`
}
