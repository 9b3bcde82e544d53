package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"titan/internal/models"
)

// Flags attached to a quote when a signal fell back to a default.
const (
	FlagUnknownProduct    = "unknown_product"
	FlagDeviceUnmatched   = "device_unmatched"
	FlagLocationAmbiguous = "location_ambiguous"
)

var (
	anchorMarkup = dec("1.40")
	hundred      = decimal.NewFromInt(100)
)

// Resolver computes personalized price quotes. It holds no mutable state,
// so a single Resolver is safe for concurrent use.
type Resolver struct {
	catalog *Catalog
	now     func() time.Time
	loc     *time.Location
}

// NewResolver creates a resolver. now defaults to time.Now and loc to UTC.
// The time context is evaluated in loc.
func NewResolver(catalog *Catalog, now func() time.Time, loc *time.Location) *Resolver {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Resolver{catalog: catalog, now: now, loc: loc}
}

// Catalog returns the resolver's product catalog.
func (r *Resolver) Catalog() *Catalog {
	return r.catalog
}

// Quote prices product for a visitor. It never fails: unknown products and
// unclassifiable signals fall back to defaults and are listed in Flags.
func (r *Resolver) Quote(product string, signal models.VisitorSignal, behavior *models.BehaviorProfile) models.PriceQuote {
	var flags []string

	p, ok := r.catalog.Lookup(product)
	if !ok {
		p, _ = r.catalog.Lookup(DefaultProduct)
		if p.BasePrice.IsZero() {
			p.BasePrice = dec("19.99")
		}
		flags = append(flags, FlagUnknownProduct)
	}

	device, matched := ClassifyDevice(signal.UserAgent)
	if !matched {
		flags = append(flags, FlagDeviceUnmatched)
	}
	location, ambiguous := ClassifyLocation(signal)
	if ambiguous {
		flags = append(flags, FlagLocationAmbiguous)
	}
	tc := ClassifyTime(r.now().In(r.loc))
	segment := ClassifyBehavior(behavior)

	raw := p.BasePrice.
		Mul(device.Multiplier()).
		Mul(location.Multiplier()).
		Mul(tc.Multiplier()).
		Mul(segment.Multiplier())
	final := RoundPrice(raw)

	original := p.BasePrice.Mul(anchorMarkup)
	discount := int(original.Sub(final).Div(original).Mul(hundred).IntPart())

	return models.PriceQuote{
		Product:         product,
		BasePrice:       p.BasePrice.Round(2),
		FinalPrice:      final.Round(2),
		OriginalPrice:   original.Round(2),
		DiscountPercent: discount,
		YouSave:         original.Sub(final).Round(2),
		Multipliers: map[string]models.Multiplier{
			"device":   {Factor: device.Multiplier(), Tag: device.String()},
			"location": {Factor: location.Multiplier(), Tag: location.String()},
			"time":     {Factor: tc.Multiplier(), Tag: tc.String()},
			"behavior": {Factor: segment.Multiplier(), Tag: segment.String()},
		},
		Strategy:       Strategy(segment),
		UrgencyMessage: UrgencyMessage(tc, segment),
		Flags:          flags,
	}
}

// Segment returns the behavior segment tag for a quote's metrics label.
func Segment(q models.PriceQuote) string {
	return q.Multipliers["behavior"].Tag
}
