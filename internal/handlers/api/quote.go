package api

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v3"

	"titan/internal/metrics"
	"titan/internal/models"
	"titan/internal/pricing"
	"titan/internal/validation"
)

// flagDimensions maps quote flags to the dimension label used in metrics.
var flagDimensions = map[string]string{
	pricing.FlagDeviceUnmatched:   "device",
	pricing.FlagLocationAmbiguous: "location",
	pricing.FlagUnknownProduct:    "product",
}

// QuoteHandler serves dynamic price quotes via JSON API.
type QuoteHandler struct {
	resolver *pricing.Resolver
}

// NewQuoteHandler creates a new API quote handler.
func NewQuoteHandler(resolver *pricing.Resolver) *QuoteHandler {
	return &QuoteHandler{resolver: resolver}
}

// Products lists the catalogue.
func (h *QuoteHandler) Products(c fiber.Ctx) error {
	return jsonSuccess(c, h.resolver.Catalog().Products())
}

type quoteRequest struct {
	Product  string                  `json:"product"`
	Visitor  map[string]string       `json:"visitor"`
	Behavior *models.BehaviorProfile `json:"behavior"`
}

// Create prices the product named in the JSON body.
func (h *QuoteHandler) Create(c fiber.Ctx) error {
	var body quoteRequest
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	signal := models.VisitorSignalFromMap(body.Visitor)
	if signal.UserAgent == "" {
		signal.UserAgent = c.Get(fiber.HeaderUserAgent)
	}

	return h.respond(c, strings.ToLower(strings.TrimSpace(body.Product)), signal, body.Behavior)
}

// Get prices :product using the request's User-Agent header and query
// parameters for location and behavior.
func (h *QuoteHandler) Get(c fiber.Ctx) error {
	signal := models.VisitorSignal{
		UserAgent: c.Get(fiber.HeaderUserAgent),
		City:      c.Query("city"),
		Postcode:  c.Query("postcode"),
		Country:   c.Query("country"),
	}

	behavior := make(map[string]string)
	for _, k := range []string{"visit_count", "purchase_count", "cart_abandonment_count", "total_spent", "time_on_site"} {
		if v := c.Query(k); v != "" {
			behavior[k] = v
		}
	}

	return h.respond(c, strings.ToLower(c.Params("product")), signal, models.BehaviorProfileFromMap(behavior))
}

func (h *QuoteHandler) respond(c fiber.Ctx, product string, signal models.VisitorSignal, behavior *models.BehaviorProfile) error {
	if !validation.ValidateProductID(product) {
		return jsonError(c, fiber.StatusBadRequest, "invalid product id")
	}
	if _, ok := h.resolver.Catalog().Lookup(product); !ok {
		return jsonError(c, fiber.StatusNotFound, "unknown product")
	}

	q := h.resolver.Quote(product, signal, behavior)

	metrics.RecordQuote(q.Product, pricing.Segment(q))
	for _, f := range q.Flags {
		metrics.RecordAmbiguity(flagDimensions[f])
		slog.Warn("pricing signal fell back to default", "product", q.Product, "flag", f)
	}

	return jsonSuccess(c, q)
}
