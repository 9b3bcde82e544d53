package pricing

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"titan/internal/config"
	"titan/internal/models"
)

// DefaultProduct is priced when a quote names an unknown product.
const DefaultProduct = "single_card"

var defaultProducts = []models.Product{
	{ID: "single_card", Name: "Single Voice Card", BasePrice: dec("19.99")},
	{ID: "premium_card", Name: "Premium Voice Card", BasePrice: dec("29.99")},
	{ID: "bundle_3", Name: "Bundle of 3 Cards", BasePrice: dec("49.99")},
	{ID: "bundle_5", Name: "Bundle of 5 Cards", BasePrice: dec("74.99")},
	{ID: "business_100", Name: "Business Pack (100 Cards)", BasePrice: dec("1499.99")},
}

// Catalog maps product ids to base prices. It is read-only after construction.
type Catalog struct {
	products map[string]models.Product
}

// DefaultCatalog returns the built-in product list.
func DefaultCatalog() *Catalog {
	c := &Catalog{products: make(map[string]models.Product, len(defaultProducts))}
	for _, p := range defaultProducts {
		c.products[p.ID] = p
	}
	return c
}

// CatalogFrom applies YAML product overrides to the defaults. Entries with a
// missing id or an invalid price are skipped with a log line.
func CatalogFrom(yc *config.YAMLConfig) *Catalog {
	c := DefaultCatalog()
	if yc == nil {
		return c
	}
	for _, pc := range yc.Products {
		id := strings.ToLower(strings.TrimSpace(pc.ID))
		if id == "" {
			log.Printf("Skipping product with empty id in config")
			continue
		}
		price, err := parsePrice(pc.BasePrice)
		if err != nil {
			log.Printf("Skipping product %q: %v", id, err)
			continue
		}
		name := pc.Name
		if name == "" {
			name = c.products[id].Name
		}
		c.products[id] = models.Product{ID: id, Name: name, BasePrice: price}
	}
	return c
}

func parsePrice(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid base price %q: %w", s, err)
	}
	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("base price %q must be positive", s)
	}
	return d, nil
}

// Lookup returns the product with id.
func (c *Catalog) Lookup(id string) (models.Product, bool) {
	p, ok := c.products[id]
	return p, ok
}

// Products returns all products ordered by base price.
func (c *Catalog) Products() []models.Product {
	out := make([]models.Product, 0, len(c.products))
	for _, p := range c.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if d := out[i].BasePrice.Cmp(out[j].BasePrice); d != 0 {
			return d < 0
		}
		return out[i].ID < out[j].ID
	})
	return out
}
