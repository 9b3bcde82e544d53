package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"titan/internal/models"
)

// PriceCmd groups the pricing commands.
var PriceCmd = NewPriceCmd()

// NewPriceCmd builds the "price" command tree.
func NewPriceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "price",
		Short: "Compute dynamic prices",
	}
	cmd.AddCommand(newPriceQuoteCmd())
	return cmd
}

func newPriceQuoteCmd() *cobra.Command {
	var (
		signal   models.VisitorSignal
		behavior models.BehaviorProfile
		jsonOut  bool
	)
	cmd := &cobra.Command{
		Use:   "quote <product>",
		Short: "Price a product for a visitor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := LoadApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			product := strings.ToLower(args[0])
			if _, ok := a.Resolver.Catalog().Lookup(product); !ok {
				return fmt.Errorf("unknown product %q", product)
			}

			var profile *models.BehaviorProfile
			for _, f := range []string{"visits", "purchases", "abandoned", "spent", "time-on-site"} {
				if cmd.Flags().Changed(f) {
					profile = &behavior
					break
				}
			}

			q := a.Resolver.Quote(product, signal, profile)

			out := cmd.OutOrStdout()
			if jsonOut {
				return printJSON(out, q)
			}
			fmt.Fprintf(out, "%s: £%s (was £%s, %d%% off, save £%s)\n",
				q.Product, q.FinalPrice.StringFixed(2), q.OriginalPrice.StringFixed(2), q.DiscountPercent, q.YouSave.StringFixed(2))

			dims := make([]string, 0, len(q.Multipliers))
			for d := range q.Multipliers {
				dims = append(dims, d)
			}
			sort.Strings(dims)
			for _, d := range dims {
				m := q.Multipliers[d]
				fmt.Fprintf(out, "  %-9s %sx (%s)\n", d, m.Factor.StringFixed(2), m.Tag)
			}
			fmt.Fprintf(out, "Strategy: %s\n", q.Strategy)
			fmt.Fprintf(out, "Urgency:  %s\n", q.UrgencyMessage)
			if len(q.Flags) > 0 {
				fmt.Fprintf(out, "Fallbacks: %s\n", strings.Join(q.Flags, ", "))
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&signal.UserAgent, "ua", "", "Visitor user agent")
	f.StringVar(&signal.City, "city", "", "Visitor city")
	f.StringVar(&signal.Postcode, "postcode", "", "Visitor postcode")
	f.StringVar(&signal.Country, "country", "", "Visitor country code")
	f.IntVar(&behavior.VisitCount, "visits", 0, "Number of visits")
	f.IntVar(&behavior.PurchaseCount, "purchases", 0, "Number of purchases")
	f.IntVar(&behavior.CartAbandonmentCount, "abandoned", 0, "Number of abandoned carts")
	f.Float64Var(&behavior.TotalSpent, "spent", 0, "Total spent in GBP")
	f.IntVar(&behavior.TimeOnSite, "time-on-site", 0, "Seconds on site")
	f.BoolVar(&jsonOut, "json", false, "Print JSON instead of text")
	return cmd
}
