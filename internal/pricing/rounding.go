package pricing

import "github.com/shopspring/decimal"

var (
	twenty  = decimal.NewFromInt(20)
	fifty   = decimal.NewFromInt(50)
	cents99 = dec("0.99")
	cents95 = dec("0.95")
)

// RoundPrice snaps a raw price to a psychological price point: x.99 below
// 20, x.95 below 50 and x.99 from 50 up, always on the whole-pound floor.
func RoundPrice(x decimal.Decimal) decimal.Decimal {
	whole := x.Floor()
	switch {
	case x.LessThan(twenty):
		return whole.Add(cents99)
	case x.LessThan(fifty):
		return whole.Add(cents95)
	default:
		return whole.Add(cents99)
	}
}
