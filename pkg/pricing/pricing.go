// Package pricing derives sale prices from the stored detail version.
package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

// Window is the discount part of a product detail version.
type Window struct {
	Rate  *int
	Start *time.Time
	End   *time.Time
}

// EffectiveRate is the discount in percent that applies at t. A missing rate
// is 0. A missing bound leaves that side of the window open, so a window with
// neither bound always applies. Both bounds are inclusive.
func (w Window) EffectiveRate(t time.Time) int {
	if w.Rate == nil {
		return 0
	}
	if w.Start != nil && t.Before(*w.Start) {
		return 0
	}
	if w.End != nil && t.After(*w.End) {
		return 0
	}
	return *w.Rate
}

// ListPrice rounds to tens, as prices are shown.
func ListPrice(price decimal.Decimal) decimal.Decimal {
	return price.Round(-1)
}

// SalePrice applies rate percent off and rounds to tens.
func SalePrice(price decimal.Decimal, rate int) decimal.Decimal {
	if rate <= 0 {
		return ListPrice(price)
	}
	factor := decimal.NewFromInt(int64(100 - rate)).Div(decimal.NewFromInt(100))
	return price.Mul(factor).Round(-1)
}

// EffectiveRateSQL mirrors EffectiveRate for a product_details alias; the two
// placeholders both take the reference instant.
func EffectiveRateSQL(alias string) string {
	return "CASE WHEN " + alias + ".discount_rate IS NULL THEN 0" +
		" WHEN (" + alias + ".discount_start_date IS NULL OR " + alias + ".discount_start_date <= ?)" +
		" AND (" + alias + ".discount_end_date IS NULL OR " + alias + ".discount_end_date >= ?)" +
		" THEN " + alias + ".discount_rate ELSE 0 END"
}
