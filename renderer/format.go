package renderer

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money formats a monetary value in currency.
//
// An empty currency formats a plain number with two decimals.
func Money(value float64, currency string) string {
	v := decimal.NewFromFloat(value)
	if currency == "" {
		return v.StringFixed(2)
	}
	// to get a never nil currency I need to call the Money constructor
	cur := money.New(0, currency).Currency()
	dec := v.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(dec.IntPart())
}

// Shares formats a share count with four decimals, the precision used by brokers
// for fractional shares.
func Shares(value float64) string {
	return decimal.NewFromFloat(value).StringFixed(4)
}
