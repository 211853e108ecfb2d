package costbasis

import (
	"fmt"
	"iter"

	"github.com/etnz/costbasis/date"
)

// SearchWindow is the number of days, starting at the event date itself, scanned
// forward to find a trading session.
const SearchWindow = 10

// PriceSeries holds the closing price of a security for every known trading date.
//
// It is immutable once built.
type PriceSeries struct {
	prices *date.History[float64]
}

// NewPriceSeries returns a PriceSeries with the closing prices in m.
func NewPriceSeries(m map[date.Date]float64) *PriceSeries {
	return &PriceSeries{prices: date.FromMap(m)}
}

// Len returns the number of trading dates.
func (p *PriceSeries) Len() int { return p.prices.Len() }

// Latest returns the most recent trading date and its price.
func (p *PriceSeries) Latest() (date.Date, float64) { return p.prices.Latest() }

// Previous returns the last trading date strictly before day, and its price.
func (p *PriceSeries) Previous(day date.Date) (date.Date, float64, bool) {
	return p.prices.AsOf(day.Add(-1))
}

// Backward iterates over trading dates, most recent first.
func (p *PriceSeries) Backward() iter.Seq2[date.Date, float64] { return p.prices.Backward() }

// Resolve returns the effective price date for an event on day, and its closing price.
//
// Corporate actions can be dated on non trading days, so the first trading date in
// [day, day+SearchWindow-1] is used. It fails with ErrMissingPriceAnchor otherwise.
func (p *PriceSeries) Resolve(day date.Date) (date.Date, float64, error) {
	for i := range SearchWindow {
		on := day.Add(i)
		if price, ok := p.prices.Get(on); ok {
			return on, price, nil
		}
	}
	return date.Date{}, 0, fmt.Errorf("%w for %s nor any of the following %d days", ErrMissingPriceAnchor, day, SearchWindow-1)
}
