package costbasis

import (
	"fmt"
	"slices"

	"github.com/etnz/costbasis/date"
)

// Reconstruct returns the share count and position value on every trading date of
// prices, given the number of shares held on the most recent one.
//
// Timeline entries are undone most recent first: every dividend is assumed to have
// been fully reinvested at the closing price of its effective date, and every split
// ratio is inverted. When a dividend and a split share a date, the dividend is undone
// first.
//
// Trading dates strictly after an entry's effective date keep the share count
// that was valid before that entry was undone. The effective date itself, and
// every older date, gets the adjusted count.
//
// Any error aborts the reconstruction, no partial Series is returned.
func Reconstruct(prices *PriceSeries, timeline Timeline, shares float64) (*Series, error) {
	if !(shares > 0) {
		return nil, fmt.Errorf("current shares must be positive, got %v", shares)
	}
	r := newReconstruction(prices, shares)
	for e := range timeline.Backward() {
		on, price, err := prices.Resolve(e.Date)
		if err != nil {
			return nil, err
		}
		r.fill(on)
		if err := r.undo(e, on, price); err != nil {
			return nil, err
		}
	}
	r.fill(date.Date{})

	slices.Reverse(r.points)
	return &Series{points: r.points, transitions: r.transitions}, nil
}

// reconstruction is the state of a single backward walk.
type reconstruction struct {
	days   []date.Date // trading dates, most recent first
	prices []float64
	cursor int // next trading date to emit

	shares      float64
	points      []Point // most recent first
	transitions []Transition
}

func newReconstruction(prices *PriceSeries, shares float64) *reconstruction {
	r := &reconstruction{
		days:   make([]date.Date, 0, prices.Len()),
		prices: make([]float64, 0, prices.Len()),
		shares: shares,
		points: make([]Point, 0, prices.Len()),
	}
	for on, price := range prices.Backward() {
		r.days = append(r.days, on)
		r.prices = append(r.prices, price)
	}
	return r
}

// fill emits a point, with the current share count, for every pending trading
// date strictly after since.
func (r *reconstruction) fill(since date.Date) {
	for ; r.cursor < len(r.days) && r.days[r.cursor].After(since); r.cursor++ {
		on, price := r.days[r.cursor], r.prices[r.cursor]
		r.points = append(r.points, Point{Date: on, Shares: r.shares, Price: price, Value: r.shares * price})
	}
}

// undo reverts the effect of e on the share count, valuing it at price.
func (r *reconstruction) undo(e TimelineEntry, on date.Date, price float64) error {
	shares := r.shares
	if e.HasDividend() {
		var err error
		if shares, err = undoDividend(shares, price, *e.Dividend); err != nil {
			return fmt.Errorf("dividend on %s (effective %s): %w", e.Date, on, err)
		}
	}
	if e.HasSplit() {
		var err error
		if shares, err = undoSplit(shares, *e.Split); err != nil {
			return fmt.Errorf("split on %s: %w", e.Date, err)
		}
	}
	r.transitions = append(r.transitions, Transition{
		Date:         e.Date,
		Effective:    on,
		Price:        price,
		Dividend:     e.Dividend,
		Split:        e.Split,
		SharesAfter:  r.shares,
		SharesBefore: shares,
	})
	r.shares = shares
	return nil
}

// undoDividend returns the share count before amount per share was reinvested at price.
func undoDividend(shares, price, amount float64) (float64, error) {
	if !(price > 0) || !(price+amount > 0) {
		return 0, fmt.Errorf("%w: cannot reinvest a dividend of %v at a price of %v", ErrInvalidRatio, amount, price)
	}
	return price * shares / (price + amount), nil
}

// undoSplit returns the share count before split.
func undoSplit(shares float64, split Split) (float64, error) {
	if !(split.Old > 0) || !(split.New > 0) {
		return 0, fmt.Errorf("%w: split %v", ErrInvalidRatio, split)
	}
	return shares * split.Old / split.New, nil
}
