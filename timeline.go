package costbasis

import (
	"fmt"
	"iter"
	"slices"

	"github.com/etnz/costbasis/date"
)

// Split is a stock split ratio: Old shares became New shares.
//
// A 2-for-1 split is Split{Old: 1, New: 2}.
type Split struct {
	Old float64 `json:"old" yaml:"old"`
	New float64 `json:"new" yaml:"new"`
}

// Ratio returns the number of shares each share became.
func (s Split) Ratio() float64 { return s.New / s.Old }

func (s Split) String() string { return fmt.Sprintf("%g:%g", s.Old, s.New) }

// Dividends maps a payment date to the cash amount paid per share.
type Dividends map[date.Date]float64

// Splits maps an effective date to the split ratio.
type Splits map[date.Date]Split

// TimelineEntry gathers the corporate actions of a single date.
//
// At least one of Dividend or Split is set.
type TimelineEntry struct {
	Date     date.Date
	Dividend *float64
	Split    *Split
}

// HasDividend reports whether a dividend was paid on that date.
func (e TimelineEntry) HasDividend() bool { return e.Dividend != nil }

// HasSplit reports whether a split happened on that date.
func (e TimelineEntry) HasSplit() bool { return e.Split != nil }

// Timeline is the set of corporate actions keyed by date.
type Timeline map[date.Date]TimelineEntry

// Merge combines dividends and splits into a single Timeline keyed by the union of their dates.
func Merge(dividends Dividends, splits Splits) Timeline {
	t := make(Timeline, len(dividends)+len(splits))
	for on, amount := range dividends {
		e := t[on]
		e.Date = on
		e.Dividend = &amount
		t[on] = e
	}
	for on, split := range splits {
		e := t[on]
		e.Date = on
		e.Split = &split
		t[on] = e
	}
	return t
}

// Dates returns the timeline dates, most recent first.
func (t Timeline) Dates() []date.Date {
	days := make([]date.Date, 0, len(t))
	for on := range t {
		days = append(days, on)
	}
	slices.SortFunc(days, func(a, b date.Date) int { return b.Compare(a) })
	return days
}

// Backward iterates over timeline entries, most recent first.
func (t Timeline) Backward() iter.Seq[TimelineEntry] {
	return func(yield func(TimelineEntry) bool) {
		for _, on := range t.Dates() {
			if !yield(t[on]) {
				return
			}
		}
	}
}

// Equal reports whether both timelines hold the same events.
func (t Timeline) Equal(o Timeline) bool {
	if len(t) != len(o) {
		return false
	}
	for on, e := range t {
		f, ok := o[on]
		if !ok || e.Date != f.Date {
			return false
		}
		if e.HasDividend() != f.HasDividend() || (e.HasDividend() && *e.Dividend != *f.Dividend) {
			return false
		}
		if e.HasSplit() != f.HasSplit() || (e.HasSplit() && *e.Split != *f.Split) {
			return false
		}
	}
	return true
}
