package costbasis

import (
	"iter"
	"slices"

	"github.com/etnz/costbasis/date"
)

// Point is the reconstructed position on a trading date.
type Point struct {
	Date   date.Date `json:"date"`
	Shares float64   `json:"shares"`
	Price  float64   `json:"price"`
	Value  float64   `json:"value"` // Shares × Price
}

// Transition records how a single timeline entry changed the share count.
//
// SharesAfter is the count held after the effective date, SharesBefore the
// count held on it and before.
type Transition struct {
	Date         date.Date `json:"date"`      // event date
	Effective    date.Date `json:"effective"` // trading date used to value the event
	Price        float64   `json:"price"`
	Dividend     *float64  `json:"dividend,omitempty"`
	Split        *Split    `json:"split,omitempty"`
	SharesAfter  float64   `json:"shares_after"`
	SharesBefore float64   `json:"shares_before"`
}

// Series is the outcome of a reconstruction: one Point per trading date, and
// one Transition per timeline entry.
//
// A Series is never modified once returned.
type Series struct {
	points      []Point      // chronological
	transitions []Transition // most recent first
}

// Len returns the number of points in the series.
func (s *Series) Len() int { return len(s.points) }

// At returns the point on day, if day is a trading date.
func (s *Series) At(day date.Date) (Point, bool) {
	i, found := slices.BinarySearchFunc(s.points, day, func(p Point, on date.Date) int { return p.Date.Compare(on) })
	if !found {
		return Point{}, false
	}
	return s.points[i], true
}

// Latest returns the most recent point.
func (s *Series) Latest() (Point, bool) {
	if len(s.points) == 0 {
		return Point{}, false
	}
	return s.points[len(s.points)-1], true
}

// CostBasis returns the oldest point: the original investment size before any
// dividend reinvestment or split.
func (s *Series) CostBasis() (Point, bool) {
	if len(s.points) == 0 {
		return Point{}, false
	}
	return s.points[0], true
}

// Chronological iterates over points, oldest first.
func (s *Series) Chronological() iter.Seq2[date.Date, Point] {
	return func(yield func(date.Date, Point) bool) {
		for _, p := range s.points {
			if !yield(p.Date, p) {
				return
			}
		}
	}
}

// Reverse iterates over points, most recent first.
func (s *Series) Reverse() iter.Seq2[date.Date, Point] {
	return func(yield func(date.Date, Point) bool) {
		for i := len(s.points) - 1; i >= 0; i-- {
			if !yield(s.points[i].Date, s.points[i]) {
				return
			}
		}
	}
}

// Transitions returns the share count changes, most recent first.
func (s *Series) Transitions() []Transition { return slices.Clone(s.transitions) }

// Map returns the series as a date-keyed map.
func (s *Series) Map() map[date.Date]Point {
	m := make(map[date.Date]Point, len(s.points))
	for _, p := range s.points {
		m[p.Date] = p
	}
	return m
}
