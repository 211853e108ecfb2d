package date

import (
	"iter"
	"slices"
)

// History stores a chronological series of values, each associated with a specific date.
// Dates are unique and sorted, a History is built once by FromMap.
type History[T float32 | float64 | string] struct {
	days   []Date
	values []T
}

// FromMap builds a History out of a date-keyed map, sorting only once.
func FromMap[T float32 | float64 | string](m map[Date]T) *History[T] {
	h := &History[T]{
		days:   make([]Date, 0, len(m)),
		values: make([]T, 0, len(m)),
	}
	for on := range m {
		h.days = append(h.days, on)
	}
	slices.SortFunc(h.days, Date.Compare)
	for _, on := range h.days {
		h.values = append(h.values, m[on])
	}
	return h
}

// Latest returns the latest date and value in the history.
// If the history is empty, it returns zero value.
func (h *History[T]) Latest() (day Date, value T) {
	last := len(h.days) - 1
	if last < 0 {
		return Date{}, *new(T) // return zero value of T
	}
	return h.days[last], h.values[last]
}

// Len returns the number of items in the history.
func (h *History[T]) Len() int { return len(h.days) }

// search returns the position of day in the history, or where it would be inserted.
func (h *History[T]) search(day Date) (int, bool) {
	return slices.BinarySearchFunc(h.days, day, Date.Compare)
}

// Backward returns an iterator over all date/value pairs in the history, most recent first.
func (h *History[T]) Backward() iter.Seq2[Date, T] {
	return func(yield func(Date, T) bool) {
		for i := len(h.days) - 1; i >= 0; i-- {
			if !yield(h.days[i], h.values[i]) {
				return
			}
		}
	}
}

// Get returns the value at 'day' and true or zero value and false.
func (h *History[T]) Get(day Date) (T, bool) {
	if i, found := h.search(day); found {
		return h.values[i], true
	}
	var value T
	return value, false
}

// AsOf returns the value on a given day, or the most recent one before it, and
// the date it was recorded on.
// It returns false if there is no date on or before day.
func (h *History[T]) AsOf(day Date) (Date, T, bool) {
	i, found := h.search(day)
	if found {
		return h.days[i], h.values[i], true
	}

	// `i` is where day would be inserted, the last entry before it is at `i-1`.
	if i == 0 {
		var zero T
		return Date{}, zero, false
	}
	return h.days[i-1], h.values[i-1], true
}
