package costbasis

import "errors"

// ErrMissingPriceAnchor is returned when no closing price can be found to value an event.
var ErrMissingPriceAnchor = errors.New("price not found")

// ErrInvalidRatio is returned when undoing an event would divide by a zero or negative amount.
var ErrInvalidRatio = errors.New("invalid ratio")
