package ingest

import "errors"

// ErrMalformedInput is returned for any input file that cannot be turned into a
// valid date-keyed mapping: missing columns, bad dates or numbers, duplicate dates.
var ErrMalformedInput = errors.New("malformed input")
