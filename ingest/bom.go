package ingest

import (
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// stripBOM returns a reader over r without its leading byte order mark, if any.
//
// Spreadsheets exporting CSV often prepend one, which would otherwise end up in
// the first column name.
func stripBOM(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
}
