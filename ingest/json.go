package ingest

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/PaesslerAG/jsonpath"
)

// DefaultRecords selects the records of a JSON file made of a top level array.
const DefaultRecords = "$[*]"

// readJSON reads the rows of a JSON document.
//
// records is a jsonpath expression selecting the list of records, each record
// being an object whose properties are named after cols.
func readJSON(r io.Reader, name, records string, cols Columns) ([]row, error) {
	if records == "" {
		records = DefaultRecords
	}
	dec := json.NewDecoder(stripBOM(r))
	dec.UseNumber()
	var jobj any
	if err := dec.Decode(&jobj); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedInput, name, err)
	}
	jval, err := jsonpath.Get(records, jobj)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: cannot select %q: %w", ErrMalformedInput, name, records, err)
	}
	// a path can select a single record instead of a list of one.
	jlist, ok := jval.([]any)
	if !ok {
		jlist = []any{jval}
	}

	rows := make([]row, 0, len(jlist))
	for i, jrec := range jlist {
		pos := fmt.Sprintf("%s[%d]", name, i)
		rec, ok := jrec.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s is not an object: %v", ErrMalformedInput, pos, jrec)
		}
		var missing []string
		fields := make([]string, 0, len(cols.Values)+1)
		for _, col := range cols.all() {
			v, ok := rec[col]
			if !ok || v == nil {
				missing = append(missing, col)
				continue
			}
			fields = append(fields, fmt.Sprint(v))
		}
		if len(missing) > 0 {
			return nil, fmt.Errorf("%w: %s is missing these field(s): %v", ErrMalformedInput, pos, missing)
		}
		rows = append(rows, row{pos: pos, date: fields[0], values: fields[1:]})
	}
	return rows, nil
}
