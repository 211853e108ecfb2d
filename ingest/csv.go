// Package ingest reads and validates the price, dividend and split histories of a
// security from CSV or JSON files.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
)

// Columns names the column holding the date of a row, and the ones holding its values.
type Columns struct {
	Date   string   `yaml:"date"`
	Values []string `yaml:"values"`
}

// all returns every required column name.
func (c Columns) all() []string { return append([]string{c.Date}, c.Values...) }

// Default columns, as exported by most brokers.
var (
	PriceColumns    = Columns{Date: "Date", Values: []string{"Close"}}
	DividendColumns = Columns{Date: "PayDate", Values: []string{"Amt"}}
	SplitColumns    = Columns{Date: "Date", Values: []string{"Old", "New"}}
)

// row is a raw record, before any parsing.
type row struct {
	pos    string // position in the file, for error messages
	date   string
	values []string
}

// readCSV reads the rows of a CSV file with a header line.
//
// Every missing column is reported at once.
func readCSV(r io.Reader, name string, cols Columns) ([]row, error) {
	cr := csv.NewReader(stripBOM(r))
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s is empty", ErrMalformedInput, name)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformedInput, name, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var missing []string
	indexes := make([]int, 0, len(cols.Values)+1)
	for _, col := range cols.all() {
		i := slices.Index(header, col)
		if i < 0 {
			missing = append(missing, col)
		}
		indexes = append(indexes, i)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s is missing these column(s): %s", ErrMalformedInput, name, strings.Join(missing, ", "))
	}

	var rows []row
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrMalformedInput, name, err)
		}
		line, _ := cr.FieldPos(0)
		rw := row{pos: fmt.Sprintf("%s:%d", name, line), date: strings.TrimSpace(record[indexes[0]])}
		for _, i := range indexes[1:] {
			rw.values = append(rw.values, strings.TrimSpace(record[i]))
		}
		rows = append(rows, rw)
	}
	return rows, nil
}
