package ingest

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/etnz/costbasis"
	"github.com/etnz/costbasis/date"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Source describes where to read a date-keyed mapping, and how to parse it.
type Source struct {
	Path    string  `yaml:"path"`
	Format  string  `yaml:"format"`  // date format, strftime ("%d-%b-%y") or Go layout ("02-Jan-06")
	Columns Columns `yaml:"columns"` // defaults depend on the kind of mapping
	Records string  `yaml:"records"` // jsonpath selecting records in a JSON file
}

// Default date formats, per kind of file.
const (
	PriceDateFormat    = "%d-%b-%y"
	DividendDateFormat = "%d-%m-%Y"
	SplitDateFormat    = "%Y-%m-%d"
)

func (s Source) withDefaults(cols Columns, format string) Source {
	if s.Columns.Date == "" {
		s.Columns.Date = cols.Date
	}
	if len(s.Columns.Values) == 0 {
		s.Columns.Values = cols.Values
	}
	if s.Format == "" {
		s.Format = format
	}
	return s
}

// Read reads the rows of r, a CSV document unless name ends with ".json".
//
// It returns, for every date, the values of the source columns.
func (s Source) Read(r io.Reader, name string) (map[date.Date][]float64, error) {
	var rows []row
	var err error
	if strings.EqualFold(filepath.Ext(name), ".json") {
		rows, err = readJSON(r, name, s.Records, s.Columns)
	} else {
		rows, err = readCSV(r, name, s.Columns)
	}
	if err != nil {
		return nil, err
	}
	log.Debug().Str("file", name).Int("rows", len(rows)).Msg("building the history")
	return build(rows, s.Format)
}

// load opens and reads the source file.
func (s Source) load() (map[date.Date][]float64, error) {
	log.Debug().Str("file", s.Path).Str("format", s.Format).Msg("reading")
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return s.Read(f, s.Path)
}

// build parses every row into a date-keyed mapping of positive values.
func build(rows []row, format string) (map[date.Date][]float64, error) {
	m := make(map[date.Date][]float64, len(rows))
	for _, r := range rows {
		on, err := date.ParseFormat(format, r.date)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrMalformedInput, r.pos, err)
		}
		if _, exists := m[on]; exists {
			return nil, fmt.Errorf("%w: %s: date %s has appeared more than once", ErrMalformedInput, r.pos, r.date)
		}
		values := make([]float64, len(r.values))
		for i, v := range r.values {
			if values[i], err = parsePositive(v); err != nil {
				return nil, fmt.Errorf("%w: %s: %w", ErrMalformedInput, r.pos, err)
			}
		}
		m[on] = values
	}
	return m, nil
}

// thousands matches numbers with comma separated thousands, like "1,011.25".
var thousands = regexp.MustCompile(`^[+-]?\d{1,3}(,\d{3})+(\.\d+)?$`)

// parsePositive parses a strictly positive decimal number.
//
// Commas are only accepted as thousands separators, when there can be no
// confusion with a decimal comma: "1,5" and "1,011" are rejected.
func parsePositive(s string) (float64, error) {
	digits := s
	if strings.Contains(s, ",") {
		if !thousands.MatchString(s) || (!strings.Contains(s, ".") && strings.Count(s, ",") < 2) {
			return 0, fmt.Errorf("ambiguous number %q, use '.' as the decimal separator", s)
		}
		digits = strings.ReplaceAll(s, ",", "")
	}
	d, err := decimal.NewFromString(digits)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	if !d.IsPositive() {
		return 0, fmt.Errorf("value %s must be positive", d)
	}
	return d.InexactFloat64(), nil
}

// Prices reads the closing price history.
func Prices(s Source) (*costbasis.PriceSeries, error) {
	s = s.withDefaults(PriceColumns, PriceDateFormat)
	m, err := s.load()
	if err != nil {
		return nil, fmt.Errorf("price history: %w", err)
	}
	prices := make(map[date.Date]float64, len(m))
	for on, values := range m {
		prices[on] = values[0]
	}
	log.Debug().Int("len", len(prices)).Msg("price history")
	return costbasis.NewPriceSeries(prices), nil
}

// Dividends reads the dividend history.
func Dividends(s Source) (costbasis.Dividends, error) {
	s = s.withDefaults(DividendColumns, DividendDateFormat)
	m, err := s.load()
	if err != nil {
		return nil, fmt.Errorf("dividend history: %w", err)
	}
	dividends := make(costbasis.Dividends, len(m))
	for on, values := range m {
		dividends[on] = values[0]
	}
	log.Debug().Int("len", len(dividends)).Msg("dividend history")
	return dividends, nil
}

// Splits reads the split history.
//
// Securities that never split have no split file: a missing file is an empty history.
func Splits(s Source) (costbasis.Splits, error) {
	s = s.withDefaults(SplitColumns, SplitDateFormat)
	if len(s.Columns.Values) != 2 {
		return nil, fmt.Errorf("split history: %w: want the old and new share columns, got %v", ErrMalformedInput, s.Columns.Values)
	}
	m, err := s.load()
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug().Str("file", s.Path).Msg("no split history")
		return costbasis.Splits{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("split history: %w", err)
	}
	splits := make(costbasis.Splits, len(m))
	for on, values := range m {
		splits[on] = costbasis.Split{Old: values[0], New: values[1]}
	}
	log.Debug().Int("len", len(splits)).Msg("split history")
	return splits, nil
}
