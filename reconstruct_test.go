package costbasis

import (
	"errors"
	"math"
	"testing"

	"github.com/etnz/costbasis/date"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// cmpSeries compares points and transitions within floating point tolerance.
var cmpSeries = []cmp.Option{
	cmp.Comparer(func(a, b date.Date) bool { return a == b }),
	cmpopts.EquateApprox(0, 1e-9),
}

func points(s *Series) []Point {
	var got []Point
	for _, p := range s.Chronological() {
		got = append(got, p)
	}
	return got
}

func prices(m map[string]float64) *PriceSeries {
	ps := make(map[date.Date]float64, len(m))
	for on, price := range m {
		ps[date.MustParse(on)] = price
	}
	return NewPriceSeries(ps)
}

func pt(on string, shares, price float64) Point {
	return Point{Date: date.MustParse(on), Shares: shares, Price: price, Value: shares * price}
}

func TestReconstruct(t *testing.T) {
	testCases := []struct {
		name      string
		prices    map[string]float64
		dividends Dividends
		splits    Splits
		shares    float64
		want      []Point
	}{
		{
			name:   "no events",
			prices: map[string]float64{"2024-01-01": 100, "2024-01-02": 102},
			shares: 10,
			want: []Point{
				pt("2024-01-01", 10, 100),
				pt("2024-01-02", 10, 102),
			},
		},
		{
			name:      "dividend paid on a saturday",
			prices:    map[string]float64{"2024-02-01": 50, "2024-02-05": 51, "2024-02-06": 52},
			dividends: Dividends{date.MustParse("2024-02-03"): 1},
			shares:    100,
			want: []Point{
				pt("2024-02-01", 51*100/52., 50),
				pt("2024-02-05", 51*100/52., 51),
				pt("2024-02-06", 100, 52),
			},
		},
		{
			name:   "two for one split",
			prices: map[string]float64{"2024-03-01": 80, "2024-03-04": 41, "2024-03-05": 40},
			splits: Splits{date.MustParse("2024-03-04"): {Old: 1, New: 2}},
			shares: 200,
			want: []Point{
				pt("2024-03-01", 100, 80),
				pt("2024-03-04", 100, 41),
				pt("2024-03-05", 200, 40),
			},
		},
		{
			name:   "event resolved to the oldest price",
			prices: map[string]float64{"2024-01-01": 10, "2024-01-02": 10},
			splits: Splits{date.MustParse("2023-12-30"): {Old: 1, New: 4}},
			shares: 8,
			want: []Point{
				pt("2024-01-01", 2, 10),
				pt("2024-01-02", 8, 10),
			},
		},
		{
			name:      "two events resolved to the same trading date",
			prices:    map[string]float64{"2024-03-08": 20, "2024-03-11": 20},
			dividends: Dividends{date.MustParse("2024-03-09"): 5},
			splits:    Splits{date.MustParse("2024-03-10"): {Old: 1, New: 2}},
			shares:    100,
			want: []Point{
				pt("2024-03-08", 100./2*20/25, 20),
				pt("2024-03-11", 100./2*20/25, 20),
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := Reconstruct(prices(tc.prices), Merge(tc.dividends, tc.splits), tc.shares)
			if err != nil {
				t.Fatalf("Reconstruct() unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.want, points(s), cmpSeries...); diff != "" {
				t.Errorf("Reconstruct() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReconstructTransitions(t *testing.T) {
	ps := prices(map[string]float64{
		"2024-01-02": 100,
		"2024-06-03": 110,
		"2024-09-02": 60,
		"2024-12-02": 65,
	})
	tl := Merge(
		Dividends{date.MustParse("2024-06-01"): 2.2},
		Splits{date.MustParse("2024-09-01"): {Old: 1, New: 2}},
	)

	s, err := Reconstruct(ps, tl, 300)
	if err != nil {
		t.Fatalf("Reconstruct() unexpected error: %v", err)
	}

	split := Split{Old: 1, New: 2}
	dividend := 2.2
	want := []Transition{
		{Date: date.MustParse("2024-09-01"), Effective: date.MustParse("2024-09-02"), Price: 60, Split: &split, SharesAfter: 300, SharesBefore: 150},
		{Date: date.MustParse("2024-06-01"), Effective: date.MustParse("2024-06-03"), Price: 110, Dividend: &dividend, SharesAfter: 150, SharesBefore: 150 * 110 / 112.2},
	}
	if diff := cmp.Diff(want, s.Transitions(), cmpSeries...); diff != "" {
		t.Errorf("Transitions() mismatch (-want +got):\n%s", diff)
	}

	// the split must be fully undone before the dividend is valued.
	wantPoints := []Point{
		pt("2024-01-02", 150*110/112.2, 100),
		pt("2024-06-03", 150*110/112.2, 110),
		pt("2024-09-02", 150, 60),
		pt("2024-12-02", 300, 65),
	}
	if diff := cmp.Diff(wantPoints, points(s), cmpSeries...); diff != "" {
		t.Errorf("Reconstruct() mismatch (-want +got):\n%s", diff)
	}
}

func TestReconstructSameDateDividendBeforeSplit(t *testing.T) {
	on := date.MustParse("2024-05-06")
	ps := prices(map[string]float64{"2024-05-03": 30, "2024-05-06": 40})
	tl := Merge(Dividends{on: 10}, Splits{on: {Old: 1, New: 4}})

	s, err := Reconstruct(ps, tl, 400)
	if err != nil {
		t.Fatalf("Reconstruct() unexpected error: %v", err)
	}
	tr := s.Transitions()
	if len(tr) != 1 {
		t.Fatalf("len(Transitions()) = %d want 1", len(tr))
	}
	if tr[0].Dividend == nil || tr[0].Split == nil {
		t.Fatalf("Transitions()[0] = %+v want a dividend and a split", tr[0])
	}
	// dividend first: 400*40/50 = 320, then 320/4 = 80
	if want := 80.0; math.Abs(tr[0].SharesBefore-want) > 1e-9 {
		t.Errorf("Transitions()[0].SharesBefore = %v want %v", tr[0].SharesBefore, want)
	}
	if p, _ := s.At(date.MustParse("2024-05-03")); math.Abs(p.Shares-80) > 1e-9 {
		t.Errorf("At(2024-05-03).Shares = %v want 80", p.Shares)
	}
}

func TestReconstructErrors(t *testing.T) {
	ps := prices(map[string]float64{"2024-01-02": 100, "2024-02-01": 100})
	testCases := []struct {
		name    string
		tl      Timeline
		shares  float64
		wantErr error
	}{
		{
			name:    "no price after the event",
			tl:      Merge(Dividends{date.MustParse("2024-01-10"): 1}, nil),
			shares:  10,
			wantErr: ErrMissingPriceAnchor,
		},
		{
			name:    "event after the last price",
			tl:      Merge(nil, Splits{date.MustParse("2024-03-01"): {Old: 1, New: 2}}),
			shares:  10,
			wantErr: ErrMissingPriceAnchor,
		},
		{
			name:    "null split",
			tl:      Merge(nil, Splits{date.MustParse("2024-02-01"): {Old: 1, New: 0}}),
			shares:  10,
			wantErr: ErrInvalidRatio,
		},
		{
			name:    "dividend larger than the price",
			tl:      Merge(Dividends{date.MustParse("2024-02-01"): -100}, nil),
			shares:  10,
			wantErr: ErrInvalidRatio,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := Reconstruct(ps, tc.tl, tc.shares)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Reconstruct() error = %v want %v", err, tc.wantErr)
			}
			if s != nil {
				t.Errorf("Reconstruct() returned a partial series on error")
			}
		})
	}

	if _, err := Reconstruct(ps, nil, 0); err == nil {
		t.Errorf("Reconstruct() with no shares want an error")
	}
}

func TestDividendRoundTrip(t *testing.T) {
	for _, price := range []float64{0.01, 1, 51, 1234.5} {
		for _, shares := range []float64{0.5, 1, 100, 98765.4321} {
			for _, div := range []float64{0.001, 1, 12.5} {
				forward := shares + div*shares/price
				got, err := undoDividend(forward, price, div)
				if err != nil {
					t.Fatalf("undoDividend(%v, %v, %v) unexpected error: %v", forward, price, div, err)
				}
				if math.Abs(got-shares) > 1e-9*shares {
					t.Errorf("undoDividend(reinvest(%v)) = %v at price %v dividend %v", shares, got, price, div)
				}
			}
		}
	}
}

func TestSplitRoundTrip(t *testing.T) {
	for _, split := range []Split{{1, 2}, {2, 3}, {10, 1}, {1, 1}, {3, 7}} {
		for _, shares := range []float64{0.5, 1, 100, 98765.4321} {
			forward := shares * split.Ratio()
			got, err := undoSplit(forward, split)
			if err != nil {
				t.Fatalf("undoSplit(%v, %v) unexpected error: %v", forward, split, err)
			}
			if math.Abs(got-shares) > 1e-9*shares {
				t.Errorf("undoSplit(split(%v)) = %v for %v", shares, got, split)
			}
		}
	}
}

func TestReconstructDividendExample(t *testing.T) {
	got, err := undoDividend(100, 51, 1)
	if err != nil {
		t.Fatalf("undoDividend() unexpected error: %v", err)
	}
	if want := 98.0769230769; math.Abs(got-want) > 1e-9 {
		t.Errorf("undoDividend(100, 51, 1) = %v want %v", got, want)
	}
}
