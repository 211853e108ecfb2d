package costbasis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/etnz/costbasis/date"
)

func TestReconstructAll(t *testing.T) {
	ps := prices(map[string]float64{"2024-01-01": 10, "2024-01-02": 20})
	runs := []Run{
		{Name: "A", Prices: ps, Shares: 1},
		{Name: "B", Prices: ps, Timeline: Merge(nil, Splits{date.MustParse("2024-01-02"): {Old: 1, New: 3}}), Shares: 9},
		{Name: "C", Prices: ps, Timeline: Merge(Dividends{date.MustParse("2024-01-02"): 20}, nil), Shares: 4},
	}

	got, err := ReconstructAll(context.Background(), runs, 2)
	if err != nil {
		t.Fatalf("ReconstructAll() unexpected error: %v", err)
	}
	want := []float64{1, 3, 2}
	for i, s := range got {
		p, _ := s.CostBasis()
		if p.Shares != want[i] {
			t.Errorf("ReconstructAll()[%s].CostBasis().Shares = %v want %v", runs[i].Name, p.Shares, want[i])
		}
	}
}

func TestReconstructAllFailure(t *testing.T) {
	ps := prices(map[string]float64{"2024-01-01": 10})
	runs := []Run{
		{Name: "ok", Prices: ps, Shares: 1},
		{Name: "broken", Prices: ps, Timeline: Merge(Dividends{date.MustParse("2024-06-01"): 1}, nil), Shares: 1},
	}
	got, err := ReconstructAll(context.Background(), runs, 0)
	if !errors.Is(err, ErrMissingPriceAnchor) {
		t.Fatalf("ReconstructAll() error = %v want ErrMissingPriceAnchor", err)
	}
	if !strings.HasPrefix(err.Error(), "broken: ") {
		t.Errorf("ReconstructAll() error = %q want it named after the run", err)
	}
	if got != nil {
		t.Errorf("ReconstructAll() = %v want no result on error", got)
	}
}
