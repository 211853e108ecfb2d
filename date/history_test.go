package date

import (
	"testing"
	"time"
)

func TestFromMap(t *testing.T) {
	h := FromMap(map[Date]float64{
		New(2024, time.January, 3): 3,
		New(2024, time.January, 1): 1,
		New(2024, time.January, 2): 2,
	})

	if h.Len() != 3 {
		t.Errorf("FromMap().Len() = %v want 3", h.Len())
	}

	var got []float64
	for _, v := range h.Backward() {
		got = append(got, v)
	}
	if len(got) != 3 || got[0] != 3 || got[1] != 2 || got[2] != 1 {
		t.Errorf("FromMap().Backward() = %v want [3 2 1]", got)
	}

	if on, v := h.Latest(); on != New(2024, time.January, 3) || v != 3 {
		t.Errorf("Latest() = %v, %v want 2024-01-03, 3", on, v)
	}
	if v, ok := h.Get(New(2024, time.January, 2)); !ok || v != 2 {
		t.Errorf("Get(2024-01-02) = %v, %v want 2, true", v, ok)
	}
	if _, ok := h.Get(New(2024, time.January, 4)); ok {
		t.Errorf("Get(2024-01-04) found a value on a missing date")
	}
}

func TestEmptyHistory(t *testing.T) {
	h := FromMap[string](nil)
	if on, v := h.Latest(); on != (Date{}) || v != "" {
		t.Errorf("Latest() of an empty history = %v, %q want zero values", on, v)
	}
	if _, _, ok := h.AsOf(New(2024, time.January, 1)); ok {
		t.Errorf("AsOf() of an empty history want false")
	}
}

func TestAsOf(t *testing.T) {
	h := FromMap(map[Date]float64{
		New(2024, time.January, 2): 2,
		New(2024, time.January, 5): 5,
	})

	testCases := []struct {
		name   string
		on     Date
		wantOn Date
		want   float64
		wantOK bool
	}{
		{"before first", New(2024, time.January, 1), Date{}, 0, false},
		{"exact", New(2024, time.January, 2), New(2024, time.January, 2), 2, true},
		{"between", New(2024, time.January, 4), New(2024, time.January, 2), 2, true},
		{"after last", New(2024, time.February, 1), New(2024, time.January, 5), 5, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			on, got, ok := h.AsOf(tc.on)
			if on != tc.wantOn || got != tc.want || ok != tc.wantOK {
				t.Errorf("AsOf(%v) = %v, %v, %v want %v, %v, %v", tc.on, on, got, ok, tc.wantOn, tc.want, tc.wantOK)
			}
		})
	}
}
