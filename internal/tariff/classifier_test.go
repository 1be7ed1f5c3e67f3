package tariff_test

import (
	"testing"

	"github.com/edgard/civilkabot/internal/tariff"
)

func TestClassifyBoundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cc   int
		want string
	}{
		{500, "B1"},
		{1600, "B1"},
		{1601, "B2"},
		{1998, "B2"},
		{2000, "B2"},
		{2001, "B3"},
		{3000, "B3"},
		{3001, "B4"},
		{8000, "B4"},
		{0, tariff.FallbackCategory},
		{-5, tariff.FallbackCategory},
	}

	for _, tc := range tests {
		if got := tariff.Classify(tc.cc); got != tc.want {
			t.Errorf("Classify(%d) = %q, want %q", tc.cc, got, tc.want)
		}
	}
}

func TestClassifyMonotonic(t *testing.T) {
	t.Parallel()

	rank := map[string]int{"B1": 1, "B2": 2, "B3": 3, "B4": 4}
	prev := 0
	for v := 500; v <= 8000; v++ {
		code := tariff.Classify(v)
		r, ok := rank[code]
		if !ok {
			t.Fatalf("Classify(%d) = %q, not a passenger category", v, code)
		}
		if r < prev {
			t.Fatalf("Classify(%d) = %q went down from rank %d", v, code, prev)
		}
		prev = r
	}
}

func TestClassifyString(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"1400":   "B1",
		" 2500 ": "B3",
		"":       tariff.FallbackCategory,
		"abc":    tariff.FallbackCategory,
		"1.998":  tariff.FallbackCategory,
	}
	for in, want := range tests {
		if got := tariff.ClassifyString(in); got != want {
			t.Errorf("ClassifyString(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCategoryForVehicleType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"легковой седан", tariff.VolumeDependent},
		{"Грузовик", "C1"},
		{"фургон", "C1"},
		{"микроавтобус", "D1"},
		{"мопед", "A1"},
		{"трактор МТЗ", "G1"},
		{"Экскаватор", "H2"},
		{"прицеп", "F"},
		{"причіп", "F"},
		{"что-то непонятное", tariff.FallbackCategory},
	}

	for _, tc := range tests {
		if got := tariff.CategoryForVehicleType(tc.in); got != tc.want {
			t.Errorf("CategoryForVehicleType(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
