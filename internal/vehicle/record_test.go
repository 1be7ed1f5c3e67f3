package vehicle_test

import (
	"testing"
	"time"

	"github.com/edgard/civilkabot/internal/vehicle"
)

func TestRecordMerge(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		base  vehicle.Record
		newer vehicle.Record
		want  vehicle.Record
	}{
		{
			name:  "volume fills missing field",
			base:  vehicle.Record{Brand: "BMW"},
			newer: vehicle.Record{EngineVolumeCC: 2000},
			want:  vehicle.Record{Brand: "BMW", EngineVolumeCC: 2000},
		},
		{
			name:  "volume is last write wins",
			base:  vehicle.Record{Brand: "BMW", EngineVolumeCC: 1998},
			newer: vehicle.Record{EngineVolumeCC: 2993},
			want:  vehicle.Record{Brand: "BMW", EngineVolumeCC: 2993},
		},
		{
			name:  "brand and model are first write wins",
			base:  vehicle.Record{Brand: "BMW", Model: "X3"},
			newer: vehicle.Record{Brand: "AUDI", Model: "A4", Year: 2010},
			want:  vehicle.Record{Brand: "BMW", Model: "X3", Year: 2010},
		},
		{
			name:  "empty newer keeps everything",
			base:  vehicle.Record{Brand: "KIA", EngineVolumeCC: 1600, FuelType: vehicle.FuelLPG},
			newer: vehicle.Record{},
			want:  vehicle.Record{Brand: "KIA", EngineVolumeCC: 1600, FuelType: vehicle.FuelLPG},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := tc.base
			got.Merge(tc.newer)
			if got != tc.want {
				t.Errorf("Merge() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestRecordFillMissingKeepsVolume(t *testing.T) {
	t.Parallel()

	r := vehicle.Record{Brand: "BMW", EngineVolumeCC: 1998}
	r.FillMissing(vehicle.Record{Brand: "AUDI", Model: "X5", EngineVolumeCC: 2993})

	want := vehicle.Record{Brand: "BMW", Model: "X5", EngineVolumeCC: 1998}
	if r != want {
		t.Errorf("FillMissing() = %+v, want %+v", r, want)
	}
}

func TestRecordNormalize(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		in   vehicle.Record
		want vehicle.Record
	}{
		{
			name: "upper cases and keeps valid fields",
			in:   vehicle.Record{Brand: " bmw ", Model: "x3", Year: 2015, EngineVolumeCC: 1998},
			want: vehicle.Record{Brand: "BMW", Model: "X3", Year: 2015, EngineVolumeCC: 1998},
		},
		{
			name: "maps cyrillic brand",
			in:   vehicle.Record{Brand: "Ваз", EngineVolumeCC: 1500},
			want: vehicle.Record{Brand: "VAZ", EngineVolumeCC: 1500},
		},
		{
			name: "drops implausible values",
			in:   vehicle.Record{Brand: "Tesla", Year: 2031, EngineVolumeCC: 12000},
			want: vehicle.Record{Brand: "TESLA"},
		},
		{
			name: "next model year allowed",
			in:   vehicle.Record{Year: 2026},
			want: vehicle.Record{Year: 2026},
		},
		{
			name: "too old",
			in:   vehicle.Record{Year: 1975, EngineVolumeCC: 499},
			want: vehicle.Record{},
		},
	}

	for _, tc := range tests {
		if got := tc.in.Normalize(now); got != tc.want {
			t.Errorf("%s: Normalize() = %+v, want %+v", tc.name, got, tc.want)
		}
	}
}

func TestRecordDescribe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   vehicle.Record
		want string
	}{
		{vehicle.Record{Brand: "BMW", Model: "X3", Year: 2015, EngineVolumeCC: 1998}, "BMW X3 2015 года, 1998 см³"},
		{vehicle.Record{Brand: "BMW"}, "BMW"},
		{vehicle.Record{Model: "CAMRY", EngineVolumeCC: 1800}, "CAMRY, 1800 см³"},
		{vehicle.Record{EngineVolumeCC: 1800}, ""},
		{vehicle.Record{}, ""},
	}
	for _, tc := range tests {
		if got := tc.in.Describe(); got != tc.want {
			t.Errorf("Describe(%+v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRecordPriceable(t *testing.T) {
	t.Parallel()

	if (vehicle.Record{Brand: "BMW"}).Priceable() {
		t.Error("record without volume reported priceable")
	}
	if !(vehicle.Record{EngineVolumeCC: 1600}).Priceable() {
		t.Error("record with 1600 cm³ reported not priceable")
	}
	if (vehicle.Record{EngineVolumeCC: 9000}).Priceable() {
		t.Error("record with 9000 cm³ reported priceable")
	}
}

func TestFuelType(t *testing.T) {
	t.Parallel()

	labels := map[vehicle.FuelType]string{
		vehicle.FuelUnknown:  "бензин",
		vehicle.FuelGasoline: "бензин",
		vehicle.FuelDiesel:   "дизель",
		vehicle.FuelElectric: "електро",
		vehicle.FuelLPG:      "газ",
	}
	for f, want := range labels {
		if got := f.Label(); got != want {
			t.Errorf("FuelType(%q).Label() = %q, want %q", f, got, want)
		}
	}

	parsed := map[string]vehicle.FuelType{
		"Diesel":   vehicle.FuelDiesel,
		"бензин":   vehicle.FuelGasoline,
		"electric": vehicle.FuelElectric,
		"LPG":      vehicle.FuelLPG,
		"":         vehicle.FuelUnknown,
		"hydrogen": vehicle.FuelUnknown,
	}
	for in, want := range parsed {
		if got := vehicle.ParseFuelType(in); got != want {
			t.Errorf("ParseFuelType(%q) = %q, want %q", in, got, want)
		}
	}
}
