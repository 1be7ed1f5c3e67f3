// Package vehicle describes the vehicle attributes the bot collects and
// extracts them from free-form Russian or Ukrainian text.
package vehicle

import (
	"strconv"
	"strings"
	"time"
)

// Plausible engine displacement range in cm³.
const (
	MinEngineVolumeCC = 500
	MaxEngineVolumeCC = 8000
)

// MinYear is the oldest model year the bot accepts.
const MinYear = 1980

// FuelType is the kind of fuel a vehicle runs on.
type FuelType string

const (
	FuelUnknown  FuelType = ""
	FuelGasoline FuelType = "gasoline"
	FuelDiesel   FuelType = "diesel"
	FuelElectric FuelType = "electric"
	FuelLPG      FuelType = "lpg"
)

// Label returns the fuel name as shown to users. Unknown fuel is shown as
// gasoline.
func (f FuelType) Label() string {
	switch f {
	case FuelDiesel:
		return "дизель"
	case FuelElectric:
		return "електро"
	case FuelLPG:
		return "газ"
	default:
		return "бензин"
	}
}

// ParseFuelType maps a loosely spelled fuel name onto a FuelType.
func ParseFuelType(s string) FuelType {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return FuelUnknown
	}
	for _, rule := range fuelRules {
		for _, stem := range rule.stems {
			if strings.Contains(s, stem) {
				return rule.fuel
			}
		}
	}
	return FuelUnknown
}

// Record is the partially known description of a vehicle. Zero values mean
// the field is absent.
type Record struct {
	Brand          string   `json:"brand,omitempty"`
	Model          string   `json:"model,omitempty"`
	Year           int      `json:"year,omitempty"`
	EngineVolumeCC int      `json:"engine_volume_cc,omitempty"`
	FuelType       FuelType `json:"fuel_type,omitempty"`
}

// IsEmpty reports whether no field is set.
func (r Record) IsEmpty() bool {
	return r == Record{}
}

// Priceable reports whether the record carries an in-range engine volume.
func (r Record) Priceable() bool {
	return ValidEngineVolume(r.EngineVolumeCC)
}

// Merge folds newer data into r. The engine volume is always replaced by a
// newer value because users correct it; other fields are only filled when
// still empty.
func (r *Record) Merge(newer Record) {
	if newer.EngineVolumeCC != 0 {
		r.EngineVolumeCC = newer.EngineVolumeCC
	}
	if r.Brand == "" {
		r.Brand = newer.Brand
	}
	if r.Model == "" {
		r.Model = newer.Model
	}
	if r.Year == 0 {
		r.Year = newer.Year
	}
	if r.FuelType == FuelUnknown {
		r.FuelType = newer.FuelType
	}
}

// FillMissing copies fields from other only where r has none, including the
// engine volume.
func (r *Record) FillMissing(other Record) {
	if r.EngineVolumeCC == 0 {
		r.EngineVolumeCC = other.EngineVolumeCC
	}
	r.Merge(Record{
		Brand:    other.Brand,
		Model:    other.Model,
		Year:     other.Year,
		FuelType: other.FuelType,
	})
}

// Name joins brand and model, e.g. "BMW X3".
func (r Record) Name() string {
	return strings.TrimSpace(r.Brand + " " + r.Model)
}

// Describe renders the identifying fields for an acknowledgement line,
// e.g. "BMW X3 2015 года, 1998 см³". It returns "" when brand, model and
// year are all unknown.
func (r Record) Describe() string {
	parts := make([]string, 0, 3)
	if r.Brand != "" {
		parts = append(parts, r.Brand)
	}
	if r.Model != "" {
		parts = append(parts, r.Model)
	}
	if r.Year != 0 {
		parts = append(parts, strconv.Itoa(r.Year)+" года")
	}
	if len(parts) == 0 {
		return ""
	}
	s := strings.Join(parts, " ")
	if r.EngineVolumeCC != 0 {
		s += ", " + strconv.Itoa(r.EngineVolumeCC) + " см³"
	}
	return s
}

// Normalize drops values that fall outside the accepted ranges and
// canonicalises the brand spelling. now bounds the model year.
func (r Record) Normalize(now time.Time) Record {
	r.Brand = strings.ToUpper(strings.TrimSpace(r.Brand))
	if canonical, ok := canonicalBrand(r.Brand); ok {
		r.Brand = canonical
	}
	r.Model = strings.ToUpper(strings.TrimSpace(r.Model))
	if !ValidEngineVolume(r.EngineVolumeCC) {
		r.EngineVolumeCC = 0
	}
	if r.Year < MinYear || r.Year > now.Year()+1 {
		r.Year = 0
	}
	return r
}

// ValidEngineVolume reports whether cc lies in the plausible range.
func ValidEngineVolume(cc int) bool {
	return cc >= MinEngineVolumeCC && cc <= MaxEngineVolumeCC
}
