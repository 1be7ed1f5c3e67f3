package tariff

import (
	"strconv"
	"strings"
)

// FallbackCategory is used when the engine volume is missing or unparseable.
// Callers that need to distinguish "no volume" must check before classifying.
const FallbackCategory = "B2"

// Passenger-car displacement breakpoints, inclusive upper bounds in cm³.
const (
	maxB1 = 1600
	maxB2 = 2000
	maxB3 = 3000
)

// Classify maps an engine displacement in cm³ to a passenger-car category.
// Non-positive volumes fall back to FallbackCategory.
func Classify(engineVolumeCC int) string {
	switch {
	case engineVolumeCC <= 0:
		return FallbackCategory
	case engineVolumeCC <= maxB1:
		return "B1"
	case engineVolumeCC <= maxB2:
		return "B2"
	case engineVolumeCC <= maxB3:
		return "B3"
	default:
		return "B4"
	}
}

// ClassifyString is Classify for raw user or OCR input. Anything that is not a
// plain integer falls back to FallbackCategory.
func ClassifyString(raw string) string {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return FallbackCategory
	}
	return Classify(v)
}

// VolumeDependent is returned by CategoryForVehicleType for passenger cars,
// whose category can only be chosen once the engine volume is known.
const VolumeDependent = "AUTO"

var vehicleTypeRules = []struct {
	keywords []string
	code     string
}{
	{[]string{"легков", "автомобил", "седан", "хэтчбек", "хетчбек", "универсал", "купе", "легкове", "автомобіл"}, VolumeDependent},
	{[]string{"грузов", "фургон", "грузовик", "вантаж"}, "C1"},
	{[]string{"автобус", "микроавтобус", "мікроавтобус"}, "D1"},
	{[]string{"мотоцикл", "скутер", "мопед"}, "A1"},
	{[]string{"трактор"}, "G1"},
	{[]string{"экскаватор", "бульдозер", "кран", "екскаватор"}, "H2"},
	{[]string{"прицеп", "причіп", "причеп"}, "F"},
}

// CategoryForVehicleType maps a free-text vehicle type ("грузовик", "мопед")
// to a default category code. Passenger cars yield VolumeDependent and
// unrecognised text yields FallbackCategory.
func CategoryForVehicleType(vehicleType string) string {
	s := strings.ToLower(vehicleType)
	for _, rule := range vehicleTypeRules {
		for _, kw := range rule.keywords {
			if strings.Contains(s, kw) {
				return rule.code
			}
		}
	}
	return FallbackCategory
}
