// Package quote turns a priceable vehicle record into the ОСЦПВ offer text.
package quote

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/edgard/civilkabot/internal/tariff"
	"github.com/edgard/civilkabot/internal/vehicle"
)

// ErrInsufficientData is returned when the record has no usable engine volume.
var ErrInsufficientData = errors.New("insufficient data for quote: engine volume is missing")

// DefaultVehicleName stands in for an unknown brand and model.
const DefaultVehicleName = "Автомобиль"

const template = `✅ Ціна автоцивілки (ОСЦПВ) для %s:
🩺 Покриття: життя і здоров'я потерпілих до 5 000 000 грн
🚗 Покриття: майно потерпілих до 1 250 000 грн
👤 Діє для водіїв віком: %s
💰 Ціна: %d грн`

// Quote is a priced vehicle.
type Quote struct {
	Record       vehicle.Record
	Category     string
	Price        int
	DriverOver30 bool
}

// Formatter prices records against a tariff table and renders the result.
type Formatter struct {
	table        *tariff.Table
	driverOver30 bool
}

// NewFormatter returns a Formatter for the given table. The bot does not ask
// for driver age, so quotes use the over-30 bracket unless driverOver30 is false.
func NewFormatter(table *tariff.Table, driverOver30 bool) *Formatter {
	if table == nil {
		table = tariff.Default()
	}
	return &Formatter{table: table, driverOver30: driverOver30}
}

// Price classifies the record and looks up its premium.
func (f *Formatter) Price(r vehicle.Record) (Quote, error) {
	if !r.Priceable() {
		return Quote{}, ErrInsufficientData
	}
	category := tariff.Classify(r.EngineVolumeCC)
	price, err := f.table.PriceFor(category, f.driverOver30)
	if err != nil {
		return Quote{}, fmt.Errorf("pricing category %s: %w", category, err)
	}
	return Quote{Record: r, Category: category, Price: price, DriverOver30: f.driverOver30}, nil
}

// Format prices the record and renders the offer text.
func (f *Formatter) Format(r vehicle.Record) (string, error) {
	q, err := f.Price(r)
	if err != nil {
		return "", err
	}
	return q.Text(), nil
}

// Text renders the offer.
func (q Quote) Text() string {
	return fmt.Sprintf(template, vehicleLine(q.Record), ageLine(q.DriverOver30), q.Price)
}

// vehicleLine renders e.g. "BMW X3 2015, 1.998 л бензин".
func vehicleLine(r vehicle.Record) string {
	brand := r.Brand
	if brand == "" {
		brand = DefaultVehicleName
	}
	parts := []string{brand}
	if r.Model != "" {
		parts = append(parts, r.Model)
	}
	if r.Year != 0 {
		parts = append(parts, strconv.Itoa(r.Year))
	}
	return fmt.Sprintf("%s, %s л %s", strings.Join(parts, " "), Litres(r.EngineVolumeCC), r.FuelType.Label())
}

func ageLine(over30 bool) string {
	if over30 {
		return "більше 30 років"
	}
	return "без обмежень"
}

// Litres renders a displacement in cm³ as litres with three decimals.
func Litres(cc int) string {
	return fmt.Sprintf("%d.%03d", cc/1000, cc%1000)
}
