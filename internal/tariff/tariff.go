// Package tariff holds the static ОСЦПВ premium table and the rules that map
// a vehicle onto one of its category codes.
package tariff

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a category code is not present in the table.
var ErrNotFound = errors.New("tariff category not found")

// Group is the vehicle class a category belongs to.
type Group string

const (
	GroupPassenger    Group = "passenger"
	GroupBus          Group = "bus"
	GroupTruck        Group = "truck"
	GroupMotorcycle   Group = "motorcycle"
	GroupAgricultural Group = "agricultural"
	GroupSpecial      Group = "special"
	GroupTrailer      Group = "trailer"
)

// Category is one row of the tariff table.
type Category struct {
	Code        string
	Group       Group
	Description string
	// PriceOver30 applies when every driver is older than 30.
	PriceOver30 int
	// PriceAnyAge applies without a driver age restriction.
	PriceAnyAge int
}

// Price returns the premium for the given age bracket.
func (c Category) Price(driverOver30 bool) int {
	if driverOver30 {
		return c.PriceOver30
	}
	return c.PriceAnyAge
}

// Table is an immutable lookup of categories by code.
// It is safe for concurrent use.
type Table struct {
	byCode map[string]Category
	order  []string
}

// NewTable builds a table from the given rows. Codes are matched
// case-insensitively; a duplicate code is an error.
func NewTable(categories []Category) (*Table, error) {
	t := &Table{
		byCode: make(map[string]Category, len(categories)),
		order:  make([]string, 0, len(categories)),
	}
	for _, c := range categories {
		code := normalizeCode(c.Code)
		if code == "" {
			return nil, fmt.Errorf("category with empty code")
		}
		if _, dup := t.byCode[code]; dup {
			return nil, fmt.Errorf("duplicate category code %q", code)
		}
		c.Code = code
		t.byCode[code] = c
		t.order = append(t.order, code)
	}
	return t, nil
}

// PriceFor returns the premium for a category code and driver age bracket.
// An unknown code yields ErrNotFound.
func (t *Table) PriceFor(code string, driverOver30 bool) (int, error) {
	c, err := t.Lookup(code)
	if err != nil {
		return 0, err
	}
	return c.Price(driverOver30), nil
}

// Lookup returns the category row for code.
func (t *Table) Lookup(code string) (Category, error) {
	c, ok := t.byCode[normalizeCode(code)]
	if !ok {
		return Category{}, fmt.Errorf("%w: %q", ErrNotFound, code)
	}
	return c, nil
}

// All returns every category in table order.
func (t *Table) All() []Category {
	out := make([]Category, 0, len(t.order))
	for _, code := range t.order {
		out = append(out, t.byCode[code])
	}
	return out
}

// Len returns the number of categories.
func (t *Table) Len() int {
	return len(t.order)
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
