package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/edgard/civilkabot/internal/database"
	"github.com/edgard/civilkabot/internal/quote"
	"github.com/edgard/civilkabot/internal/tariff"
)

var groupTitles = map[tariff.Group]string{
	tariff.GroupPassenger:    "🚗 Легковые",
	tariff.GroupBus:          "🚌 Автобусы",
	tariff.GroupTruck:        "🚚 Грузовые",
	tariff.GroupMotorcycle:   "🏍 Мотоциклы",
	tariff.GroupAgricultural: "🚜 Сельхозтехника",
	tariff.GroupSpecial:      "🚧 Спецтехника",
	tariff.GroupTrailer:      "🔗 Прицепы",
}

const priceLegend = "Цена: водители старше 30 лет / без ограничений по возрасту"

// FormatTariffs renders the whole table grouped by vehicle group.
func FormatTariffs(header string, table *tariff.Table) string {
	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteString("\n")
	sb.WriteString(priceLegend)

	var current tariff.Group
	for _, c := range table.All() {
		if c.Group != current {
			current = c.Group
			sb.WriteString("\n\n")
			sb.WriteString(groupTitle(current))
		}
		sb.WriteString("\n")
		sb.WriteString(tariffRow(c))
	}
	return sb.String()
}

// FormatVehicleTariff renders the tariff for a category code ("B3") or a
// free-text vehicle type ("мотоцикл"). Passenger cars list every
// volume-dependent category.
func FormatVehicleTariff(table *tariff.Table, query string) string {
	query = strings.TrimSpace(query)
	if c, err := table.Lookup(query); err == nil {
		return priceLegend + "\n\n" + tariffRow(c)
	}

	code := tariff.CategoryForVehicleType(query)
	if code == tariff.VolumeDependent {
		var sb strings.Builder
		sb.WriteString("🚗 Для легковых категория зависит от объема двигателя.\n")
		sb.WriteString(priceLegend)
		sb.WriteString("\n")
		for _, c := range table.All() {
			if c.Group == tariff.GroupPassenger {
				sb.WriteString("\n")
				sb.WriteString(tariffRow(c))
			}
		}
		return sb.String()
	}

	c, err := table.Lookup(code)
	if err != nil {
		return "🤷 Не знаю такого типа транспорта. Попробуй /tariffs без параметров."
	}
	return fmt.Sprintf("%s\n%s\n\n%s", groupTitle(c.Group), priceLegend, tariffRow(c))
}

// FormatHistory renders the user's recent quotes, newest first.
func FormatHistory(quotes []database.Quote, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	var sb strings.Builder
	sb.WriteString("🗂 Последние расчеты:")
	for i, q := range quotes {
		name := strings.TrimSpace(q.Brand + " " + q.Model)
		if name == "" {
			name = quote.DefaultVehicleName
		}
		if q.Year > 0 {
			name = fmt.Sprintf("%s %d", name, q.Year)
		}
		fmt.Fprintf(&sb, "\n%d. %s %s, %s л, %s: %d грн",
			i+1,
			q.CreatedAt.In(loc).Format("02.01.2006"),
			name,
			quote.Litres(q.EngineVolumeCC),
			q.Category,
			q.Price,
		)
	}
	return sb.String()
}

// FormatStats renders journal statistics for the admin.
func FormatStats(stats *database.QuoteStats) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 Всего расчетов: %d\n👤 Пользователей: %d", stats.Total, stats.Users)
	if len(stats.ByCategory) > 0 {
		sb.WriteString("\n\nПо категориям:")
		for _, c := range stats.ByCategory {
			fmt.Fprintf(&sb, "\n%s: %d", c.Category, c.Count)
		}
	}
	return sb.String()
}

func tariffRow(c tariff.Category) string {
	return fmt.Sprintf("%s (%s): %d / %d грн", c.Code, c.Description, c.PriceOver30, c.PriceAnyAge)
}

func groupTitle(g tariff.Group) string {
	if title, ok := groupTitles[g]; ok {
		return title
	}
	return string(g)
}
