package tariff

// defaultCategories is the published ОСЦПВ tariff grid.
var defaultCategories = []Category{
	{Code: "B1", Group: GroupPassenger, Description: "до 1600 см³, в т.ч. гибриды", PriceOver30: 1959, PriceAnyAge: 2176},
	{Code: "B2", Group: GroupPassenger, Description: "1601-2000 см³, в т.ч. гибриды", PriceOver30: 2527, PriceAnyAge: 2807},
	{Code: "B3", Group: GroupPassenger, Description: "2001-3000 см³, в т.ч. гибриды", PriceOver30: 2585, PriceAnyAge: 2873},
	{Code: "B4", Group: GroupPassenger, Description: "более 3001 см³, в т.ч. гибриды", PriceOver30: 3349, PriceAnyAge: 3721},
	{Code: "B5", Group: GroupPassenger, Description: "исключительно с ДВС, кроме гибридных", PriceOver30: 3330, PriceAnyAge: 3700},

	{Code: "D1", Group: GroupBus, Description: "до 20 чел.", PriceOver30: 5464, PriceAnyAge: 6071},
	{Code: "D2", Group: GroupBus, Description: "более 20 чел.", PriceOver30: 6855, PriceAnyAge: 7616},
	{Code: "D3", Group: GroupBus, Description: "трамваи", PriceOver30: 6855, PriceAnyAge: 7616},
	{Code: "D4", Group: GroupBus, Description: "троллейбусы", PriceOver30: 6855, PriceAnyAge: 7616},

	{Code: "C0", Group: GroupTruck, Description: "грузовые до 2,4т", PriceOver30: 2703, PriceAnyAge: 3003},
	{Code: "C1", Group: GroupTruck, Description: "грузовые свыше 2,4т, грузоподъемность до 2т", PriceOver30: 4113, PriceAnyAge: 4570},
	{Code: "C2", Group: GroupTruck, Description: "грузоподъемность свыше 2т", PriceOver30: 5660, PriceAnyAge: 6289},

	{Code: "A1", Group: GroupMotorcycle, Description: "мотоциклы до 300 см³, до 5 кВт", PriceOver30: 745, PriceAnyAge: 827},
	{Code: "A2", Group: GroupMotorcycle, Description: "мотоциклы свыше 300 см³, багги, квадроциклы", PriceOver30: 1371, PriceAnyAge: 1524},

	{Code: "G1", Group: GroupAgricultural, Description: "тракторы", PriceOver30: 3134, PriceAnyAge: 3482},
	{Code: "G2", Group: GroupAgricultural, Description: "с/х техника", PriceOver30: 3917, PriceAnyAge: 4352},
	{Code: "G3", Group: GroupAgricultural, Description: "прицепы к с/х технике и тракторам", PriceOver30: 980, PriceAnyAge: 1088},

	{Code: "H1", Group: GroupSpecial, Description: "ТС специального назначения", PriceOver30: 3917, PriceAnyAge: 4352},
	{Code: "H2", Group: GroupSpecial, Description: "дорожно-строительная техника", PriceOver30: 3917, PriceAnyAge: 4352},
	{Code: "H3", Group: GroupSpecial, Description: "военная техника", PriceOver30: 3917, PriceAnyAge: 4352},

	{Code: "F", Group: GroupTrailer, Description: "прицепы к легковым ТС", PriceOver30: 666, PriceAnyAge: 740},
	{Code: "E", Group: GroupTrailer, Description: "прицепы к грузовым ТС", PriceOver30: 980, PriceAnyAge: 1088},
}

var defaultTable = mustTable(defaultCategories)

// Default returns the built-in tariff table.
func Default() *Table {
	return defaultTable
}

func mustTable(categories []Category) *Table {
	t, err := NewTable(categories)
	if err != nil {
		panic(err)
	}
	return t
}
