package vehicle

// brands is scanned in order and the first substring hit wins, so the order
// is part of the extraction behaviour.
var brands = []string{
	"BMW", "MERCEDES", "AUDI", "VOLKSWAGEN", "TOYOTA", "HONDA", "NISSAN",
	"HYUNDAI", "KIA", "FORD", "CHEVROLET", "OPEL", "PEUGEOT", "RENAULT",
	"CITROEN", "FIAT", "SKODA", "SEAT", "MAZDA", "SUBARU", "MITSUBISHI",
	"LEXUS", "INFINITI", "ACURA", "VOLVO", "SAAB", "JAGUAR", "LAND ROVER",
	"PORSCHE", "MINI", "ALFA ROMEO", "LADA", "VAZ", "GAZ", "UAZ", "ZAZ",
	"DAEWOO", "SUZUKI", "ISUZU", "DACIA", "LANCIA",
}

// brandAliases maps Cyrillic spellings (or their stems, to tolerate case
// endings) onto the Latin brand. They are only tried after every Latin brand
// has missed.
var brandAliases = []struct {
	stem  string
	brand string
}{
	{"БМВ", "BMW"},
	{"МЕРСЕДЕС", "MERCEDES"},
	{"МЕРС", "MERCEDES"},
	{"АУДИ", "AUDI"},
	{"АУДІ", "AUDI"},
	{"ФОЛЬКСВАГЕН", "VOLKSWAGEN"},
	{"ТОЙОТ", "TOYOTA"},
	{"ХОНД", "HONDA"},
	{"НИССАН", "NISSAN"},
	{"НІСАН", "NISSAN"},
	{"ХЮНДАЙ", "HYUNDAI"},
	{"ХЕНДАЙ", "HYUNDAI"},
	{"ХУНДАЙ", "HYUNDAI"},
	{"КИА", "KIA"},
	{"КІА", "KIA"},
	{"ФОРД", "FORD"},
	{"ШЕВРОЛЕ", "CHEVROLET"},
	{"ОПЕЛ", "OPEL"},
	{"ПЕЖО", "PEUGEOT"},
	{"РЕНО", "RENAULT"},
	{"СИТРОЕН", "CITROEN"},
	{"СІТРОЕН", "CITROEN"},
	{"ФИАТ", "FIAT"},
	{"ФІАТ", "FIAT"},
	{"ШКОД", "SKODA"},
	{"МАЗД", "MAZDA"},
	{"СУБАРУ", "SUBARU"},
	{"МИЦУБИСИ", "MITSUBISHI"},
	{"МІЦУБІСІ", "MITSUBISHI"},
	{"ЛЕКСУС", "LEXUS"},
	{"ВОЛЬВО", "VOLVO"},
	{"ПОРШ", "PORSCHE"},
	{"ЛАДА", "LADA"},
	{"ВАЗ", "VAZ"},
	{"УАЗ", "UAZ"},
	{"ЗАЗ", "ZAZ"},
	{"ДЕУ", "DAEWOO"},
	{"ДЭУ", "DAEWOO"},
	{"СУЗУКИ", "SUZUKI"},
	{"СУЗУКІ", "SUZUKI"},
	{"ДАЧИЯ", "DACIA"},
}

// fuelRules are tried in order; the first rule with a matching stem or word
// wins. Stems match at the start of a word, words must match a whole word:
// "ГАЗ" alone would also fire on model names such as "ГАЗЕЛЬ".
var fuelRules = []struct {
	stems []string
	words []string
	fuel  FuelType
}{
	{stems: []string{"БЕНЗИН", "PETROL", "GASOLINE"}, fuel: FuelGasoline},
	{stems: []string{"DIESEL", "ДИЗЕЛ"}, fuel: FuelDiesel},
	{stems: []string{"ЕЛЕКТРО", "ЭЛЕКТРО", "ELECTRIC"}, fuel: FuelElectric},
	{stems: []string{"ГАЗОВ", "ГАЗОБАЛ", "LPG"}, words: []string{"ГАЗ", "ГАЗУ", "ГАЗЕ", "ГАЗОМ", "ГАЗІ"}, fuel: FuelLPG},
}

// canonicalBrand resolves a brand or alias to its Latin vocabulary entry.
func canonicalBrand(s string) (string, bool) {
	for _, b := range brands {
		if s == b {
			return b, true
		}
	}
	for _, a := range brandAliases {
		if s == a.stem {
			return a.brand, true
		}
	}
	return "", false
}

// Brands returns a copy of the Latin brand vocabulary in match order.
func Brands() []string {
	return append([]string(nil), brands...)
}
