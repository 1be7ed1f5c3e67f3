package vehicle

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// volumePatterns are tried in order. Only the first match of each pattern is
// considered; an out-of-range value moves on to the next pattern.
var volumePatterns = []*regexp.Regexp{
	// "1998 см³", "1800 кубов", "1600cm"
	regexp.MustCompile(`(\d{3,4})\s*(?:СМ|CM|КУБОВ|КУБ)`),
	// "1,998" or "1.998" litres written to the cm³
	regexp.MustCompile(`(\d{1,2})[.,](\d{3})`),
	// a bare number at the end of the text or before whitespace
	regexp.MustCompile(`(\d{3,4})(?:\s|$)`),
}

var (
	yearPattern        = regexp.MustCompile(`19[89]\d|20[0-2]\d`)
	modelNumberPattern = regexp.MustCompile(`^\d{3,4}(?:СМ|CM|КУБОВ|КУБ)?\d?$`)
)

// Extract pulls whatever vehicle attributes it can find out of text. It never
// fails: anything it cannot recognise is left empty.
func Extract(text string) Record {
	s := strings.ToUpper(strings.TrimSpace(text))
	if s == "" {
		return Record{}
	}

	cc, volStart, volEnd := extractVolume(s)
	brand, model := extractBrandModel(s)
	return Record{
		Brand:          brand,
		Model:          model,
		Year:           extractYear(s, volStart, volEnd),
		EngineVolumeCC: cc,
		FuelType:       extractFuel(s),
	}
}

// ExtractVolume returns only the engine volume found in text, or 0.
func ExtractVolume(text string) int {
	cc, _, _ := extractVolume(strings.ToUpper(strings.TrimSpace(text)))
	return cc
}

func extractVolume(s string) (cc, start, end int) {
	for _, re := range volumePatterns {
		m := re.FindStringSubmatchIndex(s)
		if m == nil {
			continue
		}
		digits := s[m[2]:m[3]]
		if len(m) >= 6 && m[4] >= 0 {
			digits += s[m[4]:m[5]]
		}
		v, err := strconv.Atoi(digits)
		if err != nil || !ValidEngineVolume(v) {
			continue
		}
		return v, m[0], m[1]
	}
	return 0, -1, -1
}

func extractBrandModel(s string) (brand, model string) {
	for _, b := range brands {
		if i := strings.Index(s, b); i >= 0 {
			return b, extractModel(s[i+len(b):])
		}
	}
	for _, a := range brandAliases {
		if i := indexAtWordStart(s, a.stem); i >= 0 {
			rest := s[i+len(a.stem):]
			// skip a case ending such as "ТОЙОТЫ"
			rest = strings.TrimLeftFunc(rest, unicode.IsLetter)
			return a.brand, extractModel(rest)
		}
	}
	return "", ""
}

// extractModel takes the run of upper-case letters, digits and hyphens that
// follows the brand. A bare 3-4 digit number is a volume or a year, not a model.
func extractModel(rest string) string {
	rest = strings.TrimLeft(rest, " \t\n\r,:;-")
	end := 0
	for end < len(rest) {
		r, size := utf8.DecodeRuneInString(rest[end:])
		if !unicode.IsUpper(r) && !unicode.IsDigit(r) && r != '-' {
			break
		}
		end += size
	}
	model := strings.TrimRight(rest[:end], "-")
	if model == "" || modelNumberPattern.MatchString(model) {
		return ""
	}
	return model
}

// extractYear returns the first plausible model year that is a standalone
// number and is not the text already taken as the engine volume.
func extractYear(s string, volStart, volEnd int) int {
	for _, loc := range yearPattern.FindAllStringIndex(s, -1) {
		if loc[0] < volEnd && loc[1] > volStart {
			continue
		}
		if digitAt(s, loc[0]-1) || digitAt(s, loc[1]) {
			continue
		}
		y, err := strconv.Atoi(s[loc[0]:loc[1]])
		if err == nil {
			return y
		}
	}
	return 0
}

func extractFuel(s string) FuelType {
	for _, rule := range fuelRules {
		for _, stem := range rule.stems {
			if indexAtWordStart(s, stem) >= 0 {
				return rule.fuel
			}
		}
		for _, word := range rule.words {
			if containsWord(s, word) {
				return rule.fuel
			}
		}
	}
	return FuelUnknown
}

// containsWord reports whether word occurs in s with no letter on either side.
func containsWord(s, word string) bool {
	offset := 0
	for {
		i := indexAtWordStart(s[offset:], word)
		if i < 0 {
			return false
		}
		end := offset + i + len(word)
		next, _ := utf8.DecodeRuneInString(s[end:])
		if end == len(s) || !unicode.IsLetter(next) {
			return true
		}
		offset = end
	}
}

// indexAtWordStart is strings.Index restricted to hits that begin a word.
func indexAtWordStart(s, sub string) int {
	offset := 0
	for {
		i := strings.Index(s[offset:], sub)
		if i < 0 {
			return -1
		}
		i += offset
		if i == 0 {
			return 0
		}
		prev, _ := utf8.DecodeLastRuneInString(s[:i])
		if !unicode.IsLetter(prev) {
			return i
		}
		offset = i + len(sub)
	}
}

func digitAt(s string, i int) bool {
	return i >= 0 && i < len(s) && s[i] >= '0' && s[i] <= '9'
}
