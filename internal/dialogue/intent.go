package dialogue

import (
	"strings"
	"unicode"
)

type intent int

const (
	intentNone intent = iota
	intentThanks
	intentOK
	intentYes
	intentNo
	intentNewCalculation
)

// Word lists are matched against whole words, never substrings, so "да"
// does not fire inside "Skoda" or "всегда".
var (
	thanksWords = []string{"спасибо", "спасиб", "благодарю", "дякую", "спасибі", "дякуємо"}
	okWords     = []string{"ок", "окей", "ok", "okay", "хорошо", "отлично", "понятно", "ясно", "добре", "зрозуміло", "чудово"}
	yesWords    = []string{"да", "ага", "угу"}
	noWords     = []string{"нет", "ні"}

	newCalculationPhrases = []string{
		"новый", "еще", "ещё", "другой", "рассчитать", "расчет", "расчёт",
		"другая машина", "другое авто",
		"новий", "ще", "інший", "розрахувати", "розрахунок", "інша машина", "інше авто",
	}
)

// detectPoliteness returns the acknowledgement intent of text, checked in
// the order thanks, ok, yes, no.
func detectPoliteness(text string) intent {
	words := wordSet(text)
	switch {
	case words.hasAny(thanksWords):
		return intentThanks
	case words.hasAny(okWords):
		return intentOK
	case words.hasAny(yesWords):
		return intentYes
	case words.hasAny(noWords):
		return intentNo
	default:
		return intentNone
	}
}

// isNewCalculation reports whether text asks to start over.
func isNewCalculation(text string) bool {
	return wordSet(text).hasAny(newCalculationPhrases)
}

// words is the lower-cased text split on anything that is not a letter or
// digit, re-joined with single spaces and padded for phrase lookup.
type words string

func wordSet(text string) words {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return words(" " + strings.Join(fields, " ") + " ")
}

func (w words) hasAny(phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(string(w), " "+p+" ") {
			return true
		}
	}
	return false
}
