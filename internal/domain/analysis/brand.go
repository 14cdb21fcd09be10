package analysis

import (
	"strings"
	"unicode"
)

// brandIndex is the position of the suggestion used for the banner.
const brandIndex = 2

// ParseSuggestions splits a completion reply into one suggestion per line.
func ParseSuggestions(reply string) SuggestionList {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return SuggestionList{}
	}
	return SuggestionList(strings.Split(reply, "\n"))
}

// SelectBrand picks the third suggestion, or the first one when the reply
// was shorter, and sanitizes it. An empty list yields NoBrandFound.
func SelectBrand(list SuggestionList) string {
	var raw string
	switch {
	case len(list) > brandIndex:
		raw = list[brandIndex]
	case len(list) > 0:
		raw = list[0]
	default:
		raw = NoBrandFound
	}
	return SanitizeBrand(raw)
}

// SanitizeBrand keeps ASCII letters and whitespace only. A dropped rune acts
// as a word break, so "Nike-Sportswear" becomes "Nike Sportswear"; runs of
// whitespace collapse to one space and the ends are trimmed.
func SanitizeBrand(s string) string {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, s)
	return strings.Join(strings.Fields(cleaned), " ")
}
