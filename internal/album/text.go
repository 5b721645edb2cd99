package album

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// controlChars matches control characters except newline and tab, which are
// meaningful inside a text item.
var controlChars = runes.Predicate(func(r rune) bool {
	return unicode.IsControl(r) && r != '\n' && r != '\t'
})

// NormalizeText composes text to NFC and strips control characters other than
// newlines and tabs, so equal-looking strings compare equal after a round trip.
func NormalizeText(s string) string {
	t := transform.Chain(norm.NFC, runes.Remove(controlChars))
	result, _, _ := transform.String(t, s)
	return result
}

// NormalizeFontFamily trims the family name and collapses inner whitespace (e.g., "  Noto   Sans " -> "Noto Sans").
func NormalizeFontFamily(family string) string {
	return strings.Join(strings.Fields(NormalizeText(family)), " ")
}
