package lunchmenu

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// horizontalSpace matches runs of spaces, tabs and the no-break space variants
// that menus use to align prices.
var horizontalSpace = regexp.MustCompile(`[ \t\f\v\x{00A0}\x{2007}\x{202F}]+`)

// Normalize returns raw as a single clean line: NFC-composed, no-break spaces
// replaced, horizontal whitespace collapsed to one space and trimmed.
// Normalize is idempotent.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	s := norm.NFC.String(raw)
	s = horizontalSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// SplitLines splits text on line breaks and returns the non-empty normalized lines.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		if line := Normalize(raw); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// StripDiacritics removes combining marks, so "Pondělí" becomes "Pondeli".
func StripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
