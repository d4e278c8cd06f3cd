package geodash

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/unicode/norm"
)

// Canonicalize returns the join key for a state name: NFC normalized, trimmed
// of surrounding whitespace and title cased ("  andhra PRADESH " -> "Andhra Pradesh").
// Canonicalize(Canonicalize(s)) == Canonicalize(s) for every s.
func Canonicalize(s string) string {
	s = strings.TrimSpace(norm.NFC.String(s))
	if s == "" {
		return ""
	}
	// A Caser keeps state between calls and is not safe for concurrent use.
	return norm.NFC.String(cases.Title(language.Und).String(s))
}

// FormatCount formats n with English thousands separators (112374333 -> "112,374,333").
func FormatCount(n int64) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}
