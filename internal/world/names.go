package world

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// MaxNameLength is the longest display name kept, in characters.
const MaxNameLength = 16

// SanitizeName trims surrounding whitespace, drops every character that is not
// a letter, digit, underscore or whitespace, and truncates to MaxNameLength.
// An empty result becomes DefaultName.
func SanitizeName(name string) string {
	name = strings.TrimSpace(norm.NFC.String(name))

	var b strings.Builder
	n := 0
	for _, r := range name {
		if !nameRune(r) {
			continue
		}
		if n == MaxNameLength {
			break
		}
		b.WriteRune(r)
		n++
	}
	if b.Len() == 0 {
		return DefaultName
	}
	return b.String()
}

func nameRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r)
}
