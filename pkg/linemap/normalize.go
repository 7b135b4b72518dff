package linemap

import (
	"strings"
	"unicode"
)

// normalizeLine returns the comparable form of a raw line: surrounding
// whitespace removed and interior whitespace runs collapsed to a single
// space. Case is preserved.
func normalizeLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// tokenize splits a normalized line into scoring tokens. Boundaries are
// runs of anything other than letters, digits, and underscores, so
// punctuation-heavy lines still yield their identifiers.
func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// newFileVersion numbers, normalizes, and flags every raw line of one side.
func newFileVersion(lines []string) FileVersion {
	v := make(FileVersion, len(lines))
	for i, text := range lines {
		norm := normalizeLine(text)
		v[i] = LineRecord{
			Number: i + 1,
			Text:   text,
			Norm:   norm,
			Blank:  norm == "",
		}
	}
	return v
}
