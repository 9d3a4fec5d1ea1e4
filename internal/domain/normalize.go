package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// NormalizeName canonicalizes a category or skill name: leading/trailing
// whitespace is trimmed, runs of inner whitespace collapse to one space and
// the first letter of each word is upper-cased. The remainder of each word
// is left untouched so acronyms like "QA" survive. Normalized names are the
// lookup identity for categories and skills.
func NormalizeName(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
