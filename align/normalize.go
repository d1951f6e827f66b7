package align

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// keyer builds comparison keys. A cases.Caser is stateful, so each
// alignment uses its own keyer.
type keyer struct {
	lower cases.Caser
}

func newKeyer() *keyer {
	return &keyer{lower: cases.Lower(language.Und)}
}

// key lowercases s, collapses whitespace runs to a single space and trims
func (k *keyer) key(s string) string {
	return strings.Join(strings.Fields(k.lower.String(s)), " ")
}

// Key returns the normalized comparison key of s. Two fragments are
// key-equal when their keys are equal.
func Key(s string) string {
	return newKeyer().key(s)
}
