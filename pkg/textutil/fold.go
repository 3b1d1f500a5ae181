// Package textutil holds the Unicode-aware matching helpers shared by the
// diary backends and the tutor dispatcher.
package textutil

import (
	"strings"

	"golang.org/x/text/cases"
)

// Fold returns the case-folded form of s. A new Caser is built per call because
// Casers are stateful and must not be shared between goroutines.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// ContainsFold reports whether substr occurs in s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(Fold(s), Fold(substr))
}

// HasPrefix is a case-sensitive prefix test, exposed for symmetry with the SQL function of the same name.
func HasPrefix(s, prefix string) bool {
	return strings.HasPrefix(s, prefix)
}
