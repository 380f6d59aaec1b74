package models

import (
	"strings"

	"golang.org/x/text/cases"
)

// fold applies Unicode case folding. A cases.Caser keeps state, so each call gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}

// ContainsFold reports whether substr is within s under Unicode case folding.
// An empty substr always matches.
func ContainsFold(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(fold(s), fold(substr))
}
