package utils

import (
	"strings"
)

// ResultFilter drops case-insensitive duplicate phrases from a result list
// while preserving first-seen order.
type ResultFilter struct {
	seen map[string]bool
}

// NewResultFilter creates an empty filter.
func NewResultFilter() *ResultFilter {
	return &ResultFilter{seen: make(map[string]bool)}
}

// ShouldInclude reports whether text has not been seen yet and marks it seen.
func (f *ResultFilter) ShouldInclude(text string) bool {
	lower := strings.ToLower(text)
	if f.seen[lower] {
		return false
	}
	f.seen[lower] = true
	return true
}
