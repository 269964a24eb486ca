package utils

import (
	"strings"
)

// ContinuationFilter drops candidates whose continuation prefix was already
// taken by a better candidate. Not safe for concurrent use.
type ContinuationFilter struct {
	seen map[string]bool
}

// NewContinuationFilter creates a filter that already rejects the given prefixes.
func NewContinuationFilter(taken ...string) *ContinuationFilter {
	seen := make(map[string]bool, len(taken))
	for _, p := range taken {
		seen[strings.ToLower(p)] = true
	}
	return &ContinuationFilter{seen: seen}
}

// ShouldInclude reports whether prefix is new and marks it as taken.
func (f *ContinuationFilter) ShouldInclude(prefix string) bool {
	prefix = strings.ToLower(prefix)
	if f.seen[prefix] {
		return false
	}
	f.seen[prefix] = true
	return true
}

// Seen returns how many distinct prefixes have been taken.
func (f *ContinuationFilter) Seen() int {
	return len(f.seen)
}
