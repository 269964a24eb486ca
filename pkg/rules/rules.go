// Package rules derives the difficulty and the required prefix of a turn.
package rules

import (
	"strings"

	"github.com/bastiangx/wordchain/pkg/vocab"
	"github.com/bastiangx/wordchain/pkg/wordset"
)

// Level maps turns since the last heart loss to the required prefix length.
func Level(turnsSinceHeartLoss int) int {
	switch {
	case turnsSinceHeartLoss <= 3:
		return 1
	case turnsSinceHeartLoss <= 8:
		return 2
	case turnsSinceHeartLoss <= 15:
		return 3
	default:
		return 4
	}
}

// HasUnused reports whether some word starting with prefix is not in used.
// The cached count rules out most prefixes before any scan.
func HasUnused(idx *vocab.Index, prefix string, used wordset.View) bool {
	total := idx.CountWithPrefix(prefix)
	if total == 0 {
		return false
	}
	if used == nil {
		return true
	}
	return total > used.CountPrefix(prefix)
}

// FirstUnused returns the first word starting with prefix that is not in used.
func FirstUnused(idx *vocab.Index, prefix string, used wordset.View) (string, bool) {
	for _, w := range idx.WithPrefix(prefix) {
		if used == nil || !used.Contains(w) {
			return w, true
		}
	}
	return "", false
}

// RequiredPrefix picks the suffix of word the next player must start with:
// the longest suffix of at most maxLen letters that is not exhausted and still
// has an unused word. exhausted may be nil.
func RequiredPrefix(idx *vocab.Index, word string, maxLen int, used, exhausted wordset.View) (string, bool) {
	word = strings.ToLower(word)
	for l := min(maxLen, len(word)); l >= 1; l-- {
		suffix := word[len(word)-l:]
		if exhausted != nil && exhausted.Contains(suffix) {
			continue
		}
		if HasUnused(idx, suffix, used) {
			return suffix, true
		}
	}
	return "", false
}
