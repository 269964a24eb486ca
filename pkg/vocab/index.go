// Package vocab is the immutable vocabulary index: a sorted word list, a sorted
// list of reversed words for suffix search, and a prefix count cache.
package vocab

import (
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultMaxPrefixLen is the longest prefix kept in the count cache.
const DefaultMaxPrefixLen = 4

// Index is built once per loaded database and never mutated afterwards.
// Every method is safe for concurrent use.
type Index struct {
	words        []string
	reversed     []string
	counts       map[string]int
	maxPrefixLen int
	built        time.Duration
}

// NewIndex sorts copies of words and fills the prefix count cache for
// prefixes of length 1..maxPrefixLen. Words are expected to be clean lowercase a-z.
func NewIndex(words []string, maxPrefixLen int) *Index {
	start := time.Now()
	if maxPrefixLen <= 0 {
		maxPrefixLen = DefaultMaxPrefixLen
	}

	idx := &Index{
		words:        slices.Clone(words),
		reversed:     make([]string, len(words)),
		counts:       make(map[string]int, len(words)),
		maxPrefixLen: maxPrefixLen,
	}
	slices.Sort(idx.words)

	for i, w := range idx.words {
		idx.reversed[i] = Reverse(w)
		for l := 1; l <= maxPrefixLen && l <= len(w); l++ {
			idx.counts[w[:l]]++
		}
	}
	slices.Sort(idx.reversed)

	idx.built = time.Since(start)
	log.Debugf("Indexed %d words (%d cached prefixes) in %v", len(idx.words), len(idx.counts), idx.built)
	return idx
}

// Reverse returns s with its bytes in reverse order.
func Reverse(s string) string {
	b := []byte(s)
	slices.Reverse(b)
	return string(b)
}

// Contains reports whether word is in the vocabulary, ignoring case.
func (idx *Index) Contains(word string) bool {
	if idx == nil {
		return false
	}
	word = strings.ToLower(word)
	_, found := slices.BinarySearch(idx.words, word)
	return found
}

// WithPrefix returns the sorted words starting with prefix. The returned slice
// shares the index storage and must not be modified.
func (idx *Index) WithPrefix(prefix string) []string {
	if idx == nil {
		return nil
	}
	return prefixRange(idx.words, prefix)
}

// CountWithPrefix returns the number of words starting with prefix.
func (idx *Index) CountWithPrefix(prefix string) int {
	if idx == nil {
		return 0
	}
	if prefix == "" {
		return len(idx.words)
	}
	if len(prefix) <= idx.maxPrefixLen {
		return idx.counts[prefix]
	}
	return len(prefixRange(idx.words, prefix))
}

// WithSuffix returns the words ending with suffix, ordered by their reversed form.
func (idx *Index) WithSuffix(suffix string) []string {
	if idx == nil {
		return nil
	}
	rev := prefixRange(idx.reversed, Reverse(suffix))
	out := make([]string, len(rev))
	for i, r := range rev {
		out[i] = Reverse(r)
	}
	return out
}

func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.words)
}

// At returns the i-th word in sorted order.
func (idx *Index) At(i int) string {
	return idx.words[i]
}

// Words returns the sorted vocabulary. The slice must not be modified.
func (idx *Index) Words() []string {
	if idx == nil {
		return nil
	}
	return idx.words
}

func (idx *Index) MaxPrefixLen() int {
	return idx.maxPrefixLen
}

// Stats returns statistics about the index
func (idx *Index) Stats() map[string]int {
	if idx == nil {
		return map[string]int{"totalWords": 0}
	}
	return map[string]int{
		"totalWords":     len(idx.words),
		"cachedPrefixes": len(idx.counts),
		"maxPrefixLen":   idx.maxPrefixLen,
		"buildMillis":    int(idx.built.Milliseconds()),
	}
}

// prefixRange finds the contiguous run of sorted entries starting with prefix.
func prefixRange(sorted []string, prefix string) []string {
	lo := sort.SearchStrings(sorted, prefix)
	hi := lo
	for hi < len(sorted) && strings.HasPrefix(sorted[hi], prefix) {
		hi++
	}
	return sorted[lo:hi:hi]
}
