// Package constraint holds the rules that keep a continuation prefix fair:
// blacklisted suffixes, self-solving prefixes, obscure suffixes and the rare
// pattern table.
package constraint

import (
	"strings"
	"sync"

	"github.com/bastiangx/wordchain/pkg/vocab"
)

const (
	// ObscureThreshold is the most prefix matches a suffix may have to count as obscure.
	ObscureThreshold = 15
	// MaxSuffixScore is the most vocabulary words a pattern may end to keep its ending count.
	MaxSuffixScore = 100
)

// Blacklist holds the common derivational endings that are never handed out
// as a required prefix.
var Blacklist = []string{
	"ness", "ally", "ses", "sis", "lity", "ties", "hies", "phyll", "sts", "ossy",
	"uses", "oses", "tics", "nist", "isms", "ity", "ions", "mian", "ies", "ers",
	"ing", "bias", "ias", "ous", "ful", "less", "able", "ible",
}

var blacklistSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(Blacklist))
	for _, s := range Blacklist {
		m[s] = struct{}{}
	}
	return m
}()

// IsBlacklisted reports whether prefix is exactly a blacklisted suffix.
func IsBlacklisted(prefix string) bool {
	_, ok := blacklistSet[prefix]
	return ok
}

// EndsWithBlacklisted reports whether word ends with any blacklisted suffix.
func EndsWithBlacklisted(word string) bool {
	for _, s := range Blacklist {
		if strings.HasSuffix(word, s) {
			return true
		}
	}
	return false
}

// Catalog answers constraint queries against one vocabulary index.
// It is immutable after construction apart from its internal memo, and safe
// for concurrent use.
type Catalog struct {
	index       *vocab.Index
	selfSolving sync.Map // prefix -> bool
	patterns    *PatternTable
}

// NewCatalog builds the catalog and its pattern table.
func NewCatalog(index *vocab.Index, patterns []string) *Catalog {
	return &Catalog{
		index:    index,
		patterns: NewPatternTable(index, patterns),
	}
}

func (c *Catalog) Index() *vocab.Index {
	return c.index
}

// IsSelfSolving reports whether some word starting with prefix also ends with it.
// A word equal to prefix counts.
func (c *Catalog) IsSelfSolving(prefix string) bool {
	if v, ok := c.selfSolving.Load(prefix); ok {
		return v.(bool)
	}
	solving := false
	for _, w := range c.index.WithPrefix(prefix) {
		if strings.HasSuffix(w, prefix) {
			solving = true
			break
		}
	}
	c.selfSolving.Store(prefix, solving)
	return solving
}

// IsInadmissible is true for prefixes that may not be handed out.
func (c *Catalog) IsInadmissible(prefix string) bool {
	return IsBlacklisted(prefix) || c.IsSelfSolving(prefix)
}

// IsObscureSuffix reports whether suffix has a few, but not zero, words starting with it.
func (c *Catalog) IsObscureSuffix(suffix string) bool {
	if len(suffix) < 2 {
		return false
	}
	n := c.index.CountWithPrefix(suffix)
	return n >= 1 && n <= ObscureThreshold
}

// ObscureSuffix returns the length of the longest obscure suffix of word, or 0.
func (c *Catalog) ObscureSuffix(word string) int {
	for l := min(c.index.MaxPrefixLen(), len(word)); l >= 2; l-- {
		if c.IsObscureSuffix(word[len(word)-l:]) {
			return l
		}
	}
	return 0
}

// PatternFor returns the best rare pattern that word ends with.
func (c *Catalog) PatternFor(word string) (PatternInfo, bool) {
	return c.patterns.BestSuffix(word)
}

// Pattern looks up one pattern.
func (c *Catalog) Pattern(p string) (PatternInfo, bool) {
	return c.patterns.Get(p)
}

// Patterns returns the number of patterns kept.
func (c *Catalog) Patterns() int {
	return c.patterns.Len()
}
