package constraint

import (
	"cmp"
	"slices"

	"github.com/bastiangx/wordchain/pkg/score"
	"github.com/bastiangx/wordchain/pkg/vocab"
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// PatternInfo describes one rare pattern from the pattern list.
type PatternInfo struct {
	Pattern string
	// Solutions are the words starting with the pattern, longest first.
	Solutions []string
	// Endings are the words ending with the pattern.
	Endings         []string
	EndingCount     int
	LongestSolution int
	Obscurity       int
}

// Rare reports whether words ending with the pattern are few enough to rank on.
func (p PatternInfo) Rare() bool {
	return p.EndingCount > 0 && p.EndingCount <= MaxSuffixScore
}

// better orders patterns: fewer solutions, then higher obscurity, then a
// longer longest solution, then a longer pattern.
func (p PatternInfo) better(o PatternInfo) bool {
	if len(p.Solutions) != len(o.Solutions) {
		return len(p.Solutions) < len(o.Solutions)
	}
	if p.Obscurity != o.Obscurity {
		return p.Obscurity > o.Obscurity
	}
	if p.LongestSolution != o.LongestSolution {
		return p.LongestSolution > o.LongestSolution
	}
	return len(p.Pattern) > len(o.Pattern)
}

// PatternTable stores patterns in a trie keyed by the reversed pattern, so
// every pattern that ends a word sits on the path of the reversed word.
type PatternTable struct {
	trie  *patricia.Trie
	count int
}

// NewPatternTable builds the table. Patterns longer than the index prefix
// limit or equal to a blacklisted suffix are dropped.
func NewPatternTable(index *vocab.Index, patterns []string) *PatternTable {
	t := &PatternTable{trie: patricia.NewTrie()}
	dropped := 0
	for _, p := range patterns {
		if p == "" || len(p) > index.MaxPrefixLen() || IsBlacklisted(p) {
			dropped++
			continue
		}
		solutions := slices.Clone(index.WithPrefix(p))
		slices.SortStableFunc(solutions, func(a, b string) int {
			return cmp.Compare(len(b), len(a))
		})
		endings := index.WithSuffix(p)
		info := PatternInfo{
			Pattern:     p,
			Solutions:   solutions,
			Endings:     endings,
			EndingCount: len(endings),
			Obscurity:   score.PrefixObscurity(p, solutions),
		}
		if len(solutions) > 0 {
			info.LongestSolution = len(solutions[0])
		}
		if t.trie.Insert(patricia.Prefix(vocab.Reverse(p)), info) {
			t.count++
		}
	}
	log.Debugf("Pattern table holds %d patterns (%d dropped)", t.count, dropped)
	return t
}

// Get returns the entry for pattern p.
func (t *PatternTable) Get(p string) (PatternInfo, bool) {
	if t == nil || p == "" {
		return PatternInfo{}, false
	}
	item := t.trie.Get(patricia.Prefix(vocab.Reverse(p)))
	if item == nil {
		return PatternInfo{}, false
	}
	return item.(PatternInfo), true
}

// BestSuffix returns the best rare pattern that word ends with.
func (t *PatternTable) BestSuffix(word string) (PatternInfo, bool) {
	if t == nil || word == "" {
		return PatternInfo{}, false
	}
	var best PatternInfo
	found := false
	err := t.trie.VisitPrefixes(patricia.Prefix(vocab.Reverse(word)), func(_ patricia.Prefix, item patricia.Item) error {
		info := item.(PatternInfo)
		if !info.Rare() {
			return nil
		}
		if !found || info.better(best) {
			best, found = info, true
		}
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting pattern trie: %v", err)
		return PatternInfo{}, false
	}
	return best, found
}

func (t *PatternTable) Len() int {
	if t == nil {
		return 0
	}
	return t.count
}
