package suggest

import (
	"cmp"
	"math"
	"slices"

	"github.com/bastiangx/wordchain/internal/utils"
	"github.com/bastiangx/wordchain/pkg/constraint"
	"github.com/bastiangx/wordchain/pkg/score"
	"github.com/bastiangx/wordchain/pkg/vocab"
	"github.com/bastiangx/wordchain/pkg/wordset"
	"github.com/charmbracelet/log"
	"github.com/samber/lo"
)

const (
	// DefaultHintSolutionSample bounds the continuation solutions inspected per hint.
	DefaultHintSolutionSample = 50
	defaultCacheWords         = 50000
)

// Continuation is the prefix a word hands to the next player.
type Continuation struct {
	Prefix string
	// Count is the number of unused words starting with Prefix.
	Count int
	// Floor is set when every suffix was blacklisted or self-solving.
	Floor bool
}

// Candidate is one ranked word.
type Candidate struct {
	Word              string
	Continuation      string
	ContinuationCount int
	Blacklisted       bool
	SelfSolving       bool
	EndsBlacklisted   bool
	Solved            bool
	ObscureSuffixLen  int
	Pattern           string
	PatternObscurity  int
	WordObscurity     float64
	LongestSolution   int
	Score             float64
}

// Penalized reports whether the candidate hands over an unfair or dead continuation.
func (c Candidate) Penalized() bool {
	return c.Blacklisted || c.SelfSolving || c.EndsBlacklisted || c.ContinuationCount == 0
}

// Ranker ranks candidates against one index and catalog.
type Ranker struct {
	index   *vocab.Index
	catalog *constraint.Catalog
	weights score.Weights
	cache   *ObscurityCache
	sample  int
}

// Option configures a Ranker.
type Option func(*Ranker)

// WithHintSolutionSample sets how many continuation solutions a hint inspects.
func WithHintSolutionSample(n int) Option {
	return func(r *Ranker) {
		if n > 0 {
			r.sample = n
		}
	}
}

// WithCacheSize sets the obscurity cache capacity.
func WithCacheSize(n int) Option {
	return func(r *Ranker) {
		if n > 0 {
			r.cache = NewObscurityCache(n, r.weights.Word)
		}
	}
}

func NewRanker(catalog *constraint.Catalog, weights score.Weights, opts ...Option) *Ranker {
	r := &Ranker{
		index:   catalog.Index(),
		catalog: catalog,
		weights: weights,
		sample:  DefaultHintSolutionSample,
	}
	r.cache = NewObscurityCache(defaultCacheWords, weights.Word)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Ranker) unusedCount(prefix string, used wordset.View) int {
	n := r.index.CountWithPrefix(prefix)
	if used != nil {
		n -= used.CountPrefix(prefix)
	}
	return max(n, 0)
}

func (r *Ranker) unusedWithPrefix(prefix string, used wordset.View) []string {
	return lo.Filter(r.index.WithPrefix(prefix), func(w string, _ int) bool {
		return used == nil || !used.Contains(w)
	})
}

// BestContinuation picks, among the suffixes of word up to the index prefix
// limit, the admissible one with the fewest unused words, preferring longer
// suffixes on ties. With no positive admissible suffix it returns the longest
// admissible one with a zero count, and with no admissible suffix at all the
// longest suffix flagged as Floor.
func (r *Ranker) BestContinuation(word string, used wordset.View) Continuation {
	maxLen := min(r.index.MaxPrefixLen(), len(word))
	if maxLen == 0 {
		return Continuation{Floor: true}
	}

	var best Continuation
	firstAdmissible := ""
	for l := maxLen; l >= 1; l-- {
		s := word[len(word)-l:]
		if r.catalog.IsInadmissible(s) {
			continue
		}
		if firstAdmissible == "" {
			firstAdmissible = s
		}
		n := r.unusedCount(s, used)
		if n > 0 && (best.Prefix == "" || n < best.Count) {
			best = Continuation{Prefix: s, Count: n}
		}
	}
	if best.Prefix != "" {
		return best
	}
	if firstAdmissible != "" {
		return Continuation{Prefix: firstAdmissible}
	}
	longest := word[len(word)-maxLen:]
	return Continuation{Prefix: longest, Count: r.unusedCount(longest, used), Floor: true}
}

// candidate fills the fields shared by both rankings. The word itself counts
// as used when its continuation is measured.
func (r *Ranker) candidate(word string, used, solved wordset.View) Candidate {
	cont := r.BestContinuation(word, wordset.With(used, word))
	c := Candidate{
		Word:              word,
		Continuation:      cont.Prefix,
		ContinuationCount: cont.Count,
		Blacklisted:       constraint.IsBlacklisted(cont.Prefix),
		SelfSolving:       r.catalog.IsSelfSolving(cont.Prefix),
		EndsBlacklisted:   constraint.EndsWithBlacklisted(word),
	}
	if solved != nil {
		c.Solved = solved.Contains(cont.Prefix)
	}
	return c
}

// RankForMove scores every unused word starting with prefix. Nothing is
// dropped: unfair, dead or solved continuations only lose score, so the
// opponent always has a move while any unused word remains.
func (r *Ranker) RankForMove(prefix string, used, solved wordset.View) []Candidate {
	w := r.weights.Move
	words := r.unusedWithPrefix(prefix, used)

	candidates := lo.Map(words, func(word string, _ int) Candidate {
		c := r.candidate(word, used, solved)
		c.ObscureSuffixLen = r.catalog.ObscureSuffix(word)
		if p, ok := r.catalog.PatternFor(word); ok {
			c.Pattern = p.Pattern
			c.PatternObscurity = p.Obscurity
		}
		c.WordObscurity = r.cache.Get(word)

		if c.ContinuationCount > 0 {
			c.Score += w.InverseCount / float64(c.ContinuationCount)
		}
		if c.ObscureSuffixLen > 0 {
			c.Score += w.ObscureWord + w.ObscureSuffixLen*float64(c.ObscureSuffixLen)
		}
		c.Score += w.PrefixLength * float64(len(c.Continuation))
		c.Score += w.PatternObscurity * float64(c.PatternObscurity)
		c.Score += w.WordObscurity * c.WordObscurity
		c.Score += w.WordLength * float64(len(word))

		if c.Blacklisted || c.SelfSolving || c.EndsBlacklisted {
			c.Score -= w.BlacklistPenalty
		}
		if c.ContinuationCount == 0 {
			c.Score -= w.DeadEndPenalty
		}
		if c.Solved {
			c.Score -= w.SolvedPenalty
		}
		return c
	})

	slices.SortFunc(candidates, func(a, b Candidate) int {
		if a.Score != b.Score {
			return cmp.Compare(b.Score, a.Score)
		}
		if a.ContinuationCount != b.ContinuationCount {
			return cmp.Compare(a.ContinuationCount, b.ContinuationCount)
		}
		return cmp.Compare(a.Word, b.Word)
	})
	return candidates
}

// RankForHints returns the hints for prefix. Words handing over an unfair,
// dead or already solved continuation are dropped, and each continuation is
// shown at most once.
func (r *Ranker) RankForHints(prefix string, n int, used, solved wordset.View) []Candidate {
	w := r.weights.Hint
	var candidates []Candidate

	for _, word := range r.unusedWithPrefix(prefix, used) {
		c := r.candidate(word, used, solved)
		if c.Penalized() || c.Solved {
			continue
		}

		solutions := r.sampleSolutions(c.Continuation, wordset.With(used, word))
		c.WordObscurity = r.cache.Max(solutions)
		c.LongestSolution = lo.Max(lo.Map(solutions, func(s string, _ int) int { return len(s) }))

		c.Score = w.InverseCount/float64(c.ContinuationCount) +
			w.SolutionObscurity*c.WordObscurity +
			w.LongestSolution*float64(c.LongestSolution) +
			w.PrefixLength*float64(len(c.Continuation))
		candidates = append(candidates, c)
	}

	slices.SortFunc(candidates, func(a, b Candidate) int {
		if math.Abs(a.Score-b.Score) > 0.001 {
			return cmp.Compare(b.Score, a.Score)
		}
		return cmp.Compare(a.Word, b.Word)
	})

	filter := utils.NewContinuationFilter()
	hints := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if !filter.ShouldInclude(c.Continuation) {
			continue
		}
		hints = append(hints, c)
		if n > 0 && len(hints) == n {
			break
		}
	}
	log.Debugf("Hints for %q: kept %d, %d continuations seen", prefix, len(hints), filter.Seen())
	return hints
}

// sampleSolutions returns up to the sample size of unused words starting with prefix.
func (r *Ranker) sampleSolutions(prefix string, used wordset.View) []string {
	out := make([]string, 0, r.sample)
	for _, w := range r.index.WithPrefix(prefix) {
		if used.Contains(w) {
			continue
		}
		out = append(out, w)
		if len(out) == r.sample {
			break
		}
	}
	return out
}

// Stats returns statistics about the ranker
func (r *Ranker) Stats() map[string]int {
	stats := r.index.Stats()
	stats["patterns"] = r.catalog.Patterns()
	stats["hintSolutionSample"] = r.sample
	for k, v := range r.cache.Stats() {
		stats[k] = v
	}
	return stats
}
