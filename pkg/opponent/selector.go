// Package opponent picks the computer's moves: ranked candidates are checked
// with a two-ply lookahead so the opponent does not strand itself, with
// fallbacks that guarantee a move while any unused word fits the prefix.
package opponent

import (
	"github.com/bastiangx/wordchain/pkg/rules"
	"github.com/bastiangx/wordchain/pkg/suggest"
	"github.com/bastiangx/wordchain/pkg/vocab"
	"github.com/bastiangx/wordchain/pkg/wordset"
	"github.com/charmbracelet/log"
)

// Limits bounds the work done per move.
type Limits struct {
	LookaheadCandidates int     `toml:"lookahead_candidates"`
	LookaheadResponses  int     `toml:"lookahead_responses"`
	FallbackPool        int     `toml:"fallback_pool"`
	ShuffleWindow       int     `toml:"shuffle_window"`
	RestartAttempts     int     `toml:"restart_attempts"`
	DeepPenaltyFloor    float64 `toml:"deep_penalty_floor"`
}

func DefaultLimits() Limits {
	return Limits{
		LookaheadCandidates: 100,
		LookaheadResponses:  50,
		FallbackPool:        20,
		ShuffleWindow:       50,
		RestartAttempts:     100,
		DeepPenaltyFloor:    -1500,
	}
}

// Selector chooses opponent moves.
type Selector struct {
	index  *vocab.Index
	ranker suggest.IRanker
	rng    Rand
	limits Limits
}

func NewSelector(index *vocab.Index, ranker suggest.IRanker, rng Rand, limits Limits) *Selector {
	if rng == nil {
		rng = NewRand(0)
	}
	return &Selector{index: index, ranker: ranker, rng: rng, limits: limits}
}

// Select picks a move for prefix. It reports false only when no unused word
// starts with prefix. used, exhausted and solved are never modified.
func (s *Selector) Select(prefix string, used, exhausted, solved wordset.View, turnsSinceHeartLoss int) (suggest.Candidate, bool) {
	candidates := s.ranker.RankForMove(prefix, used, solved)
	if len(candidates) == 0 {
		return suggest.Candidate{}, false
	}

	viable := s.Viable(candidates, used, exhausted, turnsSinceHeartLoss)
	pool := viable
	if len(pool) == 0 {
		pool = candidates[:min(len(candidates), s.limits.FallbackPool)]
		log.Debugf("No candidate for %q passed lookahead, falling back to %d by score", prefix, len(pool))
	}
	if len(pool) == 0 {
		return candidates[0], true
	}

	pool = s.shuffleGroups(pool)
	return pool[0], true
}

// Viable returns the top candidates, in order, that leave the player a
// prefix with at least one answer the opponent can continue from.
func (s *Selector) Viable(candidates []suggest.Candidate, used, exhausted wordset.View, turnsSinceHeartLoss int) []suggest.Candidate {
	playerLevel := rules.Level(turnsSinceHeartLoss + 1)
	nextLevel := rules.Level(turnsSinceHeartLoss + 2)

	var viable []suggest.Candidate
	for _, c := range candidates[:min(len(candidates), s.limits.LookaheadCandidates)] {
		if c.Score < s.limits.DeepPenaltyFloor {
			continue
		}
		if s.survives(c.Word, used, exhausted, playerLevel, nextLevel) {
			viable = append(viable, c)
		}
	}
	return viable
}

// survives plays word on an overlay of used and checks one player reply and
// one opponent reply.
func (s *Selector) survives(word string, used, exhausted wordset.View, playerLevel, nextLevel int) bool {
	afterMove := wordset.With(used, word)
	playerPrefix, ok := rules.RequiredPrefix(s.index, word, playerLevel, afterMove, exhausted)
	if !ok {
		return false
	}

	checked := 0
	for _, reply := range s.index.WithPrefix(playerPrefix) {
		if afterMove.Contains(reply) {
			continue
		}
		if _, ok := rules.RequiredPrefix(s.index, reply, nextLevel, wordset.With(afterMove, reply), exhausted); ok {
			return true
		}
		checked++
		if checked >= s.limits.LookaheadResponses {
			break
		}
	}
	return false
}

// shuffleGroups shuffles, within each run of candidates handing over the same
// number of continuations, the first ShuffleWindow entries.
func (s *Selector) shuffleGroups(pool []suggest.Candidate) []suggest.Candidate {
	out := make([]suggest.Candidate, len(pool))
	copy(out, pool)

	for start := 0; start < len(out); {
		end := start + 1
		for end < len(out) && out[end].ContinuationCount == out[start].ContinuationCount {
			end++
		}
		window := out[start:min(end, start+max(s.limits.ShuffleWindow, 1))]
		s.rng.Shuffle(len(window), func(i, j int) {
			window[i], window[j] = window[j], window[i]
		})
		start = end
	}
	return out
}

// Restart samples a fresh opening word, preferring one whose level 1
// continuation still has an unused word. It gives up after RestartAttempts samples.
func (s *Selector) Restart(used, exhausted wordset.View) (string, bool) {
	n := s.index.Len()
	if n == 0 {
		return "", false
	}

	fallback := ""
	for i, attempts := 0, max(s.limits.RestartAttempts, 1); i < attempts; i++ {
		w := s.index.At(s.rng.Intn(n))
		if used != nil && used.Contains(w) {
			continue
		}
		if _, ok := rules.RequiredPrefix(s.index, w, 1, wordset.With(used, w), exhausted); ok {
			return w, true
		}
		if fallback == "" {
			fallback = w
		}
	}
	if fallback != "" {
		return fallback, true
	}
	log.Warnf("No unused word found after %d restart attempts", s.limits.RestartAttempts)
	return "", false
}
