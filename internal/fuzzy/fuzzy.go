// Package fuzzy ranks dictionary words by how closely they match a mistyped one.
package fuzzy

import (
	"sort"
)

// Constants for scoring
const (
	firstCharMatchBonus            = 15
	adjacentMatchBonus             = 10
	unmatchedLeadingCharPenalty    = -3
	maxUnmatchedLeadingCharPenalty = -9
	lengthDiffPenalty              = 2
)

// Match is a candidate with its score.
type Match struct {
	Word           string
	Score          int
	MatchedIndexes []int
}

// Matcher scores input against a fixed candidate list.
type Matcher struct {
	words []string
}

// NewMatcher creates a matcher over lowercase words.
func NewMatcher(words []string) *Matcher {
	return &Matcher{words: words}
}

// Suggest returns up to n candidates that contain the letters of input in
// order, best first. An exact match is returned alone.
func (m *Matcher) Suggest(input string, n int) []string {
	if len(input) < 2 || n <= 0 {
		return nil
	}
	for _, w := range m.words {
		if w == input {
			return []string{w}
		}
	}

	matches := m.findMatches(input)
	for i := range matches {
		matches[i].Score -= abs(len(matches[i].Word)-len(input)) * lengthDiffPenalty
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Word < matches[j].Word
	})

	out := make([]string, 0, min(n, len(matches)))
	for _, match := range matches[:min(n, len(matches))] {
		out = append(out, match.Word)
	}
	return out
}

// findMatches keeps the candidates sharing the first letter of pattern that
// contain every pattern letter in order.
func (m *Matcher) findMatches(pattern string) []Match {
	var matches []Match
	for _, candidate := range m.words {
		if candidate == "" || candidate[0] != pattern[0] {
			continue
		}
		match := Match{Word: candidate, MatchedIndexes: make([]int, 0, len(pattern))}
		if runMatch(pattern, candidate, &match) {
			match.Score += len(match.MatchedIndexes) - len(candidate)
			matches = append(matches, match)
		}
	}
	return matches
}

// runMatch walks candidate once and commits each pattern letter at its best
// scoring position within a run of that letter.
func runMatch(pattern, candidate string, match *Match) bool {
	var currAdjacentBonus int
	lastIndex := -1
	patternIndex := 0
	bestScore := -1
	matchedIndex := -1

	for i := 0; i < len(candidate); i++ {
		if candidate[i] == pattern[patternIndex] {
			score := 0
			if i == 0 {
				score += firstCharMatchBonus
			}
			if n := len(match.MatchedIndexes); n > 0 {
				bonus := 0
				if lastIndex == match.MatchedIndexes[n-1] {
					bonus = currAdjacentBonus*2 + adjacentMatchBonus
					currAdjacentBonus = bonus
				} else {
					currAdjacentBonus = 0
				}
				score += bonus
			}
			if score > bestScore {
				bestScore = score
				matchedIndex = i
			}

			var nextPattern, nextCandidate byte
			if patternIndex < len(pattern)-1 {
				nextPattern = pattern[patternIndex+1]
			}
			if i < len(candidate)-1 {
				nextCandidate = candidate[i+1]
			}
			// a repeat of the letter right after may still score better
			repeat := nextCandidate == pattern[patternIndex] && nextPattern != nextCandidate
			if !repeat && matchedIndex > -1 {
				if len(match.MatchedIndexes) == 0 {
					bestScore += max(matchedIndex*unmatchedLeadingCharPenalty, maxUnmatchedLeadingCharPenalty)
				}
				match.Score += bestScore
				match.MatchedIndexes = append(match.MatchedIndexes, matchedIndex)
				bestScore = -1
				patternIndex++
			}
		}

		lastIndex = i
		if patternIndex >= len(pattern) {
			return true
		}
	}
	return patternIndex >= len(pattern)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
