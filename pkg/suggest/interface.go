// Package suggest is the core ranker: for a required prefix it enumerates the
// unused words, works out the continuation each one hands over, and orders them
// for the opponent's move search or for player hints.
package suggest

import "github.com/bastiangx/wordchain/pkg/wordset"

// IRanker defines the interface for candidate rankers
type IRanker interface {
	// BestContinuation returns the prefix word would hand to the next player
	BestContinuation(word string, used wordset.View) Continuation

	// RankForMove orders every unused word starting with prefix for move selection
	RankForMove(prefix string, used, solved wordset.View) []Candidate

	// RankForHints returns up to n hints for prefix, n <= 0 means all
	RankForHints(prefix string, n int, used, solved wordset.View) []Candidate

	// Stats returns statistics about the ranker
	Stats() map[string]int
}

var _ IRanker = (*Ranker)(nil)
