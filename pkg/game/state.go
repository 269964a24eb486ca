package game

import (
	"slices"

	"github.com/bastiangx/wordchain/pkg/suggest"
	"github.com/bastiangx/wordchain/pkg/wordset"
	"github.com/bits-and-blooms/bitset"
)

const alphabet = 26

// Side is a player of the game.
type Side int

const (
	Player Side = iota
	Opponent
)

func (s Side) String() string {
	if s == Opponent {
		return "opponent"
	}
	return "player"
}

// Outcome is the result of a game.
type Outcome int

const (
	InProgress Outcome = iota
	PlayerWins
	OpponentWins
)

func (o Outcome) String() string {
	switch o {
	case PlayerWins:
		return "player_wins"
	case OpponentWins:
		return "opponent_wins"
	default:
		return "in_progress"
	}
}

// Hint is one suggested answer shown to the player.
type Hint struct {
	Word                      string
	ContinuationPrefix        string
	ContinuationSolutionCount int
}

// Turn records one move, or one lost heart, in the game history.
type Turn struct {
	Side Side
	Word string
	// Prefix is the required prefix the side faced, empty for restarts.
	Prefix            string
	Hints             []string
	TopHint           bool
	Continuation      string
	ContinuationCount int
	Restart           bool
	HeartLost         bool
	Surrendered       bool
}

// Snapshot is a copy of the observable game state.
type Snapshot struct {
	Chain               []string
	Hearts              int
	Points              int
	Turns               int
	TurnsSinceHeartLoss int
	Difficulty          int
	RequiredPrefix      string
	ToMove              Side
	Outcome             Outcome
	LettersUsed         int
	Hints               []Hint
}

// State is the per-session game state. It is owned by an Engine.
type State struct {
	chain               []string
	used                *wordset.Set
	exhausted           *wordset.Set
	solved              *wordset.Set
	hearts              int
	points              int
	turns               int
	turnsSinceHeartLoss int
	letters             *bitset.BitSet
	prefix              string
	hints               []suggest.Candidate
	outcome             Outcome
	toMove              Side
	history             []Turn
}

func newState(startingHearts int) *State {
	return &State{
		used:      wordset.New(),
		exhausted: wordset.New(),
		solved:    wordset.New(),
		hearts:    startingHearts,
		letters:   bitset.New(alphabet),
		toMove:    Opponent,
	}
}

func (s *State) started() bool {
	return len(s.chain) > 0
}

func (s *State) last() string {
	if len(s.chain) == 0 {
		return ""
	}
	return s.chain[len(s.chain)-1]
}

// record appends a played word and advances the turn counters.
func (s *State) record(word string) {
	s.used.Add(word)
	s.chain = append(s.chain, word)
	s.turns++
	s.turnsSinceHeartLoss++
}

// markLetter tracks the first letter of word. It reports whether all 26
// letters are now covered, in which case a heart is awarded while the game is
// still alive and the tracker starts over.
func (s *State) markLetter(word string) bool {
	if word == "" {
		return false
	}
	if c := word[0]; c >= 'a' && c <= 'z' {
		s.letters.Set(uint(c - 'a'))
	}
	if s.letters.Count() == alphabet && s.hearts > 0 {
		s.hearts++
		s.letters.ClearAll()
		return true
	}
	return false
}

// awardPoint adds a point and converts a full set of points into a heart.
func (s *State) awardPoint(pointsForHeart int) bool {
	s.points++
	if s.points >= pointsForHeart {
		s.hearts++
		s.points = 0
		return true
	}
	return false
}

// loseHeart applies the heart loss penalties.
func (s *State) loseHeart() {
	s.hearts = max(s.hearts-1, 0)
	s.points = 0
	s.turnsSinceHeartLoss = 0
}

func (s *State) hintWords() []string {
	words := make([]string, len(s.hints))
	for i, h := range s.hints {
		words[i] = h.Word
	}
	return words
}

func (s *State) isHint(word string) bool {
	return slices.Contains(s.hintWords(), word)
}
