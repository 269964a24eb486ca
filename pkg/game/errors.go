package game

import "errors"

// Rejections of a player word. The state is unchanged when one is returned.
var (
	ErrInvalidWord     = errors.New("word is not in the dictionary")
	ErrWordAlreadyUsed = errors.New("word was already used")
	ErrPrefixMismatch  = errors.New("word does not start with the required prefix")
)

var (
	// ErrNoViableMove means the side to move has no word. It ends the game.
	ErrNoViableMove = errors.New("no viable move")
	ErrGameOver     = errors.New("game is over")
	ErrNotLoaded    = errors.New("no dictionary loaded")
	ErrNotStarted   = errors.New("game has not started")
	ErrOutOfTurn    = errors.New("not this side's turn")
)

// IsRejection reports whether err is a recoverable rejection of a player word.
func IsRejection(err error) bool {
	return errors.Is(err, ErrInvalidWord) ||
		errors.Is(err, ErrWordAlreadyUsed) ||
		errors.Is(err, ErrPrefixMismatch)
}
