/*
Package server implements msgpack IPC for the word chain engine.

The server reads a stream of msgpack encoded requests from stdin and writes one
msgpack response per request to stdout. Logs never go to stdout.

# IPC

Every request carries an ID that is echoed back, and an op:

	{"id": "1", "op": "load", "words": "words.txt", "patterns": "patterns.txt"}
	{"id": "2", "op": "start"}
	{"id": "3", "op": "hints", "l": 4}
	{"id": "4", "op": "submit", "w": "tiger"}
	{"id": "5", "op": "move"}

Responses share one shape and fill the fields that the op produces:

	{"id": "4", "status": "ok", "w": "tiger", "top": true, "p": "er", "n": 112, "t": 85}
	{"id": "5", "status": "ok", "w": "error", "state": {...}, "t": 1430}

A rejected word answers with status "rejected", a reason and the state
unchanged. Failures answer with status "error", a message and a code.

# Ops

load, reset, start, submit, move, hints, valid, used, lose_heart, surrender,
state, stats and health. The valid and used ops answer in the fields of the
same name. Timing is reported in microseconds.
*/
package server

// Request is one client message.
type Request struct {
	ID    string `msgpack:"id"`
	Op    string `msgpack:"op"`
	Word  string `msgpack:"w,omitempty"`
	Limit int    `msgpack:"l,omitempty"`
	// Words and Patterns are file paths for "load".
	Words    string `msgpack:"words,omitempty"`
	Patterns string `msgpack:"patterns,omitempty"`
	// WordList and PatternList load inline lists instead of files.
	WordList    []string `msgpack:"word_list,omitempty"`
	PatternList []string `msgpack:"pattern_list,omitempty"`
}

// HintSuggestion is one ranked hint.
type HintSuggestion struct {
	Word         string `msgpack:"w"`
	Rank         uint16 `msgpack:"r"`
	Continuation string `msgpack:"p"`
	Count        int    `msgpack:"n"`
}

// GameState mirrors game.Snapshot on the wire.
type GameState struct {
	Chain          []string `msgpack:"chain"`
	Hearts         int      `msgpack:"hearts"`
	Points         int      `msgpack:"points"`
	Turns          int      `msgpack:"turns"`
	Difficulty     int      `msgpack:"difficulty"`
	RequiredPrefix string   `msgpack:"prefix"`
	ToMove         string   `msgpack:"to_move"`
	Outcome        string   `msgpack:"outcome"`
	LettersUsed    int      `msgpack:"letters"`
}

// Response answers one request.
type Response struct {
	ID     string `msgpack:"id"`
	Status string `msgpack:"status"`
	Error  string `msgpack:"error,omitempty"`
	Code   int    `msgpack:"code,omitempty"`
	Reason string `msgpack:"reason,omitempty"`

	Word              string           `msgpack:"w,omitempty"`
	TopHint           bool             `msgpack:"top,omitempty"`
	Continuation      string           `msgpack:"p,omitempty"`
	ContinuationCount int              `msgpack:"n,omitempty"`
	Valid             *bool            `msgpack:"valid,omitempty"`
	Used              *bool            `msgpack:"used,omitempty"`
	Hints             []HintSuggestion `msgpack:"h,omitempty"`
	State             *GameState       `msgpack:"state,omitempty"`
	Stats             map[string]int   `msgpack:"stats,omitempty"`
	TimeTaken         int64            `msgpack:"t"`
}

// Response statuses.
const (
	StatusOK       = "ok"
	StatusReady    = "ready"
	StatusRejected = "rejected"
	StatusError    = "error"
)

// Rejection reasons.
const (
	ReasonInvalidWord    = "invalid_word"
	ReasonAlreadyUsed    = "already_used"
	ReasonPrefixMismatch = "prefix_mismatch"
)
