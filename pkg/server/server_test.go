package server

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/bastiangx/wordchain/pkg/game"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

var testWords = []string{"cat", "tab", "bee", "eel", "lab", "ear", "rub"}

// run feeds reqs to a fresh server and returns every response after "ready".
func run(t *testing.T, engine *game.Engine, opts Options, reqs ...Request) []Response {
	t.Helper()
	var in, out bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for _, req := range reqs {
		require.NoError(t, enc.Encode(&req))
	}

	s := NewServer(engine, &in, &out, opts, log.New(io.Discard))
	require.NoError(t, s.Start())

	dec := msgpack.NewDecoder(&out)
	var ready Response
	require.NoError(t, dec.Decode(&ready))
	require.Equal(t, StatusReady, ready.Status)

	var resps []Response
	for {
		var resp Response
		err := dec.Decode(&resp)
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		resps = append(resps, resp)
	}
	require.Len(t, resps, len(reqs))
	return resps
}

func newEngine() *game.Engine {
	settings := game.DefaultSettings()
	settings.Seed = 3
	return game.NewEngine(game.WithSettings(settings), game.WithLogger(log.New(io.Discard)))
}

func TestHealthAndUnknownOp(t *testing.T) {
	resps := run(t, newEngine(), Options{},
		Request{ID: "1", Op: "health"},
		Request{ID: "2", Op: "fly"},
		Request{ID: "3"},
	)
	require.Equal(t, "1", resps[0].ID)
	require.Equal(t, StatusOK, resps[0].Status)
	require.Equal(t, StatusError, resps[1].Status)
	require.Equal(t, 400, resps[1].Code)
	require.Contains(t, resps[1].Error, "fly")
	require.Equal(t, 400, resps[2].Code)
}

func TestNotLoaded(t *testing.T) {
	resps := run(t, newEngine(), Options{}, Request{ID: "1", Op: "start"})
	require.Equal(t, StatusError, resps[0].Status)
	require.Equal(t, 412, resps[0].Code)
}

func TestGameFlow(t *testing.T) {
	engine := newEngine()
	resps := run(t, engine, Options{},
		Request{ID: "load", Op: "load", WordList: testWords},
		Request{ID: "start", Op: "start"},
		Request{ID: "bad", Op: "submit", Word: "zebra"},
		Request{ID: "valid", Op: "valid", Word: "BEE"},
		Request{ID: "hints", Op: "hints", Limit: 100},
		Request{ID: "used", Op: "used", Word: "bee"},
	)

	load := resps[0]
	require.Equal(t, StatusOK, load.Status)
	require.Equal(t, len(testWords), load.Stats["totalWords"])

	start := resps[1]
	require.Equal(t, StatusOK, start.Status)
	require.NotEmpty(t, start.Word)
	require.NotNil(t, start.State)
	require.Equal(t, []string{start.Word}, start.State.Chain)
	require.Equal(t, 2, start.State.Hearts)

	bad := resps[2]
	require.Equal(t, StatusRejected, bad.Status)
	require.Equal(t, ReasonInvalidWord, bad.Reason)
	require.Equal(t, start.State.Chain, bad.State.Chain)

	require.NotNil(t, resps[3].Valid)
	require.True(t, *resps[3].Valid)

	for i, h := range resps[4].Hints {
		require.Equal(t, uint16(i+1), h.Rank)
		require.NotEmpty(t, h.Word)
	}
	require.Equal(t, engine.Chain(), start.State.Chain)

	used := resps[5]
	require.Nil(t, used.Valid)
	require.NotNil(t, used.Used)
	require.Equal(t, start.Word == "bee", *used.Used)
}

func TestUsedAnswersSeparately(t *testing.T) {
	engine := newEngine()
	require.NoError(t, engine.Load(bytes.NewBufferString("cat\ntab\n"), bytes.NewBufferString("")))
	_, err := engine.Start()
	require.NoError(t, err)

	resps := run(t, engine, Options{},
		Request{ID: "1", Op: "used", Word: "cat"},
		Request{ID: "2", Op: "used", Word: "tab"},
		Request{ID: "3", Op: "valid", Word: "tab"},
	)
	require.True(t, *resps[0].Used)
	require.Nil(t, resps[0].Valid)
	require.False(t, *resps[1].Used)
	require.True(t, *resps[2].Valid)
	require.Nil(t, resps[2].Used)
}

func TestSubmitAndMove(t *testing.T) {
	engine := newEngine()
	require.NoError(t, engine.Load(bytes.NewBufferString("cat\ntab\n"), bytes.NewBufferString("")))
	word, err := engine.Start()
	require.NoError(t, err)
	require.Equal(t, "cat", word) // the only word with an answer

	resps := run(t, engine, Options{},
		Request{ID: "1", Op: "submit", Word: "Tab"},
		Request{ID: "2", Op: "submit", Word: "cat"},
		Request{ID: "3", Op: "move"},
		Request{ID: "4", Op: "state"},
	)
	require.Equal(t, StatusOK, resps[0].Status)
	require.Equal(t, "tab", resps[0].Word)
	require.Equal(t, "opponent", resps[0].State.ToMove)

	require.Equal(t, StatusError, resps[1].Status)
	require.Equal(t, 409, resps[1].Code)

	// the opponent has nothing left
	require.Equal(t, StatusOK, resps[2].Status)
	require.NotEmpty(t, resps[2].Error)
	require.Equal(t, "player_wins", resps[2].State.Outcome)
	require.Equal(t, "player_wins", resps[3].State.Outcome)
}

func TestLoseHeartAndSurrender(t *testing.T) {
	resps := run(t, newEngine(), Options{AutoStart: true},
		Request{ID: "1", Op: "load", WordList: testWords},
		Request{ID: "2", Op: "lose_heart"},
		Request{ID: "3", Op: "surrender"},
		Request{ID: "4", Op: "lose_heart"},
	)
	require.NotEmpty(t, resps[0].Word)
	require.Equal(t, 1, resps[1].State.Hearts)
	require.Equal(t, 0, resps[1].State.Points)
	require.Equal(t, 0, resps[2].State.Hearts)
	require.Equal(t, "opponent_wins", resps[2].State.Outcome)
	require.Equal(t, 410, resps[3].Code)
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	words := filepath.Join(dir, "words.txt")
	patterns := filepath.Join(dir, "patterns.txt")
	require.NoError(t, os.WriteFile(words, []byte("# list\ncat\nTab\nbee:noun\n"), 0o644))
	require.NoError(t, os.WriteFile(patterns, []byte("ab\n"), 0o644))

	resolve := func(name string) (string, error) { return filepath.Join(dir, name), nil }
	resps := run(t, newEngine(), Options{Resolve: resolve},
		Request{ID: "1", Op: "load", Words: "words.txt", Patterns: "patterns.txt"},
		Request{ID: "2", Op: "load", Words: "missing.txt", Patterns: "patterns.txt"},
		Request{ID: "3", Op: "load", Words: "words.txt"},
		Request{ID: "4", Op: "valid", Word: "bee"},
	)
	require.Equal(t, StatusOK, resps[0].Status)
	require.Equal(t, 3, resps[0].Stats["totalWords"])
	require.Equal(t, 404, resps[1].Code)
	require.Equal(t, 400, resps[2].Code)
	require.True(t, *resps[3].Valid) // the failed load kept the dictionary
}
