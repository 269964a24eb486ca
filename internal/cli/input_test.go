package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bastiangx/wordchain/pkg/config"
	"github.com/bastiangx/wordchain/pkg/game"
	"github.com/matryer/is"
)

func loadedEngine(t *testing.T, words ...string) *game.Engine {
	t.Helper()
	settings := game.DefaultSettings()
	settings.Seed = 1
	e := game.NewEngine(game.WithSettings(settings))
	if err := e.Load(strings.NewReader(strings.Join(words, "\n")), strings.NewReader("")); err != nil {
		t.Fatal(err)
	}
	return e
}

func TestGameWithAutoPrefix(t *testing.T) {
	is := is.New(t)
	e := loadedEngine(t, "cat", "tab")
	var out bytes.Buffer

	// "ab" becomes "tab" after the required "t"
	h := NewGameHandler(e, strings.NewReader("!hint\nzz9\ntb\nab\n"), &out, config.DefaultConfig().CLI)
	is.NoErr(h.Start())

	is.Equal(e.Chain(), []string{"cat", "tab"})
	is.Equal(e.Outcome(), game.PlayerWins)
	is.True(strings.Contains(out.String(), "Player wins!"))
	is.True(strings.Contains(out.String(), "cat > tab"))
	is.True(strings.Contains(out.String(), "did you mean: tab?"))
}

func TestGameSkipAndQuit(t *testing.T) {
	is := is.New(t)
	e := loadedEngine(t, "cat", "tab", "bee", "eel", "lab", "ear", "rub")
	var out bytes.Buffer

	h := NewGameHandler(e, strings.NewReader("!skip\n!bogus\n!quit\nignored\n"), &out, config.DefaultConfig().CLI)
	is.NoErr(h.Start())

	is.Equal(e.Hearts(), 1)
	is.Equal(e.Outcome(), game.InProgress)
	is.True(strings.Contains(out.String(), "Game stopped"))
	is.True(strings.Contains(out.String(), "Unknown command"))
}

func TestTopSolves(t *testing.T) {
	is := is.New(t)
	history := []game.Turn{
		{Side: game.Opponent, Word: "cat", ContinuationCount: 1},
		{Side: game.Player, Word: "tab", ContinuationCount: 3},
		{Side: game.Player, Word: "bee", ContinuationCount: 40},
		{Side: game.Player, Word: "eel", ContinuationCount: 0},
		{Side: game.Player, Prefix: "l", HeartLost: true},
		{Side: game.Player, Word: "lab", ContinuationCount: 10},
	}
	picks := TopSolves(history, 10)
	is.Equal(len(picks), 2)
	is.Equal(picks[0].Word, "tab")
	is.Equal(picks[1].Word, "lab")
}
