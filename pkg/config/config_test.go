package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bastiangx/wordchain/pkg/score"
	"github.com/matryer/is"
)

func TestInitConfigCreatesDefaults(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	config, err := InitConfig(path)
	is.NoErr(err)
	is.Equal(config, DefaultConfig())
	_, err = os.Stat(path)
	is.NoErr(err)

	// the written file reads back the same
	loaded, err := LoadConfig(path)
	is.NoErr(err)
	is.Equal(loaded, DefaultConfig())
}

func TestLoadConfigKeepsDefaultsForMissingKeys(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	err := os.WriteFile(path, []byte(`
[game]
starting_hearts = 3
seed = 7

[engine]
lookahead_candidates = 10

[weights.word]
length_steps = [6, 8]
`), 0o644)
	is.NoErr(err)

	config, err := LoadConfig(path)
	is.NoErr(err)
	is.Equal(config.Game.StartingHearts, 3)
	is.Equal(config.Game.Seed, int64(7))
	is.Equal(config.Game.PointsForHeart, 5)
	is.Equal(config.Engine.LookaheadCandidates, 10)
	is.Equal(config.Engine.LookaheadResponses, 50)
	is.Equal(config.Weights.Word.LengthSteps, []int{6, 8})
	is.Equal(config.Weights.Move, score.DefaultMoveWeights())
}

func TestLoadConfigPartialRecovery(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	err := os.WriteFile(path, []byte(`
[game]
starting_hearts = "many"
points_for_heart = 4

[weights.hint]
inverse_count = "high"
prefix_length = 30

[data]
words = "enable.txt"
`), 0o644)
	is.NoErr(err)

	config, err := LoadConfig(path)
	is.NoErr(err)
	is.Equal(config.Game.StartingHearts, 2) // wrong type keeps the default
	is.Equal(config.Game.PointsForHeart, 4)
	is.Equal(config.Weights.Hint.InverseCount, score.DefaultHintWeights().InverseCount)
	is.Equal(config.Weights.Hint.PrefixLength, 30.0)
	is.Equal(config.Data.Words, "enable.txt")
	is.Equal(config.Data.Patterns, "patterns.txt")
}

func TestLoadConfigGarbage(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	is.NoErr(os.WriteFile(path, []byte("[[[ not toml"), 0o644))

	config, err := LoadConfig(path)
	is.NoErr(err)
	is.Equal(config, DefaultConfig())
}

func TestLoadConfigWithPriorityCustomPath(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "custom.toml")
	is.NoErr(os.WriteFile(path, []byte("[cli]\nshow_hints = true\n"), 0o644))

	config, used, err := LoadConfigWithPriority(path)
	is.NoErr(err)
	is.Equal(used, path)
	is.True(config.CLI.ShowHints)
}

func TestUpdate(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	config := DefaultConfig()
	hearts, seed := 4, int64(11)

	is.NoErr(config.Update(path, &hearts, nil, &seed))
	loaded, err := LoadConfig(path)
	is.NoErr(err)
	is.Equal(loaded.Game.StartingHearts, 4)
	is.Equal(loaded.Game.Seed, int64(11))
	is.Equal(loaded.Game.PointsForHeart, 5)
}
