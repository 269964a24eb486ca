package rules

import (
	"testing"

	"github.com/bastiangx/wordchain/pkg/vocab"
	"github.com/bastiangx/wordchain/pkg/wordset"
	"github.com/matryer/is"
)

func TestLevel(t *testing.T) {
	is := is.New(t)
	cases := []struct {
		turns, want int
	}{
		{0, 1}, {3, 1}, {4, 2}, {8, 2}, {9, 3}, {15, 3}, {16, 4}, {100, 4},
	}
	for _, c := range cases {
		is.Equal(Level(c.turns), c.want)
	}
}

func TestRequiredPrefix(t *testing.T) {
	is := is.New(t)
	idx := vocab.NewIndex([]string{"dog", "goat", "oat", "tiger", "atom", "gas"}, 4)

	p, ok := RequiredPrefix(idx, "goat", 3, nil, nil)
	is.True(ok)
	is.Equal(p, "oat")

	// once "oat" is used the next longest suffix with words is "at"
	used := wordset.New("oat")
	p, ok = RequiredPrefix(idx, "goat", 3, used, nil)
	is.True(ok)
	is.Equal(p, "at")

	exhausted := wordset.New("at")
	p, ok = RequiredPrefix(idx, "goat", 3, used, exhausted)
	is.True(ok)
	is.Equal(p, "t")

	// level caps the length
	p, ok = RequiredPrefix(idx, "GOAT", 1, nil, nil)
	is.True(ok)
	is.Equal(p, "t")

	_, ok = RequiredPrefix(idx, "buzz", 4, nil, nil)
	is.True(!ok)
}

func TestHasUnusedWithOverlay(t *testing.T) {
	is := is.New(t)
	idx := vocab.NewIndex([]string{"gas", "goat"}, 4)
	used := wordset.New("gas")
	is.True(HasUnused(idx, "g", used))
	is.True(!HasUnused(idx, "g", wordset.With(used, "goat")))
	is.True(!HasUnused(idx, "x", nil))

	w, ok := FirstUnused(idx, "g", used)
	is.True(ok)
	is.Equal(w, "goat")
	is.Equal(used.Len(), 1)
}
