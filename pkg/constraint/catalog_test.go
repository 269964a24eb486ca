package constraint

import (
	"testing"

	"github.com/bastiangx/wordchain/pkg/vocab"
	"github.com/matryer/is"
)

func testCatalog(patterns ...string) *Catalog {
	words := []string{
		"dog", "goat", "tiger", "rat", "atlas", "tangent", "entente", "ergo",
		"quartz", "tzar", "zebra", "braking", "kingdom", "domino", "nomad",
	}
	return NewCatalog(vocab.NewIndex(words, 4), patterns)
}

func TestBlacklist(t *testing.T) {
	is := is.New(t)
	is.True(IsBlacklisted("ness"))
	is.True(IsBlacklisted("ing"))
	is.True(!IsBlacklisted("in"))
	is.True(EndsWithBlacklisted("braking"))
	is.True(EndsWithBlacklisted("kindness"))
	is.True(!EndsWithBlacklisted("goat"))
}

func TestIsSelfSolving(t *testing.T) {
	is := is.New(t)
	c := testCatalog()
	// "entente" starts and ends with "ente"
	is.True(c.IsSelfSolving("ente"))
	is.True(!c.IsSelfSolving("ent"))
	is.True(!c.IsSelfSolving("go"))
	is.True(!c.IsSelfSolving("xy"))
	// memoized answer is stable
	is.True(c.IsSelfSolving("ente"))
	is.True(c.IsInadmissible("ing"))
	is.True(c.IsInadmissible("ente"))
	is.True(!c.IsInadmissible("go"))
}

func TestObscureSuffix(t *testing.T) {
	is := is.New(t)
	c := testCatalog()
	is.True(c.IsObscureSuffix("do"))   // domino
	is.True(!c.IsObscureSuffix("d"))   // too short
	is.True(!c.IsObscureSuffix("xyz")) // no matches
	is.Equal(c.ObscureSuffix("nomad"), 0)
	is.Equal(c.ObscureSuffix("tzar"), 4)    // the word itself
	is.Equal(c.ObscureSuffix("kingdom"), 3) // "dom" starts domino
	is.Equal(c.ObscureSuffix("quartz"), 2)  // "tz" starts tzar
}

func TestPatternFor(t *testing.T) {
	is := is.New(t)
	c := testCatalog("at", "oat", "ing", "tz", "abcde", "")
	is.Equal(c.Patterns(), 3) // ing blacklisted, abcde too long, empty dropped

	info, ok := c.Pattern("at")
	is.True(ok)
	is.Equal(info.Solutions, []string{"atlas"})
	is.Equal(info.Endings, []string{"goat", "rat"})
	is.Equal(info.EndingCount, 2)
	is.Equal(info.LongestSolution, 5)

	// goat ends with "at" (one solution) and "oat" (none); fewer solutions wins
	best, ok := c.PatternFor("goat")
	is.True(ok)
	is.Equal(best.Pattern, "oat")

	best, ok = c.PatternFor("quartz")
	is.True(ok)
	is.Equal(best.Pattern, "tz")

	_, ok = c.PatternFor("zebra")
	is.True(!ok)
}
