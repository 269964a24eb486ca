package wordset

import (
	"testing"

	"github.com/matryer/is"
)

func TestSet(t *testing.T) {
	is := is.New(t)
	s := New("goat", "dog")
	is.True(s.Contains("dog"))
	is.True(!s.Contains("cat"))
	is.True(s.Add("gold"))
	is.True(!s.Add("gold"))
	is.Equal(s.Len(), 3)
	is.Equal(s.Words(), []string{"dog", "goat", "gold"})
	is.Equal(s.CountPrefix("go"), 2)
	is.Equal(s.CountPrefix("x"), 0)

	var zero Set
	is.True(zero.Add("a"))
	is.True(zero.Contains("a"))
}

func TestFingerprint(t *testing.T) {
	is := is.New(t)
	a := New("dog", "goat", "tiger")
	b := New("tiger", "dog", "goat")
	is.Equal(a.Fingerprint(), b.Fingerprint())

	a.Add("rat")
	is.True(a.Fingerprint() != b.Fingerprint())
}

func TestOverlay(t *testing.T) {
	is := is.New(t)
	base := New("dog", "goat")
	before := base.Fingerprint()

	o := With(base, "gold", "goat")
	is.True(o.Contains("gold"))
	is.True(o.Contains("dog"))
	is.True(!base.Contains("gold"))
	is.Equal(o.CountPrefix("go"), 2) // goat counted once

	nested := With(o, "golf")
	is.True(nested.Contains("golf"))
	is.True(nested.Contains("gold"))
	is.Equal(nested.CountPrefix("gol"), 2)
	is.True(!o.Contains("golf"))

	is.Equal(base.Fingerprint(), before)
	is.Equal(base.Len(), 2)
}
