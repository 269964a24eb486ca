package score

import (
	"testing"

	"github.com/matryer/is"
)

func TestPrefixObscurity(t *testing.T) {
	is := is.New(t)

	is.Equal(PrefixObscurity("ab", nil), 0)
	is.Equal(PrefixObscurity("abc", nil), 10)
	// rare letters add 15 each
	is.Equal(PrefixObscurity("qz", nil), 30)
	// avg solution length 7 adds (7-5)*2
	is.Equal(PrefixObscurity("ab", []string{"abcdefg", "abdefgh"}), 4)
	// consonant run of 3: (3-2)*10 + 3*8
	is.Equal(PrefixObscurity("str", nil), 34)
}

func TestWordObscurityMonotonicInLength(t *testing.T) {
	is := is.New(t)
	w := DefaultWordWeights()
	// letters repeat the same way, only the length thresholds differ
	short := WordObscurity("abcdef", w)
	long := WordObscurity("abcdefghilmn", w)
	is.True(long > short)
}

func TestWordObscurityRareLetters(t *testing.T) {
	is := is.New(t)
	w := DefaultWordWeights()
	is.True(WordObscurity("jaz", w) > WordObscurity("tan", w))
	is.True(WordObscurity("vat", w) > WordObscurity("tan", w))
	is.True(WordObscurity("jaz", w) > WordObscurity("vaw", w))
}

func TestWordObscurityRepeats(t *testing.T) {
	is := is.New(t)
	w := DefaultWordWeights()
	plain := WordObscurity("abcd", w)
	doubled := WordObscurity("abbd", w)
	is.True(doubled > plain)

	// "banana" repeats letters and n-grams and has low diversity
	is.True(WordObscurity("banana", w) > WordObscurity("bandit", w))
	is.Equal(WordObscurity("", w), 0.0)
}

func TestWordObscurityZeroWeights(t *testing.T) {
	is := is.New(t)
	is.Equal(WordObscurity("quixotically", WordWeights{}), 0.0)
}
