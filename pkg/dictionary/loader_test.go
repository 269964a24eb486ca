package dictionary

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk gone")
}

func TestCleanLine(t *testing.T) {
	is := is.New(t)
	cases := map[string]string{
		"Apple":            "apple",
		"  dog  ":          "dog",
		"don't":            "dont",
		"cat: a small pet": "cat",
		"-comment":         "",
		"#comment":         "",
		"":                 "",
		"123":              "",
		"Über":             "ber",
		"ice-cream":        "icecream",
	}
	for in, want := range cases {
		is.Equal(CleanLine(in), want) // CleanLine(in)
	}
}

func TestReadWords(t *testing.T) {
	is := is.New(t)
	src := "Apple\n# header\n\nbanana: fruit\n-skip\nCherry\n"
	words, skipped, err := ReadWords(strings.NewReader(src))
	is.NoErr(err)
	is.Equal(words, []string{"apple", "banana", "cherry"})
	is.Equal(skipped, 3)
}

func TestLoad(t *testing.T) {
	is := is.New(t)
	db, stats, err := Load(strings.NewReader("dog\ngoat\n"), strings.NewReader("oat\n"))
	is.NoErr(err)
	is.Equal(db.Words, []string{"dog", "goat"})
	is.Equal(db.Patterns, []string{"oat"})
	is.Equal(stats.Words, 2)
	is.Equal(stats.Patterns, 1)
}

func TestLoadFailingStream(t *testing.T) {
	is := is.New(t)
	_, _, err := Load(strings.NewReader("dog\n"), failingReader{})
	is.True(err != nil)

	var le *LoadError
	is.True(errors.As(err, &le))
	is.Equal(le.Stream, StreamPatterns)

	_, _, err = Load(nil, strings.NewReader(""))
	is.True(errors.As(err, &le))
	is.Equal(le.Stream, StreamWords)
}

func TestOpenFiles(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	words := filepath.Join(dir, "words.txt")
	patterns := filepath.Join(dir, "patterns.txt")
	is.NoErr(os.WriteFile(words, []byte("dog\ngoat\n"), 0o644))
	is.NoErr(os.WriteFile(patterns, []byte("og\n"), 0o644))

	files, err := OpenFiles(words, patterns)
	is.NoErr(err)
	defer files.Close()

	db, _, err := Load(files.Words, files.Patterns)
	is.NoErr(err)
	is.Equal(len(db.Words), 2)

	_, err = OpenFiles(filepath.Join(dir, "missing.txt"), patterns)
	var le *LoadError
	is.True(errors.As(err, &le))
	is.Equal(le.Stream, StreamWords)
}

func TestDetectFileFormat(t *testing.T) {
	is := is.New(t)
	is.Equal(DetectFileFormat("words.txt"), FormatText)
	is.Equal(DetectFileFormat("words"), FormatText)
	is.Equal(DetectFileFormat("words.DIC"), FormatList)
	is.Equal(DetectFileFormat("words.bin"), FormatUnknown)
}
