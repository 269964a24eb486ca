package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// Stream names used in LoadError.
const (
	StreamWords    = "words"
	StreamPatterns = "patterns"
)

// maxLineSize bounds a single input line. Word lists with definitions after ':'
// can carry long lines.
const maxLineSize = 1024 * 1024

// LoadError reports a stream that could not be opened or read.
// The engine keeps its previous database when it sees one.
type LoadError struct {
	Stream string
	Path   string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("load %s (%s): %v", e.Stream, e.Path, e.Err)
	}
	return fmt.Sprintf("load %s: %v", e.Stream, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Database is the cleaned content of both input streams.
type Database struct {
	Words    []string
	Patterns []string
}

// LoaderStats provides statistics about the last load
type LoaderStats struct {
	Words    int
	Patterns int
	Skipped  int
	Took     time.Duration
}

// CleanLine turns one raw input line into a lowercase a-z word.
// Lines starting with '-' or '#' are comments, anything after ':' is dropped.
// Returns "" when nothing is left.
func CleanLine(line string) string {
	if line == "" || line[0] == '-' || line[0] == '#' {
		return ""
	}
	if i := strings.IndexByte(line, ':'); i >= 0 {
		line = line[:i]
	}
	var b strings.Builder
	b.Grow(len(line))
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c >= 'a' && c <= 'z':
			b.WriteByte(c)
		case c >= 'A' && c <= 'Z':
			b.WriteByte(c + 'a' - 'A')
		}
	}
	return b.String()
}

// ReadWords reads and cleans every line of r.
// The second value is the number of lines that cleaned to nothing.
func ReadWords(r io.Reader) ([]string, int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	words := make([]string, 0, 1024)
	skipped := 0
	for scanner.Scan() {
		w := CleanLine(scanner.Text())
		if w == "" {
			skipped++
			continue
		}
		words = append(words, w)
	}
	if err := scanner.Err(); err != nil {
		return nil, skipped, err
	}
	return words, skipped, nil
}

// ReadPatterns reads the pattern list. Cleaning is the same as for words;
// length and blacklist filtering happen when the pattern table is built.
func ReadPatterns(r io.Reader) ([]string, int, error) {
	return ReadWords(r)
}

// Load reads both streams concurrently. Either stream failing fails the whole load.
func Load(words, patterns io.Reader) (*Database, LoaderStats, error) {
	start := time.Now()
	var stats LoaderStats
	if words == nil {
		return nil, stats, &LoadError{Stream: StreamWords, Err: os.ErrInvalid}
	}
	if patterns == nil {
		return nil, stats, &LoadError{Stream: StreamPatterns, Err: os.ErrInvalid}
	}

	db := &Database{}
	var wordSkips, patternSkips int

	var g errgroup.Group
	g.Go(func() error {
		w, skipped, err := ReadWords(words)
		if err != nil {
			return &LoadError{Stream: StreamWords, Err: err}
		}
		db.Words, wordSkips = w, skipped
		return nil
	})
	g.Go(func() error {
		p, skipped, err := ReadPatterns(patterns)
		if err != nil {
			return &LoadError{Stream: StreamPatterns, Err: err}
		}
		db.Patterns, patternSkips = p, skipped
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, stats, err
	}

	stats = LoaderStats{
		Words:    len(db.Words),
		Patterns: len(db.Patterns),
		Skipped:  wordSkips + patternSkips,
		Took:     time.Since(start),
	}
	log.Debugf("Read %d words and %d patterns (%d lines skipped) in %v",
		stats.Words, stats.Patterns, stats.Skipped, stats.Took)
	return db, stats, nil
}

// Files holds the two opened input files.
type Files struct {
	Words    *os.File
	Patterns *os.File
}

// Close closes both files.
func (f *Files) Close() error {
	var firstErr error
	for _, file := range []*os.File{f.Words, f.Patterns} {
		if file == nil {
			continue
		}
		if err := file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// OpenFiles validates and opens the word list and the pattern list.
func OpenFiles(wordsPath, patternsPath string) (*Files, error) {
	if err := ValidateTextFile(wordsPath); err != nil {
		return nil, &LoadError{Stream: StreamWords, Path: wordsPath, Err: err}
	}
	if err := ValidateTextFile(patternsPath); err != nil {
		return nil, &LoadError{Stream: StreamPatterns, Path: patternsPath, Err: err}
	}

	w, err := os.Open(wordsPath)
	if err != nil {
		return nil, &LoadError{Stream: StreamWords, Path: wordsPath, Err: err}
	}
	p, err := os.Open(patternsPath)
	if err != nil {
		w.Close()
		return nil, &LoadError{Stream: StreamPatterns, Path: patternsPath, Err: err}
	}
	return &Files{Words: w, Patterns: p}, nil
}
