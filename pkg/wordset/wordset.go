// Package wordset holds the used-word sets of a game session.
//
// A Set grows monotonically during a session. Lookahead never writes to it:
// hypothetical words are layered on top with an Overlay, so the real set stays
// untouched no matter how the search exits.
package wordset

import (
	"slices"
	"strings"

	"github.com/cespare/xxhash"
)

// View is a read-only word set.
type View interface {
	Contains(word string) bool
	// CountPrefix returns how many members start with prefix.
	CountPrefix(prefix string) int
}

// Set is a mutable word set.
type Set struct {
	words map[string]struct{}
}

// New creates a set holding words.
func New(words ...string) *Set {
	s := &Set{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		s.Add(w)
	}
	return s
}

// Add inserts word and reports whether it was new.
func (s *Set) Add(word string) bool {
	if s.words == nil {
		s.words = make(map[string]struct{})
	}
	if _, ok := s.words[word]; ok {
		return false
	}
	s.words[word] = struct{}{}
	return true
}

func (s *Set) Contains(word string) bool {
	if s == nil {
		return false
	}
	_, ok := s.words[word]
	return ok
}

func (s *Set) CountPrefix(prefix string) int {
	if s == nil {
		return 0
	}
	n := 0
	for w := range s.words {
		if strings.HasPrefix(w, prefix) {
			n++
		}
	}
	return n
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.words)
}

// Words returns the members sorted ascending.
func (s *Set) Words() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.words))
	for w := range s.words {
		out = append(out, w)
	}
	slices.Sort(out)
	return out
}

// Fingerprint hashes the sorted members. Two sets with the same members
// always have the same fingerprint.
func (s *Set) Fingerprint() uint64 {
	h := xxhash.New()
	for _, w := range s.Words() {
		h.Write([]byte(w))
		h.Write([]byte{0})
	}
	return h.Sum64()
}

// Overlay is a base view plus a few hypothetical members.
type Overlay struct {
	base  View
	extra []string
}

// With layers extra words over base. The base is never modified.
func With(base View, extra ...string) *Overlay {
	if o, ok := base.(*Overlay); ok {
		merged := make([]string, 0, len(o.extra)+len(extra))
		merged = append(merged, o.extra...)
		merged = append(merged, extra...)
		return &Overlay{base: o.base, extra: merged}
	}
	return &Overlay{base: base, extra: extra}
}

func (o *Overlay) Contains(word string) bool {
	if slices.Contains(o.extra, word) {
		return true
	}
	return o.base != nil && o.base.Contains(word)
}

func (o *Overlay) CountPrefix(prefix string) int {
	n := 0
	if o.base != nil {
		n = o.base.CountPrefix(prefix)
	}
	for i, w := range o.extra {
		if !strings.HasPrefix(w, prefix) {
			continue
		}
		// extra words already in the base or earlier in extra count once
		if (o.base != nil && o.base.Contains(w)) || slices.Contains(o.extra[:i], w) {
			continue
		}
		n++
	}
	return n
}
