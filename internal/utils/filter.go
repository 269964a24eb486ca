package utils

import (
	"strings"
	"unicode"
)

// CommandPrefix starts every console command.
const CommandPrefix = "!"

// IsCommand reports whether a console line is a command such as "!hint".
func IsCommand(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), CommandPrefix)
}

// ParseCommand returns the lowercase command name without its prefix.
func ParseCommand(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, CommandPrefix)
	if i := strings.IndexFunc(s, unicode.IsSpace); i >= 0 {
		s = s[:i]
	}
	return strings.ToLower(s)
}

// NormalizeWord lowercases s and drops everything but ASCII letters.
func NormalizeWord(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + 'a' - 'A')
		}
	}
	return b.String()
}

// ContainsNumbers checks if a string contains any numeric digits
func ContainsNumbers(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// IsValidInput checks if a console line can be a word.
// Returns false for empty lines, lines with digits and repetitive strings.
func IsValidInput(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return false
	}
	if ContainsNumbers(s) {
		return false
	}
	if IsRepetitive(s) {
		return false
	}
	return NormalizeWord(s) != ""
}

// IsRepetitive checks if a string consists of repetitive characters
// such as "aaa" or "bbbb".
func IsRepetitive(s string) bool {
	if len(s) <= 2 {
		return false
	}
	firstChar := s[0]
	for i := 1; i < len(s); i++ {
		if s[i] != firstChar {
			return false
		}
	}
	return true
}

// CompleteWithPrefix prepends prefix to word unless word already starts with it.
func CompleteWithPrefix(prefix, word string) string {
	if strings.HasPrefix(word, prefix) {
		return word
	}
	return prefix + word
}
