// Package score holds the pure obscurity heuristics and the weight tables used
// to rank candidate words.
package score

import "strings"

const (
	rareLetters     = "jqxzvkw"
	veryRareLetters = "jqxz"
	uncommonLetters = "vkwyfb"
	vowels          = "aeiou"
)

func isVowel(c byte) bool {
	return strings.IndexByte(vowels, c) >= 0
}

// PrefixObscurity rates how hard a prefix is to answer. solutions are the
// vocabulary words starting with it.
func PrefixObscurity(prefix string, solutions []string) int {
	score := (len(prefix) - 2) * 10

	for i := 0; i < len(prefix); i++ {
		if strings.IndexByte(rareLetters, prefix[i]) >= 0 {
			score += 15
		}
	}

	if len(solutions) > 0 {
		total := 0
		for _, s := range solutions {
			total += len(s)
		}
		avg := float64(total) / float64(len(solutions))
		score += int((avg - 5) * 2)
	}

	if run := longestRun(prefix, false); run >= 3 {
		score += run * 8
	}
	return score
}

// WordObscurity rates how unusual a word looks.
func WordObscurity(word string, w WordWeights) float64 {
	n := len(word)
	if n == 0 {
		return 0
	}
	score := 0.0

	for _, threshold := range w.LengthSteps {
		if n > threshold {
			score += w.LengthStep
		}
	}

	var counts [26]int
	for i := 0; i < n; i++ {
		c := word[i]
		switch {
		case strings.IndexByte(veryRareLetters, c) >= 0:
			score += w.VeryRareLetter
		case strings.IndexByte(uncommonLetters, c) >= 0:
			score += w.RareLetter
		}
		if c >= 'a' && c <= 'z' {
			counts[c-'a']++
		}
	}

	unique := 0
	for _, c := range counts {
		if c > 0 {
			unique++
		}
		if c > 1 {
			score += float64((c-1)*c/2) * w.RepeatedLetter
		}
	}

	for i := 1; i < n; i++ {
		if word[i] == word[i-1] {
			score += w.DoubledLetter
		}
	}

	if run := longestRun(word, false); run >= 4 {
		score += float64(run) * w.ConsonantRun
	}
	if run := longestRun(word, true); run >= 3 {
		score += float64(run) * w.VowelRun
	}

	for size := 2; size <= 4; size++ {
		seen := make(map[string]int)
		for i := 0; i+size <= n; i++ {
			seen[word[i:i+size]]++
		}
		for _, c := range seen {
			if c > 1 {
				score += float64(size) * w.RepeatedNgram
			}
		}
	}

	if float64(unique)/float64(n) < 0.6 {
		score += w.LowDiversity
	}
	return score
}

// longestRun returns the longest run of vowels (or consonants) in s.
func longestRun(s string, vowel bool) int {
	best, cur := 0, 0
	for i := 0; i < len(s); i++ {
		if isVowel(s[i]) == vowel {
			cur++
			best = max(best, cur)
		} else {
			cur = 0
		}
	}
	return best
}
