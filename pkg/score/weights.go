package score

// WordWeights tunes WordObscurity.
type WordWeights struct {
	LengthSteps    []int   `toml:"length_steps"`
	LengthStep     float64 `toml:"length_step"`
	VeryRareLetter float64 `toml:"very_rare_letter"`
	RareLetter     float64 `toml:"rare_letter"`
	RepeatedLetter float64 `toml:"repeated_letter"`
	DoubledLetter  float64 `toml:"doubled_letter"`
	ConsonantRun   float64 `toml:"consonant_run"`
	VowelRun       float64 `toml:"vowel_run"`
	RepeatedNgram  float64 `toml:"repeated_ngram"`
	LowDiversity   float64 `toml:"low_diversity"`
}

// MoveWeights tunes the opponent move ranking.
type MoveWeights struct {
	InverseCount     float64 `toml:"inverse_count"`
	ObscureWord      float64 `toml:"obscure_word"`
	ObscureSuffixLen float64 `toml:"obscure_suffix_len"`
	PrefixLength     float64 `toml:"prefix_length"`
	PatternObscurity float64 `toml:"pattern_obscurity"`
	WordObscurity    float64 `toml:"word_obscurity"`
	WordLength       float64 `toml:"word_length"`
	BlacklistPenalty float64 `toml:"blacklist_penalty"`
	DeadEndPenalty   float64 `toml:"dead_end_penalty"`
	SolvedPenalty    float64 `toml:"solved_penalty"`
}

// HintWeights tunes the player hint ranking.
type HintWeights struct {
	InverseCount      float64 `toml:"inverse_count"`
	SolutionObscurity float64 `toml:"solution_obscurity"`
	LongestSolution   float64 `toml:"longest_solution"`
	PrefixLength      float64 `toml:"prefix_length"`
}

// Weights groups every weight table.
type Weights struct {
	Word WordWeights `toml:"word"`
	Move MoveWeights `toml:"move"`
	Hint HintWeights `toml:"hint"`
}

func DefaultWordWeights() WordWeights {
	return WordWeights{
		LengthSteps:    []int{7, 9, 11, 13},
		LengthStep:     5,
		VeryRareLetter: 12,
		RareLetter:     5,
		RepeatedLetter: 2,
		DoubledLetter:  4,
		ConsonantRun:   3,
		VowelRun:       3,
		RepeatedNgram:  2,
		LowDiversity:   6,
	}
}

func DefaultMoveWeights() MoveWeights {
	return MoveWeights{
		InverseCount:     1000,
		ObscureWord:      500,
		ObscureSuffixLen: 50,
		PrefixLength:     20,
		PatternObscurity: 2,
		WordObscurity:    0.5,
		WordLength:       1,
		BlacklistPenalty: 1000,
		DeadEndPenalty:   2000,
		SolvedPenalty:    500,
	}
}

func DefaultHintWeights() HintWeights {
	return HintWeights{
		InverseCount:      1000,
		SolutionObscurity: 3,
		LongestSolution:   5,
		PrefixLength:      25,
	}
}

// DefaultWeights returns the tuned defaults.
func DefaultWeights() Weights {
	return Weights{
		Word: DefaultWordWeights(),
		Move: DefaultMoveWeights(),
		Hint: DefaultHintWeights(),
	}
}
