// Package game runs a word chain session: it owns the loaded dictionary, the
// per-session state and the turn rules, and exposes them as one Engine.
package game

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/bastiangx/wordchain/pkg/constraint"
	"github.com/bastiangx/wordchain/pkg/dictionary"
	"github.com/bastiangx/wordchain/pkg/opponent"
	"github.com/bastiangx/wordchain/pkg/rules"
	"github.com/bastiangx/wordchain/pkg/score"
	"github.com/bastiangx/wordchain/pkg/suggest"
	"github.com/bastiangx/wordchain/pkg/vocab"
	"github.com/charmbracelet/log"
)

// ErrEmptyVocabulary is wrapped in a LoadError when the word stream holds no words.
var ErrEmptyVocabulary = errors.New("word list is empty")

// Settings holds the game rules.
type Settings struct {
	StartingHearts int `toml:"starting_hearts"`
	PointsForHeart int `toml:"points_for_heart"`
	// HintPool is how many top hints count for a point.
	HintPool int `toml:"hint_pool"`
	// HintsShown is how many hints TopHints returns by default.
	HintsShown         int   `toml:"hints_shown"`
	MaxPrefixLen       int   `toml:"max_prefix_len"`
	HintSolutionSample int   `toml:"hint_solution_sample"`
	Seed               int64 `toml:"seed"`
	// VerifyLookahead fingerprints the used set around every opponent search.
	VerifyLookahead bool `toml:"verify_lookahead"`
}

func DefaultSettings() Settings {
	return Settings{
		StartingHearts:     2,
		PointsForHeart:     5,
		HintPool:           8,
		HintsShown:         4,
		MaxPrefixLen:       vocab.DefaultMaxPrefixLen,
		HintSolutionSample: suggest.DefaultHintSolutionSample,
	}
}

// Engine is the command surface of one game. All methods are safe for
// concurrent use and run one at a time.
type Engine struct {
	mu       sync.Mutex
	settings Settings
	weights  score.Weights
	limits   opponent.Limits
	rng      opponent.Rand
	logger   *log.Logger

	// cacheSize bounds the word obscurity cache, 0 keeps the ranker default.
	cacheSize int

	index    *vocab.Index
	catalog  *constraint.Catalog
	ranker   *suggest.Ranker
	selector *opponent.Selector
	state    *State
}

// Option configures an Engine.
type Option func(*Engine)

func WithSettings(s Settings) Option {
	return func(e *Engine) { e.settings = s }
}

func WithWeights(w score.Weights) Option {
	return func(e *Engine) { e.weights = w }
}

func WithLimits(l opponent.Limits) Option {
	return func(e *Engine) { e.limits = l }
}

// WithRand injects the random source used by the opponent.
func WithRand(r opponent.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

func WithCacheSize(n int) Option {
	return func(e *Engine) { e.cacheSize = n }
}

func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		settings: DefaultSettings(),
		weights:  score.DefaultWeights(),
		limits:   opponent.DefaultLimits(),
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = opponent.NewRand(e.settings.Seed)
	}
	e.state = newState(e.settings.StartingHearts)
	return e
}

// Load reads both streams and replaces the dictionary. On failure the engine
// keeps its previous dictionary and session.
func (e *Engine) Load(words, patterns io.Reader) error {
	db, stats, err := dictionary.Load(words, patterns)
	if err != nil {
		return err
	}
	if len(db.Words) == 0 {
		return &dictionary.LoadError{Stream: dictionary.StreamWords, Err: ErrEmptyVocabulary}
	}

	index := vocab.NewIndex(db.Words, e.settings.MaxPrefixLen)
	catalog := constraint.NewCatalog(index, db.Patterns)
	rankerOpts := []suggest.Option{suggest.WithHintSolutionSample(e.settings.HintSolutionSample)}
	if e.cacheSize > 0 {
		rankerOpts = append(rankerOpts, suggest.WithCacheSize(e.cacheSize))
	}
	ranker := suggest.NewRanker(catalog, e.weights, rankerOpts...)
	selector := opponent.NewSelector(index, ranker, e.rng, e.limits)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.index, e.catalog, e.ranker, e.selector = index, catalog, ranker, selector
	e.state = newState(e.settings.StartingHearts)
	e.logger.Debugf("Loaded %d words, %d patterns kept of %d", stats.Words, catalog.Patterns(), stats.Patterns)
	return nil
}

// Loaded reports whether a dictionary is loaded.
func (e *Engine) Loaded() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.index != nil
}

// Reset clears the session and keeps the dictionary.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = newState(e.settings.StartingHearts)
}

func normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// IsValidWord reports whether text is in the dictionary, ignoring case.
func (e *Engine) IsValidWord(text string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.index.Contains(normalize(text))
}

// IsUsed reports whether text was already played this session, ignoring case.
func (e *Engine) IsUsed(text string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.used.Contains(normalize(text))
}

// Start begins a new session with an opening word played by the opponent.
func (e *Engine) Start() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.index == nil {
		return "", ErrNotLoaded
	}

	e.state = newState(e.settings.StartingHearts)
	word, ok := e.selector.Restart(e.state.used, e.state.exhausted)
	if !ok {
		e.state.outcome = PlayerWins
		return "", ErrNoViableMove
	}
	e.playOpponent(word, "", suggest.Candidate{}, true)
	e.logger.Debugf("Opening word %q, player faces %q", word, e.state.prefix)
	return word, nil
}

// checkTurn validates that side may act now.
func (e *Engine) checkTurn(side Side) error {
	switch {
	case e.index == nil:
		return ErrNotLoaded
	case e.state.outcome != InProgress:
		return ErrGameOver
	case !e.state.started():
		return ErrNotStarted
	case e.state.toMove != side:
		return ErrOutOfTurn
	}
	return nil
}

// SubmitPlayerWord plays text for the player. A rejection leaves the state untouched.
func (e *Engine) SubmitPlayerWord(text string) (Turn, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.checkTurn(Player); err != nil {
		return Turn{}, err
	}

	s := e.state
	word := normalize(text)
	switch {
	case !e.index.Contains(word):
		return Turn{}, fmt.Errorf("%w: %q", ErrInvalidWord, text)
	case s.used.Contains(word):
		return Turn{}, fmt.Errorf("%w: %q", ErrWordAlreadyUsed, word)
	case !strings.HasPrefix(word, s.prefix):
		return Turn{}, fmt.Errorf("%w: %q does not start with %q", ErrPrefixMismatch, word, s.prefix)
	}

	turn := Turn{
		Side:    Player,
		Word:    word,
		Prefix:  s.prefix,
		Hints:   s.hintWords(),
		TopHint: s.isHint(word),
	}

	s.record(word)
	s.solved.Add(s.prefix)
	if s.markLetter(word) {
		e.logger.Debug("All 26 letters used, bonus heart", "hearts", s.hearts)
	}
	if turn.TopHint && s.awardPoint(e.settings.PointsForHeart) {
		e.logger.Debug("Points converted into a heart", "hearts", s.hearts)
	}

	cont := e.ranker.BestContinuation(word, s.used)
	turn.Continuation, turn.ContinuationCount = cont.Prefix, cont.Count

	s.history = append(s.history, turn)
	s.toMove = Opponent
	s.prefix = ""
	return turn, nil
}

// OpponentMove plays the opponent's reply to the last word. When no suffix of
// the last word is playable the opponent restarts the chain with a fresh word.
// ErrNoViableMove means the opponent has no word and the player wins.
func (e *Engine) OpponentMove() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.checkTurn(Opponent); err != nil {
		return "", err
	}

	s := e.state
	level := rules.Level(s.turnsSinceHeartLoss)
	prefix, ok := rules.RequiredPrefix(e.index, s.last(), level, s.used, s.exhausted)
	if !ok {
		e.markExhausted(s.last(), level)
		return e.restart()
	}

	var before uint64
	if e.settings.VerifyLookahead {
		before = s.used.Fingerprint()
	}
	move, ok := e.selector.Select(prefix, s.used, s.exhausted, s.solved, s.turnsSinceHeartLoss)
	if e.settings.VerifyLookahead && s.used.Fingerprint() != before {
		e.logger.Errorf("Used set changed during lookahead for prefix %q", prefix)
	}
	if !ok {
		s.outcome = PlayerWins
		return "", ErrNoViableMove
	}

	e.playOpponent(move.Word, prefix, move, false)
	return move.Word, nil
}

// restart has the opponent open a new chain. Caller holds the lock.
func (e *Engine) restart() (string, error) {
	s := e.state
	word, ok := e.selector.Restart(s.used, s.exhausted)
	if !ok {
		s.outcome = PlayerWins
		return "", ErrNoViableMove
	}
	s.turnsSinceHeartLoss = 0
	e.playOpponent(word, "", suggest.Candidate{}, true)
	e.logger.Debugf("Opponent restarted the chain with %q", word)
	return word, nil
}

// playOpponent records an opponent word and prepares the player's turn.
func (e *Engine) playOpponent(word, prefix string, move suggest.Candidate, restart bool) {
	s := e.state
	s.record(word)
	if prefix != "" {
		s.solved.Add(prefix)
	}
	s.markLetter(word)
	s.history = append(s.history, Turn{
		Side:              Opponent,
		Word:              word,
		Prefix:            prefix,
		Continuation:      move.Continuation,
		ContinuationCount: move.ContinuationCount,
		Restart:           restart,
	})
	e.preparePlayer()
}

// preparePlayer derives the player's required prefix and hints from the last
// word. With no playable prefix the opponent wins.
func (e *Engine) preparePlayer() {
	s := e.state
	level := rules.Level(s.turnsSinceHeartLoss)
	prefix, ok := rules.RequiredPrefix(e.index, s.last(), level, s.used, s.exhausted)
	if !ok {
		e.markExhausted(s.last(), level)
		s.prefix, s.hints = "", nil
		s.outcome = OpponentWins
		return
	}
	s.prefix = prefix
	s.hints = e.ranker.RankForHints(prefix, e.settings.HintPool, s.used, s.solved)
	s.toMove = Player
}

// markExhausted memoizes the suffixes of word, up to maxLen letters, that
// have no unused word left.
func (e *Engine) markExhausted(word string, maxLen int) {
	s := e.state
	for l := min(maxLen, len(word)); l >= 1; l-- {
		suffix := word[len(word)-l:]
		if !rules.HasUnused(e.index, suffix, s.used) {
			s.exhausted.Add(suffix)
		}
	}
}

// LoseHeart costs the player a heart for the current prefix, as on a timeout.
// The prefix is not offered again; the player gets a new prefix at the lowest
// difficulty, or a fresh word from the opponent when none is left.
func (e *Engine) LoseHeart() error {
	return e.forfeit(false)
}

// Surrender gives up the current prefix. It costs a heart like LoseHeart.
func (e *Engine) Surrender() error {
	return e.forfeit(true)
}

func (e *Engine) forfeit(surrendered bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.checkTurn(Player); err != nil {
		return err
	}

	s := e.state
	offered := s.prefix
	oldLevel := rules.Level(s.turnsSinceHeartLoss)

	s.loseHeart()
	last := s.last()
	for l := min(oldLevel, len(last)); l >= len(offered); l-- {
		s.exhausted.Add(last[len(last)-l:])
	}
	s.history = append(s.history, Turn{
		Side:        Player,
		Prefix:      offered,
		Hints:       s.hintWords(),
		HeartLost:   true,
		Surrendered: surrendered,
	})
	e.logger.Debug("Heart lost", "prefix", offered, "hearts", s.hearts)

	if s.hearts == 0 {
		s.prefix, s.hints = "", nil
		s.outcome = OpponentWins
		return nil
	}

	if prefix, ok := rules.RequiredPrefix(e.index, last, 1, s.used, s.exhausted); ok {
		s.prefix = prefix
		s.hints = e.ranker.RankForHints(prefix, e.settings.HintPool, s.used, s.solved)
		return nil
	}

	s.toMove = Opponent
	if _, err := e.restart(); err != nil {
		return err
	}
	return nil
}

// CurrentRequiredPrefix returns the prefix the player must start with, or ""
// when it is not the player's turn.
func (e *Engine) CurrentRequiredPrefix() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.prefix
}

// CurrentDifficulty returns the required prefix length, 1 to 4.
func (e *Engine) CurrentDifficulty() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return rules.Level(e.state.turnsSinceHeartLoss)
}

// TopHints returns up to n hints for the current prefix; n <= 0 uses the
// configured number of shown hints.
func (e *Engine) TopHints(n int) []Hint {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.topHints(n)
}

// topHints is TopHints for callers holding the lock.
func (e *Engine) topHints(n int) []Hint {
	if n <= 0 {
		n = e.settings.HintsShown
	}

	s := e.state
	candidates := s.hints
	if n > len(candidates) && len(candidates) == e.settings.HintPool && s.prefix != "" {
		candidates = e.ranker.RankForHints(s.prefix, n, s.used, s.solved)
	}
	candidates = candidates[:min(n, len(candidates))]

	hints := make([]Hint, len(candidates))
	for i, c := range candidates {
		hints[i] = Hint{
			Word:                      c.Word,
			ContinuationPrefix:        c.Continuation,
			ContinuationSolutionCount: c.ContinuationCount,
		}
	}
	return hints
}

// WasTopHint reports whether word is among the hints that earn a point for
// the current prefix, or for the player's last answer once it was played.
func (e *Engine) WasTopHint(word string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	word = normalize(word)
	s := e.state
	if s.toMove == Player {
		return s.isHint(word)
	}
	for i := len(s.history) - 1; i >= 0; i-- {
		if t := s.history[i]; t.Side == Player {
			return slices.Contains(t.Hints, word)
		}
	}
	return false
}

func (e *Engine) Hearts() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.hearts
}

func (e *Engine) Points() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.points
}

// Chain returns a copy of the played words.
func (e *Engine) Chain() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.state.chain)
}

func (e *Engine) Outcome() Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.outcome
}

// History returns a copy of the turn history.
func (e *Engine) History() []Turn {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.state.history)
}

// Snapshot returns a copy of the observable state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := e.state
	snap := Snapshot{
		Chain:               slices.Clone(s.chain),
		Hearts:              s.hearts,
		Points:              s.points,
		Turns:               s.turns,
		TurnsSinceHeartLoss: s.turnsSinceHeartLoss,
		Difficulty:          rules.Level(s.turnsSinceHeartLoss),
		RequiredPrefix:      s.prefix,
		ToMove:              s.toMove,
		Outcome:             s.outcome,
		LettersUsed:         int(s.letters.Count()),
		Hints:               e.topHints(0),
	}
	return snap
}

// Stats returns statistics about the loaded dictionary
func (e *Engine) Stats() map[string]int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ranker == nil {
		return map[string]int{"totalWords": 0}
	}
	return e.ranker.Stats()
}

// Answers returns up to limit unused words starting with prefix, in
// dictionary order. limit <= 0 returns all of them.
func (e *Engine) Answers(prefix string, limit int) []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []string
	for _, w := range e.index.WithPrefix(normalize(prefix)) {
		if e.state.used.Contains(w) {
			continue
		}
		out = append(out, w)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// Used returns the words played this session, sorted.
func (e *Engine) Used() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.used.Words()
}
