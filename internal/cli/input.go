// Package cli runs a word chain game on the console against the opponent.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bastiangx/wordchain/internal/fuzzy"
	"github.com/bastiangx/wordchain/internal/utils"
	"github.com/bastiangx/wordchain/pkg/config"
	"github.com/bastiangx/wordchain/pkg/game"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const maxCorrections = 3

var (
	heartStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#b4637a", Dark: "#eb6f92"})
	pointStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#ea9d34", Dark: "#f6c177"})
	prefixStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#286983", Dark: "#9ccfd8"})
	wordStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#56949f", Dark: "#31748f"})
)

// GameHandler reads the player's words line by line and plays the opponent
// between them.
type GameHandler struct {
	engine  *game.Engine
	scanner *bufio.Scanner
	out     *log.Logger
	opts    config.CliConfig
}

// NewGameHandler creates a console game on a loaded engine.
func NewGameHandler(engine *game.Engine, in io.Reader, out io.Writer, opts config.CliConfig) *GameHandler {
	return &GameHandler{
		engine:  engine,
		scanner: bufio.NewScanner(in),
		out: log.NewWithOptions(out, log.Options{
			ReportTimestamp: false,
			Level:           log.InfoLevel,
		}),
		opts: opts,
	}
}

// Start plays one game until it ends, the input ends or the player quits.
func (h *GameHandler) Start() error {
	h.out.Print("Word chain: answer with a word starting with the shown letters")
	h.out.Print("commands: !hint, !skip (costs a heart), !quit")

	word, err := h.engine.Start()
	if err != nil {
		return fmt.Errorf("no opening word: %w", err)
	}
	h.out.Printf("Opponent opens with %s", wordStyle.Render(word))

	for h.engine.Outcome() == game.InProgress {
		if h.engine.Snapshot().ToMove == game.Opponent {
			h.opponentTurn()
			continue
		}

		h.printStatus()
		if !h.scanner.Scan() {
			if err := h.scanner.Err(); err != nil {
				return err
			}
			break
		}
		if quit := h.handleInput(strings.TrimSpace(h.scanner.Text())); quit {
			break
		}
	}

	h.printSummary()
	return nil
}

func (h *GameHandler) opponentTurn() {
	word, err := h.engine.OpponentMove()
	if errors.Is(err, game.ErrNoViableMove) {
		h.out.Print("Opponent has no word left")
		return
	}
	if err != nil {
		h.out.Errorf("Opponent move failed: %v", err)
		return
	}
	h.out.Printf("Opponent plays %s", wordStyle.Render(word))
}

func (h *GameHandler) printStatus() {
	snap := h.engine.Snapshot()
	h.out.Printf("%s  %s  difficulty %d",
		heartStyle.Render(strings.Repeat("♥", snap.Hearts)),
		pointStyle.Render(fmt.Sprintf("%d pts", snap.Points)),
		snap.Difficulty)
	if h.opts.ShowHints {
		h.printHints()
	}
	h.out.Printf("%s...", prefixStyle.Render(snap.RequiredPrefix))
}

func (h *GameHandler) printHints() {
	hints := h.engine.TopHints(0)
	if len(hints) == 0 {
		h.out.Print("No hints for this prefix")
		return
	}
	for i, hint := range hints {
		h.out.Printf("%2d. %-20s leaves %q (%d answers)",
			i+1, wordStyle.Render(hint.Word), hint.ContinuationPrefix, hint.ContinuationSolutionCount)
	}
}

// handleInput processes one line and reports whether the player quit.
func (h *GameHandler) handleInput(line string) bool {
	if line == "" {
		return false
	}
	if utils.IsCommand(line) {
		switch utils.ParseCommand(line) {
		case "hint":
			h.printHints()
		case "skip":
			if err := h.engine.LoseHeart(); err != nil {
				h.out.Errorf("Skip failed: %v", err)
			} else {
				h.out.Print("Skipped, one heart lost")
			}
		case "quit":
			return true
		default:
			h.out.Warnf("Unknown command %q", line)
		}
		return false
	}

	if !utils.IsValidInput(line) {
		h.out.Warnf("%q is not a word", line)
		return false
	}
	word := utils.NormalizeWord(line)
	if h.opts.AutoPrefix {
		word = utils.CompleteWithPrefix(h.engine.CurrentRequiredPrefix(), word)
	}

	turn, err := h.engine.SubmitPlayerWord(word)
	switch {
	case errors.Is(err, game.ErrInvalidWord):
		h.out.Warnf("%s is not in the dictionary", word)
		h.suggestCorrections(word)
	case errors.Is(err, game.ErrWordAlreadyUsed):
		h.out.Warnf("%s was already played", word)
	case errors.Is(err, game.ErrPrefixMismatch):
		h.out.Warnf("%s does not start with %s", word, h.engine.CurrentRequiredPrefix())
	case err != nil:
		h.out.Errorf("Submit failed: %v", err)
	default:
		if turn.TopHint {
			h.out.Print(pointStyle.Render("Top hint! +1 point"))
		}
		log.Debug("Player turn", "word", turn.Word, "continuation", turn.Continuation, "count", turn.ContinuationCount)
	}
	return false
}

// suggestCorrections lists unused answers for the current prefix that look
// like word.
func (h *GameHandler) suggestCorrections(word string) {
	answers := h.engine.Answers(h.engine.CurrentRequiredPrefix(), 0)
	if similar := fuzzy.NewMatcher(answers).Suggest(word, maxCorrections); len(similar) > 0 {
		h.out.Printf("did you mean: %s?", strings.Join(similar, ", "))
	}
}

// TopSolves returns the player's words whose continuation left between 1 and
// limit answers.
func TopSolves(history []game.Turn, limit int) []game.Turn {
	var picks []game.Turn
	for _, t := range history {
		if t.Side != game.Player || t.HeartLost {
			continue
		}
		if t.ContinuationCount >= 1 && t.ContinuationCount <= limit {
			picks = append(picks, t)
		}
	}
	return picks
}

func (h *GameHandler) printSummary() {
	switch h.engine.Outcome() {
	case game.PlayerWins:
		h.out.Print("Player wins!")
	case game.OpponentWins:
		h.out.Print("Opponent wins")
	default:
		h.out.Print("Game stopped")
	}

	chain := h.engine.Chain()
	h.out.Printf("Chain (%d words): %s", len(chain), strings.Join(chain, " > "))

	picks := TopSolves(h.engine.History(), h.opts.TopSolveLimit)
	if len(picks) == 0 {
		return
	}
	h.out.Print("Best plays:")
	for _, t := range picks {
		h.out.Printf("  %s left %q with %d answers", wordStyle.Render(t.Word), t.Continuation, t.ContinuationCount)
	}
}
