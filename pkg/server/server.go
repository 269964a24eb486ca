package server

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/bastiangx/wordchain/internal/utils"
	"github.com/bastiangx/wordchain/pkg/dictionary"
	"github.com/bastiangx/wordchain/pkg/game"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Options tunes the server.
type Options struct {
	MaxHints  int
	AutoStart bool
	// Resolve maps a requested data file name to a path. Nil uses the name as is.
	Resolve func(name string) (string, error)
}

// Server handles the IPC for one game engine.
type Server struct {
	engine       *game.Engine
	decoder      *msgpack.Decoder
	encoder      *msgpack.Encoder
	opts         Options
	logger       *log.Logger
	requestCount int
}

// NewServer creates a server reading requests from r and writing responses to w.
func NewServer(engine *game.Engine, r io.Reader, w io.Writer, opts Options, logger *log.Logger) *Server {
	if opts.MaxHints <= 0 {
		opts.MaxHints = 16
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		engine:  engine,
		decoder: msgpack.NewDecoder(r),
		encoder: msgpack.NewEncoder(w),
		opts:    opts,
		logger:  logger,
	}
}

// NewStdioServer creates a server on stdin and stdout.
func NewStdioServer(engine *game.Engine, opts Options, logger *log.Logger) *Server {
	return NewServer(engine, os.Stdin, os.Stdout, opts, logger)
}

// Start sends a ready message and serves requests until the input ends.
func (s *Server) Start() error {
	s.logger.Debug("Starting server")
	if err := s.send(Response{Status: StatusReady}); err != nil {
		return err
	}

	for {
		var req Request
		if err := s.decoder.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Debugf("Input closed after %d requests", s.requestCount)
				return nil
			}
			s.logger.Errorf("Decoding request: %v", err)
			return err
		}
		s.requestCount++
		if err := s.send(s.handle(req)); err != nil {
			return err
		}
	}
}

func (s *Server) send(resp Response) error {
	if err := s.encoder.Encode(&resp); err != nil {
		s.logger.Errorf("Encoding response: %v", err)
		return err
	}
	return nil
}

// handle runs one request and times it.
func (s *Server) handle(req Request) Response {
	start := time.Now()
	resp := s.dispatch(req)
	resp.ID = req.ID
	resp.TimeTaken = time.Since(start).Microseconds()
	s.logger.Debug("Handled request", "op", req.Op, "status", resp.Status, "us", resp.TimeTaken)
	return resp
}

func (s *Server) dispatch(req Request) Response {
	switch req.Op {
	case "health":
		return Response{Status: StatusOK}
	case "load":
		return s.handleLoad(req)
	case "reset":
		s.engine.Reset()
		return s.withState(Response{Status: StatusOK})
	case "start":
		word, err := s.engine.Start()
		if err != nil {
			return s.fail(err)
		}
		return s.withState(Response{Status: StatusOK, Word: word})
	case "submit":
		return s.handleSubmit(req)
	case "move":
		word, err := s.engine.OpponentMove()
		if err != nil {
			return s.fail(err)
		}
		return s.withState(Response{Status: StatusOK, Word: word})
	case "hints":
		return s.handleHints(req)
	case "valid":
		valid := s.engine.IsValidWord(req.Word)
		return Response{Status: StatusOK, Word: req.Word, Valid: &valid}
	case "used":
		used := s.engine.IsUsed(req.Word)
		return Response{Status: StatusOK, Word: req.Word, Used: &used}
	case "lose_heart":
		if err := s.engine.LoseHeart(); err != nil {
			return s.fail(err)
		}
		return s.withState(Response{Status: StatusOK})
	case "surrender":
		if err := s.engine.Surrender(); err != nil {
			return s.fail(err)
		}
		return s.withState(Response{Status: StatusOK})
	case "state":
		return s.withState(Response{Status: StatusOK})
	case "stats":
		return Response{Status: StatusOK, Stats: s.engine.Stats()}
	case "":
		return errorResponse("missing 'op'", 400)
	default:
		return errorResponse(fmt.Sprintf("unknown op: %s", req.Op), 400)
	}
}

func (s *Server) handleLoad(req Request) Response {
	if len(req.WordList) > 0 {
		err := s.engine.Load(
			strings.NewReader(strings.Join(req.WordList, "\n")),
			strings.NewReader(strings.Join(req.PatternList, "\n")),
		)
		if err != nil {
			return s.fail(err)
		}
		return s.afterLoad()
	}

	if req.Words == "" || req.Patterns == "" {
		return errorResponse("load needs 'words' and 'patterns'", 400)
	}
	wordsPath, patternsPath := req.Words, req.Patterns
	if s.opts.Resolve != nil {
		var err error
		if wordsPath, err = s.opts.Resolve(wordsPath); err != nil {
			return errorResponse(fmt.Sprintf("words file %s: %v", req.Words, err), 404)
		}
		if patternsPath, err = s.opts.Resolve(patternsPath); err != nil {
			return errorResponse(fmt.Sprintf("patterns file %s: %v", req.Patterns, err), 404)
		}
	}

	files, err := dictionary.OpenFiles(wordsPath, patternsPath)
	if err != nil {
		return s.fail(err)
	}
	defer files.Close()
	if err := s.engine.Load(files.Words, files.Patterns); err != nil {
		return s.fail(err)
	}
	return s.afterLoad()
}

func (s *Server) afterLoad() Response {
	resp := Response{Status: StatusOK, Stats: s.engine.Stats()}
	if s.opts.AutoStart {
		word, err := s.engine.Start()
		if err != nil {
			return s.fail(err)
		}
		resp.Word = word
	}
	return s.withState(resp)
}

func (s *Server) handleSubmit(req Request) Response {
	if req.Word == "" {
		return errorResponse("missing 'w'", 400)
	}
	turn, err := s.engine.SubmitPlayerWord(req.Word)
	if err != nil {
		if reason := rejectionReason(err); reason != "" {
			return s.withState(Response{Status: StatusRejected, Reason: reason, Error: err.Error(), Word: req.Word})
		}
		return s.fail(err)
	}
	return s.withState(Response{
		Status:            StatusOK,
		Word:              turn.Word,
		TopHint:           turn.TopHint,
		Continuation:      turn.Continuation,
		ContinuationCount: turn.ContinuationCount,
	})
}

func (s *Server) handleHints(req Request) Response {
	limit := req.Limit
	if limit > s.opts.MaxHints {
		limit = s.opts.MaxHints
	}
	hints := s.engine.TopHints(limit)
	ranks := utils.CreateRankList(len(hints))

	out := make([]HintSuggestion, len(hints))
	for i, h := range hints {
		out[i] = HintSuggestion{
			Word:         h.Word,
			Rank:         ranks[i],
			Continuation: h.ContinuationPrefix,
			Count:        h.ContinuationSolutionCount,
		}
	}
	return Response{Status: StatusOK, Hints: out}
}

func (s *Server) withState(resp Response) Response {
	snap := s.engine.Snapshot()
	resp.State = &GameState{
		Chain:          snap.Chain,
		Hearts:         snap.Hearts,
		Points:         snap.Points,
		Turns:          snap.Turns,
		Difficulty:     snap.Difficulty,
		RequiredPrefix: snap.RequiredPrefix,
		ToMove:         snap.ToMove.String(),
		Outcome:        snap.Outcome.String(),
		LettersUsed:    snap.LettersUsed,
	}
	return resp
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, game.ErrInvalidWord):
		return ReasonInvalidWord
	case errors.Is(err, game.ErrWordAlreadyUsed):
		return ReasonAlreadyUsed
	case errors.Is(err, game.ErrPrefixMismatch):
		return ReasonPrefixMismatch
	}
	return ""
}

// fail maps an engine error to an error response. ErrNoViableMove ends the
// game and is reported with the final state.
func (s *Server) fail(err error) Response {
	if errors.Is(err, game.ErrNoViableMove) {
		return s.withState(Response{Status: StatusOK, Error: err.Error()})
	}

	code := 500
	var loadErr *dictionary.LoadError
	switch {
	case errors.As(err, &loadErr):
		code = 422
		if errors.Is(err, os.ErrNotExist) {
			code = 404
		}
	case errors.Is(err, game.ErrNotLoaded):
		code = 412
	case errors.Is(err, game.ErrNotStarted), errors.Is(err, game.ErrOutOfTurn):
		code = 409
	case errors.Is(err, game.ErrGameOver):
		code = 410
	}
	if code >= 500 {
		s.logger.Errorf("Request failed: %v", err)
	} else {
		s.logger.Debugf("Request refused: %v", err)
	}
	return errorResponse(err.Error(), code)
}

func errorResponse(message string, code int) Response {
	return Response{Status: StatusError, Error: message, Code: code}
}
