// Package engine ties the tokenizer, the parser engine and the reference
// grammar together into a single reflow operation.
// It handles fallback on errors, statement splitting and reflowing many
// files in parallel.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/leapstack-labs/sqlreflow/pkg/dialect"
	"github.com/leapstack-labs/sqlreflow/pkg/format"
	"github.com/leapstack-labs/sqlreflow/pkg/grammar"
	"github.com/leapstack-labs/sqlreflow/pkg/parser"
	"github.com/leapstack-labs/sqlreflow/pkg/token"
)

// Fallback selects what Reflow does when the source cannot be reflowed.
type Fallback string

const (
	// FallbackAbort returns the error to the caller.
	FallbackAbort Fallback = "abort"
	// FallbackPassthrough logs the error and returns the source unchanged.
	FallbackPassthrough Fallback = "passthrough"
)

// ErrInvalidFallback is returned by New for an unknown fallback strategy.
var ErrInvalidFallback = errors.New("invalid fallback")

// Engine reflows SQL source. It holds no per-call state and is safe for
// concurrent use: every call builds its own tokenizer, parser and grammar.
type Engine struct {
	dialect    *dialect.Dialect
	opts       format.Options
	terminator string
	fallback   Fallback

	// Structured logger
	logger *slog.Logger
}

// Config holds engine configuration.
type Config struct {
	// Dialect is the SQL dialect (required)
	Dialect *dialect.Dialect
	// Options overrides the dialect's reformatting options (optional)
	Options *format.Options
	// Terminator is the statement terminator in the source; defaults to
	// the dialect's
	Terminator string
	// Fallback is the error strategy; defaults to FallbackAbort
	Fallback Fallback
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// Result is the outcome of a reflow.
type Result struct {
	// Text is the reflowed source, or the original with Fallback set.
	Text string
	// Tokens is the reformatted token stream; nil on fallback.
	Tokens []token.Token
	// Fallback reports that the source was passed through unchanged.
	Fallback bool
	// Err is the error that caused the fallback.
	Err error
}

// New creates an engine.
func New(cfg Config) (*Engine, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Dialect == nil {
		return nil, dialect.ErrDialectRequired
	}

	fallback := cfg.Fallback
	switch fallback {
	case "":
		fallback = FallbackAbort
	case FallbackAbort, FallbackPassthrough:
	default:
		return nil, fmt.Errorf("%w %q (expected %s or %s)", ErrInvalidFallback, fallback, FallbackAbort, FallbackPassthrough)
	}

	opts := cfg.Dialect.FormatOptions()
	if cfg.Options != nil {
		opts = *cfg.Options
	}
	terminator := cfg.Terminator
	if terminator == "" {
		terminator = cfg.Dialect.Terminator
	}

	logger.Debug("initializing engine", "dialect", cfg.Dialect.Name, "fallback", fallback, "terminator", terminator)

	return &Engine{
		dialect:    cfg.Dialect,
		opts:       opts,
		terminator: terminator,
		fallback:   fallback,
		logger:     logger,
	}, nil
}

// Dialect returns the engine's dialect.
func (e *Engine) Dialect() *dialect.Dialect {
	return e.dialect
}

// Options returns the reformatting options in use.
func (e *Engine) Options() format.Options {
	return e.opts
}

// Tokenize runs the dialect's tokenizer over source.
func (e *Engine) Tokenize(source string) ([]token.Token, error) {
	return e.dialect.NewTokenizer().Tokenize(source, e.terminator, false)
}

// Reflow parses source with the reference grammar and renders it in
// canonical form. With FallbackPassthrough a lexical or grammar error is
// logged and the source is returned unchanged with a nil error.
func (e *Engine) Reflow(source string) (Result, error) {
	start := time.Now()

	toks, err := e.Tokenize(source)
	if err != nil {
		return e.fail(source, fmt.Errorf("tokenize: %w", err))
	}
	out, err := parser.New(grammar.New(), e.opts).Parse(toks)
	if err != nil {
		return e.fail(source, err)
	}

	e.logger.Debug("reflowed source",
		"tokens_in", len(toks),
		"tokens_out", len(out),
		"duration", time.Since(start))
	return Result{Text: token.Concat(out), Tokens: out}, nil
}

func (e *Engine) fail(source string, err error) (Result, error) {
	if e.fallback != FallbackPassthrough {
		return Result{Err: err}, err
	}
	e.logger.Warn("passing source through unchanged", "error", err)
	return Result{Text: source, Fallback: true, Err: err}, nil
}

// Detail renders err with source context when it carries a position, and
// falls back to err.Error() otherwise.
func Detail(err error) string {
	var detailed interface{ Detail() string }
	if errors.As(err, &detailed) {
		return detailed.Detail()
	}
	return err.Error()
}
