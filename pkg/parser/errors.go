package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlreflow/pkg/token"
	"github.com/leapstack-labs/sqlreflow/pkg/tokenizer"
)

var (
	// ErrBacktrack may be returned by a grammar procedure to reject the
	// current alternative without describing why. Parse converts it into a
	// ParseError at the current token if it escapes the grammar.
	ErrBacktrack = errors.New("backtrack")

	// ErrUnbalancedState is returned when a grammar leaves saved states on
	// the stack at the end of a statement.
	ErrUnbalancedState = errors.New("unbalanced parser state")
)

// ParseError represents a grammar error with position information.
type ParseError struct {
	Token   token.Token
	Message string
	Source  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Token.Line, e.Token.Column, e.Message)
}

// Pos returns the position of the offending token.
func (e *ParseError) Pos() token.Position {
	return e.Token.Pos()
}

// Detail renders the error with the surrounding source and a caret under the
// offending token.
func (e *ParseError) Detail() string {
	return tokenizer.FormatDetail(e.Message, e.Source, e.Token.Line, e.Token.Column)
}

func (e *ParseError) parseError() *ParseError { return e }

// ExpectedOneOfError is raised when none of several alternatives matched.
type ExpectedOneOfError struct {
	ParseError
	Expected []token.Template
}

// ExpectedSequenceError is raised when a sequence of tokens did not match.
type ExpectedSequenceError struct {
	ParseError
	Expected []token.Template
	Found    []token.Token
}

// AsParseError returns the ParseError carried by err, whichever concrete
// grammar error type it is.
func AsParseError(err error) (*ParseError, bool) {
	var pe interface{ parseError() *ParseError }
	if errors.As(err, &pe) {
		return pe.parseError(), true
	}
	return nil, false
}

// InvariantError reports a grammar bug, such as editing output that lies
// before the most recent save point. The engine panics with it and Parse
// recovers it into an ordinary error.
type InvariantError struct {
	Message string
}

func (e *InvariantError) Error() string {
	return "parser invariant violated: " + e.Message
}

func invariant(format string, args ...any) {
	panic(&InvariantError{Message: fmt.Sprintf(format, args...)})
}

// Common error messages
const (
	ErrExpectedOneOf    = "expected %s but found %q"
	ErrExpectedSequence = "expected %q but found %q"
	ErrNoAlternative    = "unexpected %q"
)

func (p *Parser) expectedOneOf(found token.Token, expected []token.Template) error {
	names := make([]string, len(expected))
	for i, t := range expected {
		names[i] = fmt.Sprintf("%q", t.String())
	}
	return &ExpectedOneOfError{
		ParseError: ParseError{
			Token:   found,
			Message: fmt.Sprintf(ErrExpectedOneOf, strings.Join(names, ", "), found.Name()),
			Source:  p.source,
		},
		Expected: expected,
	}
}

func (p *Parser) expectedSequence(expected []token.Template) error {
	found := make([]token.Token, 0, len(expected))
	i := p.index
	for range expected {
		found = append(found, p.tokenAt(i))
		i++
		for i < len(p.tokens) && p.tokens[i].IsJunk() {
			i++
		}
	}

	want := make([]string, len(expected))
	for i, t := range expected {
		want[i] = t.String()
	}
	got := make([]string, len(found))
	for i, t := range found {
		got[i] = t.Name()
	}
	at := p.Token()
	if len(found) > 0 {
		at = found[0]
	}
	return &ExpectedSequenceError{
		ParseError: ParseError{
			Token:   at,
			Message: fmt.Sprintf(ErrExpectedSequence, strings.Join(want, " "), strings.Join(got, " ")),
			Source:  p.source,
		},
		Expected: expected,
		Found:    found,
	}
}
