package tokenizer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlreflow/pkg/token"
)

// ContextLines is the number of lines of source shown around an error.
const ContextLines = 5

// ErrEmptyTerminator is returned when the statement terminator is empty.
var ErrEmptyTerminator = errors.New("statement terminator must contain at least one character")

// LexError represents a lexical analysis error.
type LexError struct {
	Token   token.Token
	Message string
	Source  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lexer error at line %d, column %d: %s", e.Token.Line, e.Token.Column, e.Message)
}

// Pos returns the position of the offending token.
func (e *LexError) Pos() token.Position {
	return e.Token.Pos()
}

// Detail renders the error with surrounding source lines and a caret under
// the offending column.
func (e *LexError) Detail() string {
	return FormatDetail(e.Message, e.Source, e.Token.Line, e.Token.Column)
}

// FormatDetail renders message with its position and a context window.
func FormatDetail(message, source string, line, column int) string {
	return strings.Join([]string{
		message + ":",
		fmt.Sprintf("line   : %d", line),
		fmt.Sprintf("column : %d", column),
		"context:",
		token.ErrorContext(source, line, column, ContextLines),
	}, "\n")
}

// FirstError returns the first ERROR token in tokens.
func FirstError(tokens []token.Token) (token.Token, bool) {
	for _, t := range tokens {
		if t.Kind == token.ERROR {
			return t, true
		}
	}
	return token.Token{}, false
}

// Common error messages
const (
	ErrUnterminatedString  = "unterminated string starting on line %d"
	ErrUnterminatedComment = "unterminated comment starting on line %d"
	ErrIllegalLineBreak    = "illegal line break found in token"
	ErrUnexpectedChar      = "unexpected character %q"
	ErrExpectedBar         = "expected | but found %q"
	ErrExpectedQuote       = "expected ' but found %q"
	ErrExpectedComparison  = "expected >, <, or = but found %q"
	ErrInvalidNumber       = "invalid numeric literal %q"
	ErrHexLength           = "hex-string must have an even length"
	ErrUnicodeHexLength    = "unicode hex-string must have a length which is a multiple of 4"
	ErrInvalidHex          = "invalid hex-string %q"
)
