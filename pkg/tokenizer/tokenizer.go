// Package tokenizer converts SQL source text into a lossless token stream.
//
// Concatenating the Source of every returned token reproduces the input
// exactly. The tokenizer is table driven: each leading character maps to a
// handler, and dialect features are switched on through Config.
package tokenizer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/leapstack-labs/sqlreflow/pkg/token"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type handler func()

// Tokenizer turns source text into tokens. A Tokenizer is not safe for
// concurrent use; create one per goroutine.
type Tokenizer struct {
	cfg        Config
	identChars map[rune]bool
	spaceChars map[rune]bool
	upper      cases.Caser

	jump map[rune]handler

	// The terminator handler is installed over jump[terminator[0]]; the
	// handler it replaced is kept so it can be restored.
	terminator   string
	savedHandler handler
	hadSaved     bool

	src       []rune
	index     int
	line      int
	lineStart int

	tokenStart int
	tokenLine  int
	tokenCol   int
	mark       int

	tokens []token.Token
	err    *LexError
}

// New creates a tokenizer for cfg.
func New(cfg Config) *Tokenizer {
	cfg = cfg.Clone()
	t := &Tokenizer{
		cfg:        cfg,
		identChars: runeSet(cfg.IdentChars),
		spaceChars: runeSet(cfg.SpaceChars),
		upper:      cases.Upper(language.Und),
	}
	return t
}

// Config returns a copy of the tokenizer configuration.
func (t *Tokenizer) Config() Config {
	return t.cfg.Clone()
}

// Tokenize splits source into tokens. Occurrences of terminator outside of
// strings and comments become TERMINATOR tokens. If splitLines is set, tokens
// spanning line breaks are split so that every line starts with a new token.
//
// With RaiseErrors set the first lexical error is returned as a *LexError;
// otherwise errors appear in the stream as ERROR tokens.
func (t *Tokenizer) Tokenize(source, terminator string, splitLines bool) ([]token.Token, error) {
	if terminator == "" {
		return nil, ErrEmptyTerminator
	}
	t.reset(source)
	t.initJump()
	t.setTerminator(terminator)

	for t.index < len(t.src) && t.err == nil {
		h, ok := t.jump[t.char()]
		if !ok {
			h = t.handleDefault
		}
		h()
	}
	if t.err != nil {
		return nil, t.err
	}

	tokens := t.tokens
	t.tokens = nil
	if splitLines {
		tokens = token.SplitLines(tokens)
	}
	return tokens, nil
}

// Tokenize is a convenience wrapper creating a throwaway tokenizer.
func Tokenize(cfg Config, source, terminator string) ([]token.Token, error) {
	return New(cfg).Tokenize(source, terminator, false)
}

func (t *Tokenizer) reset(source string) {
	t.src = []rune(source)
	t.index = 0
	t.line = 1
	t.lineStart = 0
	t.tokenStart = 0
	t.tokenLine = 1
	t.tokenCol = 1
	t.mark = 0
	t.tokens = make([]token.Token, 0, len(t.src)/4+1)
	t.err = nil
	t.terminator = ""
	t.savedHandler = nil
	t.hadSaved = false
}

func (t *Tokenizer) initJump() {
	t.jump = make(map[rune]handler, 128)
	for r := range t.identChars {
		t.jump[r] = t.handleIdent
	}
	for r := '0'; r <= '9'; r++ {
		t.jump[r] = t.handleDigit
	}
	for r := range t.spaceChars {
		t.jump[r] = t.handleSpace
	}

	t.jump['\''] = t.handleApos
	t.jump['"'] = t.handleQuote
	t.jump['-'] = t.handleMinus
	t.jump['/'] = t.handleSlash
	t.jump['.'] = t.handlePeriod
	t.jump[':'] = t.handleColon
	t.jump['?'] = t.handleQuestion
	t.jump['<'] = t.handleLess
	t.jump['>'] = t.handleGreater
	t.jump['='] = t.handleEqual
	t.jump['|'] = t.handleBar
	t.jump[';'] = t.operator(";")
	for _, op := range []string{"+", "*", "(", ")", ",", "&"} {
		t.jump[rune(op[0])] = t.operator(op)
	}

	t.installHooks()
}

// setTerminator swaps the terminator handler in, restoring whatever the
// previous terminator displaced.
func (t *Tokenizer) setTerminator(value string) {
	value = strings.ReplaceAll(value, "\r\n", "\n")
	value = strings.ReplaceAll(value, "\r", "\n")
	if value == "" {
		return
	}
	if t.terminator != "" {
		first, _ := utf8.DecodeRuneInString(t.terminator)
		if t.hadSaved {
			t.jump[first] = t.savedHandler
		} else {
			delete(t.jump, first)
		}
	}
	t.terminator = value
	first, _ := utf8.DecodeRuneInString(value)
	t.savedHandler, t.hadSaved = t.jump[first]
	t.jump[first] = t.handleTerminator
}

// Cursor primitives. char and peek report '\n' for any line break and 0 past
// the end of input; next treats CRLF as a single step.

func (t *Tokenizer) eof() bool {
	return t.index >= len(t.src)
}

func (t *Tokenizer) char() rune {
	return t.peek(0)
}

func (t *Tokenizer) peek(n int) rune {
	i := t.index
	for ; n > 0 && i < len(t.src); n-- {
		if t.src[i] == '\r' && i+1 < len(t.src) && t.src[i+1] == '\n' {
			i++
		}
		i++
	}
	if i >= len(t.src) {
		return 0
	}
	if t.src[i] == '\r' {
		return '\n'
	}
	return t.src[i]
}

func (t *Tokenizer) next(count int) {
	for ; count > 0 && t.index < len(t.src); count-- {
		switch t.src[t.index] {
		case '\r':
			t.index++
			if t.index < len(t.src) && t.src[t.index] == '\n' {
				t.index++
			}
			t.newLine()
		case '\n':
			t.index++
			t.newLine()
		default:
			t.index++
		}
	}
}

func (t *Tokenizer) newLine() {
	t.line++
	t.lineStart = t.index
}

func (t *Tokenizer) column() int {
	return t.index - t.lineStart + 1
}

func (t *Tokenizer) markHere() {
	t.mark = t.index
}

func (t *Tokenizer) marked() string {
	return string(t.src[t.mark:t.index])
}

func (t *Tokenizer) lookingAt(s string) bool {
	i := 0
	for _, r := range s {
		if t.peek(i) != r {
			return false
		}
		i++
	}
	return true
}

// addToken emits a token covering everything consumed since the previous one.
func (t *Tokenizer) addToken(kind token.Kind, value any) {
	tok := token.Token{
		Kind:   kind,
		Value:  value,
		Source: string(t.src[t.tokenStart:t.index]),
		Line:   t.tokenLine,
		Column: t.tokenCol,
	}
	if kind == token.IDENTIFIER {
		for _, c := range t.cfg.Classifiers {
			tok = c.Classify(tok)
		}
	}
	if kind == token.ERROR && t.cfg.RaiseErrors {
		msg, _ := value.(string)
		t.err = &LexError{Token: tok, Message: msg, Source: string(t.src)}
		return
	}
	t.tokens = append(t.tokens, tok)
	t.tokenStart = t.index
	t.tokenLine = t.line
	t.tokenCol = t.column()
}

func (t *Tokenizer) addError(format string, args ...any) {
	t.addToken(token.ERROR, fmt.Sprintf(format, args...))
}

func (t *Tokenizer) operator(op string) handler {
	n := utf8.RuneCountInString(op)
	return func() {
		t.next(n)
		t.addToken(token.OPERATOR, op)
	}
}

func runeSet(s string) map[rune]bool {
	m := make(map[rune]bool, len(s))
	for _, r := range s {
		m[r] = true
	}
	return m
}
