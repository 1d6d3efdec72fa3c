package tokenizer

import (
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/leapstack-labs/sqlreflow/pkg/token"
	"github.com/shopspring/decimal"
)

var terminatorDirective = regexp.MustCompile(`(?i)^#SET\s+TERMINATOR\s+(\S+)\s*$`)

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func (t *Tokenizer) handleDefault() {
	c := t.char()
	t.next(1)
	t.addError(ErrUnexpectedChar, c)
}

func (t *Tokenizer) handleTerminator() {
	if t.lookingAt(t.terminator) {
		t.next(utf8.RuneCountInString(t.terminator))
		t.addToken(token.TERMINATOR, t.terminator)
		return
	}
	if t.hadSaved && t.savedHandler != nil {
		t.savedHandler()
		return
	}
	t.handleDefault()
}

// handleSpace consumes whitespace up to and including the first line break,
// so each WHITESPACE token ends at most one line.
func (t *Tokenizer) handleSpace() {
	for !t.eof() && t.spaceChars[t.char()] {
		if t.char() == '\n' {
			t.next(1)
			break
		}
		t.next(1)
	}
	t.addToken(token.WHITESPACE, nil)
}

func (t *Tokenizer) handleIdent() {
	t.markHere()
	t.next(1)
	for !t.eof() && t.identChars[t.char()] {
		t.next(1)
	}
	ident := t.upper.String(t.marked())
	switch {
	case t.char() == ':':
		t.next(1)
		t.addToken(token.LABEL, ident)
	case t.isKeyword(ident):
		t.addToken(token.KEYWORD, ident)
	default:
		t.addToken(token.IDENTIFIER, ident)
	}
}

func (t *Tokenizer) isKeyword(s string) bool {
	_, ok := t.cfg.Keywords[s]
	return ok
}

type numberForm int

const (
	formInteger numberForm = iota
	formDecimal
	formFloat
)

func (t *Tokenizer) handleDigit() {
	t.markHere()
	form := formInteger
	allowDot, allowExp := true, true
	if t.char() == '.' {
		form, allowDot = formDecimal, false
	}
	t.next(1)
loop:
	for {
		c := t.char()
		switch {
		case isDigit(c):
		case c == '.' && allowDot:
			form, allowDot = formDecimal, false
		case (c == 'E' || c == 'e') && allowExp:
			form, allowDot, allowExp = formFloat, false, false
			if p := t.peek(1); p == '+' || p == '-' {
				t.next(1)
			}
		default:
			break loop
		}
		t.next(1)
	}

	text := t.marked()
	value, err := parseNumber(text, form)
	if err != nil {
		t.addError(ErrInvalidNumber, text)
		return
	}
	t.addToken(token.NUMBER, value)
}

func parseNumber(text string, form numberForm) (any, error) {
	switch form {
	case formDecimal:
		return decimal.NewFromString(text)
	case formFloat:
		return strconv.ParseFloat(text, 64)
	default:
		n, ok := new(big.Int).SetString(text, 10)
		if !ok {
			return nil, fmt.Errorf("invalid integer %q", text)
		}
		return n, nil
	}
}

// extractString consumes a quoted literal starting at the current quote
// character. Doubled quotes stand for a single literal quote.
func (t *Tokenizer) extractString(multiline bool) (string, error) {
	q := t.char()
	count := 1
	t.next(1)
	t.markHere()
	for {
		if t.eof() {
			return "", fmt.Errorf(ErrUnterminatedString, t.tokenLine)
		}
		c := t.char()
		if c == '\n' && !multiline {
			return "", errors.New(ErrIllegalLineBreak)
		}
		if c == q {
			count++
			if t.peek(1) != q && count%2 == 0 {
				break
			}
		}
		t.next(1)
	}
	content := t.marked()
	t.next(1)
	qs := string(q)
	return strings.ReplaceAll(content, qs+qs, qs), nil
}

func (t *Tokenizer) handleApos() {
	s, err := t.extractString(t.cfg.MultilineStrings)
	if err != nil {
		t.addError("%s", err.Error())
		return
	}
	t.addToken(token.STRING, s)
}

func (t *Tokenizer) handleQuote() {
	s, err := t.extractString(false)
	if err != nil {
		t.addError("%s", err.Error())
		return
	}
	if t.char() == ':' {
		t.next(1)
		t.addToken(token.LABEL, s)
		return
	}
	t.addToken(token.IDENTIFIER, s)
}

func (t *Tokenizer) handleColon() {
	t.next(1)
	c := t.char()
	switch {
	case c == '"' || c == '\'':
		s, err := t.extractString(false)
		if err != nil {
			t.addError("%s", err.Error())
			return
		}
		t.addToken(token.PARAMETER, s)
	case !t.eof() && t.identChars[c]:
		t.markHere()
		for !t.eof() && t.identChars[t.char()] {
			t.next(1)
		}
		t.addToken(token.PARAMETER, t.marked())
	default:
		t.addToken(token.OPERATOR, ":")
	}
}

func (t *Tokenizer) handleQuestion() {
	t.next(1)
	t.addToken(token.PARAMETER, nil)
}

func (t *Tokenizer) handleMinus() {
	t.next(1)
	if !t.cfg.LineComments || t.char() != '-' {
		t.addToken(token.OPERATOR, "-")
		return
	}
	t.next(1)
	t.markHere()
	for !t.eof() && t.char() != '\n' {
		t.next(1)
	}
	content := t.marked()
	t.next(1)
	t.addToken(token.COMMENT, content)
	if t.cfg.TerminatorDirective {
		if m := terminatorDirective.FindStringSubmatch(content); m != nil {
			t.setTerminator(m[1])
		}
	}
}

func (t *Tokenizer) handleSlash() {
	t.next(1)
	switch {
	case t.cfg.CppComments && t.char() == '/':
		t.next(1)
		t.markHere()
		for !t.eof() && t.char() != '\n' {
			t.next(1)
		}
		t.addToken(token.COMMENT, t.marked())
	case t.cfg.BlockComments && t.char() == '*':
		t.next(1)
		t.blockComment()
	default:
		t.addToken(token.OPERATOR, "/")
	}
}

func (t *Tokenizer) blockComment() {
	t.markHere()
	depth := 0
	for {
		switch {
		case t.eof():
			t.addError(ErrUnterminatedComment, t.tokenLine)
			return
		case t.cfg.NestedComments && t.char() == '/' && t.peek(1) == '*':
			t.next(2)
			depth++
		case t.char() == '*' && t.peek(1) == '/':
			if depth > 0 {
				t.next(2)
				depth--
				continue
			}
			content := t.marked()
			t.next(2)
			t.addToken(token.COMMENT, content)
			return
		default:
			t.next(1)
		}
	}
}

func (t *Tokenizer) handlePeriod() {
	switch {
	case isDigit(t.peek(1)):
		t.handleDigit()
	case t.cfg.MethodOperators && t.peek(1) == '.':
		t.next(2)
		t.addToken(token.OPERATOR, "..")
	default:
		t.next(1)
		t.addToken(token.OPERATOR, ".")
	}
}

func (t *Tokenizer) handleEqual() {
	if t.cfg.MethodOperators && t.peek(1) == '>' {
		t.next(2)
		t.addToken(token.OPERATOR, "=>")
		return
	}
	t.next(1)
	t.addToken(token.OPERATOR, "=")
}

func (t *Tokenizer) handleLess() {
	t.next(1)
	switch t.char() {
	case '=':
		t.next(1)
		t.addToken(token.OPERATOR, "<=")
	case '>':
		t.next(1)
		t.addToken(token.OPERATOR, "<>")
	default:
		t.addToken(token.OPERATOR, "<")
	}
}

func (t *Tokenizer) handleGreater() {
	t.next(1)
	if t.char() == '=' {
		t.next(1)
		t.addToken(token.OPERATOR, ">=")
		return
	}
	t.addToken(token.OPERATOR, ">")
}

func (t *Tokenizer) handleBar() {
	t.next(1)
	if t.char() == '|' {
		t.next(1)
		t.addToken(token.OPERATOR, "||")
		return
	}
	t.addError(ErrExpectedBar, t.char())
}
