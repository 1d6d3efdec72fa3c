package tokenizer

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/leapstack-labs/sqlreflow/pkg/token"
)

// installHooks adds the dialect specific handlers selected by the config.
// They run after the generic table is built and so take precedence over the
// identifier handler for the letters they claim.
func (t *Tokenizer) installHooks() {
	if t.cfg.NotOperators {
		for _, r := range []rune{'!', '^', '¬'} {
			t.jump[r] = t.handleNot
		}
	}
	if t.cfg.HexStrings {
		t.jump['x'] = t.handleHexString
		t.jump['X'] = t.handleHexString
	}
	if t.cfg.GraphicStrings {
		for _, r := range "nNgG" {
			t.jump[r] = t.handleGraphicString
		}
	}
	if t.cfg.UnicodeStrings {
		t.jump['u'] = t.handleUnicodeString
		t.jump['U'] = t.handleUnicodeString
	}
	if t.cfg.Brackets {
		for _, op := range []string{"[", "]", "{", "}"} {
			t.jump[rune(op[0])] = t.operator(op)
		}
	}
}

// handleNot rewrites the negated comparisons !=, !> and !< (also spelt with
// ^ or the hook character) into their positive equivalents.
func (t *Tokenizer) handleNot() {
	t.next(1)
	var op string
	switch t.char() {
	case '=':
		op = "<>"
	case '>':
		op = "<="
	case '<':
		op = ">="
	default:
		t.addError(ErrExpectedComparison, t.char())
		return
	}
	t.next(1)
	t.addToken(token.OPERATOR, op)
}

func (t *Tokenizer) handleHexString() {
	if t.peek(1) != '\'' {
		t.handleIdent()
		return
	}
	t.next(1)
	s, err := t.extractString(false)
	if err != nil {
		t.addError("%s", err.Error())
		return
	}
	if len(s)%2 != 0 {
		t.addError("%s", ErrHexLength)
		return
	}
	decoded, ok := decodeHex(s, 2)
	if !ok {
		t.addError(ErrInvalidHex, s)
		return
	}
	t.addToken(token.STRING, decoded)
}

func (t *Tokenizer) handleUnicodeHexString() {
	if unicode.ToUpper(t.peek(1)) != 'X' || t.peek(2) != '\'' {
		t.handleIdent()
		return
	}
	t.next(2)
	s, err := t.extractString(false)
	if err != nil {
		t.addError("%s", err.Error())
		return
	}
	if len(s)%4 != 0 {
		t.addError("%s", ErrUnicodeHexLength)
		return
	}
	decoded, ok := decodeHex(s, 4)
	if !ok {
		t.addError(ErrInvalidHex, s)
		return
	}
	t.addToken(token.STRING, decoded)
}

func (t *Tokenizer) handleGraphicString() {
	switch {
	case t.peek(1) == '\'':
		t.next(1)
		s, err := t.extractString(t.cfg.MultilineStrings)
		if err != nil {
			t.addError("%s", err.Error())
			return
		}
		t.addToken(token.STRING, s)
	case unicode.ToUpper(t.char()) == 'G':
		t.handleUnicodeHexString()
	default:
		t.handleIdent()
	}
}

var unicodeEscape = regexp.MustCompile(`\\(\\|[0-9A-Fa-f]{4}|\+[0-9A-Fa-f]{6})`)

// handleUnicodeString parses U&'...' literals with \XXXX and \+XXXXXX
// escapes, and UX'...' hex literals.
func (t *Tokenizer) handleUnicodeString() {
	switch {
	case t.peek(1) == '&':
		t.next(2)
		if t.char() != '\'' {
			t.addError(ErrExpectedQuote, t.char())
			return
		}
		s, err := t.extractString(t.cfg.MultilineStrings)
		if err != nil {
			t.addError("%s", err.Error())
			return
		}
		t.addToken(token.STRING, unescapeUnicode(s))
	default:
		t.handleUnicodeHexString()
	}
}

func unescapeUnicode(s string) string {
	return unicodeEscape.ReplaceAllStringFunc(s, func(m string) string {
		body := m[1:]
		if body == `\` {
			return `\`
		}
		body = strings.TrimPrefix(body, "+")
		n, err := strconv.ParseUint(body, 16, 32)
		if err != nil {
			return m
		}
		return string(rune(n))
	})
}

// decodeHex decodes s in groups of width hex digits, each group becoming a
// single character.
func decodeHex(s string, width int) (string, bool) {
	var b strings.Builder
	for i := 0; i+width <= len(s); i += width {
		n, err := strconv.ParseUint(s[i:i+width], 16, 32)
		if err != nil {
			return "", false
		}
		b.WriteRune(rune(n))
	}
	return b.String(), true
}
