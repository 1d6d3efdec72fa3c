// Package token defines the token model shared by the tokenizer, the parser
// engine and the reformatting pipeline.
//
// Kinds form a closed set known at compile time. Dialects that need to refine
// a raw token further do so through tokenizer.Classifier rather than by
// registering new kinds.
package token

import (
	"fmt"
	"strings"
)

// Kind represents the kind of a lexical token.
type Kind int

//nolint:revive // ALL_CAPS kind names follow SQL token conventions
const (
	EOF Kind = iota
	ERROR
	WHITESPACE
	COMMENT
	KEYWORD
	IDENTIFIER
	NUMBER
	STRING
	OPERATOR
	LABEL
	PARAMETER
	TERMINATOR
	STATEMENT

	// Structural markers emitted by the parser and consumed by the formatter.
	INDENT
	VALIGN
	VAPPLY

	// Dialect overlay kinds, produced only by template upgrades.
	DATATYPE
	SCHEMA
	RELATION
	ROUTINE
	REGISTER
	PASSWORD

	kindCount
)

var kindNames = [kindCount]string{
	EOF:        "<end-of-file>",
	ERROR:      "<error>",
	WHITESPACE: "<space>",
	COMMENT:    "<comment>",
	KEYWORD:    "<keyword>",
	IDENTIFIER: "<name>",
	NUMBER:     "<number>",
	STRING:     "<string>",
	OPERATOR:   "<operator>",
	LABEL:      "<label>",
	PARAMETER:  "<parameter>",
	TERMINATOR: "<terminator>",
	STATEMENT:  "<statement-end>",
	INDENT:     "<indent>",
	VALIGN:     "<valign>",
	VAPPLY:     "<vapply>",
	DATATYPE:   "<datatype>",
	SCHEMA:     "<schema>",
	RELATION:   "<relation>",
	ROUTINE:    "<routine>",
	REGISTER:   "<register>",
	PASSWORD:   "<password>",
}

var kindIdents = [kindCount]string{
	EOF:        "EOF",
	ERROR:      "ERROR",
	WHITESPACE: "WHITESPACE",
	COMMENT:    "COMMENT",
	KEYWORD:    "KEYWORD",
	IDENTIFIER: "IDENTIFIER",
	NUMBER:     "NUMBER",
	STRING:     "STRING",
	OPERATOR:   "OPERATOR",
	LABEL:      "LABEL",
	PARAMETER:  "PARAMETER",
	TERMINATOR: "TERMINATOR",
	STATEMENT:  "STATEMENT",
	INDENT:     "INDENT",
	VALIGN:     "VALIGN",
	VAPPLY:     "VAPPLY",
	DATATYPE:   "DATATYPE",
	SCHEMA:     "SCHEMA",
	RELATION:   "RELATION",
	ROUTINE:    "ROUTINE",
	REGISTER:   "REGISTER",
	PASSWORD:   "PASSWORD",
}

// String returns the display name used in error messages, e.g. "<keyword>".
func (k Kind) String() string {
	if k >= 0 && k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("<kind %d>", int(k))
}

// Ident returns the upper-case identifier of the kind, e.g. "KEYWORD".
func (k Kind) Ident() string {
	if k >= 0 && k < kindCount {
		return kindIdents[k]
	}
	return fmt.Sprintf("KIND%d", int(k))
}

// IsMarker reports whether k is a structural marker (INDENT, VALIGN, VAPPLY).
func (k Kind) IsMarker() bool {
	return k == INDENT || k == VALIGN || k == VAPPLY
}

// IsJunk reports whether k is skipped over while matching (whitespace and
// comments).
func (k Kind) IsJunk() bool {
	return k == WHITESPACE || k == COMMENT
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// LookupKind resolves a kind by its identifier (case insensitive).
func LookupKind(name string) (Kind, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for k := Kind(0); k < kindCount; k++ {
		if kindIdents[k] == name {
			return k, true
		}
	}
	return EOF, false
}

// KindSet is a set of kinds, used for the reformat set.
type KindSet uint64

// NewKindSet returns a set containing kinds.
func NewKindSet(kinds ...Kind) KindSet {
	var s KindSet
	for _, k := range kinds {
		s = s.With(k)
	}
	return s
}

// With returns a copy of s that also contains k.
func (s KindSet) With(k Kind) KindSet {
	return s | 1<<uint(k)
}

// Without returns a copy of s that does not contain k.
func (s KindSet) Without(k Kind) KindSet {
	return s &^ (1 << uint(k))
}

// Has reports whether k is in s.
func (s KindSet) Has(k Kind) bool {
	return s&(1<<uint(k)) != 0
}

// Slice returns the members of s in declaration order.
func (s KindSet) Slice() []Kind {
	var out []Kind
	for k := Kind(0); k < kindCount; k++ {
		if s.Has(k) {
			out = append(out, k)
		}
	}
	return out
}

func (s KindSet) String() string {
	parts := make([]string, 0, kindCount)
	for _, k := range s.Slice() {
		parts = append(parts, k.Ident())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// ParseKindSet builds a set from kind identifiers such as "KEYWORD".
func ParseKindSet(names []string) (KindSet, error) {
	var s KindSet
	for _, name := range names {
		k, ok := LookupKind(name)
		if !ok {
			return 0, fmt.Errorf("unknown token kind %q", name)
		}
		s = s.With(k)
	}
	return s, nil
}

// Token is a single lexical unit.
//
// Value carries the semantic payload and depends on Kind:
//
//	WHITESPACE, TERMINATOR, markers   nil (INDENT carries its level as int)
//	KEYWORD, IDENTIFIER, LABEL        string (folded or unquoted)
//	STRING, COMMENT, ERROR            string
//	PARAMETER                         string, or nil for "?"
//	NUMBER                            *big.Int, decimal.Decimal, float64 or Special
//	OPERATOR                          string
//
// Source is the exact text consumed; Line and Column are 1-based.
type Token struct {
	Kind   Kind
	Value  any
	Source string
	Line   int
	Column int
}

// Special is the value of a NUMBER token spelled as a word, such as INFINITY.
type Special string

// Text returns Value as a string, or "" if it is not one.
func (t Token) Text() string {
	switch v := t.Value.(type) {
	case string:
		return v
	case Special:
		return string(v)
	}
	return ""
}

// IsJunk reports whether the token is whitespace or a comment.
func (t Token) IsJunk() bool {
	return t.Kind.IsJunk()
}

// Quoted reports whether the source of the token starts with a double quote.
func (t Token) Quoted() bool {
	return strings.HasPrefix(t.Source, `"`)
}

// WithKind returns a copy of t with its kind replaced.
func (t Token) WithKind(k Kind) Token {
	t.Kind = k
	return t
}

// Pos returns the token position.
func (t Token) Pos() Position {
	return Position{Line: t.Line, Column: t.Column}
}

// Name renders the token for "expected ... but found" messages.
func (t Token) Name() string {
	switch t.Kind {
	case EOF, WHITESPACE, TERMINATOR, STATEMENT:
		return t.Kind.String()
	}
	if t.Value != nil {
		return fmt.Sprint(t.Value)
	}
	return t.Source
}

func (t Token) String() string {
	return DumpToken(t)
}

// Concat joins the sources of tokens.
func Concat(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.Source)
	}
	return b.String()
}
