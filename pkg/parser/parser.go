// Package parser provides a backtracking parser engine for SQL grammars.
//
// A grammar is a set of mutually recursive procedures written against the
// primitives of Parser: Match, Expect and friends consume input tokens and
// append them to an output stream; SaveState, RestoreState and Try give
// unlimited lookahead; Newline, Indent, VAlign and VApply leave layout
// markers for the format package.
//
// # Usage
//
//	p := parser.New(myGrammar, format.DefaultOptions())
//	out, err := p.Parse(tokens)
//	if err != nil {
//	    // handle error
//	}
//	fmt.Print(token.Concat(out))
//
// The output is canonical SQL text once the tokens are concatenated.
package parser

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/sqlreflow/pkg/format"
	"github.com/leapstack-labs/sqlreflow/pkg/token"
)

// Grammar parses one top-level statement. ParseTop is called with the
// parser positioned on the first token of a statement; the engine itself
// expects the statement terminator afterwards.
type Grammar interface {
	ParseTop(p *Parser) error
}

// SpacingRules may be implemented by a Grammar to replace the default
// spacing around templates.
type SpacingRules interface {
	Prespace(t token.Template) bool
	Postspace(t token.Template) bool
}

// Extension may be implemented by a Grammar that keeps state of its own,
// such as the current schema. The engine snapshots it with every saved
// state so backtracking rolls it back too.
type Extension interface {
	SaveState() any
	RestoreState(state any)
	Reset()
}

type state struct {
	index     int
	level     int
	outputLen int
	undoLen   int
	ext       any
}

// undo records an output token overwritten in place, so that RestoreState
// can put it back.
type undo struct {
	pos int
	tok token.Token
}

// Parser is the engine state for one parse. It is not safe for concurrent
// use, but may be reused sequentially.
type Parser struct {
	grammar Grammar
	spacing SpacingRules
	ext     Extension
	opts    format.Options

	tokens []token.Token
	source string
	eof    token.Position

	index  int
	level  int
	output []token.Token
	states []state
	undo   []undo
}

// New creates a parser for grammar g.
func New(g Grammar, opts format.Options) *Parser {
	p := &Parser{grammar: g, opts: opts}
	if s, ok := g.(SpacingRules); ok {
		p.spacing = s
	}
	if e, ok := g.(Extension); ok {
		p.ext = e
	}
	return p
}

// Options returns the formatting options of the parser.
func (p *Parser) Options() format.Options {
	return p.opts
}

// Reformats reports whether tokens of kind k are reformatted.
func (p *Parser) Reformats(k token.Kind) bool {
	return p.opts.Reformat.Has(k)
}

func (p *Parser) reformatSpace() bool {
	return p.opts.Reformat.Has(token.WHITESPACE)
}

// Parse parses every statement in tokens and returns the reformatted output.
func (p *Parser) Parse(tokens []token.Token) (out []token.Token, err error) {
	defer func() {
		if r := recover(); r != nil {
			ie, ok := r.(*InvariantError)
			if !ok {
				panic(r)
			}
			out, err = nil, ie
		}
	}()

	p.reset(tokens)
	for {
		p.skipBetweenStatements()
		if p.Token().Kind == token.EOF {
			break
		}
		if err := p.grammar.ParseTop(p); err != nil {
			return nil, p.finalError(err)
		}
		if _, err := p.Expect(token.Of(token.STATEMENT)); err != nil {
			return nil, err
		}
		if n := len(p.states); n != 0 {
			return nil, fmt.Errorf("%w: %d saved states left after statement", ErrUnbalancedState, n)
		}
		p.undo = p.undo[:0]
		p.level = 0
		p.Newline()
		p.NewlineAt(0, true)
	}
	return format.Run(p.output, p.opts)
}

func (p *Parser) reset(tokens []token.Token) {
	p.tokens = tokens
	p.source = token.Concat(tokens)
	p.eof = endPosition(tokens)
	p.index = 0
	p.level = 0
	p.output = make([]token.Token, 0, len(tokens))
	p.states = p.states[:0]
	p.undo = p.undo[:0]
	if p.ext != nil {
		p.ext.Reset()
	}
}

// skipBetweenStatements drops whitespace and empty statements. Comments are
// kept, each on a line of its own when whitespace is being rebuilt.
func (p *Parser) skipBetweenStatements() {
	for p.index < len(p.tokens) {
		tok := p.tokens[p.index]
		switch tok.Kind {
		case token.WHITESPACE, token.TERMINATOR:
		case token.COMMENT:
			p.appendComment(tok)
			if p.reformatSpace() && !isLineComment(tok) {
				p.Newline()
			}
		default:
			return
		}
		p.index++
	}
}

func (p *Parser) finalError(err error) error {
	if errors.Is(err, ErrBacktrack) {
		tok := p.Token()
		return &ParseError{Token: tok, Message: fmt.Sprintf(ErrNoAlternative, tok.Name()), Source: p.source}
	}
	return err
}

func endPosition(tokens []token.Token) token.Position {
	if len(tokens) == 0 {
		return token.Position{Line: 1, Column: 1}
	}
	last := tokens[len(tokens)-1]
	return token.Advance(last.Pos(), last.Source)
}

// ---------- Input ----------

// Token returns the current input token, or an EOF token past the end.
func (p *Parser) Token() token.Token {
	return p.tokenAt(p.index)
}

func (p *Parser) tokenAt(i int) token.Token {
	if i < len(p.tokens) {
		return p.tokens[i]
	}
	return token.Token{Kind: token.EOF, Line: p.eof.Line, Column: p.eof.Column}
}

// Peek compares the current token against tmpl without consuming it.
func (p *Parser) Peek(tmpl token.Template) (token.Token, bool) {
	return token.Match(p.Token(), tmpl)
}

// PeekOneOf returns the current token matched against the first template
// of tmpls that accepts it.
func (p *Parser) PeekOneOf(tmpls ...token.Template) (token.Token, bool) {
	for _, t := range tmpls {
		if tok, ok := token.Match(p.Token(), t); ok {
			return tok, true
		}
	}
	return token.Token{}, false
}

// Check reports whether the current token matches any of tmpls.
func (p *Parser) Check(tmpls ...token.Template) bool {
	_, ok := p.PeekOneOf(tmpls...)
	return ok
}

// Index returns the input cursor.
func (p *Parser) Index() int {
	return p.index
}

// Level returns the current indentation level.
func (p *Parser) Level() int {
	return p.level
}

// Output returns a copy of the output produced so far.
func (p *Parser) Output() []token.Token {
	out := make([]token.Token, len(p.output))
	copy(out, p.output)
	return out
}

// Fail returns an "expected one of" error at the current token.
func (p *Parser) Fail(expected ...token.Template) error {
	return p.expectedOneOf(p.Token(), expected)
}

// Errorf returns a ParseError at the current token.
func (p *Parser) Errorf(format string, args ...any) error {
	return &ParseError{Token: p.Token(), Message: fmt.Sprintf(format, args...), Source: p.source}
}
