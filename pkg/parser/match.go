package parser

import (
	"strings"

	"github.com/leapstack-labs/sqlreflow/pkg/token"
)

// SpaceOption overrides the default spacing of a match.
type SpaceOption func(*spaceOptions)

type spaceOptions struct {
	pre, post, inter *bool
}

// WithPrespace forces (or suppresses) a space before the matched token.
func WithPrespace(on bool) SpaceOption {
	return func(o *spaceOptions) { o.pre = &on }
}

// WithPostspace allows (or suppresses) a space after the matched token. A
// false postspace wins over the prespace of the next match.
func WithPostspace(on bool) SpaceOption {
	return func(o *spaceOptions) { o.post = &on }
}

// WithInterspace sets the spacing between the elements of a sequence.
func WithInterspace(on bool) SpaceOption {
	return func(o *spaceOptions) { o.inter = &on }
}

func collectSpacing(opts []SpaceOption) spaceOptions {
	var o spaceOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// DefaultPrespace reports whether a token matched by t is preceded by a
// space when no rule says otherwise. Dots, commas, closing parentheses and
// terminators hug the preceding token.
func DefaultPrespace(t token.Template) bool {
	switch t {
	case token.Text("."), token.Text(","), token.Text(")"),
		token.KV(token.OPERATOR, "."), token.KV(token.OPERATOR, ","), token.KV(token.OPERATOR, ")"),
		token.Of(token.TERMINATOR), token.Of(token.STATEMENT):
		return false
	}
	return true
}

// DefaultPostspace reports whether a token matched by t may be followed by
// a space. Dots and opening parentheses hug the next token.
func DefaultPostspace(t token.Template) bool {
	switch t {
	case token.Text("."), token.Text("("),
		token.KV(token.OPERATOR, "."), token.KV(token.OPERATOR, "("):
		return false
	}
	return true
}

func (p *Parser) prespace(t token.Template, override *bool) bool {
	if override != nil {
		return *override
	}
	if p.spacing != nil {
		return p.spacing.Prespace(t)
	}
	return DefaultPrespace(t)
}

func (p *Parser) postspace(t token.Template, override *bool) bool {
	if override != nil {
		return *override
	}
	if p.spacing != nil {
		return p.spacing.Postspace(t)
	}
	return DefaultPostspace(t)
}

// ---------- Matching ----------

// Match consumes the current token if it matches tmpl and appends it to the
// output. The returned token carries any kind upgrade the template asked
// for. On failure nothing changes.
func (p *Parser) Match(tmpl token.Template, opts ...SpaceOption) (token.Token, bool) {
	o := collectSpacing(opts)
	return p.match(tmpl, o.pre, o.post)
}

func (p *Parser) match(tmpl token.Template, pre, post *bool) (token.Token, bool) {
	tok, ok := p.Peek(tmpl)
	if !ok {
		return token.Token{}, false
	}
	space := p.reformatSpace()
	if space && p.prespace(tmpl, pre) && len(p.output) > 0 {
		switch p.output[len(p.output)-1].Kind {
		case token.INDENT, token.WHITESPACE:
		default:
			p.output = append(p.output, spaceToken(" "))
		}
	}
	p.output = append(p.output, tok)
	p.index++
	if space && tok.Kind == token.STATEMENT {
		p.skipSameLine()
	} else {
		p.skipJunk()
	}
	if space && !p.postspace(tmpl, post) {
		p.output = append(p.output, spaceToken(""))
	}
	return tok, true
}

// skipJunk advances past whitespace and comments. Comments are always
// copied to the output; whitespace only when it is not being rebuilt.
func (p *Parser) skipJunk() {
	for p.index < len(p.tokens) {
		tok := p.tokens[p.index]
		switch tok.Kind {
		case token.COMMENT:
			p.appendComment(tok)
		case token.WHITESPACE:
			if !p.reformatSpace() {
				p.output = append(p.output, tok)
			}
		default:
			return
		}
		p.index++
	}
}

// skipSameLine consumes the junk that follows a statement end on its own
// line. Anything after the line break is left to skipBetweenStatements, so
// comments between statements keep lines of their own.
func (p *Parser) skipSameLine() {
	for p.index < len(p.tokens) {
		tok := p.tokens[p.index]
		switch tok.Kind {
		case token.WHITESPACE:
			if i, _ := token.LineBreak(tok.Source); i >= 0 {
				return
			}
		case token.COMMENT:
			p.appendComment(tok)
			p.index++
			return
		default:
			return
		}
		p.index++
	}
}

// appendComment copies a comment to the output. When whitespace is rebuilt
// a line comment loses its own line break and the current indentation is
// restored after it instead.
func (p *Parser) appendComment(tok token.Token) {
	if !p.reformatSpace() {
		p.output = append(p.output, tok)
		return
	}
	if n := len(p.output); n > 0 {
		switch p.output[n-1].Kind {
		case token.INDENT, token.WHITESPACE:
		default:
			p.output = append(p.output, spaceToken(" "))
		}
	}
	if !isLineComment(tok) {
		p.output = append(p.output, tok)
		return
	}
	tok.Source = strings.TrimRight(tok.Source, "\r\n")
	p.output = append(p.output, tok, indentToken(p.level))
}

func isLineComment(tok token.Token) bool {
	return strings.HasPrefix(tok.Source, "--") || strings.HasPrefix(tok.Source, "//")
}

func spaceToken(s string) token.Token {
	return token.Token{Kind: token.WHITESPACE, Source: s}
}

func indentToken(level int) token.Token {
	return token.Token{Kind: token.INDENT, Value: level}
}

// MatchOneOf tries each template in order and consumes the first match.
func (p *Parser) MatchOneOf(tmpls []token.Template, opts ...SpaceOption) (token.Token, bool) {
	o := collectSpacing(opts)
	for _, t := range tmpls {
		if tok, ok := p.match(t, o.pre, o.post); ok {
			return tok, true
		}
	}
	return token.Token{}, false
}

// MatchSequence consumes a run of tokens matching tmpls, ignoring junk in
// between. It returns the matched non-junk tokens, or leaves the parser
// untouched if any element fails.
func (p *Parser) MatchSequence(tmpls []token.Template, opts ...SpaceOption) ([]token.Token, bool) {
	o := collectSpacing(opts)
	p.SaveState()
	start := len(p.output)
	for i, t := range tmpls {
		pre, post := o.inter, o.inter
		if i == 0 {
			pre = o.pre
		}
		if i == len(tmpls)-1 {
			post = o.post
		}
		if _, ok := p.match(t, pre, post); !ok {
			p.RestoreState()
			return nil, false
		}
	}
	var result []token.Token
	for _, tok := range p.output[start:] {
		if !tok.IsJunk() && !tok.Kind.IsMarker() {
			result = append(result, tok)
		}
	}
	p.ForgetState()
	return result, true
}

// Expect is Match, failing with an ExpectedOneOfError.
func (p *Parser) Expect(tmpl token.Template, opts ...SpaceOption) (token.Token, error) {
	tok, ok := p.Match(tmpl, opts...)
	if !ok {
		return token.Token{}, p.expectedOneOf(p.Token(), []token.Template{tmpl})
	}
	return tok, nil
}

// ExpectOneOf is MatchOneOf, failing with an ExpectedOneOfError.
func (p *Parser) ExpectOneOf(tmpls []token.Template, opts ...SpaceOption) (token.Token, error) {
	tok, ok := p.MatchOneOf(tmpls, opts...)
	if !ok {
		return token.Token{}, p.expectedOneOf(p.Token(), tmpls)
	}
	return tok, nil
}

// ExpectSequence is MatchSequence, failing with an ExpectedSequenceError.
func (p *Parser) ExpectSequence(tmpls []token.Template, opts ...SpaceOption) ([]token.Token, error) {
	toks, ok := p.MatchSequence(tmpls, opts...)
	if !ok {
		return nil, p.expectedSequence(tmpls)
	}
	return toks, nil
}
