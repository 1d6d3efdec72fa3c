package grammar

import (
	"github.com/leapstack-labs/sqlreflow/pkg/parser"
	"github.com/leapstack-labs/sqlreflow/pkg/token"
)

// ---------- Names ----------

// parseObjectName parses [schema .] name and tags the parts as SCHEMA and
// kind.
func (g *Grammar) parseObjectName(p *parser.Parser, kind token.Kind) error {
	if _, err := p.Expect(token.Of(token.IDENTIFIER)); err != nil {
		return err
	}
	if _, ok := p.Match(token.Text(".")); !ok {
		p.Retag(1, kind)
		return nil
	}
	p.Retag(2, token.SCHEMA)
	_, err := p.Expect(token.Of(kind))
	return err
}

// parseName parses a dotted name without tagging it.
func (g *Grammar) parseName(p *parser.Parser) error {
	for {
		if _, err := p.Expect(token.Of(token.IDENTIFIER)); err != nil {
			return err
		}
		if _, ok := p.Match(token.Text(".")); !ok {
			return nil
		}
	}
}

// parseNameOrCall parses a column reference (a, t.a, s.t.a, t.*) or a
// function call (f(...), s.f(...)). Qualifiers are tagged by position.
func (g *Grammar) parseNameOrCall(p *parser.Parser) error {
	parts := 0
	for {
		if _, err := p.Expect(token.Of(token.IDENTIFIER)); err != nil {
			return err
		}
		parts++
		if _, ok := p.Match(token.Text(".")); !ok {
			break
		}
		if _, ok := p.Match(token.Text("*")); ok {
			g.tagQualifiers(p, parts)
			return nil
		}
	}

	if p.Check(token.Text("(")) {
		p.Retag(1, token.ROUTINE)
		if parts > 1 {
			p.Retag(3, token.SCHEMA)
		}
		return g.parseArguments(p)
	}
	g.tagQualifiers(p, parts-1)
	return nil
}

// tagQualifiers tags the n qualifiers in front of the last name part as
// RELATION and, when there are two, SCHEMA.
func (g *Grammar) tagQualifiers(p *parser.Parser, n int) {
	if n >= 1 {
		p.Retag(3, token.RELATION)
	}
	if n >= 2 {
		p.Retag(5, token.SCHEMA)
	}
}

func (g *Grammar) parseArguments(p *parser.Parser) error {
	if _, err := p.Expect(token.Text("("), parser.WithPrespace(false)); err != nil {
		return err
	}
	if _, ok := p.Match(token.Text(")")); ok {
		return nil
	}
	p.MatchOneOf(keywords("DISTINCT", "ALL"))
	if _, ok := p.Match(token.Text("*")); !ok {
		if err := g.parseExpressionList(p); err != nil {
			return err
		}
	}
	_, err := p.Expect(token.Text(")"))
	return err
}

// registers lists the special registers, longest spelling first where one
// is a prefix of another.
var registers = [][]string{
	{"CURRENT", "DATE"},
	{"CURRENT", "TIMESTAMP"},
	{"CURRENT", "TIME"},
	{"CURRENT", "SCHEMA"},
	{"CURRENT", "USER"},
	{"CURRENT_DATE"},
	{"CURRENT_TIMESTAMP"},
	{"CURRENT_TIME"},
	{"CURRENT_USER"},
	{"SESSION_USER"},
	{"SYSTEM_USER"},
	{"USER"},
}

// matchRegister consumes a special register such as CURRENT DATE and tags
// its words as REGISTER. Quoted names are never registers.
func (g *Grammar) matchRegister(p *parser.Parser) bool {
	if p.Token().Quoted() {
		return false
	}
	for _, words := range registers {
		tmpls := make([]token.Template, len(words))
		for i, w := range words {
			tmpls[i] = token.KV(token.REGISTER, w)
		}
		if _, ok := p.MatchSequence(tmpls); ok {
			return true
		}
	}
	return false
}

// ---------- Expressions ----------

func (g *Grammar) parseExpressionList(p *parser.Parser) error {
	for {
		if err := g.parseExpression(p); err != nil {
			return err
		}
		if _, ok := p.Match(token.Text(",")); !ok {
			return nil
		}
	}
}

// parseExpression parses a search condition or value expression. Binding
// from loosest to tightest: OR, AND, NOT, predicates, + - ||, * /, unary
// sign.
func (g *Grammar) parseExpression(p *parser.Parser) error {
	for {
		if err := g.parseConjunction(p); err != nil {
			return err
		}
		if _, ok := p.Match(token.Text("OR")); !ok {
			return nil
		}
	}
}

func (g *Grammar) parseConjunction(p *parser.Parser) error {
	for {
		if err := g.parseNegation(p); err != nil {
			return err
		}
		if _, ok := p.Match(token.Text("AND")); !ok {
			return nil
		}
	}
}

func (g *Grammar) parseNegation(p *parser.Parser) error {
	for {
		if _, ok := p.Match(token.Text("NOT")); !ok {
			break
		}
	}
	return g.parsePredicate(p)
}

var comparisons = token.Texts("=", "<>", "<", ">", "<=", ">=")

func (g *Grammar) parsePredicate(p *parser.Parser) error {
	if _, ok := p.Match(token.Text("EXISTS")); ok {
		return g.parseSubquery(p)
	}
	if err := g.parseArithmetic(p); err != nil {
		return err
	}

	if _, ok := p.MatchOneOf(comparisons); ok {
		if _, ok := p.MatchOneOf(keywords("ANY", "SOME", "ALL")); ok {
			return g.parseSubquery(p)
		}
		return g.parseArithmetic(p)
	}
	if _, ok := p.Match(token.Text("IS")); ok {
		p.Match(token.Text("NOT"))
		_, err := p.Expect(token.Text("NULL"))
		return err
	}

	switch {
	case matchEither(p, keywords("BETWEEN"), keywords("NOT", "BETWEEN")):
		if err := g.parseArithmetic(p); err != nil {
			return err
		}
		if _, err := p.Expect(token.Text("AND")); err != nil {
			return err
		}
		return g.parseArithmetic(p)

	case matchEither(p, keywords("IN"), keywords("NOT", "IN")):
		return g.parseParenthesized(p)

	case matchEither(p, keywords("LIKE"), keywords("NOT", "LIKE")):
		if err := g.parseArithmetic(p); err != nil {
			return err
		}
		if _, ok := p.Match(token.Text("ESCAPE")); ok {
			return g.parseArithmetic(p)
		}
	}
	return nil
}

// matchEither matches the first of the given keyword runs that fits.
func matchEither(p *parser.Parser, runs ...[]token.Template) bool {
	for _, run := range runs {
		if _, ok := p.MatchSequence(run); ok {
			return true
		}
	}
	return false
}

var (
	additiveOps       = token.Texts("+", "-", "||", "CONCAT")
	multiplicativeOps = token.Texts("*", "/")
	signs             = token.Texts("+", "-")
)

func (g *Grammar) parseArithmetic(p *parser.Parser) error {
	for {
		if err := g.parseTerm(p); err != nil {
			return err
		}
		if _, ok := p.MatchOneOf(additiveOps); !ok {
			return nil
		}
	}
}

func (g *Grammar) parseTerm(p *parser.Parser) error {
	for {
		if err := g.parseFactor(p); err != nil {
			return err
		}
		if _, ok := p.MatchOneOf(multiplicativeOps); !ok {
			return nil
		}
	}
}

func (g *Grammar) parseFactor(p *parser.Parser) error {
	for {
		if _, ok := p.MatchOneOf(signs, parser.WithPostspace(false)); !ok {
			break
		}
	}
	return g.parsePrimary(p)
}

var literals = []token.Template{
	token.Of(token.NUMBER),
	token.Of(token.STRING),
	token.Of(token.PARAMETER),
	token.Text("NULL"),
}

func (g *Grammar) parsePrimary(p *parser.Parser) error {
	switch {
	case p.Check(token.Text("(")):
		return g.parseParenthesized(p)
	case p.Check(token.Text("CASE")):
		return g.parseCase(p)
	case p.Check(token.Text("CAST")):
		return g.parseCast(p)
	}
	if g.matchRegister(p) {
		return nil
	}
	if _, ok := p.MatchOneOf(literals); ok {
		return nil
	}
	return g.parseNameOrCall(p)
}

// parseParenthesized parses ( query ) or ( expression [, ...] ), trying
// the query first.
func (g *Grammar) parseParenthesized(p *parser.Parser) error {
	if _, err := p.Expect(token.Text("(")); err != nil {
		return err
	}
	if !startsQuery(p) || !p.Try(func() error { return g.parseQuery(p) }) {
		if err := g.parseExpressionList(p); err != nil {
			return err
		}
	}
	_, err := p.Expect(token.Text(")"))
	return err
}

func (g *Grammar) parseSubquery(p *parser.Parser) error {
	if _, err := p.Expect(token.Text("(")); err != nil {
		return err
	}
	if err := g.parseQuery(p); err != nil {
		return err
	}
	_, err := p.Expect(token.Text(")"))
	return err
}

func (g *Grammar) parseCase(p *parser.Parser) error {
	if _, err := p.Expect(token.Text("CASE")); err != nil {
		return err
	}
	if !p.Check(token.Text("WHEN")) {
		if err := g.parseExpression(p); err != nil {
			return err
		}
	}
	for {
		if _, err := p.Expect(token.Text("WHEN")); err != nil {
			return err
		}
		if err := g.parseExpression(p); err != nil {
			return err
		}
		if _, err := p.Expect(token.Text("THEN")); err != nil {
			return err
		}
		if err := g.parseExpression(p); err != nil {
			return err
		}
		if !p.Check(token.Text("WHEN")) {
			break
		}
	}
	if _, ok := p.Match(token.Text("ELSE")); ok {
		if err := g.parseExpression(p); err != nil {
			return err
		}
	}
	_, err := p.Expect(token.Text("END"))
	return err
}

func (g *Grammar) parseCast(p *parser.Parser) error {
	if _, err := p.Expect(token.Text("CAST")); err != nil {
		return err
	}
	if _, err := p.Expect(token.Text("("), parser.WithPrespace(false)); err != nil {
		return err
	}
	if err := g.parseExpression(p); err != nil {
		return err
	}
	if _, err := p.Expect(token.Text("AS")); err != nil {
		return err
	}
	if err := g.parseDataType(p); err != nil {
		return err
	}
	_, err := p.Expect(token.Text(")"))
	return err
}
