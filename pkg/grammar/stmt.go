package grammar

import (
	"github.com/leapstack-labs/sqlreflow/pkg/parser"
	"github.com/leapstack-labs/sqlreflow/pkg/token"
)

// ---------- DDL ----------

// parseCreateTable parses
//
//	CREATE TABLE name ( column-definition [, ...] )
//
// with every column on its own line and the data types aligned.
func (g *Grammar) parseCreateTable(p *parser.Parser) error {
	if _, err := p.ExpectSequence(keywords("CREATE", "TABLE")); err != nil {
		return err
	}
	if err := g.parseObjectName(p, token.RELATION); err != nil {
		return err
	}
	if _, err := p.Expect(token.Text("(")); err != nil {
		return err
	}
	p.Indent()
	for {
		if err := g.parseColumnDefinition(p); err != nil {
			return err
		}
		if _, ok := p.Match(token.Text(",")); !ok {
			break
		}
		p.Newline()
	}
	p.VApply()
	p.Outdent()
	_, err := p.Expect(token.Text(")"))
	return err
}

func (g *Grammar) parseColumnDefinition(p *parser.Parser) error {
	if _, err := p.Expect(token.Of(token.IDENTIFIER)); err != nil {
		return err
	}
	p.VAlign()
	if err := g.parseDataType(p); err != nil {
		return err
	}
	for {
		switch {
		case p.Check(token.Text("NOT")):
			if _, err := p.ExpectSequence(keywords("NOT", "NULL")); err != nil {
				return err
			}
		case p.Check(token.Text("PRIMARY")):
			if _, err := p.ExpectSequence(keywords("PRIMARY", "KEY")); err != nil {
				return err
			}
		case p.Check(token.Text("UNIQUE")):
			p.Match(token.Text("UNIQUE"))
		case p.Check(token.Text("DEFAULT")):
			p.Match(token.Text("DEFAULT"))
			if err := g.parseDefault(p); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

// parseDataType parses a type name with an optional size, e.g. DECIMAL(5, 2).
func (g *Grammar) parseDataType(p *parser.Parser) error {
	if _, err := p.Expect(token.Of(token.DATATYPE)); err != nil {
		return err
	}
	// CHARACTER VARYING, DOUBLE PRECISION
	p.MatchOneOf(keywords("VARYING", "PRECISION"))
	if _, ok := p.Match(token.Text("("), parser.WithPrespace(false)); !ok {
		return nil
	}
	if _, err := p.Expect(token.Of(token.NUMBER)); err != nil {
		return err
	}
	if _, ok := p.Match(token.Text(",")); ok {
		if _, err := p.Expect(token.Of(token.NUMBER)); err != nil {
			return err
		}
	}
	_, err := p.Expect(token.Text(")"))
	return err
}

func (g *Grammar) parseDefault(p *parser.Parser) error {
	if g.matchRegister(p) {
		return nil
	}
	if _, ok := p.Match(token.Text("NULL")); ok {
		return nil
	}
	if _, ok := p.MatchOneOf(token.Texts("+", "-"), parser.WithPostspace(false)); ok {
		_, err := p.Expect(token.Of(token.NUMBER))
		return err
	}
	_, err := p.ExpectOneOf([]token.Template{token.Of(token.NUMBER), token.Of(token.STRING)})
	return err
}

// parseDropTable parses DROP TABLE name.
func (g *Grammar) parseDropTable(p *parser.Parser) error {
	if _, err := p.ExpectSequence(keywords("DROP", "TABLE")); err != nil {
		return err
	}
	return g.parseObjectName(p, token.RELATION)
}

// ---------- SET ----------

// parseSet parses SET [CURRENT] SCHEMA [=] name, falling back to a plain
// assignment (SET target [, ...] = expression [, ...]) when the statement
// turns out to be something else.
func (g *Grammar) parseSet(p *parser.Parser) error {
	if p.Try(func() error { return g.parseSetSchema(p) }) {
		return nil
	}
	if _, err := p.Expect(token.Text("SET")); err != nil {
		return err
	}
	for {
		if err := g.parseName(p); err != nil {
			return err
		}
		if _, ok := p.Match(token.Text(",")); !ok {
			break
		}
	}
	if _, err := p.Expect(token.Text("=")); err != nil {
		return err
	}
	return g.parseExpressionList(p)
}

func (g *Grammar) parseSetSchema(p *parser.Parser) error {
	if _, err := p.Expect(token.Text("SET")); err != nil {
		return err
	}
	p.Match(token.Text("CURRENT"))
	if _, err := p.Expect(token.Text("SCHEMA")); err != nil {
		return err
	}
	p.Match(token.Text("="))
	tok, err := p.Expect(token.Of(token.SCHEMA))
	if err != nil {
		return err
	}
	g.schema = tok.Text()
	if !p.Check(token.Of(token.STATEMENT)) {
		return p.Fail(token.Of(token.STATEMENT))
	}
	return nil
}
