package grammar

import (
	"github.com/leapstack-labs/sqlreflow/pkg/parser"
	"github.com/leapstack-labs/sqlreflow/pkg/token"
)

// ---------- Queries ----------

// parseQuery parses a full query: query terms joined by set operators and
// an optional ORDER BY.
func (g *Grammar) parseQuery(p *parser.Parser) error {
	if err := g.parseQueryTerm(p); err != nil {
		return err
	}
	for {
		if _, ok := p.MatchOneOf(keywords("UNION", "INTERSECT", "EXCEPT")); !ok {
			break
		}
		p.MatchOneOf(keywords("ALL", "DISTINCT"))
		if err := g.parseQueryTerm(p); err != nil {
			return err
		}
	}
	if _, ok := p.MatchSequence(keywords("ORDER", "BY")); ok {
		return g.parseOrderList(p)
	}
	return nil
}

func (g *Grammar) parseQueryTerm(p *parser.Parser) error {
	switch {
	case p.Check(token.Text("(")):
		p.Match(token.Text("("))
		if err := g.parseQuery(p); err != nil {
			return err
		}
		_, err := p.Expect(token.Text(")"))
		return err
	case p.Check(token.Text("VALUES")):
		return g.parseValues(p)
	}
	return g.parseSelect(p)
}

// startsQuery reports whether the current token may begin a query.
func startsQuery(p *parser.Parser) bool {
	return p.Check(token.Text("SELECT"), token.Text("VALUES"), token.Text("("))
}

func (g *Grammar) parseSelect(p *parser.Parser) error {
	if _, err := p.Expect(token.Text("SELECT")); err != nil {
		return err
	}
	p.MatchOneOf(keywords("ALL", "DISTINCT"))
	if err := g.parseSelectList(p); err != nil {
		return err
	}
	if _, ok := p.Match(token.Text("FROM")); ok {
		if err := g.parseTableRefs(p); err != nil {
			return err
		}
	}
	if _, ok := p.Match(token.Text("WHERE")); ok {
		if err := g.parseExpression(p); err != nil {
			return err
		}
	}
	if _, ok := p.MatchSequence(keywords("GROUP", "BY")); ok {
		if err := g.parseExpressionList(p); err != nil {
			return err
		}
	}
	if _, ok := p.Match(token.Text("HAVING")); ok {
		if err := g.parseExpression(p); err != nil {
			return err
		}
	}
	return nil
}

func (g *Grammar) parseSelectList(p *parser.Parser) error {
	if _, ok := p.Match(token.Text("*")); ok {
		return nil
	}
	for {
		if err := g.parseExpression(p); err != nil {
			return err
		}
		g.parseCorrelation(p)
		if _, ok := p.Match(token.Text(",")); !ok {
			return nil
		}
	}
}

func (g *Grammar) parseValues(p *parser.Parser) error {
	if _, err := p.Expect(token.Text("VALUES")); err != nil {
		return err
	}
	return g.parseExpressionList(p)
}

func (g *Grammar) parseOrderList(p *parser.Parser) error {
	for {
		if err := g.parseExpression(p); err != nil {
			return err
		}
		p.MatchOneOf(keywords("ASC", "DESC"))
		if _, ok := p.Match(token.Text(",")); !ok {
			return nil
		}
	}
}

// ---------- FROM ----------

func (g *Grammar) parseTableRefs(p *parser.Parser) error {
	for {
		if err := g.parseTableRef(p); err != nil {
			return err
		}
		if _, ok := p.Match(token.Text(",")); !ok {
			return nil
		}
	}
}

func (g *Grammar) parseTableRef(p *parser.Parser) error {
	if err := g.parseTablePrimary(p); err != nil {
		return err
	}
	for {
		cross, ok := g.matchJoin(p)
		if !ok {
			return nil
		}
		if err := g.parseTablePrimary(p); err != nil {
			return err
		}
		if cross {
			continue
		}
		if _, err := p.Expect(token.Text("ON")); err != nil {
			return err
		}
		if err := g.parseExpression(p); err != nil {
			return err
		}
	}
}

var joinTypes = [][]string{
	{"INNER", "JOIN"},
	{"LEFT", "OUTER", "JOIN"},
	{"LEFT", "JOIN"},
	{"RIGHT", "OUTER", "JOIN"},
	{"RIGHT", "JOIN"},
	{"FULL", "OUTER", "JOIN"},
	{"FULL", "JOIN"},
	{"JOIN"},
}

// matchJoin consumes a join operator. cross is set for CROSS JOIN, which
// takes no join condition.
func (g *Grammar) matchJoin(p *parser.Parser) (cross, ok bool) {
	if _, ok := p.MatchSequence(keywords("CROSS", "JOIN")); ok {
		return true, true
	}
	for _, words := range joinTypes {
		if _, ok := p.MatchSequence(keywords(words...)); ok {
			return false, true
		}
	}
	return false, false
}

func (g *Grammar) parseTablePrimary(p *parser.Parser) error {
	if _, ok := p.Match(token.Text("(")); ok {
		if !p.Try(func() error { return g.parseQuery(p) }) {
			if err := g.parseTableRef(p); err != nil {
				return err
			}
		}
		if _, err := p.Expect(token.Text(")")); err != nil {
			return err
		}
	} else if err := g.parseObjectName(p, token.RELATION); err != nil {
		return err
	}
	g.parseCorrelation(p)
	return nil
}

// parseCorrelation consumes an optional [AS] alias. Without AS only a plain
// identifier counts, so that a following keyword is left alone.
func (g *Grammar) parseCorrelation(p *parser.Parser) {
	p.Try(func() error {
		if _, ok := p.Match(token.Text("AS")); !ok && p.Token().Kind != token.IDENTIFIER {
			return parser.ErrBacktrack
		}
		_, err := p.Expect(token.Of(token.IDENTIFIER))
		return err
	})
}
