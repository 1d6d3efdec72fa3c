// Package grammar provides a reference SQL grammar for the parser engine.
//
// It covers a deliberately small statement set: queries (SELECT, VALUES and
// set operators), CREATE TABLE, DROP TABLE and SET SCHEMA. Everything is
// written against the primitives of parser.Parser, so it doubles as the
// worked example for dialect grammars.
//
// Queries are laid out on a single line. CREATE TABLE puts one column per
// line with the data types aligned:
//
//	CREATE TABLE S.T (
//	    A   INTEGER NOT NULL,
//	    BBB VARCHAR(10)
//	);
package grammar

import (
	"github.com/leapstack-labs/sqlreflow/pkg/parser"
	"github.com/leapstack-labs/sqlreflow/pkg/token"
)

// Grammar is the reference grammar. It tracks the current schema set by
// SET SCHEMA statements, and rolls it back along with the parser when an
// alternative is abandoned.
type Grammar struct {
	schema string
}

// New returns a grammar with no current schema.
func New() *Grammar {
	return &Grammar{}
}

// Schema returns the schema named by the last SET SCHEMA statement.
func (g *Grammar) Schema() string {
	return g.schema
}

// SaveState implements parser.Extension.
func (g *Grammar) SaveState() any { return g.schema }

// RestoreState implements parser.Extension.
func (g *Grammar) RestoreState(state any) {
	g.schema, _ = state.(string)
}

// Reset implements parser.Extension.
func (g *Grammar) Reset() { g.schema = "" }

// statementStarts lists the first tokens of the statements the grammar
// knows, for "expected ..." messages.
var statementStarts = []token.Template{
	token.Text("SELECT"),
	token.Text("VALUES"),
	token.Text("("),
	token.Text("CREATE"),
	token.Text("DROP"),
	token.Text("SET"),
}

// ParseTop implements parser.Grammar.
func (g *Grammar) ParseTop(p *parser.Parser) error {
	switch {
	case startsQuery(p):
		return g.parseQuery(p)
	case p.Check(token.Text("CREATE")):
		return g.parseCreateTable(p)
	case p.Check(token.Text("DROP")):
		return g.parseDropTable(p)
	case p.Check(token.Text("SET")):
		return g.parseSet(p)
	}
	return p.Fail(statementStarts...)
}

// keywords is a shorthand for matching a fixed run of words.
func keywords(words ...string) []token.Template {
	return token.Texts(words...)
}
