package parser

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/leapstack-labs/sqlreflow/pkg/format"
	"github.com/leapstack-labs/sqlreflow/pkg/token"
	"github.com/leapstack-labs/sqlreflow/pkg/tokenizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testGrammar understands a tiny subset of SQL:
//
//	SELECT name [, name ...] FROM name [WHERE name op literal]
//	SET SCHEMA name
type testGrammar struct {
	schema string
}

func (g *testGrammar) SaveState() any     { return g.schema }
func (g *testGrammar) RestoreState(s any) { g.schema = s.(string) }
func (g *testGrammar) Reset()             { g.schema = "" }

func (g *testGrammar) ParseTop(p *Parser) error {
	switch {
	case p.Check(token.Text("SELECT")):
		return g.parseSelect(p)
	case p.Check(token.Text("SET")):
		return g.parseSetSchema(p)
	}
	return p.Fail(token.Text("SELECT"), token.Text("SET"))
}

func (g *testGrammar) parseSelect(p *Parser) error {
	if _, err := p.Expect(token.Text("SELECT")); err != nil {
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
	if _, err := p.Expect(token.Text("FROM")); err != nil {
		return err
	}
	if err := g.parseName(p); err != nil {
		return err
	}
	if _, ok := p.Match(token.Text("WHERE")); ok {
		if err := g.parseName(p); err != nil {
			return err
		}
		if _, err := p.ExpectOneOf(token.Texts("=", "<>", "<", ">")); err != nil {
			return err
		}
		if _, err := p.ExpectOneOf([]token.Template{token.Of(token.NUMBER), token.Of(token.STRING)}); err != nil {
			return err
		}
	}
	return nil
}

func (g *testGrammar) parseName(p *Parser) error {
	if _, err := p.Expect(token.Of(token.IDENTIFIER)); err != nil {
		return err
	}
	if _, ok := p.Match(token.Text(".")); ok {
		p.Retag(2, token.RELATION)
		if _, err := p.Expect(token.Of(token.IDENTIFIER)); err != nil {
			return err
		}
	}
	return nil
}

func (g *testGrammar) parseSetSchema(p *Parser) error {
	if _, err := p.ExpectSequence([]token.Template{token.Text("SET"), token.Text("SCHEMA")}); err != nil {
		return err
	}
	tok, err := p.Expect(token.Of(token.SCHEMA))
	if err != nil {
		return err
	}
	g.schema = tok.Text()
	return nil
}

// grammarFunc adapts a function to Grammar for one-off tests.
type grammarFunc func(p *Parser) error

func (f grammarFunc) ParseTop(p *Parser) error { return f(p) }

func lex(t *testing.T, src string) []token.Token {
	t.Helper()
	cfg := tokenizer.DefaultConfig()
	cfg.Keywords = tokenizer.KeywordSet("SELECT", "FROM", "WHERE", "SET", "SCHEMA")
	cfg.BlockComments = true
	toks, err := tokenizer.New(cfg).Tokenize(src, ";", false)
	require.NoError(t, err)
	return toks
}

func parse(t *testing.T, src string, opts format.Options) (string, error) {
	t.Helper()
	out, err := New(&testGrammar{}, opts).Parse(lex(t, src))
	if err != nil {
		return "", err
	}
	return token.Concat(out), nil
}

func requireInvariant(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected an invariant panic")
		_, ok := r.(*InvariantError)
		require.True(t, ok, "panic value %v is not an *InvariantError", r)
	}()
	fn()
}

// ---------- Parse ----------

func TestParse_Layout(t *testing.T) {
	keywordsOnly := format.DefaultOptions()
	keywordsOnly.Reformat = token.NewKindSet(token.WHITESPACE, token.KEYWORD, token.TERMINATOR)

	noSpace := format.DefaultOptions()
	noSpace.Reformat = noSpace.Reformat.Without(token.WHITESPACE)

	tests := []struct {
		name string
		src  string
		opts format.Options
		want string
	}{
		{
			name: "keywords and whitespace only",
			src:  "select   a ,b\nfrom t where a=1;",
			opts: keywordsOnly,
			want: "SELECT a, b FROM t WHERE a = 1;\n\n",
		},
		{
			name: "default reformat",
			src:  "select a,b from t;",
			opts: format.DefaultOptions(),
			want: "SELECT A, B FROM T;\n\n",
		},
		{
			name: "qualified names",
			src:  "select t . a from s.t;",
			opts: format.DefaultOptions(),
			want: "SELECT T.A FROM S.T;\n\n",
		},
		{
			name: "several statements",
			src:  ";;\n select a from t; ;select b from u",
			opts: format.DefaultOptions(),
			want: "SELECT A FROM T;\n\nSELECT B FROM U;\n\n",
		},
		{
			name: "quoted names and strings",
			src:  `select "a b" from t where x = 'it''s';`,
			opts: format.DefaultOptions(),
			want: "SELECT \"a b\" FROM T WHERE X = 'it''s';\n\n",
		},
		{
			name: "trailing line comment",
			src:  "select a -- first\n  from t;",
			opts: format.DefaultOptions(),
			want: "SELECT A -- first\nFROM T;\n\n",
		},
		{
			name: "leading block comment",
			src:  "/* c */ select a from t;",
			opts: format.DefaultOptions(),
			want: "/* c */\nSELECT A FROM T;\n\n",
		},
		{
			name: "leading line comment",
			src:  "-- c\nselect a from t;",
			opts: format.DefaultOptions(),
			want: "-- c\nSELECT A FROM T;\n\n",
		},
		{
			name: "comment on the line after a statement",
			src:  "select a from t;\r\n-- trailing\r\nselect b from u;",
			opts: format.DefaultOptions(),
			want: "SELECT A FROM T;\n\n-- trailing\nSELECT B FROM U;\n\n",
		},
		{
			name: "comment on the statement's line",
			src:  "select a from t; -- done\nselect b from u;",
			opts: format.DefaultOptions(),
			want: "SELECT A FROM T; -- done\n\nSELECT B FROM U;\n\n",
		},
		{
			name: "block comment between statements",
			src:  "select a from t;\n/* next */ select b from u;",
			opts: format.DefaultOptions(),
			want: "SELECT A FROM T;\n\n/* next */\nSELECT B FROM U;\n\n",
		},
		{
			name: "whitespace kept",
			src:  "select  a ,b from t ;",
			opts: noSpace,
			want: "SELECT  A ,B FROM T ;",
		},
		{
			name: "empty input",
			src:  "  ;\n",
			opts: format.DefaultOptions(),
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parse(t, tt.src, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Idempotent(t *testing.T) {
	first, err := parse(t, "select a,b from s.t where a<>'x';", format.DefaultOptions())
	require.NoError(t, err)
	second, err := parse(t, first, format.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestParse_PositionsRecalculated(t *testing.T) {
	out, err := New(&testGrammar{}, format.DefaultOptions()).Parse(lex(t, "select a from t; select b from u;"))
	require.NoError(t, err)
	var from []token.Position
	for _, tok := range out {
		if tok.Kind == token.KEYWORD && tok.Value == "FROM" {
			from = append(from, tok.Pos())
		}
	}
	assert.Equal(t, []token.Position{{Line: 1, Column: 10}, {Line: 3, Column: 10}}, from)
}

func TestParse_ExpectedOneOf(t *testing.T) {
	_, err := parse(t, "select from t;", format.DefaultOptions())
	require.Error(t, err)

	var e *ExpectedOneOfError
	require.True(t, errors.As(err, &e))
	assert.Equal(t, []token.Template{token.Text("FROM")}, e.Expected)
	assert.Equal(t, `parse error at line 1, column 13: expected "FROM" but found "T"`, err.Error())
	assert.Equal(t, token.Position{Line: 1, Column: 13}, e.Pos())

	detail := e.Detail()
	assert.Contains(t, detail, "line   : 1")
	assert.Contains(t, detail, "column : 13")
	assert.Contains(t, detail, "^")

	pe, ok := AsParseError(err)
	require.True(t, ok)
	assert.Equal(t, "select from t;", pe.Source)
}

func TestParse_ExpectedSequence(t *testing.T) {
	_, err := parse(t, "set path foo;", format.DefaultOptions())
	require.Error(t, err)

	var e *ExpectedSequenceError
	require.True(t, errors.As(err, &e))
	assert.Equal(t, `parse error at line 1, column 1: expected "SET SCHEMA" but found "SET PATH"`, err.Error())
	require.Len(t, e.Found, 2)
	assert.Equal(t, 5, e.Found[1].Column)
}

func TestParse_NoAlternative(t *testing.T) {
	_, err := parse(t, "drop table t;", format.DefaultOptions())
	var e *ExpectedOneOfError
	require.True(t, errors.As(err, &e))
	assert.Contains(t, err.Error(), `expected "SELECT", "SET" but found "DROP"`)

	g := grammarFunc(func(p *Parser) error { return ErrBacktrack })
	_, err = New(g, format.DefaultOptions()).Parse(lex(t, "select a;"))
	pe, ok := AsParseError(err)
	require.True(t, ok)
	assert.Equal(t, `unexpected "SELECT"`, pe.Message)
}

func TestParse_MissingTerminatorAtEOF(t *testing.T) {
	_, err := parse(t, "select a from t where", format.DefaultOptions())
	var e *ExpectedOneOfError
	require.True(t, errors.As(err, &e))
	assert.Equal(t, token.EOF, e.Token.Kind)
	assert.Equal(t, token.Position{Line: 1, Column: 22}, e.Pos())
}

func TestParse_GrammarBugs(t *testing.T) {
	t.Run("outdent below zero", func(t *testing.T) {
		g := grammarFunc(func(p *Parser) error {
			p.Match(token.Text("SELECT"))
			p.Outdent()
			return nil
		})
		_, err := New(g, format.DefaultOptions()).Parse(lex(t, "select;"))
		var ie *InvariantError
		require.True(t, errors.As(err, &ie))
		assert.Contains(t, ie.Error(), "below zero")
	})

	t.Run("leaked state", func(t *testing.T) {
		g := grammarFunc(func(p *Parser) error {
			p.SaveState()
			_, err := p.Expect(token.Text("SELECT"))
			return err
		})
		_, err := New(g, format.DefaultOptions()).Parse(lex(t, "select;"))
		assert.ErrorIs(t, err, ErrUnbalancedState)
	})

	t.Run("restore without save", func(t *testing.T) {
		g := grammarFunc(func(p *Parser) error {
			p.RestoreState()
			return nil
		})
		_, err := New(g, format.DefaultOptions()).Parse(lex(t, "select;"))
		var ie *InvariantError
		assert.True(t, errors.As(err, &ie))
	})
}

func TestParser_Reusable(t *testing.T) {
	g := &testGrammar{}
	p := New(g, format.DefaultOptions())

	_, err := p.Parse(lex(t, "set schema foo;"))
	require.NoError(t, err)
	assert.Equal(t, "FOO", g.schema)

	out, err := p.Parse(lex(t, "select a from t;"))
	require.NoError(t, err)
	assert.Equal(t, "SELECT A FROM T;\n\n", token.Concat(out))
	assert.Empty(t, g.schema, "extension state is reset per parse")
}

// ---------- Matching ----------

func TestMatch_Spacing(t *testing.T) {
	p := New(&testGrammar{}, format.DefaultOptions())
	p.reset(lex(t, "- a ( b ) , c"))

	_, ok := p.Match(token.Text("-"), WithPostspace(false))
	require.True(t, ok)
	p.Match(token.Of(token.IDENTIFIER))
	p.Match(token.Text("("))
	p.Match(token.Of(token.IDENTIFIER))
	p.Match(token.Text(")"))
	p.Match(token.Text(","), WithPrespace(true))
	p.Match(token.Of(token.IDENTIFIER), WithPrespace(false))

	assert.Equal(t, "-a (b) ,c", token.Concat(p.Output()))
}

func TestMatch_UpgradesKind(t *testing.T) {
	p := New(&testGrammar{}, format.DefaultOptions())
	p.reset(lex(t, "select t"))

	tok, ok := p.Match(token.Of(token.RELATION))
	require.True(t, ok)
	assert.Equal(t, token.RELATION, tok.Kind)
	assert.Equal(t, "SELECT", tok.Value)

	tok, ok = p.Match(token.KV(token.SCHEMA, "T"))
	require.True(t, ok)
	assert.Equal(t, token.SCHEMA, tok.Kind)
	assert.Equal(t, token.EOF, p.Token().Kind)
}

func TestMatchSequence_Isolation(t *testing.T) {
	p := New(&testGrammar{}, format.DefaultOptions())
	p.reset(lex(t, "select /* c */ a b from t"))

	p.Match(token.Text("SELECT"))
	index, output := p.Index(), p.Output()

	toks, ok := p.MatchSequence([]token.Template{token.Of(token.IDENTIFIER), token.Text(","), token.Of(token.IDENTIFIER)})
	assert.False(t, ok)
	assert.Nil(t, toks)
	assert.Equal(t, index, p.Index())
	if diff := cmp.Diff(output, p.Output()); diff != "" {
		t.Errorf("output changed by a failed sequence (-want +got):\n%s", diff)
	}

	toks, ok = p.MatchSequence([]token.Template{token.Of(token.IDENTIFIER), token.Of(token.IDENTIFIER), token.Text("FROM")}, WithInterspace(false))
	require.True(t, ok)
	require.Len(t, toks, 3)
	assert.Equal(t, []any{"A", "B", "FROM"}, []any{toks[0].Value, toks[1].Value, toks[2].Value})
	assert.Zero(t, p.Depth())
}

func TestExpectOneOf_Error(t *testing.T) {
	p := New(&testGrammar{}, format.DefaultOptions())
	p.reset(lex(t, "select 'x'"))
	p.Match(token.Text("SELECT"))

	_, err := p.ExpectOneOf([]token.Template{token.Of(token.NUMBER), token.Of(token.IDENTIFIER)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `expected "<number>", "<name>" but found "x"`)
	assert.Equal(t, 2, p.Index(), "cursor not moved")
}

// ---------- State ----------

func TestTry_RestoresEverything(t *testing.T) {
	g := &testGrammar{}
	p := New(g, format.DefaultOptions())
	p.reset(lex(t, "set schema foo bar"))

	ok := p.Try(func() error {
		if err := g.parseSetSchema(p); err != nil {
			return err
		}
		p.Indent()
		_, err := p.Expect(token.Text("BAZ"))
		return err
	})
	assert.False(t, ok)
	assert.Empty(t, g.schema)
	assert.Zero(t, p.Index())
	assert.Zero(t, p.Level())
	assert.Empty(t, p.Output())
	assert.Zero(t, p.Depth())

	ok = p.Try(func() error { return g.parseSetSchema(p) })
	assert.True(t, ok)
	assert.Equal(t, "FOO", g.schema)
	assert.Equal(t, "BAR", p.Token().Value)
}

func TestTryErr(t *testing.T) {
	p := New(&testGrammar{}, format.DefaultOptions())
	p.reset(lex(t, "select a"))

	ok, err := p.TryErr(func() error {
		p.Match(token.Text("SELECT"))
		return ErrBacktrack
	})
	assert.False(t, ok)
	assert.NoError(t, err)

	boom := errors.New("boom")
	ok, err = p.TryErr(func() error {
		p.Match(token.Text("SELECT"))
		return boom
	})
	assert.False(t, ok)
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, p.Index(), "rolled back before returning the error")
}

func TestTry_LeakedStatePanics(t *testing.T) {
	p := New(&testGrammar{}, format.DefaultOptions())
	p.reset(lex(t, "select"))
	requireInvariant(t, func() {
		p.Try(func() error {
			p.SaveState()
			return nil
		})
	})
}

func TestNestedStates(t *testing.T) {
	p := New(&testGrammar{}, format.DefaultOptions())
	p.reset(lex(t, "select a from t"))

	p.SaveState()
	p.Match(token.Text("SELECT"))
	p.SaveState()
	p.Match(token.Of(token.IDENTIFIER))
	p.ForgetState()
	p.Match(token.Text("FROM"))
	require.Equal(t, 1, p.Depth())

	p.RestoreState()
	assert.Zero(t, p.Index())
	assert.Empty(t, p.Output())
}

// ---------- Output edits ----------

func TestBackIndex(t *testing.T) {
	p := New(&testGrammar{}, format.DefaultOptions())
	p.output = []token.Token{
		{Kind: token.KEYWORD, Value: "A"},
		spaceToken(" "),
		{Kind: token.KEYWORD, Value: "B"},
		{Kind: token.COMMENT, Source: "/* c */"},
		spaceToken(""),
		indentToken(0),
	}

	tests := []struct {
		n    int
		want int
	}{
		{0, 6},
		{1, 2},
		{2, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, p.backIndex(tt.n), "backIndex(%d)", tt.n)
	}
	requireInvariant(t, func() { p.backIndex(3) })
	requireInvariant(t, func() { p.backIndex(-1) })

	p.SaveState()
	assert.Equal(t, 6, p.backIndex(0))
	requireInvariant(t, func() { p.backIndex(1) })
}

func TestNewlineAt_BeforeLastToken(t *testing.T) {
	p := New(&testGrammar{}, format.DefaultOptions())
	p.reset(lex(t, "select a where"))

	p.Match(token.Text("SELECT"))
	p.Match(token.Of(token.IDENTIFIER))
	p.Match(token.Text("WHERE"))
	p.IndentAt(1, false)

	kinds := make([]token.Kind, 0, len(p.output))
	for _, tok := range p.output {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []token.Kind{
		token.KEYWORD, token.WHITESPACE, token.IDENTIFIER, token.WHITESPACE, token.INDENT, token.KEYWORD,
	}, kinds)
	assert.Equal(t, 1, p.output[4].Value)
}

func TestNewline_Deduplicates(t *testing.T) {
	p := New(&testGrammar{}, format.DefaultOptions())
	p.reset(lex(t, "a"))

	p.Match(token.Of(token.IDENTIFIER))
	p.Newline()
	p.Indent()
	require.Len(t, p.output, 2)
	assert.Equal(t, 1, p.output[1].Value)

	p.NewlineAt(0, true)
	assert.Len(t, p.output, 3)
}

func TestNewline_DedupUndoneOnRestore(t *testing.T) {
	p := New(&testGrammar{}, format.DefaultOptions())
	p.reset(lex(t, "a"))
	p.Match(token.Of(token.IDENTIFIER))
	p.Newline()
	before := p.Output()

	p.SaveState()
	p.Indent()
	require.Len(t, p.output, 2, "replaced rather than inserted")
	assert.Equal(t, 1, p.output[1].Value)
	p.RestoreState()

	if diff := cmp.Diff(before, p.Output()); diff != "" {
		t.Errorf("restore did not undo the replaced INDENT (-want +got):\n%s", diff)
	}
}

func TestUpdateOutputAndRetag(t *testing.T) {
	p := New(&testGrammar{}, format.DefaultOptions())
	p.reset(lex(t, "s . t x"))

	p.Match(token.Of(token.IDENTIFIER))
	p.Match(token.Text("."))
	p.Retag(2, token.SCHEMA)
	p.Match(token.Of(token.IDENTIFIER))
	p.UpdateOutput(token.Token{Kind: token.RELATION, Value: "T", Source: "t"}, 1)

	var kinds []token.Kind
	for _, tok := range p.output {
		if !tok.IsJunk() {
			kinds = append(kinds, tok.Kind)
		}
	}
	assert.Equal(t, []token.Kind{token.SCHEMA, token.OPERATOR, token.RELATION}, kinds)
	requireInvariant(t, func() { p.UpdateOutput(token.Token{}, 0) })
}

func TestVAlignMarkers(t *testing.T) {
	g := grammarFunc(func(p *Parser) error {
		if _, err := p.Expect(token.Text("SELECT")); err != nil {
			return err
		}
		p.Indent()
		for i := 0; ; i++ {
			if _, err := p.Expect(token.Of(token.IDENTIFIER)); err != nil {
				return err
			}
			p.VAlign()
			if _, err := p.Expect(token.Of(token.IDENTIFIER)); err != nil {
				return err
			}
			if _, ok := p.Match(token.Text(",")); !ok {
				break
			}
			p.Newline()
		}
		p.VApply()
		p.Outdent()
		return nil
	})
	out, err := New(g, format.DefaultOptions()).Parse(lex(t, "select a int, bbb char, cc date;"))
	require.NoError(t, err)
	assert.Equal(t, "SELECT\n    A   INT,\n    BBB CHAR,\n    CC  DATE\n;\n\n", token.Concat(out))
}
