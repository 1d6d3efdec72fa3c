package grammar

import (
	"errors"
	"testing"

	"github.com/leapstack-labs/sqlreflow/pkg/dialects/ansi"
	"github.com/leapstack-labs/sqlreflow/pkg/format"
	"github.com/leapstack-labs/sqlreflow/pkg/parser"
	"github.com/leapstack-labs/sqlreflow/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reflow(t *testing.T, g *Grammar, src string, opts format.Options) ([]token.Token, error) {
	t.Helper()
	toks, err := ansi.SQL92.NewTokenizer().Tokenize(src, ";", false)
	require.NoError(t, err)
	return parser.New(g, opts).Parse(toks)
}

func reflowText(t *testing.T, src string) string {
	t.Helper()
	out, err := reflow(t, New(), src, ansi.SQL92.FormatOptions())
	require.NoError(t, err)
	return token.Concat(out)
}

// kinds maps the text of every significant output token to its kind.
func kinds(toks []token.Token) map[string]token.Kind {
	m := map[string]token.Kind{}
	for _, tok := range toks {
		if !tok.IsJunk() && !tok.Kind.IsMarker() {
			m[tok.Source] = tok.Kind
		}
	}
	return m
}

func TestReflow(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "create table aligns types",
			src:  "create table s.t (a integer not null, bbb varchar(10) default 'x', cc date)",
			want: "CREATE TABLE S.T (\n    A   INTEGER NOT NULL,\n    BBB VARCHAR(10) DEFAULT 'x',\n    CC  DATE\n);\n\n",
		},
		{
			name: "subqueries",
			src:  "select * from (select a from t) as x where a in (select b from u);",
			want: "SELECT * FROM (SELECT A FROM T) AS X WHERE A IN (SELECT B FROM U);\n\n",
		},
		{
			name: "joins",
			src:  "select a from t left outer join u on t.k = u.k cross join v",
			want: "SELECT A FROM T LEFT OUTER JOIN U ON T.K = U.K CROSS JOIN V;\n\n",
		},
		{
			name: "expressions",
			src: "select -a + 2*(b-1), case when a between 1 and 2 then 'x' else null end from t " +
				"where not a is null and b like 'a%' or c not in (1,2)",
			want: "SELECT -A + 2 * (B - 1), CASE WHEN A BETWEEN 1 AND 2 THEN 'x' ELSE NULL END FROM T " +
				"WHERE NOT A IS NULL AND B LIKE 'a%' OR C NOT IN (1, 2);\n\n",
		},
		{
			name: "set operators and order by",
			src:  "select a from t union all select b from u order by 1 desc",
			want: "SELECT A FROM T UNION ALL SELECT B FROM U ORDER BY 1 DESC;\n\n",
		},
		{
			name: "values and drop",
			src:  "values (1, 'a'), (2, 'b'); drop table t;",
			want: "VALUES (1, 'a'), (2, 'b');\n\nDROP TABLE T;\n\n",
		},
		{
			name: "aliases",
			src:  "select count(*) n, max(distinct a) as m from t x",
			want: "SELECT COUNT(*) N, MAX(DISTINCT A) AS M FROM T X;\n\n",
		},
		{
			name: "cast and exists",
			src:  "select cast(a as decimal(5,2)) from t where exists (select 1 from u)",
			want: "SELECT CAST(A AS DECIMAL(5, 2)) FROM T WHERE EXISTS (SELECT 1 FROM U);\n\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reflowText(t, tt.src)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, reflowText(t, got), "reflow is not idempotent")
		})
	}
}

func TestReflow_KeywordsOnly(t *testing.T) {
	opts := ansi.SQL92.FormatOptions()
	opts.Reformat = token.NewKindSet(token.WHITESPACE, token.KEYWORD, token.TERMINATOR)

	out, err := reflow(t, New(), "select   a ,b\nfrom t where a=1;", opts)
	require.NoError(t, err)
	assert.Equal(t, "SELECT a, b FROM t WHERE a = 1;\n\n", token.Concat(out))
}

func TestReflow_NameKinds(t *testing.T) {
	out, err := reflow(t, New(), "select s.t.c, r.*, f(x), q.g() from s.t", ansi.SQL92.FormatOptions())
	require.NoError(t, err)
	assert.Equal(t, "SELECT S.T.C, R.*, F(X), Q.G() FROM S.T;\n\n", token.Concat(out))

	got := kinds(out)
	assert.Equal(t, token.SCHEMA, got["S"])
	assert.Equal(t, token.RELATION, got["T"])
	assert.Equal(t, token.IDENTIFIER, got["C"])
	assert.Equal(t, token.RELATION, got["R"])
	assert.Equal(t, token.ROUTINE, got["F"])
	assert.Equal(t, token.IDENTIFIER, got["X"])
	assert.Equal(t, token.SCHEMA, got["Q"])
	assert.Equal(t, token.ROUTINE, got["G"])
}

func TestReflow_Registers(t *testing.T) {
	out, err := reflow(t, New(), `select current date, user, "user" from t`, ansi.SQL92.FormatOptions())
	require.NoError(t, err)
	assert.Equal(t, `SELECT CURRENT DATE, USER, "user" FROM T;`+"\n\n", token.Concat(out))

	var registers, names int
	for _, tok := range out {
		switch tok.Kind {
		case token.REGISTER:
			registers++
		case token.IDENTIFIER:
			names++
		}
	}
	assert.Equal(t, 3, registers)
	assert.Equal(t, 1, names, "a quoted user is a column")
}

func TestSetSchema(t *testing.T) {
	g := New()
	out, err := reflow(t, g, "set schema bar; set schema = foo || 'x';", ansi.SQL92.FormatOptions())
	require.NoError(t, err)
	assert.Equal(t, "SET SCHEMA BAR;\n\nSET SCHEMA = FOO || 'x';\n\n", token.Concat(out))
	assert.Equal(t, "BAR", g.Schema(), "the abandoned SET SCHEMA must not stick")

	_, err = reflow(t, g, "set current schema = baz;", ansi.SQL92.FormatOptions())
	require.NoError(t, err)
	assert.Equal(t, "BAZ", g.Schema())

	_, err = reflow(t, g, "select a from t;", ansi.SQL92.FormatOptions())
	require.NoError(t, err)
	assert.Empty(t, g.Schema(), "each parse starts without a schema")
}

func TestReflow_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{"unknown statement", "update t set a = 1", `found "UPDATE"`},
		{"missing table", "select a from", "expected"},
		{"unbalanced parenthesis", "select (a from t", `expected ")"`},
		{"case without when", "select case end from t", `expected "WHEN"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reflow(t, New(), tt.src, ansi.SQL92.FormatOptions())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			_, ok := parser.AsParseError(err)
			assert.True(t, ok, "%T is not a parse error", err)
		})
	}
}

func TestReflow_DropSequenceError(t *testing.T) {
	_, err := reflow(t, New(), "drop view v", ansi.SQL92.FormatOptions())
	var seqErr *parser.ExpectedSequenceError
	require.True(t, errors.As(err, &seqErr), "got %v", err)
	assert.Equal(t, `parse error at line 1, column 1: expected "DROP TABLE" but found "DROP VIEW"`, err.Error())
}
