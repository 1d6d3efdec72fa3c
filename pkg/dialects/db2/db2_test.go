package db2

import (
	"testing"

	"github.com/leapstack-labs/sqlreflow/pkg/dialect"
	"github.com/leapstack-labs/sqlreflow/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// significant drops whitespace so tests can index the interesting tokens.
func significant(toks []token.Token) []token.Token {
	var out []token.Token
	for _, tok := range toks {
		if tok.Kind != token.WHITESPACE {
			out = append(out, tok)
		}
	}
	return out
}

func TestRegistered(t *testing.T) {
	for _, name := range []string{"db2zos", "db2luw"} {
		d, ok := dialect.Get(name)
		require.True(t, ok, name)
		assert.True(t, d.IsKeyword("select"), name)
		assert.Equal(t, NameChars, d.NameChars)
	}
}

func TestZOS_Literals(t *testing.T) {
	toks, err := ZOS.NewTokenizer().Tokenize("x'4142' N'abc' $a#1 ^= b", ";", false)
	require.NoError(t, err)
	got := significant(toks)
	require.Len(t, got, 5)

	assert.Equal(t, token.STRING, got[0].Kind)
	assert.Equal(t, "AB", got[0].Value)
	assert.Equal(t, token.STRING, got[1].Kind)
	assert.Equal(t, "abc", got[1].Value)
	assert.Equal(t, token.IDENTIFIER, got[2].Kind)
	assert.Equal(t, "$A#1", got[2].Value)
	assert.Equal(t, "<>", got[3].Value)
	assert.Equal(t, "^=", got[3].Source)
}

func TestZOS_NoBlockComments(t *testing.T) {
	toks, err := ZOS.NewTokenizer().Tokenize("/* x */", ";", false)
	require.NoError(t, err)
	assert.NotEqual(t, token.COMMENT, toks[0].Kind)
}

func TestLUW_Extensions(t *testing.T) {
	src := "/* a /* b */ c */ U&'\\0041' a..b f(p => 1) c[1] INFINITY \"NAN\""
	toks, err := LUW.NewTokenizer().Tokenize(src, ";", false)
	require.NoError(t, err)
	assert.Equal(t, src, token.Concat(toks))

	got := significant(toks)
	assert.Equal(t, token.COMMENT, got[0].Kind)
	assert.Equal(t, "/* a /* b */ c */", got[0].Source)
	assert.Equal(t, "A", got[1].Value)
	assert.Equal(t, "..", got[3].Value)
	assert.Equal(t, "=>", got[8].Value)
	assert.Equal(t, "[", got[12].Value)

	n := len(got)
	assert.Equal(t, token.NUMBER, got[n-2].Kind)
	assert.Equal(t, token.Special("INFINITY"), got[n-2].Value)
	assert.Equal(t, token.IDENTIFIER, got[n-1].Kind, "quoted names are never special numbers")
}

func TestLUW_TerminatorDirective(t *testing.T) {
	src := "--#SET TERMINATOR @\nselect 1@\nselect 2@"
	toks, err := LUW.NewTokenizer().Tokenize(src, ";", false)
	require.NoError(t, err)

	var terminators int
	for _, tok := range toks {
		if tok.Kind == token.TERMINATOR {
			terminators++
			assert.Equal(t, "@", tok.Source)
		}
	}
	assert.Equal(t, 2, terminators)
}

func TestLUW_KeepsZOSFeatures(t *testing.T) {
	assert.Subset(t, LUW.Features(), ZOS.Features())
	assert.Contains(t, LUW.Features(), "terminator-directive")
	assert.NotContains(t, ZOS.Features(), "terminator-directive")
}
