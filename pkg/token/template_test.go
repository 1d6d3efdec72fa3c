package token

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// expectedUpgrades is written out independently of Upgrades so that any change
// to the table has to be made twice.
var expectedUpgrades = map[Kind][]Kind{
	KEYWORD:    {IDENTIFIER, DATATYPE, REGISTER, SCHEMA, RELATION, ROUTINE},
	IDENTIFIER: {DATATYPE, REGISTER, SCHEMA, RELATION, ROUTINE},
	STRING:     {PASSWORD},
	TERMINATOR: {STATEMENT},
	EOF:        {STATEMENT},
}

func TestMatch_KindTemplateExhaustive(t *testing.T) {
	for _, from := range Kinds() {
		for _, to := range Kinds() {
			want := from == to
			for _, k := range expectedUpgrades[from] {
				if k == to {
					want = true
				}
			}

			tok := Token{Kind: from, Value: "X", Source: "x", Line: 3, Column: 7}
			got, ok := Match(tok, Of(to))
			require.Equal(t, want, ok, "%s matched by template %s", from.Ident(), to.Ident())
			if ok {
				assert.Equal(t, to, got.Kind)
				assert.Equal(t, tok.Value, got.Value)
				assert.Equal(t, tok.Source, got.Source)
				assert.Equal(t, tok.Line, got.Line)
				assert.Equal(t, tok.Column, got.Column)
			}
		}
	}
}

func TestMatch_KindValueTemplateExhaustive(t *testing.T) {
	for _, from := range Kinds() {
		for _, to := range Kinds() {
			want := from == to || CanUpgrade(from, to)
			tok := Token{Kind: from, Value: "ON", Source: "on"}

			_, ok := Match(tok, KV(to, "ON"))
			assert.Equal(t, want, ok, "%s vs KV(%s, ON)", from.Ident(), to.Ident())

			_, ok = Match(tok, KV(to, "OFF"))
			assert.False(t, ok, "value mismatch must never match")
		}
	}
}

func TestMatch_TextTemplate(t *testing.T) {
	tests := []struct {
		name string
		tok  Token
		tmpl Template
		want bool
	}{
		{"keyword", Token{Kind: KEYWORD, Value: "FOO", Source: "foo"}, Text("FOO"), true},
		{"operator", Token{Kind: OPERATOR, Value: "(", Source: "("}, Text("("), true},
		{"unquoted identifier", Token{Kind: IDENTIFIER, Value: "FOO", Source: "foo"}, Text("FOO"), true},
		{"quoted identifier", Token{Kind: IDENTIFIER, Value: "Foo", Source: `"Foo"`}, Text("FOO"), false},
		{"quoted identifier same case", Token{Kind: IDENTIFIER, Value: "FOO", Source: `"FOO"`}, Text("FOO"), false},
		{"string", Token{Kind: STRING, Value: "FOO", Source: "'FOO'"}, Text("FOO"), false},
		{"label", Token{Kind: LABEL, Value: "FOO", Source: "foo:"}, Text("FOO"), false},
		{"different value", Token{Kind: KEYWORD, Value: "BAR", Source: "bar"}, Text("FOO"), false},
		{"number", Token{Kind: NUMBER, Value: big.NewInt(1), Source: "1"}, Text("1"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Match(tt.tok, tt.tmpl)
			assert.Equal(t, tt.want, ok)
			if ok {
				assert.Equal(t, tt.tok, got, "text templates never change the kind")
			}
		})
	}
}

func TestMatch_Pure(t *testing.T) {
	tok := Token{Kind: IDENTIFIER, Value: "T", Source: "t", Line: 1, Column: 1}
	got, ok := Match(tok, Of(RELATION))
	require.True(t, ok)
	assert.Equal(t, RELATION, got.Kind)
	assert.Equal(t, IDENTIFIER, tok.Kind)
}

func TestTemplate_String(t *testing.T) {
	assert.Equal(t, "SELECT", Text("SELECT").String())
	assert.Equal(t, "<name>", Of(IDENTIFIER).String())
	assert.Equal(t, "<statement-end>", Of(STATEMENT).String())
	assert.Equal(t, "(", KV(OPERATOR, "(").String())
	assert.Equal(t, "<terminator>", KV(TERMINATOR, ";").String())
}

func TestTemplate_Comparable(t *testing.T) {
	assert.True(t, Text(".") == Text("."))
	assert.False(t, Text(".") == KV(OPERATOR, "."))
	assert.True(t, Of(STATEMENT) == Of(STATEMENT))
}

func TestToken_Name(t *testing.T) {
	assert.Equal(t, "<end-of-file>", Token{Kind: EOF}.Name())
	assert.Equal(t, "<terminator>", Token{Kind: TERMINATOR, Value: ";", Source: ";"}.Name())
	assert.Equal(t, "FROM", Token{Kind: KEYWORD, Value: "FROM", Source: "from"}.Name())
	assert.Equal(t, "?", Token{Kind: PARAMETER, Source: "?"}.Name())
	assert.Equal(t, "42", Token{Kind: NUMBER, Value: big.NewInt(42), Source: "42"}.Name())
}
