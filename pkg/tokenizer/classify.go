package tokenizer

import "github.com/leapstack-labs/sqlreflow/pkg/token"

// Classifier refines IDENTIFIER tokens as the tokenizer emits them. It must
// not change the token's Source or position.
type Classifier interface {
	Classify(tok token.Token) token.Token
}

// ClassifierFunc adapts a function to the Classifier interface.
type ClassifierFunc func(token.Token) token.Token

// Classify calls f(tok).
func (f ClassifierFunc) Classify(tok token.Token) token.Token {
	return f(tok)
}

// SpecialNumbers turns the unquoted words INFINITY, NAN and SNAN into NUMBER
// tokens carrying a token.Special value.
type SpecialNumbers struct{}

var specialNumbers = map[string]token.Special{
	"INFINITY": "INFINITY",
	"NAN":      "NAN",
	"SNAN":     "SNAN",
}

// Classify implements Classifier.
func (SpecialNumbers) Classify(tok token.Token) token.Token {
	if tok.Quoted() {
		return tok
	}
	if v, ok := specialNumbers[tok.Text()]; ok {
		tok.Kind = token.NUMBER
		tok.Value = v
	}
	return tok
}
