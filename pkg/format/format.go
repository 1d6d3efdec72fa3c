// Package format turns an annotated token stream back into canonical SQL
// text.
//
// The parser leaves structural markers (INDENT, VALIGN, VAPPLY) in its
// output instead of literal whitespace. Run materialises them and
// canonicalises the spelling of every token kind selected by
// Options.Reformat. Each stage is also exported so it can be used and
// tested on its own.
package format

import (
	"github.com/leapstack-labs/sqlreflow/pkg/token"
)

// DefaultNameChars are the characters permitted in unquoted SQL-92 names on
// output. Lowercase letters are absent: a lowercase name must be quoted to
// keep its case.
const DefaultNameChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ_0123456789"

// DefaultReformat is the set of token kinds reformatted by default.
var DefaultReformat = token.NewKindSet(
	token.DATATYPE,
	token.IDENTIFIER,
	token.SCHEMA,
	token.RELATION,
	token.ROUTINE,
	token.KEYWORD,
	token.LABEL,
	token.NUMBER,
	token.PARAMETER,
	token.REGISTER,
	token.STATEMENT,
	token.STRING,
	token.PASSWORD,
	token.TERMINATOR,
	token.WHITESPACE,
)

// Options controls the reformatting pipeline.
type Options struct {
	// Reformat selects the token kinds whose source is canonicalised.
	// Whitespace is only rebuilt from markers when it contains WHITESPACE.
	Reformat token.KindSet
	// Indent is the text emitted once per indentation level.
	Indent string
	// Statement replaces top-level statement terminators.
	Statement string
	// Terminator replaces terminators inside compound statements.
	Terminator string
	// NameChars are the characters permitted in unquoted names.
	NameChars string
	// SplitLines splits multi-line tokens so every line starts a token.
	SplitLines bool
}

// DefaultOptions returns the default pipeline options: every kind
// reformatted, four space indentation and ";" terminators.
func DefaultOptions() Options {
	return Options{
		Reformat:   DefaultReformat,
		Indent:     "    ",
		Statement:  ";",
		Terminator: ";",
		NameChars:  DefaultNameChars,
	}
}

// Run executes the pipeline over the output of a parse.
func Run(tokens []token.Token, opts Options) ([]token.Token, error) {
	out, err := Canonicalize(tokens, opts)
	if err != nil {
		return nil, err
	}

	rebuild := opts.Reformat.Has(token.WHITESPACE)
	if rebuild {
		out = ConvertIndent(out, opts.Indent)
		if out, err = ConvertVAlign(out); err != nil {
			return nil, err
		}
	} else {
		out = DropMarkers(out)
	}
	out = MergeWhitespace(token.RecalcPositions(out))
	if rebuild {
		out = StripWhitespace(out)
	}
	out = token.RecalcPositions(out)
	if opts.SplitLines {
		out = token.SplitLines(out)
	}
	return out, nil
}
