package tokenizer

import (
	"maps"
	"slices"
	"strings"
)

// SQL92IdentChars is the set of characters permitted in unquoted identifiers
// by ANSI SQL-92. It includes lowercase letters since the tokenizer folds
// identifiers to uppercase.
const SQL92IdentChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz_0123456789"

// DefaultSpaceChars are the characters collapsed into WHITESPACE tokens.
const DefaultSpaceChars = " \t\r\n"

// Config describes a tokenizer. It is plain data: New copies it, so one
// Config may seed any number of independent tokenizers.
type Config struct {
	// Keywords is the reserved word set (uppercase).
	Keywords map[string]struct{}
	// IdentChars are the characters permitted in unquoted identifiers.
	// Digits never start an identifier.
	IdentChars string
	SpaceChars string

	LineComments   bool // -- to end of line
	BlockComments  bool // /* ... */
	NestedComments bool // /* /* ... */ */
	CppComments    bool // // to end of line

	// MultilineStrings permits string literals to span lines. Quoted
	// identifiers never may.
	MultilineStrings bool
	// RaiseErrors makes Tokenize fail on the first lexical error. When
	// false, errors are left in the stream as ERROR tokens.
	RaiseErrors bool

	HexStrings      bool // X'4142'
	GraphicStrings  bool // N'..', G'..', GX'0041'
	UnicodeStrings  bool // U&'\0041', UX'0041'
	NotOperators    bool // != !< !> ^= and the hook character
	MethodOperators bool // .. and =>
	Brackets        bool // [ ] { }

	// TerminatorDirective enables "--#SET TERMINATOR x" line comments which
	// switch the statement terminator for the rest of the script.
	TerminatorDirective bool

	// Classifiers refine IDENTIFIER tokens as they are emitted.
	Classifiers []Classifier
}

// DefaultConfig returns an SQL-92 style configuration with an empty keyword
// set.
func DefaultConfig() Config {
	return Config{
		Keywords:         map[string]struct{}{},
		IdentChars:       SQL92IdentChars,
		SpaceChars:       DefaultSpaceChars,
		LineComments:     true,
		MultilineStrings: true,
		RaiseErrors:      true,
	}
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	out := c
	out.Keywords = maps.Clone(c.Keywords)
	if out.Keywords == nil {
		out.Keywords = map[string]struct{}{}
	}
	out.Classifiers = slices.Clone(c.Classifiers)
	return out
}

// KeywordSet builds a keyword set from words, folding them to uppercase.
func KeywordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToUpper(w)] = struct{}{}
	}
	return set
}
