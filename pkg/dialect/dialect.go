// Package dialect provides SQL dialect definitions for the tokenizer and the
// formatter.
//
// A dialect is plain configuration data: the reserved words, the characters
// allowed in unquoted identifiers, the characters that may appear unquoted in
// formatted names, and the lexical extensions (comment styles, literal
// prefixes, extra operators) the tokenizer should enable. Concrete dialects
// are registered from pkg/dialects/*/ packages.
package dialect

import (
	"slices"
	"sort"
	"strings"

	"github.com/leapstack-labs/sqlreflow/pkg/format"
	"github.com/leapstack-labs/sqlreflow/pkg/tokenizer"
)

// Dialect represents a SQL dialect configuration. Values obtained from Get
// are private copies; changing one does not affect the registry.
type Dialect struct {
	Name        string
	Description string

	// NameChars lists the characters a formatted name may contain without
	// being quoted. It should not include lowercase letters.
	NameChars string

	// Terminator is the default statement terminator.
	Terminator string

	tokenizer tokenizer.Config
}

// TokenizerConfig returns a copy of the tokenizer configuration.
func (d *Dialect) TokenizerConfig() tokenizer.Config {
	return d.tokenizer.Clone()
}

// NewTokenizer builds a tokenizer owning its own copy of the configuration.
func (d *Dialect) NewTokenizer() *tokenizer.Tokenizer {
	return tokenizer.New(d.TokenizerConfig())
}

// FormatOptions returns formatting options suited to the dialect.
func (d *Dialect) FormatOptions() format.Options {
	opts := format.DefaultOptions()
	opts.NameChars = d.NameChars
	if d.Terminator != "" {
		opts.Terminator = d.Terminator
		opts.Statement = d.Terminator
	}
	return opts
}

// Keywords returns the reserved words in sorted order.
func (d *Dialect) Keywords() []string {
	out := make([]string, 0, len(d.tokenizer.Keywords))
	for kw := range d.tokenizer.Keywords {
		out = append(out, kw)
	}
	sort.Strings(out)
	return out
}

// IsKeyword reports whether word is reserved. The check is case
// insensitive.
func (d *Dialect) IsKeyword(word string) bool {
	_, ok := d.tokenizer.Keywords[strings.ToUpper(word)]
	return ok
}

// Clone returns a deep copy of d.
func (d *Dialect) Clone() *Dialect {
	out := *d
	out.tokenizer = d.tokenizer.Clone()
	return &out
}

// Features lists the optional lexical extensions the dialect enables, for
// display.
func (d *Dialect) Features() []string {
	c := d.tokenizer
	var out []string
	add := func(on bool, name string) {
		if on {
			out = append(out, name)
		}
	}
	add(c.LineComments, "line-comments")
	add(c.BlockComments, "block-comments")
	add(c.NestedComments, "nested-comments")
	add(c.CppComments, "cpp-comments")
	add(c.HexStrings, "hex-strings")
	add(c.GraphicStrings, "graphic-strings")
	add(c.UnicodeStrings, "unicode-strings")
	add(c.NotOperators, "not-operators")
	add(c.MethodOperators, "method-operators")
	add(c.Brackets, "brackets")
	add(c.TerminatorDirective, "terminator-directive")
	add(len(c.Classifiers) > 0, "classifiers")
	return out
}

// ---------- Builder ----------

// Builder provides a fluent API for constructing dialects.
type Builder struct {
	dialect *Dialect
}

// NewDialect creates a new dialect builder with the given name. The dialect
// starts out as plain SQL-92 lexing with no reserved words.
func NewDialect(name string) *Builder {
	return &Builder{
		dialect: &Dialect{
			Name:       name,
			NameChars:  format.DefaultNameChars,
			Terminator: ";",
			tokenizer:  tokenizer.DefaultConfig(),
		},
	}
}

// Extend creates a builder starting from a copy of parent.
func Extend(name string, parent *Dialect) *Builder {
	d := parent.Clone()
	d.Name = name
	d.Description = ""
	return &Builder{dialect: d}
}

// Description sets the human readable description.
func (b *Builder) Description(s string) *Builder {
	b.dialect.Description = s
	return b
}

// Keywords adds reserved words.
func (b *Builder) Keywords(words ...string) *Builder {
	for _, w := range words {
		b.dialect.tokenizer.Keywords[strings.ToUpper(w)] = struct{}{}
	}
	return b
}

// ReplaceKeywords drops the inherited reserved words and uses words instead.
func (b *Builder) ReplaceKeywords(words ...string) *Builder {
	b.dialect.tokenizer.Keywords = tokenizer.KeywordSet(words...)
	return b
}

// IdentChars sets the characters allowed in unquoted identifiers.
func (b *Builder) IdentChars(chars string) *Builder {
	b.dialect.tokenizer.IdentChars = chars
	return b
}

// NameChars sets the characters allowed in unquoted formatted names.
func (b *Builder) NameChars(chars string) *Builder {
	b.dialect.NameChars = chars
	return b
}

// Terminator sets the default statement terminator.
func (b *Builder) Terminator(s string) *Builder {
	b.dialect.Terminator = s
	return b
}

// BlockComments enables /* */ comments, optionally nested.
func (b *Builder) BlockComments(nested bool) *Builder {
	b.dialect.tokenizer.BlockComments = true
	b.dialect.tokenizer.NestedComments = nested
	return b
}

// CppComments enables // line comments.
func (b *Builder) CppComments() *Builder {
	b.dialect.tokenizer.CppComments = true
	return b
}

// SingleLineStrings forbids line breaks inside string literals.
func (b *Builder) SingleLineStrings() *Builder {
	b.dialect.tokenizer.MultilineStrings = false
	return b
}

// HexStrings enables X'..' literals.
func (b *Builder) HexStrings() *Builder {
	b.dialect.tokenizer.HexStrings = true
	return b
}

// GraphicStrings enables N'..', G'..' and GX'..' literals.
func (b *Builder) GraphicStrings() *Builder {
	b.dialect.tokenizer.GraphicStrings = true
	return b
}

// UnicodeStrings enables U&'..' and UX'..' literals.
func (b *Builder) UnicodeStrings() *Builder {
	b.dialect.tokenizer.UnicodeStrings = true
	return b
}

// NotOperators enables the !=, ^=, ¬= family of negated comparisons.
func (b *Builder) NotOperators() *Builder {
	b.dialect.tokenizer.NotOperators = true
	return b
}

// MethodOperators enables the .. and => operators.
func (b *Builder) MethodOperators() *Builder {
	b.dialect.tokenizer.MethodOperators = true
	return b
}

// Brackets enables [ ] { } as operators.
func (b *Builder) Brackets() *Builder {
	b.dialect.tokenizer.Brackets = true
	return b
}

// TerminatorDirective lets a --#SET TERMINATOR comment change the
// terminator mid-script.
func (b *Builder) TerminatorDirective() *Builder {
	b.dialect.tokenizer.TerminatorDirective = true
	return b
}

// Classifiers adds classifiers run on every identifier token.
func (b *Builder) Classifiers(cs ...tokenizer.Classifier) *Builder {
	b.dialect.tokenizer.Classifiers = append(slices.Clone(b.dialect.tokenizer.Classifiers), cs...)
	return b
}

// Build returns the constructed dialect.
func (b *Builder) Build() *Dialect {
	return b.dialect
}
