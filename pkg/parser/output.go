package parser

import "github.com/leapstack-labs/sqlreflow/pkg/token"

// ---------- Retroactive output edits ----------

// backIndex converts a backward count into an output position. Zero means
// the end of the output; n > 0 means the position of the nth-last token
// that is not whitespace, a comment or a layout marker.
func (p *Parser) backIndex(n int) int {
	if n < 0 {
		invariant("negative output offset %d", n)
	}
	i := len(p.output)
	for ; n > 0; n-- {
		i--
		for i >= 0 && skippedBack(p.output[i]) {
			i--
		}
		if i < 0 {
			invariant("output offset reaches before the start of the output")
		}
	}
	if sp := p.savePoint(); i < sp {
		invariant("output edit at %d precedes the save point at %d", i, sp)
	}
	return i
}

// InsertOutput inserts tok before the nth-last significant output token (or
// appends it when n is zero). Unless allowEmpty is set, an INDENT landing
// right after another INDENT replaces it, so blank lines are not produced
// by accident.
func (p *Parser) InsertOutput(tok token.Token, n int, allowEmpty bool) {
	i := p.backIndex(n)
	if !allowEmpty && tok.Kind == token.INDENT && i > 0 && p.output[i-1].Kind == token.INDENT {
		// The replaced INDENT may precede the save point; the undo log
		// lets RestoreState put it back.
		p.setOutput(i-1, tok)
		return
	}
	p.output = insertAt(p.output, i, tok)
}

// UpdateOutput replaces the nth-last significant output token. n must be at
// least 1.
func (p *Parser) UpdateOutput(tok token.Token, n int) {
	if n < 1 {
		invariant("UpdateOutput needs a positive offset, got %d", n)
	}
	p.setOutput(p.backIndex(n), tok)
}

// Retag changes the kind of the nth-last significant output token, for
// example to turn an IDENTIFIER into a SCHEMA once a following dot shows
// it was a qualifier.
func (p *Parser) Retag(n int, kind token.Kind) {
	if n < 1 {
		invariant("Retag needs a positive offset, got %d", n)
	}
	i := p.backIndex(n)
	p.setOutput(i, p.output[i].WithKind(kind))
}

func skippedBack(tok token.Token) bool {
	return tok.IsJunk() || tok.Kind.IsMarker()
}

func (p *Parser) setOutput(i int, tok token.Token) {
	if len(p.states) > 0 {
		p.undo = append(p.undo, undo{pos: i, tok: p.output[i]})
	}
	p.output[i] = tok
}

func insertAt(s []token.Token, i int, tok token.Token) []token.Token {
	s = append(s, token.Token{})
	copy(s[i+1:], s[i:])
	s[i] = tok
	return s
}

// ---------- Layout markers ----------

// Newline starts a new line at the current indentation level.
func (p *Parser) Newline() {
	p.NewlineAt(0, false)
}

// NewlineAt inserts a line break n significant tokens back. See InsertOutput
// for allowEmpty.
func (p *Parser) NewlineAt(n int, allowEmpty bool) {
	p.InsertOutput(indentToken(p.level), n, allowEmpty)
}

// Indent increments the indentation level and starts a new line.
func (p *Parser) Indent() {
	p.IndentAt(0, false)
}

// IndentAt is Indent with the line break placed as NewlineAt does.
func (p *Parser) IndentAt(n int, allowEmpty bool) {
	p.level++
	p.NewlineAt(n, allowEmpty)
}

// Outdent decrements the indentation level and starts a new line.
func (p *Parser) Outdent() {
	p.OutdentAt(0, false)
}

// OutdentAt is Outdent with the line break placed as NewlineAt does.
func (p *Parser) OutdentAt(n int, allowEmpty bool) {
	p.level--
	if p.level < 0 {
		invariant("indentation level dropped below zero")
	}
	p.NewlineAt(n, allowEmpty)
}

// VAlign marks a column that should line up with the other VALIGN marks of
// the run closed by the next VApply.
func (p *Parser) VAlign() {
	p.VAlignAt(0)
}

// VAlignAt inserts a VALIGN marker n significant tokens back.
func (p *Parser) VAlignAt(n int) {
	p.InsertOutput(token.Token{Kind: token.VALIGN}, n, true)
}

// VApply closes the current run of VALIGN marks.
func (p *Parser) VApply() {
	p.VApplyAt(0)
}

// VApplyAt inserts a VAPPLY marker n significant tokens back.
func (p *Parser) VApplyAt(n int) {
	p.InsertOutput(token.Token{Kind: token.VAPPLY}, n, true)
}
