package token

import (
	"strings"
	"unicode/utf8"
)

// Position represents a location in the source code.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
}

// IsValid returns true if the position is valid (line > 0).
func (p Position) IsValid() bool {
	return p.Line > 0
}

// RecalcPositions returns a copy of tokens with Line and Column recomputed
// from the concatenated sources, starting at 1:1.
func RecalcPositions(tokens []Token) []Token {
	out := make([]Token, len(tokens))
	pos := Position{Line: 1, Column: 1}
	for i, t := range tokens {
		t.Line, t.Column = pos.Line, pos.Column
		out[i] = t
		pos = Advance(pos, t.Source)
	}
	return out
}

// LineBreak returns the index and width of the first line break in s, or
// -1 and 0 if there is none. CR/LF, CR and LF each count as one break.
func LineBreak(s string) (index, width int) {
	i := strings.IndexAny(s, "\r\n")
	switch {
	case i < 0:
		return -1, 0
	case s[i] == '\r' && i+1 < len(s) && s[i+1] == '\n':
		return i, 2
	default:
		return i, 1
	}
}

// Advance returns the position just after text when it starts at pos.
func Advance(pos Position, text string) Position {
	for {
		i, w := LineBreak(text)
		if i < 0 {
			break
		}
		pos.Line++
		pos.Column = 1
		text = text[i+w:]
	}
	pos.Column += utf8.RuneCountInString(text)
	return pos
}

// SplitLines splits every token whose source spans a line break into one
// token per physical line, so every line begins with a token at column 1.
// String values containing line breaks are split in lock-step with the
// source. Empty trailing pieces of WHITESPACE and COMMENT tokens are dropped.
func SplitLines(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		source, line, column := t.Source, t.Line, t.Column
		value := t.Value
		for {
			i, w := LineBreak(source)
			if i < 0 {
				break
			}
			piece := value
			if s, ok := value.(string); ok {
				if j, vw := LineBreak(s); j >= 0 {
					piece, value = s[:j+vw], s[j+vw:]
				}
			}
			out = append(out, Token{Kind: t.Kind, Value: piece, Source: source[:i+w], Line: line, Column: column})
			source = source[i+w:]
			line++
			column = 1
		}
		if source != "" || !t.Kind.IsJunk() {
			out = append(out, Token{Kind: t.Kind, Value: value, Source: source, Line: line, Column: column})
		}
	}
	return out
}

// ErrorContext renders up to contextLines lines either side of line, with a
// caret marking column on the line after it. Tabs before the column are kept
// so the caret lines up.
func ErrorContext(source string, line, column, contextLines int) string {
	lines := splitSourceLines(source)
	if len(lines) == 0 {
		lines = []string{""}
	}
	idx := line - 1
	if idx >= len(lines) || idx < 0 {
		idx = len(lines) - 1
	}
	var marker strings.Builder
	for i, r := range []rune(lines[idx]) {
		if i >= column-1 {
			break
		}
		if r == '\t' {
			marker.WriteRune('\t')
		} else {
			marker.WriteRune(' ')
		}
	}
	marker.WriteRune('^')

	withMarker := make([]string, 0, len(lines)+1)
	withMarker = append(withMarker, lines[:idx+1]...)
	withMarker = append(withMarker, marker.String())
	withMarker = append(withMarker, lines[idx+1:]...)

	start := idx + 1 - contextLines
	if start < 0 {
		start = 0
	}
	end := idx + 1 + contextLines
	if end > len(withMarker) {
		end = len(withMarker)
	}
	return strings.Join(withMarker[start:end], "\n")
}

func splitSourceLines(source string) []string {
	source = strings.ReplaceAll(source, "\r\n", "\n")
	source = strings.ReplaceAll(source, "\r", "\n")
	source = strings.TrimSuffix(source, "\n")
	if source == "" {
		return nil
	}
	return strings.Split(source, "\n")
}
