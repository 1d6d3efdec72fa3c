package format

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlreflow/pkg/token"
)

// ErrUnclosedVAlign is returned when a VALIGN marker has no VAPPLY after it.
// It always indicates a grammar bug.
var ErrUnclosedVAlign = errors.New("VALIGN marker without a closing VAPPLY")

// ConvertIndent replaces INDENT markers with a line break followed by indent
// repeated once per level.
func ConvertIndent(tokens []token.Token, indent string) []token.Token {
	out := make([]token.Token, len(tokens))
	for i, tok := range tokens {
		if tok.Kind == token.INDENT {
			level, _ := tok.Value.(int)
			tok = token.Token{Kind: token.WHITESPACE, Source: "\n" + strings.Repeat(indent, max(level, 0))}
		}
		tok.Line, tok.Column = 0, 0
		out[i] = tok
	}
	return out
}

// ConvertVAlign replaces VALIGN and VAPPLY markers with padding so that the
// text following every VALIGN of a run starts in the same column.
func ConvertVAlign(tokens []token.Token) ([]token.Token, error) {
	out, _, err := convertVAlign(tokens)
	return out, err
}

// convertVAlign also reports the number of passes made.
//
// A run is the set of VALIGNs up to the next VAPPLY. Only the first VALIGN on
// each line takes part in a pass; later ones on the same line are deferred,
// and their VAPPLY is kept for the next pass. Each pass therefore resolves
// one VALIGN per line, so the number of passes never exceeds the largest
// number of VALIGNs found on a single line.
func convertVAlign(tokens []token.Token) ([]token.Token, int, error) {
	bound := max(maxPerLine(tokens, token.VALIGN), 1)
	passes := 0
	for {
		passes++
		if passes > bound {
			return nil, passes, fmt.Errorf("vertical alignment did not settle after %d passes", bound)
		}

		positioned := token.RecalcPositions(tokens)
		result := make([]token.Token, len(positioned))
		copy(result, positioned)

		var pending []int
		alignCol, alignLine := 0, 0
		deferred, more := false, false

		for i, tok := range positioned {
			switch tok.Kind {
			case token.VALIGN:
				if len(pending) > 0 && tok.Line == alignLine {
					deferred = true
					continue
				}
				pending = append(pending, i)
				alignCol = max(alignCol, tok.Column)
				alignLine = tok.Line
			case token.VAPPLY:
				for _, j := range pending {
					result[j] = token.Token{Kind: token.WHITESPACE, Source: strings.Repeat(" ", alignCol-positioned[j].Column)}
				}
				if deferred {
					more = true
				} else {
					result[i] = token.Token{Kind: token.WHITESPACE}
				}
				pending = nil
				alignCol, alignLine = 0, 0
				deferred = false
			}
		}
		if len(pending) > 0 || deferred {
			return nil, passes, ErrUnclosedVAlign
		}

		tokens = result
		if !more {
			return token.RecalcPositions(tokens), passes, nil
		}
	}
}

func maxPerLine(tokens []token.Token, kind token.Kind) int {
	counts := map[int]int{}
	best := 0
	for _, tok := range token.RecalcPositions(tokens) {
		if tok.Kind == kind {
			counts[tok.Line]++
			best = max(best, counts[tok.Line])
		}
	}
	return best
}

// MergeWhitespace joins consecutive WHITESPACE tokens and drops empty ones.
// The merged token keeps the position of the first.
func MergeWhitespace(tokens []token.Token) []token.Token {
	out := make([]token.Token, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Kind != token.WHITESPACE {
			out = append(out, tok)
			continue
		}
		if tok.Source == "" {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Kind == token.WHITESPACE {
			out[n-1].Source += tok.Source
			continue
		}
		tok.Value = nil
		out = append(out, tok)
	}
	return out
}

// StripWhitespace removes spaces and tabs immediately preceding a line break
// inside WHITESPACE tokens. Whitespace at the very end of the stream is cut
// back to its line breaks. Tokens are expected to be merged already.
func StripWhitespace(tokens []token.Token) []token.Token {
	out := make([]token.Token, 0, len(tokens))
	for i, tok := range tokens {
		if tok.Kind != token.WHITESPACE {
			out = append(out, tok)
			continue
		}
		var b strings.Builder
		rest := tok.Source
		for {
			j, w := token.LineBreak(rest)
			if j < 0 {
				break
			}
			b.WriteString(strings.TrimRight(rest[:j], " \t"))
			b.WriteString(rest[j : j+w])
			rest = rest[j+w:]
		}
		if i == len(tokens)-1 {
			rest = strings.TrimRight(rest, " \t")
		}
		b.WriteString(rest)
		tok.Source = b.String()
		if tok.Source != "" {
			out = append(out, tok)
		}
	}
	return out
}

// DropMarkers removes INDENT, VALIGN and VAPPLY markers.
func DropMarkers(tokens []token.Token) []token.Token {
	out := make([]token.Token, 0, len(tokens))
	for _, tok := range tokens {
		if !tok.Kind.IsMarker() {
			out = append(out, tok)
		}
	}
	return out
}
