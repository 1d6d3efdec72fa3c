package engine

import (
	"strings"

	"github.com/leapstack-labs/sqlreflow/pkg/token"
)

// Statement is one statement cut from a script.
type Statement struct {
	// Text is the statement source without its terminator, trimmed.
	Text string `json:"text" yaml:"text"`
	// Line is the line the statement starts on.
	Line int `json:"line" yaml:"line"`
}

// Split cuts source into statements at its terminators. Comments between
// statements stay with the statement that follows them; pieces holding
// nothing but whitespace and comments are dropped.
func (e *Engine) Split(source string) ([]Statement, error) {
	toks, err := e.Tokenize(source)
	if err != nil {
		return nil, err
	}

	var (
		stmts []Statement
		piece []token.Token
	)
	flush := func() {
		if s, ok := makeStatement(piece); ok {
			stmts = append(stmts, s)
		}
		piece = piece[:0]
	}
	for _, tok := range toks {
		if tok.Kind == token.TERMINATOR {
			flush()
			continue
		}
		piece = append(piece, tok)
	}
	flush()

	e.logger.Debug("split script", "statements", len(stmts))
	return stmts, nil
}

func makeStatement(toks []token.Token) (Statement, bool) {
	start := -1
	significant := false
	for i, tok := range toks {
		if tok.Kind == token.WHITESPACE {
			continue
		}
		if start < 0 {
			start = i
		}
		if tok.Kind != token.COMMENT {
			significant = true
			break
		}
	}
	if !significant {
		return Statement{}, false
	}
	return Statement{
		Text: strings.TrimSpace(token.Concat(toks[start:])),
		Line: toks[start].Line,
	}, true
}
