package token

import (
	"fmt"
	"io"
	"strconv"
)

// DumpToken formats a token on one line for debugging.
func DumpToken(t Token) string {
	return fmt.Sprintf("%-16s %-20s %-20s (%d:%d)", t.Kind.String(), FormatValue(t.Value), strconv.Quote(t.Source), t.Line, t.Column)
}

// Dump writes one line per token to w.
func Dump(w io.Writer, tokens []Token) error {
	for _, t := range tokens {
		if _, err := fmt.Fprintln(w, DumpToken(t)); err != nil {
			return err
		}
	}
	return nil
}

// FormatValue renders a token value for display. Strings are quoted so that
// embedded whitespace stays visible.
func FormatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "-"
	case string:
		return strconv.Quote(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
