package format

import (
	"errors"
	"fmt"
	"math/big"
	"math/bits"
	"strconv"
	"strings"

	"github.com/leapstack-labs/sqlreflow/pkg/token"
	"github.com/shopspring/decimal"
)

// ErrBlankIdentifier is returned when an empty name has to be formatted.
var ErrBlankIdentifier = errors.New("blank identifier")

// Canonicalize rewrites the source of every token whose kind is in
// opts.Reformat into its canonical spelling. Values are untouched and
// positions are zeroed; callers recompute them once the layout is final.
func Canonicalize(tokens []token.Token, opts Options) ([]token.Token, error) {
	nameChars := opts.NameChars
	if nameChars == "" {
		nameChars = DefaultNameChars
	}
	out := make([]token.Token, len(tokens))
	for i, tok := range tokens {
		tok.Line, tok.Column = 0, 0
		if opts.Reformat.Has(tok.Kind) {
			source, err := canonicalSource(tok, opts, nameChars)
			if err != nil {
				return nil, fmt.Errorf("formatting %s: %w", tok.Kind, err)
			}
			tok.Source = source
		}
		out[i] = tok
	}
	return out, nil
}

func canonicalSource(tok token.Token, opts Options, nameChars string) (string, error) {
	switch tok.Kind {
	case token.KEYWORD, token.REGISTER:
		return tok.Text(), nil
	case token.IDENTIFIER, token.DATATYPE, token.SCHEMA, token.RELATION, token.ROUTINE:
		return FormatIdent(tok.Text(), nameChars)
	case token.NUMBER:
		return FormatNumber(tok.Value)
	case token.STRING, token.PASSWORD:
		return QuoteString(tok.Text(), "'"), nil
	case token.LABEL:
		name, err := FormatIdent(tok.Text(), nameChars)
		if err != nil {
			return "", err
		}
		return name + ":", nil
	case token.PARAMETER:
		return FormatParam(tok.Value, nameChars)
	case token.STATEMENT:
		return opts.Statement, nil
	case token.TERMINATOR:
		return opts.Terminator, nil
	default:
		return tok.Source, nil
	}
}

func isControl(r rune) bool {
	return r <= 0x1F || (r >= 0x7F && r <= 0xFF)
}

// QuoteString quotes s with quote, doubling embedded quotes. Runs of
// control characters are emitted as hex strings (X'0A') concatenated to
// the rest with ||.
func QuoteString(s, quote string) string {
	if s == "" {
		return quote + quote
	}
	var parts []string
	var run strings.Builder
	control := false
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if control {
			parts = append(parts, "X"+quote+run.String()+quote)
		} else {
			parts = append(parts, quote+strings.ReplaceAll(run.String(), quote, quote+quote)+quote)
		}
		run.Reset()
	}
	for _, r := range s {
		if c := isControl(r); c != control {
			flush()
			control = c
		}
		if control {
			fmt.Fprintf(&run, "%02X", r)
		} else {
			run.WriteRune(r)
		}
	}
	flush()
	return strings.Join(parts, " || ")
}

// FormatIdent returns name unquoted if every character is in nameChars and
// it does not start with a digit, and double quoted otherwise.
func FormatIdent(name, nameChars string) (string, error) {
	if name == "" {
		return "", ErrBlankIdentifier
	}
	for i, r := range name {
		if !strings.ContainsRune(nameChars, r) || (i == 0 && r >= '0' && r <= '9') {
			return QuoteString(name, `"`), nil
		}
	}
	return name, nil
}

// FormatParam renders a parameter: "?" for an anonymous one, otherwise a
// colon followed by the (possibly quoted) name.
func FormatParam(value any, nameChars string) (string, error) {
	name, ok := value.(string)
	if !ok {
		if value == nil {
			return "?", nil
		}
		return "", fmt.Errorf("unexpected parameter value %T", value)
	}
	ident, err := FormatIdent(name, nameChars)
	if err != nil {
		return "", err
	}
	return ":" + ident, nil
}

// FormatNumber renders a NUMBER value so that tokenizing the result yields
// a number of the same type. Decimals keep their scale and always carry a
// decimal point; floats always carry an exponent.
func FormatNumber(value any) (string, error) {
	switch v := value.(type) {
	case *big.Int:
		return v.String(), nil
	case decimal.Decimal:
		if v.Exponent() >= 0 {
			return v.String() + ".", nil
		}
		return v.StringFixed(-v.Exponent()), nil
	case float64:
		return formatFloat(v), nil
	case token.Special:
		return string(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	default:
		return "", fmt.Errorf("unexpected number value %T", value)
	}
}

// formatFloat renders f as mantissa E exponent without a plus sign or
// leading exponent zeros, e.g. 1.5E3.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'E', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "E")
	sign := ""
	switch {
	case strings.HasPrefix(exp, "-"):
		sign, exp = "-", exp[1:]
	case strings.HasPrefix(exp, "+"):
		exp = exp[1:]
	}
	exp = strings.TrimLeft(exp, "0")
	if exp == "" {
		exp, sign = "0", ""
	}
	return mantissa + "E" + sign + exp
}

var (
	sqlSuffixes   = []string{"", "K", "M", "G", "T", "P", "E"}
	humanSuffixes = []string{"b", "Kb", "Mb", "Gb", "Tb", "Pb", "Eb"}
)

// FormatSize renders a byte count with the largest binary suffix that
// leaves the value at least 1. With forSQL, only exact multiples are
// scaled (e.g. 4096 becomes 4K but 4097 stays 4097); otherwise the result
// is an approximation for humans, e.g. "4.00 Kb".
func FormatSize(value int64, forSQL bool) string {
	if value <= 0 {
		return strconv.FormatInt(value, 10)
	}
	index := (bits.Len64(uint64(value)) - 1) / 10
	if index >= len(sqlSuffixes) {
		index = len(sqlSuffixes) - 1
	}
	unit := int64(1) << (10 * index)
	if forSQL {
		if value%unit != 0 {
			return strconv.FormatInt(value, 10)
		}
		return strconv.FormatInt(value/unit, 10) + sqlSuffixes[index]
	}
	return fmt.Sprintf("%.2f %s", float64(value)/float64(unit), humanSuffixes[index])
}
