package token

// Upgrades lists, for each input kind, the kinds a template may turn it into
// during a successful match. It is the only place where substitution policy
// lives; kinds not present here never change.
var Upgrades = map[Kind][]Kind{
	KEYWORD:    {IDENTIFIER, DATATYPE, REGISTER, SCHEMA, RELATION, ROUTINE},
	IDENTIFIER: {DATATYPE, REGISTER, SCHEMA, RELATION, ROUTINE},
	STRING:     {PASSWORD},
	TERMINATOR: {STATEMENT},
	EOF:        {STATEMENT},
}

// CanUpgrade reports whether a token of kind from may be matched by a
// template asking for kind to.
func CanUpgrade(from, to Kind) bool {
	for _, k := range Upgrades[from] {
		if k == to {
			return true
		}
	}
	return false
}

type templateMode uint8

const (
	modeText templateMode = iota
	modeKind
	modeKindValue
)

// Template is a partial token pattern used to drive grammar matching.
// Templates are comparable, so grammars may switch on them.
type Template struct {
	mode  templateMode
	kind  Kind
	value string
}

// Text returns a template matching a KEYWORD or OPERATOR with value v, or an
// unquoted IDENTIFIER with value v.
func Text(v string) Template {
	return Template{mode: modeText, value: v}
}

// Of returns a template matching any token of kind k, or any token whose kind
// may be upgraded to k.
func Of(k Kind) Template {
	return Template{mode: modeKind, kind: k}
}

// KV returns a template matching a token of kind k with value v, or a token
// with value v whose kind may be upgraded to k.
func KV(k Kind, v string) Template {
	return Template{mode: modeKindValue, kind: k, value: v}
}

// Texts builds a Text template for every value.
func Texts(values ...string) []Template {
	out := make([]Template, len(values))
	for i, v := range values {
		out[i] = Text(v)
	}
	return out
}

// Kind returns the kind the template asks for. Text templates report EOF.
func (t Template) Kind() Kind {
	return t.kind
}

// Value returns the value the template asks for, if any.
func (t Template) Value() string {
	return t.value
}

// IsText reports whether t is a bare text template.
func (t Template) IsText() bool {
	return t.mode == modeText
}

// String renders the template for "expected ..." messages.
func (t Template) String() string {
	switch t.mode {
	case modeKind:
		return t.kind.String()
	case modeKindValue:
		switch t.kind {
		case EOF, WHITESPACE, TERMINATOR, STATEMENT:
			return t.kind.String()
		}
	}
	return t.value
}

// Match compares tok against tmpl. On success it returns the token, with its
// kind upgraded when the template asked for an upgrade. Match is pure.
func Match(tok Token, tmpl Template) (Token, bool) {
	switch tmpl.mode {
	case modeText:
		v, ok := tok.Value.(string)
		if !ok || v != tmpl.value {
			return Token{}, false
		}
		switch tok.Kind {
		case KEYWORD, OPERATOR:
			return tok, true
		case IDENTIFIER:
			// Quoted identifiers never stand in for keywords.
			if !tok.Quoted() {
				return tok, true
			}
		}
		return Token{}, false

	case modeKind:
		if tok.Kind == tmpl.kind {
			return tok, true
		}
		if CanUpgrade(tok.Kind, tmpl.kind) {
			return tok.WithKind(tmpl.kind), true
		}
		return Token{}, false

	case modeKindValue:
		v, ok := tok.Value.(string)
		if !ok || v != tmpl.value {
			return Token{}, false
		}
		if tok.Kind == tmpl.kind {
			return tok, true
		}
		if CanUpgrade(tok.Kind, tmpl.kind) {
			return tok.WithKind(tmpl.kind), true
		}
	}
	return Token{}, false
}
