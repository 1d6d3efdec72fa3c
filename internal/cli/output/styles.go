package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/leapstack-labs/sqlreflow/pkg/token"
)

// Styles holds the lipgloss styles used by the commands.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style

	// Kinds colours source text by token kind; see Kind.
	Kinds map[token.Kind]lipgloss.Style

	plain lipgloss.Style
}

// NewStyles builds the style set on lg, so the colour profile of lg decides
// whether escape codes are emitted.
func NewStyles(lg *lipgloss.Renderer) *Styles {
	color := func(c string) lipgloss.Style {
		return lg.NewStyle().TabWidth(lipgloss.NoTabConversion).Foreground(lipgloss.Color(c))
	}
	return &Styles{
		Header1: lg.NewStyle().Bold(true).Underline(true),
		Header2: lg.NewStyle().Bold(true),
		Bold:    lg.NewStyle().Bold(true),
		Muted:   color("245"),
		Success: color("42"),
		Warning: color("214"),
		Error:   color("196").Bold(true),
		Info:    color("39"),
		Kinds: map[token.Kind]lipgloss.Style{
			token.KEYWORD:    color("33").Bold(true),
			token.DATATYPE:   color("37"),
			token.REGISTER:   color("135"),
			token.SCHEMA:     color("172"),
			token.RELATION:   color("178"),
			token.ROUTINE:    color("75"),
			token.NUMBER:     color("141"),
			token.STRING:     color("106"),
			token.COMMENT:    color("245").Italic(true),
			token.PARAMETER:  color("205"),
			token.LABEL:      color("205"),
			token.TERMINATOR: color("245"),
			token.STATEMENT:  color("245"),
			token.PASSWORD:   color("196"),
			token.ERROR:      color("196").Underline(true),
		},
		plain: lg.NewStyle().TabWidth(lipgloss.NoTabConversion),
	}
}

// Kind returns the style for tokens of kind k. Kinds without a colour get an
// empty style.
func (s *Styles) Kind(k token.Kind) lipgloss.Style {
	if st, ok := s.Kinds[k]; ok {
		return st
	}
	return s.plain
}

// Highlight renders the concatenated token sources, each styled by kind.
// Newlines are written outside the style so colours never span lines.
func (s *Styles) Highlight(tokens []token.Token) string {
	var out []byte
	for _, t := range tokens {
		if t.Kind == token.WHITESPACE || t.Source == "" {
			out = append(out, t.Source...)
			continue
		}
		st := s.Kind(t.Kind)
		start := 0
		for i := 0; i < len(t.Source); i++ {
			if t.Source[i] != '\n' {
				continue
			}
			if i > start {
				out = append(out, st.Render(t.Source[start:i])...)
			}
			out = append(out, '\n')
			start = i + 1
		}
		if start < len(t.Source) {
			out = append(out, st.Render(t.Source[start:])...)
		}
	}
	return string(out)
}
