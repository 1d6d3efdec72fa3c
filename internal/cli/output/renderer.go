// Package output renders CLI results as styled text, JSON or YAML.
//
// Commands receive a Renderer from the command context and choose a
// representation with EffectiveMode. Styling is applied only when the
// renderer decided colour is wanted (a TTY, or --color=always).
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// OutputMode selects how command results are written.
//
//nolint:revive // OutputMode reads better at call sites than output.Mode alone
type OutputMode string

// Mode is the short name used by the root command.
type Mode = OutputMode

const (
	// ModeAuto picks text and enables colour only on a terminal.
	ModeAuto OutputMode = "auto"
	// ModeText writes human-readable text.
	ModeText OutputMode = "text"
	// ModeJSON writes indented JSON documents.
	ModeJSON OutputMode = "json"
	// ModeYAML writes YAML documents.
	ModeYAML OutputMode = "yaml"
)

// Color settings accepted by SetColor.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Renderer writes command output.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   OutputMode
	isTTY  bool
	color  bool
	lg     *lipgloss.Renderer
	styles *Styles
}

// NewRenderer creates a renderer, detecting whether out is a terminal.
func NewRenderer(out, errOut io.Writer, mode OutputMode) *Renderer {
	return NewRendererWithTTY(out, errOut, isTerminal(out), mode)
}

// NewRendererWithTTY creates a renderer with an explicit TTY state. Tests
// use it to simulate a terminal.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode OutputMode) *Renderer {
	if mode == "" {
		mode = ModeAuto
	}
	r := &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		isTTY:  isTTY,
		lg:     lipgloss.NewRenderer(out),
	}
	r.SetColor(ColorAuto)
	return r
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// SetColor switches colour on or off. Unknown values behave like auto.
func (r *Renderer) SetColor(setting string) {
	switch setting {
	case ColorAlways:
		r.color = true
		r.lg.SetColorProfile(termenv.ANSI256)
	case ColorNever:
		r.color = false
	default:
		r.color = r.isTTY
		if r.isTTY {
			r.lg.SetColorProfile(termenv.ANSI256)
		}
	}
	if !r.color {
		r.lg.SetColorProfile(termenv.Ascii)
	}
	r.styles = NewStyles(r.lg)
}

// EffectiveMode resolves ModeAuto to a concrete mode.
func (r *Renderer) EffectiveMode() OutputMode {
	if r.mode == ModeAuto {
		return ModeText
	}
	return r.mode
}

// IsTTY reports whether stdout is a terminal.
func (r *Renderer) IsTTY() bool {
	return r.isTTY
}

// Color reports whether styles emit escape codes.
func (r *Renderer) Color() bool {
	return r.color
}

// Writer returns the stdout writer.
func (r *Renderer) Writer() io.Writer {
	return r.out
}

// ErrWriter returns the stderr writer.
func (r *Renderer) ErrWriter() io.Writer {
	return r.errOut
}

// Styles returns the styles for the current colour setting.
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Println writes a line to stdout.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Printf writes formatted text to stdout.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// Header writes a styled heading followed by a blank line.
func (r *Renderer) Header(level int, title string) {
	style := r.styles.Header1
	if level > 1 {
		style = r.styles.Header2
	}
	r.Println(style.Render(title))
	r.Println("")
}

// StatusLine writes "<mark> name detail" where the mark reflects status
// ("success", "warning", "error" or "skipped").
func (r *Renderer) StatusLine(name, status, detail string) {
	var mark string
	switch status {
	case "success":
		mark = r.styles.Success.Render("✓")
	case "warning":
		mark = r.styles.Warning.Render("!")
	case "error":
		mark = r.styles.Error.Render("✗")
	default:
		mark = r.styles.Muted.Render("-")
	}
	line := mark + " " + name
	if detail != "" {
		line += " " + r.styles.Muted.Render(detail)
	}
	r.Println(line)
}

// Success writes a success message to stdout.
func (r *Renderer) Success(msg string) {
	r.Println(r.styles.Success.Render(msg))
}

// Muted writes de-emphasised text to stdout.
func (r *Renderer) Muted(msg string) {
	r.Println(r.styles.Muted.Render(msg))
}

// Warning writes a warning to stderr.
func (r *Renderer) Warning(msg string) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Warning.Render(msg))
}

// Error writes an error message to stderr.
func (r *Renderer) Error(msg string) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Error.Render(msg))
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// YAML writes v as a YAML document.
func (r *Renderer) YAML(v any) error {
	enc := yaml.NewEncoder(r.out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// Structured writes v in the structured mode selected, and reports whether
// it did. Text mode is left to the caller.
func (r *Renderer) Structured(v any) (bool, error) {
	switch r.EffectiveMode() {
	case ModeJSON:
		return true, r.JSON(v)
	case ModeYAML:
		return true, r.YAML(v)
	}
	return false, nil
}

// FormatKeyValue renders "key: value" with the key padded for alignment.
func FormatKeyValue(key, value string) string {
	return fmt.Sprintf("  %-12s %s", key+":", value)
}
