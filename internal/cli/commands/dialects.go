package commands

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlreflow/internal/cli/output"
	"github.com/leapstack-labs/sqlreflow/pkg/dialect"
	"github.com/spf13/cobra"
)

// dialectInfo is the structured form of a dialect.
type dialectInfo struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Terminator  string   `json:"terminator" yaml:"terminator"`
	NameChars   string   `json:"name_chars,omitempty" yaml:"name_chars,omitempty"`
	Features    []string `json:"features" yaml:"features"`
	Keywords    []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
}

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dialects [name]",
		Short: "List the available SQL dialects",
		Long: `List the registered SQL dialects, or describe one of them.

The description of a single dialect includes its lexical features and its
reserved words.`,
		Example: `  sqlreflow dialects
  sqlreflow dialects db2zos -o json`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			return dialect.List(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: runDialects,
	}
	return cmd
}

func runDialects(cmd *cobra.Command, args []string) error {
	r := NewCommandContextWithoutEngine(cmd).Renderer

	if len(args) == 1 {
		d, err := dialect.Lookup(args[0])
		if err != nil {
			return err
		}
		info := describeDialect(d)
		info.Keywords = d.Keywords()
		if ok, err := r.Structured(info); ok {
			return err
		}
		showDialectText(r, info)
		return nil
	}

	var infos []dialectInfo
	for _, name := range dialect.List() {
		d, err := dialect.Lookup(name)
		if err != nil {
			return err
		}
		infos = append(infos, describeDialect(d))
	}
	if ok, err := r.Structured(infos); ok {
		return err
	}

	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		rows = append(rows, []string{info.Name, info.Description, info.Terminator})
	}
	r.Table([]string{"Name", "Description", "Terminator"}, rows)
	return nil
}

func describeDialect(d *dialect.Dialect) dialectInfo {
	features := d.Features()
	if features == nil {
		features = []string{}
	}
	return dialectInfo{
		Name:        d.Name,
		Description: d.Description,
		Terminator:  d.Terminator,
		NameChars:   d.NameChars,
		Features:    features,
	}
}

func showDialectText(r *output.Renderer, info dialectInfo) {
	r.Header(1, info.Name)
	if info.Description != "" {
		r.Println(output.FormatKeyValue("Description", info.Description))
	}
	r.Println(output.FormatKeyValue("Terminator", info.Terminator))
	r.Println(output.FormatKeyValue("Features", strings.Join(info.Features, ", ")))
	r.Println("")
	r.Println(r.Styles().Header2.Render(fmt.Sprintf("Keywords (%d)", len(info.Keywords))))
	r.Println(wrapWords(info.Keywords, 76))
}

// wrapWords joins words with spaces, breaking lines before width.
func wrapWords(words []string, width int) string {
	var b strings.Builder
	lineLen := 0
	for _, w := range words {
		if lineLen > 0 && lineLen+1+len(w) > width {
			b.WriteByte('\n')
			lineLen = 0
		}
		if lineLen > 0 {
			b.WriteByte(' ')
			lineLen++
		}
		b.WriteString(w)
		lineLen += len(w)
	}
	return b.String()
}
