package commands

import (
	"fmt"

	"github.com/leapstack-labs/sqlreflow/pkg/token"
	"github.com/spf13/cobra"
)

// TokensOptions holds options for the tokens command.
type TokensOptions struct {
	Reflow bool
	All    bool
}

// tokenView is the structured form of a token.
type tokenView struct {
	Kind   string `json:"kind" yaml:"kind"`
	Value  string `json:"value,omitempty" yaml:"value,omitempty"`
	Source string `json:"source" yaml:"source"`
	Line   int    `json:"line,omitempty" yaml:"line,omitempty"`
	Column int    `json:"column,omitempty" yaml:"column,omitempty"`
}

// NewTokensCommand creates the tokens command.
func NewTokensCommand() *cobra.Command {
	opts := &TokensOptions{}

	cmd := &cobra.Command{
		Use:   "tokens [file|-]",
		Short: "Show the token stream of a SQL source",
		Long: `Tokenize SQL with the selected dialect and list the tokens.

Whitespace and comments are hidden unless --all is given. With --reflow
the listing shows the stream produced by the formatter, including the
kinds the grammar assigned to names (<relation>, <schema>, <routine>...).`,
		Example: `  # List the tokens of a script
  sqlreflow tokens script.sql

  # Show every token after reflowing, as JSON
  sqlreflow tokens --reflow --all -o json script.sql`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Reflow, "reflow", false, "List the tokens after reflowing")
	cmd.Flags().BoolVarP(&opts.All, "all", "a", false, "Include whitespace and comments")

	return cmd
}

func runTokens(cmd *cobra.Command, args []string, opts *TokensOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	name, source, err := readSource(cmd, args)
	if err != nil {
		return err
	}

	var toks []token.Token
	if opts.Reflow {
		res, err := cmdCtx.Engine.Reflow(source)
		if err != nil {
			return &sourceError{name: name, err: err}
		}
		toks = res.Tokens
		if res.Fallback {
			cmdCtx.Renderer.Warning(fmt.Sprintf("%s: %v (showing source tokens)", name, res.Err))
			toks, err = cmdCtx.Engine.Tokenize(source)
			if err != nil {
				return &sourceError{name: name, err: err}
			}
		}
	} else {
		toks, err = cmdCtx.Engine.Tokenize(source)
		if err != nil {
			return &sourceError{name: name, err: err}
		}
	}

	views := make([]tokenView, 0, len(toks))
	for _, t := range toks {
		if !opts.All && t.IsJunk() {
			continue
		}
		views = append(views, tokenView{
			Kind:   t.Kind.Ident(),
			Value:  valueString(t.Value),
			Source: t.Source,
			Line:   t.Line,
			Column: t.Column,
		})
	}

	if ok, err := cmdCtx.Renderer.Structured(views); ok {
		return err
	}

	rows := make([][]string, 0, len(views))
	for i, v := range views {
		rows = append(rows, []string{
			fmt.Sprint(i + 1),
			kindLabel(v.Kind),
			v.Value,
			fmt.Sprintf("%q", v.Source),
			position(v.Line, v.Column),
		})
	}
	cmdCtx.Renderer.Table([]string{"#", "Kind", "Value", "Source", "Pos"}, rows)
	return nil
}

// valueString renders a token value without quoting strings; nil (a bare
// "?" parameter, or a marker) renders empty.
func valueString(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case token.Special:
		return string(v)
	default:
		return token.FormatValue(v)
	}
}

func kindLabel(ident string) string {
	if k, ok := token.LookupKind(ident); ok {
		return k.String()
	}
	return ident
}

func position(line, column int) string {
	if line == 0 {
		return ""
	}
	return fmt.Sprintf("%d:%d", line, column)
}
