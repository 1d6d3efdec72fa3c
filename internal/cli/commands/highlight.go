package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewHighlightCommand creates the highlight command.
func NewHighlightCommand() *cobra.Command {
	var reflow bool

	cmd := &cobra.Command{
		Use:   "highlight [file|-]",
		Short: "Print SQL with syntax colouring",
		Long: `Print SQL source coloured by token kind.

Colour is used on a terminal, or always with --color=always. With
--reflow the source is reformatted first, so names carry the kinds the
grammar assigned to them.`,
		Example: `  sqlreflow highlight query.sql
  sqlreflow highlight --reflow --color=always query.sql | less -R`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			name, source, err := readSource(cmd, args)
			if err != nil {
				return err
			}

			toks, err := cmdCtx.Engine.Tokenize(source)
			if err != nil {
				return &sourceError{name: name, err: err}
			}
			if reflow {
				res, err := cmdCtx.Engine.Reflow(source)
				if err != nil {
					return &sourceError{name: name, err: err}
				}
				if !res.Fallback {
					toks = res.Tokens
				}
			}

			_, err = fmt.Fprint(cmdCtx.Renderer.Writer(), cmdCtx.Renderer.Styles().Highlight(toks))
			return err
		},
	}

	cmd.Flags().BoolVar(&reflow, "reflow", false, "Reformat before highlighting")
	return cmd
}
