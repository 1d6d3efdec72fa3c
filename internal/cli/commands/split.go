package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewSplitCommand creates the split command.
func NewSplitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split [file|-]",
		Short: "Split a SQL script into statements",
		Long: `Cut a script into statements at the terminator.

Comments that precede a statement stay with it; empty statements are
dropped. The DB2 dialects honour "--#SET TERMINATOR x" directives.`,
		Example: `  # Show the statements of a script
  sqlreflow split migration.sql

  # Machine-readable, with starting line numbers
  sqlreflow split -o yaml migration.sql`,
		Args: cobra.MaximumNArgs(1),
		RunE: runSplit,
	}
	return cmd
}

func runSplit(cmd *cobra.Command, args []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	name, source, err := readSource(cmd, args)
	if err != nil {
		return err
	}

	stmts, err := cmdCtx.Engine.Split(source)
	if err != nil {
		return &sourceError{name: name, err: err}
	}

	r := cmdCtx.Renderer
	if ok, err := r.Structured(stmts); ok {
		return err
	}

	for i, s := range stmts {
		r.Muted(fmt.Sprintf("-- statement %d (line %d)", i+1, s.Line))
		r.Println(s.Text)
		r.Println("")
	}
	r.Muted(fmt.Sprintf("%d statements", len(stmts)))
	return nil
}
