package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/leapstack-labs/sqlreflow/internal/cli/config"
	"github.com/leapstack-labs/sqlreflow/internal/cli/output"
	intconfig "github.com/leapstack-labs/sqlreflow/internal/config"
	"github.com/leapstack-labs/sqlreflow/internal/engine"
	"github.com/spf13/cobra"
)

// stdinArg names standard input on the command line.
const stdinArg = "-"

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Engine   *engine.Engine
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with engine and renderer.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cmdCtx := NewCommandContextWithoutEngine(cmd)

	eng, err := createEngine(cmdCtx.Cfg, cmdCtx.Logger)
	if err != nil {
		return nil, err
	}
	cmdCtx.Engine = eng
	return cmdCtx, nil
}

// NewCommandContextWithoutEngine creates a CommandContext without an engine.
// Useful for commands that only describe the configuration.
func NewCommandContextWithoutEngine(cmd *cobra.Command) *CommandContext {
	cfg := config.GetConfig(cmd.Context())
	logger := config.GetLogger(cmd.Context())

	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))
	r.SetColor(cfg.Color)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// Helper functions shared across commands

func createEngine(cfg *config.Config, logger *slog.Logger) (*engine.Engine, error) {
	engineCfg, err := intconfig.EngineConfig(&cfg.ReflowConfig, logger)
	if err != nil {
		return nil, err
	}
	return engine.New(engineCfg)
}

// readSource reads the named file, or standard input for "-" or no name.
// The returned name is used in messages.
func readSource(cmd *cobra.Command, args []string) (name, source string, err error) {
	name = stdinArg
	if len(args) > 0 {
		name = args[0]
	}

	var data []byte
	if name == stdinArg {
		data, err = io.ReadAll(cmd.InOrStdin())
		name = "<stdin>"
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return name, "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	return name, string(data), nil
}

// sourceError prefixes an engine error with the input name and renders it
// with source context. It unwraps to the engine error.
type sourceError struct {
	name string
	err  error
}

func (e *sourceError) Error() string {
	return e.name + ": " + engine.Detail(e.err)
}

func (e *sourceError) Unwrap() error {
	return e.err
}
