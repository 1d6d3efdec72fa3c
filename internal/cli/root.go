// Package cli provides the command-line interface for sqlreflow.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/leapstack-labs/sqlreflow/internal/cli/commands"
	"github.com/leapstack-labs/sqlreflow/internal/cli/config"
	"github.com/leapstack-labs/sqlreflow/pkg/dialect"
	"github.com/leapstack-labs/sqlreflow/pkg/token"
	"github.com/spf13/cobra"

	// Import dialect packages to ensure dialects are registered via init()
	_ "github.com/leapstack-labs/sqlreflow/pkg/dialects/ansi"
	_ "github.com/leapstack-labs/sqlreflow/pkg/dialects/db2"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "sqlreflow",
		Short: "sqlreflow - SQL tokenizer and reformatter",
		Long: `sqlreflow tokenizes SQL for a chosen dialect and reflows it into a
canonical layout: keywords upper-cased, whitespace normalised, column
lists aligned and statements terminated consistently.

Settings come from sqlreflow.yaml (searched upward from the working
directory), SQLREFLOW_* environment variables and the flags below, in
increasing order of precedence.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.LoadConfig(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			logger := config.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = context.WithValue(ctx, config.ConfigKey(), cfg)
			ctx = context.WithValue(ctx, config.LoggerKey(), logger)
			cmd.SetContext(ctx)

			if cfg.ConfigFile != "" {
				logger.Debug("using config file", "path", cfg.ConfigFile)
			}
			logger.Debug("configuration loaded", "dialect", cfg.Dialect, "fallback", cfg.Fallback, "output", cfg.OutputFormat)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Set version template
	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	// Global persistent flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: sqlreflow.yaml in . or a parent)")
	flags.StringP("dialect", "d", "", "SQL dialect ("+strings.Join(dialect.List(), "|")+")")
	flags.String("terminator", "", "Statement terminator in the source (default: the dialect's)")
	flags.String("statement", "", "Text written at the end of each reflowed statement")
	flags.String("indent", "", "Indentation unit")
	flags.StringSlice("reformat", nil, "Token kinds to rewrite (e.g. keyword,identifier,whitespace)")
	flags.Bool("split-lines", false, "Split multi-line tokens into one token per line")
	flags.String("fallback", "", "On errors: abort or passthrough")
	flags.IntP("workers", "j", 0, "Files reflowed in parallel (default: number of CPUs)")
	flags.BoolP("verbose", "v", false, "Verbose output")
	flags.StringP("output", "o", "", "Output format (auto|text|json|yaml)")
	flags.String("color", "", "Colour output (auto|always|never)")

	registerCompletions(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewFormatCommand())
	rootCmd.AddCommand(commands.NewTokensCommand())
	rootCmd.AddCommand(commands.NewSplitCommand())
	rootCmd.AddCommand(commands.NewHighlightCommand())
	rootCmd.AddCommand(commands.NewREPLCommand())
	rootCmd.AddCommand(commands.NewDialectsCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

func registerCompletions(rootCmd *cobra.Command) {
	fixed := func(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			return values, cobra.ShellCompDirectiveNoFileComp
		}
	}

	_ = rootCmd.RegisterFlagCompletionFunc("output", fixed("auto", "text", "json", "yaml"))
	_ = rootCmd.RegisterFlagCompletionFunc("color", fixed("auto", "always", "never"))
	_ = rootCmd.RegisterFlagCompletionFunc("fallback", fixed("abort", "passthrough"))
	_ = rootCmd.RegisterFlagCompletionFunc("dialect", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return dialect.List(), cobra.ShellCompDirectiveNoFileComp
	})

	kinds := make([]string, 0, len(token.Kinds()))
	for _, k := range token.Kinds() {
		kinds = append(kinds, strings.ToLower(k.Ident()))
	}
	_ = rootCmd.RegisterFlagCompletionFunc("reformat", fixed(kinds...))
}

// Execute runs the root command. An interrupt cancels the command context,
// which stops format --watch.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for sqlreflow.

To load completions:

Bash:
  $ source <(sqlreflow completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ sqlreflow completion bash > /etc/bash_completion.d/sqlreflow
  # macOS:
  $ sqlreflow completion bash > $(brew --prefix)/etc/bash_completion.d/sqlreflow

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. Execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ sqlreflow completion zsh > "${fpath[1]}/_sqlreflow"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ sqlreflow completion fish | source

  # To load completions for each session, execute once:
  $ sqlreflow completion fish > ~/.config/fish/completions/sqlreflow.fish

PowerShell:
  PS> sqlreflow completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> sqlreflow completion powershell > sqlreflow.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
	return cmd
}
