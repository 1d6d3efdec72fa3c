package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/sqlreflow/internal/engine"
	"github.com/leapstack-labs/sqlreflow/pkg/dialect"
	"github.com/leapstack-labs/sqlreflow/pkg/token"
	"github.com/spf13/cobra"
)

const (
	replPrompt         = "sqlreflow> "
	replContinuePrompt = "      ...> "
)

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Reflow statements interactively",
		Long: `Start an interactive session that reflows each statement as it is typed.

Lines are collected until a statement ends with the terminator, then the
reflowed statement is printed. Type .help for the dot-commands.`,
		Args: cobra.NoArgs,
		RunE: runREPL,
	}
}

func runREPL(cmd *cobra.Command, _ []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	cfg := &readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     historyFile(),
		AutoComplete:    newREPLCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	}
	if in := cmd.InOrStdin(); in != os.Stdin {
		cfg.Stdin = io.NopCloser(in)
	}
	rl, err := readline.NewEx(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	session := newREPLSession(cmdCtx)
	_, _ = fmt.Fprintf(session.out, "sqlreflow REPL (dialect: %s)\n", cmdCtx.Engine.Dialect().Name)
	_, _ = fmt.Fprintln(session.out, "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(session.out)

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			session.reset()
			rl.SetPrompt(replPrompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		if !session.feed(line) {
			break
		}
		if session.pending() {
			rl.SetPrompt(replContinuePrompt)
		} else {
			rl.SetPrompt(replPrompt)
		}
	}
	return nil
}

// historyFile returns the path of the REPL history, or "" (no history) when
// the cache directory is unavailable.
func historyFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	dir = filepath.Join(dir, "sqlreflow")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return ""
	}
	return filepath.Join(dir, "repl_history")
}

func newREPLCompleter() *readline.PrefixCompleter {
	var dialects []readline.PrefixCompleterInterface
	for _, name := range dialect.List() {
		dialects = append(dialects, readline.PcItem(name))
	}
	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".dialect", dialects...),
		readline.PcItem(".reset"),
		readline.PcItem(".clear"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}

// ---------- Session ----------

// replSession accumulates input lines into statements and reflows each
// complete one. It is independent of the terminal so it can be driven
// directly.
type replSession struct {
	cmdCtx *CommandContext
	out    io.Writer
	errOut io.Writer
	buf    strings.Builder
}

func newREPLSession(cmdCtx *CommandContext) *replSession {
	return &replSession{
		cmdCtx: cmdCtx,
		out:    cmdCtx.Renderer.Writer(),
		errOut: cmdCtx.Renderer.ErrWriter(),
	}
}

// pending reports whether a statement is partially entered.
func (s *replSession) pending() bool {
	return s.buf.Len() > 0
}

func (s *replSession) reset() {
	s.buf.Reset()
}

// feed handles one input line. It returns false when the session should
// end.
func (s *replSession) feed(line string) bool {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, ".") {
		return s.dotCommand(trimmed)
	}
	if trimmed == "" && !s.pending() {
		return true
	}

	if s.pending() {
		s.buf.WriteByte('\n')
	}
	s.buf.WriteString(line)
	if !s.complete() {
		return true
	}

	stmt := s.buf.String()
	s.buf.Reset()
	s.reflow(stmt)
	return true
}

// complete reports whether the buffer ends with a terminator outside any
// string or comment.
func (s *replSession) complete() bool {
	toks, err := s.cmdCtx.Engine.Tokenize(s.buf.String())
	if err != nil {
		// Most likely an unterminated string or comment still being typed.
		return false
	}
	for i := len(toks) - 1; i >= 0; i-- {
		if toks[i].IsJunk() {
			continue
		}
		return toks[i].Kind == token.TERMINATOR
	}
	return false
}

func (s *replSession) reflow(stmt string) {
	res, err := s.cmdCtx.Engine.Reflow(stmt)
	if err != nil {
		_, _ = fmt.Fprintf(s.errOut, "Error: %s\n", s.cmdCtx.Renderer.Styles().Error.Render(engine.Detail(err)))
		return
	}
	if res.Fallback {
		_, _ = fmt.Fprintf(s.errOut, "Warning: %v\n", res.Err)
		_, _ = fmt.Fprintln(s.out, strings.TrimRight(res.Text, "\n"))
		return
	}
	_, _ = fmt.Fprintln(s.out, strings.TrimRight(s.cmdCtx.Renderer.Styles().Highlight(res.Tokens), "\n"))
	_, _ = fmt.Fprintln(s.out)
}

func (s *replSession) dotCommand(line string) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])

	switch command {
	case ".quit", ".exit":
		return false

	case ".help":
		printREPLHelp(s.out)

	case ".dialect":
		if len(parts) < 2 {
			_, _ = fmt.Fprintf(s.out, "%s (available: %s)\n", s.cmdCtx.Engine.Dialect().Name, strings.Join(dialect.List(), ", "))
			return true
		}
		if err := s.switchDialect(parts[1]); err != nil {
			_, _ = fmt.Fprintf(s.errOut, "Error: %v\n", err)
			return true
		}
		_, _ = fmt.Fprintf(s.out, "dialect set to %s\n", s.cmdCtx.Engine.Dialect().Name)

	case ".reset":
		s.reset()

	case ".clear":
		_, _ = fmt.Fprint(s.out, "\033[H\033[2J")

	default:
		_, _ = fmt.Fprintf(s.errOut, "Unknown command: %s (type .help for commands)\n", command)
	}
	return true
}

func (s *replSession) switchDialect(name string) error {
	cfg := *s.cmdCtx.Cfg
	cfg.Dialect = name
	eng, err := createEngine(&cfg, s.cmdCtx.Logger)
	if err != nil {
		return err
	}
	s.cmdCtx.Cfg = &cfg
	s.cmdCtx.Engine = eng
	return nil
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help            Show this help message
  .dialect [name]  Show or change the dialect
  .reset           Discard the statement being entered
  .clear           Clear the screen
  .quit / .exit    Exit the REPL

Tips:
  - Statements are reflowed once they end with the terminator
  - Use arrow keys to navigate history
`
	_, _ = fmt.Fprintln(w, help)
}
