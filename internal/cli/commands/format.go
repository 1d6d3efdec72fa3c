package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/leapstack-labs/sqlreflow/internal/cli/output"
	"github.com/leapstack-labs/sqlreflow/internal/engine"
	"github.com/spf13/cobra"
)

// ErrCheckFailed is returned by format --check when a file would change.
var ErrCheckFailed = errors.New("files would be reformatted")

// watchDebounce collapses the burst of events an editor save produces.
const watchDebounce = 100 * time.Millisecond

// FormatOptions holds options for the format command.
type FormatOptions struct {
	Write bool
	Check bool
	Watch bool
}

// fileReport is the structured form of one file's outcome.
type fileReport struct {
	Path     string `json:"path" yaml:"path"`
	Changed  bool   `json:"changed" yaml:"changed"`
	Written  bool   `json:"written,omitempty" yaml:"written,omitempty"`
	Fallback bool   `json:"fallback,omitempty" yaml:"fallback,omitempty"`
	Error    string `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewFormatCommand creates the format command.
func NewFormatCommand() *cobra.Command {
	opts := &FormatOptions{}

	cmd := &cobra.Command{
		Use:   "format [files...|-]",
		Short: "Reflow SQL source into canonical form",
		Long: `Parse SQL with the reference grammar and print it in canonical form.

Keywords are upper-cased, whitespace is normalised, CREATE TABLE column
lists are aligned and every statement ends with the configured terminator.
Directories are searched recursively for *.sql files. With no arguments,
or "-", source is read from standard input.

Which token kinds are rewritten is controlled by the reformat setting
(--reformat or the config file).`,
		Example: `  # Reflow a file to stdout
  sqlreflow format query.sql

  # Rewrite every script under migrations/ in place
  sqlreflow format --write migrations/

  # Fail in CI when a file is not formatted
  sqlreflow format --check migrations/

  # Reflow standard input using the DB2 for z/OS dialect
  cat ddl.sql | sqlreflow format -d db2zos`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Write, "write", "w", false, "Write the result back to the source files")
	cmd.Flags().BoolVar(&opts.Check, "check", false, "Report files that would change and exit non-zero")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Keep running and reformat files in place when they change")
	cmd.MarkFlagsMutuallyExclusive("write", "check")
	cmd.MarkFlagsMutuallyExclusive("check", "watch")

	return cmd
}

func runFormat(cmd *cobra.Command, args []string, opts *FormatOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	if len(args) == 0 || (len(args) == 1 && args[0] == stdinArg) {
		if opts.Write || opts.Watch {
			return errors.New("--write and --watch need file arguments")
		}
		return formatStdin(cmd, cmdCtx, opts)
	}

	paths, err := expandPaths(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no .sql files found in %s", strings.Join(args, ", "))
	}
	if opts.Watch {
		opts.Write = true
		return watchFiles(cmd.Context(), cmdCtx, paths)
	}
	return formatFiles(cmd.Context(), cmdCtx, paths, opts)
}

func formatStdin(cmd *cobra.Command, cmdCtx *CommandContext, opts *FormatOptions) error {
	name, source, err := readSource(cmd, nil)
	if err != nil {
		return err
	}
	res, err := cmdCtx.Engine.Reflow(source)
	if err != nil {
		return &sourceError{name: name, err: err}
	}

	changed := res.Text != source
	if opts.Check {
		if changed {
			return fmt.Errorf("%w: %s", ErrCheckFailed, name)
		}
		return nil
	}

	report := fileReport{Path: name, Changed: changed, Fallback: res.Fallback}
	if res.Err != nil {
		report.Error = res.Err.Error()
	}
	if ok, err := cmdCtx.Renderer.Structured(report); ok {
		return err
	}
	_, err = fmt.Fprint(cmdCtx.Renderer.Writer(), res.Text)
	return err
}

func formatFiles(ctx context.Context, cmdCtx *CommandContext, paths []string, opts *FormatOptions) error {
	results, err := cmdCtx.Engine.ReflowFiles(ctx, paths, cmdCtx.Cfg.Workers)
	if err != nil {
		return err
	}

	reports := applyResults(cmdCtx.Renderer, results, opts)

	changed, failed := 0, 0
	for _, rep := range reports {
		if rep.Error != "" && !rep.Fallback {
			failed++
		}
		if rep.Changed {
			changed++
		}
	}

	if ok, err := cmdCtx.Renderer.Structured(reports); ok && err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files could not be reformatted", failed, len(reports))
	}
	if opts.Check && changed > 0 {
		return fmt.Errorf("%w: %d of %d files", ErrCheckFailed, changed, len(reports))
	}
	return nil
}

// applyResults writes changed files when asked to and renders one status
// line (or the reflowed text) per file in text mode.
func applyResults(r *output.Renderer, results []engine.FileResult, opts *FormatOptions) []fileReport {
	text := r.EffectiveMode() == output.ModeText
	reports := make([]fileReport, 0, len(results))

	for _, res := range results {
		rep := fileReport{Path: res.Path, Changed: res.Changed(), Fallback: res.Fallback}
		switch {
		case res.Err != nil:
			rep.Error = res.Err.Error()
		case res.Fallback && res.Result.Err != nil:
			rep.Error = res.Result.Err.Error()
		}

		if res.Err != nil {
			if text {
				r.StatusLine(res.Path, "error", "")
				r.Error(engine.Detail(res.Err))
			}
			reports = append(reports, rep)
			continue
		}

		if opts.Write && rep.Changed {
			if err := writeFile(res.Path, res.Text); err != nil {
				rep.Error = err.Error()
				if text {
					r.StatusLine(res.Path, "error", err.Error())
				}
				reports = append(reports, rep)
				continue
			}
			rep.Written = true
		}

		if text {
			renderFileStatus(r, res, rep, opts, len(results) > 1)
		}
		reports = append(reports, rep)
	}
	return reports
}

func renderFileStatus(r *output.Renderer, res engine.FileResult, rep fileReport, opts *FormatOptions, many bool) {
	switch {
	case rep.Fallback && (opts.Write || opts.Check):
		r.StatusLine(res.Path, "warning", "passed through: "+rep.Error)
	case opts.Write && rep.Written:
		r.StatusLine(res.Path, "success", "reformatted")
	case opts.Check && rep.Changed:
		r.StatusLine(res.Path, "warning", "would reformat")
	case opts.Write || opts.Check:
		r.StatusLine(res.Path, "skipped", "unchanged")
	default:
		if many {
			r.Muted("-- " + res.Path)
		}
		_, _ = fmt.Fprint(r.Writer(), res.Text)
	}
}

// writeFile replaces the content of path, keeping its permissions.
func writeFile(path, content string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(content), info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// expandPaths replaces directories in args with the .sql files below them.
// Paths that cannot be read are kept so the engine reports them.
func expandPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".sql") {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", arg, err)
		}
	}
	return paths, nil
}

// ---------- Watch ----------

// watchFiles reformats paths in place once, then again whenever one of them
// changes, until ctx is cancelled.
func watchFiles(ctx context.Context, cmdCtx *CommandContext, paths []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the parent directories: editors often save by renaming a new
	// file over the old one, which drops a watch on the file itself.
	watched := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		watched[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	r := cmdCtx.Renderer
	reflow := func(batch []string) {
		results, err := cmdCtx.Engine.ReflowFiles(ctx, batch, cmdCtx.Cfg.Workers)
		if err != nil {
			return
		}
		applyResults(r, results, &FormatOptions{Write: true})
	}

	reflow(paths)
	r.Muted(fmt.Sprintf("Watching %d files for changes (Ctrl-C to stop)", len(paths)))

	pending := make(map[string]bool)
	fire := make(chan struct{}, 1)
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || !watched[name] {
				continue
			}
			pending[name] = true

			// Debounce
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(watchDebounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			batch := make([]string, 0, len(pending))
			for name := range pending {
				batch = append(batch, name)
			}
			clear(pending)
			sort.Strings(batch)
			cmdCtx.Logger.Debug("files changed, reformatting", "files", batch)
			reflow(batch)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			cmdCtx.Logger.Error("watcher error", "error", err)
		}
	}
}
