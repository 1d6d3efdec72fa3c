// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/leapstack-labs/sqlreflow/internal/cli/config"
	"github.com/leapstack-labs/sqlreflow/internal/cli/output"
	intconfig "github.com/leapstack-labs/sqlreflow/internal/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// WriteSQLFiles writes files (name to content) into a temporary directory
// and returns the directory.
func WriteSQLFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return dir
}

// ReadFile returns the content of path, failing the test on error.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// CommandResult holds the captured output of a command run.
type CommandResult struct {
	Out    string
	ErrOut string
	Err    error
}

// RunCommand executes cmd with args and stdin, with cfg (defaults when nil)
// stored in the context the way the root command does.
func RunCommand(t *testing.T, cmd *cobra.Command, cfg *config.Config, stdin string, args ...string) CommandResult {
	t.Helper()
	return RunCommandContext(t, context.Background(), cmd, cfg, stdin, args...)
}

// RunCommandContext is RunCommand with a caller-supplied context.
func RunCommandContext(t *testing.T, ctx context.Context, cmd *cobra.Command, cfg *config.Config, stdin string, args ...string) CommandResult {
	t.Helper()

	if cfg == nil {
		cfg = DefaultConfig()
	}
	ctx = context.WithValue(ctx, config.ConfigKey(), cfg)

	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetIn(bytes.NewBufferString(stdin))
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.ExecuteContext(ctx)
	return CommandResult{Out: out.String(), ErrOut: errOut.String(), Err: err}
}

// DefaultConfig returns the CLI configuration with every default applied and
// plain text output.
func DefaultConfig() *config.Config {
	cfg := &config.Config{OutputFormat: config.DefaultOutput, Color: output.ColorNever}
	intconfig.ApplyDefaults(&cfg.ReflowConfig)
	return cfg
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode and TTY state.
// Output is captured in buffers for inspection.
func NewTestRenderer(mode output.OutputMode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// Output returns the stdout output as a string.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the stderr output as a string.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// StripANSI removes ANSI escape codes from s.
func StripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}
