// Package main provides tests for the sqlreflow CLI.
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/sqlreflow/internal/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type run struct {
	out, errOut string
	err         error
}

func execute(t *testing.T, stdin string, args ...string) run {
	t.Helper()
	cmd := cli.NewRootCmd()
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetIn(bytes.NewBufferString(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return run{out: out.String(), errOut: errOut.String(), err: err}
}

func TestVersionCommand(t *testing.T) {
	r := execute(t, "", "version")
	require.NoError(t, r.err)
	assert.Contains(t, r.out, "sqlreflow v")
}

func TestHelpCommand(t *testing.T) {
	r := execute(t, "", "--help")
	require.NoError(t, r.err)
	for _, expected := range []string{"format", "tokens", "split", "highlight", "repl", "dialects", "completion"} {
		assert.Contains(t, r.out, expected)
	}
}

func TestFormatCommand(t *testing.T) {
	t.Chdir(t.TempDir())

	r := execute(t, "select a from t", "format")
	require.NoError(t, r.err)
	assert.Equal(t, "SELECT A FROM T;\n\n", r.out)
}

func TestFormatCommand_Flags(t *testing.T) {
	t.Chdir(t.TempDir())

	r := execute(t, "select a from t @ drop table t @",
		"format", "--terminator", "@", "--reformat", "keyword,whitespace,statement", "--dialect", "db2zos")
	require.NoError(t, r.err)
	assert.Equal(t, "SELECT a FROM t;\n\nDROP TABLE t;\n\n", r.out)
}

func TestFormatCommand_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sqlreflow.yaml"),
		[]byte("reformat: [keyword, whitespace, terminator, statement]\nfallback: passthrough\n"), 0o600))

	r := execute(t, "select a from t", "format")
	require.NoError(t, r.err)
	assert.Equal(t, "SELECT a FROM t;\n\n", r.out)

	r = execute(t, "update t", "format")
	require.NoError(t, r.err)
	assert.Equal(t, "update t", r.out, "passthrough from the config file")
}

func TestFormatCommand_Verbose(t *testing.T) {
	t.Chdir(t.TempDir())

	r := execute(t, "select 1", "format", "-v")
	require.NoError(t, r.err)
	assert.Contains(t, r.errOut, "level=DEBUG")
	assert.Contains(t, r.errOut, "reflowed source")
}

func TestInvalidConfig(t *testing.T) {
	t.Chdir(t.TempDir())

	r := execute(t, "", "format", "--dialect", "oracle")
	require.Error(t, r.err)
	assert.Contains(t, r.err.Error(), `unknown dialect "oracle"`)

	r = execute(t, "", "tokens", "-o", "html")
	require.Error(t, r.err)
	assert.Contains(t, r.err.Error(), "output must be one of")
}

func TestCompletionCommand(t *testing.T) {
	shells := []string{"bash", "zsh", "fish", "powershell"}

	for _, shell := range shells {
		t.Run(shell, func(t *testing.T) {
			r := execute(t, "", "completion", shell)
			require.NoError(t, r.err)
			assert.Contains(t, r.out, "sqlreflow")
		})
	}
}

func TestUnknownCommand(t *testing.T) {
	r := execute(t, "", "unknown-command")
	assert.Error(t, r.err, "unknown command should return an error")
}
