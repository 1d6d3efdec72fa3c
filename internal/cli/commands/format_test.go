package commands

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/leapstack-labs/sqlreflow/internal/cli/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const formatted = "SELECT A FROM T;\n\n"

func TestFormat_Stdin(t *testing.T) {
	tests := []struct {
		name    string
		stdin   string
		args    []string
		wantOut string
		wantErr string
	}{
		{
			name:    "reflow",
			stdin:   "select a\n   from t",
			wantOut: formatted,
		},
		{
			name:    "dash",
			stdin:   "select a from t;",
			args:    []string{"-"},
			wantOut: formatted,
		},
		{
			name:  "check clean",
			stdin: formatted,
			args:  []string{"--check"},
		},
		{
			name:    "check dirty",
			stdin:   "select a from t",
			args:    []string{"--check"},
			wantErr: "files would be reformatted: <stdin>",
		},
		{
			name:    "grammar error",
			stdin:   "select a from",
			wantErr: "<stdin>: ",
		},
		{
			name:    "write needs files",
			stdin:   "select 1",
			args:    []string{"--write"},
			wantErr: "need file arguments",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := testutil.RunCommand(t, NewFormatCommand(), nil, tt.stdin, tt.args...)
			if tt.wantErr != "" {
				require.Error(t, res.Err)
				assert.Contains(t, res.Err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, res.Err)
			assert.Equal(t, tt.wantOut, res.Out)
		})
	}
}

func TestFormat_StdinErrorDetail(t *testing.T) {
	res := testutil.RunCommand(t, NewFormatCommand(), nil, "select a\nfrom")
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "line   : 2")
	assert.Contains(t, res.Err.Error(), "context:")
}

func TestFormat_Passthrough(t *testing.T) {
	cfg := testutil.DefaultConfig()
	cfg.Fallback = "passthrough"

	res := testutil.RunCommand(t, NewFormatCommand(), cfg, "update t set a = 1")
	require.NoError(t, res.Err)
	assert.Equal(t, "update t set a = 1", res.Out)
}

func TestFormat_Write(t *testing.T) {
	dir := testutil.WriteSQLFiles(t, map[string]string{
		"a.sql":        "select a from t",
		"b.sql":        formatted,
		"nested/c.sql": "drop table t",
		"notes.txt":    "select x",
	})

	res := testutil.RunCommand(t, NewFormatCommand(), nil, "", "--write", dir)
	require.NoError(t, res.Err)

	assert.Equal(t, formatted, testutil.ReadFile(t, filepath.Join(dir, "a.sql")))
	assert.Equal(t, formatted, testutil.ReadFile(t, filepath.Join(dir, "b.sql")))
	assert.Equal(t, "DROP TABLE T;\n\n", testutil.ReadFile(t, filepath.Join(dir, "nested", "c.sql")))
	assert.Equal(t, "select x", testutil.ReadFile(t, filepath.Join(dir, "notes.txt")), "only .sql files are searched")

	assert.Contains(t, res.Out, filepath.Join(dir, "a.sql")+" reformatted")
	assert.Contains(t, res.Out, filepath.Join(dir, "b.sql")+" unchanged")
	testutil.AssertNoANSI(t, res.Out)
}

func TestFormat_WriteKeepsPermissions(t *testing.T) {
	dir := testutil.WriteSQLFiles(t, map[string]string{"a.sql": "select a from t"})
	path := filepath.Join(dir, "a.sql")
	require.NoError(t, os.Chmod(path, 0o640))

	res := testutil.RunCommand(t, NewFormatCommand(), nil, "", "-w", path)
	require.NoError(t, res.Err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())
}

func TestFormat_Check(t *testing.T) {
	dir := testutil.WriteSQLFiles(t, map[string]string{
		"a.sql": "select a from t",
		"b.sql": formatted,
	})

	res := testutil.RunCommand(t, NewFormatCommand(), nil, "", "--check", dir)
	require.ErrorIs(t, res.Err, ErrCheckFailed)
	assert.Contains(t, res.Err.Error(), "1 of 2 files")
	assert.Contains(t, res.Out, "would reformat")
	assert.Equal(t, "select a from t", testutil.ReadFile(t, filepath.Join(dir, "a.sql")), "check never writes")
}

func TestFormat_Print(t *testing.T) {
	dir := testutil.WriteSQLFiles(t, map[string]string{"a.sql": "select a from t"})

	res := testutil.RunCommand(t, NewFormatCommand(), nil, "", filepath.Join(dir, "a.sql"))
	require.NoError(t, res.Err)
	assert.Equal(t, formatted, res.Out)
}

func TestFormat_FileErrors(t *testing.T) {
	dir := testutil.WriteSQLFiles(t, map[string]string{
		"bad.sql":  "update t set a = 1",
		"good.sql": "select a from t",
	})

	res := testutil.RunCommand(t, NewFormatCommand(), nil, "", "--write", dir)
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "1 of 2 files could not be reformatted")
	assert.Contains(t, res.ErrOut, "expected")
	assert.Equal(t, formatted, testutil.ReadFile(t, filepath.Join(dir, "good.sql")), "other files are still written")
	assert.Equal(t, "update t set a = 1", testutil.ReadFile(t, filepath.Join(dir, "bad.sql")))

	res = testutil.RunCommand(t, NewFormatCommand(), nil, "", filepath.Join(dir, "missing.sql"))
	require.Error(t, res.Err)
	assert.Contains(t, res.ErrOut, "failed to read")
}

func TestFormat_JSON(t *testing.T) {
	dir := testutil.WriteSQLFiles(t, map[string]string{
		"a.sql":   "select a from t",
		"bad.sql": "update t set a = 1",
	})
	cfg := testutil.DefaultConfig()
	cfg.OutputFormat = "json"
	cfg.Fallback = "passthrough"

	res := testutil.RunCommand(t, NewFormatCommand(), cfg, "", "--check", filepath.Join(dir, "a.sql"), filepath.Join(dir, "bad.sql"))
	require.ErrorIs(t, res.Err, ErrCheckFailed)

	var reports []fileReport
	require.NoError(t, json.Unmarshal([]byte(res.Out), &reports))
	require.Len(t, reports, 2)
	assert.True(t, reports[0].Changed)
	assert.Empty(t, reports[0].Error)
	assert.True(t, reports[1].Fallback)
	assert.False(t, reports[1].Changed)
	assert.NotEmpty(t, reports[1].Error)
}

func TestFormat_Watch(t *testing.T) {
	dir := testutil.WriteSQLFiles(t, map[string]string{"a.sql": "select a from t"})
	path := filepath.Join(dir, "a.sql")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan testutil.CommandResult, 1)
	go func() {
		done <- testutil.RunCommandContext(t, ctx, NewFormatCommand(), nil, "", "--watch", path)
	}()

	readFile := func() string {
		data, _ := os.ReadFile(path)
		return string(data)
	}
	require.Eventually(t, func() bool { return readFile() == formatted }, 5*time.Second, 20*time.Millisecond,
		"the first pass reformats in place")

	require.NoError(t, os.WriteFile(path, []byte("drop table t"), 0o600))
	require.Eventually(t, func() bool { return readFile() == "DROP TABLE T;\n\n" }, 5*time.Second, 20*time.Millisecond,
		"a change is reformatted")

	cancel()
	select {
	case res := <-done:
		require.NoError(t, res.Err)
		assert.Contains(t, res.Out, "Watching 1 files")
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestExpandPaths(t *testing.T) {
	dir := testutil.WriteSQLFiles(t, map[string]string{
		"b.sql":     "",
		"a/x.SQL":   "",
		"a/y.txt":   "",
		"a/b/z.sql": "",
	})
	missing := filepath.Join(dir, "missing.sql")

	got, err := expandPaths([]string{dir, missing})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a", "b", "z.sql"),
		filepath.Join(dir, "a", "x.SQL"),
		filepath.Join(dir, "b.sql"),
		missing,
	}, got)
}
