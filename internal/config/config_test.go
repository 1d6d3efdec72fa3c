package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/sqlreflow/internal/engine"
	"github.com/leapstack-labs/sqlreflow/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	// Import dialect packages to ensure dialects are registered via init()
	_ "github.com/leapstack-labs/sqlreflow/pkg/dialects/ansi"
	_ "github.com/leapstack-labs/sqlreflow/pkg/dialects/db2"
)

func TestValidateReflow(t *testing.T) {
	tests := []struct {
		name      string
		cfg       ReflowConfig
		wantErr   bool
		errSubstr string
	}{
		{
			name: "defaults",
			cfg:  ReflowConfig{Dialect: "sql92"},
		},
		{
			name: "full",
			cfg: ReflowConfig{
				Dialect:  "db2luw",
				Fallback: "passthrough",
				Reformat: []string{"keyword", "WHITESPACE"},
				Workers:  4,
			},
		},
		{
			name:      "empty dialect",
			cfg:       ReflowConfig{},
			wantErr:   true,
			errSubstr: "dialect",
		},
		{
			name:      "unknown dialect",
			cfg:       ReflowConfig{Dialect: "oracle"},
			wantErr:   true,
			errSubstr: `unknown dialect "oracle"`,
		},
		{
			name:      "unknown fallback",
			cfg:       ReflowConfig{Dialect: "sql92", Fallback: "retry"},
			wantErr:   true,
			errSubstr: "fallback must be abort or passthrough",
		},
		{
			name:      "negative workers",
			cfg:       ReflowConfig{Dialect: "sql92", Workers: -1},
			wantErr:   true,
			errSubstr: "workers",
		},
		{
			name:      "unknown kind",
			cfg:       ReflowConfig{Dialect: "sql92", Reformat: []string{"KEYWORDS"}},
			wantErr:   true,
			errSubstr: `unknown token kind "KEYWORDS"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateReflow(&tt.cfg)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestFormatOptions(t *testing.T) {
	cfg := &ReflowConfig{
		Dialect:    "sql92",
		Statement:  "\n/",
		Indent:     "\t",
		Reformat:   []string{"keyword", "whitespace"},
		SplitLines: true,
	}
	ec, err := EngineConfig(cfg, nil)
	require.NoError(t, err)
	require.NotNil(t, ec.Options)

	opts := *ec.Options
	assert.Equal(t, "\n/", opts.Statement)
	assert.Equal(t, ";", opts.Terminator)
	assert.Equal(t, "\t", opts.Indent)
	assert.True(t, opts.SplitLines)
	assert.Equal(t, token.NewKindSet(token.KEYWORD, token.WHITESPACE), opts.Reformat)
	assert.Equal(t, "sql92", ec.Dialect.Name)
	assert.Equal(t, engine.Fallback(""), ec.Fallback)

	_, err = engine.New(ec)
	assert.NoError(t, err)
}

func TestApplyDefaults(t *testing.T) {
	var cfg ReflowConfig
	ApplyDefaults(&cfg)
	assert.Equal(t, ReflowConfig{
		Dialect:  DefaultDialect,
		Indent:   DefaultIndent,
		Fallback: DefaultFallback,
	}, cfg)

	ApplyDefaults(nil)
}

func TestLoadFromDir(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadFromDir(dir)
	require.NoError(t, err)
	assert.Nil(t, cfg, "no config file is not an error")

	content := "dialect: db2zos\nreformat: [keyword, terminator]\nworkers: 2\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileNameAlt), []byte(content), 0o600))

	cfg, err = LoadFromDir(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "db2zos", cfg.Dialect)
	assert.Equal(t, []string{"keyword", "terminator"}, cfg.Reformat)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, DefaultFallback, cfg.Fallback)
	assert.NoError(t, ValidateReflow(cfg))
}
