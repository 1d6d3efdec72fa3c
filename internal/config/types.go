// Package config provides the shared reflow settings.
// This package is decoupled from CLI concerns: it only knows how to find,
// validate and apply a configuration, not where flags come from.
package config

import (
	"github.com/leapstack-labs/sqlreflow/pkg/dialect"
	"github.com/leapstack-labs/sqlreflow/pkg/format"
)

// ReflowConfig holds the settings that shape a reflow.
type ReflowConfig struct {
	Dialect string `koanf:"dialect"`

	// Terminator is the statement terminator of the input.
	Terminator string `koanf:"terminator"`
	// Statement replaces top-level terminators on output.
	Statement string `koanf:"statement"`
	// Indent is emitted once per indentation level.
	Indent string `koanf:"indent"`
	// Reformat lists the token kinds to canonicalise, e.g. KEYWORD.
	// Empty means the default set.
	Reformat   []string `koanf:"reformat"`
	SplitLines bool     `koanf:"split_lines"`

	// Fallback is abort or passthrough.
	Fallback string `koanf:"fallback"`
	// Workers bounds parallel file processing; 0 means one per CPU.
	Workers int `koanf:"workers"`
}

// FormatOptions builds the pipeline options for d from the config. Unset
// fields keep the dialect's defaults.
func (c *ReflowConfig) FormatOptions(d *dialect.Dialect) (format.Options, error) {
	opts := d.FormatOptions()
	if len(c.Reformat) > 0 {
		set, err := ParseReformat(c.Reformat)
		if err != nil {
			return format.Options{}, err
		}
		opts.Reformat = set
	}
	if c.Statement != "" {
		opts.Statement = c.Statement
	}
	if c.Terminator != "" {
		opts.Terminator = c.Terminator
	}
	if c.Indent != "" {
		opts.Indent = c.Indent
	}
	opts.SplitLines = c.SplitLines
	return opts, nil
}
