// Package config provides configuration management for the sqlreflow CLI.
//
// This package extends the shared reflow settings from internal/config
// with CLI-specific fields and the layered loader (defaults, config file,
// environment, flags).
package config

import (
	intconfig "github.com/leapstack-labs/sqlreflow/internal/config"
)

// ReflowConfig is an alias for the shared reflow configuration.
// This allows CLI code to use config.ReflowConfig without importing
// internal/config.
type ReflowConfig = intconfig.ReflowConfig

// Config holds all CLI configuration options.
type Config struct {
	ReflowConfig `koanf:",squash"`

	Verbose      bool   `koanf:"verbose"`
	OutputFormat string `koanf:"output"`
	// Color is auto, always or never.
	Color string `koanf:"color"`

	// ConfigFile is the config file that was loaded, if any.
	ConfigFile string `koanf:"-"`
}

// Default configuration values - uses shared defaults from internal/config
const (
	DefaultDialect  = intconfig.DefaultDialect
	DefaultIndent   = intconfig.DefaultIndent
	DefaultFallback = intconfig.DefaultFallback
	DefaultOutput   = "auto" // Auto-detect: TTY=text, non-TTY=plain text
	DefaultColor    = "auto"
)
