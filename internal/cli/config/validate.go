package config

import (
	"fmt"
	"slices"

	intconfig "github.com/leapstack-labs/sqlreflow/internal/config"
)

var (
	validOutputs = []string{"auto", "text", "json", "yaml"}
	validColors  = []string{"auto", "always", "never"}
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := intconfig.ValidateReflow(&c.ReflowConfig); err != nil {
		return err
	}
	if !slices.Contains(validOutputs, c.OutputFormat) {
		return fmt.Errorf("%w: output must be one of %v, got %q", intconfig.ErrInvalidConfig, validOutputs, c.OutputFormat)
	}
	if !slices.Contains(validColors, c.Color) {
		return fmt.Errorf("%w: color must be one of %v, got %q", intconfig.ErrInvalidConfig, validColors, c.Color)
	}
	return nil
}
