package config

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/sqlreflow/internal/engine"
	"github.com/leapstack-labs/sqlreflow/pkg/dialect"
	"github.com/leapstack-labs/sqlreflow/pkg/token"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// ParseReformat turns kind identifiers (case insensitive) into a kind set.
func ParseReformat(names []string) (token.KindSet, error) {
	set, err := token.ParseKindSet(names)
	if err != nil {
		return 0, fmt.Errorf("%w: reformat: %w", ErrInvalidConfig, err)
	}
	return set, nil
}

// ValidateReflow checks that c names a registered dialect, a known fallback
// and known token kinds.
func ValidateReflow(c *ReflowConfig) error {
	if c == nil {
		return fmt.Errorf("%w: missing reflow configuration", ErrInvalidConfig)
	}
	if _, err := dialect.Lookup(c.Dialect); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	switch engine.Fallback(c.Fallback) {
	case "", engine.FallbackAbort, engine.FallbackPassthrough:
	default:
		return fmt.Errorf("%w: fallback must be %s or %s, got %q",
			ErrInvalidConfig, engine.FallbackAbort, engine.FallbackPassthrough, c.Fallback)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidConfig, c.Workers)
	}
	if _, err := ParseReformat(c.Reformat); err != nil {
		return err
	}
	return nil
}

// EngineConfig validates c and resolves it into an engine configuration.
func EngineConfig(c *ReflowConfig, logger *slog.Logger) (engine.Config, error) {
	if err := ValidateReflow(c); err != nil {
		return engine.Config{}, err
	}
	d, err := dialect.Lookup(c.Dialect)
	if err != nil {
		return engine.Config{}, err
	}
	opts, err := c.FormatOptions(d)
	if err != nil {
		return engine.Config{}, err
	}
	return engine.Config{
		Dialect:    d,
		Options:    &opts,
		Terminator: c.Terminator,
		Fallback:   engine.Fallback(c.Fallback),
		Logger:     logger,
	}, nil
}
