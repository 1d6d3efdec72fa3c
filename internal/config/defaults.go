package config

// Default configuration values.
const (
	DefaultDialect  = "sql92"
	DefaultIndent   = "    "
	DefaultFallback = "abort"
)

// ApplyDefaults fills in unset fields of c.
func ApplyDefaults(c *ReflowConfig) {
	if c == nil {
		return
	}
	if c.Dialect == "" {
		c.Dialect = DefaultDialect
	}
	if c.Indent == "" {
		c.Indent = DefaultIndent
	}
	if c.Fallback == "" {
		c.Fallback = DefaultFallback
	}
}
