// Package config defines the snapreg configuration structure.
package config

// Default configuration values.
const (
	DefaultRegistryPath = "/var/lib/snapreg/registry.csv"
	DefaultDataRoot     = "/var/lib/snapreg/data"
	DefaultAuditPath    = "/var/lib/snapreg/audit"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Registry: RegistrySection{
			Path:     DefaultRegistryPath,
			DataRoot: DefaultDataRoot,
		},
		Audit: AuditSection{
			Path: DefaultAuditPath,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Sources: map[string]SourceSection{},
	}
}
