// Package config defines the snapreg configuration structure.
package config

import (
	"github.com/datalode/snapreg/internal/core/domain"
	"github.com/datalode/snapreg/internal/infra/confloader"
)

// Load assembles the effective configuration from defaults, the optional
// YAML file at path and SNAPREG_-prefixed environment variables, then
// verifies it. An empty path skips the file layer.
func Load(path string) (*Config, error) {
	cfg := Default()

	loader := confloader.NewLoader(confloader.WithConfigFile(path))
	if err := loader.Load(cfg); err != nil {
		return nil, domain.ErrConfigInvalid.WithDetails("load configuration").WithCause(err)
	}

	if err := Verify(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
