// Package config defines the snapreg configuration structure.
package config

import (
	"fmt"

	"github.com/datalode/snapreg/internal/core/domain"
)

// Verify validates the configuration. Policy sections are checked here so
// a bad threshold fails at startup, not halfway through a promotion run.
func Verify(cfg *Config) error {
	if cfg.Registry.Path == "" {
		return domain.ErrConfigInvalid.WithDetails("registry.path is required")
	}
	if cfg.Registry.DataRoot == "" {
		return domain.ErrConfigInvalid.WithDetails("registry.data_root is required")
	}

	for name, src := range cfg.Sources {
		if err := verifySource(name, src); err != nil {
			return err
		}
	}
	return nil
}

func verifySource(name string, src SourceSection) error {
	policy := domain.FreshnessPolicy{
		WarnAfter:  src.Freshness.WarnAfter,
		ErrorAfter: src.Freshness.ErrorAfter,
	}
	if err := policy.Validate(); err != nil {
		return domain.ErrConfigInvalid.
			WithDetails(fmt.Sprintf("sources.%s.freshness", name)).
			WithCause(err)
	}

	anomaly := domain.AnomalyPolicy{ThresholdPct: src.Anomaly.ThresholdPct}
	if err := anomaly.Validate(); err != nil {
		return domain.ErrConfigInvalid.
			WithDetails(fmt.Sprintf("sources.%s.anomaly", name)).
			WithCause(err)
	}

	if _, err := selectionOf(src.Selection); err != nil {
		return domain.ErrConfigInvalid.
			WithDetails(fmt.Sprintf("sources.%s.selection", name)).
			WithCause(err)
	}
	return nil
}
