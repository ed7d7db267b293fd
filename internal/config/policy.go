// Package config defines the snapreg configuration structure.
package config

import "github.com/datalode/snapreg/internal/core/domain"

// FreshnessPolicies converts the sources map to per-source freshness
// policies. Sources absent from the map have no policy; the freshness
// monitor reports that as a configuration error when asked about them.
func (c *Config) FreshnessPolicies() map[string]domain.FreshnessPolicy {
	out := make(map[string]domain.FreshnessPolicy, len(c.Sources))
	for name, src := range c.Sources {
		out[name] = domain.FreshnessPolicy{
			WarnAfter:  src.Freshness.WarnAfter,
			ErrorAfter: src.Freshness.ErrorAfter,
		}
	}
	return out
}

// AnomalyPolicies converts the sources map to per-source anomaly policies.
func (c *Config) AnomalyPolicies() map[string]domain.AnomalyPolicy {
	out := make(map[string]domain.AnomalyPolicy, len(c.Sources))
	for name, src := range c.Sources {
		out[name] = domain.AnomalyPolicy{ThresholdPct: src.Anomaly.ThresholdPct}
	}
	return out
}

// SelectionFor returns the configured selection for a source.
func (c *Config) SelectionFor(source string) (domain.Selection, error) {
	src, ok := c.Sources[source]
	if !ok {
		return domain.Selection{}, domain.ErrMissingPolicy.
			WithDetails("selection policy for source " + source)
	}
	return selectionOf(src.Selection)
}

func selectionOf(s SelectionSection) (domain.Selection, error) {
	strategy, err := domain.ParseStrategy(s.Strategy)
	if err != nil {
		return domain.Selection{}, err
	}

	sel := domain.Selection{Strategy: strategy}
	if s.Baseline != "" {
		baseline, err := domain.ParseDate(s.Baseline)
		if err != nil {
			return domain.Selection{}, err
		}
		sel.Baseline = baseline
	}
	if err := sel.Validate(); err != nil {
		return domain.Selection{}, err
	}
	return sel, nil
}
