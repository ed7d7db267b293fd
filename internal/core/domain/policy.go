// Package domain defines the core domain models for SnapReg.
package domain

import "time"

// FreshnessTier classifies the age of a Current snapshot against policy.
type FreshnessTier string

const (
	TierFresh FreshnessTier = "fresh"
	TierWarn  FreshnessTier = "warn"
	TierStale FreshnessTier = "stale"
)

// FreshnessPolicy sets per-source staleness thresholds.
type FreshnessPolicy struct {
	// WarnAfter is the age past which a Current snapshot is Warn.
	WarnAfter time.Duration

	// ErrorAfter is the age past which a Current snapshot is Stale.
	ErrorAfter time.Duration
}

// Validate checks threshold sanity.
func (p FreshnessPolicy) Validate() error {
	if p.WarnAfter <= 0 || p.ErrorAfter <= 0 {
		return ErrInvalidPolicy.WithDetails("freshness thresholds must be positive")
	}
	if p.ErrorAfter < p.WarnAfter {
		return ErrInvalidPolicy.WithDetails("error_after must not be shorter than warn_after")
	}
	return nil
}

// Classify maps a snapshot age to its freshness tier.
func (p FreshnessPolicy) Classify(age time.Duration) FreshnessTier {
	switch {
	case age > p.ErrorAfter:
		return TierStale
	case age > p.WarnAfter:
		return TierWarn
	default:
		return TierFresh
	}
}

// AnomalyPolicy sets the per-source row-count delta threshold.
type AnomalyPolicy struct {
	// ThresholdPct is the absolute percentage change above which a new
	// snapshot's row count is flagged (e.g., 50 means |delta| > 50%).
	ThresholdPct float64
}

// Validate checks threshold sanity.
func (p AnomalyPolicy) Validate() error {
	if p.ThresholdPct <= 0 {
		return ErrInvalidPolicy.WithDetails("anomaly threshold_pct must be positive")
	}
	return nil
}
