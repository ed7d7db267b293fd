// Package metric provides Prometheus metrics for SnapReg.
package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all governance metrics on a private Prometheus registry.
//
// SnapReg runs as short-lived batch invocations, so metrics are not served
// over HTTP; they are written in text exposition format to a file the
// node_exporter textfile collector picks up.
type Registry struct {
	reg *prometheus.Registry

	// Promotions counts successful promotions per dataset.
	Promotions *prometheus.CounterVec

	// PromotionRejects counts rejected promotions by error code.
	PromotionRejects *prometheus.CounterVec

	// SkipDecisions counts skip-detection outcomes (skip, fetch).
	SkipDecisions *prometheus.CounterVec

	// ValidationViolations reports the last run's violation count per kind.
	ValidationViolations *prometheus.GaugeVec

	// SnapshotAgeSeconds reports the Current snapshot age per dataset.
	SnapshotAgeSeconds *prometheus.GaugeVec

	// FreshnessTier reports the freshness tier per dataset
	// (0 fresh, 1 warn, 2 stale).
	FreshnessTier *prometheus.GaugeVec

	// AnomaliesFlagged counts flagged row-count anomalies per dataset.
	AnomaliesFlagged *prometheus.CounterVec
}

// NewRegistry creates and registers all governance metrics.
func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		Promotions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "snapreg_promotions_total",
			Help: "Successful snapshot promotions.",
		}, []string{"source", "dataset"}),
		PromotionRejects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "snapreg_promotion_rejects_total",
			Help: "Rejected snapshot promotions by error code.",
		}, []string{"source", "dataset", "code"}),
		SkipDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "snapreg_skip_decisions_total",
			Help: "Skip-detection outcomes.",
		}, []string{"source", "dataset", "decision"}),
		ValidationViolations: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "snapreg_validation_violations",
			Help: "Violations found by the last manifest validation run.",
		}, []string{"kind"}),
		SnapshotAgeSeconds: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "snapreg_snapshot_age_seconds",
			Help: "Age of the current snapshot per dataset.",
		}, []string{"source", "dataset"}),
		FreshnessTier: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "snapreg_freshness_tier",
			Help: "Freshness tier per dataset: 0 fresh, 1 warn, 2 stale.",
		}, []string{"source", "dataset"}),
		AnomaliesFlagged: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "snapreg_anomalies_flagged_total",
			Help: "Row-count anomalies flagged per dataset.",
		}, []string{"source", "dataset"}),
	}

	r.reg.MustRegister(
		r.Promotions,
		r.PromotionRejects,
		r.SkipDecisions,
		r.ValidationViolations,
		r.SnapshotAgeSeconds,
		r.FreshnessTier,
		r.AnomaliesFlagged,
	)
	return r
}

// WriteTextfile writes all metrics to path in text exposition format.
// The write is atomic (temp file + rename) via the client library.
func (r *Registry) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.reg)
}

// Gatherer exposes the underlying registry for tests.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// TierValue maps a freshness tier name to its gauge value.
func TierValue(tier string) float64 {
	switch tier {
	case "warn":
		return 1
	case "stale":
		return 2
	default:
		return 0
	}
}
