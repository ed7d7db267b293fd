// Package config defines the snapreg configuration structure.
package config

import "time"

// Config is the root configuration for snapreg.
type Config struct {
	Registry RegistrySection          `koanf:"registry"`
	Audit    AuditSection             `koanf:"audit"`
	Metrics  MetricsSection           `koanf:"metrics"`
	Log      LogSection               `koanf:"log"`
	Sources  map[string]SourceSection `koanf:"sources"`
}

// RegistrySection locates the registry file and the snapshot tree.
type RegistrySection struct {
	// Path is the flat registry CSV file, the single source of truth for
	// snapshot lifecycle state.
	Path string `koanf:"path"`

	// DataRoot is the root of the partitioned snapshot tree
	// (<data_root>/<source>/<dataset>/<YYYY-MM-DD>/).
	DataRoot string `koanf:"data_root"`
}

// AuditSection configures the operational audit ledger.
type AuditSection struct {
	// Path is the audit ledger directory. Empty disables audit recording.
	Path string `koanf:"path"`
}

// MetricsSection configures metrics emission.
type MetricsSection struct {
	// Textfile is the path the metrics snapshot is written to after each
	// command, in Prometheus textfile-collector format. Empty disables it.
	Textfile string `koanf:"textfile"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// SourceSection is the governance policy for one upstream source.
type SourceSection struct {
	Freshness FreshnessSection `koanf:"freshness"`
	Anomaly   AnomalySection   `koanf:"anomaly"`
	Selection SelectionSection `koanf:"selection"`
}

// FreshnessSection sets staleness thresholds for a source.
type FreshnessSection struct {
	WarnAfter  time.Duration `koanf:"warn_after"`
	ErrorAfter time.Duration `koanf:"error_after"`
}

// AnomalySection sets the row-count delta threshold for a source.
type AnomalySection struct {
	ThresholdPct float64 `koanf:"threshold_pct"`
}

// SelectionSection sets the snapshot selection strategy for a source.
type SelectionSection struct {
	// Strategy is one of "latest", "baseline-plus-latest" or "all".
	Strategy string `koanf:"strategy"`

	// Baseline is the pinned baseline snapshot date (YYYY-MM-DD).
	// Required for baseline-plus-latest, ignored otherwise.
	Baseline string `koanf:"baseline"`
}
