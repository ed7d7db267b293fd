// Package config defines the snapreg configuration structure.
//
// Configuration is assembled from defaults, an optional YAML file and
// SNAPREG_-prefixed environment variables via the confloader package,
// then verified before any command runs. Per-source governance policy
// (freshness thresholds, anomaly thresholds, selection strategy) lives
// under the sources map and is converted to domain policy types on
// demand.
package config
