// Package domain defines the core domain models for SnapReg.
//
// Domain models are pure value objects and entities without any
// IO dependencies or framework coupling. This package contains:
//
//   - SnapshotEntry: one registered snapshot of a dataset, with lifecycle status
//   - Date: calendar date identifying a snapshot partition
//   - ManifestRecord: sidecar metadata written by ingestion alongside a snapshot
//   - FreshnessPolicy / AnomalyPolicy: per-source governance thresholds
//   - Strategy: the closed set of snapshot selection strategies
//   - Errors: domain-specific error definitions
//
// The registry invariant lives here in spirit and in the storage layer in
// enforcement: for every (source, dataset) pair at most one entry holds
// StatusCurrent at any instant.
package domain
