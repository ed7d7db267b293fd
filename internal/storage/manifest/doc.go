// Package manifest reads the sidecar metadata written next to snapshots.
//
// Ingestion produces one manifest.json per snapshot partition; the
// governance core only consumes them. Write exists for ingestion tooling
// and test fixtures.
package manifest
