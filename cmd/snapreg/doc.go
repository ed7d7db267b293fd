// Package main provides the entry point for snapreg.
//
// snapreg is the snapshot registry and governance tool for partitioned
// data lakes:
//
//   - Snapshot promotion (promote)
//   - Manifest validation (validate, optionally --watch)
//   - Freshness monitoring (check-freshness)
//   - Selection resolution (resolve)
//   - Skip-detection (skip-check)
//   - Registry and audit inspection (list, audit)
//
// Usage:
//
//	snapreg [command] [flags]
//	snapreg promote nfl weekly 2025-01-08 --rows 48210
//	snapreg validate --output json
//
// Gating commands communicate through their exit code: validate and
// check-freshness exit with their finding count, skip-check exits 3 when
// the fetch should be skipped.
package main
