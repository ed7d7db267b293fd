// Package registry implements the snapshot store on a flat CSV file.
//
// The registry file is the canonical source of truth for which snapshots
// exist and which is current. One row per entry, human-diffable, and only
// ever rewritten through this package. Writes are applied to an in-memory
// copy first and persisted with a temp-file rename, so a crashed or
// cancelled process leaves either the old file or the new one, never a
// partial mix.
package registry
