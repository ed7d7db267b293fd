// Package domain defines the core domain models for SnapReg.
package domain

// Promotion describes what a registry promotion did.
type Promotion struct {
	// Entry is the promoted entry as stored.
	Entry *SnapshotEntry

	// Demoted is the previously Current entry, nil when there was none or
	// when the call was an idempotent re-run.
	Demoted *SnapshotEntry

	// Idempotent is true when the call re-applied an identical promotion.
	Idempotent bool
}
