// Package domain defines the core domain models for SnapReg.
package domain

import (
	"strings"
	"time"
)

// ManifestRecord is the sidecar metadata ingestion writes next to each
// snapshot file. The governance core consumes it; it never produces one.
type ManifestRecord struct {
	// Dataset is the dataset identifier, repeated from the partition path
	// so a manifest is self-describing when inspected in isolation.
	Dataset string `json:"dataset"`

	// LoaderID identifies the ingestion job that produced the snapshot.
	LoaderID string `json:"loader_id"`

	// RowCount is the number of rows the loader claims to have written.
	RowCount int64 `json:"row_count"`

	// GeneratedAt is when the loader finished writing the snapshot.
	GeneratedAt time.Time `json:"generated_at"`
}

// Validate checks field constraints.
func (m *ManifestRecord) Validate() error {
	if strings.TrimSpace(m.Dataset) == "" {
		return ErrInvalidArgument.WithDetails("manifest dataset is required")
	}
	if m.RowCount < 0 {
		return ErrInvalidArgument.WithDetails("manifest row_count must be non-negative")
	}
	return nil
}
