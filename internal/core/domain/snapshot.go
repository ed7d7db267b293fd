// Package domain defines the core domain models for SnapReg.
package domain

import (
	"fmt"
	"strings"
	"time"
)

// Status is the lifecycle state of a snapshot entry.
type Status string

const (
	// StatusPending marks an entry created when ingestion finished writing
	// files but before it was promoted.
	StatusPending Status = "pending"

	// StatusCurrent marks the authoritative snapshot for a dataset.
	// At most one entry per (source, dataset) may hold this status.
	StatusCurrent Status = "current"

	// StatusHistorical marks a demoted entry deliberately retained as a
	// baseline alongside the latest snapshot.
	StatusHistorical Status = "historical"

	// StatusSuperseded marks an entry demoted by a newer promotion.
	StatusSuperseded Status = "superseded"

	// StatusArchived marks an entry removed from selection by retention policy.
	StatusArchived Status = "archived"
)

// ParseStatus parses a status string.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, nil
	case StatusCurrent:
		return StatusCurrent, nil
	case StatusHistorical:
		return StatusHistorical, nil
	case StatusSuperseded:
		return StatusSuperseded, nil
	case StatusArchived:
		return StatusArchived, nil
	default:
		return "", ErrInvalidArgument.WithDetails(fmt.Sprintf("unknown status %q", s))
	}
}

// String returns the status string.
func (s Status) String() string {
	return string(s)
}

// Selectable reports whether entries in this status participate in
// snapshot selection. Archived entries never do.
func (s Status) Selectable() bool {
	return s != StatusArchived
}

// Key is the dataset-level identity of a snapshot series.
type Key struct {
	Source  string
	Dataset string
}

// String returns "source/dataset".
func (k Key) String() string {
	return k.Source + "/" + k.Dataset
}

// EntryKey is the natural key of a single snapshot entry.
type EntryKey struct {
	Key
	SnapshotDate Date
}

// String returns "source/dataset/YYYY-MM-DD".
func (k EntryKey) String() string {
	return k.Key.String() + "/" + k.SnapshotDate.String()
}

// SnapshotEntry is one registered snapshot of a dataset.
//
// (Source, Dataset, SnapshotDate) is the natural key. Once an entry has been
// promoted, RowCount and the coverage range are fixed; only Status may change
// afterwards.
type SnapshotEntry struct {
	// Source identifies the upstream data source (e.g., "nfl").
	Source string `json:"source"`

	// Dataset identifies the dataset within the source (e.g., "weekly").
	Dataset string `json:"dataset"`

	// SnapshotDate is the calendar date of the partition.
	SnapshotDate Date `json:"snapshot_date"`

	// Status is the lifecycle state.
	Status Status `json:"status"`

	// CoverageStart and CoverageEnd optionally bound the logical range the
	// snapshot covers (seasons, weeks). Free-form labels, empty when unused.
	CoverageStart string `json:"coverage_start,omitempty"`
	CoverageEnd   string `json:"coverage_end,omitempty"`

	// RowCount is the row count fixed at promotion time.
	RowCount int64 `json:"row_count"`

	// ContentHash is an optional sha256 fingerprint of the snapshot file.
	ContentHash string `json:"content_hash,omitempty"`

	// PromotedAt records when the entry became Current. Zero for entries
	// that were never promoted.
	PromotedAt time.Time `json:"promoted_at,omitempty"`

	// Notes is a free-text annotation.
	Notes string `json:"notes,omitempty"`
}

// Key returns the dataset-level identity.
func (e *SnapshotEntry) DatasetKey() Key {
	return Key{Source: e.Source, Dataset: e.Dataset}
}

// EntryKey returns the natural key.
func (e *SnapshotEntry) EntryKey() EntryKey {
	return EntryKey{Key: e.DatasetKey(), SnapshotDate: e.SnapshotDate}
}

// Validate checks field constraints.
func (e *SnapshotEntry) Validate() error {
	if strings.TrimSpace(e.Source) == "" {
		return ErrEntryInvalid.WithDetails("source is required")
	}
	if strings.TrimSpace(e.Dataset) == "" {
		return ErrEntryInvalid.WithDetails("dataset is required")
	}
	if strings.ContainsAny(e.Source, "/\\") || strings.ContainsAny(e.Dataset, "/\\") {
		return ErrEntryInvalid.WithDetails("source and dataset must not contain path separators")
	}
	if e.SnapshotDate.IsZero() {
		return ErrEntryInvalid.WithDetails("snapshot_date is required")
	}
	if e.RowCount < 0 {
		return ErrEntryInvalid.WithDetails("row_count must be non-negative")
	}
	if _, err := ParseStatus(string(e.Status)); err != nil {
		return ErrEntryInvalid.WithDetails(fmt.Sprintf("bad status %q", e.Status))
	}
	return nil
}

// Clone returns a copy of the entry.
func (e *SnapshotEntry) Clone() *SnapshotEntry {
	c := *e
	return &c
}
