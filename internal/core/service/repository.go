// Package service implements the governance operations of SnapReg.
package service

import (
	"context"

	"github.com/datalode/snapreg/internal/core/domain"
)

// SnapshotQuerier is the read surface of the snapshot registry.
type SnapshotQuerier interface {
	// Query returns entries for a key ordered by snapshot date ascending,
	// optionally filtered by status.
	Query(ctx context.Context, source, dataset string, statuses ...domain.Status) ([]*domain.SnapshotEntry, error)

	// All returns every entry ordered by source, dataset, snapshot date.
	All(ctx context.Context) ([]*domain.SnapshotEntry, error)

	// Current returns the Current entry for key, if any.
	Current(ctx context.Context, key domain.Key) (*domain.SnapshotEntry, bool, error)
}

// SnapshotRepository is the full registry surface, including the sole
// write path.
type SnapshotRepository interface {
	SnapshotQuerier

	// Promote atomically makes e the Current entry for its key.
	Promote(ctx context.Context, e *domain.SnapshotEntry, asBaseline bool) (*domain.Promotion, error)
}
