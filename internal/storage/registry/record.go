// Package registry implements the snapshot store on a flat CSV file.
package registry

import (
	"fmt"
	"time"

	"github.com/datalode/snapreg/internal/core/domain"
)

// record is the CSV row shape of a snapshot entry. Kept separate from the
// domain type so the file format can stay stable while the domain evolves.
type record struct {
	Source        string `csv:"source"`
	Dataset       string `csv:"dataset"`
	SnapshotDate  string `csv:"snapshot_date"`
	Status        string `csv:"status"`
	CoverageStart string `csv:"coverage_start"`
	CoverageEnd   string `csv:"coverage_end"`
	RowCount      int64  `csv:"row_count"`
	ContentHash   string `csv:"content_hash"`
	PromotedAt    string `csv:"promoted_at"`
	Notes         string `csv:"notes"`
}

func toRecord(e *domain.SnapshotEntry) record {
	r := record{
		Source:        e.Source,
		Dataset:       e.Dataset,
		SnapshotDate:  e.SnapshotDate.String(),
		Status:        e.Status.String(),
		CoverageStart: e.CoverageStart,
		CoverageEnd:   e.CoverageEnd,
		RowCount:      e.RowCount,
		ContentHash:   e.ContentHash,
		Notes:         e.Notes,
	}
	if !e.PromotedAt.IsZero() {
		r.PromotedAt = e.PromotedAt.UTC().Format(time.RFC3339)
	}
	return r
}

func fromRecord(r record) (*domain.SnapshotEntry, error) {
	date, err := domain.ParseDate(r.SnapshotDate)
	if err != nil {
		return nil, fmt.Errorf("row %s/%s: %w", r.Source, r.Dataset, err)
	}
	status, err := domain.ParseStatus(r.Status)
	if err != nil {
		return nil, fmt.Errorf("row %s/%s/%s: %w", r.Source, r.Dataset, r.SnapshotDate, err)
	}

	e := &domain.SnapshotEntry{
		Source:        r.Source,
		Dataset:       r.Dataset,
		SnapshotDate:  date,
		Status:        status,
		CoverageStart: r.CoverageStart,
		CoverageEnd:   r.CoverageEnd,
		RowCount:      r.RowCount,
		ContentHash:   r.ContentHash,
		Notes:         r.Notes,
	}
	if r.PromotedAt != "" {
		promotedAt, err := time.Parse(time.RFC3339, r.PromotedAt)
		if err != nil {
			return nil, fmt.Errorf("row %s: bad promoted_at %q: %w", e.EntryKey(), r.PromotedAt, err)
		}
		e.PromotedAt = promotedAt
	}

	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}
