// Package service implements the governance operations of SnapReg.
package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/datalode/snapreg/internal/core/domain"
	"github.com/datalode/snapreg/internal/storage/columnar"
	"github.com/datalode/snapreg/internal/storage/manifest"
	"github.com/datalode/snapreg/internal/telemetry/logger"
)

// PromotionRecorder records promotion outcomes and skip state.
type PromotionRecorder interface {
	RecordPromotion(ctx context.Context, e *domain.SnapshotEntry, detail string) error
	SetLastSourceModified(ctx context.Context, key domain.Key, t time.Time) error
}

// PromoteRequest carries one promotion attempt.
type PromoteRequest struct {
	// Entry is the candidate snapshot entry.
	Entry *domain.SnapshotEntry

	// AsBaseline demotes the superseded entry to Historical instead of
	// Superseded, retaining it for baseline-plus-latest selection.
	AsBaseline bool

	// StrictAnomaly turns a flagged anomaly from advisory into blocking.
	StrictAnomaly bool

	// SourceModifiedAt is the externally reported modification time of the
	// upstream source, recorded for skip-detection. Zero when unknown.
	SourceModifiedAt time.Time
}

// PromoteResult describes a completed promotion.
type PromoteResult struct {
	Promotion *domain.Promotion
	Anomaly   *Assessment
}

// Promoter is the write path of the governance core. It wraps the registry
// promotion with the anomaly check, content fingerprinting and audit
// bookkeeping. Everything transactional stays inside the repository; the
// promoter only sequences the steps around it.
type Promoter struct {
	repo     SnapshotRepository
	detector *Detector
	layout   manifest.Layout
	audit    PromotionRecorder
	hash     func(path string) (string, error)
}

// PromoterOption configures the Promoter.
type PromoterOption func(*Promoter)

// WithPromotionRecorder wires the audit ledger.
func WithPromotionRecorder(rec PromotionRecorder) PromoterOption {
	return func(p *Promoter) {
		p.audit = rec
	}
}

// WithPromoterHasher overrides the content hash function. For tests.
func WithPromoterHasher(h func(path string) (string, error)) PromoterOption {
	return func(p *Promoter) {
		p.hash = h
	}
}

// NewPromoter creates the write path over the registry.
func NewPromoter(repo SnapshotRepository, detector *Detector, layout manifest.Layout, opts ...PromoterOption) *Promoter {
	p := &Promoter{
		repo:     repo,
		detector: detector,
		layout:   layout,
		hash:     columnar.HashFile,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Promote runs the anomaly check and applies the promotion atomically.
//
// A flagged anomaly is advisory unless the request is strict, in which case
// the promotion is refused and the registry stays unchanged. The registry
// itself enforces monotonicity and the single-Current invariant.
func (p *Promoter) Promote(ctx context.Context, req PromoteRequest) (*PromoteResult, error) {
	e := req.Entry
	if err := e.Validate(); err != nil {
		return nil, err
	}

	result := &PromoteResult{}

	assessment, err := p.detector.Check(ctx, e.DatasetKey(), e.RowCount)
	if err != nil {
		return nil, err
	}
	result.Anomaly = assessment

	if assessment.Flagged && req.StrictAnomaly {
		return nil, domain.ErrAnomalyBlocked.WithDetails(fmt.Sprintf(
			"rows %d -> %d (%.1f%%)", assessment.PriorRows, assessment.NewRows, assessment.DeltaPct))
	}

	// Fingerprint the snapshot file when it exists. Ingestion may promote
	// before the file lands in its final location, so absence is not an
	// error here; the validator will flag a truly missing file.
	if e.ContentHash == "" {
		hash, err := p.hash(p.layout.SnapshotPath(e.EntryKey()))
		switch {
		case err == nil:
			e = e.Clone()
			e.ContentHash = hash
		case !errors.Is(err, fs.ErrNotExist):
			logger.L(ctx).Debug("snapshot fingerprint unavailable",
				"path", p.layout.SnapshotPath(e.EntryKey()), "error", err)
		}
	}

	promotion, err := p.repo.Promote(ctx, e, req.AsBaseline)
	if err != nil {
		return nil, err
	}
	result.Promotion = promotion

	log := logger.L(ctx).With(
		"source", e.Source,
		"dataset", e.Dataset,
		"snapshot_date", e.SnapshotDate.String(),
		"row_count", e.RowCount,
	)
	switch {
	case promotion.Idempotent:
		log.Info("promotion re-applied idempotently")
	case promotion.Demoted != nil:
		log.Info("snapshot promoted", "superseded", promotion.Demoted.SnapshotDate.String(),
			"demoted_to", promotion.Demoted.Status.String())
	default:
		log.Info("snapshot promoted", "superseded", "none")
	}

	if p.audit != nil {
		detail := "promoted"
		if promotion.Demoted != nil {
			detail = "promoted, superseding " + promotion.Demoted.SnapshotDate.String()
		}
		if err := p.audit.RecordPromotion(ctx, promotion.Entry, detail); err != nil {
			log.Error("record promotion audit event", "error", err)
		}
		if !req.SourceModifiedAt.IsZero() {
			if err := p.audit.SetLastSourceModified(ctx, e.DatasetKey(), req.SourceModifiedAt); err != nil {
				log.Error("record source modification time", "error", err)
			}
		}
	}
	return result, nil
}
