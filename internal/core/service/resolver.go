// Package service implements the governance operations of SnapReg.
package service

import (
	"context"

	"github.com/datalode/snapreg/internal/core/domain"
	"github.com/datalode/snapreg/internal/telemetry/logger"
)

// FallbackRecorder records baseline-fallback reconciliation events.
type FallbackRecorder interface {
	RecordBaselineFallback(ctx context.Context, key domain.Key, baseline domain.Date) error
}

// Resolver maps a selection strategy to the ordered set of snapshot dates a
// reader should use. Resolution is pure over registry state: the same store
// contents and parameters always produce the same dates.
type Resolver struct {
	repo  SnapshotQuerier
	audit FallbackRecorder
}

// ResolverOption configures the Resolver.
type ResolverOption func(*Resolver)

// WithFallbackRecorder records baseline fallbacks to the audit ledger.
func WithFallbackRecorder(rec FallbackRecorder) ResolverOption {
	return func(r *Resolver) {
		r.audit = rec
	}
}

// NewResolver creates a Resolver over the given registry.
func NewResolver(repo SnapshotQuerier, opts ...ResolverOption) *Resolver {
	r := &Resolver{repo: repo}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the snapshot dates selected by sel, ascending.
//
// Archived entries never participate. A BaselinePlusLatest selection whose
// baseline has no matching entry falls back to LatestOnly with a warning
// and a reconciliation event rather than failing or returning nothing; the
// downstream read must not break because a retention decision removed the
// baseline.
func (r *Resolver) Resolve(ctx context.Context, source, dataset string, sel domain.Selection) ([]domain.Date, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}

	entries, err := r.repo.Query(ctx, source, dataset)
	if err != nil {
		return nil, err
	}

	var selectable []*domain.SnapshotEntry
	for _, e := range entries {
		if e.Status.Selectable() {
			selectable = append(selectable, e)
		}
	}
	if len(selectable) == 0 {
		return nil, nil
	}

	// Query returns ascending order, so the latest is last.
	latest := selectable[len(selectable)-1].SnapshotDate

	switch sel.Strategy {
	case domain.StrategyLatestOnly:
		return []domain.Date{latest}, nil

	case domain.StrategyAll:
		dates := make([]domain.Date, len(selectable))
		for i, e := range selectable {
			dates[i] = e.SnapshotDate
		}
		return dates, nil

	case domain.StrategyBaselinePlusLatest:
		if !hasDate(selectable, sel.Baseline) {
			key := domain.Key{Source: source, Dataset: dataset}
			logger.L(ctx).Warn("baseline snapshot absent, falling back to latest only",
				"source", source,
				"dataset", dataset,
				"baseline", sel.Baseline.String(),
				"latest", latest.String(),
			)
			if r.audit != nil {
				if err := r.audit.RecordBaselineFallback(ctx, key, sel.Baseline); err != nil {
					logger.L(ctx).Error("record baseline fallback", "error", err)
				}
			}
			return []domain.Date{latest}, nil
		}
		if sel.Baseline.Equal(latest) {
			return []domain.Date{latest}, nil
		}
		return []domain.Date{sel.Baseline, latest}, nil

	default:
		// Unreachable for configurations that went through ParseStrategy.
		return nil, domain.ErrUnknownStrategy.WithDetails(sel.Strategy.String())
	}
}

func hasDate(entries []*domain.SnapshotEntry, d domain.Date) bool {
	for _, e := range entries {
		if e.SnapshotDate.Equal(d) {
			return true
		}
	}
	return false
}
