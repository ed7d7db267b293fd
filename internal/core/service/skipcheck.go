// Package service implements the governance operations of SnapReg.
package service

import (
	"context"
	"time"

	"github.com/datalode/snapreg/internal/core/domain"
	"github.com/datalode/snapreg/internal/telemetry/logger"
)

// Decision is a skip-detection outcome.
type Decision string

const (
	// DecisionFetch: the source must be (re-)ingested.
	DecisionFetch Decision = "fetch"

	// DecisionSkip: the source is unchanged since the last promote.
	DecisionSkip Decision = "skip"
)

// ModifiedState reads the per-key source modification time recorded at the
// last successful promote.
type ModifiedState interface {
	LastSourceModified(ctx context.Context, key domain.Key) (time.Time, bool, error)
}

// SkipRecorder records skip decisions for audit.
type SkipRecorder interface {
	RecordSkipDecision(ctx context.Context, key domain.Key, decision string, detail string) error
}

// SkipChecker decides whether a source needs re-fetching by comparing its
// externally reported modification time against the one recorded at the
// last promote.
//
// The check is strictly a best-effort optimization. Every ambiguity
// (missing state, unparseable or zero timestamps, a dataset that has
// never been promoted) resolves to fetch. Only an exact, confirmed
// "unchanged" skips.
type SkipChecker struct {
	repo  SnapshotQuerier
	state ModifiedState
	audit SkipRecorder
}

// NewSkipChecker creates a SkipChecker.
func NewSkipChecker(repo SnapshotQuerier, state ModifiedState, audit SkipRecorder) *SkipChecker {
	return &SkipChecker{repo: repo, state: state, audit: audit}
}

// Check returns the fetch-or-skip decision for key given the modification
// time the source reports right now. The decision and its reason are
// recorded in the audit ledger.
func (c *SkipChecker) Check(ctx context.Context, key domain.Key, reported time.Time) (Decision, string, error) {
	decision, reason, err := c.decide(ctx, key, reported)
	if err != nil {
		return "", "", err
	}

	logger.L(ctx).Info("skip-detection decision",
		"source", key.Source,
		"dataset", key.Dataset,
		"decision", string(decision),
		"reason", reason,
	)
	if c.audit != nil {
		if err := c.audit.RecordSkipDecision(ctx, key, string(decision), reason); err != nil {
			logger.L(ctx).Error("record skip decision", "error", err)
		}
	}
	return decision, reason, nil
}

func (c *SkipChecker) decide(ctx context.Context, key domain.Key, reported time.Time) (Decision, string, error) {
	if reported.IsZero() {
		return DecisionFetch, "source reported no modification time", nil
	}

	// A dataset with no Current snapshot has never completed a load; a
	// stale recorded timestamp must not suppress its first one.
	if _, ok, err := c.repo.Current(ctx, key); err != nil {
		return "", "", err
	} else if !ok {
		return DecisionFetch, "no current snapshot registered", nil
	}

	recorded, ok, err := c.state.LastSourceModified(ctx, key)
	if err != nil {
		return "", "", err
	}
	if !ok {
		return DecisionFetch, "no modification time recorded at last promote", nil
	}

	if reported.Equal(recorded) {
		return DecisionSkip, "source unchanged since " + recorded.UTC().Format(time.RFC3339), nil
	}
	if reported.Before(recorded) {
		// The source moved backwards; trust nothing and re-fetch.
		return DecisionFetch, "reported modification time older than recorded", nil
	}
	return DecisionFetch, "source modified " + reported.UTC().Format(time.RFC3339), nil
}
