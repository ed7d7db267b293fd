// Package service implements the governance operations of SnapReg.
package service

import (
	"context"
	"math"

	"github.com/datalode/snapreg/internal/core/domain"
	"github.com/datalode/snapreg/internal/telemetry/logger"
)

// Assessment is the anomaly verdict for one candidate snapshot.
type Assessment struct {
	Key domain.Key

	// FirstLoad is true when no prior snapshot exists to compare against.
	FirstLoad bool

	// PriorDate and PriorRows describe the most recent prior entry.
	PriorDate domain.Date
	PriorRows int64

	// NewRows is the candidate's row count.
	NewRows int64

	// DeltaPct is the signed percentage change from prior to new.
	// +Inf when the prior snapshot had zero rows and the new one does not.
	DeltaPct float64

	// Flagged is true when the delta breaches policy or the candidate
	// dropped to zero rows.
	Flagged bool

	// ZeroDrop is true when the candidate has zero rows after a non-empty
	// prior snapshot.
	ZeroDrop bool
}

// Detector flags suspiciously large row-count changes between consecutive
// snapshots of the same dataset. Its verdict is advisory; blocking is a
// promotion-time policy decision.
type Detector struct {
	repo     SnapshotQuerier
	policies map[string]domain.AnomalyPolicy
}

// NewDetector creates a Detector with per-source anomaly policies.
func NewDetector(repo SnapshotQuerier, policies map[string]domain.AnomalyPolicy) *Detector {
	return &Detector{repo: repo, policies: policies}
}

// Check compares a candidate row count against the most recent prior entry
// for the key, regardless of that entry's status. A flagged verdict is
// always logged with both counts.
func (d *Detector) Check(ctx context.Context, key domain.Key, newRows int64) (*Assessment, error) {
	policy, ok := d.policies[key.Source]
	if !ok {
		return nil, domain.ErrMissingPolicy.WithDetails("anomaly policy for source " + key.Source)
	}

	entries, err := d.repo.Query(ctx, key.Source, key.Dataset)
	if err != nil {
		return nil, err
	}

	a := &Assessment{Key: key, NewRows: newRows}
	if len(entries) == 0 {
		a.FirstLoad = true
		return a, nil
	}

	prior := entries[len(entries)-1]
	a.PriorDate = prior.SnapshotDate
	a.PriorRows = prior.RowCount

	switch {
	case a.PriorRows == 0 && newRows == 0:
		a.DeltaPct = 0
	case a.PriorRows == 0:
		a.DeltaPct = math.Inf(1)
	default:
		a.DeltaPct = float64(newRows-a.PriorRows) / float64(a.PriorRows) * 100
	}

	// A collapse to zero rows is an ingestion failure until proven
	// otherwise, whatever the configured threshold says.
	a.ZeroDrop = newRows == 0 && a.PriorRows > 0
	a.Flagged = a.ZeroDrop || math.Abs(a.DeltaPct) > policy.ThresholdPct

	if a.Flagged {
		logger.L(ctx).Warn("row count anomaly detected",
			"source", key.Source,
			"dataset", key.Dataset,
			"prior_date", a.PriorDate.String(),
			"prior_rows", a.PriorRows,
			"new_rows", a.NewRows,
			"delta_pct", a.DeltaPct,
			"threshold_pct", policy.ThresholdPct,
		)
	}
	return a, nil
}
