// Package audit persists the governance audit ledger.
package audit

import (
	"context"

	"github.com/datalode/snapreg/internal/core/domain"
)

// RecordPromotion appends a promotion event.
func (l *Ledger) RecordPromotion(ctx context.Context, e *domain.SnapshotEntry, detail string) error {
	_, err := l.Record(ctx, Event{
		Kind:         EventPromoted,
		Source:       e.Source,
		Dataset:      e.Dataset,
		SnapshotDate: e.SnapshotDate.String(),
		Detail:       detail,
	})
	return err
}

// RecordSkipDecision appends a skip-detection decision event.
func (l *Ledger) RecordSkipDecision(ctx context.Context, key domain.Key, decision string, detail string) error {
	kind := EventFetched
	if decision == "skip" {
		kind = EventSkipped
	}
	_, err := l.Record(ctx, Event{
		Kind:    kind,
		Source:  key.Source,
		Dataset: key.Dataset,
		Detail:  detail,
	})
	return err
}

// RecordBaselineFallback appends a reconciliation event for a resolver
// falling back to latest-only because the baseline snapshot was absent.
func (l *Ledger) RecordBaselineFallback(ctx context.Context, key domain.Key, baseline domain.Date) error {
	_, err := l.Record(ctx, Event{
		Kind:         EventBaselineFallback,
		Source:       key.Source,
		Dataset:      key.Dataset,
		SnapshotDate: baseline.String(),
		Detail:       "baseline absent, resolved latest only",
	})
	return err
}
