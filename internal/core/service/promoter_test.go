// Package service implements the governance operations of SnapReg.
package service

import (
	"context"
	"testing"
	"time"

	"github.com/datalode/snapreg/internal/core/domain"
	"github.com/datalode/snapreg/internal/storage/manifest"
)

type auditSpy struct {
	promotions []string
	modified   map[string]time.Time
}

func (a *auditSpy) RecordPromotion(_ context.Context, e *domain.SnapshotEntry, _ string) error {
	a.promotions = append(a.promotions, e.EntryKey().String())
	return nil
}

func (a *auditSpy) SetLastSourceModified(_ context.Context, key domain.Key, t time.Time) error {
	if a.modified == nil {
		a.modified = make(map[string]time.Time)
	}
	a.modified[key.String()] = t
	return nil
}

func candidate(date string, rows int64) *domain.SnapshotEntry {
	return &domain.SnapshotEntry{
		Source:       "nfl",
		Dataset:      "weekly",
		SnapshotDate: domain.MustParseDate(date),
		Status:       domain.StatusPending,
		RowCount:     rows,
	}
}

func newPromoterFixture(t *testing.T, thresholdPct float64, opts ...PromoterOption) (*Promoter, *registryFixture, *auditSpy) {
	t.Helper()
	repo := newTestRepo(t)
	detector := NewDetector(repo, map[string]domain.AnomalyPolicy{
		"nfl": {ThresholdPct: thresholdPct},
	})
	spy := &auditSpy{}
	opts = append([]PromoterOption{WithPromotionRecorder(spy)}, opts...)
	p := NewPromoter(repo, detector, manifest.Layout{Root: t.TempDir()}, opts...)
	return p, &registryFixture{t: t, repo: repo}, spy
}

func TestPromote_FirstLoad(t *testing.T) {
	p, fx, spy := newPromoterFixture(t, 50)

	res, err := p.Promote(context.Background(), PromoteRequest{Entry: candidate("2025-01-08", 1000)})
	if err != nil {
		t.Fatalf("Promote() error = %v", err)
	}
	if !res.Anomaly.FirstLoad {
		t.Error("first promotion should report a first load")
	}
	if res.Promotion.Entry.Status != domain.StatusCurrent {
		t.Errorf("promoted status = %s, want current", res.Promotion.Entry.Status)
	}
	if res.Promotion.Demoted != nil {
		t.Errorf("nothing to demote on first load, got %v", res.Promotion.Demoted.EntryKey())
	}

	cur, ok, err := fx.repo.Current(context.Background(), domain.Key{Source: "nfl", Dataset: "weekly"})
	if err != nil || !ok {
		t.Fatalf("Current() = %v, %v, %v", cur, ok, err)
	}
	if len(spy.promotions) != 1 || spy.promotions[0] != "nfl/weekly/2025-01-08" {
		t.Errorf("audit promotions = %v", spy.promotions)
	}
}

func TestPromote_AdvisoryAnomalyStillPromotes(t *testing.T) {
	p, fx, _ := newPromoterFixture(t, 50)
	if _, err := p.Promote(context.Background(), PromoteRequest{Entry: candidate("2025-01-01", 1000)}); err != nil {
		t.Fatalf("seed promote: %v", err)
	}

	res, err := p.Promote(context.Background(), PromoteRequest{Entry: candidate("2025-01-08", 10)})
	if err != nil {
		t.Fatalf("Promote() error = %v", err)
	}
	if !res.Anomaly.Flagged {
		t.Error("1000 -> 10 should be flagged")
	}
	if res.Promotion == nil || res.Promotion.Entry.SnapshotDate.String() != "2025-01-08" {
		t.Fatalf("advisory anomaly must not block the promotion, got %+v", res.Promotion)
	}
	if res.Promotion.Demoted == nil || res.Promotion.Demoted.Status != domain.StatusSuperseded {
		t.Errorf("prior entry should be superseded, got %+v", res.Promotion.Demoted)
	}

	cur, ok, _ := fx.repo.Current(context.Background(), domain.Key{Source: "nfl", Dataset: "weekly"})
	if !ok || cur.SnapshotDate.String() != "2025-01-08" {
		t.Errorf("Current = %+v, want 2025-01-08", cur)
	}
}

func TestPromote_StrictAnomalyBlocks(t *testing.T) {
	p, fx, spy := newPromoterFixture(t, 50)
	if _, err := p.Promote(context.Background(), PromoteRequest{Entry: candidate("2025-01-01", 1000)}); err != nil {
		t.Fatalf("seed promote: %v", err)
	}

	_, err := p.Promote(context.Background(), PromoteRequest{
		Entry:         candidate("2025-01-08", 10),
		StrictAnomaly: true,
	})
	if !domain.IsDomainError(err, domain.ErrAnomalyBlocked.Code) {
		t.Fatalf("Promote() error = %v, want anomaly blocked", err)
	}

	// Registry untouched: the January 1 entry is still Current.
	cur, ok, _ := fx.repo.Current(context.Background(), domain.Key{Source: "nfl", Dataset: "weekly"})
	if !ok || cur.SnapshotDate.String() != "2025-01-01" {
		t.Errorf("Current = %+v, want 2025-01-01 untouched", cur)
	}
	if len(spy.promotions) != 1 {
		t.Errorf("blocked promotion must not reach the audit ledger, got %v", spy.promotions)
	}
}

func TestPromote_AsBaselineDemotesToHistorical(t *testing.T) {
	p, _, _ := newPromoterFixture(t, 50)
	if _, err := p.Promote(context.Background(), PromoteRequest{Entry: candidate("2025-01-01", 1000)}); err != nil {
		t.Fatalf("seed promote: %v", err)
	}

	res, err := p.Promote(context.Background(), PromoteRequest{
		Entry:      candidate("2025-01-08", 1050),
		AsBaseline: true,
	})
	if err != nil {
		t.Fatalf("Promote() error = %v", err)
	}
	if res.Promotion.Demoted == nil || res.Promotion.Demoted.Status != domain.StatusHistorical {
		t.Errorf("demoted = %+v, want historical", res.Promotion.Demoted)
	}
}

func TestPromote_RecordsSourceModificationTime(t *testing.T) {
	p, _, spy := newPromoterFixture(t, 50)

	mod := time.Date(2025, 1, 8, 6, 30, 0, 0, time.UTC)
	_, err := p.Promote(context.Background(), PromoteRequest{
		Entry:            candidate("2025-01-08", 1000),
		SourceModifiedAt: mod,
	})
	if err != nil {
		t.Fatalf("Promote() error = %v", err)
	}
	if got := spy.modified["nfl/weekly"]; !got.Equal(mod) {
		t.Errorf("recorded modification time = %v, want %v", got, mod)
	}
}

func TestPromote_FingerprintsSnapshotFile(t *testing.T) {
	p, _, _ := newPromoterFixture(t, 50,
		WithPromoterHasher(func(string) (string, error) { return "abc123", nil }))

	res, err := p.Promote(context.Background(), PromoteRequest{Entry: candidate("2025-01-08", 1000)})
	if err != nil {
		t.Fatalf("Promote() error = %v", err)
	}
	if res.Promotion.Entry.ContentHash != "abc123" {
		t.Errorf("ContentHash = %q, want abc123", res.Promotion.Entry.ContentHash)
	}
}

func TestPromote_RejectsInvalidEntry(t *testing.T) {
	p, _, _ := newPromoterFixture(t, 50)

	bad := candidate("2025-01-08", 1000)
	bad.Dataset = ""
	_, err := p.Promote(context.Background(), PromoteRequest{Entry: bad})
	if !domain.IsDomainError(err, domain.ErrEntryInvalid.Code) {
		t.Errorf("Promote() error = %v, want entry invalid", err)
	}
}
