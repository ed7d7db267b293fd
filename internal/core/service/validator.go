// Package service implements the governance operations of SnapReg.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/datalode/snapreg/internal/core/domain"
	"github.com/datalode/snapreg/internal/storage/columnar"
	"github.com/datalode/snapreg/internal/storage/manifest"
	"github.com/datalode/snapreg/internal/telemetry/logger"
)

// ViolationKind classifies validator findings.
type ViolationKind string

const (
	// KindMissingManifest: the sidecar manifest for a registered snapshot
	// does not exist on disk.
	KindMissingManifest ViolationKind = "missing-manifest"

	// KindUnreadableManifest: the sidecar manifest exists but cannot be
	// read or parsed.
	KindUnreadableManifest ViolationKind = "unreadable-manifest"

	// KindRowCountMismatch: the registry and the manifest disagree about
	// the row count. A registry bookkeeping error.
	KindRowCountMismatch ViolationKind = "row-count-mismatch"

	// KindRowCountDrift: the snapshot file itself disagrees with the
	// manifest. A corrupted or partially written file.
	KindRowCountDrift ViolationKind = "row-count-drift"

	// KindContentHashMismatch: the snapshot file no longer matches the
	// fingerprint recorded at promotion time.
	KindContentHashMismatch ViolationKind = "content-hash-mismatch"
)

// Violation is one validator finding.
type Violation struct {
	Kind     ViolationKind   `json:"kind"`
	Key      domain.EntryKey `json:"-"`
	Source   string          `json:"source"`
	Dataset  string          `json:"dataset"`
	Date     string          `json:"snapshot_date"`
	Detail   string          `json:"detail"`
	Expected int64           `json:"expected,omitempty"`
	Actual   int64           `json:"actual,omitempty"`
}

// Report aggregates every violation found in one validation pass.
type Report struct {
	GeneratedAt time.Time   `json:"generated_at"`
	Checked     int         `json:"checked"`
	Violations  []Violation `json:"violations"`
}

// Count returns the number of violations; it doubles as the process exit
// code for CI gating, zero meaning clean.
func (r *Report) Count() int {
	return len(r.Violations)
}

// CountByKind returns violation counts grouped by kind.
func (r *Report) CountByKind() map[ViolationKind]int {
	out := make(map[ViolationKind]int)
	for _, v := range r.Violations {
		out[v.Kind]++
	}
	return out
}

// Validator cross-checks registry entries against on-disk manifests and
// the snapshot files themselves. It always completes the full pass and
// reports everything it found; a single broken partition must not hide
// the next one.
type Validator struct {
	repo    SnapshotQuerier
	layout  manifest.Layout
	counter columnar.RowCounter
	hash    func(path string) (string, error)
	now     func() time.Time
}

// ValidatorOption configures the Validator.
type ValidatorOption func(*Validator)

// WithRowCounter overrides the columnar row counter. For tests.
func WithRowCounter(c columnar.RowCounter) ValidatorOption {
	return func(v *Validator) {
		v.counter = c
	}
}

// WithHasher overrides the content hash function. For tests.
func WithHasher(h func(path string) (string, error)) ValidatorOption {
	return func(v *Validator) {
		v.hash = h
	}
}

// WithValidatorClock overrides the time source. For tests.
func WithValidatorClock(now func() time.Time) ValidatorOption {
	return func(v *Validator) {
		v.now = now
	}
}

// NewValidator creates a Validator over the registry and snapshot layout.
func NewValidator(repo SnapshotQuerier, layout manifest.Layout, opts ...ValidatorOption) *Validator {
	v := &Validator{
		repo:    repo,
		layout:  layout,
		counter: columnar.ParquetCounter{},
		hash:    columnar.HashFile,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate audits every non-Archived entry. With sources given, only
// entries of those sources are audited. The context is honored between
// entries so a cancelled CI job stops at a partition boundary.
func (v *Validator) Validate(ctx context.Context, sources ...string) (*Report, error) {
	entries, err := v.repo.All(ctx)
	if err != nil {
		return nil, err
	}

	report := &Report{GeneratedAt: v.now()}
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.Status == domain.StatusArchived {
			continue
		}
		if len(sources) > 0 && !stringIn(e.Source, sources) {
			continue
		}

		report.Checked++
		report.Violations = append(report.Violations, v.check(e)...)
	}

	logger.L(ctx).Info("manifest validation finished",
		"checked", report.Checked,
		"violations", report.Count(),
	)
	return report, nil
}

// check audits one entry and returns its violations, in severity order:
// manifest presence, registry-vs-manifest, manifest-vs-file, fingerprint.
func (v *Validator) check(e *domain.SnapshotEntry) []Violation {
	key := e.EntryKey()

	rec, err := v.layout.Read(key)
	if errors.Is(err, manifest.ErrNotFound) {
		return []Violation{v.violation(key, KindMissingManifest,
			"no manifest at "+v.layout.ManifestPath(key), 0, 0)}
	}
	if err != nil {
		return []Violation{v.violation(key, KindUnreadableManifest,
			fmt.Sprintf("manifest unreadable: %v", err), 0, 0)}
	}

	var out []Violation
	if rec.RowCount != e.RowCount {
		out = append(out, v.violation(key, KindRowCountMismatch,
			"registry row count disagrees with manifest", e.RowCount, rec.RowCount))
	}

	actual, err := v.counter.CountRows(v.layout.SnapshotPath(key))
	if err != nil {
		out = append(out, v.violation(key, KindRowCountDrift,
			fmt.Sprintf("snapshot file unreadable: %v", err), rec.RowCount, 0))
		return out
	}
	if actual != rec.RowCount {
		out = append(out, v.violation(key, KindRowCountDrift,
			"snapshot file row count disagrees with manifest", rec.RowCount, actual))
	}

	if e.ContentHash != "" {
		got, err := v.hash(v.layout.SnapshotPath(key))
		if err == nil && got != e.ContentHash {
			out = append(out, v.violation(key, KindContentHashMismatch,
				"snapshot file fingerprint changed since promotion", 0, 0))
		}
	}
	return out
}

func (v *Validator) violation(key domain.EntryKey, kind ViolationKind, detail string, expected, actual int64) Violation {
	return Violation{
		Kind:     kind,
		Key:      key,
		Source:   key.Source,
		Dataset:  key.Dataset,
		Date:     key.SnapshotDate.String(),
		Detail:   detail,
		Expected: expected,
		Actual:   actual,
	}
}
