// Package registry implements the snapshot store on a flat CSV file.
package registry

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/jszwec/csvutil"

	"github.com/datalode/snapreg/internal/core/domain"
	"github.com/datalode/snapreg/pkg/keylock"
)

// Store is the snapshot registry backed by a single CSV file.
//
// All access goes through Upsert, Query and Promote; nothing else may write
// the backing file. A store-wide RWMutex guards the in-memory table and the
// file, and a striped key lock serializes promotions per (source, dataset).
type Store struct {
	path string

	mu      sync.RWMutex
	entries map[domain.EntryKey]*domain.SnapshotEntry

	keys *keylock.KeyLock
	now  func() time.Time
}

// Option configures the Store.
type Option func(*Store)

// WithClock overrides the time source. For tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Open loads the registry file at path, creating an empty store when the
// file does not exist yet.
func Open(path string, opts ...Option) (*Store, error) {
	s := &Store{
		path:    path,
		entries: make(map[domain.EntryKey]*domain.SnapshotEntry),
		keys:    keylock.New(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Upsert inserts or replaces an entry by natural key.
//
// An upsert that would give a (source, dataset) pair a second Current entry
// is rejected with an integrity violation and leaves the store unchanged.
func (s *Store) Upsert(_ context.Context, e *domain.SnapshotEntry) error {
	if err := e.Validate(); err != nil {
		return err
	}

	return s.mutate(func(entries map[domain.EntryKey]*domain.SnapshotEntry) error {
		if e.Status == domain.StatusCurrent {
			if cur, ok := currentOf(entries, e.DatasetKey()); ok && cur.EntryKey() != e.EntryKey() {
				return domain.ErrIntegrityViolation.WithDetails(fmt.Sprintf(
					"%s already current for %s", cur.SnapshotDate, e.DatasetKey()))
			}
		}
		entries[e.EntryKey()] = e.Clone()
		return nil
	})
}

// Query returns entries for the given key ordered by snapshot date
// ascending. With statuses given, only entries in one of those statuses
// are returned.
func (s *Store) Query(_ context.Context, source, dataset string, statuses ...domain.Status) ([]*domain.SnapshotEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.SnapshotEntry
	for _, e := range s.entries {
		if e.Source != source || e.Dataset != dataset {
			continue
		}
		if len(statuses) > 0 && !statusIn(e.Status, statuses) {
			continue
		}
		out = append(out, e.Clone())
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].SnapshotDate.Before(out[j].SnapshotDate)
	})
	return out, nil
}

// All returns every entry, ordered by source, dataset, then snapshot date.
func (s *Store) All(_ context.Context) ([]*domain.SnapshotEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.SnapshotEntry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.Clone())
	}
	sortEntries(out)
	return out, nil
}

// Current returns the Current entry for key, if any.
func (s *Store) Current(_ context.Context, key domain.Key) (*domain.SnapshotEntry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cur, ok := currentOf(s.entries, key)
	if !ok {
		return nil, false, nil
	}
	return cur.Clone(), true, nil
}

// Promote atomically makes e the Current entry for its (source, dataset).
//
// The existing Current entry, if any, is demoted to Superseded, or to
// Historical when asBaseline is set. A promotion dated older than or equal
// to the existing Current entry (for a different natural key) is rejected
// with a monotonicity violation. Re-running an identical promotion updates
// row count and notes in place. Either everything is applied and persisted,
// or nothing is.
func (s *Store) Promote(_ context.Context, e *domain.SnapshotEntry, asBaseline bool) (*domain.Promotion, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}

	key := e.DatasetKey().String()
	s.keys.Lock(key)
	defer s.keys.Unlock(key)

	outcome := &domain.Promotion{}
	err := s.mutate(func(entries map[domain.EntryKey]*domain.SnapshotEntry) error {
		cur, hasCurrent := currentOf(entries, e.DatasetKey())

		if hasCurrent && cur.EntryKey() != e.EntryKey() && !cur.SnapshotDate.Before(e.SnapshotDate) {
			return domain.ErrMonotonicityViolation.WithDetails(fmt.Sprintf(
				"candidate %s is not newer than current %s for %s",
				e.SnapshotDate, cur.SnapshotDate, e.DatasetKey()))
		}

		// Re-run of the same ingestion: the candidate already is the
		// Current entry. Refresh the mutable fields and stop.
		if hasCurrent && cur.EntryKey() == e.EntryKey() {
			cur.RowCount = e.RowCount
			cur.Notes = e.Notes
			if e.ContentHash != "" {
				cur.ContentHash = e.ContentHash
			}
			outcome.Entry = cur.Clone()
			outcome.Idempotent = true
			return nil
		}

		if hasCurrent {
			if asBaseline {
				cur.Status = domain.StatusHistorical
			} else {
				cur.Status = domain.StatusSuperseded
			}
			outcome.Demoted = cur.Clone()
		}

		promoted := e.Clone()
		promoted.Status = domain.StatusCurrent
		promoted.PromotedAt = s.now().UTC()
		entries[promoted.EntryKey()] = promoted
		outcome.Entry = promoted.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

// mutate applies fn to a copy of the table, persists the copy, and swaps it
// in. A failure at any point leaves both the file and the in-memory table
// untouched.
func (s *Store) mutate(fn func(map[domain.EntryKey]*domain.SnapshotEntry) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[domain.EntryKey]*domain.SnapshotEntry, len(s.entries)+1)
	for k, v := range s.entries {
		next[k] = v.Clone()
	}

	if err := fn(next); err != nil {
		return err
	}
	if err := s.persist(next); err != nil {
		return err
	}

	s.entries = next
	return nil
}

// load reads the registry file into memory. A missing file is an empty store.
func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return domain.ErrRegistryIO.WithDetails("read "+s.path).WithCause(err)
	}
	if len(data) == 0 {
		return nil
	}

	var records []record
	if err := csvutil.Unmarshal(data, &records); err != nil {
		return domain.ErrRegistryIO.WithDetails("decode "+s.path).WithCause(err)
	}

	for _, r := range records {
		e, err := fromRecord(r)
		if err != nil {
			return domain.ErrRegistryIO.WithDetails("decode " + s.path).WithCause(err)
		}
		if prev, dup := s.entries[e.EntryKey()]; dup {
			return domain.ErrRegistryIO.WithDetails(fmt.Sprintf(
				"duplicate entry %s in %s", prev.EntryKey(), s.path))
		}
		s.entries[e.EntryKey()] = e
	}

	// The file is hand-diffable, not hand-editable; still, guard against a
	// registry that arrives holding two Current rows for one dataset.
	seen := make(map[domain.Key]domain.Date)
	for _, e := range s.entries {
		if e.Status != domain.StatusCurrent {
			continue
		}
		if prev, dup := seen[e.DatasetKey()]; dup {
			return domain.ErrIntegrityViolation.WithDetails(fmt.Sprintf(
				"%s has current entries at %s and %s", e.DatasetKey(), prev, e.SnapshotDate))
		}
		seen[e.DatasetKey()] = e.SnapshotDate
	}
	return nil
}

// persist writes the table to the registry file via temp file + rename.
func (s *Store) persist(entries map[domain.EntryKey]*domain.SnapshotEntry) error {
	list := make([]*domain.SnapshotEntry, 0, len(entries))
	for _, e := range entries {
		list = append(list, e)
	}
	sortEntries(list)

	records := make([]record, len(list))
	for i, e := range list {
		records[i] = toRecord(e)
	}

	data, err := csvutil.Marshal(records)
	if err != nil {
		return domain.ErrRegistryIO.WithDetails("encode registry").WithCause(err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return domain.ErrRegistryIO.WithDetails("create " + dir).WithCause(err)
	}

	tmp, err := os.CreateTemp(dir, ".registry-*.csv")
	if err != nil {
		return domain.ErrRegistryIO.WithDetails("create temp file").WithCause(err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return domain.ErrRegistryIO.WithDetails("write " + tmpName).WithCause(err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return domain.ErrRegistryIO.WithDetails("sync " + tmpName).WithCause(err)
	}
	if err := tmp.Close(); err != nil {
		return domain.ErrRegistryIO.WithDetails("close " + tmpName).WithCause(err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return domain.ErrRegistryIO.WithDetails("rename to " + s.path).WithCause(err)
	}
	return nil
}

func currentOf(entries map[domain.EntryKey]*domain.SnapshotEntry, key domain.Key) (*domain.SnapshotEntry, bool) {
	for _, e := range entries {
		if e.DatasetKey() == key && e.Status == domain.StatusCurrent {
			return e, true
		}
	}
	return nil, false
}

func statusIn(s domain.Status, set []domain.Status) bool {
	for _, candidate := range set {
		if s == candidate {
			return true
		}
	}
	return false
}

func sortEntries(list []*domain.SnapshotEntry) {
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if a.Source != b.Source {
			return a.Source < b.Source
		}
		if a.Dataset != b.Dataset {
			return a.Dataset < b.Dataset
		}
		return a.SnapshotDate.Before(b.SnapshotDate)
	})
}
