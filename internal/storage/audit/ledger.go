// Package audit persists the governance audit ledger.
package audit

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	badger "github.com/dgraph-io/badger/v3"
	"github.com/oklog/ulid/v2"

	"github.com/datalode/snapreg/internal/core/domain"
)

// EventKind classifies audit events.
type EventKind string

const (
	// EventPromoted records a successful promotion.
	EventPromoted EventKind = "promoted"

	// EventSkipped records a skip-detection decision to not re-fetch.
	EventSkipped EventKind = "skipped"

	// EventFetched records a skip-detection decision to re-fetch.
	EventFetched EventKind = "fetched"

	// EventBaselineFallback records a resolver falling back to latest-only
	// because the configured baseline snapshot was absent.
	EventBaselineFallback EventKind = "baseline-fallback"
)

// Event is one audit ledger entry.
type Event struct {
	// ID is a ULID assigned at record time; IDs order by creation time.
	ID string `json:"id"`

	Kind    EventKind `json:"kind"`
	Source  string    `json:"source"`
	Dataset string    `json:"dataset"`

	// SnapshotDate is set for events tied to a specific partition.
	SnapshotDate string `json:"snapshot_date,omitempty"`

	// Detail is a human-readable summary.
	Detail string `json:"detail,omitempty"`

	// At is when the event was recorded.
	At time.Time `json:"at"`
}

// Key prefixes inside the badger keyspace.
const (
	eventPrefix = "event/"
	statePrefix = "state/last-modified/"
)

// Ledger is the badger-backed audit store.
type Ledger struct {
	db  *badger.DB
	now func() time.Time

	// entropy is shared across Record calls so ULIDs minted within the
	// same millisecond still sort in record order.
	entropyMu sync.Mutex
	entropy   *ulid.MonotonicEntropy
}

// Option configures the Ledger.
type Option func(*Ledger)

// WithClock overrides the time source. For tests.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// Open opens (or creates) the ledger database at dir.
func Open(dir string, opts ...Option) (*Ledger, error) {
	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	if err != nil {
		return nil, domain.ErrAuditIO.WithDetails("open " + dir).WithCause(err)
	}

	l := &Ledger{
		db:      db,
		now:     time.Now,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Close closes the underlying database.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// Record appends an event and returns its assigned ID.
func (l *Ledger) Record(_ context.Context, ev Event) (string, error) {
	now := l.now().UTC()

	l.entropyMu.Lock()
	id, err := ulid.New(ulid.Timestamp(now), l.entropy)
	l.entropyMu.Unlock()
	if err != nil {
		return "", domain.ErrAuditIO.WithDetails("generate event id").WithCause(err)
	}

	ev.ID = strings.ToLower(id.String())
	ev.At = now

	data, err := json.Marshal(ev)
	if err != nil {
		return "", domain.ErrAuditIO.WithDetails("encode event").WithCause(err)
	}

	err = l.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(eventPrefix+ev.ID), data)
	})
	if err != nil {
		return "", domain.ErrAuditIO.WithDetails("write event").WithCause(err)
	}
	return ev.ID, nil
}

// Events returns up to limit events, newest first. limit <= 0 means all.
func (l *Ledger) Events(_ context.Context, limit int) ([]Event, error) {
	var out []Event

	err := l.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = []byte(eventPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		// Reverse iteration needs a seek key past every event key.
		seek := append([]byte(eventPrefix), 0xFF)
		for it.Seek(seek); it.Valid(); it.Next() {
			if limit > 0 && len(out) >= limit {
				break
			}
			var ev Event
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &ev)
			})
			if err != nil {
				return err
			}
			out = append(out, ev)
		}
		return nil
	})
	if err != nil {
		return nil, domain.ErrAuditIO.WithDetails("scan events").WithCause(err)
	}
	return out, nil
}

// SetLastSourceModified records the externally reported modification time
// observed at the last successful promote for key.
func (l *Ledger) SetLastSourceModified(_ context.Context, key domain.Key, t time.Time) error {
	err := l.db.Update(func(txn *badger.Txn) error {
		return txn.Set(stateKey(key), []byte(t.UTC().Format(time.RFC3339Nano)))
	})
	if err != nil {
		return domain.ErrAuditIO.WithDetails("write last-modified state").WithCause(err)
	}
	return nil
}

// LastSourceModified returns the recorded modification time for key.
// ok is false when the key has never been promoted with one.
func (l *Ledger) LastSourceModified(_ context.Context, key domain.Key) (time.Time, bool, error) {
	var raw []byte
	err := l.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(stateKey(key))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, domain.ErrAuditIO.WithDetails("read last-modified state").WithCause(err)
	}

	t, err := time.Parse(time.RFC3339Nano, string(raw))
	if err != nil {
		// Unparseable state must read as "unknown" so skip-detection
		// defaults to re-fetch.
		return time.Time{}, false, nil
	}
	return t, true, nil
}

func stateKey(key domain.Key) []byte {
	return []byte(statePrefix + key.String())
}
