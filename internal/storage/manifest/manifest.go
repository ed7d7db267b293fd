// Package manifest reads the sidecar metadata written next to snapshots.
package manifest

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/datalode/snapreg/internal/core/domain"
)

// File names inside a snapshot partition directory.
const (
	ManifestFileName = "manifest.json"
	SnapshotFileName = "snapshot.parquet"
)

// ErrNotFound indicates no manifest exists for the partition.
var ErrNotFound = errors.New("manifest not found")

// Layout maps snapshot entry keys to their on-disk partition paths.
//
// Partitions live at <root>/<source>/<dataset>/<YYYY-MM-DD>/.
type Layout struct {
	Root string
}

// Dir returns the partition directory for a key.
func (l Layout) Dir(k domain.EntryKey) string {
	return filepath.Join(l.Root, k.Source, k.Dataset, k.SnapshotDate.String())
}

// ManifestPath returns the manifest sidecar path for a key.
func (l Layout) ManifestPath(k domain.EntryKey) string {
	return filepath.Join(l.Dir(k), ManifestFileName)
}

// SnapshotPath returns the columnar snapshot file path for a key.
func (l Layout) SnapshotPath(k domain.EntryKey) string {
	return filepath.Join(l.Dir(k), SnapshotFileName)
}

// Read loads and validates the manifest for a key.
// Returns ErrNotFound when the sidecar does not exist.
func (l Layout) Read(k domain.EntryKey) (*domain.ManifestRecord, error) {
	return ReadFile(l.ManifestPath(k))
}

// ReadFile loads and validates a manifest from an explicit path.
func ReadFile(path string) (*domain.ManifestRecord, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, domain.ErrRegistryIO.WithDetails("read " + path).WithCause(err)
	}

	var rec domain.ManifestRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, domain.ErrInvalidArgument.WithDetails("decode " + path).WithCause(err)
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Write serializes a manifest to path, creating parent directories.
func Write(path string, rec *domain.ManifestRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
