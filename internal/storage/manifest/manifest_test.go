// Package manifest reads the sidecar metadata written next to snapshots.
package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/datalode/snapreg/internal/core/domain"
)

func testKey() domain.EntryKey {
	return domain.EntryKey{
		Key:          domain.Key{Source: "nfl", Dataset: "weekly"},
		SnapshotDate: domain.MustParseDate("2025-01-01"),
	}
}

func TestLayout_Paths(t *testing.T) {
	l := Layout{Root: "/data"}
	k := testKey()

	wantDir := filepath.Join("/data", "nfl", "weekly", "2025-01-01")
	if got := l.Dir(k); got != wantDir {
		t.Errorf("Dir() = %q, want %q", got, wantDir)
	}
	if got := l.ManifestPath(k); got != filepath.Join(wantDir, "manifest.json") {
		t.Errorf("ManifestPath() = %q", got)
	}
	if got := l.SnapshotPath(k); got != filepath.Join(wantDir, "snapshot.parquet") {
		t.Errorf("SnapshotPath() = %q", got)
	}
}

func TestReadWrite_RoundTrip(t *testing.T) {
	l := Layout{Root: t.TempDir()}
	k := testKey()

	rec := &domain.ManifestRecord{
		Dataset:     "weekly",
		LoaderID:    "nflverse-loader@1.4.0",
		RowCount:    100,
		GeneratedAt: time.Date(2025, 1, 1, 6, 30, 0, 0, time.UTC),
	}
	if err := Write(l.ManifestPath(k), rec); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := l.Read(k)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got.Dataset != rec.Dataset || got.LoaderID != rec.LoaderID || got.RowCount != rec.RowCount {
		t.Errorf("Read() = %+v, want %+v", got, rec)
	}
	if !got.GeneratedAt.Equal(rec.GeneratedAt) {
		t.Errorf("GeneratedAt = %v, want %v", got.GeneratedAt, rec.GeneratedAt)
	}
}

func TestRead_Missing(t *testing.T) {
	l := Layout{Root: t.TempDir()}

	_, err := l.Read(testKey())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Read() error = %v, want ErrNotFound", err)
	}
}

func TestReadFile_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadFile(path); err == nil {
		t.Error("ReadFile() should fail on corrupt json")
	}
}

func TestWrite_RejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	if err := Write(path, &domain.ManifestRecord{RowCount: -1}); err == nil {
		t.Error("Write() should reject invalid manifests")
	}
}
