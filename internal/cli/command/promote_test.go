// Package command provides CLI command definitions for snapreg.
package command

import (
	"context"
	"testing"
	"time"

	"github.com/datalode/snapreg/internal/core/domain"
	"github.com/datalode/snapreg/internal/storage/manifest"
	"github.com/datalode/snapreg/internal/storage/registry"
)

func currentEntry(t *testing.T, env *testEnv) (*domain.SnapshotEntry, bool) {
	t.Helper()
	store, err := registry.Open(env.registryPath)
	if err != nil {
		t.Fatalf("reopen registry: %v", err)
	}
	e, ok, err := store.Current(context.Background(), domain.Key{Source: "nfl", Dataset: "weekly"})
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	return e, ok
}

func TestPromote_EndToEnd(t *testing.T) {
	env := newTestEnv(t)

	if err := env.run(t, "promote", "--rows", "1000", "nfl", "weekly", "2025-01-01"); err != nil {
		t.Fatalf("first promote: %v", err)
	}
	if err := env.run(t, "promote", "--rows", "1050", "nfl", "weekly", "2025-01-08"); err != nil {
		t.Fatalf("second promote: %v", err)
	}

	e, ok := currentEntry(t, env)
	if !ok {
		t.Fatal("no current entry after promotions")
	}
	if e.SnapshotDate.String() != "2025-01-08" {
		t.Errorf("current = %s, want 2025-01-08", e.SnapshotDate)
	}
	if e.RowCount != 1050 {
		t.Errorf("row count = %d, want 1050", e.RowCount)
	}
}

func TestPromote_MonotonicityRejected(t *testing.T) {
	env := newTestEnv(t)

	if err := env.run(t, "promote", "--rows", "1000", "nfl", "weekly", "2025-01-08"); err != nil {
		t.Fatalf("promote: %v", err)
	}

	err := env.run(t, "promote", "--rows", "900", "nfl", "weekly", "2025-01-01")
	if err == nil {
		t.Fatal("promoting an older snapshot date should fail")
	}

	e, _ := currentEntry(t, env)
	if e.SnapshotDate.String() != "2025-01-08" {
		t.Errorf("current = %s, rejection must leave registry untouched", e.SnapshotDate)
	}
}

func TestPromote_StrictAnomalyBlocked(t *testing.T) {
	env := newTestEnv(t)

	if err := env.run(t, "promote", "--rows", "1000", "nfl", "weekly", "2025-01-01"); err != nil {
		t.Fatalf("promote: %v", err)
	}

	err := env.run(t, "promote", "--rows", "10", "--strict-anomaly", "nfl", "weekly", "2025-01-08")
	if err == nil {
		t.Fatal("strict promote of a 99% drop should fail")
	}

	e, _ := currentEntry(t, env)
	if e.SnapshotDate.String() != "2025-01-01" {
		t.Errorf("current = %s, want untouched 2025-01-01", e.SnapshotDate)
	}
}

func TestPromote_RowsFromManifest(t *testing.T) {
	env := newTestEnv(t)

	layout := manifest.Layout{Root: env.dataRoot}
	key := domain.EntryKey{
		Key:          domain.Key{Source: "nfl", Dataset: "weekly"},
		SnapshotDate: domain.MustParseDate("2025-01-08"),
	}
	err := manifest.Write(layout.ManifestPath(key), &domain.ManifestRecord{
		Dataset:     "weekly",
		LoaderID:    "loader-test",
		RowCount:    48210,
		GeneratedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	if err := env.run(t, "promote", "nfl", "weekly", "2025-01-08"); err != nil {
		t.Fatalf("promote: %v", err)
	}

	e, _ := currentEntry(t, env)
	if e.RowCount != 48210 {
		t.Errorf("row count = %d, want the manifest's 48210", e.RowCount)
	}
}

func TestPromote_NoRowsNoManifest(t *testing.T) {
	env := newTestEnv(t)
	if err := env.run(t, "promote", "nfl", "weekly", "2025-01-08"); err == nil {
		t.Fatal("promote without --rows or a manifest should fail")
	}
}
