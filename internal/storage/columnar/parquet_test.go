// Package columnar inspects snapshot files without loading their data.
package columnar

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/datalode/snapreg/internal/core/domain"
)

func TestParquetCounter_MissingFile(t *testing.T) {
	_, err := ParquetCounter{}.CountRows(filepath.Join(t.TempDir(), "absent.parquet"))
	if !domain.IsDomainError(err, domain.ErrSnapshotFileUnreadable.Code) {
		t.Errorf("CountRows(missing) error = %v, want snapshot file unreadable", err)
	}
}

func TestParquetCounter_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.parquet")
	if err := os.WriteFile(path, []byte("not a parquet file"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := (ParquetCounter{}).CountRows(path); err == nil {
		t.Error("CountRows(corrupt) should fail")
	}
}

func TestHashFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.parquet")
	if err := os.WriteFile(path, []byte("abc"), 0o644); err != nil {
		t.Fatal(err)
	}

	// sha256("abc")
	want := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	got, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile() error = %v", err)
	}
	if got != want {
		t.Errorf("HashFile() = %q, want %q", got, want)
	}
}

func TestHashFile_Missing(t *testing.T) {
	if _, err := HashFile(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("HashFile(missing) should fail")
	}
}
