// Package metric provides Prometheus metrics for SnapReg.
package metric

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteTextfile(t *testing.T) {
	r := NewRegistry()
	r.Promotions.WithLabelValues("nfl", "weekly").Inc()
	r.ValidationViolations.WithLabelValues("row-count-mismatch").Set(2)

	path := filepath.Join(t.TempDir(), "snapreg.prom")
	if err := r.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `snapreg_promotions_total{dataset="weekly",source="nfl"} 1`) {
		t.Errorf("missing promotion counter in:\n%s", out)
	}
	if !strings.Contains(out, `snapreg_validation_violations{kind="row-count-mismatch"} 2`) {
		t.Errorf("missing violation gauge in:\n%s", out)
	}
}

func TestTierValue(t *testing.T) {
	cases := map[string]float64{"fresh": 0, "warn": 1, "stale": 2, "anything": 0}
	for in, want := range cases {
		if got := TierValue(in); got != want {
			t.Errorf("TierValue(%q) = %v, want %v", in, got, want)
		}
	}
}
