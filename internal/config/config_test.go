// Package config defines the snapreg configuration structure.
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/datalode/snapreg/internal/core/domain"
)

func validSource() SourceSection {
	return SourceSection{
		Freshness: FreshnessSection{
			WarnAfter:  7 * 24 * time.Hour,
			ErrorAfter: 14 * 24 * time.Hour,
		},
		Anomaly:   AnomalySection{ThresholdPct: 50},
		Selection: SelectionSection{Strategy: "latest"},
	}
}

func TestVerify_Defaults(t *testing.T) {
	if err := Verify(Default()); err != nil {
		t.Errorf("Verify(Default()) error = %v", err)
	}
}

func TestVerify_MissingRegistryPath(t *testing.T) {
	cfg := Default()
	cfg.Registry.Path = ""
	if err := Verify(cfg); !domain.IsDomainError(err, domain.ErrConfigInvalid.Code) {
		t.Errorf("Verify() error = %v, want config invalid", err)
	}
}

func TestVerify_BadFreshnessThresholds(t *testing.T) {
	cfg := Default()
	src := validSource()
	src.Freshness.ErrorAfter = time.Hour // shorter than warn_after
	cfg.Sources = map[string]SourceSection{"nfl": src}

	if err := Verify(cfg); !domain.IsDomainError(err, domain.ErrConfigInvalid.Code) {
		t.Errorf("Verify() error = %v, want config invalid", err)
	}
}

func TestVerify_UnknownStrategy(t *testing.T) {
	cfg := Default()
	src := validSource()
	src.Selection.Strategy = "newest"
	cfg.Sources = map[string]SourceSection{"nfl": src}

	if err := Verify(cfg); !domain.IsDomainError(err, domain.ErrConfigInvalid.Code) {
		t.Errorf("Verify() error = %v, want config invalid", err)
	}
}

func TestVerify_BaselineStrategyWithoutBaseline(t *testing.T) {
	cfg := Default()
	src := validSource()
	src.Selection.Strategy = "baseline-plus-latest"
	cfg.Sources = map[string]SourceSection{"nfl": src}

	if err := Verify(cfg); !domain.IsDomainError(err, domain.ErrConfigInvalid.Code) {
		t.Errorf("Verify() error = %v, want config invalid", err)
	}
}

func TestSelectionFor(t *testing.T) {
	cfg := Default()
	src := validSource()
	src.Selection = SelectionSection{Strategy: "baseline-plus-latest", Baseline: "2024-09-01"}
	cfg.Sources = map[string]SourceSection{"nfl": src}

	sel, err := cfg.SelectionFor("nfl")
	if err != nil {
		t.Fatalf("SelectionFor(nfl) error = %v", err)
	}
	if sel.Strategy != domain.StrategyBaselinePlusLatest {
		t.Errorf("strategy = %s", sel.Strategy)
	}
	if sel.Baseline.String() != "2024-09-01" {
		t.Errorf("baseline = %s, want 2024-09-01", sel.Baseline)
	}

	if _, err := cfg.SelectionFor("census"); !domain.IsDomainError(err, domain.ErrMissingPolicy.Code) {
		t.Errorf("SelectionFor(census) error = %v, want missing policy", err)
	}
}

func TestPolicies(t *testing.T) {
	cfg := Default()
	cfg.Sources = map[string]SourceSection{"nfl": validSource()}

	fresh := cfg.FreshnessPolicies()
	if got := fresh["nfl"].WarnAfter; got != 7*24*time.Hour {
		t.Errorf("WarnAfter = %v", got)
	}
	anomaly := cfg.AnomalyPolicies()
	if got := anomaly["nfl"].ThresholdPct; got != 50 {
		t.Errorf("ThresholdPct = %v", got)
	}
}

func TestLoad_FileAndDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snapreg.yaml")
	body := `
registry:
  path: /tmp/reg.csv
  data_root: /tmp/data
sources:
  nfl:
    freshness:
      warn_after: 168h
      error_after: 336h
    anomaly:
      threshold_pct: 50
    selection:
      strategy: latest
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Registry.Path != "/tmp/reg.csv" {
		t.Errorf("registry.path = %s", cfg.Registry.Path)
	}
	if cfg.Log.Level != DefaultLogLevel {
		t.Errorf("log.level = %s, want default %s", cfg.Log.Level, DefaultLogLevel)
	}
	if cfg.Sources["nfl"].Freshness.WarnAfter != 168*time.Hour {
		t.Errorf("warn_after = %v", cfg.Sources["nfl"].Freshness.WarnAfter)
	}
}

func TestLoad_RejectsBadPolicy(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snapreg.yaml")
	body := `
sources:
  nfl:
    freshness:
      warn_after: 168h
      error_after: 336h
    anomaly:
      threshold_pct: -1
    selection:
      strategy: latest
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, err := Load(path); !domain.IsDomainError(err, domain.ErrConfigInvalid.Code) {
		t.Errorf("Load() error = %v, want config invalid", err)
	}
}
