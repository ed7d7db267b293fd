// Package command provides CLI command definitions for snapreg.
package command

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/urfave/cli/v2"
)

// testEnv is a disposable workspace with a config file pointing into it.
type testEnv struct {
	configPath   string
	registryPath string
	dataRoot     string
	auditPath    string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()

	env := &testEnv{
		configPath:   filepath.Join(dir, "snapreg.yaml"),
		registryPath: filepath.Join(dir, "registry.csv"),
		dataRoot:     filepath.Join(dir, "data"),
		auditPath:    filepath.Join(dir, "audit"),
	}

	body := fmt.Sprintf(`
registry:
  path: %s
  data_root: %s
audit:
  path: %s
log:
  level: error
sources:
  nfl:
    freshness:
      warn_after: 168h
      error_after: 336h
    anomaly:
      threshold_pct: 50
    selection:
      strategy: latest
`, env.registryPath, env.dataRoot, env.auditPath)
	if err := os.WriteFile(env.configPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

// run executes the app with the global config flag prepended, suppressing
// the library's os.Exit on exit-coded errors so the test can assert them.
func (e *testEnv) run(t *testing.T, args ...string) error {
	t.Helper()

	prevExiter := cli.OsExiter
	cli.OsExiter = func(int) {}
	t.Cleanup(func() { cli.OsExiter = prevExiter })

	argv := append([]string{"snapreg", "--config", e.configPath}, args...)
	return App().Run(argv)
}

// exitCode extracts the exit code from a run error, 0 for nil.
func exitCode(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		return 0
	}
	var coder cli.ExitCoder
	if !errors.As(err, &coder) {
		t.Fatalf("error %v carries no exit code", err)
	}
	return coder.ExitCode()
}
