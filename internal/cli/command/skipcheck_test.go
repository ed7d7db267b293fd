// Package command provides CLI command definitions for snapreg.
package command

import "testing"

func TestSkipCheck_FirstLoadFetches(t *testing.T) {
	env := newTestEnv(t)
	err := env.run(t, "skip-check", "--modified", "2025-01-08T06:00:00Z", "nfl", "weekly")
	if got := exitCode(t, err); got != 0 {
		t.Errorf("skip-check exit code = %d, want 0 (fetch)", got)
	}
}

func TestSkipCheck_UnchangedExitsThree(t *testing.T) {
	env := newTestEnv(t)
	mod := "2025-01-08T06:00:00Z"
	err := env.run(t, "promote", "--rows", "1000", "--source-modified", mod,
		"nfl", "weekly", "2025-01-08")
	if err != nil {
		t.Fatalf("promote: %v", err)
	}

	err = env.run(t, "skip-check", "--modified", mod, "nfl", "weekly")
	if got := exitCode(t, err); got != skipExitCode {
		t.Errorf("skip-check exit code = %d, want %d (skip)", got, skipExitCode)
	}
}

func TestSkipCheck_ModifiedFetches(t *testing.T) {
	env := newTestEnv(t)
	err := env.run(t, "promote", "--rows", "1000", "--source-modified", "2025-01-08T06:00:00Z",
		"nfl", "weekly", "2025-01-08")
	if err != nil {
		t.Fatalf("promote: %v", err)
	}

	err = env.run(t, "skip-check", "--modified", "2025-01-09T06:00:00Z", "nfl", "weekly")
	if got := exitCode(t, err); got != 0 {
		t.Errorf("skip-check exit code = %d, want 0 (fetch)", got)
	}
}
