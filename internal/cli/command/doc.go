// Package command provides CLI command definitions for snapreg.
//
// This package defines all CLI commands using urfave/cli/v2:
//
//   - root.go: Root command, global flags, config and logger setup
//   - promote.go: Atomic snapshot promotion
//   - validate.go: Manifest validation, optionally in watch mode
//   - freshness.go: Freshness monitoring
//   - resolve.go: Selection strategy resolution
//   - skipcheck.go: Source skip-detection
//   - list.go: Registry listing
//   - audit.go: Audit ledger inspection
//   - version.go: Build information
//
// Commands follow a consistent pattern of parsing flags, calling the
// appropriate service, and formatting output. Gating commands (validate,
// check-freshness, skip-check) communicate through their exit code so CI
// pipelines can branch on them.
package command
