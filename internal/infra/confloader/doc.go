// Package confloader provides configuration loading mechanism.
//
// This package implements a flexible configuration loader that supports
// multiple sources using koanf as the underlying library, plus a
// filesystem watcher used by long-running watch modes.
//
// Priority (highest to lowest):
//
//  1. Command-line flags (overlaid via LoadMap)
//  2. Environment variables (SNAPREG_-prefixed)
//  3. Configuration file (YAML)
//  4. Default values
package confloader
