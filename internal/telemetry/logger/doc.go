// Package logger provides structured logging for SnapReg.
//
// It wraps log/slog with JSON output by default, dynamic level control,
// and run ID propagation through context so every log line of one batch
// invocation can be correlated.
package logger
