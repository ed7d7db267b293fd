// Package shutdown provides graceful shutdown for SnapReg.
//
// Most snapreg commands are run-to-completion and never touch this
// package; watch mode runs until SIGINT/SIGTERM and needs orderly
// teardown (stop the filesystem watcher, flush the metrics textfile).
//
// Usage:
//
//	ctx, stop := shutdown.WithSignals(context.Background())
//	defer stop()
//	<-ctx.Done() // wait for shutdown signal
package shutdown
