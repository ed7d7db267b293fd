// Package service implements the governance operations of SnapReg.
//
// Each service is a thin orchestration over the registry store and the
// on-disk snapshot layout:
//
//   - Resolver: maps a selection strategy to the ordered snapshot dates
//     readers should use
//   - Monitor: classifies current snapshot age against freshness policy
//   - Detector: flags suspicious row-count deltas between snapshots
//   - Validator: cross-checks registry, manifests and snapshot files
//   - Promoter: the single write path, wrapping the registry promotion
//     with anomaly checks and audit bookkeeping
//   - SkipChecker: decides whether a source needs re-fetching at all
//
// Services consume the registry through narrow interfaces defined here, so
// tests can substitute fixtures without touching the CSV store.
package service
