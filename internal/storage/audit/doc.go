// Package audit persists the governance audit ledger.
//
// The ledger is operational history, not registry truth: promotion events,
// skip decisions and baseline fallbacks land here, along with the per-key
// source modification state that skip-detection consults. It lives in a
// badger database next to the registry; losing it costs audit history and
// skip optimization, never snapshot correctness.
package audit
