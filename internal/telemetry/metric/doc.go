// Package metric provides Prometheus metrics for SnapReg.
//
// Because the tool runs as short-lived batch invocations there is no
// /metrics endpoint; each run can dump its registry to a textfile for the
// node_exporter textfile collector instead.
package metric
