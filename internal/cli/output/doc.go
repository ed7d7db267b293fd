// Package output provides output formatting for snapreg.
//
// Commands build explicit Table values for human output; the json and
// yaml formatters serialize the underlying typed data instead, so
// machine consumers see stable field names rather than rendered cells.
package output
