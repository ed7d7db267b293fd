// Package output provides output formatting for snapreg.
package output

import "io"

// Format represents the output format.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Formatter writes a command result to w.
//
// Result carries both renderings: a pre-built table for humans and the
// typed data for serialization.
type Formatter interface {
	Format(w io.Writer, res Result) error
}

// Result is one command's output.
type Result struct {
	// Table is the human rendering.
	Table *Table

	// Data is the machine rendering, serialized as-is by json/yaml.
	Data any
}

// NewFormatter creates a formatter for the given format. Unknown formats
// fall back to table.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{}
	case FormatYAML:
		return &YAMLFormatter{}
	default:
		return &TableFormatter{}
	}
}
