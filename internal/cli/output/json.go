// Package output provides output formatting for snapreg.
package output

import (
	"encoding/json"
	"io"
)

// JSONFormatter serializes the result data as JSON.
type JSONFormatter struct{}

// Format writes the typed data as indented JSON.
func (f *JSONFormatter) Format(w io.Writer, res Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res.Data)
}
