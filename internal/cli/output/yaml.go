// Package output provides output formatting for snapreg.
package output

import (
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLFormatter serializes the result data as YAML.
type YAMLFormatter struct{}

// Format writes the typed data as YAML.
func (f *YAMLFormatter) Format(w io.Writer, res Result) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(res.Data)
}
