// Package output provides output formatting for snapreg.
package output

import (
	"io"
	"text/tabwriter"
)

// TableFormatter renders the result's table.
type TableFormatter struct {
	NoHeaders bool
}

// Format renders the table. A result without a table renders nothing.
func (f *TableFormatter) Format(w io.Writer, res Result) error {
	if res.Table == nil {
		return nil
	}
	return res.Table.RenderWithOptions(w, f.NoHeaders)
}

// Table represents tabular data.
type Table struct {
	Headers []string
	Rows    [][]string
}

// NewTable creates a table with the given headers.
func NewTable(headers ...string) *Table {
	return &Table{Headers: headers}
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// Render renders the table to the writer.
func (t *Table) Render(w io.Writer) error {
	return t.RenderWithOptions(w, false)
}

// RenderWithOptions renders the table with options.
func (t *Table) RenderWithOptions(w io.Writer, noHeaders bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if !noHeaders && len(t.Headers) > 0 {
		writeRow(tw, t.Headers)
	}
	for _, row := range t.Rows {
		writeRow(tw, row)
	}
	return tw.Flush()
}

func writeRow(w io.Writer, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			io.WriteString(w, "\t")
		}
		if cell == "" {
			cell = "-"
		}
		io.WriteString(w, cell)
	}
	io.WriteString(w, "\n")
}
