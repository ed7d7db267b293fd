// Package columnar inspects snapshot files without loading their data.
//
// Row counts come straight from parquet footer metadata; content hashes
// stream the raw bytes. The governance core never parses snapshot rows.
package columnar
