// Package toml encodes export results as TOML documents.
package toml

import (
	"io"

	"github.com/BurntSushi/toml"
	"github.com/fwojciec/resworb"
)

// Ensure Encoder implements resworb.Encoder at compile time.
var _ resworb.Encoder = (*Encoder)(nil)

// Encoder writes an export result as a TOML document with one array of
// tables per capability. TOML tables are written in key order, so
// capabilities appear sorted by name.
type Encoder struct{}

// NewEncoder creates a new Encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Encode writes result to w.
func (e *Encoder) Encode(w io.Writer, result *resworb.ExportResult) error {
	doc := make(map[string]any, len(result.Sections))
	for _, s := range result.Sections {
		doc[string(s.Capability)] = s.Records()
	}
	return toml.NewEncoder(w).Encode(doc)
}
