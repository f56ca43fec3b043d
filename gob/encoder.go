// Package gob encodes export results in the Go binary object format for
// consumption by other Go programs.
package gob

import (
	"encoding/gob"
	"io"

	"github.com/fwojciec/resworb"
)

// Ensure Encoder implements resworb.Encoder at compile time.
var _ resworb.Encoder = (*Encoder)(nil)

// Encoder writes the export result object graph with encoding/gob.
type Encoder struct{}

// NewEncoder creates a new Encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Encode writes result to w.
func (e *Encoder) Encode(w io.Writer, result *resworb.ExportResult) error {
	return gob.NewEncoder(w).Encode(result)
}

// Decode reads an export result written by Encoder.
func Decode(r io.Reader) (*resworb.ExportResult, error) {
	var result resworb.ExportResult
	if err := gob.NewDecoder(r).Decode(&result); err != nil {
		return nil, resworb.Errorf(resworb.EINVALID, "failed to decode export: %v", err)
	}
	return &result, nil
}
