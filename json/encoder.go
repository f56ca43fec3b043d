// Package json encodes export results as indented JSON.
package json

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/fwojciec/resworb"
)

// Ensure Encoder implements resworb.Encoder at compile time.
var _ resworb.Encoder = (*Encoder)(nil)

// Indent is the indentation of nested values.
const Indent = "    "

// Encoder writes an export result as a JSON object keyed by capability
// name. Keys keep the order of the result and non-ASCII and HTML
// characters are written unescaped.
type Encoder struct{}

// NewEncoder creates a new Encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Encode writes result to w.
func (e *Encoder) Encode(w io.Writer, result *resworb.ExportResult) error {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, s := range result.Sections {
		if i > 0 {
			buf.WriteString(",")
		}
		buf.WriteString("\n" + Indent)

		key, err := marshal(string(s.Capability), "")
		if err != nil {
			return err
		}
		buf.Write(key)
		buf.WriteString(": ")

		records, err := marshal(s.Records(), Indent)
		if err != nil {
			return err
		}
		buf.Write(records)
	}
	if len(result.Sections) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")

	_, err := w.Write(buf.Bytes())
	return err
}

// marshal encodes v with nested lines prefixed by prefix.
func marshal(v any, prefix string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent(prefix, Indent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
