// Package yaml encodes export results as YAML documents.
package yaml

import (
	"fmt"
	"io"

	"github.com/fwojciec/resworb"
	"gopkg.in/yaml.v3"
)

// Ensure Encoder implements resworb.Encoder at compile time.
var _ resworb.Encoder = (*Encoder)(nil)

// Encoder writes an export result as one YAML document with an explicit
// start marker. Capabilities keep the order of the result.
type Encoder struct {
	indent int
}

// NewEncoder creates a new Encoder indenting nested values by two spaces.
func NewEncoder() *Encoder {
	return &Encoder{indent: 2}
}

// Encode writes result to w.
func (e *Encoder) Encode(w io.Writer, result *resworb.ExportResult) error {
	doc := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, s := range result.Sections {
		var value yaml.Node
		if err := value.Encode(s.Records()); err != nil {
			return fmt.Errorf("failed to encode %s: %w", s.Capability, err)
		}
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(s.Capability)},
			&value,
		)
	}

	if _, err := io.WriteString(w, "---\n"); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(e.indent)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
