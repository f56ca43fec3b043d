package resworb

import (
	"context"
	"io"
)

// Encoder serializes an export result into one file format.
type Encoder interface {
	Encode(w io.Writer, result *ExportResult) error
}

// ExportWriter persists an export result to a file.
// The output format is chosen from the file name extension.
type ExportWriter interface {
	// EncoderFor returns the encoder for the extension of path.
	// Returns EINVALID if the extension has no registered format.
	EncoderFor(path string) (Encoder, error)

	// WriteExport writes result to path.
	// Returns EINVALID if the extension has no registered format.
	WriteExport(ctx context.Context, path string, result *ExportResult) error
}
