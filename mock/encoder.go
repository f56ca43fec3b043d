package mock

import (
	"context"
	"io"

	"github.com/fwojciec/resworb"
)

// Compile-time interface verification.
var (
	_ resworb.Encoder      = (*Encoder)(nil)
	_ resworb.ExportWriter = (*ExportWriter)(nil)
)

// Encoder is a mock implementation of resworb.Encoder.
type Encoder struct {
	EncodeFn func(w io.Writer, result *resworb.ExportResult) error
}

func (e *Encoder) Encode(w io.Writer, result *resworb.ExportResult) error {
	return e.EncodeFn(w, result)
}

// ExportWriter is a mock implementation of resworb.ExportWriter.
type ExportWriter struct {
	EncoderForFn  func(path string) (resworb.Encoder, error)
	WriteExportFn func(ctx context.Context, path string, result *resworb.ExportResult) error
}

func (w *ExportWriter) WriteExport(ctx context.Context, path string, result *resworb.ExportResult) error {
	return w.WriteExportFn(ctx, path, result)
}

func (w *ExportWriter) EncoderFor(path string) (resworb.Encoder, error) {
	return w.EncoderForFn(path)
}
