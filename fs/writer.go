package fs

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fwojciec/resworb"
)

// Ensure Writer implements resworb.ExportWriter at compile time.
var _ resworb.ExportWriter = (*Writer)(nil)

// Writer writes export results to files, choosing the encoder from the
// file name extension.
type Writer struct {
	encoders map[string]resworb.Encoder
}

// NewWriter creates a new Writer with no registered formats.
func NewWriter() *Writer {
	return &Writer{encoders: make(map[string]resworb.Encoder)}
}

// Register maps a file extension, including the leading dot, to an encoder.
// Extensions are matched case-insensitively.
func (w *Writer) Register(ext string, enc resworb.Encoder) {
	w.encoders[strings.ToLower(ext)] = enc
}

// Extensions returns the registered extensions in sorted order.
func (w *Writer) Extensions() []string {
	exts := make([]string, 0, len(w.encoders))
	for ext := range w.encoders {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

// EncoderFor returns the encoder for the extension of path.
// Returns EINVALID if no encoder is registered for it.
func (w *Writer) EncoderFor(path string) (resworb.Encoder, error) {
	ext := strings.ToLower(filepath.Ext(path))
	enc, ok := w.encoders[ext]
	if !ok {
		return nil, resworb.Errorf(resworb.EINVALID, "unsupported file type: %q (supported: %s)",
			ext, strings.Join(w.Extensions(), ", "))
	}
	return enc, nil
}

// WriteExport encodes result into path.
// The file is written to path.tmp first and renamed into place once
// encoding succeeds, so a failed export never leaves a partial file.
func (w *Writer) WriteExport(ctx context.Context, path string, result *resworb.ExportResult) error {
	enc, err := w.EncoderFor(path)
	if err != nil {
		return err
	}

	// Create parent directories
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	if err := enc.Encode(f, result); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	// Atomically rename temp to final
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
