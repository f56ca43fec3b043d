// Package lz4 reads Firefox session files stored in the mozLz4 format.
package lz4

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"

	"github.com/fwojciec/resworb"
	"github.com/pierrec/lz4/v4"
)

// Ensure FirefoxSessionSource implements resworb.OpenedTabSource at compile time.
var _ resworb.OpenedTabSource = (*FirefoxSessionSource)(nil)

// Magic is the header of a mozLz4 file.
var Magic = []byte("mozLz40\x00")

// maxSessionSize bounds the decompressed size declared in a file header.
const maxSessionSize = 1 << 30

// FirefoxSessionSource reads open tabs from a Firefox session file such as
// sessionstore-backups/recovery.jsonlz4.
type FirefoxSessionSource struct {
	path string
}

// NewFirefoxSessionSource creates a new FirefoxSessionSource for the
// session file at path.
func NewFirefoxSessionSource(path string) *FirefoxSessionSource {
	return &FirefoxSessionSource{path: path}
}

// session is the subset of the session JSON that holds open tabs.
type session struct {
	Windows []struct {
		Tabs []struct {
			Entries []struct {
				URL   string `json:"url"`
				Title string `json:"title"`
			} `json:"entries"`
			// Index is the 1-based position of the current entry.
			Index int `json:"index"`
		} `json:"tabs"`
	} `json:"windows"`
}

// OpenedTabs returns the current page of every open tab, window by window.
// A missing file or one without the mozLz4 header yields no tabs.
func (s *FirefoxSessionSource) OpenedTabs(ctx context.Context) iter.Seq2[resworb.URLItem, error] {
	return func(yield func(resworb.URLItem, error) bool) {
		data, err := os.ReadFile(s.path)
		if errors.Is(err, fs.ErrNotExist) {
			return
		}
		if err != nil {
			yield(resworb.URLItem{}, err)
			return
		}
		if !bytes.HasPrefix(data, Magic) {
			return
		}

		payload, err := Decompress(data)
		if err != nil {
			yield(resworb.URLItem{}, fmt.Errorf("failed to decompress %s: %w", s.path, err))
			return
		}

		var sess session
		if err := json.Unmarshal(payload, &sess); err != nil {
			yield(resworb.URLItem{}, fmt.Errorf("failed to parse %s: %w", s.path, err))
			return
		}

		for _, window := range sess.Windows {
			for _, tab := range window.Tabs {
				i := tab.Index - 1
				if i < 0 || i >= len(tab.Entries) {
					continue
				}
				entry := tab.Entries[i]
				if !yield(resworb.URLItem{URL: entry.URL, Title: entry.Title}, nil) {
					return
				}
			}
		}
	}
}

// Decompress returns the payload of a mozLz4 file: the magic header, a
// little-endian uint32 holding the decompressed size, then one LZ4 block.
func Decompress(data []byte) ([]byte, error) {
	if !bytes.HasPrefix(data, Magic) {
		return nil, resworb.Errorf(resworb.EINVALID, "missing mozLz4 header")
	}
	data = data[len(Magic):]
	if len(data) < 4 {
		return nil, resworb.Errorf(resworb.EINVALID, "truncated mozLz4 header")
	}

	size := binary.LittleEndian.Uint32(data)
	if size > maxSessionSize {
		return nil, resworb.Errorf(resworb.EINVALID, "declared size %d too large", size)
	}

	dst := make([]byte, size)
	n, err := lz4.UncompressBlock(data[4:], dst)
	if err != nil {
		return nil, err
	}
	return dst[:n], nil
}

// Compress encodes payload as a mozLz4 file.
func Compress(payload []byte) ([]byte, error) {
	block := make([]byte, lz4.CompressBlockBound(len(payload)))
	n, err := lz4.CompressBlock(payload, block, nil)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(Magic)+4+n)
	out = append(out, Magic...)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(payload)))
	return append(out, block[:n]...), nil
}
