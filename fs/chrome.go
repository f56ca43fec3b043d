// Package fs reads browser data kept in plain files and writes export files.
package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"os"
	"slices"

	"github.com/fwojciec/resworb"
)

// Ensure ChromeBookmarkSource implements resworb.BookmarkSource at compile time.
var _ resworb.BookmarkSource = (*ChromeBookmarkSource)(nil)

// ChromeBookmarkSource reads bookmarks from a Chrome-family Bookmarks file.
type ChromeBookmarkSource struct {
	path string
}

// NewChromeBookmarkSource creates a new ChromeBookmarkSource for the
// Bookmarks file at path.
func NewChromeBookmarkSource(path string) *ChromeBookmarkSource {
	return &ChromeBookmarkSource{path: path}
}

// chromeNode is a folder (children present) or a bookmark (children absent).
type chromeNode struct {
	Name     string       `json:"name"`
	URL      string       `json:"url"`
	Children []chromeNode `json:"children"`
}

// Bookmarks returns every bookmark depth-first, roots in file order.
// Folders starts with the name of the root the bookmark belongs to,
// followed by each enclosing folder's name.
func (s *ChromeBookmarkSource) Bookmarks(ctx context.Context) iter.Seq2[resworb.URLItem, error] {
	return func(yield func(resworb.URLItem, error) bool) {
		roots, err := s.readRoots()
		if err != nil {
			yield(resworb.URLItem{}, err)
			return
		}

		for _, root := range roots {
			if !walkChromeNode(root, nil, yield) {
				return
			}
		}
	}
}

// readRoots returns the root folders in the order they appear in the file.
func (s *ChromeBookmarkSource) readRoots() ([]chromeNode, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var data struct {
		Roots json.RawMessage `json:"roots"`
	}
	if err := json.NewDecoder(f).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.path, err)
	}
	if len(data.Roots) == 0 {
		return nil, nil
	}

	roots, err := decodeOrderedRoots(data.Roots)
	if err != nil {
		return nil, fmt.Errorf("failed to parse roots in %s: %w", s.path, err)
	}
	return roots, nil
}

// decodeOrderedRoots decodes the "roots" object member by member so that
// the file's key order is kept. Members that are not folders, such as
// "sync_transaction_version" in older profiles, are skipped.
func decodeOrderedRoots(raw json.RawMessage) ([]chromeNode, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("roots is not an object")
	}

	var roots []chromeNode
	for dec.More() {
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		if len(value) == 0 || value[0] != '{' {
			continue
		}

		var node chromeNode
		if err := json.Unmarshal(value, &node); err != nil {
			return nil, err
		}
		roots = append(roots, node)
	}
	return roots, nil
}

// walkChromeNode yields the bookmarks under node. folders holds the names
// of node's ancestors. Returns false when the consumer stopped.
func walkChromeNode(node chromeNode, folders []string, yield func(resworb.URLItem, error) bool) bool {
	if node.Children == nil {
		return yield(resworb.URLItem{
			URL:     node.URL,
			Title:   node.Name,
			Folders: slices.Clone(folders),
		}, nil)
	}

	path := make([]string, len(folders), len(folders)+1)
	copy(path, folders)
	path = append(path, node.Name)

	for _, child := range node.Children {
		if !walkChromeNode(child, path, yield) {
			return false
		}
	}
	return true
}
