// Package plist reads Safari data stored in property list files.
package plist

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"slices"

	"github.com/fwojciec/resworb"
	"howett.net/plist"
)

// Compile-time interface verification.
var (
	_ resworb.BookmarkSource  = (*SafariBookmarkSource)(nil)
	_ resworb.ReadingSource   = (*SafariReadingSource)(nil)
	_ resworb.OpenedTabSource = (*SafariSessionSource)(nil)
)

// Bookmark node types found in Bookmarks.plist.
const (
	TypeList  = "WebBookmarkTypeList"
	TypeLeaf  = "WebBookmarkTypeLeaf"
	TypeProxy = "WebBookmarkTypeProxy"
)

// ReadingListTitle is the title of the folder holding the reading list.
const ReadingListTitle = "com.apple.ReadingList"

// Node is a folder, bookmark or proxy entry of Bookmarks.plist.
type Node struct {
	Type          string            `plist:"WebBookmarkType"`
	Title         string            `plist:"Title,omitempty"`
	URLString     string            `plist:"URLString,omitempty"`
	URIDictionary map[string]string `plist:"URIDictionary,omitempty"`
	Children      []Node            `plist:"Children,omitempty"`
}

// Session is the part of LastSession.plist describing open windows.
type Session struct {
	SessionWindows []SessionWindow `plist:"SessionWindows"`
}

// SessionWindow lists the tabs of one window.
type SessionWindow struct {
	TabStates []TabState `plist:"TabStates"`
}

// TabState is the saved state of one tab.
type TabState struct {
	TabURL   string `plist:"TabURL"`
	TabTitle string `plist:"TabTitle"`
}

func (n Node) item(folders []string) resworb.URLItem {
	return resworb.URLItem{
		URL:     n.URLString,
		Title:   n.URIDictionary["title"],
		Folders: folders,
	}
}

// readFile decodes the property list at path into v.
func readFile(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := plist.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// SafariBookmarkSource reads bookmarks from Safari's Bookmarks.plist.
type SafariBookmarkSource struct {
	path string
}

// NewSafariBookmarkSource creates a new SafariBookmarkSource for the
// Bookmarks.plist file at path.
func NewSafariBookmarkSource(path string) *SafariBookmarkSource {
	return &SafariBookmarkSource{path: path}
}

// Bookmarks returns every bookmark depth-first in file order. The reading
// list and proxy entries are skipped. Folders holds the titles of the
// enclosing folders below the root; untitled folders are left out.
func (s *SafariBookmarkSource) Bookmarks(ctx context.Context) iter.Seq2[resworb.URLItem, error] {
	return func(yield func(resworb.URLItem, error) bool) {
		var root Node
		if err := readFile(s.path, &root); err != nil {
			yield(resworb.URLItem{}, err)
			return
		}

		for _, child := range root.Children {
			if !walkBookmarks(child, nil, yield) {
				return
			}
		}
	}
}

func walkBookmarks(n Node, folders []string, yield func(resworb.URLItem, error) bool) bool {
	switch n.Type {
	case TypeLeaf:
		return yield(n.item(slices.Clone(folders)), nil)
	case TypeList:
		if n.Title == ReadingListTitle {
			return true
		}
		if n.Title != "" {
			folders = append(slices.Clone(folders), n.Title)
		}
		for _, child := range n.Children {
			if !walkBookmarks(child, folders, yield) {
				return false
			}
		}
	}
	return true
}

// SafariReadingSource reads the reading list from Safari's Bookmarks.plist.
type SafariReadingSource struct {
	path string
}

// NewSafariReadingSource creates a new SafariReadingSource for the
// Bookmarks.plist file at path.
func NewSafariReadingSource(path string) *SafariReadingSource {
	return &SafariReadingSource{path: path}
}

// Readings returns the entries of the reading list in file order.
func (s *SafariReadingSource) Readings(ctx context.Context) iter.Seq2[resworb.URLItem, error] {
	return func(yield func(resworb.URLItem, error) bool) {
		var root Node
		if err := readFile(s.path, &root); err != nil {
			yield(resworb.URLItem{}, err)
			return
		}

		for _, list := range root.Children {
			if list.Type != TypeList || list.Title != ReadingListTitle {
				continue
			}
			for _, child := range list.Children {
				if child.Type != TypeLeaf {
					continue
				}
				if !yield(child.item(nil), nil) {
					return
				}
			}
		}
	}
}

// SafariSessionSource reads open tabs from Safari's LastSession.plist.
type SafariSessionSource struct {
	path string
}

// NewSafariSessionSource creates a new SafariSessionSource for the
// LastSession.plist file at path.
func NewSafariSessionSource(path string) *SafariSessionSource {
	return &SafariSessionSource{path: path}
}

// OpenedTabs returns the tabs of every window in session order.
// A missing session file yields no tabs.
func (s *SafariSessionSource) OpenedTabs(ctx context.Context) iter.Seq2[resworb.URLItem, error] {
	return func(yield func(resworb.URLItem, error) bool) {
		var session Session
		err := readFile(s.path, &session)
		if errors.Is(err, fs.ErrNotExist) {
			return
		}
		if err != nil {
			yield(resworb.URLItem{}, err)
			return
		}

		for _, w := range session.SessionWindows {
			for _, tab := range w.TabStates {
				if !yield(resworb.URLItem{URL: tab.TabURL, Title: tab.TabTitle}, nil) {
					return
				}
			}
		}
	}
}
