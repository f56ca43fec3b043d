// Package browser resolves the storage files of supported browsers and
// composes their capability sources.
package browser

import (
	"os"
	"path/filepath"

	"github.com/fwojciec/resworb"
	"github.com/fwojciec/resworb/fs"
	"github.com/fwojciec/resworb/lz4"
	"github.com/fwojciec/resworb/plist"
	"github.com/fwojciec/resworb/sqlite"
)

// Supported browser names.
const (
	Chrome  = "chrome"
	Firefox = "firefox"
	Safari  = "safari"
)

// Names returns the supported browser names.
func Names() []string {
	return []string{Chrome, Firefox, Safari}
}

// New returns the browser called name reading from library.
func New(name, library string) (*resworb.Browser, error) {
	switch name {
	case Chrome:
		return NewChrome(library)
	case Firefox:
		return NewFirefox(library)
	case Safari:
		return NewSafari(library)
	}
	return nil, resworb.Errorf(resworb.EINVALID, "unsupported browser: %q", name)
}

// NewChrome returns a Chrome-family browser reading the Bookmarks and
// History files directly under library.
func NewChrome(library string) (*resworb.Browser, error) {
	bookmarks, err := requireFile(library, "Bookmarks")
	if err != nil {
		return nil, err
	}
	history, err := requireFile(library, "History")
	if err != nil {
		return nil, err
	}

	return &resworb.Browser{
		Name:           Chrome,
		BookmarkSource: fs.NewChromeBookmarkSource(bookmarks),
		HistorySource:  sqlite.NewChromeHistorySource(history),
	}, nil
}

// NewFirefox returns a Firefox-family browser reading the first profile
// under library that holds a session file and the first one that holds a
// places database.
func NewFirefox(library string) (*resworb.Browser, error) {
	session, err := requireGlob(library, "*.default*", "sessionstore-backups", "recovery.jsonlz4")
	if err != nil {
		return nil, err
	}
	places, err := requireGlob(library, "*.default*", "places.sqlite")
	if err != nil {
		return nil, err
	}

	src := sqlite.NewFirefoxPlacesSource(places)
	return &resworb.Browser{
		Name:            Firefox,
		OpenedTabSource: lz4.NewFirefoxSessionSource(session),
		BookmarkSource:  src,
		HistorySource:   src,
	}, nil
}

// NewSafari returns a Safari browser reading from library. LastSession.plist
// is optional; the other files must exist.
func NewSafari(library string) (*resworb.Browser, error) {
	bookmarks, err := requireFile(library, "Bookmarks.plist")
	if err != nil {
		return nil, err
	}
	history, err := requireFile(library, "History.db")
	if err != nil {
		return nil, err
	}
	cloudTabs, err := requireFile(library, "CloudTabs.db")
	if err != nil {
		return nil, err
	}

	return &resworb.Browser{
		Name:            Safari,
		OpenedTabSource: plist.NewSafariSessionSource(filepath.Join(library, "LastSession.plist")),
		CloudTabSource:  sqlite.NewSafariCloudTabSource(cloudTabs),
		ReadingSource:   plist.NewSafariReadingSource(bookmarks),
		BookmarkSource:  plist.NewSafariBookmarkSource(bookmarks),
		HistorySource:   sqlite.NewSafariHistorySource(history),
	}, nil
}

func requireFile(library, name string) (string, error) {
	path := filepath.Join(library, name)
	if _, err := os.Stat(path); err != nil {
		return "", resworb.Errorf(resworb.ENOTFOUND, "%s not found in %s", name, library)
	}
	return path, nil
}

// requireGlob returns the first match of the pattern built from elem
// under library. filepath.Glob returns matches in lexical order.
func requireGlob(library string, elem ...string) (string, error) {
	pattern := filepath.Join(append([]string{library}, elem...)...)
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", resworb.Errorf(resworb.EINVALID, "invalid library path %q", library)
	}
	if len(matches) == 0 {
		return "", resworb.Errorf(resworb.ENOTFOUND, "%s not found in %s", filepath.Join(elem...), library)
	}
	return matches[0], nil
}
