package sqlite

import (
	"context"
	"database/sql"
	"iter"
	"slices"

	"github.com/fwojciec/resworb"
)

// Compile-time interface verification.
var (
	_ resworb.HistorySource  = (*FirefoxPlacesSource)(nil)
	_ resworb.BookmarkSource = (*FirefoxPlacesSource)(nil)
)

// Bookmark row types in moz_bookmarks.
const (
	firefoxTypeBookmark = 1
	firefoxTypeFolder   = 2
)

// FirefoxPlacesSource reads history and bookmarks from a Firefox-family
// places.sqlite database.
type FirefoxPlacesSource struct {
	path string
}

// NewFirefoxPlacesSource creates a new FirefoxPlacesSource for the
// places.sqlite database at path.
func NewFirefoxPlacesSource(path string) *FirefoxPlacesSource {
	return &FirefoxPlacesSource{path: path}
}

// Histories returns one record per visit, most recent first.
// The record ID is the place ID of the visited URL. A visit without a
// date has no visit time.
func (s *FirefoxPlacesSource) Histories(ctx context.Context) iter.Seq2[resworb.URLItem, error] {
	return queryRows(ctx, s.path, `
		SELECT moz_places.id, moz_places.url, moz_places.title, moz_historyvisits.visit_date
		FROM moz_places
		INNER JOIN moz_historyvisits ON moz_historyvisits.place_id = moz_places.id
		ORDER BY moz_historyvisits.visit_date DESC
	`, func(rows *sql.Rows) (resworb.URLItem, error) {
		var item resworb.URLItem
		var id int64
		var title sql.NullString
		var visitDate sql.NullInt64
		if err := rows.Scan(&id, &item.URL, &title, &visitDate); err != nil {
			return resworb.URLItem{}, err
		}
		item.ID = &id
		item.Title = title.String
		if visitDate.Valid {
			item.VisitTime = formatVisitTime(visitDate.Int64 / 1_000_000)
		}
		return item, nil
	})
}

// Bookmarks returns bookmarks, most recently added first.
// Folders lists the enclosing folders from the top level down; the
// synthetic root folder is not included.
func (s *FirefoxPlacesSource) Bookmarks(ctx context.Context) iter.Seq2[resworb.URLItem, error] {
	return func(yield func(resworb.URLItem, error) bool) {
		db, ok := open(s.path, yield)
		if !ok {
			return
		}
		defer db.Close()

		folders, err := findBookmarkFolders(ctx, db)
		if err != nil {
			yield(resworb.URLItem{}, err)
			return
		}

		rows, err := db.QueryContext(ctx, `
			SELECT moz_bookmarks.parent, moz_bookmarks.title, moz_places.url
			FROM moz_bookmarks
			INNER JOIN moz_places ON moz_bookmarks.fk = moz_places.id
			WHERE moz_bookmarks.type = ?
			ORDER BY moz_bookmarks.dateAdded DESC
		`, firefoxTypeBookmark)
		if err != nil {
			yield(resworb.URLItem{}, err)
			return
		}
		defer rows.Close()

		for rows.Next() {
			var item resworb.URLItem
			var parent int64
			var title sql.NullString
			if err := rows.Scan(&parent, &title, &item.URL); err != nil {
				yield(resworb.URLItem{}, err)
				return
			}
			item.Title = title.String

			item.Folders, err = folders.path(parent)
			if err != nil {
				yield(resworb.URLItem{}, err)
				return
			}

			if !yield(item, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(resworb.URLItem{}, err)
		}
	}
}

// bookmarkFolder is a folder row of moz_bookmarks.
type bookmarkFolder struct {
	id     int64
	parent int64
	title  string
}

// bookmarkFolders indexes folders by ID.
type bookmarkFolders map[int64]bookmarkFolder

func findBookmarkFolders(ctx context.Context, db *DB) (bookmarkFolders, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, parent, title
		FROM moz_bookmarks
		WHERE type = ?
	`, firefoxTypeFolder)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	folders := make(bookmarkFolders)
	for rows.Next() {
		var f bookmarkFolder
		var title sql.NullString
		if err := rows.Scan(&f.id, &f.parent, &title); err != nil {
			return nil, err
		}
		f.title = title.String
		folders[f.id] = f
	}
	return folders, rows.Err()
}

// path walks from folder id up to the root and returns the titles of the
// folders passed, top level first. The root itself (parent <= 0) is not
// included.
func (f bookmarkFolders) path(id int64) ([]string, error) {
	folder, ok := f[id]
	if !ok {
		return nil, resworb.Errorf(resworb.EINTERNAL, "bookmark folder %d not found", id)
	}

	var titles []string
	for folder.parent > 0 {
		if len(titles) >= len(f) {
			return nil, resworb.Errorf(resworb.EINTERNAL, "bookmark folder %d is its own ancestor", id)
		}
		titles = append(titles, folder.title)

		parent, ok := f[folder.parent]
		if !ok {
			return nil, resworb.Errorf(resworb.EINTERNAL, "bookmark folder %d not found", folder.parent)
		}
		folder = parent
	}

	slices.Reverse(titles)
	return titles, nil
}
