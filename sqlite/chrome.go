package sqlite

import (
	"context"
	"database/sql"
	"iter"

	"github.com/fwojciec/resworb"
)

// Compile-time interface verification.
var _ resworb.HistorySource = (*ChromeHistorySource)(nil)

// chromeEpochOffset is the number of seconds between 1601-01-01 and the
// Unix epoch. Chrome stores times as microseconds since 1601-01-01.
const chromeEpochOffset = 11644473600

// ChromeUnixTime converts a Chrome timestamp to Unix seconds.
func ChromeUnixTime(v int64) int64 {
	return v/1_000_000 - chromeEpochOffset
}

// ChromeHistorySource reads history from a Chrome-family History database.
type ChromeHistorySource struct {
	path string
}

// NewChromeHistorySource creates a new ChromeHistorySource for the
// History database at path.
func NewChromeHistorySource(path string) *ChromeHistorySource {
	return &ChromeHistorySource{path: path}
}

// Histories returns visited URLs, most recently visited first.
// Chrome does not expose an ID for history records.
func (s *ChromeHistorySource) Histories(ctx context.Context) iter.Seq2[resworb.URLItem, error] {
	return queryRows(ctx, s.path, `
		SELECT url, title, last_visit_time
		FROM urls
		ORDER BY last_visit_time DESC
	`, func(rows *sql.Rows) (resworb.URLItem, error) {
		var item resworb.URLItem
		var title sql.NullString
		var visitTime int64
		if err := rows.Scan(&item.URL, &title, &visitTime); err != nil {
			return resworb.URLItem{}, err
		}
		item.Title = title.String
		item.VisitTime = formatVisitTime(ChromeUnixTime(visitTime))
		return item, nil
	})
}
