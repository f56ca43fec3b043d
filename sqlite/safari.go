package sqlite

import (
	"context"
	"database/sql"
	"iter"

	"github.com/fwojciec/resworb"
)

// Compile-time interface verification.
var (
	_ resworb.HistorySource  = (*SafariHistorySource)(nil)
	_ resworb.CloudTabSource = (*SafariCloudTabSource)(nil)
)

// safariEpochOffset is the number of seconds between the Unix epoch and
// 2001-01-01, the reference date of Safari timestamps.
const safariEpochOffset = 978307200

// SafariUnixTime converts a Safari timestamp to Unix seconds.
func SafariUnixTime(v float64) int64 {
	return int64(v) + safariEpochOffset
}

// SafariHistorySource reads history from Safari's History.db.
type SafariHistorySource struct {
	path string
}

// NewSafariHistorySource creates a new SafariHistorySource for the
// History.db database at path.
func NewSafariHistorySource(path string) *SafariHistorySource {
	return &SafariHistorySource{path: path}
}

// Histories returns one record per visit, most recent first.
// The record ID is the ID of the history item.
func (s *SafariHistorySource) Histories(ctx context.Context) iter.Seq2[resworb.URLItem, error] {
	return queryRows(ctx, s.path, `
		SELECT history_items.id, history_items.url, history_visits.title, history_visits.visit_time
		FROM history_items
		INNER JOIN history_visits ON history_visits.history_item = history_items.id
		ORDER BY history_visits.visit_time DESC
	`, func(rows *sql.Rows) (resworb.URLItem, error) {
		var item resworb.URLItem
		var id int64
		var title sql.NullString
		var visitTime float64
		if err := rows.Scan(&id, &item.URL, &title, &visitTime); err != nil {
			return resworb.URLItem{}, err
		}
		item.ID = &id
		item.Title = title.String
		item.VisitTime = formatVisitTime(SafariUnixTime(visitTime))
		return item, nil
	})
}

// SafariCloudTabSource reads iCloud tabs from Safari's CloudTabs.db.
type SafariCloudTabSource struct {
	path string
}

// NewSafariCloudTabSource creates a new SafariCloudTabSource for the
// CloudTabs.db database at path.
func NewSafariCloudTabSource(path string) *SafariCloudTabSource {
	return &SafariCloudTabSource{path: path}
}

// CloudTabs returns one record per device in storage order, each holding
// that device's tabs in storage order. Devices without tabs are included.
func (s *SafariCloudTabSource) CloudTabs(ctx context.Context) iter.Seq2[resworb.CloudTabDevice, error] {
	return func(yield func(resworb.CloudTabDevice, error) bool) {
		db, ok := open(s.path, yield)
		if !ok {
			return
		}
		defer db.Close()

		rows, err := db.QueryContext(ctx, `
			SELECT cloud_tab_devices.device_uuid, cloud_tab_devices.device_name, cloud_tabs.title, cloud_tabs.url
			FROM cloud_tab_devices
			LEFT JOIN cloud_tabs ON cloud_tabs.device_uuid = cloud_tab_devices.device_uuid
			ORDER BY cloud_tab_devices.rowid, cloud_tabs.rowid
		`)
		if err != nil {
			yield(resworb.CloudTabDevice{}, err)
			return
		}
		defer rows.Close()

		var current *resworb.CloudTabDevice
		var currentUUID string
		for rows.Next() {
			var uuid string
			var name, title, url sql.NullString
			if err := rows.Scan(&uuid, &name, &title, &url); err != nil {
				yield(resworb.CloudTabDevice{}, err)
				return
			}

			if current == nil || uuid != currentUUID {
				if current != nil && !yield(*current, nil) {
					return
				}
				current = &resworb.CloudTabDevice{DeviceName: name.String, Tabs: []resworb.URLItem{}}
				currentUUID = uuid
			}

			// A device without tabs produces one row with a NULL url.
			if url.Valid {
				current.Tabs = append(current.Tabs, resworb.URLItem{URL: url.String, Title: title.String})
			}
		}
		if err := rows.Err(); err != nil {
			yield(resworb.CloudTabDevice{}, err)
			return
		}
		if current != nil {
			yield(*current, nil)
		}
	}
}
