package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/resworb"
	"github.com/fwojciec/resworb/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const safariHistorySchema = `
	CREATE TABLE history_items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		url TEXT NOT NULL UNIQUE,
		domain_expansion TEXT NULL,
		visit_count INTEGER NOT NULL
	);
	CREATE TABLE history_visits (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		history_item INTEGER NOT NULL REFERENCES history_items(id),
		visit_time REAL NOT NULL,
		title TEXT NULL
	);
`

const safariCloudTabsSchema = `
	CREATE TABLE cloud_tab_devices (
		device_uuid TEXT PRIMARY KEY,
		device_name TEXT,
		has_duplicate_device_name BOOLEAN
	);
	CREATE TABLE cloud_tabs (
		tab_uuid TEXT PRIMARY KEY,
		device_uuid TEXT,
		position BLOB,
		title TEXT,
		url TEXT,
		is_showing_reader BOOLEAN,
		is_pinned BOOLEAN
	);
`

// safariTime converts a time to seconds since 2001-01-01.
func safariTime(tm time.Time) float64 {
	return float64(tm.Unix()-978307200) + 0.25
}

func TestSafariHistorySource_Histories(t *testing.T) {
	t.Parallel()

	path, conn := createDB(t, "History.db", safariHistorySchema)
	older, olderStr := localTime(2022, time.May, 1, 12)
	newer, newerStr := localTime(2022, time.May, 3, 12)
	exec(t, conn, "INSERT INTO history_items (id, url, visit_count) VALUES (7, 'https://a.example', 2)")
	exec(t, conn, "INSERT INTO history_visits (history_item, visit_time, title) VALUES (7, ?, 'A old')", safariTime(older))
	exec(t, conn, "INSERT INTO history_visits (history_item, visit_time, title) VALUES (7, ?, 'A new')", safariTime(newer))

	items, err := resworb.Collect(sqlite.NewSafariHistorySource(path).Histories(context.Background()))

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "A new", items[0].Title)
	assert.Equal(t, newerStr, items[0].VisitTime)
	require.NotNil(t, items[0].ID)
	assert.Equal(t, int64(7), *items[0].ID)
	assert.Equal(t, "A old", items[1].Title)
	assert.Equal(t, olderStr, items[1].VisitTime)
}

func TestSafariCloudTabSource_CloudTabs(t *testing.T) {
	t.Parallel()

	t.Run("groups tabs by device in storage order", func(t *testing.T) {
		t.Parallel()

		path, conn := createDB(t, "CloudTabs.db", safariCloudTabsSchema)
		exec(t, conn, "INSERT INTO cloud_tab_devices (device_uuid, device_name) VALUES ('d1', 'iPhone')")
		exec(t, conn, "INSERT INTO cloud_tab_devices (device_uuid, device_name) VALUES ('d2', 'iPad')")
		exec(t, conn, "INSERT INTO cloud_tabs (tab_uuid, device_uuid, title, url) VALUES ('t1', 'd2', 'Pad one', 'https://pad1.example')")
		exec(t, conn, "INSERT INTO cloud_tabs (tab_uuid, device_uuid, title, url) VALUES ('t2', 'd1', 'Phone one', 'https://phone1.example')")
		exec(t, conn, "INSERT INTO cloud_tabs (tab_uuid, device_uuid, title, url) VALUES ('t3', 'd2', 'Pad two', 'https://pad2.example')")

		devices, err := resworb.Collect(sqlite.NewSafariCloudTabSource(path).CloudTabs(context.Background()))

		require.NoError(t, err)
		assert.Equal(t, []resworb.CloudTabDevice{
			{DeviceName: "iPhone", Tabs: []resworb.URLItem{{URL: "https://phone1.example", Title: "Phone one"}}},
			{DeviceName: "iPad", Tabs: []resworb.URLItem{
				{URL: "https://pad1.example", Title: "Pad one"},
				{URL: "https://pad2.example", Title: "Pad two"},
			}},
		}, devices)
	})

	t.Run("includes devices without tabs", func(t *testing.T) {
		t.Parallel()

		path, conn := createDB(t, "CloudTabs.db", safariCloudTabsSchema)
		exec(t, conn, "INSERT INTO cloud_tab_devices (device_uuid, device_name) VALUES ('d1', 'Mac')")

		devices, err := resworb.Collect(sqlite.NewSafariCloudTabSource(path).CloudTabs(context.Background()))

		require.NoError(t, err)
		require.Len(t, devices, 1)
		assert.Equal(t, "Mac", devices[0].DeviceName)
		assert.Empty(t, devices[0].Tabs)
	})

	t.Run("returns nothing for an empty store", func(t *testing.T) {
		t.Parallel()

		path, _ := createDB(t, "CloudTabs.db", safariCloudTabsSchema)

		devices, err := resworb.Collect(sqlite.NewSafariCloudTabSource(path).CloudTabs(context.Background()))

		require.NoError(t, err)
		assert.Empty(t, devices)
	})
}
