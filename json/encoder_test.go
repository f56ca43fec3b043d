package json_test

import (
	"bytes"
	"testing"

	"github.com/fwojciec/resworb"
	"github.com/fwojciec/resworb/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncoder_Encode(t *testing.T) {
	t.Parallel()

	t.Run("writes sections in order with four-space indent", func(t *testing.T) {
		t.Parallel()

		id := int64(7)
		result := &resworb.ExportResult{Sections: []*resworb.ExportSection{
			{Capability: resworb.CapabilityReadings, Items: []resworb.URLItem{
				{URL: "https://a.example/?q=<1>&x", Title: "标题"},
			}},
			{Capability: resworb.CapabilityHistories, Items: []resworb.URLItem{
				{URL: "https://b.example", Title: "B", ID: &id, VisitTime: "2024-01-02 03:04:05"},
			}},
			{Capability: resworb.CapabilityBookmarks},
		}}

		var buf bytes.Buffer
		err := json.NewEncoder().Encode(&buf, result)

		require.NoError(t, err)
		assert.Equal(t, `{
    "readings": [
        {
            "url": "https://a.example/?q=<1>&x",
            "title": "标题"
        }
    ],
    "histories": [
        {
            "url": "https://b.example",
            "title": "B",
            "id": 7,
            "visit_time": "2024-01-02 03:04:05"
        }
    ],
    "bookmarks": []
}
`, buf.String())
	})

	t.Run("writes cloud tab devices", func(t *testing.T) {
		t.Parallel()

		result := &resworb.ExportResult{Sections: []*resworb.ExportSection{
			{Capability: resworb.CapabilityCloudTabs, Devices: []resworb.CloudTabDevice{
				{DeviceName: "Phone", Tabs: []resworb.URLItem{{URL: "https://c.example", Title: "C", Folders: []string{"X"}}}},
			}},
		}}

		var buf bytes.Buffer
		err := json.NewEncoder().Encode(&buf, result)

		require.NoError(t, err)
		assert.Equal(t, `{
    "cloud_tabs": [
        {
            "device_name": "Phone",
            "tabs": [
                {
                    "url": "https://c.example",
                    "title": "C",
                    "folders": [
                        "X"
                    ]
                }
            ]
        }
    ]
}
`, buf.String())
	})

	t.Run("writes empty object for empty result", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		err := json.NewEncoder().Encode(&buf, &resworb.ExportResult{})

		require.NoError(t, err)
		assert.Equal(t, "{}\n", buf.String())
	})
}
