package resworb_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fwojciec/resworb"
	"github.com/fwojciec/resworb/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// suffixFormatter appends suffix to the title of items whose URL has prefix.
func suffixFormatter(prefix, suffix string) *mock.Formatter {
	return &mock.Formatter{
		MatchFn: func(item resworb.URLItem) bool {
			return strings.HasPrefix(item.URL, prefix)
		},
		FormatFn: func(_ context.Context, item resworb.URLItem) (resworb.URLItem, error) {
			item.Title += suffix
			return item, nil
		},
	}
}

func TestFormatItem(t *testing.T) {
	t.Parallel()

	t.Run("applies formatters in order", func(t *testing.T) {
		t.Parallel()

		formatters := []resworb.Formatter{
			suffixFormatter("https://", "-1"),
			suffixFormatter("https://", "-2"),
		}

		got, err := resworb.FormatItem(context.Background(), resworb.URLItem{URL: "https://a", Title: "t"}, formatters)

		require.NoError(t, err)
		assert.Equal(t, "t-1-2", got.Title)
	})

	t.Run("skips formatters that do not match", func(t *testing.T) {
		t.Parallel()

		formatters := []resworb.Formatter{suffixFormatter("ftp://", "-x")}

		got, err := resworb.FormatItem(context.Background(), resworb.URLItem{URL: "https://a", Title: "t"}, formatters)

		require.NoError(t, err)
		assert.Equal(t, "t", got.Title)
	})

	t.Run("returns formatter error", func(t *testing.T) {
		t.Parallel()

		formatters := []resworb.Formatter{&mock.Formatter{
			MatchFn: func(resworb.URLItem) bool { return true },
			FormatFn: func(context.Context, resworb.URLItem) (resworb.URLItem, error) {
				return resworb.URLItem{}, errors.New("fetch failed")
			},
		}}

		_, err := resworb.FormatItem(context.Background(), resworb.URLItem{URL: "https://a"}, formatters)

		require.EqualError(t, err, "fetch failed")
	})
}

func TestFormatExport(t *testing.T) {
	t.Parallel()

	t.Run("rewrites items and cloud tabs", func(t *testing.T) {
		t.Parallel()

		result := &resworb.ExportResult{Sections: []*resworb.ExportSection{
			{Capability: resworb.CapabilityBookmarks, Items: []resworb.URLItem{
				{URL: "https://a", Title: "a"},
				{URL: "http://b", Title: "b"},
			}},
			{Capability: resworb.CapabilityCloudTabs, Devices: []resworb.CloudTabDevice{
				{DeviceName: "phone", Tabs: []resworb.URLItem{{URL: "https://c", Title: "c"}}},
			}},
		}}

		err := resworb.FormatExport(context.Background(), result, []resworb.Formatter{suffixFormatter("https://", "!")})

		require.NoError(t, err)
		items := result.Section(resworb.CapabilityBookmarks).Items
		assert.Equal(t, "a!", items[0].Title)
		assert.Equal(t, "b", items[1].Title)
		devices := result.Section(resworb.CapabilityCloudTabs).Devices
		assert.Equal(t, "phone", devices[0].DeviceName)
		assert.Equal(t, "c!", devices[0].Tabs[0].Title)
	})

	t.Run("no formatters leaves result untouched", func(t *testing.T) {
		t.Parallel()

		result := &resworb.ExportResult{Sections: []*resworb.ExportSection{
			{Capability: resworb.CapabilityReadings, Items: []resworb.URLItem{{URL: "https://a", Title: "a"}}},
		}}

		err := resworb.FormatExport(context.Background(), result, nil)

		require.NoError(t, err)
		assert.Equal(t, "a", result.Sections[0].Items[0].Title)
	})
}
