package resworb

import (
	"context"
	"iter"
)

// Capability is one of the kinds of data a browser can export.
type Capability string

// Capability constants, in canonical export order.
const (
	CapabilityOpenedTabs Capability = "opened_tabs"
	CapabilityCloudTabs  Capability = "cloud_tabs"
	CapabilityReadings   Capability = "readings"
	CapabilityBookmarks  Capability = "bookmarks"
	CapabilityHistories  Capability = "histories"
)

// CapabilityAll selects every capability in ParseCapabilities.
const CapabilityAll = "all"

// AllCapabilities returns the five capabilities in canonical order.
func AllCapabilities() []Capability {
	return []Capability{
		CapabilityOpenedTabs,
		CapabilityCloudTabs,
		CapabilityReadings,
		CapabilityBookmarks,
		CapabilityHistories,
	}
}

// Valid reports whether c is one of the five capabilities.
func (c Capability) Valid() bool {
	switch c {
	case CapabilityOpenedTabs, CapabilityCloudTabs, CapabilityReadings, CapabilityBookmarks, CapabilityHistories:
		return true
	}
	return false
}

// ParseCapabilities converts capability names into capabilities.
// An empty list or a list containing "all" selects every capability in
// canonical order. Repeated names are kept once, at their first position.
// Returns EINVALID for an unknown name.
func ParseCapabilities(names []string) ([]Capability, error) {
	if len(names) == 0 {
		return AllCapabilities(), nil
	}

	seen := make(map[Capability]bool, len(names))
	caps := make([]Capability, 0, len(names))
	for _, name := range names {
		if name == CapabilityAll {
			return AllCapabilities(), nil
		}
		c := Capability(name)
		if !c.Valid() {
			return nil, Errorf(EINVALID, "unknown source %q", name)
		}
		if seen[c] {
			continue
		}
		seen[c] = true
		caps = append(caps, c)
	}
	return caps, nil
}

// OpenedTabSource lists the tabs currently open in a browser.
type OpenedTabSource interface {
	OpenedTabs(ctx context.Context) iter.Seq2[URLItem, error]
}

// CloudTabSource lists the tabs synced from other devices, grouped by device.
type CloudTabSource interface {
	CloudTabs(ctx context.Context) iter.Seq2[CloudTabDevice, error]
}

// ReadingSource lists the items saved to a reading list.
type ReadingSource interface {
	Readings(ctx context.Context) iter.Seq2[URLItem, error]
}

// BookmarkSource lists bookmarks as a flat sequence.
// Each item carries its ancestor folder names in Folders.
type BookmarkSource interface {
	Bookmarks(ctx context.Context) iter.Seq2[URLItem, error]
}

// HistorySource lists history visits, most recent visit first.
type HistorySource interface {
	Histories(ctx context.Context) iter.Seq2[URLItem, error]
}

// BrowserService exposes every capability of one browser.
//
// Each call returns a fresh sequence that opens the underlying storage
// when iteration starts and releases it when iteration stops. A sequence
// must not be assumed reusable; call the method again instead.
// Capabilities the browser lacks yield a single ENOTIMPLEMENTED error.
type BrowserService interface {
	OpenedTabSource
	CloudTabSource
	ReadingSource
	BookmarkSource
	HistorySource
}

// Fail returns a sequence that yields err once.
func Fail[T any](err error) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		yield(zero, err)
	}
}

// Collect materializes a sequence, stopping at the first error.
func Collect[T any](seq iter.Seq2[T, error]) ([]T, error) {
	var items []T
	for v, err := range seq {
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, nil
}
