package resworb

import (
	"context"
	"iter"
)

// Compile-time interface verification.
var _ BrowserService = (*Browser)(nil)

// Browser composes the capability sources of one browser.
// A nil source means the browser does not support that capability.
type Browser struct {
	Name string

	OpenedTabSource OpenedTabSource
	CloudTabSource  CloudTabSource
	ReadingSource   ReadingSource
	BookmarkSource  BookmarkSource
	HistorySource   HistorySource
}

// Supports reports whether the browser has a source for c.
func (b *Browser) Supports(c Capability) bool {
	switch c {
	case CapabilityOpenedTabs:
		return b.OpenedTabSource != nil
	case CapabilityCloudTabs:
		return b.CloudTabSource != nil
	case CapabilityReadings:
		return b.ReadingSource != nil
	case CapabilityBookmarks:
		return b.BookmarkSource != nil
	case CapabilityHistories:
		return b.HistorySource != nil
	}
	return false
}

// Capabilities returns the supported capabilities in canonical order.
func (b *Browser) Capabilities() []Capability {
	var caps []Capability
	for _, c := range AllCapabilities() {
		if b.Supports(c) {
			caps = append(caps, c)
		}
	}
	return caps
}

// OpenedTabs delegates to the opened tab source.
func (b *Browser) OpenedTabs(ctx context.Context) iter.Seq2[URLItem, error] {
	if b.OpenedTabSource == nil {
		return Fail[URLItem](b.notImplemented(CapabilityOpenedTabs))
	}
	return b.OpenedTabSource.OpenedTabs(ctx)
}

// CloudTabs delegates to the cloud tab source.
func (b *Browser) CloudTabs(ctx context.Context) iter.Seq2[CloudTabDevice, error] {
	if b.CloudTabSource == nil {
		return Fail[CloudTabDevice](b.notImplemented(CapabilityCloudTabs))
	}
	return b.CloudTabSource.CloudTabs(ctx)
}

// Readings delegates to the reading list source.
func (b *Browser) Readings(ctx context.Context) iter.Seq2[URLItem, error] {
	if b.ReadingSource == nil {
		return Fail[URLItem](b.notImplemented(CapabilityReadings))
	}
	return b.ReadingSource.Readings(ctx)
}

// Bookmarks delegates to the bookmark source.
func (b *Browser) Bookmarks(ctx context.Context) iter.Seq2[URLItem, error] {
	if b.BookmarkSource == nil {
		return Fail[URLItem](b.notImplemented(CapabilityBookmarks))
	}
	return b.BookmarkSource.Bookmarks(ctx)
}

// Histories delegates to the history source.
func (b *Browser) Histories(ctx context.Context) iter.Seq2[URLItem, error] {
	if b.HistorySource == nil {
		return Fail[URLItem](b.notImplemented(CapabilityHistories))
	}
	return b.HistorySource.Histories(ctx)
}

func (b *Browser) notImplemented(c Capability) error {
	return Errorf(ENOTIMPLEMENTED, "%s not implemented for %s", c, b.Name)
}
