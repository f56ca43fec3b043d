// Package slog provides decorators that log domain operations with
// log/slog.
package slog

import (
	"context"
	"iter"
	"log/slog"
	"time"

	"github.com/fwojciec/resworb"
)

// Ensure LoggingBrowser implements resworb.BrowserService.
var _ resworb.BrowserService = (*LoggingBrowser)(nil)

// LoggingBrowser wraps a BrowserService and logs each extraction once its
// sequence is done.
type LoggingBrowser struct {
	next   resworb.BrowserService
	logger *slog.Logger
}

// NewLoggingBrowser creates a new LoggingBrowser.
func NewLoggingBrowser(next resworb.BrowserService, logger *slog.Logger) *LoggingBrowser {
	return &LoggingBrowser{next: next, logger: logger}
}

// OpenedTabs delegates to the wrapped service and logs the extraction.
func (b *LoggingBrowser) OpenedTabs(ctx context.Context) iter.Seq2[resworb.URLItem, error] {
	return logSeq(b.logger, resworb.CapabilityOpenedTabs, b.next.OpenedTabs(ctx), one)
}

// CloudTabs delegates to the wrapped service and logs the extraction.
// The count is the number of tabs across all devices.
func (b *LoggingBrowser) CloudTabs(ctx context.Context) iter.Seq2[resworb.CloudTabDevice, error] {
	return logSeq(b.logger, resworb.CapabilityCloudTabs, b.next.CloudTabs(ctx), func(d resworb.CloudTabDevice) int {
		return len(d.Tabs)
	})
}

// Readings delegates to the wrapped service and logs the extraction.
func (b *LoggingBrowser) Readings(ctx context.Context) iter.Seq2[resworb.URLItem, error] {
	return logSeq(b.logger, resworb.CapabilityReadings, b.next.Readings(ctx), one)
}

// Bookmarks delegates to the wrapped service and logs the extraction.
func (b *LoggingBrowser) Bookmarks(ctx context.Context) iter.Seq2[resworb.URLItem, error] {
	return logSeq(b.logger, resworb.CapabilityBookmarks, b.next.Bookmarks(ctx), one)
}

// Histories delegates to the wrapped service and logs the extraction.
func (b *LoggingBrowser) Histories(ctx context.Context) iter.Seq2[resworb.URLItem, error] {
	return logSeq(b.logger, resworb.CapabilityHistories, b.next.Histories(ctx), one)
}

func one(resworb.URLItem) int { return 1 }

func logSeq[T any](logger *slog.Logger, c resworb.Capability, seq iter.Seq2[T, error], weight func(T) int) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var count int
		var err error
		defer func(begin time.Time) {
			logger.Info("extract",
				"capability", string(c),
				"count", count,
				"duration", time.Since(begin),
				"err", err,
			)
		}(time.Now())

		for v, e := range seq {
			if e != nil {
				err = e
			} else {
				count += weight(v)
			}
			if !yield(v, e) {
				return
			}
		}
	}
}
