package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/resworb"
)

// Ensure LoggingFormatter implements resworb.Formatter.
var _ resworb.Formatter = (*LoggingFormatter)(nil)

// LoggingFormatter wraps a Formatter and logs every rewritten item.
type LoggingFormatter struct {
	next   resworb.Formatter
	logger *slog.Logger
}

// NewLoggingFormatter creates a new LoggingFormatter.
func NewLoggingFormatter(next resworb.Formatter, logger *slog.Logger) *LoggingFormatter {
	return &LoggingFormatter{next: next, logger: logger}
}

// Match delegates to the wrapped formatter.
func (f *LoggingFormatter) Match(item resworb.URLItem) bool {
	return f.next.Match(item)
}

// Format delegates to the wrapped formatter and logs the operation.
func (f *LoggingFormatter) Format(ctx context.Context, item resworb.URLItem) (out resworb.URLItem, err error) {
	defer func(begin time.Time) {
		f.logger.Info("format",
			"url", item.URL,
			"before", item.Title,
			"after", out.Title,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Format(ctx, item)
}
