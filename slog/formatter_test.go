package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/resworb"
	"github.com/fwojciec/resworb/mock"
	resworbslog "github.com/fwojciec/resworb/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFormatter(t *testing.T) {
	t.Parallel()

	t.Run("logs rewritten title", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Formatter{
			MatchFn: func(item resworb.URLItem) bool { return true },
			FormatFn: func(ctx context.Context, item resworb.URLItem) (resworb.URLItem, error) {
				item.Title = "After"
				return item, nil
			},
		}

		f := resworbslog.NewLoggingFormatter(inner, logger)
		require.True(t, f.Match(resworb.URLItem{}))
		item, err := f.Format(context.Background(), resworb.URLItem{URL: "https://a.example", Title: "Before"})

		require.NoError(t, err)
		assert.Equal(t, "After", item.Title)
		output := buf.String()
		assert.Contains(t, output, "msg=format")
		assert.Contains(t, output, "url=https://a.example")
		assert.Contains(t, output, "before=Before")
		assert.Contains(t, output, "after=After")
	})

	t.Run("does not log unmatched items", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Formatter{
			MatchFn: func(item resworb.URLItem) bool { return false },
		}

		f := resworbslog.NewLoggingFormatter(inner, logger)
		got, err := resworb.FormatItem(context.Background(), resworb.URLItem{URL: "x"}, []resworb.Formatter{f})

		require.NoError(t, err)
		assert.Equal(t, "x", got.URL)
		assert.Empty(t, buf.String())
	})
}
