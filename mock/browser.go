package mock

import (
	"context"
	"iter"

	"github.com/fwojciec/resworb"
)

var _ resworb.BrowserService = (*BrowserService)(nil)

// BrowserService is a mock implementation of resworb.BrowserService.
type BrowserService struct {
	OpenedTabsFn func(ctx context.Context) iter.Seq2[resworb.URLItem, error]
	CloudTabsFn  func(ctx context.Context) iter.Seq2[resworb.CloudTabDevice, error]
	ReadingsFn   func(ctx context.Context) iter.Seq2[resworb.URLItem, error]
	BookmarksFn  func(ctx context.Context) iter.Seq2[resworb.URLItem, error]
	HistoriesFn  func(ctx context.Context) iter.Seq2[resworb.URLItem, error]
}

func (s *BrowserService) OpenedTabs(ctx context.Context) iter.Seq2[resworb.URLItem, error] {
	return s.OpenedTabsFn(ctx)
}

func (s *BrowserService) CloudTabs(ctx context.Context) iter.Seq2[resworb.CloudTabDevice, error] {
	return s.CloudTabsFn(ctx)
}

func (s *BrowserService) Readings(ctx context.Context) iter.Seq2[resworb.URLItem, error] {
	return s.ReadingsFn(ctx)
}

func (s *BrowserService) Bookmarks(ctx context.Context) iter.Seq2[resworb.URLItem, error] {
	return s.BookmarksFn(ctx)
}

func (s *BrowserService) Histories(ctx context.Context) iter.Seq2[resworb.URLItem, error] {
	return s.HistoriesFn(ctx)
}

// Seq returns a sequence over the given values.
func Seq[T any](values ...T) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for _, v := range values {
			if !yield(v, nil) {
				return
			}
		}
	}
}
