package mock

import (
	"context"

	"github.com/fwojciec/resworb"
)

var _ resworb.Formatter = (*Formatter)(nil)

// Formatter is a mock implementation of resworb.Formatter.
type Formatter struct {
	MatchFn  func(item resworb.URLItem) bool
	FormatFn func(ctx context.Context, item resworb.URLItem) (resworb.URLItem, error)
}

func (f *Formatter) Match(item resworb.URLItem) bool {
	return f.MatchFn(item)
}

func (f *Formatter) Format(ctx context.Context, item resworb.URLItem) (resworb.URLItem, error) {
	return f.FormatFn(ctx, item)
}
