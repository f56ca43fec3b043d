// Package goquery rewrites record titles using titles parsed from the
// records' web pages.
package goquery

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/resworb"
)

// Ensure TitleFormatter implements resworb.Formatter at compile time.
var _ resworb.Formatter = (*TitleFormatter)(nil)

// WeChat official account articles.
const (
	WeixinPrefix   = "https://mp.weixin.qq.com"
	WeixinSelector = "h1.rich_media_title"
)

// TitleFormatter replaces the title of records whose URL starts with
// Prefix by the text of the first element matching Selector on the page.
// When no element matches the title is left unchanged.
type TitleFormatter struct {
	Prefix   string
	Selector string

	fetcher resworb.Fetcher
}

// NewTitleFormatter creates a new TitleFormatter loading pages with fetcher.
func NewTitleFormatter(fetcher resworb.Fetcher, prefix, selector string) *TitleFormatter {
	return &TitleFormatter{Prefix: prefix, Selector: selector, fetcher: fetcher}
}

// NewWeixinFormatter creates a TitleFormatter for WeChat articles, whose
// bookmarked titles are often generic.
func NewWeixinFormatter(fetcher resworb.Fetcher) *TitleFormatter {
	return NewTitleFormatter(fetcher, WeixinPrefix, WeixinSelector)
}

// Match reports whether the item URL starts with the prefix.
func (f *TitleFormatter) Match(item resworb.URLItem) bool {
	return strings.HasPrefix(item.URL, f.Prefix)
}

// Format fetches the page of the item and returns the item with the page
// title. Fetch errors are returned.
func (f *TitleFormatter) Format(ctx context.Context, item resworb.URLItem) (resworb.URLItem, error) {
	html, err := f.fetcher.Fetch(ctx, item.URL)
	if err != nil {
		return resworb.URLItem{}, fmt.Errorf("failed to fetch %s: %w", item.URL, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return resworb.URLItem{}, resworb.Errorf(resworb.EINVALID, "failed to parse HTML of %s: %v", item.URL, err)
	}

	if title := strings.TrimSpace(doc.Find(f.Selector).First().Text()); title != "" {
		item.Title = title
	}
	return item, nil
}
