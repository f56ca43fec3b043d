package resworb

import "context"

// Formatter rewrites records after extraction, e.g. replacing a generic
// title with the real page title.
type Formatter interface {
	// Match reports whether Format should be applied to the item.
	Match(item URLItem) bool

	// Format returns the rewritten item.
	Format(ctx context.Context, item URLItem) (URLItem, error)
}

// FormatItem applies each matching formatter to the item in order.
// Each formatter sees the output of the previous one.
func FormatItem(ctx context.Context, item URLItem, formatters []Formatter) (URLItem, error) {
	for _, f := range formatters {
		if !f.Match(item) {
			continue
		}
		var err error
		item, err = f.Format(ctx, item)
		if err != nil {
			return URLItem{}, err
		}
	}
	return item, nil
}

// FormatExport rewrites every record of the result in place, including the
// tabs of every cloud tab device.
func FormatExport(ctx context.Context, result *ExportResult, formatters []Formatter) error {
	if len(formatters) == 0 {
		return nil
	}

	for _, s := range result.Sections {
		if err := formatItems(ctx, s.Items, formatters); err != nil {
			return err
		}
		for i := range s.Devices {
			if err := formatItems(ctx, s.Devices[i].Tabs, formatters); err != nil {
				return err
			}
		}
	}
	return nil
}

func formatItems(ctx context.Context, items []URLItem, formatters []Formatter) error {
	for i := range items {
		item, err := FormatItem(ctx, items[i], formatters)
		if err != nil {
			return err
		}
		items[i] = item
	}
	return nil
}
