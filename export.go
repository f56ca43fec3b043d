package resworb

import "context"

// ExportOptions configures Export.
type ExportOptions struct {
	// KeepDuplicates disables URL deduplication.
	KeepDuplicates bool
}

// ExportSection holds the materialized records of one capability.
// Devices is used for CapabilityCloudTabs, Items for every other capability.
type ExportSection struct {
	Capability Capability
	Items      []URLItem
	Devices    []CloudTabDevice
}

// Records returns the section's record list: Devices for cloud tabs,
// Items otherwise. Encoders serialize this value under the capability name.
func (s *ExportSection) Records() any {
	if s.Capability == CapabilityCloudTabs {
		if s.Devices == nil {
			return []CloudTabDevice{}
		}
		return s.Devices
	}
	if s.Items == nil {
		return []URLItem{}
	}
	return s.Items
}

// Count returns the number of records; cloud tabs count individual tabs.
func (s *ExportSection) Count() int {
	if s.Capability == CapabilityCloudTabs {
		return TabCount(s.Devices)
	}
	return len(s.Items)
}

// ExportResult maps capability names to their records, in the order the
// capabilities were requested.
type ExportResult struct {
	Sections []*ExportSection
}

// Section returns the section for c, or nil if c was not exported.
func (r *ExportResult) Section(c Capability) *ExportSection {
	for _, s := range r.Sections {
		if s.Capability == c {
			return s
		}
	}
	return nil
}

// Capabilities returns the exported capabilities in order.
func (r *ExportResult) Capabilities() []Capability {
	caps := make([]Capability, 0, len(r.Sections))
	for _, s := range r.Sections {
		caps = append(caps, s.Capability)
	}
	return caps
}

// Export runs the requested capabilities of svc one after another and
// materializes their records. An empty kinds list exports every capability.
// Records are deduplicated by URL unless opts.KeepDuplicates is set.
//
// The first error from any capability, including ENOTIMPLEMENTED, aborts
// the export; no partial result is returned.
func Export(ctx context.Context, svc BrowserService, kinds []Capability, opts ExportOptions) (*ExportResult, error) {
	if len(kinds) == 0 {
		kinds = AllCapabilities()
	}

	result := &ExportResult{}
	seen := make(map[Capability]bool, len(kinds))
	for _, c := range kinds {
		if seen[c] {
			continue
		}
		seen[c] = true

		section, err := exportSection(ctx, svc, c, opts)
		if err != nil {
			return nil, err
		}
		result.Sections = append(result.Sections, section)
	}
	return result, nil
}

func exportSection(ctx context.Context, svc BrowserService, c Capability, opts ExportOptions) (*ExportSection, error) {
	section := &ExportSection{Capability: c}

	if c == CapabilityCloudTabs {
		devices, err := Collect(svc.CloudTabs(ctx))
		if err != nil {
			return nil, err
		}
		if !opts.KeepDuplicates {
			devices = DeduplicateDevices(devices)
		}
		section.Devices = devices
		return section, nil
	}

	var items []URLItem
	var err error
	switch c {
	case CapabilityOpenedTabs:
		items, err = Collect(svc.OpenedTabs(ctx))
	case CapabilityReadings:
		items, err = Collect(svc.Readings(ctx))
	case CapabilityBookmarks:
		items, err = Collect(svc.Bookmarks(ctx))
	case CapabilityHistories:
		items, err = Collect(svc.Histories(ctx))
	default:
		return nil, Errorf(EINVALID, "unknown source %q", c)
	}
	if err != nil {
		return nil, err
	}

	if !opts.KeepDuplicates {
		items = Deduplicate(items)
	}
	section.Items = items
	return section, nil
}

// Deduplicate keeps the first item for each distinct URL, preserving order.
// URLs are compared as exact strings.
func Deduplicate(items []URLItem) []URLItem {
	if items == nil {
		return nil
	}

	seen := make(map[string]struct{}, len(items))
	result := make([]URLItem, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.URL]; ok {
			continue
		}
		seen[item.URL] = struct{}{}
		result = append(result, item)
	}
	return result
}

// DeduplicateDevices deduplicates the tabs of each device independently.
// The device list itself keeps its length and order.
func DeduplicateDevices(devices []CloudTabDevice) []CloudTabDevice {
	if devices == nil {
		return nil
	}

	result := make([]CloudTabDevice, len(devices))
	for i, d := range devices {
		result[i] = CloudTabDevice{
			DeviceName: d.DeviceName,
			Tabs:       Deduplicate(d.Tabs),
		}
	}
	return result
}
