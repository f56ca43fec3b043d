package resworb

// VisitTimeLayout is the layout of URLItem.VisitTime, in local time.
const VisitTimeLayout = "2006-01-02 15:04:05"

// URLItem is the uniform record every extracted tab, reading list entry,
// bookmark and history visit is normalized into.
type URLItem struct {
	URL   string `json:"url" yaml:"url" toml:"url"`
	Title string `json:"title" yaml:"title" toml:"title"`

	// Folders holds the ancestor folder names of a bookmark, root first.
	Folders []string `json:"folders,omitempty" yaml:"folders,omitempty" toml:"folders,omitempty"`

	// ID and VisitTime are only set for history records.
	ID        *int64 `json:"id,omitempty" yaml:"id,omitempty" toml:"id,omitempty"`
	VisitTime string `json:"visit_time,omitempty" yaml:"visit_time,omitempty" toml:"visit_time,omitempty"`
}

// CloudTabDevice groups the tabs synced from one device.
type CloudTabDevice struct {
	DeviceName string    `json:"device_name" yaml:"device_name" toml:"device_name"`
	Tabs       []URLItem `json:"tabs" yaml:"tabs" toml:"tabs"`
}

// TabCount returns the total number of tabs across devices.
func TabCount(devices []CloudTabDevice) int {
	var n int
	for _, d := range devices {
		n += len(d.Tabs)
	}
	return n
}
