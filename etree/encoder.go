// Package etree encodes export results as XML documents.
package etree

import (
	"io"
	"strconv"

	"github.com/beevik/etree"
	"github.com/fwojciec/resworb"
)

// Ensure Encoder implements resworb.Encoder at compile time.
var _ resworb.Encoder = (*Encoder)(nil)

// Element names of the XML export.
const (
	RootElement   = "export"
	ItemElement   = "item"
	DeviceElement = "device"
	FolderElement = "folder"
)

// Encoder writes an export result as an XML document. Each capability is
// an element under the root, in the order of the result.
type Encoder struct{}

// NewEncoder creates a new Encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Encode writes result to w.
func (e *Encoder) Encode(w io.Writer, result *resworb.ExportResult) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement(RootElement)

	for _, s := range result.Sections {
		section := root.CreateElement(string(s.Capability))
		if s.Capability == resworb.CapabilityCloudTabs {
			for _, d := range s.Devices {
				device := section.CreateElement(DeviceElement)
				device.CreateElement("device_name").SetText(d.DeviceName)
				tabs := device.CreateElement("tabs")
				for _, tab := range d.Tabs {
					addItem(tabs, tab)
				}
			}
			continue
		}
		for _, item := range s.Items {
			addItem(section, item)
		}
	}

	doc.Indent(2)
	_, err := doc.WriteTo(w)
	return err
}

func addItem(parent *etree.Element, item resworb.URLItem) {
	el := parent.CreateElement(ItemElement)
	el.CreateElement("url").SetText(item.URL)
	el.CreateElement("title").SetText(item.Title)
	if len(item.Folders) > 0 {
		folders := el.CreateElement("folders")
		for _, f := range item.Folders {
			folders.CreateElement(FolderElement).SetText(f)
		}
	}
	if item.ID != nil {
		el.CreateElement("id").SetText(strconv.FormatInt(*item.ID, 10))
	}
	if item.VisitTime != "" {
		el.CreateElement("visit_time").SetText(item.VisitTime)
	}
}
