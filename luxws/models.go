package luxws

import "encoding/xml"

// Navigation is the page tree the controller sends back after LOGIN.
type Navigation struct {
	XMLName xml.Name         `xml:"Navigation"`
	ID      string           `xml:"id,attr"`
	Items   []NavigationItem `xml:"item"`
}

type NavigationItem struct {
	ID    string           `xml:"id,attr"`
	Name  string           `xml:"name"`
	Items []NavigationItem `xml:"item"`
}

// Content is the payload returned for a GET;<id> request. Pages group their
// entries into category items, each holding the actual name/value leaves.
type Content struct {
	XMLName xml.Name      `xml:"Content"`
	Name    string        `xml:"name"`
	Items   []ContentItem `xml:"item"`
}

type ContentItem struct {
	ID      string        `xml:"id,attr"`
	Name    string        `xml:"name"`
	Value   string        `xml:"value"`
	Raw     string        `xml:"raw"`
	Options []Option      `xml:"option"`
	Items   []ContentItem `xml:"item"`
}

// Option is one selectable choice of a settings control, e.g.
// <option value="0">Automatik</option>.
type Option struct {
	Value string `xml:"value,attr"`
	Label string `xml:",chardata"`
}

// Control is a writable setting collected from the Einstellungen pages.
type Control struct {
	ID      string
	Name    string
	Value   string
	Raw     string
	Options []Option
	// PageID is the navigation id of the page the control lives on. The
	// controller only accepts SET for controls on the page it served last.
	PageID string
}

// DecodeContent parses a Content page payload.
func DecodeContent(payload []byte) (*Content, error) {
	content := &Content{}
	if err := xml.Unmarshal(payload, content); err != nil {
		return nil, err
	}

	return content, nil
}

func decodeNavigation(payload []byte) (*Navigation, error) {
	navigation := &Navigation{}
	if err := xml.Unmarshal(payload, navigation); err != nil {
		return nil, err
	}

	return navigation, nil
}

func (n *Navigation) find(name string) *NavigationItem {
	return findNavigationItem(n.Items, name)
}

func findNavigationItem(items []NavigationItem, name string) *NavigationItem {
	for i := range items {
		if items[i].Name == name {
			return &items[i]
		}

		if found := findNavigationItem(items[i].Items, name); found != nil {
			return found
		}
	}

	return nil
}
