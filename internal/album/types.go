// Package album defines the editable album model: assets, pages and the
// photo/text items placed on them.
package album

import (
	"github.com/kozaktomas/album-editor/internal/geometry"
)

// Size is the physical size of one album page. A displayed page is a
// double-page spread, so its working pixel width is twice WidthCm.
type Size struct {
	WidthCm  float64 `json:"widthCm" yaml:"width_cm"`
	HeightCm float64 `json:"heightCm" yaml:"height_cm"`
	Label    string  `json:"label" yaml:"label"`
}

// AssetSource is what the import pipeline hands over for each decoded file.
type AssetSource struct {
	ID     string  `json:"id"`
	URL    string  `json:"url"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Asset is an imported image available for placement.
type Asset struct {
	ID           string  `json:"id"`
	URL          string  `json:"url"`
	SourceWidth  float64 `json:"sourceWidth"`
	SourceHeight float64 `json:"sourceHeight"`
	// Used is derived: true iff at least one photo on any page references the asset.
	Used bool `json:"used"`
}

// AR returns the asset's aspect ratio, falling back to the default for
// indeterminate source dimensions.
func (a Asset) AR() float64 {
	return ResolveAR(a.SourceWidth, a.SourceHeight)
}

// Kind discriminates the item variants on the wire.
type Kind string

const (
	KindPhoto Kind = "photo"
	KindText  Kind = "text"
)

// Frame holds the geometry shared by every item.
type Frame struct {
	ID       string  `json:"id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation float64 `json:"rotation"`
	Opacity  float64 `json:"opacity"`
}

// Rect returns the frame's axis-aligned bounds.
func (f Frame) Rect() geometry.Rect {
	return geometry.Rect{X: f.X, Y: f.Y, W: f.Width, H: f.Height}
}

// Item is a photo or a text item. The set of implementations is closed:
// consumers switch over *Photo and *Text.
type Item interface {
	// Base returns the shared frame for reading and in-place mutation.
	Base() *Frame
	// Kind returns the wire discriminant.
	Kind() Kind
	// Clone returns a deep copy.
	Clone() Item

	sealed()
}

// Photo is an image item. AR is captured at placement and stays
// authoritative even if the asset's reported dimensions change later.
type Photo struct {
	Frame
	AssetID string  `json:"assetId"`
	AR      float64 `json:"ar"`
}

func (p *Photo) Base() *Frame { return &p.Frame }
func (p *Photo) Kind() Kind   { return KindPhoto }
func (p *Photo) sealed()      {}

// Clone returns a deep copy of the photo.
func (p *Photo) Clone() Item {
	c := *p
	return &c
}

// Text is a text box item.
type Text struct {
	Frame
	Text          string   `json:"text"`
	FontSize      float64  `json:"fontSize"`
	FontFamily    string   `json:"fontFamily"`
	Align         string   `json:"align"`
	Color         string   `json:"color"`
	FontWeight    *string  `json:"fontWeight,omitempty"`
	LetterSpacing *float64 `json:"letterSpacing,omitempty"`
	LineHeight    *float64 `json:"lineHeight,omitempty"`
}

func (t *Text) Base() *Frame { return &t.Frame }
func (t *Text) Kind() Kind   { return KindText }
func (t *Text) sealed()      {}

// Clone returns a deep copy of the text item, including optional fields.
func (t *Text) Clone() Item {
	c := *t
	if t.FontWeight != nil {
		v := *t.FontWeight
		c.FontWeight = &v
	}
	if t.LetterSpacing != nil {
		v := *t.LetterSpacing
		c.LetterSpacing = &v
	}
	if t.LineHeight != nil {
		v := *t.LineHeight
		c.LineHeight = &v
	}
	return &c
}

// Text alignment values.
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

// Page is one spread. Items are in z-order: index 0 paints first.
type Page struct {
	ID         string `json:"id"`
	Items      []Item `json:"items"`
	Background string `json:"background"`
}

// Clone returns a deep copy of the page.
func (p *Page) Clone() *Page {
	c := &Page{ID: p.ID, Background: p.Background}
	if p.Items != nil {
		c.Items = make([]Item, len(p.Items))
		for i, it := range p.Items {
			c.Items[i] = it.Clone()
		}
	}
	return c
}

// Find returns the index and item with the given id, or (-1, nil).
func (p *Page) Find(id string) (int, Item) {
	for i, it := range p.Items {
		if it.Base().ID == id {
			return i, it
		}
	}
	return -1, nil
}

// Photos returns the photo items in z-order.
func (p *Page) Photos() []*Photo {
	var photos []*Photo
	for _, it := range p.Items {
		if ph, ok := it.(*Photo); ok {
			photos = append(photos, ph)
		}
	}
	return photos
}

// References reports whether any photo on the page uses assetID.
func (p *Page) References(assetID string) bool {
	for _, ph := range p.Photos() {
		if ph.AssetID == assetID {
			return true
		}
	}
	return false
}

// Remove deletes the item with the given id. It reports whether an item was removed.
func (p *Page) Remove(id string) bool {
	i, _ := p.Find(id)
	if i < 0 {
		return false
	}
	p.Items = append(p.Items[:i], p.Items[i+1:]...)
	return true
}

// Move places the item with the given id at index (clamped to the valid
// range), shifting the items in between. It reports whether the item exists.
func (p *Page) Move(id string, index int) bool {
	i, it := p.Find(id)
	if i < 0 {
		return false
	}
	index = max(0, min(index, len(p.Items)-1))
	if i == index {
		return true
	}
	rest := append(p.Items[:i:i], p.Items[i+1:]...)
	items := make([]Item, 0, len(p.Items))
	items = append(items, rest[:index]...)
	items = append(items, it)
	items = append(items, rest[index:]...)
	p.Items = items
	return true
}

// BringToFront moves the item to the top of the z-order.
func (p *Page) BringToFront(id string) bool {
	return p.Move(id, len(p.Items)-1)
}

// SendToBack moves the item to the bottom of the z-order.
func (p *Page) SendToBack(id string) bool {
	return p.Move(id, 0)
}
