package album

import (
	"math"
)

// Patch is a partial item update. Nil fields are left unchanged. Text-only
// fields are ignored for photos.
type Patch struct {
	X        *float64 `json:"x,omitempty"`
	Y        *float64 `json:"y,omitempty"`
	Width    *float64 `json:"width,omitempty"`
	Height   *float64 `json:"height,omitempty"`
	Rotation *float64 `json:"rotation,omitempty"`
	Opacity  *float64 `json:"opacity,omitempty"`

	Text          *string  `json:"text,omitempty"`
	FontSize      *float64 `json:"fontSize,omitempty"`
	FontFamily    *string  `json:"fontFamily,omitempty"`
	Align         *string  `json:"align,omitempty"`
	Color         *string  `json:"color,omitempty"`
	FontWeight    *string  `json:"fontWeight,omitempty"`
	LetterSpacing *float64 `json:"letterSpacing,omitempty"`
	LineHeight    *float64 `json:"lineHeight,omitempty"`
}

// Float returns a pointer to v, for building patches.
func Float(v float64) *float64 { return &v }

// String returns a pointer to v, for building patches.
func String(v string) *string { return &v }

// pick returns *v when v is set and finite, otherwise current.
func pick(v *float64, current float64) float64 {
	if v == nil {
		return current
	}
	return SafeNumber(*v, current)
}

// Apply returns a copy of item with patch applied. The input item is not modified.
//
// Non-finite numbers fall back to the current value. For photos a single
// dimension drives the other through AR; supplying both re-anchors AR.
// Width and height are clamped to constants.MinItemSize.
func Apply(item Item, patch Patch) Item {
	out := item.Clone()
	f := out.Base()

	f.X = pick(patch.X, f.X)
	f.Y = pick(patch.Y, f.Y)
	f.Rotation = pick(patch.Rotation, f.Rotation)
	f.Opacity = pick(patch.Opacity, f.Opacity)

	switch it := out.(type) {
	case *Photo:
		applyPhotoSize(it, patch)
	case *Text:
		it.Width = SafeDimension(pick(patch.Width, it.Width), it.Width)
		it.Height = SafeDimension(pick(patch.Height, it.Height), it.Height)
		applyTextStyle(it, patch)
	}
	return out
}

func applyPhotoSize(p *Photo, patch Patch) {
	hasW := patch.Width != nil && IsFinite(*patch.Width)
	hasH := patch.Height != nil && IsFinite(*patch.Height)
	ar := ResolveAR(p.AR, 1)

	switch {
	case hasW && hasH:
		w := SafeDimension(*patch.Width, p.Width)
		h := SafeDimension(*patch.Height, p.Height)
		p.Width, p.Height = w, h
		p.AR = w / h
	case hasW:
		w := SafeDimension(*patch.Width, p.Width)
		p.Width = w
		p.Height = SafeDimension(math.Round(w/ar), p.Height)
	case hasH:
		h := SafeDimension(*patch.Height, p.Height)
		p.Height = h
		p.Width = SafeDimension(math.Round(h*ar), p.Width)
	}
}

func applyTextStyle(t *Text, patch Patch) {
	if patch.Text != nil {
		t.Text = NormalizeText(*patch.Text)
	}
	if patch.FontSize != nil && IsFinite(*patch.FontSize) && *patch.FontSize > 0 {
		t.FontSize = *patch.FontSize
	}
	if patch.FontFamily != nil {
		if family := NormalizeFontFamily(*patch.FontFamily); family != "" {
			t.FontFamily = family
		}
	}
	if patch.Align != nil && validAlign(*patch.Align) {
		t.Align = *patch.Align
	}
	if patch.Color != nil {
		t.Color = *patch.Color
	}
	if patch.FontWeight != nil {
		v := *patch.FontWeight
		t.FontWeight = &v
	}
	if patch.LetterSpacing != nil && IsFinite(*patch.LetterSpacing) {
		v := *patch.LetterSpacing
		t.LetterSpacing = &v
	}
	if patch.LineHeight != nil && IsFinite(*patch.LineHeight) {
		v := *patch.LineHeight
		t.LineHeight = &v
	}
}

func validAlign(a string) bool {
	switch a {
	case AlignLeft, AlignCenter, AlignRight:
		return true
	}
	return false
}
