package album

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownKind is returned when decoding an item with an unrecognized kind.
var ErrUnknownKind = errors.New("unknown item kind")

type photoWire Photo
type textWire Text

// MarshalJSON encodes the photo as a flat record tagged with kind "photo".
func (p *Photo) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind Kind `json:"kind"`
		*photoWire
	}{KindPhoto, (*photoWire)(p)})
}

// MarshalJSON encodes the text item as a flat record tagged with kind "text".
func (t *Text) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind Kind `json:"kind"`
		*textWire
	}{KindText, (*textWire)(t)})
}

// UnmarshalItem decodes a single kind-tagged item.
func UnmarshalItem(data []byte) (Item, error) {
	var head struct {
		Kind Kind `json:"kind"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode item kind: %w", err)
	}

	switch head.Kind {
	case KindPhoto:
		p := &Photo{}
		if err := json.Unmarshal(data, (*photoWire)(p)); err != nil {
			return nil, fmt.Errorf("decode photo item: %w", err)
		}
		return p, nil
	case KindText:
		t := &Text{}
		if err := json.Unmarshal(data, (*textWire)(t)); err != nil {
			return nil, fmt.Errorf("decode text item: %w", err)
		}
		return t, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, head.Kind)
	}
}

// UnmarshalJSON decodes a page whose items are kind-tagged records.
func (p *Page) UnmarshalJSON(data []byte) error {
	var wire struct {
		ID         string            `json:"id"`
		Items      []json.RawMessage `json:"items"`
		Background string            `json:"background"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("decode page: %w", err)
	}

	items := make([]Item, 0, len(wire.Items))
	for i, raw := range wire.Items {
		it, err := UnmarshalItem(raw)
		if err != nil {
			return fmt.Errorf("page %s item %d: %w", wire.ID, i, err)
		}
		items = append(items, it)
	}

	p.ID = wire.ID
	p.Items = items
	p.Background = wire.Background
	return nil
}
