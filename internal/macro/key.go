package macro

import (
	"github.com/google/uuid"
)

// Key is one touch area of a macro screen and the key sequence it sends.
type Key struct {
	ID             string    `toml:"id"`
	Text           string    `toml:"text"`
	Area           Rect      `toml:"area"`
	Shape          ShapeType `toml:"shape"`
	Type           KeyType   `toml:"type"`
	ColorEdge      Color     `toml:"color_edge"`
	ColorFill      Color     `toml:"color_fill"`
	ColorEdgePress Color     `toml:"color_edge_press"`
	ColorFillPress Color     `toml:"color_fill_press"`
	KeySeq         KeySeq    `toml:"key_seq,omitempty"`
}

// NewKey creates a key with a fresh ID and the default palette.
func NewKey(text string, area Rect) *Key {
	return &Key{
		ID:             uuid.NewString(),
		Text:           text,
		Area:           area,
		Shape:          ShapeRectangle,
		Type:           KeySingle,
		ColorEdge:      Black,
		ColorFill:      Gray,
		ColorEdgePress: Black,
		ColorFillPress: Gray.Darker(),
	}
}

// Clone returns a deep copy carrying a new ID.
func (k *Key) Clone() *Key {
	c := *k
	c.ID = uuid.NewString()
	c.KeySeq = k.KeySeq.Clone()
	return &c
}

// EnsureID assigns an ID to keys loaded without one.
func (k *Key) EnsureID() {
	if k.ID == "" {
		k.ID = uuid.NewString()
	}
}

// Label is the text shown for the key, falling back to its sequence.
func (k *Key) Label() string {
	if k == nil {
		return "<nil>"
	}
	if k.Text != "" {
		return k.Text
	}
	if len(k.KeySeq) > 0 {
		return k.KeySeq.String()
	}
	return "<empty>"
}
