// Package macro holds the layout model edited by mkedit: setups made of
// screens, each holding an ordered list of macro keys.
package macro

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a packed 0xAARRGGBB colour.
type Color uint32

// Common colours.
const (
	Black Color = 0xFF000000
	White Color = 0xFFFFFFFF
	Gray  Color = 0xFF808080
)

// RGB builds an opaque colour.
func RGB(r, g, b uint8) Color {
	return Color(0xFF000000 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// Components splits the colour into alpha, red, green, blue.
func (c Color) Components() (a, r, g, b uint8) {
	return uint8(c >> 24), uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Darker scales the RGB channels by 0.7, leaving alpha alone.
func (c Color) Darker() Color {
	a, r, g, b := c.Components()
	scale := func(v uint8) uint32 { return uint32(float64(v) * 0.7) }
	return Color(uint32(a)<<24 | scale(r)<<16 | scale(g)<<8 | scale(b))
}

func (c Color) String() string {
	return fmt.Sprintf("#%08X", uint32(c))
}

// MarshalText encodes the colour as #AARRGGBB.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText accepts #AARRGGBB or #RRGGBB (opaque).
func (c *Color) UnmarshalText(text []byte) error {
	s := strings.TrimPrefix(strings.TrimSpace(string(text)), "#")
	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid colour %q", text)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fmt.Errorf("invalid colour %q: %w", text, err)
	}
	if len(s) == 6 {
		v |= 0xFF000000
	}
	*c = Color(v)
	return nil
}

// Rect is an area in screen-relative units.
type Rect struct {
	X float64 `toml:"x"`
	Y float64 `toml:"y"`
	W float64 `toml:"w"`
	H float64 `toml:"h"`
}

// Empty reports whether the rect has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g %gx%g)", r.X, r.Y, r.W, r.H)
}

// enum handles the text form shared by the small enumerations below.
type enum[E ~int] struct {
	kind  string
	names []string
}

func (e enum[E]) name(v E) string {
	if int(v) < 0 || int(v) >= len(e.names) {
		return fmt.Sprintf("%s(%d)", e.kind, int(v))
	}
	return e.names[v]
}

func (e enum[E]) parse(text []byte) (E, error) {
	s := strings.TrimSpace(string(text))
	for i, n := range e.names {
		if strings.EqualFold(n, s) {
			return E(i), nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q", e.kind, s)
}

// ShapeType is the outline of a key.
type ShapeType int

const (
	ShapeRectangle ShapeType = iota
	ShapeEllipse
)

var shapeNames = enum[ShapeType]{"shape", []string{"rectangle", "ellipse"}}

func (s ShapeType) String() string                { return shapeNames.name(s) }
func (s ShapeType) MarshalText() ([]byte, error) { return []byte(s.String()), nil }
func (s *ShapeType) UnmarshalText(text []byte) (err error) {
	*s, err = shapeNames.parse(text)
	return err
}

// KeyType is how a key sends its sequence.
type KeyType int

const (
	KeySingle KeyType = iota // press once on touch
	KeyRepeat                // repeat while held
	KeyOnOff                 // toggle
)

var keyTypeNames = enum[KeyType]{"key type", []string{"single", "repeat", "onoff"}}

func (k KeyType) String() string                { return keyTypeNames.name(k) }
func (k KeyType) MarshalText() ([]byte, error) { return []byte(k.String()), nil }
func (k *KeyType) UnmarshalText(text []byte) (err error) {
	*k, err = keyTypeNames.parse(text)
	return err
}

// Orientation of a screen.
type Orientation int

const (
	Portrait Orientation = iota
	Landscape
)

var orientationNames = enum[Orientation]{"orientation", []string{"portrait", "landscape"}}

func (o Orientation) String() string                { return orientationNames.name(o) }
func (o Orientation) MarshalText() ([]byte, error) { return []byte(o.String()), nil }
func (o *Orientation) UnmarshalText(text []byte) (err error) {
	*o, err = orientationNames.parse(text)
	return err
}

// SwipeType is the gesture that brings a screen into view.
type SwipeType int

const (
	SwipeNone SwipeType = iota
	SwipeLeft
	SwipeRight
	SwipeUp
	SwipeDown
)

var swipeNames = enum[SwipeType]{"swipe type", []string{"none", "left", "right", "up", "down"}}

func (s SwipeType) String() string                { return swipeNames.name(s) }
func (s SwipeType) MarshalText() ([]byte, error) { return []byte(s.String()), nil }
func (s *SwipeType) UnmarshalText(text []byte) (err error) {
	*s, err = swipeNames.parse(text)
	return err
}

// KeySeq is the ordered list of key names a macro key sends, e.g. CTRL+C.
type KeySeq []string

func (k KeySeq) String() string {
	return strings.Join(k, "+")
}

// MarshalText encodes the sequence as NAME+NAME.
func (k KeySeq) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses NAME+NAME, upper-casing every name.
func (k *KeySeq) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if s == "" {
		*k = nil
		return nil
	}
	parts := strings.Split(s, "+")
	seq := make(KeySeq, 0, len(parts))
	for _, p := range parts {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p == "" {
			return fmt.Errorf("empty key name in sequence %q", s)
		}
		seq = append(seq, p)
	}
	*k = seq
	return nil
}

// Clone returns an independent copy.
func (k KeySeq) Clone() KeySeq {
	if k == nil {
		return nil
	}
	return append(KeySeq(nil), k...)
}
