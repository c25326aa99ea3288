// Package mask describes device outlines drawn behind a screen while it is
// edited, so key sizes can be judged against a real display.
package mask

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrInvalidDiagonal   = errors.New("diagonal must be > 0")
	ErrInvalidResolution = errors.New("resolution must be > 0 in both directions")
)

// Size is a pixel resolution.
type Size struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

func (s Size) String() string { return fmt.Sprintf("%dx%d", s.Width, s.Height) }

// ParseSize reads the WxH form written by String.
func ParseSize(text string) (Size, error) {
	var s Size
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(text)), "x")
	if !ok {
		return s, fmt.Errorf("invalid resolution %q, want WxH", text)
	}
	var err error
	if s.Width, err = strconv.Atoi(w); err != nil {
		return Size{}, fmt.Errorf("invalid resolution %q: %w", text, err)
	}
	if s.Height, err = strconv.Atoi(h); err != nil {
		return Size{}, fmt.Errorf("invalid resolution %q: %w", text, err)
	}
	return s, nil
}

// Mask is a device display: a name, its diagonal in inches and its
// resolution stored landscape (Width >= Height).
type Mask struct {
	Name       string  `toml:"name"`
	Diagonal   float64 `toml:"diagonal"`
	Resolution Size    `toml:"resolution"`
}

// New creates a validated mask.
func New(name string, diagonal float64, res Size) (*Mask, error) {
	m := &Mask{Name: name}
	if err := m.SetDiagonal(diagonal); err != nil {
		return nil, err
	}
	if err := m.SetResolution(res); err != nil {
		return nil, err
	}
	return m, nil
}

// SetDiagonal sets the diagonal in inches.
func (m *Mask) SetDiagonal(d float64) error {
	if !(d > 0) || math.IsInf(d, 1) {
		return fmt.Errorf("%w: got %v", ErrInvalidDiagonal, d)
	}
	m.Diagonal = d
	return nil
}

// SetResolution stores res in landscape orientation.
func (m *Mask) SetResolution(res Size) error {
	if res.Width <= 0 || res.Height <= 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidResolution, res)
	}
	if res.Width < res.Height {
		res.Width, res.Height = res.Height, res.Width
	}
	m.Resolution = res
	return nil
}

// Validate checks a mask read from a file.
func (m *Mask) Validate() error {
	if !(m.Diagonal > 0) {
		return fmt.Errorf("mask %q: %w", m.Name, ErrInvalidDiagonal)
	}
	if m.Resolution.Width <= 0 || m.Resolution.Height <= 0 {
		return fmt.Errorf("mask %q: %w", m.Name, ErrInvalidResolution)
	}
	return nil
}

// AspectRatio is width over height in landscape.
func (m *Mask) AspectRatio() float64 {
	return float64(m.Resolution.Width) / float64(m.Resolution.Height)
}

// ReverseAspectRatio is height over width, the portrait ratio.
func (m *Mask) ReverseAspectRatio() float64 {
	return float64(m.Resolution.Height) / float64(m.Resolution.Width)
}

// ScreenSize scales the mask to a display with the given dots per inch,
// keeping its physical size.
func (m *Mask) ScreenSize(xdpi, ydpi float64) Size {
	w, h := float64(m.Resolution.Width), float64(m.Resolution.Height)
	dpi := math.Hypot(w, h) / m.Diagonal
	return Size{
		Width:  int(xdpi / dpi * w),
		Height: int(ydpi / dpi * h),
	}
}

func (m *Mask) String() string {
	return fmt.Sprintf("%s    %g\" (%s)", m.Name, m.Diagonal, m.Resolution)
}
