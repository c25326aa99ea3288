package mask

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/mkedit/internal/event"
)

func TestNewStoresLandscape(t *testing.T) {
	m, err := New("phone", 6, Size{Width: 1080, Height: 1920})
	require.NoError(t, err)
	assert.Equal(t, Size{Width: 1920, Height: 1080}, m.Resolution)
	assert.InDelta(t, 1920.0/1080.0, m.AspectRatio(), 1e-9)
	assert.InDelta(t, 1080.0/1920.0, m.ReverseAspectRatio(), 1e-9)
	assert.Equal(t, "phone    6\" (1920x1080)", m.String())
}

func TestNewRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		diag float64
		res  Size
		want error
	}{
		{"zero diagonal", 0, Size{10, 10}, ErrInvalidDiagonal},
		{"negative diagonal", -1, Size{10, 10}, ErrInvalidDiagonal},
		{"zero width", 5, Size{0, 10}, ErrInvalidResolution},
		{"negative height", 5, Size{10, -2}, ErrInvalidResolution},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New("x", tt.diag, tt.res)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestScreenSize(t *testing.T) {
	// 3-4-5 triangle: 500 px diagonal over 5 inches is 100 dpi.
	m, err := New("m", 5, Size{Width: 400, Height: 300})
	require.NoError(t, err)
	assert.Equal(t, Size{Width: 800, Height: 600}, m.ScreenSize(200, 200))
}

func TestManagerAddRemoveSelect(t *testing.T) {
	mgr := NewManager()
	bus := event.NewManager()
	mgr.SetEventManager(bus)
	var got []event.Type
	for _, typ := range []event.Type{event.TypeMaskAdded, event.TypeMaskRemoved, event.TypeMaskSelected} {
		bus.Subscribe(typ, func(e event.Event) bool { got = append(got, e.Type); return false })
	}

	a, b := Defaults()[0], Defaults()[1]
	require.NoError(t, mgr.Add(a))
	require.NoError(t, mgr.Add(b))
	assert.ErrorIs(t, mgr.Add(a), ErrMaskPresent)
	assert.ErrorIs(t, mgr.Add(nil), ErrNilMask)

	require.NoError(t, mgr.Select(b))
	require.NoError(t, mgr.Select(b))
	assert.ErrorIs(t, mgr.Select(&Mask{}), ErrMaskNotFound)
	assert.Same(t, b, mgr.Selected())

	assert.True(t, mgr.Remove(b))
	assert.False(t, mgr.Remove(b))
	assert.Nil(t, mgr.Selected())
	assert.Equal(t, []*Mask{a}, mgr.Masks())

	assert.Equal(t, []event.Type{
		event.TypeMaskAdded, event.TypeMaskAdded,
		event.TypeMaskSelected,
		event.TypeMaskSelected, event.TypeMaskRemoved,
	}, got)
}

func TestManagerEditProperty(t *testing.T) {
	mgr := NewManager()
	m, err := New("old", 5, Size{100, 50})
	require.NoError(t, err)
	require.NoError(t, mgr.Add(m))

	require.NoError(t, mgr.EditProperty(m, PropName, "new"))
	require.NoError(t, mgr.EditProperty(m, PropDiagonal, 7.5))
	require.NoError(t, mgr.EditProperty(m, PropResolution, Size{Width: 20, Height: 40}))
	assert.Equal(t, Mask{Name: "new", Diagonal: 7.5, Resolution: Size{40, 20}}, *m)

	assert.ErrorIs(t, mgr.EditProperty(m, PropDiagonal, 0.0), ErrInvalidDiagonal)
	assert.ErrorIs(t, mgr.EditProperty(m, PropDiagonal, 3), ErrWrongValueType)
	assert.ErrorIs(t, mgr.EditProperty(m, "Colour", 3), ErrUnknownProperty)
	assert.ErrorIs(t, mgr.EditProperty(&Mask{}, PropName, "x"), ErrMaskNotFound)
	assert.Equal(t, 7.5, m.Diagonal)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	src := NewManager()
	for _, m := range Defaults() {
		require.NoError(t, src.Add(m))
	}
	path := filepath.Join(t.TempDir(), "sub", "masks.toml")
	require.NoError(t, src.SaveFile(path))

	dst := NewManager()
	require.NoError(t, dst.LoadFile(path))
	require.Len(t, dst.Masks(), len(Defaults()))
	for i, m := range dst.Masks() {
		assert.Equal(t, *Defaults()[i], *m)
	}
}

func TestLoadMissingFileKeepsMasks(t *testing.T) {
	mgr := NewManager()
	require.NoError(t, mgr.Add(Defaults()[0]))
	require.NoError(t, mgr.LoadFile(filepath.Join(t.TempDir(), "none.toml")))
	assert.Len(t, mgr.Masks(), 1)
}

func TestLoadValidatesAllEntries(t *testing.T) {
	mgr := NewManager()
	keep := Defaults()[0]
	require.NoError(t, mgr.Add(keep))

	input := `
[[mask]]
name = "bad diagonal"
diagonal = 0.0
resolution = { width = 10, height = 10 }

[[mask]]
name = "bad resolution"
diagonal = 4.0
resolution = { width = 0, height = 10 }
`
	err := mgr.Load(strings.NewReader(input))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDiagonal)
	assert.ErrorIs(t, err, ErrInvalidResolution)
	assert.Equal(t, []*Mask{keep}, mgr.Masks(), "failed load changes nothing")
}

func TestLoadNormalisesOrientationAndDropsSelection(t *testing.T) {
	mgr := NewManager()
	sel := Defaults()[0]
	require.NoError(t, mgr.Add(sel))
	require.NoError(t, mgr.Select(sel))

	var buf bytes.Buffer
	buf.WriteString("[[mask]]\nname = \"tall\"\ndiagonal = 5.0\nresolution = { width = 720, height = 1280 }\n")
	require.NoError(t, mgr.Load(&buf))

	require.Len(t, mgr.Masks(), 1)
	assert.Equal(t, Size{Width: 1280, Height: 720}, mgr.Masks()[0].Resolution)
	assert.Nil(t, mgr.Selected())
}

func TestParseSize(t *testing.T) {
	s, err := ParseSize(" 1080X1920 ")
	require.NoError(t, err)
	assert.Equal(t, Size{Width: 1080, Height: 1920}, s)

	for _, bad := range []string{"", "1080", "ax2", "2x", "1x2x3"} {
		_, err := ParseSize(bad)
		assert.Error(t, err, bad)
	}
}
