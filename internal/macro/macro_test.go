package macro

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorText(t *testing.T) {
	var c Color
	require.NoError(t, c.UnmarshalText([]byte("#80102030")))
	assert.Equal(t, Color(0x80102030), c)

	require.NoError(t, c.UnmarshalText([]byte("102030")))
	assert.Equal(t, RGB(0x10, 0x20, 0x30), c, "six digits are opaque")

	assert.Error(t, c.UnmarshalText([]byte("#12345")))
	assert.Error(t, c.UnmarshalText([]byte("#GG000000")))
	assert.Equal(t, "#FF102030", RGB(0x10, 0x20, 0x30).String())
}

func TestColorDarkerKeepsAlpha(t *testing.T) {
	c := Color(0x80646464).Darker()
	a, r, g, b := c.Components()
	assert.Equal(t, uint8(0x80), a)
	assert.Equal(t, uint8(70), r)
	assert.Equal(t, uint8(70), g)
	assert.Equal(t, uint8(70), b)
}

func TestKeySeqText(t *testing.T) {
	var seq KeySeq
	require.NoError(t, seq.UnmarshalText([]byte("ctrl + shift+ S")))
	assert.Equal(t, KeySeq{"CTRL", "SHIFT", "S"}, seq)
	assert.Equal(t, "CTRL+SHIFT+S", seq.String())

	assert.Error(t, seq.UnmarshalText([]byte("CTRL++S")))
	require.NoError(t, seq.UnmarshalText([]byte("")))
	assert.Nil(t, seq)
}

func TestEnumText(t *testing.T) {
	var s SwipeType
	require.NoError(t, s.UnmarshalText([]byte("Left")))
	assert.Equal(t, SwipeLeft, s)
	assert.Error(t, s.UnmarshalText([]byte("diagonal")))
	assert.Equal(t, "swipe type(42)", SwipeType(42).String())
}

func TestKeyCloneIsIndependent(t *testing.T) {
	k := NewKey("copy", Rect{W: 1, H: 1})
	k.KeySeq = KeySeq{"CTRL", "C"}
	c := k.Clone()

	assert.NotEqual(t, k.ID, c.ID)
	c.KeySeq[0] = "ALT"
	assert.Equal(t, "CTRL", k.KeySeq[0])
	assert.Equal(t, k.Text, c.Text)
}

func sampleSetup() *Setup {
	main := NewScreen(SwipeNone)
	main.BackgroundText = "Main"
	copyKey := NewKey("Copy", Rect{X: 0.1, Y: 0.1, W: 0.2, H: 0.1})
	copyKey.KeySeq = KeySeq{"CTRL", "C"}
	pasteKey := NewKey("Paste", Rect{X: 0.4, Y: 0.1, W: 0.2, H: 0.1})
	pasteKey.Shape = ShapeEllipse
	pasteKey.Type = KeyRepeat
	pasteKey.ColorFill = RGB(200, 10, 10)
	main.Keys = []*Key{copyKey, pasteKey}

	side := NewScreen(SwipeLeft)
	side.Orientation = Landscape
	return &Setup{Screens: []*Screen{main, side}}
}

func TestEncodeDecode(t *testing.T) {
	setup := sampleSetup()
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, setup))

	got, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, setup, got)
}

func TestDecodeAssignsMissingIDs(t *testing.T) {
	const layout = `
[[screens]]
background = "#FFFFFFFF"
swipe = "none"
orientation = "portrait"

[[screens.keys]]
text = "A"
shape = "rectangle"
type = "single"
color_edge = "#000000"
color_fill = "#808080"
color_edge_press = "#000000"
color_fill_press = "#595959"
key_seq = "A"
[screens.keys.area]
w = 1.0
h = 1.0
`
	setup, err := Decode(strings.NewReader(layout))
	require.NoError(t, err)
	require.Len(t, setup.Screens, 1)
	require.Len(t, setup.Screens[0].Keys, 1)
	assert.NotEmpty(t, setup.Screens[0].Keys[0].ID)
	assert.Equal(t, KeySeq{"A"}, setup.Screens[0].Keys[0].KeySeq)
}

func TestValidateAggregates(t *testing.T) {
	setup := sampleSetup()
	setup.Screens[1].Swipe = SwipeNone // two "none" screens are fine
	dup := NewScreen(SwipeLeft)
	dup2 := NewScreen(SwipeLeft)
	bad := NewKey("bad", Rect{})
	bad.ID = setup.Screens[0].Keys[0].ID
	dup2.Keys = []*Key{bad, nil}
	setup.Screens = append(setup.Screens, dup, dup2)

	err := setup.Validate()
	require.Error(t, err)

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	assert.Len(t, merr.Errors, 4)
	assert.ErrorIs(t, err, ErrDuplicateSwipe)
	assert.ErrorIs(t, err, ErrEmptyArea)
	assert.ErrorIs(t, err, ErrDuplicateKeyID)
	assert.ErrorIs(t, err, ErrNilEntry)
}

func TestSaveAndLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.toml")
	setup := sampleSetup()
	require.NoError(t, SaveFile(path, setup))

	got, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, setup, got)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")
}

func TestSaveFileRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.toml")
	setup := sampleSetup()
	setup.Screens[0].Keys[0].Area = Rect{}
	assert.ErrorIs(t, SaveFile(path, setup), ErrEmptyArea)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
