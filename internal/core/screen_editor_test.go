package core

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/mkedit/internal/core/history"
	"github.com/bethropolis/mkedit/internal/event"
	"github.com/bethropolis/mkedit/internal/macro"
)

type clock struct{ t time.Time }

func (c *clock) Now() time.Time          { return c.t }
func (c *clock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// recorder collects every editing event dispatched on a bus.
type recorder struct {
	events []event.Event
}

func (r *recorder) listen(m *event.Manager, types ...event.Type) {
	for _, t := range types {
		m.Subscribe(t, func(e event.Event) bool {
			r.events = append(r.events, e)
			return false
		})
	}
}

func (r *recorder) types() []event.Type {
	out := make([]event.Type, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

func (r *recorder) reset() { r.events = nil }

func newTestEditor(t *testing.T) (*ScreenEditor, *recorder, *clock) {
	t.Helper()
	c := &clock{t: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
	ed := NewScreenEditor(macro.NewScreen(macro.SwipeNone), history.WithClock(c.Now))
	bus := event.NewManager()
	ed.SetEventManager(bus)
	rec := &recorder{}
	rec.listen(bus, event.TypeKeysAdded, event.TypeKeysRemoved, event.TypeKeysEdited,
		event.TypeKeysSwapped, event.TypeScreenEdited)
	return ed, rec, c
}

func keys(n int) []*macro.Key {
	out := make([]*macro.Key, n)
	for i := range out {
		out[i] = macro.NewKey(string(rune('A'+i)), macro.Rect{W: 1, H: 1})
	}
	return out
}

func TestAddAppendsAndUndoes(t *testing.T) {
	ed, rec, _ := newTestEditor(t)
	ks := keys(3)

	require.NoError(t, ed.Add(ks[0]))
	require.NoError(t, ed.Add(ks[1], ks[2]))
	assert.Equal(t, ks, ed.Screen().Keys)
	assert.Equal(t, []event.Type{event.TypeKeysAdded, event.TypeKeysAdded}, rec.types())

	rec.reset()
	assert.True(t, ed.Undo())
	assert.Equal(t, ks[:1], ed.Screen().Keys)
	require.Len(t, rec.events, 1)
	assert.Equal(t, event.TypeKeysRemoved, rec.events[0].Type)
	assert.Equal(t, []*macro.Key{ks[1], ks[2]}, rec.events[0].Data.(event.KeysData).Keys)

	rec.reset()
	assert.True(t, ed.Redo())
	assert.Equal(t, ks, ed.Screen().Keys)
	assert.Equal(t, []event.Type{event.TypeKeysAdded}, rec.types())
}

func TestAddRejectsBadBatches(t *testing.T) {
	ed, rec, _ := newTestEditor(t)
	ks := keys(2)
	require.NoError(t, ed.Add(ks[0]))
	rec.reset()

	assert.ErrorIs(t, ed.Add(), ErrEmptyKeys)
	assert.ErrorIs(t, ed.Add(ks[0]), ErrKeyPresent)
	assert.ErrorIs(t, ed.Add(ks[1], ks[1]), ErrDuplicateKey)
	assert.ErrorIs(t, ed.Add(nil), macro.ErrNilEntry)

	assert.Empty(t, rec.events)
	assert.Equal(t, ks[:1], ed.Screen().Keys)
	assert.False(t, ed.CanRedo())
}

func TestRemoveDeselectsAndRestores(t *testing.T) {
	ed, rec, _ := newTestEditor(t)
	ks := keys(4)
	require.NoError(t, ed.Add(ks...))
	require.NoError(t, ed.SelectAll([]*macro.Key{ks[1], ks[3]}, true))
	rec.reset()

	require.NoError(t, ed.Remove(ks[3], ks[1]))
	assert.Equal(t, []*macro.Key{ks[0], ks[2]}, ed.Screen().Keys)
	assert.Empty(t, ed.Selected())
	assert.Equal(t, []event.Type{event.TypeKeysRemoved}, rec.types())

	rec.reset()
	require.True(t, ed.Undo())
	assert.Equal(t, ks, ed.Screen().Keys, "keys go back to their old positions")
	assert.Equal(t, []event.Type{event.TypeKeysAdded}, rec.types())
	assert.Empty(t, ed.Selected(), "undo does not restore the selection")

	rec.reset()
	require.True(t, ed.Redo())
	assert.Equal(t, []*macro.Key{ks[0], ks[2]}, ed.Screen().Keys)
	assert.Equal(t, []event.Type{event.TypeKeysRemoved}, rec.types())
}

func TestRemoveUnknownKey(t *testing.T) {
	ed, _, _ := newTestEditor(t)
	ks := keys(2)
	require.NoError(t, ed.Add(ks[0]))

	err := ed.Remove(ks[0], ks[1])
	assert.ErrorIs(t, err, ErrKeyNotFound)
	assert.Equal(t, ks[:1], ed.Screen().Keys, "nothing is removed when one key is unknown")
}

func TestUndoOfAddDropsSelection(t *testing.T) {
	ed, _, _ := newTestEditor(t)
	ks := keys(2)
	require.NoError(t, ed.Add(ks...))
	require.NoError(t, ed.Select(ks[1], false))

	require.True(t, ed.Undo())
	assert.False(t, ed.IsSelected(ks[1]))
}

func TestSelection(t *testing.T) {
	ed, _, _ := newTestEditor(t)
	bus := event.NewManager()
	ed.SetEventManager(bus)
	changes := 0
	bus.Subscribe(event.TypeSelectionChanged, func(event.Event) bool { changes++; return false })

	ks := keys(3)
	require.NoError(t, ed.Add(ks...))

	require.NoError(t, ed.Select(ks[0], false))
	require.NoError(t, ed.Select(ks[1], false))
	require.NoError(t, ed.Select(ks[1], false))
	assert.Equal(t, []*macro.Key{ks[0], ks[1]}, ed.Selected())

	require.NoError(t, ed.Select(ks[2], true))
	assert.Equal(t, []*macro.Key{ks[2]}, ed.Selected())

	assert.ErrorIs(t, ed.Select(macro.NewKey("x", macro.Rect{}), false), ErrKeyNotFound)

	assert.True(t, ed.Deselect(ks[2]))
	assert.False(t, ed.Deselect(ks[2]))
	ed.DeselectAll() // already empty, no event

	assert.Equal(t, 5, changes)
}

func TestMoveKey(t *testing.T) {
	ed, rec, _ := newTestEditor(t)
	ks := keys(3)
	require.NoError(t, ed.Add(ks...))
	rec.reset()

	require.NoError(t, ed.MoveKeyUp(ks[0]))
	assert.Equal(t, []*macro.Key{ks[1], ks[0], ks[2]}, ed.Screen().Keys)
	require.Len(t, rec.events, 1)
	assert.Equal(t, event.KeysSwappedData{Screen: ed.Screen(), A: ks[1], B: ks[0]}, rec.events[0].Data)

	require.NoError(t, ed.MoveKeyDown(ks[2]))
	assert.Equal(t, []*macro.Key{ks[1], ks[2], ks[0]}, ed.Screen().Keys)

	assert.ErrorIs(t, ed.MoveKeyUp(ks[0]), ErrNoNeighbour)
	assert.ErrorIs(t, ed.MoveKeyDown(ks[1]), ErrNoNeighbour)

	rec.reset()
	require.True(t, ed.Undo())
	require.True(t, ed.Undo())
	assert.Equal(t, ks, ed.Screen().Keys)
	assert.Equal(t, []event.Type{event.TypeKeysSwapped, event.TypeKeysSwapped}, rec.types())
}

func TestEditKeyPropertyMergesWithinWindow(t *testing.T) {
	ed, rec, c := newTestEditor(t)
	ks := keys(2)
	require.NoError(t, ed.Add(ks...))
	ed.ClearHistory()
	rec.reset()

	for _, text := range []string{"a", "ab", "abc"} {
		c.Advance(50 * time.Millisecond)
		require.NoError(t, ed.EditKeyProperty(ks, KeyPropText, text))
	}
	assert.Equal(t, "abc", ks[0].Text)
	assert.Equal(t, "abc", ks[1].Text)
	assert.Len(t, rec.events, 3, "every edit is announced even when merged")

	rec.reset()
	require.True(t, ed.Undo())
	assert.Equal(t, "A", ks[0].Text)
	assert.Equal(t, "B", ks[1].Text)
	assert.False(t, ed.CanUndo())
	require.Len(t, rec.events, 1)
	data := rec.events[0].Data.(event.KeysEditedData)
	assert.Equal(t, KeyPropText, data.Property)
	assert.ElementsMatch(t, ks, data.Keys)

	require.True(t, ed.Redo())
	assert.Equal(t, "abc", ks[0].Text)
}

func TestEditKeyPropertyOutsideWindow(t *testing.T) {
	ed, _, c := newTestEditor(t)
	k := keys(1)[0]
	require.NoError(t, ed.Add(k))
	ed.ClearHistory()

	require.NoError(t, ed.EditKeyProperty([]*macro.Key{k}, KeyPropColorFill, macro.RGB(1, 2, 3)))
	c.Advance(DefaultMergeWindow + time.Millisecond)
	require.NoError(t, ed.EditKeyProperty([]*macro.Key{k}, KeyPropColorFill, macro.RGB(4, 5, 6)))

	require.True(t, ed.Undo())
	assert.Equal(t, macro.RGB(1, 2, 3), k.ColorFill)
	assert.True(t, ed.CanUndo())
}

func TestEditKeyPropertiesPerKey(t *testing.T) {
	ed, _, _ := newTestEditor(t)
	ks := keys(2)
	require.NoError(t, ed.Add(ks...))

	err := ed.EditKeyProperties(KeyPropArea, []history.Edit[*macro.Key]{
		{Instance: ks[0], Value: macro.Rect{X: 1, W: 2, H: 2}},
		{Instance: ks[1], Value: macro.Rect{X: 5, W: 2, H: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, ks[0].Area.X)
	assert.Equal(t, 5.0, ks[1].Area.X)

	require.True(t, ed.Undo())
	assert.Equal(t, macro.Rect{W: 1, H: 1}, ks[0].Area)
}

func TestEditKeyPropertyErrors(t *testing.T) {
	ed, rec, _ := newTestEditor(t)
	ks := keys(1)
	require.NoError(t, ed.Add(ks...))
	ed.ClearHistory()
	rec.reset()

	var invalid *history.InvalidOperationError

	err := ed.EditKeyProperty(ks, "Width", 3)
	require.True(t, errors.As(err, &invalid))
	assert.ErrorIs(t, err, history.ErrPropertyNotFound)

	err = ed.EditKeyProperty(ks, KeyPropText, 42)
	assert.ErrorIs(t, err, history.ErrTypeMismatch)

	err = ed.EditKeyProperty(nil, KeyPropText, "x")
	assert.ErrorIs(t, err, history.ErrEmptyBatch)

	err = ed.EditKeyProperty([]*macro.Key{macro.NewKey("stray", macro.Rect{})}, KeyPropText, "x")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	assert.Equal(t, "A", ks[0].Text)
	assert.False(t, ed.CanUndo())
	assert.Empty(t, rec.events)
}

func TestEditKeyPropertyLowercaseName(t *testing.T) {
	ed, _, _ := newTestEditor(t)
	k := keys(1)[0]
	require.NoError(t, ed.Add(k))

	require.NoError(t, ed.EditKeyProperty([]*macro.Key{k}, "keySeq", macro.KeySeq{"CTRL", "C"}))
	assert.Equal(t, macro.KeySeq{"CTRL", "C"}, k.KeySeq)
}

func TestEditScreenProperty(t *testing.T) {
	ed, rec, _ := newTestEditor(t)

	require.NoError(t, ed.EditScreenProperty(ScreenPropSwipeType, macro.SwipeLeft))
	require.NoError(t, ed.EditScreenProperty(ScreenPropText, "home"))
	assert.Equal(t, macro.SwipeLeft, ed.Screen().Swipe)
	assert.Equal(t, "home", ed.Screen().BackgroundText)
	assert.Equal(t, []event.Type{event.TypeScreenEdited, event.TypeScreenEdited}, rec.types())

	require.True(t, ed.Undo())
	assert.Equal(t, "", ed.Screen().BackgroundText)
	require.True(t, ed.Undo())
	assert.Equal(t, macro.SwipeNone, ed.Screen().Swipe)

	assert.ErrorIs(t, ed.EditScreenProperty(ScreenPropOrientation, "sideways"), history.ErrTypeMismatch)
}

func TestKeyAndScreenEditsDoNotMerge(t *testing.T) {
	ed, _, _ := newTestEditor(t)
	k := keys(1)[0]
	require.NoError(t, ed.Add(k))
	ed.ClearHistory()

	require.NoError(t, ed.EditKeyProperty([]*macro.Key{k}, KeyPropText, "x"))
	require.NoError(t, ed.EditScreenProperty(ScreenPropText, "x"))
	require.True(t, ed.Undo())
	assert.True(t, ed.CanUndo())
}

func TestUndoRedoEmpty(t *testing.T) {
	ed, rec, _ := newTestEditor(t)
	assert.False(t, ed.Undo())
	assert.False(t, ed.Redo())
	assert.Empty(t, rec.events)
}

func TestNewEditOnUndoneHistoryClearsRedo(t *testing.T) {
	ed, _, _ := newTestEditor(t)
	ks := keys(2)
	require.NoError(t, ed.Add(ks[0]))
	require.True(t, ed.Undo())
	assert.True(t, ed.CanRedo())

	require.NoError(t, ed.Add(ks[1]))
	assert.False(t, ed.CanRedo())
}

func TestKeyProperties(t *testing.T) {
	assert.Len(t, KeyProperties(), 9)
	assert.Contains(t, KeyProperties(), KeyPropColorEdgePress)
}
