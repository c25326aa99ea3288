package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/mkedit/internal/event"
	"github.com/bethropolis/mkedit/internal/macro"
)

func TestNewSetupEditorSelectsFirstScreen(t *testing.T) {
	home := macro.NewScreen(macro.SwipeNone)
	left := macro.NewScreen(macro.SwipeLeft)
	ed, err := NewSetupEditor(&macro.Setup{Screens: []*macro.Screen{home, left}})
	require.NoError(t, err)

	assert.Equal(t, 2, ed.Len())
	require.NotNil(t, ed.Selected())
	assert.Same(t, home, ed.Selected().Screen())
	assert.True(t, ed.ContainsSwipe(macro.SwipeLeft))
	assert.False(t, ed.ContainsSwipe(macro.SwipeUp))
	assert.Equal(t, []*macro.Screen{home, left}, ed.Setup().Screens)
}

func TestNewSetupEditorRejectsDuplicateSwipe(t *testing.T) {
	_, err := NewSetupEditor(&macro.Setup{Screens: []*macro.Screen{
		macro.NewScreen(macro.SwipeUp), macro.NewScreen(macro.SwipeUp),
	}})
	assert.ErrorIs(t, err, macro.ErrDuplicateSwipe)
}

func TestAddScreen(t *testing.T) {
	ed, err := NewSetupEditor(nil)
	require.NoError(t, err)
	bus := event.NewManager()
	ed.SetEventManager(bus)
	added := 0
	bus.Subscribe(event.TypeScreenAdded, func(event.Event) bool { added++; return false })

	s := macro.NewScreen(macro.SwipeNone)
	se, err := ed.AddScreen(s)
	require.NoError(t, err)
	assert.Same(t, s, se.Screen())
	assert.Nil(t, ed.Selected(), "adding does not select")

	_, err = ed.AddScreen(s)
	assert.ErrorIs(t, err, ErrScreenPresent)
	_, err = ed.AddScreen(nil)
	assert.ErrorIs(t, err, macro.ErrNilEntry)
	_, err = ed.AddScreen(macro.NewScreen(macro.SwipeNone))
	assert.NoError(t, err, "several screens may have no swipe")

	assert.Equal(t, 2, added)
}

func TestRemoveSelectedScreenSelectsFirst(t *testing.T) {
	a, b, c := macro.NewScreen(macro.SwipeNone), macro.NewScreen(macro.SwipeLeft), macro.NewScreen(macro.SwipeRight)
	ed, err := NewSetupEditor(&macro.Setup{Screens: []*macro.Screen{a, b, c}})
	require.NoError(t, err)
	bus := event.NewManager()
	ed.SetEventManager(bus)
	var selections []event.ScreenSelectedData
	bus.Subscribe(event.TypeScreenSelected, func(e event.Event) bool {
		selections = append(selections, e.Data.(event.ScreenSelectedData))
		return false
	})

	require.NoError(t, ed.SelectScreen(c))
	assert.True(t, ed.RemoveScreen(c))
	assert.Same(t, a, ed.Selected().Screen())
	assert.False(t, ed.RemoveScreen(c))

	assert.True(t, ed.RemoveScreen(b), "removing an unselected screen keeps the selection")
	assert.Same(t, a, ed.Selected().Screen())

	assert.True(t, ed.RemoveScreen(a))
	assert.Nil(t, ed.Selected())

	assert.Equal(t, []event.ScreenSelectedData{
		{Old: a, New: c},
		{Old: c, New: a},
		{Old: a, New: nil},
	}, selections)
}

func TestSelectScreen(t *testing.T) {
	a, b := macro.NewScreen(macro.SwipeNone), macro.NewScreen(macro.SwipeDown)
	ed, err := NewSetupEditor(&macro.Setup{Screens: []*macro.Screen{a, b}})
	require.NoError(t, err)

	assert.ErrorIs(t, ed.SelectScreen(macro.NewScreen(macro.SwipeUp)), ErrScreenNotFound)
	assert.Same(t, a, ed.Selected().Screen())

	ed.SelectNext()
	assert.Same(t, b, ed.Selected().Screen())
	ed.SelectNext()
	assert.Same(t, a, ed.Selected().Screen())

	require.NoError(t, ed.SelectScreen(nil))
	assert.Nil(t, ed.Selected())
	require.NotNil(t, ed.Editor(b))
	assert.Same(t, b, ed.Editor(b).Screen())
	assert.Nil(t, ed.Editor(macro.NewScreen(macro.SwipeNone)))
}

func TestSetupEditorSharesEventManagerAndWindow(t *testing.T) {
	s := macro.NewScreen(macro.SwipeNone)
	ed, err := NewSetupEditor(&macro.Setup{Screens: []*macro.Screen{s}})
	require.NoError(t, err)
	bus := event.NewManager()
	ed.SetEventManager(bus)
	ed.SetMergeWindow(-1)

	got := 0
	bus.Subscribe(event.TypeKeysAdded, func(event.Event) bool { got++; return false })
	k := macro.NewKey("k", macro.Rect{W: 1, H: 1})
	require.NoError(t, ed.Selected().Add(k))
	assert.Equal(t, 1, got)

	require.NoError(t, ed.Selected().EditKeyProperty([]*macro.Key{k}, KeyPropText, "x"))
	require.NoError(t, ed.Selected().EditKeyProperty([]*macro.Key{k}, KeyPropText, "y"))
	require.True(t, ed.Selected().Undo())
	assert.Equal(t, "x", k.Text, "negative window keeps edits apart")
}

func TestPasteClonesAndSelects(t *testing.T) {
	ed, rec, _ := newTestEditor(t)
	src := keys(2)

	clones, err := ed.Paste(src)
	require.NoError(t, err)
	require.Len(t, clones, 2)
	for i, c := range clones {
		assert.NotSame(t, src[i], c)
		assert.NotEqual(t, src[i].ID, c.ID)
		assert.Equal(t, src[i].Text, c.Text)
	}
	assert.Equal(t, clones, ed.Screen().Keys)
	assert.Equal(t, clones, ed.Selected())
	assert.Equal(t, []event.Type{event.TypeKeysAdded}, rec.types())

	_, err = ed.Paste([]*macro.Key{nil})
	assert.ErrorIs(t, err, macro.ErrNilEntry)
}
