package tui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/mkedit/internal/macro"
	"github.com/bethropolis/mkedit/internal/theme"
)

func newSimTUI(t *testing.T, w, h int) (*TUI, tcell.SimulationScreen) {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	tu, err := NewWithScreen(s)
	require.NoError(t, err)
	t.Cleanup(tu.Close)
	s.SetSize(w, h)
	return tu, s
}

func rowText(s tcell.SimulationScreen, y, w int) string {
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, width := s.GetContent(x, y)
		if width == 0 {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func TestFit(t *testing.T) {
	assert.Equal(t, "ab  ", fit("ab", 4))
	assert.Equal(t, "abcd", fit("abcdef", 4))
	assert.Equal(t, "日本 ", fit("日本語", 5), "wide runes count two cells")
}

func TestScrollOffset(t *testing.T) {
	assert.Equal(t, 0, ScrollOffset(0, 3, 5))
	assert.Equal(t, 2, ScrollOffset(0, 6, 5))
	assert.Equal(t, 1, ScrollOffset(4, 1, 5))
	assert.Equal(t, 0, ScrollOffset(3, 1, 0))
	assert.Equal(t, 2, ListHeight(5))
	assert.Equal(t, 0, ListHeight(2))
}

func TestDrawLayout(t *testing.T) {
	tu, s := newSimTUI(t, 80, 6)
	a := macro.NewKey("Copy", macro.Rect{W: 1, H: 1})
	b := macro.NewKey("Paste", macro.Rect{W: 1, H: 1})
	home, left := macro.NewScreen(macro.SwipeNone), macro.NewScreen(macro.SwipeLeft)

	DrawLayout(tu, View{
		Screens:    []*macro.Screen{home, left},
		Active:     1,
		Keys:       []*macro.Key{a, b},
		Cursor:     1,
		IsSelected: func(k *macro.Key) bool { return k == a },
	}, theme.GetCurrentTheme())

	assert.True(t, strings.HasPrefix(rowText(s, 0, 80), " 1:none  2:left "))
	assert.Contains(t, rowText(s, 1, 80), "Label")
	assert.True(t, strings.HasPrefix(rowText(s, 2, 80), " *  1    Copy"))
	assert.True(t, strings.HasPrefix(rowText(s, 3, 80), ">   2    Paste"))

	_, _, style, _ := s.GetContent(6, 3)
	assert.Equal(t, theme.GetCurrentTheme().GetStyle(theme.StyleKeyCursor), style)
}

func TestDrawLayoutWithoutScreens(t *testing.T) {
	tu, s := newSimTUI(t, 40, 4)
	DrawLayout(tu, View{Active: -1}, nil)
	assert.Contains(t, rowText(s, 0, 40), "no screens")
}
