package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/mkedit/internal/config"
	"github.com/bethropolis/mkedit/internal/event"
	"github.com/bethropolis/mkedit/internal/input"
	"github.com/bethropolis/mkedit/internal/macro"
	"github.com/bethropolis/mkedit/internal/tui"
)

func newTestApp(t *testing.T, filePath string) (*App, tcell.SimulationScreen) {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	tu, err := tui.NewWithScreen(s)
	require.NoError(t, err)
	s.SetSize(100, 12)

	cfg := config.NewDefaultConfig()
	a, err := newApp(cfg, filePath, tu)
	require.NoError(t, err)
	t.Cleanup(func() {
		a.shutdownPlugins()
		tu.Close()
	})
	return a, s
}

func do(a *App, actions ...input.Action) {
	for _, act := range actions {
		a.handleAction(input.ActionEvent{Action: act})
	}
}

// typeText replaces the prompt input with text and confirms it.
func typeText(t *testing.T, a *App, text string) {
	t.Helper()
	require.NotNil(t, a.prompt, "a prompt is open")
	for len(a.prompt.input) > 0 {
		a.handlePromptAction(input.ActionEvent{Action: input.ActionDeleteCharBackward})
	}
	for _, r := range text {
		a.handlePromptAction(input.ActionEvent{Action: input.ActionInsertRune, Rune: r})
	}
	a.handlePromptAction(input.ActionEvent{Action: input.ActionConfirm})
}

func screenKeys(a *App) []*macro.Key {
	return a.setup.Selected().Screen().Keys
}

func quitSignalled(a *App) bool {
	select {
	case <-a.quit:
		return true
	default:
		return false
	}
}

func TestNewLayoutStartsWithOneScreen(t *testing.T) {
	a, _ := newTestApp(t, filepath.Join(t.TempDir(), "new.toml"))
	assert.Equal(t, 1, a.setup.Len())
	assert.NotNil(t, a.setup.Selected())
	assert.False(t, a.IsModified())
}

func TestAddKeyAndUndo(t *testing.T) {
	a, _ := newTestApp(t, "")
	do(a, input.ActionAddKey)

	keys := screenKeys(a)
	require.Len(t, keys, 1)
	assert.Equal(t, "Key 1", keys[0].Text)
	assert.True(t, a.setup.Selected().IsSelected(keys[0]))
	assert.True(t, a.IsModified())

	do(a, input.ActionUndo)
	assert.Empty(t, screenKeys(a))
	assert.Empty(t, a.setup.Selected().Selected())

	do(a, input.ActionRedo)
	assert.Len(t, screenKeys(a), 1)
}

func TestRepeatedFillChangesMergeIntoOneUndo(t *testing.T) {
	a, _ := newTestApp(t, "")
	do(a, input.ActionAddKey)
	k := screenKeys(a)[0]
	require.Equal(t, macro.Gray, k.ColorFill)

	do(a, input.ActionNextFill, input.ActionNextFill)
	assert.Equal(t, fillPalette[2], k.ColorFill)

	do(a, input.ActionUndo)
	assert.Equal(t, macro.Gray, k.ColorFill)
	require.Len(t, screenKeys(a), 1, "the add is a separate step")

	do(a, input.ActionPrevFill)
	assert.Equal(t, macro.Black, k.ColorFill, "backwards wraps around")
}

func TestCycleShapeAndType(t *testing.T) {
	a, _ := newTestApp(t, "")
	do(a, input.ActionAddKey)
	k := screenKeys(a)[0]

	do(a, input.ActionCycleShape)
	assert.Equal(t, macro.ShapeEllipse, k.Shape)
	do(a, input.ActionCycleShape)
	assert.Equal(t, macro.ShapeRectangle, k.Shape)

	do(a, input.ActionCycleKeyType, input.ActionCycleKeyType)
	assert.Equal(t, macro.KeyOnOff, k.Type)
}

func TestNudgeMovesTargets(t *testing.T) {
	a, _ := newTestApp(t, "")
	do(a, input.ActionAddKey)
	k := screenKeys(a)[0]
	x, y := k.Area.X, k.Area.Y

	do(a, input.ActionNudgeRight, input.ActionNudgeRight, input.ActionNudgeDown)
	assert.InDelta(t, x+2*nudgeStep, k.Area.X, 1e-9)
	assert.InDelta(t, y+nudgeStep, k.Area.Y, 1e-9)
}

func TestEditTextPrompt(t *testing.T) {
	a, _ := newTestApp(t, "")
	do(a, input.ActionAddKey)
	k := screenKeys(a)[0]

	do(a, input.ActionEditText)
	require.NotNil(t, a.prompt)
	text, _ := a.statusBar.Text()
	assert.Equal(t, "Text: Key 1", text)

	typeText(t, a, "Copy")
	assert.Nil(t, a.prompt)
	assert.Equal(t, "Copy", k.Text)

	do(a, input.ActionEditText)
	a.handlePromptAction(input.ActionEvent{Action: input.ActionInsertRune, Rune: '!'})
	a.handlePromptAction(input.ActionEvent{Action: input.ActionCancel})
	assert.Nil(t, a.prompt)
	assert.Equal(t, "Copy", k.Text, "cancel leaves the key alone")
}

func TestEditKeySeqPrompt(t *testing.T) {
	a, _ := newTestApp(t, "")
	do(a, input.ActionAddKey)
	k := screenKeys(a)[0]

	do(a, input.ActionEditKeySeq)
	typeText(t, a, "ctrl+c")
	assert.Equal(t, macro.KeySeq{"CTRL", "C"}, k.KeySeq)

	do(a, input.ActionEditKeySeq)
	typeText(t, a, "ctrl++")
	assert.Equal(t, macro.KeySeq{"CTRL", "C"}, k.KeySeq)
	text, _ := a.statusBar.Text()
	assert.Contains(t, text, "empty key name")
}

func TestSelectionAndRemove(t *testing.T) {
	a, _ := newTestApp(t, "")
	do(a, input.ActionAddKey, input.ActionAddKey, input.ActionAddKey)
	require.Len(t, screenKeys(a), 3)

	do(a, input.ActionDeselectAll, input.ActionMoveUp, input.ActionMoveUp)
	assert.Equal(t, 0, a.cursor)
	do(a, input.ActionToggleSelect, input.ActionToggleSelect)
	assert.Len(t, a.setup.Selected().Selected(), 2)
	assert.Equal(t, 2, a.cursor, "toggling moves down")

	do(a, input.ActionRemoveKeys)
	require.Len(t, screenKeys(a), 1)
	assert.Equal(t, "Key 3", screenKeys(a)[0].Text)
	assert.Equal(t, 0, a.cursor, "cursor is clamped")

	do(a, input.ActionSelectAll)
	assert.Len(t, a.setup.Selected().Selected(), 1)
}

func TestMoveKeyFollowsCursor(t *testing.T) {
	a, _ := newTestApp(t, "")
	do(a, input.ActionAddKey, input.ActionAddKey)
	first := screenKeys(a)[0]

	do(a, input.ActionMoveUp)
	require.Equal(t, 0, a.cursor)
	do(a, input.ActionMoveKeyUp)
	assert.Same(t, first, screenKeys(a)[1])
	assert.Equal(t, 1, a.cursor)

	do(a, input.ActionMoveKeyUp)
	text, _ := a.statusBar.Text()
	assert.NotEmpty(t, text)
	assert.Same(t, first, screenKeys(a)[1], "top key stays")
}

func TestScreens(t *testing.T) {
	a, _ := newTestApp(t, "")
	first := a.setup.Selected().Screen()

	do(a, input.ActionAddScreen)
	require.Equal(t, 2, a.setup.Len())
	assert.Equal(t, macro.SwipeLeft, a.setup.Selected().Screen().Swipe)

	do(a, input.ActionNextScreen)
	assert.Same(t, first, a.setup.Selected().Screen())
	do(a, input.ActionPrevScreen)
	assert.Equal(t, macro.SwipeLeft, a.setup.Selected().Screen().Swipe)

	do(a, input.ActionRemoveScreen)
	assert.Equal(t, 1, a.setup.Len())
	assert.Same(t, first, a.setup.Selected().Screen())

	do(a, input.ActionRemoveScreen)
	assert.Equal(t, 1, a.setup.Len())
	text, _ := a.statusBar.Text()
	assert.Equal(t, "Cannot remove the last screen", text)
}

func TestCopyPaste(t *testing.T) {
	a, _ := newTestApp(t, "")
	do(a, input.ActionPaste)
	text, _ := a.statusBar.Text()
	assert.Equal(t, "Clipboard is empty", text)

	do(a, input.ActionAddKey, input.ActionCopy, input.ActionPaste)
	keys := screenKeys(a)
	require.Len(t, keys, 2)
	assert.NotEqual(t, keys[0].ID, keys[1].ID)
	assert.Equal(t, keys[0].Text, keys[1].Text)
	assert.Equal(t, 1, a.cursor)
	assert.Equal(t, []*macro.Key{keys[1]}, a.setup.Selected().Selected())
}

func TestNextMaskCyclesThroughNone(t *testing.T) {
	a, _ := newTestApp(t, "")
	masks := a.masks.Masks()
	require.NotEmpty(t, masks)

	for _, m := range masks {
		do(a, input.ActionNextMask)
		assert.Same(t, m, a.masks.Selected())
	}
	do(a, input.ActionNextMask)
	assert.Nil(t, a.masks.Selected())
	assert.False(t, a.IsModified(), "masks are not part of the layout")
}

func TestSaveAsThenLoad(t *testing.T) {
	a, _ := newTestApp(t, "")
	var saved []string
	a.eventManager.Subscribe(event.TypeLayoutSaved, func(e event.Event) bool {
		saved = append(saved, e.Data.(event.LayoutFileData).FilePath)
		return false
	})

	do(a, input.ActionAddKey, input.ActionSave)
	require.NotNil(t, a.prompt)
	path := filepath.Join(t.TempDir(), "layout.toml")
	typeText(t, a, path)

	assert.Equal(t, path, a.FilePath())
	assert.False(t, a.IsModified())
	assert.Equal(t, []string{path}, saved)

	b, _ := newTestApp(t, path)
	require.Equal(t, 1, b.setup.Len())
	require.Len(t, screenKeys(b), 1)
	assert.Equal(t, screenKeys(a)[0].ID, screenKeys(b)[0].ID)

	text, _ := b.statusBar.Text()
	assert.Contains(t, text, "Screens: 1, Keys: 1", "stats are reported on load")
}

func TestBrokenLayoutFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[screens]\n"), 0o644))

	s := tcell.NewSimulationScreen("UTF-8")
	tu, err := tui.NewWithScreen(s)
	require.NoError(t, err)
	defer tu.Close()
	_, err = newApp(config.NewDefaultConfig(), path, tu)
	assert.Error(t, err)
}

func TestQuitAsksTwiceWhenModified(t *testing.T) {
	a, _ := newTestApp(t, "")
	do(a, input.ActionQuit)
	assert.True(t, quitSignalled(a), "clean layouts quit at once")

	b, _ := newTestApp(t, "")
	do(b, input.ActionAddKey, input.ActionQuit)
	assert.False(t, quitSignalled(b))
	text, _ := b.statusBar.Text()
	assert.True(t, strings.HasPrefix(text, "Unsaved changes"))

	do(b, input.ActionMoveUp, input.ActionQuit)
	assert.False(t, quitSignalled(b), "any other action disarms")
	do(b, input.ActionQuit)
	assert.True(t, quitSignalled(b))
}

func TestForceQuit(t *testing.T) {
	a, _ := newTestApp(t, "")
	do(a, input.ActionAddKey, input.ActionForceQuit, input.ActionForceQuit)
	assert.True(t, quitSignalled(a))
}

func TestHandleKeyRoutesToPrompt(t *testing.T) {
	a, _ := newTestApp(t, "")
	a.handleKey(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone))
	require.Len(t, screenKeys(a), 1)

	a.handleKey(tcell.NewEventKey(tcell.KeyRune, 'e', tcell.ModNone))
	require.NotNil(t, a.prompt)
	a.handleKey(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone))
	assert.Len(t, screenKeys(a), 1, "runes are text while prompting")
	a.handleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	assert.Equal(t, "Key 1a", screenKeys(a)[0].Text)
}

func TestDrawShowsLayout(t *testing.T) {
	a, s := newTestApp(t, "")
	do(a, input.ActionAddKey, input.ActionAddScreen, input.ActionPrevScreen)
	a.statusBar.ResetTemporaryMessage()
	a.draw()

	w, h := s.Size()
	row := func(y int) string {
		var b strings.Builder
		for x := 0; x < w; x++ {
			r, _, _, _ := s.GetContent(x, y)
			b.WriteRune(r)
		}
		return b.String()
	}
	assert.Contains(t, row(0), "1:none")
	assert.Contains(t, row(0), "2:left")
	assert.Contains(t, row(2), "Key 1")
	assert.Contains(t, row(h-1), "Screen 1/2 (none)")
	assert.Contains(t, row(h-1), "[Modified]")
}

func TestAPIRequestSave(t *testing.T) {
	a, _ := newTestApp(t, "")
	a.editorAPI.RequestSave()
	a.editorAPI.RequestSave()
	assert.Len(t, a.saveRequest, 1, "requests coalesce")
	assert.Equal(t, a.setup.Len(), len(a.editorAPI.Setup().Screens))
}
