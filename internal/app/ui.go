package app

import (
	"github.com/bethropolis/mkedit/internal/logger"
	"github.com/bethropolis/mkedit/internal/statusbar"
	"github.com/bethropolis/mkedit/internal/tui"
)

// draw clears the screen and redraws all components.
func (a *App) draw() {
	a.updateStatusBarContent()

	screen := a.tuiManager.GetScreen()
	width, height := a.tuiManager.Size()
	view := a.view(height)
	logger.DebugTagf("draw", "draw: Screen Size (%d x %d), keys %d, cursor %d, offset %d",
		width, height, len(view.Keys), view.Cursor, view.Offset)

	a.tuiManager.Clear()
	tui.DrawLayout(a.tuiManager, view, a.activeTheme)
	a.statusBar.Draw(screen, width, height, a.activeTheme)
	a.tuiManager.Show()
}

// view builds what DrawLayout renders and scrolls the key list to the cursor.
func (a *App) view(height int) tui.View {
	v := tui.View{
		Screens: a.setup.Screens(),
		Active:  -1,
	}
	ed := a.setup.Selected()
	if ed == nil {
		return v
	}
	for i, s := range v.Screens {
		if s == ed.Screen() {
			v.Active = i
		}
	}
	a.clampCursor()
	a.offset = tui.ScrollOffset(a.offset, a.cursor, tui.ListHeight(height))
	v.Keys = ed.Screen().Keys
	v.Cursor = a.cursor
	v.Offset = a.offset
	v.IsSelected = ed.IsSelected
	return v
}

// updateStatusBarContent pushes current editor state to the status bar component.
func (a *App) updateStatusBarContent() {
	info := statusbar.Info{
		FilePath:    a.FilePath(),
		Modified:    a.IsModified(),
		ScreenIndex: -1,
		ScreenCount: a.setup.Len(),
	}
	if ed := a.setup.Selected(); ed != nil {
		for i, s := range a.setup.Screens() {
			if s == ed.Screen() {
				info.ScreenIndex = i
			}
		}
		info.Swipe = ed.Screen().Swipe.String()
		info.KeyCount = len(ed.Screen().Keys)
		info.Selected = len(ed.Selected())
		info.CanUndo = ed.CanUndo()
		info.CanRedo = ed.CanRedo()
	}
	if m := a.masks.Selected(); m != nil {
		info.Mask = m.Name
	}
	a.statusBar.SetInfo(info)
}
