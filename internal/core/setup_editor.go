// internal/core/setup_editor.go
package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/bethropolis/mkedit/internal/core/history"
	"github.com/bethropolis/mkedit/internal/event"
	"github.com/bethropolis/mkedit/internal/logger"
	"github.com/bethropolis/mkedit/internal/macro"
)

var (
	ErrScreenNotFound = errors.New("screen is not in the setup")
	ErrScreenPresent  = errors.New("screen is already in the setup")
)

// SetupEditor owns one ScreenEditor per screen of a setup and tracks which
// screen is being edited. Screen add/remove is not undoable; each screen
// keeps its own history.
type SetupEditor struct {
	screens      []*ScreenEditor
	selected     *ScreenEditor
	eventManager *event.Manager
	mergeWindow  time.Duration
	historyOpts  []history.Option
}

// NewSetupEditor creates an editor over the screens of setup, if any.
// The first screen starts selected. opts are passed to every screen history.
func NewSetupEditor(setup *macro.Setup, opts ...history.Option) (*SetupEditor, error) {
	e := &SetupEditor{
		mergeWindow: DefaultMergeWindow,
		historyOpts: opts,
	}
	if setup != nil {
		for _, s := range setup.Screens {
			if _, err := e.AddScreen(s); err != nil {
				return nil, err
			}
		}
	}
	if len(e.screens) > 0 {
		e.selected = e.screens[0]
	}
	return e, nil
}

// SetEventManager sets the event manager on the setup editor and every screen editor.
func (e *SetupEditor) SetEventManager(mgr *event.Manager) {
	e.eventManager = mgr
	for _, s := range e.screens {
		s.SetEventManager(mgr)
	}
}

// SetMergeWindow applies d to every screen editor, current and future.
func (e *SetupEditor) SetMergeWindow(d time.Duration) {
	e.mergeWindow = d
	for _, s := range e.screens {
		s.SetMergeWindow(d)
	}
}

// AddScreen appends s and returns its editor. A swipe other than none may
// reach only one screen.
func (e *SetupEditor) AddScreen(s *macro.Screen) (*ScreenEditor, error) {
	if s == nil {
		return nil, fmt.Errorf("cannot add screen: %w", macro.ErrNilEntry)
	}
	if e.find(s) >= 0 {
		return nil, fmt.Errorf("cannot add screen: %w", ErrScreenPresent)
	}
	if s.Swipe != macro.SwipeNone && e.ContainsSwipe(s.Swipe) {
		return nil, fmt.Errorf("cannot add screen: %w %s", macro.ErrDuplicateSwipe, s.Swipe)
	}

	ed := NewScreenEditor(s, e.historyOpts...)
	ed.SetEventManager(e.eventManager)
	ed.SetMergeWindow(e.mergeWindow)
	e.screens = append(e.screens, ed)
	logger.DebugTagf("editor", "SetupEditor: added screen %d (swipe %s)", len(e.screens)-1, s.Swipe)
	e.dispatch(event.TypeScreenAdded, event.ScreenData{Screen: s})
	return ed, nil
}

// RemoveScreen drops s. When s was selected the first remaining screen is
// selected instead. It returns false if s is not in the setup.
func (e *SetupEditor) RemoveScreen(s *macro.Screen) bool {
	i := e.find(s)
	if i < 0 {
		return false
	}
	removed := e.screens[i]
	e.screens = append(e.screens[:i], e.screens[i+1:]...)

	if removed == e.selected {
		var next *ScreenEditor
		if len(e.screens) > 0 {
			next = e.screens[0]
		}
		e.setSelected(next)
	}
	e.dispatch(event.TypeScreenRemoved, event.ScreenData{Screen: s})
	return true
}

// SelectScreen makes s the edited screen; nil clears the selection.
func (e *SetupEditor) SelectScreen(s *macro.Screen) error {
	if s == nil {
		e.setSelected(nil)
		return nil
	}
	i := e.find(s)
	if i < 0 {
		return fmt.Errorf("cannot select screen: %w", ErrScreenNotFound)
	}
	e.setSelected(e.screens[i])
	return nil
}

// SelectNext selects the screen after the current one, wrapping around.
func (e *SetupEditor) SelectNext() {
	if len(e.screens) == 0 {
		return
	}
	i := 0
	if e.selected != nil {
		i = (e.find(e.selected.Screen()) + 1) % len(e.screens)
	}
	e.setSelected(e.screens[i])
}

func (e *SetupEditor) setSelected(next *ScreenEditor) {
	if next == e.selected {
		return
	}
	old := e.selected
	e.selected = next
	e.dispatch(event.TypeScreenSelected, event.ScreenSelectedData{Old: screenOf(old), New: screenOf(next)})
}

func screenOf(ed *ScreenEditor) *macro.Screen {
	if ed == nil {
		return nil
	}
	return ed.Screen()
}

// Selected returns the editor of the selected screen, or nil.
func (e *SetupEditor) Selected() *ScreenEditor { return e.selected }

// Editor returns the editor of s, or nil when s is not in the setup.
func (e *SetupEditor) Editor(s *macro.Screen) *ScreenEditor {
	if i := e.find(s); i >= 0 {
		return e.screens[i]
	}
	return nil
}

// Screens returns the screens in setup order.
func (e *SetupEditor) Screens() []*macro.Screen {
	out := make([]*macro.Screen, len(e.screens))
	for i, s := range e.screens {
		out[i] = s.Screen()
	}
	return out
}

// Len is the number of screens.
func (e *SetupEditor) Len() int { return len(e.screens) }

// ContainsSwipe reports whether some screen is reached by swipe.
func (e *SetupEditor) ContainsSwipe(swipe macro.SwipeType) bool {
	for _, s := range e.screens {
		if s.Screen().Swipe == swipe {
			return true
		}
	}
	return false
}

// Setup builds the setup being edited. Screens are shared, not copied.
func (e *SetupEditor) Setup() *macro.Setup {
	return &macro.Setup{Screens: e.Screens()}
}

func (e *SetupEditor) find(s *macro.Screen) int {
	for i, ed := range e.screens {
		if ed.Screen() == s {
			return i
		}
	}
	return -1
}

func (e *SetupEditor) dispatch(t event.Type, data interface{}) {
	if e.eventManager == nil {
		return
	}
	e.eventManager.Dispatch(t, data)
}
