// internal/app/actions.go
package app

import (
	"fmt"

	"github.com/bethropolis/mkedit/internal/core"
	"github.com/bethropolis/mkedit/internal/core/history"
	"github.com/bethropolis/mkedit/internal/input"
	"github.com/bethropolis/mkedit/internal/logger"
	"github.com/bethropolis/mkedit/internal/macro"
	"github.com/bethropolis/mkedit/internal/mask"
)

// nudgeStep is how far one nudge moves a key, in screen-relative units.
const nudgeStep = 0.01

var newKeyArea = macro.Rect{X: 0.05, Y: 0.05, W: 0.2, H: 0.1}

// fillPalette is cycled by the fill actions.
var fillPalette = []macro.Color{
	macro.Gray,
	macro.RGB(0xE5, 0x39, 0x35),
	macro.RGB(0xFB, 0x8C, 0x00),
	macro.RGB(0xFD, 0xD8, 0x35),
	macro.RGB(0x43, 0xA0, 0x47),
	macro.RGB(0x1E, 0x88, 0xE5),
	macro.RGB(0x8E, 0x24, 0xAA),
	macro.White,
	macro.Black,
}

// handleAction runs a normal mode action and reports whether a redraw is needed.
func (a *App) handleAction(ae input.ActionEvent) bool {
	if ae.Action != input.ActionQuit {
		a.quitArmed = false
	}
	logger.DebugTagf("input", "App: action %s", ae.Action)

	var err error
	switch ae.Action {
	case input.ActionUnknown:
		return false
	case input.ActionQuit:
		a.requestQuit()
		return true
	case input.ActionForceQuit:
		a.signalQuit()
		return false
	case input.ActionSave:
		a.saveOrPrompt()

	case input.ActionMoveUp:
		a.moveCursor(-1)
	case input.ActionMoveDown:
		a.moveCursor(1)
	case input.ActionNextScreen:
		a.setup.SelectNext()
	case input.ActionPrevScreen:
		a.selectPrevScreen()

	case input.ActionToggleSelect:
		a.toggleSelect()
	case input.ActionSelectAll:
		if ed := a.setup.Selected(); ed != nil {
			err = ed.SelectAll(ed.Screen().Keys, true)
		}
	case input.ActionDeselectAll:
		if ed := a.setup.Selected(); ed != nil {
			ed.DeselectAll()
		}

	case input.ActionAddKey:
		err = a.addKey()
	case input.ActionRemoveKeys:
		err = a.removeKeys()
	case input.ActionMoveKeyUp:
		err = a.moveKey(1)
	case input.ActionMoveKeyDown:
		err = a.moveKey(-1)
	case input.ActionAddScreen:
		err = a.addScreen()
	case input.ActionRemoveScreen:
		a.removeScreen()

	case input.ActionEditText:
		a.editText()
	case input.ActionEditKeySeq:
		a.editKeySeq()
	case input.ActionNextFill:
		err = a.cycleFill(1)
	case input.ActionPrevFill:
		err = a.cycleFill(-1)
	case input.ActionCycleShape:
		err = a.editEach(core.KeyPropShape, func(k *macro.Key) interface{} {
			return (k.Shape + 1) % (macro.ShapeEllipse + 1)
		})
	case input.ActionCycleKeyType:
		err = a.editEach(core.KeyPropType, func(k *macro.Key) interface{} {
			return (k.Type + 1) % (macro.KeyOnOff + 1)
		})
	case input.ActionNudgeLeft:
		err = a.nudge(-nudgeStep, 0)
	case input.ActionNudgeRight:
		err = a.nudge(nudgeStep, 0)
	case input.ActionNudgeUp:
		err = a.nudge(0, -nudgeStep)
	case input.ActionNudgeDown:
		err = a.nudge(0, nudgeStep)
	case input.ActionNextMask:
		err = a.nextMask()

	case input.ActionUndo:
		if ed := a.setup.Selected(); ed == nil || !ed.Undo() {
			a.statusBar.SetTemporaryMessage("Nothing to undo")
		}
	case input.ActionRedo:
		if ed := a.setup.Selected(); ed == nil || !ed.Redo() {
			a.statusBar.SetTemporaryMessage("Nothing to redo")
		}
	case input.ActionCopy:
		err = a.copyKeys()
	case input.ActionPaste:
		err = a.pasteKeys()
	case input.ActionCommandMode:
		a.openCommandPrompt()

	default:
		return false
	}

	if err != nil {
		logger.Debugf("App: %s failed: %v", ae.Action, err)
		a.statusBar.SetErrorMessage("%v", err)
	}
	a.clampCursor()
	return true
}

func (a *App) requestQuit() {
	if a.IsModified() && !a.quitArmed {
		a.quitArmed = true
		a.statusBar.SetErrorMessage("Unsaved changes! Press q again or Ctrl+Q to quit, Ctrl+S to save")
		return
	}
	a.signalQuit()
}

func (a *App) saveOrPrompt() {
	if path := a.FilePath(); path != "" {
		a.save(path)
		return
	}
	a.openPrompt("Save as: ", "", func(path string) error {
		if path == "" {
			return fmt.Errorf("no file name given")
		}
		if !a.save(path) {
			return errSaveReported
		}
		return nil
	})
}

// --- Cursor and selection ---

func (a *App) keys() []*macro.Key {
	if ed := a.setup.Selected(); ed != nil {
		return ed.Screen().Keys
	}
	return nil
}

func (a *App) cursorKey() *macro.Key {
	keys := a.keys()
	if a.cursor >= 0 && a.cursor < len(keys) {
		return keys[a.cursor]
	}
	return nil
}

func (a *App) moveCursor(delta int) {
	a.cursor += delta
	a.clampCursor()
}

func (a *App) clampCursor() {
	n := len(a.keys())
	if a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

// targets are the keys an edit applies to: the selection, or else the key
// under the cursor.
func (a *App) targets() []*macro.Key {
	ed := a.setup.Selected()
	if ed == nil {
		return nil
	}
	if sel := ed.Selected(); len(sel) > 0 {
		return sel
	}
	if k := a.cursorKey(); k != nil {
		return []*macro.Key{k}
	}
	return nil
}

func (a *App) toggleSelect() {
	ed, k := a.setup.Selected(), a.cursorKey()
	if ed == nil || k == nil {
		return
	}
	if !ed.Deselect(k) {
		_ = ed.Select(k, false)
	}
	a.moveCursor(1)
}

func (a *App) selectPrevScreen() {
	screens := a.setup.Screens()
	if len(screens) == 0 {
		return
	}
	i := 0
	if ed := a.setup.Selected(); ed != nil {
		for j, s := range screens {
			if s == ed.Screen() {
				i = j
			}
		}
	}
	_ = a.setup.SelectScreen(screens[(i-1+len(screens))%len(screens)])
}

// --- Structure ---

func (a *App) selectedEditor() (*core.ScreenEditor, error) {
	ed := a.setup.Selected()
	if ed == nil {
		return nil, fmt.Errorf("no screen selected")
	}
	return ed, nil
}

func (a *App) addKey() error {
	ed, err := a.selectedEditor()
	if err != nil {
		return err
	}
	k := macro.NewKey(fmt.Sprintf("Key %d", len(ed.Screen().Keys)+1), newKeyArea)
	if err := ed.Add(k); err != nil {
		return err
	}
	a.cursor = ed.Find(k)
	return ed.Select(k, true)
}

func (a *App) removeKeys() error {
	ed, err := a.selectedEditor()
	if err != nil {
		return err
	}
	keys := a.targets()
	if len(keys) == 0 {
		return nil
	}
	if err := ed.Remove(keys...); err != nil {
		return err
	}
	a.statusBar.SetTemporaryMessage("Removed %d key(s)", len(keys))
	return nil
}

func (a *App) moveKey(delta int) error {
	ed, err := a.selectedEditor()
	if err != nil {
		return err
	}
	k := a.cursorKey()
	if k == nil {
		return nil
	}
	if delta > 0 {
		err = ed.MoveKeyUp(k)
	} else {
		err = ed.MoveKeyDown(k)
	}
	if err != nil {
		return err
	}
	a.cursor = ed.Find(k)
	return nil
}

// addScreen adds a screen reached by the first free swipe, or by none.
func (a *App) addScreen() error {
	swipe := macro.SwipeNone
	for _, s := range []macro.SwipeType{macro.SwipeLeft, macro.SwipeRight, macro.SwipeUp, macro.SwipeDown} {
		if !a.setup.ContainsSwipe(s) {
			swipe = s
			break
		}
	}
	screen := macro.NewScreen(swipe)
	if _, err := a.setup.AddScreen(screen); err != nil {
		return err
	}
	return a.setup.SelectScreen(screen)
}

func (a *App) removeScreen() {
	ed := a.setup.Selected()
	if ed == nil {
		return
	}
	if a.setup.Len() == 1 {
		a.statusBar.SetErrorMessage("Cannot remove the last screen")
		return
	}
	a.setup.RemoveScreen(ed.Screen())
}

// --- Properties ---

func (a *App) editText() {
	keys := a.targets()
	if len(keys) == 0 {
		return
	}
	a.openPrompt("Text: ", keys[0].Text, func(text string) error {
		ed, err := a.selectedEditor()
		if err != nil {
			return err
		}
		return ed.EditKeyProperty(keys, core.KeyPropText, text)
	})
}

func (a *App) editKeySeq() {
	keys := a.targets()
	if len(keys) == 0 {
		return
	}
	a.openPrompt("Keys: ", keys[0].KeySeq.String(), func(text string) error {
		var seq macro.KeySeq
		if err := seq.UnmarshalText([]byte(text)); err != nil {
			return err
		}
		ed, err := a.selectedEditor()
		if err != nil {
			return err
		}
		return ed.EditKeyProperty(keys, core.KeyPropKeySeq, seq)
	})
}

// editEach sets property on every target to the value computed from that key.
func (a *App) editEach(property string, next func(*macro.Key) interface{}) error {
	ed, err := a.selectedEditor()
	if err != nil {
		return err
	}
	keys := a.targets()
	if len(keys) == 0 {
		return nil
	}
	edits := make([]history.Edit[*macro.Key], len(keys))
	for i, k := range keys {
		edits[i] = history.Edit[*macro.Key]{Instance: k, Value: next(k)}
	}
	return ed.EditKeyProperties(property, edits)
}

func (a *App) cycleFill(step int) error {
	n := len(fillPalette)
	return a.editEach(core.KeyPropColorFill, func(k *macro.Key) interface{} {
		i := -1
		for j, c := range fillPalette {
			if c == k.ColorFill {
				i = j
				break
			}
		}
		if i < 0 && step < 0 {
			i = 0
		}
		return fillPalette[((i+step)%n+n)%n]
	})
}

func (a *App) nudge(dx, dy float64) error {
	return a.editEach(core.KeyPropArea, func(k *macro.Key) interface{} {
		r := k.Area
		r.X += dx
		r.Y += dy
		return r
	})
}

// nextMask cycles the preview mask through all masks and then none.
func (a *App) nextMask() error {
	masks := a.masks.Masks()
	if len(masks) == 0 {
		return nil
	}
	var next *mask.Mask
	cur := a.masks.Selected()
	if cur == nil {
		next = masks[0]
	} else {
		for i, m := range masks {
			if m == cur && i+1 < len(masks) {
				next = masks[i+1]
			}
		}
	}
	return a.masks.Select(next)
}

// --- Clipboard ---

func (a *App) copyKeys() error {
	keys := a.targets()
	if len(keys) == 0 {
		return nil
	}
	if _, err := a.clipboard.Copy(keys); err != nil {
		return err
	}
	a.statusBar.SetTemporaryMessage("Copied %d key(s)", len(keys))
	return nil
}

func (a *App) pasteKeys() error {
	ed, err := a.selectedEditor()
	if err != nil {
		return err
	}
	keys, err := a.clipboard.Paste()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		a.statusBar.SetTemporaryMessage("Clipboard is empty")
		return nil
	}
	pasted, err := ed.Paste(keys)
	if err != nil {
		return err
	}
	a.cursor = ed.Find(pasted[len(pasted)-1])
	a.statusBar.SetTemporaryMessage("Pasted %d key(s)", len(pasted))
	return nil
}
