// internal/core/screen_editor.go
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

// DefaultMergeWindow is how close together two edits of the same property
// must be to collapse into one undo step.
const DefaultMergeWindow = 200 * time.Millisecond

var (
	ErrKeyNotFound   = errors.New("key is not on the screen")
	ErrKeyPresent    = errors.New("key is already on the screen")
	ErrDuplicateKey  = errors.New("key listed twice")
	ErrEmptyKeys     = errors.New("no keys given")
	ErrNoNeighbour   = errors.New("key cannot move further")
	ErrNilScreenEdit = errors.New("screen editor has no screen")
)

// ScreenEditor edits the keys of a single screen. Every change goes through
// an undoable action and is announced on the event bus.
type ScreenEditor struct {
	screen       *macro.Screen
	selected     []*macro.Key
	actions      *history.Manager[history.Undoable]
	eventManager *event.Manager
	mergeWindow  time.Duration
}

// NewScreenEditor creates an editor for screen. opts configure its history.
func NewScreenEditor(screen *macro.Screen, opts ...history.Option) *ScreenEditor {
	if screen == nil {
		panic(ErrNilScreenEdit)
	}
	return &ScreenEditor{
		screen:      screen,
		actions:     history.NewManager[history.Undoable](opts...),
		mergeWindow: DefaultMergeWindow,
	}
}

// SetEventManager sets the event manager for dispatching events.
func (e *ScreenEditor) SetEventManager(mgr *event.Manager) {
	e.eventManager = mgr
}

// SetMergeWindow changes the merge window for later property edits.
// A negative window turns merging off.
func (e *ScreenEditor) SetMergeWindow(d time.Duration) {
	e.mergeWindow = d
}

// Screen returns the edited screen.
func (e *ScreenEditor) Screen() *macro.Screen { return e.screen }

// Find returns the position of k in the drawing order, or -1.
func (e *ScreenEditor) Find(k *macro.Key) int {
	for i, key := range e.screen.Keys {
		if key == k {
			return i
		}
	}
	return -1
}

// Contains reports whether k is on the screen.
func (e *ScreenEditor) Contains(k *macro.Key) bool { return e.Find(k) >= 0 }

// --- Selection ---

// Selected returns the selected keys in selection order.
func (e *ScreenEditor) Selected() []*macro.Key {
	return append([]*macro.Key(nil), e.selected...)
}

// IsSelected reports whether k is selected.
func (e *ScreenEditor) IsSelected(k *macro.Key) bool {
	for _, s := range e.selected {
		if s == k {
			return true
		}
	}
	return false
}

// Select adds k to the selection. With only set, k replaces the selection.
func (e *ScreenEditor) Select(k *macro.Key, only bool) error {
	return e.SelectAll([]*macro.Key{k}, only)
}

// SelectAll selects every key in keys. With only set, the previous selection is dropped.
func (e *ScreenEditor) SelectAll(keys []*macro.Key, only bool) error {
	for _, k := range keys {
		if !e.Contains(k) {
			return fmt.Errorf("cannot select %s: %w", k.Label(), ErrKeyNotFound)
		}
	}
	if only {
		e.selected = e.selected[:0]
	}
	for _, k := range keys {
		if !e.IsSelected(k) {
			e.selected = append(e.selected, k)
		}
	}
	e.fireSelectionChanged()
	return nil
}

// Deselect removes k from the selection. It returns false if k was not selected.
func (e *ScreenEditor) Deselect(k *macro.Key) bool {
	for i, s := range e.selected {
		if s == k {
			e.selected = append(e.selected[:i], e.selected[i+1:]...)
			e.fireSelectionChanged()
			return true
		}
	}
	return false
}

// DeselectAll clears the selection.
func (e *ScreenEditor) DeselectAll() {
	if len(e.selected) == 0 {
		return
	}
	e.selected = e.selected[:0]
	e.fireSelectionChanged()
}

// dropFromSelection deselects keys that have left the screen.
func (e *ScreenEditor) dropFromSelection(keys []*macro.Key) {
	kept := e.selected[:0]
	changed := false
	for _, s := range e.selected {
		gone := false
		for _, k := range keys {
			if s == k {
				gone = true
				break
			}
		}
		if gone {
			changed = true
			continue
		}
		kept = append(kept, s)
	}
	e.selected = kept
	if changed {
		e.fireSelectionChanged()
	}
}

// --- Structural edits ---

// Add appends keys to the end of the drawing order.
func (e *ScreenEditor) Add(keys ...*macro.Key) error {
	if err := e.checkBatch(keys, false); err != nil {
		return fmt.Errorf("cannot add keys: %w", err)
	}

	ins := history.NewInsert(&e.screen.Keys)
	end := len(e.screen.Keys)
	for _, k := range keys {
		if err := ins.Add(end, k); err != nil {
			return fmt.Errorf("cannot add keys: %w", err)
		}
	}
	e.actions.Add(&insertKeys{Insert: ins, ed: e})
	logger.DebugTagf("editor", "ScreenEditor: added %d key(s)", len(keys))
	e.fireKeysAdded(keys)
	return nil
}

// Paste adds copies of keys, each with a new ID, and selects only the copies.
func (e *ScreenEditor) Paste(keys []*macro.Key) ([]*macro.Key, error) {
	clones := make([]*macro.Key, 0, len(keys))
	for _, k := range keys {
		if k == nil {
			return nil, fmt.Errorf("cannot paste keys: %w", macro.ErrNilEntry)
		}
		clones = append(clones, k.Clone())
	}
	if err := e.Add(clones...); err != nil {
		return nil, err
	}
	if err := e.SelectAll(clones, true); err != nil {
		return nil, err
	}
	return clones, nil
}

// Remove takes keys off the screen. Removed keys are deselected first.
func (e *ScreenEditor) Remove(keys ...*macro.Key) error {
	if err := e.checkBatch(keys, true); err != nil {
		return fmt.Errorf("cannot remove keys: %w", err)
	}

	rm := history.NewRemove(&e.screen.Keys)
	for _, k := range keys {
		if err := rm.Remove(e.Find(k), k); err != nil {
			return fmt.Errorf("cannot remove keys: %w", err)
		}
	}
	e.dropFromSelection(keys)
	e.actions.Add(&removeKeys{Remove: rm, ed: e})
	logger.DebugTagf("editor", "ScreenEditor: removed %d key(s)", len(keys))
	e.fireKeysRemoved(keys)
	return nil
}

// checkBatch validates a key batch. present says whether the keys must
// already be on the screen or must not be.
func (e *ScreenEditor) checkBatch(keys []*macro.Key, present bool) error {
	if len(keys) == 0 {
		return ErrEmptyKeys
	}
	seen := make(map[*macro.Key]struct{}, len(keys))
	for _, k := range keys {
		if k == nil {
			return macro.ErrNilEntry
		}
		if _, dup := seen[k]; dup {
			return fmt.Errorf("%s: %w", k.Label(), ErrDuplicateKey)
		}
		seen[k] = struct{}{}
		switch on := e.Contains(k); {
		case present && !on:
			return fmt.Errorf("%s: %w", k.Label(), ErrKeyNotFound)
		case !present && on:
			return fmt.Errorf("%s: %w", k.Label(), ErrKeyPresent)
		}
	}
	return nil
}

// MoveKeyUp swaps k with the key drawn after it.
func (e *ScreenEditor) MoveKeyUp(k *macro.Key) error {
	return e.move(k, 1)
}

// MoveKeyDown swaps k with the key drawn before it.
func (e *ScreenEditor) MoveKeyDown(k *macro.Key) error {
	return e.move(k, -1)
}

func (e *ScreenEditor) move(k *macro.Key, delta int) error {
	i := e.Find(k)
	if i < 0 {
		return fmt.Errorf("cannot move %s: %w", k.Label(), ErrKeyNotFound)
	}
	j := i + delta
	if j < 0 || j >= len(e.screen.Keys) {
		return fmt.Errorf("cannot move %s: %w", k.Label(), ErrNoNeighbour)
	}
	sw, err := history.NewSwap(&e.screen.Keys, i, j)
	if err != nil {
		return fmt.Errorf("cannot move %s: %w", k.Label(), err)
	}
	e.actions.Add(&swapKeys{Swap: sw, ed: e})
	e.fireKeysSwapped(e.screen.Keys[i], e.screen.Keys[j])
	return nil
}

// --- Property edits ---

// EditKeyProperty sets one property to the same value on every key.
func (e *ScreenEditor) EditKeyProperty(keys []*macro.Key, property string, value interface{}) error {
	edits := make([]history.Edit[*macro.Key], len(keys))
	for i, k := range keys {
		edits[i] = history.Edit[*macro.Key]{Instance: k, Value: value}
	}
	return e.EditKeyProperties(property, edits)
}

// EditKeyProperties sets one property to a per-key value.
// Repeated edits of the same property on the same keys merge into one undo step
// when they come within the merge window of each other.
func (e *ScreenEditor) EditKeyProperties(property string, edits []history.Edit[*macro.Key]) error {
	for _, ed := range edits {
		if ed.Instance != nil && !e.Contains(ed.Instance) {
			return fmt.Errorf("cannot edit %s of %s: %w", property, ed.Instance.Label(), ErrKeyNotFound)
		}
	}
	pe, err := history.NewPropertyEdit(keyProperties, property, edits, e.mergeWindow)
	if err != nil {
		return fmt.Errorf("cannot edit key property: %w", err)
	}
	e.actions.Add(&keyEdit{PropertyEdit: pe, ed: e})
	e.fireKeysEdited(pe.Instances(), pe.Property())
	return nil
}

// EditScreenProperty sets a screen level property, undoably.
func (e *ScreenEditor) EditScreenProperty(property string, value interface{}) error {
	pe, err := history.NewPropertyEdit(screenProperties, property,
		[]history.Edit[*macro.Screen]{{Instance: e.screen, Value: value}}, e.mergeWindow)
	if err != nil {
		return fmt.Errorf("cannot edit screen property: %w", err)
	}
	e.actions.Add(&screenEdit{PropertyEdit: pe, ed: e})
	e.fireScreenEdited(pe.Property())
	return nil
}

// --- History ---

// Undo reverts the last change. It returns false when there is nothing to undo.
func (e *ScreenEditor) Undo() bool {
	a, ok := e.actions.Undo()
	if !ok {
		return false
	}
	a.OnUndo()
	return true
}

// Redo re-applies the last undone change. It returns false when there is nothing to redo.
func (e *ScreenEditor) Redo() bool {
	a, ok := e.actions.Redo()
	if !ok {
		return false
	}
	a.OnRedo()
	return true
}

func (e *ScreenEditor) CanUndo() bool { return e.actions.CanUndo() }
func (e *ScreenEditor) CanRedo() bool { return e.actions.CanRedo() }

// ClearHistory forgets every recorded change.
func (e *ScreenEditor) ClearHistory() { e.actions.Clear() }

// --- Events ---

func (e *ScreenEditor) dispatch(t event.Type, data interface{}) {
	if e.eventManager == nil {
		return
	}
	e.eventManager.Dispatch(t, data)
}

func (e *ScreenEditor) fireKeysAdded(keys []*macro.Key) {
	e.dispatch(event.TypeKeysAdded, event.KeysData{Screen: e.screen, Keys: append([]*macro.Key(nil), keys...)})
}

func (e *ScreenEditor) fireKeysRemoved(keys []*macro.Key) {
	e.dispatch(event.TypeKeysRemoved, event.KeysData{Screen: e.screen, Keys: append([]*macro.Key(nil), keys...)})
}

func (e *ScreenEditor) fireKeysEdited(keys []*macro.Key, property string) {
	e.dispatch(event.TypeKeysEdited, event.KeysEditedData{Screen: e.screen, Keys: keys, Property: property})
}

func (e *ScreenEditor) fireKeysSwapped(a, b *macro.Key) {
	e.dispatch(event.TypeKeysSwapped, event.KeysSwappedData{Screen: e.screen, A: a, B: b})
}

func (e *ScreenEditor) fireScreenEdited(property string) {
	e.dispatch(event.TypeScreenEdited, event.ScreenEditedData{Screen: e.screen, Property: property})
}

func (e *ScreenEditor) fireSelectionChanged() {
	e.dispatch(event.TypeSelectionChanged, event.SelectionChangedData{Screen: e.screen, Selected: e.Selected()})
}
