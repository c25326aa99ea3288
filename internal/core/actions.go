package core

import (
	"github.com/bethropolis/mkedit/internal/core/history"
	"github.com/bethropolis/mkedit/internal/macro"
)

// The wrappers below give each history action the hooks that re-announce
// its effect after undo or redo.

type insertKeys struct {
	*history.Insert[*macro.Key]
	ed *ScreenEditor
}

func (a *insertKeys) OnUndo() {
	keys := a.Values()
	a.ed.dropFromSelection(keys)
	a.ed.fireKeysRemoved(keys)
}

func (a *insertKeys) OnRedo() {
	a.ed.fireKeysAdded(a.Values())
}

type removeKeys struct {
	*history.Remove[*macro.Key]
	ed *ScreenEditor
}

func (a *removeKeys) OnUndo() {
	a.ed.fireKeysAdded(a.Values())
}

func (a *removeKeys) OnRedo() {
	keys := a.Values()
	a.ed.dropFromSelection(keys)
	a.ed.fireKeysRemoved(keys)
}

type swapKeys struct {
	*history.Swap[*macro.Key]
	ed *ScreenEditor
}

func (a *swapKeys) OnUndo() { a.fire() }
func (a *swapKeys) OnRedo() { a.fire() }

func (a *swapKeys) fire() {
	i, j := a.Positions()
	keys := a.ed.screen.Keys
	a.ed.fireKeysSwapped(keys[i], keys[j])
}

type keyEdit struct {
	*history.PropertyEdit[*macro.Key]
	ed *ScreenEditor
}

// TryToMerge unwraps next so the property edit sees its own kind.
func (a *keyEdit) TryToMerge(next history.Action) bool {
	n, ok := next.(*keyEdit)
	if !ok || n.ed != a.ed {
		return false
	}
	return a.PropertyEdit.TryToMerge(n.PropertyEdit)
}

func (a *keyEdit) OnUndo() { a.ed.fireKeysEdited(a.Instances(), a.Property()) }
func (a *keyEdit) OnRedo() { a.ed.fireKeysEdited(a.Instances(), a.Property()) }

type screenEdit struct {
	*history.PropertyEdit[*macro.Screen]
	ed *ScreenEditor
}

func (a *screenEdit) TryToMerge(next history.Action) bool {
	n, ok := next.(*screenEdit)
	if !ok || n.ed != a.ed {
		return false
	}
	return a.PropertyEdit.TryToMerge(n.PropertyEdit)
}

func (a *screenEdit) OnUndo() { a.ed.fireScreenEdited(a.Property()) }
func (a *screenEdit) OnRedo() { a.ed.fireScreenEdited(a.Property()) }
