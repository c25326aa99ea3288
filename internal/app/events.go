package app

import (
	"github.com/bethropolis/mkedit/internal/event"
	"github.com/bethropolis/mkedit/internal/logger"
)

// subscribeEvents wires the app to the editors' events.
func (a *App) subscribeEvents() {
	for _, t := range []event.Type{
		event.TypeKeysAdded,
		event.TypeKeysRemoved,
		event.TypeKeysEdited,
		event.TypeKeysSwapped,
		event.TypeScreenEdited,
		event.TypeScreenAdded,
		event.TypeScreenRemoved,
	} {
		a.eventManager.Subscribe(t, a.handleLayoutChanged)
	}
	a.eventManager.Subscribe(event.TypeScreenSelected, a.handleScreenSelected)
	a.eventManager.Subscribe(event.TypeMaskSelected, a.handleMaskSelected)
}

// handleLayoutChanged marks the layout modified. Undo and redo count as changes.
func (a *App) handleLayoutChanged(e event.Event) bool {
	if !a.modified.Swap(true) {
		logger.DebugTagf("event", "App: layout modified by %s", e.Type)
	}
	return false // Not consumed
}

// handleScreenSelected resets the key cursor for the new screen.
func (a *App) handleScreenSelected(e event.Event) bool {
	a.cursor, a.offset = 0, 0
	return false
}

func (a *App) handleMaskSelected(e event.Event) bool {
	if data, ok := e.Data.(event.MaskData); ok {
		if data.Name == "" {
			a.statusBar.SetTemporaryMessage("Mask: none")
		} else {
			a.statusBar.SetTemporaryMessage("Mask: %s", data.Name)
		}
	}
	return false
}
