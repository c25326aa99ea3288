// internal/event/event.go
package event

import (
	"github.com/bethropolis/mkedit/internal/macro"
	"github.com/gdamore/tcell/v2"
)

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Screen editing
	TypeKeysAdded        // Keys were inserted into a screen (also after undo of a removal)
	TypeKeysRemoved      // Keys were removed from a screen (also after undo of an insertion)
	TypeKeysEdited       // A property changed on a set of keys
	TypeKeysSwapped      // Two keys exchanged positions in the drawing order
	TypeScreenEdited     // A screen-level property changed
	TypeSelectionChanged // The set of selected keys changed

	// Setup editing
	TypeScreenAdded
	TypeScreenRemoved
	TypeScreenSelected

	// Masks
	TypeMaskAdded
	TypeMaskRemoved
	TypeMaskEdited
	TypeMaskSelected

	// Files
	TypeLayoutLoaded
	TypeLayoutSaved

	// Input
	TypeKeyPressed // Raw key press forwarded from the terminal

	// Application lifecycle
	TypeAppReady
	TypeAppQuit
)

var typeNames = map[Type]string{
	TypeKeysAdded:        "KeysAdded",
	TypeKeysRemoved:      "KeysRemoved",
	TypeKeysEdited:       "KeysEdited",
	TypeKeysSwapped:      "KeysSwapped",
	TypeScreenEdited:     "ScreenEdited",
	TypeSelectionChanged: "SelectionChanged",
	TypeScreenAdded:      "ScreenAdded",
	TypeScreenRemoved:    "ScreenRemoved",
	TypeScreenSelected:   "ScreenSelected",
	TypeMaskAdded:        "MaskAdded",
	TypeMaskRemoved:      "MaskRemoved",
	TypeMaskEdited:       "MaskEdited",
	TypeMaskSelected:     "MaskSelected",
	TypeLayoutLoaded:     "LayoutLoaded",
	TypeLayoutSaved:      "LayoutSaved",
	TypeKeyPressed:       "KeyPressed",
	TypeAppReady:         "AppReady",
	TypeAppQuit:          "AppQuit",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// KeysData carries the keys added to or removed from a screen.
// Keys is a copy; handlers may keep it.
type KeysData struct {
	Screen *macro.Screen
	Keys   []*macro.Key
}

// KeysEditedData carries the keys whose property changed.
type KeysEditedData struct {
	Screen   *macro.Screen
	Keys     []*macro.Key
	Property string
}

// KeysSwappedData carries the two keys that exchanged positions.
type KeysSwappedData struct {
	Screen *macro.Screen
	A, B   *macro.Key
}

// ScreenEditedData names the screen property that changed.
type ScreenEditedData struct {
	Screen   *macro.Screen
	Property string
}

// SelectionChangedData carries the current selection.
type SelectionChangedData struct {
	Screen   *macro.Screen
	Selected []*macro.Key
}

// ScreenData identifies a screen added to or removed from a setup.
type ScreenData struct {
	Screen *macro.Screen
}

// ScreenSelectedData carries the previous and the new selected screen (either may be nil).
type ScreenSelectedData struct {
	Old, New *macro.Screen
}

// MaskData names a mask; Property and Value are set for edits only.
type MaskData struct {
	Name     string
	Property string
	Value    interface{}
}

// LayoutFileData carries the path of a loaded or saved layout.
type LayoutFileData struct {
	FilePath string
}

// KeyPressedData contains the raw tcell key event.
type KeyPressedData struct {
	KeyEvent *tcell.EventKey
}

// AppQuitData could contain exit code or reason later.
type AppQuitData struct{}

// AppReadyData could contain initial config or state later.
type AppReadyData struct{}
