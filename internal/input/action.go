// internal/input/action.go
package input

// Action represents a command performed by the layout editor.
type Action int

const (
	// --- Meta Actions ---
	ActionUnknown Action = iota
	ActionQuit
	ActionForceQuit // Quit without checking modified status
	ActionSave

	// --- Cursor ---
	ActionMoveUp
	ActionMoveDown
	ActionNextScreen
	ActionPrevScreen

	// --- Selection ---
	ActionToggleSelect
	ActionSelectAll
	ActionDeselectAll

	// --- Structure ---
	ActionAddKey
	ActionRemoveKeys
	ActionMoveKeyUp   // Draw later, i.e. on top
	ActionMoveKeyDown // Draw earlier
	ActionAddScreen
	ActionRemoveScreen

	// --- Properties ---
	ActionEditText     // Opens a prompt
	ActionEditKeySeq   // Opens a prompt
	ActionNextFill     // Cycle fill colour forward
	ActionPrevFill     // Cycle fill colour backward
	ActionCycleShape
	ActionCycleKeyType
	ActionNudgeLeft
	ActionNudgeRight
	ActionNudgeUp
	ActionNudgeDown
	ActionNextMask

	// --- History / Clipboard ---
	ActionUndo
	ActionRedo
	ActionCopy
	ActionPaste

	// --- Commands ---
	ActionCommandMode // Opens the ':' prompt

	// --- Prompt ---
	ActionInsertRune
	ActionDeleteCharBackward
	ActionConfirm
	ActionCancel
)

var actionNames = map[Action]string{
	ActionQuit:               "quit",
	ActionForceQuit:          "force-quit",
	ActionSave:               "save",
	ActionMoveUp:             "move-up",
	ActionMoveDown:           "move-down",
	ActionNextScreen:         "next-screen",
	ActionPrevScreen:         "prev-screen",
	ActionToggleSelect:       "toggle-select",
	ActionSelectAll:          "select-all",
	ActionDeselectAll:        "deselect-all",
	ActionAddKey:             "add-key",
	ActionRemoveKeys:         "remove-keys",
	ActionMoveKeyUp:          "raise-key",
	ActionMoveKeyDown:        "lower-key",
	ActionAddScreen:          "add-screen",
	ActionRemoveScreen:       "remove-screen",
	ActionEditText:           "edit-text",
	ActionEditKeySeq:         "edit-keyseq",
	ActionNextFill:           "next-fill",
	ActionPrevFill:           "prev-fill",
	ActionCycleShape:         "cycle-shape",
	ActionCycleKeyType:       "cycle-type",
	ActionNudgeLeft:          "nudge-left",
	ActionNudgeRight:         "nudge-right",
	ActionNudgeUp:            "nudge-up",
	ActionNudgeDown:          "nudge-down",
	ActionNextMask:           "next-mask",
	ActionUndo:               "undo",
	ActionRedo:               "redo",
	ActionCopy:               "copy",
	ActionPaste:              "paste",
	ActionCommandMode:        "command-mode",
	ActionInsertRune:         "insert-rune",
	ActionDeleteCharBackward: "backspace",
	ActionConfirm:            "confirm",
	ActionCancel:             "cancel",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// ActionEvent is a decoded key press.
type ActionEvent struct {
	Action Action
	Rune   rune // Used for ActionInsertRune
}
