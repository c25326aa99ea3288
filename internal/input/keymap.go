// internal/input/keymap.go
package input

import (
	"github.com/gdamore/tcell/v2"
)

type Keymap map[tcell.Key]Action        // Special keys (Enter, Arrows, etc.)
type RuneKeymap map[rune]Action         // Plain rune bindings
type ModKeymap map[tcell.ModMask]Keymap // Keys combined with modifiers

// InputProcessor translates tcell events into ActionEvents.
// In prompt mode every printable rune is text.
type InputProcessor struct {
	keymap     Keymap
	runeKeymap RuneKeymap
	modKeymap  ModKeymap
}

// NewInputProcessor creates a processor with default keybindings.
func NewInputProcessor() *InputProcessor {
	p := &InputProcessor{
		keymap:     make(Keymap),
		runeKeymap: make(RuneKeymap),
		modKeymap:  make(ModKeymap),
	}
	p.loadDefaultBindings()
	return p
}

func (p *InputProcessor) loadDefaultBindings() {
	p.keymap[tcell.KeyUp] = ActionMoveUp
	p.keymap[tcell.KeyDown] = ActionMoveDown
	p.keymap[tcell.KeyTab] = ActionNextScreen
	p.keymap[tcell.KeyBacktab] = ActionPrevScreen
	p.keymap[tcell.KeyDelete] = ActionRemoveKeys
	p.keymap[tcell.KeyEscape] = ActionDeselectAll
	p.keymap[tcell.KeyLeft] = ActionNudgeLeft
	p.keymap[tcell.KeyRight] = ActionNudgeRight
	p.keymap[tcell.KeyCtrlS] = ActionSave
	p.keymap[tcell.KeyCtrlR] = ActionRedo
	p.keymap[tcell.KeyCtrlQ] = ActionForceQuit
	p.keymap[tcell.KeyCtrlA] = ActionSelectAll

	shiftMap := make(Keymap)
	shiftMap[tcell.KeyUp] = ActionNudgeUp
	shiftMap[tcell.KeyDown] = ActionNudgeDown
	p.modKeymap[tcell.ModShift] = shiftMap

	p.runeKeymap['q'] = ActionQuit
	p.runeKeymap['k'] = ActionMoveUp
	p.runeKeymap['j'] = ActionMoveDown
	p.runeKeymap[' '] = ActionToggleSelect
	p.runeKeymap['a'] = ActionAddKey
	p.runeKeymap['d'] = ActionRemoveKeys
	p.runeKeymap['K'] = ActionMoveKeyUp
	p.runeKeymap['J'] = ActionMoveKeyDown
	p.runeKeymap['n'] = ActionAddScreen
	p.runeKeymap['X'] = ActionRemoveScreen
	p.runeKeymap['e'] = ActionEditText
	p.runeKeymap['s'] = ActionEditKeySeq
	p.runeKeymap['c'] = ActionNextFill
	p.runeKeymap['C'] = ActionPrevFill
	p.runeKeymap['o'] = ActionCycleShape
	p.runeKeymap['t'] = ActionCycleKeyType
	p.runeKeymap['m'] = ActionNextMask
	p.runeKeymap['u'] = ActionUndo
	p.runeKeymap['y'] = ActionCopy
	p.runeKeymap['p'] = ActionPaste
	p.runeKeymap[':'] = ActionCommandMode
}

// ProcessEvent maps a key press in normal mode.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	key := ev.Key()
	mod := ev.Modifiers()

	if modKeyMap, ok := p.modKeymap[mod]; ok {
		if action, ok := modKeyMap[key]; ok {
			return ActionEvent{Action: action}
		}
	}
	// Ctrl+letter keys already carry the modifier in the key itself
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		mod &^= tcell.ModCtrl
	}

	if key == tcell.KeyRune {
		if action, ok := p.runeKeymap[ev.Rune()]; ok {
			return ActionEvent{Action: action, Rune: ev.Rune()}
		}
		return ActionEvent{Action: ActionUnknown, Rune: ev.Rune()}
	}

	if mod == tcell.ModNone || mod == tcell.ModShift {
		if action, ok := p.keymap[key]; ok {
			return ActionEvent{Action: action}
		}
	}
	return ActionEvent{Action: ActionUnknown}
}

// ProcessPromptEvent maps a key press while a prompt is open.
func (p *InputProcessor) ProcessPromptEvent(ev *tcell.EventKey) ActionEvent {
	switch ev.Key() {
	case tcell.KeyEnter:
		return ActionEvent{Action: ActionConfirm}
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionEvent{Action: ActionCancel}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return ActionEvent{Action: ActionDeleteCharBackward}
	case tcell.KeyRune:
		return ActionEvent{Action: ActionInsertRune, Rune: ev.Rune()}
	}
	return ActionEvent{Action: ActionUnknown}
}
