// internal/app/prompt.go
package app

import (
	"errors"

	"github.com/bethropolis/mkedit/internal/input"
)

// errSaveReported means the callback already put its failure on the status bar.
var errSaveReported = errors.New("save failed")

// prompt is a one-line input on the status bar.
type prompt struct {
	label     string
	input     []rune
	onConfirm func(string) error
}

func (a *App) openPrompt(label, initial string, onConfirm func(string) error) {
	a.prompt = &prompt{label: label, input: []rune(initial), onConfirm: onConfirm}
	a.statusBar.SetPrompt(label, initial)
}

func (a *App) closePrompt() {
	a.prompt = nil
	a.statusBar.ClearPrompt()
}

// handlePromptAction edits or finishes the open prompt.
func (a *App) handlePromptAction(ae input.ActionEvent) bool {
	p := a.prompt
	switch ae.Action {
	case input.ActionInsertRune:
		p.input = append(p.input, ae.Rune)
	case input.ActionDeleteCharBackward:
		if len(p.input) > 0 {
			p.input = p.input[:len(p.input)-1]
		}
	case input.ActionCancel:
		a.closePrompt()
		return true
	case input.ActionConfirm:
		a.closePrompt()
		err := p.onConfirm(string(p.input))
		if err != nil && !errors.Is(err, errSaveReported) {
			a.statusBar.SetErrorMessage("%v", err)
		}
		a.clampCursor()
		return true
	default:
		return false
	}
	a.statusBar.SetPrompt(p.label, string(p.input))
	return true
}
