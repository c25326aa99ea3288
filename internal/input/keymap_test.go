package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func TestProcessEvent(t *testing.T) {
	p := NewInputProcessor()
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want Action
	}{
		{"arrow", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), ActionMoveUp},
		{"shift arrow", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModShift), ActionNudgeDown},
		{"ctrl s", tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl), ActionSave},
		{"ctrl r", tcell.NewEventKey(tcell.KeyCtrlR, 0, tcell.ModCtrl), ActionRedo},
		{"undo", tcell.NewEventKey(tcell.KeyRune, 'u', tcell.ModNone), ActionUndo},
		{"raise", tcell.NewEventKey(tcell.KeyRune, 'K', tcell.ModNone), ActionMoveKeyUp},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), ActionToggleSelect},
		{"command", tcell.NewEventKey(tcell.KeyRune, ':', tcell.ModNone), ActionCommandMode},
		{"unbound rune", tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), ActionUnknown},
		{"unbound key", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), ActionUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.ProcessEvent(tt.ev).Action)
		})
	}
}

func TestProcessPromptEvent(t *testing.T) {
	p := NewInputProcessor()
	ev := p.ProcessPromptEvent(tcell.NewEventKey(tcell.KeyRune, 'u', tcell.ModNone))
	assert.Equal(t, ActionEvent{Action: ActionInsertRune, Rune: 'u'}, ev, "bound runes are text in a prompt")
	assert.Equal(t, ActionConfirm, p.ProcessPromptEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)).Action)
	assert.Equal(t, ActionCancel, p.ProcessPromptEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)).Action)
	assert.Equal(t, ActionDeleteCharBackward, p.ProcessPromptEvent(tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone)).Action)
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "undo", ActionUndo.String())
	assert.Equal(t, "unknown", Action(-1).String())
}
