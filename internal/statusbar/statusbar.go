// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"sync"
	"time"

	"github.com/bethropolis/mkedit/internal/theme"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Config defines the behavior of the status bar.
type Config struct {
	MessageTimeout time.Duration
}

// DefaultConfig provides sensible defaults.
func DefaultConfig() Config {
	return Config{
		MessageTimeout: 4 * time.Second,
	}
}

// Info is the editor state summarised on the status line.
type Info struct {
	FilePath    string
	Modified    bool
	ScreenIndex int // 0-based; -1 when no screen is selected
	ScreenCount int
	Swipe       string
	KeyCount    int
	Selected    int
	Mask        string
	CanUndo     bool
	CanRedo     bool
}

// StatusBar is the bottom line of the screen: either the editor summary,
// a temporary message, or an input prompt.
type StatusBar struct {
	config Config
	mu     sync.RWMutex

	info Info

	tempMessage     string
	tempMessageTime time.Time
	tempIsError     bool

	prompt      string
	promptInput string
	prompting   bool

	now func() time.Time
}

// New creates a new StatusBar with the given configuration.
func New(config Config) *StatusBar {
	return &StatusBar{
		config: config,
		info:   Info{ScreenIndex: -1},
		now:    time.Now,
	}
}

// SetInfo replaces the editor summary.
func (sb *StatusBar) SetInfo(info Info) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.info = info
}

// SetTemporaryMessage displays a message for the configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.setMessage(false, format, args...)
}

// SetErrorMessage is SetTemporaryMessage with the error style.
func (sb *StatusBar) SetErrorMessage(format string, args ...interface{}) {
	sb.setMessage(true, format, args...)
}

func (sb *StatusBar) setMessage(isError bool, format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = sb.now()
	sb.tempIsError = isError
}

// ResetTemporaryMessage clears any temporary message being displayed
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

// SetPrompt shows label followed by the input typed so far. It wins over messages.
func (sb *StatusBar) SetPrompt(label, input string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.prompt = label
	sb.promptInput = input
	sb.prompting = true
}

// ClearPrompt goes back to the summary.
func (sb *StatusBar) ClearPrompt() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.prompting = false
	sb.prompt, sb.promptInput = "", ""
}

// summary builds the default status line. Caller holds the lock.
func (sb *StatusBar) summary() string {
	in := sb.info
	path := in.FilePath
	if path == "" {
		path = "[No Name]"
	}
	modified := ""
	if in.Modified {
		modified = " [Modified]"
	}

	screen := "no screen"
	if in.ScreenIndex >= 0 {
		screen = fmt.Sprintf("Screen %d/%d (%s)", in.ScreenIndex+1, in.ScreenCount, in.Swipe)
	}

	text := fmt.Sprintf("%s%s -- %s -- Keys: %d, Selected: %d", path, modified, screen, in.KeyCount, in.Selected)
	if in.Mask != "" {
		text += " -- Mask: " + in.Mask
	}
	switch {
	case in.CanUndo && in.CanRedo:
		text += " [u/^R]"
	case in.CanUndo:
		text += " [u]"
	case in.CanRedo:
		text += " [^R]"
	}
	return text
}

// Text returns the line Draw would render and the style name it would use.
func (sb *StatusBar) Text() (string, string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if sb.prompting {
		return sb.prompt + sb.promptInput, theme.StyleStatusBarPrompt
	}

	active := !sb.tempMessageTime.IsZero() && sb.now().Sub(sb.tempMessageTime) <= sb.config.MessageTimeout
	if !sb.tempMessageTime.IsZero() && !active {
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}
	if active {
		if sb.tempIsError {
			return sb.tempMessage, theme.StyleStatusBarError
		}
		return sb.tempMessage, theme.StyleStatusBarMessage
	}
	return sb.summary(), theme.StyleStatusBar
}

// Draw renders the status bar on the last line using visual widths.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int, th *theme.Theme) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - 1

	text, styleName := sb.Text()
	style := th.GetStyle(styleName)

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}

	gr := uniseg.NewGraphemes(text)
	currentX := 0
	for gr.Next() {
		clusterWidth := gr.Width()
		if currentX+clusterWidth > width {
			break
		}
		runes := gr.Runes()
		if len(runes) > 0 {
			screen.SetContent(currentX, y, runes[0], runes[1:], style)
		}
		currentX += clusterWidth
	}
}
