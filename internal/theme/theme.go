// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/bethropolis/mkedit/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// Style names used by the terminal front end.
const (
	StyleDefault          = "Default"
	StyleTabs             = "Tabs"
	StyleTabsActive       = "Tabs.Active"
	StyleKeyCursor        = "KeyList.Cursor"
	StyleKeySelected      = "KeyList.Selected"
	StyleKeyDetail        = "KeyList.Detail"
	StyleMask             = "Mask"
	StyleStatusBar        = "StatusBar"
	StyleStatusBarMessage = "StatusBarMessage"
	StyleStatusBarPrompt  = "StatusBarPrompt"
	StyleStatusBarError   = "StatusBarError"
)

// Theme maps style names to tcell styles.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle returns the named style, falling back to the part before the
// first dot and then to Default.
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}

	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		if style, ok := t.Styles[name[:dotIndex]]; ok {
			return style
		}
	}

	if defStyle, ok := t.Styles[StyleDefault]; ok {
		if name != StyleDefault {
			logger.DebugTagf("theme", "Theme '%s': Style '%s' not found, falling back to 'Default'", t.Name, name)
		}
		return defStyle
	}

	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// Dark is the built-in theme.
var Dark Theme

func init() {
	background := tcell.NewHexColor(0x2a2f38)
	foreground := tcell.NewHexColor(0xc5cdd9)
	muted := tcell.NewHexColor(0x5c6370)
	yellow := tcell.NewHexColor(0xe5c07b)
	green := tcell.NewHexColor(0x98c379)
	blue := tcell.NewHexColor(0x61afef)
	red := tcell.NewHexColor(0xe06c75)

	base := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(foreground)

	Dark = Theme{
		Name:   "Dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			StyleDefault:          base,
			StyleTabs:             base.Foreground(muted),
			StyleTabsActive:       base.Foreground(blue).Bold(true).Underline(true),
			StyleKeyCursor:        base.Reverse(true),
			StyleKeySelected:      base.Foreground(yellow).Bold(true),
			StyleKeyDetail:        base.Foreground(muted),
			StyleMask:             base.Foreground(green),
			StyleStatusBar:        tcell.StyleDefault.Background(background).Foreground(foreground),
			StyleStatusBarMessage: tcell.StyleDefault.Background(background).Foreground(foreground).Bold(true),
			StyleStatusBarPrompt:  tcell.StyleDefault.Background(background).Foreground(green).Bold(true),
			StyleStatusBarError:   tcell.StyleDefault.Background(background).Foreground(red).Bold(true),
		},
	}
	CurrentTheme = &Dark
}

var CurrentTheme *Theme

func GetCurrentTheme() *Theme {
	if CurrentTheme == nil {
		CurrentTheme = &Dark
	}
	return CurrentTheme
}

func SetCurrentTheme(theme *Theme) {
	if theme != nil {
		CurrentTheme = theme
		logger.Infof("Theme switched to: %s", theme.Name)
	}
}
