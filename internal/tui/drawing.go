// internal/tui/drawing.go
package tui

import (
	"fmt"
	"strings"

	"github.com/bethropolis/mkedit/internal/logger"
	"github.com/bethropolis/mkedit/internal/macro"
	"github.com/bethropolis/mkedit/internal/theme"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Rows taken by the tab line, the column header and the status bar.
const chromeRows = 3

const labelWidth = 16

// View is what DrawLayout renders: the screen tabs and the key list of the
// active screen.
type View struct {
	Screens    []*macro.Screen
	Active     int // index into Screens, -1 for none
	Keys       []*macro.Key
	Cursor     int // index into Keys
	Offset     int // first visible key
	IsSelected func(*macro.Key) bool
}

// ListHeight is the number of key rows that fit on a screen of the given height.
func ListHeight(height int) int {
	if h := height - chromeRows; h > 0 {
		return h
	}
	return 0
}

// ScrollOffset keeps cursor inside the visible window starting at offset.
func ScrollOffset(offset, cursor, visible int) int {
	if visible <= 0 {
		return 0
	}
	if cursor < offset {
		return cursor
	}
	if cursor >= offset+visible {
		return cursor - visible + 1
	}
	return offset
}

// DrawLayout draws the tab line and the key list using the provided theme.
func DrawLayout(tuiManager *TUI, v View, activeTheme *theme.Theme) {
	if activeTheme == nil {
		logger.Warnf("DrawLayout called with nil theme, using package default.")
		activeTheme = theme.GetCurrentTheme()
	}
	screen := tuiManager.GetScreen()
	width, height := tuiManager.Size()
	if width <= 0 || height <= 0 {
		return
	}

	drawTabs(screen, v, width, activeTheme)
	if height < 2 {
		return
	}

	detail := activeTheme.GetStyle(theme.StyleKeyDetail)
	header := fmt.Sprintf("    %-4s %-*s %-22s %-9s %-6s %s", "#", labelWidth, "Label", "Area", "Shape", "Type", "Fill")
	drawText(screen, 0, 1, width, header, detail)

	rows := ListHeight(height)
	for row := 0; row < rows; row++ {
		i := v.Offset + row
		if i >= len(v.Keys) {
			break
		}
		drawKeyRow(screen, 2+row, width, i, v, activeTheme)
	}
}

func drawTabs(screen tcell.Screen, v View, width int, th *theme.Theme) {
	x := 0
	for i, s := range v.Screens {
		style := th.GetStyle(theme.StyleTabs)
		if i == v.Active {
			style = th.GetStyle(theme.StyleTabsActive)
		}
		label := fmt.Sprintf(" %d:%s ", i+1, s.Swipe)
		x += drawText(screen, x, 0, width-x, label, style)
		if x >= width {
			return
		}
	}
	if len(v.Screens) == 0 {
		drawText(screen, 0, 0, width, " no screens (n adds one) ", th.GetStyle(theme.StyleTabs))
	}
}

func drawKeyRow(screen tcell.Screen, y, width, i int, v View, th *theme.Theme) {
	k := v.Keys[i]
	style := th.GetStyle(theme.StyleDefault)
	selected := v.IsSelected != nil && v.IsSelected(k)
	if selected {
		style = th.GetStyle(theme.StyleKeySelected)
	}
	if i == v.Cursor {
		style = th.GetStyle(theme.StyleKeyCursor)
	}

	marker := "  "
	if selected {
		marker = " *"
	}
	if i == v.Cursor {
		marker = ">" + marker[1:]
	}

	x := drawText(screen, 0, y, width, fmt.Sprintf("%s  %-4d ", marker, i+1), style)
	x += drawText(screen, x, y, width-x, fit(k.Label(), labelWidth)+" ", style)
	rest := fmt.Sprintf("%-22s %-9s %-6s ", k.Area, k.Shape, k.Type)
	x += drawText(screen, x, y, width-x, rest, style)

	// two-cell swatch in the key's fill colour
	swatch := tcell.StyleDefault.Background(tcellColor(k.ColorFill))
	for sx := x; sx < x+2 && sx < width; sx++ {
		screen.SetContent(sx, y, ' ', nil, swatch)
	}
	x += 2
	if x < width {
		drawText(screen, x+1, y, width-x-1, k.ColorFill.String(), th.GetStyle(theme.StyleKeyDetail))
	}
}

// fit pads or truncates s to exactly w cells.
func fit(s string, w int) string {
	var b strings.Builder
	used := 0
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		cw := gr.Width()
		if used+cw > w {
			break
		}
		b.WriteString(gr.Str())
		used += cw
	}
	if used < w {
		b.WriteString(strings.Repeat(" ", w-used))
	}
	return b.String()
}

// drawText draws s at (x, y) within maxWidth cells and returns the cells used.
func drawText(screen tcell.Screen, x, y, maxWidth int, s string, style tcell.Style) int {
	used := 0
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		cw := gr.Width()
		if used+cw > maxWidth {
			break
		}
		runes := gr.Runes()
		if len(runes) > 0 {
			screen.SetContent(x+used, y, runes[0], runes[1:], style)
		}
		used += cw
	}
	return used
}

func tcellColor(c macro.Color) tcell.Color {
	_, r, g, b := c.Components()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
