// internal/app/commands.go
package app

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bethropolis/mkedit/internal/commands"
	"github.com/bethropolis/mkedit/internal/core"
	"github.com/bethropolis/mkedit/internal/logger"
	"github.com/bethropolis/mkedit/internal/macro"
	"github.com/bethropolis/mkedit/internal/mask"
	"github.com/bethropolis/mkedit/internal/theme"
)

var errUsage = errors.New("usage")

// registerCommands adds the built-in ':' commands.
func (a *App) registerCommands() {
	builtin := []struct {
		name string
		fn   commands.Func
	}{
		{"w", a.cmdWrite},
		{"q", a.cmdQuit},
		{"q!", a.cmdForceQuit},
		{"wq", a.cmdWriteQuit},
		{"bg", a.cmdBackground},
		{"bgtext", a.cmdBackgroundText},
		{"swipe", a.cmdSwipe},
		{"orient", a.cmdOrientation},
		{"mask", a.cmdMask},
		{"maskadd", a.cmdMaskAdd},
		{"maskrm", a.cmdMaskRemove},
		{"maskset", a.cmdMaskSet},
		{"masksave", a.cmdMaskSave},
		{"theme", a.cmdTheme},
	}
	for _, c := range builtin {
		if err := a.commands.Register(c.name, c.fn); err != nil {
			logger.Warnf("App: %v", err)
		}
	}
}

func (a *App) openCommandPrompt() {
	a.openPrompt(":", "", a.commands.Execute)
}

func usage(format string) error {
	return fmt.Errorf("%w: %s", errUsage, format)
}

// --- Files and quitting ---

func (a *App) cmdWrite(args []string) error {
	path := a.FilePath()
	switch len(args) {
	case 0:
	case 1:
		path = args[0]
	default:
		return usage("w [path]")
	}
	if path == "" {
		return fmt.Errorf("no file name")
	}
	if !a.save(path) {
		return errSaveReported
	}
	return nil
}

func (a *App) cmdQuit(args []string) error {
	if a.IsModified() {
		return fmt.Errorf("unsaved changes (add ! to override)")
	}
	a.signalQuit()
	return nil
}

func (a *App) cmdForceQuit(args []string) error {
	a.signalQuit()
	return nil
}

func (a *App) cmdWriteQuit(args []string) error {
	if err := a.cmdWrite(args); err != nil {
		return err
	}
	a.signalQuit()
	return nil
}

// --- Screen properties ---

func (a *App) editScreen(property string, value interface{}) error {
	ed, err := a.selectedEditor()
	if err != nil {
		return err
	}
	return ed.EditScreenProperty(property, value)
}

func (a *App) cmdBackground(args []string) error {
	if len(args) != 1 {
		return usage("bg #RRGGBB")
	}
	var c macro.Color
	if err := c.UnmarshalText([]byte(args[0])); err != nil {
		return err
	}
	return a.editScreen(core.ScreenPropColor, c)
}

func (a *App) cmdBackgroundText(args []string) error {
	return a.editScreen(core.ScreenPropText, strings.Join(args, " "))
}

func (a *App) cmdSwipe(args []string) error {
	if len(args) != 1 {
		return usage("swipe none|left|right|up|down")
	}
	var swipe macro.SwipeType
	if err := swipe.UnmarshalText([]byte(args[0])); err != nil {
		return err
	}
	ed, err := a.selectedEditor()
	if err != nil {
		return err
	}
	if swipe != macro.SwipeNone && swipe != ed.Screen().Swipe && a.setup.ContainsSwipe(swipe) {
		return fmt.Errorf("%w %s", macro.ErrDuplicateSwipe, swipe)
	}
	return ed.EditScreenProperty(core.ScreenPropSwipeType, swipe)
}

func (a *App) cmdOrientation(args []string) error {
	if len(args) != 1 {
		return usage("orient portrait|landscape")
	}
	var o macro.Orientation
	if err := o.UnmarshalText([]byte(args[0])); err != nil {
		return err
	}
	return a.editScreen(core.ScreenPropOrientation, o)
}

// --- Masks ---

func (a *App) findMask(name string) (*mask.Mask, error) {
	for _, m := range a.masks.Masks() {
		if m.Name == name {
			return m, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", mask.ErrMaskNotFound, name)
}

func (a *App) cmdMask(args []string) error {
	if len(args) == 0 {
		names := make([]string, 0)
		for _, m := range a.masks.Masks() {
			names = append(names, m.Name)
		}
		a.statusBar.SetTemporaryMessage("Masks: %s", strings.Join(names, ", "))
		return nil
	}
	name := strings.Join(args, " ")
	if name == "none" {
		return a.masks.Select(nil)
	}
	m, err := a.findMask(name)
	if err != nil {
		return err
	}
	return a.masks.Select(m)
}

func (a *App) cmdMaskAdd(args []string) error {
	if len(args) != 3 {
		return usage("maskadd name diagonal WxH")
	}
	diag, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid diagonal %q: %w", args[1], err)
	}
	res, err := mask.ParseSize(args[2])
	if err != nil {
		return err
	}
	m, err := mask.New(args[0], diag, res)
	if err != nil {
		return err
	}
	if err := a.masks.Add(m); err != nil {
		return err
	}
	a.statusBar.SetTemporaryMessage("Added mask %s", m)
	return nil
}

func (a *App) cmdMaskRemove(args []string) error {
	if len(args) == 0 {
		return usage("maskrm name")
	}
	m, err := a.findMask(strings.Join(args, " "))
	if err != nil {
		return err
	}
	a.masks.Remove(m)
	return nil
}

func (a *App) cmdMaskSet(args []string) error {
	if len(args) != 3 {
		return usage("maskset name name|diagonal|resolution value")
	}
	m, err := a.findMask(args[0])
	if err != nil {
		return err
	}
	switch strings.ToLower(args[1]) {
	case "name":
		return a.masks.EditProperty(m, mask.PropName, args[2])
	case "diagonal":
		d, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("invalid diagonal %q: %w", args[2], err)
		}
		return a.masks.EditProperty(m, mask.PropDiagonal, d)
	case "resolution":
		res, err := mask.ParseSize(args[2])
		if err != nil {
			return err
		}
		return a.masks.EditProperty(m, mask.PropResolution, res)
	}
	return fmt.Errorf("%w: %q", mask.ErrUnknownProperty, args[1])
}

func (a *App) cmdMaskSave(args []string) error {
	path := a.cfg.Editor.MasksFile
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		return fmt.Errorf("no masks file configured")
	}
	if err := a.masks.SaveFile(path); err != nil {
		return err
	}
	a.statusBar.SetTemporaryMessage("Saved %d mask(s) to %s", len(a.masks.Masks()), path)
	return nil
}

// --- Theme ---

func (a *App) cmdTheme(args []string) error {
	if len(args) == 0 {
		a.statusBar.SetTemporaryMessage("Current theme: %s", a.activeTheme.Name)
		return nil
	}
	t, err := theme.LoadThemeFromFile(strings.Join(args, " "))
	if err != nil {
		return err
	}
	a.activeTheme = t
	theme.SetCurrentTheme(t)
	a.statusBar.SetTemporaryMessage("Theme set to: %s", t.Name)
	return nil
}
