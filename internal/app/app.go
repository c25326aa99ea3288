// internal/app/app.go
package app

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/bethropolis/mkedit/internal/commands"
	"github.com/bethropolis/mkedit/internal/config"
	"github.com/bethropolis/mkedit/internal/core"
	"github.com/bethropolis/mkedit/internal/core/clipboard"
	"github.com/bethropolis/mkedit/internal/event"
	"github.com/bethropolis/mkedit/internal/input"
	"github.com/bethropolis/mkedit/internal/logger"
	"github.com/bethropolis/mkedit/internal/macro"
	"github.com/bethropolis/mkedit/internal/mask"
	"github.com/bethropolis/mkedit/internal/plugin"
	"github.com/bethropolis/mkedit/internal/statusbar"
	"github.com/bethropolis/mkedit/internal/theme"
	"github.com/bethropolis/mkedit/internal/tui"
	"github.com/gdamore/tcell/v2"
)

// App encapsulates the core components and main loop of the layout editor.
// All editing happens on the goroutine running Run; other goroutines talk to
// it through the request channels.
type App struct {
	cfg            *config.Config
	tuiManager     *tui.TUI
	setup          *core.SetupEditor
	masks          *mask.Manager
	clipboard      *clipboard.Manager
	statusBar      *statusbar.StatusBar
	eventManager   *event.Manager
	inputProcessor *input.InputProcessor
	pluginManager  *plugin.Manager
	commands       *commands.Registry
	editorAPI      plugin.EditorAPI
	activeTheme    *theme.Theme

	pathMu   sync.RWMutex
	filePath string
	modified atomic.Bool

	cursor    int // index into the keys of the selected screen
	offset    int // first visible key row
	prompt    *prompt
	quitArmed bool // a second quit discards unsaved changes

	// Channels managed by the App
	termEvents    chan tcell.Event
	saveRequest   chan struct{}
	redrawRequest chan struct{}
	quit          chan struct{}
	quitOnce      sync.Once
}

// NewApp creates the application on the real terminal.
func NewApp(cfg *config.Config, filePath string) (*App, error) {
	tuiManager, err := tui.New()
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}
	a, err := newApp(cfg, filePath, tuiManager)
	if err != nil {
		tuiManager.Close()
		return nil, err
	}
	return a, nil
}

func newApp(cfg *config.Config, filePath string, tuiManager *tui.TUI) (*App, error) {
	layout, loaded, err := loadLayout(filePath)
	if err != nil {
		return nil, err
	}
	setupEditor, err := core.NewSetupEditor(layout)
	if err != nil {
		return nil, fmt.Errorf("cannot edit layout: %w", err)
	}

	eventManager := event.NewManager()
	setupEditor.SetMergeWindow(cfg.Editor.MergeWindow())
	setupEditor.SetEventManager(eventManager)

	statusCfg := statusbar.DefaultConfig()
	statusCfg.MessageTimeout = config.MessageTimeout

	a := &App{
		cfg:            cfg,
		tuiManager:     tuiManager,
		setup:          setupEditor,
		masks:          loadMasks(cfg.Editor.MasksFile),
		clipboard:      clipboard.NewManager(cfg.Editor.SystemClipboard),
		statusBar:      statusbar.New(statusCfg),
		eventManager:   eventManager,
		inputProcessor: input.NewInputProcessor(),
		pluginManager:  plugin.NewManager(),
		commands:       commands.NewRegistry(),
		activeTheme:    loadTheme(cfg.Editor.ThemeFile),
		filePath:       filePath,
		termEvents:     make(chan tcell.Event),
		saveRequest:    make(chan struct{}, 1),
		redrawRequest:  make(chan struct{}, 1),
		quit:           make(chan struct{}),
	}
	a.masks.SetEventManager(eventManager)
	a.subscribeEvents()
	a.registerCommands()

	a.editorAPI = newEditorAPI(a)
	if err := registerPlugins(a.pluginManager); err != nil {
		logger.Warnf("App: %v", err)
	}
	if err := a.pluginManager.InitializePlugins(a.editorAPI); err != nil {
		logger.Warnf("App: %v", err)
	}

	if loaded {
		a.eventManager.Dispatch(event.TypeLayoutLoaded, event.LayoutFileData{FilePath: filePath})
	}
	return a, nil
}

// loadLayout reads filePath. A missing file or empty path starts a new layout
// with one screen; loaded reports whether the file was read.
func loadLayout(filePath string) (layout *macro.Setup, loaded bool, err error) {
	if filePath != "" {
		layout, err = macro.LoadFile(filePath)
		switch {
		case errors.Is(err, os.ErrNotExist):
			logger.Infof("App: %s does not exist yet, starting a new layout", filePath)
		case err != nil:
			return nil, false, err
		case len(layout.Screens) > 0:
			return layout, true, nil
		}
	}
	return &macro.Setup{Screens: []*macro.Screen{macro.NewScreen(macro.SwipeNone)}}, false, nil
}

func loadMasks(path string) *mask.Manager {
	m := mask.NewManager()
	for _, d := range mask.Defaults() {
		_ = m.Add(d)
	}
	if path == "" {
		return m
	}
	if err := m.LoadFile(path); err != nil {
		logger.Warnf("App: keeping default masks: %v", err)
	}
	return m
}

func loadTheme(path string) *theme.Theme {
	if path == "" {
		return theme.GetCurrentTheme()
	}
	t, err := theme.LoadThemeFromFile(path)
	if err != nil {
		logger.Warnf("App: using built-in theme: %v", err)
		return theme.GetCurrentTheme()
	}
	theme.SetCurrentTheme(t)
	return t
}

// Run starts the application's event and drawing loop.
func (a *App) Run() error {
	defer a.tuiManager.Close()
	defer a.shutdownPlugins()

	go a.eventLoop()

	a.eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{})
	a.statusBar.SetTemporaryMessage("%s %s - a Add | e Text | s Keys | u Undo | : Command | Ctrl+S Save | q Quit", config.AppName, config.Version)
	a.draw()

	for {
		select {
		case <-a.quit:
			a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{})
			if a.IsModified() {
				logger.Warnf("App: Exited with unsaved changes.")
			}
			logger.Infof("Exiting application.")
			return nil
		case ev := <-a.termEvents:
			if a.handleTermEvent(ev) {
				a.draw()
			}
		case <-a.saveRequest:
			if a.IsModified() && a.FilePath() != "" {
				a.save(a.FilePath())
				a.draw()
			}
		case <-a.redrawRequest:
			a.draw()
		}
	}
}

// eventLoop forwards terminal events to Run.
func (a *App) eventLoop() {
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return
		}
		select {
		case a.termEvents <- ev:
		case <-a.quit:
			return
		}
	}
}

func (a *App) handleTermEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.tuiManager.GetScreen().Sync()
		return true
	case *tcell.EventKey:
		return a.handleKey(ev)
	}
	return false
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	a.eventManager.Dispatch(event.TypeKeyPressed, event.KeyPressedData{KeyEvent: ev})
	if a.prompt != nil {
		return a.handlePromptAction(a.inputProcessor.ProcessPromptEvent(ev))
	}
	return a.handleAction(a.inputProcessor.ProcessEvent(ev))
}

func (a *App) shutdownPlugins() {
	if err := a.pluginManager.ShutdownPlugins(); err != nil {
		logger.Warnf("App: %v", err)
	}
}

func (a *App) signalQuit() {
	a.quitOnce.Do(func() { close(a.quit) })
}

// requestRedraw sends a redraw signal non-blockingly.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default: // a redraw is already pending
	}
}

// requestSave asks Run to save; safe from any goroutine.
func (a *App) requestSave() {
	select {
	case a.saveRequest <- struct{}{}:
	default:
	}
}

// FilePath is where the layout is saved; empty until the first save-as.
func (a *App) FilePath() string {
	a.pathMu.RLock()
	defer a.pathMu.RUnlock()
	return a.filePath
}

func (a *App) setFilePath(path string) {
	a.pathMu.Lock()
	a.filePath = path
	a.pathMu.Unlock()
}

// IsModified reports unsaved changes.
func (a *App) IsModified() bool { return a.modified.Load() }

// save writes the layout to path and reports the result on the status bar.
func (a *App) save(path string) bool {
	if err := macro.SaveFile(path, a.setup.Setup()); err != nil {
		logger.Errorf("App: save failed: %v", err)
		a.statusBar.SetErrorMessage("Save failed: %v", err)
		return false
	}
	a.setFilePath(path)
	a.modified.Store(false)
	a.quitArmed = false
	a.statusBar.SetTemporaryMessage("Saved %s", path)
	a.eventManager.Dispatch(event.TypeLayoutSaved, event.LayoutFileData{FilePath: path})
	return true
}
