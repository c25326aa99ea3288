// internal/app/editor_api.go
package app

import (
	"github.com/bethropolis/mkedit/internal/commands"
	"github.com/bethropolis/mkedit/internal/event"
	"github.com/bethropolis/mkedit/internal/macro"
	"github.com/bethropolis/mkedit/internal/plugin"
)

// Ensure appEditorAPI implements the plugin.EditorAPI interface.
var _ plugin.EditorAPI = (*appEditorAPI)(nil)

// appEditorAPI provides the concrete implementation of the EditorAPI interface.
type appEditorAPI struct {
	app *App
}

func newEditorAPI(app *App) *appEditorAPI {
	return &appEditorAPI{app: app}
}

// --- Layout Access ---

func (api *appEditorAPI) Setup() *macro.Setup { return api.app.setup.Setup() }

func (api *appEditorAPI) LayoutPath() string { return api.app.FilePath() }

func (api *appEditorAPI) IsModified() bool { return api.app.IsModified() }

func (api *appEditorAPI) RequestSave() { api.app.requestSave() }

// --- Event Bus Interaction ---

func (api *appEditorAPI) DispatchEvent(eventType event.Type, data interface{}) {
	api.app.eventManager.Dispatch(eventType, data)
}

func (api *appEditorAPI) SubscribeEvent(eventType event.Type, handler event.Handler) event.SubscriptionID {
	return api.app.eventManager.Subscribe(eventType, handler)
}

// --- Command Registration ---

func (api *appEditorAPI) RegisterCommand(name string, fn commands.Func) error {
	return api.app.commands.Register(name, fn)
}

// --- Status Bar ---

func (api *appEditorAPI) SetStatusMessage(format string, args ...interface{}) {
	api.app.statusBar.SetTemporaryMessage(format, args...)
	api.app.requestRedraw()
}

// --- Configuration ---

func (api *appEditorAPI) GetPluginConfigValue(pluginName, key string) (interface{}, bool) {
	return api.app.cfg.PluginValue(pluginName, key)
}
