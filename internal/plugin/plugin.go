// internal/plugin/plugin.go
package plugin

import (
	"github.com/bethropolis/mkedit/internal/commands"
	"github.com/bethropolis/mkedit/internal/event"
	"github.com/bethropolis/mkedit/internal/macro"
)

// EditorAPI defines the methods plugins can use to interact with the editor core.
// Layout access is read-only; plugins change the layout through events or saving.
type EditorAPI interface {
	// --- Layout Access ---
	Setup() *macro.Setup // The layout being edited, do not mutate
	LayoutPath() string  // Empty for a layout that was never saved
	IsModified() bool

	// RequestSave asks the editor loop to save the layout.
	// It is safe to call from any goroutine.
	RequestSave()

	// --- Event Bus Interaction ---
	DispatchEvent(eventType event.Type, data interface{})
	SubscribeEvent(eventType event.Type, handler event.Handler) event.SubscriptionID

	// --- Command Registration ---
	RegisterCommand(name string, fn commands.Func) error // Exposed as :name

	// --- Status Bar ---
	SetStatusMessage(format string, args ...interface{})

	// --- Configuration ---
	// GetPluginConfigValue reads a key from the [plugins.<name>] table.
	GetPluginConfigValue(pluginName, key string) (interface{}, bool)
}

// Plugin defines the interface that all plugins must implement.
type Plugin interface {
	// Name returns the unique identifier name of the plugin.
	Name() string

	// Initialize is called once when the plugin is loaded.
	// Used for reading configuration, subscribing to events and registering commands.
	Initialize(api EditorAPI) error

	// Shutdown is called once when the editor is closing.
	Shutdown() error
}
