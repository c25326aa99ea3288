// Package plugintest provides an in-memory plugin.EditorAPI for plugin tests.
package plugintest

import (
	"fmt"
	"sync"

	"github.com/bethropolis/mkedit/internal/commands"
	"github.com/bethropolis/mkedit/internal/event"
	"github.com/bethropolis/mkedit/internal/macro"
	"github.com/bethropolis/mkedit/internal/plugin"
)

var _ plugin.EditorAPI = (*FakeAPI)(nil)

// FakeAPI records what plugins do with the editor.
type FakeAPI struct {
	mu       sync.Mutex
	layout   *macro.Setup
	path     string
	modified bool
	config   map[string]map[string]interface{}
	messages []string
	saves    int

	Events   *event.Manager
	Commands *commands.Registry
}

// New returns a fake editing layout with its own event manager.
func New(layout *macro.Setup, path string) *FakeAPI {
	if layout == nil {
		layout = &macro.Setup{}
	}
	return &FakeAPI{
		layout: layout,
		path:   path,
		config: make(map[string]map[string]interface{}),
		Events:   event.NewManager(),
		Commands: commands.NewRegistry(),
	}
}

// SetConfig sets a [plugins.<name>] value.
func (f *FakeAPI) SetConfig(pluginName, key string, value interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.config[pluginName] == nil {
		f.config[pluginName] = make(map[string]interface{})
	}
	f.config[pluginName][key] = value
}

// SetModified changes what IsModified reports.
func (f *FakeAPI) SetModified(modified bool) {
	f.mu.Lock()
	f.modified = modified
	f.mu.Unlock()
}

// Messages returns the status messages set so far.
func (f *FakeAPI) Messages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.messages...)
}

// SaveRequests counts RequestSave calls.
func (f *FakeAPI) SaveRequests() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves
}

func (f *FakeAPI) Setup() *macro.Setup { return f.layout }

func (f *FakeAPI) LayoutPath() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.path
}

func (f *FakeAPI) IsModified() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.modified
}

func (f *FakeAPI) RequestSave() {
	f.mu.Lock()
	f.saves++
	f.mu.Unlock()
}

func (f *FakeAPI) DispatchEvent(eventType event.Type, data interface{}) {
	f.Events.Dispatch(eventType, data)
}

func (f *FakeAPI) SubscribeEvent(eventType event.Type, handler event.Handler) event.SubscriptionID {
	return f.Events.Subscribe(eventType, handler)
}

func (f *FakeAPI) RegisterCommand(name string, fn commands.Func) error {
	return f.Commands.Register(name, fn)
}

func (f *FakeAPI) SetStatusMessage(format string, args ...interface{}) {
	f.mu.Lock()
	f.messages = append(f.messages, fmt.Sprintf(format, args...))
	f.mu.Unlock()
}

func (f *FakeAPI) GetPluginConfigValue(pluginName, key string) (interface{}, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.config[pluginName][key]
	return v, ok
}
