// internal/plugin/manager.go
package plugin

import (
	"errors"
	"fmt"
	"sync"

	"github.com/bethropolis/mkedit/internal/logger"
	"github.com/hashicorp/go-multierror"
)

var (
	// ErrEmptyName means a plugin reported an empty name.
	ErrEmptyName = errors.New("plugin name cannot be empty")
	// ErrAlreadyRegistered means a plugin with the same name exists.
	ErrAlreadyRegistered = errors.New("plugin already registered")
)

// Manager handles the registration, initialization, and lifecycle of plugins.
// Plugins are initialized in registration order and shut down in reverse.
type Manager struct {
	mu          sync.RWMutex
	plugins     map[string]Plugin
	order       []string
	initialized []Plugin
}

// NewManager creates a new plugin manager.
func NewManager() *Manager {
	return &Manager{
		plugins: make(map[string]Plugin),
	}
}

// Register adds a plugin instance to the manager.
// This should be called before InitializePlugins.
func (m *Manager) Register(plugin Plugin) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := plugin.Name()
	if name == "" {
		return fmt.Errorf("plugin registration failed: %w", ErrEmptyName)
	}
	if _, exists := m.plugins[name]; exists {
		return fmt.Errorf("plugin registration failed: '%s': %w", name, ErrAlreadyRegistered)
	}

	m.plugins[name] = plugin
	m.order = append(m.order, name)
	logger.Debugf("Plugin Manager: Registered plugin '%s'", name)
	return nil
}

// InitializePlugins calls Initialize on every registered plugin.
// A failing plugin does not stop the others; all failures are returned together.
func (m *Manager) InitializePlugins(api EditorAPI) error {
	m.mu.RLock()
	pluginsToInit := make([]Plugin, 0, len(m.order))
	for _, name := range m.order {
		pluginsToInit = append(pluginsToInit, m.plugins[name])
	}
	m.mu.RUnlock() // Unlock before calling plugin Init methods

	logger.Infof("Plugin Manager: Initializing %d plugins...", len(pluginsToInit))
	var result *multierror.Error
	var ready []Plugin
	for _, plugin := range pluginsToInit {
		if err := plugin.Initialize(api); err != nil {
			logger.Errorf("Plugin Manager: ERROR initializing plugin '%s': %v", plugin.Name(), err)
			result = multierror.Append(result, fmt.Errorf("plugin '%s': %w", plugin.Name(), err))
			continue
		}
		logger.Debugf("Plugin Manager: Successfully initialized plugin '%s'", plugin.Name())
		ready = append(ready, plugin)
	}

	m.mu.Lock()
	m.initialized = ready
	m.mu.Unlock()
	return result.ErrorOrNil()
}

// ShutdownPlugins calls Shutdown on the plugins that initialized successfully.
func (m *Manager) ShutdownPlugins() error {
	m.mu.Lock()
	pluginsToShutdown := m.initialized
	m.initialized = nil
	m.mu.Unlock()

	logger.Debugf("Plugin Manager: Shutting down %d plugins...", len(pluginsToShutdown))
	var result *multierror.Error
	for i := len(pluginsToShutdown) - 1; i >= 0; i-- {
		plugin := pluginsToShutdown[i]
		if err := plugin.Shutdown(); err != nil {
			logger.Errorf("Plugin Manager: ERROR shutting down plugin '%s': %v", plugin.Name(), err)
			result = multierror.Append(result, fmt.Errorf("plugin '%s': %w", plugin.Name(), err))
		}
	}
	return result.ErrorOrNil()
}

// GetPlugin returns a registered plugin by name.
func (m *Manager) GetPlugin(name string) (Plugin, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, exists := m.plugins[name]
	return p, exists
}

// Names lists the registered plugins in registration order.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.order...)
}
