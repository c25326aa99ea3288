package app

import (
	"fmt"

	"github.com/bethropolis/mkedit/internal/logger"
	"github.com/bethropolis/mkedit/internal/plugin"
	"github.com/bethropolis/mkedit/plugins/autosave"
	"github.com/bethropolis/mkedit/plugins/keystats"
	"github.com/hashicorp/go-multierror"
)

// registerPlugins registers all built-in plugins with the manager.
func registerPlugins(pm *plugin.Manager) error {
	if pm == nil {
		return fmt.Errorf("plugin manager is nil")
	}

	// Adding a new plugin means adding its constructor here.
	pluginConstructors := []func() plugin.Plugin{
		keystats.New,
		autosave.New,
	}

	var result *multierror.Error
	for _, newPlugin := range pluginConstructors {
		p := newPlugin()
		logger.Debugf("Registering plugin: %s", p.Name())
		if err := pm.Register(p); err != nil {
			result = multierror.Append(result, fmt.Errorf("failed to register plugin '%s': %w", p.Name(), err))
		}
	}
	return result.ErrorOrNil()
}
