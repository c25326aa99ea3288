// plugins/keystats/keystats.go
package keystats

import (
	"fmt"

	"github.com/bethropolis/mkedit/internal/event"
	"github.com/bethropolis/mkedit/internal/macro"
	"github.com/bethropolis/mkedit/internal/plugin"
)

// Ensure KeyStats implements plugin.Plugin
var _ plugin.Plugin = (*KeyStats)(nil)

// Stats summarises a layout.
type Stats struct {
	Screens     int
	Keys        int
	NoSequence  int // keys that send nothing
	LargestPage int // most keys on one screen
}

func (s Stats) String() string {
	msg := fmt.Sprintf("Screens: %d, Keys: %d, Largest screen: %d", s.Screens, s.Keys, s.LargestPage)
	if s.NoSequence > 0 {
		msg += fmt.Sprintf(", Without sequence: %d", s.NoSequence)
	}
	return msg
}

// Count computes the stats of setup.
func Count(setup *macro.Setup) Stats {
	var s Stats
	if setup == nil {
		return s
	}
	for _, screen := range setup.Screens {
		if screen == nil {
			continue
		}
		s.Screens++
		s.Keys += len(screen.Keys)
		if len(screen.Keys) > s.LargestPage {
			s.LargestPage = len(screen.Keys)
		}
		for _, k := range screen.Keys {
			if k != nil && len(k.KeySeq) == 0 {
				s.NoSequence++
			}
		}
	}
	return s
}

// KeyStats shows layout statistics whenever a layout is loaded or saved.
type KeyStats struct {
	api  plugin.EditorAPI
	subs []event.SubscriptionID
}

// New creates a new instance of the KeyStats plugin.
func New() plugin.Plugin {
	return &KeyStats{}
}

// Name returns the unique name of the plugin.
func (p *KeyStats) Name() string {
	return "keystats"
}

// Initialize registers :stats and, unless disabled in config, reports on
// every layout load and save.
func (p *KeyStats) Initialize(api plugin.EditorAPI) error {
	p.api = api
	if err := api.RegisterCommand("stats", p.executeStats); err != nil {
		return fmt.Errorf("failed to register 'stats' command: %w", err)
	}
	if v, ok := api.GetPluginConfigValue(p.Name(), "enabled"); ok {
		enabled, isBool := v.(bool)
		if !isBool {
			return fmt.Errorf("invalid type for 'enabled' config (%T)", v)
		}
		if !enabled {
			return nil
		}
	}
	p.subs = append(p.subs,
		api.SubscribeEvent(event.TypeLayoutLoaded, p.report),
		api.SubscribeEvent(event.TypeLayoutSaved, p.report),
	)
	return nil
}

// Shutdown performs cleanup (nothing needed for this simple plugin).
func (p *KeyStats) Shutdown() error {
	return nil
}

func (p *KeyStats) report(e event.Event) bool {
	p.api.SetStatusMessage("%s", Count(p.api.Setup()))
	return false
}

func (p *KeyStats) executeStats(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("stats takes no arguments")
	}
	p.api.SetStatusMessage("%s", Count(p.api.Setup()))
	return nil
}
