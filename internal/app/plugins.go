package app

import (
	"fmt"

	"github.com/sinbaddoraji/Dream/internal/logger"
	"github.com/sinbaddoraji/Dream/internal/plugin"
	"github.com/sinbaddoraji/Dream/plugins/autosave"
	"github.com/sinbaddoraji/Dream/plugins/objectstats"
)

// pluginConstructors lists the bundled plugins in initialization order.
var pluginConstructors = []func() plugin.Plugin{
	objectstats.New,
	autosave.New,
}

// registerPlugins registers every bundled plugin, returning the first failure.
func registerPlugins(pm *plugin.Manager) error {
	if pm == nil {
		return fmt.Errorf("plugin manager is nil")
	}

	var finalErr error
	for _, newPlugin := range pluginConstructors {
		p := newPlugin()
		logger.Debugf("Registering plugin: %s", p.Name())
		if err := pm.Register(p); err != nil {
			wrappedErr := fmt.Errorf("failed to register plugin '%s': %w", p.Name(), err)
			logger.Errorf("%v", wrappedErr)
			if finalErr == nil {
				finalErr = wrappedErr
			}
		}
	}
	return finalErr
}
