package autosave

import (
	"sync"
	"time"

	"github.com/sinbaddoraji/Dream/internal/event"
	"github.com/sinbaddoraji/Dream/internal/logger"
	"github.com/sinbaddoraji/Dream/internal/plugin"
	"github.com/sinbaddoraji/Dream/internal/utils"
)

// Ensure AutoSave implements plugin.Plugin
var _ plugin.Plugin = (*AutoSave)(nil)

const (
	defaultEnabled   = false
	defaultInterval  = 1 * time.Minute
	defaultSnapshots = true

	snapshotLabel = "autosave"
	idleLabel     = "idle"
)

// AutoSave periodically writes the modified project to its file and records
// a snapshot of the canvas.
type AutoSave struct {
	api plugin.EditorAPI

	mutex     sync.RWMutex // Protects the config fields below
	enabled   bool
	interval  time.Duration
	snapshots bool
	idle      time.Duration // Snapshot after edits go quiet; 0 disables

	idleSaver utils.Debouncer
	stopChan  chan struct{}
	wg       sync.WaitGroup
}

// New creates a new instance of the AutoSave plugin.
func New() plugin.Plugin {
	return &AutoSave{
		enabled:   defaultEnabled,
		interval:  defaultInterval,
		snapshots: defaultSnapshots,
	}
}

// Name returns the unique name of the plugin.
func (p *AutoSave) Name() string {
	return "autosave"
}

// Initialize reads configuration and starts the auto-save loop if enabled.
func (p *AutoSave) Initialize(api plugin.EditorAPI) error {
	p.api = api
	pluginName := p.Name()

	p.mutex.Lock()
	if v, ok := api.GetPluginConfigValue(pluginName, "enabled"); ok {
		if b, isBool := v.(bool); isBool {
			p.enabled = b
		} else {
			logger.Warnf("%s: Invalid type for 'enabled' config (%T), using default (%v)", pluginName, v, p.enabled)
		}
	}
	if v, ok := api.GetPluginConfigValue(pluginName, "snapshots"); ok {
		if b, isBool := v.(bool); isBool {
			p.snapshots = b
		} else {
			logger.Warnf("%s: Invalid type for 'snapshots' config (%T), using default (%v)", pluginName, v, p.snapshots)
		}
	}
	if v, ok := api.GetPluginConfigValue(pluginName, "interval"); ok {
		if s, isStr := v.(string); isStr {
			parsed, err := time.ParseDuration(s)
			switch {
			case err != nil:
				logger.Warnf("%s: Invalid format for 'interval' config ('%s'): %v. Using default (%v)", pluginName, s, err, p.interval)
			case parsed <= 0:
				logger.Warnf("%s: 'interval' config must be positive ('%s'). Using default (%v)", pluginName, s, p.interval)
			default:
				p.interval = parsed
			}
		} else {
			logger.Warnf("%s: Invalid type for 'interval' config (%T), using default (%v)", pluginName, v, p.interval)
		}
	}
	if v, ok := api.GetPluginConfigValue(pluginName, "idle"); ok {
		if s, isStr := v.(string); isStr {
			if parsed, err := time.ParseDuration(s); err == nil && parsed > 0 {
				p.idle = parsed
			} else {
				logger.Warnf("%s: Invalid 'idle' config ('%s'), idle snapshots disabled", pluginName, s)
			}
		} else {
			logger.Warnf("%s: Invalid type for 'idle' config (%T), idle snapshots disabled", pluginName, v)
		}
	}
	isEnabled, interval, idle := p.enabled, p.interval, p.idle
	p.mutex.Unlock()

	logger.Infof("%s initialized. Enabled: %v, Interval: %v, Idle: %v", pluginName, isEnabled, interval, idle)

	if idle > 0 {
		api.SubscribeEvent(event.TypeObjectsChanged, p.handleObjectsChanged)
	}

	if isEnabled {
		p.stopChan = make(chan struct{})
		p.wg.Add(1)
		go p.saverLoop(interval)
	}
	return nil
}

// Shutdown signals the saver goroutine to stop and waits for it.
func (p *AutoSave) Shutdown() error {
	p.idleSaver.Stop()
	if p.stopChan != nil {
		logger.Debugf("%s: Shutting down...", p.Name())
		close(p.stopChan)
		p.wg.Wait()
		p.stopChan = nil
	}
	return nil
}

func (p *AutoSave) saverLoop(interval time.Duration) {
	defer p.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.api.Post(p.saveIfModified)
		case <-p.stopChan:
			logger.Debugf("%s: Received stop signal, exiting saver loop.", p.Name())
			return
		}
	}
}

// handleObjectsChanged restarts the idle timer on every canvas edit.
func (p *AutoSave) handleObjectsChanged(event.Event) bool {
	p.mutex.RLock()
	idle := p.idle
	p.mutex.RUnlock()
	p.idleSaver.Debounce(idle, func() { p.api.Post(p.snapshotIdle) })
	return false
}

// snapshotIdle records a snapshot once editing has paused.
func (p *AutoSave) snapshotIdle() {
	if !p.api.IsModified() {
		return
	}
	snap, saved, err := p.api.SaveSnapshot(idleLabel)
	switch {
	case err != nil:
		logger.Errorf("%s: Idle snapshot failed: %v", p.Name(), err)
	case saved:
		logger.Debugf("%s: Recorded idle snapshot #%d", p.Name(), snap.ID)
	}
}

// saveIfModified writes the project file when it has a path and records a
// snapshot. An unmodified canvas is left alone.
func (p *AutoSave) saveIfModified() {
	if p.api == nil {
		logger.Errorf("%s: API is nil in saveIfModified!", p.Name())
		return
	}
	if !p.api.IsModified() {
		logger.Debugf("%s: Canvas not modified, skipping auto-save.", p.Name())
		return
	}

	p.mutex.RLock()
	snapshots := p.snapshots
	p.mutex.RUnlock()

	if snapshots {
		snap, saved, err := p.api.SaveSnapshot(snapshotLabel)
		switch {
		case err != nil:
			logger.Errorf("%s: Snapshot failed: %v", p.Name(), err)
		case saved:
			logger.Debugf("%s: Recorded snapshot #%d", p.Name(), snap.ID)
		}
	}

	filePath := p.api.FilePath()
	if filePath == "" {
		logger.Debugf("%s: Project has no file yet, skipping file auto-save.", p.Name())
		return
	}
	logger.Infof("%s: Auto-saving project: %s", p.Name(), filePath)
	if err := p.api.SaveProject(""); err != nil {
		logger.Errorf("%s: Auto-save failed for '%s': %v", p.Name(), filePath, err)
	}
}
