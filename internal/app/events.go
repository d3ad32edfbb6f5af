package app

import (
	"path/filepath"

	"github.com/sinbaddoraji/Dream/internal/event"
	"github.com/sinbaddoraji/Dream/internal/logger"
)

// subscribeEvents keeps the screen and status bar in step with the editor.
func (a *App) subscribeEvents() {
	for _, t := range []event.Type{
		event.TypeObjectsChanged,
		event.TypeSelectionChanged,
		event.TypeHistoryChanged,
		event.TypeTransformChanged,
		event.TypeThemeChanged,
	} {
		a.eventManager.Subscribe(t, a.handleRedrawEvent)
	}
	a.eventManager.Subscribe(event.TypeProjectLoaded, a.handleProjectLoadedForStatus)
	a.eventManager.Subscribe(event.TypeProjectSaved, a.handleRedrawEvent)
}

func (a *App) handleRedrawEvent(event.Event) bool {
	a.requestRedraw()
	return false
}

// handleProjectLoadedForStatus names the opened file in the status bar.
func (a *App) handleProjectLoadedForStatus(e event.Event) bool {
	if data, ok := e.Data.(event.ProjectData); ok {
		logger.Infof("App: loaded %s", data.FilePath)
		a.statusBar.SetTemporaryMessage("Opened %s", filepath.Base(data.FilePath))
	}
	a.requestRedraw()
	return false
}
