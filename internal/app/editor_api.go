package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/sinbaddoraji/Dream/internal/canvas"
	"github.com/sinbaddoraji/Dream/internal/commands"
	"github.com/sinbaddoraji/Dream/internal/core"
	"github.com/sinbaddoraji/Dream/internal/event"
	"github.com/sinbaddoraji/Dream/internal/logger"
	"github.com/sinbaddoraji/Dream/internal/modehandler"
	"github.com/sinbaddoraji/Dream/internal/plugin"
	"github.com/sinbaddoraji/Dream/internal/project"
	"github.com/sinbaddoraji/Dream/internal/storage"
	"github.com/sinbaddoraji/Dream/internal/theme"
)

// Ensure appEditorAPI implements the plugin and command interfaces.
var (
	_ plugin.EditorAPI = (*appEditorAPI)(nil)
	_ commands.AppAPI  = (*appEditorAPI)(nil)
)

// appEditorAPI is the concrete EditorAPI handed to plugins and commands.
type appEditorAPI struct {
	app *App
}

func newEditorAPI(app *App) *appEditorAPI {
	return &appEditorAPI{app: app}
}

// --- Canvas Access ---

func (api *appEditorAPI) Objects() []*canvas.Object {
	return api.app.editor.Store().List()
}

func (api *appEditorAPI) ObjectCount() int {
	return api.app.editor.Store().Len()
}

func (api *appEditorAPI) SelectedIDs() []string {
	return api.app.editor.SelectedIDs()
}

func (api *appEditorAPI) Document() *project.Document {
	return api.app.editor.Document()
}

func (api *appEditorAPI) Editor() *core.Editor {
	return api.app.editor
}

// --- Project ---

func (api *appEditorAPI) FilePath() string {
	return api.app.editor.FilePath
}

func (api *appEditorAPI) IsModified() bool {
	return api.app.editor.IsModified()
}

func (api *appEditorAPI) SaveProject(path string) error {
	if err := api.app.SaveProject(path); err != nil {
		return err
	}
	api.app.eventManager.Dispatch(event.TypeProjectSaved, event.ProjectData{FilePath: api.app.editor.FilePath})
	return nil
}

func (api *appEditorAPI) LoadProject(path string) error {
	return api.app.LoadProject(path)
}

func (api *appEditorAPI) ExportPNG(path string) error {
	return api.app.ExportPNG(path)
}

// --- Snapshots ---

func (api *appEditorAPI) SaveSnapshot(label string) (*storage.Snapshot, bool, error) {
	return api.app.SaveSnapshot(label)
}

func (api *appEditorAPI) Snapshots() *storage.Store {
	return api.app.snapshots
}

func (api *appEditorAPI) SnapshotName() string {
	return api.app.snapshotName()
}

// Post queues fn on the UI goroutine. When the queue is full fn is dropped.
func (api *appEditorAPI) Post(fn func()) {
	if err := api.app.tuiManager.Post(fn); err != nil {
		logger.Warnf("API: dropping posted call: %v", err)
	}
}

// --- Event Bus Interaction ---

func (api *appEditorAPI) DispatchEvent(eventType event.Type, data any) {
	api.app.eventManager.Dispatch(eventType, data)
}

func (api *appEditorAPI) SubscribeEvent(eventType event.Type, handler event.Handler) {
	api.app.eventManager.Subscribe(eventType, handler)
}

// --- Command Registration ---

func (api *appEditorAPI) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	if api.app.modeHandler == nil {
		return fmt.Errorf("internal error: API cannot access command registration")
	}
	return api.app.modeHandler.RegisterCommand(name, cmdFunc)
}

// --- Status Bar ---

func (api *appEditorAPI) SetStatusMessage(format string, args ...any) {
	api.app.statusBar.SetTemporaryMessage(format, args...)
	api.app.requestRedraw()
}

// --- Theme Access ---

func (api *appEditorAPI) GetThemeStyle(styleName string) tcell.Style {
	return api.app.themeManager.Current().GetStyle(styleName)
}

func (api *appEditorAPI) SetTheme(name string) error {
	if err := api.app.themeManager.SetTheme(name); err != nil {
		return err
	}
	current := api.app.themeManager.Current()
	api.app.tuiManager.SetStyle(current)
	api.app.eventManager.Dispatch(event.TypeThemeChanged, current.Name)
	api.app.requestRedraw()
	logger.Debugf("Theme changed to '%s'", current.Name)
	return nil
}

func (api *appEditorAPI) GetTheme() *theme.Theme {
	return api.app.themeManager.Current()
}

func (api *appEditorAPI) ListThemes() []string {
	return api.app.themeManager.ListThemes()
}

// --- Application ---

func (api *appEditorAPI) RequestQuit(force bool) {
	api.app.modeHandler.RequestQuit(force)
}

func (api *appEditorAPI) SetTool(name string) error {
	tool, ok := modehandler.ParseTool(name)
	if !ok {
		return fmt.Errorf("unknown tool '%s'", name)
	}
	api.app.modeHandler.SetTool(tool)
	return nil
}

// --- Configuration ---

func (api *appEditorAPI) GetPluginConfigValue(pluginName, key string) (any, bool) {
	settings := api.app.cfg.PluginSettings(pluginName)
	if settings == nil {
		return nil, false
	}
	v, ok := settings[key]
	return v, ok
}
