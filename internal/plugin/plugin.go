// Package plugin defines the extension surface of the editor.
package plugin

import (
	"github.com/gdamore/tcell/v2"
	"github.com/sinbaddoraji/Dream/internal/canvas"
	"github.com/sinbaddoraji/Dream/internal/event"
	"github.com/sinbaddoraji/Dream/internal/project"
	"github.com/sinbaddoraji/Dream/internal/storage"
	"github.com/sinbaddoraji/Dream/internal/theme"
)

// CommandFunc defines the signature for commands registered by plugins.
// It takes arguments (e.g., from user input) and returns an error.
type CommandFunc func(args []string) error

// EditorAPI defines the methods plugins can use to interact with the editor core.
type EditorAPI interface {
	// --- Canvas Access (read-only) ---
	Objects() []*canvas.Object // Paint order
	ObjectCount() int
	SelectedIDs() []string
	Document() *project.Document

	// --- Project ---
	FilePath() string
	IsModified() bool
	SaveProject(path string) error // Empty path saves to FilePath

	// --- Snapshots ---
	// SaveSnapshot stores the canvas in the snapshot database. It reports
	// false when the canvas matches the latest snapshot.
	SaveSnapshot(label string) (*storage.Snapshot, bool, error)
	Snapshots() *storage.Store // nil when storage is unavailable

	// Post queues fn to run on the editor goroutine. Plugins that work from
	// their own goroutines must reach the editor through Post.
	Post(fn func())

	// --- Event Bus Interaction ---
	DispatchEvent(eventType event.Type, data any)
	SubscribeEvent(eventType event.Type, handler event.Handler)

	// --- Command Registration ---
	RegisterCommand(name string, cmdFunc CommandFunc) error

	// --- Status Bar ---
	SetStatusMessage(format string, args ...any)

	// --- Theme Access ---
	GetThemeStyle(styleName string) tcell.Style
	SetTheme(name string) error
	GetTheme() *theme.Theme
	ListThemes() []string

	// --- Configuration ---
	GetPluginConfigValue(pluginName, key string) (any, bool)
}

// Plugin defines the interface that all plugins must implement.
type Plugin interface {
	// Name returns the unique identifier name of the plugin.
	Name() string

	// Initialize is called once when the plugin is loaded. Plugins subscribe
	// to events and register commands here.
	Initialize(api EditorAPI) error

	// Shutdown is called once when the editor is closing.
	Shutdown() error
}
