// Package commands registers the built-in ':' commands.
package commands

import (
	"github.com/sinbaddoraji/Dream/internal/core"
	"github.com/sinbaddoraji/Dream/internal/plugin"
	"github.com/sinbaddoraji/Dream/internal/theme"
)

// ThemeAPI extends the commands functionality to support theme operations
type ThemeAPI interface {
	SetTheme(name string) error
	GetTheme() *theme.Theme
	ListThemes() []string
	SetStatusMessage(format string, args ...any)
}

// AppAPI is the application surface built-in commands need on top of the
// plugin API.
type AppAPI interface {
	plugin.EditorAPI
	Editor() *core.Editor
	LoadProject(path string) error
	ExportPNG(path string) error
	RequestQuit(force bool)
	SetTool(name string) error
	SnapshotName() string // Project key used in the snapshot store
}
