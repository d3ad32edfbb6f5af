// Package event is the synchronous publish/subscribe bus between the editor
// core, the UI and plugins.
package event

import (
	"github.com/gdamore/tcell/v2"
	"github.com/sinbaddoraji/Dream/internal/types"
)

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Editing
	TypeObjectsChanged   // Objects were added, removed or transformed
	TypeSelectionChanged // The selected set changed
	TypeHistoryChanged   // Undo/redo stack moved
	TypeDrawActionAdded  // An action was appended to the draw log
	TypeTransformChanged // A pointer gesture started or ended

	// Persistence
	TypeProjectLoaded
	TypeProjectSaved

	// Input
	TypeKeyPressed

	// Application lifecycle
	TypeAppReady
	TypeAppQuit

	TypeThemeChanged
)

var typeNames = map[Type]string{
	TypeUnknown:          "unknown",
	TypeObjectsChanged:   "objects_changed",
	TypeSelectionChanged: "selection_changed",
	TypeHistoryChanged:   "history_changed",
	TypeDrawActionAdded:  "draw_action_added",
	TypeTransformChanged: "transform_changed",
	TypeProjectLoaded:    "project_loaded",
	TypeProjectSaved:     "project_saved",
	TypeKeyPressed:       "key_pressed",
	TypeAppReady:         "app_ready",
	TypeAppQuit:          "app_quit",
	TypeThemeChanged:     "theme_changed",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data any
}

// ObjectsChangedData lists the ids touched by a mutation.
type ObjectsChangedData struct {
	IDs    []string
	Reason string
}

// SelectionChangedData carries the new selection.
type SelectionChangedData struct {
	IDs []string
}

// HistoryChangedData describes the undo stack after a change.
type HistoryChangedData struct {
	Description  string
	CurrentIndex int
	Len          int
	CanUndo      bool
	CanRedo      bool
}

// DrawActionAddedData identifies an appended draw action.
type DrawActionAddedData struct {
	ActionID    string
	Type        string
	Description string
}

// TransformChangedData reports gesture start ("move", "resize", "rotate",
// "marquee", "lasso") and end ("none").
type TransformChangedData struct {
	Mode  string
	Point types.Point
}

// ProjectData names the project file involved.
type ProjectData struct {
	FilePath string
}

// KeyPressedData contains the raw tcell key event.
type KeyPressedData struct {
	KeyEvent *tcell.EventKey
}

// AppQuitData could carry an exit reason later.
type AppQuitData struct{}

// AppReadyData could carry initial state later.
type AppReadyData struct{}
