// Package drawhistory keeps the display-only log of completed drawing actions.
// Navigating the log moves a cursor; it never changes canvas objects.
package drawhistory

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sinbaddoraji/Dream/internal/types"
)

// ActionType identifies the kind of user action recorded.
type ActionType string

const (
	CreateRectangle   ActionType = "create_rectangle"
	CreateEllipse     ActionType = "create_ellipse"
	CreateTriangle    ActionType = "create_triangle"
	CreateStar        ActionType = "create_star"
	CreatePentagon    ActionType = "create_pentagon"
	CreateHexagon     ActionType = "create_hexagon"
	CreateOctagon     ActionType = "create_octagon"
	CreateLine        ActionType = "create_line"
	CreateText        ActionType = "create_text"
	EditText          ActionType = "edit_text"
	CreatePenStroke   ActionType = "create_pen_stroke"
	CreateBrushStroke ActionType = "create_brush_stroke"
	ImportImage       ActionType = "import_image"
	DeleteObject      ActionType = "delete_object"
	TransformObject   ActionType = "transform_object"
	MoveObject        ActionType = "move_object"
	CropCanvas        ActionType = "crop_canvas"
	ClearCanvas       ActionType = "clear_canvas"
)

var descriptions = map[ActionType]string{
	CreateRectangle:   "Created rectangle",
	CreateEllipse:     "Created ellipse",
	CreateTriangle:    "Created triangle",
	CreateStar:        "Created star",
	CreatePentagon:    "Created pentagon",
	CreateHexagon:     "Created hexagon",
	CreateOctagon:     "Created octagon",
	CreateLine:        "Created line",
	CreateText:        "Added text",
	EditText:          "Edited text",
	CreatePenStroke:   "Drew with pen",
	CreateBrushStroke: "Painted with brush",
	ImportImage:       "Imported image",
	DeleteObject:      "Deleted object",
	TransformObject:   "Transformed object",
	MoveObject:        "Moved object",
	CropCanvas:        "Cropped canvas",
	ClearCanvas:       "Cleared canvas",
}

// Description returns the default label for t.
func (t ActionType) Description() string {
	if d, ok := descriptions[t]; ok {
		return d
	}
	return string(t)
}

// Valid reports whether t is a known action type.
func (t ActionType) Valid() bool {
	_, ok := descriptions[t]
	return ok
}

// ActionTypes returns every known action type, sorted.
func ActionTypes() []ActionType {
	return slices.Sorted(maps.Keys(descriptions))
}

// CanvasState is the view state captured with an action.
type CanvasState struct {
	ObjectCount int
	Scale       float64
	Position    types.Point
}

// StateProvider reports the current canvas view state.
type StateProvider interface {
	CanvasState() CanvasState
}

// Action is one completed user action.
type Action struct {
	ID          string
	Timestamp   time.Time
	Type        ActionType
	Description string
	ObjectIDs   []string
	Data        map[string]any
	CanvasState CanvasState
}

// String formats the action for the history list.
func (a Action) String() string {
	return fmt.Sprintf("%s %s", a.Timestamp.Format(time.TimeOnly), a.Description)
}

// newActionID returns "action_<unix millis>_<random suffix>".
func newActionID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("action_%d_%s", now.UnixMilli(), suffix)
}
