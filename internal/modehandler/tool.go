package modehandler

import "github.com/sinbaddoraji/Dream/internal/canvas"

// Tool is the pointer tool used by mouse presses in normal mode.
type Tool string

const (
	ToolSelect Tool = "select"
	ToolLasso  Tool = "lasso"
	ToolPen    Tool = "pen"
)

// toolRunes binds the tool-selection keys.
var toolRunes = map[rune]Tool{
	'v': ToolSelect,
	'l': ToolLasso,
	'r': Tool(canvas.TypeRectangle),
	'e': Tool(canvas.TypeEllipse),
	'i': Tool(canvas.TypeLine),
	't': Tool(canvas.TypeTriangle),
	'p': Tool(canvas.TypePentagon),
	'h': Tool(canvas.TypeHexagon),
	'o': Tool(canvas.TypeOctagon),
	's': Tool(canvas.TypeStar),
	'f': ToolPen,
}

// ParseTool resolves a tool name as typed in commands.
func ParseTool(name string) (Tool, bool) {
	switch t := Tool(name); t {
	case ToolSelect, ToolLasso, ToolPen:
		return t, true
	}
	if kind, ok := canvas.ParseType(name); ok && kind != canvas.TypePath {
		return Tool(kind), true
	}
	return "", false
}

// shape returns the canvas type a drawing tool creates.
func (t Tool) shape() (canvas.Type, bool) {
	switch t {
	case ToolSelect, ToolLasso, ToolPen:
		return "", false
	}
	return canvas.Type(t), true
}
