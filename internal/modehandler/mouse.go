package modehandler

import (
	"github.com/gdamore/tcell/v2"
	"github.com/sinbaddoraji/Dream/internal/types"
)

// PointerPhase is the stage of a primary-button interaction.
type PointerPhase int

const (
	PointerPress PointerPhase = iota
	PointerDrag
	PointerRelease
)

// HandleMouseEvent converts a tcell mouse event to a pointer phase at the
// canvas point toCanvas returns for its cell. The wheel zooms. Returns true
// if a redraw is needed.
func (mh *ModeHandler) HandleMouseEvent(ev *tcell.EventMouse, toCanvas func(x, y int) types.Point) bool {
	if mh.currentMode != ModeNormal {
		return false
	}
	buttons := ev.Buttons()
	shift := ev.Modifiers()&tcell.ModShift != 0
	x, y := ev.Position()

	switch {
	case buttons&tcell.WheelUp != 0:
		mh.zoom(zoomFactor)
		return true
	case buttons&tcell.WheelDown != 0:
		mh.zoom(1 / zoomFactor)
		return true
	case buttons&tcell.Button1 != 0:
		if mh.buttonDown {
			return mh.HandlePointer(PointerDrag, toCanvas(x, y), shift)
		}
		return mh.HandlePointer(PointerPress, toCanvas(x, y), shift)
	case buttons == tcell.ButtonNone && mh.buttonDown:
		return mh.HandlePointer(PointerRelease, toCanvas(x, y), shift)
	}
	return false
}

// HandlePointer drives the editor's gesture for the active tool.
func (mh *ModeHandler) HandlePointer(phase PointerPhase, p types.Point, shift bool) bool {
	switch phase {
	case PointerPress:
		mh.buttonDown = true
		mh.forceQuitPending = false
		switch mh.tool {
		case ToolSelect:
			mh.editor.PointerDown(p, shift)
		case ToolLasso:
			mh.editor.BeginLasso(p, shift)
		case ToolPen:
			mh.editor.BeginPen(p)
		default:
			kind, _ := mh.tool.shape()
			mh.editor.BeginShape(kind, p)
		}
	case PointerDrag:
		if !mh.buttonDown {
			return false
		}
		mh.editor.PointerDrag(p, shift)
	case PointerRelease:
		if !mh.buttonDown {
			return false
		}
		mh.buttonDown = false
		mh.editor.PointerUp(p)
	}
	return true
}
