package modehandler

import (
	"math"

	"github.com/sinbaddoraji/Dream/internal/core"
	"github.com/sinbaddoraji/Dream/internal/event"
	"github.com/sinbaddoraji/Dream/internal/input"
	"github.com/sinbaddoraji/Dream/internal/logger"
	"github.com/sinbaddoraji/Dream/internal/types"
)

// handleActionNormal handles actions when in ModeNormal.
func (mh *ModeHandler) handleActionNormal(actionEvent input.ActionEvent) bool {
	actionProcessed := true

	switch actionEvent.Action {
	// Mode switching
	case input.ActionEnterCommandMode:
		mh.editor.CancelGesture()
		mh.buttonDown = false
		mh.currentMode = ModeCommand
		mh.cmdBuffer = mh.cmdBuffer[:0]
		mh.statusBar.SetCommandLine(":")
		logger.Debugf("ModeHandler: Entering Command Mode")

	// Quit/Save
	case input.ActionQuit:
		mh.RequestQuit(false)
	case input.ActionForceQuit:
		mh.RequestQuit(true)
	case input.ActionSave:
		mh.saveProject()

	case input.ActionEscape:
		switch {
		case mh.editor.Gesture() != core.GestureNone:
			mh.editor.CancelGesture()
			mh.buttonDown = false
		case mh.editor.HasSelection():
			mh.editor.ClearSelection()
		default:
			actionProcessed = false
		}

	// History
	case input.ActionUndo:
		if !mh.editor.Undo() {
			mh.statusBar.SetTemporaryMessage("Nothing to undo")
		}
	case input.ActionRedo:
		if !mh.editor.Redo() {
			mh.statusBar.SetTemporaryMessage("Nothing to redo")
		}

	// Selection
	case input.ActionSelectAll:
		mh.editor.SelectAll()
	case input.ActionDelete:
		if n := mh.editor.DeleteSelected(); n > 0 {
			mh.statusBar.SetTemporaryMessage("Deleted %d object(s)", n)
		} else {
			actionProcessed = false
		}

	// Clipboard
	case input.ActionCopy:
		n, err := mh.editor.Copy()
		mh.reportClipboard("Copied", n, err)
	case input.ActionCut:
		n, err := mh.editor.Cut()
		mh.reportClipboard("Cut", n, err)
	case input.ActionPaste:
		n, err := mh.editor.Paste()
		if err == nil && n == 0 {
			mh.statusBar.SetTemporaryMessage("Clipboard empty")
			break
		}
		mh.reportClipboard("Pasted", n, err)

	// Nudge
	case input.ActionNudgeUp:
		actionProcessed = mh.nudge(0, -1, actionEvent.Shift)
	case input.ActionNudgeDown:
		actionProcessed = mh.nudge(0, 1, actionEvent.Shift)
	case input.ActionNudgeLeft:
		actionProcessed = mh.nudge(-1, 0, actionEvent.Shift)
	case input.ActionNudgeRight:
		actionProcessed = mh.nudge(1, 0, actionEvent.Shift)

	// Object state
	case input.ActionGroup:
		if g, err := mh.editor.GroupSelected(""); err != nil {
			mh.statusBar.SetTemporaryMessage("Group failed: %v", err)
		} else {
			mh.statusBar.SetTemporaryMessage("Grouped %d object(s)", len(g.ObjectIDs))
		}
	case input.ActionUngroup:
		mh.statusBar.SetTemporaryMessage("Ungrouped %d group(s)", mh.editor.UngroupSelected())
	case input.ActionLock:
		mh.statusBar.SetTemporaryMessage("Locked %d object(s)", mh.editor.LockSelected())
	case input.ActionUnlockAll:
		mh.statusBar.SetTemporaryMessage("Unlocked %d object(s)", mh.editor.UnlockAll())
	case input.ActionHide:
		mh.statusBar.SetTemporaryMessage("Hid %d object(s)", mh.editor.HideSelected())
	case input.ActionShowAll:
		mh.statusBar.SetTemporaryMessage("Showed %d object(s)", mh.editor.ShowAll())
	case input.ActionBringToFront:
		mh.editor.BringToFront()
	case input.ActionSendToBack:
		mh.editor.SendToBack()
	case input.ActionBringForward:
		mh.editor.BringForward()
	case input.ActionSendBackward:
		mh.editor.SendBackward()

	// View
	case input.ActionZoomIn:
		mh.zoom(zoomFactor)
	case input.ActionZoomOut:
		mh.zoom(1 / zoomFactor)
	case input.ActionZoomReset:
		mh.editor.SetScale(1)
	case input.ActionPanUp:
		mh.pan(0, -1)
	case input.ActionPanDown:
		mh.pan(0, 1)
	case input.ActionPanLeft:
		mh.pan(-1, 0)
	case input.ActionPanRight:
		mh.pan(1, 0)

	// Tools
	case input.ActionSelectTool:
		tool, ok := toolRunes[actionEvent.Rune]
		if !ok {
			actionProcessed = false
			break
		}
		mh.SetTool(tool)
		mh.statusBar.SetTemporaryMessage("Tool: %s", tool)

	default:
		actionProcessed = false
	}

	// Any other successful action cancels a pending quit confirmation.
	if actionEvent.Action != input.ActionQuit && actionEvent.Action != input.ActionUnknown && actionProcessed {
		mh.forceQuitPending = false
	}
	return actionProcessed
}

func (mh *ModeHandler) saveProject() {
	if mh.save == nil {
		mh.statusBar.SetTemporaryMessage("Saving is not available")
		return
	}
	if err := mh.save(); err != nil {
		mh.statusBar.SetTemporaryMessage("Save FAILED: %v", err)
		return
	}
	path := mh.editor.FilePath
	mh.statusBar.SetTemporaryMessage("Saved %s", path)
	mh.eventManager.Dispatch(event.TypeProjectSaved, event.ProjectData{FilePath: path})
}

func (mh *ModeHandler) reportClipboard(verb string, n int, err error) {
	if err != nil {
		mh.statusBar.SetTemporaryMessage("%s failed: %v", verb, err)
		logger.Debugf("ModeHandler: %s error: %v", verb, err)
		return
	}
	mh.statusBar.SetTemporaryMessage("%s %d object(s)", verb, n)
}

func (mh *ModeHandler) nudge(dx, dy float64, shift bool) bool {
	if shift {
		dx, dy = dx*shiftNudge, dy*shiftNudge
	}
	return mh.editor.NudgeSelected(dx, dy)
}

func (mh *ModeHandler) zoom(factor float64) {
	s := math.Min(maxZoom, math.Max(minZoom, mh.editor.Scale()*factor))
	mh.editor.SetScale(s)
}

// pan shifts the view by panCells cells in the given direction.
func (mh *ModeHandler) pan(dx, dy float64) {
	s := mh.editor.Scale()
	mh.editor.PanBy(types.Pt(dx*panCells*mh.cellW/s, dy*panCells*mh.cellH/s))
}
