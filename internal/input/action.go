// Package input translates terminal key events into editor actions.
package input

// Action represents a command or operation to be performed by the editor.
type Action int

const (
	// --- Meta Actions ---
	ActionUnknown Action = iota
	ActionQuit
	ActionForceQuit // Quit without checking modified status
	ActionSave
	ActionEscape // Cancel gesture, then clear selection

	// --- History ---
	ActionUndo
	ActionRedo

	// --- Selection ---
	ActionSelectAll
	ActionDelete

	// --- Clipboard ---
	ActionCopy
	ActionCut
	ActionPaste

	// --- Nudge (Shift multiplies the step) ---
	ActionNudgeUp
	ActionNudgeDown
	ActionNudgeLeft
	ActionNudgeRight

	// --- Object state ---
	ActionGroup
	ActionUngroup
	ActionLock
	ActionUnlockAll
	ActionHide
	ActionShowAll
	ActionBringToFront
	ActionSendToBack
	ActionBringForward
	ActionSendBackward

	// --- View ---
	ActionZoomIn
	ActionZoomOut
	ActionZoomReset
	ActionPanUp
	ActionPanDown
	ActionPanLeft
	ActionPanRight

	// --- Tools (Rune carries the binding) ---
	ActionSelectTool

	// --- Command line ---
	ActionInsertRune // Requires Rune argument
	ActionEnter
	ActionBackspace
	ActionEnterCommandMode
)

// ActionEvent represents a decoded input event resulting in an action.
type ActionEvent struct {
	Action Action
	Rune   rune // Set for rune bindings and ActionInsertRune
	Shift  bool
}
