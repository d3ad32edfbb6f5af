package modehandler

import (
	"strings"

	"github.com/sinbaddoraji/Dream/internal/input"
	"github.com/sinbaddoraji/Dream/internal/logger"
)

// handleActionCommand handles actions when in ModeCommand.
func (mh *ModeHandler) handleActionCommand(actionEvent input.ActionEvent) bool {
	switch actionEvent.Action {
	case input.ActionBackspace:
		if len(mh.cmdBuffer) > 0 {
			mh.cmdBuffer = mh.cmdBuffer[:len(mh.cmdBuffer)-1]
		} else {
			mh.leaveCommandMode()
			logger.Debugf("ModeHandler: Exiting Command Mode via Backspace")
			return true
		}

	case input.ActionEnter:
		mh.currentMode = ModeNormal
		mh.statusBar.ResetTemporaryMessage()
		mh.executeCommand()
		return true

	case input.ActionEscape:
		mh.leaveCommandMode()
		logger.Debugf("ModeHandler: Canceled Command Mode via Escape")
		return true

	default:
		// Every rune is plain text on the command line, bound or not.
		if actionEvent.Rune == 0 {
			return false
		}
		mh.cmdBuffer = append(mh.cmdBuffer, actionEvent.Rune)
	}

	mh.statusBar.SetCommandLine(":" + string(mh.cmdBuffer))
	return true
}

func (mh *ModeHandler) leaveCommandMode() {
	mh.currentMode = ModeNormal
	mh.cmdBuffer = mh.cmdBuffer[:0]
	mh.statusBar.ResetTemporaryMessage()
}

// executeCommand parses and runs the command in cmdBuffer.
func (mh *ModeHandler) executeCommand() {
	cmdStr := string(mh.cmdBuffer)
	mh.cmdBuffer = mh.cmdBuffer[:0]
	mh.ExecuteCommandLine(cmdStr)
}

// ExecuteCommandLine runs one ':' command line such as "w out.dream.json".
// It reports whether a command was found.
func (mh *ModeHandler) ExecuteCommandLine(line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}
	cmdName, args := parts[0], parts[1:]

	cmdFunc, exists := mh.commands[cmdName]
	if !exists {
		mh.statusBar.SetTemporaryMessage("Unknown command: %s", cmdName)
		return false
	}
	logger.Debugf("ModeHandler: Executing command ':%s' with args %v", cmdName, args)
	if err := cmdFunc(args); err != nil {
		mh.statusBar.SetTemporaryMessage("Error executing command '%s': %v", cmdName, err)
	}
	return true
}
