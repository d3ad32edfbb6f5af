// Package modehandler turns key and mouse input into editor operations and
// runs ':' commands.
package modehandler

import (
	"fmt"
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/sinbaddoraji/Dream/internal/config"
	"github.com/sinbaddoraji/Dream/internal/core"
	"github.com/sinbaddoraji/Dream/internal/event"
	"github.com/sinbaddoraji/Dream/internal/input"
	"github.com/sinbaddoraji/Dream/internal/logger"
	"github.com/sinbaddoraji/Dream/internal/plugin"
	"github.com/sinbaddoraji/Dream/internal/statusbar"
)

// InputMode defines the different states for user input.
type InputMode int

const (
	ModeNormal InputMode = iota
	ModeCommand
)

func (m InputMode) String() string {
	if m == ModeCommand {
		return "COMMAND"
	}
	return "NORMAL"
}

const (
	zoomFactor = 1.25
	minZoom    = 0.1
	maxZoom    = 10.0
	shiftNudge = 10.0 // Nudge multiplier while Shift is held
	panCells   = 4.0
)

// ModeHandler manages input modes, the active tool, command execution and
// related state.
type ModeHandler struct {
	// Dependencies (references to components managed by App)
	editor         *core.Editor
	inputProcessor *input.InputProcessor
	eventManager   *event.Manager
	statusBar      *statusbar.StatusBar
	quitSignal     chan<- struct{}
	save           func() error
	cellW, cellH   float64

	// Internal State
	currentMode      InputMode
	cmdBuffer        []rune
	commands         map[string]plugin.CommandFunc
	forceQuitPending bool
	quitting         bool
	tool             Tool
	buttonDown       bool
}

// Config holds dependencies for the ModeHandler.
type Config struct {
	Editor         *core.Editor
	InputProcessor *input.InputProcessor
	EventManager   *event.Manager
	StatusBar      *statusbar.StatusBar
	QuitSignal     chan<- struct{} // Write-only channel to signal quit
	Save           func() error    // Saves the project; nil disables Ctrl+S
	CellWidth      float64         // Canvas units per cell, used for panning
	CellHeight     float64
}

// New creates a new ModeHandler.
func New(cfg Config) *ModeHandler {
	if cfg.Editor == nil || cfg.InputProcessor == nil || cfg.EventManager == nil || cfg.StatusBar == nil || cfg.QuitSignal == nil {
		panic("modehandler.New: Missing required dependencies in Config")
	}
	if cfg.CellWidth <= 0 || cfg.CellHeight <= 0 {
		cfg.CellWidth, cfg.CellHeight = config.DefaultCellWidth, config.DefaultCellHeight
	}
	return &ModeHandler{
		editor:         cfg.Editor,
		inputProcessor: cfg.InputProcessor,
		eventManager:   cfg.EventManager,
		statusBar:      cfg.StatusBar,
		quitSignal:     cfg.QuitSignal,
		save:           cfg.Save,
		cellW:          cfg.CellWidth,
		cellH:          cfg.CellHeight,
		currentMode:    ModeNormal,
		commands:       make(map[string]plugin.CommandFunc),
		tool:           ToolSelect,
	}
}

// HandleKeyEvent decides what to do based on current mode and key event.
// Returns true if the event resulted in an action requiring redraw.
func (mh *ModeHandler) HandleKeyEvent(ev *tcell.EventKey) bool {
	mh.eventManager.Dispatch(event.TypeKeyPressed, event.KeyPressedData{KeyEvent: ev})

	actionEvent := mh.inputProcessor.ProcessEvent(ev)

	switch mh.currentMode {
	case ModeNormal:
		return mh.handleActionNormal(actionEvent)
	case ModeCommand:
		return mh.handleActionCommand(actionEvent)
	default:
		logger.Debugf("Warning: Unknown input mode: %v", mh.currentMode)
		return false
	}
}

// RegisterCommand adds a command to the registry. Called via EditorAPI.
func (mh *ModeHandler) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	if name == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	if cmdFunc == nil {
		return fmt.Errorf("command '%s' has no handler", name)
	}
	if _, exists := mh.commands[name]; exists {
		return fmt.Errorf("command '%s' already registered", name)
	}
	mh.commands[name] = cmdFunc
	logger.Debugf("ModeHandler: Registered command ':%s'", name)
	return nil
}

// Commands lists the registered command names in sorted order.
func (mh *ModeHandler) Commands() []string {
	names := make([]string, 0, len(mh.commands))
	for name := range mh.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetCurrentMode returns the current input mode.
func (mh *ModeHandler) GetCurrentMode() InputMode {
	return mh.currentMode
}

// GetCommandBuffer returns the command being typed, empty outside command mode.
func (mh *ModeHandler) GetCommandBuffer() string {
	if mh.currentMode == ModeCommand {
		return string(mh.cmdBuffer)
	}
	return ""
}

// Tool returns the active pointer tool.
func (mh *ModeHandler) Tool() Tool {
	return mh.tool
}

// SetTool switches the pointer tool, cancelling any gesture in progress.
func (mh *ModeHandler) SetTool(t Tool) {
	if t == mh.tool {
		return
	}
	mh.editor.CancelGesture()
	mh.buttonDown = false
	mh.tool = t
	logger.DebugTagf("input", "ModeHandler: tool set to %s", t)
}

// RequestQuit closes the quit channel once. force skips the unsaved-changes
// check.
func (mh *ModeHandler) RequestQuit(force bool) bool {
	if !force && mh.editor.IsModified() && !mh.forceQuitPending {
		mh.statusBar.SetTemporaryMessage("Unsaved changes! Quit again or use :q! to discard them.")
		mh.forceQuitPending = true
		return false
	}
	if !mh.quitting {
		mh.quitting = true
		close(mh.quitSignal)
	}
	return true
}
