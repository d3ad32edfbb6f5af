// Package history provides undo/redo over reversible editor commands.
package history

import (
	"sync"
	"sync/atomic"

	"github.com/sinbaddoraji/Dream/internal/logger"
)

const DefaultMaxHistory = 100

// Command is a reversible editor operation.
type Command interface {
	Execute()
	Undo()
	Redo()
	Description() string
}

// Manager handles the undo/redo stack.
type Manager struct {
	commands     []Command
	currentIndex int // Index of the last applied command, -1 when none
	maxHistory   int
	mutex        sync.Mutex
	busy         atomic.Bool // Set while a command callback runs
	generation   uint64      // Bumped when Clear or a resize reshapes the stack
}

// NewManager creates a history manager.
func NewManager(maxHistory int) *Manager {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &Manager{
		commands:     make([]Command, 0, min(maxHistory, DefaultMaxHistory)),
		currentIndex: -1,
		maxHistory:   maxHistory,
	}
}

// enter claims the manager for one operation. Calls made from inside a
// command callback are refused.
func (m *Manager) enter(op string) bool {
	if !m.busy.CompareAndSwap(false, true) {
		logger.Warnf("History: %s refused, called from inside a command", op)
		return false
	}
	return true
}

func (m *Manager) leave() { m.busy.Store(false) }

// Execute runs cmd and records it, clearing any redo history.
func (m *Manager) Execute(cmd Command) bool {
	if cmd == nil {
		logger.Warnf("History: ignoring nil command")
		return false
	}
	if !m.enter("execute") {
		return false
	}
	defer m.leave()

	// Callbacks run unlocked so commands may read the history.
	cmd.Execute()

	m.mutex.Lock()
	defer m.mutex.Unlock()

	// Drop the redo branch
	if m.currentIndex+1 < len(m.commands) {
		clear(m.commands[m.currentIndex+1:])
		m.commands = m.commands[:m.currentIndex+1]
	}
	m.commands = append(m.commands, cmd)

	if len(m.commands) > m.maxHistory {
		// Evict the oldest; the cursor still points at cmd.
		m.commands[0] = nil
		m.commands = m.commands[1:]
	} else {
		m.currentIndex++
	}

	logger.DebugTagf("history", "History: executed %q. Index: %d, Count: %d", cmd.Description(), m.currentIndex, len(m.commands))
	return true
}

// Undo reverts the last applied command.
func (m *Manager) Undo() bool {
	if !m.enter("undo") {
		return false
	}
	defer m.leave()

	m.mutex.Lock()
	if m.currentIndex < 0 {
		m.mutex.Unlock()
		logger.DebugTagf("history", "History: nothing to undo")
		return false
	}
	cmd := m.commands[m.currentIndex]
	gen := m.generation
	m.mutex.Unlock()

	cmd.Undo()

	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.generation == gen {
		m.currentIndex--
	}
	logger.DebugTagf("history", "History: undid %q. Index: %d", cmd.Description(), m.currentIndex)
	return true
}

// Redo reapplies the next undone command.
func (m *Manager) Redo() bool {
	if !m.enter("redo") {
		return false
	}
	defer m.leave()

	m.mutex.Lock()
	if m.currentIndex >= len(m.commands)-1 {
		logger.DebugTagf("history", "History: nothing to redo. Index: %d, Count: %d", m.currentIndex, len(m.commands))
		m.mutex.Unlock()
		return false
	}
	next := m.currentIndex + 1
	cmd := m.commands[next]
	gen := m.generation
	m.mutex.Unlock()

	cmd.Redo()

	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.generation == gen {
		m.currentIndex = next
	}
	logger.DebugTagf("history", "History: redid %q. Index: %d", cmd.Description(), m.currentIndex)
	return true
}

// CanUndo returns true if there are commands that can be undone.
func (m *Manager) CanUndo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.currentIndex >= 0
}

// CanRedo returns true if there are commands that can be redone.
func (m *Manager) CanRedo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.currentIndex < len(m.commands)-1
}

// Clear resets the history stack without touching the commands' effects.
func (m *Manager) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	clear(m.commands)
	m.commands = m.commands[:0]
	m.currentIndex = -1
	m.generation++
	logger.DebugTagf("history", "History: cleared")
}

// History returns a copy of the recorded commands, oldest first.
func (m *Manager) History() []Command {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	out := make([]Command, len(m.commands))
	copy(out, m.commands)
	return out
}

// CurrentIndex returns the index of the last applied command, or -1.
func (m *Manager) CurrentIndex() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.currentIndex
}

// Len returns the number of recorded commands.
func (m *Manager) Len() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.commands)
}

// MaxHistorySize returns the history bound.
func (m *Manager) MaxHistorySize() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.maxHistory
}

// SetMaxHistorySize changes the bound, dropping the oldest commands when the
// history is longer than size. Sizes below 1 are clamped to 1.
func (m *Manager) SetMaxHistorySize(size int) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.maxHistory = max(size, 1)
	if excess := len(m.commands) - m.maxHistory; excess > 0 {
		clear(m.commands[:excess])
		m.commands = m.commands[excess:]
		m.currentIndex = max(m.currentIndex-excess, -1)
		m.generation++
	}
	logger.DebugTagf("history", "History: max size %d. Index: %d, Count: %d", m.maxHistory, m.currentIndex, len(m.commands))
}
