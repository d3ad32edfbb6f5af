package drawhistory

import (
	"maps"
	"slices"
	"time"

	"github.com/sinbaddoraji/Dream/internal/logger"
)

// MaxActions bounds the log length.
const MaxActions = 100

// HistoryState is a snapshot of the log for display.
type HistoryState struct {
	Actions        []Action
	CurrentIndex   int
	MaxHistorySize int
}

// Manager is the action log. It is not safe for concurrent use.
type Manager struct {
	actions      []Action
	currentIndex int
	state        StateProvider
	now          func() time.Time
}

// NewManager creates an empty log. state may be nil.
func NewManager(state StateProvider) *Manager {
	return &Manager{currentIndex: -1, state: state, now: time.Now}
}

// AddAction appends an action after the cursor, dropping any actions past it.
// An empty description uses the type's default.
func (m *Manager) AddAction(typ ActionType, objectIDs []string, data map[string]any, description string) Action {
	now := m.now()
	if description == "" {
		description = typ.Description()
	}
	a := Action{
		ID:          newActionID(now),
		Timestamp:   now,
		Type:        typ,
		Description: description,
		ObjectIDs:   slices.Clone(objectIDs),
		Data:        maps.Clone(data),
	}
	if m.state != nil {
		a.CanvasState = m.state.CanvasState()
	}

	m.actions = append(m.actions[:m.currentIndex+1], a)
	if len(m.actions) > MaxActions {
		m.actions = slices.Clone(m.actions[len(m.actions)-MaxActions:])
	}
	m.currentIndex = len(m.actions) - 1

	logger.DebugTagf("drawhistory", "DrawHistory: %s (%s). Index: %d, Count: %d", a.Description, a.ID, m.currentIndex, len(m.actions))
	return a
}

// GoToAction moves the cursor to index. Out-of-range indexes are ignored.
func (m *Manager) GoToAction(index int) bool {
	if index < 0 || index >= len(m.actions) {
		return false
	}
	m.currentIndex = index
	return true
}

func (m *Manager) GoToPrevious() bool { return m.GoToAction(m.currentIndex - 1) }
func (m *Manager) GoToNext() bool     { return m.GoToAction(m.currentIndex + 1) }
func (m *Manager) GoToFirst() bool    { return m.GoToAction(0) }
func (m *Manager) GoToLast() bool     { return m.GoToAction(len(m.actions) - 1) }

// ClearHistory empties the log.
func (m *Manager) ClearHistory() {
	m.actions = nil
	m.currentIndex = -1
}

// CurrentAction returns the action under the cursor.
func (m *Manager) CurrentAction() (Action, bool) {
	if m.currentIndex < 0 || m.currentIndex >= len(m.actions) {
		return Action{}, false
	}
	return m.actions[m.currentIndex], true
}

// HistoryState returns a copy of the log and cursor.
func (m *Manager) HistoryState() HistoryState {
	return HistoryState{
		Actions:        slices.Clone(m.actions),
		CurrentIndex:   m.currentIndex,
		MaxHistorySize: MaxActions,
	}
}

func (m *Manager) CanGoBack() bool    { return m.currentIndex > 0 }
func (m *Manager) CanGoForward() bool { return m.currentIndex < len(m.actions)-1 }
func (m *Manager) HasHistory() bool   { return len(m.actions) > 0 }
func (m *Manager) Len() int           { return len(m.actions) }
func (m *Manager) CurrentIndex() int  { return m.currentIndex }
