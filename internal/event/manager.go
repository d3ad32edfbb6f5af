package event

import (
	"sync"

	"github.com/sinbaddoraji/Dream/internal/logger"
)

// Handler receives an event. Returning true stops delivery to later handlers.
type Handler func(e Event) bool

// Manager handles event subscriptions and dispatching.
type Manager struct {
	mu       sync.RWMutex
	handlers map[Type][]Handler
}

// NewManager creates a new event manager.
func NewManager() *Manager {
	return &Manager{
		handlers: make(map[Type][]Handler),
	}
}

// Subscribe adds a handler for eventType.
func (m *Manager) Subscribe(eventType Type, handler Handler) {
	if handler == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.handlers[eventType] = append(m.handlers[eventType], handler)
	logger.DebugTagf("event", "Event Manager: handler subscribed to %v", eventType)
}

// Dispatch delivers an event synchronously to the handlers of its type, in
// subscription order.
func (m *Manager) Dispatch(eventType Type, data any) {
	if m == nil {
		return
	}
	e := Event{Type: eventType, Data: data}

	m.mu.RLock()
	handlers := append([]Handler(nil), m.handlers[eventType]...)
	m.mu.RUnlock()

	if len(handlers) == 0 {
		return
	}
	logger.DebugTagf("event", "Event Manager: dispatching %v to %d handler(s)", eventType, len(handlers))

	for _, handler := range handlers {
		if handler(e) {
			break
		}
	}
}

// HandlerCount returns the number of handlers for eventType.
func (m *Manager) HandlerCount(eventType Type) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.handlers[eventType])
}
