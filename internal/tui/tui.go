// Package tui renders the drawing canvas on a terminal screen.
package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/sinbaddoraji/Dream/internal/theme"
)

// TUI manages the terminal screen using tcell.
type TUI struct {
	screen tcell.Screen
}

// New creates and initializes a TUI on the real terminal.
func New(th *theme.Theme) (*TUI, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create tcell screen: %w", err)
	}
	return NewWithScreen(s, th)
}

// NewWithScreen initializes s with mouse reporting and the theme's
// default style.
func NewWithScreen(s tcell.Screen, th *theme.Theme) (*TUI, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize tcell screen: %w", err)
	}
	s.EnableMouse(tcell.MouseDragEvents)
	if th != nil {
		s.SetStyle(th.GetStyle(theme.StyleDefault))
	}
	return &TUI{screen: s}, nil
}

// Close finalizes the tcell screen.
func (t *TUI) Close() {
	if t.screen != nil {
		t.screen.DisableMouse()
		t.screen.Fini()
	}
}

// PollEvent retrieves the next event.
func (t *TUI) PollEvent() tcell.Event {
	return t.screen.PollEvent()
}

// Post queues fn to run on the goroutine polling events.
func (t *TUI) Post(fn func()) error {
	return t.screen.PostEvent(tcell.NewEventInterrupt(fn))
}

// SetStyle changes the default screen style.
func (t *TUI) SetStyle(th *theme.Theme) {
	t.screen.SetStyle(th.GetStyle(theme.StyleDefault))
}

// Clear clears the entire screen.
func (t *TUI) Clear() {
	t.screen.Clear()
}

// Show makes the changes visible.
func (t *TUI) Show() {
	t.screen.Show()
}

// Sync redraws every cell, used after a resize.
func (t *TUI) Sync() {
	t.screen.Sync()
}

// Size returns the width and height of the terminal screen.
func (t *TUI) Size() (int, int) {
	return t.screen.Size()
}

// GetScreen provides direct access (use with caution).
func (t *TUI) GetScreen() tcell.Screen {
	return t.screen
}
