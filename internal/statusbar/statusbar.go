// Package statusbar draws the one-line editor status.
package statusbar

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
	"github.com/sinbaddoraji/Dream/internal/config"
	"github.com/sinbaddoraji/Dream/internal/theme"
)

// Config defines the behavior of the status bar.
type Config struct {
	MessageTimeout time.Duration
}

// DefaultConfig provides sensible defaults.
func DefaultConfig() Config {
	return Config{MessageTimeout: config.MessageTimeout}
}

// StatusBar represents the UI component for the status line.
type StatusBar struct {
	config Config
	mu     sync.RWMutex
	now    func() time.Time

	filePath   string
	isModified bool
	objects    int
	selected   int
	historyPos int
	historyLen int
	editorMode string
	tool       string
	gesture    string
	zoom       float64

	tempMessage     string
	tempMessageTime time.Time
	sticky          bool // Command line input stays until replaced
}

// New creates a new StatusBar with the given configuration.
func New(config Config) *StatusBar {
	return &StatusBar{config: config, now: time.Now, zoom: 1}
}

// SetFileInfo updates the file path shown in the status bar.
func (sb *StatusBar) SetFileInfo(path string, modified bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.filePath = path
	sb.isModified = modified
}

// SetCanvasInfo updates the object and selection counts.
func (sb *StatusBar) SetCanvasInfo(objects, selected int) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.objects = objects
	sb.selected = selected
}

// SetHistoryInfo updates the undo cursor (-1 when nothing is applied).
func (sb *StatusBar) SetHistoryInfo(current, length int) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.historyPos = current
	sb.historyLen = length
}

// SetEditorMode updates the displayed editor mode.
func (sb *StatusBar) SetEditorMode(mode string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.editorMode = mode
}

// SetToolInfo updates the active tool, gesture and zoom.
func (sb *StatusBar) SetToolInfo(tool, gesture string, zoom float64) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tool = tool
	sb.gesture = gesture
	sb.zoom = zoom
}

// SetTemporaryMessage displays a message for the configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...any) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = sb.now()
	sb.sticky = false
}

// SetCommandLine shows the command being typed until it is replaced or reset.
func (sb *StatusBar) SetCommandLine(text string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = text
	sb.tempMessageTime = sb.now()
	sb.sticky = true
}

// ResetTemporaryMessage clears any temporary message being displayed
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
	sb.sticky = false
}

// defaultText builds the status line. Callers hold the lock.
func (sb *StatusBar) defaultText() string {
	fPath := sb.filePath
	if fPath == "" {
		fPath = "[No Name]"
	}
	modified := ""
	if sb.isModified {
		modified = " [+]"
	}
	mode := ""
	if sb.editorMode != "" {
		mode = " -- " + sb.editorMode
	}
	tool := sb.tool
	if sb.gesture != "" && sb.gesture != "none" {
		tool += ":" + sb.gesture
	}
	return fmt.Sprintf("%s%s -- %s | Objects: %d | Selected: %d | History: %d/%d | %.0f%%%s",
		fPath, modified, tool, sb.objects, sb.selected, sb.historyPos+1, sb.historyLen, sb.zoom*100, mode)
}

// Text returns the line Draw would render and the style name used for it.
func (sb *StatusBar) Text() (string, string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	active := sb.tempMessage != "" && (sb.sticky || sb.now().Sub(sb.tempMessageTime) <= sb.config.MessageTimeout)
	if !active && !sb.tempMessageTime.IsZero() {
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}
	switch {
	case active && sb.sticky:
		return sb.tempMessage, theme.StyleStatusBarCommand
	case active:
		return sb.tempMessage, theme.StyleStatusBarMessage
	case sb.isModified:
		return sb.defaultText(), theme.StyleStatusBarModified
	default:
		return sb.defaultText(), theme.StyleStatusBar
	}
}

// Draw renders the status bar on the last screen row using visual widths.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int, th *theme.Theme) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - 1
	text, styleName := sb.Text()
	style := th.GetStyle(styleName)

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}

	gr := uniseg.NewGraphemes(text)
	currentX := 0
	for gr.Next() {
		clusterWidth := gr.Width()
		if currentX+clusterWidth > width {
			break
		}
		runes := gr.Runes()
		if len(runes) > 0 {
			screen.SetContent(currentX, y, runes[0], runes[1:], style)
		}
		currentX += clusterWidth
	}
}
