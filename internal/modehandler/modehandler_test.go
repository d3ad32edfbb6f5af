package modehandler

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/sinbaddoraji/Dream/internal/canvas"
	"github.com/sinbaddoraji/Dream/internal/core"
	"github.com/sinbaddoraji/Dream/internal/event"
	"github.com/sinbaddoraji/Dream/internal/input"
	"github.com/sinbaddoraji/Dream/internal/statusbar"
	"github.com/sinbaddoraji/Dream/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	mh     *ModeHandler
	editor *core.Editor
	status *statusbar.StatusBar
	quit   chan struct{}
	saves  int
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		editor: core.NewEditor(core.Options{NudgeStep: 1}),
		status: statusbar.New(statusbar.DefaultConfig()),
		quit:   make(chan struct{}),
	}
	h.mh = New(Config{
		Editor:         h.editor,
		InputProcessor: input.NewInputProcessor(),
		EventManager:   event.NewManager(),
		StatusBar:      h.status,
		QuitSignal:     h.quit,
		Save: func() error {
			h.saves++
			return nil
		},
	})
	return h
}

func key(k tcell.Key, mod tcell.ModMask) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, mod)
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func (h *harness) typeLine(line string) {
	h.mh.HandleKeyEvent(runeKey(':'))
	for _, r := range line {
		h.mh.HandleKeyEvent(runeKey(r))
	}
	h.mh.HandleKeyEvent(key(tcell.KeyEnter, tcell.ModNone))
}

func (h *harness) message() string {
	text, _ := h.status.Text()
	return text
}

func quitClosed(ch chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

func TestDrawRectangleWithMouseThenUndo(t *testing.T) {
	h := newHarness(t)
	require.True(t, h.mh.HandleKeyEvent(runeKey('r')))
	assert.Equal(t, Tool(canvas.TypeRectangle), h.mh.Tool())

	h.mh.HandlePointer(PointerPress, types.Pt(10, 10), false)
	assert.Equal(t, core.GestureDraw, h.editor.Gesture())
	h.mh.HandlePointer(PointerDrag, types.Pt(50, 40), false)
	h.mh.HandlePointer(PointerRelease, types.Pt(60, 50), false)

	require.Equal(t, 1, h.editor.Store().Len())
	obj := h.editor.Store().List()[0]
	assert.Equal(t, canvas.TypeRectangle, obj.Type)
	assert.InDelta(t, 50, obj.Bounds().Width, 1e-9)

	h.mh.HandleKeyEvent(key(tcell.KeyCtrlZ, tcell.ModCtrl))
	assert.Equal(t, 0, h.editor.Store().Len())
	h.mh.HandleKeyEvent(runeKey('U'))
	assert.Equal(t, 1, h.editor.Store().Len())
}

func TestMouseEventPhases(t *testing.T) {
	h := newHarness(t)
	h.mh.SetTool(ToolPen)
	toCanvas := func(x, y int) types.Point { return types.Pt(float64(x)*8, float64(y)*16) }

	h.mh.HandleMouseEvent(tcell.NewEventMouse(1, 1, tcell.Button1, tcell.ModNone), toCanvas)
	assert.Equal(t, core.GesturePen, h.editor.Gesture())
	h.mh.HandleMouseEvent(tcell.NewEventMouse(4, 2, tcell.Button1, tcell.ModNone), toCanvas)
	h.mh.HandleMouseEvent(tcell.NewEventMouse(6, 3, tcell.ButtonNone, tcell.ModNone), toCanvas)

	assert.Equal(t, core.GestureNone, h.editor.Gesture())
	require.Equal(t, 1, h.editor.Store().Len())
	assert.Equal(t, canvas.TypePath, h.editor.Store().List()[0].Type)

	// A release without a press is ignored.
	assert.False(t, h.mh.HandleMouseEvent(tcell.NewEventMouse(6, 3, tcell.ButtonNone, tcell.ModNone), toCanvas))

	h.mh.HandleMouseEvent(tcell.NewEventMouse(0, 0, tcell.WheelUp, tcell.ModNone), toCanvas)
	assert.InDelta(t, zoomFactor, h.editor.Scale(), 1e-9)
}

func TestNudgeWithShift(t *testing.T) {
	h := newHarness(t)
	obj, err := h.editor.AddShape(canvas.TypeRectangle, types.Pt(0, 0), types.Pt(20, 20))
	require.NoError(t, err)

	h.mh.HandleKeyEvent(key(tcell.KeyRight, tcell.ModNone))
	h.mh.HandleKeyEvent(key(tcell.KeyDown, tcell.ModShift))

	b := obj.Bounds()
	assert.InDelta(t, 1, b.X, 1e-9)
	assert.InDelta(t, 10, b.Y, 1e-9)
}

func TestEscapeCancelsGestureThenSelection(t *testing.T) {
	h := newHarness(t)
	_, err := h.editor.AddShape(canvas.TypeRectangle, types.Pt(0, 0), types.Pt(100, 100))
	require.NoError(t, err)

	h.mh.HandlePointer(PointerPress, types.Pt(50, 50), false)
	require.Equal(t, core.GestureMove, h.editor.Gesture())

	assert.True(t, h.mh.HandleKeyEvent(key(tcell.KeyEscape, tcell.ModNone)))
	assert.Equal(t, core.GestureNone, h.editor.Gesture())
	assert.True(t, h.editor.HasSelection())

	assert.True(t, h.mh.HandleKeyEvent(key(tcell.KeyEscape, tcell.ModNone)))
	assert.False(t, h.editor.HasSelection())
	assert.False(t, h.mh.HandleKeyEvent(key(tcell.KeyEscape, tcell.ModNone)))
}

func TestCommandMode(t *testing.T) {
	h := newHarness(t)
	var got []string
	require.NoError(t, h.mh.RegisterCommand("echo", func(args []string) error {
		got = args
		return nil
	}))
	require.NoError(t, h.mh.RegisterCommand("fail", func([]string) error {
		return errors.New("boom")
	}))
	assert.Error(t, h.mh.RegisterCommand("echo", func([]string) error { return nil }))
	assert.Error(t, h.mh.RegisterCommand("", func([]string) error { return nil }))
	assert.Equal(t, []string{"echo", "fail"}, h.mh.Commands())

	h.mh.HandleKeyEvent(runeKey(':'))
	assert.Equal(t, ModeCommand, h.mh.GetCurrentMode())
	// Bound runes are text while typing a command.
	for _, r := range "echo ux" {
		h.mh.HandleKeyEvent(runeKey(r))
	}
	assert.Equal(t, "echo ux", h.mh.GetCommandBuffer())
	assert.Equal(t, ":echo ux", h.message())
	h.mh.HandleKeyEvent(key(tcell.KeyBackspace2, tcell.ModNone))
	h.mh.HandleKeyEvent(key(tcell.KeyEnter, tcell.ModNone))

	assert.Equal(t, ModeNormal, h.mh.GetCurrentMode())
	assert.Equal(t, []string{"u"}, got)

	h.typeLine("fail")
	assert.Contains(t, h.message(), "boom")

	h.typeLine("nope")
	assert.Equal(t, "Unknown command: nope", h.message())
}

func TestCommandModeEscapeAndBackspace(t *testing.T) {
	h := newHarness(t)
	h.mh.HandleKeyEvent(runeKey(':'))
	h.mh.HandleKeyEvent(runeKey('w'))
	h.mh.HandleKeyEvent(key(tcell.KeyEscape, tcell.ModNone))
	assert.Equal(t, ModeNormal, h.mh.GetCurrentMode())
	assert.Equal(t, "", h.mh.GetCommandBuffer())

	h.mh.HandleKeyEvent(runeKey(':'))
	h.mh.HandleKeyEvent(key(tcell.KeyBackspace, tcell.ModNone))
	assert.Equal(t, ModeNormal, h.mh.GetCurrentMode())
}

func TestQuitNeedsConfirmationWhenModified(t *testing.T) {
	h := newHarness(t)
	_, err := h.editor.AddShape(canvas.TypeEllipse, types.Pt(0, 0), types.Pt(20, 20))
	require.NoError(t, err)

	h.mh.HandleKeyEvent(key(tcell.KeyCtrlQ, tcell.ModCtrl))
	assert.False(t, quitClosed(h.quit))
	assert.Contains(t, h.message(), "Unsaved changes")

	h.mh.HandleKeyEvent(key(tcell.KeyCtrlQ, tcell.ModCtrl))
	assert.True(t, quitClosed(h.quit))
	// A second request must not close the channel again.
	assert.NotPanics(t, func() { h.mh.RequestQuit(true) })
}

func TestSaveKey(t *testing.T) {
	h := newHarness(t)
	h.editor.FilePath = "art.dream.json"
	h.mh.HandleKeyEvent(key(tcell.KeyCtrlS, tcell.ModCtrl))
	assert.Equal(t, 1, h.saves)
	assert.Equal(t, "Saved art.dream.json", h.message())
}

func TestZoomAndPan(t *testing.T) {
	h := newHarness(t)
	for i := 0; i < 30; i++ {
		h.mh.HandleKeyEvent(runeKey('+'))
	}
	assert.Equal(t, maxZoom, h.editor.Scale())
	h.mh.HandleKeyEvent(runeKey('0'))
	assert.Equal(t, 1.0, h.editor.Scale())

	h.mh.HandleKeyEvent(key(tcell.KeyPgDn, tcell.ModNone))
	h.mh.HandleKeyEvent(key(tcell.KeyEnd, tcell.ModNone))
	assert.Equal(t, types.Pt(panCells*8, panCells*16), h.editor.Pan())
}

func TestParseTool(t *testing.T) {
	tool, ok := ParseTool("star")
	assert.True(t, ok)
	assert.Equal(t, Tool(canvas.TypeStar), tool)
	_, ok = ParseTool("path")
	assert.False(t, ok)
	tool, ok = ParseTool("lasso")
	assert.True(t, ok)
	assert.Equal(t, ToolLasso, tool)
}
