package app

import (
	"github.com/sinbaddoraji/Dream/internal/logger"
	"github.com/sinbaddoraji/Dream/internal/tui"
)

// drawEditor clears the screen and redraws the canvas and status bar.
func (a *App) drawEditor() {
	a.dirty = false
	a.updateStatusBarContent()

	activeTheme := a.themeManager.Current()
	screen := a.tuiManager.GetScreen()
	width, height := a.tuiManager.Size()
	vp := a.viewport()

	logger.DebugTagf("draw", "drawEditor: screen %dx%d, view %dx%d, scale %.2f",
		width, height, vp.Width, vp.Height, vp.Scale)

	a.tuiManager.Clear()
	tui.DrawCanvas(screen, a.editor, vp, activeTheme)
	a.statusBar.Draw(screen, width, height, activeTheme)
	a.tuiManager.Show()
}

// viewport maps the screen above the status bar onto the canvas.
func (a *App) viewport() tui.Viewport {
	width, height := a.tuiManager.Size()
	viewHeight := height - a.cfg.Editor.StatusBarHeight
	if viewHeight < 0 {
		viewHeight = 0
	}
	return tui.Viewport{
		CellW:  a.cfg.Editor.CellWidth,
		CellH:  a.cfg.Editor.CellHeight,
		Scale:  a.editor.Scale(),
		Pan:    a.editor.Pan(),
		Width:  width,
		Height: viewHeight,
	}
}

// updateStatusBarContent pushes current editor state to the status bar.
func (a *App) updateStatusBarContent() {
	ed := a.editor
	a.statusBar.SetFileInfo(ed.FilePath, ed.IsModified())
	a.statusBar.SetCanvasInfo(ed.Store().Len(), len(ed.SelectedIDs()))
	a.statusBar.SetHistoryInfo(ed.History().CurrentIndex(), ed.History().Len())
	a.statusBar.SetEditorMode(a.modeHandler.GetCurrentMode().String())
	a.statusBar.SetToolInfo(string(a.modeHandler.Tool()), ed.Gesture().String(), ed.Scale())
}
