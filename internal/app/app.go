// Package app wires the editor, terminal UI, storage and plugins together.
package app

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/gdamore/tcell/v2"
	"github.com/sinbaddoraji/Dream/internal/commands"
	"github.com/sinbaddoraji/Dream/internal/config"
	"github.com/sinbaddoraji/Dream/internal/core"
	"github.com/sinbaddoraji/Dream/internal/event"
	"github.com/sinbaddoraji/Dream/internal/input"
	"github.com/sinbaddoraji/Dream/internal/logger"
	"github.com/sinbaddoraji/Dream/internal/metrics"
	"github.com/sinbaddoraji/Dream/internal/modehandler"
	"github.com/sinbaddoraji/Dream/internal/plugin"
	"github.com/sinbaddoraji/Dream/internal/statusbar"
	"github.com/sinbaddoraji/Dream/internal/storage"
	"github.com/sinbaddoraji/Dream/internal/theme"
	"github.com/sinbaddoraji/Dream/internal/tui"
)

// Options configures a new App.
type Options struct {
	Config    *config.Config
	FilePath  string       // Project to open; created on first save when missing
	Screen    tcell.Screen // nil uses the real terminal
	ThemesDir string       // Empty uses the user theme directory
}

// App encapsulates the core components and main loop of the editor.
type App struct {
	cfg           *config.Config
	tuiManager    *tui.TUI
	editor        *core.Editor
	statusBar     *statusbar.StatusBar
	eventManager  *event.Manager
	pluginManager *plugin.Manager
	modeHandler   *modehandler.ModeHandler
	themeManager  *theme.Manager
	editorAPI     *appEditorAPI
	snapshots     *storage.Store
	metrics       *metrics.Recorder

	quit   chan struct{}
	dirty  bool
	closed bool
}

// NewApp creates and initializes a new application instance.
func NewApp(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}

	themesDir := opts.ThemesDir
	if themesDir == "" {
		themesDir = theme.DefaultDir()
	}
	themeManager := theme.NewManager(themesDir)

	var (
		tuiManager *tui.TUI
		err        error
	)
	if opts.Screen != nil {
		tuiManager, err = tui.NewWithScreen(opts.Screen, themeManager.Current())
	} else {
		tuiManager, err = tui.New(themeManager.Current())
	}
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	editor := core.NewEditor(core.OptionsFromConfig(cfg.Editor))
	eventManager := event.NewManager()
	editor.SetEventManager(eventManager)

	recorder, err := metrics.New(editor.Store().Len)
	if err != nil {
		logger.Warnf("App: metrics disabled: %v", err)
	}
	editor.SetMetrics(recorder)

	snapshots, err := storage.Open(cfg.Storage.DSN)
	if err != nil {
		logger.Warnf("App: snapshot storage unavailable: %v", err)
		snapshots = nil
	}

	a := &App{
		cfg:           cfg,
		tuiManager:    tuiManager,
		editor:        editor,
		statusBar:     statusbar.New(statusbar.DefaultConfig()),
		eventManager:  eventManager,
		pluginManager: plugin.NewManager(),
		themeManager:  themeManager,
		snapshots:     snapshots,
		metrics:       recorder,
		quit:          make(chan struct{}),
	}
	a.modeHandler = modehandler.New(modehandler.Config{
		Editor:         editor,
		InputProcessor: input.NewInputProcessor(),
		EventManager:   eventManager,
		StatusBar:      a.statusBar,
		QuitSignal:     a.quit,
		Save:           func() error { return a.SaveProject("") },
		CellWidth:      cfg.Editor.CellWidth,
		CellHeight:     cfg.Editor.CellHeight,
	})
	a.editorAPI = newEditorAPI(a)

	if opts.FilePath != "" {
		err := a.LoadProject(opts.FilePath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			logger.Infof("App: %s does not exist yet, starting a new project", opts.FilePath)
			editor.FilePath = opts.FilePath
		case err != nil:
			a.Close()
			return nil, err
		}
	}

	a.subscribeEvents()
	commands.RegisterAppCommands(a.editorAPI)
	if err := registerPlugins(a.pluginManager); err != nil {
		logger.Warnf("App: %v", err)
	}
	if failed := a.pluginManager.InitializePlugins(a.editorAPI); failed > 0 {
		logger.Warnf("App: %d plugin(s) failed to initialize", failed)
	}

	a.dirty = true
	return a, nil
}

// Run polls terminal events and redraws until quit is requested.
func (a *App) Run() error {
	defer a.Close()

	a.eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{})
	a.statusBar.SetTemporaryMessage("Dream - Ctrl+S Save | : Commands | Ctrl+Q Quit")
	a.drawEditor()

	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return nil
		}
		a.handleEvent(ev)

		select {
		case <-a.quit:
			a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{})
			if a.editor.IsModified() {
				logger.Warnf("App: exited with unsaved changes")
			}
			logger.Infof("Exiting application.")
			return nil
		default:
		}

		if a.dirty {
			a.drawEditor()
		}
	}
}

// handleEvent processes one terminal event on the UI goroutine.
func (a *App) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.tuiManager.Sync()
		a.dirty = true
	case *tcell.EventKey:
		a.modeHandler.HandleKeyEvent(ev)
		a.dirty = true
	case *tcell.EventMouse:
		if a.modeHandler.HandleMouseEvent(ev, a.viewport().ToCanvas) {
			a.dirty = true
		}
	case *tcell.EventInterrupt:
		if fn, ok := ev.Data().(func()); ok {
			fn()
			a.dirty = true
		}
	}
}

// Close shuts down plugins and releases the screen and the database.
func (a *App) Close() {
	if a.closed {
		return
	}
	a.closed = true
	a.pluginManager.ShutdownPlugins()
	if a.snapshots != nil {
		if err := a.snapshots.Close(); err != nil {
			logger.Warnf("App: closing snapshot storage: %v", err)
		}
		a.snapshots = nil
	}
	a.tuiManager.Close()
}

// Editor returns the editing session.
func (a *App) Editor() *core.Editor {
	return a.editor
}

// ModeHandler gives the API adapter access to command registration.
func (a *App) ModeHandler() *modehandler.ModeHandler {
	return a.modeHandler
}

// requestRedraw marks the screen for redrawing after the current event.
func (a *App) requestRedraw() {
	a.dirty = true
}
