package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/sinbaddoraji/Dream/internal/commands"
	"github.com/sinbaddoraji/Dream/internal/event"
	"github.com/sinbaddoraji/Dream/internal/logger"
	"github.com/sinbaddoraji/Dream/internal/project"
	"github.com/sinbaddoraji/Dream/internal/scene"
	"github.com/sinbaddoraji/Dream/internal/storage"
)

const exportBackground = "#FFFFFF"

// SaveProject writes the canvas to path, or to the current file when path is empty.
func (a *App) SaveProject(path string) error {
	if path == "" {
		path = a.editor.FilePath
	}
	if path == "" {
		return commands.ErrNoFileName
	}
	if err := project.SaveFile(path, a.editor.Document()); err != nil {
		logger.Errorf("App: saving %s: %v", path, err)
		return err
	}
	a.editor.FilePath = path
	a.editor.SetModified(false)
	logger.Infof("App: saved %d object(s) to %s", a.editor.Store().Len(), path)
	a.requestRedraw()
	return nil
}

// LoadProject replaces the canvas with the project at path.
func (a *App) LoadProject(path string) error {
	doc, err := project.LoadFile(path)
	if err != nil {
		return err
	}
	if err := a.editor.LoadDocument(doc); err != nil {
		return fmt.Errorf("restoring %s: %w", path, err)
	}
	a.editor.FilePath = path
	a.eventManager.Dispatch(event.TypeProjectLoaded, event.ProjectData{FilePath: path})
	a.requestRedraw()
	return nil
}

// ExportPNG renders the visible objects to a PNG the size of the page.
func (a *App) ExportPNG(path string) error {
	w, h := a.editor.Size()
	return scene.Export(path, int(w), int(h), exportBackground, a.editor.Content())
}

// snapshotName keys the project in the snapshot store.
func (a *App) snapshotName() string {
	if a.editor.FilePath == "" {
		return "untitled"
	}
	if abs, err := filepath.Abs(a.editor.FilePath); err == nil {
		return abs
	}
	return a.editor.FilePath
}

// SaveSnapshot records the canvas and prunes old snapshots.
func (a *App) SaveSnapshot(label string) (*storage.Snapshot, bool, error) {
	if a.snapshots == nil {
		return nil, false, commands.ErrNoStorage
	}
	ctx := context.Background()
	name := a.snapshotName()
	snap, saved, err := a.snapshots.Save(ctx, name, label, a.editor.Document())
	if err != nil {
		return nil, false, err
	}
	a.metrics.Snapshot(ctx, saved)
	if saved && a.cfg.Storage.Keep > 0 {
		if n, err := a.snapshots.Prune(ctx, name, a.cfg.Storage.Keep); err != nil {
			logger.Warnf("App: pruning snapshots: %v", err)
		} else if n > 0 {
			logger.Debugf("App: pruned %d snapshot(s) of %s", n, name)
		}
	}
	return snap, saved, nil
}
