// internal/core/editor.go
package core

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/sinbaddoraji/Dream/internal/canvas"
	"github.com/sinbaddoraji/Dream/internal/config"
	"github.com/sinbaddoraji/Dream/internal/core/clipboard"
	"github.com/sinbaddoraji/Dream/internal/core/drawhistory"
	"github.com/sinbaddoraji/Dream/internal/core/history"
	"github.com/sinbaddoraji/Dream/internal/core/selection"
	"github.com/sinbaddoraji/Dream/internal/event"
	"github.com/sinbaddoraji/Dream/internal/logger"
	"github.com/sinbaddoraji/Dream/internal/metrics"
	"github.com/sinbaddoraji/Dream/internal/project"
	"github.com/sinbaddoraji/Dream/internal/scene"
	"github.com/sinbaddoraji/Dream/internal/types"
)

// ErrCommandRefused is returned when the history will not run a command, as
// happens when an edit is started from inside another command.
var ErrCommandRefused = errors.New("command refused by history")

// Options configures a new Editor.
type Options struct {
	MaxHistory      int
	Selection       selection.Options
	NudgeStep       float64
	PasteOffset     float64
	SystemClipboard bool
	Style           scene.Style
	Width, Height   float64
}

// OptionsFromConfig maps the [editor] config section to Options.
func OptionsFromConfig(cfg config.EditorConfig) Options {
	return Options{
		MaxHistory: cfg.MaxHistorySize,
		Selection: selection.Options{
			HandleTolerance:    cfg.HandleTolerance,
			RotateHandleOffset: cfg.RotateHandleOffset,
			AccentColor:        selection.DefaultAccentColor,
		},
		NudgeStep:       cfg.NudgeStep,
		PasteOffset:     cfg.PasteOffset,
		SystemClipboard: cfg.SystemClipboard,
		Style: scene.Style{
			Fill:        cfg.DefaultFill,
			Stroke:      cfg.DefaultStroke,
			StrokeWidth: cfg.StrokeWidth,
		},
		Width:  float64(cfg.CanvasWidth),
		Height: float64(cfg.CanvasHeight),
	}
}

// Editor is one drawing session. It owns the canvas, both histories, the
// selection and the clipboard, and is driven from a single goroutine.
type Editor struct {
	store     *canvas.Store
	content   *scene.Layer
	overlay   *scene.Layer
	history   *history.Manager
	drawLog   *drawhistory.Manager
	selection *selection.Manager
	clipboard *clipboard.Manager

	eventManager *event.Manager
	metrics      *metrics.Recorder

	selected []string
	style    scene.Style
	nudge    float64
	width    float64
	height   float64

	// View state
	scale float64
	pan   types.Point

	gesture gesture

	FilePath string
	modified bool
}

// NewEditor creates an empty session.
func NewEditor(opts Options) *Editor {
	def := OptionsFromConfig(config.NewDefaultConfig().Editor)
	if opts.NudgeStep <= 0 {
		opts.NudgeStep = def.NudgeStep
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = def.Width, def.Height
	}
	if opts.Style.Stroke == "" && opts.Style.Fill == "" {
		opts.Style = def.Style
	}

	content := scene.NewLayer("content")
	overlay := scene.NewLayer("overlay")
	e := &Editor{
		store:     canvas.NewStore(content),
		content:   content,
		overlay:   overlay,
		history:   history.NewManager(opts.MaxHistory),
		selection: selection.NewManager(overlay, opts.Selection),
		clipboard: clipboard.NewManager(opts.SystemClipboard, opts.PasteOffset),
		style:     opts.Style,
		nudge:     opts.NudgeStep,
		width:     opts.Width,
		height:    opts.Height,
		scale:     1,
	}
	e.drawLog = drawhistory.NewManager(e)
	return e
}

// SetEventManager sets the event manager for dispatching events
func (e *Editor) SetEventManager(mgr *event.Manager) {
	e.eventManager = mgr
}

// SetMetrics attaches a metrics recorder. nil disables recording.
func (e *Editor) SetMetrics(r *metrics.Recorder) {
	e.metrics = r
}

// --- Accessors ---

func (e *Editor) Store() *canvas.Store                 { return e.store }
func (e *Editor) Content() *scene.Layer                { return e.content }
func (e *Editor) Overlay() *scene.Layer                { return e.overlay }
func (e *Editor) History() *history.Manager            { return e.history }
func (e *Editor) DrawLog() *drawhistory.Manager        { return e.drawLog }
func (e *Editor) SelectionManager() *selection.Manager { return e.selection }
func (e *Editor) Clipboard() *clipboard.Manager        { return e.clipboard }
func (e *Editor) Size() (float64, float64)             { return e.width, e.height }

// Style returns the style applied to new shapes.
func (e *Editor) Style() scene.Style { return e.style }

// SetStyle sets the style applied to new shapes.
func (e *Editor) SetStyle(s scene.Style) { e.style = s }

// IsModified reports unsaved changes.
func (e *Editor) IsModified() bool { return e.modified }

// SetModified sets the unsaved-changes flag.
func (e *Editor) SetModified(m bool) { e.modified = m }

// --- View ---

// Scale returns the zoom factor.
func (e *Editor) Scale() float64 { return e.scale }

// Pan returns the view offset in canvas units.
func (e *Editor) Pan() types.Point { return e.pan }

// SetScale sets the zoom factor, ignoring non-positive values.
func (e *Editor) SetScale(s float64) {
	if s > 0 {
		e.scale = s
	}
}

// PanBy shifts the view.
func (e *Editor) PanBy(d types.Point) { e.pan = e.pan.Add(d) }

// CanvasState reports the view state recorded with draw actions.
func (e *Editor) CanvasState() drawhistory.CanvasState {
	return drawhistory.CanvasState{
		ObjectCount: e.store.Len(),
		Scale:       e.scale,
		Position:    e.pan,
	}
}

// --- Shapes ---

// AddShape draws a shape of kind dragged from one point to another, records
// it in both histories and selects it.
func (e *Editor) AddShape(kind canvas.Type, from, to types.Point) (*canvas.Object, error) {
	node, err := canvas.BuildShape(kind, from, to)
	if err != nil {
		return nil, err
	}
	obj := e.addNode(kind, node)
	if obj == nil {
		return nil, ErrCommandRefused
	}
	return obj, nil
}

// AddPath adds a freehand pen stroke through pts. It returns nil when there
// are too few points or the history refuses the edit.
func (e *Editor) AddPath(pts []types.Point) *canvas.Object {
	if len(pts) < 2 {
		return nil
	}
	return e.addNode(canvas.TypePath, scene.NewPath(pts...))
}

// createAction maps an object type to the draw log action that creates it.
func createAction(t canvas.Type) drawhistory.ActionType {
	if t == canvas.TypePath {
		return drawhistory.CreatePenStroke
	}
	return drawhistory.ActionType("create_" + string(t))
}

func (e *Editor) addNode(kind canvas.Type, node *scene.Node) *canvas.Object {
	node.Style = e.style
	node.Style.Dash = slices.Clone(e.style.Dash)
	obj := canvas.NewObject(kind, node)
	e.content.Add(node)
	if !e.execute(history.NewAddObjectCommand(obj, e.store), []string{obj.ID}, "add") {
		node.Remove()
		return nil
	}
	b := obj.Bounds()
	e.logAction(createAction(kind), []string{obj.ID}, map[string]any{
		"x": b.X, "y": b.Y, "width": b.Width, "height": b.Height,
	})
	e.setSelection([]string{obj.ID})
	return obj
}

// DeleteSelected removes the selection as one undoable step.
func (e *Editor) DeleteSelected() int {
	ids := e.selectedIDs()
	if len(ids) == 0 {
		return 0
	}
	if !e.execute(history.NewDeleteObjectCommand(ids, e.store), ids, "delete") {
		return 0
	}
	e.logAction(drawhistory.DeleteObject, ids, map[string]any{"count": len(ids)})
	e.setSelection(nil)
	return len(ids)
}

// NudgeSelected moves the selection by steps of the configured nudge size.
func (e *Editor) NudgeSelected(dx, dy float64) bool {
	return e.MoveSelected(types.Pt(dx*e.nudge, dy*e.nudge))
}

// MoveSelected moves the selection by delta as one undoable step.
func (e *Editor) MoveSelected(delta types.Point) bool {
	ids := e.selectedIDs()
	if len(ids) == 0 || delta == types.ZeroPoint {
		return false
	}
	if !e.execute(history.NewMoveObjectCommand(ids, delta, e.store), ids, "move") {
		return false
	}
	e.logAction(drawhistory.MoveObject, ids, map[string]any{"dx": delta.X, "dy": delta.Y})
	return true
}

// ClearCanvas deletes every object as one undoable step.
func (e *Editor) ClearCanvas() bool {
	ids := e.store.IDs()
	if len(ids) == 0 {
		return false
	}
	e.CancelGesture()
	cmd := history.NewBatchCommand("Clear canvas", history.NewDeleteObjectCommand(ids, e.store))
	if !e.execute(cmd, ids, "clear") {
		return false
	}
	e.logAction(drawhistory.ClearCanvas, ids, map[string]any{"count": len(ids)})
	e.setSelection(nil)
	return true
}

// --- History ---

// Undo reverts the last command.
func (e *Editor) Undo() bool {
	e.CancelGesture()
	desc := e.peekDescription(e.history.CurrentIndex())
	if !e.history.Undo() {
		return false
	}
	e.metrics.Command(context.Background(), metrics.OpUndo, desc)
	e.afterHistoryMove(desc, "undo")
	return true
}

// Redo reapplies the last undone command.
func (e *Editor) Redo() bool {
	e.CancelGesture()
	desc := e.peekDescription(e.history.CurrentIndex() + 1)
	if !e.history.Redo() {
		return false
	}
	e.metrics.Command(context.Background(), metrics.OpRedo, desc)
	e.afterHistoryMove(desc, "redo")
	return true
}

func (e *Editor) peekDescription(i int) string {
	cmds := e.history.History()
	if i < 0 || i >= len(cmds) {
		return ""
	}
	return cmds[i].Description()
}

func (e *Editor) afterHistoryMove(desc, reason string) {
	e.modified = true
	e.pruneSelection()
	e.dispatch(event.TypeObjectsChanged, event.ObjectsChangedData{Reason: reason})
	e.dispatchHistory(desc)
}

// SetMaxHistorySize changes the undo bound.
func (e *Editor) SetMaxHistorySize(n int) {
	e.history.SetMaxHistorySize(n)
	e.dispatchHistory("")
}

// ClearHistory empties both histories.
func (e *Editor) ClearHistory() {
	e.history.Clear()
	e.drawLog.ClearHistory()
	e.dispatchHistory("")
}

func (e *Editor) execute(cmd history.Command, ids []string, reason string) bool {
	if !e.history.Execute(cmd) {
		return false
	}
	e.modified = true
	e.metrics.Command(context.Background(), metrics.OpExecute, cmd.Description())
	e.dispatch(event.TypeObjectsChanged, event.ObjectsChangedData{IDs: slices.Clone(ids), Reason: reason})
	e.dispatchHistory(cmd.Description())
	return true
}

func (e *Editor) logAction(typ drawhistory.ActionType, ids []string, data map[string]any) {
	a := e.drawLog.AddAction(typ, ids, data, "")
	e.metrics.Action(context.Background(), string(typ))
	e.dispatch(event.TypeDrawActionAdded, event.DrawActionAddedData{
		ActionID:    a.ID,
		Type:        string(a.Type),
		Description: a.Description,
	})
}

func (e *Editor) dispatchHistory(desc string) {
	e.dispatch(event.TypeHistoryChanged, event.HistoryChangedData{
		Description:  desc,
		CurrentIndex: e.history.CurrentIndex(),
		Len:          e.history.Len(),
		CanUndo:      e.history.CanUndo(),
		CanRedo:      e.history.CanRedo(),
	})
}

func (e *Editor) dispatch(t event.Type, data any) {
	if e.eventManager != nil {
		e.eventManager.Dispatch(t, data)
	}
}

// --- Clipboard ---

// Copy places the selection on the clipboard.
func (e *Editor) Copy() (int, error) {
	return e.clipboard.Copy(e.SelectedObjects())
}

// Cut copies the selection and deletes it.
func (e *Editor) Cut() (int, error) {
	n, err := e.Copy()
	if err != nil || n == 0 {
		return n, err
	}
	e.DeleteSelected()
	return n, nil
}

// Paste adds the clipboard contents as one undoable step and selects them.
func (e *Editor) Paste() (int, error) {
	objs, err := e.clipboard.Paste()
	if err != nil {
		return 0, err
	}
	if len(objs) == 0 {
		return 0, nil
	}
	cmds := make([]history.Command, 0, len(objs))
	ids := make([]string, 0, len(objs))
	for _, obj := range objs {
		e.content.Add(obj.Item)
		cmds = append(cmds, history.NewAddObjectCommand(obj, e.store))
		ids = append(ids, obj.ID)
	}
	if !e.execute(history.NewBatchCommand(fmt.Sprintf("Paste %d object(s)", len(objs)), cmds...), ids, "paste") {
		for _, obj := range objs {
			obj.Item.Remove()
		}
		return 0, ErrCommandRefused
	}
	for _, obj := range objs {
		e.logAction(createAction(obj.Type), []string{obj.ID}, map[string]any{"pasted": true})
	}
	e.setSelection(ids)
	logger.Debugf("Editor: pasted %d object(s)", len(objs))
	return len(objs), nil
}

// --- Project ---

// Document captures the canvas for saving.
func (e *Editor) Document() *project.Document {
	return project.Capture(e.store, project.View{Scale: e.scale, Pan: [2]float64{e.pan.X, e.pan.Y}})
}

// LoadDocument replaces the canvas with doc and clears both histories.
func (e *Editor) LoadDocument(doc *project.Document) error {
	e.CancelGesture()
	if err := project.Restore(doc, e.store); err != nil {
		return err
	}
	e.scale = doc.View.Scale
	e.pan = types.Pt(doc.View.Pan[0], doc.View.Pan[1])
	e.history.Clear()
	e.drawLog.ClearHistory()
	e.selected = nil
	e.modified = false
	e.dispatch(event.TypeObjectsChanged, event.ObjectsChangedData{IDs: e.store.IDs(), Reason: "load"})
	e.dispatch(event.TypeSelectionChanged, event.SelectionChangedData{})
	e.dispatchHistory("")
	return nil
}
