package core

import (
	"math"

	"github.com/gogpu/gg"
	"github.com/sinbaddoraji/Dream/internal/canvas"
	"github.com/sinbaddoraji/Dream/internal/core/drawhistory"
	"github.com/sinbaddoraji/Dream/internal/core/history"
	"github.com/sinbaddoraji/Dream/internal/core/selection"
	"github.com/sinbaddoraji/Dream/internal/event"
	"github.com/sinbaddoraji/Dream/internal/logger"
	"github.com/sinbaddoraji/Dream/internal/scene"
	"github.com/sinbaddoraji/Dream/internal/types"
)

// GestureKind names the pointer interaction in progress.
type GestureKind int

const (
	GestureNone GestureKind = iota
	GestureMove
	GestureResize
	GestureRotate
	GestureMarquee
	GestureLasso
	GestureDraw
	GesturePen
)

var gestureNames = [...]string{"none", "move", "resize", "rotate", "marquee", "lasso", "draw", "pen"}

func (g GestureKind) String() string {
	if int(g) < len(gestureNames) {
		return gestureNames[g]
	}
	return "unknown"
}

// minDrawSize is the smallest drag that creates a shape.
const minDrawSize = 2.0

type gesture struct {
	kind    GestureKind
	shift   bool
	start   types.Point
	last    types.Point
	ids     []string
	bounds  selection.Bounds
	before  map[string]gg.Matrix
	path    *scene.Node // Lasso path, shape preview or pen stroke
	tool    canvas.Type
	strokes []types.Point
}

// Gesture returns the active pointer interaction.
func (e *Editor) Gesture() GestureKind { return e.gesture.kind }

// GestureBounds returns the live selection box of a move, resize or rotate
// gesture.
func (e *Editor) GestureBounds() (selection.Bounds, bool) {
	switch e.gesture.kind {
	case GestureMove, GestureResize, GestureRotate:
		return e.gesture.bounds, true
	}
	return selection.Bounds{}, false
}

// PointerDown starts a gesture at p. A handle of the current selection starts
// a resize or rotate; a selectable object starts a move (shift toggles it in
// the selection instead); empty canvas starts a marquee.
func (e *Editor) PointerDown(p types.Point, shift bool) {
	e.CancelGesture()

	if b := e.SelectionBounds(); b != nil {
		if h := e.selection.HitTestHandle(p, b.Handles); h != nil {
			mode, kind := selection.ModeResize, GestureResize
			if h.Type == selection.HandleRotate {
				mode, kind = selection.ModeRotate, GestureRotate
			}
			e.beginTransform(kind, p, *b)
			e.selection.StartTransform(mode, h, b)
			return
		}
	}

	if obj, ok := e.store.ObjectAt(p); ok && obj.Selectable() {
		if shift {
			e.ToggleSelection(obj.ID)
			return
		}
		if !e.IsSelected(obj.ID) {
			e.Select(obj.ID)
		}
		if b := e.SelectionBounds(); b != nil {
			e.beginTransform(GestureMove, p, *b)
			e.selection.StartTransform(selection.ModeMove, nil, b)
		}
		return
	}

	if !shift {
		e.ClearSelection()
	}
	e.gesture = gesture{kind: GestureMarquee, shift: shift, start: p, last: p}
	e.selection.StartMarqueeSelection(p)
	e.dispatchGesture(p)
}

// BeginLasso starts a freeform selection at p.
func (e *Editor) BeginLasso(p types.Point, shift bool) {
	e.CancelGesture()
	path := e.selection.CreateLassoPath()
	e.selection.UpdateLassoPath(path, p)
	e.gesture = gesture{kind: GestureLasso, shift: shift, start: p, last: p, path: path}
	e.dispatchGesture(p)
}

// BeginShape starts drawing a shape of kind at p. The shape is created on
// PointerUp.
func (e *Editor) BeginShape(kind canvas.Type, p types.Point) {
	e.CancelGesture()
	e.gesture = gesture{kind: GestureDraw, start: p, last: p, tool: kind}
	e.updatePreview(p)
	e.dispatchGesture(p)
}

// BeginPen starts a freehand stroke at p.
func (e *Editor) BeginPen(p types.Point) {
	e.CancelGesture()
	preview := scene.NewPath(p)
	preview.Name = "pen"
	preview.Style = e.style
	preview.Style.Fill = ""
	e.overlay.Add(preview)
	e.gesture = gesture{kind: GesturePen, start: p, last: p, path: preview, strokes: []types.Point{p}}
	e.dispatchGesture(p)
}

func (e *Editor) beginTransform(kind GestureKind, p types.Point, b selection.Bounds) {
	ids := e.selectedIDs()
	e.gesture = gesture{
		kind:   kind,
		start:  p,
		last:   p,
		ids:    ids,
		bounds: *b.Clone(),
		before: history.CaptureMatrices(e.store, ids),
	}
	e.dispatchGesture(p)
}

// PointerDrag continues the active gesture at p.
func (e *Editor) PointerDrag(p types.Point, shift bool) {
	g := &e.gesture
	switch g.kind {
	case GestureMove:
		g.bounds = e.selection.UpdateTransform(p.Sub(g.last), e.SelectedObjects(), g.bounds, shift)
	case GestureResize:
		g.bounds = e.selection.UpdateTransform(p.Sub(g.start), e.SelectedObjects(), g.bounds, shift)
	case GestureRotate:
		// The rotation step is the angle swept around the pivot, passed as a
		// unit vector in that direction.
		c := g.bounds.Center
		a0 := math.Atan2(g.last.Y-c.Y, g.last.X-c.X)
		a1 := math.Atan2(p.Y-c.Y, p.X-c.X)
		step := a1 - a0
		if step != 0 {
			e.selection.UpdateTransform(types.Pt(math.Cos(step), math.Sin(step)), e.SelectedObjects(), g.bounds, shift)
		}
	case GestureMarquee:
		e.selection.UpdateMarqueeSelection(p)
	case GestureLasso:
		e.selection.UpdateLassoPath(g.path, p)
	case GestureDraw:
		e.updatePreview(p)
	case GesturePen:
		g.path.Add(p)
		g.strokes = append(g.strokes, p)
	default:
		return
	}
	g.last = p
}

// PointerUp finishes the active gesture at p and records its result.
func (e *Editor) PointerUp(p types.Point) {
	if e.gesture.kind == GestureNone {
		return
	}
	if p != e.gesture.last {
		e.PointerDrag(p, e.gesture.shift)
	}
	g := e.gesture
	e.gesture = gesture{}

	switch g.kind {
	case GestureMove:
		e.selection.EndTransform()
		total := g.last.Sub(g.start)
		if total == types.ZeroPoint {
			break
		}
		// Roll back the live movement; the command re-applies it.
		e.restoreMatrices(g.before)
		if !e.execute(history.NewMoveObjectCommand(g.ids, total, e.store), g.ids, "move") {
			break
		}
		e.logAction(drawhistory.MoveObject, g.ids, map[string]any{"dx": total.X, "dy": total.Y})
	case GestureResize, GestureRotate:
		mode := e.selection.Mode()
		e.selection.EndTransform()
		after := history.CaptureMatrices(e.store, g.ids)
		if matricesEqual(g.before, after) {
			break
		}
		if !e.execute(history.NewTransformObjectCommand(g.ids, g.before, after, e.store), g.ids, "transform") {
			e.restoreMatrices(g.before)
			break
		}
		e.logAction(drawhistory.TransformObject, g.ids, map[string]any{"mode": mode.String()})
	case GestureMarquee:
		ids := e.selection.EndMarqueeSelection(e.store.List())
		if g.shift {
			e.AddToSelection(ids...)
		} else {
			e.Select(ids...)
		}
	case GestureLasso:
		ids := e.selection.FinalizeLassoSelection(g.path, e.store.List())
		if g.shift {
			e.AddToSelection(ids...)
		} else {
			e.Select(ids...)
		}
	case GestureDraw:
		if g.path != nil {
			g.path.Remove()
		}
		if g.start.Distance(g.last) < minDrawSize {
			break
		}
		if _, err := e.AddShape(g.tool, g.start, g.last); err != nil {
			logger.Warnf("Editor: %v", err)
		}
	case GesturePen:
		g.path.Remove()
		e.AddPath(g.strokes)
	}
	e.dispatchGesture(p)
}

// CancelGesture abandons the active gesture and undoes its live effects.
func (e *Editor) CancelGesture() {
	g := e.gesture
	if g.kind == GestureNone {
		return
	}
	e.gesture = gesture{}
	switch g.kind {
	case GestureMove, GestureResize, GestureRotate:
		e.restoreMatrices(g.before)
		e.selection.EndTransform()
	case GestureMarquee:
		e.selection.CancelMarquee()
	case GestureLasso, GestureDraw, GesturePen:
		if g.path != nil {
			g.path.Remove()
		}
	}
	e.dispatchGesture(g.last)
}

func (e *Editor) updatePreview(p types.Point) {
	g := &e.gesture
	node, err := canvas.BuildShape(g.tool, g.start, p)
	if err != nil {
		return
	}
	if g.path != nil {
		g.path.Remove()
	}
	node.Name = "preview"
	node.Style = scene.Style{Stroke: e.selection.Options().AccentColor, StrokeWidth: 1, Dash: []float64{4, 4}}
	e.overlay.Add(node)
	g.path = node
}

func (e *Editor) restoreMatrices(state map[string]gg.Matrix) {
	for id, m := range state {
		if obj, ok := e.store.Object(id); ok && obj.Item != nil {
			obj.Item.SetMatrix(m)
		}
	}
}

func (e *Editor) dispatchGesture(p types.Point) {
	e.dispatch(event.TypeTransformChanged, event.TransformChangedData{Mode: e.gesture.kind.String(), Point: p})
}

func matricesEqual(a, b map[string]gg.Matrix) bool {
	if len(a) != len(b) {
		return false
	}
	for id, m := range a {
		if n, ok := b[id]; !ok || n != m {
			return false
		}
	}
	return true
}
