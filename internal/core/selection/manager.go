// Package selection computes selection boxes and handles, runs marquee and
// lasso selection, and applies move, resize and rotate gestures to objects.
package selection

import (
	"math"

	"github.com/sinbaddoraji/Dream/internal/canvas"
	"github.com/sinbaddoraji/Dream/internal/logger"
	"github.com/sinbaddoraji/Dream/internal/scene"
	"github.com/sinbaddoraji/Dream/internal/types"
)

// Mode is the active transform.
type Mode int

const (
	ModeNone Mode = iota
	ModeMove
	ModeResize
	ModeRotate
)

func (m Mode) String() string {
	switch m {
	case ModeMove:
		return "move"
	case ModeResize:
		return "resize"
	case ModeRotate:
		return "rotate"
	default:
		return "none"
	}
}

const (
	DefaultHandleTolerance    = 8.0
	DefaultRotateHandleOffset = 30.0
	DefaultAccentColor        = "#007AFF"
)

// Options tunes hit-testing and overlay styling.
type Options struct {
	HandleTolerance    float64
	RotateHandleOffset float64
	AccentColor        string
}

// DefaultOptions returns the standard handle geometry.
func DefaultOptions() Options {
	return Options{
		HandleTolerance:    DefaultHandleTolerance,
		RotateHandleOffset: DefaultRotateHandleOffset,
		AccentColor:        DefaultAccentColor,
	}
}

// Manager holds transient selection state for one canvas. It draws marquee
// and lasso visuals into its overlay layer.
type Manager struct {
	overlay *scene.Layer
	opts    Options

	marqueeStart *types.Point
	marquee      *scene.Node

	mode           Mode
	handle         *Handle
	originalBounds *types.Rect
	pivot          *types.Point
	scaleX, scaleY float64 // Scale already applied in the current resize gesture
}

// NewManager creates a selection manager drawing into overlay.
func NewManager(overlay *scene.Layer, opts Options) *Manager {
	if overlay == nil {
		overlay = scene.NewLayer("overlay")
	}
	def := DefaultOptions()
	if opts.HandleTolerance <= 0 {
		opts.HandleTolerance = def.HandleTolerance
	}
	if opts.RotateHandleOffset <= 0 {
		opts.RotateHandleOffset = def.RotateHandleOffset
	}
	if opts.AccentColor == "" {
		opts.AccentColor = def.AccentColor
	}
	return &Manager{overlay: overlay, opts: opts, scaleX: 1, scaleY: 1}
}

// Overlay returns the layer holding selection visuals.
func (m *Manager) Overlay() *scene.Layer { return m.overlay }

// Options returns the manager's options.
func (m *Manager) Options() Options { return m.opts }

// --- Marquee ---

// StartMarqueeSelection anchors a marquee at p.
func (m *Manager) StartMarqueeSelection(p types.Point) {
	anchor := p
	m.marqueeStart = &anchor
	m.setMarquee(p, p)
}

// UpdateMarqueeSelection stretches the marquee from its anchor to p.
func (m *Manager) UpdateMarqueeSelection(p types.Point) {
	if m.marqueeStart == nil {
		return
	}
	m.setMarquee(*m.marqueeStart, p)
}

// EndMarqueeSelection returns the ids of selectable objects whose bounds
// intersect the marquee and removes the marquee.
func (m *Manager) EndMarqueeSelection(objects []*canvas.Object) []string {
	if m.marquee == nil || m.marqueeStart == nil {
		return nil
	}
	area := m.marquee.Bounds()
	var ids []string
	for _, obj := range objects {
		if obj == nil || obj.Item == nil || !obj.Selectable() {
			continue
		}
		if area.Intersects(obj.Bounds()) {
			ids = append(ids, obj.ID)
		}
	}
	m.CancelMarquee()
	logger.DebugTagf("selection", "Selection: marquee %v picked %d object(s)", area, len(ids))
	return ids
}

// CancelMarquee removes an in-progress marquee.
func (m *Manager) CancelMarquee() {
	if m.marquee != nil {
		m.marquee.Remove()
		m.marquee = nil
	}
	m.marqueeStart = nil
}

// MarqueeRect returns the current marquee rectangle.
func (m *Manager) MarqueeRect() (types.Rect, bool) {
	if m.marquee == nil {
		return types.Rect{}, false
	}
	return m.marquee.Bounds(), true
}

// setMarquee replaces the marquee node with a fresh rectangle from a to b.
func (m *Manager) setMarquee(a, b types.Point) {
	if m.marquee != nil {
		m.marquee.Remove()
	}
	n := scene.NewRect(types.RectFromPoints(a, b))
	n.Name = "marquee"
	n.Style = scene.Style{
		Fill:        m.opts.AccentColor + "1A",
		Stroke:      m.opts.AccentColor,
		StrokeWidth: 1,
		Dash:        []float64{5, 5},
	}
	m.overlay.Add(n)
	m.marquee = n
}

// --- Lasso ---

// CreateLassoPath adds an empty dashed path to the overlay.
func (m *Manager) CreateLassoPath() *scene.Node {
	path := scene.NewPath()
	path.Name = "lasso"
	path.Style = scene.Style{Stroke: m.opts.AccentColor, StrokeWidth: 2, Dash: []float64{5, 5}}
	m.overlay.Add(path)
	return path
}

// UpdateLassoPath appends p to path.
func (m *Manager) UpdateLassoPath(path *scene.Node, p types.Point) {
	if path == nil {
		return
	}
	path.Add(p)
}

// FinalizeLassoSelection closes path and returns the ids of selectable objects
// whose bounds center lies inside it. The path is removed.
func (m *Manager) FinalizeLassoSelection(path *scene.Node, objects []*canvas.Object) []string {
	if path == nil {
		return nil
	}
	path.Close()
	var ids []string
	for _, obj := range objects {
		if obj == nil || obj.Item == nil || !obj.Selectable() {
			continue
		}
		if path.Contains(obj.Bounds().Center()) {
			ids = append(ids, obj.ID)
		}
	}
	path.Remove()
	logger.DebugTagf("selection", "Selection: lasso picked %d object(s)", len(ids))
	return ids
}

// --- Transforms ---

// Mode returns the active transform.
func (m *Manager) Mode() Mode { return m.mode }

// ActiveHandle returns the handle driving the current gesture.
func (m *Manager) ActiveHandle() *Handle { return m.handle }

// OriginalBounds returns the box captured when the gesture started.
func (m *Manager) OriginalBounds() (types.Rect, bool) {
	if m.originalBounds == nil {
		return types.Rect{}, false
	}
	return *m.originalBounds, true
}

// StartTransform enters mode. bounds, when given, is copied as the gesture's
// original box and its center becomes the rotation pivot.
func (m *Manager) StartTransform(mode Mode, handle *Handle, bounds *Bounds) {
	m.mode = mode
	m.handle = nil
	if handle != nil {
		h := *handle
		m.handle = &h
	}
	m.originalBounds = nil
	m.pivot = nil
	if bounds != nil {
		r := bounds.Rect
		c := bounds.Center
		m.originalBounds = &r
		m.pivot = &c
	}
	m.scaleX, m.scaleY = 1, 1
	logger.DebugTagf("selection", "Selection: start %s", mode)
}

// EndTransform leaves the current transform.
func (m *Manager) EndTransform() {
	m.mode = ModeNone
	m.handle = nil
	m.originalBounds = nil
	m.pivot = nil
	m.scaleX, m.scaleY = 1, 1
}

// UpdateTransform applies one step of the active gesture to objects and
// returns the updated selection box. Move and rotate deltas are per step;
// the resize delta is measured from the gesture start.
func (m *Manager) UpdateTransform(delta types.Point, objects []*canvas.Object, bounds Bounds, shift bool) Bounds {
	switch m.mode {
	case ModeMove:
		return m.updateMove(delta, objects, bounds)
	case ModeResize:
		return m.updateResize(delta, objects, bounds, shift)
	case ModeRotate:
		return m.updateRotate(delta, objects, bounds)
	default:
		return bounds
	}
}

func (m *Manager) updateMove(delta types.Point, objects []*canvas.Object, bounds Bounds) Bounds {
	for _, obj := range objects {
		if obj != nil && obj.Item != nil {
			obj.Item.Translate(delta)
		}
	}
	out := bounds
	out.Rect = bounds.Rect.Translate(delta)
	out.Center = bounds.Center.Add(delta)
	out.Handles = make([]Handle, len(bounds.Handles))
	for i, h := range bounds.Handles {
		h.Point = h.Point.Add(delta)
		out.Handles[i] = h
	}
	return out
}

// ResizeRect applies handle rules to original for a drag of delta from the
// gesture start. With proportional set the original aspect ratio is kept:
// the axis with the larger drag drives the other.
func ResizeRect(original types.Rect, pos HandlePosition, delta types.Point, proportional bool) types.Rect {
	r := original
	switch pos {
	case NW:
		r.Width = original.Width - delta.X
		r.Height = original.Height - delta.Y
		r.X = original.X + delta.X
		r.Y = original.Y + delta.Y
	case N:
		r.Height = original.Height - delta.Y
		r.Y = original.Y + delta.Y
	case NE:
		r.Width = original.Width + delta.X
		r.Height = original.Height - delta.Y
		r.Y = original.Y + delta.Y
	case W:
		r.Width = original.Width - delta.X
		r.X = original.X + delta.X
	case E:
		r.Width = original.Width + delta.X
	case SW:
		r.Width = original.Width - delta.X
		r.Height = original.Height + delta.Y
		r.X = original.X + delta.X
	case S:
		r.Height = original.Height + delta.Y
	case SE:
		r.Width = original.Width + delta.X
		r.Height = original.Height + delta.Y
	}

	if proportional && original.Height != 0 {
		aspect := original.Width / original.Height
		if math.Abs(delta.X) > math.Abs(delta.Y) {
			if aspect != 0 {
				r.Height = r.Width / aspect
			}
		} else {
			r.Width = r.Height * aspect
		}
	}
	return r
}

func (m *Manager) updateResize(delta types.Point, objects []*canvas.Object, bounds Bounds, proportional bool) Bounds {
	if m.handle == nil || m.originalBounds == nil || m.handle.Type != HandleResize {
		return bounds
	}
	original := *m.originalBounds
	if original.Width == 0 || original.Height == 0 {
		return bounds
	}

	next := ResizeRect(original, m.handle.Position, delta, proportional)
	sx := next.Width / original.Width
	sy := next.Height / original.Height
	if sx == 0 || sy == 0 {
		// A zero scale cannot be undone by a later step.
		return bounds
	}

	// Objects already carry the previous step's scale; apply only the change.
	fx, fy := sx/m.scaleX, sy/m.scaleY
	pivot := original.Center()
	for _, obj := range objects {
		if obj != nil && obj.Item != nil {
			obj.Item.Scale(fx, fy, pivot)
		}
	}
	m.scaleX, m.scaleY = sx, sy

	return newBounds(next, m.opts.RotateHandleOffset)
}

func (m *Manager) updateRotate(delta types.Point, objects []*canvas.Object, bounds Bounds) Bounds {
	angle := math.Atan2(delta.Y, delta.X) * 180 / math.Pi
	pivot := bounds.Center
	if m.pivot != nil {
		pivot = *m.pivot
	}
	for _, obj := range objects {
		if obj != nil && obj.Item != nil {
			obj.Item.Rotate(angle, pivot)
		}
	}
	return bounds
}

// Cleanup discards any in-progress marquee and transform.
func (m *Manager) Cleanup() {
	m.CancelMarquee()
	m.EndTransform()
}
