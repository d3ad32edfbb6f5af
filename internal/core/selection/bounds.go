package selection

import (
	"github.com/sinbaddoraji/Dream/internal/canvas"
	"github.com/sinbaddoraji/Dream/internal/types"
)

// HandleType distinguishes resize handles from the rotate handle.
type HandleType int

const (
	HandleResize HandleType = iota
	HandleRotate
)

// HandlePosition names where a handle sits on the selection box.
type HandlePosition string

const (
	NW     HandlePosition = "nw"
	N      HandlePosition = "n"
	NE     HandlePosition = "ne"
	W      HandlePosition = "w"
	E      HandlePosition = "e"
	SW     HandlePosition = "sw"
	S      HandlePosition = "s"
	SE     HandlePosition = "se"
	Rotate HandlePosition = "rotate"
)

// Handle is a draggable point on the selection box.
type Handle struct {
	Type     HandleType
	Position HandlePosition
	Point    types.Point
	Cursor   string
}

// Bounds is the selection box with its derived center and handles.
type Bounds struct {
	types.Rect
	Center  types.Point
	Handles []Handle
}

// Clone returns a deep copy of b.
func (b *Bounds) Clone() *Bounds {
	if b == nil {
		return nil
	}
	c := *b
	c.Handles = append([]Handle(nil), b.Handles...)
	return &c
}

// Handle returns the handle at pos.
func (b *Bounds) Handle(pos HandlePosition) (Handle, bool) {
	if b == nil {
		return Handle{}, false
	}
	for _, h := range b.Handles {
		if h.Position == pos {
			return h, true
		}
	}
	return Handle{}, false
}

// newBounds derives center and handles for r.
func newBounds(r types.Rect, rotateOffset float64) Bounds {
	return Bounds{Rect: r, Center: r.Center(), Handles: createHandles(r, rotateOffset)}
}

// createHandles returns the eight resize handles in NW, N, NE, W, E, SW, S, SE
// order followed by the rotate handle above top-center.
func createHandles(r types.Rect, rotateOffset float64) []Handle {
	cx := r.X + r.Width/2
	cy := r.Y + r.Height/2
	right := r.X + r.Width
	bottom := r.Y + r.Height

	resize := func(pos HandlePosition, x, y float64) Handle {
		return Handle{Type: HandleResize, Position: pos, Point: types.Pt(x, y), Cursor: string(pos) + "-resize"}
	}
	return []Handle{
		resize(NW, r.X, r.Y),
		resize(N, cx, r.Y),
		resize(NE, right, r.Y),
		resize(W, r.X, cy),
		resize(E, right, cy),
		resize(SW, r.X, bottom),
		resize(S, cx, bottom),
		resize(SE, right, bottom),
		{Type: HandleRotate, Position: Rotate, Point: types.Pt(cx, r.Y-rotateOffset), Cursor: "grab"},
	}
}

// CalculateSelectionBounds returns the union box of objects with its handles,
// or nil when objects is empty.
func (m *Manager) CalculateSelectionBounds(objects []*canvas.Object) *Bounds {
	var (
		union types.Rect
		found bool
	)
	for _, obj := range objects {
		if obj == nil || obj.Item == nil {
			continue
		}
		r := obj.Bounds()
		if !found {
			union, found = r, true
			continue
		}
		union = union.Union(r)
	}
	if !found {
		return nil
	}
	b := newBounds(union, m.opts.RotateHandleOffset)
	return &b
}

// HitTestHandle returns the first handle within the hit tolerance of p.
func (m *Manager) HitTestHandle(p types.Point, handles []Handle) *Handle {
	for i := range handles {
		if p.Distance(handles[i].Point) <= m.opts.HandleTolerance {
			h := handles[i]
			return &h
		}
	}
	return nil
}
