package selection

import (
	"testing"

	"github.com/sinbaddoraji/Dream/internal/canvas"
	"github.com/sinbaddoraji/Dream/internal/scene"
	"github.com/sinbaddoraji/Dream/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-6

func rectObject(x, y, w, h float64) *canvas.Object {
	return canvas.NewObject(canvas.TypeRectangle, scene.NewRect(types.Rect{X: x, Y: y, Width: w, Height: h}))
}

func assertRect(t *testing.T, want, got types.Rect) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, eps, "x")
	assert.InDelta(t, want.Y, got.Y, eps, "y")
	assert.InDelta(t, want.Width, got.Width, eps, "width")
	assert.InDelta(t, want.Height, got.Height, eps, "height")
}

func newManager() *Manager {
	return NewManager(scene.NewLayer("overlay"), Options{})
}

func TestCalculateSelectionBounds(t *testing.T) {
	m := newManager()
	assert.Nil(t, m.CalculateSelectionBounds(nil))

	a := rectObject(0, 0, 10, 10)
	b := rectObject(20, 20, 10, 10)
	bounds := m.CalculateSelectionBounds([]*canvas.Object{a, b})
	require.NotNil(t, bounds)
	assertRect(t, types.Rect{X: 0, Y: 0, Width: 30, Height: 30}, bounds.Rect)
	assert.Equal(t, types.Pt(15, 15), bounds.Center)

	require.Len(t, bounds.Handles, 9)
	want := []struct {
		pos    HandlePosition
		pt     types.Point
		cursor string
	}{
		{NW, types.Pt(0, 0), "nw-resize"},
		{N, types.Pt(15, 0), "n-resize"},
		{NE, types.Pt(30, 0), "ne-resize"},
		{W, types.Pt(0, 15), "w-resize"},
		{E, types.Pt(30, 15), "e-resize"},
		{SW, types.Pt(0, 30), "sw-resize"},
		{S, types.Pt(15, 30), "s-resize"},
		{SE, types.Pt(30, 30), "se-resize"},
		{Rotate, types.Pt(15, -30), "grab"},
	}
	resize := 0
	for i, w := range want {
		h := bounds.Handles[i]
		assert.Equal(t, w.pos, h.Position)
		assert.Equal(t, w.pt, h.Point)
		assert.Equal(t, w.cursor, h.Cursor)
		if h.Type == HandleResize {
			resize++
		}
	}
	assert.Equal(t, 8, resize)
	assert.Equal(t, HandleRotate, bounds.Handles[8].Type)
}

func TestHitTestHandle(t *testing.T) {
	m := newManager()
	b := newBounds(types.Rect{Width: 10, Height: 10}, DefaultRotateHandleOffset)

	// NW and N are both within tolerance of (3,0); array order wins over distance.
	h := m.HitTestHandle(types.Pt(3, 0), b.Handles)
	require.NotNil(t, h)
	assert.Equal(t, NW, h.Position)

	h = m.HitTestHandle(types.Pt(5, -30+8), b.Handles)
	require.NotNil(t, h)
	assert.Equal(t, Rotate, h.Position)

	assert.Nil(t, m.HitTestHandle(types.Pt(100, 100), b.Handles))
	assert.Nil(t, m.HitTestHandle(types.Pt(0, 0), nil))
}

func TestMarqueeSelection(t *testing.T) {
	overlay := scene.NewLayer("overlay")
	m := NewManager(overlay, Options{})

	inside := rectObject(10, 10, 10, 10)
	touching := rectObject(50, 10, 10, 10) // shares the marquee's right edge only
	locked := rectObject(12, 12, 5, 5)
	locked.Locked = true
	hidden := rectObject(14, 14, 5, 5)
	hidden.Visible = false
	outside := rectObject(100, 100, 5, 5)
	objects := []*canvas.Object{inside, touching, locked, hidden, outside}

	m.StartMarqueeSelection(types.Pt(50, 50))
	assert.Equal(t, 1, overlay.Len())
	m.UpdateMarqueeSelection(types.Pt(30, 30))
	m.UpdateMarqueeSelection(types.Pt(0, 0))
	assert.Equal(t, 1, overlay.Len(), "marquee is replaced, not stacked")

	r, ok := m.MarqueeRect()
	require.True(t, ok)
	assertRect(t, types.Rect{Width: 50, Height: 50}, r)

	ids := m.EndMarqueeSelection(objects)
	assert.Equal(t, []string{inside.ID}, ids)
	assert.Equal(t, 0, overlay.Len())
	_, ok = m.MarqueeRect()
	assert.False(t, ok)

	assert.Nil(t, m.EndMarqueeSelection(objects), "no marquee in progress")
}

func TestMarqueeDeterministicAcrossOrder(t *testing.T) {
	a := rectObject(0, 0, 10, 10)
	b := rectObject(5, 5, 10, 10)
	run := func(objs []*canvas.Object) []string {
		m := newManager()
		m.StartMarqueeSelection(types.Pt(-1, -1))
		m.UpdateMarqueeSelection(types.Pt(20, 20))
		return m.EndMarqueeSelection(objs)
	}
	assert.ElementsMatch(t, run([]*canvas.Object{a, b}), run([]*canvas.Object{b, a}))
}

func TestCancelMarquee(t *testing.T) {
	overlay := scene.NewLayer("overlay")
	m := NewManager(overlay, Options{})
	m.StartMarqueeSelection(types.Pt(0, 0))
	m.CancelMarquee()
	assert.Equal(t, 0, overlay.Len())

	m.UpdateMarqueeSelection(types.Pt(10, 10))
	assert.Equal(t, 0, overlay.Len(), "update without anchor is a no-op")
}

func TestLassoUsesBoundsCenter(t *testing.T) {
	overlay := scene.NewLayer("overlay")
	m := NewManager(overlay, Options{})

	// Overlaps the lasso, but its center (35,5) is outside.
	overlapping := rectObject(20, 0, 30, 10)
	centered := rectObject(2, 2, 6, 6)
	locked := rectObject(2, 2, 6, 6)
	locked.Locked = true

	path := m.CreateLassoPath()
	require.Equal(t, 1, overlay.Len())
	for _, p := range []types.Point{types.Pt(0, 0), types.Pt(25, 0), types.Pt(25, 25), types.Pt(0, 25)} {
		m.UpdateLassoPath(path, p)
	}

	ids := m.FinalizeLassoSelection(path, []*canvas.Object{overlapping, centered, locked})
	assert.Equal(t, []string{centered.ID}, ids)
	assert.Equal(t, 0, overlay.Len())
	assert.Nil(t, m.FinalizeLassoSelection(nil, nil))
}

func TestMoveTransform(t *testing.T) {
	m := newManager()
	obj := rectObject(0, 0, 10, 10)
	objects := []*canvas.Object{obj}
	bounds := m.CalculateSelectionBounds(objects)

	m.StartTransform(ModeMove, nil, bounds)
	next := m.UpdateTransform(types.Pt(5, -5), objects, *bounds, false)

	assertRect(t, types.Rect{X: 5, Y: -5, Width: 10, Height: 10}, obj.Bounds())
	assertRect(t, types.Rect{X: 5, Y: -5, Width: 10, Height: 10}, next.Rect)
	assert.Equal(t, types.Pt(10, 0), next.Center)
	for i, h := range next.Handles {
		assert.Equal(t, bounds.Handles[i].Point.Add(types.Pt(5, -5)), h.Point)
	}
	assert.Equal(t, types.Pt(0, 0), bounds.Handles[0].Point, "input bounds untouched")
}

func TestProportionalResize(t *testing.T) {
	m := newManager()
	obj := rectObject(0, 0, 100, 50)
	objects := []*canvas.Object{obj}
	bounds := m.CalculateSelectionBounds(objects)
	se, _ := bounds.Handle(SE)

	m.StartTransform(ModeResize, &se, bounds)
	next := m.UpdateTransform(types.Pt(20, 10), objects, *bounds, true)

	assert.InDelta(t, 2.0, next.Width/next.Height, eps)
	assert.InDelta(t, 120, next.Width, eps)
	assert.InDelta(t, 60, next.Height, eps)
	assert.InDelta(t, 2.0, obj.Bounds().Width/obj.Bounds().Height, eps)
	assert.InDelta(t, 120, obj.Bounds().Width, eps)
}

func TestResizeIsRelativeToGestureStart(t *testing.T) {
	m := newManager()
	obj := rectObject(0, 0, 100, 50)
	objects := []*canvas.Object{obj}
	bounds := m.CalculateSelectionBounds(objects)
	e, _ := bounds.Handle(E)
	m.StartTransform(ModeResize, &e, bounds)

	cur := *bounds
	for _, dx := range []float64{10, 40, 20, 100} {
		cur = m.UpdateTransform(types.Pt(dx, 0), objects, cur, false)
	}
	// Only the last cumulative delta counts.
	assertRect(t, types.Rect{X: -50, Y: 0, Width: 200, Height: 50}, obj.Bounds())
	assert.InDelta(t, 200, cur.Width, eps)

	m.UpdateTransform(types.Pt(0, 0), objects, cur, false)
	assertRect(t, types.Rect{X: 0, Y: 0, Width: 100, Height: 50}, obj.Bounds())
}

func TestResizeHandleRules(t *testing.T) {
	orig := types.Rect{X: 10, Y: 20, Width: 100, Height: 50}
	d := types.Pt(10, 5)
	tests := []struct {
		pos  HandlePosition
		want types.Rect
	}{
		{NW, types.Rect{X: 20, Y: 25, Width: 90, Height: 45}},
		{N, types.Rect{X: 10, Y: 25, Width: 100, Height: 45}},
		{NE, types.Rect{X: 10, Y: 25, Width: 110, Height: 45}},
		{W, types.Rect{X: 20, Y: 20, Width: 90, Height: 50}},
		{E, types.Rect{X: 10, Y: 20, Width: 110, Height: 50}},
		{SW, types.Rect{X: 20, Y: 20, Width: 90, Height: 55}},
		{S, types.Rect{X: 10, Y: 20, Width: 100, Height: 55}},
		{SE, types.Rect{X: 10, Y: 20, Width: 110, Height: 55}},
	}
	for _, tt := range tests {
		t.Run(string(tt.pos), func(t *testing.T) {
			assertRect(t, tt.want, ResizeRect(orig, tt.pos, d, false))
		})
	}

	// Vertical drag dominates: width follows height.
	r := ResizeRect(orig, S, types.Pt(0, 50), true)
	assertRect(t, types.Rect{X: 10, Y: 20, Width: 200, Height: 100}, r)
}

func TestResizeIgnoresZeroScale(t *testing.T) {
	m := newManager()
	obj := rectObject(0, 0, 100, 50)
	objects := []*canvas.Object{obj}
	bounds := m.CalculateSelectionBounds(objects)
	e, _ := bounds.Handle(E)
	m.StartTransform(ModeResize, &e, bounds)

	next := m.UpdateTransform(types.Pt(-100, 0), objects, *bounds, false)
	assertRect(t, bounds.Rect, next.Rect)
	assertRect(t, types.Rect{Width: 100, Height: 50}, obj.Bounds())

	m.UpdateTransform(types.Pt(100, 0), objects, *bounds, false)
	assertRect(t, types.Rect{X: -50, Width: 200, Height: 50}, obj.Bounds())
}

func TestRotateUsesFixedPivot(t *testing.T) {
	m := newManager()
	a := rectObject(0, 0, 20, 10)
	b := rectObject(40, 30, 10, 10)
	objects := []*canvas.Object{a, b}
	bounds := m.CalculateSelectionBounds(objects)
	rot, _ := bounds.Handle(Rotate)
	pivot := bounds.Center

	m.StartTransform(ModeRotate, &rot, bounds)
	cur := *bounds
	for i := 0; i < 4; i++ {
		// 90 degrees per step; a stale box must not move the pivot.
		cur = m.UpdateTransform(types.Pt(0, 1), objects, cur, false)
	}
	assert.Equal(t, *bounds, cur, "rotate returns bounds unchanged")

	// Four quarter turns around one pivot restore the layout.
	assertRect(t, types.Rect{X: 0, Y: 0, Width: 20, Height: 10}, a.Bounds())
	assertRect(t, types.Rect{X: 40, Y: 30, Width: 10, Height: 10}, b.Bounds())

	m.UpdateTransform(types.Pt(0, 1), objects, Bounds{Center: types.Pt(999, 999)}, false)
	union := a.Bounds().Union(b.Bounds())
	assert.InDelta(t, pivot.X, union.Center().X, eps)
	assert.InDelta(t, pivot.Y, union.Center().Y, eps)
}

func TestNoModeAndEndTransform(t *testing.T) {
	m := newManager()
	obj := rectObject(0, 0, 10, 10)
	bounds := m.CalculateSelectionBounds([]*canvas.Object{obj})

	out := m.UpdateTransform(types.Pt(5, 5), []*canvas.Object{obj}, *bounds, false)
	assert.Equal(t, *bounds, out)
	assertRect(t, types.Rect{Width: 10, Height: 10}, obj.Bounds())

	se, _ := bounds.Handle(SE)
	m.StartTransform(ModeResize, &se, bounds)
	bounds.Width = 999
	orig, ok := m.OriginalBounds()
	require.True(t, ok)
	assert.InDelta(t, 10, orig.Width, eps, "snapshot is a copy")

	m.EndTransform()
	assert.Equal(t, ModeNone, m.Mode())
	assert.Nil(t, m.ActiveHandle())
	_, ok = m.OriginalBounds()
	assert.False(t, ok)

	m.StartTransform(ModeResize, nil, nil)
	out = m.UpdateTransform(types.Pt(5, 5), []*canvas.Object{obj}, *bounds, false)
	assert.Equal(t, *bounds, out, "resize without handle is a no-op")
}
