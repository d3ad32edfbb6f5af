package scene

import (
	"path/filepath"
	"testing"

	"github.com/sinbaddoraji/Dream/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func assertRect(t *testing.T, want, got types.Rect) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-6, "x")
	assert.InDelta(t, want.Y, got.Y, 1e-6, "y")
	assert.InDelta(t, want.Width, got.Width, 1e-6, "width")
	assert.InDelta(t, want.Height, got.Height, 1e-6, "height")
}

func TestRectNodeTransforms(t *testing.T) {
	n := NewRect(types.Rect{X: 0, Y: 0, Width: 100, Height: 50})
	assertRect(t, types.Rect{Width: 100, Height: 50}, n.Bounds())

	n.Translate(types.Pt(10, 20))
	assertRect(t, types.Rect{X: 10, Y: 20, Width: 100, Height: 50}, n.Bounds())
	assert.InDelta(t, 60, n.Position().X, eps)
	assert.InDelta(t, 45, n.Position().Y, eps)

	n.Scale(2, 2, types.Pt(10, 20))
	assertRect(t, types.Rect{X: 10, Y: 20, Width: 200, Height: 100}, n.Bounds())

	n.SetPosition(types.Pt(0, 0))
	assertRect(t, types.Rect{X: -100, Y: -50, Width: 200, Height: 100}, n.Bounds())
}

func TestRotateAroundCenter(t *testing.T) {
	n := NewRect(types.Rect{X: 0, Y: 0, Width: 100, Height: 50})
	c := n.Position()

	n.Rotate(90, c)
	assertRect(t, types.Rect{X: 25, Y: -25, Width: 50, Height: 100}, n.Bounds())
	assert.InDelta(t, c.X, n.Position().X, 1e-6)
	assert.InDelta(t, c.Y, n.Position().Y, 1e-6)

	n.Rotate(-90, c)
	assertRect(t, types.Rect{Width: 100, Height: 50}, n.Bounds())
}

func TestEllipseBounds(t *testing.T) {
	n := NewEllipse(types.Rect{X: 0, Y: 0, Width: 40, Height: 20})
	assertRect(t, types.Rect{Width: 40, Height: 20}, n.Bounds())

	n.Rotate(90, n.Position())
	assertRect(t, types.Rect{X: 10, Y: -10, Width: 20, Height: 40}, n.Bounds())
}

func TestContains(t *testing.T) {
	rect := NewRect(types.Rect{X: 0, Y: 0, Width: 10, Height: 10})
	assert.True(t, rect.Contains(types.Pt(5, 5)))
	assert.False(t, rect.Contains(types.Pt(11, 5)))

	ellipse := NewEllipse(types.Rect{X: 0, Y: 0, Width: 10, Height: 10})
	assert.True(t, ellipse.Contains(types.Pt(5, 5)))
	assert.False(t, ellipse.Contains(types.Pt(0.5, 0.5)))

	tri := NewPolygon([]types.Point{types.Pt(0, 0), types.Pt(10, 0), types.Pt(0, 10)})
	assert.True(t, tri.Contains(types.Pt(2, 2)))
	assert.False(t, tri.Contains(types.Pt(8, 8)))

	line := NewPath(types.Pt(0, 0), types.Pt(10, 0))
	assert.True(t, line.Contains(types.Pt(5, 1)))
	assert.False(t, line.Contains(types.Pt(5, 5)))
}

func TestPathAddAndClose(t *testing.T) {
	p := NewPath(types.Pt(0, 0))
	p.Add(types.Pt(10, 0))
	p.Add(types.Pt(10, 10))
	assert.False(t, p.Closed())
	assert.Len(t, p.Points(), 3)

	p.Close()
	assert.True(t, p.Closed())
	assert.Equal(t, ShapePolygon, p.Shape())
	assert.True(t, p.Contains(types.Pt(8, 3)))
}

func TestLayerMembership(t *testing.T) {
	l := NewLayer("objects")
	a := NewRect(types.Rect{Width: 10, Height: 10})
	b := NewRect(types.Rect{X: 5, Y: 5, Width: 10, Height: 10})

	a.AddTo(l)
	l.Add(b)
	require.Equal(t, 2, l.Len())
	assert.Same(t, l, a.Layer())

	assert.Same(t, b, l.HitTest(types.Pt(7, 7)), "top-most wins")
	assert.True(t, l.SendToBack(b))
	assert.Same(t, a, l.HitTest(types.Pt(7, 7)))
	assert.True(t, l.BringForward(b))
	assert.Same(t, b, l.HitTest(types.Pt(7, 7)))
	assert.False(t, l.BringToFront(b), "already on top")

	assert.True(t, a.Remove())
	assert.Nil(t, a.Layer())
	assert.False(t, a.Remove())
	assert.Equal(t, 1, l.Len())

	other := NewLayer("overlay")
	other.Add(b)
	assert.Equal(t, 0, l.Len(), "adding to another layer detaches")
	assert.Same(t, other, b.Layer())
}

func TestLayerInsert(t *testing.T) {
	l := NewLayer("objects")
	a, b, c := NewRect(types.Rect{}), NewRect(types.Rect{}), NewRect(types.Rect{})
	l.Add(a)
	l.Add(c)
	l.Insert(1, b)
	assert.Equal(t, []*Node{a, b, c}, l.Children())

	l.Clear()
	assert.Equal(t, 0, l.Len())
	assert.Nil(t, b.Layer())
}

func TestExport(t *testing.T) {
	l := NewLayer("objects")
	n := NewRect(types.Rect{X: 4, Y: 4, Width: 8, Height: 8})
	n.Style = Style{Fill: "#FF0000", Stroke: "#000000", StrokeWidth: 1}
	l.Add(n)

	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, Export(path, 16, 16, "#FFFFFF", l))
	assert.FileExists(t, path)

	_, err := Render(0, 10, "", l)
	assert.Error(t, err)
}
