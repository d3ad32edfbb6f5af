// Package scene holds the renderable side of canvas objects: nodes with an
// affine transform, grouped into ordered layers.
package scene

import (
	"math"

	"github.com/gogpu/gg"
	"github.com/sinbaddoraji/Dream/internal/types"
)

// Shape identifies the local geometry of a node.
type Shape int

const (
	ShapeRect Shape = iota
	ShapeEllipse
	ShapePolygon  // Closed outline through Points
	ShapePolyline // Open outline through Points (lines, lasso while drawing)
)

// ParseShape converts a name produced by Shape.String.
func ParseShape(name string) (Shape, bool) {
	for _, s := range []Shape{ShapeRect, ShapeEllipse, ShapePolygon, ShapePolyline} {
		if s.String() == name {
			return s, true
		}
	}
	return 0, false
}

func (s Shape) String() string {
	switch s {
	case ShapeRect:
		return "rect"
	case ShapeEllipse:
		return "ellipse"
	case ShapePolygon:
		return "polygon"
	case ShapePolyline:
		return "polyline"
	default:
		return "unknown"
	}
}

// ellipseSegments is the number of segments used to flatten ellipses.
const ellipseSegments = 64

// minHitTolerance is the minimum pick distance for open paths, in canvas units.
const minHitTolerance = 2.0

// Style holds the paint attributes of a node. Colors are #RRGGBB strings;
// an empty color disables that paint.
type Style struct {
	Fill        string
	Stroke      string
	StrokeWidth float64
	Dash        []float64
}

// Node is a renderable item. A node is live while it belongs to a Layer.
type Node struct {
	Name   string
	Style  Style
	Hidden bool

	shape  Shape
	base   types.Rect    // Local geometry for rects and ellipses
	points []types.Point // Local geometry for polygons and polylines
	matrix gg.Matrix
	layer  *Layer
}

// NewRect creates a detached rectangle node.
func NewRect(r types.Rect) *Node {
	return &Node{shape: ShapeRect, base: r, matrix: gg.Identity()}
}

// NewEllipse creates a detached ellipse node inscribed in r.
func NewEllipse(r types.Rect) *Node {
	return &Node{shape: ShapeEllipse, base: r, matrix: gg.Identity()}
}

// NewPolygon creates a detached closed polygon node.
func NewPolygon(pts []types.Point) *Node {
	return &Node{shape: ShapePolygon, points: append([]types.Point(nil), pts...), matrix: gg.Identity()}
}

// NewPath creates a detached open path node.
func NewPath(pts ...types.Point) *Node {
	return &Node{shape: ShapePolyline, points: append([]types.Point(nil), pts...), matrix: gg.Identity()}
}

// Shape returns the node's geometry kind.
func (n *Node) Shape() Shape { return n.shape }

// Closed reports whether the outline is closed.
func (n *Node) Closed() bool { return n.shape != ShapePolyline }

// Local returns the untransformed rectangle for rect/ellipse nodes.
func (n *Node) Local() types.Rect { return n.base }

// Points returns a copy of the untransformed outline points of path nodes.
func (n *Node) Points() []types.Point {
	return append([]types.Point(nil), n.points...)
}

// Add appends a point (in canvas coordinates) to a path node.
func (n *Node) Add(p types.Point) {
	if n.shape != ShapePolyline && n.shape != ShapePolygon {
		return
	}
	n.points = append(n.points, n.matrix.Invert().TransformPoint(p))
}

// Close turns an open path into a closed polygon.
func (n *Node) Close() {
	if n.shape == ShapePolyline {
		n.shape = ShapePolygon
	}
}

// Layer returns the layer the node belongs to, or nil when detached.
func (n *Node) Layer() *Layer { return n.layer }

// Remove detaches the node from its layer. It reports whether the node was attached.
func (n *Node) Remove() bool {
	if n.layer == nil {
		return false
	}
	return n.layer.Remove(n)
}

// AddTo attaches the node on top of layer l.
func (n *Node) AddTo(l *Layer) {
	if l != nil {
		l.Add(n)
	}
}

// Matrix returns the node's transform.
func (n *Node) Matrix() gg.Matrix { return n.matrix }

// SetMatrix replaces the node's transform.
func (n *Node) SetMatrix(m gg.Matrix) { n.matrix = m }

// Outline returns the node outline in canvas coordinates.
func (n *Node) Outline() []types.Point {
	var local []types.Point
	switch n.shape {
	case ShapeRect:
		b := n.base
		local = []types.Point{
			types.Pt(b.Left(), b.Top()),
			types.Pt(b.Right(), b.Top()),
			types.Pt(b.Right(), b.Bottom()),
			types.Pt(b.Left(), b.Bottom()),
		}
	case ShapeEllipse:
		c := n.base.Center()
		rx, ry := n.base.Width/2, n.base.Height/2
		local = make([]types.Point, ellipseSegments)
		for i := range local {
			a := 2 * math.Pi * float64(i) / ellipseSegments
			local[i] = types.Pt(c.X+rx*math.Cos(a), c.Y+ry*math.Sin(a))
		}
	default:
		local = n.points
	}

	out := make([]types.Point, len(local))
	for i, p := range local {
		out[i] = n.matrix.TransformPoint(p)
	}
	return out
}

// Bounds returns the axis-aligned bounding box of the transformed node.
func (n *Node) Bounds() types.Rect {
	if n.shape == ShapeEllipse {
		// Exact extents of an affinely transformed ellipse.
		m := n.matrix
		c := m.TransformPoint(n.base.Center())
		rx, ry := n.base.Width/2, n.base.Height/2
		hx := math.Hypot(m.A*rx, m.B*ry)
		hy := math.Hypot(m.D*rx, m.E*ry)
		return types.Rect{X: c.X - hx, Y: c.Y - hy, Width: 2 * hx, Height: 2 * hy}
	}
	r, _ := types.BoundsOf(n.Outline())
	return r
}

// Position is the center of the node's bounds.
func (n *Node) Position() types.Point {
	return n.Bounds().Center()
}

// SetPosition moves the node so that its bounds are centered on p.
func (n *Node) SetPosition(p types.Point) {
	n.Translate(p.Sub(n.Position()))
}

// Translate moves the node by d.
func (n *Node) Translate(d types.Point) {
	n.matrix = gg.Translate(d.X, d.Y).Multiply(n.matrix)
}

// Scale scales the node by (sx, sy) around pivot.
func (n *Node) Scale(sx, sy float64, pivot types.Point) {
	m := gg.Translate(pivot.X, pivot.Y).
		Multiply(gg.Scale(sx, sy)).
		Multiply(gg.Translate(-pivot.X, -pivot.Y))
	n.matrix = m.Multiply(n.matrix)
}

// Rotate rotates the node by deg degrees (clockwise on a y-down canvas) around pivot.
func (n *Node) Rotate(deg float64, pivot types.Point) {
	m := gg.Translate(pivot.X, pivot.Y).
		Multiply(gg.Rotate(deg * math.Pi / 180)).
		Multiply(gg.Translate(-pivot.X, -pivot.Y))
	n.matrix = m.Multiply(n.matrix)
}

// Contains reports whether p (canvas coordinates) hits the node.
func (n *Node) Contains(p types.Point) bool {
	if n.Hidden {
		return false
	}
	switch n.shape {
	case ShapeRect:
		return n.base.Contains(n.matrix.Invert().TransformPoint(p))
	case ShapeEllipse:
		if n.base.Width == 0 || n.base.Height == 0 {
			return false
		}
		l := n.matrix.Invert().TransformPoint(p)
		c := n.base.Center()
		dx := (l.X - c.X) / (n.base.Width / 2)
		dy := (l.Y - c.Y) / (n.base.Height / 2)
		return dx*dx+dy*dy <= 1
	case ShapePolygon:
		return containsEvenOdd(n.Outline(), p)
	default:
		tol := math.Max(n.Style.StrokeWidth/2, minHitTolerance)
		return nearPolyline(n.Outline(), p, tol)
	}
}

// containsEvenOdd is the ray-crossing point-in-polygon test.
func containsEvenOdd(pts []types.Point, p types.Point) bool {
	if len(pts) < 3 {
		return false
	}
	inside := false
	j := len(pts) - 1
	for i := range pts {
		a, b := pts[i], pts[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < x {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

func nearPolyline(pts []types.Point, p types.Point, tol float64) bool {
	if len(pts) == 1 {
		return pts[0].Distance(p) <= tol
	}
	for i := 1; i < len(pts); i++ {
		if segmentDistance(gg.NewLine(pts[i-1], pts[i]), p) <= tol {
			return true
		}
	}
	return false
}

func segmentDistance(l gg.Line, p types.Point) float64 {
	d := l.P1.Sub(l.P0)
	n := d.LengthSquared()
	if n == 0 {
		return l.P0.Distance(p)
	}
	t := math.Max(0, math.Min(1, p.Sub(l.P0).Dot(d)/n))
	return l.Eval(t).Distance(p)
}
