// internal/types/rect.go
package types

import (
	"math"

	"github.com/gogpu/gg"
)

// Rect is an axis-aligned rectangle described by its top-left corner and size.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// RectFromPoints builds the normalized rectangle spanned by two corners.
func RectFromPoints(a, b Point) Rect {
	return FromGG(gg.NewRect(a, b))
}

// FromGG converts a gg min/max rectangle.
func FromGG(r gg.Rect) Rect {
	return Rect{X: r.Min.X, Y: r.Min.Y, Width: r.Width(), Height: r.Height()}
}

// GG converts to the gg min/max representation.
func (r Rect) GG() gg.Rect {
	return gg.Rect{Min: Pt(r.Left(), r.Top()), Max: Pt(r.Right(), r.Bottom())}
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Right() float64  { return r.X + r.Width }
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Pt(r.X+r.Width/2, r.Y+r.Height/2)
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Intersects reports whether the two rectangles overlap.
// Touching edges do not count as an overlap.
func (r Rect) Intersects(o Rect) bool {
	return o.Right() > r.Left() &&
		o.Bottom() > r.Top() &&
		o.Left() < r.Right() &&
		o.Top() < r.Bottom()
}

// Contains reports whether p lies inside or on the border of r.
func (r Rect) Contains(p Point) bool {
	return r.GG().Contains(p)
}

// Union returns the smallest rectangle containing both rectangles.
func (r Rect) Union(o Rect) Rect {
	return FromGG(r.GG().Union(o.GG()))
}

// Translate returns the rectangle shifted by d.
func (r Rect) Translate(d Point) Rect {
	return Rect{X: r.X + d.X, Y: r.Y + d.Y, Width: r.Width, Height: r.Height}
}

// BoundsOf returns the bounding rectangle of a set of points.
// The second result is false when pts is empty.
func BoundsOf(pts []Point) (Rect, bool) {
	if len(pts) == 0 {
		return Rect{}, false
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}, true
}
