package scene

import (
	"math"

	"github.com/sinbaddoraji/Dream/internal/types"
)

// RegularPolygon creates a closed polygon with the given number of sides
// inscribed in a circle. Triangles point up; other polygons sit on a flat edge.
func RegularPolygon(center types.Point, sides int, radius float64) *Node {
	if sides < 3 {
		sides = 3
	}
	step := 2 * math.Pi / float64(sides)
	start := -math.Pi / 2
	if sides%2 == 0 {
		start += step / 2
	}
	pts := make([]types.Point, sides)
	for i := range pts {
		a := start + step*float64(i)
		pts[i] = types.Pt(center.X+radius*math.Cos(a), center.Y+radius*math.Sin(a))
	}
	return NewPolygon(pts)
}

// Star creates a closed star with points outer vertices at radius1 and inner
// vertices at radius2. The first point is straight up.
func Star(center types.Point, points int, radius1, radius2 float64) *Node {
	if points < 2 {
		points = 2
	}
	step := math.Pi / float64(points)
	pts := make([]types.Point, 2*points)
	for i := range pts {
		r := radius1
		if i%2 == 1 {
			r = radius2
		}
		a := -math.Pi/2 + step*float64(i)
		pts[i] = types.Pt(center.X+r*math.Cos(a), center.Y+r*math.Sin(a))
	}
	return NewPolygon(pts)
}
