// internal/types/point.go
package types

import "github.com/gogpu/gg"

// Point is a position or displacement on the canvas, in canvas units.
// It is the gg vector type so scene transforms can use it directly.
type Point = gg.Point

// Pt is a shorthand for building a Point.
func Pt(x, y float64) Point {
	return gg.Pt(x, y)
}

// ZeroPoint is the origin / the empty displacement.
var ZeroPoint = Point{}
