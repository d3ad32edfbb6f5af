package tui

import (
	"math"

	"github.com/sinbaddoraji/Dream/internal/types"
)

// Viewport maps terminal cells to canvas coordinates. One cell covers
// CellW x CellH canvas units at scale 1.
type Viewport struct {
	CellW, CellH  float64
	Scale         float64
	Pan           types.Point
	Width, Height int // Cells available for the canvas
}

// ToCanvas returns the canvas point at the center of cell (x, y).
func (v Viewport) ToCanvas(x, y int) types.Point {
	s := v.scale()
	return types.Pt(
		v.Pan.X+(float64(x)+0.5)*v.CellW/s,
		v.Pan.Y+(float64(y)+0.5)*v.CellH/s,
	)
}

// ToCell returns the cell containing canvas point p. The cell may lie
// outside the viewport.
func (v Viewport) ToCell(p types.Point) (int, int) {
	s := v.scale()
	return int(math.Floor((p.X - v.Pan.X) * s / v.CellW)),
		int(math.Floor((p.Y - v.Pan.Y) * s / v.CellH))
}

// InBounds reports whether cell (x, y) is inside the viewport.
func (v Viewport) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < v.Width && y < v.Height
}

// Step returns the canvas distance covered by one cell horizontally and
// vertically, used for panning.
func (v Viewport) Step() (float64, float64) {
	s := v.scale()
	return v.CellW / s, v.CellH / s
}

func (v Viewport) scale() float64 {
	if v.Scale <= 0 {
		return 1
	}
	return v.Scale
}
