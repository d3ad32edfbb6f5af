package canvas

import (
	"testing"

	"github.com/sinbaddoraji/Dream/internal/scene"
	"github.com/sinbaddoraji/Dream/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildShape(t *testing.T) {
	from, to := types.Pt(0, 0), types.Pt(60, 80)

	tests := []struct {
		typ    Type
		shape  scene.Shape
		points int
	}{
		{TypeRectangle, scene.ShapeRect, 0},
		{TypeEllipse, scene.ShapeEllipse, 0},
		{TypeLine, scene.ShapePolyline, 2},
		{TypeTriangle, scene.ShapePolygon, 3},
		{TypePentagon, scene.ShapePolygon, 5},
		{TypeHexagon, scene.ShapePolygon, 6},
		{TypeOctagon, scene.ShapePolygon, 8},
		{TypeStar, scene.ShapePolygon, 10},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			n, err := BuildShape(tt.typ, from, to)
			require.NoError(t, err)
			assert.Equal(t, tt.shape, n.Shape())
			assert.Len(t, n.Points(), tt.points)
		})
	}
}

func TestBuildShapeGeometry(t *testing.T) {
	rect, err := BuildShape(TypeRectangle, types.Pt(50, 40), types.Pt(10, 0))
	require.NoError(t, err)
	assert.Equal(t, types.Rect{X: 10, Y: 0, Width: 40, Height: 40}, rect.Bounds())

	// Radius is half the drag distance (50), centered at (30, 40).
	tri, err := BuildShape(TypeTriangle, types.Pt(0, 0), types.Pt(60, 80))
	require.NoError(t, err)
	top := tri.Points()[0]
	assert.InDelta(t, 30, top.X, 1e-9)
	assert.InDelta(t, -10, top.Y, 1e-9)

	star, err := BuildShape(TypeStar, types.Pt(0, 0), types.Pt(60, 80))
	require.NoError(t, err)
	inner := star.Points()[1]
	assert.InDelta(t, 25, inner.Distance(types.Pt(30, 40)), 1e-9)
}

func TestBuildShapeUnknown(t *testing.T) {
	_, err := BuildShape(TypePath, types.Pt(0, 0), types.Pt(1, 1))
	assert.Error(t, err)
}

func TestParseType(t *testing.T) {
	typ, ok := ParseType("hexagon")
	assert.True(t, ok)
	assert.Equal(t, TypeHexagon, typ)

	_, ok = ParseType("path")
	assert.True(t, ok)

	_, ok = ParseType("heart")
	assert.False(t, ok)
}
