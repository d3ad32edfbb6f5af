package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectFromPoints_Normalizes(t *testing.T) {
	r := RectFromPoints(Pt(30, 40), Pt(10, 5))
	assert.Equal(t, Rect{X: 10, Y: 5, Width: 20, Height: 35}, r)
}

func TestRect_Edges(t *testing.T) {
	r := Rect{X: 1, Y: 2, Width: 10, Height: 20}
	assert.Equal(t, 1.0, r.Left())
	assert.Equal(t, 2.0, r.Top())
	assert.Equal(t, 11.0, r.Right())
	assert.Equal(t, 22.0, r.Bottom())
	assert.Equal(t, Pt(6, 12), r.Center())
}

func TestRect_Intersects(t *testing.T) {
	base := Rect{X: 0, Y: 0, Width: 10, Height: 10}

	tests := []struct {
		name string
		o    Rect
		want bool
	}{
		{"overlap", Rect{X: 5, Y: 5, Width: 10, Height: 10}, true},
		{"inside", Rect{X: 2, Y: 2, Width: 1, Height: 1}, true},
		{"touching edge", Rect{X: 10, Y: 0, Width: 5, Height: 5}, false},
		{"disjoint", Rect{X: 20, Y: 20, Width: 5, Height: 5}, false},
		{"zero size inside", Rect{X: 5, Y: 5}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Intersects(tt.o))
			assert.Equal(t, tt.want, tt.o.Intersects(base))
		})
	}
}

func TestRect_Union(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	b := Rect{X: 20, Y: 20, Width: 10, Height: 10}
	assert.Equal(t, Rect{X: 0, Y: 0, Width: 30, Height: 30}, a.Union(b))
}

func TestBoundsOf(t *testing.T) {
	_, ok := BoundsOf(nil)
	assert.False(t, ok)

	r, ok := BoundsOf([]Point{Pt(3, 4), Pt(-1, 8), Pt(5, 0)})
	assert.True(t, ok)
	assert.Equal(t, Rect{X: -1, Y: 0, Width: 6, Height: 8}, r)
}
