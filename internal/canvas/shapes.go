package canvas

import (
	"fmt"

	"github.com/sinbaddoraji/Dream/internal/scene"
	"github.com/sinbaddoraji/Dream/internal/types"
)

// ShapeTypes lists the types BuildShape can draw from two points.
var ShapeTypes = []Type{
	TypeRectangle, TypeEllipse, TypeLine, TypeTriangle,
	TypePentagon, TypeHexagon, TypeOctagon, TypeStar,
}

var polygonSides = map[Type]int{
	TypeTriangle: 3,
	TypePentagon: 5,
	TypeHexagon:  6,
	TypeOctagon:  8,
}

// ParseType converts a user supplied name to a Type.
func ParseType(name string) (Type, bool) {
	t := Type(name)
	if t == TypePath {
		return t, true
	}
	for _, s := range ShapeTypes {
		if s == t {
			return t, true
		}
	}
	return "", false
}

// BuildShape creates a detached node for a drag from one point to another.
// Rectangles and ellipses fill the dragged box; polygons and stars are
// centered between the points with a radius of half their distance.
func BuildShape(typ Type, from, to types.Point) (*scene.Node, error) {
	center := from.Add(to).Div(2)
	radius := from.Distance(to) / 2

	switch typ {
	case TypeRectangle:
		return scene.NewRect(types.RectFromPoints(from, to)), nil
	case TypeEllipse:
		return scene.NewEllipse(types.RectFromPoints(from, to)), nil
	case TypeLine:
		return scene.NewPath(from, to), nil
	case TypeStar:
		return scene.Star(center, 5, radius, radius*0.5), nil
	case TypeTriangle, TypePentagon, TypeHexagon, TypeOctagon:
		return scene.RegularPolygon(center, polygonSides[typ], radius), nil
	default:
		return nil, fmt.Errorf("cannot build shape %q", typ)
	}
}
