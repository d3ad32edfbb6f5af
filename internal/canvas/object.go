// Package canvas keeps the editor's object records and their scene nodes.
package canvas

import (
	"github.com/google/uuid"
	"github.com/sinbaddoraji/Dream/internal/scene"
	"github.com/sinbaddoraji/Dream/internal/types"
)

// Type names the kind of drawing an object was created as.
type Type string

const (
	TypeRectangle Type = "rectangle"
	TypeEllipse   Type = "ellipse"
	TypeLine      Type = "line"
	TypeTriangle  Type = "triangle"
	TypePentagon  Type = "pentagon"
	TypeHexagon   Type = "hexagon"
	TypeOctagon   Type = "octagon"
	TypeStar      Type = "star"
	TypePath      Type = "path"
)

// Object is a canvas record. Item is the live scene node; it is nil for records
// that have lost their rendering.
type Object struct {
	ID          string
	Type        Type
	Name        string
	Locked      bool
	Visible     bool
	ParentGroup string
	Item        *scene.Node
}

// NewObject creates a visible, unlocked object with a fresh id.
func NewObject(typ Type, item *scene.Node) *Object {
	return &Object{
		ID:      NewID(),
		Type:    typ,
		Visible: true,
		Item:    item,
	}
}

// NewID returns a fresh object id.
func NewID() string {
	return uuid.NewString()
}

// Clone returns a shallow copy; the copy shares the scene node.
func (o *Object) Clone() *Object {
	c := *o
	return &c
}

// Bounds returns the node bounds, or an empty rect when there is no node.
func (o *Object) Bounds() types.Rect {
	if o.Item == nil {
		return types.Rect{}
	}
	return o.Item.Bounds()
}

// Position returns the node position (bounds center).
func (o *Object) Position() types.Point {
	if o.Item == nil {
		return types.ZeroPoint
	}
	return o.Item.Position()
}

// Selectable reports whether pointer and marquee selection may pick the object.
func (o *Object) Selectable() bool {
	return !o.Locked && o.Visible
}
