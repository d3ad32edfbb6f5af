package scene

import (
	"slices"

	"github.com/sinbaddoraji/Dream/internal/types"
)

// Layer is an ordered list of nodes; later children paint on top.
type Layer struct {
	Name     string
	Visible  bool
	children []*Node
}

// NewLayer creates an empty, visible layer.
func NewLayer(name string) *Layer {
	return &Layer{Name: name, Visible: true}
}

// Add attaches n on top of the layer, detaching it from any previous layer.
func (l *Layer) Add(n *Node) {
	if n == nil {
		return
	}
	if n.layer != nil {
		n.layer.Remove(n)
	}
	n.layer = l
	l.children = append(l.children, n)
}

// Insert attaches n at index i (clamped to the valid range).
func (l *Layer) Insert(i int, n *Node) {
	if n == nil {
		return
	}
	if n.layer != nil {
		n.layer.Remove(n)
	}
	i = max(0, min(i, len(l.children)))
	n.layer = l
	l.children = slices.Insert(l.children, i, n)
}

// Remove detaches n. It reports whether n was a child of this layer.
func (l *Layer) Remove(n *Node) bool {
	i := l.IndexOf(n)
	if i < 0 {
		return false
	}
	l.children = slices.Delete(l.children, i, i+1)
	n.layer = nil
	return true
}

// IndexOf returns the paint index of n, or -1.
func (l *Layer) IndexOf(n *Node) int {
	return slices.Index(l.children, n)
}

// Children returns a copy of the children in paint order.
func (l *Layer) Children() []*Node {
	return slices.Clone(l.children)
}

// Len returns the number of children.
func (l *Layer) Len() int { return len(l.children) }

// Clear detaches every child.
func (l *Layer) Clear() {
	for _, n := range l.children {
		n.layer = nil
	}
	l.children = nil
}

// HitTest returns the top-most child containing p, or nil.
func (l *Layer) HitTest(p types.Point) *Node {
	for i := len(l.children) - 1; i >= 0; i-- {
		if l.children[i].Contains(p) {
			return l.children[i]
		}
	}
	return nil
}

// BringToFront moves n to the top of the paint order.
func (l *Layer) BringToFront(n *Node) bool {
	return l.move(n, len(l.children)-1)
}

// SendToBack moves n to the bottom of the paint order.
func (l *Layer) SendToBack(n *Node) bool {
	return l.move(n, 0)
}

// BringForward moves n one step up.
func (l *Layer) BringForward(n *Node) bool {
	return l.move(n, l.IndexOf(n)+1)
}

// SendBackward moves n one step down.
func (l *Layer) SendBackward(n *Node) bool {
	i := l.IndexOf(n)
	if i < 0 {
		return false
	}
	return l.move(n, i-1)
}

func (l *Layer) move(n *Node, to int) bool {
	from := l.IndexOf(n)
	if from < 0 {
		return false
	}
	to = max(0, min(to, len(l.children)-1))
	if from == to {
		return false
	}
	l.children = slices.Delete(l.children, from, from+1)
	l.children = slices.Insert(l.children, to, n)
	return true
}
