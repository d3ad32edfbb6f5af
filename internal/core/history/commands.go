package history

import (
	"fmt"
	"slices"

	"github.com/gogpu/gg"
	"github.com/sinbaddoraji/Dream/internal/canvas"
	"github.com/sinbaddoraji/Dream/internal/scene"
	"github.com/sinbaddoraji/Dream/internal/types"
)

// ObjectStore is the object registry commands operate on.
type ObjectStore interface {
	AddObject(obj *canvas.Object)
	RemoveObject(id string)
	Object(id string) (*canvas.Object, bool)
	Layer() *scene.Layer
}

// GroupStore is implemented by stores that track object groups. Deletes
// against such a store put group membership back on undo.
type GroupStore interface {
	Group(id string) (*canvas.Group, bool)
	RestoreGroup(g *canvas.Group)
}

// AddObjectCommand registers a new object.
type AddObjectCommand struct {
	object *canvas.Object
	store  ObjectStore
}

func NewAddObjectCommand(obj *canvas.Object, store ObjectStore) *AddObjectCommand {
	return &AddObjectCommand{object: obj, store: store}
}

func (c *AddObjectCommand) Execute() {
	c.store.AddObject(c.object)
}

func (c *AddObjectCommand) Undo() {
	c.store.RemoveObject(c.object.ID)
	if c.object.Item != nil && c.object.Item.Layer() != nil {
		c.object.Item.Remove()
	}
}

func (c *AddObjectCommand) Redo() {
	if c.object.Item != nil && c.object.Item.Layer() == nil {
		c.object.Item.AddTo(c.store.Layer())
	}
	c.store.AddObject(c.object)
}

func (c *AddObjectCommand) Description() string {
	return fmt.Sprintf("Add %s", c.object.Type)
}

// Object returns the object the command adds.
func (c *AddObjectCommand) Object() *canvas.Object { return c.object }

// DeleteObjectCommand removes objects. The first Execute snapshots what it
// removed along with the groups they belonged to; Undo restores that
// snapshot and Redo removes it again.
type DeleteObjectCommand struct {
	ids      []string
	store    ObjectStore
	deleted  []*canvas.Object
	groups   []*canvas.Group
	executed bool
}

func NewDeleteObjectCommand(ids []string, store ObjectStore) *DeleteObjectCommand {
	return &DeleteObjectCommand{ids: append([]string(nil), ids...), store: store}
}

func (c *DeleteObjectCommand) Execute() {
	if c.executed {
		c.Redo()
		return
	}
	c.executed = true
	c.deleted = c.deleted[:0]
	c.groups = c.snapshotGroups()
	for _, id := range c.ids {
		obj, ok := c.store.Object(id)
		if !ok {
			continue
		}
		c.deleted = append(c.deleted, obj.Clone())
		c.store.RemoveObject(id)
		if obj.Item != nil {
			obj.Item.Remove()
		}
	}
}

func (c *DeleteObjectCommand) Undo() {
	for _, obj := range c.deleted {
		if obj.Item != nil && obj.Item.Layer() == nil {
			obj.Item.AddTo(c.store.Layer())
		}
		c.store.AddObject(obj)
	}
	if gs, ok := c.store.(GroupStore); ok {
		for _, g := range c.groups {
			gs.RestoreGroup(g)
		}
	}
}

// snapshotGroups copies every group that holds one of the ids, before any
// removal can shrink or dissolve it.
func (c *DeleteObjectCommand) snapshotGroups() []*canvas.Group {
	gs, ok := c.store.(GroupStore)
	if !ok {
		return nil
	}
	var out []*canvas.Group
	seen := make(map[string]bool)
	for _, id := range c.ids {
		obj, ok := c.store.Object(id)
		if !ok || obj.ParentGroup == "" || seen[obj.ParentGroup] {
			continue
		}
		seen[obj.ParentGroup] = true
		if g, ok := gs.Group(obj.ParentGroup); ok {
			out = append(out, &canvas.Group{ID: g.ID, Name: g.Name, ObjectIDs: slices.Clone(g.ObjectIDs)})
		}
	}
	return out
}

func (c *DeleteObjectCommand) Redo() {
	for _, obj := range c.deleted {
		c.store.RemoveObject(obj.ID)
		if obj.Item != nil {
			obj.Item.Remove()
		}
	}
}

func (c *DeleteObjectCommand) Description() string {
	return fmt.Sprintf("Delete %d object(s)", len(c.ids))
}

// Deleted returns the number of objects the command actually removed.
func (c *DeleteObjectCommand) Deleted() int { return len(c.deleted) }

// MoveObjectCommand translates objects by a fixed delta.
type MoveObjectCommand struct {
	ids   []string
	delta types.Point
	store ObjectStore
}

func NewMoveObjectCommand(ids []string, delta types.Point, store ObjectStore) *MoveObjectCommand {
	return &MoveObjectCommand{ids: append([]string(nil), ids...), delta: delta, store: store}
}

func (c *MoveObjectCommand) Execute() { c.translate(c.delta) }
func (c *MoveObjectCommand) Undo()    { c.translate(c.delta.Mul(-1)) }
func (c *MoveObjectCommand) Redo()    { c.translate(c.delta) }

func (c *MoveObjectCommand) translate(d types.Point) {
	for _, id := range c.ids {
		if obj, ok := c.store.Object(id); ok && obj.Item != nil {
			obj.Item.Translate(d)
		}
	}
}

func (c *MoveObjectCommand) Description() string {
	return fmt.Sprintf("Move %d object(s)", len(c.ids))
}

// Delta returns the translation the command applies.
func (c *MoveObjectCommand) Delta() types.Point { return c.delta }

// TransformObjectCommand swaps node matrices between the states recorded
// before and after a resize or rotate gesture.
type TransformObjectCommand struct {
	ids    []string
	before map[string]gg.Matrix
	after  map[string]gg.Matrix
	store  ObjectStore
}

func NewTransformObjectCommand(ids []string, before, after map[string]gg.Matrix, store ObjectStore) *TransformObjectCommand {
	return &TransformObjectCommand{
		ids:    append([]string(nil), ids...),
		before: before,
		after:  after,
		store:  store,
	}
}

func (c *TransformObjectCommand) Execute() { c.apply(c.after) }
func (c *TransformObjectCommand) Undo()    { c.apply(c.before) }
func (c *TransformObjectCommand) Redo()    { c.apply(c.after) }

func (c *TransformObjectCommand) apply(state map[string]gg.Matrix) {
	for _, id := range c.ids {
		m, ok := state[id]
		if !ok {
			continue
		}
		if obj, found := c.store.Object(id); found && obj.Item != nil {
			obj.Item.SetMatrix(m)
		}
	}
}

func (c *TransformObjectCommand) Description() string {
	return fmt.Sprintf("Transform %d object(s)", len(c.ids))
}

// CaptureMatrices records the current node matrix of every id.
func CaptureMatrices(store ObjectStore, ids []string) map[string]gg.Matrix {
	out := make(map[string]gg.Matrix, len(ids))
	for _, id := range ids {
		if obj, ok := store.Object(id); ok && obj.Item != nil {
			out[id] = obj.Item.Matrix()
		}
	}
	return out
}

// BatchCommand groups commands into one history entry.
type BatchCommand struct {
	description string
	commands    []Command
}

func NewBatchCommand(description string, cmds ...Command) *BatchCommand {
	return &BatchCommand{description: description, commands: cmds}
}

func (c *BatchCommand) Execute() {
	for _, cmd := range c.commands {
		cmd.Execute()
	}
}

func (c *BatchCommand) Undo() {
	for i := len(c.commands) - 1; i >= 0; i-- {
		c.commands[i].Undo()
	}
}

func (c *BatchCommand) Redo() {
	for _, cmd := range c.commands {
		cmd.Redo()
	}
}

func (c *BatchCommand) Description() string { return c.description }

// Len returns the number of child commands.
func (c *BatchCommand) Len() int { return len(c.commands) }
