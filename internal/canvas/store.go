package canvas

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sinbaddoraji/Dream/internal/logger"
	"github.com/sinbaddoraji/Dream/internal/scene"
	"github.com/sinbaddoraji/Dream/internal/types"
)

// Group is a named set of object ids.
type Group struct {
	ID        string
	Name      string
	ObjectIDs []string
}

// Store is the object registry. It maps ids to objects, keeps insertion order
// and a reverse index from scene nodes to ids.
type Store struct {
	layer   *scene.Layer
	objects map[string]*Object
	order   []string
	byNode  map[*scene.Node]string
	groups  map[string]*Group
}

// NewStore creates an empty store whose objects render into layer.
func NewStore(layer *scene.Layer) *Store {
	if layer == nil {
		layer = scene.NewLayer("objects")
	}
	return &Store{
		layer:   layer,
		objects: make(map[string]*Object),
		byNode:  make(map[*scene.Node]string),
		groups:  make(map[string]*Group),
	}
}

// Layer returns the content layer.
func (s *Store) Layer() *scene.Layer { return s.layer }

// AddObject registers obj, replacing any object with the same id.
func (s *Store) AddObject(obj *Object) {
	if obj == nil || obj.ID == "" {
		return
	}
	if old, ok := s.objects[obj.ID]; ok {
		if old.Item != nil {
			delete(s.byNode, old.Item)
		}
	} else {
		s.order = append(s.order, obj.ID)
	}
	s.objects[obj.ID] = obj
	if obj.Item != nil {
		s.byNode[obj.Item] = obj.ID
		obj.Item.Name = obj.ID
	}
	logger.DebugTagf("store", "Store: added %s (%s)", obj.ID, obj.Type)
}

// RemoveObject unregisters id. The scene node is left as is.
func (s *Store) RemoveObject(id string) {
	obj, ok := s.objects[id]
	if !ok {
		return
	}
	delete(s.objects, id)
	if obj.Item != nil {
		delete(s.byNode, obj.Item)
	}
	if i := slices.Index(s.order, id); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
	if obj.ParentGroup != "" {
		s.dropFromGroup(obj.ParentGroup, id)
	}
	logger.DebugTagf("store", "Store: removed %s", id)
}

// Object returns the object with the given id.
func (s *Store) Object(id string) (*Object, bool) {
	obj, ok := s.objects[id]
	return obj, ok
}

// List returns objects in insertion order.
func (s *Store) List() []*Object {
	out := make([]*Object, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.objects[id])
	}
	return out
}

// IDs returns object ids in insertion order.
func (s *Store) IDs() []string {
	return slices.Clone(s.order)
}

// Len returns the number of registered objects.
func (s *Store) Len() int { return len(s.objects) }

// Lookup returns the object that owns node.
func (s *Store) Lookup(node *scene.Node) (*Object, bool) {
	if node == nil {
		return nil, false
	}
	id, ok := s.byNode[node]
	if !ok {
		return nil, false
	}
	return s.Object(id)
}

// ObjectAt returns the top-most visible object under p.
func (s *Store) ObjectAt(p types.Point) (*Object, bool) {
	children := s.layer.Children()
	for i := len(children) - 1; i >= 0; i-- {
		obj, ok := s.Lookup(children[i])
		if !ok || !obj.Visible {
			continue
		}
		if children[i].Contains(p) {
			return obj, true
		}
	}
	return nil, false
}

// Clear removes every object and group and detaches their nodes.
func (s *Store) Clear() {
	for _, obj := range s.objects {
		if obj.Item != nil {
			obj.Item.Remove()
		}
	}
	s.objects = make(map[string]*Object)
	s.byNode = make(map[*scene.Node]string)
	s.groups = make(map[string]*Group)
	s.order = nil
}

// Lock marks ids as locked. It returns the number of objects changed.
func (s *Store) Lock(ids ...string) int {
	return s.each(ids, func(o *Object) bool {
		changed := !o.Locked
		o.Locked = true
		return changed
	})
}

// Unlock clears the locked flag on ids, or on every object when ids is empty.
func (s *Store) Unlock(ids ...string) int {
	return s.each(s.orAll(ids), func(o *Object) bool {
		changed := o.Locked
		o.Locked = false
		return changed
	})
}

// Hide makes ids invisible. Hidden nodes stay in the layer but neither paint nor hit.
func (s *Store) Hide(ids ...string) int {
	return s.each(ids, func(o *Object) bool {
		if !o.Visible {
			return false
		}
		o.Visible = false
		if o.Item != nil {
			o.Item.Hidden = true
		}
		return true
	})
}

// Show makes ids visible, or every object when ids is empty.
func (s *Store) Show(ids ...string) int {
	return s.each(s.orAll(ids), func(o *Object) bool {
		if o.Visible {
			return false
		}
		o.Visible = true
		if o.Item != nil {
			o.Item.Hidden = false
		}
		return true
	})
}

func (s *Store) orAll(ids []string) []string {
	if len(ids) == 0 {
		return s.IDs()
	}
	return ids
}

func (s *Store) each(ids []string, fn func(*Object) bool) int {
	n := 0
	for _, id := range ids {
		if obj, ok := s.objects[id]; ok && fn(obj) {
			n++
		}
	}
	return n
}

// BringToFront raises the nodes of ids to the top, keeping their relative order.
func (s *Store) BringToFront(ids ...string) {
	for _, id := range s.sortByZ(ids) {
		if obj, ok := s.objects[id]; ok && obj.Item != nil {
			s.layer.BringToFront(obj.Item)
		}
	}
}

// SendToBack lowers the nodes of ids to the bottom, keeping their relative order.
func (s *Store) SendToBack(ids ...string) {
	sorted := s.sortByZ(ids)
	for i := len(sorted) - 1; i >= 0; i-- {
		if obj, ok := s.objects[sorted[i]]; ok && obj.Item != nil {
			s.layer.SendToBack(obj.Item)
		}
	}
}

// BringForward raises each node of ids one step.
func (s *Store) BringForward(ids ...string) {
	sorted := s.sortByZ(ids)
	for i := len(sorted) - 1; i >= 0; i-- {
		if obj, ok := s.objects[sorted[i]]; ok && obj.Item != nil {
			s.layer.BringForward(obj.Item)
		}
	}
}

// SendBackward lowers each node of ids one step.
func (s *Store) SendBackward(ids ...string) {
	for _, id := range s.sortByZ(ids) {
		if obj, ok := s.objects[id]; ok && obj.Item != nil {
			s.layer.SendBackward(obj.Item)
		}
	}
}

// sortByZ orders ids by current paint index, bottom first.
func (s *Store) sortByZ(ids []string) []string {
	out := slices.Clone(ids)
	z := func(id string) int {
		if obj, ok := s.objects[id]; ok && obj.Item != nil {
			return s.layer.IndexOf(obj.Item)
		}
		return -1
	}
	slices.SortStableFunc(out, func(a, b string) int { return z(a) - z(b) })
	return out
}

// CreateGroup groups ids under a new group. Objects already in a group are moved.
func (s *Store) CreateGroup(name string, ids ...string) (*Group, error) {
	members := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := s.objects[id]; ok {
			members = append(members, id)
		}
	}
	if len(members) < 2 {
		return nil, fmt.Errorf("group needs at least 2 objects, got %d", len(members))
	}
	g := &Group{ID: NewID(), Name: name}
	if g.Name == "" {
		g.Name = fmt.Sprintf("Group %d", len(s.groups)+1)
	}
	s.groups[g.ID] = g
	for _, id := range members {
		s.AddToGroup(g.ID, id)
	}
	logger.DebugTagf("store", "Store: created group %s with %d objects", g.ID, len(members))
	return g, nil
}

// Ungroup dissolves a group and returns its former members.
func (s *Store) Ungroup(groupID string) []string {
	g, ok := s.groups[groupID]
	if !ok {
		return nil
	}
	members := slices.Clone(g.ObjectIDs)
	for _, id := range members {
		if obj, ok := s.objects[id]; ok {
			obj.ParentGroup = ""
		}
	}
	delete(s.groups, groupID)
	return members
}

// AddToGroup moves id into groupID.
func (s *Store) AddToGroup(groupID, id string) bool {
	g, ok := s.groups[groupID]
	obj, found := s.objects[id]
	if !ok || !found {
		return false
	}
	if obj.ParentGroup == groupID {
		return true
	}
	if obj.ParentGroup != "" {
		s.dropFromGroup(obj.ParentGroup, id)
	}
	obj.ParentGroup = groupID
	g.ObjectIDs = append(g.ObjectIDs, id)
	return true
}

// RemoveFromGroup takes id out of its group. Groups left with fewer than two
// members are dissolved.
func (s *Store) RemoveFromGroup(id string) bool {
	obj, ok := s.objects[id]
	if !ok || obj.ParentGroup == "" {
		return false
	}
	s.dropFromGroup(obj.ParentGroup, id)
	obj.ParentGroup = ""
	return true
}

func (s *Store) dropFromGroup(groupID, id string) {
	g, ok := s.groups[groupID]
	if !ok {
		return
	}
	if i := slices.Index(g.ObjectIDs, id); i >= 0 {
		g.ObjectIDs = slices.Delete(g.ObjectIDs, i, i+1)
	}
	if len(g.ObjectIDs) < 2 {
		s.Ungroup(groupID)
	}
}

// Group returns a group by id.
func (s *Store) Group(id string) (*Group, bool) {
	g, ok := s.groups[id]
	return g, ok
}

// Groups returns all groups sorted by name.
func (s *Store) Groups() []*Group {
	out := make([]*Group, 0, len(s.groups))
	for _, g := range s.groups {
		out = append(out, g)
	}
	slices.SortFunc(out, func(a, b *Group) int {
		if a.Name == b.Name {
			return strings.Compare(a.ID, b.ID)
		}
		return strings.Compare(a.Name, b.Name)
	})
	return out
}

// RestoreGroup registers a group from a snapshot, replacing any group with
// the same id. Members missing from the store are skipped and members of
// other groups are moved over.
func (s *Store) RestoreGroup(g *Group) {
	if g == nil || g.ID == "" {
		return
	}
	restored := &Group{ID: g.ID, Name: g.Name}
	s.groups[g.ID] = restored
	for _, id := range g.ObjectIDs {
		obj, ok := s.objects[id]
		if !ok || slices.Contains(restored.ObjectIDs, id) {
			continue
		}
		if obj.ParentGroup != "" && obj.ParentGroup != g.ID {
			s.dropFromGroup(obj.ParentGroup, id)
		}
		obj.ParentGroup = g.ID
		restored.ObjectIDs = append(restored.ObjectIDs, id)
	}
}

// Expand returns ids plus every other member of their groups, without duplicates.
func (s *Store) Expand(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	var out []string
	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for _, id := range ids {
		add(id)
		if obj, ok := s.objects[id]; ok && obj.ParentGroup != "" {
			if g, ok := s.groups[obj.ParentGroup]; ok {
				for _, m := range g.ObjectIDs {
					add(m)
				}
			}
		}
	}
	return out
}
