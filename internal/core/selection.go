package core

import (
	"context"
	"slices"

	"github.com/sinbaddoraji/Dream/internal/canvas"
	"github.com/sinbaddoraji/Dream/internal/core/selection"
	"github.com/sinbaddoraji/Dream/internal/event"
	"github.com/sinbaddoraji/Dream/internal/logger"
)

// HasSelection returns true if any object is selected.
func (e *Editor) HasSelection() bool {
	return len(e.selected) > 0
}

// SelectedIDs returns a copy of the selection in selection order.
func (e *Editor) SelectedIDs() []string {
	return slices.Clone(e.selected)
}

// IsSelected reports whether id is selected.
func (e *Editor) IsSelected(id string) bool {
	return slices.Contains(e.selected, id)
}

// SelectedObjects returns the selected objects in selection order.
func (e *Editor) SelectedObjects() []*canvas.Object {
	out := make([]*canvas.Object, 0, len(e.selected))
	for _, id := range e.selected {
		if obj, ok := e.store.Object(id); ok {
			out = append(out, obj)
		}
	}
	return out
}

// SelectionBounds returns the selection box with its handles, or nil when
// nothing is selected.
func (e *Editor) SelectionBounds() *selection.Bounds {
	return e.selection.CalculateSelectionBounds(e.SelectedObjects())
}

// Select replaces the selection with ids and the other members of their
// groups. Locked, hidden and unknown ids are skipped.
func (e *Editor) Select(ids ...string) {
	e.setSelection(e.selectable(ids))
}

// AddToSelection extends the selection.
func (e *Editor) AddToSelection(ids ...string) {
	next := slices.Clone(e.selected)
	for _, id := range e.selectable(ids) {
		if !slices.Contains(next, id) {
			next = append(next, id)
		}
	}
	e.setSelection(next)
}

// RemoveFromSelection drops ids and their group members from the selection.
func (e *Editor) RemoveFromSelection(ids ...string) {
	drop := e.store.Expand(ids)
	next := slices.DeleteFunc(slices.Clone(e.selected), func(id string) bool {
		return slices.Contains(drop, id)
	})
	e.setSelection(next)
}

// ToggleSelection adds id when it is not selected and removes it otherwise.
func (e *Editor) ToggleSelection(id string) {
	if e.IsSelected(id) {
		e.RemoveFromSelection(id)
		return
	}
	e.AddToSelection(id)
}

// ClearSelection empties the selection.
func (e *Editor) ClearSelection() {
	e.setSelection(nil)
}

// SelectAll selects every selectable object.
func (e *Editor) SelectAll() {
	e.Select(e.store.IDs()...)
}

func (e *Editor) selectable(ids []string) []string {
	var out []string
	for _, id := range e.store.Expand(ids) {
		obj, ok := e.store.Object(id)
		if !ok || !obj.Selectable() || slices.Contains(out, id) {
			continue
		}
		out = append(out, id)
	}
	return out
}

func (e *Editor) selectedIDs() []string {
	return slices.Clone(e.selected)
}

func (e *Editor) setSelection(ids []string) {
	if slices.Equal(ids, e.selected) {
		return
	}
	e.selected = slices.Clone(ids)
	logger.DebugTagf("selection", "Editor: %d object(s) selected", len(e.selected))
	e.metrics.Selection(context.Background(), len(e.selected))
	e.dispatch(event.TypeSelectionChanged, event.SelectionChangedData{IDs: e.SelectedIDs()})
}

// pruneSelection drops ids that no longer name selectable objects.
func (e *Editor) pruneSelection() {
	next := slices.DeleteFunc(slices.Clone(e.selected), func(id string) bool {
		obj, ok := e.store.Object(id)
		return !ok || !obj.Selectable()
	})
	e.setSelection(next)
}

// --- Object state ---

// LockSelected locks the selection. Locked objects leave the selection.
func (e *Editor) LockSelected() int {
	n := e.store.Lock(e.selectedIDs()...)
	if n > 0 {
		e.objectsChanged(e.selected, "lock")
		e.setSelection(nil)
	}
	return n
}

// UnlockAll unlocks every object.
func (e *Editor) UnlockAll() int {
	n := e.store.Unlock()
	if n > 0 {
		e.objectsChanged(nil, "unlock")
	}
	return n
}

// HideSelected hides the selection.
func (e *Editor) HideSelected() int {
	ids := e.selectedIDs()
	n := e.store.Hide(ids...)
	if n > 0 {
		e.objectsChanged(ids, "hide")
		e.setSelection(nil)
	}
	return n
}

// ShowAll shows every hidden object.
func (e *Editor) ShowAll() int {
	n := e.store.Show()
	if n > 0 {
		e.objectsChanged(nil, "show")
	}
	return n
}

// GroupSelected groups the selection under name.
func (e *Editor) GroupSelected(name string) (*canvas.Group, error) {
	g, err := e.store.CreateGroup(name, e.selected...)
	if err != nil {
		return nil, err
	}
	e.objectsChanged(g.ObjectIDs, "group")
	return g, nil
}

// UngroupSelected dissolves every group touched by the selection.
func (e *Editor) UngroupSelected() int {
	seen := map[string]bool{}
	n := 0
	for _, obj := range e.SelectedObjects() {
		if obj.ParentGroup == "" || seen[obj.ParentGroup] {
			continue
		}
		seen[obj.ParentGroup] = true
		if len(e.store.Ungroup(obj.ParentGroup)) > 0 {
			n++
		}
	}
	if n > 0 {
		e.objectsChanged(e.selected, "ungroup")
	}
	return n
}

// BringToFront raises the selection to the top of the paint order.
func (e *Editor) BringToFront() {
	e.reorder(e.store.BringToFront, "bring_to_front")
}

// SendToBack lowers the selection to the bottom of the paint order.
func (e *Editor) SendToBack() {
	e.reorder(e.store.SendToBack, "send_to_back")
}

// BringForward raises the selection one step.
func (e *Editor) BringForward() {
	e.reorder(e.store.BringForward, "bring_forward")
}

// SendBackward lowers the selection one step.
func (e *Editor) SendBackward() {
	e.reorder(e.store.SendBackward, "send_backward")
}

func (e *Editor) reorder(fn func(ids ...string), reason string) {
	if len(e.selected) == 0 {
		return
	}
	fn(e.selected...)
	e.objectsChanged(e.selected, reason)
}

func (e *Editor) objectsChanged(ids []string, reason string) {
	e.modified = true
	e.dispatch(event.TypeObjectsChanged, event.ObjectsChangedData{IDs: slices.Clone(ids), Reason: reason})
}
