package drawhistory

import (
	"regexp"
	"testing"
	"time"

	"github.com/sinbaddoraji/Dream/internal/canvas"
	"github.com/sinbaddoraji/Dream/internal/scene"
	"github.com/sinbaddoraji/Dream/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedState struct{ state CanvasState }

func (f fixedState) CanvasState() CanvasState { return f.state }

func TestAddAction(t *testing.T) {
	state := CanvasState{ObjectCount: 3, Scale: 1.5, Position: types.Pt(10, 20)}
	m := NewManager(fixedState{state})
	m.now = func() time.Time { return time.UnixMilli(1700000000000) }

	ids := []string{"a", "b"}
	data := map[string]any{"dx": 5}
	a := m.AddAction(MoveObject, ids, data, "")

	assert.Regexp(t, regexp.MustCompile(`^action_1700000000000_[0-9a-f]{9}$`), a.ID)
	assert.Equal(t, "Moved object", a.Description)
	assert.Equal(t, state, a.CanvasState)

	ids[0] = "changed"
	data["dx"] = 99
	cur, ok := m.CurrentAction()
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, cur.ObjectIDs)
	assert.Equal(t, 5, cur.Data["dx"])

	custom := m.AddAction(CreateRectangle, nil, nil, "Drew a box")
	assert.Equal(t, "Drew a box", custom.Description)
	assert.NotEqual(t, a.ID, custom.ID)
}

func TestNavigation(t *testing.T) {
	m := NewManager(nil)
	assert.False(t, m.HasHistory())
	assert.False(t, m.GoToFirst())
	_, ok := m.CurrentAction()
	assert.False(t, ok)

	for _, typ := range []ActionType{CreateRectangle, CreateEllipse, MoveObject} {
		m.AddAction(typ, nil, nil, "")
	}
	assert.Equal(t, 2, m.CurrentIndex())
	assert.False(t, m.CanGoForward())
	assert.False(t, m.GoToNext())

	assert.True(t, m.GoToPrevious())
	cur, _ := m.CurrentAction()
	assert.Equal(t, CreateEllipse, cur.Type)

	assert.True(t, m.GoToFirst())
	assert.False(t, m.CanGoBack())
	assert.False(t, m.GoToPrevious())
	assert.False(t, m.GoToAction(3))
	assert.False(t, m.GoToAction(-1))
	assert.Equal(t, 0, m.CurrentIndex())

	assert.True(t, m.GoToLast())
	assert.Equal(t, 2, m.HistoryState().CurrentIndex)
}

func TestAddAfterNavigationTruncates(t *testing.T) {
	m := NewManager(nil)
	m.AddAction(CreateRectangle, nil, nil, "")
	m.AddAction(CreateEllipse, nil, nil, "")
	m.AddAction(CreateLine, nil, nil, "")
	m.GoToAction(0)

	m.AddAction(DeleteObject, nil, nil, "")
	st := m.HistoryState()
	require.Len(t, st.Actions, 2)
	assert.Equal(t, DeleteObject, st.Actions[1].Type)
	assert.Equal(t, 1, st.CurrentIndex)
	assert.False(t, m.CanGoForward())
}

func TestBulkTrim(t *testing.T) {
	m := NewManager(nil)
	for i := 0; i < MaxActions+5; i++ {
		m.AddAction(MoveObject, nil, map[string]any{"i": i}, "")
	}
	st := m.HistoryState()
	require.Len(t, st.Actions, MaxActions)
	assert.Equal(t, MaxActions-1, st.CurrentIndex)
	assert.Equal(t, 5, st.Actions[0].Data["i"])
	assert.Equal(t, MaxActions, st.MaxHistorySize)
}

func TestClearHistory(t *testing.T) {
	m := NewManager(nil)
	m.AddAction(CreateStar, nil, nil, "")
	m.ClearHistory()
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, -1, m.CurrentIndex())
	assert.False(t, m.HasHistory())
}

func TestNavigationNeverTouchesObjects(t *testing.T) {
	store := canvas.NewStore(nil)
	obj := canvas.NewObject(canvas.TypeRectangle, scene.NewRect(types.Rect{Width: 10, Height: 10}))
	store.Layer().Add(obj.Item)
	store.AddObject(obj)

	m := NewManager(nil)
	m.AddAction(CreateRectangle, []string{obj.ID}, nil, "")
	m.AddAction(MoveObject, []string{obj.ID}, nil, "")
	before := obj.Item.Matrix()

	m.GoToFirst()
	m.GoToAction(1)
	m.GoToPrevious()
	m.ClearHistory()

	assert.Equal(t, 1, store.Len())
	assert.Equal(t, before, obj.Item.Matrix())
	assert.Same(t, store.Layer(), obj.Item.Layer())
}

func TestActionTypes(t *testing.T) {
	all := ActionTypes()
	assert.Len(t, all, 18)
	for _, typ := range all {
		assert.True(t, typ.Valid())
		assert.NotEqual(t, string(typ), typ.Description())
	}
	assert.False(t, ActionType("paint_bucket").Valid())
	assert.Equal(t, "paint_bucket", ActionType("paint_bucket").Description())
}
