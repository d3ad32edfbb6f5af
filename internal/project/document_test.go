package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sinbaddoraji/Dream/internal/canvas"
	"github.com/sinbaddoraji/Dream/internal/scene"
	"github.com/sinbaddoraji/Dream/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleStore(t *testing.T) (*canvas.Store, []*canvas.Object) {
	t.Helper()
	s := canvas.NewStore(nil)
	add := func(typ canvas.Type, n *scene.Node) *canvas.Object {
		s.Layer().Add(n)
		obj := canvas.NewObject(typ, n)
		s.AddObject(obj)
		return obj
	}
	rect := scene.NewRect(types.Rect{X: 10, Y: 10, Width: 40, Height: 20})
	rect.Style = scene.Style{Fill: "#FF0000", Stroke: "#000000", StrokeWidth: 2, Dash: []float64{4, 2}}
	rect.Rotate(30, rect.Position())
	ell := scene.NewEllipse(types.Rect{X: 100, Y: 100, Width: 30, Height: 30})
	tri := scene.NewPolygon([]types.Point{types.Pt(0, 0), types.Pt(10, 0), types.Pt(5, 8)})
	line := scene.NewPath(types.Pt(0, 0), types.Pt(50, 50))

	objs := []*canvas.Object{
		add(canvas.TypeRectangle, rect),
		add(canvas.TypeEllipse, ell),
		add(canvas.TypeTriangle, tri),
		add(canvas.TypeLine, line),
	}
	objs[1].Locked = true
	s.Hide(objs[3].ID)
	_, err := s.CreateGroup("pair", objs[0].ID, objs[2].ID)
	require.NoError(t, err)
	return s, objs
}

func TestCaptureRestoreRoundTrip(t *testing.T) {
	src, objs := sampleStore(t)
	doc := Capture(src, View{Scale: 2, Pan: [2]float64{5, -5}})
	require.Len(t, doc.Objects, 4)
	require.Len(t, doc.Groups, 1)

	data, err := Encode(doc)
	require.NoError(t, err)
	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, 2.0, decoded.View.Scale)

	dst := canvas.NewStore(nil)
	require.NoError(t, Restore(decoded, dst))
	require.Equal(t, src.IDs(), dst.IDs())

	for _, want := range objs {
		got, ok := dst.Object(want.ID)
		require.True(t, ok, want.ID)
		assert.Equal(t, want.Type, got.Type)
		assert.Equal(t, want.Locked, got.Locked)
		assert.Equal(t, want.Visible, got.Visible)
		assert.Equal(t, want.Item.Shape(), got.Item.Shape())
		assert.Equal(t, want.Item.Matrix(), got.Item.Matrix())
		assert.Equal(t, want.Item.Style, got.Item.Style)
		assert.Equal(t, want.Item.Hidden, got.Item.Hidden)
		assert.InDeltaSlice(t, []float64{want.Bounds().X, want.Bounds().Y, want.Bounds().Width, want.Bounds().Height},
			[]float64{got.Bounds().X, got.Bounds().Y, got.Bounds().Width, got.Bounds().Height}, 1e-9)
	}

	g := dst.Groups()
	require.Len(t, g, 1)
	assert.Equal(t, "pair", g[0].Name)
	assert.ElementsMatch(t, []string{objs[0].ID, objs[2].ID}, g[0].ObjectIDs)

	got, _ := dst.Object(objs[0].ID)
	assert.Equal(t, g[0].ID, got.ParentGroup)
}

func TestRestorePreservesPaintOrder(t *testing.T) {
	src, objs := sampleStore(t)
	src.BringToFront(objs[0].ID)

	dst := canvas.NewStore(nil)
	require.NoError(t, Restore(Capture(src, View{Scale: 1}), dst))

	children := dst.Layer().Children()
	require.Len(t, children, 4)
	top, ok := dst.Lookup(children[3])
	require.True(t, ok)
	assert.Equal(t, objs[0].ID, top.ID)
}

func TestRestoreReplacesExistingContent(t *testing.T) {
	src, _ := sampleStore(t)
	dst, _ := sampleStore(t)
	before := dst.IDs()

	require.NoError(t, Restore(Capture(src, View{Scale: 1}), dst))
	assert.Equal(t, 4, dst.Len())
	assert.Equal(t, 4, dst.Layer().Len())
	for _, id := range before {
		_, ok := dst.Object(id)
		assert.False(t, ok)
	}
}

func TestDecodeRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "{"},
		{"missing version", `{"objects":[]}`},
		{"future version", `{"version":99}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestDecodeDefaultsScale(t *testing.T) {
	doc, err := Decode([]byte(`{"version":1}`))
	require.NoError(t, err)
	assert.Equal(t, 1.0, doc.View.Scale)
}

func TestRecordObjectErrors(t *testing.T) {
	_, err := Record{ID: "a", Shape: "blob"}.Object()
	assert.ErrorContains(t, err, "unknown shape")

	_, err = Record{ID: "a", Shape: "rect"}.Object()
	assert.ErrorContains(t, err, "without rect")
}

func TestRestoreFailureLeavesStoreUntouched(t *testing.T) {
	dst, _ := sampleStore(t)
	doc := &Document{Version: Version, Objects: []Record{{ID: "x", Shape: "blob"}}}

	assert.Error(t, Restore(doc, dst))
	assert.Equal(t, 4, dst.Len())
}

func TestCaptureObjects(t *testing.T) {
	_, objs := sampleStore(t)
	doc := CaptureObjects([]*canvas.Object{objs[1], nil, objs[2]})
	require.Len(t, doc.Objects, 2)
	assert.Equal(t, objs[1].ID, doc.Objects[0].ID)
	assert.Empty(t, doc.Groups)
}

func TestSaveAndLoadFile(t *testing.T) {
	src, _ := sampleStore(t)
	path := filepath.Join(t.TempDir(), "nested", "drawing"+".dream.json")

	require.NoError(t, SaveFile(path, Capture(src, View{Scale: 1.5})))
	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	doc, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, doc.Objects, 4)
	assert.Equal(t, 1.5, doc.View.Scale)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
