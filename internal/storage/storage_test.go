package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sinbaddoraji/Dream/internal/canvas"
	"github.com/sinbaddoraji/Dream/internal/project"
	"github.com/sinbaddoraji/Dream/internal/scene"
	"github.com/sinbaddoraji/Dream/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "snapshots.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func documentWith(n int) *project.Document {
	store := canvas.NewStore(nil)
	for i := 0; i < n; i++ {
		node := scene.NewRect(types.Rect{X: float64(i * 20), Width: 10, Height: 10})
		store.Layer().Add(node)
		obj := canvas.NewObject(canvas.TypeRectangle, node)
		obj.ID = string(rune('a' + i))
		store.AddObject(obj)
	}
	if n > 0 {
		node := scene.NewEllipse(types.Rect{Width: 5, Height: 5})
		store.Layer().Add(node)
		obj := canvas.NewObject(canvas.TypeEllipse, node)
		obj.ID = "ellipse"
		store.AddObject(obj)
	}
	return project.Capture(store, project.View{Scale: 1})
}

func TestIsPostgres(t *testing.T) {
	tests := []struct {
		dsn  string
		want bool
	}{
		{"postgres://user@localhost/dream", true},
		{"postgresql://localhost/dream", true},
		{"host=localhost port=5432 dbname=dream", true},
		{"/tmp/snapshots.db", false},
		{":memory:", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsPostgres(tt.dsn), tt.dsn)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	doc := documentWith(2)

	snap, saved, err := s.Save(ctx, "poster", "first", doc)
	require.NoError(t, err)
	require.True(t, saved)
	assert.NotZero(t, snap.ID)
	assert.Equal(t, 3, snap.ObjectCount)
	assert.Len(t, snap.Hash, 64)

	stats, err := snap.ParseStats()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"rectangle": 2, "ellipse": 1}, stats)

	got, loaded, err := s.Load(ctx, snap.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Label)
	require.Len(t, loaded.Objects, 3)
	assert.Equal(t, doc.Objects[0].ID, loaded.Objects[0].ID)
	assert.Equal(t, doc.Objects[2].Shape, loaded.Objects[2].Shape)
}

func TestSaveSkipsUnchangedContent(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	first, saved, err := s.Save(ctx, "poster", "", documentWith(1))
	require.NoError(t, err)
	require.True(t, saved)

	// Same content, new save time.
	again, saved, err := s.Save(ctx, "poster", "", documentWith(1))
	require.NoError(t, err)
	assert.False(t, saved)
	assert.Equal(t, first.ID, again.ID)

	// Other projects are independent.
	_, saved, err = s.Save(ctx, "flyer", "", documentWith(1))
	require.NoError(t, err)
	assert.True(t, saved)

	_, saved, err = s.Save(ctx, "poster", "", documentWith(3))
	require.NoError(t, err)
	assert.True(t, saved)

	list, err := s.List(ctx, "poster", 0)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestListNewestFirstWithoutData(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	for i := 1; i <= 4; i++ {
		_, _, err := s.Save(ctx, "poster", "", documentWith(i))
		require.NoError(t, err)
	}

	list, err := s.List(ctx, "poster", 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Greater(t, list[0].ID, list[1].ID)
	assert.Equal(t, 5, list[0].ObjectCount)
	assert.Empty(t, list[0].Data)

	latest, err := s.Latest(ctx, "poster")
	require.NoError(t, err)
	assert.Equal(t, list[0].ID, latest.ID)

	_, err = s.Latest(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadMissing(t *testing.T) {
	s := openTemp(t)
	_, _, err := s.Load(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPrune(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	for i := 1; i <= 5; i++ {
		_, _, err := s.Save(ctx, "poster", "", documentWith(i))
		require.NoError(t, err)
	}
	_, _, err := s.Save(ctx, "flyer", "", documentWith(1))
	require.NoError(t, err)

	removed, err := s.Prune(ctx, "poster", 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, removed)

	list, err := s.List(ctx, "poster", 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 6, list[0].ObjectCount)

	removed, err = s.Prune(ctx, "poster", 10)
	require.NoError(t, err)
	assert.Zero(t, removed)

	names, err := s.Projects(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"flyer", "poster"}, names)
}

func TestOpenMemory(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	_, saved, err := s.Save(context.Background(), "scratch", "", documentWith(1))
	require.NoError(t, err)
	assert.True(t, saved)
}

func TestHashIgnoresSaveTime(t *testing.T) {
	a := documentWith(2)
	b := documentWith(2)
	b.SavedAt = a.SavedAt.Add(3600e9)

	ha, err := Hash(a)
	require.NoError(t, err)
	hb, err := Hash(b)
	require.NoError(t, err)
	assert.Equal(t, ha, hb)

	b.View.Scale = 2
	hc, err := Hash(b)
	require.NoError(t, err)
	assert.NotEqual(t, ha, hc)
}
