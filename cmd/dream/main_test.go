package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sinbaddoraji/Dream/internal/canvas"
	"github.com/sinbaddoraji/Dream/internal/core"
	"github.com/sinbaddoraji/Dream/internal/project"
	"github.com/sinbaddoraji/Dream/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProject(t *testing.T) string {
	t.Helper()
	e := core.NewEditor(core.Options{})
	_, err := e.AddShape(canvas.TypeRectangle, types.Pt(10, 10), types.Pt(60, 40))
	require.NoError(t, err)
	_, err = e.AddShape(canvas.TypeEllipse, types.Pt(80, 10), types.Pt(120, 50))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "art.dream.json")
	require.NoError(t, project.SaveFile(path, e.Document()))
	return path
}

func TestInfoCmd(t *testing.T) {
	path := writeProject(t)
	cmd := newInfoCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{path})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "Objects: 2")
	assert.Contains(t, out.String(), "rectangle")
	assert.Contains(t, out.String(), "ellipse")
}

func TestExportCmd(t *testing.T) {
	path := writeProject(t)
	png := filepath.Join(t.TempDir(), "art.png")

	cmd := newExportCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{path, png, "--png-width", "200", "--png-height", "100"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "exported 2 object(s)")
	info, err := os.Stat(png)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestVersionCmd(t *testing.T) {
	cmd := newVersionCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "dream "+version+"\n", out.String())
}
