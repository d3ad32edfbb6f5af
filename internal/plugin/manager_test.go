package plugin

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPlugin struct {
	name    string
	initErr error
	log     *[]string
}

func (p *recordingPlugin) Name() string { return p.name }

func (p *recordingPlugin) Initialize(EditorAPI) error {
	*p.log = append(*p.log, "init:"+p.name)
	return p.initErr
}

func (p *recordingPlugin) Shutdown() error {
	*p.log = append(*p.log, "shutdown:"+p.name)
	return nil
}

func TestRegisterRejectsDuplicatesAndEmptyNames(t *testing.T) {
	var log []string
	m := NewManager()
	require.NoError(t, m.Register(&recordingPlugin{name: "a", log: &log}))
	assert.Error(t, m.Register(&recordingPlugin{name: "a", log: &log}))
	assert.Error(t, m.Register(&recordingPlugin{name: "", log: &log}))
	assert.Equal(t, []string{"a"}, m.Names())

	p, ok := m.GetPlugin("a")
	require.True(t, ok)
	assert.Equal(t, "a", p.Name())
}

func TestLifecycleOrder(t *testing.T) {
	var log []string
	m := NewManager()
	for _, name := range []string{"first", "broken", "last"} {
		p := &recordingPlugin{name: name, log: &log}
		if name == "broken" {
			p.initErr = errors.New("boom")
		}
		require.NoError(t, m.Register(p))
	}

	assert.Equal(t, 1, m.InitializePlugins(nil))
	m.ShutdownPlugins()

	assert.Equal(t, []string{
		"init:first", "init:broken", "init:last",
		"shutdown:last", "shutdown:broken", "shutdown:first",
	}, log)
}
