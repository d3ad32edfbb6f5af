package history

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counterCommand adds n to a shared counter and records calls.
type counterCommand struct {
	n     int
	value *int
	calls []string
}

func (c *counterCommand) Execute() {
	*c.value += c.n
	c.calls = append(c.calls, "execute")
}

func (c *counterCommand) Undo() {
	*c.value -= c.n
	c.calls = append(c.calls, "undo")
}

func (c *counterCommand) Redo() {
	*c.value += c.n
	c.calls = append(c.calls, "redo")
}

func (c *counterCommand) Description() string { return fmt.Sprintf("add %d", c.n) }

func TestEmptyHistory(t *testing.T) {
	m := NewManager(0)
	assert.Equal(t, DefaultMaxHistory, m.MaxHistorySize())
	assert.Equal(t, -1, m.CurrentIndex())
	assert.False(t, m.CanUndo())
	assert.False(t, m.CanRedo())
	assert.False(t, m.Undo())
	assert.False(t, m.Redo())
	assert.False(t, m.Execute(nil))
	assert.Equal(t, 0, m.Len())
}

func TestExecuteUndoRedo(t *testing.T) {
	m := NewManager(10)
	value := 0
	a := &counterCommand{n: 1, value: &value}
	b := &counterCommand{n: 10, value: &value}

	require.True(t, m.Execute(a))
	require.True(t, m.Execute(b))
	assert.Equal(t, 11, value)
	assert.Equal(t, 1, m.CurrentIndex())
	assert.False(t, m.CanRedo())

	require.True(t, m.Undo())
	assert.Equal(t, 1, value)
	assert.True(t, m.CanRedo())

	require.True(t, m.Redo())
	assert.Equal(t, 11, value)
	assert.False(t, m.Redo(), "redo at tail is a no-op")
	assert.Equal(t, 11, value)

	assert.Equal(t, []string{"execute", "undo", "redo"}, b.calls)
}

func TestInverseLaw(t *testing.T) {
	m := NewManager(10)
	value := 0
	for i := 1; i <= 5; i++ {
		m.Execute(&counterCommand{n: i, value: &value})
	}
	after := value

	for m.CanUndo() {
		m.Undo()
	}
	assert.Equal(t, 0, value)
	assert.Equal(t, -1, m.CurrentIndex())

	for m.CanRedo() {
		m.Redo()
	}
	assert.Equal(t, after, value)
	assert.Equal(t, 4, m.CurrentIndex())
}

func TestBranchTruncation(t *testing.T) {
	m := NewManager(10)
	value := 0
	m.Execute(&counterCommand{n: 1, value: &value})
	m.Execute(&counterCommand{n: 2, value: &value})
	m.Execute(&counterCommand{n: 3, value: &value})

	m.Undo()
	m.Undo()
	require.True(t, m.CanRedo())

	m.Execute(&counterCommand{n: 100, value: &value})
	assert.False(t, m.CanRedo())
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, 1, m.CurrentIndex())
	assert.Equal(t, 101, value)
}

func TestHistoryBound(t *testing.T) {
	m := NewManager(3)
	value := 0
	for i := 0; i < 5; i++ {
		m.Execute(&counterCommand{n: 1, value: &value})
	}
	assert.Equal(t, 3, m.Len())
	assert.Len(t, m.History(), 3)
	assert.Equal(t, 2, m.CurrentIndex(), "cursor stays on the newest command")
	assert.False(t, m.CanRedo())

	undone := 0
	for m.Undo() {
		undone++
	}
	assert.Equal(t, 3, undone)
	assert.Equal(t, 2, value)
}

func TestHistoryIsDefensiveCopy(t *testing.T) {
	m := NewManager(10)
	value := 0
	m.Execute(&counterCommand{n: 1, value: &value})

	h := m.History()
	h[0] = nil

	assert.NotNil(t, m.History()[0])
	assert.Equal(t, 1, m.Len())
}

func TestClearLeavesEffects(t *testing.T) {
	m := NewManager(10)
	value := 0
	cmd := &counterCommand{n: 7, value: &value}
	m.Execute(cmd)

	m.Clear()
	assert.Equal(t, 7, value)
	assert.Equal(t, []string{"execute"}, cmd.calls)
	assert.Equal(t, -1, m.CurrentIndex())
	assert.False(t, m.CanUndo())
}

func TestSetMaxHistorySize(t *testing.T) {
	tests := []struct {
		name      string
		executed  int
		undone    int
		newSize   int
		wantLen   int
		wantIndex int
		wantMax   int
	}{
		{"grow keeps everything", 4, 0, 10, 4, 3, 10},
		{"shrink drops oldest", 5, 0, 2, 2, 1, 2},
		{"shrink shifts cursor", 5, 2, 3, 3, 0, 3},
		{"cursor floors at -1", 5, 4, 2, 2, -1, 2},
		{"clamped to one", 3, 0, 0, 1, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager(10)
			value := 0
			for i := 0; i < tt.executed; i++ {
				m.Execute(&counterCommand{n: 1, value: &value})
			}
			for i := 0; i < tt.undone; i++ {
				m.Undo()
			}

			m.SetMaxHistorySize(tt.newSize)
			assert.Equal(t, tt.wantLen, m.Len())
			assert.Equal(t, tt.wantIndex, m.CurrentIndex())
			assert.Equal(t, tt.wantMax, m.MaxHistorySize())
		})
	}
}

// reentrantCommand tries to push another command while executing.
type reentrantCommand struct {
	m        *Manager
	accepted bool
}

func (c *reentrantCommand) Execute() {
	value := 0
	c.accepted = c.m.Execute(&counterCommand{n: 1, value: &value})
}
func (c *reentrantCommand) Undo()               { c.accepted = c.m.Undo() }
func (c *reentrantCommand) Redo()               {}
func (c *reentrantCommand) Description() string { return "reentrant" }

func TestReentrantCallsRefused(t *testing.T) {
	m := NewManager(10)
	cmd := &reentrantCommand{m: m}

	require.True(t, m.Execute(cmd))
	assert.False(t, cmd.accepted)
	assert.Equal(t, 1, m.Len())

	require.True(t, m.Undo())
	assert.False(t, cmd.accepted)
	assert.Equal(t, -1, m.CurrentIndex())
}

// inspectingCommand reads the manager's state from inside its callbacks.
type inspectingCommand struct {
	m    *Manager
	seen map[string][]int
}

func (c *inspectingCommand) record(op string) {
	c.seen[op] = []int{c.m.CurrentIndex(), c.m.Len(), len(c.m.History()), boolInt(c.m.CanUndo()), boolInt(c.m.CanRedo())}
}

func (c *inspectingCommand) Execute()            { c.record("execute") }
func (c *inspectingCommand) Undo()               { c.record("undo") }
func (c *inspectingCommand) Redo()               { c.record("redo") }
func (c *inspectingCommand) Description() string { return "inspecting" }

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func TestCommandsCanReadHistory(t *testing.T) {
	m := NewManager(10)
	value := 0
	require.True(t, m.Execute(&counterCommand{n: 1, value: &value}))
	cmd := &inspectingCommand{m: m, seen: make(map[string][]int)}

	done := make(chan struct{})
	go func() {
		defer close(done)
		m.Execute(cmd)
		m.Undo()
		m.Redo()
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("history accessors blocked inside a command callback")
	}

	// State is read before each callback's change is recorded.
	assert.Equal(t, []int{0, 1, 1, 1, 0}, cmd.seen["execute"])
	assert.Equal(t, []int{1, 2, 2, 1, 0}, cmd.seen["undo"])
	assert.Equal(t, []int{0, 2, 2, 1, 1}, cmd.seen["redo"])
	assert.Equal(t, 1, m.CurrentIndex())
}

// clearingCommand wipes the history while being undone.
type clearingCommand struct{ m *Manager }

func (c *clearingCommand) Execute()            {}
func (c *clearingCommand) Undo()               { c.m.Clear() }
func (c *clearingCommand) Redo()               {}
func (c *clearingCommand) Description() string { return "clearing" }

func TestClearInsideUndoKeepsCursorValid(t *testing.T) {
	m := NewManager(10)
	require.True(t, m.Execute(&clearingCommand{m: m}))

	require.True(t, m.Undo())
	assert.Equal(t, -1, m.CurrentIndex())
	assert.Equal(t, 0, m.Len())
	assert.False(t, m.CanRedo())
}
