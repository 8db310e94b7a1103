package history_test

import (
	"testing"

	"github.com/aretw0/flowdesk/pkg/domain"
	"github.com/aretw0/flowdesk/pkg/graph"
	"github.com/aretw0/flowdesk/pkg/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// snapshots builds n distinct snapshots by adding one node per step.
func snapshots(t *testing.T, n int) (graph.Snapshot, []graph.Snapshot) {
	t.Helper()
	s := graph.NewStore()
	initial := s.Snapshot()
	out := make([]graph.Snapshot, 0, n)
	for i := 0; i < n; i++ {
		_, err := s.AddNode(domain.NodeTypeAction, domain.Position{X: float64(i)})
		require.NoError(t, err)
		out = append(out, s.Snapshot())
	}
	return initial, out
}

func TestUndoRedo_Boundaries(t *testing.T) {
	initial, _ := snapshots(t, 0)
	m := history.New(initial)

	_, ok := m.Undo()
	assert.False(t, ok, "undo at the oldest entry is a no-op")
	_, ok = m.Redo()
	assert.False(t, ok, "redo at the newest entry is a no-op")
	assert.Equal(t, 1, m.Len())
	assert.True(t, m.Current().Same(initial))
}

func TestLinearity(t *testing.T) {
	initial, snaps := snapshots(t, 2)
	a, b := snaps[0], snaps[1]

	m := history.New(initial)
	m.Commit(a)
	_, ok := m.Undo()
	require.True(t, ok)
	m.Commit(b)

	_, ok = m.Redo()
	assert.False(t, ok, "the branch after A is discarded")
	assert.Equal(t, 2, m.Len())
	assert.True(t, m.Current().Same(b))

	prev, ok := m.Undo()
	require.True(t, ok)
	assert.True(t, prev.Same(initial))
}

func TestUndoRedoInverse(t *testing.T) {
	initial, snaps := snapshots(t, 5)
	m := history.New(initial)
	for _, s := range snaps {
		m.Commit(s)
	}

	// Walk back and forth at every cursor position.
	for m.CanUndo() {
		before := m.Current()
		_, ok := m.Undo()
		require.True(t, ok)
		after, ok := m.Redo()
		require.True(t, ok)
		assert.True(t, after.Same(before))
		assert.Equal(t, before.Nodes(), after.Nodes())

		_, _ = m.Undo()
	}
	assert.Equal(t, 0, m.Cursor())
	assert.True(t, m.CanRedo())
}

func TestUndoReturnsPreviousEntry(t *testing.T) {
	initial, snaps := snapshots(t, 3)
	m := history.New(initial)
	for _, s := range snaps {
		m.Commit(s)
	}

	got, ok := m.Undo()
	require.True(t, ok)
	assert.Equal(t, 2, got.NodeCount())

	got, ok = m.Undo()
	require.True(t, ok)
	assert.Equal(t, 1, got.NodeCount())

	got, ok = m.Redo()
	require.True(t, ok)
	assert.Equal(t, 2, got.NodeCount())
}

func TestWithLimit(t *testing.T) {
	initial, snaps := snapshots(t, 6)
	m := history.New(initial, history.WithLimit(3))
	for _, s := range snaps {
		m.Commit(s)
	}

	assert.Equal(t, 3, m.Len())
	assert.Equal(t, 2, m.Cursor())
	assert.True(t, m.Current().Same(snaps[5]))

	m.Undo()
	m.Undo()
	_, ok := m.Undo()
	assert.False(t, ok)
	assert.True(t, m.Current().Same(snaps[3]))
}

func TestReset(t *testing.T) {
	initial, snaps := snapshots(t, 3)
	m := history.New(initial)
	for _, s := range snaps {
		m.Commit(s)
	}

	m.Reset(snaps[1])
	assert.Equal(t, 1, m.Len())
	assert.False(t, m.CanUndo())
	assert.False(t, m.CanRedo())
	assert.True(t, m.Current().Same(snaps[1]))
}
