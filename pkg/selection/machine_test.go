package selection_test

import (
	"testing"

	"github.com/aretw0/flowdesk/pkg/selection"
	"github.com/stretchr/testify/assert"
)

func TestTransitions(t *testing.T) {
	m := selection.New()
	assert.Equal(t, selection.Idle, m.Mode())

	_, connect := m.ClickNode("a")
	assert.False(t, connect)
	assert.Equal(t, selection.NodeSelected, m.Mode())
	assert.Equal(t, []string{"a"}, m.SelectedNodes())

	_, connect = m.ClickNode("b")
	assert.False(t, connect)
	assert.Equal(t, []string{"b"}, m.SelectedNodes(), "single selection replaces the previous node")

	m.ClickCanvas()
	assert.Equal(t, selection.Idle, m.Mode())
	assert.Empty(t, m.SelectedNodes())
}

func TestConnecting(t *testing.T) {
	m := selection.New()
	m.ClickNode("a")

	m.ClickOutputHandle("a")
	assert.Equal(t, selection.Connecting, m.Mode())
	assert.Empty(t, m.SelectedNodes())
	src, ok := m.Source()
	assert.True(t, ok)
	assert.Equal(t, "a", src)

	source, connect := m.ClickNode("b")
	assert.True(t, connect)
	assert.Equal(t, "a", source)
	assert.Equal(t, selection.Idle, m.Mode(), "back to idle whatever the edge outcome")
	assert.Empty(t, m.SelectedNodes())
}

func TestConnecting_CancelByCanvasClick(t *testing.T) {
	m := selection.New()
	m.ClickOutputHandle("a")
	m.ClickCanvas()

	assert.Equal(t, selection.Idle, m.Mode())
	_, ok := m.Source()
	assert.False(t, ok)

	_, connect := m.ClickNode("b")
	assert.False(t, connect, "a click after cancelling selects instead of connecting")
}

func TestCancel(t *testing.T) {
	m := selection.New()
	m.ClickNode("a")
	m.Cancel()
	assert.Equal(t, selection.NodeSelected, m.Mode(), "cancel only affects a pending connection")

	m.ClickOutputHandle("a")
	m.Cancel()
	assert.Equal(t, selection.Idle, m.Mode())
}

func TestSelectEdge(t *testing.T) {
	m := selection.New()
	m.ClickOutputHandle("a")
	m.SelectEdge("e1")

	assert.Equal(t, selection.EdgeSelected, m.Mode())
	assert.Equal(t, []string{"e1"}, m.SelectedEdges())
	_, ok := m.Source()
	assert.False(t, ok)
}

func TestForget(t *testing.T) {
	none := func(string) bool { return false }
	all := func(string) bool { return true }

	m := selection.New()
	m.ClickNode("a")
	m.Forget(all, none)
	assert.Equal(t, selection.NodeSelected, m.Mode())

	m.Forget(none, none)
	assert.Equal(t, selection.Idle, m.Mode())
	assert.Empty(t, m.SelectedNodes())

	m.ClickOutputHandle("a")
	m.Forget(none, all)
	assert.Equal(t, selection.Idle, m.Mode())

	m.SelectEdge("e1")
	m.Forget(all, none)
	assert.Equal(t, selection.Idle, m.Mode())
}

func TestState(t *testing.T) {
	m := selection.New()
	m.ClickOutputHandle("src")
	assert.Equal(t, selection.State{Mode: selection.Connecting, Source: "src"}, m.State())
	assert.Equal(t, "connecting", m.Mode().String())
}
