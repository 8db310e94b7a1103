// Package selection tracks what the user has selected on the canvas and
// whether a connection is being drawn.
package selection

import (
	"slices"
)

// Mode is the state of the selection machine.
type Mode int

const (
	// Idle means nothing is selected and no connection is pending.
	Idle Mode = iota
	// NodeSelected means one node is selected.
	NodeSelected
	// EdgeSelected means one edge is selected.
	EdgeSelected
	// Connecting means an output handle was clicked and the machine waits
	// for the target node.
	Connecting
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case NodeSelected:
		return "node_selected"
	case EdgeSelected:
		return "edge_selected"
	case Connecting:
		return "connecting"
	default:
		return "unknown"
	}
}

// State is a read-only view of the machine.
type State struct {
	Mode   Mode
	Nodes  []string
	Edges  []string
	Source string // pending connection source, set only while Connecting
}

// Machine is the selection and connection state machine.
// Selection is kept as sets so multi-select can be added without changing
// the model; the click transitions below select one element at a time.
type Machine struct {
	mode   Mode
	nodes  map[string]struct{}
	edges  map[string]struct{}
	source string
}

// New returns an idle machine.
func New() *Machine {
	return &Machine{
		nodes: make(map[string]struct{}),
		edges: make(map[string]struct{}),
	}
}

// ClickCanvas clears the selection. While Connecting it cancels the
// pending connection without creating an edge.
func (m *Machine) ClickCanvas() {
	m.reset()
}

// ClickNode handles a click on a node body. While Connecting it returns the
// pending source and true; the caller attempts the edge and the machine is
// Idle whatever the outcome. Otherwise the node becomes the selection.
func (m *Machine) ClickNode(id string) (source string, connect bool) {
	if m.mode == Connecting {
		source = m.source
		m.reset()
		return source, true
	}
	m.reset()
	m.nodes[id] = struct{}{}
	m.mode = NodeSelected
	return "", false
}

// ClickOutputHandle starts a connection from id, regardless of the prior state.
func (m *Machine) ClickOutputHandle(id string) {
	m.reset()
	m.mode = Connecting
	m.source = id
}

// SelectEdge selects a single edge. A pending connection is cancelled.
func (m *Machine) SelectEdge(id string) {
	m.reset()
	m.edges[id] = struct{}{}
	m.mode = EdgeSelected
}

// Cancel aborts a pending connection. It does nothing in other states.
func (m *Machine) Cancel() {
	if m.mode == Connecting {
		m.reset()
	}
}

// Clear returns the machine to Idle.
func (m *Machine) Clear() {
	m.reset()
}

// Forget drops selected ids for which exists returns false, for example
// after an undo removed them. A pending connection whose source is gone is
// cancelled.
func (m *Machine) Forget(nodeExists, edgeExists func(id string) bool) {
	for id := range m.nodes {
		if !nodeExists(id) {
			delete(m.nodes, id)
		}
	}
	for id := range m.edges {
		if !edgeExists(id) {
			delete(m.edges, id)
		}
	}
	switch {
	case m.mode == Connecting && !nodeExists(m.source):
		m.reset()
	case m.mode == NodeSelected && len(m.nodes) == 0:
		m.mode = Idle
	case m.mode == EdgeSelected && len(m.edges) == 0:
		m.mode = Idle
	}
}

func (m *Machine) reset() {
	clear(m.nodes)
	clear(m.edges)
	m.source = ""
	m.mode = Idle
}

// Mode returns the current mode.
func (m *Machine) Mode() Mode { return m.mode }

// Source returns the pending connection source, if any.
func (m *Machine) Source() (string, bool) {
	return m.source, m.mode == Connecting
}

// IsNodeSelected reports whether id is part of the node selection.
func (m *Machine) IsNodeSelected(id string) bool {
	_, ok := m.nodes[id]
	return ok
}

// SelectedNodes returns the selected node ids, sorted.
func (m *Machine) SelectedNodes() []string { return sortedKeys(m.nodes) }

// SelectedEdges returns the selected edge ids, sorted.
func (m *Machine) SelectedEdges() []string { return sortedKeys(m.edges) }

// State returns a snapshot of the machine.
func (m *Machine) State() State {
	return State{
		Mode:   m.mode,
		Nodes:  m.SelectedNodes(),
		Edges:  m.SelectedEdges(),
		Source: m.source,
	}
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
