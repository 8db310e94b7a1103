package graph

import (
	"slices"

	"github.com/aretw0/flowdesk/pkg/domain"
)

// Snapshot is an immutable view of a graph at a point in time.
// The zero value is an empty graph.
type Snapshot struct {
	t *tables
}

// Node returns a copy of the node with the given id.
func (s Snapshot) Node(id string) (domain.Node, bool) { return s.t.node(id) }

// HasNode reports whether the snapshot contains the node.
func (s Snapshot) HasNode(id string) bool { return s.t.hasNode(id) }

// Edge returns a copy of the edge with the given id.
func (s Snapshot) Edge(id string) (domain.Edge, bool) { return s.t.edge(id) }

// Nodes returns copies of all nodes in insertion order.
func (s Snapshot) Nodes() []domain.Node { return s.t.nodeList() }

// Edges returns copies of all edges in insertion order.
func (s Snapshot) Edges() []domain.Edge { return s.t.edgeList() }

// NodeCount returns the number of nodes.
func (s Snapshot) NodeCount() int {
	if s.t == nil {
		return 0
	}
	return len(s.t.nodes)
}

// EdgeCount returns the number of edges.
func (s Snapshot) EdgeCount() int {
	if s.t == nil {
		return 0
	}
	return len(s.t.edges)
}

// Same reports whether both snapshots share the same storage.
func (s Snapshot) Same(other Snapshot) bool {
	return s.t == other.t
}

func (t *tables) node(id string) (domain.Node, bool) {
	if t == nil {
		return domain.Node{}, false
	}
	n, ok := t.nodes[id]
	if !ok {
		return domain.Node{}, false
	}
	return n.Clone(), true
}

func (t *tables) hasNode(id string) bool {
	if t == nil {
		return false
	}
	_, ok := t.nodes[id]
	return ok
}

func (t *tables) edge(id string) (domain.Edge, bool) {
	if t == nil {
		return domain.Edge{}, false
	}
	e, ok := t.edges[id]
	if !ok {
		return domain.Edge{}, false
	}
	return *e, true
}

func (t *tables) hasEdge(id string) bool {
	if t == nil {
		return false
	}
	_, ok := t.edges[id]
	return ok
}

func (t *tables) nodeList() []domain.Node {
	if t == nil {
		return nil
	}
	out := make([]domain.Node, 0, len(t.nodeOrder))
	for _, id := range t.nodeOrder {
		out = append(out, t.nodes[id].Clone())
	}
	return out
}

func (t *tables) edgeList() []domain.Edge {
	if t == nil {
		return nil
	}
	out := make([]domain.Edge, 0, len(t.edgeOrder))
	for _, id := range t.edgeOrder {
		out = append(out, *t.edges[id])
	}
	return out
}

func (t *tables) incidentOf(nodeID string) []string {
	if t == nil {
		return nil
	}
	return slices.Clone(t.incident[nodeID])
}
