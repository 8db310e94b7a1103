// Package graph implements the editor's node/edge store.
//
// Nodes and edges live in id-keyed arenas plus insertion-order lists, and an
// adjacency index maps every node to its incident edges so a cascading
// delete only touches the node's own edges.
//
// Snapshots share storage with the store. The first mutation after a
// snapshot copies the index tables; node and edge records are never edited
// once a snapshot can see them, they are replaced instead. Records created
// since the last snapshot are owned by the store and may be updated in
// place, which keeps repeated drag moves allocation free.
package graph

import (
	"fmt"
	"maps"
	"slices"

	"github.com/aretw0/flowdesk/pkg/catalog"
	"github.com/aretw0/flowdesk/pkg/domain"
	"github.com/google/uuid"
)

// IDFunc generates identifiers for new nodes and edges.
type IDFunc func() string

// NewID returns a random UUID string.
func NewID() string {
	return uuid.NewString()
}

type tables struct {
	nodes     map[string]*domain.Node
	nodeOrder []string
	edges     map[string]*domain.Edge
	edgeOrder []string
	incident  map[string][]string
}

func newTables() *tables {
	return &tables{
		nodes:    make(map[string]*domain.Node),
		edges:    make(map[string]*domain.Edge),
		incident: make(map[string][]string),
	}
}

// clone copies the indexes. Records and incident lists are shared.
func (t *tables) clone() *tables {
	return &tables{
		nodes:     maps.Clone(t.nodes),
		nodeOrder: slices.Clone(t.nodeOrder),
		edges:     maps.Clone(t.edges),
		edgeOrder: slices.Clone(t.edgeOrder),
		incident:  maps.Clone(t.incident),
	}
}

// Store owns the live graph of one editor session.
// It is not safe for concurrent use.
type Store struct {
	t      *tables
	shared bool
	owned  map[string]struct{}
	issued map[string]struct{}

	newID   IDFunc
	catalog *catalog.Catalog
}

// Option configures a Store.
type Option func(*Store)

// WithIDFunc replaces the UUID generator.
func WithIDFunc(fn IDFunc) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

// WithCatalog sets the templates used by AddNode.
func WithCatalog(c *catalog.Catalog) Option {
	return func(s *Store) {
		s.catalog = c
	}
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		t:       newTables(),
		owned:   make(map[string]struct{}),
		issued:  make(map[string]struct{}),
		newID:   NewID,
		catalog: catalog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// mutable makes the tables private to the store before a write.
func (s *Store) mutable() {
	if s.shared {
		s.t = s.t.clone()
		s.shared = false
	}
}

func (s *Store) nextID() string {
	for {
		id := s.newID()
		if _, used := s.issued[id]; used {
			continue
		}
		if _, used := s.t.nodes[id]; used {
			continue
		}
		if _, used := s.t.edges[id]; used {
			continue
		}
		s.issued[id] = struct{}{}
		return id
	}
}

// AddNode creates a node of type t at pos using the catalog template for
// its name and config defaults.
func (s *Store) AddNode(t domain.NodeType, pos domain.Position) (domain.Node, error) {
	tpl, ok := s.catalog.Lookup(t)
	if !ok {
		return domain.Node{}, fmt.Errorf("%w: %q", domain.ErrUnknownNodeType, t)
	}

	node := &domain.Node{
		ID:       s.nextID(),
		Type:     t,
		Name:     tpl.Name,
		Position: pos,
		Config:   tpl.Defaults(),
	}
	s.insertNode(node)
	return node.Clone(), nil
}

// InsertNode adds a fully formed node, keeping its id.
func (s *Store) InsertNode(n domain.Node) error {
	if n.ID == "" {
		return fmt.Errorf("node id cannot be empty")
	}
	if _, exists := s.t.nodes[n.ID]; exists {
		return fmt.Errorf("%w: %q", domain.ErrDuplicateNode, n.ID)
	}
	node := n.Clone()
	if node.Config == nil {
		node.Config = domain.Config{}
	}
	s.issued[node.ID] = struct{}{}
	s.insertNode(&node)
	return nil
}

func (s *Store) insertNode(n *domain.Node) {
	s.mutable()
	s.t.nodes[n.ID] = n
	s.t.nodeOrder = append(s.t.nodeOrder, n.ID)
	s.owned[n.ID] = struct{}{}
}

// update applies fn to the node record, copying it first unless the store owns it.
func (s *Store) update(id string, fn func(*domain.Node)) bool {
	cur, ok := s.t.nodes[id]
	if !ok {
		return false
	}
	s.mutable()
	if _, owned := s.owned[id]; owned {
		fn(cur)
		return true
	}
	next := *cur
	fn(&next)
	s.t.nodes[id] = &next
	s.owned[id] = struct{}{}
	return true
}

// MoveNode replaces the position of a node. Unknown ids are ignored.
func (s *Store) MoveNode(id string, pos domain.Position) bool {
	return s.update(id, func(n *domain.Node) {
		n.Position = pos
	})
}

// RenameNode replaces the display name of a node. Unknown ids are ignored.
func (s *Store) RenameNode(id, name string) bool {
	return s.update(id, func(n *domain.Node) {
		n.Name = name
	})
}

// UpdateNodeDescription replaces the description of a node. Unknown ids are ignored.
func (s *Store) UpdateNodeDescription(id, description string) bool {
	return s.update(id, func(n *domain.Node) {
		n.Description = description
	})
}

// UpdateNodeConfig shallow-merges partial into the node config. Unknown ids are ignored.
func (s *Store) UpdateNodeConfig(id string, partial map[string]any) bool {
	return s.update(id, func(n *domain.Node) {
		n.Config = n.Config.Merge(partial)
	})
}

// RemoveNodes deletes the given nodes together with every incident edge.
// It returns the number of nodes removed; unknown ids are ignored.
func (s *Store) RemoveNodes(ids ...string) int {
	removed := 0
	for _, id := range ids {
		if _, ok := s.t.nodes[id]; !ok {
			continue
		}
		s.mutable()
		for _, edgeID := range s.t.incident[id] {
			s.dropEdge(edgeID)
		}
		delete(s.t.nodes, id)
		delete(s.t.incident, id)
		delete(s.owned, id)
		s.t.nodeOrder = slices.DeleteFunc(s.t.nodeOrder, func(n string) bool { return n == id })
		removed++
	}
	return removed
}

// AddEdge connects source to target. It fails with domain.ErrInvalidEdge for
// self-loops and missing endpoints. Parallel edges are allowed.
func (s *Store) AddEdge(source, target, label string) (domain.Edge, error) {
	if source == target {
		return domain.Edge{}, fmt.Errorf("%w: self-loop on %q", domain.ErrInvalidEdge, source)
	}
	if _, ok := s.t.nodes[source]; !ok {
		return domain.Edge{}, fmt.Errorf("%w: source %q does not exist", domain.ErrInvalidEdge, source)
	}
	if _, ok := s.t.nodes[target]; !ok {
		return domain.Edge{}, fmt.Errorf("%w: target %q does not exist", domain.ErrInvalidEdge, target)
	}

	edge := &domain.Edge{
		ID:     s.nextID(),
		Source: source,
		Target: target,
		Label:  label,
	}
	s.attachEdge(edge)
	return *edge, nil
}

// InsertEdge adds a fully formed edge, keeping its id. Endpoints must exist.
func (s *Store) InsertEdge(e domain.Edge) error {
	if e.ID == "" {
		return fmt.Errorf("edge id cannot be empty")
	}
	if _, exists := s.t.edges[e.ID]; exists {
		return fmt.Errorf("%w: duplicate id %q", domain.ErrInvalidEdge, e.ID)
	}
	if e.Source == e.Target {
		return fmt.Errorf("%w: self-loop on %q", domain.ErrInvalidEdge, e.Source)
	}
	if _, ok := s.t.nodes[e.Source]; !ok {
		return fmt.Errorf("%w: source %q does not exist", domain.ErrInvalidEdge, e.Source)
	}
	if _, ok := s.t.nodes[e.Target]; !ok {
		return fmt.Errorf("%w: target %q does not exist", domain.ErrInvalidEdge, e.Target)
	}
	edge := e
	s.issued[edge.ID] = struct{}{}
	s.attachEdge(&edge)
	return nil
}

func (s *Store) attachEdge(e *domain.Edge) {
	s.mutable()
	s.t.edges[e.ID] = e
	s.t.edgeOrder = append(s.t.edgeOrder, e.ID)
	// Incident lists may be shared with snapshots: always build a new slice.
	s.t.incident[e.Source] = append(slices.Clip(s.t.incident[e.Source]), e.ID)
	s.t.incident[e.Target] = append(slices.Clip(s.t.incident[e.Target]), e.ID)
}

// UpdateEdgeLabel replaces the label of an edge. Unknown ids are ignored.
func (s *Store) UpdateEdgeLabel(id, label string) bool {
	cur, ok := s.t.edges[id]
	if !ok {
		return false
	}
	s.mutable()
	next := *cur
	next.Label = label
	s.t.edges[id] = &next
	return true
}

// RemoveEdges deletes the given edges and returns how many existed.
func (s *Store) RemoveEdges(ids ...string) int {
	removed := 0
	for _, id := range ids {
		if _, ok := s.t.edges[id]; !ok {
			continue
		}
		s.mutable()
		s.dropEdge(id)
		removed++
	}
	return removed
}

func (s *Store) dropEdge(id string) {
	e, ok := s.t.edges[id]
	if !ok {
		return
	}
	delete(s.t.edges, id)
	s.t.edgeOrder = slices.DeleteFunc(s.t.edgeOrder, func(x string) bool { return x == id })
	s.detach(e.Source, id)
	s.detach(e.Target, id)
}

func (s *Store) detach(nodeID, edgeID string) {
	list, ok := s.t.incident[nodeID]
	if !ok {
		return
	}
	next := make([]string, 0, len(list))
	for _, x := range list {
		if x != edgeID {
			next = append(next, x)
		}
	}
	if len(next) == 0 {
		delete(s.t.incident, nodeID)
		return
	}
	s.t.incident[nodeID] = next
}

// Snapshot returns an immutable view of the current graph.
func (s *Store) Snapshot() Snapshot {
	s.shared = true
	clear(s.owned)
	return Snapshot{t: s.t}
}

// Restore replaces the live graph with a snapshot.
func (s *Store) Restore(snap Snapshot) {
	if snap.t == nil {
		s.t = newTables()
		s.shared = false
	} else {
		s.t = snap.t
		s.shared = true
	}
	clear(s.owned)
	for id := range s.t.nodes {
		s.issued[id] = struct{}{}
	}
	for id := range s.t.edges {
		s.issued[id] = struct{}{}
	}
}

// Reset empties the store. Issued ids stay reserved.
func (s *Store) Reset() {
	s.t = newTables()
	s.shared = false
	clear(s.owned)
}

// Node returns a copy of the node with the given id.
func (s *Store) Node(id string) (domain.Node, bool) { return s.t.node(id) }

// HasNode reports whether a node with the given id exists.
func (s *Store) HasNode(id string) bool { return s.t.hasNode(id) }

// Edge returns a copy of the edge with the given id.
func (s *Store) Edge(id string) (domain.Edge, bool) { return s.t.edge(id) }

// HasEdge reports whether an edge with the given id exists.
func (s *Store) HasEdge(id string) bool { return s.t.hasEdge(id) }

// Nodes returns copies of all nodes in insertion order.
func (s *Store) Nodes() []domain.Node { return s.t.nodeList() }

// Edges returns copies of all edges in insertion order.
func (s *Store) Edges() []domain.Edge { return s.t.edgeList() }

// IncidentEdges returns the ids of edges starting or ending at nodeID.
func (s *Store) IncidentEdges(nodeID string) []string { return s.t.incidentOf(nodeID) }

// NodeCount returns the number of nodes.
func (s *Store) NodeCount() int { return len(s.t.nodes) }

// EdgeCount returns the number of edges.
func (s *Store) EdgeCount() int { return len(s.t.edges) }
