package flowdesk

import (
	"fmt"

	"github.com/aretw0/flowdesk/pkg/domain"
	"github.com/aretw0/flowdesk/pkg/drag"
	"github.com/aretw0/flowdesk/pkg/graph"
	"github.com/aretw0/flowdesk/pkg/schema"
)

// Serialize produces the definition record of the current graph. Each call
// increments the version and stamps UpdatedAt; CreatedAt is set on the
// first call for sessions that were not loaded from a definition.
func (s *Session) Serialize() domain.WorkflowDefinition {
	now := s.now()
	if s.meta.ID == "" {
		s.meta.ID = s.idFunc()
	}
	if s.meta.CreatedAt.IsZero() {
		s.meta.CreatedAt = now
	}
	s.meta.UpdatedAt = now
	s.meta.Version++

	def := s.definition()
	def.InputSchema = cloneMap(s.meta.InputSchema)
	def.OutputSchema = cloneMap(s.meta.OutputSchema)
	return def
}

// Load replaces the graph with the definition and resets the history to a
// single entry. Integrity problems are repaired by dropping the offending
// edges and duplicate nodes, unless the session was created with
// WithStrictLoad, in which case the definition is rejected and the session
// is left untouched.
func (s *Session) Load(def domain.WorkflowDefinition) error {
	issues := schema.CheckIntegrity(def)
	if s.strictLoad {
		if err := s.strictErrors(def, issues); err != nil {
			return fmt.Errorf("failed to load definition %q: %w", def.ID, err)
		}
	}

	repaired := def
	if len(issues) > 0 {
		repaired, _ = schema.Repair(def)
		for _, issue := range issues {
			s.logger.Warn("definition repaired",
				"definition_id", def.ID,
				"issue", issue.Kind,
				"node_id", issue.NodeID,
				"edge_id", issue.EdgeID,
				"detail", issue.Detail,
			)
		}
	}

	store := graph.NewStore(graph.WithCatalog(s.catalog), graph.WithIDFunc(s.idFunc))
	for _, n := range repaired.Nodes {
		if err := store.InsertNode(n); err != nil {
			return fmt.Errorf("failed to load definition %q: %w", def.ID, err)
		}
	}
	for _, e := range repaired.Edges {
		if err := store.InsertEdge(e); err != nil {
			return fmt.Errorf("failed to load definition %q: %w", def.ID, err)
		}
	}

	s.store = store
	s.drag = drag.New(store)
	s.history.Reset(store.Snapshot())
	s.selection.Clear()

	meta := def
	meta.Nodes, meta.Edges = nil, nil
	meta.Tags = append([]string(nil), def.Tags...)
	meta.InputSchema = cloneMap(def.InputSchema)
	meta.OutputSchema = cloneMap(def.OutputSchema)
	s.meta = meta

	dropped := len(def.Edges) - len(repaired.Edges)
	s.logger.Debug("definition loaded",
		"definition_id", def.ID,
		"version", def.Version,
		"nodes", store.NodeCount(),
		"edges", store.EdgeCount(),
		"dropped_edges", dropped,
	)
	if s.hooks.OnLoad != nil {
		s.hooks.OnLoad(&domain.LoadEvent{
			Timestamp:    s.now(),
			DefinitionID: def.ID,
			Nodes:        store.NodeCount(),
			Edges:        store.EdgeCount(),
			DroppedEdges: dropped,
		})
	}
	return nil
}

func (s *Session) strictErrors(def domain.WorkflowDefinition, issues []schema.Issue) error {
	errs := make([]error, 0, len(issues))
	if err := schema.IntegrityError(issues); err != nil {
		errs = append(errs, schema.ValidationErrors(err)...)
	}
	for _, n := range def.Nodes {
		if !n.Type.Valid() {
			errs = append(errs, &schema.ValidationError{
				Subject: n.ID,
				Reason:  fmt.Sprintf("unknown node type %q", n.Type),
			})
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return &schema.AggregateError{Errors: errs}
}

// Nodes returns the nodes in insertion order.
func (s *Session) Nodes() []domain.Node { return s.store.Nodes() }

// Edges returns the edges in insertion order.
func (s *Session) Edges() []domain.Edge { return s.store.Edges() }

// Node returns the node with the given id.
func (s *Session) Node(id string) (domain.Node, bool) { return s.store.Node(id) }

// Edge returns the edge with the given id.
func (s *Session) Edge(id string) (domain.Edge, bool) { return s.store.Edge(id) }

// CanUndo reports whether Undo would change the graph.
func (s *Session) CanUndo() bool { return s.history.CanUndo() }

// CanRedo reports whether Redo would change the graph.
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

// HistoryLen returns the number of history entries, including the initial one.
func (s *Session) HistoryLen() int { return s.history.Len() }

// Version returns the version the next Serialize will increment.
func (s *Session) Version() int { return s.meta.Version }

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	return domain.Config(m).Clone()
}
