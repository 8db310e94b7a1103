package flowdesk

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/flowdesk/pkg/catalog"
	"github.com/aretw0/flowdesk/pkg/domain"
	"github.com/aretw0/flowdesk/pkg/drag"
	"github.com/aretw0/flowdesk/pkg/graph"
	"github.com/aretw0/flowdesk/pkg/history"
	"github.com/aretw0/flowdesk/pkg/schema"
	"github.com/aretw0/flowdesk/pkg/selection"
	"github.com/aretw0/flowdesk/pkg/viewport"
)

// CanvasSize is the visible canvas area in screen pixels.
type CanvasSize struct {
	Width  float64 `json:"width" yaml:"width" toml:"width"`
	Height float64 `json:"height" yaml:"height" toml:"height"`
}

// Center returns the middle of the canvas in screen coordinates.
func (c CanvasSize) Center() domain.Position {
	return domain.Position{X: c.Width / 2, Y: c.Height / 2}
}

// DefaultCanvas is used when no canvas size is configured.
var DefaultCanvas = CanvasSize{Width: 800, Height: 600}

// Session is one editor instance: it owns the graph store, the history,
// the selection machine, the drag controller and the viewport.
// A Session is not safe for concurrent use.
type Session struct {
	store     *graph.Store
	history   *history.Manager
	selection *selection.Machine
	drag      *drag.Controller
	viewport  viewport.Viewport
	limits    viewport.Limits
	canvas    CanvasSize

	meta domain.WorkflowDefinition // everything but nodes and edges

	catalog           *catalog.Catalog
	idFunc            graph.IDFunc
	historyLimit      int
	strictConnections bool
	strictLoad        bool
	hooks             domain.LifecycleHooks
	logger            *slog.Logger
	now               func() time.Time
}

// Option defines a functional option for configuring a Session.
type Option func(*Session)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Session) {
		s.hooks = hooks
	}
}

// WithCatalog replaces the embedded node template catalog.
func WithCatalog(c *catalog.Catalog) Option {
	return func(s *Session) {
		s.catalog = c
	}
}

// WithIDFunc replaces the UUID generator for nodes, edges and definitions.
func WithIDFunc(fn graph.IDFunc) Option {
	return func(s *Session) {
		s.idFunc = fn
	}
}

// WithCanvasSize sets the screen size used to place nodes added from the toolbar.
func WithCanvasSize(size CanvasSize) Option {
	return func(s *Session) {
		s.canvas = size
	}
}

// WithZoomLimits replaces the default zoom bounds and step.
func WithZoomLimits(l viewport.Limits) Option {
	return func(s *Session) {
		s.limits = l
	}
}

// WithHistoryLimit bounds the number of undo entries kept.
func WithHistoryLimit(n int) Option {
	return func(s *Session) {
		s.historyLimit = n
	}
}

// WithStrictConnections rejects edges into start nodes and out of end nodes.
func WithStrictConnections(strict bool) Option {
	return func(s *Session) {
		s.strictConnections = strict
	}
}

// WithStrictLoad makes Load reject definitions with integrity problems
// instead of repairing them.
func WithStrictLoad(strict bool) Option {
	return func(s *Session) {
		s.strictLoad = strict
	}
}

// WithClock overrides time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// New creates an empty editor session.
func New(opts ...Option) *Session {
	s := &Session{
		limits:   viewport.DefaultLimits,
		canvas:   DefaultCanvas,
		viewport: viewport.Default(),
		catalog:  catalog.Default(),
		idFunc:   graph.NewID,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Ensure logger is initialized so hot paths never check for nil.
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if !s.limits.Valid() {
		s.logger.Warn("invalid zoom limits, using defaults", "limits", s.limits)
		s.limits = viewport.DefaultLimits
	}

	s.store = graph.NewStore(graph.WithCatalog(s.catalog), graph.WithIDFunc(s.idFunc))
	s.history = history.New(s.store.Snapshot(), history.WithLimit(s.historyLimit))
	s.selection = selection.New()
	s.drag = drag.New(s.store)
	// The definition id is assigned on first Serialize.
	s.meta = domain.WorkflowDefinition{
		Name:     "Untitled workflow",
		IsActive: true,
	}
	return s
}

// commit appends the current graph to the history and notifies hooks.
func (s *Session) commit(reason domain.CommitReason) {
	s.history.Commit(s.store.Snapshot())
	s.logger.Debug("history commit",
		"reason", reason,
		"nodes", s.store.NodeCount(),
		"edges", s.store.EdgeCount(),
		"history_len", s.history.Len(),
	)
	if s.hooks.OnCommit != nil {
		s.hooks.OnCommit(&domain.CommitEvent{
			Timestamp:  s.now(),
			Reason:     reason,
			Nodes:      s.store.NodeCount(),
			Edges:      s.store.EdgeCount(),
			HistoryLen: s.history.Len(),
		})
	}
}

// AddNodeFromTemplate places a new node at the center of the visible canvas.
func (s *Session) AddNodeFromTemplate(t domain.NodeType) (domain.Node, error) {
	return s.AddNodeAt(t, s.canvas.Center())
}

// AddNodeAt places a new node under a screen position, e.g. a palette drop.
func (s *Session) AddNodeAt(t domain.NodeType, screen domain.Position) (domain.Node, error) {
	node, err := s.store.AddNode(t, viewport.ToLogical(screen, s.viewport))
	if err != nil {
		return domain.Node{}, fmt.Errorf("failed to add node: %w", err)
	}
	s.commit(domain.CommitAddNode)
	return node, nil
}

// Connect adds an edge between two nodes and commits it.
// Failures leave the graph and the history untouched.
func (s *Session) Connect(source, target, label string) (domain.Edge, error) {
	if err := s.checkDirection(source, target); err != nil {
		s.rejectEdge(source, target, err)
		return domain.Edge{}, err
	}
	edge, err := s.store.AddEdge(source, target, label)
	if err != nil {
		s.rejectEdge(source, target, err)
		return domain.Edge{}, err
	}
	s.commit(domain.CommitAddEdge)
	return edge, nil
}

func (s *Session) checkDirection(source, target string) error {
	if !s.strictConnections {
		return nil
	}
	if n, ok := s.store.Node(source); ok && !n.Type.HasOutput() {
		return fmt.Errorf("%w: %s node %q has no output", domain.ErrInvalidEdge, n.Type, source)
	}
	if n, ok := s.store.Node(target); ok && !n.Type.HasInput() {
		return fmt.Errorf("%w: %s node %q has no input", domain.ErrInvalidEdge, n.Type, target)
	}
	return nil
}

func (s *Session) rejectEdge(source, target string, err error) {
	s.logger.Debug("edge rejected", "source", source, "target", target, "err", err)
	if s.hooks.OnEdgeRejected != nil {
		s.hooks.OnEdgeRejected(&domain.EdgeRejectedEvent{
			Timestamp: s.now(),
			Source:    source,
			Target:    target,
			Err:       err,
		})
	}
}

// DeleteSelection removes the selected nodes (with their edges) and the
// selected edges in a single commit, then clears the selection.
// It returns the number of removed nodes and edges.
func (s *Session) DeleteSelection() int {
	nodes := s.selection.SelectedNodes()
	edges := s.selection.SelectedEdges()
	if s.drag.Active() && s.selection.IsNodeSelected(s.drag.NodeID()) {
		s.drag.Reset()
	}
	s.selection.Clear()

	removed := s.store.RemoveNodes(nodes...) + s.store.RemoveEdges(edges...)
	if removed > 0 {
		s.commit(domain.CommitRemove)
	}
	return removed
}

// RenameNode sets the display name of a node and commits it.
func (s *Session) RenameNode(id, name string) bool {
	n, ok := s.store.Node(id)
	if !ok || n.Name == name {
		return false
	}
	s.store.RenameNode(id, name)
	s.commit(domain.CommitEditNode)
	return true
}

// UpdateNodeDescription sets the description of a node and commits it.
func (s *Session) UpdateNodeDescription(id, description string) bool {
	n, ok := s.store.Node(id)
	if !ok || n.Description == description {
		return false
	}
	s.store.UpdateNodeDescription(id, description)
	s.commit(domain.CommitEditNode)
	return true
}

// UpdateNodeConfig merges a submitted properties form into the node config
// and commits it. Callers submit on blur or save, not on every keystroke.
// A submission that leaves every key unchanged is not committed.
func (s *Session) UpdateNodeConfig(id string, partial map[string]any) bool {
	n, ok := s.store.Node(id)
	if !ok || !n.Config.Changes(partial) {
		return false
	}
	s.store.UpdateNodeConfig(id, partial)
	s.commit(domain.CommitEditNode)
	return true
}

// UpdateEdgeLabel sets the label of an edge and commits it.
func (s *Session) UpdateEdgeLabel(id, label string) bool {
	e, ok := s.store.Edge(id)
	if !ok || e.Label == label {
		return false
	}
	s.store.UpdateEdgeLabel(id, label)
	s.commit(domain.CommitEditEdge)
	return true
}

// Undo restores the previous history entry. It returns false at the oldest entry.
// An undo that applies drops any drag in progress; a no-op one leaves it alone.
func (s *Session) Undo() bool {
	if s.history.CanUndo() {
		s.drag.Reset()
	}
	snap, ok := s.history.Undo()
	return s.applyHistory("undo", snap, ok)
}

// Redo restores the next history entry. It returns false at the newest entry.
func (s *Session) Redo() bool {
	if s.history.CanRedo() {
		s.drag.Reset()
	}
	snap, ok := s.history.Redo()
	return s.applyHistory("redo", snap, ok)
}

func (s *Session) applyHistory(direction string, snap graph.Snapshot, ok bool) bool {
	if ok {
		s.store.Restore(snap)
		s.selection.Forget(s.store.HasNode, s.store.HasEdge)
	}
	s.logger.Debug("history "+direction, "applied", ok, "cursor", s.history.Cursor())
	if s.hooks.OnHistory != nil {
		s.hooks.OnHistory(&domain.HistoryEvent{
			Timestamp: s.now(),
			Direction: direction,
			Applied:   ok,
			Cursor:    s.history.Cursor(),
		})
	}
	return ok
}

// Validate runs the publishing rules on the current graph.
func (s *Session) Validate() error {
	return schema.ValidateDefinition(s.definition())
}

func (s *Session) definition() domain.WorkflowDefinition {
	def := s.meta
	def.Tags = append([]string(nil), s.meta.Tags...)
	def.Nodes = s.store.Nodes()
	def.Edges = s.store.Edges()
	return def
}
