package flowdesk

import (
	"github.com/aretw0/flowdesk/pkg/domain"
	"github.com/aretw0/flowdesk/pkg/selection"
	"github.com/aretw0/flowdesk/pkg/viewport"
)

// ClickCanvas clears the selection and cancels a pending connection.
func (s *Session) ClickCanvas() {
	s.selection.ClickCanvas()
}

// ClickNode selects a node, or completes a pending connection with the node
// as target. The returned edge is valid only when connected is true; err
// reports a rejected connection. Either way the machine ends Idle after a
// connection attempt.
func (s *Session) ClickNode(id string) (edge domain.Edge, connected bool, err error) {
	if _, pending := s.selection.Source(); !pending && !s.store.HasNode(id) {
		return domain.Edge{}, false, nil
	}
	source, connect := s.selection.ClickNode(id)
	if !connect {
		return domain.Edge{}, false, nil
	}
	edge, err = s.Connect(source, id, "")
	if err != nil {
		return domain.Edge{}, false, err
	}
	return edge, true, nil
}

// ClickOutputHandle starts drawing a connection from the node.
// It returns false when the node does not exist or, with strict
// connections, has no output handle.
func (s *Session) ClickOutputHandle(id string) bool {
	n, ok := s.store.Node(id)
	if !ok {
		return false
	}
	if s.strictConnections && !n.Type.HasOutput() {
		return false
	}
	s.selection.ClickOutputHandle(id)
	return true
}

// SelectEdge selects an existing edge.
func (s *Session) SelectEdge(id string) bool {
	if !s.store.HasEdge(id) {
		return false
	}
	s.selection.SelectEdge(id)
	return true
}

// CancelConnection aborts a pending connection (Escape key).
func (s *Session) CancelConnection() {
	s.selection.Cancel()
}

// PointerDown starts dragging a node from a screen position.
func (s *Session) PointerDown(nodeID string, pointer domain.Position) bool {
	n, ok := s.store.Node(nodeID)
	if !ok {
		return false
	}
	s.drag.Begin(nodeID, n.Position, pointer)
	return true
}

// PointerMove moves the dragged node. Moves are not committed.
func (s *Session) PointerMove(pointer domain.Position) (domain.Position, bool) {
	return s.drag.Move(pointer, s.viewport.Zoom)
}

// PointerUp ends the drag and commits one history entry if the node moved.
func (s *Session) PointerUp() bool {
	res, ok := s.drag.End()
	if !ok || !res.Moved {
		return false
	}
	s.logger.Debug("node moved", "node_id", res.NodeID, "from", res.From, "to", res.To)
	s.commit(domain.CommitMoveNode)
	return true
}

// Dragging reports whether a drag gesture is in progress.
func (s *Session) Dragging() bool {
	return s.drag.Active()
}

// ZoomIn zooms in by one step, clamped to the configured limits.
func (s *Session) ZoomIn() viewport.Viewport {
	s.viewport = s.limits.ZoomIn(s.viewport)
	return s.viewport
}

// ZoomOut zooms out by one step, clamped to the configured limits.
func (s *Session) ZoomOut() viewport.Viewport {
	s.viewport = s.limits.ZoomOut(s.viewport)
	return s.viewport
}

// ZoomAt scales the zoom by factor around a screen anchor.
func (s *Session) ZoomAt(anchor domain.Position, factor float64) viewport.Viewport {
	s.viewport = s.limits.ZoomAt(s.viewport, factor, anchor)
	return s.viewport
}

// FitView resets the viewport.
func (s *Session) FitView() viewport.Viewport {
	s.viewport = viewport.FitView(s.viewport)
	return s.viewport
}

// Pan moves the viewport by a screen-space delta.
func (s *Session) Pan(delta domain.Position) viewport.Viewport {
	s.viewport = viewport.Pan(s.viewport, delta)
	return s.viewport
}

// Viewport returns the current pan and zoom.
func (s *Session) Viewport() viewport.Viewport {
	return s.viewport
}

// Selection returns the selection state.
func (s *Session) Selection() selection.State {
	return s.selection.State()
}
