/*
Package flowdesk is the editing core of a visual workflow designer: it owns the node/edge graph a user draws on a canvas, the undo/redo history, the selection and connection state, node dragging and the pan/zoom viewport.

The package has no rendering and no network. A host (a web canvas, a terminal UI, a test) feeds it pointer gestures and toolbar commands and reads back the graph to draw.

# Concept

A Session is one editor. Every user-visible change of the graph (adding a node, connecting two nodes, deleting the selection, finishing a drag, editing a property) produces exactly one history entry. Intermediate drag positions are never recorded, so one Undo reverts a whole drag.

The graph is exchanged with the outside world as a domain.WorkflowDefinition, a JSON/YAML record with camelCase keys that backends store and version.

# Usage

	s := flowdesk.New(flowdesk.WithLogger(logger))

	start, _ := s.AddNodeFromTemplate(domain.NodeTypeStart)
	end, _ := s.AddNodeFromTemplate(domain.NodeTypeEnd)

	// Draw a connection: output handle of start, then the end node.
	s.ClickOutputHandle(start.ID)
	if _, _, err := s.ClickNode(end.ID); err != nil {
		log.Fatal(err)
	}

	// Drag the end node 100px to the right.
	s.PointerDown(end.ID, domain.Position{X: 400, Y: 300})
	s.PointerMove(domain.Position{X: 500, Y: 300})
	s.PointerUp()

	s.Undo() // end node back where it was

	def := s.Serialize()

# Packages

  - pkg/viewport: screen/logical coordinate conversion and zoom clamping.
  - pkg/graph: the node/edge store with copy-on-write snapshots.
  - pkg/history: the linear undo/redo history.
  - pkg/selection: the selection and connection state machine.
  - pkg/drag: pointer gestures to node moves.
  - pkg/schema: integrity checks, repair and publishing validation.
  - pkg/adapters: definition stores (memory, file, redis).
*/
package flowdesk
