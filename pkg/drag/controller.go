// Package drag turns pointer movements into node position updates.
package drag

import "github.com/aretw0/flowdesk/pkg/domain"

// Mover applies a position to a node. The graph store implements it.
type Mover interface {
	MoveNode(id string, pos domain.Position) bool
}

// Result describes a finished gesture.
type Result struct {
	NodeID string
	From   domain.Position
	To     domain.Position
	Moved  bool
}

// Controller tracks one drag gesture at a time.
// There is no cancel gesture: ending a drag always keeps the last position.
type Controller struct {
	mover Mover

	active bool
	nodeID string
	origin domain.Position // logical node position at gesture start
	start  domain.Position // screen pointer position at gesture start
	last   domain.Position
	moved  bool
}

// New creates a controller that moves nodes through m.
func New(m Mover) *Controller {
	return &Controller{mover: m}
}

// Begin records the node's logical position and the pointer's screen
// position. A gesture already in progress is replaced.
func (c *Controller) Begin(nodeID string, origin, pointer domain.Position) {
	c.active = true
	c.nodeID = nodeID
	c.origin = origin
	c.start = pointer
	c.last = origin
	c.moved = false
}

// Move places the node at origin + (pointer - start) / zoom and returns the
// new logical position. It returns false when no gesture is active.
func (c *Controller) Move(pointer domain.Position, zoom float64) (domain.Position, bool) {
	if !c.active {
		return domain.Position{}, false
	}
	pos := c.origin.Add(pointer.Sub(c.start).Scale(1 / zoom))
	if c.mover.MoveNode(c.nodeID, pos) {
		c.last = pos
		c.moved = c.moved || pos != c.origin
	}
	return pos, true
}

// End finishes the gesture. It returns false when no gesture was active.
func (c *Controller) End() (Result, bool) {
	if !c.active {
		return Result{}, false
	}
	res := Result{
		NodeID: c.nodeID,
		From:   c.origin,
		To:     c.last,
		Moved:  c.moved && c.last != c.origin,
	}
	c.Reset()
	return res, true
}

// Reset drops the current gesture without reporting it.
func (c *Controller) Reset() {
	*c = Controller{mover: c.mover}
}

// Active reports whether a gesture is in progress.
func (c *Controller) Active() bool { return c.active }

// NodeID returns the node being dragged.
func (c *Controller) NodeID() string { return c.nodeID }
