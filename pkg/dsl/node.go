package dsl

import "github.com/aretw0/flowdesk/pkg/domain"

type transition struct {
	target    string
	label     string
	condition string
	priority  int
}

// NodeBuilder provides a fluent API for configuring a node.
type NodeBuilder struct {
	node        domain.Node
	transitions []transition
	branches    int
	builder     *Builder
}

// Type sets the node type directly.
func (n *NodeBuilder) Type(t domain.NodeType) *NodeBuilder {
	n.node.Type = t
	return n
}

// Start marks the node as the workflow entry point.
func (n *NodeBuilder) Start() *NodeBuilder { return n.Type(domain.NodeTypeStart) }

// End marks the node as a completion point.
func (n *NodeBuilder) End() *NodeBuilder { return n.Type(domain.NodeTypeEnd) }

// Action makes the node run the named action with parameters.
func (n *NodeBuilder) Action(action string, params map[string]any) *NodeBuilder {
	n.node.Type = domain.NodeTypeAction
	n.node.Config["action"] = action
	if params != nil {
		n.node.Config["parameters"] = params
	}
	return n
}

// HumanTask makes the node a task assigned to a user or role.
func (n *NodeBuilder) HumanTask(assignee string) *NodeBuilder {
	n.node.Type = domain.NodeTypeHumanTask
	n.node.Config["assignee"] = assignee
	return n
}

// Decision makes the node branch on condition.
func (n *NodeBuilder) Decision(condition string) *NodeBuilder {
	n.node.Type = domain.NodeTypeDecision
	n.node.Config["condition"] = condition
	return n
}

// Timer makes the node wait for an ISO-8601 duration.
func (n *NodeBuilder) Timer(duration string) *NodeBuilder {
	n.node.Type = domain.NodeTypeTimer
	n.node.Config["duration"] = duration
	return n
}

// Notify makes the node send a notification of the given kind.
func (n *NodeBuilder) Notify(kind string, recipients ...string) *NodeBuilder {
	n.node.Type = domain.NodeTypeNotification
	n.node.Config["notificationType"] = kind
	n.node.Config["recipients"] = recipients
	return n
}

// Named sets the display name.
func (n *NodeBuilder) Named(name string) *NodeBuilder {
	n.node.Name = name
	return n
}

// Describe sets the node description.
func (n *NodeBuilder) Describe(description string) *NodeBuilder {
	n.node.Description = description
	return n
}

// At places the node on the canvas.
func (n *NodeBuilder) At(x, y float64) *NodeBuilder {
	n.node.Position = domain.Position{X: x, Y: y}
	return n
}

// Set adds a config value, overriding the catalog default.
func (n *NodeBuilder) Set(key string, value any) *NodeBuilder {
	n.node.Config[key] = value
	return n
}

// Go adds an unconditional transition to the target node.
func (n *NodeBuilder) Go(target string) *NodeBuilder {
	n.transitions = append(n.transitions, transition{target: target})
	return n
}

// Branch adds a labelled conditional transition. Branches of a node get
// increasing priorities in declaration order.
func (n *NodeBuilder) Branch(label, condition, target string) *NodeBuilder {
	n.transitions = append(n.transitions, transition{
		target:    target,
		label:     label,
		condition: condition,
		priority:  n.branches,
	})
	n.branches++
	return n
}

// Add starts the next node, for chaining.
func (n *NodeBuilder) Add(id string) *NodeBuilder {
	return n.builder.Add(id)
}

// Build returns the underlying domain.Node without catalog defaults.
func (n *NodeBuilder) Build() domain.Node {
	return n.node.Clone()
}
