package domain

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// NodeType defines the role of a step in the workflow graph.
type NodeType string

const (
	// NodeTypeStart is the single entry point of a workflow. It has no input handle.
	NodeTypeStart NodeType = "start"
	// NodeTypeEnd is a completion point. It has no output handle.
	NodeTypeEnd NodeType = "end"
	// NodeTypeAction performs an operation.
	NodeTypeAction NodeType = "action"
	// NodeTypeDecision branches on a condition or rule.
	NodeTypeDecision NodeType = "decision"
	// NodeTypeHumanTask waits for a user to complete a form.
	NodeTypeHumanTask NodeType = "human_task"
	// NodeTypeTimer waits for a duration or a point in time.
	NodeTypeTimer NodeType = "timer"
	// NodeTypeNotification sends an alert (email, sms, push, webhook).
	NodeTypeNotification NodeType = "notification"
	// NodeTypeRule evaluates a business rule.
	NodeTypeRule NodeType = "rule"
	// NodeTypeScript runs custom logic.
	NodeTypeScript NodeType = "script"
	// NodeTypeSubWorkflow runs another workflow.
	NodeTypeSubWorkflow NodeType = "sub_workflow"
	// NodeTypeParallelSplit forks execution into branches.
	NodeTypeParallelSplit NodeType = "parallel_split"
	// NodeTypeParallelJoin waits for parallel branches.
	NodeTypeParallelJoin NodeType = "parallel_join"
)

// NodeTypes lists every known node type in palette order.
var NodeTypes = []NodeType{
	NodeTypeStart,
	NodeTypeEnd,
	NodeTypeAction,
	NodeTypeDecision,
	NodeTypeHumanTask,
	NodeTypeTimer,
	NodeTypeNotification,
	NodeTypeRule,
	NodeTypeScript,
	NodeTypeSubWorkflow,
	NodeTypeParallelSplit,
	NodeTypeParallelJoin,
}

// Valid reports whether t is one of the known node types.
func (t NodeType) Valid() bool {
	for _, known := range NodeTypes {
		if t == known {
			return true
		}
	}
	return false
}

// HasInput reports whether nodes of this type can be the target of an edge.
func (t NodeType) HasInput() bool { return t != NodeTypeStart }

// HasOutput reports whether nodes of this type can start a connection.
func (t NodeType) HasOutput() bool { return t != NodeTypeEnd }

// ParseNodeType converts a raw string into a NodeType.
func ParseNodeType(s string) (NodeType, error) {
	t := NodeType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownNodeType, s)
	}
	return t, nil
}

// Position is a point in logical canvas coordinates (or screen pixels,
// depending on the caller).
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Add returns p + q.
func (p Position) Add(q Position) Position { return Position{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p - q.
func (p Position) Sub(q Position) Position { return Position{X: p.X - q.X, Y: p.Y - q.Y} }

// Scale multiplies both coordinates by f.
func (p Position) Scale(f float64) Position { return Position{X: p.X * f, Y: p.Y * f} }

// UnmarshalJSON accepts both the object form {"x":1,"y":2} and the
// tuple form [1,2] written by older backends. null leaves p unchanged.
func (p *Position) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var pair []float64
	if err := json.Unmarshal(data, &pair); err == nil {
		if len(pair) != 2 {
			return fmt.Errorf("position: expected 2 coordinates, got %d", len(pair))
		}
		p.X, p.Y = pair[0], pair[1]
		return nil
	}

	type plain Position
	var obj plain
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("position: %w", err)
	}
	*p = Position(obj)
	return nil
}

// UnmarshalYAML accepts the same two forms as UnmarshalJSON.
func (p *Position) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.SequenceNode {
		var pair []float64
		if err := value.Decode(&pair); err != nil {
			return fmt.Errorf("position: %w", err)
		}
		if len(pair) != 2 {
			return fmt.Errorf("position: expected 2 coordinates, got %d", len(pair))
		}
		p.X, p.Y = pair[0], pair[1]
		return nil
	}

	type plain Position
	var obj plain
	if err := value.Decode(&obj); err != nil {
		return fmt.Errorf("position: %w", err)
	}
	*p = Position(obj)
	return nil
}

// Node is a single step of the workflow graph.
type Node struct {
	ID          string   `json:"id" yaml:"id"`
	Type        NodeType `json:"nodeType" yaml:"nodeType"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Position    Position `json:"position" yaml:"position"`

	// Config holds the node-type dependent settings. Keys that do not belong
	// to the node type are kept untouched so they survive a round-trip.
	Config Config `json:"config" yaml:"config"`

	// Metadata is free-form and never interpreted by the editor.
	Metadata map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Clone returns a copy of n that shares no maps with it.
func (n Node) Clone() Node {
	out := n
	out.Config = n.Config.Clone()
	if n.Metadata != nil {
		out.Metadata = Config(n.Metadata).Clone()
	}
	return out
}

// TypedConfig decodes the raw config into the variant selected by the node type.
func (n Node) TypedConfig() (NodeConfig, error) {
	return DecodeConfig(n.Type, n.Config)
}

// Edge is a directed connection between two nodes.
type Edge struct {
	ID     string `json:"id" yaml:"id"`
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
	Label  string `json:"label,omitempty" yaml:"label,omitempty"`

	// Condition and Priority are consumed by the execution engine.
	// The editor only carries them.
	Condition string `json:"condition,omitempty" yaml:"condition,omitempty"`
	Priority  int    `json:"priority,omitempty" yaml:"priority,omitempty"`
}

// Touches reports whether the edge starts or ends at nodeID.
func (e Edge) Touches(nodeID string) bool {
	return e.Source == nodeID || e.Target == nodeID
}
