package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/flowdesk"
	"github.com/aretw0/flowdesk/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Script is a recorded sequence of editor gestures.
type Script struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Step is one gesture. Node and Edge accept either an id or an alias bound
// by an earlier step's As.
type Step struct {
	Op          string            `yaml:"op"`
	Type        domain.NodeType   `yaml:"type,omitempty"`
	Node        string            `yaml:"node,omitempty"`
	Target      string            `yaml:"target,omitempty"`
	Edge        string            `yaml:"edge,omitempty"`
	At          *domain.Position  `yaml:"at,omitempty"`
	Points      []domain.Position `yaml:"points,omitempty"`
	Factor      float64           `yaml:"factor,omitempty"`
	Name        string            `yaml:"name,omitempty"`
	Label       string            `yaml:"label,omitempty"`
	Description string            `yaml:"description,omitempty"`
	Values      map[string]any    `yaml:"values,omitempty"`
	As          string            `yaml:"as,omitempty"`
}

// ReplayReport summarizes a replay.
type ReplayReport struct {
	Steps    int
	Rejected []string          // rejected connections, as "step N: reason"
	Aliases  map[string]string // alias -> node or edge id
}

// ParseScript decodes a YAML gesture script.
func ParseScript(data []byte) (Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Script{}, fmt.Errorf("failed to parse script: %w", err)
	}
	return s, nil
}

// ReadScript reads and decodes a YAML gesture script from disk.
func ReadScript(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, err
	}
	return ParseScript(data)
}

// Replay applies the script's gestures to s in order. Rejected connections
// are reported, not fatal. Unknown operations and missing arguments stop the
// replay with an error naming the step.
func Replay(ctx context.Context, s *flowdesk.Session, script Script) (*ReplayReport, error) {
	r := &replayer{
		session: s,
		report:  &ReplayReport{Aliases: make(map[string]string)},
	}
	for i, step := range script.Steps {
		if err := ctx.Err(); err != nil {
			return r.report, err
		}
		if err := r.apply(i+1, step); err != nil {
			return r.report, fmt.Errorf("step %d (%s): %w", i+1, step.Op, err)
		}
		r.report.Steps++
	}
	return r.report, nil
}

type replayer struct {
	session *flowdesk.Session
	report  *ReplayReport
}

func (r *replayer) resolve(ref string) string {
	if id, ok := r.report.Aliases[ref]; ok {
		return id
	}
	return ref
}

func (r *replayer) bind(alias, id string) {
	if alias != "" {
		r.report.Aliases[alias] = id
	}
}

func (r *replayer) reject(n int, err error) {
	r.report.Rejected = append(r.report.Rejected, fmt.Sprintf("step %d: %v", n, err))
}

func (r *replayer) apply(n int, step Step) error {
	s := r.session
	switch step.Op {
	case "add":
		node, err := s.AddNodeFromTemplate(step.Type)
		if err != nil {
			return err
		}
		r.bind(step.As, node.ID)
	case "add_at":
		if step.At == nil {
			return fmt.Errorf("missing 'at'")
		}
		node, err := s.AddNodeAt(step.Type, *step.At)
		if err != nil {
			return err
		}
		r.bind(step.As, node.ID)
	case "connect":
		edge, err := s.Connect(r.resolve(step.Node), r.resolve(step.Target), step.Label)
		if err != nil {
			r.reject(n, err)
			return nil
		}
		r.bind(step.As, edge.ID)
	case "click":
		edge, connected, err := s.ClickNode(r.resolve(step.Node))
		if err != nil {
			r.reject(n, err)
			return nil
		}
		if connected {
			r.bind(step.As, edge.ID)
		}
	case "click_canvas":
		s.ClickCanvas()
	case "handle":
		if !s.ClickOutputHandle(r.resolve(step.Node)) {
			return fmt.Errorf("node %q has no output handle", step.Node)
		}
	case "select_edge":
		if !s.SelectEdge(r.resolve(step.Edge)) {
			return fmt.Errorf("edge %q not found", step.Edge)
		}
	case "cancel":
		s.CancelConnection()
	case "delete":
		s.DeleteSelection()
	case "drag":
		return r.drag(step)
	case "rename":
		s.RenameNode(r.resolve(step.Node), step.Name)
	case "describe":
		s.UpdateNodeDescription(r.resolve(step.Node), step.Description)
	case "config":
		s.UpdateNodeConfig(r.resolve(step.Node), step.Values)
	case "label":
		s.UpdateEdgeLabel(r.resolve(step.Edge), step.Label)
	case "undo":
		s.Undo()
	case "redo":
		s.Redo()
	case "zoom_in":
		s.ZoomIn()
	case "zoom_out":
		s.ZoomOut()
	case "zoom_at":
		if step.At == nil || step.Factor <= 0 {
			return fmt.Errorf("zoom_at needs 'at' and a positive 'factor'")
		}
		s.ZoomAt(*step.At, step.Factor)
	case "fit":
		s.FitView()
	case "pan":
		if step.At == nil {
			return fmt.Errorf("missing 'at'")
		}
		s.Pan(*step.At)
	default:
		return fmt.Errorf("unknown operation")
	}
	return nil
}

// drag presses on the node at the first point, moves through the rest and
// releases at the last one.
func (r *replayer) drag(step Step) error {
	if len(step.Points) < 2 {
		return fmt.Errorf("drag needs at least 2 points")
	}
	s := r.session
	if !s.PointerDown(r.resolve(step.Node), step.Points[0]) {
		return fmt.Errorf("%w: %q", domain.ErrNodeNotFound, step.Node)
	}
	for _, p := range step.Points[1:] {
		s.PointerMove(p)
	}
	s.PointerUp()
	return nil
}
