package schema

import (
	"fmt"

	"github.com/aretw0/flowdesk/pkg/domain"
)

// ValidateDefinition checks def against the integrity and publishing rules.
// It returns nil or an *AggregateError whose entries all match
// domain.ErrInvalidDefinition.
func ValidateDefinition(def domain.WorkflowDefinition) error {
	var errs []error
	for _, issue := range CheckIntegrity(def) {
		errs = append(errs, issue.err())
	}

	types := make(map[string]domain.NodeType, len(def.Nodes))
	var starts, ends int
	for _, n := range def.Nodes {
		if _, seen := types[n.ID]; !seen {
			types[n.ID] = n.Type
		}
		switch n.Type {
		case domain.NodeTypeStart:
			starts++
		case domain.NodeTypeEnd:
			ends++
		}

		if !n.Type.Valid() {
			errs = append(errs, &ValidationError{Subject: n.ID, Reason: fmt.Sprintf("unknown node type %q", n.Type)})
			continue
		}
		if _, err := n.TypedConfig(); err != nil {
			errs = append(errs, &ValidationError{Subject: n.ID, Reason: err.Error()})
		}
	}

	if starts == 0 {
		errs = append(errs, &ValidationError{Reason: "workflow must have a start node"})
	}
	if starts > 1 {
		errs = append(errs, &ValidationError{Reason: "workflow can only have one start node"})
	}
	if ends == 0 {
		errs = append(errs, &ValidationError{Reason: "workflow must have at least one end node"})
	}

	for _, e := range def.Edges {
		if t, ok := types[e.Target]; ok && !t.HasInput() {
			errs = append(errs, &ValidationError{Subject: e.ID, Reason: fmt.Sprintf("%s node %q cannot be a connection target", t, e.Target)})
		}
		if t, ok := types[e.Source]; ok && !t.HasOutput() {
			errs = append(errs, &ValidationError{Subject: e.ID, Reason: fmt.Sprintf("%s node %q cannot start a connection", t, e.Source)})
		}
	}

	for _, n := range def.Nodes {
		if n.Type != domain.NodeTypeDecision {
			continue
		}
		if out := len(def.Outgoing(n.ID)); out < 2 {
			errs = append(errs, &ValidationError{Subject: n.ID, Reason: fmt.Sprintf("decision node %q must have at least 2 outgoing edges, has %d", n.Name, out)})
		}
	}

	return aggregate(errs)
}
