package schema

import (
	"fmt"

	"github.com/aretw0/flowdesk/pkg/domain"
)

// Issue is an integrity problem found in a definition.
type Issue struct {
	Kind   IssueKind
	NodeID string
	EdgeID string
	Detail string
}

// IssueKind classifies integrity problems.
type IssueKind string

const (
	IssueDuplicateNode IssueKind = "duplicate_node"
	IssueEmptyNodeID   IssueKind = "empty_node_id"
	IssueDuplicateEdge IssueKind = "duplicate_edge"
	IssueEmptyEdgeID   IssueKind = "empty_edge_id"
	IssueDanglingEdge  IssueKind = "dangling_edge"
	IssueSelfLoop      IssueKind = "self_loop"
)

func (i Issue) err() error {
	subject := i.EdgeID
	if subject == "" {
		subject = i.NodeID
	}
	return &ValidationError{Subject: subject, Reason: i.Detail}
}

// CheckIntegrity lists every element that prevents def from being loaded
// as an editor graph. Nodes are checked before edges, both in definition order.
func CheckIntegrity(def domain.WorkflowDefinition) []Issue {
	var issues []Issue

	nodes := make(map[string]struct{}, len(def.Nodes))
	for i, n := range def.Nodes {
		if n.ID == "" {
			issues = append(issues, Issue{Kind: IssueEmptyNodeID, Detail: fmt.Sprintf("node #%d has no id", i)})
			continue
		}
		if _, dup := nodes[n.ID]; dup {
			issues = append(issues, Issue{Kind: IssueDuplicateNode, NodeID: n.ID, Detail: "duplicate node id"})
			continue
		}
		nodes[n.ID] = struct{}{}
	}

	edges := make(map[string]struct{}, len(def.Edges))
	for i, e := range def.Edges {
		switch {
		case e.ID == "":
			issues = append(issues, Issue{Kind: IssueEmptyEdgeID, Detail: fmt.Sprintf("edge #%d has no id", i)})
			continue
		case hasKey(edges, e.ID):
			issues = append(issues, Issue{Kind: IssueDuplicateEdge, EdgeID: e.ID, Detail: "duplicate edge id"})
			continue
		}
		edges[e.ID] = struct{}{}

		if e.Source == e.Target {
			issues = append(issues, Issue{Kind: IssueSelfLoop, EdgeID: e.ID, NodeID: e.Source, Detail: fmt.Sprintf("self-loop on node %q", e.Source)})
			continue
		}
		if !hasKey(nodes, e.Source) {
			issues = append(issues, Issue{Kind: IssueDanglingEdge, EdgeID: e.ID, NodeID: e.Source, Detail: fmt.Sprintf("references invalid source node: %s", e.Source)})
			continue
		}
		if !hasKey(nodes, e.Target) {
			issues = append(issues, Issue{Kind: IssueDanglingEdge, EdgeID: e.ID, NodeID: e.Target, Detail: fmt.Sprintf("references invalid target node: %s", e.Target)})
		}
	}

	return issues
}

// Repair returns a copy of def without the elements reported by
// CheckIntegrity: the first node with a given id wins, and every edge that
// is duplicated, dangling or a self-loop is dropped.
func Repair(def domain.WorkflowDefinition) (domain.WorkflowDefinition, []Issue) {
	issues := CheckIntegrity(def)
	if len(issues) == 0 {
		return def, nil
	}

	out := def
	out.Nodes = make([]domain.Node, 0, len(def.Nodes))
	seenNodes := make(map[string]struct{}, len(def.Nodes))
	for _, n := range def.Nodes {
		if n.ID == "" || hasKey(seenNodes, n.ID) {
			continue
		}
		seenNodes[n.ID] = struct{}{}
		out.Nodes = append(out.Nodes, n)
	}

	out.Edges = make([]domain.Edge, 0, len(def.Edges))
	seenEdges := make(map[string]struct{}, len(def.Edges))
	for _, e := range def.Edges {
		if e.ID == "" || hasKey(seenEdges, e.ID) {
			continue
		}
		seenEdges[e.ID] = struct{}{}
		if e.Source == e.Target || !hasKey(seenNodes, e.Source) || !hasKey(seenNodes, e.Target) {
			continue
		}
		out.Edges = append(out.Edges, e)
	}

	return out, issues
}

// IntegrityError converts issues into an *AggregateError, or nil when there are none.
func IntegrityError(issues []Issue) error {
	errs := make([]error, 0, len(issues))
	for _, i := range issues {
		errs = append(errs, i.err())
	}
	return aggregate(errs)
}

func hasKey(set map[string]struct{}, k string) bool {
	_, ok := set[k]
	return ok
}
