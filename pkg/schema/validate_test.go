package schema

import (
	"errors"
	"strings"
	"testing"

	"github.com/aretw0/flowdesk/pkg/domain"
)

func approvalLike() domain.WorkflowDefinition {
	return domain.WorkflowDefinition{
		ID:   "wf",
		Name: "approval",
		Nodes: []domain.Node{
			{ID: "start", Type: domain.NodeTypeStart, Name: "Start"},
			{ID: "review", Type: domain.NodeTypeHumanTask, Name: "Review", Config: domain.Config{"assignee": "manager"}},
			{ID: "check", Type: domain.NodeTypeDecision, Name: "Check", Config: domain.Config{"condition": "${approved}"}},
			{ID: "ok", Type: domain.NodeTypeEnd, Name: "Approved"},
			{ID: "ko", Type: domain.NodeTypeEnd, Name: "Rejected"},
		},
		Edges: []domain.Edge{
			{ID: "e1", Source: "start", Target: "review"},
			{ID: "e2", Source: "review", Target: "check"},
			{ID: "e3", Source: "check", Target: "ok", Label: "Yes"},
			{ID: "e4", Source: "check", Target: "ko", Label: "No"},
		},
	}
}

func TestValidateDefinition_Valid(t *testing.T) {
	if err := ValidateDefinition(approvalLike()); err != nil {
		t.Fatalf("ValidateDefinition() error = %v, want nil", err)
	}
}

func TestValidateDefinition_Rules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *domain.WorkflowDefinition)
		want   string
	}{
		{
			name: "missing start",
			mutate: func(d *domain.WorkflowDefinition) {
				d.Nodes[0].Type = domain.NodeTypeAction
			},
			want: "must have a start node",
		},
		{
			name: "two starts",
			mutate: func(d *domain.WorkflowDefinition) {
				d.Nodes = append(d.Nodes, domain.Node{ID: "start2", Type: domain.NodeTypeStart})
			},
			want: "only have one start node",
		},
		{
			name: "no end",
			mutate: func(d *domain.WorkflowDefinition) {
				d.Nodes[3].Type = domain.NodeTypeAction
				d.Nodes[4].Type = domain.NodeTypeAction
			},
			want: "at least one end node",
		},
		{
			name: "decision with one branch",
			mutate: func(d *domain.WorkflowDefinition) {
				d.Edges = d.Edges[:3]
			},
			want: "must have at least 2 outgoing edges",
		},
		{
			name: "dangling edge",
			mutate: func(d *domain.WorkflowDefinition) {
				d.Edges = append(d.Edges, domain.Edge{ID: "e5", Source: "check", Target: "ghost"})
			},
			want: "invalid target node: ghost",
		},
		{
			name: "edge into start",
			mutate: func(d *domain.WorkflowDefinition) {
				d.Edges = append(d.Edges, domain.Edge{ID: "e5", Source: "review", Target: "start"})
			},
			want: "cannot be a connection target",
		},
		{
			name: "edge out of end",
			mutate: func(d *domain.WorkflowDefinition) {
				d.Edges = append(d.Edges, domain.Edge{ID: "e5", Source: "ok", Target: "review"})
			},
			want: "cannot start a connection",
		},
		{
			name: "unknown type",
			mutate: func(d *domain.WorkflowDefinition) {
				d.Nodes[1].Type = "teleport"
			},
			want: `unknown node type "teleport"`,
		},
		{
			name: "malformed config",
			mutate: func(d *domain.WorkflowDefinition) {
				d.Nodes[1].Config = domain.Config{"escalation": "tomorrow"}
			},
			want: "decode human_task config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := approvalLike()
			tt.mutate(&def)

			err := ValidateDefinition(def)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !errors.Is(err, domain.ErrInvalidDefinition) {
				t.Errorf("error %v does not match ErrInvalidDefinition", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want substring %q", err.Error(), tt.want)
			}
		})
	}
}

func TestValidateDefinition_AggregatesEverything(t *testing.T) {
	err := ValidateDefinition(domain.WorkflowDefinition{})
	errs := ValidationErrors(err)
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors (start, end), got %d: %v", len(errs), err)
	}
	if !strings.HasPrefix(err.Error(), "2 validation errors") {
		t.Errorf("unexpected message: %q", err.Error())
	}
}
