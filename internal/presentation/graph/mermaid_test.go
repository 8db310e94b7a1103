package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/flowdesk/internal/presentation/graph"
	"github.com/aretw0/flowdesk/pkg/domain"
)

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		def      domain.WorkflowDefinition
		contains []string
	}{
		{
			name: "Start and End Shapes",
			def: domain.WorkflowDefinition{Nodes: []domain.Node{
				{ID: "start", Type: domain.NodeTypeStart, Name: "Start"},
				{ID: "done", Type: domain.NodeTypeEnd, Name: "Done"},
			}},
			contains: []string{
				`start(("Start"))`,
				`done((("Done")))`,
			},
		},
		{
			name: "Decision and Human Task Shapes",
			def: domain.WorkflowDefinition{Nodes: []domain.Node{
				{ID: "check", Type: domain.NodeTypeDecision, Name: "Check"},
				{ID: "approve", Type: domain.NodeTypeHumanTask, Name: "Approve"},
				{ID: "wait", Type: domain.NodeTypeTimer, Name: "Wait"},
			}},
			contains: []string{
				`check{"Check"}`,
				`approve[/"Approve"/]`,
				`wait(["Wait"])`,
			},
		},
		{
			name: "Unnamed Node Falls Back To ID",
			def: domain.WorkflowDefinition{Nodes: []domain.Node{
				{ID: "call", Type: domain.NodeTypeAction},
			}},
			contains: []string{`call[["call"]]`},
		},
		{
			name: "ID Sanitization",
			def: domain.WorkflowDefinition{Nodes: []domain.Node{
				{ID: "path/to/file.md", Name: "File"},
				{ID: "hyphen-ated", Name: "Hyphen"},
			}},
			contains: []string{
				`path_to_file_md["File"]`,
				`hyphen_ated["Hyphen"]`,
			},
		},
		{
			name: "Edge Labels And Conditions",
			def: domain.WorkflowDefinition{
				Nodes: []domain.Node{{ID: "A"}, {ID: "B"}, {ID: "C"}, {ID: "D"}},
				Edges: []domain.Edge{
					{ID: "e1", Source: "A", Target: "B", Label: "Yes"},
					{ID: "e2", Source: "A", Target: "C", Condition: `input == "no"`},
					{ID: "e3", Source: "C", Target: "D"},
				},
			},
			contains: []string{
				`A -- "Yes" --> B`,
				`A -- "input == 'no'" --> C`,
				`C --> D`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.def, nil)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("GenerateMermaid() = \n%v\nWant substring: %v", got, want)
				}
			}
			if strings.Contains(got, "Overlay Styles") {
				t.Errorf("GenerateMermaid() without overlay emitted overlay styles")
			}
		})
	}
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	def := domain.WorkflowDefinition{
		Nodes: []domain.Node{
			{ID: "a-1", Type: domain.NodeTypeStart},
			{ID: "b", Type: domain.NodeTypeAction},
			{ID: "c", Type: domain.NodeTypeEnd},
		},
		Edges: []domain.Edge{
			{ID: "e1", Source: "a-1", Target: "b"},
			{ID: "e2", Source: "b", Target: "c"},
		},
	}

	got := graph.GenerateMermaid(def, &graph.GraphOverlay{
		SelectedNodes:  []string{"a-1", "a-1"},
		SelectedEdges:  []string{"e2"},
		ConnectingFrom: "b",
	})

	for _, want := range []string{
		"classDef selected",
		"class a_1 selected;",
		"class b connecting;",
		"linkStyle 1 stroke:#fbc02d",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("GenerateMermaid() = \n%v\nWant substring: %v", got, want)
		}
	}
	if n := strings.Count(got, "class a_1 selected;"); n != 1 {
		t.Errorf("selected node styled %d times, want 1", n)
	}
	if strings.Contains(got, "linkStyle 0") {
		t.Errorf("unselected edge was styled")
	}
}
