package graph

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/flowdesk/pkg/domain"
)

// GraphOverlay contains editor state to highlight on the graph.
type GraphOverlay struct {
	SelectedNodes  []string
	SelectedEdges  []string
	ConnectingFrom string
}

// GenerateMermaid produces a Mermaid flowchart for a workflow definition.
// It applies semantic styling:
// - Start / End: ((Circle)) / (((Double circle)))
// - Decision: {Rhombus}
// - Human task: [/Parallelogram/]
// - Timer: ([Stadium])
// - Action / Script / Sub-workflow: [[Subroutine]]
// - Rule: {{Hexagon}}
// - Notification: >Flag]
// - Parallel split / join: [/Trapezoid\] / [\Inverted trapezoid/]
// Edges carry their label, or their condition when unlabeled.
// Overlay styles are applied if provided.
func GenerateMermaid(def domain.WorkflowDefinition, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, node := range def.Nodes {
		opener, closer := shape(node.Type)
		label := node.Name
		if label == "" {
			label = node.ID
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", sanitizeMermaidID(node.ID), opener, escapeLabel(label), closer)
	}

	selectedLinks := []int{}
	for i, edge := range def.Edges {
		arrow := "-->"
		text := edge.Label
		if text == "" {
			text = edge.Condition
		}
		if text != "" {
			arrow = fmt.Sprintf("-- \"%s\" -->", escapeLabel(text))
		}
		fmt.Fprintf(&sb, "    %s %s %s\n", sanitizeMermaidID(edge.Source), arrow, sanitizeMermaidID(edge.Target))

		if overlay != nil && slices.Contains(overlay.SelectedEdges, edge.ID) {
			selectedLinks = append(selectedLinks, i)
		}
	}

	if overlay == nil {
		return sb.String()
	}

	sb.WriteString("\n    %% Overlay Styles\n")
	// Force black text (color:#000) for high-contrast on light backgrounds.
	sb.WriteString("    classDef selected fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
	sb.WriteString("    classDef connecting fill:#e1f5fe,stroke:#01579b,stroke-width:2px,stroke-dasharray:5 5,color:#000;\n")

	seen := make(map[string]bool)
	for _, id := range overlay.SelectedNodes {
		safeID := sanitizeMermaidID(id)
		if safeID == "" || seen[safeID] {
			continue
		}
		seen[safeID] = true
		fmt.Fprintf(&sb, "    class %s selected;\n", safeID)
	}
	if overlay.ConnectingFrom != "" {
		fmt.Fprintf(&sb, "    class %s connecting;\n", sanitizeMermaidID(overlay.ConnectingFrom))
	}
	for _, i := range selectedLinks {
		fmt.Fprintf(&sb, "    linkStyle %d stroke:#fbc02d,stroke-width:4px;\n", i)
	}

	return sb.String()
}

func shape(t domain.NodeType) (opener, closer string) {
	switch t {
	case domain.NodeTypeStart:
		return "((", "))"
	case domain.NodeTypeEnd:
		return "(((", ")))"
	case domain.NodeTypeDecision:
		return "{", "}"
	case domain.NodeTypeHumanTask:
		return "[/", "/]"
	case domain.NodeTypeTimer:
		return "([", "])"
	case domain.NodeTypeAction, domain.NodeTypeScript, domain.NodeTypeSubWorkflow:
		return "[[", "]]"
	case domain.NodeTypeRule:
		return "{{", "}}"
	case domain.NodeTypeNotification:
		return ">", "]"
	case domain.NodeTypeParallelSplit:
		return "[/", "\\]"
	case domain.NodeTypeParallelJoin:
		return "[\\", "/]"
	default:
		return "[", "]"
	}
}

// Mermaid labels are quoted; double quotes inside them end the label early.
func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
