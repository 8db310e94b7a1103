package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/flowdesk/pkg/domain"
	"github.com/aretw0/flowdesk/pkg/schema"
)

// DescribeMarkdown summarizes a definition as markdown: header, nodes table,
// connections table and the validation outcome.
func DescribeMarkdown(def domain.WorkflowDefinition) string {
	var sb strings.Builder

	name := def.Name
	if name == "" {
		name = "(unnamed)"
	}
	fmt.Fprintf(&sb, "# %s\n\n", name)
	if def.Description != "" {
		fmt.Fprintf(&sb, "%s\n\n", def.Description)
	}
	fmt.Fprintf(&sb, "- **ID:** `%s`\n- **Version:** %d\n", def.ID, def.Version)
	if def.Category != "" {
		fmt.Fprintf(&sb, "- **Category:** %s\n", def.Category)
	}
	if len(def.Tags) > 0 {
		fmt.Fprintf(&sb, "- **Tags:** %s\n", strings.Join(def.Tags, ", "))
	}

	fmt.Fprintf(&sb, "\n## Nodes (%d)\n\n", len(def.Nodes))
	if len(def.Nodes) > 0 {
		sb.WriteString("| ID | Type | Name | Position |\n|---|---|---|---|\n")
		for _, n := range def.Nodes {
			fmt.Fprintf(&sb, "| `%s` | %s | %s | %.0f, %.0f |\n", n.ID, n.Type, cell(n.Name), n.Position.X, n.Position.Y)
		}
	}

	fmt.Fprintf(&sb, "\n## Connections (%d)\n\n", len(def.Edges))
	if len(def.Edges) > 0 {
		sb.WriteString("| ID | From | To | Label | Condition |\n|---|---|---|---|---|\n")
		for _, e := range def.Edges {
			fmt.Fprintf(&sb, "| `%s` | `%s` | `%s` | %s | %s |\n", e.ID, e.Source, e.Target, cell(e.Label), cell(e.Condition))
		}
	}

	sb.WriteString("\n## Validation\n\n")
	errs := schema.ValidationErrors(schema.ValidateDefinition(def))
	if len(errs) == 0 {
		sb.WriteString("Ready to publish.\n")
	}
	for _, err := range errs {
		fmt.Fprintf(&sb, "- %s\n", err)
	}

	return sb.String()
}

func cell(s string) string {
	if s == "" {
		return "-"
	}
	return strings.ReplaceAll(s, "|", "\\|")
}
