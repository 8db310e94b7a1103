package flowdesk

import (
	"fmt"

	"github.com/aretw0/flowdesk/pkg/domain"
	"github.com/aretw0/flowdesk/pkg/dsl"
)

// NewApprovalTemplate builds a single-step approval workflow: start, a
// human task assigned to approverRole, a decision on the "approved" form
// field, and one end node per outcome.
func NewApprovalTemplate(name, approverRole string) domain.WorkflowDefinition {
	b := dsl.New(name).
		Describe(fmt.Sprintf("Simple approval workflow requiring %s approval", approverRole)).
		Category("approval").
		Tags("template", "approval").
		InputSchema(map[string]any{
			"type": "object",
			"properties": map[string]any{
				"request_id":   map[string]any{"type": "string"},
				"request_type": map[string]any{"type": "string"},
				"description":  map[string]any{"type": "string"},
			},
		}).
		OutputSchema(map[string]any{
			"type": "object",
			"properties": map[string]any{
				"approved": map[string]any{"type": "boolean"},
				"comments": map[string]any{"type": "string"},
			},
		})

	b.Add("start").Start().At(100, 200).Go("approval")

	b.Add("approval").
		HumanTask(approverRole).
		Named("Approval Required").
		Describe("Review and approve or reject").
		At(300, 200).
		Set("dueOffset", "+2d").
		Set("formSchema", map[string]any{
			"type": "object",
			"properties": map[string]any{
				"approved": map[string]any{"type": "boolean", "title": "Approved"},
				"comments": map[string]any{"type": "string", "title": "Comments"},
			},
			"required": []any{"approved"},
		}).
		Go("decision")

	b.Add("decision").
		Decision("${approved}").
		Named("Check Approval").
		At(500, 200).
		Branch("Yes", "approved == true", "approved_end").
		Branch("No", "approved == false", "rejected_end")

	b.Add("approved_end").End().Named("Approved").At(700, 100)
	b.Add("rejected_end").End().Named("Rejected").At(700, 300)

	return b.MustBuild()
}
