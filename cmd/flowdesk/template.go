package main

import (
	"github.com/aretw0/flowdesk"
	"github.com/spf13/cobra"
)

func newTemplateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Generate definitions from built-in templates",
	}

	var (
		name   string
		role   string
		output definitionOutput
	)
	approval := &cobra.Command{
		Use:   "approval",
		Short: "A single approval step with approve and reject outcomes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return output.write(cmd, a, flowdesk.NewApprovalTemplate(name, role))
		},
	}
	approval.Flags().StringVar(&name, "name", "Approval workflow", "Workflow name")
	approval.Flags().StringVar(&role, "role", "manager", "Role assigned to the approval task")
	output.register(approval)

	cmd.AddCommand(approval)
	return cmd
}
