package main

import (
	"fmt"

	"github.com/aretw0/flowdesk/internal/presentation/tui"
	"github.com/aretw0/flowdesk/pkg/schema"
	"github.com/spf13/cobra"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file|id>",
		Short: "Check a definition against the publishing rules",
		Long:  `Reports every integrity and publishing problem of a definition: dangling or self-looping edges, unknown node types, invalid node config, a missing or duplicated start node, missing end nodes and decisions with fewer than two branches.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := a.resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			errs := schema.ValidationErrors(schema.ValidateDefinition(def))
			if len(errs) == 0 {
				fmt.Fprintln(out, tui.Success(fmt.Sprintf("%s is valid", args[0])))
				return nil
			}
			for _, e := range errs {
				fmt.Fprintln(out, tui.Failure(e.Error()))
			}
			return fmt.Errorf("validation failed with %d error(s)", len(errs))
		},
	}
}
