package main

import (
	"github.com/aretw0/flowdesk/internal/cli"
	"github.com/aretw0/flowdesk/internal/presentation/graph"
	"github.com/spf13/cobra"
)

func newGraphCmd(a *app) *cobra.Command {
	var (
		out      string
		selected []string
	)

	cmd := &cobra.Command{
		Use:   "graph <file|id>",
		Short: "Export the workflow as a Mermaid diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := a.resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			var overlay *graph.GraphOverlay
			if len(selected) > 0 {
				overlay = &graph.GraphOverlay{SelectedNodes: selected}
			}
			return cli.WriteOutput(cmd.OutOrStdout(), out, []byte(graph.GenerateMermaid(def, overlay)))
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the diagram to a file instead of stdout")
	cmd.Flags().StringSliceVar(&selected, "select", nil, "Node ids to highlight")
	return cmd
}
