package main

import (
	"fmt"

	"github.com/aretw0/flowdesk/internal/presentation/tui"
	"github.com/spf13/cobra"
)

func newDescribeCmd(a *app) *cobra.Command {
	var (
		style string
		width int
		raw   bool
	)

	cmd := &cobra.Command{
		Use:   "describe <file|id>",
		Short: "Summarize a definition in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := a.resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			md := tui.DescribeMarkdown(def)
			if raw {
				_, err := fmt.Fprint(cmd.OutOrStdout(), md)
				return err
			}

			render, err := tui.NewRenderer(style, width)
			if err != nil {
				return err
			}
			text, err := render(md)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), text)
			return err
		},
	}

	cmd.Flags().StringVar(&style, "style", "", "Glamour style (dark, light, notty); detected when empty")
	cmd.Flags().IntVar(&width, "width", 100, "Word wrap width")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print markdown without rendering")
	return cmd
}
