package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/flowdesk"
	"github.com/aretw0/flowdesk/internal/presentation/tui"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	var banner bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number of flowdesk",
		// Skip config loading.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			v := strings.TrimSpace(flowdesk.Version)
			if banner {
				tui.PrintBanner(cmd.OutOrStdout(), v)
				return
			}
			fmt.Fprintf(cmd.OutOrStdout(), "flowdesk version %s\n", v)
		},
	}
	cmd.Flags().BoolVar(&banner, "banner", false, "Print the banner")
	return cmd
}
