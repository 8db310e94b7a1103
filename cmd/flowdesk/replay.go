package main

import (
	"fmt"

	"github.com/aretw0/flowdesk/internal/cli"
	"github.com/aretw0/flowdesk/pkg/domain"
	"github.com/aretw0/flowdesk/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
)

func newReplayCmd(a *app) *cobra.Command {
	var (
		from    string
		metrics bool
		output  definitionOutput
	)

	cmd := &cobra.Command{
		Use:   "replay <script.yaml>",
		Short: "Apply a recorded gesture script and print the resulting definition",
		Long: `Replays editor gestures (add, click, handle, drag, rename, undo, redo, zoom...) from a YAML script
against an empty canvas or an existing definition, then serializes the result.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			script, err := cli.ReadScript(args[0])
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			m, err := observability.NewMetrics(reg)
			if err != nil {
				return err
			}
			s := cli.NewSession(a.cfg, a.logger, domain.ChainHooks(
				observability.LogHooks(a.logger),
				m.Hooks(),
			))

			if from != "" {
				def, err := a.resolve(ctx, from)
				if err != nil {
					return err
				}
				if err := s.Load(def); err != nil {
					return err
				}
			}

			report, err := cli.Replay(ctx, s, script)
			if err != nil {
				return err
			}
			for _, r := range report.Rejected {
				a.logger.Warn("connection rejected", "detail", r)
			}
			a.logger.Info("replay finished", "steps", report.Steps, "rejected", len(report.Rejected))

			def := s.Serialize()
			if from == "" && script.Name != "" {
				def.Name = script.Name
			}
			if err := output.write(cmd, a, def); err != nil {
				return err
			}

			if metrics {
				families, err := reg.Gather()
				if err != nil {
					return err
				}
				for _, mf := range families {
					if _, err := expfmt.MetricFamilyToText(cmd.ErrOrStderr(), mf); err != nil {
						return fmt.Errorf("failed to write metrics: %w", err)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Start from this definition (file or store id)")
	cmd.Flags().BoolVar(&metrics, "metrics", false, "Print session metrics to stderr in Prometheus text format")
	output.register(cmd)
	return cmd
}
