package main

import (
	"context"
	"log/slog"

	"github.com/aretw0/flowdesk/internal/cli"
	"github.com/aretw0/flowdesk/internal/config"
	"github.com/aretw0/flowdesk/pkg/domain"
	"github.com/aretw0/flowdesk/pkg/ports"
	"github.com/spf13/cobra"
)

// app holds what every subcommand needs once flags are parsed.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "flowdesk",
		Short:         "Flowdesk edits and inspects workflow definitions",
		Long:          `Flowdesk is the editing core of a visual workflow designer. The CLI validates, renders and replays edits on workflow definitions.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "flowdesk.yaml", "Config file (yaml, json or toml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json")
	rootCmd.PersistentFlags().String("store", "", "Definition store: memory, file or redis")
	rootCmd.PersistentFlags().String("store-path", "", "Directory of the file store")

	rootCmd.AddCommand(
		newValidateCmd(a),
		newGraphCmd(a),
		newDescribeCmd(a),
		newReplayCmd(a),
		newTemplateCmd(a),
		newListCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	if v, _ := flags.GetString("log-level"); v != "" {
		cfg.Log.Level = v
	}
	if v, _ := flags.GetString("log-format"); v != "" {
		cfg.Log.Format = v
	}
	if v, _ := flags.GetString("store"); v != "" {
		cfg.Store.Driver = v
	}
	if v, _ := flags.GetString("store-path"); v != "" {
		cfg.Store.Path = v
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := cli.CreateLogger(cmd.ErrOrStderr(), cfg.Log)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	logger.Debug("config loaded", "path", path, "store", cfg.Store.Driver)
	return nil
}

// withStore opens the configured store for the duration of fn.
func (a *app) withStore(fn func(ports.DefinitionStore) error) error {
	store, closeFn, err := cli.OpenStore(a.cfg.Store)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeFn(); err != nil {
			a.logger.Warn("failed to close store", "err", err)
		}
	}()
	return fn(store)
}

// resolve loads a definition from a file path or a store id.
func (a *app) resolve(ctx context.Context, ref string) (domain.WorkflowDefinition, error) {
	var def domain.WorkflowDefinition
	err := a.withStore(func(store ports.DefinitionStore) error {
		var err error
		def, err = cli.ResolveDefinition(ctx, store, ref)
		return err
	})
	return def, err
}
