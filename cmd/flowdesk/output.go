package main

import (
	"fmt"

	"github.com/aretw0/flowdesk/internal/cli"
	"github.com/aretw0/flowdesk/pkg/adapters/file"
	"github.com/aretw0/flowdesk/pkg/domain"
	"github.com/aretw0/flowdesk/pkg/ports"
	"github.com/spf13/cobra"
)

// definitionOutput holds the flags shared by commands that produce a definition.
type definitionOutput struct {
	out    string
	format string
	save   bool
}

func (o *definitionOutput) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.out, "out", "o", "", "Write the definition to a file instead of stdout")
	cmd.Flags().StringVar(&o.format, "format", "", "Output format: json or yaml (default from --out extension, else json)")
	cmd.Flags().BoolVar(&o.save, "save", false, "Also save the definition to the configured store")
}

func (o *definitionOutput) write(cmd *cobra.Command, a *app, def domain.WorkflowDefinition) error {
	format := file.FormatFromPath(o.out)
	switch o.format {
	case "":
	case string(file.FormatJSON), string(file.FormatYAML):
		format = file.Format(o.format)
	default:
		return fmt.Errorf("unknown format %q", o.format)
	}

	data, err := file.Encode(def, format)
	if err != nil {
		return err
	}
	if err := cli.WriteOutput(cmd.OutOrStdout(), o.out, data); err != nil {
		return err
	}

	if !o.save {
		return nil
	}
	return a.withStore(func(store ports.DefinitionStore) error {
		if err := store.Save(cmd.Context(), def); err != nil {
			return err
		}
		a.logger.Info("definition saved", "id", def.ID, "version", def.Version)
		return nil
	})
}
