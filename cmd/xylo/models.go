package main

import (
	"log/slog"

	"github.com/oliverbestmann/xylo/world"
	"github.com/spf13/cobra"
)

func newModelsCommand(root *rootFlags) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "models",
		Short: "Write the builtin vegetation models to the models directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, *root)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("dir") {
				cfg.ModelsDir = dir
			}

			if err := world.WriteModels(cfg.ModelsDir); err != nil {
				return err
			}

			slog.Info("Models written", slog.String("dir", cfg.ModelsDir))
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Target directory, defaults to the configured models directory")

	return cmd
}
