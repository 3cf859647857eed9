package main

import (
	"fmt"
	"image/png"
	"log/slog"
	"os"

	"github.com/oliverbestmann/xylo/game"
	"github.com/oliverbestmann/xylo/world"
	"github.com/spf13/cobra"
)

type mapFlags struct {
	x, z int
	size int
	out  string
}

func newMapCommand(root *rootFlags) *cobra.Command {
	var flags mapFlags

	cmd := &cobra.Command{
		Use:   "map",
		Short: "Render the biome map around a position to a png file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, *root)
			if err != nil {
				return err
			}

			if flags.size <= 0 {
				return fmt.Errorf("size must be positive, got %d", flags.size)
			}

			return renderMap(cmd, game.ResolveSeed(cfg.World.Seed), flags)
		},
	}

	cmd.Flags().IntVar(&flags.x, "x", 0, "World x coordinate of the map center")
	cmd.Flags().IntVar(&flags.z, "z", 0, "World z coordinate of the map center")
	cmd.Flags().IntVar(&flags.size, "size", game.MapSamples, "Edge length of the map in blocks")
	cmd.Flags().StringVar(&flags.out, "out", "map.png", "Output png file")

	return cmd
}

func renderMap(cmd *cobra.Command, seed int64, flags mapFlags) error {
	// the biome layout does not depend on the vegetation models
	gen := world.NewGenerator(seed, nil)

	img, err := game.RenderBiomeMap(cmd.Context(), gen, flags.x, flags.z, flags.size)
	if err != nil {
		return err
	}

	fp, err := os.Create(flags.out)
	if err != nil {
		return fmt.Errorf("create %q: %w", flags.out, err)
	}

	if err := png.Encode(fp, img); err != nil {
		_ = fp.Close()
		return fmt.Errorf("encode map: %w", err)
	}

	if err := fp.Close(); err != nil {
		return fmt.Errorf("close %q: %w", flags.out, err)
	}

	slog.Info(
		"Biome map written",
		slog.String("path", flags.out),
		slog.Int64("seed", seed),
		slog.Int("x", flags.x),
		slog.Int("z", flags.z),
		slog.Int("size", flags.size),
	)

	return nil
}
