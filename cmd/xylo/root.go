package main

import (
	"fmt"
	"log/slog"

	"github.com/oliverbestmann/xylo/game"
	"github.com/oliverbestmann/xylo/internal/config"
	"github.com/oliverbestmann/xylo/internal/logger"
	"github.com/oliverbestmann/xylo/orion"
	"github.com/oliverbestmann/xylo/presence"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath     string
	seed           int64
	renderDistance int
	width          int
	height         int
	logLevel       string
	profile        bool
}

func newRootCommand() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:           "xylo",
		Short:         "Fly over an endless voxel landscape",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}

			return runGame(cfg)
		},
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Path to a yaml config file")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().Int64Var(&flags.seed, "seed", 0, "World seed, 0 picks a random seed")

	cmd.Flags().IntVar(&flags.renderDistance, "render-distance", 0, "Render distance in chunks")
	cmd.Flags().IntVar(&flags.width, "width", 0, "Window width")
	cmd.Flags().IntVar(&flags.height, "height", 0, "Window height")
	cmd.Flags().BoolVar(&flags.profile, "profile", false, "Write a cpu profile while running")

	cmd.AddCommand(newMapCommand(&flags))
	cmd.AddCommand(newModelsCommand(&flags))

	return cmd
}

// loadConfig reads the config file and environment, then applies all flags
// explicitly set on the command line.
func loadConfig(cmd *cobra.Command, flags rootFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}

	changed := func(name string) bool {
		flag := cmd.Flags().Lookup(name)
		return flag != nil && flag.Changed
	}

	if changed("seed") {
		cfg.World.Seed = flags.seed
	}

	if changed("render-distance") {
		cfg.World.RenderDistance = flags.renderDistance
	}

	if changed("width") {
		cfg.Window.Width = flags.width
	}

	if changed("height") {
		cfg.Window.Height = flags.height
	}

	if changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}

	if changed("profile") {
		cfg.Profile = flags.profile
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Setup(cfg)

	return cfg, nil
}

func runGame(cfg *config.Config) error {
	g, err := game.New(cfg, presence.New(cfg.DiscordAppID))
	if err != nil {
		return err
	}

	defer func() {
		if err := g.Close(); err != nil {
			slog.Warn("Failed to close game", slog.String("err", err.Error()))
		}
	}()

	err = orion.RunGame(orion.RunGameOptions{
		Game:         g,
		WindowWidth:  cfg.Window.Width,
		WindowHeight: cfg.Window.Height,
		WindowTitle:  cfg.Window.Title,
		MSAA:         cfg.Window.MSAA,
		VSync:        cfg.Window.VSync,
		Profile:      cfg.Profile,
	})

	if err != nil {
		return fmt.Errorf("run game: %w", err)
	}

	return nil
}
