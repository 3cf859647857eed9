package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("invalid configuration")

// Config holds all settings of the game.
type Config struct {
	Window WindowConfig `yaml:"window"`
	World  WorldConfig  `yaml:"world"`
	Camera CameraConfig `yaml:"camera"`

	// ModelsDir holds the cached vegetation model files
	ModelsDir string `yaml:"models_dir"`

	// TexturesDir optionally holds png files replacing the generated block textures
	TexturesDir string `yaml:"textures_dir"`

	// UploadsPerFrame limits the chunk meshes uploaded to the gpu each frame
	UploadsPerFrame int `yaml:"uploads_per_frame"`

	DiscordAppID string `yaml:"discord_app_id"`

	LogLevel    string `yaml:"log_level"`
	Environment string `yaml:"environment"`

	// Profile writes a cpu profile while the game is running
	Profile bool `yaml:"profile"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	VSync  bool   `yaml:"vsync"`
	MSAA   bool   `yaml:"msaa"`
}

type WorldConfig struct {
	// Seed of the world, zero picks a random seed
	Seed int64 `yaml:"seed"`

	// RenderDistance in chunks
	RenderDistance int `yaml:"render_distance"`

	GenerateWorkers int `yaml:"generate_workers"`
	MeshWorkers     int `yaml:"mesh_workers"`
}

type CameraConfig struct {
	// FieldOfView in degrees
	FieldOfView float32 `yaml:"fov"`

	Sensitivity float32 `yaml:"sensitivity"`

	// Speed in blocks per tick
	Speed float32 `yaml:"speed"`
}

func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  1920,
			Height: 1080,
			Title:  "Xylo",
			VSync:  true,
			MSAA:   false,
		},
		World: WorldConfig{
			RenderDistance:  16,
			GenerateWorkers: 4,
			MeshWorkers:     2,
		},
		Camera: CameraConfig{
			FieldOfView: 65,
			Sensitivity: 0.15,
			Speed:       0.45,
		},
		ModelsDir:       "models",
		UploadsPerFrame: 16,
		LogLevel:        "info",
		Environment:     "development",
	}
}

// Load reads the configuration from the yaml file at path on top of the
// defaults and applies environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %q: %w", path, err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnvOverrides applies XYLO_* environment variables.
func (c *Config) applyEnvOverrides() error {
	// kept for compatibility with older launch scripts
	if id := os.Getenv("DISCORD_APP_ID"); id != "" {
		c.DiscordAppID = id
	}

	if id := os.Getenv("XYLO_DISCORD_APP_ID"); id != "" {
		c.DiscordAppID = id
	}

	if value := os.Getenv("XYLO_LOG_LEVEL"); value != "" {
		c.LogLevel = value
	}

	if value := os.Getenv("XYLO_ENVIRONMENT"); value != "" {
		c.Environment = value
	}

	if value := os.Getenv("XYLO_MODELS_DIR"); value != "" {
		c.ModelsDir = value
	}

	if value := os.Getenv("XYLO_TEXTURES_DIR"); value != "" {
		c.TexturesDir = value
	}

	ints := []struct {
		key    string
		target *int
	}{
		{"XYLO_WIDTH", &c.Window.Width},
		{"XYLO_HEIGHT", &c.Window.Height},
		{"XYLO_RENDER_DISTANCE", &c.World.RenderDistance},
		{"XYLO_GENERATE_WORKERS", &c.World.GenerateWorkers},
		{"XYLO_MESH_WORKERS", &c.World.MeshWorkers},
		{"XYLO_UPLOADS_PER_FRAME", &c.UploadsPerFrame},
	}

	for _, env := range ints {
		value := os.Getenv(env.key)
		if value == "" {
			continue
		}

		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("parse %s: %w", env.key, err)
		}

		*env.target = parsed
	}

	if value := os.Getenv("XYLO_SEED"); value != "" {
		seed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("parse XYLO_SEED: %w", err)
		}

		c.World.Seed = seed
	}

	if value := os.Getenv("XYLO_FOV"); value != "" {
		fov, err := strconv.ParseFloat(value, 32)
		if err != nil {
			return fmt.Errorf("parse XYLO_FOV: %w", err)
		}

		c.Camera.FieldOfView = float32(fov)
	}

	bools := []struct {
		key    string
		target *bool
	}{
		{"XYLO_VSYNC", &c.Window.VSync},
		{"XYLO_MSAA", &c.Window.MSAA},
		{"XYLO_PROFILE", &c.Profile},
	}

	for _, env := range bools {
		value := os.Getenv(env.key)
		if value == "" {
			continue
		}

		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("parse %s: %w", env.key, err)
		}

		*env.target = parsed
	}

	return nil
}

func (c *Config) Validate() error {
	var errs []error

	positive := func(name string, value int) {
		if value <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", name, value))
		}
	}

	positive("window.width", c.Window.Width)
	positive("window.height", c.Window.Height)
	positive("world.generate_workers", c.World.GenerateWorkers)
	positive("world.mesh_workers", c.World.MeshWorkers)
	positive("uploads_per_frame", c.UploadsPerFrame)

	if c.World.RenderDistance < 2 || c.World.RenderDistance > 64 {
		errs = append(errs, fmt.Errorf("world.render_distance must be in 2..64, got %d", c.World.RenderDistance))
	}

	if c.Camera.FieldOfView < 30 || c.Camera.FieldOfView > 120 {
		errs = append(errs, fmt.Errorf("camera.fov must be in 30..120, got %v", c.Camera.FieldOfView))
	}

	if c.Camera.Sensitivity <= 0 {
		errs = append(errs, fmt.Errorf("camera.sensitivity must be positive, got %v", c.Camera.Sensitivity))
	}

	if c.Camera.Speed <= 0 {
		errs = append(errs, fmt.Errorf("camera.speed must be positive, got %v", c.Camera.Speed))
	}

	if _, ok := parseLogLevel(c.LogLevel); !ok {
		errs = append(errs, fmt.Errorf("unknown log_level %q", c.LogLevel))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}

	return nil
}

// Level returns the configured log level, info if unknown.
func (c *Config) Level() slog.Level {
	level, _ := parseLogLevel(c.LogLevel)
	return level
}

func (c *Config) Production() bool {
	return c.Environment == "production"
}

func parseLogLevel(level string) (slog.Level, bool) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
