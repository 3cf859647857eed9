package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/oliverbestmann/xylo/internal/config"
)

// Setup configures the global slog logger based on the environment.
func Setup(cfg *config.Config) *slog.Logger {
	return SetupWithWriter(cfg, os.Stderr)
}

func SetupWithWriter(cfg *config.Config, w io.Writer) *slog.Logger {
	level := cfg.Level()

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
	}

	var handler slog.Handler
	if cfg.Production() {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}
