package orion

import (
	"fmt"
	"log/slog"
)

// Handle panics if err is set. Use it for setup steps that can only fail due
// to programming mistakes, like invalid shaders or pipeline descriptors.
func Handle(err error, desc string, args ...any) {
	if err == nil {
		return
	}

	text := fmt.Sprintf(desc, args...)
	slog.Error("Unrecoverable error", slog.String("during", text), slog.String("err", err.Error()))

	panic(fmt.Errorf("%s: %w", text, err))
}
