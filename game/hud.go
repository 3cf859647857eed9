package game

import (
	"fmt"
	"time"

	"github.com/oliverbestmann/xylo/glm"
	"github.com/oliverbestmann/xylo/world"
)

// HUD tracks the values shown in the overlay. Frame rate and speed are
// measured over one second windows.
type HUD struct {
	frames int
	fps    int
	speed  float32

	windowStart time.Time
	lastPos     glm.Vec3f
	started     bool
}

// Tick counts a frame at the given time with the camera at pos. It reports
// whether a measurement window was completed.
func (h *HUD) Tick(now time.Time, pos glm.Vec3f) bool {
	if !h.started {
		h.started = true
		h.windowStart = now
		h.lastPos = pos
	}

	h.frames++

	if now.Sub(h.windowStart) < time.Second {
		return false
	}

	h.fps = h.frames
	h.speed = pos.Sub(h.lastPos).Length()

	h.frames = 0
	h.windowStart = now
	h.lastPos = pos

	return true
}

func (h *HUD) FPS() int {
	return h.fps
}

// Speed returns the distance in blocks moved during the last window.
func (h *HUD) Speed() float32 {
	return h.speed
}

func (h *HUD) Text(pos glm.Vec3f, biome world.Biome, heading string) string {
	return fmt.Sprintf(
		"FPS: %d\nXYZ: %.1f / %.1f / %.1f\nBiome: %s\nDir: %s\nSpeed: %.1f m/s\n[M] Map",
		h.fps, pos[0], pos[1], pos[2], biome, heading, h.speed,
	)
}
