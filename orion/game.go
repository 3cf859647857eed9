package orion

import "github.com/oliverbestmann/xylo/pulse"

type RenderTarget = pulse.RenderTarget

type Game interface {
	// Initialize is called once before the first update, after the gpu
	// context is available.
	Initialize() error

	Update() error

	// Draw renders the current frame to the screen.
	Draw(screen *RenderTarget)
}
