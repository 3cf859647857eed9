package glimpse

import "github.com/oliverbestmann/webgpu/wgpu"

type Window interface {
	GetSize() (uint32, uint32)
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Run(render func(input UpdateInputState) error) error

	// CaptureCursor hides and locks the cursor for mouse look. The next cursor
	// event after a change does not produce a movement delta.
	CaptureCursor(captured bool)

	// Close requests the window to close after the current frame.
	Close()

	Terminate()
}

type WindowOptions struct {
	Width  int
	Height int
	Title  string

	// write a cpu profile to the working directory while the window is open
	Profile bool
}
