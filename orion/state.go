package orion

import (
	"github.com/oliverbestmann/xylo/glimpse"
	"github.com/oliverbestmann/xylo/pulse"
)

var currentWindow global[glimpse.Window]
var currentContext global[*pulse.Context]
var currentView global[*pulse.View]
var currentInputState global[glimpse.InputState]
var currentFrameTimes global[*FrameTimes]

type global[T any] struct {
	value    T
	hasValue bool
}

func (g *global[T]) set(value T) *global[T] {
	if g.hasValue {
		panic("value already set")
	}

	g.value = value
	g.hasValue = true
	return g
}

func (g *global[T]) reset() {
	var tZero T
	g.value = tZero
	g.hasValue = false
}

func (g *global[T]) Get() T {
	if !g.hasValue {
		panic("must only be called after RunGame")
	}

	return g.value
}

// CurrentContext exposes the current webgpu context. This can be used
// to build your own pipelines and render passes.
func CurrentContext() *pulse.Context {
	return currentContext.Get()
}

// CurrentView exposes the surface configuration of the window.
func CurrentView() *pulse.View {
	return currentView.Get()
}

// Times returns the frame timings of the running game.
func Times() *FrameTimes {
	return currentFrameTimes.Get()
}

// CaptureCursor locks and hides the cursor for mouse look, or releases it.
func CaptureCursor(captured bool) {
	currentWindow.Get().CaptureCursor(captured)
}

// Exit closes the window after the current frame.
func Exit() {
	currentWindow.Get().Close()
}
