package orion

import (
	"fmt"
	"log/slog"

	"github.com/oliverbestmann/xylo/glimpse"
	"github.com/oliverbestmann/xylo/pulse"
)

type LoopState struct {
	Window        glimpse.Window
	Game          Game
	SurfaceWidth  uint32
	SurfaceHeight uint32
	Initialized   bool

	Times FrameTimes
}

func loopOnce(viewState *pulse.View, loopState *LoopState, inputState glimpse.UpdateInputState) error {
	FrameProfile.StartFrame()

	// get surface size for next frame
	surfaceWidth, surfaceHeight := loopState.Window.GetSize()

	if surfaceWidth == 0 || surfaceHeight == 0 {
		// minimized, keep polling events without rendering
		currentInputState.reset()
		currentInputState.set(inputState())
		return nil
	}

	// reconfigure surface if needed
	if loopState.SurfaceWidth != surfaceWidth || loopState.SurfaceHeight != surfaceHeight {
		slog.Debug("Resize surface",
			slog.Int("width", int(surfaceWidth)),
			slog.Int("height", int(surfaceHeight)),
		)

		viewState.Configure(surfaceWidth, surfaceHeight)

		loopState.SurfaceWidth = surfaceWidth
		loopState.SurfaceHeight = surfaceHeight
	}

	FrameProfile.StartGetCurrentTexture()

	// get the surface texture (the actual screen)
	surface, err := viewState.Surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("get current texture: %w", err)
	}

	defer func() {
		if surface != nil {
			surface.Release()
		}
	}()

	// get input after waiting for a texture to keep input lag low
	currentInputState.reset()
	currentInputState.set(inputState())

	loopState.Times.Tick()

	// run game.Initialize and game.Update
	err = performGameUpdate(loopState)
	if err != nil {
		return fmt.Errorf("update game: %w", err)
	}

	FrameProfile.StartGameDraw()

	surfaceView := surface.CreateView(nil)
	defer surfaceView.Release()

	loopState.Game.Draw(viewState.Target(surface, surfaceView))

	// present the rendered image
	viewState.Surface.Present()

	// we do not need to release the screen if present was successful
	surface = nil

	FrameProfile.EndFrame()
	FrameProfile.logSummary()

	return nil
}

func performGameUpdate(loopState *LoopState) error {
	FrameProfile.StartGameUpdate()

	if !loopState.Initialized {
		loopState.Initialized = true

		if err := loopState.Game.Initialize(); err != nil {
			return fmt.Errorf("initialize game: %w", err)
		}
	}

	if err := loopState.Game.Update(); err != nil {
		return fmt.Errorf("update game: %w", err)
	}

	return nil
}
