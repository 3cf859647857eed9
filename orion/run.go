package orion

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/oliverbestmann/xylo/glimpse"
	"github.com/oliverbestmann/xylo/pulse"
)

type RunGameOptions struct {
	// game to run. This is the only field that is required
	Game Game

	WindowWidth  int
	WindowHeight int
	WindowTitle  string

	MSAA  bool
	VSync bool

	// write a cpu profile while the game is running
	Profile bool
}

func RunGame(opts RunGameOptions) error {
	game := opts.Game
	if game == nil {
		return errors.New("game must not be nil")
	}

	if opts.WindowWidth == 0 {
		opts.WindowWidth = 1920
	}

	if opts.WindowHeight == 0 {
		opts.WindowHeight = 1080
	}

	if opts.WindowTitle == "" {
		opts.WindowTitle = "Xylo"
	}

	// create a new window
	win, err := glimpse.NewWindow(glimpse.WindowOptions{
		Width:   opts.WindowWidth,
		Height:  opts.WindowHeight,
		Title:   opts.WindowTitle,
		Profile: opts.Profile,
	})
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}

	defer win.Terminate()

	// initialize the webgpu device
	ctx, err := pulse.New(win.SurfaceDescriptor())
	if err != nil {
		return fmt.Errorf("initializing wgpu: %w", err)
	}

	defer ctx.Release()

	// initialize the view
	view := pulse.NewView(ctx, pulse.ViewOptions{
		MSAA:  opts.MSAA,
		Depth: true,
		VSync: opts.VSync,
	})

	defer view.Release()

	// release the games gpu resources before the device goes away
	if closer, ok := game.(io.Closer); ok {
		defer func() {
			if err := closer.Close(); err != nil {
				slog.Warn("Failed to close game", slog.String("err", err.Error()))
			}
		}()
	}

	loopState := &LoopState{
		Window: win,
		Game:   game,
	}

	currentWindow.set(win)
	currentContext.set(ctx)
	currentView.set(view)
	currentFrameTimes.set(&loopState.Times)

	defer resetGlobals()

	initializeCommands(ctx)
	defer releaseCommands()

	slog.Info(
		"Game loop started",
		slog.Int("width", opts.WindowWidth),
		slog.Int("height", opts.WindowHeight),
		slog.Bool("msaa", opts.MSAA),
		slog.Bool("vsync", opts.VSync),
	)

	return win.Run(func(inputState glimpse.UpdateInputState) error {
		// do the actual rendering here
		return loopOnce(view, loopState, inputState)
	})
}

func resetGlobals() {
	currentWindow.reset()
	currentContext.reset()
	currentView.reset()
	currentInputState.reset()
	currentFrameTimes.reset()
}
