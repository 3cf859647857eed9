package orion

import (
	"github.com/oliverbestmann/xylo/pulse"
	"github.com/oliverbestmann/xylo/pulse/commands"
)

var clearCommand global[*commands.ClearCommand]
var uiCommand global[*commands.UICommand]

func initializeCommands(ctx *pulse.Context) {
	clearCommand.set(commands.NewClear(ctx))

	ui, err := commands.NewUICommand(ctx)
	Handle(err, "initialize ui command")
	uiCommand.set(ui)
}

func releaseCommands() {
	if uiCommand.hasValue {
		uiCommand.Get().Release()
		uiCommand.reset()
	}

	clearCommand.reset()
}

// Clear fills the screen with a color and resets the depth buffer.
func Clear(screen *RenderTarget, color pulse.Color) {
	clearCommand.Get().Clear(screen, color)
}

// UI returns the shared command to draw text, rectangles and images
// on top of the frame. Call Flush on it at the end of Game.Draw.
func UI() *commands.UICommand {
	return uiCommand.Get()
}
