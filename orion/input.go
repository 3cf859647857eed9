package orion

import (
	"github.com/oliverbestmann/xylo/glimpse"
	"github.com/oliverbestmann/xylo/glm"
)

type KeyCode = glimpse.Key

func MousePosition() glm.Vec2f {
	inputState := currentInputState.Get()

	return glm.Vec2f{
		inputState.Mouse.CursorX,
		inputState.Mouse.CursorY,
	}
}

// MouseDelta returns the cursor movement since the previous frame.
func MouseDelta() glm.Vec2f {
	inputState := currentInputState.Get()

	return glm.Vec2f{
		inputState.Mouse.DeltaX,
		inputState.Mouse.DeltaY,
	}
}

func IsKeyPressed(key KeyCode) bool {
	inputState := currentInputState.Get()
	return inputState.Keys.Pressed[key]
}

func IsKeyJustPressed(key KeyCode) bool {
	inputState := currentInputState.Get()
	return inputState.Keys.JustPressed[key]
}

// Focus returns the focus state of the window.
func Focus() glimpse.FocusState {
	return currentInputState.Get().Focus
}
