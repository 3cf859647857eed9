package glimpse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeysState(t *testing.T) {
	var keys KeysState

	keys.press(KeyW)
	assert.True(t, keys.Pressed[KeyW])
	assert.True(t, keys.JustPressed[KeyW])

	keys.nextTick()
	assert.True(t, keys.Pressed[KeyW])
	assert.False(t, keys.JustPressed[KeyW])

	keys.release(KeyW)
	assert.False(t, keys.Pressed[KeyW])
	assert.True(t, keys.JustReleased[KeyW])

	keys.nextTick()
	assert.False(t, keys.JustReleased[KeyW])
}

func TestMouseDelta(t *testing.T) {
	var mouse MouseState

	// the first event only records the position
	mouse.position(100, 100)
	assert.Zero(t, mouse.DeltaX)
	assert.Zero(t, mouse.DeltaY)

	mouse.position(110, 95)
	mouse.position(115, 90)
	assert.Equal(t, float32(15), mouse.DeltaX)
	assert.Equal(t, float32(-10), mouse.DeltaY)
	assert.Equal(t, float32(115), mouse.CursorX)
	assert.Equal(t, float32(90), mouse.CursorY)

	mouse.nextTick()
	assert.Zero(t, mouse.DeltaX)
	assert.Zero(t, mouse.DeltaY)

	// after a cursor warp no delta is produced
	mouse.forgetPosition()
	mouse.position(500, 500)
	assert.Zero(t, mouse.DeltaX)
	assert.Zero(t, mouse.DeltaY)

	mouse.position(501, 502)
	assert.Equal(t, float32(1), mouse.DeltaX)
	assert.Equal(t, float32(2), mouse.DeltaY)
}

func TestMouseButtons(t *testing.T) {
	var mouse MouseState

	mouse.press(0)
	assert.True(t, mouse.Pressed[0])
	assert.True(t, mouse.JustPressed[0])

	mouse.nextTick()
	mouse.release(0)
	assert.False(t, mouse.Pressed[0])
	assert.True(t, mouse.JustReleased[0])
}

func TestFocusState(t *testing.T) {
	focus := FocusState{Focused: true}

	focus.set(true)
	assert.False(t, focus.JustFocused)

	focus.set(false)
	assert.False(t, focus.Focused)
	assert.True(t, focus.JustUnfocused)

	focus.nextTick()
	assert.False(t, focus.JustUnfocused)

	focus.set(true)
	assert.True(t, focus.JustFocused)
}

func TestInputStateIsCopiedByValue(t *testing.T) {
	var state InputState
	state.Mouse.position(1, 1)
	state.Mouse.position(3, 1)

	snapshot := state
	state.nextTick()

	assert.Equal(t, float32(2), snapshot.Mouse.DeltaX)
	assert.Zero(t, state.Mouse.DeltaX)
}

func TestKeyNames(t *testing.T) {
	assert.Equal(t, "LeftShift", KeyLeftShift.String())
	assert.Equal(t, "Escape", KeyEscape.String())
	assert.Equal(t, "Unknown", KeyUnknown.String())
	assert.Equal(t, "Key(200)", Key(200).String())
}
