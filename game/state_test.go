package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestControlsToggleMap(t *testing.T) {
	c := Controls{Captured: true}

	tr := c.Step(ControlInput{ToggleMap: true})
	assert.True(t, c.MapOpen)
	assert.False(t, c.Captured)
	assert.True(t, tr.CaptureChanged)
	assert.False(t, c.CanMove())
	assert.False(t, c.CanLook())

	tr = c.Step(ControlInput{ToggleMap: true})
	assert.False(t, c.MapOpen)
	assert.True(t, c.Captured)
	assert.True(t, tr.CaptureChanged)
	assert.True(t, c.CanMove())
	assert.True(t, c.CanLook())
}

func TestControlsEscape(t *testing.T) {
	c := Controls{MapOpen: true}

	// escape closes the map first
	tr := c.Step(ControlInput{Escape: true})
	assert.False(t, tr.Quit)
	assert.False(t, c.MapOpen)
	assert.True(t, c.Captured)
	assert.True(t, tr.CaptureChanged)

	tr = c.Step(ControlInput{Escape: true})
	assert.True(t, tr.Quit)
	assert.False(t, tr.CaptureChanged)
}

func TestControlsEscapeWinsOverToggle(t *testing.T) {
	c := Controls{MapOpen: true}

	tr := c.Step(ControlInput{Escape: true, ToggleMap: true})
	assert.False(t, tr.Quit)
	assert.False(t, c.MapOpen)
}

func TestControlsFocus(t *testing.T) {
	c := Controls{Captured: true}

	tr := c.Step(ControlInput{FocusLost: true})
	assert.False(t, c.Captured)
	assert.True(t, tr.CaptureChanged)
	assert.True(t, c.CanMove())
	assert.False(t, c.CanLook())

	tr = c.Step(ControlInput{FocusGained: true})
	assert.True(t, c.Captured)
	assert.True(t, tr.CaptureChanged)

	// no change, nothing to apply
	tr = c.Step(ControlInput{})
	assert.Equal(t, Transition{}, tr)
}

func TestControlsFocusGainedWithOpenMap(t *testing.T) {
	c := Controls{MapOpen: true}

	tr := c.Step(ControlInput{FocusLost: true})
	assert.False(t, tr.CaptureChanged)

	tr = c.Step(ControlInput{FocusGained: true})
	assert.False(t, c.Captured)
	assert.False(t, tr.CaptureChanged)
}
