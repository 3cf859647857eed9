package pulse

import (
	"image/color"
	"testing"

	"github.com/oliverbestmann/xylo/glm"
	"github.com/stretchr/testify/assert"
)

func TestColorDefaultIsWhite(t *testing.T) {
	var c Color
	assert.Equal(t, ColorWhite, c)
	assert.Equal(t, glm.Vec4f{1, 1, 1, 1}, c.ToVec())
}

func TestColorFromRGBA(t *testing.T) {
	c := ColorFromRGBA(color.RGBA{R: 255, G: 51, B: 0, A: 255})

	r, g, b, a := c.Components()
	assert.InDelta(t, 1.0, r, 1e-6)
	assert.InDelta(t, 0.2, g, 1e-6)
	assert.InDelta(t, 0.0, b, 1e-6)
	assert.InDelta(t, 1.0, a, 1e-6)
}

func TestColorWithAlpha(t *testing.T) {
	c := ColorBlack.WithAlpha(0.5)
	assert.InDelta(t, 0.5, c.Alpha(), 1e-6)
	assert.Equal(t, [4]float32{0, 0, 0, 0.5}, c.ToWGPU())
}
