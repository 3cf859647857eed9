package pulse

import (
	"image/color"

	"github.com/oliverbestmann/xylo/glm"
)

var ColorWhite = ColorRGBA(1, 1, 1, 1)
var ColorBlack = ColorRGBA(0, 0, 0, 1)
var ColorTransparent = ColorRGBA(0, 0, 0, 0)

// Color is a straight rgba color. The surface is not srgb, the values are
// written to the target as they are.
// The default value of a Color value is fully opaque white.
type Color struct {
	r1, g1, b1, a1 float32
}

func ColorRGBA(r, g, b, a float32) Color {
	return Color{
		r1: r - 1,
		g1: g - 1,
		b1: b - 1,
		a1: a - 1,
	}
}

// ColorFromRGBA converts an 8 bit color into a Color.
func ColorFromRGBA(c color.RGBA) Color {
	return ColorRGBA(
		float32(c.R)/255,
		float32(c.G)/255,
		float32(c.B)/255,
		float32(c.A)/255,
	)
}

func (c Color) ToVec() glm.Vec4f {
	return glm.Vec4f{
		c.r1 + 1,
		c.g1 + 1,
		c.b1 + 1,
		c.a1 + 1,
	}
}

func (c Color) ToWGPU() [4]float32 {
	return c.ToVec().ToWGPU()
}

// Components returns the color components.
func (c Color) Components() (r, g, b, a float32) {
	return c.ToVec().XYZW()
}

func (c Color) Alpha() float32 {
	return c.a1 + 1
}

// WithAlpha returns a new color with the alpha component set to the given value.
func (c Color) WithAlpha(alpha float32) Color {
	c.a1 = alpha - 1
	return c
}
