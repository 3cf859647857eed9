package glm

import (
	"golang.org/x/mobile/exp/f32"
)

// Sincos returns the sine and cosine of r in single precision.
func Sincos(r Rad) (sin, cos float32) {
	return f32.Sin(float32(r)), f32.Cos(float32(r))
}
