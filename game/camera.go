package game

import (
	"math"

	"github.com/oliverbestmann/xylo/glm"
)

const maxPitch = 89.9

// Camera is a free flying camera. Yaw and pitch are in degrees, a yaw of zero
// looks along -z, positive pitch looks down.
type Camera struct {
	Position glm.Vec3f
	Yaw      float32
	Pitch    float32

	// Speed in blocks per tick
	Speed float32

	// Sensitivity in degrees per pixel of mouse movement
	Sensitivity float32
}

// Movement holds the movement keys held during a tick.
type Movement struct {
	Forward, Backward bool
	Left, Right       bool
	Up, Down          bool
	Sprint            bool
}

func NewCamera(speed, sensitivity float32) *Camera {
	return &Camera{
		Position:    glm.Vec3f{0, 120, 0},
		Speed:       speed,
		Sensitivity: sensitivity,
	}
}

// Move moves the camera for one tick. Horizontal movement follows the yaw only.
func (c *Camera) Move(m Movement) {
	speed := c.Speed
	if m.Sprint {
		speed *= 3
	}

	step := func(yawDeg float32) {
		sin, cos := glm.Sincos(glm.DegToRad(yawDeg))
		c.Position[0] += sin * speed
		c.Position[2] -= cos * speed
	}

	if m.Forward {
		step(c.Yaw)
	}

	if m.Backward {
		step(c.Yaw + 180)
	}

	if m.Left {
		step(c.Yaw - 90)
	}

	if m.Right {
		step(c.Yaw + 90)
	}

	if m.Up {
		c.Position[1] += speed
	}

	if m.Down {
		c.Position[1] -= speed
	}
}

// Rotate applies a mouse movement in pixels.
func (c *Camera) Rotate(dx, dy float32) {
	c.Yaw += dx * c.Sensitivity
	c.Pitch = glm.Clamp(c.Pitch+dy*c.Sensitivity, -maxPitch, maxPitch)
}

func (c *Camera) View() glm.Mat4f {
	x, y, z := c.Position.XYZ()

	return glm.RotationXMat4[float32](glm.DegToRad(c.Pitch)).
		RotateY(glm.DegToRad(c.Yaw)).
		Translate(-x, -y, -z)
}

// Heading returns the axis the camera is mostly looking along.
func (c *Camera) Heading() string {
	return Heading(c.Yaw, c.Pitch)
}

func Heading(yaw, pitch float32) string {
	switch {
	case pitch < -45:
		return "+Y"
	case pitch > 45:
		return "-Y"
	}

	angle := math.Mod(float64(yaw), 360)
	if angle < 0 {
		angle += 360
	}

	switch {
	case angle >= 315 || angle < 45:
		return "-Z"
	case angle < 135:
		return "+X"
	case angle < 225:
		return "+Z"
	default:
		return "-X"
	}
}
