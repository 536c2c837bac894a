package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/soldane/ballistic/common"
)

// Camera is a perspective camera posed by position plus yaw/pitch.
// Yaw 0 faces +Z; yaw rotates about +Y and pitch about the local
// right axis, clamped short of straight up/down.
type Camera struct {
	FOV    float64 // vertical field of view in radians
	Aspect float64
	Near   float64
	Far    float64

	Position mgl64.Vec3
	Yaw      float64
	Pitch    float64
}

// NewCamera builds a camera from a vertical field of view in degrees.
func NewCamera(fovDegrees, aspect float64) *Camera {
	return &Camera{
		FOV:    mgl64.DegToRad(fovDegrees),
		Aspect: aspect,
		Near:   0.1,
		Far:    500,
	}
}

// SetAspect updates the aspect ratio, e.g. on window resize.
func (c *Camera) SetAspect(aspect float64) {
	if aspect > 0 {
		c.Aspect = aspect
	}
}

// Forward returns the look direction.
func (c *Camera) Forward() mgl64.Vec3 {
	cp := math.Cos(c.Pitch)
	return mgl64.Vec3{math.Sin(c.Yaw) * cp, math.Sin(c.Pitch), math.Cos(c.Yaw) * cp}
}

// FlatForward returns the look direction projected onto the ground
// plane. Movement happens along this axis so looking down does not
// slow walking.
func (c *Camera) FlatForward() mgl64.Vec3 {
	return mgl64.Vec3{math.Sin(c.Yaw), 0, math.Cos(c.Yaw)}
}

// Right returns the horizontal right axis.
func (c *Camera) Right() mgl64.Vec3 {
	return mgl64.Vec3{-math.Cos(c.Yaw), 0, math.Sin(c.Yaw)}
}

const maxPitch = math.Pi/2 - 0.01

// Look applies a mouse delta in pixels scaled by sensitivity.
// Positive dx turns right, positive dy looks down.
func (c *Camera) Look(dx, dy, sensitivity float64) {
	c.Yaw -= dx * sensitivity
	c.Pitch = common.Clamp(c.Pitch-dy*sensitivity, -maxPitch, maxPitch)
}

// LookAt points the camera at a world position.
func (c *Camera) LookAt(target mgl64.Vec3) {
	dir := target.Sub(c.Position)
	if dir.Len() == 0 {
		return
	}
	dir = dir.Normalize()
	c.Pitch = common.Clamp(math.Asin(dir.Y()), -maxPitch, maxPitch)
	c.Yaw = math.Atan2(dir.X(), dir.Z())
}

// ViewMatrix returns the world-to-camera transform.
func (c *Camera) ViewMatrix() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position, c.Position.Add(c.Forward()), mgl64.Vec3{0, 1, 0})
}

// ProjMatrix returns the perspective projection.
func (c *Camera) ProjMatrix() mgl64.Mat4 {
	return mgl64.Perspective(c.FOV, c.Aspect, c.Near, c.Far)
}
