package control

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/soldane/ballistic/common"
	"github.com/soldane/ballistic/scene"
)

const (
	orbitMinDistance = 2.0
	orbitMaxDistance = 120.0
	orbitMinPitch    = -math.Pi/2 + 0.05
	orbitMaxPitch    = math.Pi/2 - 0.05
)

// Orbit swings the camera around a fixed target: drag to rotate,
// wheel to dolly. Motion is smoothed toward the requested pose the
// same way the 2-D follow camera smoothed toward its target.
type Orbit struct {
	cam    *scene.Camera
	target mgl64.Vec3

	yaw      float64
	pitch    float64
	distance float64

	goalYaw      float64
	goalPitch    float64
	goalDistance float64

	// smoothing factor (0..1). higher -> faster follow.
	smooth float64
}

func NewOrbit(cam *scene.Camera, target mgl64.Vec3, distance float64) *Orbit {
	distance = common.Clamp(distance, orbitMinDistance, orbitMaxDistance)
	o := &Orbit{
		cam:          cam,
		target:       target,
		yaw:          math.Pi / 4,
		pitch:        -0.5,
		distance:     distance,
		smooth:       0.25,
		goalYaw:      math.Pi / 4,
		goalPitch:    -0.5,
		goalDistance: distance,
	}
	o.apply()
	return o
}

// Drag rotates by a mouse delta in pixels.
func (o *Orbit) Drag(dx, dy float64) {
	o.goalYaw -= dx * 0.01
	o.goalPitch = common.Clamp(o.goalPitch-dy*0.01, orbitMinPitch, orbitMaxPitch)
}

// Dolly moves along the view axis by wheel ticks; positive zooms in.
func (o *Orbit) Dolly(ticks float64) {
	o.goalDistance = common.Clamp(o.goalDistance*math.Pow(0.9, ticks), orbitMinDistance, orbitMaxDistance)
}

// Distance returns the current camera distance from the target.
func (o *Orbit) Distance() float64 {
	return o.distance
}

// Update eases toward the requested pose and repositions the camera.
func (o *Orbit) Update() {
	o.yaw = common.Lerp(o.yaw, o.goalYaw, o.smooth)
	o.pitch = common.Lerp(o.pitch, o.goalPitch, o.smooth)
	o.distance = common.Lerp(o.distance, o.goalDistance, o.smooth)
	o.apply()
}

func (o *Orbit) apply() {
	cp := math.Cos(o.pitch)
	dir := mgl64.Vec3{math.Sin(o.yaw) * cp, math.Sin(o.pitch), math.Cos(o.yaw) * cp}
	o.cam.Position = o.target.Sub(dir.Mul(o.distance))
	o.cam.Yaw = o.yaw
	o.cam.Pitch = o.pitch
}
