package control

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/soldane/ballistic/scene"
)

// FirstPersonConfig are the controller tunables.
type FirstPersonConfig struct {
	// Damping is the exponential horizontal damping coefficient.
	Damping float64
	// Gravity is the downward acceleration of the camera's own
	// kinematic model; it is independent of the physics world.
	Gravity float64
	// Accel is the movement acceleration along the desired direction.
	Accel float64
	// JumpSpeed is added to vertical velocity on jump.
	JumpSpeed float64
	// EyeHeight is the ground clamp: the camera never goes below it.
	EyeHeight float64
}

// FirstPerson drives the camera from movement state. It is a
// standalone kinematic integrator; the camera is not a physics body
// and the controller never consults the physics world.
type FirstPerson struct {
	cfg  FirstPersonConfig
	cam  *scene.Camera
	move *Movement

	vel     mgl64.Vec3
	canJump bool
}

func NewFirstPerson(cam *scene.Camera, move *Movement, cfg FirstPersonConfig) *FirstPerson {
	cam.Position[1] = cfg.EyeHeight
	return &FirstPerson{
		cfg:     cfg,
		cam:     cam,
		move:    move,
		canJump: true,
	}
}

// SetConfig swaps the movement tunables. Velocity and airborne state
// carry over unchanged.
func (f *FirstPerson) SetConfig(cfg FirstPersonConfig) {
	f.cfg = cfg
}

// Velocity returns the current controller velocity. The x/z
// components are in controller space (right/forward), not world.
func (f *FirstPerson) Velocity() mgl64.Vec3 {
	return f.vel
}

// Update advances the controller by dt seconds. dt can be zero (a
// no-op) or large (after a pause); both are safe.
func (f *FirstPerson) Update(dt float64) {
	if dt < 0 {
		dt = 0
	}

	if f.move.TakeJump() && f.canJump {
		f.vel[1] += f.cfg.JumpSpeed
		f.canJump = false
	}

	// Damp the horizontal components. The factor is floored at zero
	// so a huge dt stops the camera instead of reversing it.
	k := 1 - f.cfg.Damping*dt
	if k < 0 {
		k = 0
	}
	f.vel[0] *= k
	f.vel[2] *= k

	f.vel[1] -= f.cfg.Gravity * dt

	dx, dz := f.move.Direction()
	if dx != 0 || dz != 0 {
		// Normalize so diagonals are not faster. The guard above
		// keeps a zero vector away from Normalize.
		dir := mgl64.Vec2{dx, dz}.Normalize()
		f.vel[0] -= dir.X() * f.cfg.Accel * dt
		f.vel[2] -= dir.Y() * f.cfg.Accel * dt
	}

	// Velocity accumulates negated, so translation negates it back.
	f.cam.Position = f.cam.Position.
		Add(f.cam.Right().Mul(-f.vel[0] * dt)).
		Add(f.cam.FlatForward().Mul(-f.vel[2] * dt))
	f.cam.Position[1] += f.vel[1] * dt

	if f.cam.Position.Y() < f.cfg.EyeHeight {
		f.cam.Position[1] = f.cfg.EyeHeight
		f.vel[1] = 0
		f.canJump = true
	}
}
