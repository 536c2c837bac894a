// Package phys is a small 3-D rigid-body world: semi-implicit Euler
// integration, linear damping, and impulse-based contact resolution
// for spheres against spheres, static boxes, and a ground plane. The
// frame loop talks to it only through body handles and Step.
package phys

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Handle identifies a body owned by a World.
type Handle int

type body struct {
	shape   Shape
	pos     mgl64.Vec3
	vel     mgl64.Vec3
	angVel  mgl64.Vec3
	orient  mgl64.Quat
	invMass float64
	damping float64
	static  bool
}

// World owns all bodies and advances them on a fixed step with
// catch-up. It is not safe for concurrent use; the frame loop owns it
// for the duration of a tick.
type World struct {
	gravity     mgl64.Vec3
	restitution float64
	friction    float64

	bodies map[Handle]*body
	order  []Handle
	nextID Handle
	accum  float64
}

// NewWorld creates a world with gravity of the given downward
// magnitude along -Y.
func NewWorld(gravity float64) *World {
	return &World{
		gravity:     mgl64.Vec3{0, -gravity, 0},
		restitution: 0.6,
		friction:    0.98,
		bodies:      make(map[Handle]*body),
	}
}

// SetGravity sets the downward acceleration magnitude.
func (w *World) SetGravity(g float64) {
	w.gravity = mgl64.Vec3{0, -g, 0}
}

// SetRestitution sets contact bounciness (0..1).
func (w *World) SetRestitution(e float64) {
	if e < 0 {
		e = 0
	}
	if e > 1 {
		e = 1
	}
	w.restitution = e
}

// CreateBody adds a body and returns its handle. A mass <= 0 makes
// the body static: it never moves and ignores velocity and damping.
func (w *World) CreateBody(mass float64, shape Shape, pos, vel mgl64.Vec3, damping float64) Handle {
	b := &body{
		shape:   shape,
		pos:     pos,
		vel:     vel,
		orient:  mgl64.QuatIdent(),
		damping: damping,
	}
	if mass <= 0 || shape.Kind == ShapePlane {
		b.static = true
		b.vel = mgl64.Vec3{}
	} else {
		b.invMass = 1 / mass
	}

	w.nextID++
	h := w.nextID
	w.bodies[h] = b
	w.order = append(w.order, h)
	return h
}

// RemoveBody removes the body; unknown handles are no-ops.
func (w *World) RemoveBody(h Handle) {
	if _, ok := w.bodies[h]; !ok {
		return
	}
	delete(w.bodies, h)
	for i, id := range w.order {
		if id == h {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of live bodies.
func (w *World) Len() int {
	return len(w.bodies)
}

// ReadTransform returns the body's position and orientation. The
// second return is false for unknown handles.
func (w *World) ReadTransform(h Handle) (mgl64.Vec3, mgl64.Quat, bool) {
	b, ok := w.bodies[h]
	if !ok {
		return mgl64.Vec3{}, mgl64.QuatIdent(), false
	}
	return b.pos, b.orient, true
}

// Step advances the simulation in fixedDt increments using realDt as
// the catch-up budget, running at most maxSubsteps increments. Excess
// budget beyond the bound is dropped so a slow frame cannot snowball
// into ever-longer catch-up work.
func (w *World) Step(fixedDt, realDt float64, maxSubsteps int) {
	if fixedDt <= 0 || realDt < 0 || maxSubsteps <= 0 {
		return
	}
	w.accum += realDt
	steps := 0
	for w.accum >= fixedDt && steps < maxSubsteps {
		w.substep(fixedDt)
		w.accum -= fixedDt
		steps++
	}
	if w.accum > fixedDt {
		w.accum = fixedDt
	}
}

func (w *World) substep(dt float64) {
	for _, h := range w.order {
		b := w.bodies[h]
		if b.static {
			continue
		}
		b.vel = b.vel.Add(w.gravity.Mul(dt))
		if b.damping > 0 {
			k := 1 - b.damping*dt
			if k < 0 {
				k = 0
			}
			b.vel = b.vel.Mul(k)
		}
		b.pos = b.pos.Add(b.vel.Mul(dt))
		b.integrateOrientation(dt)
	}

	for i := 0; i < len(w.order); i++ {
		bi := w.bodies[w.order[i]]
		for j := i + 1; j < len(w.order); j++ {
			w.resolvePair(bi, w.bodies[w.order[j]])
		}
	}
}

func (b *body) integrateOrientation(dt float64) {
	if b.angVel.Len() == 0 {
		return
	}
	spin := mgl64.Quat{W: 0, V: b.angVel}
	dq := spin.Mul(b.orient).Scale(0.5 * dt)
	b.orient = b.orient.Add(dq).Normalize()
}

func (w *World) resolvePair(a, b *body) {
	if a.static && b.static {
		return
	}
	// Order so a sphere comes first where it matters.
	switch {
	case a.shape.Kind == ShapeSphere && b.shape.Kind == ShapeSphere:
		w.sphereSphere(a, b)
	case a.shape.Kind == ShapeSphere && b.shape.Kind == ShapeBox:
		w.sphereBox(a, b)
	case a.shape.Kind == ShapeBox && b.shape.Kind == ShapeSphere:
		w.sphereBox(b, a)
	case a.shape.Kind == ShapeSphere && b.shape.Kind == ShapePlane:
		w.spherePlane(a, b)
	case a.shape.Kind == ShapePlane && b.shape.Kind == ShapeSphere:
		w.spherePlane(b, a)
	}
}

// sphereSphere applies an elastic impulse along the contact normal
// and separates the overlap in proportion to mass.
func (w *World) sphereSphere(a, b *body) {
	delta := b.pos.Sub(a.pos)
	dist := delta.Len()
	minDist := a.shape.Radius + b.shape.Radius
	if dist >= minDist || dist == 0 {
		return
	}
	n := delta.Mul(1 / dist)

	invSum := a.invMass + b.invMass
	if invSum == 0 {
		return
	}

	// Impulse scalar j = (1+e)*vn / (1/mA + 1/mB), only when closing.
	relVel := a.vel.Sub(b.vel)
	vn := relVel.Dot(n)
	if vn > 0 {
		j := (1+w.restitution)*vn/invSum
		a.vel = a.vel.Sub(n.Mul(j * a.invMass))
		b.vel = b.vel.Add(n.Mul(j * b.invMass))
	}

	overlap := minDist - dist
	const margin = 1e-3
	if a.static {
		b.pos = b.pos.Add(n.Mul(overlap + margin))
	} else if b.static {
		a.pos = a.pos.Sub(n.Mul(overlap + margin))
	} else {
		a.pos = a.pos.Sub(n.Mul((overlap+margin)*a.invMass/invSum))
		b.pos = b.pos.Add(n.Mul((overlap+margin)*b.invMass/invSum))
	}
}

// sphereBox resolves a dynamic sphere against a static axis-aligned
// box by pushing out of the closest surface point.
func (w *World) sphereBox(s, box *body) {
	if s.static {
		return
	}
	lo := box.pos.Sub(box.shape.Half)
	hi := box.pos.Add(box.shape.Half)
	closest := mgl64.Vec3{
		clamp(s.pos.X(), lo.X(), hi.X()),
		clamp(s.pos.Y(), lo.Y(), hi.Y()),
		clamp(s.pos.Z(), lo.Z(), hi.Z()),
	}
	delta := s.pos.Sub(closest)
	dist := delta.Len()
	if dist >= s.shape.Radius {
		return
	}

	var n mgl64.Vec3
	if dist > 0 {
		n = delta.Mul(1 / dist)
	} else {
		// Center inside the box: push up.
		n = mgl64.Vec3{0, 1, 0}
		dist = 0
	}
	s.pos = s.pos.Add(n.Mul(s.shape.Radius - dist))

	vn := s.vel.Dot(n)
	if vn < 0 {
		s.vel = s.vel.Sub(n.Mul((1+w.restitution)*vn))
	}
}

// spherePlane keeps a dynamic sphere above the plane, bouncing with
// restitution and rolling while in contact.
func (w *World) spherePlane(s, plane *body) {
	if s.static {
		return
	}
	bottom := s.pos.Y() - s.shape.Radius
	if bottom >= plane.pos.Y() {
		return
	}
	s.pos[1] = plane.pos.Y() + s.shape.Radius

	if s.vel.Y() < 0 {
		vy := -s.vel.Y() * w.restitution
		// Kill tiny rebounds so bodies come to rest.
		if vy < 0.1 {
			vy = 0
		}
		s.vel[1] = vy
	}

	// Contact friction on the horizontal components.
	s.vel[0] *= w.friction
	s.vel[2] *= w.friction

	// Roll without slipping: w = n x v / r.
	up := mgl64.Vec3{0, 1, 0}
	s.angVel = up.Cross(s.vel).Mul(1 / s.shape.Radius)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
