package phys

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const fixedStep = 1.0 / 60.0

func TestBodyFallsUnderGravity(t *testing.T) {
	w := NewWorld(9.8)
	h := w.CreateBody(1, Sphere(0.5), mgl64.Vec3{0, 10, 0}, mgl64.Vec3{}, 0)

	for i := 0; i < 60; i++ {
		w.Step(fixedStep, fixedStep, 3)
	}

	pos, _, ok := w.ReadTransform(h)
	if !ok {
		t.Fatalf("body should exist")
	}
	if pos.Y() >= 10 {
		t.Fatalf("body did not fall: y=%v", pos.Y())
	}
}

func TestStepAccumulatesUntilFixedStep(t *testing.T) {
	w := NewWorld(9.8)
	h := w.CreateBody(1, Sphere(0.5), mgl64.Vec3{0, 10, 0}, mgl64.Vec3{}, 0)

	// A real dt below the fixed step must not advance anything yet.
	w.Step(fixedStep, fixedStep/4, 3)
	pos, _, _ := w.ReadTransform(h)
	if pos.Y() != 10 {
		t.Fatalf("partial budget advanced the body: y=%v", pos.Y())
	}

	// Three more quarters complete one fixed step.
	for i := 0; i < 3; i++ {
		w.Step(fixedStep, fixedStep/4, 3)
	}
	pos, _, _ = w.ReadTransform(h)
	if pos.Y() >= 10 {
		t.Fatalf("accumulated budget should advance the body: y=%v", pos.Y())
	}
}

func TestStepBoundsCatchUpWork(t *testing.T) {
	// A huge real dt must run exactly maxSubsteps increments, no more.
	a := NewWorld(9.8)
	ha := a.CreateBody(1, Sphere(0.5), mgl64.Vec3{0, 100, 0}, mgl64.Vec3{}, 0)
	a.Step(fixedStep, 10, 3)

	b := NewWorld(9.8)
	hb := b.CreateBody(1, Sphere(0.5), mgl64.Vec3{0, 100, 0}, mgl64.Vec3{}, 0)
	for i := 0; i < 3; i++ {
		b.Step(fixedStep, fixedStep, 1)
	}

	pa, _, _ := a.ReadTransform(ha)
	pb, _, _ := b.ReadTransform(hb)
	if math.Abs(pa.Y()-pb.Y()) > 1e-9 {
		t.Fatalf("bounded catch-up diverged: %v vs %v", pa.Y(), pb.Y())
	}
}

func TestRemoveBody(t *testing.T) {
	w := NewWorld(9.8)
	h := w.CreateBody(1, Sphere(0.5), mgl64.Vec3{}, mgl64.Vec3{}, 0)
	if w.Len() != 1 {
		t.Fatalf("expected 1 body, got %d", w.Len())
	}

	w.RemoveBody(h)
	if w.Len() != 0 {
		t.Fatalf("expected 0 bodies, got %d", w.Len())
	}
	if _, _, ok := w.ReadTransform(h); ok {
		t.Fatalf("removed body should not be readable")
	}

	// Unknown handles are no-ops.
	w.RemoveBody(h)
	w.RemoveBody(Handle(999))
}

func TestSphereRestsOnPlane(t *testing.T) {
	w := NewWorld(9.8)
	w.CreateBody(0, Plane(), mgl64.Vec3{}, mgl64.Vec3{}, 0)
	h := w.CreateBody(1, Sphere(0.5), mgl64.Vec3{0, 3, 0}, mgl64.Vec3{}, 0)

	for i := 0; i < 600; i++ {
		w.Step(fixedStep, fixedStep, 3)
	}

	pos, _, _ := w.ReadTransform(h)
	if pos.Y() < 0.5-1e-6 {
		t.Fatalf("sphere sank through the plane: y=%v", pos.Y())
	}
	if pos.Y() > 0.6 {
		t.Fatalf("sphere did not settle: y=%v", pos.Y())
	}
}

func TestOverlappingSpheresSeparate(t *testing.T) {
	w := NewWorld(0)
	a := w.CreateBody(1, Sphere(1), mgl64.Vec3{0, 5, 0}, mgl64.Vec3{}, 0)
	b := w.CreateBody(1, Sphere(1), mgl64.Vec3{0.5, 5, 0}, mgl64.Vec3{}, 0)

	w.Step(fixedStep, fixedStep, 1)

	pa, _, _ := w.ReadTransform(a)
	pb, _, _ := w.ReadTransform(b)
	if dist := pb.Sub(pa).Len(); dist < 2 {
		t.Fatalf("spheres still overlap: dist=%v", dist)
	}
}

func TestSphereBouncesOffStaticBox(t *testing.T) {
	w := NewWorld(9.8)
	w.CreateBody(0, Box(5, 0.5, 5), mgl64.Vec3{0, 0, 0}, mgl64.Vec3{}, 0)
	h := w.CreateBody(1, Sphere(0.5), mgl64.Vec3{0, 4, 0}, mgl64.Vec3{}, 0)

	lowest := math.Inf(1)
	for i := 0; i < 300; i++ {
		w.Step(fixedStep, fixedStep, 3)
		pos, _, _ := w.ReadTransform(h)
		if pos.Y() < lowest {
			lowest = pos.Y()
		}
	}
	// Box top is at 0.5, so the sphere center never goes below 1.
	if lowest < 1-1e-6 {
		t.Fatalf("sphere penetrated the box: lowest center y=%v", lowest)
	}
}
