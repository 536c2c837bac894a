package control

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/soldane/ballistic/common"
	"github.com/soldane/ballistic/scene"
)

func TestOrbitKeepsDistanceFromTarget(t *testing.T) {
	cam := scene.NewCamera(60, 1)
	target := mgl64.Vec3{1, 2, 3}
	o := NewOrbit(cam, target, 20)

	for i := 0; i < 30; i++ {
		o.Drag(15, -8)
		o.Update()
		if d := cam.Position.Sub(target).Len(); !common.Approx(d, o.Distance(), 1e-9) {
			t.Fatalf("camera left the orbit sphere: %v vs %v", d, o.Distance())
		}
	}

	// The camera always faces the target.
	fwd := cam.Forward()
	toTarget := target.Sub(cam.Position).Normalize()
	if fwd.Dot(toTarget) < 0.999 {
		t.Fatalf("camera not facing target: dot=%v", fwd.Dot(toTarget))
	}
}

func TestOrbitDollyClamps(t *testing.T) {
	cam := scene.NewCamera(60, 1)
	o := NewOrbit(cam, mgl64.Vec3{}, 20)

	o.Dolly(1e3)
	for i := 0; i < 200; i++ {
		o.Update()
	}
	if o.Distance() < orbitMinDistance-1e-6 {
		t.Fatalf("dolly went below minimum: %v", o.Distance())
	}

	o.Dolly(-1e3)
	for i := 0; i < 200; i++ {
		o.Update()
	}
	if o.Distance() > orbitMaxDistance+1e-6 {
		t.Fatalf("dolly went beyond maximum: %v", o.Distance())
	}
}

func TestOrbitPitchClamps(t *testing.T) {
	cam := scene.NewCamera(60, 1)
	o := NewOrbit(cam, mgl64.Vec3{}, 20)

	for i := 0; i < 500; i++ {
		o.Drag(0, -50)
		o.Update()
	}
	if cam.Pitch > orbitMaxPitch+1e-6 {
		t.Fatalf("pitch exceeded clamp: %v", cam.Pitch)
	}
	if math.Abs(cam.Position.Y()) > o.Distance()+1e-6 {
		t.Fatalf("camera escaped the orbit sphere: %v", cam.Position)
	}
}
