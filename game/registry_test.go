package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/soldane/ballistic/phys"
	"github.com/soldane/ballistic/scene"
)

const cullY = -50.0

func addPair(world *phys.World, scn *scene.Scene, reg *Registry, pos mgl64.Vec3) {
	body := world.CreateBody(1, phys.Sphere(0.4), pos, mgl64.Vec3{}, 0)
	mesh := scn.NewMesh(scene.NewSphere(0.4, 8, 6), scene.Material{})
	reg.Add(body, mesh)
}

func checkCounts(t *testing.T, world *phys.World, scn *scene.Scene, reg *Registry, want int) {
	t.Helper()
	if reg.Len() != want || world.Len() != want || scn.Len() != want {
		t.Fatalf("counts diverged: entries=%d bodies=%d meshes=%d want=%d",
			reg.Len(), world.Len(), scn.Len(), want)
	}
}

func TestSyncCullsBelowThreshold(t *testing.T) {
	cases := []struct {
		name string
		y    float64
		kept bool
	}{
		{"well_above", 10, true},
		{"exactly_at_threshold", cullY, true},
		{"just_below", cullY - 1e-9, false},
		{"one_below", cullY - 1, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			world := phys.NewWorld(0)
			scn := scene.NewScene()
			reg := &Registry{}
			addPair(world, scn, reg, mgl64.Vec3{0, c.y, 0})

			reg.Sync(world, scn, cullY)

			want := 0
			if c.kept {
				want = 1
			}
			checkCounts(t, world, scn, reg, want)
		})
	}
}

func TestSyncRemovesBothSidesTogether(t *testing.T) {
	world := phys.NewWorld(0)
	scn := scene.NewScene()
	reg := &Registry{}

	// Interleave doomed and surviving pairs so compaction has to skip
	// correctly in the middle of the scan.
	addPair(world, scn, reg, mgl64.Vec3{0, 5, 0})
	addPair(world, scn, reg, mgl64.Vec3{0, cullY - 1, 0})
	addPair(world, scn, reg, mgl64.Vec3{0, 7, 0})
	addPair(world, scn, reg, mgl64.Vec3{0, cullY - 2, 0})
	addPair(world, scn, reg, mgl64.Vec3{0, 9, 0})

	reg.Sync(world, scn, cullY)
	checkCounts(t, world, scn, reg, 3)

	// Survivors keep their insertion order.
	ys := []float64{5, 7, 9}
	for i, e := range reg.entries {
		pos, _, ok := world.ReadTransform(e.Body)
		if !ok {
			t.Fatalf("survivor %d lost its body", i)
		}
		if pos.Y() != ys[i] {
			t.Fatalf("survivor %d at y=%v, want %v", i, pos.Y(), ys[i])
		}
	}
}

func TestSyncIsIdempotentWithoutPhysicsStep(t *testing.T) {
	world := phys.NewWorld(9.8)
	scn := scene.NewScene()
	reg := &Registry{}
	addPair(world, scn, reg, mgl64.Vec3{1, 5, 2})
	addPair(world, scn, reg, mgl64.Vec3{-3, 8, 0})

	reg.Sync(world, scn, cullY)
	first := make([]mgl64.Vec3, scn.Len())
	for i, m := range scn.Meshes() {
		first[i] = m.Position
	}

	// No physics advance between syncs: transforms must not change.
	reg.Sync(world, scn, cullY)
	for i, m := range scn.Meshes() {
		if m.Position != first[i] {
			t.Fatalf("mesh %d moved without a physics step: %v -> %v", i, first[i], m.Position)
		}
	}
}

func TestSyncSurvivesSpawnCullCycles(t *testing.T) {
	world := phys.NewWorld(9.8)
	scn := scene.NewScene()
	reg := &Registry{}

	for cycle := 0; cycle < 5; cycle++ {
		for i := 0; i < 4; i++ {
			addPair(world, scn, reg, mgl64.Vec3{float64(i), 100, 0})
		}
		// Let everything fall past the threshold.
		for i := 0; i < 3000; i++ {
			world.Step(1.0/60.0, 1.0/60.0, 3)
			reg.Sync(world, scn, cullY)
		}
		checkCounts(t, world, scn, reg, 0)
	}
}

func TestSyncDropsEntryWhoseBodyVanished(t *testing.T) {
	world := phys.NewWorld(0)
	scn := scene.NewScene()
	reg := &Registry{}
	addPair(world, scn, reg, mgl64.Vec3{0, 5, 0})

	// Body removed out from under the registry: the mesh must go in
	// the same sync.
	world.RemoveBody(reg.entries[0].Body)
	reg.Sync(world, scn, cullY)
	checkCounts(t, world, scn, reg, 0)
}
