package game

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/soldane/ballistic/config"
	"github.com/soldane/ballistic/control"
	"github.com/soldane/ballistic/phys"
	"github.com/soldane/ballistic/scene"
	"github.com/soldane/ballistic/watch"
)

// fakeClock drives the session's frame timing by hand.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newClockedSession(cfg config.Config) (*Session, *fakeClock) {
	s := newSession(cfg)
	clock := &fakeClock{now: time.Unix(100, 0)}
	s.now = func() time.Time { return clock.now }
	return s, clock
}

// addFallingPair registers a free-falling sphere well away from the
// arena so nothing interferes with its motion.
func addFallingPair(s *Session) Entry {
	body := s.world.CreateBody(1, phys.Sphere(0.4), mgl64.Vec3{0, 50, -20}, mgl64.Vec3{}, 0)
	mesh := s.scn.NewMesh(scene.NewSphere(0.4, 8, 6), scene.Material{})
	s.reg.Add(body, mesh)
	return Entry{Body: body, Mesh: mesh}
}

func TestSessionFirstFrameIsZeroDt(t *testing.T) {
	s, _ := newClockedSession(config.Default())
	s.capture.Request()
	pair := addFallingPair(s)

	if err := s.Update(); err != nil {
		t.Fatalf("update: %v", err)
	}

	pos, _, _ := s.world.ReadTransform(pair.Body)
	if pos.Y() != 50 {
		t.Fatalf("body moved on the zero-dt first frame: y=%v", pos.Y())
	}
	if got := s.cam.Position.Y(); got != s.cfg.EyeHeight {
		t.Fatalf("camera moved on the zero-dt first frame: y=%v", got)
	}
}

func TestSessionUpdateStepsPhysicsThenSyncs(t *testing.T) {
	s, clock := newClockedSession(config.Default())
	s.capture.Request()
	pair := addFallingPair(s)

	s.Update() // zero-dt frame establishes the clock
	clock.advance(time.Second / 60)
	if err := s.Update(); err != nil {
		t.Fatalf("update: %v", err)
	}

	pos, orient, ok := s.world.ReadTransform(pair.Body)
	if !ok {
		t.Fatal("body vanished")
	}
	if pos.Y() >= 50 {
		t.Fatalf("body did not fall: y=%v", pos.Y())
	}
	// The mesh must carry the post-step transform, proving sync ran
	// after the physics step.
	if pair.Mesh.Position != pos || pair.Mesh.Orientation != orient {
		t.Fatalf("mesh transform %v lags body %v", pair.Mesh.Position, pos)
	}
}

func TestSessionRunsControllerOnlyWhileCaptured(t *testing.T) {
	s, clock := newClockedSession(config.Default())

	s.Update()
	clock.advance(time.Second / 60)
	s.move.Apply(control.KeyJump, true)
	s.Update()
	if got := s.cam.Position.Y(); got != s.cfg.EyeHeight {
		t.Fatalf("controller ran while uncaptured: camera y=%v", got)
	}

	s.capture.Request()
	clock.advance(time.Second / 60)
	s.move.Apply(control.KeyJump, true)
	s.Update()
	if got := s.cam.Position.Y(); got <= s.cfg.EyeHeight {
		t.Fatalf("jump did not lift the camera while captured: y=%v", got)
	}
}

func TestActivationClearsPendingJump(t *testing.T) {
	s, clock := newClockedSession(config.Default())

	// Space pressed while the overlay is up leaves a jump edge
	// behind; activation must discard it.
	s.move.Apply(control.KeyJump, true)
	s.capture.Request()

	s.Update()
	clock.advance(time.Second / 60)
	s.Update()

	if got := s.cam.Position.Y(); got > s.cfg.EyeHeight {
		t.Fatalf("stale jump fired on the first captured frame: y=%v", got)
	}
}

func TestLayoutUpdatesCameraAspect(t *testing.T) {
	s, _ := newClockedSession(config.Default())

	w, h := s.Layout(800, 400)
	if w != 800 || h != 400 {
		t.Fatalf("layout returned %dx%d, want 800x400", w, h)
	}
	if s.cam.Aspect != 2 {
		t.Fatalf("aspect = %v, want 2", s.cam.Aspect)
	}

	s.Layout(640, 0)
	if s.cam.Aspect != 2 {
		t.Fatalf("zero-height layout should keep aspect, got %v", s.cam.Aspect)
	}
}

func TestApplyConfigReachesAllSystems(t *testing.T) {
	s, clock := newClockedSession(config.Default())
	s.capture.Request()
	pair := addFallingPair(s)

	cfg := config.Default()
	cfg.WorldGravity = 0
	cfg.LaunchSpeed = 42
	s.applyConfig(cfg)

	if s.cfg.LaunchSpeed != 42 {
		t.Fatalf("session config not swapped: %+v", s.cfg)
	}
	if s.spawner.cfg.LaunchSpeed != 42 {
		t.Fatalf("spawner config not swapped: %+v", s.spawner.cfg)
	}

	s.Update()
	clock.advance(time.Second / 60)
	s.Update()
	pos, _, _ := s.world.ReadTransform(pair.Body)
	if pos.Y() != 50 {
		t.Fatalf("zero gravity did not reach the world: y=%v", pos.Y())
	}
}

func TestConfigHotReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tunables.yaml")

	s, _ := newClockedSession(config.Default())
	s.cfgPath = path
	w, err := watch.New(dir, ".yaml", ".yml")
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	s.watcher = w
	defer s.Close()

	if err := os.WriteFile(path, []byte("launch_speed: 42\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	deadline := time.Now().Add(3 * time.Second)
	for s.cfg.LaunchSpeed != 42 {
		if time.Now().After(deadline) {
			t.Fatalf("config never reloaded; launch speed = %v", s.cfg.LaunchSpeed)
		}
		s.drainWatcher()
		time.Sleep(10 * time.Millisecond)
	}

	// A malformed rewrite must be skipped, keeping the last good
	// config live.
	time.Sleep(150 * time.Millisecond) // clear the debounce window
	if err := os.WriteFile(path, []byte("launch_speed: [oops\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	settle := time.Now().Add(time.Second)
	for time.Now().Before(settle) {
		s.drainWatcher()
		time.Sleep(10 * time.Millisecond)
	}
	if s.cfg.LaunchSpeed != 42 {
		t.Fatalf("malformed reload clobbered config: launch speed = %v", s.cfg.LaunchSpeed)
	}
}
