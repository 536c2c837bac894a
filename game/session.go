package game

import (
	"fmt"
	"image/color"
	"log"
	"path/filepath"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/soldane/ballistic/config"
	"github.com/soldane/ballistic/control"
	"github.com/soldane/ballistic/phys"
	"github.com/soldane/ballistic/scene"
	"github.com/soldane/ballistic/watch"
)

var skyColor = color.NRGBA{R: 0x87, G: 0xb5, B: 0xd6, A: 0xff}

// Session is the first-person demo loop. It owns the physics world,
// the render scene, the controller, and the capture state, and steps
// them in a fixed order every frame.
type Session struct {
	cfg     config.Config
	cfgPath string
	watcher *watch.Watcher

	world   *phys.World
	scn     *scene.Scene
	cam     *scene.Camera
	rend    *scene.Renderer
	move    *control.Movement
	fp      *control.FirstPerson
	capture *control.Capture
	reg     *Registry
	spawner *Spawner
	input   *Input
	ui      *ebitenui.UI

	now  func() time.Time
	last time.Time
}

// NewSession builds the demo from the config at cfgPath. A missing
// file falls back to defaults; a malformed one is an error.
func NewSession(cfgPath string) (*Session, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("game: load config: %w", err)
	}

	s := newSession(cfg)
	s.cfgPath = cfgPath
	s.ui = NewCaptureOverlay(s.capture)

	onActivate := s.capture.OnActivate
	s.capture.OnActivate = func() {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
		onActivate()
	}
	s.capture.OnDeactivate = func() {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	}

	if cfgPath != "" {
		watcher, err := watch.New(filepath.Dir(cfgPath), ".yaml", ".yml")
		if err != nil {
			log.Printf("config watch disabled: %v", err)
		} else {
			s.watcher = watcher
		}
	}

	return s, nil
}

// newSession wires the engine core without the overlay, the watcher,
// or cursor-mode changes.
func newSession(cfg config.Config) *Session {
	world := phys.NewWorld(cfg.WorldGravity)
	world.SetRestitution(cfg.Restitution)
	scn := scene.NewScene()
	cam := scene.NewCamera(75, 16.0/9.0)

	move := &control.Movement{}
	fp := control.NewFirstPerson(cam, move, control.FirstPersonConfig{
		Damping:   cfg.Damping,
		Gravity:   cfg.CameraGravity,
		Accel:     cfg.Accel,
		JumpSpeed: cfg.JumpSpeed,
		EyeHeight: cfg.EyeHeight,
	})

	capture := &control.Capture{}
	reg := &Registry{}
	spawner := NewSpawner(world, scn, cam, capture, reg, SpawnerConfig{
		LaunchSpeed: cfg.LaunchSpeed,
		Radius:      cfg.ProjectileRadius,
		Mass:        cfg.ProjectileMass,
		Damping:     cfg.ProjectileDamping,
	})

	s := &Session{
		cfg:     cfg,
		world:   world,
		scn:     scn,
		cam:     cam,
		rend:    scene.NewRenderer(),
		move:    move,
		fp:      fp,
		capture: capture,
		reg:     reg,
		spawner: spawner,
		input:   &Input{},
		now:     time.Now,
	}

	capture.OnActivate = func() {
		// A space press while the overlay was up must not turn into
		// a jump on the first captured frame.
		move.TakeJump()
		s.input.ResetLook()
	}

	s.buildArena()
	return s
}

// buildArena places the static scenery and a few dynamic targets.
func (s *Session) buildArena() {
	s.world.CreateBody(0, phys.Plane(), mgl64.Vec3{}, mgl64.Vec3{}, 0)
	s.scn.NewMesh(scene.NewGround(80, 16), scene.Material{
		Color: color.NRGBA{R: 0x6f, G: 0x8f, B: 0x5a, A: 0xff},
		Alt:   color.NRGBA{R: 0x62, G: 0x80, B: 0x4f, A: 0xff},
	})
	s.scn.SetShadowPlane(0)

	// A static crate stack down-range to shoot at.
	crate := scene.NewBox(2, 2, 2)
	crateColor := color.NRGBA{R: 0xb0, G: 0x8a, B: 0x5c, A: 0xff}
	stack := []mgl64.Vec3{
		{-1.1, 1, 14}, {1.1, 1, 14}, {0, 3, 14},
		{-6, 1, 10}, {6, 1, 18},
	}
	for _, pos := range stack {
		s.world.CreateBody(0, phys.Box(1, 1, 1), pos, mgl64.Vec3{}, 0)
		m := s.scn.NewMesh(crate, scene.Material{Color: crateColor})
		m.SetTransform(pos, mgl64.QuatIdent())
	}

	// Dynamic target spheres; these live in the registry so knocking
	// one off the world culls it like any projectile.
	targetGeo := scene.NewSphere(0.8, 14, 10)
	targetColor := color.NRGBA{R: 0xd8, G: 0xd2, B: 0xc5, A: 0xff}
	targets := []mgl64.Vec3{{-1.1, 2.8, 14}, {1.1, 2.8, 14}, {0, 4.8, 14}}
	for _, pos := range targets {
		body := s.world.CreateBody(2, phys.Sphere(0.8), pos, mgl64.Vec3{}, 0.05)
		m := s.scn.NewMesh(targetGeo, scene.Material{Color: targetColor, CastShadow: true})
		m.SetTransform(pos, mgl64.QuatIdent())
		s.reg.Add(body, m)
	}
}

// applyConfig pushes freshly loaded tunables into the live systems.
func (s *Session) applyConfig(cfg config.Config) {
	s.world.SetGravity(cfg.WorldGravity)
	s.world.SetRestitution(cfg.Restitution)
	s.fp.SetConfig(control.FirstPersonConfig{
		Damping:   cfg.Damping,
		Gravity:   cfg.CameraGravity,
		Accel:     cfg.Accel,
		JumpSpeed: cfg.JumpSpeed,
		EyeHeight: cfg.EyeHeight,
	})
	s.spawner.SetConfig(SpawnerConfig{
		LaunchSpeed: cfg.LaunchSpeed,
		Radius:      cfg.ProjectileRadius,
		Mass:        cfg.ProjectileMass,
		Damping:     cfg.ProjectileDamping,
	})
	s.cfg = cfg
}

func (s *Session) drainWatcher() {
	if s.watcher == nil {
		return
	}
	for {
		select {
		case path := <-s.watcher.Events:
			cfg, err := config.Load(s.cfgPath)
			if err != nil {
				log.Printf("config reload skipped (%s): %v", path, err)
				continue
			}
			s.applyConfig(cfg)
			log.Printf("config reloaded: %s", path)
		case err := <-s.watcher.Errors:
			log.Printf("config watch: %v", err)
		default:
			return
		}
	}
}

// Update advances one frame: input, fixed-step physics, controller,
// body/mesh sync.
func (s *Session) Update() error {
	now := s.now()
	var dt float64
	if !s.last.IsZero() {
		dt = now.Sub(s.last).Seconds()
	}
	s.last = now

	s.drainWatcher()
	s.input.Poll(s.move)

	if s.capture.Active() {
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			s.capture.Release()
		}
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			s.spawner.Fire()
		}
		dx, dy := s.input.LookDelta()
		s.cam.Look(dx, dy, s.cfg.MouseSensitivity)
	}

	s.world.Step(s.cfg.FixedStep, dt, s.cfg.MaxSubsteps)
	if s.capture.Active() {
		s.fp.Update(dt)
	}
	s.reg.Sync(s.world, s.scn, s.cfg.CullY)

	if !s.capture.Active() && s.ui != nil {
		s.ui.Update()
	}
	return nil
}

func (s *Session) Draw(screen *ebiten.Image) {
	screen.Fill(skyColor)
	s.rend.Render(screen, s.scn, s.cam)
	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f    Bodies: %d", ebiten.ActualFPS(), s.reg.Len()))
	if !s.capture.Active() && s.ui != nil {
		s.ui.Draw(screen)
	}
}

func (s *Session) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideHeight > 0 {
		s.cam.SetAspect(float64(outsideWidth) / float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}

// Close releases the config watcher.
func (s *Session) Close() error {
	if s.watcher == nil {
		return nil
	}
	return s.watcher.Close()
}
