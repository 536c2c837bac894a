package game

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/soldane/ballistic/control"
	"github.com/soldane/ballistic/phys"
	"github.com/soldane/ballistic/scene"
)

// SpawnerConfig are the projectile tunables.
type SpawnerConfig struct {
	LaunchSpeed float64
	Radius      float64
	Mass        float64
	Damping     float64
}

var projectilePalette = []color.NRGBA{
	{R: 0xe5, G: 0x68, B: 0x4c, A: 0xff},
	{R: 0xe0, G: 0xa3, B: 0x3e, A: 0xff},
	{R: 0x8f, G: 0xb5, B: 0x52, A: 0xff},
	{R: 0x4d, G: 0x9a, B: 0xc2, A: 0xff},
	{R: 0x91, G: 0x68, B: 0xb8, A: 0xff},
}

// Spawner creates projectile body/mesh pairs on fire triggers. Fire
// is honored only while pointer capture is active.
type Spawner struct {
	world   *phys.World
	scn     *scene.Scene
	cam     *scene.Camera
	capture *control.Capture
	reg     *Registry

	cfg   SpawnerConfig
	geo   *scene.Geometry
	fired int
}

func NewSpawner(world *phys.World, scn *scene.Scene, cam *scene.Camera, capture *control.Capture, reg *Registry, cfg SpawnerConfig) *Spawner {
	return &Spawner{
		world:   world,
		scn:     scn,
		cam:     cam,
		capture: capture,
		reg:     reg,
		cfg:     cfg,
		geo:     scene.NewSphere(cfg.Radius, 14, 10),
	}
}

// SetConfig swaps the tunables, e.g. on config hot reload.
func (s *Spawner) SetConfig(cfg SpawnerConfig) {
	if cfg.Radius != s.cfg.Radius {
		s.geo = scene.NewSphere(cfg.Radius, 14, 10)
	}
	s.cfg = cfg
}

// Fire launches one projectile from just in front of the camera along
// its look direction. Returns false while capture is inactive.
func (s *Spawner) Fire() bool {
	if !s.capture.Active() {
		return false
	}

	fwd := s.cam.Forward()
	pos := s.cam.Position.Add(fwd)
	vel := fwd.Mul(s.cfg.LaunchSpeed)

	body := s.world.CreateBody(s.cfg.Mass, phys.Sphere(s.cfg.Radius), pos, vel, s.cfg.Damping)
	mesh := s.scn.NewMesh(s.geo, scene.Material{
		Color:      projectilePalette[s.fired%len(projectilePalette)],
		CastShadow: true,
	})
	mesh.SetTransform(pos, mgl64.QuatIdent())

	s.reg.Add(body, mesh)
	s.fired++
	return true
}
