package game

import (
	"fmt"
	"image/color"
	"log"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/soldane/ballistic/control"
	"github.com/soldane/ballistic/scene"
	"github.com/soldane/ballistic/script"
	"github.com/soldane/ballistic/watch"
)

// Viewer is the orbit-camera demo loop. It shows a scripted scene and
// lets the mouse orbit and dolly around it; script edits show up live.
type Viewer struct {
	loader  *script.Loader
	watcher *watch.Watcher

	scn   *scene.Scene
	cam   *scene.Camera
	rend  *scene.Renderer
	orbit *control.Orbit
	input *Input

	dragging bool
}

// NewViewer builds the demo from the scene script at scriptPath. An
// empty or missing path shows the embedded default scene.
func NewViewer(scriptPath string) (*Viewer, error) {
	loader := &script.Loader{Path: scriptPath}
	objects, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("game: load scene script: %w", err)
	}

	cam := scene.NewCamera(60, 16.0/9.0)
	v := &Viewer{
		loader: loader,
		cam:    cam,
		rend:   scene.NewRenderer(),
		orbit:  control.NewOrbit(cam, mgl64.Vec3{0, 2, 0}, 24),
		input:  &Input{},
	}
	v.scn = buildViewerScene(objects)

	if scriptPath != "" {
		watcher, err := watch.New(filepath.Dir(scriptPath), ".tengo")
		if err != nil {
			log.Printf("scene watch disabled: %v", err)
		} else {
			v.watcher = watcher
		}
	}

	return v, nil
}

// buildViewerScene rebuilds the display list from scripted objects.
// A fresh scene each reload keeps stale meshes from lingering.
func buildViewerScene(objects []script.Object) *scene.Scene {
	scn := scene.NewScene()
	scn.NewMesh(scene.NewGround(60, 12), scene.Material{
		Color: color.NRGBA{R: 0x8a, G: 0x8a, B: 0x92, A: 0xff},
		Alt:   color.NRGBA{R: 0x7c, G: 0x7c, B: 0x84, A: 0xff},
	})
	scn.SetShadowPlane(0)

	for _, obj := range objects {
		var geo *scene.Geometry
		switch obj.Kind {
		case "sphere":
			geo = scene.NewSphere(obj.Radius, 16, 12)
		case "box":
			geo = scene.NewBox(obj.Size[0], obj.Size[1], obj.Size[2])
		default:
			continue
		}
		m := scn.NewMesh(geo, scene.Material{Color: obj.Color, CastShadow: true})
		m.SetTransform(mgl64.Vec3{obj.Pos[0], obj.Pos[1], obj.Pos[2]}, mgl64.QuatIdent())
	}
	return scn
}

func (v *Viewer) drainWatcher() {
	if v.watcher == nil {
		return
	}
	reload := false
	for {
		select {
		case <-v.watcher.Events:
			reload = true
		case err := <-v.watcher.Errors:
			log.Printf("scene watch: %v", err)
		default:
			if reload {
				objects, err := v.loader.Load()
				if err != nil {
					log.Printf("scene reload skipped: %v", err)
					return
				}
				v.scn = buildViewerScene(objects)
				log.Printf("scene reloaded: %s", v.loader.Path)
			}
			return
		}
	}
}

func (v *Viewer) Update() error {
	v.drainWatcher()

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		dx, dy := v.input.LookDelta()
		if v.dragging {
			v.orbit.Drag(dx, dy)
		}
		v.dragging = true
	} else {
		v.dragging = false
		v.input.ResetLook()
	}

	if _, wheelY := ebiten.Wheel(); wheelY != 0 {
		v.orbit.Dolly(wheelY)
	}

	v.orbit.Update()
	return nil
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(skyColor)
	v.rend.Render(screen, v.scn, v.cam)
	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f    Distance: %.1f", ebiten.ActualFPS(), v.orbit.Distance()))
}

func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideHeight > 0 {
		v.cam.SetAspect(float64(outsideWidth) / float64(outsideHeight))
	}
	return outsideWidth, outsideHeight
}

// Close releases the scene watcher.
func (v *Viewer) Close() error {
	if v.watcher == nil {
		return nil
	}
	return v.watcher.Close()
}
