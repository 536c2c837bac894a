package scene

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	shadowSegments = 12
	shadowAlpha    = 0.4
	shadowFadeDist = 25.0

	// DrawTriangles indexes with uint16; flush before overflowing.
	maxBatchVerts = 65532
)

type screenTri struct {
	x, y           [3]float32
	depth          float64
	cr, cg, cb, ca float32
}

// Renderer projects a scene through a camera and rasterizes it onto
// an Ebiten image: near-plane rejection, backface culling, painter
// sorting, flat Lambert shading, and blob shadows on the shadow
// plane. Reuse one Renderer per loop; its scratch buffers persist.
type Renderer struct {
	white *ebiten.Image
	tris  []screenTri
	verts []ebiten.Vertex
	idx   []uint16
}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render draws the scene as seen by the camera onto dst.
func (r *Renderer) Render(dst *ebiten.Image, s *Scene, cam *Camera) {
	if dst == nil || s == nil || cam == nil {
		return
	}
	bounds := dst.Bounds()
	w, h := float64(bounds.Dx()), float64(bounds.Dy())
	if w <= 0 || h <= 0 {
		return
	}

	view := cam.ViewMatrix()
	proj := cam.ProjMatrix()

	r.tris = r.tris[:0]
	for _, m := range s.Meshes() {
		r.appendMesh(m, s, cam, view, proj, w, h)
		if m.Mat.CastShadow && s.hasShadowPlane {
			r.appendShadow(m, s, cam, view, proj, w, h)
		}
	}

	// Painter order: far triangles first.
	sort.SliceStable(r.tris, func(i, j int) bool {
		return r.tris[i].depth > r.tris[j].depth
	})

	r.flushTris(dst)
}

func (r *Renderer) appendMesh(m *Mesh, s *Scene, cam *Camera, view, proj mgl64.Mat4, w, h float64) {
	geo := m.Geo
	if geo == nil {
		return
	}
	for _, f := range geo.Faces {
		w0 := m.Position.Add(m.Orientation.Rotate(geo.Positions[f.A]))
		w1 := m.Position.Add(m.Orientation.Rotate(geo.Positions[f.B]))
		w2 := m.Position.Add(m.Orientation.Rotate(geo.Positions[f.C]))

		normal := w1.Sub(w0).Cross(w2.Sub(w0))
		if normal.Len() == 0 {
			continue
		}
		normal = normal.Normalize()
		centroid := w0.Add(w1).Add(w2).Mul(1.0 / 3.0)
		if normal.Dot(cam.Position.Sub(centroid)) <= 0 {
			continue
		}

		x0, y0, z0, ok0 := project(view, proj, cam.Near, w0, w, h)
		x1, y1, z1, ok1 := project(view, proj, cam.Near, w1, w, h)
		x2, y2, z2, ok2 := project(view, proj, cam.Near, w2, w, h)
		if !ok0 || !ok1 || !ok2 {
			continue
		}

		shade := s.Ambient + (1-s.Ambient)*math.Max(0, normal.Dot(s.LightDir.Mul(-1)))
		base := m.Mat.Color
		if f.Alt && m.Mat.Alt != (color.NRGBA{}) {
			base = m.Mat.Alt
		}

		r.tris = append(r.tris, screenTri{
			x:     [3]float32{float32(x0), float32(x1), float32(x2)},
			y:     [3]float32{float32(y0), float32(y1), float32(y2)},
			depth: -(z0 + z1 + z2) / 3,
			cr:    float32(base.R) / 255 * float32(shade),
			cg:    float32(base.G) / 255 * float32(shade),
			cb:    float32(base.B) / 255 * float32(shade),
			ca:    1,
		})
	}
}

// appendShadow adds a translucent disc under the mesh, fading out
// with height above the shadow plane.
func (r *Renderer) appendShadow(m *Mesh, s *Scene, cam *Camera, view, proj mgl64.Mat4, w, h float64) {
	dh := m.Position.Y() - s.shadowPlaneY
	if dh <= 0 || m.Geo == nil {
		return
	}
	alpha := shadowAlpha * (1 - dh/shadowFadeDist)
	if alpha <= 0 {
		return
	}

	radius := m.Geo.Bound
	center := mgl64.Vec3{m.Position.X(), s.shadowPlaneY + 0.01, m.Position.Z()}
	cx, cy, cz, ok := project(view, proj, cam.Near, center, w, h)
	if !ok {
		return
	}

	px, py := make([]float64, shadowSegments+1), make([]float64, shadowSegments+1)
	for i := 0; i <= shadowSegments; i++ {
		a := float64(i) / shadowSegments * 2 * math.Pi
		rim := center.Add(mgl64.Vec3{math.Cos(a) * radius, 0, math.Sin(a) * radius})
		x, y, _, rok := project(view, proj, cam.Near, rim, w, h)
		if !rok {
			return
		}
		px[i], py[i] = x, y
	}

	for i := 0; i < shadowSegments; i++ {
		r.tris = append(r.tris, screenTri{
			x:     [3]float32{float32(cx), float32(px[i]), float32(px[i+1])},
			y:     [3]float32{float32(cy), float32(py[i]), float32(py[i+1])},
			depth: -cz,
			ca:    float32(alpha),
		})
	}
}

func (r *Renderer) flushTris(dst *ebiten.Image) {
	if r.white == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		r.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}

	r.verts = r.verts[:0]
	r.idx = r.idx[:0]
	for _, t := range r.tris {
		if len(r.verts) >= maxBatchVerts {
			dst.DrawTriangles(r.verts, r.idx, r.white, &ebiten.DrawTrianglesOptions{})
			r.verts = r.verts[:0]
			r.idx = r.idx[:0]
		}
		base := uint16(len(r.verts))
		for i := 0; i < 3; i++ {
			r.verts = append(r.verts, ebiten.Vertex{
				DstX:   t.x[i],
				DstY:   t.y[i],
				SrcX:   1,
				SrcY:   1,
				ColorR: t.cr,
				ColorG: t.cg,
				ColorB: t.cb,
				ColorA: t.ca,
			})
		}
		r.idx = append(r.idx, base, base+1, base+2)
	}
	if len(r.idx) > 0 {
		dst.DrawTriangles(r.verts, r.idx, r.white, &ebiten.DrawTrianglesOptions{})
	}
}

// project maps a world position to screen coordinates, returning the
// camera-space z. ok is false when the point is at or behind the near
// plane.
func project(view, proj mgl64.Mat4, near float64, p mgl64.Vec3, w, h float64) (x, y, camZ float64, ok bool) {
	cpos := view.Mul4x1(p.Vec4(1))
	camZ = cpos.Z()
	if camZ > -near {
		return 0, 0, camZ, false
	}
	clip := proj.Mul4x1(cpos)
	cw := clip.W()
	if cw == 0 {
		return 0, 0, camZ, false
	}
	x = (clip.X()/cw + 1) / 2 * w
	y = (1 - clip.Y()/cw) / 2 * h
	return x, y, camZ, true
}
