package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Face indexes three positions. Alt faces take the material's Alt
// color when it is set.
type Face struct {
	A, B, C int
	Alt     bool
}

// Geometry is an indexed triangle mesh in local space.
type Geometry struct {
	Positions []mgl64.Vec3
	Faces     []Face
	// Bound is the bounding-sphere radius, used for blob shadows.
	Bound float64
}

// NewSphere builds a UV sphere. Segment counts are clamped to a
// renderable minimum.
func NewSphere(radius float64, widthSegs, heightSegs int) *Geometry {
	if widthSegs < 3 {
		widthSegs = 3
	}
	if heightSegs < 2 {
		heightSegs = 2
	}

	g := &Geometry{Bound: radius}
	// Rings of vertices from pole to pole.
	for iy := 0; iy <= heightSegs; iy++ {
		v := float64(iy) / float64(heightSegs)
		phi := v * math.Pi
		for ix := 0; ix <= widthSegs; ix++ {
			u := float64(ix) / float64(widthSegs)
			theta := u * 2 * math.Pi
			g.Positions = append(g.Positions, mgl64.Vec3{
				-radius * math.Cos(theta) * math.Sin(phi),
				radius * math.Cos(phi),
				radius * math.Sin(theta) * math.Sin(phi),
			})
		}
	}

	stride := widthSegs + 1
	for iy := 0; iy < heightSegs; iy++ {
		for ix := 0; ix < widthSegs; ix++ {
			a := iy*stride + ix
			b := a + stride
			c := b + 1
			d := a + 1
			if iy != 0 {
				g.Faces = append(g.Faces, Face{A: a, B: b, C: d})
			}
			if iy != heightSegs-1 {
				g.Faces = append(g.Faces, Face{A: b, B: c, C: d})
			}
		}
	}
	return g
}

// NewBox builds an axis-aligned box centered on the origin.
func NewBox(w, h, d float64) *Geometry {
	hx, hy, hz := w/2, h/2, d/2
	g := &Geometry{Bound: math.Sqrt(hx*hx + hy*hy + hz*hz)}
	g.Positions = []mgl64.Vec3{
		{-hx, -hy, -hz}, {hx, -hy, -hz}, {hx, hy, -hz}, {-hx, hy, -hz},
		{-hx, -hy, hz}, {hx, -hy, hz}, {hx, hy, hz}, {-hx, hy, hz},
	}
	quads := [][4]int{
		{0, 3, 2, 1}, // -z
		{4, 5, 6, 7}, // +z
		{0, 4, 7, 3}, // -x
		{1, 2, 6, 5}, // +x
		{3, 7, 6, 2}, // +y
		{0, 1, 5, 4}, // -y
	}
	for _, q := range quads {
		g.Faces = append(g.Faces,
			Face{A: q[0], B: q[1], C: q[2]},
			Face{A: q[0], B: q[2], C: q[3]},
		)
	}
	return g
}

// NewGround builds a flat checkered plane at y=0, size units across,
// split into cells x cells quads alternating base and Alt color.
func NewGround(size float64, cells int) *Geometry {
	if cells < 1 {
		cells = 1
	}
	g := &Geometry{Bound: size * math.Sqrt2 / 2}
	step := size / float64(cells)
	half := size / 2

	stride := cells + 1
	for iz := 0; iz <= cells; iz++ {
		for ix := 0; ix <= cells; ix++ {
			g.Positions = append(g.Positions, mgl64.Vec3{
				-half + float64(ix)*step,
				0,
				-half + float64(iz)*step,
			})
		}
	}
	for iz := 0; iz < cells; iz++ {
		for ix := 0; ix < cells; ix++ {
			a := iz*stride + ix
			b := a + 1
			c := a + stride
			d := c + 1
			alt := (ix+iz)%2 == 1
			g.Faces = append(g.Faces,
				Face{A: a, B: c, C: b, Alt: alt},
				Face{A: b, B: c, C: d, Alt: alt},
			)
		}
	}
	return g
}
