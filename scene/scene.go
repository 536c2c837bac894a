// Package scene is a small retained-mode scene graph: mesh nodes with
// flat-shaded materials, one directional light plus an ambient term,
// a perspective camera, and a software rasterizer that draws onto an
// Ebiten image.
package scene

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// Material controls how a mesh is shaded.
type Material struct {
	Color color.NRGBA
	// Alt, when non-zero, colors the faces a geometry marked as
	// alternate (checkerboard cells on the ground plane).
	Alt color.NRGBA
	// CastShadow meshes project a blob shadow onto the shadow plane.
	CastShadow bool
}

// Mesh is a node pairing a geometry with a material and a transform.
type Mesh struct {
	Geo *Geometry
	Mat Material

	Position    mgl64.Vec3
	Orientation mgl64.Quat
}

// SetTransform repositions the mesh.
func (m *Mesh) SetTransform(pos mgl64.Vec3, orient mgl64.Quat) {
	m.Position = pos
	m.Orientation = orient
}

// Scene owns all meshes and the lighting. Like the physics world it
// is single-owner state: the frame loop mutates it between renders.
type Scene struct {
	// Ambient is the base light level (0..1).
	Ambient float64
	// LightDir is the direction light travels in.
	LightDir mgl64.Vec3

	meshes []*Mesh

	shadowPlaneY   float64
	hasShadowPlane bool
}

func NewScene() *Scene {
	return &Scene{
		Ambient:  0.35,
		LightDir: mgl64.Vec3{-0.4, -1, -0.25}.Normalize(),
	}
}

// NewMesh creates a mesh node and adds it to the scene.
func (s *Scene) NewMesh(geo *Geometry, mat Material) *Mesh {
	m := &Mesh{Geo: geo, Mat: mat, Orientation: mgl64.QuatIdent()}
	s.meshes = append(s.meshes, m)
	return m
}

// Remove detaches the mesh; unknown meshes are no-ops.
func (s *Scene) Remove(m *Mesh) {
	for i, mm := range s.meshes {
		if mm == m {
			s.meshes = append(s.meshes[:i], s.meshes[i+1:]...)
			return
		}
	}
}

// Len returns the number of live meshes.
func (s *Scene) Len() int {
	return len(s.meshes)
}

// Meshes returns the live mesh nodes in insertion order.
func (s *Scene) Meshes() []*Mesh {
	return s.meshes
}

// SetShadowPlane enables blob shadows projected onto the horizontal
// plane at the given height.
func (s *Scene) SetShadowPlane(y float64) {
	s.shadowPlaneY = y
	s.hasShadowPlane = true
}
