package phys

import "github.com/go-gl/mathgl/mgl64"

// ShapeKind identifies a collision volume.
type ShapeKind int

const (
	// ShapeSphere is a sphere of Radius around the body position.
	ShapeSphere ShapeKind = iota
	// ShapeBox is an axis-aligned box of Half extents. Boxes only
	// participate as static obstacles.
	ShapeBox
	// ShapePlane is an infinite horizontal plane with a +Y normal,
	// placed at the body's Y position. Always static.
	ShapePlane
)

// Shape is a collision volume description passed to CreateBody.
type Shape struct {
	Kind   ShapeKind
	Radius float64
	Half   mgl64.Vec3
}

func Sphere(radius float64) Shape {
	return Shape{Kind: ShapeSphere, Radius: radius}
}

func Box(hx, hy, hz float64) Shape {
	return Shape{Kind: ShapeBox, Half: mgl64.Vec3{hx, hy, hz}}
}

func Plane() Shape {
	return Shape{Kind: ShapePlane}
}
