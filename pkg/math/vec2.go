// Package math provides the vector, color and matrix value types used for
// typed vertex access and mesh transforms.
package math

// Vec2 is a 2D vector, laid out like mesh.VertexFormatVector2.
type Vec2 struct {
	X, Y float32
}

// Vec3 extends the vector with the given Z.
func (v Vec2) Vec3(z float32) Vec3 {
	return Vec3{v.X, v.Y, z}
}
