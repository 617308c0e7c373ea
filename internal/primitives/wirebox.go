// Package primitives generates simple meshes: debug wireframes, heightmap
// grids and attribute-less draws.
package primitives

import (
	"github.com/Faultbox/midgard-mesh/pkg/math"
	"github.com/Faultbox/midgard-mesh/pkg/mesh"
	"github.com/Faultbox/midgard-mesh/pkg/meshdata"
	"github.com/Faultbox/midgard-mesh/pkg/strided"
)

// WireBoxVertexCount is the number of vertices of a box wireframe (12 edges × 2).
const WireBoxVertexCount = 24

// DefaultBoxPadding is the default padding for selection boxes.
const DefaultBoxPadding = 1.0

// WireBox creates a line mesh outlining the box between lo and hi.
func WireBox(lo, hi math.Vec3) *meshdata.MeshData {
	positions := []math.Vec3{
		// Bottom face
		{X: lo.X, Y: lo.Y, Z: lo.Z}, {X: hi.X, Y: lo.Y, Z: lo.Z},
		{X: hi.X, Y: lo.Y, Z: lo.Z}, {X: hi.X, Y: lo.Y, Z: hi.Z},
		{X: hi.X, Y: lo.Y, Z: hi.Z}, {X: lo.X, Y: lo.Y, Z: hi.Z},
		{X: lo.X, Y: lo.Y, Z: hi.Z}, {X: lo.X, Y: lo.Y, Z: lo.Z},
		// Top face
		{X: lo.X, Y: hi.Y, Z: lo.Z}, {X: hi.X, Y: hi.Y, Z: lo.Z},
		{X: hi.X, Y: hi.Y, Z: lo.Z}, {X: hi.X, Y: hi.Y, Z: hi.Z},
		{X: hi.X, Y: hi.Y, Z: hi.Z}, {X: lo.X, Y: hi.Y, Z: hi.Z},
		{X: lo.X, Y: hi.Y, Z: hi.Z}, {X: lo.X, Y: hi.Y, Z: lo.Z},
		// Vertical edges
		{X: lo.X, Y: lo.Y, Z: lo.Z}, {X: lo.X, Y: hi.Y, Z: lo.Z},
		{X: hi.X, Y: lo.Y, Z: lo.Z}, {X: hi.X, Y: hi.Y, Z: lo.Z},
		{X: hi.X, Y: lo.Y, Z: hi.Z}, {X: hi.X, Y: hi.Y, Z: hi.Z},
		{X: lo.X, Y: lo.Y, Z: hi.Z}, {X: lo.X, Y: hi.Y, Z: hi.Z},
	}

	return meshdata.Must(meshdata.NewNonIndexed(mesh.PrimitiveLines,
		strided.Of(positions).Data(),
		[]meshdata.AttributeData{
			meshdata.MustTypedAttribute(meshdata.AttributePosition, positions),
		}))
}

// WireBoxAround creates a box wireframe around a local-space box placed at
// position. scale is applied before translation; negative scales are handled
// and padding grows the box on all sides.
func WireBoxAround(boxMin, boxMax, position, scale math.Vec3, padding float32) *meshdata.MeshData {
	lo := math.Vec3{X: boxMin.X * scale.X, Y: boxMin.Y * scale.Y, Z: boxMin.Z * scale.Z}
	hi := math.Vec3{X: boxMax.X * scale.X, Y: boxMax.Y * scale.Y, Z: boxMax.Z * scale.Z}
	lo, hi = lo.Min(hi), lo.Max(hi)

	pad := math.Vec3{X: padding, Y: padding, Z: padding}
	return WireBox(lo.Sub(pad).Add(position), hi.Add(pad).Add(position))
}
