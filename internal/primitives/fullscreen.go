package primitives

import (
	"github.com/Faultbox/midgard-mesh/pkg/mesh"
	"github.com/Faultbox/midgard-mesh/pkg/meshdata"
)

// FullscreenTriangle returns an attribute-less three-vertex triangle. The
// vertex shader derives positions from the vertex ID.
func FullscreenTriangle() *meshdata.MeshData {
	return meshdata.Must(meshdata.NewVertexCountOnly(mesh.PrimitiveTriangles, 3))
}
