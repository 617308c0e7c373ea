// Package wgpumesh describes MeshData in WebGPU terms: vertex buffer
// layouts, index formats and primitive topologies.
package wgpumesh

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/Faultbox/midgard-mesh/pkg/mesh"
)

var (
	ErrUnsupported     = errors.New("not representable in WebGPU")
	ErrNotInterleaved  = errors.New("attributes don't share a single interleaved buffer")
	ErrMisalignedField = errors.New("attribute offset is not aligned")
)

// WebGPU has no 3-component 8/16-bit, double or single 8/16-bit formats.
var vertexFormats = map[mesh.VertexFormat]gputypes.VertexFormat{
	mesh.VertexFormatFloat:   gputypes.VertexFormatFloat32,
	mesh.VertexFormatVector2: gputypes.VertexFormatFloat32x2,
	mesh.VertexFormatVector3: gputypes.VertexFormatFloat32x3,
	mesh.VertexFormatVector4: gputypes.VertexFormatFloat32x4,

	mesh.VertexFormatVector2h: gputypes.VertexFormatFloat16x2,
	mesh.VertexFormatVector4h: gputypes.VertexFormatFloat16x4,

	mesh.VertexFormatVector2ub:           gputypes.VertexFormatUint8x2,
	mesh.VertexFormatVector4ub:           gputypes.VertexFormatUint8x4,
	mesh.VertexFormatVector2ubNormalized: gputypes.VertexFormatUnorm8x2,
	mesh.VertexFormatVector4ubNormalized: gputypes.VertexFormatUnorm8x4,
	mesh.VertexFormatVector2b:            gputypes.VertexFormatSint8x2,
	mesh.VertexFormatVector4b:            gputypes.VertexFormatSint8x4,
	mesh.VertexFormatVector2bNormalized:  gputypes.VertexFormatSnorm8x2,
	mesh.VertexFormatVector4bNormalized:  gputypes.VertexFormatSnorm8x4,

	mesh.VertexFormatVector2us:           gputypes.VertexFormatUint16x2,
	mesh.VertexFormatVector4us:           gputypes.VertexFormatUint16x4,
	mesh.VertexFormatVector2usNormalized: gputypes.VertexFormatUnorm16x2,
	mesh.VertexFormatVector4usNormalized: gputypes.VertexFormatUnorm16x4,
	mesh.VertexFormatVector2s:            gputypes.VertexFormatSint16x2,
	mesh.VertexFormatVector4s:            gputypes.VertexFormatSint16x4,
	mesh.VertexFormatVector2sNormalized:  gputypes.VertexFormatSnorm16x2,
	mesh.VertexFormatVector4sNormalized:  gputypes.VertexFormatSnorm16x4,

	mesh.VertexFormatUnsignedInt: gputypes.VertexFormatUint32,
	mesh.VertexFormatVector2ui:   gputypes.VertexFormatUint32x2,
	mesh.VertexFormatVector3ui:   gputypes.VertexFormatUint32x3,
	mesh.VertexFormatVector4ui:   gputypes.VertexFormatUint32x4,
	mesh.VertexFormatInt:         gputypes.VertexFormatSint32,
	mesh.VertexFormatVector2i:    gputypes.VertexFormatSint32x2,
	mesh.VertexFormatVector3i:    gputypes.VertexFormatSint32x3,
	mesh.VertexFormatVector4i:    gputypes.VertexFormatSint32x4,
}

// VertexFormat maps a vertex format to its WebGPU equivalent.
func VertexFormat(f mesh.VertexFormat) (gputypes.VertexFormat, error) {
	if vf, ok := vertexFormats[f]; ok {
		return vf, nil
	}
	var none gputypes.VertexFormat
	return none, fmt.Errorf("%w: vertex format %s", ErrUnsupported, f)
}

// IndexFormat maps an index type. 8-bit indices are not supported.
func IndexFormat(t mesh.IndexType) (gputypes.IndexFormat, error) {
	switch t {
	case mesh.IndexTypeUnsignedShort:
		return gputypes.IndexFormatUint16, nil
	case mesh.IndexTypeUnsignedInt:
		return gputypes.IndexFormatUint32, nil
	}
	var none gputypes.IndexFormat
	return none, fmt.Errorf("%w: index type %s", ErrUnsupported, t)
}

// Topology maps a primitive. Loops and fans have no WebGPU topology.
func Topology(p mesh.Primitive) (gputypes.PrimitiveTopology, error) {
	switch p {
	case mesh.PrimitivePoints:
		return gputypes.PrimitiveTopologyPointList, nil
	case mesh.PrimitiveLines:
		return gputypes.PrimitiveTopologyLineList, nil
	case mesh.PrimitiveLineStrip:
		return gputypes.PrimitiveTopologyLineStrip, nil
	case mesh.PrimitiveTriangles:
		return gputypes.PrimitiveTopologyTriangleList, nil
	case mesh.PrimitiveTriangleStrip:
		return gputypes.PrimitiveTopologyTriangleStrip, nil
	}
	var none gputypes.PrimitiveTopology
	return none, fmt.Errorf("%w: primitive %s", ErrUnsupported, p)
}
