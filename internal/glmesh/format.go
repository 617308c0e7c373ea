// Package glmesh uploads MeshData to OpenGL vertex arrays and maps the mesh
// enums to their GL counterparts.
package glmesh

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/midgard-mesh/pkg/mesh"
)

var ErrUnsupported = errors.New("not representable in OpenGL")

// AttribFormat is the component layout passed to glVertexAttribPointer.
type AttribFormat struct {
	Components int32
	Type       uint32
	Normalized bool
}

var componentTypes = map[mesh.VertexFormat]uint32{
	mesh.VertexFormatFloat:         gl.FLOAT,
	mesh.VertexFormatHalf:          gl.HALF_FLOAT,
	mesh.VertexFormatDouble:        gl.DOUBLE,
	mesh.VertexFormatUnsignedByte:  gl.UNSIGNED_BYTE,
	mesh.VertexFormatByte:          gl.BYTE,
	mesh.VertexFormatUnsignedShort: gl.UNSIGNED_SHORT,
	mesh.VertexFormatShort:         gl.SHORT,
	mesh.VertexFormatUnsignedInt:   gl.UNSIGNED_INT,
	mesh.VertexFormatInt:           gl.INT,
}

// AttribFormatOf returns the GL layout of a vertex format. Implementation
// specific formats carry no component information and are rejected.
func AttribFormatOf(f mesh.VertexFormat) (AttribFormat, error) {
	if f.IsImplementationSpecific() || !f.IsValid() {
		return AttribFormat{}, fmt.Errorf("%w: vertex format %s", ErrUnsupported, f)
	}
	return AttribFormat{
		Components: int32(f.ComponentCount()),
		Type:       componentTypes[f.ComponentFormat()],
		Normalized: f.IsNormalized(),
	}, nil
}

// IndexType maps an index type to the type passed to glDrawElements.
func IndexType(t mesh.IndexType) (uint32, error) {
	switch t {
	case mesh.IndexTypeUnsignedByte:
		return gl.UNSIGNED_BYTE, nil
	case mesh.IndexTypeUnsignedShort:
		return gl.UNSIGNED_SHORT, nil
	case mesh.IndexTypeUnsignedInt:
		return gl.UNSIGNED_INT, nil
	}
	return 0, fmt.Errorf("%w: index type %s", ErrUnsupported, t)
}

// Primitive maps a primitive to the GL draw mode.
func Primitive(p mesh.Primitive) (uint32, error) {
	switch p {
	case mesh.PrimitivePoints:
		return gl.POINTS, nil
	case mesh.PrimitiveLines:
		return gl.LINES, nil
	case mesh.PrimitiveLineLoop:
		return gl.LINE_LOOP, nil
	case mesh.PrimitiveLineStrip:
		return gl.LINE_STRIP, nil
	case mesh.PrimitiveTriangles:
		return gl.TRIANGLES, nil
	case mesh.PrimitiveTriangleStrip:
		return gl.TRIANGLE_STRIP, nil
	case mesh.PrimitiveTriangleFan:
		return gl.TRIANGLE_FAN, nil
	}
	return 0, fmt.Errorf("%w: primitive %s", ErrUnsupported, p)
}
