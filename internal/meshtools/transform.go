package meshtools

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-mesh/internal/logger"
	"github.com/Faultbox/midgard-mesh/pkg/math"
	"github.com/Faultbox/midgard-mesh/pkg/mesh"
	"github.com/Faultbox/midgard-mesh/pkg/meshdata"
)

// Transform applies m to every position and the matching normal transform to
// every normal, in place. Positions have to be Vector2 or Vector3 and normals
// Vector3; 2D positions are transformed in the Z=0 plane.
func Transform(md *meshdata.MeshData, m math.Mat4) error {
	if md.VertexDataFlags()&meshdata.DataFlagMutable == 0 {
		return ErrNotMutable
	}
	if err := checkFloatAttributes(md); err != nil {
		return err
	}

	for n := uint32(0); n < md.AttributeCountOf(meshdata.AttributePosition); n++ {
		switch md.AttributeFormatOf(meshdata.AttributePosition, n) {
		case mesh.VertexFormatVector3:
			positions := meshdata.MutableAttrOf[math.Vec3](md, meshdata.AttributePosition, n)
			for i := 0; i < positions.Len(); i++ {
				positions.Set(i, m.TransformPoint(positions.Get(i)))
			}
		case mesh.VertexFormatVector2:
			positions := meshdata.MutableAttrOf[math.Vec2](md, meshdata.AttributePosition, n)
			for i := 0; i < positions.Len(); i++ {
				positions.Set(i, m.TransformPoint(positions.Get(i).Vec3(0)).XY())
			}
		}
	}

	normalMatrix := m.NormalMatrix()
	for n := uint32(0); n < md.AttributeCountOf(meshdata.AttributeNormal); n++ {
		normals := meshdata.MutableAttrOf[math.Vec3](md, meshdata.AttributeNormal, n)
		for i := 0; i < normals.Len(); i++ {
			normals.Set(i, normalMatrix.TransformDirection(normals.Get(i)).Normalize())
		}
	}

	logger.Debug("mesh transformed",
		zap.Uint32("vertices", md.VertexCount()),
		zap.Uint32("positions", md.AttributeCountOf(meshdata.AttributePosition)),
		zap.Uint32("normals", md.AttributeCountOf(meshdata.AttributeNormal)))
	return nil
}

// TransformGL is Transform for matrices coming from mathgl. Both use the
// same column-major layout.
func TransformGL(md *meshdata.MeshData, m mgl32.Mat4) error {
	return Transform(md, math.Mat4(m))
}

// checkFloatAttributes validates all formats up front so a failing call
// leaves the mesh untouched.
func checkFloatAttributes(md *meshdata.MeshData) error {
	for n := uint32(0); n < md.AttributeCountOf(meshdata.AttributePosition); n++ {
		switch f := md.AttributeFormatOf(meshdata.AttributePosition, n); f {
		case mesh.VertexFormatVector2, mesh.VertexFormatVector3:
		default:
			return fmt.Errorf("%w: position %d is %s", ErrUnsupportedFormat, n, f)
		}
	}
	for n := uint32(0); n < md.AttributeCountOf(meshdata.AttributeNormal); n++ {
		if f := md.AttributeFormatOf(meshdata.AttributeNormal, n); f != mesh.VertexFormatVector3 {
			return fmt.Errorf("%w: normal %d is %s", ErrUnsupportedFormat, n, f)
		}
	}
	return nil
}

// CenterXZ moves the mesh so its bounds are centered horizontally, keeping
// the Y offset. Returns the offset that was subtracted.
func CenterXZ(md *meshdata.MeshData) (centerX, centerZ float32, err error) {
	b, err := ComputeBounds(md)
	if err != nil {
		return 0, 0, err
	}
	c := b.Center()
	if err := Transform(md, math.Translate(-c.X, 0, -c.Z)); err != nil {
		return 0, 0, err
	}
	return c.X, c.Z, nil
}
