package meshdata

import (
	"errors"
	"testing"

	"github.com/Faultbox/midgard-mesh/pkg/math"
	"github.com/Faultbox/midgard-mesh/pkg/mesh"
	"github.com/Faultbox/midgard-mesh/pkg/strided"
)

// expectViolation runs fn and checks that it panics with a contract error of
// the given kind.
func expectViolation(t *testing.T, kind error, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("expected %v panic, got none", kind)
		}
		err, ok := r.(error)
		if !ok {
			t.Fatalf("expected error panic, got %T: %v", r, r)
		}
		if !errors.Is(err, kind) {
			t.Fatalf("expected %v, got %v", kind, err)
		}
	}()
	fn()
}

func expectError(t *testing.T, kind error, err error) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v, got no error", kind)
	}
	if !errors.Is(err, kind) {
		t.Fatalf("expected %v, got %v", kind, err)
	}
}

// Interleaved vertex layout used across tests: Vector3 position, Vector3
// normal, Vector2 texture coordinates and a 16-bit object id, packed into a
// 34-byte record.
const recordStride = 34

var objectID = MustCustomAttribute(13)

type interleaved struct {
	vertexData []byte
	indexData  []byte
	positions  strided.View[math.Vec3]
	normals    strided.View[math.Vec3]
	uvs        strided.View[math.Vec2]
	ids        strided.View[int16]
}

func newInterleaved() interleaved {
	vertexData := make([]byte, 3*recordStride)
	l := interleaved{
		vertexData: vertexData,
		positions:  strided.MustCast[math.Vec3](strided.MustBytes(vertexData, 3, 12, recordStride)),
		normals:    strided.MustCast[math.Vec3](strided.MustBytes(vertexData[12:], 3, 12, recordStride)),
		uvs:        strided.MustCast[math.Vec2](strided.MustBytes(vertexData[24:], 3, 8, recordStride)),
		ids:        strided.MustCast[int16](strided.MustBytes(vertexData[32:], 3, 2, recordStride)),
	}
	for i := 0; i < 3; i++ {
		f := float32(i)
		l.positions.Set(i, math.Vec3{X: f, Y: f * 2, Z: f * 3})
		l.normals.Set(i, math.Vec3{Z: 1})
		l.uvs.Set(i, math.Vec2{X: f / 2, Y: 1 - f/2})
		l.ids.Set(i, int16(100*i-50))
	}
	l.indexData = strided.Of([]uint16{0, 1, 2, 0, 2, 1}).Data()
	return l
}

func (l interleaved) directAttributes() []AttributeData {
	return []AttributeData{
		must(NewTypedAttributeStrided(AttributePosition, l.positions)),
		must(NewTypedAttributeStrided(AttributeNormal, l.normals)),
		must(NewTypedAttributeStrided(AttributeTextureCoordinates, l.uvs)),
		must(NewTypedAttributeStrided(objectID, l.ids)),
	}
}

func (l interleaved) offsetAttributes() []AttributeData {
	return []AttributeData{
		MustOffsetAttribute(AttributePosition, mesh.VertexFormatVector3, 0, 3, recordStride, 0),
		MustOffsetAttribute(AttributeNormal, mesh.VertexFormatVector3, 12, 3, recordStride, 0),
		MustOffsetAttribute(AttributeTextureCoordinates, mesh.VertexFormatVector2, 24, 3, recordStride, 0),
		MustOffsetAttribute(objectID, mesh.VertexFormatShort, 32, 3, recordStride, 0),
	}
}

func (l interleaved) indices() IndexData {
	return MustIndexData(mesh.IndexTypeUnsignedShort, l.indexData)
}
