package meshdata

import (
	"testing"

	"github.com/x448/float16"

	"github.com/Faultbox/midgard-mesh/pkg/math"
	"github.com/Faultbox/midgard-mesh/pkg/mesh"
	"github.com/Faultbox/midgard-mesh/pkg/strided"
)

func singleAttribute[T any](t *testing.T, name Attribute, format mesh.VertexFormat, data []T) *MeshData {
	t.Helper()
	view := strided.Of(data)
	a, err := NewAttribute(name, format, view)
	if err != nil {
		t.Fatalf("failed to create attribute: %v", err)
	}
	md, err := NewNonIndexed(mesh.PrimitivePoints, view.Data(), []AttributeData{a})
	if err != nil {
		t.Fatalf("failed to create mesh: %v", err)
	}
	return md
}

func TestIndicesAsArray(t *testing.T) {
	tests := []struct {
		name string
		md   func() *MeshData
	}{
		{"UnsignedByte", func() *MeshData {
			indices := []uint8{2, 0, 1}
			return Must(NewIndexedOnly(mesh.PrimitiveTriangles, strided.Of(indices).Data(), NewTypedIndexData(indices)))
		}},
		{"UnsignedShort", func() *MeshData {
			indices := []uint16{2, 0, 1}
			return Must(NewIndexedOnly(mesh.PrimitiveTriangles, strided.Of(indices).Data(), NewTypedIndexData(indices)))
		}},
		{"UnsignedInt", func() *MeshData {
			indices := []uint32{2, 0, 1}
			return Must(NewIndexedOnly(mesh.PrimitiveTriangles, strided.Of(indices).Data(), NewTypedIndexData(indices)))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.md().IndicesAsArray()
			if len(got) != 3 || got[0] != 2 || got[1] != 0 || got[2] != 1 {
				t.Errorf("expected [2 0 1], got %v", got)
			}
		})
	}

	md := tests[0].md()
	expectViolation(t, mesh.ErrCardinality, func() { md.IndicesInto(make([]uint32, 2)) })

	counted := Must(NewVertexCountOnly(mesh.PrimitiveTriangles, 3))
	expectViolation(t, mesh.ErrCardinality, func() { counted.IndicesAsArray() })
}

func TestPositionsAsArray(t *testing.T) {
	flat := singleAttribute(t, AttributePosition, mesh.VertexFormatVector2, []math.Vec2{{X: 1, Y: 2}, {X: 3, Y: 4}})
	got3 := flat.Positions3DAsArray(0)
	if got3[0] != (math.Vec3{X: 1, Y: 2}) || got3[1] != (math.Vec3{X: 3, Y: 4}) {
		t.Errorf("expected Z to be zero-filled, got %v", got3)
	}
	got2 := flat.Positions2DAsArray(0)
	if got2[1] != (math.Vec2{X: 3, Y: 4}) {
		t.Errorf("expected (3, 4), got %v", got2[1])
	}

	packed := singleAttribute(t, AttributePosition, mesh.VertexFormatVector3s, [][3]int16{{1, -2, 3}})
	if got := packed.Positions2DAsArray(0); got[0] != (math.Vec2{X: 1, Y: -2}) {
		t.Errorf("expected (1, -2), got %v", got[0])
	}

	half := singleAttribute(t, AttributePosition, mesh.VertexFormatVector3h, [][3]float16.Float16{
		{float16.Fromfloat32(0.5), float16.Fromfloat32(-2), float16.Fromfloat32(8)},
	})
	if got := half.Positions3DAsArray(0); got[0] != (math.Vec3{X: 0.5, Y: -2, Z: 8}) {
		t.Errorf("expected (0.5, -2, 8), got %v", got[0])
	}

	expectViolation(t, mesh.ErrCardinality, func() { flat.Positions3DInto(make([]math.Vec3, 3), 0) })
	expectViolation(t, mesh.ErrCardinality, func() { flat.Positions3DAsArray(1) })
}

func TestNormalsAsArray(t *testing.T) {
	md := singleAttribute(t, AttributeNormal, mesh.VertexFormatVector3bNormalized, [][3]int8{
		{127, 0, -128},
		{0, -127, 0},
	})
	got := md.NormalsAsArray(0)
	if got[0] != (math.Vec3{X: 1, Z: -1}) {
		t.Errorf("expected (1, 0, -1), got %v", got[0])
	}
	if got[1] != (math.Vec3{Y: -1}) {
		t.Errorf("expected (0, -1, 0), got %v", got[1])
	}

	shorts := singleAttribute(t, AttributeNormal, mesh.VertexFormatVector3sNormalized, [][3]int16{{0, 32767, -32768}})
	if got := shorts.NormalsAsArray(0); got[0] != (math.Vec3{Y: 1, Z: -1}) {
		t.Errorf("expected (0, 1, -1), got %v", got[0])
	}

	expectViolation(t, mesh.ErrCardinality, func() { shorts.ColorsAsArray(0) })
}

func TestTextureCoordinatesAsArray(t *testing.T) {
	normalized := singleAttribute(t, AttributeTextureCoordinates, mesh.VertexFormatVector2usNormalized, [][2]uint16{{65535, 0}})
	if got := normalized.TextureCoordinates2DAsArray(0); got[0] != (math.Vec2{X: 1}) {
		t.Errorf("expected (1, 0), got %v", got[0])
	}

	plain := singleAttribute(t, AttributeTextureCoordinates, mesh.VertexFormatVector2ub, [][2]uint8{{3, 4}})
	if got := plain.TextureCoordinates2DAsArray(0); got[0] != (math.Vec2{X: 3, Y: 4}) {
		t.Errorf("expected (3, 4), got %v", got[0])
	}

	dst := make([]math.Vec2, 1)
	plain.TextureCoordinates2DInto(dst, 0)
	if dst[0] != (math.Vec2{X: 3, Y: 4}) {
		t.Errorf("expected (3, 4) in destination, got %v", dst[0])
	}
}

func TestColorsAsArray(t *testing.T) {
	rgb := singleAttribute(t, AttributeColor, mesh.VertexFormatVector3ubNormalized, []math.Color3ub{{R: 255, G: 0, B: 51}})
	if got := rgb.ColorsAsArray(0); got[0] != (math.Color4{R: 1, G: 0, B: 0.2, A: 1}) {
		t.Errorf("expected (1, 0, 0.2, 1), got %v", got[0])
	}

	rgba := singleAttribute(t, AttributeColor, mesh.VertexFormatVector4h, []math.Color4h{{
		R: float16.Fromfloat32(0.25),
		G: float16.Fromfloat32(0.5),
		B: float16.Fromfloat32(0.75),
		A: float16.Fromfloat32(0),
	}})
	if got := rgba.ColorsAsArray(0); got[0] != (math.Color4{R: 0.25, G: 0.5, B: 0.75, A: 0}) {
		t.Errorf("expected (0.25, 0.5, 0.75, 0), got %v", got[0])
	}

	floats := singleAttribute(t, AttributeColor, mesh.VertexFormatVector3, []math.Color3{{R: 0.5, G: 0.5, B: 0.5}})
	if got := floats.ColorsAsArray(0); got[0].A != 1 {
		t.Errorf("expected alpha 1, got %v", got[0].A)
	}
}

func TestExtractOffsetOnly(t *testing.T) {
	l := newInterleaved()
	md := Must(NewNonIndexed(mesh.PrimitiveTriangles, l.vertexData, l.offsetAttributes()))

	positions := md.Positions3DAsArray(0)
	if positions[2] != (math.Vec3{X: 2, Y: 4, Z: 6}) {
		t.Errorf("expected (2, 4, 6), got %v", positions[2])
	}
	uvs := md.TextureCoordinates2DAsArray(0)
	if uvs[1] != (math.Vec2{X: 0.5, Y: 0.5}) {
		t.Errorf("expected (0.5, 0.5), got %v", uvs[1])
	}
}

func TestExtractUnsupportedFormat(t *testing.T) {
	custom := MustCustomAttribute(9)
	data := []float64{1, 2}
	view := strided.Of(data)
	md := Must(NewNonIndexed(mesh.PrimitivePoints, view.Data(), []AttributeData{
		MustAttribute(custom, mesh.VertexFormatDouble, view),
	}))
	expectViolation(t, mesh.ErrIncompatibleType, func() {
		decodeVectors("test", md.Attribute(0), md.AttributeFormat(0), func(int, [4]float32) {})
	})
}
