package meshdata

import (
	"github.com/x448/float16"

	"github.com/Faultbox/midgard-mesh/pkg/math"
	"github.com/Faultbox/midgard-mesh/pkg/mesh"
	"github.com/Faultbox/midgard-mesh/pkg/strided"
)

// IndicesAsArray returns the indices widened to 32 bits.
func (md *MeshData) IndicesAsArray() []uint32 {
	md.requireIndexed("MeshData.IndicesAsArray")
	out := make([]uint32, md.indices.Len())
	md.IndicesInto(out)
	return out
}

// IndicesInto widens the indices into dst, which has to have exactly
// IndexCount elements.
func (md *MeshData) IndicesInto(dst []uint32) {
	const op = "MeshData.IndicesInto"
	md.requireIndexed(op)
	checkDestination(op, len(dst), md.indices.Len())

	switch md.indexType {
	case mesh.IndexTypeUnsignedByte:
		widenIndices(strided.MustCast[uint8](md.indices), dst)
	case mesh.IndexTypeUnsignedShort:
		widenIndices(strided.MustCast[uint16](md.indices), dst)
	case mesh.IndexTypeUnsignedInt:
		widenIndices(strided.MustCast[uint32](md.indices), dst)
	}
}

func widenIndices[T uint8 | uint16 | uint32](src strided.View[T], dst []uint32) {
	for i := range dst {
		dst[i] = uint32(src.Get(i))
	}
}

// Positions2DAsArray returns the n-th position attribute as 2D vectors,
// dropping Z of 3D positions.
func (md *MeshData) Positions2DAsArray(n uint32) []math.Vec2 {
	out := make([]math.Vec2, md.vertexCount)
	md.Positions2DInto(out, n)
	return out
}

// Positions2DInto is like Positions2DAsArray but writes into dst, which has
// to have exactly VertexCount elements.
func (md *MeshData) Positions2DInto(dst []math.Vec2, n uint32) {
	md.extract("MeshData.Positions2DInto", AttributePosition, n, len(dst), func(i int, v [4]float32) {
		dst[i] = math.Vec2{X: v[0], Y: v[1]}
	})
}

// Positions3DAsArray returns the n-th position attribute as 3D vectors, with
// Z of 2D positions set to zero.
func (md *MeshData) Positions3DAsArray(n uint32) []math.Vec3 {
	out := make([]math.Vec3, md.vertexCount)
	md.Positions3DInto(out, n)
	return out
}

// Positions3DInto is like Positions3DAsArray but writes into dst.
func (md *MeshData) Positions3DInto(dst []math.Vec3, n uint32) {
	md.extract("MeshData.Positions3DInto", AttributePosition, n, len(dst), func(i int, v [4]float32) {
		dst[i] = math.Vec3{X: v[0], Y: v[1], Z: v[2]}
	})
}

// NormalsAsArray returns the n-th normal attribute as float vectors.
func (md *MeshData) NormalsAsArray(n uint32) []math.Vec3 {
	out := make([]math.Vec3, md.vertexCount)
	md.NormalsInto(out, n)
	return out
}

// NormalsInto is like NormalsAsArray but writes into dst.
func (md *MeshData) NormalsInto(dst []math.Vec3, n uint32) {
	md.extract("MeshData.NormalsInto", AttributeNormal, n, len(dst), func(i int, v [4]float32) {
		dst[i] = math.Vec3{X: v[0], Y: v[1], Z: v[2]}
	})
}

// TextureCoordinates2DAsArray returns the n-th texture coordinate attribute
// as float vectors.
func (md *MeshData) TextureCoordinates2DAsArray(n uint32) []math.Vec2 {
	out := make([]math.Vec2, md.vertexCount)
	md.TextureCoordinates2DInto(out, n)
	return out
}

// TextureCoordinates2DInto is like TextureCoordinates2DAsArray but writes
// into dst.
func (md *MeshData) TextureCoordinates2DInto(dst []math.Vec2, n uint32) {
	md.extract("MeshData.TextureCoordinates2DInto", AttributeTextureCoordinates, n, len(dst), func(i int, v [4]float32) {
		dst[i] = math.Vec2{X: v[0], Y: v[1]}
	})
}

// ColorsAsArray returns the n-th color attribute as RGBA, with alpha of RGB
// colors set to one.
func (md *MeshData) ColorsAsArray(n uint32) []math.Color4 {
	out := make([]math.Color4, md.vertexCount)
	md.ColorsInto(out, n)
	return out
}

// ColorsInto is like ColorsAsArray but writes into dst.
func (md *MeshData) ColorsInto(dst []math.Color4, n uint32) {
	md.extract("MeshData.ColorsInto", AttributeColor, n, len(dst), func(i int, v [4]float32) {
		dst[i] = math.Color4{R: v[0], G: v[1], B: v[2], A: v[3]}
	})
}

func (md *MeshData) extract(op string, name Attribute, n uint32, dstLen int, out func(int, [4]float32)) {
	id := md.attributeFor(op, name, n)
	checkDestination(op, dstLen, int(md.vertexCount))
	a := md.AttributeDataAt(id)
	decodeVectors(op, a.Data(), a.format, out)
}

func checkDestination(op string, got, want int) {
	if got != want {
		panic(mesh.Violation(op, mesh.ErrCardinality, "expected a view with %d elements but got %d", want, got))
	}
}

// decodeVectors unpacks every element of data into a float vector. Missing
// components are (0, 0, 0, 1).
func decodeVectors(op string, data strided.Bytes, format mesh.VertexFormat, out func(int, [4]float32)) {
	if format.IsImplementationSpecific() {
		panic(mesh.Violation(op, mesh.ErrImplementationSpecific,
			"can't extract data out of an implementation-specific format %s", format))
	}
	n := int(format.ComponentCount())
	normalized := format.IsNormalized()

	switch format.ComponentFormat() {
	case mesh.VertexFormatFloat:
		decodeComponents(data, n, func(x float32) float32 { return x }, out)
	case mesh.VertexFormatHalf:
		decodeComponents(data, n, func(x float16.Float16) float32 { return x.Float32() }, out)
	case mesh.VertexFormatUnsignedByte:
		if normalized {
			decodeComponents(data, n, func(x uint8) float32 { return float32(x) / 255 }, out)
		} else {
			decodeComponents(data, n, func(x uint8) float32 { return float32(x) }, out)
		}
	case mesh.VertexFormatByte:
		if normalized {
			decodeComponents(data, n, func(x int8) float32 { return max(float32(x)/127, -1) }, out)
		} else {
			decodeComponents(data, n, func(x int8) float32 { return float32(x) }, out)
		}
	case mesh.VertexFormatUnsignedShort:
		if normalized {
			decodeComponents(data, n, func(x uint16) float32 { return float32(x) / 65535 }, out)
		} else {
			decodeComponents(data, n, func(x uint16) float32 { return float32(x) }, out)
		}
	case mesh.VertexFormatShort:
		if normalized {
			decodeComponents(data, n, func(x int16) float32 { return max(float32(x)/32767, -1) }, out)
		} else {
			decodeComponents(data, n, func(x int16) float32 { return float32(x) }, out)
		}
	default:
		panic(mesh.Violation(op, mesh.ErrIncompatibleType, "can't extract data out of %s", format))
	}
}

func decodeComponents[T any](data strided.Bytes, n int, convert func(T) float32, out func(int, [4]float32)) {
	arr, err := strided.CastArray[T](data, n)
	if err != nil {
		panic(err)
	}
	for i := 0; i < arr.Len(); i++ {
		v := [4]float32{0, 0, 0, 1}
		for j := 0; j < n; j++ {
			v[j] = convert(arr.Get(i, j))
		}
		out(i, v)
	}
}
