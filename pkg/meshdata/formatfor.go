package meshdata

import (
	"reflect"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/x448/float16"

	"github.com/Faultbox/midgard-mesh/pkg/math"
	"github.com/Faultbox/midgard-mesh/pkg/mesh"
	"github.com/Faultbox/midgard-mesh/pkg/strided"
)

// vertexFormats maps Go element types to the vertex format they are stored
// as. Color types deliberately differ from same-layout vectors.
var vertexFormats = map[reflect.Type]mesh.VertexFormat{}

func register[T any](format mesh.VertexFormat) {
	vertexFormats[reflect.TypeFor[T]()] = format
}

func init() {
	register[float32](mesh.VertexFormatFloat)
	register[float16.Float16](mesh.VertexFormatHalf)
	register[float64](mesh.VertexFormatDouble)
	register[uint8](mesh.VertexFormatUnsignedByte)
	register[int8](mesh.VertexFormatByte)
	register[uint16](mesh.VertexFormatUnsignedShort)
	register[int16](mesh.VertexFormatShort)
	register[uint32](mesh.VertexFormatUnsignedInt)
	register[int32](mesh.VertexFormatInt)

	register[[2]float32](mesh.VertexFormatVector2)
	register[[2]float16.Float16](mesh.VertexFormatVector2h)
	register[[2]float64](mesh.VertexFormatVector2d)
	register[[2]uint8](mesh.VertexFormatVector2ub)
	register[[2]int8](mesh.VertexFormatVector2b)
	register[[2]uint16](mesh.VertexFormatVector2us)
	register[[2]int16](mesh.VertexFormatVector2s)
	register[[2]uint32](mesh.VertexFormatVector2ui)
	register[[2]int32](mesh.VertexFormatVector2i)

	register[[3]float32](mesh.VertexFormatVector3)
	register[[3]float16.Float16](mesh.VertexFormatVector3h)
	register[[3]float64](mesh.VertexFormatVector3d)
	register[[3]uint8](mesh.VertexFormatVector3ub)
	register[[3]int8](mesh.VertexFormatVector3b)
	register[[3]uint16](mesh.VertexFormatVector3us)
	register[[3]int16](mesh.VertexFormatVector3s)
	register[[3]uint32](mesh.VertexFormatVector3ui)
	register[[3]int32](mesh.VertexFormatVector3i)

	register[[4]float32](mesh.VertexFormatVector4)
	register[[4]float16.Float16](mesh.VertexFormatVector4h)
	register[[4]float64](mesh.VertexFormatVector4d)
	register[[4]uint8](mesh.VertexFormatVector4ub)
	register[[4]int8](mesh.VertexFormatVector4b)
	register[[4]uint16](mesh.VertexFormatVector4us)
	register[[4]int16](mesh.VertexFormatVector4s)
	register[[4]uint32](mesh.VertexFormatVector4ui)
	register[[4]int32](mesh.VertexFormatVector4i)

	register[math.Vec2](mesh.VertexFormatVector2)
	register[math.Vec3](mesh.VertexFormatVector3)
	register[math.Vec4](mesh.VertexFormatVector4)
	register[mgl32.Vec2](mesh.VertexFormatVector2)
	register[mgl32.Vec3](mesh.VertexFormatVector3)
	register[mgl32.Vec4](mesh.VertexFormatVector4)

	register[math.Color3](mesh.VertexFormatVector3)
	register[math.Color4](mesh.VertexFormatVector4)
	register[math.Color3h](mesh.VertexFormatVector3h)
	register[math.Color4h](mesh.VertexFormatVector4h)
	register[math.Color3ub](mesh.VertexFormatVector3ubNormalized)
	register[math.Color4ub](mesh.VertexFormatVector4ubNormalized)
	register[math.Color3us](mesh.VertexFormatVector3usNormalized)
	register[math.Color4us](mesh.VertexFormatVector4usNormalized)
}

// FormatFor returns the vertex format T is stored as.
func FormatFor[T any]() (mesh.VertexFormat, bool) {
	f, ok := vertexFormats[reflect.TypeFor[T]()]
	return f, ok
}

// IsFormatCompatible reports whether data stored in format can be accessed
// as T. Plain integer types also accept the normalized variant, types
// registered with a normalized format accept only that one.
func IsFormatCompatible[T any](format mesh.VertexFormat) bool {
	own, ok := FormatFor[T]()
	if !ok || !format.IsValid() || format.IsImplementationSpecific() {
		return false
	}
	if own == format {
		return true
	}
	if own.IsNormalized() || own.ComponentFormat() != format.ComponentFormat() || own.ComponentCount() != format.ComponentCount() {
		return false
	}
	switch own.ComponentFormat() {
	case mesh.VertexFormatUnsignedByte, mesh.VertexFormatByte,
		mesh.VertexFormatUnsignedShort, mesh.VertexFormatShort:
		return true
	}
	return false
}

// IndexTypeFor returns the index type T is stored as.
func IndexTypeFor[T uint8 | uint16 | uint32]() mesh.IndexType {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return mesh.IndexTypeUnsignedByte
	case uint16:
		return mesh.IndexTypeUnsignedShort
	}
	return mesh.IndexTypeUnsignedInt
}

// NewTypedAttribute describes an attribute over a slice, inferring the
// format from T.
func NewTypedAttribute[T any](name Attribute, data []T) (AttributeData, error) {
	return NewTypedAttributeStrided(name, strided.SliceOf(data))
}

// MustTypedAttribute is like NewTypedAttribute but panics on failure.
func MustTypedAttribute[T any](name Attribute, data []T) AttributeData {
	return must(NewTypedAttribute(name, data))
}

// NewTypedAttributeStrided describes an attribute over a typed view,
// inferring the format from T.
func NewTypedAttributeStrided[T any](name Attribute, view strided.View[T]) (AttributeData, error) {
	const op = "meshdata.NewTypedAttribute"
	format, ok := FormatFor[T]()
	if !ok {
		var zero T
		return AttributeData{}, mesh.Violation(op, mesh.ErrIncompatibleType, "no vertex format for %T", zero)
	}
	return newDirectAttribute(op, name, format, 0, view.Bytes(), true)
}

// NewTypedArrayAttribute describes an array attribute over a typed array
// view, inferring the element format from T.
func NewTypedArrayAttribute[T any](name Attribute, view strided.Array[T]) (AttributeData, error) {
	const op = "meshdata.NewTypedArrayAttribute"
	format, ok := FormatFor[T]()
	if !ok {
		var zero T
		return AttributeData{}, mesh.Violation(op, mesh.ErrIncompatibleType, "no vertex format for %T", zero)
	}
	if view.ArraySize() > 0xffff {
		return AttributeData{}, mesh.Violation(op, mesh.ErrLayout, "array size %d doesn't fit into 16 bits", view.ArraySize())
	}
	return newDirectAttribute(op, name, format, uint16(view.ArraySize()), view.Bytes(), true)
}
