package meshdata

import (
	"math"
	"strconv"

	"github.com/Faultbox/midgard-mesh/pkg/mesh"
	"github.com/Faultbox/midgard-mesh/pkg/strided"
)

// MaxStride is the largest stride an attribute can have.
const MaxStride = math.MaxInt16

// attributeStorage is either directStorage or offsetStorage.
type attributeStorage interface {
	isAttributeStorage()
}

// directStorage points into caller memory.
type directStorage struct {
	data strided.Bytes
}

// offsetStorage is resolved against a vertex buffer supplied later.
type offsetStorage struct {
	offset uint64
}

func (directStorage) isAttributeStorage() {}
func (offsetStorage) isAttributeStorage() {}

// AttributeData describes one named attribute channel: its format, optional
// array size, vertex count, stride and where the data lives.
//
// The data is either a direct view into memory or a byte offset into a
// vertex buffer supplied later, see IsOffsetOnly. A third kind, created with
// PaddingAttribute, only carries a stride and marks a gap for code that
// builds interleaved layouts.
type AttributeData struct {
	name        Attribute
	format      mesh.VertexFormat
	arraySize   uint16
	vertexCount uint32
	stride      int16
	storage     attributeStorage
}

// NewAttribute describes a type-erased attribute view. The element size of
// data has to be at least the size of format; larger elements are narrowed.
func NewAttribute(name Attribute, format mesh.VertexFormat, data strided.Bytes) (AttributeData, error) {
	return newDirectAttribute("meshdata.NewAttribute", name, format, 0, data, false)
}

// MustAttribute is like NewAttribute but panics on failure.
func MustAttribute(name Attribute, format mesh.VertexFormat, data strided.Bytes) AttributeData {
	return must(NewAttribute(name, format, data))
}

// NewArrayAttribute describes an attribute where every vertex holds
// arraySize values of format. Only custom attributes can be arrays.
func NewArrayAttribute(name Attribute, format mesh.VertexFormat, arraySize uint16, data strided.Bytes) (AttributeData, error) {
	return newDirectAttribute("meshdata.NewArrayAttribute", name, format, arraySize, data, false)
}

// NewAttributeFrom2D describes an attribute from a view where each element
// is exactly one vertex worth of bytes.
func NewAttributeFrom2D(name Attribute, format mesh.VertexFormat, arraySize uint16, data strided.Bytes) (AttributeData, error) {
	return newDirectAttribute("meshdata.NewAttributeFrom2D", name, format, arraySize, data, true)
}

// NewOffsetAttribute describes an attribute located at offset in a vertex
// buffer that is supplied to MeshData or DataIn later.
func NewOffsetAttribute(name Attribute, format mesh.VertexFormat, offset uint64, vertexCount uint32, stride int, arraySize uint16) (AttributeData, error) {
	const op = "meshdata.NewOffsetAttribute"
	a := AttributeData{
		name:        name,
		format:      format,
		arraySize:   arraySize,
		vertexCount: vertexCount,
		storage:     offsetStorage{offset: offset},
	}
	if err := a.validate(op, stride); err != nil {
		return AttributeData{}, err
	}
	a.stride = int16(stride)
	return a, nil
}

// MustOffsetAttribute is like NewOffsetAttribute but panics on failure.
func MustOffsetAttribute(name Attribute, format mesh.VertexFormat, offset uint64, vertexCount uint32, stride int, arraySize uint16) AttributeData {
	return must(NewOffsetAttribute(name, format, offset, vertexCount, stride, arraySize))
}

// PaddingAttribute returns a spacer of the given number of bytes. It can't
// be part of a MeshData.
func PaddingAttribute(padding int) (AttributeData, error) {
	if padding < math.MinInt16 || padding > math.MaxInt16 {
		return AttributeData{}, mesh.Violation("meshdata.PaddingAttribute", mesh.ErrLayout,
			"padding %d out of range [%d, %d]", padding, math.MinInt16, math.MaxInt16)
	}
	return AttributeData{stride: int16(padding)}, nil
}

func newDirectAttribute(op string, name Attribute, format mesh.VertexFormat, arraySize uint16, data strided.Bytes, exact bool) (AttributeData, error) {
	if uint64(data.Len()) > math.MaxUint32 {
		return AttributeData{}, mesh.Violation(op, mesh.ErrLayout, "%d vertices don't fit into 32 bits", data.Len())
	}
	a := AttributeData{
		name:        name,
		format:      format,
		arraySize:   arraySize,
		vertexCount: uint32(data.Len()),
	}
	if err := a.validate(op, data.Stride()); err != nil {
		return AttributeData{}, err
	}

	if !format.IsImplementationSpecific() {
		size := a.elementSize()
		switch {
		case exact && data.Size() != size:
			return AttributeData{}, mesh.Violation(op, mesh.ErrLayout,
				"second dimension size %d doesn't match %s", data.Size(), a.describe())
		case data.Size() < size:
			return AttributeData{}, mesh.Violation(op, mesh.ErrLayout,
				"%d-byte elements too small for %s", data.Size(), a.describe())
		case data.Size() > size:
			data = data.Field(0, size)
		}
	}

	a.stride = int16(data.Stride())
	a.storage = directStorage{data: data}
	return a, nil
}

// validate is the check every constructor funnels through.
func (a AttributeData) validate(op string, stride int) error {
	if !a.name.IsValid() {
		return mesh.Violation(op, mesh.ErrInvalidEnumerant, "invalid attribute name %s", a.name)
	}
	if !a.format.IsValid() {
		return mesh.Violation(op, mesh.ErrInvalidEnumerant, "invalid format %s for %s", a.format, a.name)
	}
	if !IsFormatAllowed(a.name, a.format) {
		return mesh.Violation(op, mesh.ErrIncompatibleType, "%s is not a valid format for %s", a.format, a.name)
	}
	if a.arraySize != 0 {
		if !a.name.IsCustom() {
			return mesh.Violation(op, mesh.ErrIncompatibleType, "%s can't be an array attribute", a.name)
		}
		if a.format.IsImplementationSpecific() {
			return mesh.Violation(op, mesh.ErrImplementationSpecific,
				"array attributes can't have an implementation-specific format")
		}
	}
	if stride < 0 || stride > MaxStride {
		return mesh.Violation(op, mesh.ErrLayout, "stride %d out of range [0, %d]", stride, MaxStride)
	}
	if a.vertexCount != 0 && !a.format.IsImplementationSpecific() && stride < a.elementSize() {
		return mesh.Violation(op, mesh.ErrLayout,
			"stride %d is not large enough to contain %s", stride, a.describe())
	}
	return nil
}

// elementSize is the byte size of one vertex worth of a named format.
func (a AttributeData) elementSize() int {
	return int(a.format.Size()) * max(int(a.arraySize), 1)
}

func (a AttributeData) describe() string {
	if a.arraySize != 0 {
		return a.format.String() + "[" + strconv.Itoa(int(a.arraySize)) + "]"
	}
	return a.format.String()
}

// Name returns the attribute name, zero for padding.
func (a AttributeData) Name() Attribute { return a.name }

// Format returns the attribute format, invalid for padding.
func (a AttributeData) Format() mesh.VertexFormat { return a.format }

// ArraySize returns the array size, zero for non-array attributes.
func (a AttributeData) ArraySize() uint16 { return a.arraySize }

// VertexCount returns the number of vertices.
func (a AttributeData) VertexCount() uint32 { return a.vertexCount }

// Stride returns the attribute stride, or the padding amount for padding.
func (a AttributeData) Stride() int { return int(a.stride) }

// IsPadding reports whether the descriptor was created by PaddingAttribute.
func (a AttributeData) IsPadding() bool { return a.storage == nil }

// IsOffsetOnly reports whether the data is a byte offset into a vertex
// buffer rather than a direct view.
func (a AttributeData) IsOffsetOnly() bool {
	_, ok := a.storage.(offsetStorage)
	return ok
}

// Offset returns the byte offset of an offset-only attribute.
func (a AttributeData) Offset() uint64 {
	s, ok := a.storage.(offsetStorage)
	if !ok {
		panic(mesh.Violation("meshdata.AttributeData.Offset", mesh.ErrLayout,
			"the attribute is not offset-only"))
	}
	return s.offset
}

// Data returns the view of a direct attribute.
func (a AttributeData) Data() strided.Bytes {
	s, ok := a.storage.(directStorage)
	if !ok {
		panic(mesh.Violation("meshdata.AttributeData.Data", mesh.ErrLayout,
			"the attribute is offset-only or padding, supply the vertex data"))
	}
	return s.data
}

// DataIn resolves an offset-only attribute against vertexData.
func (a AttributeData) DataIn(vertexData []byte) strided.Bytes {
	const op = "meshdata.AttributeData.DataIn"
	s, ok := a.storage.(offsetStorage)
	if !ok {
		panic(mesh.Violation(op, mesh.ErrLayout,
			"the attribute is not offset-only, use Data() instead"))
	}
	if a.vertexCount == 0 {
		size := 0
		if !a.format.IsImplementationSpecific() {
			size = a.elementSize()
		}
		if s.offset <= uint64(len(vertexData)) {
			return strided.MustBytes(vertexData[s.offset:], 0, size, int(a.stride))
		}
		return strided.MustBytes(nil, 0, size, int(a.stride))
	}
	size, err := a.offsetElementSize(op, len(vertexData))
	if err != nil {
		panic(err)
	}
	return strided.MustBytes(vertexData[s.offset:], int(a.vertexCount), size, int(a.stride))
}

// offsetElementSize checks that an offset-only attribute fits into bufLen
// bytes and returns its element size. Implementation-specific formats have
// no known size, so elements span up to the stride while still fitting into
// the buffer. The checks subtract from the buffer length instead of adding
// to the offset so that huge offsets can't wrap around.
func (a AttributeData) offsetElementSize(op string, bufLen int) (int, error) {
	offset := a.storage.(offsetStorage).offset
	n := uint64(bufLen)
	if offset > n {
		return 0, mesh.Violation(op, mesh.ErrContainment,
			"attribute offset %d is past the end of %d bytes of vertex data", offset, bufLen)
	}
	if a.vertexCount == 0 {
		if a.format.IsImplementationSpecific() {
			return 0, nil
		}
		return a.elementSize(), nil
	}

	// At most 2^32 vertices times a 15-bit stride, no overflow.
	last := uint64(a.vertexCount-1) * uint64(a.stride)
	avail := n - offset
	if a.format.IsImplementationSpecific() {
		if last >= avail {
			return 0, mesh.Violation(op, mesh.ErrContainment,
				"attribute starting at %d is not contained in %d bytes of vertex data", offset+last, bufLen)
		}
		return int(min(uint64(a.stride), avail-last)), nil
	}
	size := a.elementSize()
	if last+uint64(size) > avail {
		return 0, mesh.Violation(op, mesh.ErrContainment,
			"attribute [%d:%d] is not contained in %d bytes of vertex data", offset, offset+last+uint64(size), bufLen)
	}
	return size, nil
}

// emptied returns a copy truncated to zero vertices, keeping the
// start address of direct views.
func (a AttributeData) emptied() AttributeData {
	a.vertexCount = 0
	if s, ok := a.storage.(directStorage); ok {
		a.storage = directStorage{data: s.data.Prefix(0)}
	}
	return a
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
