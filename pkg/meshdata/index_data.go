package meshdata

import (
	"github.com/Faultbox/midgard-mesh/pkg/mesh"
	"github.com/Faultbox/midgard-mesh/pkg/strided"
)

// IndexData describes the index buffer of a mesh: its element type and the
// bytes holding the indices. The zero value means "not indexed".
type IndexData struct {
	typ  mesh.IndexType
	data []byte
}

// NoIndices returns index data for a non-indexed mesh.
func NoIndices() IndexData {
	return IndexData{}
}

// NewIndexData describes type-erased index bytes. The length of data has to
// be a multiple of the type size.
func NewIndexData(typ mesh.IndexType, data []byte) (IndexData, error) {
	const op = "meshdata.NewIndexData"
	if !typ.IsValid() {
		return IndexData{}, mesh.Violation(op, mesh.ErrInvalidEnumerant, "invalid index type %s", typ)
	}
	if size := int(typ.Size()); len(data)%size != 0 {
		return IndexData{}, mesh.Violation(op, mesh.ErrLayout,
			"view size %d does not correspond to %s", len(data), typ)
	}
	return IndexData{typ: typ, data: data}, nil
}

// MustIndexData is like NewIndexData but panics on failure.
func MustIndexData(typ mesh.IndexType, data []byte) IndexData {
	return must(NewIndexData(typ, data))
}

// NewTypedIndexData describes a slice of indices, inferring the type.
func NewTypedIndexData[T uint8 | uint16 | uint32](indices []T) IndexData {
	data := strided.Of(indices).Data()
	if data == nil {
		data = []byte{}
	}
	return IndexData{typ: IndexTypeFor[T](), data: data}
}

// NewIndexDataFrom2D describes indices from a view whose element size
// selects the type. The view has to be contiguous.
func NewIndexDataFrom2D(view strided.Bytes) (IndexData, error) {
	const op = "meshdata.NewIndexDataFrom2D"
	var typ mesh.IndexType
	switch view.Size() {
	case 1:
		typ = mesh.IndexTypeUnsignedByte
	case 2:
		typ = mesh.IndexTypeUnsignedShort
	case 4:
		typ = mesh.IndexTypeUnsignedInt
	default:
		return IndexData{}, mesh.Violation(op, mesh.ErrLayout,
			"expected index type size 1, 2 or 4 but got %d", view.Size())
	}
	if !view.IsContiguous() {
		return IndexData{}, mesh.Violation(op, mesh.ErrLayout, "view is not contiguous")
	}
	data := view.Data()
	if data == nil {
		data = []byte{}
	}
	return IndexData{typ: typ, data: data}, nil
}

// Type returns the index type, invalid for non-indexed meshes.
func (d IndexData) Type() mesh.IndexType { return d.typ }

// Data returns the index bytes.
func (d IndexData) Data() []byte { return d.data }

// IsIndexed reports whether the data describes indices.
func (d IndexData) IsIndexed() bool { return d.typ != mesh.IndexTypeInvalid }

// view returns the indices as a contiguous byte view.
func (d IndexData) view() strided.Bytes {
	if !d.IsIndexed() {
		return strided.Bytes{}
	}
	size := int(d.typ.Size())
	return strided.MustBytes(d.data, len(d.data)/size, size, size)
}
