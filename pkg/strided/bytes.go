// Package strided provides strided views over byte buffers and the typed
// views built on top of them.
//
// This package is the only place in the module that reinterprets raw bytes
// as typed values. Everything else goes through Cast, CastArray, Of and
// FieldOf, which only accept element types without pointers.
package strided

import (
	"unsafe"

	"github.com/Faultbox/midgard-mesh/pkg/mesh"
)

// Bytes is a two-dimensional byte view: Len elements of Size bytes each,
// Stride bytes apart. The zero value is an empty view.
//
// Views share memory with the buffer they were made from. Views handed out
// by read-only accessors must not be written through.
type Bytes struct {
	data   []byte
	count  int
	size   int
	stride int
}

// NewBytes creates a view of count elements of size bytes, stride bytes
// apart, starting at the beginning of data. The whole view has to fit into
// data.
func NewBytes(data []byte, count, size, stride int) (Bytes, error) {
	if count < 0 || size < 0 || stride < 0 {
		return Bytes{}, mesh.Violation("strided.NewBytes", mesh.ErrLayout,
			"negative dimension: count %d, size %d, stride %d", count, size, stride)
	}
	b := Bytes{data: data, count: count, size: size, stride: stride}
	if span := b.Span(); span > len(data) {
		return Bytes{}, mesh.Violation("strided.NewBytes", mesh.ErrContainment,
			"view spanning %d bytes doesn't fit into %d bytes", span, len(data))
	}
	b.data = data[:b.Span():b.Span()]
	return b, nil
}

// MustBytes is like NewBytes but panics on failure.
func MustBytes(data []byte, count, size, stride int) Bytes {
	b, err := NewBytes(data, count, size, stride)
	if err != nil {
		panic(err)
	}
	return b
}

// Contiguous returns a view of count elements packed back to back.
func Contiguous(data []byte, count, size int) (Bytes, error) {
	return NewBytes(data, count, size, size)
}

// Len returns the number of elements.
func (b Bytes) Len() int { return b.count }

// Size returns the size of one element in bytes.
func (b Bytes) Size() int { return b.size }

// Stride returns the distance between two consecutive elements in bytes.
func (b Bytes) Stride() int { return b.stride }

// IsEmpty reports whether the view has no elements.
func (b Bytes) IsEmpty() bool { return b.count == 0 }

// IsContiguous reports whether elements are packed without gaps.
func (b Bytes) IsContiguous() bool {
	return b.count <= 1 || b.stride == b.size
}

// Span returns the number of bytes between the start of the first element
// and the end of the last one.
func (b Bytes) Span() int {
	if b.count == 0 {
		return 0
	}
	return (b.count-1)*b.stride + b.size
}

// Data returns the bytes spanned by the view. For non-contiguous views this
// includes the gaps between elements.
func (b Bytes) Data() []byte {
	return b.data
}

// At returns element i.
func (b Bytes) At(i int) []byte {
	if i < 0 || i >= b.count {
		panic(mesh.Violation("strided.Bytes.At", mesh.ErrCardinality,
			"index %d out of range for %d elements", i, b.count))
	}
	start := i * b.stride
	return b.data[start : start+b.size : start+b.size]
}

// Prefix returns the first n elements. A zero-length prefix keeps the start
// address of the original view.
func (b Bytes) Prefix(n int) Bytes {
	if n < 0 || n > b.count {
		panic(mesh.Violation("strided.Bytes.Prefix", mesh.ErrCardinality,
			"prefix %d out of range for %d elements", n, b.count))
	}
	out := b
	out.count = n
	out.data = b.data[:out.Span():out.Span()]
	return out
}

// Field narrows every element to size bytes starting at offset.
func (b Bytes) Field(offset, size int) Bytes {
	if offset < 0 || size < 0 || offset+size > b.size {
		panic(mesh.Violation("strided.Bytes.Field", mesh.ErrLayout,
			"field [%d, %d) outside of %d-byte elements", offset, offset+size, b.size))
	}
	out := Bytes{count: b.count, size: size, stride: b.stride}
	if b.count == 0 {
		out.data = b.data[:0:0]
		return out
	}
	out.data = b.data[offset : offset+out.Span() : offset+out.Span()]
	return out
}

// CopyTo copies the elements packed back to back into dst, which has to be
// Len()*Size() bytes.
func (b Bytes) CopyTo(dst []byte) {
	if len(dst) != b.count*b.size {
		panic(mesh.Violation("strided.Bytes.CopyTo", mesh.ErrCardinality,
			"expected %d bytes, got %d", b.count*b.size, len(dst)))
	}
	for i := 0; i < b.count; i++ {
		copy(dst[i*b.size:], b.At(i))
	}
}

// address returns the start address of the view, valid even for empty
// views sliced from a real buffer.
func (b Bytes) address() uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(b.data)))
}

// OffsetFrom returns the distance in bytes between the start of base and the
// start of the view. The result is meaningful only when the view was sliced
// from the same allocation as base.
func (b Bytes) OffsetFrom(base []byte) int {
	return int(b.address()) - int(uintptr(unsafe.Pointer(unsafe.SliceData(base))))
}

// In reports whether the view lies entirely within buf. Empty views are
// contained in anything.
func (b Bytes) In(buf []byte) bool {
	if b.Span() == 0 {
		return true
	}
	start := uintptr(unsafe.Pointer(unsafe.SliceData(buf)))
	addr := b.address()
	if addr < start {
		return false
	}
	return addr-start+uintptr(b.Span()) <= uintptr(len(buf))
}
