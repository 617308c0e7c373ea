package strided

import (
	"unsafe"

	"github.com/Faultbox/midgard-mesh/pkg/mesh"
)

// View is a typed one-dimensional view. Elements are copied in and out of
// the underlying bytes, so views over unaligned interleaved data are safe.
type View[T any] struct {
	b Bytes
}

// Array is a typed two-dimensional view where every element is a fixed-size
// array of T.
type Array[T any] struct {
	b Bytes
	n int
}

func sizeOf[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

func bytesOf[T any](v *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), unsafe.Sizeof(*v))
}

// Cast reinterprets a byte view as a view of T. The element size of b has to
// match the size of T, and T can't contain pointers.
func Cast[T any](b Bytes) (View[T], error) {
	if err := checkPlain[T]("strided.Cast"); err != nil {
		return View[T]{}, err
	}
	if size := sizeOf[T](); b.size != size {
		var zero T
		return View[T]{}, mesh.Violation("strided.Cast", mesh.ErrLayout,
			"can't cast %d-byte elements to %T of %d bytes", b.size, zero, size)
	}
	return View[T]{b: b}, nil
}

// MustCast is like Cast but panics on failure.
func MustCast[T any](b Bytes) View[T] {
	v, err := Cast[T](b)
	if err != nil {
		panic(err)
	}
	return v
}

// CastArray reinterprets a byte view as a view of n-element arrays of T.
func CastArray[T any](b Bytes, n int) (Array[T], error) {
	if err := checkPlain[T]("strided.CastArray"); err != nil {
		return Array[T]{}, err
	}
	if n <= 0 {
		return Array[T]{}, mesh.Violation("strided.CastArray", mesh.ErrLayout, "invalid array size %d", n)
	}
	if size := sizeOf[T]() * n; b.size != size {
		var zero T
		return Array[T]{}, mesh.Violation("strided.CastArray", mesh.ErrLayout,
			"can't cast %d-byte elements to %d x %T of %d bytes", b.size, n, zero, size)
	}
	return Array[T]{b: b, n: n}, nil
}

// Of returns a contiguous byte view over the elements of s. It panics if T
// contains pointers.
func Of[T any](s []T) Bytes {
	if err := checkPlain[T]("strided.Of"); err != nil {
		panic(err)
	}
	size := sizeOf[T]()
	var data []byte
	if s != nil {
		data = unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), len(s)*size)
	}
	return Bytes{data: data, count: len(s), size: size, stride: size}
}

// FieldOf returns a byte view over one field of type F located at offset
// inside every element of s, typically obtained with unsafe.Offsetof.
func FieldOf[S, F any](s []S, offset uintptr) Bytes {
	if err := checkPlain[F]("strided.FieldOf"); err != nil {
		panic(err)
	}
	outer, inner := sizeOf[S](), sizeOf[F]()
	if int(offset)+inner > outer {
		var zs S
		var zf F
		panic(mesh.Violation("strided.FieldOf", mesh.ErrLayout,
			"%T at offset %d doesn't fit into %T", zf, offset, zs))
	}
	return Of(s).Field(int(offset), inner)
}

// SliceOf returns the typed view over a slice.
func SliceOf[T any](s []T) View[T] {
	return View[T]{b: Of(s)}
}

// Bytes returns the underlying byte view.
func (v View[T]) Bytes() Bytes { return v.b }

// Len returns the number of elements.
func (v View[T]) Len() int { return v.b.count }

// Stride returns the distance between two consecutive elements in bytes.
func (v View[T]) Stride() int { return v.b.stride }

// Get returns a copy of element i.
func (v View[T]) Get(i int) T {
	var out T
	copy(bytesOf(&out), v.b.At(i))
	return out
}

// Set overwrites element i.
func (v View[T]) Set(i int, value T) {
	copy(v.b.At(i), bytesOf(&value))
}

// Slice copies all elements into a new slice.
func (v View[T]) Slice() []T {
	out := make([]T, v.b.count)
	for i := range out {
		out[i] = v.Get(i)
	}
	return out
}

// Contiguous returns the elements as a slice sharing memory with the view.
// It fails unless elements are packed without gaps and suitably aligned for T.
func (v View[T]) Contiguous() ([]T, error) {
	if v.b.count == 0 {
		return []T{}, nil
	}
	var zero T
	if v.b.count > 1 && v.b.stride != v.b.size {
		return nil, mesh.Violation("strided.View.Contiguous", mesh.ErrLayout,
			"stride %d isn't the %d-byte size of %T", v.b.stride, v.b.size, zero)
	}
	if v.b.address()%unsafe.Alignof(zero) != 0 {
		return nil, mesh.Violation("strided.View.Contiguous", mesh.ErrLayout,
			"data isn't aligned for %T", zero)
	}
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(v.b.data))), v.b.count), nil
}

// Bytes returns the underlying byte view.
func (a Array[T]) Bytes() Bytes { return a.b }

// Len returns the number of elements.
func (a Array[T]) Len() int { return a.b.count }

// ArraySize returns the number of T in each element.
func (a Array[T]) ArraySize() int { return a.n }

func (a Array[T]) item(op string, i, j int) []byte {
	if j < 0 || j >= a.n {
		panic(mesh.Violation(op, mesh.ErrCardinality, "array index %d out of range for %d items", j, a.n))
	}
	size := a.b.size / a.n
	return a.b.At(i)[j*size : (j+1)*size]
}

// Get returns a copy of item j of element i.
func (a Array[T]) Get(i, j int) T {
	var out T
	copy(bytesOf(&out), a.item("strided.Array.Get", i, j))
	return out
}

// Set overwrites item j of element i.
func (a Array[T]) Set(i, j int, value T) {
	copy(a.item("strided.Array.Set", i, j), bytesOf(&value))
}

// Row copies all items of element i into a new slice.
func (a Array[T]) Row(i int) []T {
	out := make([]T, a.n)
	for j := range out {
		out[j] = a.Get(i, j)
	}
	return out
}
