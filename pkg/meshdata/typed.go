package meshdata

import (
	"github.com/Faultbox/midgard-mesh/pkg/mesh"
	"github.com/Faultbox/midgard-mesh/pkg/strided"
)

// Indices returns the indices as a typed view. T has to match the index
// type.
func Indices[T uint8 | uint16 | uint32](md *MeshData) strided.View[T] {
	return typedIndices[T]("meshdata.Indices", md, md.Indices())
}

// MutableIndices is like Indices, for writing.
func MutableIndices[T uint8 | uint16 | uint32](md *MeshData) strided.View[T] {
	return typedIndices[T]("meshdata.MutableIndices", md, md.MutableIndices())
}

func typedIndices[T uint8 | uint16 | uint32](op string, md *MeshData, data strided.Bytes) strided.View[T] {
	if want := IndexTypeFor[T](); md.indexType != want {
		panic(mesh.Violation(op, mesh.ErrIncompatibleType, "indices are %s but requested %s", md.indexType, want))
	}
	return strided.MustCast[T](data)
}

// Attr returns attribute id as a typed view. The format has to be
// compatible with T and the attribute can't be an array.
func Attr[T any](md *MeshData, id uint32) strided.View[T] {
	return typedAttribute[T]("meshdata.Attr", md.AttributeDataAt(id))
}

// AttrOf returns the n-th attribute named name as a typed view.
func AttrOf[T any](md *MeshData, name Attribute, n uint32) strided.View[T] {
	return Attr[T](md, md.attributeFor("meshdata.AttrOf", name, n))
}

// MutableAttr is like Attr, for writing.
func MutableAttr[T any](md *MeshData, id uint32) strided.View[T] {
	md.requireMutable("meshdata.MutableAttr", md.vertexFlags, "vertex")
	return Attr[T](md, id)
}

// MutableAttrOf is like AttrOf, for writing.
func MutableAttrOf[T any](md *MeshData, name Attribute, n uint32) strided.View[T] {
	md.requireMutable("meshdata.MutableAttrOf", md.vertexFlags, "vertex")
	return AttrOf[T](md, name, n)
}

// AttrArray returns array attribute id as a typed view of arrays of T.
func AttrArray[T any](md *MeshData, id uint32) strided.Array[T] {
	const op = "meshdata.AttrArray"
	a := md.AttributeDataAt(id)
	checkTyped[T](op, a)
	if a.arraySize == 0 {
		panic(mesh.Violation(op, mesh.ErrIncompatibleType, "%s is not an array attribute, use Attr", a.name))
	}
	arr, err := strided.CastArray[T](a.Data(), int(a.arraySize))
	if err != nil {
		panic(err)
	}
	return arr
}

// AttrArrayOf returns the n-th array attribute named name.
func AttrArrayOf[T any](md *MeshData, name Attribute, n uint32) strided.Array[T] {
	return AttrArray[T](md, md.attributeFor("meshdata.AttrArrayOf", name, n))
}

// MutableAttrArray is like AttrArray, for writing.
func MutableAttrArray[T any](md *MeshData, id uint32) strided.Array[T] {
	md.requireMutable("meshdata.MutableAttrArray", md.vertexFlags, "vertex")
	return AttrArray[T](md, id)
}

func typedAttribute[T any](op string, a AttributeData) strided.View[T] {
	checkTyped[T](op, a)
	if a.arraySize != 0 {
		panic(mesh.Violation(op, mesh.ErrIncompatibleType,
			"%s is an array attribute of %d items, use AttrArray", a.name, a.arraySize))
	}
	v, err := strided.Cast[T](a.Data())
	if err != nil {
		panic(err)
	}
	return v
}

func checkTyped[T any](op string, a AttributeData) {
	if a.format.IsImplementationSpecific() {
		panic(mesh.Violation(op, mesh.ErrImplementationSpecific,
			"can't cast data from an implementation-specific format %s", a.format))
	}
	if !IsFormatCompatible[T](a.format) {
		var zero T
		panic(mesh.Violation(op, mesh.ErrIncompatibleType, "%T is not compatible with %s", zero, a.format))
	}
}
