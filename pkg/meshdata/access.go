package meshdata

import (
	"slices"

	"github.com/Faultbox/midgard-mesh/pkg/mesh"
	"github.com/Faultbox/midgard-mesh/pkg/strided"
)

// Primitive returns the mesh topology.
func (md *MeshData) Primitive() mesh.Primitive { return md.primitive }

// IndexDataFlags returns the flags of the index buffer.
func (md *MeshData) IndexDataFlags() DataFlags { return md.indexFlags }

// VertexDataFlags returns the flags of the vertex buffer.
func (md *MeshData) VertexDataFlags() DataFlags { return md.vertexFlags }

// ImporterState returns the opaque state attached by the producer.
func (md *MeshData) ImporterState() any { return md.importerState }

// IndexData returns the raw index buffer. It must not be modified.
func (md *MeshData) IndexData() []byte { return md.indexData }

// MutableIndexData returns the raw index buffer for writing.
func (md *MeshData) MutableIndexData() []byte {
	md.requireMutable("MeshData.MutableIndexData", md.indexFlags, "index")
	return md.indexData
}

// VertexData returns the raw vertex buffer. It must not be modified.
func (md *MeshData) VertexData() []byte { return md.vertexData }

// MutableVertexData returns the raw vertex buffer for writing.
func (md *MeshData) MutableVertexData() []byte {
	md.requireMutable("MeshData.MutableVertexData", md.vertexFlags, "vertex")
	return md.vertexData
}

func (md *MeshData) requireMutable(op string, flags DataFlags, what string) {
	if flags&DataFlagMutable == 0 {
		panic(mesh.Violation(op, mesh.ErrMutability, "%s data not mutable", what))
	}
}

// IsIndexed reports whether the mesh has an index buffer.
func (md *MeshData) IsIndexed() bool { return md.indexType != mesh.IndexTypeInvalid }

func (md *MeshData) requireIndexed(op string) {
	if !md.IsIndexed() {
		panic(mesh.Violation(op, mesh.ErrCardinality, "the mesh is not indexed"))
	}
}

// IndexCount returns the number of indices.
func (md *MeshData) IndexCount() uint32 {
	md.requireIndexed("MeshData.IndexCount")
	return uint32(md.indices.Len())
}

// IndexType returns the index type.
func (md *MeshData) IndexType() mesh.IndexType {
	md.requireIndexed("MeshData.IndexType")
	return md.indexType
}

// IndexOffset returns the byte offset of the first index in the index
// buffer.
func (md *MeshData) IndexOffset() int {
	md.requireIndexed("MeshData.IndexOffset")
	return md.indices.OffsetFrom(md.indexData)
}

// Indices returns the indices as a view of IndexCount elements of the
// index type size.
func (md *MeshData) Indices() strided.Bytes {
	md.requireIndexed("MeshData.Indices")
	return md.indices
}

// MutableIndices is like Indices, for writing.
func (md *MeshData) MutableIndices() strided.Bytes {
	md.requireMutable("MeshData.MutableIndices", md.indexFlags, "index")
	return md.Indices()
}

// VertexCount returns the number of vertices.
func (md *MeshData) VertexCount() uint32 { return md.vertexCount }

// AttributeCount returns the number of attributes.
func (md *MeshData) AttributeCount() uint32 { return uint32(len(md.attributes)) }

// AttributeCountOf returns the number of attributes with the given name.
func (md *MeshData) AttributeCountOf(name Attribute) uint32 {
	var n uint32
	for _, a := range md.attributes {
		if a.name == name {
			n++
		}
	}
	return n
}

// HasAttribute reports whether the mesh has at least one attribute with the
// given name.
func (md *MeshData) HasAttribute(name Attribute) bool {
	_, ok := md.FindAttributeID(name, 0)
	return ok
}

// FindAttributeID returns the id of the n-th attribute with the given name.
func (md *MeshData) FindAttributeID(name Attribute, n uint32) (uint32, bool) {
	for i, a := range md.attributes {
		if a.name != name {
			continue
		}
		if n == 0 {
			return uint32(i), true
		}
		n--
	}
	return 0, false
}

// AttributeID is like FindAttributeID but panics when there is no such
// attribute.
func (md *MeshData) AttributeID(name Attribute, n uint32) uint32 {
	return md.attributeFor("MeshData.AttributeID", name, n)
}

func (md *MeshData) attributeFor(op string, name Attribute, n uint32) uint32 {
	id, ok := md.FindAttributeID(name, n)
	if !ok {
		panic(mesh.Violation(op, mesh.ErrCardinality,
			"index %d out of range for %d %s attributes", n, md.AttributeCountOf(name), name))
	}
	return id
}

func (md *MeshData) attribute(op string, id uint32) AttributeData {
	if id >= uint32(len(md.attributes)) {
		panic(mesh.Violation(op, mesh.ErrCardinality,
			"index %d out of range for %d attributes", id, len(md.attributes)))
	}
	return md.attributes[id]
}

// AttributeData returns the attribute descriptors as passed in, including
// offset-only ones.
func (md *MeshData) AttributeData() []AttributeData {
	return slices.Clone(md.attributes)
}

// AttributeDataAt returns attribute id with offset-only data resolved
// against the vertex buffer.
func (md *MeshData) AttributeDataAt(id uint32) AttributeData {
	a := md.attribute("MeshData.AttributeDataAt", id)
	if a.IsOffsetOnly() {
		a.storage = directStorage{data: a.DataIn(md.vertexData)}
	}
	return a
}

// AttributeName returns the name of attribute id.
func (md *MeshData) AttributeName(id uint32) Attribute {
	return md.attribute("MeshData.AttributeName", id).name
}

// AttributeFormat returns the format of attribute id.
func (md *MeshData) AttributeFormat(id uint32) mesh.VertexFormat {
	return md.attribute("MeshData.AttributeFormat", id).format
}

// AttributeOffset returns the byte offset of the first element of attribute
// id in the vertex buffer.
func (md *MeshData) AttributeOffset(id uint32) int {
	a := md.attribute("MeshData.AttributeOffset", id)
	if a.IsOffsetOnly() {
		return int(a.Offset())
	}
	return a.Data().OffsetFrom(md.vertexData)
}

// AttributeStride returns the stride of attribute id.
func (md *MeshData) AttributeStride(id uint32) int {
	return int(md.attribute("MeshData.AttributeStride", id).stride)
}

// AttributeArraySize returns the array size of attribute id.
func (md *MeshData) AttributeArraySize(id uint32) uint16 {
	return md.attribute("MeshData.AttributeArraySize", id).arraySize
}

// AttributeFormatOf returns the format of the n-th attribute named name.
func (md *MeshData) AttributeFormatOf(name Attribute, n uint32) mesh.VertexFormat {
	return md.AttributeFormat(md.attributeFor("MeshData.AttributeFormatOf", name, n))
}

// AttributeOffsetOf returns the offset of the n-th attribute named name.
func (md *MeshData) AttributeOffsetOf(name Attribute, n uint32) int {
	return md.AttributeOffset(md.attributeFor("MeshData.AttributeOffsetOf", name, n))
}

// AttributeStrideOf returns the stride of the n-th attribute named name.
func (md *MeshData) AttributeStrideOf(name Attribute, n uint32) int {
	return md.AttributeStride(md.attributeFor("MeshData.AttributeStrideOf", name, n))
}

// AttributeArraySizeOf returns the array size of the n-th attribute named
// name.
func (md *MeshData) AttributeArraySizeOf(name Attribute, n uint32) uint16 {
	return md.AttributeArraySize(md.attributeFor("MeshData.AttributeArraySizeOf", name, n))
}

// Attribute returns the data of attribute id, one element per vertex.
func (md *MeshData) Attribute(id uint32) strided.Bytes {
	return md.AttributeDataAt(id).Data()
}

// AttributeOf returns the data of the n-th attribute named name.
func (md *MeshData) AttributeOf(name Attribute, n uint32) strided.Bytes {
	return md.Attribute(md.attributeFor("MeshData.AttributeOf", name, n))
}

// MutableAttribute is like Attribute, for writing.
func (md *MeshData) MutableAttribute(id uint32) strided.Bytes {
	md.requireMutable("MeshData.MutableAttribute", md.vertexFlags, "vertex")
	return md.Attribute(id)
}

// MutableAttributeOf is like AttributeOf, for writing.
func (md *MeshData) MutableAttributeOf(name Attribute, n uint32) strided.Bytes {
	md.requireMutable("MeshData.MutableAttributeOf", md.vertexFlags, "vertex")
	return md.AttributeOf(name, n)
}
