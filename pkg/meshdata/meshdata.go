package meshdata

import (
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-mesh/internal/logger"
	"github.com/Faultbox/midgard-mesh/pkg/mesh"
	"github.com/Faultbox/midgard-mesh/pkg/strided"
)

// MeshData holds the index and vertex buffers of a mesh together with the
// attributes describing the vertex layout.
//
// A MeshData is validated once at construction and is used by pointer. It
// must not be copied; use Move to transfer its contents.
type MeshData struct {
	primitive mesh.Primitive

	indexFlags DataFlags
	indexData  []byte
	indexType  mesh.IndexType
	indices    strided.Bytes

	vertexFlags DataFlags
	vertexData  []byte
	vertexCount uint32
	attributes  []AttributeData

	importerState any
}

// Option customizes MeshData construction.
type Option func(*options)

type options struct {
	importerState  any
	vertexCount    uint32
	hasVertexCount bool
	indexFlags     *DataFlags
	vertexFlags    *DataFlags
}

// WithImporterState attaches opaque importer-specific state.
func WithImporterState(state any) Option {
	return func(o *options) { o.importerState = state }
}

// WithVertexCount sets the vertex count explicitly. Attribute-less meshes
// need it unless they are indexed; with attributes it has to match theirs.
func WithVertexCount(n uint32) Option {
	return func(o *options) {
		o.vertexCount = n
		o.hasVertexCount = true
	}
}

// WithIndexDataFlags marks the index buffer of an owning constructor as
// borrowed with the given flags.
func WithIndexDataFlags(flags DataFlags) Option {
	return func(o *options) { o.indexFlags = &flags }
}

// WithVertexDataFlags marks the vertex buffer of an owning constructor as
// borrowed with the given flags.
func WithVertexDataFlags(flags DataFlags) Option {
	return func(o *options) { o.vertexFlags = &flags }
}

const ownedFlags = DataFlagOwned | DataFlagMutable

// New creates an indexed mesh owning both buffers.
func New(primitive mesh.Primitive, indexData []byte, indices IndexData, vertexData []byte, attributes []AttributeData, opts ...Option) (*MeshData, error) {
	return build("meshdata.New", primitive, ownedFlags, indexData, indices, ownedFlags, vertexData, attributes, opts)
}

// NewNonIndexed creates a non-indexed mesh owning its vertex buffer.
func NewNonIndexed(primitive mesh.Primitive, vertexData []byte, attributes []AttributeData, opts ...Option) (*MeshData, error) {
	return build("meshdata.NewNonIndexed", primitive, ownedFlags, nil, NoIndices(), ownedFlags, vertexData, attributes, opts)
}

// NewIndexedOnly creates an attribute-less indexed mesh owning its index
// buffer.
func NewIndexedOnly(primitive mesh.Primitive, indexData []byte, indices IndexData, opts ...Option) (*MeshData, error) {
	return build("meshdata.NewIndexedOnly", primitive, ownedFlags, indexData, indices, ownedFlags, nil, nil, opts)
}

// NewVertexCountOnly creates a mesh with neither indices nor attributes,
// for example for drawing driven entirely by a shader.
func NewVertexCountOnly(primitive mesh.Primitive, vertexCount uint32, opts ...Option) (*MeshData, error) {
	opts = append(opts, WithVertexCount(vertexCount))
	return build("meshdata.NewVertexCountOnly", primitive, ownedFlags, nil, NoIndices(), ownedFlags, nil, nil, opts)
}

// NewBorrowed creates an indexed mesh referencing caller-owned buffers.
// The flags can't contain DataFlagOwned.
func NewBorrowed(primitive mesh.Primitive, indexFlags DataFlags, indexData []byte, indices IndexData, vertexFlags DataFlags, vertexData []byte, attributes []AttributeData, opts ...Option) (*MeshData, error) {
	opts = append(opts, WithIndexDataFlags(indexFlags), WithVertexDataFlags(vertexFlags))
	return build("meshdata.NewBorrowed", primitive, ownedFlags, indexData, indices, ownedFlags, vertexData, attributes, opts)
}

// NewBorrowedNonIndexed creates a non-indexed mesh referencing a
// caller-owned vertex buffer.
func NewBorrowedNonIndexed(primitive mesh.Primitive, vertexFlags DataFlags, vertexData []byte, attributes []AttributeData, opts ...Option) (*MeshData, error) {
	opts = append(opts, WithVertexDataFlags(vertexFlags))
	return build("meshdata.NewBorrowedNonIndexed", primitive, ownedFlags, nil, NoIndices(), ownedFlags, vertexData, attributes, opts)
}

// NewBorrowedIndexedOnly creates an attribute-less mesh referencing a
// caller-owned index buffer.
func NewBorrowedIndexedOnly(primitive mesh.Primitive, indexFlags DataFlags, indexData []byte, indices IndexData, opts ...Option) (*MeshData, error) {
	opts = append(opts, WithIndexDataFlags(indexFlags))
	return build("meshdata.NewBorrowedIndexedOnly", primitive, ownedFlags, indexData, indices, ownedFlags, nil, nil, opts)
}

// Must panics if err is non-nil and returns md otherwise. Meant for
// meshes built from data known to be valid.
func Must(md *MeshData, err error) *MeshData {
	if err != nil {
		panic(err)
	}
	return md
}

func build(op string, primitive mesh.Primitive, indexFlags DataFlags, indexData []byte, indices IndexData, vertexFlags DataFlags, vertexData []byte, attributes []AttributeData, opts []Option) (*MeshData, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.indexFlags != nil {
		indexFlags = *o.indexFlags
	}
	if o.vertexFlags != nil {
		vertexFlags = *o.vertexFlags
	}

	md, err := newMeshData(op, primitive, indexFlags, indexData, indices, vertexFlags, vertexData, attributes, o)
	if err != nil {
		logger.Debug("mesh data rejected",
			zap.String("op", op),
			zap.Stringer("primitive", primitive),
			zap.Int("attributes", len(attributes)),
			zap.Error(err))
		return nil, err
	}
	return md, nil
}

// newMeshData validates everything once.
func newMeshData(op string, primitive mesh.Primitive, indexFlags DataFlags, indexData []byte, indices IndexData, vertexFlags DataFlags, vertexData []byte, attributes []AttributeData, o options) (*MeshData, error) {
	if !primitive.IsValid() {
		return nil, mesh.Violation(op, mesh.ErrInvalidEnumerant, "invalid primitive %s", primitive)
	}
	if o.indexFlags != nil && *o.indexFlags&DataFlagOwned != 0 {
		return nil, mesh.Violation(op, mesh.ErrMutability, "can't construct with non-owned index data but %s", indexFlags)
	}
	if o.vertexFlags != nil && *o.vertexFlags&DataFlagOwned != 0 {
		return nil, mesh.Violation(op, mesh.ErrMutability, "can't construct with non-owned vertex data but %s", vertexFlags)
	}

	md := &MeshData{
		primitive:     primitive,
		indexFlags:    indexFlags,
		indexData:     indexData,
		indexType:     indices.Type(),
		indices:       indices.view(),
		vertexFlags:   vertexFlags,
		vertexData:    vertexData,
		attributes:    slices.Clone(attributes),
		importerState: o.importerState,
	}

	if !indices.IsIndexed() && len(indexData) != 0 {
		return nil, mesh.Violation(op, mesh.ErrContainment, "index data passed for a non-indexed mesh")
	}
	if indices.IsIndexed() && !md.indices.In(indexData) {
		return nil, mesh.Violation(op, mesh.ErrContainment,
			"indices of %d bytes are not contained in passed index data of %d bytes", len(indices.Data()), len(indexData))
	}

	switch {
	case len(attributes) != 0:
		md.vertexCount = attributes[0].vertexCount
		if o.hasVertexCount && o.vertexCount != md.vertexCount {
			return nil, mesh.Violation(op, mesh.ErrCardinality,
				"explicit vertex count %d doesn't match %d vertices of the attributes", o.vertexCount, md.vertexCount)
		}
	case o.hasVertexCount:
		md.vertexCount = o.vertexCount
	case !indices.IsIndexed():
		return nil, mesh.Violation(op, mesh.ErrCardinality,
			"indices are expected to be valid if there are no attributes and vertex count isn't passed explicitly")
	}

	if len(attributes) == 0 && len(vertexData) != 0 {
		return nil, mesh.Violation(op, mesh.ErrContainment, "vertex data passed for an attribute-less mesh")
	}
	if md.vertexCount == 0 && len(vertexData) != 0 {
		return nil, mesh.Violation(op, mesh.ErrContainment, "vertex data passed for a mesh with zero vertices")
	}

	for i, a := range attributes {
		if a.IsPadding() {
			return nil, mesh.Violation(op, mesh.ErrLayout, "attribute %d is padding", i)
		}
		if a.vertexCount != md.vertexCount {
			return nil, mesh.Violation(op, mesh.ErrCardinality,
				"attribute %d has %d vertices but %d expected", i, a.vertexCount, md.vertexCount)
		}
		if a.IsOffsetOnly() {
			if _, err := a.offsetElementSize(op, len(vertexData)); err != nil {
				return nil, mesh.Violation(op, mesh.ErrContainment,
					"offset-only attribute %d at %d is not contained in passed vertex data of %d bytes", i, a.Offset(), len(vertexData))
			}
		} else if !a.Data().In(vertexData) {
			return nil, mesh.Violation(op, mesh.ErrContainment,
				"attribute %d is not contained in passed vertex data of %d bytes", i, len(vertexData))
		}
	}

	return md, nil
}

// Move transfers the contents into a new MeshData, leaving md empty.
func (md *MeshData) Move() *MeshData {
	out := *md
	*md = MeshData{}
	return &out
}

// ReleaseIndexData transfers the index buffer to the caller. The mesh keeps
// its index type and offset but reports zero indices afterwards, and no
// longer reports the buffer as owned.
func (md *MeshData) ReleaseIndexData() []byte {
	out := md.indexData
	md.indexFlags &^= DataFlagOwned
	if md.indexData != nil {
		md.indexData = md.indexData[:0:0]
	}
	if md.indices.Len() != 0 {
		md.indices = md.indices.Prefix(0)
	}
	return out
}

// ReleaseVertexData transfers the vertex buffer to the caller. Attributes
// stay, with zero vertices and their offsets unchanged. The vertex flags
// lose DataFlagOwned.
func (md *MeshData) ReleaseVertexData() []byte {
	out := md.vertexData
	md.vertexFlags &^= DataFlagOwned
	if md.vertexData != nil {
		md.vertexData = md.vertexData[:0:0]
	}
	for i := range md.attributes {
		md.attributes[i] = md.attributes[i].emptied()
	}
	md.vertexCount = 0
	return out
}

// ReleaseAttributeData transfers the attribute list to the caller. The
// buffers are left untouched.
func (md *MeshData) ReleaseAttributeData() []AttributeData {
	out := md.attributes
	md.attributes = nil
	return out
}
