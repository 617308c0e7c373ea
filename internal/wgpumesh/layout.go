package wgpumesh

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/gogpu/gputypes"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-mesh/internal/logger"
	"github.com/Faultbox/midgard-mesh/pkg/meshdata"
)

// Locations assigns shader locations to attribute names. Only the first
// attribute of each name is bound.
type Locations map[meshdata.Attribute]uint32

// DefaultLocations matches @location(N) in the bundled WGSL shaders.
var DefaultLocations = Locations{
	meshdata.AttributePosition:           0,
	meshdata.AttributeNormal:             1,
	meshdata.AttributeTextureCoordinates: 2,
	meshdata.AttributeColor:              3,
}

// Layout is a single interleaved vertex buffer binding.
type Layout struct {
	Buffer gputypes.VertexBufferLayout
	// BaseOffset is where the vertex data has to be bound so that the
	// attribute offsets in Buffer are valid.
	BaseOffset uint64
}

// VertexLayout builds the buffer layout of the bound attributes of md. All
// of them have to live in one interleaved buffer with a common stride.
func VertexLayout(md *meshdata.MeshData, locations Locations) (Layout, error) {
	type bound struct {
		id       uint32
		location uint32
		offset   uint64
	}
	var attrs []bound
	for name, location := range locations {
		if id, ok := md.FindAttributeID(name, 0); ok {
			attrs = append(attrs, bound{id, location, uint64(md.AttributeOffset(id))})
		}
	}
	if len(attrs) == 0 {
		return Layout{}, nil
	}
	slices.SortFunc(attrs, func(a, b bound) int { return cmp.Compare(a.location, b.location) })

	stride := md.AttributeStride(attrs[0].id)
	if stride%4 != 0 {
		return Layout{}, fmt.Errorf("%w: stride %d is not a multiple of 4", ErrMisalignedField, stride)
	}
	base := attrs[0].offset
	for _, a := range attrs[1:] {
		if s := md.AttributeStride(a.id); s != stride {
			return Layout{}, fmt.Errorf("%w: strides %d and %d", ErrNotInterleaved, stride, s)
		}
		base = min(base, a.offset)
	}

	layout := Layout{
		Buffer: gputypes.VertexBufferLayout{
			ArrayStride: uint64(stride),
			StepMode:    gputypes.VertexStepModeVertex,
		},
		BaseOffset: base,
	}
	for _, a := range attrs {
		name, format := md.AttributeName(a.id), md.AttributeFormat(a.id)
		vf, err := VertexFormat(format)
		if err != nil {
			return Layout{}, fmt.Errorf("attribute %s: %w", name, err)
		}
		size := uint64(format.Size())
		for i := range max(uint64(md.AttributeArraySize(a.id)), 1) {
			offset := a.offset - base + i*size
			if offset+size > uint64(stride) {
				return Layout{}, fmt.Errorf("%w: %s at %d doesn't fit into stride %d", ErrNotInterleaved, name, offset, stride)
			}
			if offset%min(size, 4) != 0 {
				return Layout{}, fmt.Errorf("%w: %s at %d", ErrMisalignedField, name, offset)
			}
			layout.Buffer.Attributes = append(layout.Buffer.Attributes, gputypes.VertexAttribute{
				Format:         vf,
				Offset:         offset,
				ShaderLocation: a.location + uint32(i),
			})
		}
	}

	logger.Debug("vertex layout built",
		zap.Uint64("stride", layout.Buffer.ArrayStride),
		zap.Uint64("base", base),
		zap.Int("attributes", len(layout.Buffer.Attributes)))
	return layout, nil
}

// IndexBinding is where and how the index buffer is bound.
type IndexBinding struct {
	Format gputypes.IndexFormat
	Offset uint64
	Count  uint32
}

// Indices describes the index buffer of an indexed mesh.
func Indices(md *meshdata.MeshData) (IndexBinding, error) {
	if !md.IsIndexed() {
		return IndexBinding{}, fmt.Errorf("%w: mesh is not indexed", ErrUnsupported)
	}
	format, err := IndexFormat(md.IndexType())
	if err != nil {
		return IndexBinding{}, err
	}
	return IndexBinding{
		Format: format,
		Offset: uint64(md.IndexOffset()),
		Count:  md.IndexCount(),
	}, nil
}
