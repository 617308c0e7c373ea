package glmesh

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-mesh/internal/logger"
	"github.com/Faultbox/midgard-mesh/pkg/meshdata"
)

// Bindings assigns shader locations to attribute names. Only the first
// attribute of each name is bound.
type Bindings map[meshdata.Attribute]uint32

// DefaultBindings matches the layout(location = N) convention of the
// bundled shaders.
var DefaultBindings = Bindings{
	meshdata.AttributePosition:           0,
	meshdata.AttributeNormal:             1,
	meshdata.AttributeTextureCoordinates: 2,
	meshdata.AttributeColor:              3,
}

// Pointer is one glVertexAttribPointer call.
type Pointer struct {
	Location uint32
	AttribFormat
	Stride int32
	Offset uintptr
}

// Pointers describes how the attributes of md are bound. Array attributes
// occupy one location per element.
func Pointers(md *meshdata.MeshData, bindings Bindings) ([]Pointer, error) {
	var pointers []Pointer
	for name, location := range bindings {
		id, ok := md.FindAttributeID(name, 0)
		if !ok {
			continue
		}
		format := md.AttributeFormat(id)
		af, err := AttribFormatOf(format)
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", name, err)
		}
		offset := uintptr(md.AttributeOffset(id))
		for i := range max(uint32(md.AttributeArraySize(id)), 1) {
			pointers = append(pointers, Pointer{
				Location:     location + i,
				AttribFormat: af,
				Stride:       int32(md.AttributeStride(id)),
				Offset:       offset + uintptr(i*format.Size()),
			})
		}
	}
	slices.SortFunc(pointers, func(a, b Pointer) int {
		return cmp.Compare(a.Location, b.Location)
	})
	return pointers, nil
}

// Mesh is a mesh uploaded to the GPU.
type Mesh struct {
	VAO, VBO, EBO uint32

	Mode        uint32
	Count       int32
	IndexType   uint32
	IndexOffset uintptr
}

// Upload copies the buffers of md into new GL objects. A GL context must be
// current.
func Upload(md *meshdata.MeshData, bindings Bindings) (*Mesh, error) {
	mode, err := Primitive(md.Primitive())
	if err != nil {
		return nil, err
	}
	pointers, err := Pointers(md, bindings)
	if err != nil {
		return nil, err
	}

	m := &Mesh{Mode: mode, Count: int32(md.VertexCount())}
	if md.IsIndexed() {
		if m.IndexType, err = IndexType(md.IndexType()); err != nil {
			return nil, err
		}
		m.Count = int32(md.IndexCount())
		m.IndexOffset = uintptr(md.IndexOffset())
	}

	gl.GenVertexArrays(1, &m.VAO)
	gl.BindVertexArray(m.VAO)

	if data := md.VertexData(); len(data) != 0 {
		gl.GenBuffers(1, &m.VBO)
		gl.BindBuffer(gl.ARRAY_BUFFER, m.VBO)
		gl.BufferData(gl.ARRAY_BUFFER, len(data), gl.Ptr(data), gl.STATIC_DRAW)

		for _, p := range pointers {
			gl.VertexAttribPointerWithOffset(p.Location, p.Components, p.Type, p.Normalized, p.Stride, p.Offset)
			gl.EnableVertexAttribArray(p.Location)
		}
	}

	if data := md.IndexData(); md.IsIndexed() && len(data) != 0 {
		gl.GenBuffers(1, &m.EBO)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.EBO)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data), gl.Ptr(data), gl.STATIC_DRAW)
	}

	gl.BindVertexArray(0)

	logger.Debug("mesh uploaded",
		zap.Uint32("vao", m.VAO),
		zap.Int("pointers", len(pointers)),
		zap.Int32("count", m.Count))
	return m, nil
}

// Draw issues the draw call for the whole mesh.
func (m *Mesh) Draw() {
	gl.BindVertexArray(m.VAO)
	if m.EBO != 0 {
		gl.DrawElementsWithOffset(m.Mode, m.Count, m.IndexType, m.IndexOffset)
	} else {
		gl.DrawArrays(m.Mode, 0, m.Count)
	}
	gl.BindVertexArray(0)
}

// Destroy releases the GL objects.
func (m *Mesh) Destroy() {
	if m.VAO != 0 {
		gl.DeleteVertexArrays(1, &m.VAO)
		m.VAO = 0
	}
	if m.VBO != 0 {
		gl.DeleteBuffers(1, &m.VBO)
		m.VBO = 0
	}
	if m.EBO != 0 {
		gl.DeleteBuffers(1, &m.EBO)
		m.EBO = 0
	}
}
