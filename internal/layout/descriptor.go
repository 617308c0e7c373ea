// Package layout loads meshes described by a small YAML or TOML descriptor
// that points at raw vertex and index blobs, and writes meshes back out in
// the same form.
//
// A descriptor looks like this:
//
//	primitive: Triangles
//	vertex_count: 24
//	vertices: cube.vtx.zst
//	indices:
//	  type: UnsignedShort
//	  file: cube.idx
//	  count: 36
//	attributes:
//	  - name: Position
//	    format: Vector3
//	    offset: 0
//	    stride: 24
//	  - name: Custom(3)
//	    format: Float
//	    offset: 12
//	    stride: 24
//	    array_size: 3
//
// Blob names ending in .zst are zstd-compressed.
package layout

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/midgard-mesh/pkg/mesh"
	"github.com/Faultbox/midgard-mesh/pkg/meshdata"
)

var (
	ErrUnknownFormat = errors.New("unknown descriptor format")
	ErrDescriptor    = errors.New("invalid descriptor")
	ErrBlobNotFound  = errors.New("blob not found")
)

// Format is the encoding of a descriptor file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Ext returns the file extension used for the format.
func (f Format) Ext() string {
	if f == FormatTOML {
		return ".toml"
	}
	return ".yaml"
}

// FormatOf picks the descriptor format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// Descriptor describes a mesh stored in external blobs.
type Descriptor struct {
	Primitive   mesh.Primitive        `yaml:"primitive" toml:"primitive"`
	VertexCount uint32                `yaml:"vertex_count,omitempty" toml:"vertex_count,omitempty"`
	Vertices    string                `yaml:"vertices,omitempty" toml:"vertices,omitempty"`
	Indices     *IndexDescriptor      `yaml:"indices,omitempty" toml:"indices,omitempty"`
	Attributes  []AttributeDescriptor `yaml:"attributes,omitempty" toml:"attributes,omitempty"`
}

// IndexDescriptor locates the index view inside the index blob.
type IndexDescriptor struct {
	Type   mesh.IndexType `yaml:"type" toml:"type"`
	File   string         `yaml:"file" toml:"file"`
	Offset int            `yaml:"offset,omitempty" toml:"offset,omitempty"`
	Count  uint32         `yaml:"count" toml:"count"`
}

// AttributeDescriptor is an offset-only attribute relative to the vertex blob.
type AttributeDescriptor struct {
	Name      meshdata.Attribute `yaml:"name" toml:"name"`
	Format    mesh.VertexFormat  `yaml:"format" toml:"format"`
	Offset    uint64             `yaml:"offset" toml:"offset"`
	Stride    int                `yaml:"stride" toml:"stride"`
	ArraySize uint16             `yaml:"array_size,omitempty" toml:"array_size,omitempty"`
}

// Decode parses a descriptor. Unknown keys are rejected.
func Decode(data []byte, format Format) (*Descriptor, error) {
	var desc Descriptor
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&desc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDescriptor, err)
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &desc)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDescriptor, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) != 0 {
			return nil, fmt.Errorf("%w: unknown keys %v", ErrDescriptor, undecoded)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return &desc, nil
}

// Encode serializes a descriptor.
func Encode(desc *Descriptor, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(desc); err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(desc); err != nil {
			return nil, fmt.Errorf("encoding toml: %w", err)
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Describe builds a descriptor for md, naming the given blob files.
// Attributes are always described relative to the vertex data.
func Describe(md *meshdata.MeshData, vertexFile, indexFile string) *Descriptor {
	desc := &Descriptor{
		Primitive:   md.Primitive(),
		VertexCount: md.VertexCount(),
	}
	if md.AttributeCount() != 0 {
		desc.Vertices = vertexFile
	}
	if md.IsIndexed() {
		desc.Indices = &IndexDescriptor{
			Type:   md.IndexType(),
			File:   indexFile,
			Offset: md.IndexOffset(),
			Count:  md.IndexCount(),
		}
	}
	for id := range md.AttributeCount() {
		desc.Attributes = append(desc.Attributes, AttributeDescriptor{
			Name:      md.AttributeName(id),
			Format:    md.AttributeFormat(id),
			Offset:    uint64(md.AttributeOffset(id)),
			Stride:    md.AttributeStride(id),
			ArraySize: md.AttributeArraySize(id),
		})
	}
	return desc
}
