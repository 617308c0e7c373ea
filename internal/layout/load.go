package layout

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-mesh/internal/logger"
	"github.com/Faultbox/midgard-mesh/pkg/meshdata"
)

// Loader builds meshes from descriptor files.
type Loader struct {
	source *Source
}

// NewLoader creates a loader resolving blobs in the given directories.
func NewLoader(searchPaths ...string) *Loader {
	return &Loader{source: NewSource(searchPaths...)}
}

// Source returns the blob source of the loader.
func (l *Loader) Source() *Source {
	return l.source
}

// Load reads a descriptor file and the blobs it references. The resulting
// mesh owns its buffers and carries the descriptor as importer state.
func (l *Loader) Load(path string) (*meshdata.MeshData, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading descriptor: %w", err)
	}
	desc, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	md, err := l.Build(desc, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Info("mesh loaded",
		zap.String("path", path),
		zap.Stringer("primitive", md.Primitive()),
		zap.Uint32("vertices", md.VertexCount()),
		zap.Uint32("attributes", md.AttributeCount()),
		zap.Bool("indexed", md.IsIndexed()))
	return md, nil
}

// Build creates a mesh from a parsed descriptor. Relative blob names are
// resolved against base first.
func (l *Loader) Build(desc *Descriptor, base string) (*meshdata.MeshData, error) {
	var indexData []byte
	indices := meshdata.NoIndices()
	if desc.Indices != nil {
		d := desc.Indices
		if !d.Type.IsValid() {
			return nil, fmt.Errorf("%w: indices need a type", ErrDescriptor)
		}
		blob, err := l.source.Load(d.File, base)
		if err != nil {
			return nil, err
		}
		end := uint64(d.Offset) + uint64(d.Count)*uint64(d.Type.Size())
		if d.Offset < 0 || end > uint64(len(blob)) {
			return nil, fmt.Errorf("%w: %d %s indices at offset %d don't fit into %d bytes of %s",
				ErrDescriptor, d.Count, d.Type, d.Offset, len(blob), d.File)
		}
		if indices, err = meshdata.NewIndexData(d.Type, blob[d.Offset:end]); err != nil {
			return nil, err
		}
		indexData = blob
	}

	var vertexData []byte
	if desc.Vertices != "" {
		blob, err := l.source.Load(desc.Vertices, base)
		if err != nil {
			return nil, err
		}
		vertexData = blob
	}

	attributes := make([]meshdata.AttributeData, 0, len(desc.Attributes))
	for i, a := range desc.Attributes {
		attr, err := meshdata.NewOffsetAttribute(a.Name, a.Format, a.Offset, desc.VertexCount, a.Stride, a.ArraySize)
		if err != nil {
			return nil, fmt.Errorf("attribute %d: %w", i, err)
		}
		attributes = append(attributes, attr)
	}

	opts := []meshdata.Option{meshdata.WithImporterState(desc)}
	if len(attributes) == 0 && (desc.VertexCount != 0 || desc.Indices == nil) {
		opts = append(opts, meshdata.WithVertexCount(desc.VertexCount))
	}
	return meshdata.New(desc.Primitive, indexData, indices, vertexData, attributes, opts...)
}
