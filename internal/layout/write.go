package layout

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-mesh/internal/logger"
	"github.com/Faultbox/midgard-mesh/pkg/meshdata"
)

// Blob file extensions used by Write.
const (
	VertexExt = ".vtx"
	IndexExt  = ".idx"
)

// WriteOptions controls how Write stores a mesh.
type WriteOptions struct {
	Format   Format
	Compress bool
	// Level is the zstd encoder level used with Compress.
	Level int
}

// Write stores md as name.yaml (or .toml) plus its blobs in dir and returns
// the descriptor path. Blob names in the descriptor are relative to dir.
func Write(dir, name string, md *meshdata.MeshData, opts WriteOptions) (string, error) {
	if opts.Format == "" {
		opts.Format = FormatYAML
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	vertexFile, indexFile := name+VertexExt, name+IndexExt
	if opts.Compress {
		vertexFile += CompressedExt
		indexFile += CompressedExt
	}

	if md.AttributeCount() != 0 {
		if err := writeBlob(filepath.Join(dir, vertexFile), md.VertexData(), opts); err != nil {
			return "", err
		}
	}
	if md.IsIndexed() {
		if err := writeBlob(filepath.Join(dir, indexFile), md.IndexData(), opts); err != nil {
			return "", err
		}
	}

	data, err := Encode(Describe(md, vertexFile, indexFile), opts.Format)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, name+opts.Format.Ext())
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing descriptor: %w", err)
	}

	logger.Info("mesh written",
		zap.String("path", path),
		zap.Bool("compressed", opts.Compress))
	return path, nil
}

func writeBlob(path string, data []byte, opts WriteOptions) error {
	stored := data
	if opts.Compress {
		var err error
		if stored, err = Compress(data, opts.Level); err != nil {
			return fmt.Errorf("compressing %s: %w", path, err)
		}
	}
	if err := os.WriteFile(path, stored, 0644); err != nil {
		return fmt.Errorf("writing blob: %w", err)
	}
	logger.Debug("blob written",
		zap.String("path", path),
		zap.Int("size", len(data)),
		zap.Int("stored", len(stored)))
	return nil
}
