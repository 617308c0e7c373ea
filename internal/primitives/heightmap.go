package primitives

import (
	"errors"
	"fmt"
	"unsafe"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-mesh/internal/logger"
	"github.com/Faultbox/midgard-mesh/pkg/math"
	"github.com/Faultbox/midgard-mesh/pkg/mesh"
	"github.com/Faultbox/midgard-mesh/pkg/meshdata"
	"github.com/Faultbox/midgard-mesh/pkg/strided"
)

var (
	ErrHeightmapTooSmall = errors.New("heightmap needs at least 2x2 samples")
	ErrRaggedHeightmap   = errors.New("heightmap rows differ in length")
)

// terrainVertex is one heightmap sample.
type terrainVertex struct {
	Position  math.Vec3
	Normal    math.Vec3
	TexCoords math.Vec2
}

// Heightmap creates an indexed triangle grid over heights[z][x] samples
// spaced tileSize apart. Normals come from central differences and texture
// coordinates span [0, 1] over the whole grid. Grids of up to 65536 samples
// use 16-bit indices.
func Heightmap(heights [][]float32, tileSize float32) (*meshdata.MeshData, error) {
	depth := len(heights)
	if depth < 2 || len(heights[0]) < 2 {
		return nil, ErrHeightmapTooSmall
	}
	width := len(heights[0])
	for z, row := range heights {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d samples, expected %d", ErrRaggedHeightmap, z, len(row), width)
		}
	}

	at := func(x, z int) float32 {
		return heights[min(max(z, 0), depth-1)][min(max(x, 0), width-1)]
	}

	vertices := make([]terrainVertex, 0, width*depth)
	for z := range depth {
		for x := range width {
			normal := math.Vec3{
				X: at(x-1, z) - at(x+1, z),
				Y: 2 * tileSize,
				Z: at(x, z-1) - at(x, z+1),
			}
			vertices = append(vertices, terrainVertex{
				Position:  math.Vec3{X: float32(x) * tileSize, Y: heights[z][x], Z: float32(z) * tileSize},
				Normal:    normal.Normalize(),
				TexCoords: math.Vec2{X: float32(x) / float32(width-1), Y: float32(z) / float32(depth-1)},
			})
		}
	}

	// Two triangles per cell, counter-clockwise seen from above.
	indices := make([]uint32, 0, 6*(width-1)*(depth-1))
	for z := 0; z < depth-1; z++ {
		for x := 0; x < width-1; x++ {
			i0 := uint32(z*width + x)
			i1 := i0 + 1
			i2 := i0 + uint32(width)
			i3 := i2 + 1
			indices = append(indices, i0, i2, i1, i1, i2, i3)
		}
	}

	indexData, indexView := packIndices(indices, len(vertices))

	attrs := []meshdata.AttributeData{
		must(meshdata.NewTypedAttributeStrided(meshdata.AttributePosition,
			strided.MustCast[math.Vec3](strided.FieldOf[terrainVertex, math.Vec3](vertices, unsafe.Offsetof(terrainVertex{}.Position))))),
		must(meshdata.NewTypedAttributeStrided(meshdata.AttributeNormal,
			strided.MustCast[math.Vec3](strided.FieldOf[terrainVertex, math.Vec3](vertices, unsafe.Offsetof(terrainVertex{}.Normal))))),
		must(meshdata.NewTypedAttributeStrided(meshdata.AttributeTextureCoordinates,
			strided.MustCast[math.Vec2](strided.FieldOf[terrainVertex, math.Vec2](vertices, unsafe.Offsetof(terrainVertex{}.TexCoords))))),
	}

	md, err := meshdata.New(mesh.PrimitiveTriangles, indexData, indexView, strided.Of(vertices).Data(), attrs)
	if err != nil {
		return nil, err
	}
	logger.Debug("heightmap built",
		zap.Int("width", width),
		zap.Int("depth", depth),
		zap.Stringer("indexType", md.IndexType()))
	return md, nil
}

// packIndices stores indices in the smallest type that can address
// vertexCount vertices, byte excluded.
func packIndices(indices []uint32, vertexCount int) ([]byte, meshdata.IndexData) {
	if vertexCount <= 1<<16 {
		narrow := make([]uint16, len(indices))
		for i, idx := range indices {
			narrow[i] = uint16(idx)
		}
		return strided.Of(narrow).Data(), meshdata.NewTypedIndexData(narrow)
	}
	return strided.Of(indices).Data(), meshdata.NewTypedIndexData(indices)
}
