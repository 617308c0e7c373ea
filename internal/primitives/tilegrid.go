package primitives

import (
	"unsafe"

	"github.com/Faultbox/midgard-mesh/pkg/math"
	"github.com/Faultbox/midgard-mesh/pkg/mesh"
	"github.com/Faultbox/midgard-mesh/pkg/meshdata"
	"github.com/Faultbox/midgard-mesh/pkg/strided"
)

// GridColor is the default tile grid line color.
var GridColor = math.Color4ub{R: 128, G: 128, B: 128, A: 255}

// lineVertex is a colored line endpoint.
type lineVertex struct {
	Position math.Vec3
	Color    math.Color4ub
}

// TileGrid creates a line mesh of tilesX × tilesZ tiles in the Y=height
// plane, with interleaved positions and normalized 8-bit colors.
func TileGrid(tilesX, tilesZ int, tileSize, height float32, color math.Color4ub) *meshdata.MeshData {
	tilesX, tilesZ = max(tilesX, 0), max(tilesZ, 0)
	vertices := make([]lineVertex, 0, 2*(tilesX+1)+2*(tilesZ+1))

	maxX := float32(tilesX) * tileSize
	maxZ := float32(tilesZ) * tileSize

	// Lines along Z
	for x := 0; x <= tilesX; x++ {
		worldX := float32(x) * tileSize
		vertices = append(vertices,
			lineVertex{math.Vec3{X: worldX, Y: height, Z: 0}, color},
			lineVertex{math.Vec3{X: worldX, Y: height, Z: maxZ}, color},
		)
	}

	// Lines along X
	for z := 0; z <= tilesZ; z++ {
		worldZ := float32(z) * tileSize
		vertices = append(vertices,
			lineVertex{math.Vec3{X: 0, Y: height, Z: worldZ}, color},
			lineVertex{math.Vec3{X: maxX, Y: height, Z: worldZ}, color},
		)
	}

	positions := strided.MustCast[math.Vec3](strided.FieldOf[lineVertex, math.Vec3](vertices, unsafe.Offsetof(lineVertex{}.Position)))
	colors := strided.MustCast[math.Color4ub](strided.FieldOf[lineVertex, math.Color4ub](vertices, unsafe.Offsetof(lineVertex{}.Color)))

	return meshdata.Must(meshdata.NewNonIndexed(mesh.PrimitiveLines,
		strided.Of(vertices).Data(),
		[]meshdata.AttributeData{
			must(meshdata.NewTypedAttributeStrided(meshdata.AttributePosition, positions)),
			must(meshdata.NewTypedAttributeStrided(meshdata.AttributeColor, colors)),
		}))
}

func must(a meshdata.AttributeData, err error) meshdata.AttributeData {
	if err != nil {
		panic(err)
	}
	return a
}
