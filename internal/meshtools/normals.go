package meshtools

import (
	"fmt"

	"github.com/Faultbox/midgard-mesh/pkg/math"
	"github.com/Faultbox/midgard-mesh/pkg/mesh"
	"github.com/Faultbox/midgard-mesh/pkg/meshdata"
)

// smoothEpsilon is the grid positions are quantized to when looking for
// shared vertices.
const smoothEpsilon float32 = 0.001

// SmoothNormals averages the first normal attribute across vertices sharing
// a position, which hides seams between faces of a duplicated-vertex mesh.
// Positions can be in any format; normals have to be Vector3.
func SmoothNormals(md *meshdata.MeshData) error {
	if md.VertexDataFlags()&meshdata.DataFlagMutable == 0 {
		return ErrNotMutable
	}
	if !md.HasAttribute(meshdata.AttributePosition) {
		return ErrNoPositions
	}
	if !md.HasAttribute(meshdata.AttributeNormal) {
		return nil
	}
	if f := md.AttributeFormatOf(meshdata.AttributeNormal, 0); f != mesh.VertexFormatVector3 {
		return fmt.Errorf("%w: normal is %s", ErrUnsupportedFormat, f)
	}

	positions := md.Positions3DAsArray(0)
	groups := make(map[[3]int32][]int)
	for i, p := range positions {
		key := [3]int32{
			int32(p.X / smoothEpsilon),
			int32(p.Y / smoothEpsilon),
			int32(p.Z / smoothEpsilon),
		}
		groups[key] = append(groups[key], i)
	}

	normals := meshdata.MutableAttrOf[math.Vec3](md, meshdata.AttributeNormal, 0)
	for _, idxs := range groups {
		if len(idxs) < 2 {
			continue
		}
		var sum math.Vec3
		for _, idx := range idxs {
			sum = sum.Add(normals.Get(idx))
		}
		avg := sum.Normalize()
		for _, idx := range idxs {
			normals.Set(idx, avg)
		}
	}
	return nil
}

// FaceNormals computes per-vertex normals for an indexed or non-indexed
// triangle mesh by accumulating face normals, writing them into the first
// normal attribute.
func FaceNormals(md *meshdata.MeshData) error {
	if md.Primitive() != mesh.PrimitiveTriangles {
		return fmt.Errorf("%w: expected triangles, got %s", ErrUnsupportedFormat, md.Primitive())
	}
	if md.VertexDataFlags()&meshdata.DataFlagMutable == 0 {
		return ErrNotMutable
	}
	if !md.HasAttribute(meshdata.AttributePosition) {
		return ErrNoPositions
	}
	if !md.HasAttribute(meshdata.AttributeNormal) {
		return ErrNoNormals
	}
	if f := md.AttributeFormatOf(meshdata.AttributeNormal, 0); f != mesh.VertexFormatVector3 {
		return fmt.Errorf("%w: normal is %s", ErrUnsupportedFormat, f)
	}

	positions := md.Positions3DAsArray(0)
	var indices []uint32
	if md.IsIndexed() {
		indices = md.IndicesAsArray()
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	acc := make([]math.Vec3, len(positions))
	for t := 0; t+2 < len(indices); t += 3 {
		a, b, c := indices[t], indices[t+1], indices[t+2]
		if limit := uint32(len(positions)); a >= limit || b >= limit || c >= limit {
			return fmt.Errorf("%w: triangle %d references vertex past %d", ErrIndexOutOfRange, t/3, limit)
		}
		n := positions[b].Sub(positions[a]).Cross(positions[c].Sub(positions[a]))
		acc[a] = acc[a].Add(n)
		acc[b] = acc[b].Add(n)
		acc[c] = acc[c].Add(n)
	}

	normals := meshdata.MutableAttrOf[math.Vec3](md, meshdata.AttributeNormal, 0)
	for i, n := range acc {
		normals.Set(i, n.Normalize())
	}
	return nil
}
