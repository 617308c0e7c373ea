// Package meshtools provides in-place operations over MeshData: transforms,
// bounds and normal smoothing.
package meshtools

import (
	gomath "math"

	"github.com/Faultbox/midgard-mesh/pkg/math"
	"github.com/Faultbox/midgard-mesh/pkg/meshdata"
)

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// EmptyBounds returns inverted bounds that any point extends.
func EmptyBounds() Bounds {
	inf := float32(gomath.Inf(1))
	return Bounds{
		Min: math.Vec3{X: inf, Y: inf, Z: inf},
		Max: math.Vec3{X: -inf, Y: -inf, Z: -inf},
	}
}

// IsEmpty reports whether no point was added.
func (b Bounds) IsEmpty() bool {
	return b.Min.X > b.Max.X
}

// Extend grows the box to contain p.
func (b *Bounds) Extend(p math.Vec3) {
	b.Min = b.Min.Min(p)
	b.Max = b.Max.Max(p)
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the extent of the box along each axis.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// ComputeBounds returns the bounds of the first position attribute in any
// supported format. 2D positions get Z of zero.
func ComputeBounds(md *meshdata.MeshData) (Bounds, error) {
	if !md.HasAttribute(meshdata.AttributePosition) {
		return Bounds{}, ErrNoPositions
	}
	b := EmptyBounds()
	for _, p := range md.Positions3DAsArray(0) {
		b.Extend(p)
	}
	return b, nil
}
