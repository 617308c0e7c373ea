package mesh

import (
	"fmt"
	"strings"
)

// Primitive is the mesh topology.
type Primitive uint8

const (
	PrimitiveInvalid Primitive = iota
	PrimitivePoints
	PrimitiveLines
	PrimitiveLineLoop
	PrimitiveLineStrip
	PrimitiveTriangles
	PrimitiveTriangleStrip
	PrimitiveTriangleFan
)

var primitiveNames = [...]string{
	"Points", "Lines", "LineLoop", "LineStrip",
	"Triangles", "TriangleStrip", "TriangleFan",
}

// IsValid reports whether the primitive is one of the named values.
func (p Primitive) IsValid() bool {
	return p >= PrimitivePoints && p <= PrimitiveTriangleFan
}

// String returns the primitive name.
func (p Primitive) String() string {
	if p.IsValid() {
		return primitiveNames[p-1]
	}
	return fmt.Sprintf("Primitive(%d)", uint8(p))
}

// MarshalText encodes the primitive by name, the invalid value as empty text.
func (p Primitive) MarshalText() ([]byte, error) {
	if p == PrimitiveInvalid {
		return []byte{}, nil
	}
	if !p.IsValid() {
		return nil, Violation("Primitive.MarshalText", ErrInvalidEnumerant, "invalid primitive %d", uint8(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (p *Primitive) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if s == "" {
		*p = PrimitiveInvalid
		return nil
	}
	for i, name := range primitiveNames {
		if name == s {
			*p = Primitive(i + 1)
			return nil
		}
	}
	return fmt.Errorf("%w: unknown primitive %q", ErrInvalidEnumerant, s)
}
