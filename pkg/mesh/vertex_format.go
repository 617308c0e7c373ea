// Package mesh provides the vertex, index and primitive format algebra shared
// by mesh containers, importers and GPU binding layers.
package mesh

import (
	"fmt"
	"strconv"
	"strings"
)

// VertexFormat describes the type of a single vertex attribute: scalar base
// type, component count and normalization.
//
// The zero value is invalid. Values with bit 31 set are implementation-specific
// formats carrying an opaque native identifier, see WrapVertexFormat.
type VertexFormat uint32

// Named vertex formats. The scalar block and each vector block list the base
// types in the same order, so Assemble can move between arities by offset.
const (
	VertexFormatInvalid VertexFormat = iota

	VertexFormatFloat
	VertexFormatHalf
	VertexFormatDouble
	VertexFormatUnsignedByte
	VertexFormatUnsignedByteNormalized
	VertexFormatByte
	VertexFormatByteNormalized
	VertexFormatUnsignedShort
	VertexFormatUnsignedShortNormalized
	VertexFormatShort
	VertexFormatShortNormalized
	VertexFormatUnsignedInt
	VertexFormatInt

	VertexFormatVector2
	VertexFormatVector2h
	VertexFormatVector2d
	VertexFormatVector2ub
	VertexFormatVector2ubNormalized
	VertexFormatVector2b
	VertexFormatVector2bNormalized
	VertexFormatVector2us
	VertexFormatVector2usNormalized
	VertexFormatVector2s
	VertexFormatVector2sNormalized
	VertexFormatVector2ui
	VertexFormatVector2i

	VertexFormatVector3
	VertexFormatVector3h
	VertexFormatVector3d
	VertexFormatVector3ub
	VertexFormatVector3ubNormalized
	VertexFormatVector3b
	VertexFormatVector3bNormalized
	VertexFormatVector3us
	VertexFormatVector3usNormalized
	VertexFormatVector3s
	VertexFormatVector3sNormalized
	VertexFormatVector3ui
	VertexFormatVector3i

	VertexFormatVector4
	VertexFormatVector4h
	VertexFormatVector4d
	VertexFormatVector4ub
	VertexFormatVector4ubNormalized
	VertexFormatVector4b
	VertexFormatVector4bNormalized
	VertexFormatVector4us
	VertexFormatVector4usNormalized
	VertexFormatVector4s
	VertexFormatVector4sNormalized
	VertexFormatVector4ui
	VertexFormatVector4i

	vertexFormatEnd
)

// implementationSpecificBit marks wrapped native formats.
const implementationSpecificBit = 1 << 31

// slotsPerArity is the number of base types in each arity block.
const slotsPerArity = uint32(VertexFormatVector2 - VertexFormatFloat)

var vertexFormatNames = [...]string{
	"Float", "Half", "Double",
	"UnsignedByte", "UnsignedByteNormalized", "Byte", "ByteNormalized",
	"UnsignedShort", "UnsignedShortNormalized", "Short", "ShortNormalized",
	"UnsignedInt", "Int",
	"Vector2", "Vector2h", "Vector2d",
	"Vector2ub", "Vector2ubNormalized", "Vector2b", "Vector2bNormalized",
	"Vector2us", "Vector2usNormalized", "Vector2s", "Vector2sNormalized",
	"Vector2ui", "Vector2i",
	"Vector3", "Vector3h", "Vector3d",
	"Vector3ub", "Vector3ubNormalized", "Vector3b", "Vector3bNormalized",
	"Vector3us", "Vector3usNormalized", "Vector3s", "Vector3sNormalized",
	"Vector3ui", "Vector3i",
	"Vector4", "Vector4h", "Vector4d",
	"Vector4ub", "Vector4ubNormalized", "Vector4b", "Vector4bNormalized",
	"Vector4us", "Vector4usNormalized", "Vector4s", "Vector4sNormalized",
	"Vector4ui", "Vector4i",
}

// scalarSizes is indexed by slot within an arity block.
var scalarSizes = [slotsPerArity]uint32{4, 2, 8, 1, 1, 1, 1, 2, 2, 2, 2, 4, 4}

// VertexFormats returns all named formats in declaration order.
func VertexFormats() []VertexFormat {
	out := make([]VertexFormat, 0, vertexFormatEnd-VertexFormatFloat)
	for f := VertexFormatFloat; f < vertexFormatEnd; f++ {
		out = append(out, f)
	}
	return out
}

// IsImplementationSpecific reports whether the format wraps a native value.
func (f VertexFormat) IsImplementationSpecific() bool {
	return f&implementationSpecificBit != 0
}

// IsValid reports whether the format is a named value or a wrapped native one.
func (f VertexFormat) IsValid() bool {
	return f.IsImplementationSpecific() || (f >= VertexFormatFloat && f < vertexFormatEnd)
}

// slot returns the arity block and base-type slot of a named format,
// panicking for anything the algebra cannot introspect.
func (f VertexFormat) slot(op string) (arity, slot uint32) {
	if f.IsImplementationSpecific() {
		panic(Violation(op, ErrImplementationSpecific,
			"can't introspect implementation-specific format 0x%x", uint32(f)&^implementationSpecificBit))
	}
	if f < VertexFormatFloat || f >= vertexFormatEnd {
		panic(Violation(op, ErrInvalidEnumerant, "invalid format %s", f))
	}
	idx := uint32(f - VertexFormatFloat)
	return idx/slotsPerArity + 1, idx % slotsPerArity
}

// Size returns the size of the whole vector in bytes.
func (f VertexFormat) Size() uint32 {
	arity, slot := f.slot("VertexFormat.Size")
	return scalarSizes[slot] * arity
}

// ComponentCount returns the number of vector components, 1 to 4.
func (f VertexFormat) ComponentCount() uint32 {
	arity, _ := f.slot("VertexFormat.ComponentCount")
	return arity
}

// ComponentFormat returns the scalar base type with normalization stripped,
// e.g. UnsignedShort for Vector3usNormalized.
func (f VertexFormat) ComponentFormat() VertexFormat {
	_, slot := f.slot("VertexFormat.ComponentFormat")
	base := VertexFormatFloat + VertexFormat(slot)
	switch base {
	case VertexFormatUnsignedByteNormalized, VertexFormatByteNormalized,
		VertexFormatUnsignedShortNormalized, VertexFormatShortNormalized:
		return base - 1
	}
	return base
}

// IsNormalized reports whether the format is a fixed-point type interpreted
// in the [0, 1] or [-1, 1] range. Floating-point types are never normalized.
func (f VertexFormat) IsNormalized() bool {
	_, slot := f.slot("VertexFormat.IsNormalized")
	switch VertexFormatFloat + VertexFormat(slot) {
	case VertexFormatUnsignedByteNormalized, VertexFormatByteNormalized,
		VertexFormatUnsignedShortNormalized, VertexFormatShortNormalized:
		return true
	}
	return false
}

// Assemble builds a format from the base type of format, a component count
// and a normalization flag. Only 8- and 16-bit integer bases can be
// normalized.
func Assemble(format VertexFormat, componentCount uint32, normalized bool) (VertexFormat, error) {
	const op = "mesh.Assemble"
	if format.IsImplementationSpecific() {
		return VertexFormatInvalid, Violation(op, ErrImplementationSpecific,
			"can't assemble from implementation-specific format 0x%x", uint32(format)&^implementationSpecificBit)
	}
	if !format.IsValid() {
		return VertexFormatInvalid, Violation(op, ErrInvalidEnumerant, "invalid format %s", format)
	}

	base := format.ComponentFormat()
	if normalized {
		switch base {
		case VertexFormatUnsignedByte, VertexFormatByte,
			VertexFormatUnsignedShort, VertexFormatShort:
			base++
		default:
			return VertexFormatInvalid, Violation(op, ErrIncompatibleType, "%s can't be made normalized", format)
		}
	}

	if componentCount < 1 || componentCount > 4 {
		return VertexFormatInvalid, Violation(op, ErrInvalidEnumerant, "invalid component count %d", componentCount)
	}
	return base + VertexFormat((componentCount-1)*slotsPerArity), nil
}

// MustAssemble is like Assemble but panics on failure. Meant for values
// known to be valid at compile time.
func MustAssemble(format VertexFormat, componentCount uint32, normalized bool) VertexFormat {
	f, err := Assemble(format, componentCount, normalized)
	if err != nil {
		panic(err)
	}
	return f
}

// WrapVertexFormat wraps an implementation-specific value, such as a GL or
// WebGPU enum, in a VertexFormat. The value has to fit into 31 bits.
func WrapVertexFormat(raw uint32) (VertexFormat, error) {
	if raw&implementationSpecificBit != 0 {
		return VertexFormatInvalid, Violation("mesh.WrapVertexFormat", ErrImplementationSpecific,
			"implementation-specific value 0x%x already wrapped or too large", raw)
	}
	return VertexFormat(raw | implementationSpecificBit), nil
}

// MustWrapVertexFormat is like WrapVertexFormat but panics on failure.
func MustWrapVertexFormat(raw uint32) VertexFormat {
	f, err := WrapVertexFormat(raw)
	if err != nil {
		panic(err)
	}
	return f
}

// Unwrap returns the implementation-specific value wrapped in the format.
func (f VertexFormat) Unwrap() (uint32, error) {
	if !f.IsImplementationSpecific() {
		return 0, Violation("VertexFormat.Unwrap", ErrImplementationSpecific,
			"%s isn't a wrapped implementation-specific value", f)
	}
	return uint32(f) &^ implementationSpecificBit, nil
}

// String returns the format name.
func (f VertexFormat) String() string {
	if f.IsImplementationSpecific() {
		return fmt.Sprintf("VertexFormat(0x%x)", uint32(f))
	}
	if f >= VertexFormatFloat && f < vertexFormatEnd {
		return vertexFormatNames[f-VertexFormatFloat]
	}
	return fmt.Sprintf("VertexFormat(%d)", uint32(f))
}

const implementationSpecificPrefix = "ImplementationSpecific("

// MarshalText encodes named formats by name and wrapped ones as
// ImplementationSpecific(0x...). The invalid format encodes as empty text.
func (f VertexFormat) MarshalText() ([]byte, error) {
	switch {
	case f == VertexFormatInvalid:
		return []byte{}, nil
	case f.IsImplementationSpecific():
		return []byte(fmt.Sprintf("%s0x%x)", implementationSpecificPrefix, uint32(f)&^implementationSpecificBit)), nil
	case f < vertexFormatEnd:
		return []byte(f.String()), nil
	}
	return nil, Violation("VertexFormat.MarshalText", ErrInvalidEnumerant, "invalid format %d", uint32(f))
}

// UnmarshalText is the inverse of MarshalText.
func (f *VertexFormat) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if s == "" {
		*f = VertexFormatInvalid
		return nil
	}
	if strings.HasPrefix(s, implementationSpecificPrefix) && strings.HasSuffix(s, ")") {
		raw, err := strconv.ParseUint(s[len(implementationSpecificPrefix):len(s)-1], 0, 32)
		if err != nil {
			return fmt.Errorf("%w: %q: %v", ErrInvalidEnumerant, s, err)
		}
		wrapped, err := WrapVertexFormat(uint32(raw))
		if err != nil {
			return err
		}
		*f = wrapped
		return nil
	}
	for i, name := range vertexFormatNames {
		if name == s {
			*f = VertexFormatFloat + VertexFormat(i)
			return nil
		}
	}
	return fmt.Errorf("%w: unknown vertex format %q", ErrInvalidEnumerant, s)
}
