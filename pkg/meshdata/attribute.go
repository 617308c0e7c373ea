// Package meshdata provides MeshData, a self-describing container for mesh
// vertex and index buffers, and the descriptors used to build it.
package meshdata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Faultbox/midgard-mesh/pkg/mesh"
)

// Attribute is the semantic name of a vertex attribute. Values from
// AttributeCustom up are free for application use.
type Attribute uint16

const (
	AttributePosition Attribute = iota + 1
	AttributeNormal
	AttributeTextureCoordinates
	AttributeColor

	attributeEnd
)

// AttributeCustom is the first custom attribute name.
const AttributeCustom Attribute = 32768

var attributeNames = [...]string{"Position", "Normal", "TextureCoordinates", "Color"}

// CustomAttribute returns the custom attribute with the given id.
func CustomAttribute(id uint16) (Attribute, error) {
	if id >= uint16(AttributeCustom) {
		return 0, mesh.Violation("meshdata.CustomAttribute", mesh.ErrInvalidEnumerant,
			"custom attribute id %d too large", id)
	}
	return AttributeCustom + Attribute(id), nil
}

// MustCustomAttribute is like CustomAttribute but panics on failure.
func MustCustomAttribute(id uint16) Attribute {
	a, err := CustomAttribute(id)
	if err != nil {
		panic(err)
	}
	return a
}

// IsCustom reports whether the name is a custom attribute.
func (a Attribute) IsCustom() bool {
	return a >= AttributeCustom
}

// IsValid reports whether the name is builtin or custom.
func (a Attribute) IsValid() bool {
	return a.IsCustom() || (a >= AttributePosition && a < attributeEnd)
}

// CustomID returns the id of a custom attribute.
func (a Attribute) CustomID() uint16 {
	if !a.IsCustom() {
		panic(mesh.Violation("meshdata.Attribute.CustomID", mesh.ErrInvalidEnumerant,
			"%s is not a custom attribute", a))
	}
	return uint16(a - AttributeCustom)
}

func (a Attribute) String() string {
	switch {
	case a.IsCustom():
		return fmt.Sprintf("Custom(%d)", uint16(a-AttributeCustom))
	case a >= AttributePosition && a < attributeEnd:
		return attributeNames[a-AttributePosition]
	}
	return fmt.Sprintf("Attribute(%d)", uint16(a))
}

// MarshalText encodes builtin names as-is and custom ones as Custom(n).
func (a Attribute) MarshalText() ([]byte, error) {
	if !a.IsValid() {
		return nil, mesh.Violation("Attribute.MarshalText", mesh.ErrInvalidEnumerant, "invalid attribute %d", uint16(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (a *Attribute) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if rest, ok := strings.CutPrefix(s, "Custom("); ok && strings.HasSuffix(rest, ")") {
		id, err := strconv.ParseUint(rest[:len(rest)-1], 10, 16)
		if err != nil {
			return fmt.Errorf("%w: %q: %v", mesh.ErrInvalidEnumerant, s, err)
		}
		custom, err := CustomAttribute(uint16(id))
		if err != nil {
			return err
		}
		*a = custom
		return nil
	}
	for i, name := range attributeNames {
		if name == s {
			*a = AttributePosition + Attribute(i)
			return nil
		}
	}
	return fmt.Errorf("%w: unknown attribute %q", mesh.ErrInvalidEnumerant, s)
}

// builtinFormats lists the formats each builtin attribute can be stored in.
var builtinFormats = map[Attribute][]mesh.VertexFormat{
	AttributePosition: {
		mesh.VertexFormatVector2, mesh.VertexFormatVector2h,
		mesh.VertexFormatVector2ub, mesh.VertexFormatVector2ubNormalized,
		mesh.VertexFormatVector2b, mesh.VertexFormatVector2bNormalized,
		mesh.VertexFormatVector2us, mesh.VertexFormatVector2usNormalized,
		mesh.VertexFormatVector2s, mesh.VertexFormatVector2sNormalized,
		mesh.VertexFormatVector3, mesh.VertexFormatVector3h,
		mesh.VertexFormatVector3ub, mesh.VertexFormatVector3ubNormalized,
		mesh.VertexFormatVector3b, mesh.VertexFormatVector3bNormalized,
		mesh.VertexFormatVector3us, mesh.VertexFormatVector3usNormalized,
		mesh.VertexFormatVector3s, mesh.VertexFormatVector3sNormalized,
	},
	AttributeNormal: {
		mesh.VertexFormatVector3, mesh.VertexFormatVector3h,
		mesh.VertexFormatVector3bNormalized, mesh.VertexFormatVector3sNormalized,
	},
	AttributeTextureCoordinates: {
		mesh.VertexFormatVector2, mesh.VertexFormatVector2h,
		mesh.VertexFormatVector2ub, mesh.VertexFormatVector2ubNormalized,
		mesh.VertexFormatVector2b, mesh.VertexFormatVector2bNormalized,
		mesh.VertexFormatVector2us, mesh.VertexFormatVector2usNormalized,
		mesh.VertexFormatVector2s, mesh.VertexFormatVector2sNormalized,
	},
	AttributeColor: {
		mesh.VertexFormatVector3, mesh.VertexFormatVector3h,
		mesh.VertexFormatVector3ubNormalized, mesh.VertexFormatVector3usNormalized,
		mesh.VertexFormatVector4, mesh.VertexFormatVector4h,
		mesh.VertexFormatVector4ubNormalized, mesh.VertexFormatVector4usNormalized,
	},
}

// IsFormatAllowed reports whether an attribute of the given name can be
// stored in format. Custom names and implementation-specific formats are
// always allowed.
func IsFormatAllowed(name Attribute, format mesh.VertexFormat) bool {
	if name.IsCustom() || format.IsImplementationSpecific() {
		return true
	}
	for _, f := range builtinFormats[name] {
		if f == format {
			return true
		}
	}
	return false
}
