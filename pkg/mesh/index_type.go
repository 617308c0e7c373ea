package mesh

import (
	"fmt"
	"strings"
)

// IndexType is the element type of an index buffer. The zero value means
// "not indexed".
type IndexType uint8

const (
	IndexTypeInvalid IndexType = iota
	IndexTypeUnsignedByte
	IndexTypeUnsignedShort
	IndexTypeUnsignedInt
)

var indexTypeNames = [...]string{"UnsignedByte", "UnsignedShort", "UnsignedInt"}

// IsValid reports whether the type is one of the named values.
func (t IndexType) IsValid() bool {
	return t >= IndexTypeUnsignedByte && t <= IndexTypeUnsignedInt
}

// Size returns the size of one index in bytes.
func (t IndexType) Size() uint32 {
	switch t {
	case IndexTypeUnsignedByte:
		return 1
	case IndexTypeUnsignedShort:
		return 2
	case IndexTypeUnsignedInt:
		return 4
	}
	panic(Violation("IndexType.Size", ErrInvalidEnumerant, "invalid type %s", t))
}

// String returns the index type name.
func (t IndexType) String() string {
	if t.IsValid() {
		return indexTypeNames[t-1]
	}
	return fmt.Sprintf("IndexType(%d)", uint8(t))
}

// MarshalText encodes the type by name, the invalid type as empty text.
func (t IndexType) MarshalText() ([]byte, error) {
	if t == IndexTypeInvalid {
		return []byte{}, nil
	}
	if !t.IsValid() {
		return nil, Violation("IndexType.MarshalText", ErrInvalidEnumerant, "invalid type %d", uint8(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (t *IndexType) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if s == "" {
		*t = IndexTypeInvalid
		return nil
	}
	for i, name := range indexTypeNames {
		if name == s {
			*t = IndexType(i + 1)
			return nil
		}
	}
	return fmt.Errorf("%w: unknown index type %q", ErrInvalidEnumerant, s)
}
