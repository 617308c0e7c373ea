package meshdata

import (
	"fmt"
	"strings"
)

// DataFlags describe what a MeshData may do with its index or vertex buffer.
type DataFlags uint8

const (
	// DataFlagOwned means the buffer belongs to the mesh and can be released.
	DataFlagOwned DataFlags = 1 << iota
	// DataFlagMutable means the buffer can be written through mutable accessors.
	DataFlagMutable
)

func (f DataFlags) String() string {
	if f == 0 {
		return "None"
	}
	var parts []string
	if f&DataFlagOwned != 0 {
		parts = append(parts, "Owned")
	}
	if f&DataFlagMutable != 0 {
		parts = append(parts, "Mutable")
	}
	if rest := f &^ (DataFlagOwned | DataFlagMutable); rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint8(rest)))
	}
	return strings.Join(parts, "|")
}
