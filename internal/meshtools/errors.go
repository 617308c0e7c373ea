package meshtools

import "errors"

var (
	ErrNoPositions       = errors.New("mesh has no positions")
	ErrNoNormals         = errors.New("mesh has no normals")
	ErrIndexOutOfRange   = errors.New("index out of range")
	ErrNotMutable        = errors.New("vertex data is not mutable")
	ErrUnsupportedFormat = errors.New("attribute format not supported for in-place update")
)
