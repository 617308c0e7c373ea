package strided

import (
	"reflect"
	"sync"

	"github.com/Faultbox/midgard-mesh/pkg/mesh"
)

// plainTypes caches isPlain results per element type.
var plainTypes sync.Map // reflect.Type -> bool

// isPlain reports whether t holds no pointers, so it can be read from and
// written to raw bytes. Slices, strings, maps, interfaces, channels and funcs
// all hold pointers.
func isPlain(t reflect.Type) bool {
	if v, ok := plainTypes.Load(t); ok {
		return v.(bool)
	}
	plain := true
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
	case reflect.Array:
		plain = isPlain(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if !isPlain(t.Field(i).Type) {
				plain = false
				break
			}
		}
	default:
		plain = false
	}
	plainTypes.Store(t, plain)
	return plain
}

// checkPlain fails with ErrIncompatibleType unless T is plain data.
func checkPlain[T any](op string) error {
	t := reflect.TypeFor[T]()
	if !isPlain(t) {
		return mesh.Violation(op, mesh.ErrIncompatibleType,
			"%s contains pointers and can't be viewed as raw bytes", t)
	}
	return nil
}
