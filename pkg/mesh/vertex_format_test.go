package mesh

import (
	"errors"
	"testing"
)

// expectViolation runs fn and checks that it panics with a contract error of
// the given kind.
func expectViolation(t *testing.T, kind error, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("expected %v panic, got none", kind)
		}
		err, ok := r.(error)
		if !ok {
			t.Fatalf("expected error panic, got %T: %v", r, r)
		}
		if !errors.Is(err, kind) {
			t.Fatalf("expected %v, got %v", kind, err)
		}
	}()
	fn()
}

func TestVertexFormatRoundTrip(t *testing.T) {
	for _, f := range VertexFormats() {
		got, err := Assemble(f.ComponentFormat(), f.ComponentCount(), f.IsNormalized())
		if err != nil {
			t.Errorf("%s: unexpected error: %v", f, err)
			continue
		}
		if got != f {
			t.Errorf("%s: round trip gave %s", f, got)
		}
	}
}

func TestVertexFormatComponentFormat(t *testing.T) {
	for _, f := range VertexFormats() {
		c := f.ComponentFormat()
		if c.ComponentCount() != 1 {
			t.Errorf("%s: component format %s has %d components", f, c, c.ComponentCount())
		}
		if c.IsNormalized() {
			t.Errorf("%s: component format %s is normalized", f, c)
		}
		if c.ComponentFormat() != c {
			t.Errorf("%s: component format not idempotent, %s -> %s", f, c, c.ComponentFormat())
		}
		if f.Size() != c.Size()*f.ComponentCount() {
			t.Errorf("%s: size %d != %d * %d", f, f.Size(), c.Size(), f.ComponentCount())
		}
	}
}

func TestVertexFormatSize(t *testing.T) {
	tests := []struct {
		format VertexFormat
		size   uint32
	}{
		{VertexFormatFloat, 4},
		{VertexFormatHalf, 2},
		{VertexFormatDouble, 8},
		{VertexFormatUnsignedByteNormalized, 1},
		{VertexFormatVector2us, 4},
		{VertexFormatVector3usNormalized, 6},
		{VertexFormatVector3, 12},
		{VertexFormatVector3d, 24},
		{VertexFormatVector4h, 8},
		{VertexFormatVector4i, 16},
		{VertexFormatVector4d, 32},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			if got := tt.format.Size(); got != tt.size {
				t.Errorf("expected size %d, got %d", tt.size, got)
			}
		})
	}
}

func TestVertexFormatNormalized(t *testing.T) {
	if VertexFormatVector2.IsNormalized() {
		t.Error("floating-point format reported as normalized")
	}
	if VertexFormatHalf.IsNormalized() {
		t.Error("half format reported as normalized")
	}
	if !VertexFormatVector4bNormalized.IsNormalized() {
		t.Error("expected Vector4bNormalized to be normalized")
	}
	if VertexFormatVector4b.IsNormalized() {
		t.Error("expected Vector4b not to be normalized")
	}
	if got := VertexFormatVector4bNormalized.ComponentFormat(); got != VertexFormatByte {
		t.Errorf("expected Byte, got %s", got)
	}
}

func TestAssemble(t *testing.T) {
	got, err := Assemble(VertexFormatUnsignedShort, 3, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != VertexFormatVector3usNormalized {
		t.Errorf("expected Vector3usNormalized, got %s", got)
	}

	got, err = Assemble(VertexFormatVector4h, 2, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != VertexFormatVector2h {
		t.Errorf("expected Vector2h, got %s", got)
	}

	if got := MustAssemble(VertexFormatVector3sNormalized, 1, false); got != VertexFormatShort {
		t.Errorf("expected Short, got %s", got)
	}
}

func TestAssembleInvalid(t *testing.T) {
	tests := []struct {
		name       string
		format     VertexFormat
		components uint32
		normalized bool
		kind       error
	}{
		{"normalized float", VertexFormatVector2, 1, true, ErrIncompatibleType},
		{"normalized int", VertexFormatInt, 2, true, ErrIncompatibleType},
		{"five components", VertexFormatVector3, 5, false, ErrInvalidEnumerant},
		{"zero components", VertexFormatFloat, 0, false, ErrInvalidEnumerant},
		{"invalid base", VertexFormatInvalid, 1, false, ErrInvalidEnumerant},
		{"implementation specific", MustWrapVertexFormat(0xdead), 1, false, ErrImplementationSpecific},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Assemble(tt.format, tt.components, tt.normalized)
			if !errors.Is(err, tt.kind) {
				t.Errorf("expected %v, got %v", tt.kind, err)
			}
		})
	}

	expectViolation(t, ErrIncompatibleType, func() {
		MustAssemble(VertexFormatDouble, 2, true)
	})
}

func TestVertexFormatWrap(t *testing.T) {
	f, err := WrapVertexFormat(0xdead)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !f.IsImplementationSpecific() {
		t.Error("expected wrapped format to be implementation-specific")
	}
	if !f.IsValid() {
		t.Error("expected wrapped format to be valid")
	}
	raw, err := f.Unwrap()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw != 0xdead {
		t.Errorf("expected 0xdead, got 0x%x", raw)
	}

	widest, err := WrapVertexFormat(0x7fffffff)
	if err != nil {
		t.Fatalf("unexpected error wrapping 31-bit value: %v", err)
	}
	if raw, _ := widest.Unwrap(); raw != 0x7fffffff {
		t.Errorf("expected 0x7fffffff, got 0x%x", raw)
	}

	if _, err := WrapVertexFormat(0x80000000); !errors.Is(err, ErrImplementationSpecific) {
		t.Errorf("expected oversized wrap to fail, got %v", err)
	}
	if _, err := WrapVertexFormat(uint32(f)); !errors.Is(err, ErrImplementationSpecific) {
		t.Errorf("expected double wrap to fail, got %v", err)
	}
	if _, err := VertexFormatVector3.Unwrap(); !errors.Is(err, ErrImplementationSpecific) {
		t.Errorf("expected unwrap of named format to fail, got %v", err)
	}
}

func TestVertexFormatImplementationSpecificQueries(t *testing.T) {
	f := MustWrapVertexFormat(0xdead)

	expectViolation(t, ErrImplementationSpecific, func() { f.Size() })
	expectViolation(t, ErrImplementationSpecific, func() { f.ComponentCount() })
	expectViolation(t, ErrImplementationSpecific, func() { f.ComponentFormat() })
	expectViolation(t, ErrImplementationSpecific, func() { f.IsNormalized() })
}

func TestVertexFormatInvalidQueries(t *testing.T) {
	expectViolation(t, ErrInvalidEnumerant, func() { VertexFormatInvalid.Size() })
	expectViolation(t, ErrInvalidEnumerant, func() { VertexFormat(0xdead).ComponentCount() })
	expectViolation(t, ErrInvalidEnumerant, func() { VertexFormat(0xdead).IsNormalized() })
}

func TestVertexFormatText(t *testing.T) {
	tests := []struct {
		format VertexFormat
		text   string
	}{
		{VertexFormatVector3, "Vector3"},
		{VertexFormatVector4ubNormalized, "Vector4ubNormalized"},
		{VertexFormatInt, "Int"},
		{MustWrapVertexFormat(0x1406), "ImplementationSpecific(0x1406)"},
		{VertexFormatInvalid, ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			text, err := tt.format.MarshalText()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(text) != tt.text {
				t.Errorf("expected %q, got %q", tt.text, text)
			}

			var got VertexFormat
			if err := got.UnmarshalText(text); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.format {
				t.Errorf("expected %s, got %s", tt.format, got)
			}
		})
	}

	var f VertexFormat
	if err := f.UnmarshalText([]byte("Vector5")); !errors.Is(err, ErrInvalidEnumerant) {
		t.Errorf("expected unknown name to fail, got %v", err)
	}
}

func TestVertexFormatString(t *testing.T) {
	if got := VertexFormatVector2sNormalized.String(); got != "Vector2sNormalized" {
		t.Errorf("expected Vector2sNormalized, got %s", got)
	}
	if got := VertexFormat(0).String(); got != "VertexFormat(0)" {
		t.Errorf("expected VertexFormat(0), got %s", got)
	}
	if got := MustWrapVertexFormat(0xdead).String(); got != "VertexFormat(0x8000dead)" {
		t.Errorf("expected VertexFormat(0x8000dead), got %s", got)
	}
}

func TestVertexFormatsCount(t *testing.T) {
	formats := VertexFormats()
	if len(formats) != 52 {
		t.Fatalf("expected 52 named formats, got %d", len(formats))
	}
	if formats[0] != VertexFormatFloat || formats[len(formats)-1] != VertexFormatVector4i {
		t.Errorf("unexpected bounds %s..%s", formats[0], formats[len(formats)-1])
	}
}
