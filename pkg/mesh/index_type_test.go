package mesh

import (
	"errors"
	"testing"
)

func TestIndexTypeSize(t *testing.T) {
	tests := []struct {
		typ  IndexType
		size uint32
	}{
		{IndexTypeUnsignedByte, 1},
		{IndexTypeUnsignedShort, 2},
		{IndexTypeUnsignedInt, 4},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			if got := tt.typ.Size(); got != tt.size {
				t.Errorf("expected size %d, got %d", tt.size, got)
			}
		})
	}

	expectViolation(t, ErrInvalidEnumerant, func() { IndexTypeInvalid.Size() })
	expectViolation(t, ErrInvalidEnumerant, func() { IndexType(0xfe).Size() })
}

func TestIndexTypeText(t *testing.T) {
	for _, typ := range []IndexType{IndexTypeUnsignedByte, IndexTypeUnsignedShort, IndexTypeUnsignedInt, IndexTypeInvalid} {
		text, err := typ.MarshalText()
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", typ, err)
		}
		var got IndexType
		if err := got.UnmarshalText(text); err != nil {
			t.Fatalf("%s: unexpected error: %v", typ, err)
		}
		if got != typ {
			t.Errorf("expected %s, got %s", typ, got)
		}
	}

	var typ IndexType
	if err := typ.UnmarshalText([]byte("UnsignedLong")); !errors.Is(err, ErrInvalidEnumerant) {
		t.Errorf("expected unknown name to fail, got %v", err)
	}
	if _, err := IndexType(9).MarshalText(); !errors.Is(err, ErrInvalidEnumerant) {
		t.Errorf("expected invalid type to fail marshaling, got %v", err)
	}
}

func TestPrimitiveText(t *testing.T) {
	tests := []struct {
		primitive Primitive
		name      string
	}{
		{PrimitivePoints, "Points"},
		{PrimitiveLineLoop, "LineLoop"},
		{PrimitiveTriangles, "Triangles"},
		{PrimitiveTriangleFan, "TriangleFan"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.primitive.String(); got != tt.name {
				t.Errorf("expected %s, got %s", tt.name, got)
			}
			var p Primitive
			if err := p.UnmarshalText([]byte(tt.name)); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p != tt.primitive {
				t.Errorf("expected %s, got %s", tt.primitive, p)
			}
		})
	}

	if PrimitiveInvalid.IsValid() {
		t.Error("expected zero primitive to be invalid")
	}
	if got := Primitive(42).String(); got != "Primitive(42)" {
		t.Errorf("expected Primitive(42), got %s", got)
	}
}
