package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	id := Identity()
	result := m.Mul(id)

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	// Translation should be in column 4 (indices 12, 13, 14)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
}

func TestScale(t *testing.T) {
	m := Scale(2, 3, 4)

	if m[0] != 2 || m[5] != 3 || m[10] != 4 {
		t.Errorf("Scale diagonal: got (%f, %f, %f), want (2, 3, 4)", m[0], m[5], m[10])
	}
}

func TestTransformPoint(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		p    Vec3
		want Vec3
	}{
		{"translate", Translate(10, 20, 30), Vec3{1, 2, 3}, Vec3{11, 22, 33}},
		{"scale", Scale(2, 2, 2), Vec3{1, 2, 3}, Vec3{2, 4, 6}},
		{"identity", Identity(), Vec3{-1, 0, 5}, Vec3{-1, 0, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.TransformPoint(tt.p); got != tt.want {
				t.Errorf("TransformPoint: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTransformDirectionIgnoresTranslation(t *testing.T) {
	m := Translate(10, 20, 30)
	d := Vec3{0, 1, 0}
	if got := m.TransformDirection(d); got != d {
		t.Errorf("TransformDirection: got %v, want %v", got, d)
	}
}

func TestRotateY90(t *testing.T) {
	m := RotateY(float32(math.Pi / 2)) // 90 degrees
	result := m.TransformPoint(Vec3{1, 0, 0})

	// After 90 degree Y rotation, (1,0,0) should become approximately (0,0,-1)
	if abs(result.X) > 0.001 || abs(result.Y) > 0.001 || abs(result.Z+1) > 0.001 {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", result)
	}
}

func TestRotateAxisMatchesRotateZ(t *testing.T) {
	angle := float32(0.7)
	a := RotateAxis(Vec3{0, 0, 2}, angle)
	b := RotateZ(angle)
	for i := range a {
		if abs(a[i]-b[i]) > 0.0001 {
			t.Errorf("element %d: got %f, want %f", i, a[i], b[i])
		}
	}
}

func TestNormalMatrix(t *testing.T) {
	// Non-uniform scale squashes Y; a normal pointing up must stay pointing up
	// and a 45 degree normal must tilt towards Y.
	m := Scale(1, 0.5, 1).Mul(Translate(3, 4, 5))
	n := m.NormalMatrix()

	up := n.TransformDirection(Vec3{0, 1, 0}).Normalize()
	if abs(up.Y-1) > 0.001 {
		t.Errorf("expected up normal to stay up, got %v", up)
	}

	diag := n.TransformDirection(Vec3{1, 1, 0}).Normalize()
	if diag.Y <= diag.X {
		t.Errorf("expected normal to tilt towards Y, got %v", diag)
	}
	if n[12] != 0 || n[13] != 0 || n[14] != 0 {
		t.Errorf("expected no translation, got (%f, %f, %f)", n[12], n[13], n[14])
	}
}

func TestInverse(t *testing.T) {
	m := Translate(1, 2, 3).Mul(Scale(2, 4, 8))
	result := m.Mul(m.Inverse())
	id := Identity()
	for i := range result {
		if abs(result[i]-id[i]) > 0.0001 {
			t.Errorf("M * M^-1 element %d: got %f, want %f", i, result[i], id[i])
		}
	}
}

func TestMulVec4(t *testing.T) {
	got := Translate(1, 2, 3).MulVec4(Vec4{1, 1, 1, 1})
	if got != (Vec4{2, 3, 4, 1}) {
		t.Errorf("MulVec4: got %v, want {2 3 4 1}", got)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
