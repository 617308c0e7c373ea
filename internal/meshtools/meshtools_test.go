package meshtools

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/midgard-mesh/pkg/math"
	"github.com/Faultbox/midgard-mesh/pkg/mesh"
	"github.com/Faultbox/midgard-mesh/pkg/meshdata"
	"github.com/Faultbox/midgard-mesh/pkg/strided"
)

type vertex struct {
	Position math.Vec3
	Normal   math.Vec3
}

// newTriangle builds an interleaved position+normal triangle in the XY plane.
func newTriangle(t *testing.T, flags meshdata.DataFlags) (*meshdata.MeshData, []vertex) {
	t.Helper()
	vertices := []vertex{
		{Position: math.Vec3{X: 0, Y: 0, Z: 0}, Normal: math.Vec3{Z: 1}},
		{Position: math.Vec3{X: 2, Y: 0, Z: 0}, Normal: math.Vec3{Z: 1}},
		{Position: math.Vec3{X: 0, Y: 4, Z: 0}, Normal: math.Vec3{Z: 1}},
	}
	positions := strided.MustCast[math.Vec3](strided.FieldOf[vertex, math.Vec3](vertices, 0))
	normals := strided.MustCast[math.Vec3](strided.FieldOf[vertex, math.Vec3](vertices, 12))
	attrs := []meshdata.AttributeData{
		must(t)(meshdata.NewTypedAttributeStrided(meshdata.AttributePosition, positions)),
		must(t)(meshdata.NewTypedAttributeStrided(meshdata.AttributeNormal, normals)),
	}
	md, err := meshdata.NewBorrowedNonIndexed(mesh.PrimitiveTriangles, flags, strided.Of(vertices).Data(), attrs)
	if err != nil {
		t.Fatalf("failed to create mesh: %v", err)
	}
	return md, vertices
}

func must(t *testing.T) func(meshdata.AttributeData, error) meshdata.AttributeData {
	return func(a meshdata.AttributeData, err error) meshdata.AttributeData {
		t.Helper()
		if err != nil {
			t.Fatalf("failed to create attribute: %v", err)
		}
		return a
	}
}

func near(a, b math.Vec3) bool {
	d := a.Sub(b)
	return d.Length() < 1e-5
}

func TestComputeBounds(t *testing.T) {
	md, _ := newTriangle(t, 0)

	b, err := ComputeBounds(md)
	if err != nil {
		t.Fatalf("failed to compute bounds: %v", err)
	}
	if b.Min != (math.Vec3{}) || b.Max != (math.Vec3{X: 2, Y: 4}) {
		t.Errorf("expected (0,0,0)-(2,4,0), got %v-%v", b.Min, b.Max)
	}
	if b.Center() != (math.Vec3{X: 1, Y: 2}) {
		t.Errorf("expected center (1, 2, 0), got %v", b.Center())
	}
	if b.Size() != (math.Vec3{X: 2, Y: 4}) {
		t.Errorf("expected size (2, 4, 0), got %v", b.Size())
	}

	counted := meshdata.Must(meshdata.NewVertexCountOnly(mesh.PrimitiveTriangles, 3))
	if _, err := ComputeBounds(counted); !errors.Is(err, ErrNoPositions) {
		t.Errorf("expected ErrNoPositions, got %v", err)
	}
}

func TestEmptyBounds(t *testing.T) {
	b := EmptyBounds()
	if !b.IsEmpty() {
		t.Fatal("expected empty bounds")
	}
	b.Extend(math.Vec3{X: 1, Y: -1, Z: 3})
	if b.IsEmpty() || b.Min != b.Max {
		t.Errorf("expected a single-point box, got %v-%v", b.Min, b.Max)
	}
}

func TestTransform(t *testing.T) {
	md, vertices := newTriangle(t, meshdata.DataFlagMutable)

	// Rotate 90 degrees around Y, then move up.
	m := math.Translate(0, 10, 0).Mul(math.RotateY(float32(1.5707963267948966)))
	if err := Transform(md, m); err != nil {
		t.Fatalf("failed to transform: %v", err)
	}

	if !near(vertices[1].Position, math.Vec3{X: 0, Y: 10, Z: -2}) {
		t.Errorf("expected (0, 10, -2), got %v", vertices[1].Position)
	}
	if !near(vertices[2].Position, math.Vec3{X: 0, Y: 14, Z: 0}) {
		t.Errorf("expected (0, 14, 0), got %v", vertices[2].Position)
	}
	if !near(vertices[0].Normal, math.Vec3{X: 1}) {
		t.Errorf("expected normal (1, 0, 0), got %v", vertices[0].Normal)
	}
}

func TestTransformNonUniformScaleKeepsNormalsUnit(t *testing.T) {
	md, vertices := newTriangle(t, meshdata.DataFlagMutable)

	if err := TransformGL(md, mgl32.Scale3D(2, 2, 8)); err != nil {
		t.Fatalf("failed to transform: %v", err)
	}
	if !near(vertices[2].Position, math.Vec3{Y: 8}) {
		t.Errorf("expected (0, 8, 0), got %v", vertices[2].Position)
	}
	if !near(vertices[0].Normal, math.Vec3{Z: 1}) {
		t.Errorf("expected normal to stay (0, 0, 1), got %v", vertices[0].Normal)
	}
}

func TestTransformRequiresMutable(t *testing.T) {
	md, vertices := newTriangle(t, 0)

	if err := Transform(md, math.Translate(1, 1, 1)); !errors.Is(err, ErrNotMutable) {
		t.Fatalf("expected ErrNotMutable, got %v", err)
	}
	if vertices[1].Position != (math.Vec3{X: 2}) {
		t.Error("expected data untouched")
	}
}

func TestTransformRejectsPackedFormats(t *testing.T) {
	positions := [][3]int16{{1, 2, 3}}
	view := strided.Of(positions)
	a := meshdata.MustAttribute(meshdata.AttributePosition, mesh.VertexFormatVector3s, view)
	md := meshdata.Must(meshdata.NewNonIndexed(mesh.PrimitivePoints, view.Data(), []meshdata.AttributeData{a}))

	if err := Transform(md, math.Identity()); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if positions[0] != [3]int16{1, 2, 3} {
		t.Error("expected data untouched")
	}
}

func TestTransform2D(t *testing.T) {
	positions := []math.Vec2{{X: 1, Y: 0}}
	view := strided.Of(positions)
	a := meshdata.MustAttribute(meshdata.AttributePosition, mesh.VertexFormatVector2, view)
	md := meshdata.Must(meshdata.NewNonIndexed(mesh.PrimitivePoints, view.Data(), []meshdata.AttributeData{a}))

	if err := Transform(md, math.Translate(1, 2, 5)); err != nil {
		t.Fatalf("failed to transform: %v", err)
	}
	if positions[0] != (math.Vec2{X: 2, Y: 2}) {
		t.Errorf("expected (2, 2), got %v", positions[0])
	}
}

func TestCenterXZ(t *testing.T) {
	md, vertices := newTriangle(t, meshdata.DataFlagMutable)

	cx, cz, err := CenterXZ(md)
	if err != nil {
		t.Fatalf("failed to center: %v", err)
	}
	if cx != 1 || cz != 0 {
		t.Errorf("expected offset (1, 0), got (%v, %v)", cx, cz)
	}
	if vertices[0].Position != (math.Vec3{X: -1}) || vertices[2].Position != (math.Vec3{X: -1, Y: 4}) {
		t.Errorf("unexpected centered positions %v %v", vertices[0].Position, vertices[2].Position)
	}
}

func TestSmoothNormals(t *testing.T) {
	vertices := []vertex{
		{Position: math.Vec3{X: 1}, Normal: math.Vec3{X: 1}},
		{Position: math.Vec3{X: 1}, Normal: math.Vec3{Y: 1}},
		{Position: math.Vec3{X: 5}, Normal: math.Vec3{Z: 1}},
	}
	attrs := []meshdata.AttributeData{
		must(t)(meshdata.NewTypedAttributeStrided(meshdata.AttributePosition,
			strided.MustCast[math.Vec3](strided.FieldOf[vertex, math.Vec3](vertices, 0)))),
		must(t)(meshdata.NewTypedAttributeStrided(meshdata.AttributeNormal,
			strided.MustCast[math.Vec3](strided.FieldOf[vertex, math.Vec3](vertices, 12)))),
	}
	md := meshdata.Must(meshdata.NewBorrowedNonIndexed(mesh.PrimitivePoints, meshdata.DataFlagMutable,
		strided.Of(vertices).Data(), attrs))

	if err := SmoothNormals(md); err != nil {
		t.Fatalf("failed to smooth: %v", err)
	}

	const s = 0.70710677
	if !near(vertices[0].Normal, math.Vec3{X: s, Y: s}) || vertices[0].Normal != vertices[1].Normal {
		t.Errorf("expected shared averaged normal, got %v and %v", vertices[0].Normal, vertices[1].Normal)
	}
	if vertices[2].Normal != (math.Vec3{Z: 1}) {
		t.Errorf("expected lone vertex untouched, got %v", vertices[2].Normal)
	}
}

func TestFaceNormals(t *testing.T) {
	md, vertices := newTriangle(t, meshdata.DataFlagMutable)
	for i := range vertices {
		vertices[i].Normal = math.Vec3{}
	}

	if err := FaceNormals(md); err != nil {
		t.Fatalf("failed to compute normals: %v", err)
	}
	for i, v := range vertices {
		if !near(v.Normal, math.Vec3{Z: 1}) {
			t.Errorf("vertex %d: expected (0, 0, 1), got %v", i, v.Normal)
		}
	}

	points := meshdata.Must(meshdata.NewVertexCountOnly(mesh.PrimitivePoints, 1))
	if err := FaceNormals(points); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat for points, got %v", err)
	}
}
