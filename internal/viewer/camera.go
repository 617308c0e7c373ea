package viewer

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/midgard-mesh/internal/meshtools"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	Center mgl32.Vec3

	// Spherical coordinates
	Distance float32
	Pitch    float32 // radians above the XZ plane
	Yaw      float32 // radians around Y

	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	DragSensitivity float32
	ZoomSensitivity float32

	// FOV is the vertical field of view in radians.
	FOV float32
}

// NewOrbitCamera creates an orbit camera looking at the origin.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        5,
		Pitch:           0.5,
		MinDistance:     0.01,
		MaxDistance:     1e5,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		FOV:             mgl32.DegToRad(45),
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() mgl32.Vec3 {
	pitch, yaw := float64(c.Pitch), float64(c.Yaw)
	offset := mgl32.Vec3{
		c.Distance * float32(gomath.Cos(pitch)*gomath.Sin(yaw)),
		c.Distance * float32(gomath.Sin(pitch)),
		c.Distance * float32(gomath.Cos(pitch)*gomath.Cos(yaw)),
	}
	return c.Center.Add(offset)
}

// ViewMatrix returns the world to camera transform.
func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Center, mgl32.Vec3{0, 1, 0})
}

// ProjectionMatrix returns a perspective projection whose clip planes
// follow the orbit distance.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	near := c.Distance * 0.01
	far := c.Distance * 100
	return mgl32.Perspective(c.FOV, aspect, near, far)
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch = mgl32.Clamp(c.Pitch+deltaY*c.DragSensitivity, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance = mgl32.Clamp(c.Distance-delta*c.Distance*c.ZoomSensitivity, c.MinDistance, c.MaxDistance)
}

// FitBounds centers the camera on b and backs off until the bounding
// sphere fits the vertical field of view. Empty bounds reset to the origin.
func (c *OrbitCamera) FitBounds(b meshtools.Bounds) {
	c.Pitch, c.Yaw = 0.5, 0
	if b.IsEmpty() {
		c.Center = mgl32.Vec3{}
		c.Distance = 5
		return
	}

	center, size := b.Center(), b.Size()
	c.Center = mgl32.Vec3{center.X, center.Y, center.Z}

	radius := mgl32.Vec3{size.X, size.Y, size.Z}.Len() / 2
	if radius == 0 {
		radius = 1
	}
	c.Distance = radius / float32(gomath.Sin(float64(c.FOV)/2))
	c.MinDistance = radius * 0.01
	c.MaxDistance = c.Distance * 100
}
