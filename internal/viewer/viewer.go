package viewer

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-mesh/internal/glmesh"
	"github.com/Faultbox/midgard-mesh/internal/logger"
	"github.com/Faultbox/midgard-mesh/internal/meshtools"
	"github.com/Faultbox/midgard-mesh/pkg/mesh"
	"github.com/Faultbox/midgard-mesh/pkg/meshdata"
)

var ErrNothingToDraw = errors.New("mesh has no positions to draw")

// Viewer owns the window, the GPU copy of one mesh and the camera.
type Viewer struct {
	window  *Window
	program uint32
	mesh    *glmesh.Mesh
	camera  *OrbitCamera
	bounds  meshtools.Bounds

	hasNormals bool
	hasColors  bool
	wireframe  bool

	locViewProj   int32
	locHasNormals int32
	locHasColors  int32
	locLightDir   int32
}

// New opens a window and uploads md. The mesh has to carry positions.
func New(cfg WindowConfig, md *meshdata.MeshData) (*Viewer, error) {
	bounds, err := meshtools.ComputeBounds(md)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNothingToDraw, err)
	}

	w, err := NewWindow(cfg)
	if err != nil {
		return nil, err
	}
	if err := gl.Init(); err != nil {
		w.Close()
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}
	logger.Info("OpenGL initialized", zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))))

	v := &Viewer{
		window:     w,
		camera:     NewOrbitCamera(),
		bounds:     bounds,
		hasNormals: md.HasAttribute(meshdata.AttributeNormal),
		hasColors:  md.HasAttribute(meshdata.AttributeColor),
	}

	if v.program, err = compileProgram(vertexShader, fragmentShader); err != nil {
		w.Close()
		return nil, err
	}
	v.locViewProj = uniform(v.program, "uViewProj")
	v.locHasNormals = uniform(v.program, "uHasNormals")
	v.locHasColors = uniform(v.program, "uHasColors")
	v.locLightDir = uniform(v.program, "uLightDir")

	if v.mesh, err = glmesh.Upload(md, glmesh.DefaultBindings); err != nil {
		gl.DeleteProgram(v.program)
		w.Close()
		return nil, err
	}

	v.camera.FitBounds(bounds)
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	return v, nil
}

// Close releases GPU resources and the window.
func (v *Viewer) Close() {
	v.mesh.Destroy()
	gl.DeleteProgram(v.program)
	v.window.Close()
}

// Run draws frames until the window is closed or Escape is pressed.
//
// Left drag orbits, the wheel zooms, F refits the camera and W toggles
// wireframe for triangle meshes.
func (v *Viewer) Run() {
	dragging := false
	running := true
	for running {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				running = false

			case *sdl.MouseButtonEvent:
				if e.Button == sdl.BUTTON_LEFT {
					dragging = e.State == sdl.PRESSED
				}

			case *sdl.MouseMotionEvent:
				if dragging {
					v.camera.HandleDrag(float32(e.XRel), float32(e.YRel))
				}

			case *sdl.MouseWheelEvent:
				v.camera.HandleZoom(float32(e.Y))

			case *sdl.KeyboardEvent:
				if e.Type != sdl.KEYDOWN {
					continue
				}
				switch e.Keysym.Sym {
				case sdl.K_ESCAPE:
					running = false
				case sdl.K_f:
					v.camera.FitBounds(v.bounds)
				case sdl.K_w:
					v.wireframe = !v.wireframe
				}
			}
		}
		v.render()
		v.window.SwapBuffers()
	}
	logger.Info("viewer closed")
}

func (v *Viewer) render() {
	width, height := v.window.DrawableSize()
	gl.Viewport(0, 0, width, height)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	aspect := float32(1)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}
	viewProj := v.camera.ProjectionMatrix(aspect).Mul4(v.camera.ViewMatrix())
	light := mgl32.Vec3{-0.4, -1, -0.3}.Normalize()

	gl.UseProgram(v.program)
	gl.UniformMatrix4fv(v.locViewProj, 1, false, &viewProj[0])
	gl.Uniform1i(v.locHasNormals, boolUniform(v.hasNormals))
	gl.Uniform1i(v.locHasColors, boolUniform(v.hasColors))
	gl.Uniform3f(v.locLightDir, light[0], light[1], light[2])

	mode := uint32(gl.FILL)
	if v.wireframe && isTriangles(v.mesh) {
		mode = gl.LINE
	}
	gl.PolygonMode(gl.FRONT_AND_BACK, mode)
	v.mesh.Draw()
}

func isTriangles(m *glmesh.Mesh) bool {
	for _, p := range []mesh.Primitive{mesh.PrimitiveTriangles, mesh.PrimitiveTriangleStrip, mesh.PrimitiveTriangleFan} {
		if mode, err := glmesh.Primitive(p); err == nil && mode == m.Mode {
			return true
		}
	}
	return false
}

func boolUniform(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
