package renderer

import (
	"voxel-client/internal/graphics"
	"voxel-client/internal/profiling"
	"voxel-client/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// SkyColor is the clear colour; the chunk shader fogs towards it.
var SkyColor = mgl32.Vec3{0.53, 0.81, 0.92}

// Renderer orchestrates rendering via renderable features
type Renderer struct {
	renderables []Renderable
	camera      *graphics.Camera
}

// NewRenderer configures GL state and initializes every renderable in order.
func NewRenderer(width, height int, rs ...Renderable) (*Renderer, error) {
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	r := &Renderer{
		renderables: rs,
		camera:      graphics.NewCamera(width, height),
	}

	for i, rd := range rs {
		if err := rd.Init(); err != nil {
			// Release what was already initialized.
			for j := i - 1; j >= 0; j-- {
				rs[j].Dispose()
			}
			return nil, err
		}
	}
	r.UpdateViewport(width, height)
	return r, nil
}

// Render clears the frame and draws every renderable with the given view.
func (r *Renderer) Render(w *world.World, view mgl32.Mat4, highlight *[3]int, dt float64) {
	defer profiling.Track("renderer.Render")()

	gl.ClearColor(SkyColor.X(), SkyColor.Y(), SkyColor.Z(), 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	ctx := RenderContext{
		Camera:    r.camera,
		World:     w,
		DT:        dt,
		View:      view,
		Proj:      r.camera.ProjectionMatrix(),
		Highlight: highlight,
	}
	for _, renderable := range r.renderables {
		renderable.Render(ctx)
	}
}

// Dispose cleans up all renderables in reverse order
func (r *Renderer) Dispose() {
	for i := len(r.renderables) - 1; i >= 0; i-- {
		r.renderables[i].Dispose()
	}
}

// Camera returns the camera instance
func (r *Renderer) Camera() *graphics.Camera {
	return r.camera
}

// UpdateViewport resizes the GL viewport, the camera and every renderable.
func (r *Renderer) UpdateViewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	r.camera.SetViewport(width, height)
	for _, rd := range r.renderables {
		rd.SetViewport(width, height)
	}
}
