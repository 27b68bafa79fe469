package renderer

import (
	"voxel-client/internal/graphics"
	"voxel-client/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// RenderContext provides shared context for all renderables
type RenderContext struct {
	Camera *graphics.Camera
	World  *world.World
	DT     float64
	View   mgl32.Mat4
	Proj   mgl32.Mat4

	// Highlight is the targeted block, nil when nothing is in reach.
	Highlight *[3]int
}

// Renderable interface defines the lifecycle for renderable features
type Renderable interface {
	Init() error
	Render(ctx RenderContext)
	Dispose()
	SetViewport(width, height int)
}
