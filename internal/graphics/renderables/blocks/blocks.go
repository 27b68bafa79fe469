package blocks

import (
	_ "embed"
	"image"

	"voxel-client/internal/graphics"
	renderer "voxel-client/internal/graphics/renderer"
	"voxel-client/internal/meshing"
	"voxel-client/internal/profiling"
	"voxel-client/internal/render"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	//go:embed chunk.vert
	MainVertShader string
	//go:embed chunk.frag
	MainFragShader string
)

const (
	stride     = meshing.FloatsPerVertex * 4
	fogDensity = 0.006
)

type chunkMesh struct {
	vao         uint32
	vbo         uint32
	vertexCount int32
}

// Stats describes the last rendered frame.
type Stats struct {
	Drawn   int
	Culled  int
	Evicted int
}

// Blocks draws chunk meshes. It implements render.FrameBackend: every
// submitted chunk gets its own VAO, rebuilt only when the chunk's mesh
// revision changes, and chunks that were not submitted in a frame have
// their buffers released.
type Blocks struct {
	mainShader *graphics.Shader
	img        *image.RGBA
	texture    uint32
	meshes     *render.MeshCache[*chunkMesh]

	// Wireframe draws polygons as lines.
	Wireframe bool
	// Cull enables frustum culling.
	Cull bool

	stats Stats
}

// NewBlocks creates a blocks renderable that samples img for every face.
func NewBlocks(img *image.RGBA) *Blocks {
	return &Blocks{
		img:    img,
		meshes: render.NewMeshCache[*chunkMesh](),
		Cull:   true,
	}
}

// Init initializes the blocks rendering system
func (b *Blocks) Init() error {
	var err error
	b.mainShader, err = graphics.NewShader(MainVertShader, MainFragShader)
	if err != nil {
		return err
	}
	b.texture = graphics.UploadTexture(b.img)

	b.mainShader.Use()
	b.mainShader.SetInt("tex", 0)
	light := mgl32.Vec3{0.3, 1.0, 0.3}.Normalize()
	b.mainShader.SetVector3("lightDir", light.X(), light.Y(), light.Z())
	sky := renderer.SkyColor
	b.mainShader.SetVector3("fogColor", sky.X(), sky.Y(), sky.Z())
	b.mainShader.SetFloat("fogDensity", fogDensity)
	return nil
}

// Render draws every visible chunk of ctx.World.
func (b *Blocks) Render(ctx renderer.RenderContext) {
	defer profiling.Track("renderer.renderBlocks")()

	if b.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		defer gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	b.mainShader.Use()
	b.mainShader.SetMatrix4("proj", &ctx.Proj[0])
	b.mainShader.SetMatrix4("view", &ctx.View[0])
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, b.texture)

	var frustum *render.Frustum
	if b.Cull {
		frustum = render.NewFrustum(ctx.Proj.Mul4(ctx.View))
	}
	b.stats.Drawn, b.stats.Culled = render.FrameCulled(ctx.World, b.texture, b, frustum)
	gl.BindVertexArray(0)
}

// Stats returns the counts of the last frame.
func (b *Blocks) Stats() Stats {
	return b.stats
}

// BeginFrame implements render.FrameBackend.
func (b *Blocks) BeginFrame() {
	b.meshes.Begin()
}

// EndFrame implements render.FrameBackend.
func (b *Blocks) EndFrame() {
	b.stats.Evicted = b.meshes.Sweep(deleteMesh)
}

// Submit implements render.Backend.
func (b *Blocks) Submit(d render.Draw) {
	m, current := b.meshes.Get(d.Pos, d.Revision)
	if !current {
		m = b.upload(m, d.Vertices)
		b.meshes.Put(d.Pos, d.Revision, m)
	}
	if m.vertexCount == 0 {
		return
	}
	b.mainShader.SetMatrix4("model", &d.Model[0])
	gl.BindVertexArray(m.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, m.vertexCount)
}

// upload writes vertices into m, allocating GL objects on first use.
func (b *Blocks) upload(m *chunkMesh, vertices []float32) *chunkMesh {
	defer profiling.Track("renderer.renderBlocks.upload")()
	if m == nil {
		m = &chunkMesh{}
		gl.GenVertexArrays(1, &m.vao)
		gl.GenBuffers(1, &m.vbo)
		gl.BindVertexArray(m.vao)
		gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
		// pos
		gl.EnableVertexAttribArray(0)
		gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
		// normal
		gl.EnableVertexAttribArray(1)
		gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
		// uv
		gl.EnableVertexAttribArray(2)
		gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 6*4)
	} else {
		gl.BindVertexArray(m.vao)
		gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	}

	m.vertexCount = int32(len(vertices) / meshing.FloatsPerVertex)
	if len(vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
	}
	return m
}

func deleteMesh(m *chunkMesh) {
	if m == nil {
		return
	}
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
	}
}

// SetViewport is a no-op; chunk rendering only depends on the projection.
func (b *Blocks) SetViewport(width, height int) {}

// Dispose cleans up OpenGL resources
func (b *Blocks) Dispose() {
	b.meshes.Clear(deleteMesh)
	graphics.DeleteTexture(b.texture)
	b.texture = 0
	if b.mainShader != nil {
		b.mainShader.Delete()
	}
}
