package render

import (
	"voxel-client/internal/profiling"
	"voxel-client/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// Draw is one visible chunk handed to the backend. Vertices use the
// mesher's interleaved pos.xyz, normal.xyz, uv layout in grid-local space;
// Model places them in the world. Revision changes whenever Vertices do.
type Draw struct {
	Pos      world.LatticePos
	Vertices []float32
	Model    mgl32.Mat4
	Texture  uint32
	Revision uint64
}

// Backend consumes draw commands.
type Backend interface {
	Submit(d Draw)
}

// FrameBackend is a Backend that wants to know where a frame starts and
// ends, e.g. to release buffers of chunks that were not drawn.
type FrameBackend interface {
	Backend
	BeginFrame()
	EndFrame()
}

// ChunkTransform maps grid-local mesh coordinates to world space. Padded
// coordinate 1 is the chunk's first interior block, hence the -1.
func ChunkTransform(pos world.LatticePos) mgl32.Mat4 {
	x, y, z := pos.WorldOrigin()
	return mgl32.Translate3D(float32(x-1), float32(y-1), float32(z-1))
}

// Frame submits every visible chunk in lattice order and returns how many
// were submitted.
func Frame(w *world.World, tex uint32, b Backend) int {
	n, _ := FrameCulled(w, tex, b, nil)
	return n
}

// FrameCulled is Frame restricted to chunks inside f. A nil f culls
// nothing. It returns the submitted and culled counts.
func FrameCulled(w *world.World, tex uint32, b Backend, f *Frustum) (drawn, culled int) {
	defer profiling.Track("render.Frame")()
	fb, framed := b.(FrameBackend)
	if framed {
		fb.BeginFrame()
	}
	for _, c := range w.Chunks() {
		if !c.Visible() {
			continue
		}
		if f != nil && !f.ContainsChunk(c.Pos) {
			culled++
			continue
		}
		b.Submit(Draw{
			Pos:      c.Pos,
			Vertices: c.Vertices(),
			Model:    ChunkTransform(c.Pos),
			Texture:  tex,
			Revision: c.Revision(),
		})
		drawn++
	}
	if framed {
		fb.EndFrame()
	}
	return drawn, culled
}
