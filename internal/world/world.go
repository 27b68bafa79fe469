package world

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"time"
)

// Pipeline stage names reported to an Observer.
const (
	StageGenerate = "generate"
	StageStitch   = "stitch"
	StageMesh     = "mesh"
)

var (
	ErrInvalidExtent  = errors.New("invalid lattice extent")
	ErrInvalidWorkers = errors.New("invalid worker count")
	ErrNoHeightField  = errors.New("nil height field")
)

// Mesher turns a padded grid into a flat vertex buffer. Implementations must
// be safe for concurrent use when Options.Workers > 1.
type Mesher interface {
	MeshGrid(g *Grid) []float32
}

// Observer receives pipeline events. All methods may be called from worker
// goroutines.
type Observer interface {
	ChunkGenerated(pos LatticePos, fill Fill)
	BordersStitched(pairs int)
	ChunkMeshed(pos LatticePos, vertices int)
	StageDone(stage string, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) ChunkGenerated(LatticePos, Fill) {}
func (nopObserver) BordersStitched(int)             {}
func (nopObserver) ChunkMeshed(LatticePos, int)     {}
func (nopObserver) StageDone(string, time.Duration) {}

// Options configures world construction.
type Options struct {
	Origin LatticePos
	Extent Extent

	// Workers bounds generation and meshing goroutines. 0 means GOMAXPROCS,
	// 1 keeps everything on the calling goroutine.
	Workers int

	Logger   *slog.Logger
	Observer Observer
}

// Validate rejects configurations that cannot produce a world.
func (o Options) Validate() error {
	if o.Extent.X <= 0 || o.Extent.Y <= 0 || o.Extent.Z <= 0 {
		return fmt.Errorf("%w: %dx%dx%d", ErrInvalidExtent, o.Extent.X, o.Extent.Y, o.Extent.Z)
	}
	if o.Workers < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, o.Workers)
	}
	return nil
}

// CenteredOrigin places the lattice around x=0,z=0 with its floor at y=0.
func CenteredOrigin(e Extent) LatticePos {
	return LatticePos{X: -(e.X / 2), Y: 0, Z: -(e.Z / 2)}
}

// World owns every chunk of a fixed cuboid lattice.
type World struct {
	chunks []*Chunk
	index  map[LatticePos]int

	origin  LatticePos
	extent  Extent
	workers int

	log *slog.Logger
	obs Observer
}

// New validates opts and generates every chunk of the lattice from field.
// Halos are not stitched and nothing is meshed yet.
func New(field HeightField, opts Options) (*World, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if field == nil {
		return nil, ErrNoHeightField
	}

	w := &World{
		origin:  opts.Origin,
		extent:  opts.Extent,
		workers: opts.Workers,
		log:     opts.Logger,
		obs:     opts.Observer,
	}
	if w.workers == 0 {
		w.workers = runtime.GOMAXPROCS(0)
	}
	if w.log == nil {
		w.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if w.obs == nil {
		w.obs = nopObserver{}
	}

	start := time.Now()
	n := w.extent.Volume()
	shape := w.extent.shape()
	w.chunks = make([]*Chunk, n)
	w.index = make(map[LatticePos]int, n)
	for i := range n {
		p := Delinearize(i, shape)
		pos := w.origin.Add(LatticePos{X: int(p[0]), Y: int(p[1]), Z: int(p[2])})
		w.index[pos] = i
	}

	w.parallel(n, func(i int) {
		p := Delinearize(i, shape)
		pos := w.origin.Add(LatticePos{X: int(p[0]), Y: int(p[1]), Z: int(p[2])})
		c := GenerateChunk(pos, field)
		w.chunks[i] = c
		w.obs.ChunkGenerated(pos, c.fill)
	})

	w.obs.StageDone(StageGenerate, time.Since(start))
	w.log.Info("world generated",
		"origin", w.origin.String(),
		"extent", fmt.Sprintf("%dx%dx%d", w.extent.X, w.extent.Y, w.extent.Z),
		"chunks", n,
		"elapsed", time.Since(start))
	return w, nil
}

// Build generates, stitches and meshes a complete world.
func Build(field HeightField, m Mesher, opts Options) (*World, error) {
	w, err := New(field, opts)
	if err != nil {
		return nil, err
	}
	w.StitchBorders()
	w.MeshAll(m)
	return w, nil
}

// parallel runs fn for every index in [0,n). Each index is handled exactly
// once; fn must only write state owned by its index.
func (w *World) parallel(n int, fn func(i int)) {
	workers := min(w.workers, n)
	if workers <= 1 {
		for i := range n {
			fn(i)
		}
		return
	}

	var wg sync.WaitGroup
	for k := range workers {
		wg.Add(1)
		go func(k int) {
			defer wg.Done()
			for i := k; i < n; i += workers {
				fn(i)
			}
		}(k)
	}
	wg.Wait()
}

// Chunks returns the chunks in lattice order. The slice must not be modified.
func (w *World) Chunks() []*Chunk {
	return w.chunks
}

// Len returns the number of chunks.
func (w *World) Len() int {
	return len(w.chunks)
}

// Origin returns the lattice position of the first chunk.
func (w *World) Origin() LatticePos {
	return w.origin
}

// Extent returns the lattice dimensions.
func (w *World) Extent() Extent {
	return w.extent
}

// Chunk returns the chunk at a lattice position.
func (w *World) Chunk(pos LatticePos) (*Chunk, bool) {
	i, ok := w.index[pos]
	if !ok {
		return nil, false
	}
	return w.chunks[i], true
}

// IndexOf returns the slice index of the chunk at pos.
func (w *World) IndexOf(pos LatticePos) (int, bool) {
	i, ok := w.index[pos]
	return i, ok
}

// BlockAt returns the block at world coordinates. Positions outside the
// lattice read as Air.
func (w *World) BlockAt(x, y, z int) BlockType {
	pos, local := ChunkOf(x, y, z)
	c, ok := w.Chunk(pos)
	if !ok {
		return BlockTypeAir
	}
	return c.Block(local[0], local[1], local[2])
}

// IsAir checks if the block at world coordinates is air.
func (w *World) IsAir(x, y, z int) bool {
	return w.BlockAt(x, y, z) == BlockTypeAir
}

// SetBlock edits one block and marks every chunk whose mesh it affects as
// dirty. It returns false when no chunk holds the position or nothing changed.
func (w *World) SetBlock(x, y, z int, b BlockType) bool {
	pos, local := ChunkOf(x, y, z)
	c, ok := w.Chunk(pos)
	if !ok {
		return false
	}
	if !c.setBlock(local[0], local[1], local[2], b) {
		return false
	}
	w.propagateEdit(c, local, b)
	return true
}

// MeshAll meshes every chunk and returns the number of visible chunks.
func (w *World) MeshAll(m Mesher) int {
	start := time.Now()
	w.parallel(len(w.chunks), func(i int) {
		w.meshChunk(w.chunks[i], m)
	})

	visible := 0
	for _, c := range w.chunks {
		if c.visible {
			visible++
		}
	}
	w.obs.StageDone(StageMesh, time.Since(start))
	w.log.Info("world meshed", "chunks", len(w.chunks), "visible", visible, "elapsed", time.Since(start))
	return visible
}

// Remesh regenerates the mesh of every dirty chunk and returns how many were
// rebuilt.
func (w *World) Remesh(m Mesher) int {
	var dirty []*Chunk
	for _, c := range w.chunks {
		if c.dirty {
			dirty = append(dirty, c)
		}
	}
	w.parallel(len(dirty), func(i int) {
		w.meshChunk(dirty[i], m)
	})
	return len(dirty)
}

func (w *World) meshChunk(c *Chunk, m Mesher) {
	if c.empty {
		c.setMesh(nil)
	} else {
		c.setMesh(m.MeshGrid(&c.grid))
	}
	w.obs.ChunkMeshed(c.Pos, len(c.vertices))
}
