package world

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingMesher emits one fake quad per solid interior cell.
type countingMesher struct{}

func (countingMesher) MeshGrid(g *Grid) []float32 {
	n := 0
	for z := range ChunkSize {
		for y := range ChunkSize {
			for x := range ChunkSize {
				if g.Interior(x, y, z).IsSolid() {
					n++
				}
			}
		}
	}
	return make([]float32, n*48)
}

type recordingObserver struct {
	mu        sync.Mutex
	generated map[Fill]int
	pairs     int
	meshed    int
	stages    []string
}

func (r *recordingObserver) ChunkGenerated(_ LatticePos, f Fill) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.generated == nil {
		r.generated = make(map[Fill]int)
	}
	r.generated[f]++
}

func (r *recordingObserver) BordersStitched(pairs int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pairs += pairs
}

func (r *recordingObserver) ChunkMeshed(LatticePos, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.meshed++
}

func (r *recordingObserver) StageDone(stage string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stages = append(r.stages, stage)
}

func flatWorld(t *testing.T, h int, e Extent) *World {
	t.Helper()
	w, err := New(FlatField(h), Options{Extent: e, Workers: 2})
	require.NoError(t, err)
	return w
}

// striped gives every column a distinct height so boundary planes differ.
type striped struct{}

func (striped) HeightAt(x, z int) int {
	return mod(x*7+z*3, 40)
}

func TestOptionsValidate(t *testing.T) {
	_, err := New(FlatField(1), Options{Extent: Extent{X: 0, Y: 1, Z: 1}})
	assert.ErrorIs(t, err, ErrInvalidExtent)

	_, err = New(FlatField(1), Options{Extent: Extent{X: 1, Y: 1, Z: 1}, Workers: -1})
	assert.ErrorIs(t, err, ErrInvalidWorkers)

	_, err = New(nil, Options{Extent: Extent{X: 1, Y: 1, Z: 1}})
	assert.ErrorIs(t, err, ErrNoHeightField)
}

func TestNewLatticeOrder(t *testing.T) {
	w, err := New(FlatField(4), Options{
		Origin: LatticePos{X: -1, Y: 0, Z: -2},
		Extent: Extent{X: 2, Y: 3, Z: 4},
	})
	require.NoError(t, err)
	require.Equal(t, 24, w.Len())

	shape := w.Extent().shape()
	for i, c := range w.Chunks() {
		p := Delinearize(i, shape)
		want := w.Origin().Add(LatticePos{X: int(p[0]), Y: int(p[1]), Z: int(p[2])})
		assert.Equal(t, want, c.Pos)
		j, ok := w.IndexOf(c.Pos)
		require.True(t, ok)
		assert.Equal(t, i, j)
	}
}

func TestCenteredOrigin(t *testing.T) {
	assert.Equal(t, LatticePos{X: -2, Y: 0, Z: -1}, CenteredOrigin(Extent{X: 4, Y: 2, Z: 3}))
}

func TestFlatTwoByTwoScenario(t *testing.T) {
	obs := &recordingObserver{}
	w, err := Build(FlatField(8), countingMesher{}, Options{
		Extent:   Extent{X: 2, Y: 1, Z: 2},
		Observer: obs,
	})
	require.NoError(t, err)
	require.Equal(t, 4, w.Len())

	for _, c := range w.Chunks() {
		assert.Equal(t, BlockTypeGrass, c.Block(0, 7, 0))
		assert.Equal(t, BlockTypeAir, c.Block(0, 8, 0))
		assert.True(t, c.Visible())
		assert.False(t, c.Dirty())
	}

	c, ok := w.Chunk(LatticePos{})
	require.True(t, ok)
	g := c.Grid()
	assert.Equal(t, BlockTypeGrass, g.At(17, 8, 5), "+X halo mirrors neighbour")
	assert.Equal(t, BlockTypeGrass, g.At(5, 8, 17), "+Z halo mirrors neighbour")
	assert.Equal(t, BlockTypeAir, g.At(0, 8, 5), "no -X neighbour")
	assert.Equal(t, BlockTypeAir, g.At(5, 0, 5), "no -Y neighbour")

	assert.Equal(t, 4, obs.pairs)
	assert.Equal(t, 4, obs.generated[FillMixed])
	assert.Equal(t, 4, obs.meshed)
	assert.Equal(t, []string{StageGenerate, StageStitch, StageMesh}, obs.stages)
}

func TestStitchSymmetric(t *testing.T) {
	w, err := New(striped{}, Options{Extent: Extent{X: 3, Y: 3, Z: 3}})
	require.NoError(t, err)
	w.StitchBorders()

	for _, c := range w.Chunks() {
		for _, d := range Directions {
			nb, ok := w.Chunk(c.Pos.Neighbor(d))
			axis := d.Axis()
			halo := c.Grid().Plane(axis, HaloLayer(d))
			if !ok {
				assert.Equal(t, make([]BlockType, ChunkSize*ChunkSize), halo, "%v %v", c.Pos, d)
				continue
			}
			assert.Equal(t, nb.Grid().Plane(axis, BoundaryLayer(d.Opposite())), halo, "%v %v", c.Pos, d)
		}
	}
}

func TestStitchIdempotent(t *testing.T) {
	w, err := New(striped{}, Options{Extent: Extent{X: 2, Y: 2, Z: 2}})
	require.NoError(t, err)
	assert.Equal(t, 12, w.StitchBorders())

	before := make([]Grid, w.Len())
	for i, c := range w.Chunks() {
		before[i] = *c.Grid()
	}
	for _, c := range w.Chunks() {
		c.setMesh(nil)
	}

	assert.Equal(t, 12, w.StitchBorders())
	for i, c := range w.Chunks() {
		assert.Equal(t, before[i], *c.Grid())
		assert.False(t, c.Dirty(), "second pass changed %v", c.Pos)
	}
}

func TestSetBlockPropagatesToHalo(t *testing.T) {
	w := flatWorld(t, 8, Extent{X: 2, Y: 1, Z: 1})
	w.StitchBorders()
	w.MeshAll(countingMesher{})

	// World x=15 is the +X boundary of chunk (0,0,0).
	require.True(t, w.SetBlock(15, 10, 4, BlockTypeStone))
	assert.Equal(t, BlockTypeStone, w.BlockAt(15, 10, 4))

	a, _ := w.Chunk(LatticePos{})
	b, _ := w.Chunk(LatticePos{X: 1})
	assert.True(t, a.Dirty())
	assert.True(t, b.Dirty())
	assert.Equal(t, BlockTypeStone, b.Grid().At(0, 11, 5))

	assert.Equal(t, 2, w.Remesh(countingMesher{}))
	assert.False(t, a.Dirty())
	assert.False(t, b.Dirty())

	// Interior cells only dirty their own chunk.
	require.True(t, w.SetBlock(5, 10, 4, BlockTypeStone))
	assert.True(t, a.Dirty())
	assert.False(t, b.Dirty())
}

func TestSetBlockOutsideLattice(t *testing.T) {
	w := flatWorld(t, 8, Extent{X: 1, Y: 1, Z: 1})
	assert.False(t, w.SetBlock(-1, 0, 0, BlockTypeStone))
	assert.Equal(t, BlockTypeAir, w.BlockAt(-1, 0, 0))
	assert.True(t, w.IsAir(0, 40, 0))
}

func TestMeshRequestsLifecycle(t *testing.T) {
	w := flatWorld(t, 8, Extent{X: 1, Y: 2, Z: 1})

	reqs := w.MeshRequests()
	require.Len(t, reqs, 1, "upper chunk is empty and resolved in place")
	upper, _ := w.Chunk(LatticePos{Y: 1})
	assert.True(t, upper.Meshed())
	assert.False(t, upper.Visible())

	assert.Empty(t, w.MeshRequests(), "request already in flight")

	r := reqs[0]
	assert.True(t, w.ApplyMesh(MeshResult{Pos: r.Pos, Edit: r.Edit, Vertices: make([]float32, 48)}))
	lower, _ := w.Chunk(r.Pos)
	assert.True(t, lower.Visible())
	assert.False(t, lower.Dirty())
}

func TestApplyMeshStale(t *testing.T) {
	w := flatWorld(t, 8, Extent{X: 1, Y: 1, Z: 1})
	reqs := w.MeshRequests()
	require.Len(t, reqs, 1)

	require.True(t, w.SetBlock(3, 12, 3, BlockTypeDirt))
	assert.False(t, w.ApplyMesh(MeshResult{Pos: reqs[0].Pos, Edit: reqs[0].Edit}))

	c, _ := w.Chunk(LatticePos{})
	assert.True(t, c.Dirty())
	again := w.MeshRequests()
	require.Len(t, again, 1)
	assert.Greater(t, again[0].Edit, reqs[0].Edit)
	assert.Equal(t, BlockTypeDirt, again[0].Grid.Interior(3, 12, 3))
}

func TestReleaseMesh(t *testing.T) {
	w := flatWorld(t, 8, Extent{X: 1, Y: 1, Z: 1})
	require.Len(t, w.MeshRequests(), 1)
	w.ReleaseMesh(LatticePos{})
	assert.Len(t, w.MeshRequests(), 1)
}

func TestParallelMatchesSerial(t *testing.T) {
	opts := Options{Extent: Extent{X: 3, Y: 2, Z: 3}, Origin: LatticePos{X: -1, Z: -1}}
	opts.Workers = 1
	serial, err := Build(striped{}, countingMesher{}, opts)
	require.NoError(t, err)
	opts.Workers = 4
	par, err := Build(striped{}, countingMesher{}, opts)
	require.NoError(t, err)

	for i := range serial.Chunks() {
		a, b := serial.Chunks()[i], par.Chunks()[i]
		assert.Equal(t, *a.Grid(), *b.Grid())
		assert.Equal(t, a.Vertices(), b.Vertices())
	}
}
