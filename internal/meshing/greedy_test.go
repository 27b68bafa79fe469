package meshing

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"voxel-client/internal/world"
)

func gridWith(cells map[[3]int]world.BlockType) *world.Grid {
	g := &world.Grid{}
	for p, b := range cells {
		g.SetInterior(p[0], p[1], p[2], b)
	}
	return g
}

func solidGrid(b world.BlockType) *world.Grid {
	g := &world.Grid{}
	for z := range world.ChunkSize {
		for y := range world.ChunkSize {
			for x := range world.ChunkSize {
				g.SetInterior(x, y, z, b)
			}
		}
	}
	return g
}

func TestSingleBlockMesh(t *testing.T) {
	g := gridWith(map[[3]int]world.BlockType{{0, 0, 0}: world.BlockTypeGrass})
	verts := Mesh(g).Flatten()
	expectedFloats := 6 * FloatsPerQuad
	if len(verts) != expectedFloats {
		t.Fatalf("single block: got %d floats, want %d", len(verts), expectedFloats)
	}
}

func TestTwoBlocksSeparated(t *testing.T) {
	g := gridWith(map[[3]int]world.BlockType{
		{0, 0, 0}: world.BlockTypeGrass,
		{2, 0, 0}: world.BlockTypeGrass,
	})
	if got := Mesh(g).Len(); got != 12 {
		t.Fatalf("two separated blocks: got %d quads, want 12", got)
	}
}

func TestTwoBlocksTouchingGreedy(t *testing.T) {
	g := gridWith(map[[3]int]world.BlockType{
		{0, 0, 0}: world.BlockTypeGrass,
		{1, 0, 0}: world.BlockTypeGrass,
	})
	// Union is a 2x1x1 cuboid
	if got := Mesh(g).Len(); got != 6 {
		t.Fatalf("two touching blocks (greedy merge): got %d quads, want 6", got)
	}
}

func TestDifferentTypesNotMerged(t *testing.T) {
	g := gridWith(map[[3]int]world.BlockType{
		{0, 0, 0}: world.BlockTypeGrass,
		{1, 0, 0}: world.BlockTypeDirt,
	})
	b := Mesh(g)
	// ±Y and ±Z split by type, ±X one each
	if got := b.Len(); got != 10 {
		t.Fatalf("mixed pair: got %d quads, want 10", got)
	}
	counts := b.CountByDirection()
	if counts[world.DirPosX] != 1 || counts[world.DirPosY] != 2 {
		t.Fatalf("unexpected per-direction counts %v", counts)
	}
}

func TestHaloCullsBoundaryFace(t *testing.T) {
	g := gridWith(map[[3]int]world.BlockType{{15, 0, 0}: world.BlockTypeGrass})
	// Neighbour block mirrored into the +X halo
	g.Set(17, 1, 1, world.BlockTypeStone)
	b := Mesh(g)
	if got := b.Len(); got != 5 {
		t.Fatalf("halo culling: got %d quads, want 5", got)
	}
	if b.CountByDirection()[world.DirPosX] != 0 {
		t.Fatal("+X face should be hidden by halo")
	}
}

func TestHaloNeverEmits(t *testing.T) {
	g := &world.Grid{}
	g.Set(0, 5, 5, world.BlockTypeStone)
	g.Set(17, 17, 17, world.BlockTypeStone)
	if got := Mesh(g).Len(); got != 0 {
		t.Fatalf("halo-only grid: got %d quads, want 0", got)
	}
}

func TestFullChunkIsolated(t *testing.T) {
	b := Mesh(solidGrid(world.BlockTypeStone))
	if got := b.Len(); got != 6 {
		t.Fatalf("full chunk: got %d quads, want 6", got)
	}
	for _, q := range b.Quads {
		if q.W != world.ChunkSize || q.H != world.ChunkSize {
			t.Fatalf("full chunk quad %+v not %dx%d", q, world.ChunkSize, world.ChunkSize)
		}
	}
}

func TestFullChunkSurrounded(t *testing.T) {
	g := solidGrid(world.BlockTypeStone)
	for z := range world.PaddedSize {
		for y := range world.PaddedSize {
			for x := range world.PaddedSize {
				g.Set(x, y, z, world.BlockTypeStone)
			}
		}
	}
	if verts := (Greedy{}).MeshGrid(g); verts != nil {
		t.Fatalf("buried chunk: got %d floats, want none", len(verts))
	}
}

func TestEmptyGrid(t *testing.T) {
	if verts := Mesh(&world.Grid{}).Flatten(); verts != nil {
		t.Fatalf("empty grid: got %d floats, want nil", len(verts))
	}
}

func TestDeterministic(t *testing.T) {
	g := gridWith(map[[3]int]world.BlockType{
		{3, 4, 5}:   world.BlockTypeStone,
		{3, 5, 5}:   world.BlockTypeGrass,
		{10, 0, 15}: world.BlockTypeDirt,
	})
	a := Mesh(g).Flatten()
	b := Mesh(g).Flatten()
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("float %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestWindingMatchesNormal(t *testing.T) {
	g := gridWith(map[[3]int]world.BlockType{
		{0, 0, 0}: world.BlockTypeGrass,
		{1, 0, 0}: world.BlockTypeGrass,
		{7, 9, 2}: world.BlockTypeStone,
	})
	verts := Mesh(g).Flatten()
	stride := FloatsPerVertex
	for tri := 0; tri < len(verts)/(3*stride); tri++ {
		at := func(k int) mgl32.Vec3 {
			o := (tri*3 + k) * stride
			return mgl32.Vec3{verts[o], verts[o+1], verts[o+2]}
		}
		o := tri * 3 * stride
		normal := mgl32.Vec3{verts[o+3], verts[o+4], verts[o+5]}
		face := at(1).Sub(at(0)).Cross(at(2).Sub(at(0)))
		if face.Dot(normal) <= 0 {
			t.Fatalf("triangle %d winds against normal %v (face %v)", tri, normal, face)
		}
	}
}

func TestVerticesStayInPaddedCell(t *testing.T) {
	verts := Mesh(solidGrid(world.BlockTypeDirt)).Flatten()
	for i := 0; i < len(verts); i += FloatsPerVertex {
		for k := range 3 {
			if v := verts[i+k]; v < 1 || v > world.ChunkSize+1 {
				t.Fatalf("vertex %d coordinate %v outside [1,%d]", i/FloatsPerVertex, v, world.ChunkSize+1)
			}
		}
	}
}

func TestQuadCount(t *testing.T) {
	g := gridWith(map[[3]int]world.BlockType{{4, 4, 4}: world.BlockTypeStone})
	if got := QuadCount(Mesh(g).Flatten()); got != 6 {
		t.Fatalf("QuadCount = %d, want 6", got)
	}
}

func BenchmarkMesh_FullSurface(b *testing.B) {
	g := &world.Grid{}
	// Fill a full top surface
	for x := range world.ChunkSize {
		for z := range world.ChunkSize {
			g.SetInterior(x, world.ChunkSize-1, z, world.BlockTypeGrass)
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Mesh(g).Flatten()
	}
}

func BenchmarkMesh_Terrain(b *testing.B) {
	field, err := world.NewHeightField(world.DefaultNoiseSettings())
	if err != nil {
		b.Fatal(err)
	}
	ch := world.GenerateChunk(world.LatticePos{}, field)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Greedy{}.MeshGrid(ch.Grid())
	}
}
