package world

// SoilDepth is the number of dirt cells under a grass surface.
const SoilDepth = 3

// Fill classifies how generation populated a chunk.
type Fill uint8

const (
	FillEmpty Fill = iota
	FillSolid
	FillMixed
)

func (f Fill) String() string {
	switch f {
	case FillEmpty:
		return "empty"
	case FillSolid:
		return "solid"
	default:
		return "mixed"
	}
}

// Chunk is one padded 16³ cube of the lattice.
type Chunk struct {
	Pos  LatticePos
	grid Grid
	fill Fill

	empty   bool
	visible bool

	vertices []float32
	meshed   bool
	revision uint64
	dirty    bool
	pending  bool
	edits    uint64

	stitched [len(Directions)]bool
}

// NewChunk returns an all-Air chunk at pos. It is empty and needs a mesh.
func NewChunk(pos LatticePos) *Chunk {
	return &Chunk{Pos: pos, empty: true, fill: FillEmpty, dirty: true}
}

// GenerateChunk samples field once per column and populates the interior.
// Halo cells are left as Air for the stitching pass.
func GenerateChunk(pos LatticePos, field HeightField) *Chunk {
	c := NewChunk(pos)
	baseX, bandMin, baseZ := pos.WorldOrigin()
	bandTop := bandMin + ChunkSize

	var heights [ChunkSize][ChunkSize]int
	allBelow, allBuried := true, true
	for x := range ChunkSize {
		for z := range ChunkSize {
			h := field.HeightAt(baseX+x, baseZ+z)
			heights[x][z] = h
			if h > bandMin {
				allBelow = false
			}
			if h < bandTop+SoilDepth {
				allBuried = false
			}
		}
	}

	switch {
	case allBelow:
		c.fill = FillEmpty
		c.empty = true
		return c
	case allBuried:
		c.grid.fillInterior(BlockTypeStone)
		c.fill = FillSolid
		c.empty = false
		return c
	}

	solid := 0
	for x := range ChunkSize {
		for z := range ChunkSize {
			h := heights[x][z]
			for y := range ChunkSize {
				wy := bandMin + y
				if wy >= h {
					break
				}
				c.grid.SetInterior(x, y, z, surfaceBlock(h-1-wy))
				solid++
			}
		}
	}
	c.empty = solid == 0
	switch solid {
	case 0:
		c.fill = FillEmpty
	case ChunkSize * ChunkSize * ChunkSize:
		c.fill = FillSolid
	default:
		c.fill = FillMixed
	}
	return c
}

// surfaceBlock picks the block for a solid cell depth cells under the surface.
func surfaceBlock(depth int) BlockType {
	switch {
	case depth == 0:
		return BlockTypeGrass
	case depth <= SoilDepth:
		return BlockTypeDirt
	default:
		return BlockTypeStone
	}
}

// Grid exposes the padded block grid for meshing and inspection.
func (c *Chunk) Grid() *Grid {
	return &c.grid
}

// Block returns the block at interior coordinates.
func (c *Chunk) Block(x, y, z int) BlockType {
	return c.grid.Interior(x, y, z)
}

// setBlock writes an interior cell and reports whether it changed.
func (c *Chunk) setBlock(x, y, z int, b BlockType) bool {
	if !inInterior(x, y, z) || c.grid.Interior(x, y, z) == b {
		return false
	}
	c.grid.SetInterior(x, y, z, b)
	if b.IsSolid() {
		c.empty = false
	} else if !c.empty {
		c.empty = c.grid.interiorEmpty()
	}
	c.fill = FillMixed
	c.markDirty()
	return true
}

// markDirty records a block or halo change that invalidates the mesh.
func (c *Chunk) markDirty() {
	c.dirty = true
	c.edits++
}

// Fill returns how generation populated the chunk.
func (c *Chunk) Fill() Fill {
	return c.fill
}

// Empty reports whether every interior cell is Air.
func (c *Chunk) Empty() bool {
	return c.empty
}

// Visible reports whether the last mesh produced at least one quad.
func (c *Chunk) Visible() bool {
	return c.visible
}

// Meshed reports whether a mesh was generated since the chunk became dirty.
func (c *Chunk) Meshed() bool {
	return c.meshed
}

// Dirty reports whether block or halo data changed since the last mesh.
func (c *Chunk) Dirty() bool {
	return c.dirty
}

// Vertices returns the flat mesh buffer; nil when the chunk is not visible.
func (c *Chunk) Vertices() []float32 {
	return c.vertices
}

// Revision increases every time a new mesh is stored.
func (c *Chunk) Revision() uint64 {
	return c.revision
}

// setMesh stores a mesh buffer and clears the dirty flag.
func (c *Chunk) setMesh(vertices []float32) {
	if len(vertices) == 0 {
		vertices = nil
	}
	c.vertices = vertices
	c.visible = len(vertices) > 0
	c.meshed = true
	c.dirty = false
	c.pending = false
	c.revision++
}
