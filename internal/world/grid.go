package world

const (
	// ChunkSize is the interior edge length of a chunk in blocks.
	ChunkSize = 16

	// PaddedSize adds a one-cell halo on both sides of every axis.
	PaddedSize   = ChunkSize + 2
	PaddedVolume = PaddedSize * PaddedSize * PaddedSize
)

// Grid is a padded 18³ block array. Interior cell (x,y,z) lives at padded
// (x+1,y+1,z+1); the outer shell mirrors neighbouring chunks.
type Grid [PaddedVolume]BlockType

// PaddedIndex converts padded coordinates to a flat index with x fastest.
func PaddedIndex(x, y, z int) int {
	return x + PaddedSize*y + PaddedSize*PaddedSize*z
}

func inPadded(x, y, z int) bool {
	return x >= 0 && x < PaddedSize && y >= 0 && y < PaddedSize && z >= 0 && z < PaddedSize
}

func inInterior(x, y, z int) bool {
	return x >= 0 && x < ChunkSize && y >= 0 && y < ChunkSize && z >= 0 && z < ChunkSize
}

// At returns the block at padded coordinates; out of range reads as Air.
func (g *Grid) At(x, y, z int) BlockType {
	if !inPadded(x, y, z) {
		return BlockTypeAir
	}
	return g[PaddedIndex(x, y, z)]
}

// Set writes the block at padded coordinates.
func (g *Grid) Set(x, y, z int, b BlockType) {
	if !inPadded(x, y, z) {
		return
	}
	g[PaddedIndex(x, y, z)] = b
}

// Interior returns the block at interior coordinates in [0,ChunkSize).
func (g *Grid) Interior(x, y, z int) BlockType {
	if !inInterior(x, y, z) {
		return BlockTypeAir
	}
	return g[PaddedIndex(x+1, y+1, z+1)]
}

// SetInterior writes the block at interior coordinates.
func (g *Grid) SetInterior(x, y, z int, b BlockType) {
	if !inInterior(x, y, z) {
		return
	}
	g[PaddedIndex(x+1, y+1, z+1)] = b
}

// fillInterior sets every interior cell to b and leaves the halo untouched.
func (g *Grid) fillInterior(b BlockType) {
	for z := 1; z <= ChunkSize; z++ {
		for y := 1; y <= ChunkSize; y++ {
			row := g[PaddedIndex(1, y, z) : PaddedIndex(ChunkSize, y, z)+1]
			for i := range row {
				row[i] = b
			}
		}
	}
}

// interiorEmpty reports whether every interior cell is Air.
func (g *Grid) interiorEmpty() bool {
	for z := 1; z <= ChunkSize; z++ {
		for y := 1; y <= ChunkSize; y++ {
			for x := 1; x <= ChunkSize; x++ {
				if g[PaddedIndex(x, y, z)] != BlockTypeAir {
					return false
				}
			}
		}
	}
	return true
}

// BoundaryLayer is the padded coordinate, along d's axis, of the interior
// layer that faces a neighbour in direction d.
func BoundaryLayer(d Direction) int {
	if d.Sign() > 0 {
		return ChunkSize
	}
	return 1
}

// HaloLayer is the padded coordinate of the halo plane on d's side.
func HaloLayer(d Direction) int {
	if d.Sign() > 0 {
		return PaddedSize - 1
	}
	return 0
}

// planeIndex returns the padded index of cell (a,b) in the plane
// perpendicular to axis at the given layer. a and b walk the two remaining
// axes in ascending axis order.
func planeIndex(axis, layer, a, b int) int {
	switch axis {
	case 0:
		return PaddedIndex(layer, a, b)
	case 1:
		return PaddedIndex(a, layer, b)
	default:
		return PaddedIndex(a, b, layer)
	}
}

// Plane copies the 16×16 interior span of the plane perpendicular to axis at
// a padded layer. Row-major in the two remaining axes.
func (g *Grid) Plane(axis, layer int) []BlockType {
	out := make([]BlockType, 0, ChunkSize*ChunkSize)
	for a := 1; a <= ChunkSize; a++ {
		for b := 1; b <= ChunkSize; b++ {
			out = append(out, g[planeIndex(axis, layer, a, b)])
		}
	}
	return out
}

// copyPlane copies src's plane at srcLayer into dst's plane at dstLayer and
// reports whether any dst cell changed.
func copyPlane(dst *Grid, dstLayer int, src *Grid, srcLayer int, axis int) bool {
	changed := false
	for a := 1; a <= ChunkSize; a++ {
		for b := 1; b <= ChunkSize; b++ {
			di := planeIndex(axis, dstLayer, a, b)
			v := src[planeIndex(axis, srcLayer, a, b)]
			if dst[di] != v {
				dst[di] = v
				changed = true
			}
		}
	}
	return changed
}

