package world

import "fmt"

// LatticePos is a chunk position in the chunk lattice, not a block position.
type LatticePos struct {
	X, Y, Z int
}

func (p LatticePos) Add(o LatticePos) LatticePos {
	return LatticePos{X: p.X + o.X, Y: p.Y + o.Y, Z: p.Z + o.Z}
}

// Neighbor returns the lattice position adjacent to p in direction d.
func (p LatticePos) Neighbor(d Direction) LatticePos {
	return p.Add(d.Offset())
}

// WorldOrigin returns the world block coordinate of the chunk's first interior cell.
func (p LatticePos) WorldOrigin() (int, int, int) {
	return p.X * ChunkSize, p.Y * ChunkSize, p.Z * ChunkSize
}

func (p LatticePos) String() string {
	return fmt.Sprintf("(%d,%d,%d)", p.X, p.Y, p.Z)
}

// Extent is the size of the lattice in chunks along each axis.
type Extent struct {
	X, Y, Z int
}

// Volume returns the number of lattice cells.
func (e Extent) Volume() int {
	return e.X * e.Y * e.Z
}

func (e Extent) shape() [3]uint32 {
	return [3]uint32{uint32(e.X), uint32(e.Y), uint32(e.Z)}
}

// Linearize maps p to a flat index with x varying fastest.
func Linearize(p, e [3]uint32) int {
	return int(p[0]) + int(e[0])*int(p[1]) + int(e[0])*int(e[1])*int(p[2])
}

// Delinearize is the inverse of Linearize for indexes inside e.
func Delinearize(i int, e [3]uint32) [3]uint32 {
	plane := int(e[0]) * int(e[1])
	z := i / plane
	rem := i - z*plane
	y := rem / int(e[0])
	x := rem - y*int(e[0])
	return [3]uint32{uint32(x), uint32(y), uint32(z)}
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// mod returns a non-negative remainder.
func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// ChunkOf returns the lattice position holding world block (x,y,z) and the
// block's interior coordinate inside that chunk.
func ChunkOf(x, y, z int) (LatticePos, [3]int) {
	pos := LatticePos{
		X: floorDiv(x, ChunkSize),
		Y: floorDiv(y, ChunkSize),
		Z: floorDiv(z, ChunkSize),
	}
	local := [3]int{mod(x, ChunkSize), mod(y, ChunkSize), mod(z, ChunkSize)}
	return pos, local
}
