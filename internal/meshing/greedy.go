package meshing

import (
	"voxel-client/internal/world"
)

const (
	// FloatsPerVertex is pos.xyz + normal.xyz + uv.
	FloatsPerVertex = 8
	// VerticesPerQuad counts the two triangles a quad expands to.
	VerticesPerQuad = 6
	FloatsPerQuad   = FloatsPerVertex * VerticesPerQuad
)

const n = world.ChunkSize

// Quad is one merged rectangle of exposed faces. Coordinates are padded grid
// coordinates of the solid cells it covers: Layer along the face normal,
// U and V where the rectangle starts on the two in-plane axes, H cells along
// U and W cells along V.
type Quad struct {
	Dir   world.Direction
	Block world.BlockType
	Layer int
	U, V  int
	H, W  int
}

// Buffer is the quad list for one grid, in emission order.
type Buffer struct {
	Quads []Quad
}

// Len returns the number of quads.
func (b *Buffer) Len() int {
	return len(b.Quads)
}

// Greedy is the stateless greedy mesher. It is safe for concurrent use.
type Greedy struct{}

// MeshGrid implements world.Mesher.
func (Greedy) MeshGrid(g *world.Grid) []float32 {
	return Mesh(g).Flatten()
}

// QuadCount returns how many quads a flat buffer holds.
func QuadCount(vertices []float32) int {
	return len(vertices) / FloatsPerQuad
}

// frame returns the normal axis and the two in-plane axes of d, in
// ascending axis order.
func frame(d world.Direction) (nAxis, uAxis, vAxis int) {
	switch d.Axis() {
	case 0:
		return 0, 1, 2
	case 1:
		return 1, 0, 2
	default:
		return 2, 0, 1
	}
}

// Mesh runs the greedy pass over every face direction. A face is emitted
// between a solid cell and a non-solid neighbour, halo cells included, and
// only faces of the same block type are merged.
func Mesh(g *world.Grid) *Buffer {
	b := &Buffer{Quads: make([]Quad, 0, 64)}
	var mask [n * n]world.BlockType
	for _, d := range world.Directions {
		b.Quads = buildGreedyForDirection(b.Quads, g, d, &mask)
	}
	return b
}

// buildGreedyForDirection slices the interior into layers along d's axis,
// builds an exposure mask per layer and merges it into rectangles.
func buildGreedyForDirection(quads []Quad, g *world.Grid, d world.Direction, mask *[n * n]world.BlockType) []Quad {
	nAxis, uAxis, vAxis := frame(d)
	step := d.Sign()

	for layer := 1; layer <= n; layer++ {
		for a := range n {
			for c := range n {
				var p [3]int
				p[nAxis] = layer
				p[uAxis] = a + 1
				p[vAxis] = c + 1
				m := world.BlockTypeAir
				if bt := g.At(p[0], p[1], p[2]); bt.IsSolid() {
					p[nAxis] += step
					if !g.At(p[0], p[1], p[2]).IsSolid() {
						m = bt
					}
				}
				mask[a*n+c] = m
			}
		}

		// Greedy merge (width along v first, then height along u)
		for a := range n {
			for c := 0; c < n; {
				bt := mask[a*n+c]
				if bt == world.BlockTypeAir {
					c++
					continue
				}
				width := 1
				for c+width < n && mask[a*n+c+width] == bt {
					width++
				}
				height := 1
			outer:
				for a+height < n {
					for k := c; k < c+width; k++ {
						if mask[(a+height)*n+k] != bt {
							break outer
						}
					}
					height++
				}
				// zero-out mask region
				for i := a; i < a+height; i++ {
					for k := c; k < c+width; k++ {
						mask[i*n+k] = world.BlockTypeAir
					}
				}
				quads = append(quads, Quad{
					Dir:   d,
					Block: bt,
					Layer: layer,
					U:     a + 1,
					V:     c + 1,
					H:     height,
					W:     width,
				})
				c += width
			}
		}
	}
	return quads
}
