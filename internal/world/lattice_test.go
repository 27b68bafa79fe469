package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearizeRoundTrip(t *testing.T) {
	e := [3]uint32{3, 2, 4}
	seen := make(map[int]bool)
	for z := uint32(0); z < e[2]; z++ {
		for y := uint32(0); y < e[1]; y++ {
			for x := uint32(0); x < e[0]; x++ {
				p := [3]uint32{x, y, z}
				i := Linearize(p, e)
				require.False(t, seen[i], "index %d produced twice", i)
				seen[i] = true
				assert.Equal(t, p, Delinearize(i, e))
			}
		}
	}
	assert.Len(t, seen, 24)
}

func TestLinearizeXFastest(t *testing.T) {
	e := [3]uint32{4, 4, 4}
	assert.Equal(t, 1, Linearize([3]uint32{1, 0, 0}, e))
	assert.Equal(t, 4, Linearize([3]uint32{0, 1, 0}, e))
	assert.Equal(t, 16, Linearize([3]uint32{0, 0, 1}, e))
}

func TestFloorDiv(t *testing.T) {
	cases := []struct{ a, b, want int }{
		{0, 16, 0},
		{15, 16, 0},
		{16, 16, 1},
		{-1, 16, -1},
		{-16, 16, -1},
		{-17, 16, -2},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, floorDiv(c.a, c.b), "floorDiv(%d,%d)", c.a, c.b)
	}
	assert.Equal(t, 15, mod(-1, 16))
	assert.Equal(t, 0, mod(-16, 16))
}

func TestChunkOf(t *testing.T) {
	pos, local := ChunkOf(-1, 0, 17)
	assert.Equal(t, LatticePos{X: -1, Y: 0, Z: 1}, pos)
	assert.Equal(t, [3]int{15, 0, 1}, local)

	pos, local = ChunkOf(16, -33, 0)
	assert.Equal(t, LatticePos{X: 1, Y: -3, Z: 0}, pos)
	assert.Equal(t, [3]int{0, 15, 0}, local)
}

func TestDirections(t *testing.T) {
	for _, d := range Directions {
		o := d.Opposite()
		assert.Equal(t, d.Axis(), o.Axis(), d.String())
		assert.Equal(t, -d.Sign(), o.Sign(), d.String())
		assert.Equal(t, d, o.Opposite())

		p := LatticePos{X: 2, Y: -1, Z: 5}
		assert.Equal(t, p, p.Neighbor(d).Neighbor(o))
	}
	assert.Panics(t, func() { Direction(6).Axis() })
}

func TestBoundaryAndHaloLayers(t *testing.T) {
	assert.Equal(t, ChunkSize, BoundaryLayer(DirPosY))
	assert.Equal(t, 1, BoundaryLayer(DirNegY))
	assert.Equal(t, PaddedSize-1, HaloLayer(DirPosZ))
	assert.Equal(t, 0, HaloLayer(DirNegZ))
}
