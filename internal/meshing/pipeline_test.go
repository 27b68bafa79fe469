package meshing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxel-client/internal/world"
)

func TestFlatSlabQuads(t *testing.T) {
	w, err := world.Build(world.FlatField(8), Greedy{}, world.Options{Extent: world.Extent{X: 2, Y: 1, Z: 2}})
	require.NoError(t, err)

	for _, c := range w.Chunks() {
		require.True(t, c.Visible(), c.Pos.String())
		// Top and bottom merge fully; the two exposed sides split into
		// stone, dirt and grass bands; the two stitched sides are culled.
		assert.Equal(t, 8, QuadCount(c.Vertices()), c.Pos.String())
	}
}

func TestVisibilityConsistent(t *testing.T) {
	field, err := world.NewHeightField(world.DefaultNoiseSettings())
	require.NoError(t, err)
	w, err := world.Build(field, Greedy{}, world.Options{
		Origin: world.LatticePos{X: -1, Y: 0, Z: -1},
		Extent: world.Extent{X: 3, Y: 3, Z: 3},
	})
	require.NoError(t, err)

	for _, c := range w.Chunks() {
		assert.True(t, c.Meshed())
		assert.Equal(t, c.Visible(), len(c.Vertices()) > 0, c.Pos.String())
		if c.Empty() {
			assert.False(t, c.Visible(), c.Pos.String())
		}
		assert.Zero(t, len(c.Vertices())%FloatsPerQuad)
	}
}

func TestEditRemesh(t *testing.T) {
	w, err := world.Build(world.FlatField(8), Greedy{}, world.Options{Extent: world.Extent{X: 1, Y: 1, Z: 1}})
	require.NoError(t, err)
	c, _ := w.Chunk(world.LatticePos{})
	// Top, bottom and three bands on each of four sides.
	require.Equal(t, 14, QuadCount(c.Vertices()))

	// A single block on the grass adds five faces and splits the top.
	require.True(t, w.SetBlock(8, 8, 8, world.BlockTypeStone))
	assert.Equal(t, 1, w.Remesh(Greedy{}))
	assert.Greater(t, QuadCount(c.Vertices()), 14)
}
