package world

import "time"

// StitchBorders copies boundary slices between every pair of lattice
// neighbours, in both directions, and returns the number of pairs visited.
// A missing neighbour leaves that halo plane as Air. Repeating the pass
// changes nothing.
func (w *World) StitchBorders() int {
	start := time.Now()
	for _, c := range w.chunks {
		c.stitched = [len(Directions)]bool{}
	}

	pairs := 0
	for i, c := range w.chunks {
		for _, d := range Directions {
			if c.stitched[d] {
				continue
			}
			if w.StitchPair(i, d) {
				pairs++
			}
		}
	}

	w.obs.BordersStitched(pairs)
	w.obs.StageDone(StageStitch, time.Since(start))
	w.log.Debug("borders stitched", "pairs", pairs, "elapsed", time.Since(start))
	return pairs
}

// StitchPair performs the mutual copy between chunk i and its neighbour in
// direction d. It reports false when no neighbour exists.
func (w *World) StitchPair(i int, d Direction) bool {
	a := w.chunks[i]
	j, ok := w.index[a.Pos.Neighbor(d)]
	if !ok {
		return false
	}
	b := w.chunks[j]
	back := d.Opposite()
	axis := d.Axis()

	// a's halo on the d side mirrors b's boundary facing a, and vice versa.
	if copyPlane(&a.grid, HaloLayer(d), &b.grid, BoundaryLayer(back), axis) {
		a.markDirty()
	}
	if copyPlane(&b.grid, HaloLayer(back), &a.grid, BoundaryLayer(d), axis) {
		b.markDirty()
	}
	a.stitched[d] = true
	b.stitched[back] = true
	return true
}

// propagateEdit mirrors an edited boundary cell of c into the halo of each
// neighbour that borders it.
func (w *World) propagateEdit(c *Chunk, local [3]int, b BlockType) {
	for _, d := range Directions {
		axis := d.Axis()
		edge := 0
		if d.Sign() > 0 {
			edge = ChunkSize - 1
		}
		if local[axis] != edge {
			continue
		}
		j, ok := w.index[c.Pos.Neighbor(d)]
		if !ok {
			continue
		}
		nb := w.chunks[j]
		p := [3]int{local[0] + 1, local[1] + 1, local[2] + 1}
		p[axis] = HaloLayer(d.Opposite())
		if nb.grid.At(p[0], p[1], p[2]) != b {
			nb.grid.Set(p[0], p[1], p[2], b)
			nb.markDirty()
		}
	}
}
