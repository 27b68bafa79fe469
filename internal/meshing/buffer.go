package meshing

import "voxel-client/internal/world"

type vertex struct {
	pos [3]float32
	uv  [2]float32
}

// Corners returns the four corners of q in grid-local space, counter-clockwise
// when seen from outside, with texture coordinates that repeat once per block.
func (q Quad) Corners() [4]vertex {
	nAxis, uAxis, vAxis := frame(q.Dir)

	var base [3]float32
	base[nAxis] = float32(q.Layer)
	if q.Dir.Sign() > 0 {
		base[nAxis]++
	}
	base[uAxis] = float32(q.U)
	base[vAxis] = float32(q.V)

	h, w := float32(q.H), float32(q.W)
	p1, p2, p3 := base, base, base
	p1[uAxis] += h
	p2[uAxis] += h
	p2[vAxis] += w
	p3[vAxis] += w

	vs := [4]vertex{
		{pos: base, uv: [2]float32{0, 0}},
		{pos: p1, uv: [2]float32{0, h}},
		{pos: p2, uv: [2]float32{w, h}},
		{pos: p3, uv: [2]float32{w, 0}},
	}
	// u×v points along +X and +Z but along -Y, so flip where the normal disagrees.
	if (q.Dir.Sign() < 0) != (nAxis == 1) {
		vs[1], vs[3] = vs[3], vs[1]
	}
	return vs
}

// Normal returns the outward face normal of q.
func (q Quad) Normal() [3]float32 {
	var nv [3]float32
	nv[q.Dir.Axis()] = float32(q.Dir.Sign())
	return nv
}

// Flatten expands every quad into two triangles (0-1-2, 2-3-0) of
// interleaved pos.xyz, normal.xyz, uv floats.
func (b *Buffer) Flatten() []float32 {
	if len(b.Quads) == 0 {
		return nil
	}
	out := make([]float32, 0, len(b.Quads)*FloatsPerQuad)
	for _, q := range b.Quads {
		vs := q.Corners()
		nv := q.Normal()
		for _, i := range [VerticesPerQuad]int{0, 1, 2, 2, 3, 0} {
			v := vs[i]
			out = append(out,
				v.pos[0], v.pos[1], v.pos[2],
				nv[0], nv[1], nv[2],
				v.uv[0], v.uv[1],
			)
		}
	}
	return out
}

// CountByDirection tallies quads per face direction.
func (b *Buffer) CountByDirection() map[world.Direction]int {
	out := make(map[world.Direction]int, len(world.Directions))
	for _, q := range b.Quads {
		out[q.Dir]++
	}
	return out
}
