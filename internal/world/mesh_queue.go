package world

// MeshRequest carries a snapshot of a dirty chunk's grid to an asynchronous
// mesher. Edit identifies the chunk state the snapshot was taken from.
type MeshRequest struct {
	Pos  LatticePos
	Edit uint64
	Grid Grid
}

// MeshResult is the answer to a MeshRequest.
type MeshResult struct {
	Pos      LatticePos
	Edit     uint64
	Vertices []float32
}

// MeshRequests returns a snapshot for every dirty chunk that has no request
// in flight and marks those chunks pending. Empty chunks are resolved in
// place and never produce a request.
func (w *World) MeshRequests() []MeshRequest {
	var reqs []MeshRequest
	for _, c := range w.chunks {
		if !c.dirty || c.pending {
			continue
		}
		if c.empty {
			c.setMesh(nil)
			continue
		}
		c.pending = true
		reqs = append(reqs, MeshRequest{Pos: c.Pos, Edit: c.edits, Grid: c.grid})
	}
	return reqs
}

// ApplyMesh stores a result when the chunk has not changed since the request
// was taken. A stale result releases the chunk so it is requested again.
func (w *World) ApplyMesh(r MeshResult) bool {
	c, ok := w.Chunk(r.Pos)
	if !ok {
		return false
	}
	if c.edits != r.Edit {
		c.pending = false
		return false
	}
	c.setMesh(r.Vertices)
	w.obs.ChunkMeshed(c.Pos, len(c.vertices))
	return true
}

// ReleaseMesh clears the pending mark of a chunk whose request was never
// delivered, so the next MeshRequests call retries it.
func (w *World) ReleaseMesh(pos LatticePos) {
	if c, ok := w.Chunk(pos); ok {
		c.pending = false
	}
}
