package render

import "voxel-client/internal/world"

// MeshCache tracks backend resources per chunk and the mesh revision they
// were built from. Entries not touched between Begin and Sweep are evicted.
// It is not safe for concurrent use.
type MeshCache[T any] struct {
	entries map[world.LatticePos]*cacheEntry[T]
	frame   uint64
}

type cacheEntry[T any] struct {
	value    T
	revision uint64
	seen     uint64
}

func NewMeshCache[T any]() *MeshCache[T] {
	return &MeshCache[T]{entries: make(map[world.LatticePos]*cacheEntry[T])}
}

// Begin starts a frame.
func (c *MeshCache[T]) Begin() {
	c.frame++
}

// Get returns the value cached for pos if it was built from revision, and
// keeps the entry alive for the current frame either way.
func (c *MeshCache[T]) Get(pos world.LatticePos, revision uint64) (T, bool) {
	e, ok := c.entries[pos]
	if !ok {
		var zero T
		return zero, false
	}
	e.seen = c.frame
	return e.value, e.revision == revision
}

// Put stores v for pos. When an older value was replaced it is returned so
// the caller can release it.
func (c *MeshCache[T]) Put(pos world.LatticePos, revision uint64, v T) (old T, replaced bool) {
	if e, ok := c.entries[pos]; ok {
		old, e.value = e.value, v
		e.revision = revision
		e.seen = c.frame
		return old, true
	}
	c.entries[pos] = &cacheEntry[T]{value: v, revision: revision, seen: c.frame}
	return old, false
}

// Sweep evicts every entry not used this frame and returns how many went.
func (c *MeshCache[T]) Sweep(release func(T)) int {
	n := 0
	for pos, e := range c.entries {
		if e.seen == c.frame {
			continue
		}
		if release != nil {
			release(e.value)
		}
		delete(c.entries, pos)
		n++
	}
	return n
}

// Clear evicts everything.
func (c *MeshCache[T]) Clear(release func(T)) {
	for pos, e := range c.entries {
		if release != nil {
			release(e.value)
		}
		delete(c.entries, pos)
	}
}

// Len returns the number of cached entries.
func (c *MeshCache[T]) Len() int {
	return len(c.entries)
}
