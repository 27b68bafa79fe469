package meshing

import (
	"testing"
	"time"

	"voxel-client/internal/world"
)

func TestWorkerPoolMeshesRequests(t *testing.T) {
	w, err := world.New(world.FlatField(8), world.Options{Extent: world.Extent{X: 2, Y: 2, Z: 1}})
	if err != nil {
		t.Fatal(err)
	}
	w.StitchBorders()

	pool := NewWorkerPool(2, 8, nil)
	defer pool.Shutdown()

	reqs := w.MeshRequests()
	if len(reqs) != 2 {
		t.Fatalf("got %d requests, want 2 (upper row is empty)", len(reqs))
	}
	for _, r := range reqs {
		if !pool.Submit(r) {
			t.Fatalf("queue full for %v", r.Pos)
		}
	}

	timeout := time.After(5 * time.Second)
	for applied := 0; applied < len(reqs); {
		select {
		case res := <-pool.Results():
			if !w.ApplyMesh(res) {
				t.Fatalf("result for %v rejected", res.Pos)
			}
			applied++
		case <-timeout:
			t.Fatal("timed out waiting for mesh results")
		}
	}

	for _, c := range w.Chunks() {
		if c.Dirty() {
			t.Fatalf("chunk %v still dirty", c.Pos)
		}
		if c.Visible() == c.Empty() {
			t.Fatalf("chunk %v visible=%v empty=%v", c.Pos, c.Visible(), c.Empty())
		}
	}
}

func TestWorkerPoolSubmitFull(t *testing.T) {
	pool := NewWorkerPool(1, 1, blockingMesher{release: make(chan struct{})})
	m := pool.mesher.(blockingMesher)
	defer func() {
		close(m.release)
		pool.Shutdown()
	}()

	// One request held by the worker, one in the queue, the third rejected.
	accepted := 0
	deadline := time.Now().Add(2 * time.Second)
	for accepted < 2 && time.Now().Before(deadline) {
		if pool.Submit(world.MeshRequest{}) {
			accepted++
		}
	}
	for pool.QueueLength() != 1 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if pool.Submit(world.MeshRequest{}) {
		t.Fatal("submit should fail while the queue is full")
	}
}

type blockingMesher struct {
	release chan struct{}
}

func (b blockingMesher) MeshGrid(*world.Grid) []float32 {
	<-b.release
	return nil
}

func TestDrain(t *testing.T) {
	pool := NewWorkerPool(1, 4, nil)
	defer pool.Shutdown()

	g := gridWith(map[[3]int]world.BlockType{{1, 1, 1}: world.BlockTypeStone})
	pool.SubmitBlocking(world.MeshRequest{Edit: 3, Grid: *g})

	var got []world.MeshResult
	deadline := time.Now().Add(5 * time.Second)
	for len(got) == 0 && time.Now().Before(deadline) {
		pool.Drain(func(r world.MeshResult) { got = append(got, r) })
		time.Sleep(time.Millisecond)
	}
	if len(got) != 1 {
		t.Fatalf("drained %d results, want 1", len(got))
	}
	if got[0].Edit != 3 || QuadCount(got[0].Vertices) != 6 {
		t.Fatalf("unexpected result edit=%d quads=%d", got[0].Edit, QuadCount(got[0].Vertices))
	}
}
