package meshing

import (
	"context"
	"sync"

	"voxel-client/internal/world"
)

// WorkerPool meshes chunk snapshots on background goroutines.
type WorkerPool struct {
	jobQueue chan world.MeshRequest
	results  chan world.MeshResult
	mesher   world.Mesher
	workers  int
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewWorkerPool creates a new mesh worker pool. A nil mesher uses Greedy.
func NewWorkerPool(workers int, queueSize int, m world.Mesher) *WorkerPool {
	ctx, cancel := context.WithCancel(context.Background())
	if m == nil {
		m = Greedy{}
	}
	workers = max(workers, 1)

	pool := &WorkerPool{
		jobQueue: make(chan world.MeshRequest, queueSize),
		results:  make(chan world.MeshResult, queueSize),
		mesher:   m,
		workers:  workers,
		ctx:      ctx,
		cancel:   cancel,
	}

	for range workers {
		pool.wg.Add(1)
		go pool.worker()
	}

	return pool
}

// Submit queues a request without blocking.
// Returns true if the request was queued, false if the queue is full
func (p *WorkerPool) Submit(req world.MeshRequest) bool {
	select {
	case p.jobQueue <- req:
		return true
	default:
		return false
	}
}

// SubmitBlocking queues a request and blocks until it's queued or the pool
// shuts down.
func (p *WorkerPool) SubmitBlocking(req world.MeshRequest) {
	select {
	case p.jobQueue <- req:
	case <-p.ctx.Done():
	}
}

// Results delivers finished meshes in completion order.
func (p *WorkerPool) Results() <-chan world.MeshResult {
	return p.results
}

// Drain hands every result that is ready to apply without blocking and
// returns how many there were.
func (p *WorkerPool) Drain(apply func(world.MeshResult)) int {
	n := 0
	for {
		select {
		case r := <-p.results:
			apply(r)
			n++
		default:
			return n
		}
	}
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()

	for {
		select {
		case req := <-p.jobQueue:
			result := world.MeshResult{
				Pos:      req.Pos,
				Edit:     req.Edit,
				Vertices: p.mesher.MeshGrid(&req.Grid),
			}

			select {
			case p.results <- result:
			case <-p.ctx.Done():
				return
			}

		case <-p.ctx.Done():
			return
		}
	}
}

// Shutdown stops the workers and waits for them to exit. Queued requests are
// dropped.
func (p *WorkerPool) Shutdown() {
	p.cancel()
	p.wg.Wait()
}

// QueueLength returns the current number of requests in the queue
func (p *WorkerPool) QueueLength() int {
	return len(p.jobQueue)
}

// Workers returns the number of worker goroutines.
func (p *WorkerPool) Workers() int {
	return p.workers
}
