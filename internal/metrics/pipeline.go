package metrics

import (
	"time"

	"voxel-client/internal/world"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "voxel"

// Pipeline exports world pipeline events and per-frame render numbers as
// Prometheus metrics. It implements world.Observer.
type Pipeline struct {
	generated     *prometheus.CounterVec
	stitchedPairs prometheus.Counter
	meshed        prometheus.Counter
	meshQuads     prometheus.Histogram
	stageSeconds  *prometheus.HistogramVec
	frameSeconds  prometheus.Histogram
	chunksDrawn   prometheus.Gauge
	meshQueue     prometheus.Gauge
	staleMeshes   prometheus.Counter
}

var _ world.Observer = (*Pipeline)(nil)

// NewPipeline creates the collectors and registers them with reg.
func NewPipeline(reg prometheus.Registerer) (*Pipeline, error) {
	p := &Pipeline{
		generated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chunks_generated_total",
			Help:      "Chunks generated, by fill class.",
		}, []string{"fill"}),
		stitchedPairs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "border_pairs_stitched_total",
			Help:      "Neighbour pairs whose shared borders were stitched.",
		}),
		meshed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chunks_meshed_total",
			Help:      "Chunk meshes stored.",
		}),
		meshQuads: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "chunk_mesh_quads",
			Help:      "Quads per stored chunk mesh.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		stageSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_stage_seconds",
			Help:      "Wall time of generate, stitch and mesh stages.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"stage"}),
		frameSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_seconds",
			Help:      "CPU time spent per rendered frame.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 8),
		}),
		chunksDrawn: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "chunks_drawn",
			Help:      "Visible chunks submitted in the last frame.",
		}),
		meshQueue: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "mesh_queue_length",
			Help:      "Remesh requests waiting for a worker.",
		}),
		staleMeshes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stale_meshes_total",
			Help:      "Asynchronous meshes discarded because the chunk changed.",
		}),
	}

	for _, c := range []prometheus.Collector{
		p.generated, p.stitchedPairs, p.meshed, p.meshQuads, p.stageSeconds,
		p.frameSeconds, p.chunksDrawn, p.meshQueue, p.staleMeshes,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// floatsPerQuad matches the mesher's 8 floats × 6 vertices.
const floatsPerQuad = 48

func (p *Pipeline) ChunkGenerated(_ world.LatticePos, fill world.Fill) {
	p.generated.WithLabelValues(fill.String()).Inc()
}

func (p *Pipeline) BordersStitched(pairs int) {
	p.stitchedPairs.Add(float64(pairs))
}

func (p *Pipeline) ChunkMeshed(_ world.LatticePos, vertices int) {
	p.meshed.Inc()
	if q := vertices / floatsPerQuad; q > 0 {
		p.meshQuads.Observe(float64(q))
	}
}

func (p *Pipeline) StageDone(stage string, elapsed time.Duration) {
	p.stageSeconds.WithLabelValues(stage).Observe(elapsed.Seconds())
}

// FrameDone records one rendered frame.
func (p *Pipeline) FrameDone(drawn int, elapsed time.Duration) {
	p.chunksDrawn.Set(float64(drawn))
	p.frameSeconds.Observe(elapsed.Seconds())
}

// SetMeshQueue records the current remesh backlog.
func (p *Pipeline) SetMeshQueue(n int) {
	p.meshQueue.Set(float64(n))
}

// MeshDiscarded counts an asynchronous result dropped as stale.
func (p *Pipeline) MeshDiscarded() {
	p.staleMeshes.Inc()
}
